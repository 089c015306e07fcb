package typeinference

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/pkg/errors"
)

// UniformQuantize converts a float tensor to the quantized element kind given
// by the storage type and the affine parameters. The expressed type must
// match the operand's float type and the shape is unchanged.
func UniformQuantize(operand shapes.Shape, storageDType dtypes.DType, quantized shapes.Quantized) (output shapes.Shape, err error) {
	if !operand.DType.IsFloat() || operand.IsQuantized() || operand.Token {
		return shapes.Invalid(), errors.Errorf("uniform_quantize requires a float operand, got %s", operand)
	}
	if !storageDType.IsInt() || storageDType.IsUnsigned() {
		return shapes.Invalid(), errors.Errorf("uniform_quantize storage type must be a signed integer, got %s", storageDType)
	}
	if quantized.ExpressedDType != operand.DType {
		return shapes.Invalid(), errors.Errorf("uniform_quantize expressed type %s must match the operand's data type %s",
			quantized.ExpressedDType, operand.DType)
	}
	if quantized.Scale <= 0 {
		return shapes.Invalid(), errors.Errorf("uniform_quantize scale must be positive, got %g", quantized.Scale)
	}
	output = operand.Clone()
	output.DType = storageDType
	output.Quantized = &quantized
	return output, nil
}

// UniformDequantize converts a quantized tensor back to its expressed float
// kind. The shape is unchanged.
func UniformDequantize(operand shapes.Shape) (output shapes.Shape, err error) {
	if !operand.IsQuantized() {
		return shapes.Invalid(), errors.Errorf("uniform_dequantize requires a quantized operand, got %s", operand)
	}
	output = operand.Clone()
	output.DType = operand.Quantized.ExpressedDType
	output.Quantized = nil
	return output, nil
}
