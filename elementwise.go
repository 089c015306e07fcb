package typeinference

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/typeinference/internal/optypes"
	"github.com/gomlx/typeinference/internal/utils"
	"github.com/gomlx/typeinference/types"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/pkg/errors"
)

var (
	// BooleanOrBitwiseOperations take booleans or integers as input, aka. logical operations.
	BooleanOrBitwiseOperations = utils.SetWith(
		optypes.And,
		optypes.Or,
		optypes.Xor,
		optypes.Not,
	)

	// BitwiseOperations operate only on integer (binary) numbers and won't work on floats or complex numbers.
	BitwiseOperations = utils.SetWith(
		optypes.Popcnt,
		optypes.ShiftLeft,
		optypes.ShiftRightArithmetic,
		optypes.ShiftRightLogical,
		optypes.CountLeadingZeros,
	)

	// NumberOperations can take any type of number as input: integers, floats, or complex numbers.
	NumberOperations = utils.SetWith(
		optypes.Add,
		optypes.Subtract,
		optypes.Multiply,
		optypes.Divide,
		optypes.Power,
		optypes.Remainder,
		optypes.Maximum,
		optypes.Minimum,

		// Abs and Sign work for unsigned ints: there it's just a trivial implementation.
		optypes.Abs,
		optypes.Sign,
	)

	SignedNumberOperations = utils.SetWith(
		optypes.Negate,
	)

	// FloatOperations operate only on floats (and not on complex numbers).
	FloatOperations = utils.SetWith(
		optypes.Atan2,
		optypes.Erf,
		optypes.Logistic,
		optypes.Cosine,
		optypes.Sine,
		optypes.Tan,
		optypes.Ceil,
		optypes.Floor,
		optypes.RoundNearestEven,
		optypes.RoundNearestAfz,
	)

	// FloatOrComplexOperations operate only on float or complex numbers and won't work on integer or boolean values.
	FloatOrComplexOperations = utils.SetWith(
		optypes.Exponential,
		optypes.ExponentialMinusOne,
		optypes.Log,
		optypes.LogPlusOne,
		optypes.Cbrt,
		optypes.Rsqrt,
		optypes.Sqrt,
		optypes.Tanh,
		optypes.IsFinite,
	)

	// ComplexOperations operate only on complex numbers.
	ComplexOperations = utils.SetWith(
		optypes.Imag,
		optypes.Real,
	)

	// StandardBinaryOperations include all operations that take two operands of the
	// same type, usually named lhs (left-hand-side) and rhs (right-hand-side),
	// and return one result of that type.
	StandardBinaryOperations = utils.SetWith(
		optypes.Add,
		optypes.Atan2,
		optypes.Subtract,
		optypes.Multiply,
		optypes.Divide,
		optypes.Power,
		optypes.Remainder,
		optypes.And,
		optypes.Or,
		optypes.Xor,
		optypes.Maximum,
		optypes.Minimum,
		optypes.ShiftLeft,
		optypes.ShiftRightArithmetic,
		optypes.ShiftRightLogical,
	)

	// StandardUnaryOperations include all operations that take a single operand
	// and return a result of the same shape (so no reductions).
	StandardUnaryOperations = utils.SetWith(
		optypes.Not,
		optypes.Popcnt,
		optypes.Cbrt,
		optypes.CountLeadingZeros,
		optypes.Erf,
		optypes.Exponential,
		optypes.ExponentialMinusOne,
		optypes.Log,
		optypes.LogPlusOne,
		optypes.Logistic,
		optypes.Ceil,
		optypes.Floor,
		optypes.RoundNearestEven,
		optypes.RoundNearestAfz,
		optypes.Rsqrt,
		optypes.Sqrt,
		optypes.Cosine,
		optypes.Sine,
		optypes.Tan,
		optypes.Tanh,
		optypes.Abs,
		optypes.Negate,
		optypes.Sign,
	)
)

// checkElementKind validates the operand's element kind against the set the
// operation belongs to.
func checkElementKind(opType optypes.OpType, operand shapes.Shape) error {
	if !operand.Ok() {
		return errors.Errorf("invalid shape %s for %s", operand, opType)
	}
	if operand.Token {
		return errors.Errorf("token values cannot be used with elementwise operation %s", opType)
	}
	if operand.IsQuantized() {
		return errors.Errorf("quantized values must be dequantized before elementwise operation %s, got %s", opType, operand)
	}
	dtype := operand.DType
	if BooleanOrBitwiseOperations.Has(opType) && dtype != dtypes.Bool && !dtype.IsInt() {
		return errors.Errorf("logical/bitwise operation %s must have boolean or integer inputs, got %s", opType, operand)
	}
	if BitwiseOperations.Has(opType) && !dtype.IsInt() {
		return errors.Errorf("bitwise operation %s must have an integer (Int8, UInt8, Int32, ...) data type as input, got %s", opType, operand)
	}
	if NumberOperations.Has(opType) && !(dtype.IsInt() || dtype.IsFloat() || dtype.IsComplex()) {
		return errors.Errorf("numeric operation %s must have a number (Int32, Float32, Complex64, ...) data type as input, got %s", opType, operand)
	}
	if SignedNumberOperations.Has(opType) && (dtype.IsUnsigned() ||
		!(dtype.IsInt() || dtype.IsFloat() || dtype.IsComplex())) {
		return errors.Errorf("signed operation %s must have a signed data type as input, got %s", opType, operand)
	}
	if FloatOperations.Has(opType) && !dtype.IsFloat() {
		return errors.Errorf("float operation %s must have a float (Float32, Float64, ...) data type as input, got %s", opType, operand)
	}
	if FloatOrComplexOperations.Has(opType) && !(dtype.IsFloat() || dtype.IsComplex()) {
		return errors.Errorf("float/complex operation %s must have a float or complex (Float32, Complex64, ...) data type as input, got %s", opType, operand)
	}
	if ComplexOperations.Has(opType) && !dtype.IsComplex() {
		return errors.Errorf("complex operation %s must have a complex (Complex64, Complex128) data type as input, got %s", opType, operand)
	}
	return nil
}

// mergeShapes combines two operand shapes of an elementwise operation: ranks
// must match unless one side is unranked, and each axis merges per
// shapes.MergeDim. The result reuses lhs as the primary operand, so lhs'
// encoding carries over.
func mergeShapes(lhs, rhs shapes.Shape) (output shapes.Shape, err error) {
	if lhs.Unranked {
		output = rhs.Clone()
		output.DType = lhs.DType
		output.Encoding = lhs.Encoding
		return output, nil
	}
	if rhs.Unranked {
		return lhs.Clone(), nil
	}
	if lhs.Rank() != rhs.Rank() {
		return shapes.Invalid(), errors.Errorf("incompatible operand types: ranks must match, got %s and %s", lhs, rhs)
	}
	merged := make([]shapes.Dim, lhs.Rank())
	for axis := range merged {
		merged[axis], err = shapes.MergeDim(lhs.Dimensions[axis], rhs.Dimensions[axis])
		if err != nil {
			return shapes.Invalid(), errors.WithMessagef(err, "incompatible operand types at axis %d of %s and %s", axis, lhs, rhs)
		}
	}
	return lhs.WithDims(merged...), nil
}

// BinaryOp returns the expected output shape for ops in the StandardBinaryOperations
// set. Both operands must share the element kind; their shapes merge per axis,
// with bounds combined under the Static > Bounded > Unbounded precedence.
func BinaryOp(opType optypes.OpType, lhs, rhs shapes.Shape) (output shapes.Shape, err error) {
	if !StandardBinaryOperations.Has(opType) {
		return shapes.Invalid(), errors.Errorf("operation %s is not in the StandardBinaryOperations set, cannot process it with BinaryOp", opType)
	}
	if err = checkElementKind(opType, lhs); err != nil {
		return shapes.Invalid(), err
	}
	if err = checkElementKind(opType, rhs); err != nil {
		return shapes.Invalid(), err
	}
	if lhs.DType != rhs.DType {
		return shapes.Invalid(), errors.Errorf("data types for %s must match, got %s and %s", opType, lhs, rhs)
	}
	return mergeShapes(lhs, rhs)
}

// UnaryOp checks the validity of the data type for StandardUnaryOperations and
// returns either an error or the output shape, which is the same as the operand.
func UnaryOp(opType optypes.OpType, operand shapes.Shape) (output shapes.Shape, err error) {
	if !StandardUnaryOperations.Has(opType) {
		return shapes.Invalid(), errors.Errorf("operation %s is not in the StandardUnaryOperations set, cannot process it with UnaryOp", opType)
	}
	if err = checkElementKind(opType, operand); err != nil {
		return shapes.Invalid(), err
	}

	// Abs on complex values yields the component float type.
	if opType == optypes.Abs && operand.DType.IsComplex() {
		output = operand.Clone()
		output.DType = operand.DType.RealDType()
		return output, nil
	}
	return operand.Clone(), nil
}

// Compare returns the merged operand shape with dtype set to Bool.
// The comparison type must be consistent with the operand data type: FLOAT
// and TOTAL_ORDER for floats, SIGNED and UNSIGNED for the matching integers.
func Compare(lhs, rhs shapes.Shape, direction types.ComparisonDirection, compareType types.ComparisonType) (output shapes.Shape, err error) {
	if !lhs.Ok() || !rhs.Ok() {
		return shapes.Invalid(), errors.Errorf("invalid shape %s or %s for compare", lhs, rhs)
	}
	if lhs.Token || rhs.Token || lhs.IsQuantized() || rhs.IsQuantized() {
		return shapes.Invalid(), errors.Errorf("compare requires plain tensor operands, got %s and %s", lhs, rhs)
	}
	if lhs.DType != rhs.DType {
		return shapes.Invalid(), errors.Errorf("data types for compare must match, got %s and %s", lhs, rhs)
	}
	dtype := lhs.DType
	switch compareType {
	case types.CompareFloat:
		if !dtype.IsFloat() && !dtype.IsComplex() {
			return shapes.Invalid(), errors.Errorf("data type %s is not a float or complex, cannot compare with direction=%s, type=FLOAT", dtype, direction)
		}
	case types.CompareTotalOrder:
		if !dtype.IsFloat() {
			return shapes.Invalid(), errors.Errorf("data type %s is not a float, cannot compare with direction=%s, type=TOTAL_ORDER", dtype, direction)
		}
	case types.CompareSigned:
		if !dtype.IsInt() || dtype.IsUnsigned() {
			return shapes.Invalid(), errors.Errorf("data type %s is not a signed integer, cannot compare with direction=%s, type=SIGNED", dtype, direction)
		}
	case types.CompareUnsigned:
		if !dtype.IsUnsigned() && dtype != dtypes.Bool {
			return shapes.Invalid(), errors.Errorf("data type %s is not an unsigned integer, cannot compare with direction=%s, type=UNSIGNED", dtype, direction)
		}
	default:
		return shapes.Invalid(), errors.Errorf("invalid comparison type %d for compare", compareType)
	}
	if direction < types.CompareEQ || direction > types.CompareNE {
		return shapes.Invalid(), errors.Errorf("invalid comparison direction %d for compare", direction)
	}
	output, err = mergeShapes(lhs, rhs)
	if err != nil {
		return shapes.Invalid(), err
	}
	output.DType = dtypes.Bool
	output.Encoding = nil
	return output, nil
}

// Select returns the shape resulting from choosing elementwise between onTrue
// and onFalse according to pred.
//
// The pred must be boolean, and either a scalar or mergeable with the value
// shapes. onTrue and onFalse must have the same element kind.
func Select(pred, onTrue, onFalse shapes.Shape) (output shapes.Shape, err error) {
	if pred.DType != dtypes.Bool || pred.Token {
		return shapes.Invalid(), errors.Errorf("pred for select must be a boolean, got %s instead", pred)
	}
	if onTrue.DType != onFalse.DType || onTrue.IsQuantized() != onFalse.IsQuantized() {
		return shapes.Invalid(), errors.Errorf("onTrue (%s) and onFalse (%s) for select must have the same element kind", onTrue, onFalse)
	}
	output, err = mergeShapes(onTrue, onFalse)
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "onTrue and onFalse for select")
	}
	if pred.IsScalar() {
		return output, nil
	}
	predMerged := pred.Clone()
	predMerged.DType = output.DType
	output, err = mergeShapes(output, predMerged)
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "pred for select must be a scalar or match the value shapes")
	}
	return output, nil
}

// Clamp returns the shape resulting from clamping operand between min and max.
// min and max must each be a scalar or mergeable with the operand's shape.
func Clamp(minShape, operand, maxShape shapes.Shape) (output shapes.Shape, err error) {
	for _, s := range []shapes.Shape{minShape, operand, maxShape} {
		if !s.Ok() || s.Token || s.IsQuantized() {
			return shapes.Invalid(), errors.Errorf("clamp requires plain tensor operands, got min=%s, operand=%s, max=%s", minShape, operand, maxShape)
		}
	}
	if minShape.DType != operand.DType || maxShape.DType != operand.DType {
		return shapes.Invalid(), errors.Errorf("data types for clamp must match, got min=%s, operand=%s, max=%s", minShape, operand, maxShape)
	}
	if operand.DType.IsComplex() || operand.DType == dtypes.Bool {
		return shapes.Invalid(), errors.Errorf("clamp requires an ordered data type, got %s", operand)
	}
	output = operand.Clone()
	for _, limit := range []shapes.Shape{minShape, maxShape} {
		if limit.IsScalar() {
			continue
		}
		output, err = mergeShapes(output, limit)
		if err != nil {
			return shapes.Invalid(), errors.WithMessagef(err, "min and max for clamp must be scalars or match the operand shape")
		}
	}
	return output, nil
}

// Complex builds a complex tensor from its real and imaginary parts: Float32
// pairs yield Complex64 and Float64 pairs yield Complex128.
func Complex(realPart, imagPart shapes.Shape) (output shapes.Shape, err error) {
	if realPart.DType != imagPart.DType {
		return shapes.Invalid(), errors.Errorf("real and imaginary parts for complex must have the same data type, got %s and %s", realPart, imagPart)
	}
	output, err = mergeShapes(realPart, imagPart)
	if err != nil {
		return shapes.Invalid(), err
	}
	switch realPart.DType {
	case dtypes.Float32:
		output.DType = dtypes.Complex64
	case dtypes.Float64:
		output.DType = dtypes.Complex128
	default:
		return shapes.Invalid(), errors.Errorf("complex requires Float32 or Float64 parts, got %s", realPart)
	}
	return output, nil
}

// RealOrImag extracts the float component type of a complex operand,
// preserving its shape.
func RealOrImag(operand shapes.Shape) (output shapes.Shape, err error) {
	if !operand.DType.IsComplex() {
		return shapes.Invalid(), errors.Errorf("real/imag require a complex operand, got %s", operand)
	}
	output = operand.Clone()
	output.DType = operand.DType.RealDType()
	return output, nil
}

// IsFinite maps a float tensor to a boolean tensor of the same shape.
func IsFinite(operand shapes.Shape) (output shapes.Shape, err error) {
	if !operand.DType.IsFloat() || operand.IsQuantized() {
		return shapes.Invalid(), errors.Errorf("is_finite requires a float operand, got %s", operand)
	}
	output = operand.Clone()
	output.DType = dtypes.Bool
	output.Encoding = nil
	return output, nil
}
