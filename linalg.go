package typeinference

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/typeinference/types"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/pkg/errors"
)

// checkTrailingSquare verifies that the trailing two axes of a batched matrix
// are compatible with each other, ignoring dynamic extents.
func checkTrailingSquare(operand shapes.Shape, what string) error {
	if operand.Rank() < 2 {
		return errors.Errorf("%s must be at least rank-2, got %s", what, operand)
	}
	rows := operand.Dim(-2)
	cols := operand.Dim(-1)
	if !shapes.CompatibleDims(rows, cols) {
		return errors.Errorf("%s must have square trailing axes, got %s", what, operand)
	}
	return nil
}

// Cholesky factorizes batched positive-definite matrices held in the trailing
// two axes. The shape is unchanged.
func Cholesky(operand shapes.Shape) (output shapes.Shape, err error) {
	if !operand.DType.IsFloat() && !operand.DType.IsComplex() {
		return shapes.Invalid(), errors.Errorf("cholesky requires a float or complex operand, got %s", operand)
	}
	if err = checkTrailingSquare(operand, "cholesky operand"); err != nil {
		return shapes.Invalid(), err
	}
	return operand.Clone(), nil
}

// TriangularSolve solves op(a) * x = b (with leftSide) or x * op(a) = b
// batched over the leading axes, a holding triangular matrices in its
// trailing two axes. The result has b's shape.
func TriangularSolve(a, b shapes.Shape, leftSide bool, transposeA types.Transposition) (output shapes.Shape, err error) {
	if a.DType != b.DType {
		return shapes.Invalid(), errors.Errorf("triangular_solve operands must have the same data type, got a=%s and b=%s", a, b)
	}
	if !a.DType.IsFloat() && !a.DType.IsComplex() {
		return shapes.Invalid(), errors.Errorf("triangular_solve requires float or complex operands, got %s", a)
	}
	if transposeA < types.TransposeNone || transposeA > types.TransposeAdjoint {
		return shapes.Invalid(), errors.Errorf("invalid transpose_a %d for triangular_solve", int(transposeA))
	}
	if err = checkTrailingSquare(a, "triangular_solve matrix a"); err != nil {
		return shapes.Invalid(), err
	}
	if b.Rank() != a.Rank() {
		return shapes.Invalid(), errors.Errorf("triangular_solve operands must have the same rank, got a=%s and b=%s", a, b)
	}
	for axis := 0; axis < a.Rank()-2; axis++ {
		if !shapes.CompatibleDims(a.Dimensions[axis], b.Dimensions[axis]) {
			return shapes.Invalid(), errors.Errorf("triangular_solve batch axis %d must match, got a=%s and b=%s", axis, a, b)
		}
	}
	// With leftSide, a multiplies b's rows; otherwise its columns.
	bSharedDim := b.Dim(-2)
	if !leftSide {
		bSharedDim = b.Dim(-1)
	}
	if !shapes.CompatibleDims(a.Dim(-1), bSharedDim) {
		return shapes.Invalid(), errors.Errorf("triangular_solve shared extent must match, got a=%s and b=%s with left_side=%v", a, b, leftSide)
	}
	return b.Clone(), nil
}

// FFT computes a fast Fourier transform over the trailing len(fftLength)
// axes. The element kind follows the transform type: complex-to-complex for
// plain forward/inverse, real-to-complex for FFTForwardReal (trailing axis
// halved plus one) and complex-to-real for FFTInverseReal.
func FFT(operand shapes.Shape, fftType types.FFTType, fftLength []int) (output shapes.Shape, err error) {
	if !operand.Ok() {
		return shapes.Invalid(), errors.Errorf("invalid operand shape %s for fft", operand)
	}
	rank := operand.Rank()
	if len(fftLength) == 0 || len(fftLength) > rank {
		return shapes.Invalid(), errors.Errorf("fft_length must cover between 1 and %d trailing axes, got %v", rank, fftLength)
	}
	for i, length := range fftLength {
		if length <= 0 {
			return shapes.Invalid(), errors.Errorf("fft_length[%d]=%d must be positive", i, length)
		}
	}
	// The transformed axes must match fftLength where static. FFTInverseReal
	// expects the halved trailing axis instead, checked below.
	numTransformed := len(fftLength)
	for i, length := range fftLength {
		axis := rank - numTransformed + i
		if fftType == types.FFTInverseReal && i == numTransformed-1 {
			break
		}
		if size, isStatic := operand.Dimensions[axis].Size(); isStatic && size != length {
			return shapes.Invalid(), errors.Errorf("fft_length[%d]=%d must match axis %d of operand %s", i, length, axis, operand)
		}
	}

	output = operand.Clone()
	lastLength := fftLength[numTransformed-1]
	switch fftType {
	case types.FFTForward, types.FFTInverse:
		if !operand.DType.IsComplex() {
			return shapes.Invalid(), errors.Errorf("fft of type %s requires a complex operand, got %s", fftType, operand)
		}

	case types.FFTForwardReal:
		if !operand.DType.IsFloat() {
			return shapes.Invalid(), errors.Errorf("fft of type %s requires a float operand, got %s", fftType, operand)
		}
		switch operand.DType {
		case dtypes.Float32:
			output.DType = dtypes.Complex64
		case dtypes.Float64:
			output.DType = dtypes.Complex128
		default:
			return shapes.Invalid(), errors.Errorf("fft of type %s requires Float32 or Float64, got %s", fftType, operand)
		}
		output.Dimensions[rank-1] = shapes.Static(lastLength/2 + 1)

	case types.FFTInverseReal:
		if !operand.DType.IsComplex() {
			return shapes.Invalid(), errors.Errorf("fft of type %s requires a complex operand, got %s", fftType, operand)
		}
		if size, isStatic := operand.Dimensions[rank-1].Size(); isStatic && size != lastLength/2+1 {
			return shapes.Invalid(), errors.Errorf("fft of type %s requires the trailing axis to be fft_length/2+1=%d, got %s",
				fftType, lastLength/2+1, operand)
		}
		switch operand.DType {
		case dtypes.Complex64:
			output.DType = dtypes.Float32
		case dtypes.Complex128:
			output.DType = dtypes.Float64
		}
		output.Dimensions[rank-1] = shapes.Static(lastLength)

	default:
		return shapes.Invalid(), errors.Errorf("invalid fft type %d", int(fftType))
	}
	return output, nil
}
