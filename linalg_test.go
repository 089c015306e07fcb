package typeinference

import (
	"testing"

	"github.com/gomlx/typeinference/internal/optypes"
	"github.com/gomlx/typeinference/types"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCholesky(t *testing.T) {
	output := must1(Cholesky(S(F32, 2, 4, 4)))
	assert.True(t, S(F32, 2, 4, 4).Equal(output))

	// Dynamic trailing axes pass as long as they could be square.
	output = must1(Cholesky(SD(F64, shapes.Static(4), shapes.Unbounded())))
	assert.True(t, SD(F64, shapes.Static(4), shapes.Unbounded()).Equal(output))

	_, err := Cholesky(S(F32, 4, 3))
	require.ErrorContains(t, err, "square trailing axes")

	_, err = Cholesky(S(F32, 4))
	require.ErrorContains(t, err, "at least rank-2")

	_, err = Cholesky(S(I32, 4, 4))
	require.ErrorContains(t, err, "float or complex")
}

func TestTriangularSolve(t *testing.T) {
	a := S(F32, 4, 4)
	output := must1(TriangularSolve(a, S(F32, 4, 3), true, types.TransposeNone))
	assert.True(t, S(F32, 4, 3).Equal(output))

	output = must1(TriangularSolve(a, S(F32, 3, 4), false, types.TransposeAdjoint))
	assert.True(t, S(F32, 3, 4).Equal(output))

	// Batched over the leading axes.
	output = must1(TriangularSolve(S(C64, 2, 4, 4), S(C64, 2, 4, 3), true, types.TransposeOnly))
	assert.True(t, S(C64, 2, 4, 3).Equal(output))

	_, err := TriangularSolve(a, S(F32, 3, 4), true, types.TransposeNone)
	require.ErrorContains(t, err, "shared extent must match")

	_, err = TriangularSolve(S(F32, 2, 4, 4), S(F32, 3, 4, 3), true, types.TransposeNone)
	require.ErrorContains(t, err, "batch axis 0 must match")

	_, err = TriangularSolve(a, S(F64, 4, 3), true, types.TransposeNone)
	require.ErrorContains(t, err, "same data type")

	_, err = TriangularSolve(S(I32, 4, 4), S(I32, 4, 3), true, types.TransposeNone)
	require.ErrorContains(t, err, "float or complex")
}

func TestFFT(t *testing.T) {
	output := must1(FFT(S(C64, 2, 8), types.FFTForward, []int{8}))
	assert.True(t, S(C64, 2, 8).Equal(output))

	output = must1(FFT(S(C128, 8), types.FFTInverse, []int{8}))
	assert.True(t, S(C128, 8).Equal(output))

	// Real-to-complex halves the trailing axis (plus one).
	output = must1(FFT(S(F32, 2, 8), types.FFTForwardReal, []int{8}))
	assert.True(t, S(C64, 2, 5).Equal(output))
	output = must1(FFT(S(F64, 16), types.FFTForwardReal, []int{16}))
	assert.True(t, S(C128, 9).Equal(output))

	// Complex-to-real restores it.
	output = must1(FFT(S(C64, 2, 5), types.FFTInverseReal, []int{8}))
	assert.True(t, S(F32, 2, 8).Equal(output))

	_, err := FFT(S(C64, 2, 6), types.FFTInverseReal, []int{8})
	require.ErrorContains(t, err, "fft_length/2+1")

	_, err = FFT(S(F32, 8), types.FFTForward, []int{8})
	require.ErrorContains(t, err, "requires a complex operand")

	_, err = FFT(S(C64, 8), types.FFTForward, []int{4})
	require.ErrorContains(t, err, "must match axis 0")

	_, err = FFT(S(C64, 8), types.FFTForward, nil)
	require.ErrorContains(t, err, "between 1 and 1 trailing axes")

	_, err = FFT(S(C64, 8), types.FFTForward, []int{0})
	require.ErrorContains(t, err, "must be positive")
}

func TestDotGeneral(t *testing.T) {
	// Batched matrix multiplication.
	output := must1(DotGeneral(
		S(F32, 2, 3, 4), []int{2}, []int{0},
		S(F32, 2, 4, 5), []int{1}, []int{0}))
	assert.True(t, S(F32, 2, 3, 5).Equal(output))

	// Negative axes count from the end.
	output = must1(DotGeneral(
		S(F32, 3, 4), []int{-1}, nil,
		S(F32, 4, 5), []int{0}, nil))
	assert.True(t, S(F32, 3, 5).Equal(output))

	// A dynamic batch axis refines against the static side.
	output = must1(DotGeneral(
		SD(F32, shapes.Unbounded(), shapes.Static(3), shapes.Static(4)), []int{2}, []int{0},
		S(F32, 2, 4, 5), []int{1}, []int{0}))
	assert.True(t, S(F32, 2, 3, 5).Equal(output))

	_, err := DotGeneral(
		S(F32, 2, 3, 4), []int{2}, []int{0},
		S(F32, 2, 5, 5), []int{1}, []int{0})
	require.ErrorContains(t, err, "contracting axes")

	_, err = DotGeneral(
		S(F32, 2, 4), []int{1}, []int{1},
		S(F32, 2, 4), []int{1}, []int{0})
	require.ErrorContains(t, err, "used more than once")

	_, err = DotGeneral(
		S(F32, 3, 4), []int{1}, nil,
		S(F64, 4, 5), []int{0}, nil)
	require.ErrorContains(t, err, "same data type")

	_, err = DotGeneral(
		S(F32, 3, 4), []int{1, 0}, nil,
		S(F32, 4, 5), []int{0}, nil)
	require.ErrorContains(t, err, "doesn't match")
}

func TestConvolution(t *testing.T) {
	dims := ConvolutionDimensionNumbers{
		InputBatchAxis:   0,
		InputFeatureAxis: 1,
		InputSpatialAxes: []int{2, 3},

		KernelInputFeatureAxis:  1,
		KernelOutputFeatureAxis: 0,
		KernelSpatialAxes:       []int{2, 3},

		OutputBatchAxis:   0,
		OutputFeatureAxis: 1,
		OutputSpatialAxes: []int{2, 3},
	}

	// 3x3 kernel, stride 2, no padding: (9-3)/2+1 = 4 per spatial axis.
	window := must1(VerifyWindowAttributes([]int{3, 3}, []int{2, 2}, nil, nil, nil, nil))
	output := must1(Convolution(S(F32, 1, 3, 9, 9), S(F32, 4, 3, 3, 3), dims, window, 1, 1))
	assert.True(t, S(F32, 1, 4, 4, 4).Equal(output))

	// Grouped features: kernel input features times the group count must
	// equal the input features.
	dims1d := dims
	dims1d.InputSpatialAxes = []int{2}
	dims1d.KernelSpatialAxes = []int{2}
	dims1d.OutputSpatialAxes = []int{2}
	window = must1(VerifyWindowAttributes([]int{3}, nil, nil, nil, nil, nil))
	output = must1(Convolution(S(F32, 1, 6, 8), S(F32, 6, 2, 3), dims1d, window, 3, 1))
	assert.True(t, S(F32, 1, 6, 6).Equal(output))

	_, err := Convolution(S(F32, 1, 6, 8), S(F32, 6, 3, 3), dims1d, window, 3, 1)
	require.ErrorContains(t, err, "times feature_group_count")

	_, err = Convolution(S(F32, 1, 6, 8), S(F32, 6, 2, 3), dims1d, window, 2, 2)
	require.ErrorContains(t, err, "at most one of feature_group_count")

	window2 := must1(VerifyWindowAttributes([]int{2}, nil, nil, nil, nil, nil))
	_, err = Convolution(S(F32, 1, 6, 8), S(F32, 6, 6, 3), dims1d, window2, 1, 1)
	require.ErrorContains(t, err, "must match the kernel extent")

	_, err = Convolution(S(F32, 6, 8), S(F32, 6, 3), dims1d, window, 1, 1)
	require.ErrorContains(t, err, "at least rank-3")
}

func TestConvolutionInfer(t *testing.T) {
	// Same-size convolution via the attribute bag: 3x3 kernel with
	// padding (1, 1) keeps the spatial extents.
	results, err := Infer(Op{
		Type:     optypes.Convolution,
		Operands: []shapes.Shape{S(F32, 1, 3, 8, 8), S(F32, 4, 3, 3, 3)},
		Attributes: map[string]any{
			"input_batch_dimension":           0,
			"input_feature_dimension":         1,
			"input_spatial_dimensions":        []int{2, 3},
			"kernel_input_feature_dimension":  1,
			"kernel_output_feature_dimension": 0,
			"kernel_spatial_dimensions":       []int{2, 3},
			"output_batch_dimension":          0,
			"output_feature_dimension":        1,
			"output_spatial_dimensions":       []int{2, 3},
			"padding":                         types.DenseInts([]int{2, 2}, 1, 1, 1, 1),
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, S(F32, 1, 4, 8, 8).Equal(results[0]))
}
