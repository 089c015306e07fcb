package types

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestDenseInts(t *testing.T) {
	attr := DenseInts([]int{2, 2}, 0, 1, 2, 3)
	assert.Equal(t, dtypes.Int64, attr.DType)
	assert.Equal(t, 2, attr.Rank())
	assert.Equal(t, 4, attr.Count())

	values, err := attr.Ints()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, values)

	values64, err := attr.Int64s()
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2, 3}, values64)

	// Scalar: no dimensions, one value.
	scalar := DenseInts(nil, 7)
	assert.Equal(t, 0, scalar.Rank())
	assert.Equal(t, 1, scalar.Count())

	_, err = attr.Bools()
	require.ErrorContains(t, err, "expected booleans")
	_, err = attr.Float64s()
	require.ErrorContains(t, err, "expected a float type")

	assert.Panics(t, func() { DenseInts([]int{3}, 1, 2) })
}

func TestDenseBools(t *testing.T) {
	attr := DenseBools([]int{2}, true, false)
	assert.Equal(t, dtypes.Bool, attr.DType)
	values, err := attr.Bools()
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, values)

	_, err = attr.Int64s()
	require.ErrorContains(t, err, "expected an integer type")
}

func TestDenseFloats(t *testing.T) {
	attr := DenseFloats([]int{2}, 0.5, -1.25)
	assert.Equal(t, dtypes.Float64, attr.DType)
	values, err := attr.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -1.25}, values)

	// f16 values read back widened, under the Float16 dtype.
	attr16 := DenseFloat16s([]int{2}, float16.Fromfloat32(0.5), float16.Fromfloat32(-2))
	assert.Equal(t, dtypes.Float16, attr16.DType)
	values, err = attr16.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -2}, values)

	_, err = attr16.Ints()
	require.ErrorContains(t, err, "expected an integer type")
}

func TestEnumStrings(t *testing.T) {
	direction, err := ComparisonDirectionString("GE")
	require.NoError(t, err)
	assert.Equal(t, CompareGE, direction)
	assert.Equal(t, "GE", CompareGE.String())
	_, err = ComparisonDirectionString("XX")
	require.Error(t, err)

	fft, err := FFTTypeString("ForwardReal")
	require.NoError(t, err)
	assert.Equal(t, FFTForwardReal, fft)
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "model.mlir:10:4", Location{File: "model.mlir", Line: 10, Col: 4}.String())
	assert.Equal(t, "model.mlir:10", Location{File: "model.mlir", Line: 10}.String())
	assert.Equal(t, "model.mlir", Location{File: "model.mlir"}.String())
}
