package typeinference

import (
	"testing"

	"github.com/gomlx/typeinference/types/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyWindowAttributes(t *testing.T) {
	// Absent attributes default to the identity geometry.
	window := must1(VerifyWindowAttributes([]int{3, 2}, nil, nil, nil, nil, nil))
	require.Len(t, window, 2)
	assert.Equal(t, WindowDimension{Size: 3, Stride: 1, BaseDilation: 1, WindowDilation: 1}, window[0])
	assert.Equal(t, WindowDimension{Size: 2, Stride: 1, BaseDilation: 1, WindowDilation: 1}, window[1])

	window = must1(VerifyWindowAttributes([]int{3}, []int{2}, [][2]int{{1, 1}}, []int{2}, []int{2}, []bool{true}))
	assert.Equal(t, WindowDimension{Size: 3, Stride: 2, PaddingLow: 1, PaddingHigh: 1, BaseDilation: 2, WindowDilation: 2, Reversed: true}, window[0])

	_, err := VerifyWindowAttributes([]int{0}, nil, nil, nil, nil, nil)
	require.ErrorContains(t, err, "window_dimensions[0]=0 must be >= 1")

	_, err = VerifyWindowAttributes([]int{3}, []int{0}, nil, nil, nil, nil)
	require.ErrorContains(t, err, "window_strides[0]=0 must be >= 1")

	_, err = VerifyWindowAttributes([]int{3}, nil, nil, []int{0}, nil, nil)
	require.ErrorContains(t, err, "base_dilations[0]=0 must be >= 1")

	_, err = VerifyWindowAttributes([]int{3}, []int{1, 1}, nil, nil, nil, nil)
	require.ErrorContains(t, err, "one value per window axis")

	_, err = VerifyWindowAttributes([]int{3, 3}, nil, [][2]int{{0, 0}}, nil, nil, nil)
	require.ErrorContains(t, err, "one (low, high) pair per window axis")
}

func TestWindowOutputDims(t *testing.T) {
	// 2x2 pooling with stride 2.
	window := must1(VerifyWindowAttributes([]int{2, 2}, []int{2, 2}, nil, nil, nil, nil))
	dims := must1(WindowOutputDims([]shapes.Dim{shapes.Static(4), shapes.Static(6)}, window, true))
	assert.Equal(t, []shapes.Dim{shapes.Static(2), shapes.Static(3)}, dims)

	// Same-size output: window 3 with padding (1, 1).
	window = must1(VerifyWindowAttributes([]int{3}, nil, [][2]int{{1, 1}}, nil, nil, nil))
	dims = must1(WindowOutputDims([]shapes.Dim{shapes.Static(5)}, window, true))
	assert.Equal(t, []shapes.Dim{shapes.Static(5)}, dims)

	// Dynamic bases propagate: a bound runs through the same arithmetic
	// and unbounded stays unbounded.
	dims = must1(WindowOutputDims([]shapes.Dim{shapes.Bounded(5)}, window, true))
	assert.Equal(t, []shapes.Dim{shapes.Bounded(5)}, dims)
	dims = must1(WindowOutputDims([]shapes.Dim{shapes.Unbounded()}, window, true))
	assert.Equal(t, []shapes.Dim{shapes.Unbounded()}, dims)

	// Window dilation widens the effective window: size 3 dilated by 2
	// spans 5 elements.
	window = must1(VerifyWindowAttributes([]int{3}, nil, nil, nil, []int{2}, nil))
	dims = must1(WindowOutputDims([]shapes.Dim{shapes.Static(5)}, window, true))
	assert.Equal(t, []shapes.Dim{shapes.Static(1)}, dims)

	// A window that does not fit fails when a non-empty output is required,
	// and clamps to zero otherwise.
	_, err := WindowOutputDims([]shapes.Dim{shapes.Static(2)}, window, true)
	require.ErrorContains(t, err, "does not fit")
	dims = must1(WindowOutputDims([]shapes.Dim{shapes.Static(2)}, window, false))
	assert.Equal(t, []shapes.Dim{shapes.Static(0)}, dims)

	_, err = WindowOutputDims([]shapes.Dim{shapes.Static(2), shapes.Static(2)}, window, false)
	require.ErrorContains(t, err, "window has 1 axes, but the base shape has 2")
}
