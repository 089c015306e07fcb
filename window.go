package typeinference

import (
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/pkg/errors"
)

// WindowDimension is the per-axis geometry of a sliding window, shared by
// ReduceWindow, SelectAndScatter and Convolution.
type WindowDimension struct {
	Size           int
	Stride         int
	PaddingLow     int
	PaddingHigh    int
	BaseDilation   int
	WindowDilation int
	Reversed       bool
}

// dilated returns the extent of n elements spread with the given dilation
// factor: (n-1)*dilation + 1, or 0 when n is 0.
func dilated(n, dilation int) int {
	if n <= 0 {
		return 0
	}
	return (n-1)*dilation + 1
}

// VerifyWindowAttributes validates the window attribute family and combines
// it into one WindowDimension per axis. All slices except windowDimensions
// may be nil, standing for the identity value (stride 1, no padding, dilation
// 1, no reversal); when given, their length must match windowDimensions.
func VerifyWindowAttributes(windowDimensions, windowStrides []int, padding [][2]int,
	baseDilations, windowDilations []int, windowReversal []bool) (window []WindowDimension, err error) {
	numAxes := len(windowDimensions)
	if windowStrides != nil && len(windowStrides) != numAxes {
		return nil, errors.Errorf("window_strides must have one value per window axis, got %d values for %d axes", len(windowStrides), numAxes)
	}
	if padding != nil && len(padding) != numAxes {
		return nil, errors.Errorf("padding must have one (low, high) pair per window axis, got %d pairs for %d axes", len(padding), numAxes)
	}
	if baseDilations != nil && len(baseDilations) != numAxes {
		return nil, errors.Errorf("base_dilations must have one value per window axis, got %d values for %d axes", len(baseDilations), numAxes)
	}
	if windowDilations != nil && len(windowDilations) != numAxes {
		return nil, errors.Errorf("window_dilations must have one value per window axis, got %d values for %d axes", len(windowDilations), numAxes)
	}
	if windowReversal != nil && len(windowReversal) != numAxes {
		return nil, errors.Errorf("window_reversal must have one value per window axis, got %d values for %d axes", len(windowReversal), numAxes)
	}

	window = make([]WindowDimension, numAxes)
	for axis := range window {
		dim := &window[axis]
		dim.Size = windowDimensions[axis]
		if dim.Size < 1 {
			return nil, errors.Errorf("window_dimensions[%d]=%d must be >= 1", axis, dim.Size)
		}
		dim.Stride = 1
		if windowStrides != nil {
			dim.Stride = windowStrides[axis]
		}
		if dim.Stride < 1 {
			return nil, errors.Errorf("window_strides[%d]=%d must be >= 1", axis, dim.Stride)
		}
		if padding != nil {
			dim.PaddingLow, dim.PaddingHigh = padding[axis][0], padding[axis][1]
		}
		dim.BaseDilation = 1
		if baseDilations != nil {
			dim.BaseDilation = baseDilations[axis]
		}
		if dim.BaseDilation < 1 {
			return nil, errors.Errorf("base_dilations[%d]=%d must be >= 1", axis, dim.BaseDilation)
		}
		dim.WindowDilation = 1
		if windowDilations != nil {
			dim.WindowDilation = windowDilations[axis]
		}
		if dim.WindowDilation < 1 {
			return nil, errors.Errorf("window_dilations[%d]=%d must be >= 1", axis, dim.WindowDilation)
		}
		if windowReversal != nil {
			dim.Reversed = windowReversal[axis]
		}
	}
	return window, nil
}

// WindowOutputDims computes the extent of each windowed axis:
// floor((paddedBase - dilatedWindow) / stride) + 1, where paddedBase is the
// base extent after base dilation and padding, and dilatedWindow the window
// size after window dilation.
//
// Dynamic base axes propagate: a bounded axis gets the bound run through the
// same formula (clamped at zero), an unbounded one stays unbounded. With
// requireNonEmpty, a static axis whose window does not fit fails; without it
// the axis clamps to zero.
func WindowOutputDims(base []shapes.Dim, window []WindowDimension, requireNonEmpty bool) (dims []shapes.Dim, err error) {
	if len(window) != len(base) {
		return nil, errors.Errorf("window has %d axes, but the base shape has %d", len(window), len(base))
	}
	dims = make([]shapes.Dim, len(base))
	for axis := range dims {
		w := window[axis]
		dilatedWindow := dilated(w.Size, w.WindowDilation)
		outputSize := func(size int) int {
			padded := dilated(size, w.BaseDilation) + w.PaddingLow + w.PaddingHigh
			if padded < dilatedWindow {
				return 0
			}
			return (padded-dilatedWindow)/w.Stride + 1
		}
		if size, isStatic := base[axis].Size(); isStatic && requireNonEmpty && outputSize(size) == 0 {
			return nil, errors.Errorf("window of dilated size %d for axis %d does not fit the padded base extent %d",
				dilatedWindow, axis, dilated(size, w.BaseDilation)+w.PaddingLow+w.PaddingHigh)
		}
		dims[axis], err = shapes.MapDim(base[axis], outputSize)
		if err != nil {
			return nil, errors.WithMessagef(err, "windowed axis %d", axis)
		}
	}
	return dims, nil
}
