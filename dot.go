package typeinference

import (
	"github.com/gomlx/typeinference/internal/utils"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/pkg/errors"
)

// DotGeneral contracts lhs and rhs over their contracting axes, batched over
// their batch axes. The result lists the batch axes first (taken from lhs),
// then lhs' free axes, then rhs' free axes.
//
// Negative axes are adjusted in place to their non-negative form.
func DotGeneral(
	lhs shapes.Shape, lhsContractingAxes, lhsBatchAxes []int,
	rhs shapes.Shape, rhsContractingAxes, rhsBatchAxes []int) (output shapes.Shape, err error) {
	if lhs.DType != rhs.DType {
		return shapes.Invalid(), errors.Errorf("dot_general operands must have the same data type, got lhs=%s and rhs=%s", lhs, rhs)
	}
	if len(lhsContractingAxes) != len(rhsContractingAxes) {
		return shapes.Invalid(), errors.Errorf("dot_general number of contracting axes for lhs (%d) doesn't match rhs (%d)",
			len(lhsContractingAxes), len(rhsContractingAxes))
	}
	if len(lhsBatchAxes) != len(rhsBatchAxes) {
		return shapes.Invalid(), errors.Errorf("dot_general number of batch axes for lhs (%d) doesn't match rhs (%d)",
			len(lhsBatchAxes), len(rhsBatchAxes))
	}
	for _, axesAndRank := range []struct {
		axes []int
		rank int
		name string
	}{
		{lhsContractingAxes, lhs.Rank(), "lhs_contracting_dimensions"},
		{lhsBatchAxes, lhs.Rank(), "lhs_batching_dimensions"},
		{rhsContractingAxes, rhs.Rank(), "rhs_contracting_dimensions"},
		{rhsBatchAxes, rhs.Rank(), "rhs_batching_dimensions"},
	} {
		for i, axis := range axesAndRank.axes {
			axesAndRank.axes[i], err = AdjustAxisToRank(axis, axesAndRank.rank)
			if err != nil {
				return shapes.Invalid(), errors.WithMessagef(err, "dot_general %s", axesAndRank.name)
			}
		}
	}
	lhsUsed := utils.MakeSet[int](len(lhsContractingAxes) + len(lhsBatchAxes))
	for _, axis := range append(append([]int{}, lhsContractingAxes...), lhsBatchAxes...) {
		if lhsUsed.Has(axis) {
			return shapes.Invalid(), errors.Errorf("dot_general lhs axis %d is used more than once across batch and contracting axes", axis)
		}
		lhsUsed.Insert(axis)
	}
	rhsUsed := utils.MakeSet[int](len(rhsContractingAxes) + len(rhsBatchAxes))
	for _, axis := range append(append([]int{}, rhsContractingAxes...), rhsBatchAxes...) {
		if rhsUsed.Has(axis) {
			return shapes.Invalid(), errors.Errorf("dot_general rhs axis %d is used more than once across batch and contracting axes", axis)
		}
		rhsUsed.Insert(axis)
	}

	batchDims := make([]shapes.Dim, len(lhsBatchAxes))
	for i, lhsAxis := range lhsBatchAxes {
		rhsAxis := rhsBatchAxes[i]
		batchDims[i], err = shapes.MergeDim(lhs.Dimensions[lhsAxis], rhs.Dimensions[rhsAxis])
		if err != nil {
			return shapes.Invalid(), errors.WithMessagef(err, "dot_general batch axes lhs[%d] and rhs[%d] don't match for lhs=%s, rhs=%s",
				lhsAxis, rhsAxis, lhs, rhs)
		}
	}
	for i, lhsAxis := range lhsContractingAxes {
		rhsAxis := rhsContractingAxes[i]
		if _, err = shapes.MergeDim(lhs.Dimensions[lhsAxis], rhs.Dimensions[rhsAxis]); err != nil {
			return shapes.Invalid(), errors.WithMessagef(err, "dot_general contracting axes lhs[%d] and rhs[%d] don't match for lhs=%s, rhs=%s",
				lhsAxis, rhsAxis, lhs, rhs)
		}
	}

	outputDims := batchDims
	for axis, dim := range lhs.Dimensions {
		if !lhsUsed.Has(axis) {
			outputDims = append(outputDims, dim)
		}
	}
	for axis, dim := range rhs.Dimensions {
		if !rhsUsed.Has(axis) {
			outputDims = append(outputDims, dim)
		}
	}
	return lhs.WithDims(outputDims...), nil
}

// ConvolutionDimensionNumbers names the role of every input, kernel and
// output axis of a convolution.
type ConvolutionDimensionNumbers struct {
	InputBatchAxis   int
	InputFeatureAxis int
	InputSpatialAxes []int

	KernelInputFeatureAxis  int
	KernelOutputFeatureAxis int
	KernelSpatialAxes       []int

	OutputBatchAxis   int
	OutputFeatureAxis int
	OutputSpatialAxes []int
}

// checkAxesCover verifies that the given special axes plus the spatial axes
// are a permutation of 0..rank-1.
func checkAxesCover(rank int, spatial []int, special []int, what string) error {
	if len(spatial) != rank-len(special) {
		return errors.Errorf("%s spatial axes %v must cover the %d non-special axes", what, spatial, rank-len(special))
	}
	seen := utils.SetWith(special...)
	if len(seen) != len(special) {
		return errors.Errorf("duplicate %s axes configuration: special=%v, spatial=%v", what, special, spatial)
	}
	for _, axis := range spatial {
		if axis < 0 || axis >= rank {
			return errors.Errorf("%s axis %d is out of range for rank %d", what, axis, rank)
		}
		if seen.Has(axis) {
			return errors.Errorf("duplicate %s axes configuration: special=%v, spatial=%v", what, special, spatial)
		}
		seen.Insert(axis)
	}
	return nil
}

// Convolution computes the windowed dot product of the input with the kernel.
// The window carries one WindowDimension per spatial axis, with the kernel's
// spatial extents as sizes; featureGroupCount and batchGroupCount split the
// feature and batch axes into independently convolved groups.
func Convolution(input, kernel shapes.Shape, dims ConvolutionDimensionNumbers,
	window []WindowDimension, featureGroupCount, batchGroupCount int) (output shapes.Shape, err error) {
	if input.DType != kernel.DType {
		return shapes.Invalid(), errors.Errorf("convolution input and kernel must have the same data type, got input=%s and kernel=%s", input, kernel)
	}
	rank := input.Rank()
	spatialRank := rank - 2
	if rank < 3 {
		return shapes.Invalid(), errors.Errorf("convolution input needs at least rank-3 with batch, feature and spatial axes, got %s", input)
	}
	if kernel.Rank() != rank {
		return shapes.Invalid(), errors.Errorf("convolution input and kernel must have the same rank, got input=%s and kernel=%s", input, kernel)
	}
	if err = checkAxesCover(rank, dims.InputSpatialAxes, []int{dims.InputBatchAxis, dims.InputFeatureAxis}, "input"); err != nil {
		return shapes.Invalid(), err
	}
	if err = checkAxesCover(rank, dims.KernelSpatialAxes, []int{dims.KernelInputFeatureAxis, dims.KernelOutputFeatureAxis}, "kernel"); err != nil {
		return shapes.Invalid(), err
	}
	if err = checkAxesCover(rank, dims.OutputSpatialAxes, []int{dims.OutputBatchAxis, dims.OutputFeatureAxis}, "output"); err != nil {
		return shapes.Invalid(), err
	}
	if len(window) != spatialRank {
		return shapes.Invalid(), errors.Errorf("convolution requires one window axis per spatial axis, got %d window axes for input %s", len(window), input)
	}
	if featureGroupCount < 1 || batchGroupCount < 1 {
		return shapes.Invalid(), errors.Errorf("feature_group_count (%d) and batch_group_count (%d) must be >= 1", featureGroupCount, batchGroupCount)
	}
	if featureGroupCount > 1 && batchGroupCount > 1 {
		return shapes.Invalid(), errors.Errorf("at most one of feature_group_count (%d) and batch_group_count (%d) can exceed 1", featureGroupCount, batchGroupCount)
	}

	// Window sizes must match the kernel's spatial extents where static.
	for i, kernelAxis := range dims.KernelSpatialAxes {
		if size, isStatic := kernel.Dimensions[kernelAxis].Size(); isStatic && size != window[i].Size {
			return shapes.Invalid(), errors.Errorf("window size %d for spatial axis %d must match the kernel extent %d", window[i].Size, i, size)
		}
	}

	// Feature and batch group arithmetic, checked only where static.
	inputFeatures, inputFeaturesStatic := input.Dimensions[dims.InputFeatureAxis].Size()
	kernelInputFeatures, kernelInputFeaturesStatic := kernel.Dimensions[dims.KernelInputFeatureAxis].Size()
	outputFeatures, outputFeaturesStatic := kernel.Dimensions[dims.KernelOutputFeatureAxis].Size()
	if inputFeaturesStatic && inputFeatures%featureGroupCount != 0 {
		return shapes.Invalid(), errors.Errorf("input feature extent %d must be divisible by feature_group_count %d", inputFeatures, featureGroupCount)
	}
	if inputFeaturesStatic && kernelInputFeaturesStatic && inputFeatures != kernelInputFeatures*featureGroupCount {
		return shapes.Invalid(), errors.Errorf("input features (%d) must equal kernel input features (%d) times feature_group_count (%d)",
			inputFeatures, kernelInputFeatures, featureGroupCount)
	}
	if outputFeaturesStatic && outputFeatures%featureGroupCount != 0 {
		return shapes.Invalid(), errors.Errorf("kernel output feature extent %d must be divisible by feature_group_count %d", outputFeatures, featureGroupCount)
	}
	if outputFeaturesStatic && outputFeatures%batchGroupCount != 0 {
		return shapes.Invalid(), errors.Errorf("kernel output feature extent %d must be divisible by batch_group_count %d", outputFeatures, batchGroupCount)
	}
	if size, isStatic := input.Dimensions[dims.InputBatchAxis].Size(); isStatic && size%batchGroupCount != 0 {
		return shapes.Invalid(), errors.Errorf("input batch extent %d must be divisible by batch_group_count %d", size, batchGroupCount)
	}

	spatialBase := make([]shapes.Dim, spatialRank)
	for i, inputAxis := range dims.InputSpatialAxes {
		spatialBase[i] = input.Dimensions[inputAxis]
	}
	spatialOutput, err := WindowOutputDims(spatialBase, window, true)
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "convolution window over input %s", input)
	}
	// A dynamic kernel extent makes the spatial output extent unknown.
	for i, kernelAxis := range dims.KernelSpatialAxes {
		if !kernel.Dimensions[kernelAxis].IsStatic() {
			spatialOutput[i] = shapes.Unbounded()
		}
	}

	outputDims := make([]shapes.Dim, rank)
	outputDims[dims.OutputBatchAxis], err = shapes.MapDim(input.Dimensions[dims.InputBatchAxis], func(size int) int {
		return size / batchGroupCount
	})
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "convolution batch axis of input %s", input)
	}
	outputDims[dims.OutputFeatureAxis] = kernel.Dimensions[dims.KernelOutputFeatureAxis]
	for i, outputAxis := range dims.OutputSpatialAxes {
		outputDims[outputAxis] = spatialOutput[i]
	}
	return input.WithDims(outputDims...), nil
}

// inferConvolution extracts the convolution attributes and runs the rule.
func (op *Op) inferConvolution(input, kernel shapes.Shape) (output shapes.Shape, err error) {
	var dims ConvolutionDimensionNumbers
	if dims.InputBatchAxis, err = op.intAttr("input_batch_dimension"); err != nil {
		return shapes.Invalid(), err
	}
	if dims.InputFeatureAxis, err = op.intAttr("input_feature_dimension"); err != nil {
		return shapes.Invalid(), err
	}
	if dims.InputSpatialAxes, err = op.intsAttr("input_spatial_dimensions"); err != nil {
		return shapes.Invalid(), err
	}
	if dims.KernelInputFeatureAxis, err = op.intAttr("kernel_input_feature_dimension"); err != nil {
		return shapes.Invalid(), err
	}
	if dims.KernelOutputFeatureAxis, err = op.intAttr("kernel_output_feature_dimension"); err != nil {
		return shapes.Invalid(), err
	}
	if dims.KernelSpatialAxes, err = op.intsAttr("kernel_spatial_dimensions"); err != nil {
		return shapes.Invalid(), err
	}
	if dims.OutputBatchAxis, err = op.intAttr("output_batch_dimension"); err != nil {
		return shapes.Invalid(), err
	}
	if dims.OutputFeatureAxis, err = op.intAttr("output_feature_dimension"); err != nil {
		return shapes.Invalid(), err
	}
	if dims.OutputSpatialAxes, err = op.intsAttr("output_spatial_dimensions"); err != nil {
		return shapes.Invalid(), err
	}

	// The window sizes come from the kernel's spatial extents.
	spatialRank := len(dims.KernelSpatialAxes)
	windowDimensions := make([]int, spatialRank)
	for i, kernelAxis := range dims.KernelSpatialAxes {
		if kernelAxis < 0 || kernelAxis >= kernel.Rank() {
			return shapes.Invalid(), errors.Errorf("kernel spatial axis %d is out of range for kernel %s", kernelAxis, kernel)
		}
		if size, isStatic := kernel.Dimensions[kernelAxis].Size(); isStatic {
			windowDimensions[i] = size
		} else {
			windowDimensions[i] = 1
		}
	}
	windowStrides, err := op.optionalIntsAttr("window_strides", spatialRank, 1)
	if err != nil {
		return shapes.Invalid(), err
	}
	lhsDilation, err := op.optionalIntsAttr("lhs_dilation", spatialRank, 1)
	if err != nil {
		return shapes.Invalid(), err
	}
	rhsDilation, err := op.optionalIntsAttr("rhs_dilation", spatialRank, 1)
	if err != nil {
		return shapes.Invalid(), err
	}
	padding := make([][2]int, spatialRank)
	if _, found := op.Attributes["padding"]; found {
		if padding, err = op.pairsAttr("padding"); err != nil {
			return shapes.Invalid(), err
		}
	}
	var windowReversal []bool
	if value, found := op.Attributes["window_reversal"]; found {
		if reversal, ok := value.([]bool); ok {
			windowReversal = reversal
		} else if windowReversal, err = ConvertWindowReversalAttribute(op.denseAttr("window_reversal"), "window_reversal"); err != nil {
			return shapes.Invalid(), err
		}
	}
	window, err := VerifyWindowAttributes(windowDimensions, windowStrides, padding, lhsDilation, rhsDilation, windowReversal)
	if err != nil {
		return shapes.Invalid(), err
	}

	featureGroupCount, err := op.optionalIntAttr("feature_group_count", 1)
	if err != nil {
		return shapes.Invalid(), err
	}
	batchGroupCount, err := op.optionalIntAttr("batch_group_count", 1)
	if err != nil {
		return shapes.Invalid(), err
	}
	return Convolution(input, kernel, dims, window, featureGroupCount, batchGroupCount)
}
