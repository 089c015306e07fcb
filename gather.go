package typeinference

import (
	"slices"

	"github.com/gomlx/typeinference/internal/utils"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/pkg/errors"
)

// GatherDimensionNumbers describes how a gather correlates operand axes,
// index axes and result axes:
//
//   - OffsetDims lists the result axes that hold a slice of the operand, in
//     ascending order; all other result axes are batch axes taken from
//     startIndices.
//   - CollapsedSliceDims lists operand axes whose slice is collapsed away
//     (their slice size is at most 1), in ascending order.
//   - StartIndexMap maps the entries of an index vector to operand axes.
//   - IndexVectorDim is the startIndices axis holding the index vectors; it
//     may equal startIndices' rank, meaning an implicit trailing axis of
//     size 1.
type GatherDimensionNumbers struct {
	OffsetDims         []int
	CollapsedSliceDims []int
	StartIndexMap      []int
	IndexVectorDim     int
}

// Gather slices the operand at positions given by startIndices. The result
// interleaves offset axes (the slice extents, with collapsed axes removed)
// with batch axes (the startIndices extents, skipping IndexVectorDim),
// following dims.OffsetDims.
func Gather(operand, startIndices shapes.Shape, dims GatherDimensionNumbers, sliceSizes []int) (output shapes.Shape, err error) {
	if len(sliceSizes) != operand.Rank() {
		return shapes.Invalid(), errors.Errorf("slice_sizes must have one value per operand axis, got %d values for operand %s", len(sliceSizes), operand)
	}
	collapsed, err := verifyGatherDims(operand, startIndices, dims)
	if err != nil {
		return shapes.Invalid(), err
	}
	for axis, sliceSize := range sliceSizes {
		if sliceSize < 0 {
			return shapes.Invalid(), errors.Errorf("slice size %d for axis %d is negative", sliceSize, axis)
		}
		if size, isStatic := operand.Dimensions[axis].Size(); isStatic && sliceSize > size {
			return shapes.Invalid(), errors.Errorf("slice size %d for axis %d is larger than the corresponding extent of operand %s", sliceSize, axis, operand)
		}
		if collapsed.Has(axis) && sliceSize > 1 {
			return shapes.Invalid(), errors.Errorf("collapsed slice axis %d must have slice size at most 1, got %d", axis, sliceSize)
		}
	}
	getSliceDim := func(axis int) shapes.Dim {
		return shapes.Static(sliceSizes[axis])
	}
	return gatherOutput(operand, startIndices, dims, getSliceDim)
}

// DynamicGather is Gather with the slice sizes given as a rank-1 integer
// tensor operand instead of a static attribute. Offset axes become bounded by
// the corresponding operand extent, since the runtime slice sizes cannot
// exceed it.
func DynamicGather(operand, startIndices, sliceSizes shapes.Shape, dims GatherDimensionNumbers) (output shapes.Shape, err error) {
	if !sliceSizes.DType.IsInt() || sliceSizes.Rank() != 1 {
		return shapes.Invalid(), errors.Errorf("dynamic_gather slice sizes must be a rank-1 integer tensor, got %s", sliceSizes)
	}
	if size, isStatic := sliceSizes.Dimensions[0].Size(); isStatic && size != operand.Rank() {
		return shapes.Invalid(), errors.Errorf("dynamic_gather slice sizes must have one value per operand axis, got %s for operand %s", sliceSizes, operand)
	}
	if _, err = verifyGatherDims(operand, startIndices, dims); err != nil {
		return shapes.Invalid(), err
	}
	getSliceDim := func(axis int) shapes.Dim {
		dim := operand.Dimensions[axis]
		if size, isStatic := dim.Size(); isStatic {
			return shapes.Bounded(size)
		}
		return dim
	}
	return gatherOutput(operand, startIndices, dims, getSliceDim)
}

// verifyGatherDims validates the dimension numbers against the operand and
// startIndices shapes and returns the set of collapsed operand axes.
func verifyGatherDims(operand, startIndices shapes.Shape, dims GatherDimensionNumbers) (collapsed utils.Set[int], err error) {
	if operand.IsScalar() {
		return nil, errors.Errorf("gather requires a non-scalar operand, got %s", operand)
	}
	if !startIndices.DType.IsInt() {
		return nil, errors.Errorf("gather start indices must be integers, got %s", startIndices)
	}

	collapsed = utils.MakeSet[int](len(dims.CollapsedSliceDims))
	for i, axis := range dims.CollapsedSliceDims {
		if axis < 0 || axis >= operand.Rank() {
			return nil, errors.Errorf("collapsed slice axis %d is out of range for operand %s", axis, operand)
		}
		if i > 0 && axis <= dims.CollapsedSliceDims[i-1] {
			return nil, errors.Errorf("collapsed_slice_dims %v must be sorted and unique", dims.CollapsedSliceDims)
		}
		collapsed.Insert(axis)
	}

	// Every operand axis is either collapsed or contributes one offset axis.
	if operand.Rank() != len(dims.OffsetDims)+len(dims.CollapsedSliceDims) {
		return nil, errors.Errorf("offset_dims (%d) plus collapsed_slice_dims (%d) must account for every axis of operand %s",
			len(dims.OffsetDims), len(dims.CollapsedSliceDims), operand)
	}

	// IndexVectorDim at startIndices.Rank() means an implicit trailing axis of size 1.
	if dims.IndexVectorDim < 0 || dims.IndexVectorDim > startIndices.Rank() {
		return nil, errors.Errorf("index_vector_dim=%d is out of range for start indices %s", dims.IndexVectorDim, startIndices)
	}
	numIndexedAxes := 1
	if dims.IndexVectorDim < startIndices.Rank() {
		if size, isStatic := startIndices.Dimensions[dims.IndexVectorDim].Size(); isStatic {
			numIndexedAxes = size
		} else {
			numIndexedAxes = len(dims.StartIndexMap)
		}
	}
	if len(dims.StartIndexMap) != numIndexedAxes {
		return nil, errors.Errorf("start_index_map must have one entry per element of the index vector, got %d entries for index vector of size %d",
			len(dims.StartIndexMap), numIndexedAxes)
	}
	seenMapped := utils.MakeSet[int](len(dims.StartIndexMap))
	for i, operandAxis := range dims.StartIndexMap {
		if operandAxis < 0 || operandAxis >= operand.Rank() {
			return nil, errors.Errorf("start_index_map[%d]=%d is out of range for operand %s", i, operandAxis, operand)
		}
		if seenMapped.Has(operandAxis) {
			return nil, errors.Errorf("start_index_map %v lists operand axis %d more than once", dims.StartIndexMap, operandAxis)
		}
		seenMapped.Insert(operandAxis)
	}

	resultRank := gatherResultRank(startIndices, dims)
	for i, axis := range dims.OffsetDims {
		if axis < 0 || axis >= resultRank {
			return nil, errors.Errorf("offset axis %d is out of range for gather output of rank %d", axis, resultRank)
		}
		if i > 0 && axis <= dims.OffsetDims[i-1] {
			return nil, errors.Errorf("offset_dims %v must be sorted and unique", dims.OffsetDims)
		}
	}
	return collapsed, nil
}

func gatherResultRank(startIndices shapes.Shape, dims GatherDimensionNumbers) int {
	batchRank := startIndices.Rank()
	if dims.IndexVectorDim < startIndices.Rank() {
		batchRank--
	}
	return batchRank + len(dims.OffsetDims)
}

// gatherOutput interleaves offset and batch axes into the result shape.
// getSliceDim abstracts over static slice sizes (Gather) and runtime ones
// (DynamicGather).
func gatherOutput(operand, startIndices shapes.Shape, dims GatherDimensionNumbers, getSliceDim func(axis int) shapes.Dim) (output shapes.Shape, err error) {
	// Adjusted slice sizes are the slice sizes with collapsed axes removed.
	// The prefix covers axes up to the largest collapsed one; past it, offset
	// position k maps directly to slice axis k + len(collapsed).
	var adjustedSliceSizePrefix []shapes.Dim
	if len(dims.CollapsedSliceDims) > 0 {
		maxCollapsed := slices.Max(dims.CollapsedSliceDims)
		collapsed := utils.SetWith(dims.CollapsedSliceDims...)
		for axis := 0; axis <= maxCollapsed; axis++ {
			if !collapsed.Has(axis) {
				adjustedSliceSizePrefix = append(adjustedSliceSizePrefix, getSliceDim(axis))
			}
		}
	}
	adjustedSliceDim := func(k int) shapes.Dim {
		if k < len(adjustedSliceSizePrefix) {
			return adjustedSliceSizePrefix[k]
		}
		return getSliceDim(k + len(dims.CollapsedSliceDims))
	}

	resultRank := gatherResultRank(startIndices, dims)
	resultDims := make([]shapes.Dim, resultRank)
	offsetPos := 0
	batchPos := 0
	for i := range resultDims {
		if offsetPos < len(dims.OffsetDims) && dims.OffsetDims[offsetPos] == i {
			resultDims[i] = adjustedSliceDim(offsetPos)
			offsetPos++
			continue
		}
		// Batch axis: taken from startIndices, skipping the index vector axis.
		startIndicesAxis := batchPos
		if batchPos >= dims.IndexVectorDim {
			startIndicesAxis = batchPos + 1
		}
		resultDims[i] = startIndices.Dimensions[startIndicesAxis]
		batchPos++
	}
	return operand.WithDims(resultDims...), nil
}
