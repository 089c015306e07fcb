package typeinference

import (
	"slices"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/typeinference/internal/utils"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/pkg/errors"
)

// Broadcast prepends the given sizes to the operand's shape. All sizes must
// be non-negative.
func Broadcast(operand shapes.Shape, sizes []int) (output shapes.Shape, err error) {
	for _, size := range sizes {
		if size < 0 {
			return shapes.Invalid(), errors.Errorf("negative dimension size %d in broadcast sizes %v", size, sizes)
		}
	}
	dims := make([]shapes.Dim, 0, len(sizes)+operand.Rank())
	for _, size := range sizes {
		dims = append(dims, shapes.Static(size))
	}
	dims = append(dims, operand.Dimensions...)
	return operand.WithDims(dims...), nil
}

// BroadcastInDim verifies that the operand dimensions map into the target
// shape and returns the target shape. Operand axes map to target axes via
// axesMapping; a mapped operand axis must either be statically 1 (it is then
// broadcast) or be compatible with the target dimension. Axes of the target
// not mapped to are filled by broadcasting.
func BroadcastInDim(operand, targetShape shapes.Shape, axesMapping []int) (output shapes.Shape, err error) {
	if operand.DType != targetShape.DType {
		return shapes.Invalid(), errors.Errorf("broadcast_in_dim requires the operand and target to have the same data type, got operand=%s and target=%s",
			operand, targetShape)
	}
	targetRank := targetShape.Rank()
	if targetRank < operand.Rank() {
		return shapes.Invalid(), errors.Errorf("broadcast_in_dim cannot shrink the rank of the operand, got operand=%s and target=%s",
			operand, targetShape)
	}
	if len(axesMapping) != operand.Rank() {
		return shapes.Invalid(), errors.Errorf("broadcast_in_dim requires one axis mapping per operand axis, operand is %s but %d axes were given",
			operand, len(axesMapping))
	}
	usedAxes := utils.MakeSet[int](len(axesMapping))
	previousTarget := -1
	for operandAxis, targetAxis := range axesMapping {
		targetAxis, err = AdjustAxisToRank(targetAxis, targetRank)
		if err != nil {
			return shapes.Invalid(), errors.WithMessagef(err, "invalid mapping of operand axis %d for target %s", operandAxis, targetShape)
		}
		if usedAxes.Has(targetAxis) {
			return shapes.Invalid(), errors.Errorf("broadcast_in_dim requires all target axes to be unique, got duplicate axis %d", targetAxis)
		}
		usedAxes.Insert(targetAxis)
		if targetAxis < previousTarget {
			return shapes.Invalid(), errors.Errorf("broadcast_in_dim axes mapping %v must be sorted", axesMapping)
		}
		previousTarget = targetAxis
		operandDim := operand.Dimensions[operandAxis]
		targetDim := targetShape.Dimensions[targetAxis]
		if size, isStatic := operandDim.Size(); isStatic && size == 1 {
			continue // Broadcast axis.
		}
		if !shapes.CompatibleDims(operandDim, targetDim) {
			return shapes.Invalid(), errors.Errorf("broadcast_in_dim requires mapped operand axes to be 1 or match the target, got operand axis %d (%s) vs target axis %d (%s)",
				operandAxis, operandDim, targetAxis, targetDim)
		}
	}
	return targetShape.Clone(), nil
}

// Pad grows (or with negative edge padding, shrinks) the operand per axis:
// the new extent is low + high + size + interior*max(size-1, 0). The fill
// value must be a scalar of the operand's data type.
func Pad(operand, fill shapes.Shape, paddingLow, paddingHigh, paddingInterior []int) (output shapes.Shape, err error) {
	if !fill.IsScalar() {
		return shapes.Invalid(), errors.Errorf("pad requires a scalar fill value, got %s", fill)
	}
	if fill.DType != operand.DType {
		return shapes.Invalid(), errors.Errorf("pad fill value data type must match the operand, got operand=%s and fill=%s", operand, fill)
	}
	rank := operand.Rank()
	for name, padding := range map[string][]int{
		"edge_padding_low":  paddingLow,
		"edge_padding_high": paddingHigh,
		"interior_padding":  paddingInterior,
	} {
		if len(padding) != rank {
			return shapes.Invalid(), errors.Errorf("pad attribute %s must have one value per axis of %s, got %v", name, operand, padding)
		}
	}
	dims := make([]shapes.Dim, rank)
	for axis := range dims {
		if paddingInterior[axis] < 0 {
			return shapes.Invalid(), errors.Errorf("pad interior padding must be non-negative, got %d for axis %d", paddingInterior[axis], axis)
		}
		low, high, interior := paddingLow[axis], paddingHigh[axis], paddingInterior[axis]
		dims[axis], err = shapes.MapDim(operand.Dimensions[axis], func(size int) int {
			return low + high + size + interior*max(size-1, 0)
		})
		if err != nil {
			return shapes.Invalid(), errors.WithMessagef(err, "padding axis %d of %s with low=%d, high=%d, interior=%d", axis, operand, low, high, interior)
		}
	}
	return operand.WithDims(dims...), nil
}

// Slice takes consecutive strided elements from start (inclusive) to limit
// (exclusive) on each axis. The resulting extent is ceil((limit-start)/stride).
// On dynamic axes the upper-bound check against the operand extent is skipped.
func Slice(operand shapes.Shape, starts, limits, strides []int) (output shapes.Shape, err error) {
	rank := operand.Rank()
	if len(starts) != rank || len(limits) != rank || len(strides) != rank {
		return shapes.Invalid(), errors.Errorf("slice requires starts, limits and strides to have one value per axis of %s, got starts=%v, limits=%v, strides=%v",
			operand, starts, limits, strides)
	}
	dims := make([]shapes.Dim, rank)
	for axis := range dims {
		start, limit, stride := starts[axis], limits[axis], strides[axis]
		if stride <= 0 {
			return shapes.Invalid(), errors.Errorf("slice stride for axis %d must be positive, got %d", axis, stride)
		}
		if start < 0 || start > limit {
			return shapes.Invalid(), errors.Errorf("slice requires 0 <= start <= limit, got start=%d, limit=%d for axis %d", start, limit, axis)
		}
		if size, isStatic := operand.Dimensions[axis].Size(); isStatic && limit > size {
			return shapes.Invalid(), errors.Errorf("slice limit %d is out of range for axis %d of %s", limit, axis, operand)
		}
		dims[axis] = shapes.Static((limit - start + stride - 1) / stride)
	}
	return operand.WithDims(dims...), nil
}

// DynamicSlice extracts a slice whose start position is data-dependent: one
// scalar integer start index per operand axis. The slice sizes are static and
// define the output shape.
func DynamicSlice(operand shapes.Shape, startIndices []shapes.Shape, sliceSizes []int) (output shapes.Shape, err error) {
	rank := operand.Rank()
	if len(startIndices) != rank {
		return shapes.Invalid(), errors.Errorf("dynamic_slice requires one start index per axis of %s, got %d", operand, len(startIndices))
	}
	if err = checkScalarIndices(startIndices, "dynamic_slice start indices"); err != nil {
		return shapes.Invalid(), err
	}
	if len(sliceSizes) != rank {
		return shapes.Invalid(), errors.Errorf("dynamic_slice requires one slice size per axis of %s, got %v", operand, sliceSizes)
	}
	dims := make([]shapes.Dim, rank)
	for axis, size := range sliceSizes {
		if size < 0 {
			return shapes.Invalid(), errors.Errorf("dynamic_slice size for axis %d must be non-negative, got %d", axis, size)
		}
		if dimSize, isStatic := operand.Dimensions[axis].Size(); isStatic && size > dimSize {
			return shapes.Invalid(), errors.Errorf("dynamic_slice size %d is larger than axis %d of %s", size, axis, operand)
		}
		dims[axis] = shapes.Static(size)
	}
	return operand.WithDims(dims...), nil
}

// DynamicUpdateSlice overwrites a region of the operand with the update,
// whose position is given by one scalar integer index per axis. The result
// has the operand's shape.
func DynamicUpdateSlice(operand, update shapes.Shape, startIndices []shapes.Shape) (output shapes.Shape, err error) {
	if update.DType != operand.DType {
		return shapes.Invalid(), errors.Errorf("dynamic_update_slice update data type must match the operand, got operand=%s and update=%s", operand, update)
	}
	rank := operand.Rank()
	if update.Rank() != rank {
		return shapes.Invalid(), errors.Errorf("dynamic_update_slice update rank must match the operand, got operand=%s and update=%s", operand, update)
	}
	if len(startIndices) != rank {
		return shapes.Invalid(), errors.Errorf("dynamic_update_slice requires one start index per axis of %s, got %d", operand, len(startIndices))
	}
	if err = checkScalarIndices(startIndices, "dynamic_update_slice start indices"); err != nil {
		return shapes.Invalid(), err
	}
	for axis := range rank {
		updateSize, updateStatic := update.Dimensions[axis].Size()
		operandSize, operandStatic := operand.Dimensions[axis].Size()
		if updateStatic && operandStatic && updateSize > operandSize {
			return shapes.Invalid(), errors.Errorf("dynamic_update_slice update is larger than the operand at axis %d, got operand=%s and update=%s", axis, operand, update)
		}
	}
	return operand.Clone(), nil
}

// checkScalarIndices verifies that every shape is a scalar integer and that
// they all share one data type.
func checkScalarIndices(indices []shapes.Shape, what string) error {
	for i, index := range indices {
		if !index.IsScalar() || !index.DType.IsInt() {
			return errors.Errorf("%s must be scalar integers, got %s at position %d", what, index, i)
		}
		if index.DType != indices[0].DType {
			return errors.Errorf("%s must all have the same data type, got %s and %s", what, indices[0], index)
		}
	}
	return nil
}

// Concatenate joins the inputs along the given axis, which may be negative to
// count from the end. All other axes must merge, and the concatenation axis
// sums: it stays static only if every part is static, and loses its bound if
// any part is unbounded.
func Concatenate(inputs []shapes.Shape, axis int) (output shapes.Shape, err error) {
	if len(inputs) == 0 {
		return shapes.Invalid(), errors.Errorf("concatenate requires at least one input")
	}
	first := inputs[0]
	rank := first.Rank()
	axis, err = AdjustAxisToRank(axis, rank)
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "concatenate axis for inputs of rank %d", rank)
	}
	concatDim := first.Dimensions[axis]
	output = first.Clone()
	for i, input := range inputs[1:] {
		if input.DType != first.DType {
			return shapes.Invalid(), errors.Errorf("concatenate inputs must have the same data type, got %s and %s", first, input)
		}
		if input.Rank() != rank {
			return shapes.Invalid(), errors.Errorf("concatenate inputs must have the same rank, got %s and %s", first, input)
		}
		for otherAxis := range rank {
			if otherAxis == axis {
				continue
			}
			output.Dimensions[otherAxis], err = shapes.MergeDim(output.Dimensions[otherAxis], input.Dimensions[otherAxis])
			if err != nil {
				return shapes.Invalid(), errors.WithMessagef(err, "concatenate input %d disagrees at axis %d", i+1, otherAxis)
			}
		}
		concatDim = addDims(concatDim, input.Dimensions[axis])
	}
	output.Dimensions[axis] = concatDim
	return output, nil
}

// addDims sums two extents: static only when both are static, unbounded when
// either is, otherwise bounded by the sum of the bounds.
func addDims(a, b shapes.Dim) shapes.Dim {
	aSize, aStatic := a.Size()
	bSize, bStatic := b.Size()
	if aStatic && bStatic {
		return shapes.Static(aSize + bSize)
	}
	aBound, aHasBound := a.Bound()
	bBound, bHasBound := b.Bound()
	if aHasBound && bHasBound {
		return shapes.Bounded(aBound + bBound)
	}
	return shapes.Unbounded()
}

// Transpose permutes the operand's axes: axis i of the result takes axis
// permutation[i] of the operand.
func Transpose(operand shapes.Shape, permutation []int) (output shapes.Shape, err error) {
	rank := operand.Rank()
	if len(permutation) != rank {
		return shapes.Invalid(), errors.Errorf("transpose requires all axes of the permutation to be defined, operand has shape %s, but %d values were given",
			operand, len(permutation))
	}
	if rank == 0 {
		return operand.Clone(), nil
	}
	sorted := slices.Clone(permutation)
	slices.Sort(sorted)
	for i, srcAxis := range sorted {
		if srcAxis < 0 || srcAxis >= rank {
			return shapes.Invalid(), errors.Errorf("invalid permutation axis %d for transpose of %s, it must be within the range of its rank", srcAxis, operand)
		}
		if i > 0 && srcAxis == sorted[i-1] {
			return shapes.Invalid(), errors.Errorf("invalid permutation %v for transpose of %s, each axis must appear exactly once", permutation, operand)
		}
	}
	output = operand.Clone()
	for axis := range output.Dimensions {
		output.Dimensions[axis] = operand.Dimensions[permutation[axis]]
	}
	return output, nil
}

// Reverse flips the operand along the given axes, which must be valid and
// unique. The shape is unchanged.
func Reverse(operand shapes.Shape, axes []int) (output shapes.Shape, err error) {
	seen := utils.MakeSet[int](len(axes))
	for _, axis := range axes {
		adjusted, err := AdjustAxisToRank(axis, operand.Rank())
		if err != nil {
			return shapes.Invalid(), errors.WithMessagef(err, "reverse axis for %s", operand)
		}
		if seen.Has(adjusted) {
			return shapes.Invalid(), errors.Errorf("reverse axis %d appears more than once in %v", axis, axes)
		}
		seen.Insert(adjusted)
	}
	return operand.Clone(), nil
}

// Reshape reinterprets the operand with new static dimensions. When the
// operand is fully static the element counts must match; with dynamic axes
// the count check is skipped.
func Reshape(operand shapes.Shape, newDims []int) (output shapes.Shape, err error) {
	newCount := 1
	for _, dim := range newDims {
		if dim < 0 {
			return shapes.Invalid(), errors.Errorf("negative dimension size %d in reshape to %v", dim, newDims)
		}
		newCount *= dim
	}
	if operand.IsFullyStatic() {
		oldCount := 1
		for _, dim := range operand.Dimensions {
			size, _ := dim.Size()
			oldCount *= size
		}
		if oldCount != newCount {
			return shapes.Invalid(), errors.Errorf("reshape cannot change the number of elements, got %s (%d elements) to %v (%d elements)",
				operand, oldCount, newDims, newCount)
		}
	}
	dims := make([]shapes.Dim, len(newDims))
	for i, dim := range newDims {
		dims[i] = shapes.Static(dim)
	}
	return operand.WithDims(dims...), nil
}

// SetDimensionSize declares the runtime size of one axis: the size operand is
// a scalar integer and the edited axis becomes bounded by its former static
// extent. An already bounded axis keeps its bound; an unbounded axis cannot
// be given one this way.
func SetDimensionSize(operand, size shapes.Shape, axis int) (output shapes.Shape, err error) {
	if !size.IsScalar() || !size.DType.IsInt() {
		return shapes.Invalid(), errors.Errorf("set_dimension_size requires a scalar integer size, got %s", size)
	}
	axis, err = AdjustAxisToRank(axis, operand.Rank())
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "set_dimension_size axis for %s", operand)
	}
	output = operand.Clone()
	dim := output.Dimensions[axis]
	if extent, isStatic := dim.Size(); isStatic {
		output.Dimensions[axis] = shapes.Bounded(extent)
	} else if dim.IsUnbounded() {
		return shapes.Invalid(), errors.Errorf("set_dimension_size requires a static or bounded axis, axis %d of %s is unbounded", axis, operand)
	}
	return output, nil
}

// GetDimensionSize returns the runtime size of one axis as an Int32 scalar.
func GetDimensionSize(operand shapes.Shape, axis int) (output shapes.Shape, err error) {
	if _, err = AdjustAxisToRank(axis, operand.Rank()); err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "get_dimension_size axis for %s", operand)
	}
	return shapes.Make(dtypes.Int32), nil
}
