package typeinference

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/typeinference/internal/utils"
	"github.com/gomlx/typeinference/types"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/pkg/errors"
)

// ScatterDimensionNumbers describes how a scatter correlates update axes,
// index axes and input axes. It mirrors GatherDimensionNumbers with the roles
// reversed: UpdateWindowDims lists the update axes holding a window into the
// input, InsertedWindowDims the input axes with no matching update axis, and
// ScatterDimsToOperandDims maps index vector entries to input axes.
type ScatterDimensionNumbers struct {
	UpdateWindowDims         []int
	InsertedWindowDims       []int
	ScatterDimsToOperandDims []int
	IndexVectorDim           int
}

// Scatter writes updates into the inputs at positions given by
// scatterIndices, combining the old and new values with the update body. The
// outputs keep the input shapes with the body's result types.
func Scatter(inputs []shapes.Shape, scatterIndices shapes.Shape, updates []shapes.Shape,
	dims ScatterDimensionNumbers, body types.Signature) (outputs []shapes.Shape, err error) {
	if len(inputs) == 0 {
		return nil, errors.Errorf("scatter requires at least one input")
	}
	if len(updates) != len(inputs) {
		return nil, errors.Errorf("scatter requires one update per input, got %d inputs and %d updates", len(inputs), len(updates))
	}
	if !scatterIndices.DType.IsInt() {
		return nil, errors.Errorf("scatter indices must be integers, got %s", scatterIndices)
	}
	base, err := mergeInputShapes(inputs, "scatter inputs")
	if err != nil {
		return nil, err
	}
	updateBase, err := mergeInputShapes(updates, "scatter updates")
	if err != nil {
		return nil, err
	}
	for i, update := range updates {
		if update.DType != inputs[i].DType {
			return nil, errors.Errorf("data types for input %d (%s) and its update (%s) must match", i, inputs[i], update)
		}
	}

	// Every input axis is either windowed from the update or inserted.
	if base.Rank() != len(dims.UpdateWindowDims)+len(dims.InsertedWindowDims) {
		return nil, errors.Errorf("update_window_dims (%d) plus inserted_window_dims (%d) must account for every axis of input %s",
			len(dims.UpdateWindowDims), len(dims.InsertedWindowDims), base)
	}
	inserted := utils.MakeSet[int](len(dims.InsertedWindowDims))
	for i, axis := range dims.InsertedWindowDims {
		if axis < 0 || axis >= base.Rank() {
			return nil, errors.Errorf("inserted window axis %d is out of range for input %s", axis, base)
		}
		if i > 0 && axis <= dims.InsertedWindowDims[i-1] {
			return nil, errors.Errorf("inserted_window_dims %v must be sorted and unique", dims.InsertedWindowDims)
		}
		inserted.Insert(axis)
	}

	if dims.IndexVectorDim < 0 || dims.IndexVectorDim > scatterIndices.Rank() {
		return nil, errors.Errorf("index_vector_dim=%d is out of range for scatter indices %s", dims.IndexVectorDim, scatterIndices)
	}
	numIndexedAxes := 1
	if dims.IndexVectorDim < scatterIndices.Rank() {
		if size, isStatic := scatterIndices.Dimensions[dims.IndexVectorDim].Size(); isStatic {
			numIndexedAxes = size
		} else {
			numIndexedAxes = len(dims.ScatterDimsToOperandDims)
		}
	}
	if len(dims.ScatterDimsToOperandDims) != numIndexedAxes {
		return nil, errors.Errorf("scatter_dims_to_operand_dims must have one entry per element of the index vector, got %d entries for index vector of size %d",
			len(dims.ScatterDimsToOperandDims), numIndexedAxes)
	}
	seenMapped := utils.MakeSet[int](len(dims.ScatterDimsToOperandDims))
	for i, inputAxis := range dims.ScatterDimsToOperandDims {
		if inputAxis < 0 || inputAxis >= base.Rank() {
			return nil, errors.Errorf("scatter_dims_to_operand_dims[%d]=%d is out of range for input %s", i, inputAxis, base)
		}
		if seenMapped.Has(inputAxis) {
			return nil, errors.Errorf("scatter_dims_to_operand_dims %v lists input axis %d more than once", dims.ScatterDimsToOperandDims, inputAxis)
		}
		seenMapped.Insert(inputAxis)
	}

	// Updates hold the index batch axes plus the window axes.
	batchRank := scatterIndices.Rank()
	if dims.IndexVectorDim < scatterIndices.Rank() {
		batchRank--
	}
	if updateBase.Rank() != batchRank+len(dims.UpdateWindowDims) {
		return nil, errors.Errorf("updates must have the scatter indices' batch axes plus the window axes, expected rank %d but updates are %s",
			batchRank+len(dims.UpdateWindowDims), updateBase)
	}
	windowAxes := utils.MakeSet[int](len(dims.UpdateWindowDims))
	for i, axis := range dims.UpdateWindowDims {
		if axis < 0 || axis >= updateBase.Rank() {
			return nil, errors.Errorf("update window axis %d is out of range for updates %s", axis, updateBase)
		}
		if i > 0 && axis <= dims.UpdateWindowDims[i-1] {
			return nil, errors.Errorf("update_window_dims %v must be sorted and unique", dims.UpdateWindowDims)
		}
		windowAxes.Insert(axis)
	}

	// Window extents of the updates cannot exceed the input extents of the
	// non-inserted axes, pairing them in order.
	windowInputAxes := make([]int, 0, len(dims.UpdateWindowDims))
	for axis := range base.Rank() {
		if !inserted.Has(axis) {
			windowInputAxes = append(windowInputAxes, axis)
		}
	}
	for k, updateAxis := range dims.UpdateWindowDims {
		updateSize, updateStatic := updateBase.Dimensions[updateAxis].Size()
		inputSize, inputStatic := base.Dimensions[windowInputAxes[k]].Size()
		if updateStatic && inputStatic && updateSize > inputSize {
			return nil, errors.Errorf("update window axis %d has extent %d, larger than input axis %d of %s",
				updateAxis, updateSize, windowInputAxes[k], base)
		}
	}

	// The update batch axes must match the scatter indices, skipping the
	// index vector axis.
	batchPos := 0
	for axis := range updateBase.Rank() {
		if windowAxes.Has(axis) {
			continue
		}
		indicesAxis := batchPos
		if batchPos >= dims.IndexVectorDim {
			indicesAxis = batchPos + 1
		}
		if !shapes.CompatibleDims(updateBase.Dimensions[axis], scatterIndices.Dimensions[indicesAxis]) {
			return nil, errors.Errorf("update batch axis %d (%s) must match scatter indices axis %d (%s)",
				axis, updateBase.Dimensions[axis], indicesAxis, scatterIndices.Dimensions[indicesAxis])
		}
		batchPos++
	}

	if err = verifyUpdateComputation(inputs, body); err != nil {
		return nil, err
	}
	outputs = make([]shapes.Shape, len(inputs))
	for i, input := range inputs {
		outputs[i] = input.Clone()
		outputs[i].DType = body.Outputs[i].DType
	}
	return outputs, nil
}

// verifyUpdateComputation checks the scatter body: one pair of scalar
// arguments per input (old value, update value) and one scalar result per
// input, all of one data type the input is promotable to.
func verifyUpdateComputation(inputs []shapes.Shape, body types.Signature) error {
	numInputs := len(inputs)
	if len(body.Inputs) != 2*numInputs {
		return errors.Errorf("scatter body must take 2 arguments per input (old and update value), got %d arguments for %d inputs",
			len(body.Inputs), numInputs)
	}
	if len(body.Outputs) != numInputs {
		return errors.Errorf("scatter body must return one value per input, got %d results for %d inputs", len(body.Outputs), numInputs)
	}
	for i := range numInputs {
		dtype := body.Inputs[i].DType
		if !body.Inputs[i].IsScalar() || !body.Inputs[i+numInputs].IsScalar() || !body.Outputs[i].IsScalar() {
			return errors.Errorf("scatter body arguments and results for input %d must be scalars, got %s, %s and %s",
				i, body.Inputs[i], body.Inputs[i+numInputs], body.Outputs[i])
		}
		if body.Inputs[i+numInputs].DType != dtype || body.Outputs[i].DType != dtype {
			return errors.Errorf("scatter body argument %d must use one data type for old value, update and result, got %s, %s and %s",
				i, body.Inputs[i], body.Inputs[i+numInputs], body.Outputs[i])
		}
		if !inputs[i].DType.IsPromotableTo(dtype) {
			return errors.Errorf("input %d with data type %s is not promotable to the scatter body's value type %s",
				i, inputs[i].DType, dtype)
		}
	}
	return nil
}

// SelectAndScatter scatters the source values over the operand, into the
// position each window selected. The select body picks the target element of
// a window and the scatter body combines values landing on the same position.
// The source must have the shape of the windowed operand and the result keeps
// the operand's shape.
func SelectAndScatter(operand, source, initValue shapes.Shape, selectBody, scatterBody types.Signature, window []WindowDimension) (output shapes.Shape, err error) {
	if len(selectBody.Inputs) != 2 || len(selectBody.Outputs) != 1 {
		return shapes.Invalid(), errors.Errorf("select body must take 2 arguments and return 1 value, got %d and %d",
			len(selectBody.Inputs), len(selectBody.Outputs))
	}
	for i, arg := range selectBody.Inputs {
		if !arg.IsScalar() || arg.DType != operand.DType {
			return shapes.Invalid(), errors.Errorf("select body argument %d must be a scalar of the operand's data type %s, got %s",
				i, operand.DType, arg)
		}
	}
	if !selectBody.Outputs[0].IsScalar() || selectBody.Outputs[0].DType != dtypes.Bool {
		return shapes.Invalid(), errors.Errorf("select body must return a scalar boolean, got %s", selectBody.Outputs[0])
	}
	if source.DType != operand.DType {
		return shapes.Invalid(), errors.Errorf("source data type must match the operand, got operand=%s and source=%s", operand, source)
	}
	if source.Rank() != operand.Rank() {
		return shapes.Invalid(), errors.Errorf("source rank must match the operand, got operand=%s and source=%s", operand, source)
	}
	if err = VerifyReducerShape([]shapes.Shape{source}, []shapes.Shape{initValue}, scatterBody); err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "scatter body of select_and_scatter")
	}
	if len(window) != operand.Rank() {
		return shapes.Invalid(), errors.Errorf("select_and_scatter requires one window axis per operand axis, got %d window axes for %s",
			len(window), operand)
	}
	windowedDims, err := WindowOutputDims(operand.Dimensions, window, true)
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "select_and_scatter window over %s", operand)
	}
	for axis, dim := range windowedDims {
		if !shapes.CompatibleDims(source.Dimensions[axis], dim) {
			return shapes.Invalid(), errors.Errorf("source axis %d (%s) must match the windowed operand extent (%s)",
				axis, source.Dimensions[axis], dim)
		}
	}
	return operand.Clone(), nil
}
