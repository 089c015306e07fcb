package typeinference

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/typeinference/internal/utils"
	"github.com/gomlx/typeinference/types"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/pkg/errors"
)

// VerifyReducerShape checks a reduction body against the inputs and initial
// values it will fold. For N inputs the body must take 2*N scalar arguments,
// the accumulators first and then one element per input, and return N scalar
// accumulators. Each input's data type must be promotable to the matching
// accumulator type, and each initial value a scalar of it.
func VerifyReducerShape(inputs, initValues []shapes.Shape, body types.Signature) error {
	numInputs := len(inputs)
	if len(initValues) != numInputs {
		return errors.Errorf("reduction requires one initial value per input, got %d inputs and %d initial values", numInputs, len(initValues))
	}
	if len(body.Inputs) != 2*numInputs {
		return errors.Errorf("reduction body must take 2 arguments per input (accumulator and element), got %d arguments for %d inputs",
			len(body.Inputs), numInputs)
	}
	if len(body.Outputs) != numInputs {
		return errors.Errorf("reduction body must return one accumulator per input, got %d results for %d inputs",
			len(body.Outputs), numInputs)
	}
	for i := range numInputs {
		accumulator := body.Inputs[i]
		element := body.Inputs[i+numInputs]
		result := body.Outputs[i]
		if !accumulator.IsScalar() {
			return errors.Errorf("reduction body argument %d (accumulator) must be a scalar, got %s", i, accumulator)
		}
		if !element.IsScalar() {
			return errors.Errorf("reduction body argument %d (element) must be a scalar, got %s", i+numInputs, element)
		}
		if !result.IsScalar() {
			return errors.Errorf("reduction body result %d must be a scalar, got %s", i, result)
		}
		dtype := accumulator.DType
		if element.DType != dtype || result.DType != dtype {
			return errors.Errorf("reduction body argument %d must use one data type for accumulator, element and result, got %s, %s and %s",
				i, accumulator, element, result)
		}
		if !inputs[i].DType.IsPromotableTo(dtype) {
			return errors.Errorf("input %d with data type %s is not promotable to the reduction body's accumulator type %s",
				i, inputs[i].DType, dtype)
		}
		if !initValues[i].IsScalar() {
			return errors.Errorf("initial value %d must be a scalar, got %s", i, initValues[i])
		}
		if initValues[i].DType != dtype {
			return errors.Errorf("initial value %d has data type %s, but the reduction body's accumulator %d has %s",
				i, initValues[i].DType, i, dtype)
		}
	}
	return nil
}

// mergeInputShapes folds the inputs of a variadic reduction into one common
// shape: all inputs must have the same rank and mergeable extents.
func mergeInputShapes(inputs []shapes.Shape, what string) (base shapes.Shape, err error) {
	if len(inputs) == 0 {
		return shapes.Invalid(), errors.Errorf("at least one value is required for %s", what)
	}
	base = inputs[0].Clone()
	for i, input := range inputs[1:] {
		merged, err := mergeShapes(base, input)
		if err != nil {
			return shapes.Invalid(), errors.WithMessagef(err, "all %s must have compatible shapes, value 0 is %s but value %d is %s",
				what, inputs[0], i+1, input)
		}
		merged.DType = base.DType
		base = merged
	}
	return base, nil
}

// Reduce folds the given axes of each input with the reduction body. The
// outputs drop the reduced axes and take the body's accumulator types.
func Reduce(inputs, initValues []shapes.Shape, body types.Signature, axes []int) (outputs []shapes.Shape, err error) {
	base, err := mergeInputShapes(inputs, "reduce inputs")
	if err != nil {
		return nil, err
	}
	if err = VerifyReducerShape(inputs, initValues, body); err != nil {
		return nil, err
	}
	reducedAxes := utils.MakeSet[int](len(axes))
	for _, axis := range axes {
		adjusted, err := AdjustAxisToRank(axis, base.Rank())
		if err != nil {
			return nil, errors.WithMessagef(err, "reduce axis for inputs of shape %s", base)
		}
		if reducedAxes.Has(adjusted) {
			return nil, errors.Errorf("reduce axis %d appears more than once in %v", axis, axes)
		}
		reducedAxes.Insert(adjusted)
	}
	outputDims := make([]shapes.Dim, 0, base.Rank()-len(axes))
	for axis, dim := range base.Dimensions {
		if !reducedAxes.Has(axis) {
			outputDims = append(outputDims, dim)
		}
	}
	outputs = make([]shapes.Shape, len(inputs))
	for i := range outputs {
		outputs[i] = base.WithDims(outputDims...)
		outputs[i].DType = body.Outputs[i].DType
	}
	return outputs, nil
}

// ReduceWindow folds sliding windows of each input with the reduction body.
// The outputs apply the window geometry to every axis and take the body's
// accumulator types.
func ReduceWindow(inputs, initValues []shapes.Shape, body types.Signature, window []WindowDimension) (outputs []shapes.Shape, err error) {
	base, err := mergeInputShapes(inputs, "reduce_window inputs")
	if err != nil {
		return nil, err
	}
	if err = VerifyReducerShape(inputs, initValues, body); err != nil {
		return nil, err
	}
	if len(window) != base.Rank() {
		return nil, errors.Errorf("reduce_window requires one window axis per input axis, got %d window axes for inputs of shape %s",
			len(window), base)
	}
	outputDims, err := WindowOutputDims(base.Dimensions, window, true)
	if err != nil {
		return nil, errors.WithMessagef(err, "reduce_window over inputs of shape %s", base)
	}
	outputs = make([]shapes.Shape, len(inputs))
	for i := range outputs {
		outputs[i] = base.WithDims(outputDims...)
		outputs[i].DType = body.Outputs[i].DType
	}
	return outputs, nil
}

// Map applies a scalar body elementwise over the operands. The dimensions
// attribute is redundant but must list every axis in order.
func Map(operands []shapes.Shape, dimensions []int, body types.Signature) (output shapes.Shape, err error) {
	base, err := mergeInputShapes(operands, "map operands")
	if err != nil {
		return shapes.Invalid(), err
	}
	if len(dimensions) != base.Rank() {
		return shapes.Invalid(), errors.Errorf("map dimensions must list every axis of the operands, got %v for shape %s", dimensions, base)
	}
	for i, axis := range dimensions {
		if axis != i {
			return shapes.Invalid(), errors.Errorf("map dimensions must be [0, 1, ..., rank-1], got %v", dimensions)
		}
	}
	if len(body.Inputs) != len(operands) {
		return shapes.Invalid(), errors.Errorf("map body must take one argument per operand, got %d arguments for %d operands",
			len(body.Inputs), len(operands))
	}
	if len(body.Outputs) != 1 {
		return shapes.Invalid(), errors.Errorf("map body must return a single value, got %d results", len(body.Outputs))
	}
	for i, arg := range body.Inputs {
		if !arg.IsScalar() {
			return shapes.Invalid(), errors.Errorf("map body argument %d must be a scalar, got %s", i, arg)
		}
		if arg.DType != operands[i].DType {
			return shapes.Invalid(), errors.Errorf("map body argument %d has data type %s, but operand %d has %s",
				i, arg.DType, i, operands[i].DType)
		}
	}
	if !body.Outputs[0].IsScalar() {
		return shapes.Invalid(), errors.Errorf("map body result must be a scalar, got %s", body.Outputs[0])
	}
	output = base.WithDims(base.Dimensions...)
	output.DType = body.Outputs[0].DType
	return output, nil
}

// Sort reorders every input along axis, with the comparator deciding the
// ordering. All inputs are sorted together and must have mergeable
// dimensions; each keeps its own data type. The comparator takes two scalars
// per input and returns a single boolean.
func Sort(inputs []shapes.Shape, axis int, comparator types.Signature) (outputs []shapes.Shape, err error) {
	base, err := mergeInputShapes(inputs, "sort inputs")
	if err != nil {
		return nil, err
	}
	if _, err = AdjustAxisToRank(axis, base.Rank()); err != nil {
		return nil, errors.WithMessagef(err, "sort dimension for inputs of shape %s", base)
	}
	if len(comparator.Inputs) != 2*len(inputs) {
		return nil, errors.Errorf("sort comparator must take 2 arguments per input, got %d arguments for %d inputs",
			len(comparator.Inputs), len(inputs))
	}
	if len(comparator.Outputs) != 1 {
		return nil, errors.Errorf("sort comparator must return a single value, got %d results", len(comparator.Outputs))
	}
	if result := comparator.Outputs[0]; !result.IsScalar() || result.DType != dtypes.Bool {
		return nil, errors.Errorf("sort comparator must return a boolean scalar, got %s", result)
	}
	for i, input := range inputs {
		for _, arg := range comparator.Inputs[2*i : 2*i+2] {
			if !arg.IsScalar() {
				return nil, errors.Errorf("sort comparator arguments for input %d must be scalars, got %s", i, arg)
			}
			if arg.DType != input.DType {
				return nil, errors.Errorf("sort comparator arguments for input %d must have data type %s, got %s",
					i, input.DType, arg.DType)
			}
		}
	}
	outputs = make([]shapes.Shape, len(inputs))
	for i := range outputs {
		outputs[i] = base.WithDims(base.Dimensions...)
		outputs[i].DType = inputs[i].DType
	}
	return outputs, nil
}
