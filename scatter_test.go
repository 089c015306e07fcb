package typeinference

import (
	"testing"

	"github.com/gomlx/typeinference/types"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScatter(t *testing.T) {
	input := S(F32, 10, 5)
	indices := S(I32, 3, 1)
	updates := S(F32, 3, 5)
	dims := ScatterDimensionNumbers{
		UpdateWindowDims:         []int{1},
		InsertedWindowDims:       []int{0},
		ScatterDimsToOperandDims: []int{0},
		IndexVectorDim:           1,
	}
	body := addReducer(F32)

	outputs := must1(Scatter([]shapes.Shape{input}, indices, []shapes.Shape{updates}, dims, body))
	require.Len(t, outputs, 1)
	assert.True(t, input.Equal(outputs[0]))

	// Variadic form: one update per input, outputs in the same order.
	multiBody := types.Signature{
		Inputs:  []shapes.Shape{S(F32), S(I32), S(F32), S(I32)},
		Outputs: []shapes.Shape{S(F32), S(I32)},
	}
	outputs = must1(Scatter(
		[]shapes.Shape{input, S(I32, 10, 5)}, indices,
		[]shapes.Shape{updates, S(I32, 3, 5)}, dims, multiBody))
	require.Len(t, outputs, 2)
	assert.True(t, input.Equal(outputs[0]))
	assert.True(t, S(I32, 10, 5).Equal(outputs[1]))
}

func TestScatterErrors(t *testing.T) {
	input := S(F32, 10, 5)
	indices := S(I32, 3, 1)
	dims := ScatterDimensionNumbers{
		UpdateWindowDims:         []int{1},
		InsertedWindowDims:       []int{0},
		ScatterDimsToOperandDims: []int{0},
		IndexVectorDim:           1,
	}
	body := addReducer(F32)
	scatter := func(updates shapes.Shape) error {
		_, err := Scatter([]shapes.Shape{input}, indices, []shapes.Shape{updates}, dims, body)
		return err
	}

	require.ErrorContains(t, scatter(S(F32, 3, 5, 1)),
		"batch axes plus the window axes")
	require.ErrorContains(t, scatter(S(F32, 3, 6)),
		"larger than input axis 1")
	require.ErrorContains(t, scatter(S(F32, 4, 5)),
		"must match scatter indices axis")
	require.ErrorContains(t, scatter(S(F64, 3, 5)),
		"must match")

	_, err := Scatter([]shapes.Shape{input}, S(F32, 3, 1), []shapes.Shape{S(F32, 3, 5)}, dims, body)
	require.ErrorContains(t, err, "indices must be integers")

	_, err = Scatter([]shapes.Shape{input}, indices, nil, dims, body)
	require.ErrorContains(t, err, "one update per input")

	badDims := dims
	badDims.ScatterDimsToOperandDims = []int{0, 1}
	_, err = Scatter([]shapes.Shape{input}, indices, []shapes.Shape{S(F32, 3, 5)}, badDims, body)
	require.ErrorContains(t, err, "one entry per element of the index vector")

	badDims = dims
	badDims.InsertedWindowDims = nil
	_, err = Scatter([]shapes.Shape{input}, indices, []shapes.Shape{S(F32, 3, 5)}, badDims, body)
	require.ErrorContains(t, err, "must account for every axis")

	badBody := types.Signature{
		Inputs:  []shapes.Shape{S(F32), S(F32)},
		Outputs: []shapes.Shape{S(F32), S(F32)},
	}
	_, err = Scatter([]shapes.Shape{input}, indices, []shapes.Shape{S(F32, 3, 5)}, dims, badBody)
	require.ErrorContains(t, err, "one value per input")
}

func TestSelectAndScatter(t *testing.T) {
	operand := S(F32, 10, 10)
	source := S(F32, 5, 5)
	selectBody := types.Signature{
		Inputs:  []shapes.Shape{S(F32), S(F32)},
		Outputs: []shapes.Shape{S(Bool)},
	}
	scatterBody := addReducer(F32)
	window := must1(VerifyWindowAttributes([]int{2, 2}, []int{2, 2}, nil, nil, nil, nil))

	output := must1(SelectAndScatter(operand, source, S(F32), selectBody, scatterBody, window))
	assert.True(t, operand.Equal(output))

	// The source must have the windowed operand's shape.
	_, err := SelectAndScatter(operand, S(F32, 4, 5), S(F32), selectBody, scatterBody, window)
	require.ErrorContains(t, err, "must match the windowed operand extent")

	_, err = SelectAndScatter(operand, S(F32, 5), S(F32), selectBody, scatterBody, window)
	require.ErrorContains(t, err, "source rank must match")

	_, err = SelectAndScatter(operand, S(F64, 5, 5), S(F64), selectBody, scatterBody, window)
	require.ErrorContains(t, err, "source data type must match")

	// The select body must return a scalar boolean.
	badSelect := types.Signature{
		Inputs:  []shapes.Shape{S(F32), S(F32)},
		Outputs: []shapes.Shape{S(F32)},
	}
	_, err = SelectAndScatter(operand, source, S(F32), badSelect, scatterBody, window)
	require.ErrorContains(t, err, "scalar boolean")

	// The initial value feeds the scatter body's accumulator.
	_, err = SelectAndScatter(operand, source, S(F64), selectBody, scatterBody, window)
	require.ErrorContains(t, err, "scatter body of select_and_scatter")
}
