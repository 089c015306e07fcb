package typeinference

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/typeinference/internal/optypes"
	"github.com/gomlx/typeinference/types"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Aliases
var (
	Bool = dtypes.Bool
	I8   = dtypes.Int8
	I32  = dtypes.Int32
	I64  = dtypes.Int64
	U32  = dtypes.Uint32
	F32  = dtypes.Float32
	F64  = dtypes.Float64
	C64  = dtypes.Complex64
	C128 = dtypes.Complex128

	S  = shapes.Make
	SD = shapes.MakeDyn
)

// must1 panics if there is an error.
func must1[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

func TestInfer(t *testing.T) {
	results, err := Infer(Op{Type: optypes.Add, Operands: []shapes.Shape{S(F32, 2, 3), S(F32, 2, 3)}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, S(F32, 2, 3).Equal(results[0]))

	// Attributes can come as plain slices or as dense buffers.
	results, err = Infer(Op{
		Type:     optypes.Slice,
		Operands: []shapes.Shape{S(F32, 3, 4)},
		Attributes: map[string]any{
			"start_indices": types.DenseInts([]int{2}, 1, 0),
			"limit_indices": types.DenseInts([]int{2}, 2, 4),
			"strides":       []int{1, 2},
		},
	})
	require.NoError(t, err)
	assert.True(t, S(F32, 1, 2).Equal(results[0]))

	// Enum attributes accept their string form; compare_type defaults from
	// the operand data type.
	results, err = Infer(Op{
		Type:       optypes.Compare,
		Operands:   []shapes.Shape{S(F32, 4), S(F32, 4)},
		Attributes: map[string]any{"comparison_direction": "GE"},
	})
	require.NoError(t, err)
	assert.True(t, S(Bool, 4).Equal(results[0]))

	// Integer operands compare as signed, unsigned as unsigned, without an
	// explicit compare_type.
	results, err = Infer(Op{
		Type:       optypes.Compare,
		Operands:   []shapes.Shape{S(I32, 4), S(I32, 4)},
		Attributes: map[string]any{"comparison_direction": "EQ"},
	})
	require.NoError(t, err)
	assert.True(t, S(Bool, 4).Equal(results[0]))

	results, err = Infer(Op{
		Type:       optypes.Compare,
		Operands:   []shapes.Shape{S(U32, 2), S(U32, 2)},
		Attributes: map[string]any{"comparison_direction": "LT"},
	})
	require.NoError(t, err)
	assert.True(t, S(Bool, 2).Equal(results[0]))

	// An explicit compare_type still wins over the derived default.
	_, err = Infer(Op{
		Type:       optypes.Compare,
		Operands:   []shapes.Shape{S(I32, 4), S(I32, 4)},
		Attributes: map[string]any{"comparison_direction": "EQ", "compare_type": "CompareFloat"},
	})
	require.ErrorContains(t, err, "not a float or complex")

	// A missing required attribute is a user error, not a panic.
	_, err = Infer(Op{Type: optypes.Transpose, Operands: []shapes.Shape{S(F32, 2, 3)}})
	require.ErrorContains(t, err, `attribute "permutation" is required`)

	// Multi-result operations return one shape per result.
	results, err = Infer(Op{
		Type:       optypes.BatchNormTraining,
		Operands:   []shapes.Shape{S(F32, 2, 3, 4), S(F32, 4), S(F32, 4)},
		Attributes: map[string]any{"feature_index": 2},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, S(F32, 2, 3, 4).Equal(results[0]))
	assert.True(t, S(F32, 4).Equal(results[1]))
	assert.True(t, S(F32, 4).Equal(results[2]))

	// Sort defaults to the last axis when the dimension attribute is absent.
	results, err = Infer(Op{
		Type:     optypes.Sort,
		Operands: []shapes.Shape{S(F32, 3, 4)},
		Body: &types.Signature{
			Inputs:  []shapes.Shape{S(F32), S(F32)},
			Outputs: []shapes.Shape{S(Bool)},
		},
	})
	require.NoError(t, err)
	assert.True(t, S(F32, 3, 4).Equal(results[0]))
}

func TestInferErrorTagging(t *testing.T) {
	op := Op{
		Type:     optypes.Add,
		Operands: []shapes.Shape{S(F32, 2), S(F64, 2)},
		Loc:      &types.Location{File: "model.mlir", Line: 10, Col: 4},
	}
	_, err := Infer(op)
	require.ErrorContains(t, err, "inferring types for add at model.mlir:10:4")

	op.Loc = nil
	_, err = Infer(op)
	require.ErrorContains(t, err, "inferring types for add")
}

func TestInferPanics(t *testing.T) {
	// Wrong operand counts are caller bugs.
	require.Panics(t, func() {
		_, _ = Infer(Op{Type: optypes.Abs})
	})
	require.Panics(t, func() {
		_, _ = Infer(Op{Type: optypes.Reduce, Operands: []shapes.Shape{S(F32, 2)}})
	})
	require.Panics(t, func() {
		_, _ = Infer(Op{Type: optypes.Reduce, Operands: []shapes.Shape{S(F32, 2), S(F32)}, Attributes: map[string]any{"dimensions": []int{0}}})
	})
	// So are operation kinds outside the closed set.
	require.Panics(t, func() {
		_, _ = Infer(Op{Type: optypes.Last})
	})
}

func TestTokenOps(t *testing.T) {
	results := must1(Infer(Op{Type: optypes.CreateToken}))
	require.Len(t, results, 1)
	assert.True(t, results[0].Token)

	results = must1(Infer(Op{Type: optypes.AfterAll, Operands: []shapes.Shape{shapes.MakeToken(), shapes.MakeToken()}}))
	assert.True(t, results[0].Token)

	_, err := Infer(Op{Type: optypes.AfterAll, Operands: []shapes.Shape{shapes.MakeToken(), S(F32, 2)}})
	require.ErrorContains(t, err, "after_all requires token operands")

	results = must1(Infer(Op{Type: optypes.OptimizationBarrier, Operands: []shapes.Shape{S(F32, 2), shapes.MakeToken()}}))
	require.Len(t, results, 2)
	assert.True(t, S(F32, 2).Equal(results[0]))
	assert.True(t, results[1].Token)
}
