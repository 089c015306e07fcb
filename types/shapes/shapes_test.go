package shapes

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeString(t *testing.T) {
	assert.Equal(t, "(Float32)[2 3]", Make(dtypes.Float32, 2, 3).String())
	assert.Equal(t, "(Int32)", Make(dtypes.Int32).String())
	assert.Equal(t, "(Float32)[2 <=8 ?]", MakeDyn(dtypes.Float32, Static(2), Bounded(8), Unbounded()).String())
	assert.Equal(t, "(Float32)[*]", MakeUnranked(dtypes.Float32).String())
	assert.Equal(t, "token", MakeToken().String())

	quantized := must.M1(MakeQuantized(dtypes.Int8, Quantized{ExpressedDType: dtypes.Float32, Scale: 0.5}, 4))
	assert.Equal(t, "(quant Int8:Float32)[4]", quantized.String())
}

func TestMakeQuantized(t *testing.T) {
	_, err := MakeQuantized(dtypes.Float32, Quantized{ExpressedDType: dtypes.Float32, Scale: 1}, 4)
	require.Error(t, err, "float storage type must be rejected")
	_, err = MakeQuantized(dtypes.Int8, Quantized{ExpressedDType: dtypes.Int32, Scale: 1}, 4)
	require.Error(t, err, "integer expressed type must be rejected")
}

func TestShapePredicates(t *testing.T) {
	s := MakeDyn(dtypes.Float32, Static(2), Bounded(8))
	assert.True(t, s.Ok())
	assert.Equal(t, 2, s.Rank())
	assert.False(t, s.IsScalar())
	assert.False(t, s.IsFullyStatic())
	assert.True(t, Make(dtypes.Float32, 2, 8).IsFullyStatic())
	assert.True(t, Make(dtypes.Float32).IsScalar())
	assert.False(t, MakeUnranked(dtypes.Float32).IsScalar())
	assert.False(t, Invalid().Ok())
}

func TestShapeDim(t *testing.T) {
	s := Make(dtypes.Float32, 2, 3, 4)
	assert.True(t, Static(4).Equal(s.Dim(-1)))
	assert.True(t, Static(2).Equal(s.Dim(0)))
	assert.Panics(t, func() { s.Dim(3) })
}

func TestWithDims(t *testing.T) {
	s := Make(dtypes.Float32, 2, 3)
	s.Encoding = "csr"
	derived := s.WithDims(Static(5))
	assert.Equal(t, "csr", derived.Encoding, "encoding must carry over to derived shapes")
	assert.Equal(t, dtypes.Float32, derived.DType)
	require.Equal(t, 1, derived.Rank())
	assert.True(t, Static(5).Equal(derived.Dimensions[0]))
	// The source shape is unchanged.
	assert.Equal(t, 2, s.Rank())

	asInt := s.WithDType(dtypes.Int32)
	assert.Equal(t, dtypes.Int32, asInt.DType)
}

func TestCompatible(t *testing.T) {
	testCases := []struct {
		name   string
		s1, s2 Shape
		want   bool
	}{
		{"equal static", Make(dtypes.Float32, 2, 3), Make(dtypes.Float32, 2, 3), true},
		{"static mismatch", Make(dtypes.Float32, 2, 3), Make(dtypes.Float32, 2, 4), false},
		{"rank mismatch", Make(dtypes.Float32, 2), Make(dtypes.Float32, 2, 3), false},
		{"dtype mismatch", Make(dtypes.Float32, 2), Make(dtypes.Int32, 2), false},
		{"unranked is permissive", MakeUnranked(dtypes.Float32), Make(dtypes.Float32, 7, 9), true},
		{"unbounded axis", MakeDyn(dtypes.Float32, Unbounded()), Make(dtypes.Float32, 5), true},
		{"static within bound", MakeDyn(dtypes.Float32, Bounded(8)), Make(dtypes.Float32, 5), true},
		{"static exceeds bound", MakeDyn(dtypes.Float32, Bounded(4)), Make(dtypes.Float32, 5), false},
		{"two bounds", MakeDyn(dtypes.Float32, Bounded(4)), MakeDyn(dtypes.Float32, Bounded(9)), true},
		{"tokens", MakeToken(), MakeToken(), true},
		{"token vs tensor", MakeToken(), Make(dtypes.Float32), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Compatible(tc.s1, tc.s2, false))
			assert.Equal(t, tc.want, Compatible(tc.s2, tc.s1, false), "Compatible must be symmetric")
			assert.True(t, Compatible(tc.s1, tc.s1, false), "Compatible must be reflexive")
		})
	}

	// Float widths only match under ignoreFloatPrecision.
	f32 := Make(dtypes.Float32, 2)
	f64 := Make(dtypes.Float64, 2)
	assert.False(t, Compatible(f32, f64, false))
	assert.True(t, Compatible(f32, f64, true))
}

func TestFromAnyValue(t *testing.T) {
	s := must.M1(FromAnyValue(float32(0)))
	assert.True(t, s.Equal(Make(dtypes.Float32)))

	s = must.M1(FromAnyValue([][]int32{{1, 2, 3}, {4, 5, 6}}))
	assert.True(t, s.Equal(Make(dtypes.Int32, 2, 3)))

	_, err := FromAnyValue([][]int32{{1, 2}, {3}})
	require.Error(t, err, "ragged values have no shape")
}
