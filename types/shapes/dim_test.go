package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimAccessors(t *testing.T) {
	d := Static(8)
	size, ok := d.Size()
	require.True(t, ok)
	require.Equal(t, 8, size)
	bound, ok := d.Bound()
	require.True(t, ok)
	require.Equal(t, 8, bound)
	assert.Equal(t, "8", d.String())

	d = Bounded(16)
	_, ok = d.Size()
	require.False(t, ok)
	bound, ok = d.Bound()
	require.True(t, ok)
	require.Equal(t, 16, bound)
	assert.True(t, d.IsDynamic())
	assert.Equal(t, "<=16", d.String())

	d = Unbounded()
	_, ok = d.Size()
	require.False(t, ok)
	_, ok = d.Bound()
	require.False(t, ok)
	assert.Equal(t, "?", d.String())

	assert.Panics(t, func() { Static(-1) })
	assert.Panics(t, func() { Bounded(-3) })
}

func TestMergeDim(t *testing.T) {
	testCases := []struct {
		name    string
		a, b    Dim
		want    Dim
		wantErr bool
	}{
		{name: "static match", a: Static(4), b: Static(4), want: Static(4)},
		{name: "static mismatch", a: Static(4), b: Static(5), wantErr: true},
		{name: "static wins over unbounded", a: Static(4), b: Unbounded(), want: Static(4)},
		{name: "static within bound", a: Static(4), b: Bounded(8), want: Static(4)},
		{name: "static at bound", a: Static(8), b: Bounded(8), want: Static(8)},
		{name: "static exceeds bound", a: Static(9), b: Bounded(8), wantErr: true},
		{name: "bounded takes min", a: Bounded(8), b: Bounded(5), want: Bounded(5)},
		{name: "bounded wins over unbounded", a: Bounded(8), b: Unbounded(), want: Bounded(8)},
		{name: "both unbounded", a: Unbounded(), b: Unbounded(), want: Unbounded()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MergeDim(tc.a, tc.b)
			swapped, swappedErr := MergeDim(tc.b, tc.a)
			if tc.wantErr {
				require.Error(t, err)
				require.Error(t, swappedErr, "merge must fail regardless of argument order")
				return
			}
			require.NoError(t, err)
			require.NoError(t, swappedErr)
			assert.True(t, tc.want.Equal(got), "MergeDim(%s, %s)=%s, want %s", tc.a, tc.b, got, tc.want)
			assert.True(t, got.Equal(swapped), "merge must be commutative, got %s and %s", got, swapped)
		})
	}
}

func TestMergeDimAssociative(t *testing.T) {
	dims := []Dim{Static(4), Bounded(8), Bounded(6), Unbounded()}
	for _, a := range dims {
		for _, b := range dims {
			for _, c := range dims {
				left, err1 := MergeDim(a, b)
				if err1 == nil {
					left, err1 = MergeDim(left, c)
				}
				right, err2 := MergeDim(b, c)
				if err2 == nil {
					right, err2 = MergeDim(a, right)
				}
				require.Equal(t, err1 == nil, err2 == nil, "associativity of (%s, %s, %s)", a, b, c)
				if err1 == nil {
					assert.True(t, left.Equal(right), "merge of (%s, %s, %s) gave %s and %s", a, b, c, left, right)
				}
			}
		}
	}
}

func TestMapDim(t *testing.T) {
	double := func(n int) int { return 2 * n }
	got, err := MapDim(Static(3), double)
	require.NoError(t, err)
	assert.True(t, Static(6).Equal(got))

	got, err = MapDim(Bounded(3), double)
	require.NoError(t, err)
	assert.True(t, Bounded(6).Equal(got))

	got, err = MapDim(Unbounded(), double)
	require.NoError(t, err)
	assert.True(t, Unbounded().Equal(got))

	// Negative static results are errors, negative bounds clamp to zero.
	shrink := func(n int) int { return n - 10 }
	_, err = MapDim(Static(3), shrink)
	require.Error(t, err)
	got, err = MapDim(Bounded(3), shrink)
	require.NoError(t, err)
	assert.True(t, Bounded(0).Equal(got))
}
