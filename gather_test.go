package typeinference

import (
	"testing"

	"github.com/gomlx/typeinference/types/shapes"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// shapeCmp lets go-cmp compare shapes through their Equal method, so the
// diffs print the shape strings instead of the internals.
var shapeCmp = cmp.Comparer(func(a, b shapes.Shape) bool { return a.Equal(b) })

func TestGather(t *testing.T) {
	testCases := []struct {
		name         string
		operand      shapes.Shape
		startIndices shapes.Shape
		dims         GatherDimensionNumbers
		sliceSizes   []int
		want         shapes.Shape
	}{
		{
			name:         "row lookup",
			operand:      S(F32, 8, 16),
			startIndices: S(I32, 5, 1),
			dims: GatherDimensionNumbers{
				OffsetDims:         []int{1},
				CollapsedSliceDims: []int{0},
				StartIndexMap:      []int{0},
				IndexVectorDim:     1,
			},
			sliceSizes: []int{1, 16},
			want:       S(F32, 5, 16),
		},
		{
			name:         "collapsed leading axes",
			operand:      S(F32, 10, 20, 8),
			startIndices: S(I32, 1, 5, 2),
			dims: GatherDimensionNumbers{
				OffsetDims:         []int{2},
				CollapsedSliceDims: []int{0, 1},
				StartIndexMap:      []int{0, 1},
				IndexVectorDim:     2,
			},
			sliceSizes: []int{1, 1, 8},
			want:       S(F32, 1, 5, 8),
		},
		{
			name:         "implicit trailing index vector",
			operand:      S(F32, 3, 4, 5),
			startIndices: S(I64, 6),
			dims: GatherDimensionNumbers{
				OffsetDims:     []int{0, 2, 3},
				StartIndexMap:  []int{1},
				IndexVectorDim: 1,
			},
			sliceSizes: []int{2, 4, 5},
			want:       S(F32, 2, 6, 4, 5),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Gather(tc.operand, tc.startIndices, tc.dims, tc.sliceSizes)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got, shapeCmp); diff != "" {
				t.Errorf("gather output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGatherErrors(t *testing.T) {
	operand := S(F32, 8, 16)
	startIndices := S(I32, 5, 1)
	dims := GatherDimensionNumbers{
		OffsetDims:         []int{1},
		CollapsedSliceDims: []int{0},
		StartIndexMap:      []int{0},
		IndexVectorDim:     1,
	}

	_, err := Gather(operand, startIndices, dims, []int{1})
	require.ErrorContains(t, err, "one value per operand axis")

	_, err = Gather(operand, startIndices, dims, []int{1, 17})
	require.ErrorContains(t, err, "larger than the corresponding extent")

	_, err = Gather(operand, startIndices, dims, []int{2, 16})
	require.ErrorContains(t, err, "collapsed slice axis 0 must have slice size at most 1")

	_, err = Gather(S(F32), startIndices, dims, nil)
	require.ErrorContains(t, err, "non-scalar operand")

	_, err = Gather(operand, S(F32, 5, 1), dims, []int{1, 16})
	require.ErrorContains(t, err, "start indices must be integers")

	badDims := dims
	badDims.IndexVectorDim = 3
	_, err = Gather(operand, startIndices, badDims, []int{1, 16})
	require.ErrorContains(t, err, "index_vector_dim=3 is out of range")

	badDims = dims
	badDims.StartIndexMap = []int{0, 1}
	_, err = Gather(operand, startIndices, badDims, []int{1, 16})
	require.ErrorContains(t, err, "one entry per element of the index vector")

	badDims = dims
	badDims.OffsetDims = []int{1, 1}
	badDims.CollapsedSliceDims = nil
	_, err = Gather(operand, startIndices, badDims, []int{1, 16})
	require.ErrorContains(t, err, "must be sorted and unique")
}

func TestDynamicGather(t *testing.T) {
	operand := S(F32, 8, 16)
	startIndices := S(I32, 5, 1)
	dims := GatherDimensionNumbers{
		OffsetDims:         []int{1},
		CollapsedSliceDims: []int{0},
		StartIndexMap:      []int{0},
		IndexVectorDim:     1,
	}

	// Offset axes become bounded by the operand extents: the runtime slice
	// sizes cannot exceed them.
	got := must1(DynamicGather(operand, startIndices, S(I32, 2), dims))
	want := SD(F32, shapes.Static(5), shapes.Bounded(16))
	if diff := cmp.Diff(want, got, shapeCmp); diff != "" {
		t.Errorf("dynamic_gather output mismatch (-want +got):\n%s", diff)
	}

	// A dynamic operand axis passes through unchanged.
	got = must1(DynamicGather(SD(F32, shapes.Static(8), shapes.Unbounded()), startIndices, S(I32, 2), dims))
	want = SD(F32, shapes.Static(5), shapes.Unbounded())
	if diff := cmp.Diff(want, got, shapeCmp); diff != "" {
		t.Errorf("dynamic_gather output mismatch (-want +got):\n%s", diff)
	}

	_, err := DynamicGather(operand, startIndices, S(F32, 2), dims)
	require.ErrorContains(t, err, "rank-1 integer tensor")

	_, err = DynamicGather(operand, startIndices, S(I32, 3), dims)
	require.ErrorContains(t, err, "one value per operand axis")
}
