package typeinference

import (
	"testing"

	"github.com/gomlx/typeinference/types"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyReplicaGroups(t *testing.T) {
	groups := must1(VerifyReplicaGroups(types.DenseInts([]int{1, 4}, 0, 1, 2, 3), false, 0))
	assert.Equal(t, [][]int{{0, 1, 2, 3}}, groups)

	groups = must1(VerifyReplicaGroups(types.DenseInts([]int{2, 2}, 0, 2, 1, 3), true, 2))
	assert.Equal(t, [][]int{{0, 2}, {1, 3}}, groups)

	// Entries of -1 are padding, allowing ragged groups.
	groups = must1(VerifyReplicaGroups(types.DenseInts([]int{2, 3}, 0, 1, -1, 2, 3, 4), false, 0))
	assert.Equal(t, [][]int{{0, 1}, {2, 3, 4}}, groups)

	_, err := VerifyReplicaGroups(nil, false, 0)
	require.ErrorContains(t, err, "replica_groups is required")

	_, err = VerifyReplicaGroups(types.DenseInts([]int{4}, 0, 1, 2, 3), false, 0)
	require.ErrorContains(t, err, "rank-2")

	_, err = VerifyReplicaGroups(types.DenseInts([]int{2, 2}, 0, 1, 1, 2), false, 0)
	require.ErrorContains(t, err, "replica id 1 appears more than once")

	_, err = VerifyReplicaGroups(types.DenseInts([]int{1, 2}, 0, 2), false, 0)
	require.ErrorContains(t, err, "missing id 1")

	_, err = VerifyReplicaGroups(types.DenseInts([]int{1, 2}, 0, -2), false, 0)
	require.ErrorContains(t, err, "invalid replica id -2")

	_, err = VerifyReplicaGroups(types.DenseInts([]int{2, 3}, 0, 1, -1, 2, 3, 4), true, 0)
	require.ErrorContains(t, err, "same size")

	_, err = VerifyReplicaGroups(types.DenseInts([]int{2, 2}, 0, 1, 2, 3), true, 3)
	require.ErrorContains(t, err, "must have 3 ids")
}

func TestCollectiveBroadcast(t *testing.T) {
	output := must1(CollectiveBroadcast(S(F32, 2, 3), types.DenseInts([]int{1, 2}, 0, 1)))
	assert.True(t, S(F32, 2, 3).Equal(output))

	_, err := CollectiveBroadcast(S(F32, 2, 3), nil)
	require.ErrorContains(t, err, "replica_groups is required")
}

func TestAllGather(t *testing.T) {
	groups := types.DenseInts([]int{2, 2}, 0, 1, 2, 3)
	output := must1(AllGather(S(F32, 4, 2), 1, groups))
	assert.True(t, S(F32, 4, 4).Equal(output))

	// The gather axis keeps its dynamism, with the bound scaled.
	output = must1(AllGather(SD(F32, shapes.Bounded(3)), 0, groups))
	assert.True(t, SD(F32, shapes.Bounded(6)).Equal(output))

	_, err := AllGather(S(F32, 4, 2), 2, groups)
	require.ErrorContains(t, err, "out of range")

	_, err = AllGather(S(F32, 4, 2), 0, types.DenseInts([]int{2, 3}, 0, 1, -1, 2, 3, 4))
	require.ErrorContains(t, err, "same size")
}

func TestAllToAll(t *testing.T) {
	groups := types.DenseInts([]int{1, 4}, 0, 1, 2, 3)
	output := must1(AllToAll(S(F32, 8, 3), 0, 1, 4, groups))
	assert.True(t, S(F32, 2, 12).Equal(output))

	// Split and concat may name the same axis, leaving it unchanged.
	output = must1(AllToAll(S(F32, 8, 3), 0, 0, 4, groups))
	assert.True(t, S(F32, 8, 3).Equal(output))

	_, err := AllToAll(S(F32, 6, 3), 0, 1, 4, groups)
	require.ErrorContains(t, err, "not divisible by split_count")

	// Every group must have exactly split_count replicas.
	_, err = AllToAll(S(F32, 8, 3), 0, 1, 2, groups)
	require.ErrorContains(t, err, "must have 2 ids")
}

func TestCollectivePermute(t *testing.T) {
	output := must1(CollectivePermute(S(F32, 2, 3), [][2]int{{0, 1}, {1, 0}}))
	assert.True(t, S(F32, 2, 3).Equal(output))

	_, err := CollectivePermute(S(F32, 2), nil)
	require.ErrorContains(t, err, "cannot be empty")

	_, err = CollectivePermute(S(F32, 2), [][2]int{{0, 1}, {0, 2}})
	require.ErrorContains(t, err, "source replica 0 appears more than once")

	_, err = CollectivePermute(S(F32, 2), [][2]int{{0, 1}, {2, 1}})
	require.ErrorContains(t, err, "target replica 1 appears more than once")

	_, err = CollectivePermute(S(F32, 2), [][2]int{{-1, 0}})
	require.ErrorContains(t, err, "non-negative")
}

func TestAllReduce(t *testing.T) {
	groups := types.DenseInts([]int{1, 2}, 0, 1)
	outputs := must1(AllReduce([]shapes.Shape{S(F32, 2), S(F32, 3, 3)}, addReducer(F32), groups))
	require.Len(t, outputs, 2)
	assert.True(t, S(F32, 2).Equal(outputs[0]))
	assert.True(t, S(F32, 3, 3).Equal(outputs[1]))

	_, err := AllReduce(nil, addReducer(F32), groups)
	require.ErrorContains(t, err, "at least one operand")

	_, err = AllReduce([]shapes.Shape{S(F32, 2), S(I32, 2)}, addReducer(F32), groups)
	require.ErrorContains(t, err, "one data type")

	badBody := types.Signature{
		Inputs:  []shapes.Shape{S(F32), S(F32)},
		Outputs: []shapes.Shape{S(F32), S(F32)},
	}
	_, err = AllReduce([]shapes.Shape{S(F32, 2)}, badBody, groups)
	require.ErrorContains(t, err, "take 2 arguments and return 1 value")

	_, err = AllReduce([]shapes.Shape{S(F32, 2)}, addReducer(I32), groups)
	require.ErrorContains(t, err, "scalars of the operand's data type")
}

func TestReduceScatter(t *testing.T) {
	groups := types.DenseInts([]int{1, 2}, 0, 1)
	output := must1(ReduceScatter(S(F32, 8), 0, addReducer(F32), groups))
	assert.True(t, S(F32, 4).Equal(output))

	// A bound shrinks with the group size.
	output = must1(ReduceScatter(SD(F32, shapes.Bounded(8)), 0, addReducer(F32), groups))
	assert.True(t, SD(F32, shapes.Bounded(4)).Equal(output))

	_, err := ReduceScatter(S(F32, 7), 0, addReducer(F32), groups)
	require.ErrorContains(t, err, "not divisible by the replica group size")

	_, err = ReduceScatter(S(F32, 8), 1, addReducer(F32), groups)
	require.ErrorContains(t, err, "out of range")
}
