package typeinference

import (
	"github.com/gomlx/typeinference/internal/utils"
	"github.com/gomlx/typeinference/types"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/pkg/errors"
)

// VerifyReplicaGroups validates a replica group table and splits it into one
// slice of replica ids per group. The table must be rank-2; entries of -1 are
// padding and are dropped from their group. The remaining ids must cover
// 0..N-1 exactly once, N being the total number of ids. When
// allGroupsMustHaveSameSize is set every group must have the same number of
// ids, and when expectedGroupSize is positive exactly that many.
func VerifyReplicaGroups(groups *types.DenseElements, allGroupsMustHaveSameSize bool, expectedGroupSize int) ([][]int, error) {
	if groups == nil {
		return nil, errors.Errorf("replica_groups is required")
	}
	if groups.Rank() != 2 {
		return nil, errors.Errorf("replica_groups must be a rank-2 table, got rank %d", groups.Rank())
	}
	numGroups, rowSize := groups.Dimensions[0], groups.Dimensions[1]
	if numGroups == 0 || rowSize == 0 {
		return nil, errors.Errorf("replica_groups cannot be empty")
	}
	values, err := groups.Ints()
	if err != nil {
		return nil, errors.WithMessagef(err, "replica_groups")
	}

	replicaGroups := make([][]int, numGroups)
	seen := utils.MakeSet[int](len(values))
	numIDs := 0
	for g := range replicaGroups {
		group := make([]int, 0, rowSize)
		for _, id := range values[g*rowSize : (g+1)*rowSize] {
			if id == -1 {
				continue // Padding entry.
			}
			if id < 0 {
				return nil, errors.Errorf("invalid replica id %d in replica_groups, only -1 (padding) and non-negative ids are allowed", id)
			}
			if seen.Has(id) {
				return nil, errors.Errorf("replica id %d appears more than once in replica_groups", id)
			}
			seen.Insert(id)
			numIDs++
			group = append(group, id)
		}
		replicaGroups[g] = group
	}
	for id := range numIDs {
		if !seen.Has(id) {
			return nil, errors.Errorf("replica_groups must cover ids 0 to %d, missing id %d", numIDs-1, id)
		}
	}
	for g, group := range replicaGroups {
		if allGroupsMustHaveSameSize && len(group) != len(replicaGroups[0]) {
			return nil, errors.Errorf("all replica groups must have the same size, group 0 has %d ids but group %d has %d",
				len(replicaGroups[0]), g, len(group))
		}
		if expectedGroupSize > 0 && len(group) != expectedGroupSize {
			return nil, errors.Errorf("replica group %d must have %d ids, got %d", g, expectedGroupSize, len(group))
		}
	}
	return replicaGroups, nil
}

// verifyScalarReducer checks a collective reduction body: two scalar
// arguments and one scalar result, all of the operand's data type.
func verifyScalarReducer(body types.Signature, operand shapes.Shape) error {
	if len(body.Inputs) != 2 || len(body.Outputs) != 1 {
		return errors.Errorf("reduction body must take 2 arguments and return 1 value, got %d and %d", len(body.Inputs), len(body.Outputs))
	}
	for _, s := range []shapes.Shape{body.Inputs[0], body.Inputs[1], body.Outputs[0]} {
		if !s.IsScalar() || s.DType != operand.DType {
			return errors.Errorf("reduction body arguments and result must be scalars of the operand's data type %s, got (%s, %s) -> %s",
				operand.DType, body.Inputs[0], body.Inputs[1], body.Outputs[0])
		}
	}
	return nil
}

// CollectiveBroadcast sends the operand from one replica of each group to the
// others. The shape is unchanged.
func CollectiveBroadcast(operand shapes.Shape, replicaGroups *types.DenseElements) (output shapes.Shape, err error) {
	if !operand.Ok() {
		return shapes.Invalid(), errors.Errorf("invalid operand shape %s for collective_broadcast", operand)
	}
	if _, err = VerifyReplicaGroups(replicaGroups, false, 0); err != nil {
		return shapes.Invalid(), err
	}
	return operand.Clone(), nil
}

// AllGather concatenates the operands of every replica in a group along
// allGatherDim, so that axis grows by the group size.
func AllGather(operand shapes.Shape, allGatherDim int, replicaGroups *types.DenseElements) (output shapes.Shape, err error) {
	if !operand.Ok() {
		return shapes.Invalid(), errors.Errorf("invalid operand shape %s for all_gather", operand)
	}
	groups, err := VerifyReplicaGroups(replicaGroups, true, 0)
	if err != nil {
		return shapes.Invalid(), err
	}
	allGatherDim, err = AdjustAxisToRank(allGatherDim, operand.Rank())
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "all_gather_dim for operand %s", operand)
	}
	groupSize := len(groups[0])
	output = operand.Clone()
	output.Dimensions[allGatherDim], err = shapes.MapDim(output.Dimensions[allGatherDim], func(size int) int {
		return size * groupSize
	})
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "all_gather axis %d of %s", allGatherDim, operand)
	}
	return output, nil
}

// AllToAll splits the operand along splitDimension into splitCount pieces,
// exchanges them across the replicas of a group, and concatenates the
// received pieces along concatDimension. The split axis shrinks by splitCount
// and the concat axis grows by it.
func AllToAll(operand shapes.Shape, splitDimension, concatDimension, splitCount int, replicaGroups *types.DenseElements) (output shapes.Shape, err error) {
	if !operand.Ok() {
		return shapes.Invalid(), errors.Errorf("invalid operand shape %s for all_to_all", operand)
	}
	if _, err = VerifyReplicaGroups(replicaGroups, true, splitCount); err != nil {
		return shapes.Invalid(), err
	}
	if splitCount <= 0 {
		return shapes.Invalid(), errors.Errorf("all_to_all split_count must be positive, got %d", splitCount)
	}
	splitDimension, err = AdjustAxisToRank(splitDimension, operand.Rank())
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "split_dimension for operand %s", operand)
	}
	concatDimension, err = AdjustAxisToRank(concatDimension, operand.Rank())
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "concat_dimension for operand %s", operand)
	}
	if size, isStatic := operand.Dimensions[splitDimension].Size(); isStatic && size%splitCount != 0 {
		return shapes.Invalid(), errors.Errorf("all_to_all split axis extent %d is not divisible by split_count %d", size, splitCount)
	}
	output = operand.Clone()
	output.Dimensions[splitDimension], err = shapes.MapDim(output.Dimensions[splitDimension], func(size int) int {
		return size / splitCount
	})
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "all_to_all split axis %d of %s", splitDimension, operand)
	}
	output.Dimensions[concatDimension], err = shapes.MapDim(output.Dimensions[concatDimension], func(size int) int {
		return size * splitCount
	})
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "all_to_all concat axis %d of %s", concatDimension, operand)
	}
	return output, nil
}

// CollectivePermute forwards the operand between replicas following the
// (source, target) pairs. Sources and targets must each be unique, so every
// replica sends and receives at most once. The shape is unchanged.
func CollectivePermute(operand shapes.Shape, sourceTargetPairs [][2]int) (output shapes.Shape, err error) {
	if !operand.Ok() {
		return shapes.Invalid(), errors.Errorf("invalid operand shape %s for collective_permute", operand)
	}
	if len(sourceTargetPairs) == 0 {
		return shapes.Invalid(), errors.Errorf("source_target_pairs cannot be empty")
	}
	sources := utils.MakeSet[int](len(sourceTargetPairs))
	targets := utils.MakeSet[int](len(sourceTargetPairs))
	for _, pair := range sourceTargetPairs {
		source, target := pair[0], pair[1]
		if source < 0 || target < 0 {
			return shapes.Invalid(), errors.Errorf("replica ids in source_target_pairs must be non-negative, got (%d, %d)", source, target)
		}
		if sources.Has(source) {
			return shapes.Invalid(), errors.Errorf("source replica %d appears more than once in source_target_pairs", source)
		}
		if targets.Has(target) {
			return shapes.Invalid(), errors.Errorf("target replica %d appears more than once in source_target_pairs", target)
		}
		sources.Insert(source)
		targets.Insert(target)
	}
	return operand.Clone(), nil
}

// AllReduce folds each operand across the replicas of a group with the
// reduction body. The shapes are unchanged.
func AllReduce(operands []shapes.Shape, body types.Signature, replicaGroups *types.DenseElements) (outputs []shapes.Shape, err error) {
	if len(operands) == 0 {
		return nil, errors.Errorf("all_reduce requires at least one operand")
	}
	for i, operand := range operands {
		if !operand.Ok() {
			return nil, errors.Errorf("invalid operand %d shape %s for all_reduce", i, operand)
		}
		if operand.DType != operands[0].DType {
			return nil, errors.Errorf("all_reduce operands must all have one data type, got %s and %s", operands[0], operand)
		}
	}
	if _, err = VerifyReplicaGroups(replicaGroups, false, 0); err != nil {
		return nil, err
	}
	if err = verifyScalarReducer(body, operands[0]); err != nil {
		return nil, err
	}
	outputs = make([]shapes.Shape, len(operands))
	for i, operand := range operands {
		outputs[i] = operand.Clone()
	}
	return outputs, nil
}

// ReduceScatter folds the operand across the replicas of a group and leaves
// each replica with one piece of the result: the scatter axis shrinks by the
// group size.
func ReduceScatter(operand shapes.Shape, scatterDimension int, body types.Signature, replicaGroups *types.DenseElements) (output shapes.Shape, err error) {
	if !operand.Ok() {
		return shapes.Invalid(), errors.Errorf("invalid operand shape %s for reduce_scatter", operand)
	}
	groups, err := VerifyReplicaGroups(replicaGroups, true, 0)
	if err != nil {
		return shapes.Invalid(), err
	}
	if err = verifyScalarReducer(body, operand); err != nil {
		return shapes.Invalid(), err
	}
	scatterDimension, err = AdjustAxisToRank(scatterDimension, operand.Rank())
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "scatter_dimension for operand %s", operand)
	}
	groupSize := len(groups[0])
	if size, isStatic := operand.Dimensions[scatterDimension].Size(); isStatic && size%groupSize != 0 {
		return shapes.Invalid(), errors.Errorf("reduce_scatter axis extent %d is not divisible by the replica group size %d", size, groupSize)
	}
	output = operand.Clone()
	output.Dimensions[scatterDimension], err = shapes.MapDim(output.Dimensions[scatterDimension], func(size int) int {
		return size / groupSize
	})
	if err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "reduce_scatter axis %d of %s", scatterDimension, operand)
	}
	return output, nil
}
