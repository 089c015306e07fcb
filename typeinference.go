// Package typeinference derives the result types of tensor operations from
// their operand types and attributes, and validates the inputs.
//
// Every entry point is a pure function: given the operands' shapes (which may
// have dynamic dimensions, bounded or not), the operation's attributes and,
// for higher-order operations, the boundary signatures of their nested
// computations, it returns the shape of each result or an error describing
// the first violated precondition. No rule attempts partial inference.
//
// Each operation kind gets its own inference function (Gather, Pad,
// ReduceWindow, ...); the sets of elementwise operations share BinaryOp and
// UnaryOp. Infer dispatches from an Op description to the right function and
// tags failures with the optional source location.
//
// All functions are reentrant: they only read their arguments and allocate
// transient local values, so they can be called concurrently with no
// synchronization.
package typeinference

import (
	"github.com/gomlx/typeinference/internal/optypes"
	"github.com/gomlx/typeinference/types"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/pkg/errors"
)

// OpType is re-exported so callers of Infer don't need to import the
// internal package.
type OpType = optypes.OpType

// Op describes one operation to infer result types for: its kind, the shapes
// of its operands, a bag of named attributes and, for higher-order
// operations, the signatures of its nested computations.
//
// Attribute values are plain Go values ([]int, int, bool, enums from the
// types package) or *types.DenseElements buffers; the convert helpers below
// are the only readers.
type Op struct {
	Type     optypes.OpType
	Operands []shapes.Shape

	Attributes map[string]any

	// Body is the nested computation signature for ops that take one
	// (Reduce, ReduceWindow, Map, AllReduce, ReduceScatter, Scatter).
	// SelectAndScatter takes two: Body is the select, SecondBody the scatter.
	Body       *types.Signature
	SecondBody *types.Signature

	// Loc optionally points at the operation's source, for diagnostics only.
	Loc *types.Location
}

// Infer returns the result shapes of the given operation, or an error
// describing why no valid result type exists. Multi-result operations
// (BatchNormTraining, Reduce over several inputs, ...) return one shape per
// result, in order.
//
// Infer never returns partial results: on error the returned slice is nil.
//
// Calling Infer with the wrong number of operands for the operation kind, or
// with an operation kind outside the closed OpType set, is a contract
// violation by the caller and panics.
func Infer(op Op) (results []shapes.Shape, err error) {
	results, err = inferOp(op)
	if err != nil {
		return nil, op.wrapErr(err)
	}
	return results, nil
}

func (op *Op) wrapErr(err error) error {
	if op.Loc != nil {
		return errors.WithMessagef(err, "inferring types for %s at %s", op.Type.Name(), op.Loc)
	}
	return errors.WithMessagef(err, "inferring types for %s", op.Type.Name())
}

// one wraps a single-result rule into the results sequence.
func one(output shapes.Shape, err error) ([]shapes.Shape, error) {
	if err != nil {
		return nil, err
	}
	return []shapes.Shape{output}, nil
}

func inferOp(op Op) ([]shapes.Shape, error) {
	switch op.Type {
	// Elementwise operations share the set-based rules.
	case optypes.Add, optypes.Atan2, optypes.Subtract, optypes.Multiply, optypes.Divide,
		optypes.Power, optypes.Remainder, optypes.And, optypes.Or, optypes.Xor,
		optypes.Maximum, optypes.Minimum, optypes.ShiftLeft,
		optypes.ShiftRightArithmetic, optypes.ShiftRightLogical:
		lhs, rhs := op.operand2()
		return one(BinaryOp(op.Type, lhs, rhs))

	case optypes.Abs, optypes.Cbrt, optypes.Ceil, optypes.Cosine,
		optypes.CountLeadingZeros, optypes.Erf, optypes.Exponential,
		optypes.ExponentialMinusOne, optypes.Floor, optypes.Log,
		optypes.LogPlusOne, optypes.Logistic, optypes.Negate, optypes.Not,
		optypes.Popcnt, optypes.RoundNearestAfz, optypes.RoundNearestEven,
		optypes.Rsqrt, optypes.Sign, optypes.Sine, optypes.Sqrt, optypes.Tan,
		optypes.Tanh:
		return one(UnaryOp(op.Type, op.operand1()))

	case optypes.Compare:
		lhs, rhs := op.operand2()
		direction, err := compareDirectionAttr(op.Attributes["comparison_direction"])
		if err != nil {
			return nil, err
		}
		compareType, err := compareTypeAttr(op.Attributes["compare_type"], lhs.DType)
		if err != nil {
			return nil, err
		}
		return one(Compare(lhs, rhs, direction, compareType))

	case optypes.Select:
		pred, onTrue, onFalse := op.operand3()
		return one(Select(pred, onTrue, onFalse))

	case optypes.Clamp:
		minShape, operand, maxShape := op.operand3()
		return one(Clamp(minShape, operand, maxShape))

	case optypes.Complex:
		realPart, imagPart := op.operand2()
		return one(Complex(realPart, imagPart))

	case optypes.Real, optypes.Imag:
		return one(RealOrImag(op.operand1()))

	case optypes.IsFinite:
		return one(IsFinite(op.operand1()))

	case optypes.Broadcast:
		sizes, err := op.intsAttr("broadcast_sizes")
		if err != nil {
			return nil, err
		}
		return one(Broadcast(op.operand1(), sizes))

	case optypes.BroadcastInDim:
		targetShape, err := op.shapeAttr("target_shape")
		if err != nil {
			return nil, err
		}
		axesMapping, err := op.intsAttr("broadcast_dimensions")
		if err != nil {
			return nil, err
		}
		return one(BroadcastInDim(op.operand1(), targetShape, axesMapping))

	case optypes.Pad:
		operand, fill := op.operand2()
		low, err := op.intsAttr("edge_padding_low")
		if err != nil {
			return nil, err
		}
		high, err := op.intsAttr("edge_padding_high")
		if err != nil {
			return nil, err
		}
		interior, err := op.intsAttr("interior_padding")
		if err != nil {
			return nil, err
		}
		return one(Pad(operand, fill, low, high, interior))

	case optypes.Slice:
		starts, err := op.intsAttr("start_indices")
		if err != nil {
			return nil, err
		}
		limits, err := op.intsAttr("limit_indices")
		if err != nil {
			return nil, err
		}
		strides, err := op.intsAttr("strides")
		if err != nil {
			return nil, err
		}
		return one(Slice(op.operand1(), starts, limits, strides))

	case optypes.DynamicSlice:
		operand, startIndices := op.operandSplit1N()
		sliceSizes, err := op.intsAttr("slice_sizes")
		if err != nil {
			return nil, err
		}
		return one(DynamicSlice(operand, startIndices, sliceSizes))

	case optypes.DynamicUpdateSlice:
		if len(op.Operands) < 2 {
			panic(errors.Errorf("dynamic_update_slice requires at least operand and update, got %d operands", len(op.Operands)))
		}
		return one(DynamicUpdateSlice(op.Operands[0], op.Operands[1], op.Operands[2:]))

	case optypes.Concatenate:
		axis, err := op.intAttr("dimension")
		if err != nil {
			return nil, err
		}
		return one(Concatenate(op.Operands, axis))

	case optypes.Transpose:
		permutation, err := op.intsAttr("permutation")
		if err != nil {
			return nil, err
		}
		return one(Transpose(op.operand1(), permutation))

	case optypes.Reverse:
		axes, err := op.intsAttr("dimensions")
		if err != nil {
			return nil, err
		}
		return one(Reverse(op.operand1(), axes))

	case optypes.Reshape:
		newDims, err := op.intsAttr("new_sizes")
		if err != nil {
			return nil, err
		}
		return one(Reshape(op.operand1(), newDims))

	case optypes.SetDimensionSize:
		operand, size := op.operand2()
		axis, err := op.intAttr("dimension")
		if err != nil {
			return nil, err
		}
		return one(SetDimensionSize(operand, size, axis))

	case optypes.GetDimensionSize:
		axis, err := op.intAttr("dimension")
		if err != nil {
			return nil, err
		}
		return one(GetDimensionSize(op.operand1(), axis))

	case optypes.Gather:
		operand, startIndices := op.operand2()
		dims, err := op.gatherDims()
		if err != nil {
			return nil, err
		}
		sliceSizes, err := op.intsAttr("slice_sizes")
		if err != nil {
			return nil, err
		}
		return one(Gather(operand, startIndices, dims, sliceSizes))

	case optypes.DynamicGather:
		operand, startIndices, sliceSizes := op.operand3()
		dims, err := op.gatherDims()
		if err != nil {
			return nil, err
		}
		return one(DynamicGather(operand, startIndices, sliceSizes, dims))

	case optypes.Scatter:
		dims, err := op.scatterDims()
		if err != nil {
			return nil, err
		}
		numInputs := (len(op.Operands) - 1) / 2
		if numInputs < 1 || len(op.Operands) != 2*numInputs+1 {
			panic(errors.Errorf("scatter requires inputs, scatter_indices and one update per input, got %d operands", len(op.Operands)))
		}
		inputs := op.Operands[:numInputs]
		scatterIndices := op.Operands[numInputs]
		updates := op.Operands[numInputs+1:]
		return Scatter(inputs, scatterIndices, updates, dims, op.bodyAttr())

	case optypes.Reduce:
		inputs, initValues := op.operandHalves()
		axes, err := op.intsAttr("dimensions")
		if err != nil {
			return nil, err
		}
		return Reduce(inputs, initValues, op.bodyAttr(), axes)

	case optypes.ReduceWindow:
		inputs, initValues := op.operandHalves()
		window, err := op.windowAttrs(nil)
		if err != nil {
			return nil, err
		}
		return ReduceWindow(inputs, initValues, op.bodyAttr(), window)

	case optypes.Map:
		axes, err := op.intsAttr("dimensions")
		if err != nil {
			return nil, err
		}
		return one(Map(op.Operands, axes, op.bodyAttr()))

	case optypes.Sort:
		axis, err := op.optionalIntAttr("dimension", -1)
		if err != nil {
			return nil, err
		}
		return Sort(op.Operands, axis, op.bodyAttr())

	case optypes.SelectAndScatter:
		operand, source, initValue := op.operand3()
		window, err := op.windowAttrs(nil)
		if err != nil {
			return nil, err
		}
		return one(SelectAndScatter(operand, source, initValue, op.bodyAttr(), op.secondBodyAttr(), window))

	case optypes.BatchNormTraining:
		operand, scale, offset := op.operand3()
		featureIndex, err := op.intAttr("feature_index")
		if err != nil {
			return nil, err
		}
		return BatchNormTraining(operand, scale, offset, featureIndex)

	case optypes.BatchNormInference:
		if len(op.Operands) != 5 {
			panic(errors.Errorf("batch_norm_inference requires 5 operands, got %d", len(op.Operands)))
		}
		featureIndex, err := op.intAttr("feature_index")
		if err != nil {
			return nil, err
		}
		return one(BatchNormInference(op.Operands[0], op.Operands[1], op.Operands[2], op.Operands[3], op.Operands[4], featureIndex))

	case optypes.BatchNormGrad:
		if len(op.Operands) != 5 {
			panic(errors.Errorf("batch_norm_grad requires 5 operands, got %d", len(op.Operands)))
		}
		featureIndex, err := op.intAttr("feature_index")
		if err != nil {
			return nil, err
		}
		return BatchNormGrad(op.Operands[0], op.Operands[1], op.Operands[2], op.Operands[3], op.Operands[4], featureIndex)

	case optypes.AllToAll:
		splitDimension, err := op.intAttr("split_dimension")
		if err != nil {
			return nil, err
		}
		concatDimension, err := op.intAttr("concat_dimension")
		if err != nil {
			return nil, err
		}
		splitCount, err := op.intAttr("split_count")
		if err != nil {
			return nil, err
		}
		return one(AllToAll(op.operand1(), splitDimension, concatDimension, splitCount, op.denseAttr("replica_groups")))

	case optypes.AllGather:
		allGatherDim, err := op.intAttr("all_gather_dim")
		if err != nil {
			return nil, err
		}
		return one(AllGather(op.operand1(), allGatherDim, op.denseAttr("replica_groups")))

	case optypes.AllReduce:
		return AllReduce(op.Operands, op.bodyAttr(), op.denseAttr("replica_groups"))

	case optypes.ReduceScatter:
		scatterDimension, err := op.intAttr("scatter_dimension")
		if err != nil {
			return nil, err
		}
		return one(ReduceScatter(op.operand1(), scatterDimension, op.bodyAttr(), op.denseAttr("replica_groups")))

	case optypes.CollectiveBroadcast:
		return one(CollectiveBroadcast(op.operand1(), op.denseAttr("replica_groups")))

	case optypes.CollectivePermute:
		pairs, err := op.pairsAttr("source_target_pairs")
		if err != nil {
			return nil, err
		}
		return one(CollectivePermute(op.operand1(), pairs))

	case optypes.Cholesky:
		return one(Cholesky(op.operand1()))

	case optypes.TriangularSolve:
		a, b := op.operand2()
		leftSide, err := op.boolAttr("left_side")
		if err != nil {
			return nil, err
		}
		transposeA, err := transposeAttr(op.Attributes["transpose_a"])
		if err != nil {
			return nil, err
		}
		return one(TriangularSolve(a, b, leftSide, transposeA))

	case optypes.FFT:
		fftType, err := fftTypeAttr(op.Attributes["fft_type"])
		if err != nil {
			return nil, err
		}
		fftLength, err := op.intsAttr("fft_length")
		if err != nil {
			return nil, err
		}
		return one(FFT(op.operand1(), fftType, fftLength))

	case optypes.DotGeneral:
		lhs, rhs := op.operand2()
		lhsContracting, err := op.intsAttr("lhs_contracting_dimensions")
		if err != nil {
			return nil, err
		}
		lhsBatch, err := op.intsAttr("lhs_batching_dimensions")
		if err != nil {
			return nil, err
		}
		rhsContracting, err := op.intsAttr("rhs_contracting_dimensions")
		if err != nil {
			return nil, err
		}
		rhsBatch, err := op.intsAttr("rhs_batching_dimensions")
		if err != nil {
			return nil, err
		}
		return one(DotGeneral(lhs, lhsContracting, lhsBatch, rhs, rhsContracting, rhsBatch))

	case optypes.Convolution:
		lhs, rhs := op.operand2()
		return one(op.inferConvolution(lhs, rhs))

	case optypes.UniformQuantize:
		storageDType, err := op.dtypeAttr("storage_type")
		if err != nil {
			return nil, err
		}
		quantized, err := op.quantizedAttr()
		if err != nil {
			return nil, err
		}
		return one(UniformQuantize(op.operand1(), storageDType, quantized))

	case optypes.UniformDequantize:
		return one(UniformDequantize(op.operand1()))

	case optypes.CreateToken:
		op.operandN(0)
		return one(CreateToken())

	case optypes.AfterAll:
		return one(AfterAll(op.Operands))

	case optypes.OptimizationBarrier:
		return OptimizationBarrier(op.Operands)
	}
	panic(errors.Errorf("unknown operation kind %d handed to Infer", int(op.Type)))
}
