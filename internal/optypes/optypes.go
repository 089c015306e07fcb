// Package optypes defines OpType, the closed set of operations the type
// inference engine knows how to derive result types for.
package optypes

import (
	"github.com/gomlx/typeinference/internal/utils"
)

// OpType identifies one operation kind.
//
// The set is closed: the dispatch in the root package switches exhaustively
// over it, so there is no "unknown op" error at runtime.
type OpType int

//go:generate go tool enumer -type=OpType -output=gen_optype_enumer.go optypes.go

const (
	Invalid OpType = iota

	Abs
	Add
	AfterAll
	AllGather
	AllReduce
	AllToAll
	And
	Atan2
	BatchNormGrad
	BatchNormInference
	BatchNormTraining
	Broadcast
	BroadcastInDim
	Cbrt
	Ceil
	Cholesky
	Clamp
	CollectiveBroadcast
	CollectivePermute
	Compare
	Complex
	Concatenate
	Convolution
	Cosine
	CountLeadingZeros
	CreateToken
	Divide
	DotGeneral
	DynamicGather
	DynamicSlice
	DynamicUpdateSlice
	Erf
	Exponential
	ExponentialMinusOne
	FFT
	Floor
	Gather
	GetDimensionSize
	Imag
	IsFinite
	Log
	LogPlusOne
	Logistic
	Map
	Maximum
	Minimum
	Multiply
	Negate
	Not
	OptimizationBarrier
	Or
	Pad
	Popcnt
	Power
	Real
	Reduce
	ReduceScatter
	ReduceWindow
	Remainder
	Reshape
	Reverse
	RoundNearestAfz
	RoundNearestEven
	Rsqrt
	Scatter
	Select
	SelectAndScatter
	SetDimensionSize
	ShiftLeft
	ShiftRightArithmetic
	ShiftRightLogical
	Sign
	Sine
	Slice
	Sort
	Sqrt
	Subtract
	Tan
	Tanh
	Transpose
	TriangularSolve
	UniformDequantize
	UniformQuantize
	Xor

	// Last is kept last, it is used as a counter/marker.
	Last
)

// Name returns the snake_case name of the operation, as used in diagnostics.
func (op OpType) Name() string {
	return utils.ToSnakeCase(op.String())
}
