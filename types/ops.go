// Package types defines the shared value types consumed by the inference
// rules: operation enums, attribute buffers, nested computation signatures
// and source locations.
package types

import (
	"fmt"

	"github.com/gomlx/typeinference/types/shapes"
)

// ComparisonType enum defined for the Compare op.
type ComparisonType int

//go:generate go tool enumer -type=ComparisonType -output=gen_comparisontype_enumer.go ops.go

const (
	// CompareFloat is used for floating point comparisons.
	CompareFloat ComparisonType = iota

	// CompareTotalOrder version of the operation enforces `-NaN < -Inf < -Finite < -0 < +0 < +Finite < +Inf < +NaN`.
	CompareTotalOrder

	CompareSigned
	CompareUnsigned
)

// ComparisonDirection enum defined for the Compare op.
type ComparisonDirection int

//go:generate go tool enumer -type=ComparisonDirection -trimprefix=Compare -output=gen_comparisondirection_enumer.go ops.go

const (
	CompareEQ ComparisonDirection = iota
	CompareGE
	CompareGT
	CompareLE
	CompareLT
	CompareNE
)

// FFTType defines the type of the FFT operation.
type FFTType int

const (
	// FFTForward - complex in, complex out.
	FFTForward FFTType = iota

	// FFTInverse - complex in, complex out.
	FFTInverse

	// FFTForwardReal - real in, fft_length / 2 + 1 complex out.
	FFTForwardReal

	// FFTInverseReal - fft_length / 2 + 1 complex in, real out.
	FFTInverseReal
)

//go:generate go tool enumer -type=FFTType -trimprefix=FFT -output=gen_ffttype_enumer.go ops.go

// Transposition selects how the `a` operand of a TriangularSolve is applied.
type Transposition int

//go:generate go tool enumer -type=Transposition -trimprefix=Transpose -output=gen_transposition_enumer.go ops.go

const (
	TransposeNone Transposition = iota
	TransposeOnly
	TransposeAdjoint
)

// Signature is the boundary signature of a nested computation (a reducer, a
// map body, a comparator). The inference engine never walks computation
// bodies, it only checks their input/output types.
type Signature struct {
	Inputs  []shapes.Shape
	Outputs []shapes.Shape
}

// Location points into the surrounding program's source, for diagnostic
// attribution only. It is owned by the caller and never retained.
type Location struct {
	File      string
	Line, Col int
}

// String implements fmt.Stringer, in the file:line:col format.
func (l Location) String() string {
	if l.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
	}
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}
