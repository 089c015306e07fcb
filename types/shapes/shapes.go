// Package shapes defines the tensor type model used by the inference engine:
// per-axis extents (Dim) that may be static, bounded-dynamic or unbounded,
// the Shape that bundles them with an element type, and the compatibility
// and bound-merge rules between shapes.
//
// Element types build on gopjrt's dtypes for booleans, integers, floats and
// complex numbers; quantized and token element kinds are modeled on top.
//
// All values here are immutable by convention: inference rules clone before
// editing and never share dimension slices across results.
package shapes

import (
	"fmt"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// Quantized holds the uniform quantization parameters of a quantized element
// type. The storage integer type lives in Shape.DType; Quantized carries the
// expressed (floating point) type and the affine mapping into it.
type Quantized struct {
	// ExpressedDType is the floating point type the quantized values represent.
	ExpressedDType dtypes.DType

	Scale     float64
	ZeroPoint int64
}

// Shape of a tensor type: an element kind plus an optional rank with
// per-axis extents.
//
// The element kind is one of: a plain dtype (booleans, integers, floats,
// complex numbers), a quantized type (integer DType + Quantized parameters),
// or the token marker (operation-ordering type, no payload).
type Shape struct {
	// DType of the tensor elements. For quantized tensors this is the
	// storage integer type. Invalid for tokens and for the Invalid() shape.
	DType dtypes.DType

	// Quantized parameters; non-nil only for quantized element types.
	Quantized *Quantized

	// Token marks the operation-ordering token type: no dtype, no dimensions.
	Token bool

	// Unranked marks a tensor whose rank is unknown. Dimensions must be nil.
	Unranked bool

	// Dimensions of the tensor, one Dim per axis. Empty for scalars.
	Dimensions []Dim

	// Encoding is an opaque side channel (layout or sparsity metadata)
	// attached to the type. Inference rules that don't interpret it carry it
	// from their primary operand to the result unchanged. It is never
	// compared by Equal or Compatible.
	Encoding any
}

// Make returns a Shape with the given dtype and static dimensions.
// No dimensions means a scalar. Negative dimensions panic.
func Make(dtype dtypes.DType, dimensions ...int) Shape {
	s := Shape{DType: dtype}
	if len(dimensions) > 0 {
		s.Dimensions = make([]Dim, len(dimensions))
		for axis, dim := range dimensions {
			s.Dimensions[axis] = Static(dim)
		}
	}
	return s
}

// MakeDyn returns a Shape with the given dtype and possibly dynamic
// dimensions.
func MakeDyn(dtype dtypes.DType, dimensions ...Dim) Shape {
	s := Shape{DType: dtype}
	if len(dimensions) > 0 {
		s.Dimensions = append([]Dim{}, dimensions...)
	}
	return s
}

// MakeUnranked returns a Shape of unknown rank with the given dtype.
func MakeUnranked(dtype dtypes.DType) Shape {
	return Shape{DType: dtype, Unranked: true}
}

// MakeToken returns the token Shape: a marker type used only to order
// side-effecting operations. It has no dtype and no dimensions.
func MakeToken() Shape {
	return Shape{Token: true}
}

// MakeQuantized returns a quantized Shape: storageDType holds the values,
// quantized describes the expressed type and the affine mapping.
func MakeQuantized(storageDType dtypes.DType, quantized Quantized, dimensions ...int) (Shape, error) {
	if !storageDType.IsInt() {
		return Invalid(), errors.Errorf("quantized storage type must be an integer type, got %s", storageDType)
	}
	if !quantized.ExpressedDType.IsFloat() {
		return Invalid(), errors.Errorf("quantized expressed type must be a float type, got %s", quantized.ExpressedDType)
	}
	s := Make(storageDType, dimensions...)
	s.Quantized = &quantized
	return s, nil
}

// Invalid returns the invalid Shape, used as a return value on errors.
func Invalid() Shape { return Shape{} }

// Ok reports whether the shape is valid.
func (s Shape) Ok() bool {
	if s.Token {
		return s.DType == dtypes.InvalidDType && !s.Unranked && len(s.Dimensions) == 0
	}
	if s.DType == dtypes.InvalidDType {
		return false
	}
	return !s.Unranked || len(s.Dimensions) == 0
}

// IsQuantized reports whether the element type is quantized.
func (s Shape) IsQuantized() bool { return s.Quantized != nil }

// Rank of the shape. Unranked shapes and scalars both report 0; check
// Unranked to tell them apart.
func (s Shape) Rank() int { return len(s.Dimensions) }

// IsScalar reports whether the shape is ranked with rank 0.
func (s Shape) IsScalar() bool {
	return !s.Unranked && !s.Token && len(s.Dimensions) == 0
}

// IsFullyStatic reports whether the shape is ranked with every axis static.
func (s Shape) IsFullyStatic() bool {
	if s.Unranked {
		return false
	}
	for _, dim := range s.Dimensions {
		if dim.IsDynamic() {
			return false
		}
	}
	return true
}

// Dim returns the extent of the given axis. Negative axes count from the
// end, so Dim(-1) is the last axis. Out-of-range axes panic: axes are
// engine-internal values, not user input.
func (s Shape) Dim(axis int) Dim {
	adjusted := axis
	if adjusted < 0 {
		adjusted += s.Rank()
	}
	if adjusted < 0 || adjusted >= s.Rank() {
		panic(errors.Errorf("axis %d out of range for shape %s", axis, s))
	}
	return s.Dimensions[adjusted]
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	s2 := s
	if s.Dimensions != nil {
		s2.Dimensions = append([]Dim{}, s.Dimensions...)
	}
	if s.Quantized != nil {
		quantized := *s.Quantized
		s2.Quantized = &quantized
	}
	return s2
}

// WithDims derives a result shape from s: same element kind and encoding,
// new dimensions. This is how rules propagate the encoding side channel from
// their primary operand.
func (s Shape) WithDims(dimensions ...Dim) Shape {
	s2 := s.Clone()
	s2.Unranked = false
	s2.Dimensions = append([]Dim{}, dimensions...)
	return s2
}

// WithDType derives a shape from s with a different element dtype, dropping
// any quantization parameters.
func (s Shape) WithDType(dtype dtypes.DType) Shape {
	s2 := s.Clone()
	s2.DType = dtype
	s2.Quantized = nil
	return s2
}

// Equal reports whether the two shapes are the same type: same element kind
// (quantized parameters included) and the exact same dimensions. The opaque
// encoding is not compared.
func (s Shape) Equal(other Shape) bool {
	if s.Token || other.Token {
		return s.Token == other.Token
	}
	if s.DType != other.DType || s.Unranked != other.Unranked {
		return false
	}
	if (s.Quantized == nil) != (other.Quantized == nil) {
		return false
	}
	if s.Quantized != nil && *s.Quantized != *other.Quantized {
		return false
	}
	if s.Rank() != other.Rank() {
		return false
	}
	for axis, dim := range s.Dimensions {
		if !dim.Equal(other.Dimensions[axis]) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer, e.g. "(Float32)[2 3]", "(Float32)[2 <=8 ?]"
// for dynamic axes, "(Float32)[*]" for unranked, "token" and
// "(quant Int8:Float32)[4]".
func (s Shape) String() string {
	if s.Token {
		return "token"
	}
	if !s.Ok() {
		return "(invalid shape)"
	}
	var b strings.Builder
	if s.Quantized != nil {
		fmt.Fprintf(&b, "(quant %s:%s)", s.DType, s.Quantized.ExpressedDType)
	} else {
		fmt.Fprintf(&b, "(%s)", s.DType)
	}
	if s.Unranked {
		b.WriteString("[*]")
		return b.String()
	}
	if s.IsScalar() {
		return b.String()
	}
	b.WriteByte('[')
	for axis, dim := range s.Dimensions {
		if axis > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(dim.String())
	}
	b.WriteByte(']')
	return b.String()
}
