package shapes

import (
	"fmt"

	"github.com/pkg/errors"
)

type dimKind uint8

const (
	dimStatic dimKind = iota
	dimUnbounded
	dimBounded
)

// Dim is the extent of one tensor axis. It is one of:
//
//   - Static(n): the extent is known to be exactly n.
//   - Unbounded(): the extent is unknown, with no known upper limit.
//   - Bounded(b): the extent is unknown at this point, but never exceeds b.
//
// A static dimension never carries a separate bound: bound information only
// attaches to non-static dimensions. The zero value is Static(0).
type Dim struct {
	kind dimKind
	size int // Static extent or upper bound; unused for unbounded dims.
}

// Static returns a dimension of the exact extent n.
// Negative extents are a caller bug and panic.
func Static(n int) Dim {
	if n < 0 {
		panic(errors.Errorf("Static dimension extent must be non-negative, got %d", n))
	}
	return Dim{kind: dimStatic, size: n}
}

// Unbounded returns a fully dynamic dimension: extent unknown, no bound.
func Unbounded() Dim {
	return Dim{kind: dimUnbounded}
}

// Bounded returns a dynamic dimension whose extent never exceeds bound.
func Bounded(bound int) Dim {
	if bound < 0 {
		panic(errors.Errorf("Bounded dimension bound must be non-negative, got %d", bound))
	}
	return Dim{kind: dimBounded, size: bound}
}

// IsStatic reports whether the extent is exactly known.
func (d Dim) IsStatic() bool { return d.kind == dimStatic }

// IsDynamic reports whether the extent is unknown (bounded or not).
func (d Dim) IsDynamic() bool { return d.kind != dimStatic }

// IsBounded reports whether the dimension is dynamic with a known bound.
func (d Dim) IsBounded() bool { return d.kind == dimBounded }

// IsUnbounded reports whether the dimension is dynamic without a bound.
func (d Dim) IsUnbounded() bool { return d.kind == dimUnbounded }

// Size returns the static extent and whether the dimension is static.
func (d Dim) Size() (int, bool) {
	return d.size, d.kind == dimStatic
}

// Bound returns the known upper limit on the extent and whether one exists.
// For a static dimension, the extent itself is returned.
func (d Dim) Bound() (int, bool) {
	if d.kind == dimUnbounded {
		return 0, false
	}
	return d.size, true
}

// Equal reports whether d and other are the same variant with the same value.
func (d Dim) Equal(other Dim) bool {
	if d.kind != other.kind {
		return false
	}
	return d.kind == dimUnbounded || d.size == other.size
}

// String implements fmt.Stringer: "8" for Static(8), "?" for Unbounded and
// "<=8" for Bounded(8).
func (d Dim) String() string {
	switch d.kind {
	case dimUnbounded:
		return "?"
	case dimBounded:
		return fmt.Sprintf("<=%d", d.size)
	default:
		return fmt.Sprintf("%d", d.size)
	}
}

// MergeDim combines the extents of one axis taken from two operands of the
// same rank, as elementwise operations require. Precedence is
// Static > Bounded > Unbounded:
//
//   - If either side is static, the result is that static extent; the other
//     side must be the same static extent, a bound that admits it, or
//     unbounded.
//   - If both sides are bounded, the result bound is the smaller of the two.
//   - A single bounded side carries its bound to the result.
//   - Two unbounded sides stay unbounded.
//
// A static extent exceeding the other side's bound is a defined failure, not
// a silent truncation, which keeps the merge order-independent.
func MergeDim(a, b Dim) (Dim, error) {
	if b.IsStatic() && !a.IsStatic() {
		a, b = b, a
	}
	if a.IsStatic() {
		n := a.size
		switch b.kind {
		case dimStatic:
			if b.size != n {
				return Dim{}, errors.Errorf("dimensions %s and %s are incompatible", a, b)
			}
		case dimBounded:
			if n > b.size {
				return Dim{}, errors.Errorf("static dimension %s exceeds the bound of %s", a, b)
			}
		}
		return Static(n), nil
	}
	if a.kind == dimBounded && b.kind == dimBounded {
		return Bounded(min(a.size, b.size)), nil
	}
	if a.kind == dimBounded {
		return a, nil
	}
	if b.kind == dimBounded {
		return b, nil
	}
	return Unbounded(), nil
}

// MapDim applies the static-extent arithmetic f to d, propagating dynamism:
// a static extent maps to a static extent, a known bound goes through the
// same arithmetic (clamped at zero, a bound cannot be negative), and
// unbounded stays unbounded. A negative result on a static extent is an
// error; the caller adds the operation context.
func MapDim(d Dim, f func(int) int) (Dim, error) {
	switch d.kind {
	case dimStatic:
		extent := f(d.size)
		if extent < 0 {
			return Dim{}, errors.Errorf("resulting dimension extent is negative (%d)", extent)
		}
		return Static(extent), nil
	case dimBounded:
		return Bounded(max(f(d.size), 0)), nil
	default:
		return Unbounded(), nil
	}
}
