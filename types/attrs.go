package types

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// DenseElements is a flat attribute buffer: a small dense tensor of integers,
// booleans or floats given together with its dimensions. It is the wire
// format of operation attributes like slice sizes, padding configuration or
// quantization scales.
//
// The conversion helpers in the root package (Convert1DAttribute and
// friends) are the sole parsing boundary: buffers of the wrong rank or width
// are rejected there, before any inference rule sees them.
type DenseElements struct {
	// DType the values were given in.
	DType dtypes.DType

	// Dimensions of the buffer. Empty means a single scalar value.
	Dimensions []int

	ints   []int64
	bools  []bool
	floats []float64
}

// Rank of the buffer.
func (a *DenseElements) Rank() int { return len(a.Dimensions) }

// Count returns the number of values the dimensions describe.
func (a *DenseElements) Count() int {
	count := 1
	for _, dim := range a.Dimensions {
		count *= dim
	}
	return count
}

func checkCount(a *DenseElements, numValues int) *DenseElements {
	if a.Count() != numValues {
		panic(errors.Errorf("DenseElements with dimensions %v requires %d values, got %d",
			a.Dimensions, a.Count(), numValues))
	}
	return a
}

// DenseInts creates an integer DenseElements with the given dimensions.
// The number of values must match the product of the dimensions.
func DenseInts(dimensions []int, values ...int64) *DenseElements {
	return checkCount(&DenseElements{
		DType:      dtypes.Int64,
		Dimensions: dimensions,
		ints:       values,
	}, len(values))
}

// DenseBools creates a boolean DenseElements with the given dimensions.
func DenseBools(dimensions []int, values ...bool) *DenseElements {
	return checkCount(&DenseElements{
		DType:      dtypes.Bool,
		Dimensions: dimensions,
		bools:      values,
	}, len(values))
}

// DenseFloats creates a float DenseElements with the given dimensions.
func DenseFloats(dimensions []int, values ...float64) *DenseElements {
	return checkCount(&DenseElements{
		DType:      dtypes.Float64,
		Dimensions: dimensions,
		floats:     values,
	}, len(values))
}

// DenseFloat16s creates a Float16 DenseElements: values are stored widened,
// but the buffer remembers it was given as f16.
func DenseFloat16s(dimensions []int, values ...float16.Float16) *DenseElements {
	widened := make([]float64, len(values))
	for i, value := range values {
		widened[i] = float64(value.Float32())
	}
	return checkCount(&DenseElements{
		DType:      dtypes.Float16,
		Dimensions: dimensions,
		floats:     widened,
	}, len(values))
}

// Int64s returns the buffer contents as int64 values.
// It fails if the buffer does not hold integers.
func (a *DenseElements) Int64s() ([]int64, error) {
	if !a.DType.IsInt() {
		return nil, errors.Errorf("attribute buffer holds %s values, expected an integer type", a.DType)
	}
	return a.ints, nil
}

// Ints returns the buffer contents as int values.
func (a *DenseElements) Ints() ([]int, error) {
	values64, err := a.Int64s()
	if err != nil {
		return nil, err
	}
	values := make([]int, len(values64))
	for i, value := range values64 {
		values[i] = int(value)
	}
	return values, nil
}

// Bools returns the buffer contents as booleans.
// It fails if the buffer does not hold booleans.
func (a *DenseElements) Bools() ([]bool, error) {
	if a.DType != dtypes.Bool {
		return nil, errors.Errorf("attribute buffer holds %s values, expected booleans", a.DType)
	}
	return a.bools, nil
}

// Float64s returns the buffer contents as float64 values.
// It fails if the buffer does not hold floats (of any width, f16 included).
func (a *DenseElements) Float64s() ([]float64, error) {
	if !a.DType.IsFloat() {
		return nil, errors.Errorf("attribute buffer holds %s values, expected a float type", a.DType)
	}
	return a.floats, nil
}
