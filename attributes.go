package typeinference

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/typeinference/types"
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/pkg/errors"
)

// Operand accessors: arity mismatches are caller bugs, not user input, so
// they panic.

func (op *Op) operandN(n int) {
	if len(op.Operands) != n {
		panic(errors.Errorf("%s requires %d operands, got %d", op.Type.Name(), n, len(op.Operands)))
	}
}

func (op *Op) operand1() shapes.Shape {
	op.operandN(1)
	return op.Operands[0]
}

func (op *Op) operand2() (shapes.Shape, shapes.Shape) {
	op.operandN(2)
	return op.Operands[0], op.Operands[1]
}

func (op *Op) operand3() (shapes.Shape, shapes.Shape, shapes.Shape) {
	op.operandN(3)
	return op.Operands[0], op.Operands[1], op.Operands[2]
}

// operandSplit1N splits the operands into the first one and the rest.
func (op *Op) operandSplit1N() (shapes.Shape, []shapes.Shape) {
	if len(op.Operands) < 1 {
		panic(errors.Errorf("%s requires at least 1 operand, got none", op.Type.Name()))
	}
	return op.Operands[0], op.Operands[1:]
}

// operandHalves splits the operands into inputs and matching initial values,
// the convention for variadic reductions.
func (op *Op) operandHalves() ([]shapes.Shape, []shapes.Shape) {
	if len(op.Operands) == 0 || len(op.Operands)%2 != 0 {
		panic(errors.Errorf("%s requires paired inputs and initial values, got %d operands", op.Type.Name(), len(op.Operands)))
	}
	half := len(op.Operands) / 2
	return op.Operands[:half], op.Operands[half:]
}

func (op *Op) bodyAttr() types.Signature {
	if op.Body == nil {
		panic(errors.Errorf("%s requires a nested computation, got none", op.Type.Name()))
	}
	return *op.Body
}

func (op *Op) secondBodyAttr() types.Signature {
	if op.SecondBody == nil {
		panic(errors.Errorf("%s requires a second nested computation, got none", op.Type.Name()))
	}
	return *op.SecondBody
}

// Attribute accessors: attributes come from user input, so mismatches return
// errors.

func (op *Op) intAttr(name string) (int, error) {
	value, found := op.Attributes[name]
	if !found {
		return 0, errors.Errorf("attribute %q is required", name)
	}
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	}
	return 0, errors.Errorf("attribute %q must be an integer, got %T", name, value)
}

func (op *Op) intsAttr(name string) ([]int, error) {
	value, found := op.Attributes[name]
	if !found {
		return nil, errors.Errorf("attribute %q is required", name)
	}
	switch v := value.(type) {
	case []int:
		return v, nil
	case *types.DenseElements:
		return Convert1DAttribute(v, name)
	}
	return nil, errors.Errorf("attribute %q must be a list of integers, got %T", name, value)
}

func (op *Op) boolAttr(name string) (bool, error) {
	value, found := op.Attributes[name]
	if !found {
		return false, errors.Errorf("attribute %q is required", name)
	}
	b, ok := value.(bool)
	if !ok {
		return false, errors.Errorf("attribute %q must be a boolean, got %T", name, value)
	}
	return b, nil
}

func (op *Op) shapeAttr(name string) (shapes.Shape, error) {
	value, found := op.Attributes[name]
	if !found {
		return shapes.Invalid(), errors.Errorf("attribute %q is required", name)
	}
	s, ok := value.(shapes.Shape)
	if !ok {
		return shapes.Invalid(), errors.Errorf("attribute %q must be a shape, got %T", name, value)
	}
	return s, nil
}

func (op *Op) dtypeAttr(name string) (dtypes.DType, error) {
	value, found := op.Attributes[name]
	if !found {
		return dtypes.InvalidDType, errors.Errorf("attribute %q is required", name)
	}
	dtype, ok := value.(dtypes.DType)
	if !ok {
		return dtypes.InvalidDType, errors.Errorf("attribute %q must be a dtype, got %T", name, value)
	}
	return dtype, nil
}

// denseAttr returns the attribute as a dense buffer, or nil when absent.
// Rules that take optional dense attributes (replica_groups) handle nil.
func (op *Op) denseAttr(name string) *types.DenseElements {
	value, found := op.Attributes[name]
	if !found || value == nil {
		return nil
	}
	dense, ok := value.(*types.DenseElements)
	if !ok {
		return nil
	}
	return dense
}

// pairsAttr reads an attribute shaped [n][2]int, as used for
// source_target_pairs.
func (op *Op) pairsAttr(name string) ([][2]int, error) {
	value, found := op.Attributes[name]
	if !found {
		return nil, errors.Errorf("attribute %q is required", name)
	}
	switch v := value.(type) {
	case [][2]int:
		return v, nil
	case *types.DenseElements:
		return ConvertPaddingAttribute(v, name)
	}
	return nil, errors.Errorf("attribute %q must be a list of integer pairs, got %T", name, value)
}

func (op *Op) quantizedAttr() (shapes.Quantized, error) {
	expressed, err := op.dtypeAttr("expressed_type")
	if err != nil {
		return shapes.Quantized{}, err
	}
	scale, found := op.Attributes["scale"].(float64)
	if !found {
		return shapes.Quantized{}, errors.Errorf("attribute %q is required and must be a float", "scale")
	}
	zeroPoint := int64(0)
	if value, hasZero := op.Attributes["zero_point"]; hasZero {
		switch v := value.(type) {
		case int:
			zeroPoint = int64(v)
		case int64:
			zeroPoint = v
		default:
			return shapes.Quantized{}, errors.Errorf("attribute %q must be an integer, got %T", "zero_point", value)
		}
	}
	return shapes.Quantized{ExpressedDType: expressed, Scale: scale, ZeroPoint: zeroPoint}, nil
}

func (op *Op) gatherDims() (dims GatherDimensionNumbers, err error) {
	dims.OffsetDims, err = op.intsAttr("offset_dims")
	if err != nil {
		return
	}
	dims.CollapsedSliceDims, err = op.intsAttr("collapsed_slice_dims")
	if err != nil {
		return
	}
	dims.StartIndexMap, err = op.intsAttr("start_index_map")
	if err != nil {
		return
	}
	dims.IndexVectorDim, err = op.intAttr("index_vector_dim")
	return
}

func (op *Op) scatterDims() (dims ScatterDimensionNumbers, err error) {
	dims.UpdateWindowDims, err = op.intsAttr("update_window_dims")
	if err != nil {
		return
	}
	dims.InsertedWindowDims, err = op.intsAttr("inserted_window_dims")
	if err != nil {
		return
	}
	dims.ScatterDimsToOperandDims, err = op.intsAttr("scatter_dims_to_operand_dims")
	if err != nil {
		return
	}
	dims.IndexVectorDim, err = op.intAttr("index_vector_dim")
	return
}

// windowAttrs parses the shared window attribute family. Only
// window_dimensions is mandatory; rank, when non-nil, defaults the others to
// identity values of matching length.
func (op *Op) windowAttrs(rank *int) (window []WindowDimension, err error) {
	windowDimensions, err := op.intsAttr("window_dimensions")
	if err != nil {
		return nil, err
	}
	if rank == nil {
		numAxes := len(windowDimensions)
		rank = &numAxes
	}
	windowStrides, err := op.optionalIntsAttr("window_strides", *rank, 1)
	if err != nil {
		return nil, err
	}
	baseDilations, err := op.optionalIntsAttr("base_dilations", *rank, 1)
	if err != nil {
		return nil, err
	}
	windowDilations, err := op.optionalIntsAttr("window_dilations", *rank, 1)
	if err != nil {
		return nil, err
	}
	var padding [][2]int
	if _, found := op.Attributes["padding"]; found {
		padding, err = op.pairsAttr("padding")
		if err != nil {
			return nil, err
		}
	} else {
		padding = make([][2]int, *rank)
	}
	var windowReversal []bool
	if value, found := op.Attributes["window_reversal"]; found {
		switch v := value.(type) {
		case []bool:
			windowReversal = v
		case *types.DenseElements:
			windowReversal, err = ConvertWindowReversalAttribute(v, "window_reversal")
			if err != nil {
				return nil, err
			}
		default:
			return nil, errors.Errorf("attribute %q must be a list of booleans, got %T", "window_reversal", value)
		}
	}
	return VerifyWindowAttributes(windowDimensions, windowStrides, padding, baseDilations, windowDilations, windowReversal)
}

// optionalIntAttr reads an integer attribute, returning fillValue when absent.
func (op *Op) optionalIntAttr(name string, fillValue int) (int, error) {
	if _, found := op.Attributes[name]; !found {
		return fillValue, nil
	}
	return op.intAttr(name)
}

// optionalIntsAttr reads a list attribute, filling in fillValue repeated
// length times when absent.
func (op *Op) optionalIntsAttr(name string, length, fillValue int) ([]int, error) {
	if _, found := op.Attributes[name]; !found {
		values := make([]int, length)
		for i := range values {
			values[i] = fillValue
		}
		return values, nil
	}
	return op.intsAttr(name)
}

// Enum attributes: fftTypeAttr and friends accept the enum directly or its
// string form.

func fftTypeAttr(value any) (types.FFTType, error) {
	switch v := value.(type) {
	case types.FFTType:
		return v, nil
	case string:
		return types.FFTTypeString(v)
	case nil:
		return 0, errors.Errorf("attribute %q is required", "fft_type")
	}
	return 0, errors.Errorf("attribute %q must be an FFT type, got %T", "fft_type", value)
}

func transposeAttr(value any) (types.Transposition, error) {
	switch v := value.(type) {
	case types.Transposition:
		return v, nil
	case string:
		return types.TranspositionString(v)
	case nil:
		return types.TransposeNone, nil
	}
	return 0, errors.Errorf("attribute %q must be a transposition, got %T", "transpose_a", value)
}

func compareDirectionAttr(value any) (types.ComparisonDirection, error) {
	switch v := value.(type) {
	case types.ComparisonDirection:
		return v, nil
	case string:
		return types.ComparisonDirectionString(v)
	case nil:
		return 0, errors.Errorf("attribute %q is required", "comparison_direction")
	}
	return 0, errors.Errorf("attribute %q must be a comparison direction, got %T", "comparison_direction", value)
}

// compareTypeAttr reads the comparison type; when the attribute is absent it
// is derived from the operand dtype.
func compareTypeAttr(value any, operand dtypes.DType) (types.ComparisonType, error) {
	switch v := value.(type) {
	case types.ComparisonType:
		return v, nil
	case string:
		return types.ComparisonTypeString(v)
	case nil:
		return defaultComparisonType(operand), nil
	}
	return 0, errors.Errorf("attribute %q must be a comparison type, got %T", "compare_type", value)
}

func defaultComparisonType(dtype dtypes.DType) types.ComparisonType {
	switch {
	case dtype.IsUnsigned() || dtype == dtypes.Bool:
		return types.CompareUnsigned
	case dtype.IsInt():
		return types.CompareSigned
	default:
		return types.CompareFloat
	}
}

// Convert1DAttribute extracts a rank-1 integer attribute buffer into a slice.
func Convert1DAttribute(attr *types.DenseElements, name string) ([]int, error) {
	if attr == nil {
		return nil, errors.Errorf("attribute %q is required", name)
	}
	if attr.Rank() != 1 {
		return nil, errors.Errorf("attribute %q must be rank-1, got rank %d", name, attr.Rank())
	}
	values, err := attr.Ints()
	if err != nil {
		return nil, errors.WithMessagef(err, "attribute %q", name)
	}
	return values, nil
}

// ConvertPaddingAttribute extracts an attribute buffer shaped [n, 2] into
// (low, high) pairs.
func ConvertPaddingAttribute(attr *types.DenseElements, name string) ([][2]int, error) {
	if attr == nil {
		return nil, errors.Errorf("attribute %q is required", name)
	}
	if attr.Rank() != 2 || attr.Dimensions[1] != 2 {
		return nil, errors.Errorf("attribute %q must be shaped [n, 2], got %v", name, attr.Dimensions)
	}
	values, err := attr.Ints()
	if err != nil {
		return nil, errors.WithMessagef(err, "attribute %q", name)
	}
	pairs := make([][2]int, attr.Dimensions[0])
	for i := range pairs {
		pairs[i] = [2]int{values[2*i], values[2*i+1]}
	}
	return pairs, nil
}

// ConvertWindowReversalAttribute extracts a rank-1 boolean attribute buffer.
// A nil attribute is valid and yields nil, meaning no reversal anywhere.
func ConvertWindowReversalAttribute(attr *types.DenseElements, name string) ([]bool, error) {
	if attr == nil {
		return nil, nil
	}
	if attr.Rank() != 1 {
		return nil, errors.Errorf("attribute %q must be rank-1, got rank %d", name, attr.Rank())
	}
	values, err := attr.Bools()
	if err != nil {
		return nil, errors.WithMessagef(err, "attribute %q", name)
	}
	return values, nil
}

// AdjustAxisToRank converts a possibly negative axis (counting from the end)
// to its non-negative form and validates it against the rank.
func AdjustAxisToRank(axis, rank int) (int, error) {
	adjusted := axis
	if adjusted < 0 {
		adjusted += rank
	}
	if adjusted < 0 || adjusted >= rank {
		return 0, errors.Errorf("axis %d is out of range for rank %d", axis, rank)
	}
	return adjusted, nil
}
