package shapes

// Compatible reports whether two shapes could describe the same runtime
// tensor. It is rank-aware and permissive about dynamism:
//
//   - An unranked shape is compatible with anything of a compatible element
//     kind.
//   - Ranked shapes must have the same rank.
//   - Per axis, two static extents must be equal; a static extent against a
//     bounded one must not exceed the bound; any other pairing involving a
//     dynamic side succeeds.
//
// With ignoreFloatPrecision set, floating point element types of different
// widths are treated as compatible. This is used for architecture-level
// shape checks that should not be sensitive to precision.
//
// Compatible is reflexive and symmetric.
func Compatible(s1, s2 Shape, ignoreFloatPrecision bool) bool {
	if !compatibleElements(s1, s2, ignoreFloatPrecision) {
		return false
	}
	if s1.Token {
		return true
	}
	if s1.Unranked || s2.Unranked {
		return true
	}
	if s1.Rank() != s2.Rank() {
		return false
	}
	for axis, d1 := range s1.Dimensions {
		if !CompatibleDims(d1, s2.Dimensions[axis]) {
			return false
		}
	}
	return true
}

// CompatibleDims reports whether two extents of one axis could be the same
// runtime extent.
func CompatibleDims(d1, d2 Dim) bool {
	if d2.IsStatic() && !d1.IsStatic() {
		d1, d2 = d2, d1
	}
	if d1.IsStatic() {
		if n2, static := d2.Size(); static {
			n1, _ := d1.Size()
			return n1 == n2
		}
		if bound, ok := d2.Bound(); ok {
			n1, _ := d1.Size()
			return n1 <= bound
		}
	}
	// At least one dynamic side and no violated bound.
	return true
}

func compatibleElements(s1, s2 Shape, ignoreFloatPrecision bool) bool {
	if s1.Token || s2.Token {
		return s1.Token == s2.Token
	}
	if (s1.Quantized == nil) != (s2.Quantized == nil) {
		return false
	}
	if s1.Quantized != nil {
		// Quantized types must agree on storage and expressed types; the
		// affine parameters don't change the runtime layout.
		return s1.DType == s2.DType && s1.Quantized.ExpressedDType == s2.Quantized.ExpressedDType
	}
	if s1.DType == s2.DType {
		return true
	}
	return ignoreFloatPrecision && s1.DType.IsFloat() && s2.DType.IsFloat()
}
