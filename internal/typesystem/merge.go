package typesystem

// Merge is the canonical union/widening operator spec.md §4.4 hands off
// to ("this spec does not redefine it"): the smallest type containing
// both operands. A nil operand means "no contribution yet" and is
// absorbed without widening.
func Merge(a, b Type) Type {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Equal(b) {
		return a
	}
	return NormalizeUnion([]Type{a, b})
}

// MergeAll folds Merge over a slice, skipping nils, returning nil if
// every element was nil.
func MergeAll(types ...Type) Type {
	var result Type
	for _, t := range types {
		result = Merge(result, t)
	}
	return result
}
