// Copyright © 2024 The lispread authors

package sexpr

// Equal reports structural equality: pairs are equal if their cars and
// cdrs are equal, vectors if their elements are, symbols by name, and
// numbers, strings, characters and booleans by value.  The singleton
// types (nil, unspecified, end-of-stream) are equal by type alone.
func Equal(a, b *SVal) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Type != b.Type {
		return false
	}
	switch a.Type {
	case SNil, SUnspec, SEOS:
		return true
	case SPair:
		return Equal(a.Car, b.Car) && Equal(a.Cdr, b.Cdr)
	case SSymbol, SString:
		return a.Str == b.Str
	case SInt:
		return a.Int == b.Int
	case SFloat:
		return a.Float == b.Float
	case SChar:
		return a.Char == b.Char
	case SBool:
		return a.Bool == b.Bool
	case SVector:
		if len(a.Cells) != len(b.Cells) {
			return false
		}
		for i := range a.Cells {
			if !Equal(a.Cells[i], b.Cells[i]) {
				return false
			}
		}
		return true
	}
	return false
}
