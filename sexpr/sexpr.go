// Copyright © 2024 The lispread authors

// Package sexpr provides a self-contained s-expression value model
// implementing the host contract of the reader package.  It is the model
// used by the lispread command line driver and serves as the reference
// host binding for embedding the reader elsewhere.
package sexpr

// SType is the type of an SVal.
type SType uint

// Possible SType values.
const (
	// SInvalid (0) is not a valid value type.
	SInvalid SType = iota
	// SNil is the canonical empty list, distinct from false.
	SNil
	// SPair values store a cons cell in the Car and Cdr fields.
	SPair
	// SSymbol values store the symbol name in the Str field.  Symbols
	// produced by a Model are interned and compare by pointer identity.
	SSymbol
	// SInt values store an int64 in the Int field.
	SInt
	// SFloat values store a float64 in the Float field.
	SFloat
	// SString values store their content in the Str field.
	SString
	// SChar values store a single code point in the Char field.
	SChar
	// SBool values store a bool in the Bool field.  The true and false
	// values are singletons owned by a Model.
	SBool
	// SUnspec is the unspecified value, read from #u.
	SUnspec
	// SEOS marks the end of an input stream.  The logical EOF value read
	// from ## shares this type but is a distinct singleton.
	SEOS
	// SVector values store their elements in the Cells slice.
	SVector
	// STypeMax is numerically greater than all valid SType values.
	STypeMax
)

var stypeStrings = []string{
	SInvalid: "INVALID",
	SNil:     "nil",
	SPair:    "pair",
	SSymbol:  "symbol",
	SInt:     "int",
	SFloat:   "float",
	SString:  "string",
	SChar:    "char",
	SBool:    "bool",
	SUnspec:  "unspecified",
	SEOS:     "end-of-stream",
	SVector:  "vector",
}

func (t SType) String() string {
	if t >= STypeMax {
		return stypeStrings[SInvalid]
	}
	return stypeStrings[t]
}

// SVal is a simple lisp value.
type SVal struct {
	Type  SType
	Str   string
	Int   int64
	Float float64
	Char  rune
	Bool  bool
	Car   *SVal
	Cdr   *SVal
	Cells []*SVal
}

// Cons returns a new pair with the given car and cdr.
func Cons(car, cdr *SVal) *SVal {
	return &SVal{Type: SPair, Car: car, Cdr: cdr}
}

// Int returns an integer value.
func Int(x int64) *SVal {
	return &SVal{Type: SInt, Int: x}
}

// Float returns a floating point value.
func Float(x float64) *SVal {
	return &SVal{Type: SFloat, Float: x}
}

// String returns a string value with the given content.
func String(s string) *SVal {
	return &SVal{Type: SString, Str: s}
}

// Char returns a character value.
func Char(c rune) *SVal {
	return &SVal{Type: SChar, Char: c}
}

// Symbol returns a fresh, uninterned symbol.  Symbols that take part in
// identity comparison must come from a Model instead.
func Symbol(name string) *SVal {
	return &SVal{Type: SSymbol, Str: name}
}

// Vector returns a vector value holding cells.
func Vector(cells ...*SVal) *SVal {
	return &SVal{Type: SVector, Cells: cells}
}

// List builds a proper list from vs using a Model's nil for the final
// cdr.
func (m *Model) List(vs ...*SVal) *SVal {
	l := m.Nil()
	for i := len(vs) - 1; i >= 0; i-- {
		l = Cons(vs[i], l)
	}
	return l
}

// IsList reports whether v is the empty list or a pair.
func IsList(v *SVal) bool {
	return v.Type == SNil || v.Type == SPair
}
