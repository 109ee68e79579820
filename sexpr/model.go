// Copyright © 2024 The lispread authors

package sexpr

import (
	"strconv"
	"strings"
)

// Model owns the symbol table and singleton values of an s-expression
// world.  It implements reader.Model along with every optional capability
// the reader defines: true, unspecified and logical-EOF values, string
// unescaping, and the nil symbol remap.
//
// A Model is not safe for concurrent use; symbol interning mutates the
// table.
type Model struct {
	symbols map[string]*SVal

	nilv    *SVal
	truev   *SVal
	falsev  *SVal
	unspecv *SVal
	eosv    *SVal
	leofv   *SVal
}

// NewModel initializes and returns a new Model with an empty symbol
// table.
func NewModel() *Model {
	return &Model{
		symbols: make(map[string]*SVal),
		nilv:    &SVal{Type: SNil},
		truev:   &SVal{Type: SBool, Bool: true},
		falsev:  &SVal{Type: SBool, Bool: false},
		unspecv: &SVal{Type: SUnspec},
		eosv:    &SVal{Type: SEOS},
		leofv:   &SVal{Type: SEOS},
	}
}

// Cons implements reader.Model.
func (m *Model) Cons(car, cdr *SVal) *SVal {
	return Cons(car, cdr)
}

// SetCDR implements reader.Model.
func (m *Model) SetCDR(pair, cdr *SVal) {
	pair.Cdr = cdr
}

// Symbol returns the interned symbol named text.  Two calls with the same
// name return the same pointer, making Eq a usable identity comparison on
// symbols.
func (m *Model) Symbol(text string) *SVal {
	if s, ok := m.symbols[text]; ok {
		return s
	}
	s := Symbol(text)
	m.symbols[text] = s
	return s
}

// Symbols returns the names of every symbol interned so far, in no
// particular order.
func (m *Model) Symbols() []string {
	names := make([]string, 0, len(m.symbols))
	for name := range m.symbols {
		names = append(names, name)
	}
	return names
}

// Number implements reader.Model.  In radix 10 both integer and floating
// point forms are recognized; other radices admit integers only.  A false
// return means the text is not numeric in the requested radix.
func (m *Model) Number(text string, radix int) (*SVal, bool) {
	if text == "" {
		return nil, false
	}
	if radix != 10 {
		x, err := strconv.ParseInt(text, radix, 64)
		if err != nil {
			return nil, false
		}
		return Int(x), true
	}
	if !decimalShape(text) {
		return nil, false
	}
	if x, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(x), true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, false
	}
	return Float(f), true
}

// String implements reader.Model.  Ownership of buf transfers to the
// value.
func (m *Model) String(buf []byte) *SVal {
	return String(string(buf))
}

// Char implements reader.Model.
func (m *Model) Char(c rune) *SVal {
	return Char(c)
}

// ListToVector converts a list into a vector.  A non-list tail of a
// dotted list is ignored.
func (m *Model) ListToVector(list *SVal) *SVal {
	var cells []*SVal
	for v := list; v.Type == SPair; v = v.Cdr {
		cells = append(cells, v.Car)
	}
	return Vector(cells...)
}

// Eq implements reader.Model as pointer identity.
func (m *Model) Eq(a, b *SVal) bool {
	return a == b
}

// Nil returns the empty list singleton.
func (m *Model) Nil() *SVal { return m.nilv }

// False returns the false singleton.
func (m *Model) False() *SVal { return m.falsev }

// EOS returns the end-of-stream sentinel.
func (m *Model) EOS() *SVal { return m.eosv }

// True implements reader.TrueModel.
func (m *Model) True() *SVal { return m.truev }

// Unspecified implements reader.UnspecifiedModel.
func (m *Model) Unspecified() *SVal { return m.unspecv }

// LogicalEOF implements reader.LogicalEOFModel.
func (m *Model) LogicalEOF() *SVal { return m.leofv }

// NilSymbol implements reader.NilSymbolModel.  Reading the bare symbol
// nil produces the empty list.
func (m *Model) NilSymbol() *SVal {
	return m.Symbol("nil")
}

// Unescape implements reader.UnescapeModel.  Only the sequences \\ and \"
// are decoded; every other backslash passes through untouched.
func (m *Model) Unescape(s *SVal) *SVal {
	content := s.Str
	if !strings.Contains(content, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(content))
	for i := 0; i < len(content); i++ {
		c := content[i]
		if c == '\\' && i+1 < len(content) {
			switch content[i+1] {
			case '\\', '"':
				i++
				c = content[i]
			}
		}
		b.WriteByte(c)
	}
	return String(b.String())
}

// decimalShape reports whether s looks like a base-10 numeric literal:
// an optional sign, digits, an optional fraction and an optional
// exponent.  ParseFloat alone is too permissive here; it admits forms
// like inf and 0x1p4 that must read as symbols.
func decimalShape(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
	}
	if i == start {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start = i
		for i < len(s) && '0' <= s[i] && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start = i
		for i < len(s) && '0' <= s[i] && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}
