// Copyright © 2024 The lispread authors

package reader

// Model is the value-model contract a host runtime supplies to a Reader.
// The reader never inspects host values; it only threads them through the
// constructors below and compares them with Eq.  A Model implementation is
// expected to intern symbols so that Eq is a meaningful identity comparison
// on the results of Symbol.
//
// Optional host behavior is expressed through the additional *Model
// interfaces in this package.  A Reader discovers them with type assertions
// on its Model, so hosts opt in simply by implementing the extra method.
type Model[V any] interface {
	// Cons returns a new pair holding car and cdr.
	Cons(car, cdr V) V

	// SetCDR overwrites the cdr field of a pair previously returned by
	// Cons.  The reader calls SetCDR at most once per pair beyond list
	// chaining, when closing a dotted list.
	SetCDR(pair, cdr V)

	// Symbol returns the canonical symbol value named by text.
	Symbol(text string) V

	// Number interprets text as a number in the given radix (2, 8, 10 or
	// 16).  A false second value indicates the text is not a number; the
	// reader then falls back to symbol interpretation unless an explicit
	// radix prefix was read.
	Number(text string, radix int) (V, bool)

	// String constructs a string value from buf.  The buffer is exactly
	// the length of the scanned literal and ownership transfers to the
	// host; the reader does not retain or reuse it.
	String(buf []byte) V

	// Char constructs a character value from a single code point.
	Char(c rune) V

	// ListToVector converts a completed list value into a vector value.
	ListToVector(list V) V

	// Eq reports whether a and b are the same value (identity, not
	// structure).  The reader uses Eq only to recognize the dot symbol,
	// the empty list, and the host's singleton values.
	Eq(a, b V) bool

	// Nil returns the canonical empty list value.
	Nil() V

	// False returns the boolean false value, read from #f.
	False() V

	// EOS returns the end-of-stream sentinel returned by Read when the
	// input is exhausted before any token starts.
	EOS() V
}

// TrueModel is implemented by hosts that provide a boolean true value.
// Without it #t is a syntax error.
type TrueModel[V any] interface {
	True() V
}

// UnspecifiedModel is implemented by hosts that provide an unspecified
// value, read from #u.
type UnspecifiedModel[V any] interface {
	Unspecified() V
}

// LogicalEOFModel is implemented by hosts that provide a logical
// end-of-file value, read from ##.
type LogicalEOFModel[V any] interface {
	LogicalEOF() V
}

// UnescapeModel is implemented by hosts that post-process string literals.
// Unescape receives the string constructed from the raw literal (with
// backslash pairs intact) and returns the string value to use in its
// place.  Hosts typically replace \\ and \" sequences; the reader itself
// gives no escape sequence any meaning.
type UnescapeModel[V any] interface {
	Unescape(s V) V
}

// NilSymbolModel designates a symbol that reads as the empty list.  When
// the atom scanner produces a symbol Eq to NilSymbol it returns Nil
// instead.
type NilSymbolModel[V any] interface {
	NilSymbol() V
}

// DispatchModel extends the #-dispatch table.  ReadDispatch is invoked
// with the character following # when no builtin production matches, after
// that character has been consumed.  A false second value means the
// sequence produced no datum and the reader scans for the next form.  A
// non-nil error aborts the read.
type DispatchModel[V any] interface {
	ReadDispatch(c rune) (V, bool, error)
}
