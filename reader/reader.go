// Copyright © 2024 The lispread authors

// Package reader implements a generic reader for a Scheme-like surface
// syntax.  The reader owns no data representation of its own; every value
// it produces is constructed through a host-supplied Model, making the
// package reusable across host runtimes with different value types,
// allocators and symbol tables.
//
// The surface syntax is a subset of R5RS Scheme with common extensions:
//
//	Comments      ;...\n  #!...\n  #|...|# (nesting)  #;DATUM
//	Quote forms   'x  `x  ,x  ,@x
//	Lists         (a b ...)  [a b ...] (optional)
//	Dotted pairs  (a . d)
//	Vectors       #(a b ...)  #[a b ...] (optional)
//	Characters    #\C  #\space  #\newline
//	Booleans      #f  #F  #t  #T (optional)
//	Unspecified   #u  #U (optional)
//	Logical EOF   ## (optional)
//	Numbers       #b0101, #o17, #d23, #xff, 1234, 12.5
//	Strings       "..." with \" and \\ kept for the host to decode
//	Symbols       everything else
package reader

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// symbolRunes are the punctuation characters that may appear in an atom
// token in addition to letters and digits.
const symbolRunes = "~!@$%&*_+-=:<>^.?/|"

// Reader reads s-expressions from a character stream, one form per call
// to Read.  A Reader is bound to a single stream for its lifetime because
// it may hold one character of lookahead between calls.
//
// Reading is synchronous and recursive; the descent depth equals the
// nesting depth of the input and is bounded only by the available call
// stack.  A Reader performs no locking and is safe for concurrent use
// only if the host model's operations are.
type Reader[V any] struct {
	model    Model[V]
	cur      *cursor
	brackets bool
	shebang  bool
}

// Option configures a Reader.
type Option[V any] func(*Reader[V])

// WithBracketLists enables the [...] list syntax and #[...] vectors.
// When enabled the bracket characters also terminate atom tokens.
func WithBracketLists[V any](on bool) Option[V] {
	return func(r *Reader[V]) {
		r.brackets = on
	}
}

// WithShebang controls whether #! comments out the rest of the line, as
// in executable scripts.  Enabled by default; when disabled #! falls
// through to the host's dispatch extension hook.
func WithShebang[V any](on bool) Option[V] {
	return func(r *Reader[V]) {
		r.shebang = on
	}
}

// New initializes and returns a Reader that reads values for model from
// src.  The name identifies the stream in error messages.
func New[V any](model Model[V], name string, src Stream, opts ...Option[V]) *Reader[V] {
	r := &Reader[V]{
		model:   model,
		cur:     newCursor(name, src),
		shebang: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read reads one form from the stream.  At the end of the stream, when no
// token has started, Read returns the model's end-of-stream sentinel and a
// nil error.  The first syntax error encountered anywhere in the descent
// aborts the call with a *SyntaxError; end of stream inside a started
// construct is always an error.
func (r *Reader[V]) Read() (V, error) {
	// Constructs that produce no datum (comments, datum comments,
	// no-match dispatch extensions) restart the read from scratch.
	for {
		v, produced, err := r.readForm()
		if err != nil {
			var zero V
			return zero, err
		}
		if produced {
			return v, nil
		}
	}
}

// ReadAll reads forms until the end of the stream and returns them.  The
// end-of-stream sentinel itself is not included in the result.
func (r *Reader[V]) ReadAll() ([]V, error) {
	var vs []V
	for {
		v, err := r.Read()
		if err != nil {
			return nil, err
		}
		if r.model.Eq(v, r.model.EOS()) {
			return vs, nil
		}
		vs = append(vs, v)
	}
}

// readForm classifies the next significant character and reads one form.
// A false second value means the construct produced no datum and the read
// should restart.
func (r *Reader[V]) readForm() (V, bool, error) {
	var zero V
	c, err := r.skipAndPeek()
	if err != nil {
		return zero, false, err
	}
	if c == eof {
		return r.model.EOS(), true, nil
	}
	if _, err := r.cur.Next(); err != nil {
		return zero, false, err
	}
	switch c {
	case '\'':
		return r.readQuoted("quote")
	case '`':
		return r.readQuoted("quasiquote")
	case ',':
		p, err := r.cur.Peek()
		if err != nil {
			return zero, false, err
		}
		if p == '@' {
			r.cur.Next()
			return r.readQuoted("unquote-splicing")
		}
		return r.readQuoted("unquote")
	case '(':
		v, err := r.readList(')')
		return v, true, err
	case '[':
		if r.brackets {
			v, err := r.readList(']')
			return v, true, err
		}
	case '#':
		return r.readHash()
	case '"':
		v, err := r.readString()
		return v, true, err
	default:
		if r.atomStart(c) {
			v, err := r.readAtom(c, 10, false)
			return v, true, err
		}
	}
	return zero, false, r.errorf(ErrUnexpectedChar, "unexpected character %q", c)
}

// readSub reads one nested form.  End of stream is an error because the
// enclosing construct has already started.
func (r *Reader[V]) readSub() (V, error) {
	v, err := r.Read()
	if err != nil {
		return v, err
	}
	if r.model.Eq(v, r.model.EOS()) {
		var zero V
		return zero, r.errorf(ErrUnexpectedEOF, "end of stream inside form")
	}
	return v, nil
}

// readQuoted reads the form following a quote marker and wraps it in a
// two-element list headed by the named symbol.
func (r *Reader[V]) readQuoted(sym string) (V, bool, error) {
	x, err := r.readSub()
	if err != nil {
		var zero V
		return zero, false, err
	}
	head := r.model.Symbol(sym)
	return r.model.Cons(head, r.model.Cons(x, r.model.Nil())), true, nil
}

// readHash handles the #-dispatch table.  The leading # has been consumed
// and the dispatch character is peeked, not consumed, on entry.
func (r *Reader[V]) readHash() (V, bool, error) {
	var zero V
	// Exactness prefixes restart the dispatch on the following character.
	for {
		c, err := r.cur.Peek()
		if err != nil {
			return zero, false, err
		}
		switch {
		case c == eof:
			return zero, false, r.errorf(ErrUnexpectedEOF, "end of stream after '#'")
		case c == '!' && r.shebang:
			// Shebang comment through the end of the line.
			r.cur.Next()
			if err := r.skipLine(); err != nil {
				return zero, false, err
			}
			return zero, false, nil
		case c == '|':
			r.cur.Next()
			if err := r.skipBlockComment(); err != nil {
				return zero, false, err
			}
			return zero, false, nil
		case c == ';':
			// Datum comment: read and discard one complete form.
			r.cur.Next()
			if _, err := r.readSub(); err != nil {
				return zero, false, err
			}
			return zero, false, nil
		case c == '(' || (r.brackets && c == '['):
			r.cur.Next()
			term := ')'
			if c == '[' {
				term = ']'
			}
			l, err := r.readList(term)
			if err != nil {
				return zero, false, err
			}
			return r.model.ListToVector(l), true, nil
		case c == '\\':
			v, err := r.readCharLiteral()
			return v, true, err
		case c == 'f' || c == 'F':
			r.cur.Next()
			return r.model.False(), true, nil
		case c == 't' || c == 'T':
			if m, ok := r.model.(TrueModel[V]); ok {
				r.cur.Next()
				return m.True(), true, nil
			}
			return r.readDispatchExt(c)
		case c == 'u' || c == 'U':
			if m, ok := r.model.(UnspecifiedModel[V]); ok {
				r.cur.Next()
				return m.Unspecified(), true, nil
			}
			return r.readDispatchExt(c)
		case c == '#':
			if m, ok := r.model.(LogicalEOFModel[V]); ok {
				r.cur.Next()
				return m.LogicalEOF(), true, nil
			}
			return r.readDispatchExt(c)
		case c == 'e' || c == 'E' || c == 'i' || c == 'I':
			// Exactness is accepted but not separately tracked.
			r.cur.Next()
			continue
		case c == 'b' || c == 'B':
			r.cur.Next()
			v, err := r.readAtom(0, 2, true)
			return v, true, err
		case c == 'o' || c == 'O':
			r.cur.Next()
			v, err := r.readAtom(0, 8, true)
			return v, true, err
		case c == 'd' || c == 'D':
			r.cur.Next()
			v, err := r.readAtom(0, 10, true)
			return v, true, err
		case c == 'x' || c == 'X':
			r.cur.Next()
			v, err := r.readAtom(0, 16, true)
			return v, true, err
		default:
			return r.readDispatchExt(c)
		}
	}
}

// readDispatchExt consumes an unrecognized dispatch character and hands it
// to the host's extension hook, when one exists.
func (r *Reader[V]) readDispatchExt(c rune) (V, bool, error) {
	var zero V
	r.cur.Next()
	m, ok := r.model.(DispatchModel[V])
	if !ok {
		return zero, false, r.errorf(ErrBadDispatchMacro, "bad dispatch sequence: #%c", c)
	}
	v, produced, err := m.ReadDispatch(c)
	if err != nil {
		return zero, false, err
	}
	if !produced {
		return zero, false, nil
	}
	return v, true, nil
}

// readCharLiteral reads a #\ character literal.  The backslash is peeked,
// not consumed, on entry.
func (r *Reader[V]) readCharLiteral() (V, error) {
	var zero V
	r.cur.Next() // the backslash
	c, err := r.cur.Next()
	if err != nil {
		return zero, err
	}
	if c == eof {
		return zero, r.errorf(ErrUnexpectedEOF, `end of stream after '#\'`)
	}
	if isAlpha(c) {
		var name strings.Builder
		name.WriteRune(c)
		for {
			p, err := r.cur.Peek()
			if err != nil {
				return zero, err
			}
			if !isAlpha(p) || r.terminating(p) {
				break
			}
			r.cur.Next()
			name.WriteRune(p)
		}
		s := name.String()
		switch {
		case strings.EqualFold(s, "space"):
			c = ' '
		case strings.EqualFold(s, "newline"):
			c = '\n'
		case len(s) > 1:
			return zero, r.errorf(ErrUnknownCharName, `unknown character name #\%s`, s)
		}
	}
	return r.model.Char(c), nil
}

// readString reads a string literal.  The opening quote has been
// consumed.  A backslash unconditionally buffers the following character;
// no escape sequence is given meaning here.  Decoding, if any, is the
// host's UnescapeModel capability.
func (r *Reader[V]) readString() (V, error) {
	var zero V
	var buf []byte
	for {
		c, err := r.cur.Next()
		if err != nil {
			return zero, err
		}
		if c == eof {
			return zero, r.errorf(ErrUnterminatedString, "end of stream in string")
		}
		if c == '"' {
			break
		}
		buf = utf8.AppendRune(buf, c)
		if c == '\\' {
			c, err = r.cur.Next()
			if err != nil {
				return zero, err
			}
			if c == eof {
				return zero, r.errorf(ErrUnterminatedString, "end of stream in string")
			}
			buf = utf8.AppendRune(buf, c)
		}
	}
	s := r.model.String(buf)
	if m, ok := r.model.(UnescapeModel[V]); ok {
		s = m.Unescape(s)
	}
	return s, nil
}

// readAtom scans a maximal run of non-terminating characters and asks the
// host to interpret it as a number at the given radix, falling back to a
// symbol.  When explicit is set the token followed a radix prefix: the
// prefix character is excluded from the token text and a failed number
// parse is fatal instead of producing a symbol.
func (r *Reader[V]) readAtom(seed rune, radix int, explicit bool) (V, error) {
	var zero V
	var buf strings.Builder
	if !explicit {
		buf.WriteRune(seed)
	}
	for {
		c, err := r.cur.Peek()
		if err != nil {
			return zero, err
		}
		if r.terminating(c) {
			break
		}
		r.cur.Next()
		buf.WriteRune(c)
	}
	text := buf.String()
	if v, ok := r.model.Number(text, radix); ok {
		return v, nil
	}
	if explicit {
		return zero, r.errorf(ErrInvalidNumber, "invalid number text %q", text)
	}
	sym := r.model.Symbol(text)
	if m, ok := r.model.(NilSymbolModel[V]); ok && r.model.Eq(sym, m.NilSymbol()) {
		return r.model.Nil(), nil
	}
	return sym, nil
}

// readList builds a cons chain until the terminator character, handling
// the dotted tail form.  Vectors reuse this routine followed by a single
// ListToVector call.
func (r *Reader[V]) readList(term rune) (V, error) {
	var zero V
	head := r.model.Nil()
	tail := r.model.Nil()
	dot := r.model.Symbol(".")
	for {
		c, err := r.skipAndPeek()
		if err != nil {
			return zero, err
		}
		if c == eof {
			return zero, r.errorf(ErrUnterminatedList, "end of stream in list")
		}
		if c == term {
			r.cur.Next()
			break
		}
		x, err := r.readSub()
		if err != nil {
			return zero, err
		}
		if r.model.Eq(x, dot) {
			if r.model.Eq(tail, r.model.Nil()) {
				return zero, r.errorf(ErrInvalidDotSyntax, "expected something before '.' in list")
			}
			final, err := r.readSub()
			if err != nil {
				return zero, err
			}
			r.model.SetCDR(tail, final)
			c, err := r.skipAndPeek()
			if err != nil {
				return zero, err
			}
			if c == eof {
				return zero, r.errorf(ErrUnterminatedList, "end of stream in dotted list")
			}
			r.cur.Next()
			if c != term {
				return zero, r.errorf(ErrUnmatchedSyntax, "expected %q to close list: found %q", term, c)
			}
			break
		}
		pair := r.model.Cons(x, r.model.Nil())
		if r.model.Eq(tail, r.model.Nil()) {
			head = pair
		} else {
			r.model.SetCDR(tail, pair)
		}
		tail = pair
	}
	return head, nil
}

// skipAndPeek consumes whitespace and line comments and returns the first
// significant character without consuming it, or eof.
func (r *Reader[V]) skipAndPeek() (rune, error) {
	for {
		c, err := r.cur.Peek()
		if err != nil {
			return 0, err
		}
		switch {
		case c == eof:
			return eof, nil
		case unicode.IsSpace(c):
			r.cur.Next()
		case c == ';':
			if err := r.skipLine(); err != nil {
				return 0, err
			}
		default:
			return c, nil
		}
	}
}

// skipLine consumes characters through, but not including, the next
// newline.
func (r *Reader[V]) skipLine() error {
	for {
		c, err := r.cur.Peek()
		if err != nil {
			return err
		}
		if c == eof || c == '\n' {
			return nil
		}
		r.cur.Next()
	}
}

// skipBlockComment consumes a balanced #| ... |# comment.  The opening #|
// has been consumed.  Nesting is tracked by counting markers.
func (r *Reader[V]) skipBlockComment() error {
	level := 1
	for level > 0 {
		c, err := r.cur.Next()
		if err != nil {
			return err
		}
		if c == eof {
			return r.errorf(ErrUnterminatedComment, "end of stream inside #| comment |#")
		}
		p, err := r.cur.Peek()
		if err != nil {
			return err
		}
		if c == '|' && p == '#' {
			r.cur.Next()
			level--
		} else if c == '#' && p == '|' {
			r.cur.Next()
			level++
		}
	}
	return nil
}

// terminating is the shared token-boundary predicate: the characters that
// end an atom token without being consumed as part of it.
func (r *Reader[V]) terminating(c rune) bool {
	switch c {
	case eof, ';', '(', ')', '#':
		return true
	case '[', ']':
		return r.brackets
	}
	return unicode.IsSpace(c)
}

// atomStart reports whether c may begin an atom token.  Any code point
// outside ASCII is allowed so multi-byte symbols pass through untouched.
func (r *Reader[V]) atomStart(c rune) bool {
	if c >= utf8.RuneSelf {
		return true
	}
	return isAlpha(c) || isDigit(c) || strings.ContainsRune(symbolRunes, c)
}

func (r *Reader[V]) errorf(condition string, format string, v ...interface{}) error {
	return &SyntaxError{
		Condition: condition,
		Message:   fmt.Sprintf(format, v...),
		Source:    r.cur.Loc(),
	}
}

func isAlpha(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
