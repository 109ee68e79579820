// Copyright © 2024 The lispread authors

package tracemodel

import (
	"fmt"
	"io"

	"github.com/luthersystems/lispread/sexpr"
)

// LogModel wraps a sexpr.Model and writes one line per delegated
// operation, in call order, to an io.Writer.  It is the host binding used
// by the command line driver's --trace flag and is primarily a debugging
// aid.
type LogModel struct {
	next *sexpr.Model
	w    io.Writer
}

// NewLogModel initializes and returns a LogModel writing to w.
func NewLogModel(next *sexpr.Model, w io.Writer) *LogModel {
	return &LogModel{next: next, w: w}
}

func (m *LogModel) logf(format string, v ...interface{}) {
	fmt.Fprintf(m.w, "  read: "+format+"\n", v...)
}

func (m *LogModel) Cons(car, cdr *sexpr.SVal) *sexpr.SVal {
	m.logf("%s(%v, %v)", opCons, car, cdr)
	return m.next.Cons(car, cdr)
}

func (m *LogModel) SetCDR(pair, cdr *sexpr.SVal) {
	m.logf("%s(%v, %v)", opSetCDR, pair, cdr)
	m.next.SetCDR(pair, cdr)
}

func (m *LogModel) Symbol(text string) *sexpr.SVal {
	m.logf("%s(%q)", opSymbol, text)
	return m.next.Symbol(text)
}

func (m *LogModel) Number(text string, radix int) (*sexpr.SVal, bool) {
	v, ok := m.next.Number(text, radix)
	m.logf("%s(%q, %d) ok=%t", opNumber, text, radix, ok)
	return v, ok
}

func (m *LogModel) String(buf []byte) *sexpr.SVal {
	m.logf("%s(%q)", opString, buf)
	return m.next.String(buf)
}

func (m *LogModel) Char(c rune) *sexpr.SVal {
	m.logf("%s(%q)", opChar, c)
	return m.next.Char(c)
}

func (m *LogModel) ListToVector(list *sexpr.SVal) *sexpr.SVal {
	m.logf("%s(%v)", opListToVector, list)
	return m.next.ListToVector(list)
}

func (m *LogModel) Eq(a, b *sexpr.SVal) bool {
	eq := m.next.Eq(a, b)
	m.logf("%s(%v, %v) = %t", opEq, a, b, eq)
	return eq
}

func (m *LogModel) Nil() *sexpr.SVal {
	m.logf(opNil)
	return m.next.Nil()
}

func (m *LogModel) False() *sexpr.SVal {
	m.logf(opFalse)
	return m.next.False()
}

func (m *LogModel) EOS() *sexpr.SVal {
	m.logf(opEOS)
	return m.next.EOS()
}

func (m *LogModel) True() *sexpr.SVal {
	m.logf(opTrue)
	return m.next.True()
}

func (m *LogModel) Unspecified() *sexpr.SVal {
	m.logf(opUnspecified)
	return m.next.Unspecified()
}

func (m *LogModel) LogicalEOF() *sexpr.SVal {
	m.logf(opLogicalEOF)
	return m.next.LogicalEOF()
}

func (m *LogModel) NilSymbol() *sexpr.SVal {
	m.logf(opNilSymbol)
	return m.next.NilSymbol()
}

func (m *LogModel) Unescape(s *sexpr.SVal) *sexpr.SVal {
	v := m.next.Unescape(s)
	m.logf("%s(%v) = %v", opUnescape, s, v)
	return v
}
