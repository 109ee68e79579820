// Copyright © 2024 The lispread authors

package tracemodel

import (
	"context"

	"github.com/luthersystems/lispread/sexpr"
	octrace "go.opencensus.io/trace"
)

// OpenCensusModel wraps a sexpr.Model and records one OpenCensus span per
// delegated reader operation under the parent context it was created
// with.
type OpenCensusModel struct {
	next *sexpr.Model
	ctx  context.Context
}

// NewOpenCensusModel initializes and returns an OpenCensusModel recording
// spans under parentContext.
func NewOpenCensusModel(next *sexpr.Model, parentContext context.Context) *OpenCensusModel {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return &OpenCensusModel{next: next, ctx: parentContext}
}

func (m *OpenCensusModel) span(op string, attrs ...octrace.Attribute) *octrace.Span {
	_, span := octrace.StartSpan(m.ctx, "lispread.host/"+op)
	if len(attrs) > 0 {
		span.AddAttributes(attrs...)
	}
	return span
}

func (m *OpenCensusModel) Cons(car, cdr *sexpr.SVal) *sexpr.SVal {
	defer m.span(opCons).End()
	return m.next.Cons(car, cdr)
}

func (m *OpenCensusModel) SetCDR(pair, cdr *sexpr.SVal) {
	defer m.span(opSetCDR).End()
	m.next.SetCDR(pair, cdr)
}

func (m *OpenCensusModel) Symbol(text string) *sexpr.SVal {
	defer m.span(opSymbol, octrace.StringAttribute("text", text)).End()
	return m.next.Symbol(text)
}

func (m *OpenCensusModel) Number(text string, radix int) (*sexpr.SVal, bool) {
	span := m.span(opNumber,
		octrace.StringAttribute("text", text),
		octrace.Int64Attribute("radix", int64(radix)))
	v, ok := m.next.Number(text, radix)
	span.AddAttributes(octrace.BoolAttribute("ok", ok))
	span.End()
	return v, ok
}

func (m *OpenCensusModel) String(buf []byte) *sexpr.SVal {
	defer m.span(opString, octrace.Int64Attribute("len", int64(len(buf)))).End()
	return m.next.String(buf)
}

func (m *OpenCensusModel) Char(c rune) *sexpr.SVal {
	defer m.span(opChar, octrace.StringAttribute("char", string(c))).End()
	return m.next.Char(c)
}

func (m *OpenCensusModel) ListToVector(list *sexpr.SVal) *sexpr.SVal {
	defer m.span(opListToVector).End()
	return m.next.ListToVector(list)
}

func (m *OpenCensusModel) Eq(a, b *sexpr.SVal) bool {
	defer m.span(opEq).End()
	return m.next.Eq(a, b)
}

func (m *OpenCensusModel) Nil() *sexpr.SVal {
	defer m.span(opNil).End()
	return m.next.Nil()
}

func (m *OpenCensusModel) False() *sexpr.SVal {
	defer m.span(opFalse).End()
	return m.next.False()
}

func (m *OpenCensusModel) EOS() *sexpr.SVal {
	defer m.span(opEOS).End()
	return m.next.EOS()
}

func (m *OpenCensusModel) True() *sexpr.SVal {
	defer m.span(opTrue).End()
	return m.next.True()
}

func (m *OpenCensusModel) Unspecified() *sexpr.SVal {
	defer m.span(opUnspecified).End()
	return m.next.Unspecified()
}

func (m *OpenCensusModel) LogicalEOF() *sexpr.SVal {
	defer m.span(opLogicalEOF).End()
	return m.next.LogicalEOF()
}

func (m *OpenCensusModel) NilSymbol() *sexpr.SVal {
	defer m.span(opNilSymbol).End()
	return m.next.NilSymbol()
}

func (m *OpenCensusModel) Unescape(s *sexpr.SVal) *sexpr.SVal {
	defer m.span(opUnescape).End()
	return m.next.Unescape(s)
}
