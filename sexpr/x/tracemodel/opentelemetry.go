// Copyright © 2024 The lispread authors

package tracemodel

import (
	"context"

	"github.com/luthersystems/lispread/sexpr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ContextOpenTelemetryTracerKey looks up a parent tracer name from a
// context key.
const ContextOpenTelemetryTracerKey = "otelParentTracer"

// OtelModel wraps a sexpr.Model and records one OpenTelemetry span per
// delegated reader operation under the parent context it was created
// with.
type OtelModel struct {
	next *sexpr.Model
	ctx  context.Context
}

// NewOpenTelemetryModel initializes and returns an OtelModel recording
// spans under parentContext.
func NewOpenTelemetryModel(next *sexpr.Model, parentContext context.Context) *OtelModel {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return &OtelModel{next: next, ctx: parentContext}
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = "lispread"
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

func (m *OtelModel) span(op string, attrs ...attribute.KeyValue) trace.Span {
	_, span := contextTracer(m.ctx).Start(m.ctx, "lispread.host/"+op,
		trace.WithAttributes(attrs...))
	return span
}

func (m *OtelModel) Cons(car, cdr *sexpr.SVal) *sexpr.SVal {
	defer m.span(opCons).End()
	return m.next.Cons(car, cdr)
}

func (m *OtelModel) SetCDR(pair, cdr *sexpr.SVal) {
	defer m.span(opSetCDR).End()
	m.next.SetCDR(pair, cdr)
}

func (m *OtelModel) Symbol(text string) *sexpr.SVal {
	defer m.span(opSymbol, attribute.String("text", text)).End()
	return m.next.Symbol(text)
}

func (m *OtelModel) Number(text string, radix int) (*sexpr.SVal, bool) {
	span := m.span(opNumber,
		attribute.String("text", text),
		attribute.Int("radix", radix))
	v, ok := m.next.Number(text, radix)
	span.SetAttributes(attribute.Bool("ok", ok))
	span.End()
	return v, ok
}

func (m *OtelModel) String(buf []byte) *sexpr.SVal {
	defer m.span(opString, attribute.Int("len", len(buf))).End()
	return m.next.String(buf)
}

func (m *OtelModel) Char(c rune) *sexpr.SVal {
	defer m.span(opChar, attribute.String("char", string(c))).End()
	return m.next.Char(c)
}

func (m *OtelModel) ListToVector(list *sexpr.SVal) *sexpr.SVal {
	defer m.span(opListToVector).End()
	return m.next.ListToVector(list)
}

func (m *OtelModel) Eq(a, b *sexpr.SVal) bool {
	defer m.span(opEq).End()
	return m.next.Eq(a, b)
}

func (m *OtelModel) Nil() *sexpr.SVal {
	defer m.span(opNil).End()
	return m.next.Nil()
}

func (m *OtelModel) False() *sexpr.SVal {
	defer m.span(opFalse).End()
	return m.next.False()
}

func (m *OtelModel) EOS() *sexpr.SVal {
	defer m.span(opEOS).End()
	return m.next.EOS()
}

func (m *OtelModel) True() *sexpr.SVal {
	defer m.span(opTrue).End()
	return m.next.True()
}

func (m *OtelModel) Unspecified() *sexpr.SVal {
	defer m.span(opUnspecified).End()
	return m.next.Unspecified()
}

func (m *OtelModel) LogicalEOF() *sexpr.SVal {
	defer m.span(opLogicalEOF).End()
	return m.next.LogicalEOF()
}

func (m *OtelModel) NilSymbol() *sexpr.SVal {
	defer m.span(opNilSymbol).End()
	return m.next.NilSymbol()
}

func (m *OtelModel) Unescape(s *sexpr.SVal) *sexpr.SVal {
	defer m.span(opUnescape).End()
	return m.next.Unescape(s)
}
