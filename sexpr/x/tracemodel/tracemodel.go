// Copyright © 2024 The lispread authors

// Package tracemodel provides host-model wrappers that annotate every
// operation the reader delegates to the host.  Wrappers exist for plain
// line logging, OpenTelemetry spans and OpenCensus spans; all of them
// wrap a *sexpr.Model and implement the full capability set of the
// reader's host contract.
package tracemodel

// Delegated operation names used in log lines and span names.
const (
	opCons         = "cons"
	opSetCDR       = "set-cdr"
	opSymbol       = "symbol"
	opNumber       = "number"
	opString       = "string"
	opChar         = "char"
	opListToVector = "list-to-vector"
	opEq           = "eq"
	opNil          = "nil"
	opFalse        = "false"
	opEOS          = "eos"
	opTrue         = "true"
	opUnspecified  = "unspecified"
	opLogicalEOF   = "logical-eof"
	opNilSymbol    = "nil-symbol"
	opUnescape     = "unescape"
)
