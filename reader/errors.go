// Copyright © 2024 The lispread authors

package reader

import "fmt"

// Reader error condition names.  Every *SyntaxError produced by this
// package carries one of these in its Condition field so hosts can react
// to error classes without matching message text.
const (
	ErrUnexpectedChar      = "unexpected-character"
	ErrUnexpectedEOF       = "unexpected-eof"
	ErrUnterminatedString  = "unterminated-string"
	ErrUnterminatedList    = "unterminated-list"
	ErrUnterminatedComment = "unterminated-comment"
	ErrUnmatchedSyntax     = "unmatched-syntax"
	ErrInvalidDotSyntax    = "invalid-dot-syntax"
	ErrUnknownCharName     = "unknown-char-name"
	ErrInvalidNumber       = "invalid-number"
	ErrBadDispatchMacro    = "bad-dispatch-macro"
)

// Location identifies a position in a source stream.
type Location struct {
	File string // a name representing the source stream
	Pos  int    // rune offset from the start of the stream
	Line int    // line number (starting at 1)
	Col  int    // line column number (starting at 1)
}

func (loc *Location) String() string {
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

// SyntaxError is the fatal error type produced by a Reader.  The first
// syntax error encountered aborts the entire Read call; there is no
// recovery or partial result.
type SyntaxError struct {
	Condition string
	Message   string
	Source    *Location
}

func (err *SyntaxError) Error() string {
	if err.Source == nil {
		return fmt.Sprintf("%s: %s", err.Condition, err.Message)
	}
	return fmt.Sprintf("%s: %s: %s", err.Source, err.Condition, err.Message)
}
