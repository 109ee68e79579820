// Copyright © 2024 The lispread authors

package reader

import (
	"bufio"
	"io"
)

// Stream is a source of characters for a Reader.  Next consumes and
// returns the next character, returning io.EOF once the stream is
// exhausted.  Implementations are host owned and may wrap any input
// mechanism (files, sockets, line editors).
type Stream interface {
	Next() (rune, error)
}

// PeekStream is implemented by streams with native one-character
// lookahead.  When a Stream does not implement PeekStream the reader
// synthesizes lookahead with a one-character pushback buffer; no lookahead
// beyond one character is ever required.
type PeekStream interface {
	Stream
	Peek() (rune, error)
}

// NewStream returns a Stream that decodes utf-8 runes from r.  The
// returned stream has no native lookahead which exercises the reader's
// pushback synthesis.
func NewStream(r io.Reader) Stream {
	return &runeStream{br: bufio.NewReader(r)}
}

// NewPeekStream is like NewStream but the returned stream supports native
// one-rune lookahead.
func NewPeekStream(r io.Reader) PeekStream {
	return &peekRuneStream{runeStream{br: bufio.NewReader(r)}}
}

type runeStream struct {
	br *bufio.Reader
}

func (s *runeStream) Next() (rune, error) {
	c, _, err := s.br.ReadRune()
	return c, err
}

type peekRuneStream struct {
	runeStream
}

func (s *peekRuneStream) Peek() (rune, error) {
	c, _, err := s.br.ReadRune()
	if err != nil {
		return c, err
	}
	if err := s.br.UnreadRune(); err != nil {
		return c, err
	}
	return c, nil
}

// eof is the in-band end-of-stream marker used internally by the reader.
// It is distinct from any valid code point.
const eof rune = -1

// cursor adapts a Stream to the peek/next protocol the grammar needs,
// synthesizing peek from a one-rune pushback buffer when the stream has no
// native lookahead.  The cursor also tracks the location of the last
// consumed rune for error reporting.
type cursor struct {
	src      Stream
	peeker   PeekStream // non-nil when src has native lookahead
	buf      rune
	buffered bool
	done     bool

	file string
	pos  int
	line int
	col  int
}

func newCursor(file string, src Stream) *cursor {
	c := &cursor{
		src:  src,
		file: file,
		line: 1,
	}
	if p, ok := src.(PeekStream); ok {
		c.peeker = p
	}
	return c
}

// Peek returns the next rune without consuming it, or eof.
func (c *cursor) Peek() (rune, error) {
	if c.buffered {
		return c.buf, nil
	}
	if c.done {
		return eof, nil
	}
	if c.peeker != nil {
		r, err := c.peeker.Peek()
		if err == io.EOF {
			c.done = true
			return eof, nil
		}
		return r, err
	}
	r, err := c.src.Next()
	if err == io.EOF {
		c.done = true
		return eof, nil
	}
	if err != nil {
		return r, err
	}
	c.buf = r
	c.buffered = true
	return r, nil
}

// Next consumes and returns the next rune, or eof.
func (c *cursor) Next() (rune, error) {
	var r rune
	switch {
	case c.buffered:
		r = c.buf
		c.buffered = false
	case c.done:
		return eof, nil
	default:
		var err error
		r, err = c.src.Next()
		if err == io.EOF {
			c.done = true
			return eof, nil
		}
		if err != nil {
			return r, err
		}
	}
	c.pos++
	c.col++
	if r == '\n' {
		c.line++
		c.col = 0
	}
	return r, nil
}

// Loc returns the location of the cursor, at the last consumed rune.
// At the start of a line Col is zero and the location renders without a
// column.
func (c *cursor) Loc() *Location {
	return &Location{
		File: c.file,
		Pos:  c.pos,
		Line: c.line,
		Col:  c.col,
	}
}
