// Copyright © 2024 The lispread authors

package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorNext(t *testing.T) {
	c := newCursor("test", NewStream(strings.NewReader("ab\nc")))
	for _, want := range []rune{'a', 'b', '\n', 'c'} {
		r, err := c.Next()
		require.NoError(t, err)
		assert.Equal(t, want, r)
	}
	r, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, eof, r, "exhausted cursor returns the eof marker")
	r, err = c.Next()
	require.NoError(t, err)
	assert.Equal(t, eof, r, "eof repeats on subsequent calls")
}

func TestCursorPeek(t *testing.T) {
	streams := map[string]func(string) Stream{
		"pushback": func(s string) Stream { return NewStream(strings.NewReader(s)) },
		"native":   func(s string) Stream { return NewPeekStream(strings.NewReader(s)) },
	}
	for name, mkstream := range streams {
		t.Run(name, func(t *testing.T) {
			c := newCursor("test", mkstream("xy"))
			r, err := c.Peek()
			require.NoError(t, err)
			assert.Equal(t, 'x', r)
			r, err = c.Peek()
			require.NoError(t, err)
			assert.Equal(t, 'x', r, "peek does not consume")
			r, err = c.Next()
			require.NoError(t, err)
			assert.Equal(t, 'x', r)
			r, err = c.Next()
			require.NoError(t, err)
			assert.Equal(t, 'y', r)
			r, err = c.Peek()
			require.NoError(t, err)
			assert.Equal(t, eof, r)
		})
	}
}

func TestCursorLoc(t *testing.T) {
	c := newCursor("file.scm", NewStream(strings.NewReader("ab\ncd")))
	assert.Equal(t, "file.scm:1", c.Loc().String())
	c.Next() // a
	c.Next() // b
	loc := c.Loc()
	assert.Equal(t, 1, loc.Line)
	assert.Equal(t, 2, loc.Pos)
	assert.Equal(t, 2, loc.Col)
	assert.Equal(t, "file.scm:1:2", loc.String())
	c.Next() // newline resets the column
	loc = c.Loc()
	assert.Equal(t, 2, loc.Line)
	assert.Equal(t, 0, loc.Col)
	assert.Equal(t, "file.scm:2", loc.String())
	c.Next() // c
	loc = c.Loc()
	assert.Equal(t, 2, loc.Line)
	assert.Equal(t, 4, loc.Pos)
	assert.Equal(t, 1, loc.Col)
	assert.Equal(t, "file.scm:2:1", loc.String())
}

func TestCursorPeekDoesNotAdvanceLoc(t *testing.T) {
	c := newCursor("test", NewStream(strings.NewReader("ab")))
	_, err := c.Peek()
	require.NoError(t, err)
	assert.Equal(t, 0, c.Loc().Pos, "position reflects consumed runes only")
	_, err = c.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Loc().Pos)
}

func TestCursorUnicode(t *testing.T) {
	c := newCursor("test", NewStream(strings.NewReader("héllo")))
	want := []rune("héllo")
	for i, wr := range want {
		r, err := c.Next()
		require.NoError(t, err)
		assert.Equal(t, wr, r, "rune %d", i)
	}
	assert.Equal(t, len(want), c.Loc().Pos, "position counts runes, not bytes")
}
