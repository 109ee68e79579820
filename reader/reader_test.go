// Copyright © 2024 The lispread authors

package reader_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/luthersystems/lispread/reader"
	"github.com/luthersystems/lispread/readtest"
	"github.com/luthersystems/lispread/sexpr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAtoms(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{`foo`, `foo`},
		{`+`, `+`},
		{`...`, `...`},
		{`list->vector`, `list->vector`},
		{`string?`, `string?`},
		{`éclair`, `éclair`},
		{`0`, `0`},
		{`42`, `42`},
		{`-7`, `-7`},
		{`+13`, `13`},
		{`12.5`, `12.5`},
		{`-0.25`, `-0.25`},
		{`1e3`, `1000.0`},
		{`6.02e23`, `6.02e+23`},
		{`1.`, `1.`},     // not a number, trailing dot makes it a symbol
		{`1+`, `1+`},     // common symbol in lisp dialects
		{`-`, `-`},       // bare sign is a symbol
		{`inf`, `inf`},   // never a number
		{`0x10`, `0x10`}, // go-style hex is a symbol, not 16
		{`#b101`, `5`},
		{`#B101`, `5`},
		{`#o17`, `15`},
		{`#d23`, `23`},
		{`#xff`, `255`},
		{`#x-FF`, `-255`},
		{`#ex10`, `16`},
		{`#ib101`, `5`},
		{`#eid23`, `23`},
		{`#t`, `#t`},
		{`#T`, `#t`},
		{`#f`, `#f`},
		{`#u`, `#u`},
		{`nil`, `()`},
		{`"hello"`, `"hello"`},
		{`""`, `""`},
		{`"tab\there"`, `"tab\\there"`}, // \t passes through and reprints escaped
		{`"say \"hi\""`, `"say \"hi\""`},
		{`"back\\slash"`, `"back\\slash"`},
		{`#\a`, `#\a`},
		{`#\A`, `#\A`},
		{`#\(`, `#\(`},
		{`#\7`, `#\7`},
		{`#\space`, `#\space`},
		{`#\newline`, `#\newline`},
		{`#\Space`, `#\space`},
	}
	for _, test := range tests {
		readtest.AssertPrints(t, test.want, test.source)
	}
}

func TestReadLists(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{`()`, `()`},
		{`(1 2 3)`, `(1 2 3)`},
		{`( 1  2   3 )`, `(1 2 3)`},
		{`(a (b (c)))`, `(a (b (c)))`},
		{`(1 . 2)`, `(1 . 2)`},
		{`(1 2 . 3)`, `(1 2 . 3)`},
		{`(1 . (2 . ()))`, `(1 2)`},
		{`[1 2 3]`, `(1 2 3)`},
		{`[a [b]]`, `(a (b))`},
		{`(a . b)`, `(a . b)`},
		{`'foo`, `'foo`},
		{`'(1 2)`, `'(1 2)`},
		{"`(a ,b ,@c)", "`(a ,b ,@c)"},
		{`''x`, `''x`},
		{`(quote x)`, `'x`},
		{`#(1 2 3)`, `#(1 2 3)`},
		{`#()`, `#()`},
		{`#[1 2]`, `#(1 2)`},
		{`#(a #(b))`, `#(a #(b))`},
		{`(#t #f ())`, `(#t #f ())`},
	}
	for _, test := range tests {
		readtest.AssertPrints(t, test.want, test.source)
	}
}

func TestReadComments(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"; leading comment\n42", `42`},
		{"42 ; trailing comment", `42`},
		{"(1 ; inside\n 2)", `(1 2)`},
		{"#!/usr/bin/env lispread\n42", `42`},
		{"#| block |# 42", `42`},
		{"#| outer #| inner |# outer |# 42", `42`},
		{"#|\nmultiple\nlines\n|#42", `42`},
		{"#;(ignore me) 42", `42`},
		{"#;1 2", `2`},
		{"(1 #;2 3)", `(1 3)`},
	}
	for _, test := range tests {
		readtest.AssertPrints(t, test.want, test.source)
	}
}

func TestReadAll(t *testing.T) {
	tests := []struct {
		source string
		count  int
	}{
		{``, 0},
		{"  \n\t ", 0},
		{"; just a comment", 0},
		{"#| nothing here |#", 0},
		{`1`, 1},
		{`1 2 3`, 3},
		{"(a)\n(b)\n", 2},
		{`'x 'y`, 2},
	}
	for _, test := range tests {
		vs, err := readtest.ReadString(test.source)
		if assert.NoError(t, err, "source: %q", test.source) {
			assert.Len(t, vs, test.count, "source: %q", test.source)
		}
	}
}

func TestReadEOS(t *testing.T) {
	m := sexpr.NewModel()
	r := reader.New[*sexpr.SVal](m, "test", reader.NewStream(bytes.NewReader(nil)))
	for i := 0; i < 3; i++ {
		v, err := r.Read()
		require.NoError(t, err)
		assert.True(t, m.Eq(v, m.EOS()), "read %d at end of stream", i)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		source    string
		condition string
	}{
		{`(1 2`, reader.ErrUnterminatedList},
		{`(1 (2)`, reader.ErrUnterminatedList},
		{`[1 2`, reader.ErrUnterminatedList},
		{`(1 . 2`, reader.ErrUnterminatedList},
		{`"abc`, reader.ErrUnterminatedString},
		{`"abc\"`, reader.ErrUnterminatedString},
		{`"abc\`, reader.ErrUnterminatedString},
		{`#|abc`, reader.ErrUnterminatedComment},
		{`#| #| |#`, reader.ErrUnterminatedComment},
		{`'`, reader.ErrUnexpectedEOF},
		{`(1 '`, reader.ErrUnexpectedEOF},
		{`#;`, reader.ErrUnexpectedEOF},
		{`#`, reader.ErrUnexpectedEOF},
		{`#\`, reader.ErrUnexpectedEOF},
		{`(. 1)`, reader.ErrInvalidDotSyntax},
		{`(1 2 . 3 4)`, reader.ErrUnmatchedSyntax},
		{`#\barf`, reader.ErrUnknownCharName},
		{`#b12`, reader.ErrInvalidNumber},
		{`#b`, reader.ErrInvalidNumber},
		{`#xfg`, reader.ErrInvalidNumber},
		{`#d1a`, reader.ErrInvalidNumber},
		{`#z`, reader.ErrBadDispatchMacro},
		{`)`, reader.ErrUnexpectedChar},
		{`(1))`, reader.ErrUnexpectedChar},
	}
	for _, test := range tests {
		readtest.AssertErrorCondition(t, test.condition, test.source)
	}
}

func TestReadErrorLocation(t *testing.T) {
	m := sexpr.NewModel()
	r := reader.New[*sexpr.SVal](m, "input.scm",
		reader.NewStream(bytes.NewReader([]byte("(a b)\n(c\n"))))
	_, err := r.Read()
	require.NoError(t, err)
	_, err = r.Read()
	require.Error(t, err)
	serr := &reader.SyntaxError{}
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, reader.ErrUnterminatedList, serr.Condition)
	require.NotNil(t, serr.Source)
	assert.Equal(t, "input.scm", serr.Source.File)
	assert.Equal(t, 3, serr.Source.Line)
	assert.Contains(t, err.Error(), "input.scm:3")
}

func TestReadBracketsDisabled(t *testing.T) {
	m := sexpr.NewModel()
	read := func(text string) (*sexpr.SVal, error) {
		r := reader.New[*sexpr.SVal](m, "test",
			reader.NewStream(bytes.NewReader([]byte(text))))
		return r.Read()
	}

	// A token-initial bracket is rejected when bracket lists are off.
	_, err := read(`[1`)
	require.Error(t, err)
	serr := &reader.SyntaxError{}
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, reader.ErrUnexpectedChar, serr.Condition)

	// Inside a token a bracket is ordinary symbol text.
	v, err := read(`(a[b c)`)
	require.NoError(t, err)
	require.True(t, sexpr.IsList(v))
	assert.Equal(t, `(a[b c)`, v.String())
}

func TestReadExactnessPrefix(t *testing.T) {
	// #e and #i consume their character and re-enter the hash dispatch;
	// the following character is interpreted exactly as if it had
	// directly followed the '#'.
	m := sexpr.NewModel()
	read := func(text string) ([]*sexpr.SVal, error) {
		r := reader.New[*sexpr.SVal](m, "test",
			reader.NewStream(bytes.NewReader([]byte(text))))
		return r.ReadAll()
	}

	// A digit after the prefix is not a dispatch production.
	for _, text := range []string{`#e10`, `#i10`, `#e-2`} {
		_, err := read(text)
		require.Error(t, err, "source: %q", text)
		serr := &reader.SyntaxError{}
		require.ErrorAs(t, err, &serr, "source: %q", text)
		assert.Equal(t, reader.ErrBadDispatchMacro, serr.Condition, "source: %q", text)
	}

	// '#' after the prefix is the logical EOF production.
	vs, err := read(`#e#`)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.True(t, m.Eq(vs[0], m.LogicalEOF()))

	vs, err = read(`#e#x10`)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.True(t, m.Eq(vs[0], m.LogicalEOF()))
	assert.True(t, m.Eq(vs[1], m.Symbol("x10")))
}

func TestReadShebangDisabled(t *testing.T) {
	m := sexpr.NewModel()
	r := reader.New[*sexpr.SVal](m, "test",
		reader.NewStream(bytes.NewReader([]byte("#!/bin/sh\n42"))),
		reader.WithShebang[*sexpr.SVal](false))
	_, err := r.Read()
	require.Error(t, err)
	serr := &reader.SyntaxError{}
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, reader.ErrBadDispatchMacro, serr.Condition)
}

func TestReadRoundTrip(t *testing.T) {
	sources := []string{
		`42`,
		`-3.25`,
		`foo`,
		`"a \"quoted\" string"`,
		`#\x`,
		`#\space`,
		`(1 2 3)`,
		`(1 . 2)`,
		`(a (b . c) #(d "e") #\f)`,
		`'(quoted list)`,
		"`(a ,b ,@c)",
		`#(1 #(2) ())`,
		`(#t #f #u)`,
	}
	for _, source := range sources {
		readtest.AssertRoundTrip(t, source)
	}
}

func TestReadPeekStream(t *testing.T) {
	// The same sources must read identically through a stream with native
	// lookahead and one that forces pushback synthesis.
	sources := []string{
		`(a b (c . d))`,
		`#(1 2.5 "three")`,
		"; comment\n'(x)",
	}
	m := sexpr.NewModel()
	for _, source := range sources {
		rp := reader.New[*sexpr.SVal](m, "peek",
			reader.NewPeekStream(bytes.NewReader([]byte(source))),
			reader.WithBracketLists[*sexpr.SVal](true))
		rn := reader.New[*sexpr.SVal](m, "nopeek",
			reader.NewStream(bytes.NewReader([]byte(source))),
			reader.WithBracketLists[*sexpr.SVal](true))
		vp, err := rp.ReadAll()
		require.NoError(t, err, "source: %q", source)
		vn, err := rn.ReadAll()
		require.NoError(t, err, "source: %q", source)
		require.Equal(t, len(vp), len(vn), "source: %q", source)
		for i := range vp {
			assert.True(t, sexpr.Equal(vp[i], vn[i]), "source: %q", source)
		}
	}
}

func TestReadSymbolIdentity(t *testing.T) {
	m := sexpr.NewModel()
	r := reader.New[*sexpr.SVal](m, "test",
		reader.NewStream(bytes.NewReader([]byte(`(foo foo)`))))
	v, err := r.Read()
	require.NoError(t, err)
	require.Equal(t, sexpr.SPair, v.Type)
	assert.True(t, m.Eq(v.Car, v.Cdr.Car), "occurrences of a symbol intern to the same value")
}

func TestReadDeepNesting(t *testing.T) {
	const depth = 1000
	var buf bytes.Buffer
	for i := 0; i < depth; i++ {
		buf.WriteByte('(')
	}
	buf.WriteString("x")
	for i := 0; i < depth; i++ {
		buf.WriteByte(')')
	}
	m := sexpr.NewModel()
	r := reader.New[*sexpr.SVal](m, "test", reader.NewStream(&buf))
	v, err := r.Read()
	require.NoError(t, err)
	for i := 0; i < depth; i++ {
		require.Equal(t, sexpr.SPair, v.Type, "depth %d", i)
		v = v.Car
	}
	assert.Equal(t, sexpr.SSymbol, v.Type)
}

func TestReadLongList(t *testing.T) {
	const n = 10000
	var buf bytes.Buffer
	buf.WriteByte('(')
	for i := 0; i < n; i++ {
		fmt.Fprintf(&buf, "%d ", i)
	}
	buf.WriteByte(')')
	m := sexpr.NewModel()
	r := reader.New[*sexpr.SVal](m, "test", reader.NewStream(&buf))
	v, err := r.Read()
	require.NoError(t, err)
	count := 0
	for ; v.Type == sexpr.SPair; v = v.Cdr {
		require.Equal(t, int64(count), v.Car.Int)
		count++
	}
	assert.Equal(t, n, count)
	assert.Equal(t, sexpr.SNil, v.Type)
}
