// Copyright © 2024 The lispread authors

// Package readtest contains helpers for testing readers against the
// sample sexpr model.
package readtest

import (
	"bytes"
	_ "embed"
	"testing"

	"github.com/luthersystems/lispread/reader"
	"github.com/luthersystems/lispread/sexpr"
	"github.com/stretchr/testify/assert"
)

//go:embed testdata/forms.lisp
var sampleSource []byte

// SampleSource returns a bundled source file exercising most of the
// surface syntax, for use in cross-reader tests and benchmarks.
func SampleSource() []byte {
	return sampleSource
}

// ReadString reads every form in text with a fresh model and returns
// them.  Bracket lists are enabled, matching the command line defaults.
func ReadString(text string) ([]*sexpr.SVal, error) {
	m := sexpr.NewModel()
	r := reader.New[*sexpr.SVal](m, "test",
		reader.NewStream(bytes.NewReader([]byte(text))),
		reader.WithBracketLists[*sexpr.SVal](true))
	return r.ReadAll()
}

// MustRead reads exactly one form from text and fails the test when the
// text contains errors or a different number of forms.
func MustRead(t testing.TB, text string) *sexpr.SVal {
	t.Helper()
	vs, err := ReadString(text)
	if err != nil {
		t.Fatalf("read %q: %v", text, err)
	}
	if len(vs) != 1 {
		t.Fatalf("read %q: expected 1 form, got %d", text, len(vs))
	}
	return vs[0]
}

// AssertPrints asserts that text reads as a single form printing as
// want.
func AssertPrints(t testing.TB, want string, text string) bool {
	t.Helper()
	return assert.Equal(t, want, MustRead(t, text).String())
}

// AssertRoundTrip asserts that a form survives printing and re-reading
// structurally unchanged.
func AssertRoundTrip(t testing.TB, text string) bool {
	t.Helper()
	v := MustRead(t, text)
	w := MustRead(t, v.String())
	return assert.True(t, sexpr.Equal(v, w), "round trip of %q: %v != %v", text, v, w)
}

// AssertErrorCondition asserts that reading text fails with the given
// syntax error condition.
func AssertErrorCondition(t testing.TB, condition string, text string) bool {
	t.Helper()
	_, err := ReadString(text)
	if !assert.Error(t, err, "read %q", text) {
		return false
	}
	serr, ok := err.(*reader.SyntaxError)
	if !assert.True(t, ok, "read %q: error is not a syntax error: %v", text, err) {
		return false
	}
	return assert.Equal(t, condition, serr.Condition, "read %q: %v", text, err)
}

// BenchmarkRead returns a benchmark function that repeatedly reads
// source.
func BenchmarkRead(source []byte, read func(text []byte) error) func(*testing.B) {
	return func(b *testing.B) {
		b.SetBytes(int64(len(source)))
		for i := 0; i < b.N; i++ {
			err := read(source)
			if err != nil {
				b.Fatalf("Parse failure: %v", err)
			}
		}
	}
}
