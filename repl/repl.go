// Copyright © 2024 The lispread authors

// Package repl implements an interactive read-print loop over the sample
// sexpr model.  Forms are read with the lispread reader and echoed back
// in surface syntax; there is no evaluation.
package repl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/lispread/reader"
	"github.com/luthersystems/lispread/sexpr"
)

type config struct {
	stdin  io.ReadCloser
	stderr io.WriteCloser
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Option configures the REPL.
type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output of the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// RunRepl runs a read-print loop with a fresh sexpr model.  Input lines
// accumulate until they contain a complete form; unterminated constructs
// switch to a continuation prompt instead of reporting an error.
func RunRepl(prompt string, opts ...Option) {
	cfg := newConfig(opts...)
	model := sexpr.NewModel()

	stderr := io.Writer(os.Stderr)
	if cfg.stderr != nil {
		stderr = cfg.stderr
	}

	histFile := historyPath()
	ensureHistoryFilePermissions(histFile)
	rlCfg := &readline.Config{
		Stdout:            stderr,
		Stderr:            stderr,
		Prompt:            prompt,
		HistoryFile:       histFile,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{model: model},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		panic(err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	cont := strings.Repeat(" ", len(prompt))
	var pending []byte
	for {
		if len(pending) == 0 {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(cont)
		}
		line, err := rl.ReadSlice()
		if err == readline.ErrInterrupt {
			pending = nil
			continue
		}
		if err != nil {
			break
		}
		pending = append(pending, line...)
		pending = append(pending, '\n')
		if len(bytes.TrimSpace(pending)) == 0 {
			pending = nil
			continue
		}
		vs, err := readForms(model, pending)
		if err != nil {
			if needMoreInput(err) {
				continue
			}
			fmt.Fprintln(stderr, err) //nolint:errcheck // best-effort error display
			pending = nil
			continue
		}
		for _, v := range vs {
			fmt.Fprintln(stderr, v) //nolint:errcheck // best-effort REPL output
		}
		pending = nil
	}
}

func readForms(model *sexpr.Model, src []byte) ([]*sexpr.SVal, error) {
	r := reader.New[*sexpr.SVal](model, "stdin",
		reader.NewStream(bytes.NewReader(src)),
		reader.WithBracketLists[*sexpr.SVal](true))
	return r.ReadAll()
}

// needMoreInput reports whether err indicates an incomplete, rather than
// malformed, form.
func needMoreInput(err error) bool {
	var serr *reader.SyntaxError
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Condition {
	case reader.ErrUnterminatedList,
		reader.ErrUnterminatedString,
		reader.ErrUnterminatedComment,
		reader.ErrUnexpectedEOF:
		return true
	}
	return false
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lispread_history")
}

// ensureHistoryFilePermissions creates the history file when missing and
// restricts it to owner read/write.  Command history can contain
// sensitive input.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0600) //#nosec G304
	if err != nil {
		return
	}
	f.Close() //nolint:errcheck,gosec // best-effort cleanup
	_ = os.Chmod(path, 0600)
}
