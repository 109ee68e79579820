// Copyright © 2024 The lispread authors

package sexpr

import (
	"bytes"
	"strconv"
	"strings"
)

// quoteAbbrevs maps quoting symbols to their reader shorthand so printed
// forms read back through the same surface syntax.
var quoteAbbrevs = map[string]string{
	"quote":            "'",
	"quasiquote":       "`",
	"unquote":          ",",
	"unquote-splicing": ",@",
}

// String renders v in the surface syntax accepted by the reader.  For
// every readable value the output reads back as an equal value.
func (v *SVal) String() string {
	var buf bytes.Buffer
	writeSVal(&buf, v)
	return buf.String()
}

func writeSVal(buf *bytes.Buffer, v *SVal) {
	switch v.Type {
	case SNil:
		buf.WriteString("()")
	case SPair:
		if abbrev, ok := quoteAbbrev(v); ok {
			buf.WriteString(abbrev)
			writeSVal(buf, v.Cdr.Car)
			return
		}
		writePair(buf, v)
	case SSymbol:
		buf.WriteString(v.Str)
	case SInt:
		buf.WriteString(strconv.FormatInt(v.Int, 10))
	case SFloat:
		s := strconv.FormatFloat(v.Float, 'g', -1, 64)
		// Keep a decimal point so the value reads back as a float.
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		buf.WriteString(s)
	case SString:
		writeString(buf, v.Str)
	case SChar:
		writeChar(buf, v.Char)
	case SBool:
		if v.Bool {
			buf.WriteString("#t")
		} else {
			buf.WriteString("#f")
		}
	case SUnspec:
		buf.WriteString("#u")
	case SEOS:
		buf.WriteString("#<end-of-stream>")
	case SVector:
		buf.WriteString("#(")
		for i, c := range v.Cells {
			if i > 0 {
				buf.WriteByte(' ')
			}
			writeSVal(buf, c)
		}
		buf.WriteByte(')')
	default:
		buf.WriteString("#<invalid>")
	}
}

// quoteAbbrev recognizes two-element lists headed by a quoting symbol.
func quoteAbbrev(v *SVal) (string, bool) {
	if v.Car.Type != SSymbol {
		return "", false
	}
	abbrev, ok := quoteAbbrevs[v.Car.Str]
	if !ok {
		return "", false
	}
	if v.Cdr.Type != SPair || v.Cdr.Cdr.Type != SNil {
		return "", false
	}
	return abbrev, true
}

func writePair(buf *bytes.Buffer, v *SVal) {
	buf.WriteByte('(')
	for {
		writeSVal(buf, v.Car)
		switch v.Cdr.Type {
		case SNil:
			buf.WriteByte(')')
			return
		case SPair:
			buf.WriteByte(' ')
			v = v.Cdr
		default:
			buf.WriteString(" . ")
			writeSVal(buf, v.Cdr)
			buf.WriteByte(')')
			return
		}
	}
}

// writeString escapes only the sequences the reader's sample model
// decodes.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(c)
	}
	buf.WriteByte('"')
}

func writeChar(buf *bytes.Buffer, c rune) {
	switch c {
	case ' ':
		buf.WriteString(`#\space`)
	case '\n':
		buf.WriteString(`#\newline`)
	default:
		buf.WriteString(`#\`)
		buf.WriteRune(c)
	}
}
