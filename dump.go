// Copyright 2020 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package mealy

import (
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// String returns a human readable dump of the Machine: every state, followed
// by its transitions in registration order, its EOF transition and its else
// transition. The output format is not stable.
//
func (m *Machine) String() string {
	var sb strings.Builder
	for i := range m.states {
		s := &m.states[i]
		sb.WriteString("state ")
		sb.WriteString(m.label(StateID(i)))
		sb.WriteString(":\n")

		syms := make([]string, len(s.transitions))
		col := len("else")
		for j := range s.transitions {
			syms[j] = symbolString(s.chooser.Symbol(j))
			if w := cellWidth(syms[j]); w > col {
				col = w
			}
		}
		for j, t := range s.transitions {
			writeRow(&sb, syms[j], col, m.label(t.To))
		}
		if s.eofT != nil {
			sb.WriteString("  eof\n")
		}
		if s.elseT != nil {
			writeRow(&sb, "else", col, m.label(s.elseT.To))
		}
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, sym string, col int, target string) {
	sb.WriteString("  ")
	sb.WriteString(sym)
	sb.WriteString(strings.Repeat(" ", col-cellWidth(sym)))
	sb.WriteString(" -> ")
	sb.WriteString(target)
	sb.WriteByte('\n')
}

func (m *Machine) label(id StateID) string {
	if n := m.states[id].name; n != "" {
		return n
	}
	return strconv.Itoa(int(id))
}

// symbolString quotes symbols made of printable UTF-8 text and renders
// anything else in hex.
//
func symbolString(sym []byte) string {
	if !utf8.Valid(sym) {
		return hex.EncodeToString(sym)
	}
	for _, r := range string(sym) {
		if !unicode.IsPrint(r) {
			return hex.EncodeToString(sym)
		}
	}
	return "'" + string(sym) + "'"
}

// cellWidth computes the width in text cells of a string, assuming a
// monospaced font.
//
func cellWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianFullwidth, width.EastAsianWide:
			w += 2
		default:
			w++
		}
	}
	return w
}
