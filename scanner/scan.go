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

// Package scanner implements a streaming tokenizer for a small configuration
// language built on a mealy.Machine:
//
//	# comment
//	[section]
//	name = "quoted \x41 string"
//	port = 0x1f90
//	debug = true
//
// Values are identifiers, the true and false keywords, integers (decimal, 0x
// hexadecimal or 0b binary) or double quoted strings. Spaces and tabs separate
// tokens.
//
// Input is fed in chunks of any size with Write and tokens are retrieved with
// Next. The resulting tokens do not depend on how the input is split.
//
// Lexical errors are reported as token.Error items, after which the rest of the
// line is skipped.
//
package scanner

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/db47h/mealy"
	"github.com/db47h/mealy/state"
	"github.com/db47h/mealy/token"
)

// ErrRejected is returned by Write and Close when the underlying Machine is in
// quiet mode and rejects its input.
//
var ErrRejected = errors.New("input rejected")

const (
	letters    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
	identChars = letters + "0123456789"
	// bytes that may immediately follow a value
	separators = " \t\r\n#=[]"
)

// A Scanner tokenizes a stream of bytes.
//
type Scanner struct {
	m     *mealy.Machine
	q     token.Queue
	lines *mealy.LineIndex
	trie  *state.Trie
	num   *state.Integer
	buf   []byte
	start mealy.Pos // start of the current token
}

// New returns a new Scanner. The options are passed to the underlying Machine.
//
func New(opts ...mealy.Option) (*Scanner, error) {
	s := &Scanner{
		m:     mealy.New(opts...),
		lines: mealy.NewLineIndex(),
		num:   state.NewInteger(10),
		buf:   make([]byte, 0, 64),
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	s.m.Begin()
	return s, nil
}

// Machine returns the underlying Machine.
//
func (s *Scanner) Machine() *mealy.Machine {
	return s.m
}

// Lines returns the line index of the input processed so far.
//
func (s *Scanner) Lines() *mealy.LineIndex {
	return s.lines
}

// Write feeds the next chunk of input. It only fails on errors from the
// underlying Machine, in which case the Scanner cannot be used until Reset.
//
func (s *Scanner) Write(p []byte) (int, error) {
	ok, err := s.m.Parse(p)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrRejected
	}
	return len(p), nil
}

// Close signals the end of input. The last pending token, if any, is emitted
// followed by token.EOF.
//
func (s *Scanner) Close() error {
	ok, err := s.m.End()
	if err != nil {
		return err
	}
	if !ok {
		return ErrRejected
	}
	s.emit(s.m.Pos(), token.EOF, nil)
	return nil
}

// Next returns the next available token. The boolean result is false if no
// token is available yet.
//
func (s *Scanner) Next() (token.Item, bool) {
	return s.q.Pop()
}

// Reset readies the Scanner for a new stream. Pending tokens are dropped.
//
func (s *Scanner) Reset() {
	s.m.Begin()
	s.lines.Reset()
	s.q = token.Queue{}
}

func (s *Scanner) emit(pos mealy.Pos, t token.Token, v interface{}) {
	s.q.Push(token.Item{Token: t, Pos: pos, Value: v})
}

func (s *Scanner) errorf(pos mealy.Pos, format string, args ...interface{}) {
	s.emit(pos, token.Error, fmt.Sprintf(format, args...))
}

func (s *Scanner) init() (err error) {
	m := s.m
	// ByteChooser states. The first one is the initial state.
	var start, comment, skip, ident, zero, dec, hex0, hex, bin0, bin mealy.StateID
	for _, st := range []struct {
		id   *mealy.StateID
		name string
	}{
		{&start, "start"}, {&comment, "comment"}, {&skip, "skip"}, {&ident, "ident"},
		{&zero, "zero"}, {&dec, "dec"}, {&hex0, "hex0"}, {&hex, "hex"}, {&bin0, "bin0"}, {&bin, "bin"},
	} {
		if *st.id, err = m.AddStateWith(mealy.NewByteChooser(), st.name); err != nil {
			return err
		}
	}

	// errors skip to the end of line
	skipTo := func(format string) mealy.Action {
		return func(c *mealy.Cursor) error {
			s.errorf(c.Pos(), format, c.Symbol()[0])
			return nil
		}
	}
	for _, err = range []error{
		m.AddString(skip, "\n", start, state.Retain(nil)),
		m.SetElse(skip, skip, nil),
		m.SetEOF(skip, nil),
	} {
		if err != nil {
			return err
		}
	}

	// start state
	simple := func(t token.Token) mealy.Action {
		return func(c *mealy.Cursor) error {
			s.emit(c.Pos(), t, nil)
			return nil
		}
	}
	for _, err = range []error{
		state.Spaces(m, start, start, nil),
		m.AddString(start, "\r", start, nil),
		m.AddString(start, "\n", start, func(c *mealy.Cursor) error {
			s.emit(c.Pos(), token.EOL, nil)
			s.lines.AddLine(c.Pos() + 1)
			return nil
		}),
		m.AddString(start, "=", start, simple(token.Assign)),
		m.AddString(start, "[", start, simple(token.LBrack)),
		m.AddString(start, "]", start, simple(token.RBrack)),
		m.SetElse(start, skip, skipTo("illegal character %q")),
		m.SetEOF(start, nil),
	} {
		if err != nil {
			return err
		}
	}

	// comments
	emitComment := func(c *mealy.Cursor) error {
		s.emit(s.start, token.Comment, string(s.buf))
		return nil
	}
	for _, err = range []error{
		m.AddString(start, "#", comment, func(c *mealy.Cursor) error {
			s.start = c.Pos()
			s.buf = s.buf[:0]
			return nil
		}),
		m.AddString(comment, "\n", start, state.Retain(emitComment)),
		m.AddString(comment, "\r", comment, nil),
		m.SetElse(comment, comment, func(c *mealy.Cursor) error {
			s.buf = append(s.buf, c.Symbol()...)
			return nil
		}),
		m.SetEOF(comment, emitComment),
	} {
		if err != nil {
			return err
		}
	}

	// quoted strings
	if err = state.QuotedString(m, start, '"', start,
		func(c *mealy.Cursor, pos mealy.Pos, b []byte) error {
			s.emit(pos, token.String, string(b))
			return nil
		},
		func(c *mealy.Cursor, err error) error {
			s.errorf(c.Pos(), "%v", err)
			return nil
		}); err != nil {
		return err
	}

	if err = s.initIdent(start, ident, skip); err != nil {
		return err
	}
	return s.initNumbers(start, skip, zero, dec, hex0, hex, bin0, bin)
}

// initIdent adds identifiers and the true and false keywords.
//
func (s *Scanner) initIdent(start, ident, skip mealy.StateID) (err error) {
	m := s.m
	// the trie only calls seed and keyword actions with bytes of the prefix
	// consumed one at a time
	tokenStart := func(c *mealy.Cursor) mealy.Pos {
		return c.Pos() - mealy.Pos(len(s.trie.Prefix()))
	}
	emitIdent := func(c *mealy.Cursor) error {
		s.emit(s.start, token.Ident, string(s.buf))
		return nil
	}
	seed := func(c *mealy.Cursor) error {
		s.start = tokenStart(c)
		s.buf = append(s.buf[:0], s.trie.Prefix()...)
		if c.Symbol() == nil {
			return emitIdent(c)
		}
		return nil
	}
	s.trie = state.NewTrie(m, start, ident, seed)
	for _, kw := range []struct {
		word string
		v    bool
	}{{"true", true}, {"false", false}} {
		v := kw.v
		if err = s.trie.Add(kw.word, start, func(c *mealy.Cursor) error {
			s.emit(tokenStart(c), token.Bool, v)
			return nil
		}); err != nil {
			return err
		}
	}
	if err = s.trie.Extend(identChars, ident, seed); err != nil {
		return err
	}
	for i := 0; i < len(letters); i++ {
		b := letters[i]
		if b == 't' || b == 'f' {
			continue
		}
		if err = m.AddTransition(start, []byte{b}, ident, func(c *mealy.Cursor) error {
			s.start = c.Pos()
			s.buf = append(s.buf[:0], c.Symbol()...)
			return nil
		}); err != nil {
			return err
		}
	}
	for _, err = range []error{
		m.AddString(ident, identChars, ident, func(c *mealy.Cursor) error {
			s.buf = append(s.buf, c.Symbol()...)
			return nil
		}),
		m.AddString(ident, separators, start, state.Retain(emitIdent)),
		m.SetElse(ident, skip, func(c *mealy.Cursor) error {
			s.errorf(c.Pos(), "illegal character %q in identifier", c.Symbol()[0])
			return nil
		}),
		m.SetEOF(ident, emitIdent),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// initNumbers adds integer literals: decimal, 0x hexadecimal and 0b binary.
//
func (s *Scanner) initNumbers(start, skip, zero, dec, hex0, hex, bin0, bin mealy.StateID) (err error) {
	m := s.m
	n := s.num
	// overflows are reported when the literal ends
	digit := func(c *mealy.Cursor) error {
		if err := n.Add(c.Symbol()[0]); err != nil && err != state.ErrOverflow {
			return err
		}
		return nil
	}
	emitInt := func(c *mealy.Cursor) error {
		if n.Overflow() {
			s.errorf(s.start, "%v", state.ErrOverflow)
			return nil
		}
		s.emit(s.start, token.Int, n.Value())
		return nil
	}
	malformed := func(c *mealy.Cursor) error {
		s.errorf(s.start, "malformed %s literal", baseName(n.Base()))
		return nil
	}
	illegal := func(c *mealy.Cursor) error {
		s.errorf(c.Pos(), "illegal character %q in %s literal", c.Symbol()[0], baseName(n.Base()))
		return nil
	}
	setBase := func(base int) mealy.Action {
		return func(*mealy.Cursor) error {
			n.SetBase(base)
			return nil
		}
	}

	for _, err = range []error{
		m.AddString(start, "0", zero, func(c *mealy.Cursor) error {
			s.start = c.Pos()
			n.SetBase(10)
			return n.Reset(c)
		}),
		m.AddStringRange(start, "1", "9", dec, func(c *mealy.Cursor) error {
			s.start = c.Pos()
			n.SetBase(10)
			if err := n.Reset(c); err != nil {
				return err
			}
			return digit(c)
		}),
		m.AddString(zero, "xX", hex0, setBase(16)),
		m.AddString(zero, "bB", bin0, setBase(2)),
		state.Digits(m, zero, 10, dec, digit),
		state.Digits(m, dec, 10, dec, digit),
		state.Digits(m, hex0, 16, hex, digit),
		state.Digits(m, hex, 16, hex, digit),
		state.Digits(m, bin0, 2, bin, digit),
		state.Digits(m, bin, 2, bin, digit),
	} {
		if err != nil {
			return err
		}
	}
	// complete literals
	for _, st := range []mealy.StateID{zero, dec, hex, bin} {
		for _, err = range []error{
			m.AddString(st, separators, start, state.Retain(emitInt)),
			m.SetElse(st, skip, illegal),
			m.SetEOF(st, emitInt),
		} {
			if err != nil {
				return err
			}
		}
	}
	// prefix without digits
	for _, st := range []mealy.StateID{hex0, bin0} {
		for _, err = range []error{
			m.AddString(st, separators, start, state.Retain(malformed)),
			m.SetElse(st, skip, illegal),
			m.SetEOF(st, malformed),
		} {
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func baseName(base int) string {
	switch base {
	case 2:
		return "binary"
	case 16:
		return "hexadecimal"
	case 10:
		return "decimal"
	}
	return "base " + strconv.Itoa(base)
}
