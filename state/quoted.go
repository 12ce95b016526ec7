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

package state

import (
	"github.com/db47h/mealy"
)

// QuotedString adds states for a quoted string literal, entered from state
// from on the quote byte and left to state to after the closing quote.
//
// The following escape sequences are supported: \a \b \f \n \r \t \v \\ \0,
// \xHH and a backslash followed by the quote byte.
//
// When the closing quote is found, emit is called with the position of the
// opening quote and the unquoted string. The slice is reused and must not be
// retained. On invalid escape sequences,
// fail is called with ErrInvalidEscape or ErrInvalidHex, lexing continues
// up to the closing quote and emit is not called for that string. An end of
// line or end of input before the closing quote calls fail with
// ErrUnterminated; an end of line is not consumed and is handed over to state
// to.
//
// Errors returned by emit or fail are returned by Machine.Parse or End.
//
func QuotedString(m *mealy.Machine, from mealy.StateID, quote byte, to mealy.StateID,
	emit func(c *mealy.Cursor, start mealy.Pos, s []byte) error, fail func(c *mealy.Cursor, err error) error) error {
	var (
		buf   = make([]byte, 0, 64)
		start mealy.Pos
		bad   bool
		hex   byte
	)
	name := m.StateName(from) + "/" + string(quote)
	body, err := m.AddState(name + "string")
	if err != nil {
		return err
	}
	esc, err := m.AddState(name + "escape")
	if err != nil {
		return err
	}
	hex1, err := m.AddState(name + "hex1")
	if err != nil {
		return err
	}
	hex2, err := m.AddState(name + "hex2")
	if err != nil {
		return err
	}

	failWith := func(e error) mealy.Action {
		return func(c *mealy.Cursor) error {
			bad = true
			if fail != nil {
				return fail(c, e)
			}
			return nil
		}
	}
	appendByte := func(b byte) mealy.Action {
		return func(*mealy.Cursor) error {
			buf = append(buf, b)
			return nil
		}
	}
	unterminated := failWith(ErrUnterminated)

	// opening quote
	err = m.AddTransition(from, []byte{quote}, body, func(c *mealy.Cursor) error {
		start = c.Pos()
		buf = buf[:0]
		bad = false
		return nil
	})
	if err != nil {
		return err
	}

	// body
	if err = m.AddTransition(body, []byte{quote}, to, func(c *mealy.Cursor) error {
		if bad || emit == nil {
			return nil
		}
		return emit(c, start, buf)
	}); err != nil {
		return err
	}
	if err = m.AddString(body, "\\", esc, nil); err != nil {
		return err
	}
	if err = m.AddString(body, "\n", to, Retain(unterminated)); err != nil {
		return err
	}
	if err = m.SetElse(body, body, func(c *mealy.Cursor) error {
		buf = append(buf, c.Symbol()[0])
		return nil
	}); err != nil {
		return err
	}

	// escape sequences
	for _, e := range []struct{ seq, val byte }{
		{'a', '\a'}, {'b', '\b'}, {'f', '\f'}, {'n', '\n'}, {'r', '\r'},
		{'t', '\t'}, {'v', '\v'}, {'\\', '\\'}, {'0', 0},
	} {
		if e.seq == quote {
			continue
		}
		if err = m.AddTransition(esc, []byte{e.seq}, body, appendByte(e.val)); err != nil {
			return err
		}
	}
	if err = m.AddTransition(esc, []byte{quote}, body, appendByte(quote)); err != nil {
		return err
	}
	if err = m.AddString(esc, "x", hex1, nil); err != nil {
		return err
	}
	if err = m.AddString(esc, "\n", to, Retain(unterminated)); err != nil {
		return err
	}
	if err = m.SetElse(esc, body, failWith(ErrInvalidEscape)); err != nil {
		return err
	}

	// \xHH
	if err = Digits(m, hex1, 16, hex2, func(c *mealy.Cursor) error {
		hex = byte(digitVal(c.Symbol()[0]))
		return nil
	}); err != nil {
		return err
	}
	if err = Digits(m, hex2, 16, body, func(c *mealy.Cursor) error {
		buf = append(buf, hex<<4|byte(digitVal(c.Symbol()[0])))
		return nil
	}); err != nil {
		return err
	}
	for _, s := range []mealy.StateID{hex1, hex2} {
		if err = m.AddString(s, "\n", to, Retain(unterminated)); err != nil {
			return err
		}
		// the offending byte may be the closing quote
		if err = m.SetElse(s, body, Retain(failWith(ErrInvalidHex))); err != nil {
			return err
		}
	}

	for _, s := range []mealy.StateID{body, esc, hex1, hex2} {
		if err = m.SetEOF(s, unterminated); err != nil {
			return err
		}
	}
	return nil
}
