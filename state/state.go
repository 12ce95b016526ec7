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

// Package state provides builders for sub-automata commonly found in lexers:
// keywords, integers and quoted strings.
//
// Builders add states and transitions to an existing mealy.Machine, starting
// from a state chosen by the caller and ending in a state of the caller's
// choosing. Some builders allocate buffers shared by the actions they register;
// as a consequence, a Machine using them must not be shared between goroutines
// (which it cannot be anyway).
//
package state

import (
	"errors"

	"github.com/db47h/mealy"
)

// Errors returned by builders or reported by actions.
//
var (
	ErrDuplicate     = errors.New("word registered twice")
	ErrBase          = errors.New("invalid number base")
	ErrOverflow      = errors.New("integer overflow")
	ErrUnterminated  = errors.New("unterminated string")
	ErrInvalidEscape = errors.New("unknown escape sequence")
	ErrInvalidHex    = errors.New("non-hex character in escape sequence")
)

// Spaces adds transitions from state from to state to on space and tab.
//
func Spaces(m *mealy.Machine, from, to mealy.StateID, a mealy.Action) error {
	return m.AddString(from, " \t", to, a)
}

// Retain wraps an action so that the symbol that triggers it is not consumed.
// A nil action is allowed.
//
func Retain(a mealy.Action) mealy.Action {
	return func(c *mealy.Cursor) error {
		c.DontMove()
		if a != nil {
			return a(c)
		}
		return nil
	}
}

// Seq returns an action that calls all of the given actions in order and stops
// at the first error. Nil actions are skipped.
//
func Seq(actions ...mealy.Action) mealy.Action {
	return func(c *mealy.Cursor) error {
		for _, a := range actions {
			if a == nil {
				continue
			}
			if err := a(c); err != nil {
				return err
			}
		}
		return nil
	}
}
