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
	"math"

	"github.com/db47h/mealy"
)

// Digits adds transitions from state from to state to on every digit of the
// given base: '0' to '9' then 'a' to 'z' and 'A' to 'Z' for bases above 10.
// The base must be between 2 and 36 included.
//
func Digits(m *mealy.Machine, from mealy.StateID, base int, to mealy.StateID, a mealy.Action) error {
	if base < 2 || base > 36 {
		return ErrBase
	}
	if base <= 10 {
		return m.AddRange(from, []byte{'0'}, []byte{byte('0' + base - 1)}, to, a)
	}
	if err := m.AddStringRange(from, "0", "9", to, a); err != nil {
		return err
	}
	if err := m.AddRange(from, []byte{'a'}, []byte{byte('a' + base - 11)}, to, a); err != nil {
		return err
	}
	return m.AddRange(from, []byte{'A'}, []byte{byte('A' + base - 11)}, to, a)
}

// digitVal returns the value of digit b, or 36 if b is not a digit in any base.
//
func digitVal(b byte) uint64 {
	switch {
	case b >= '0' && b <= '9':
		return uint64(b - '0')
	case b >= 'a' && b <= 'z':
		return uint64(b-'a') + 10
	case b >= 'A' && b <= 'Z':
		return uint64(b-'A') + 10
	}
	return 36
}

// An Integer accumulates the digits of an unsigned integer literal.
//
//	n := state.NewInteger(10)
//	state.Digits(m, start, 10, num, state.Seq(n.Reset, n.Digit))
//	state.Digits(m, num, 10, num, n.Digit)
//
type Integer struct {
	base uint64
	v    uint64
	n    int
	ovf  bool
}

// NewInteger returns a new Integer in the given base.
//
func NewInteger(base int) *Integer {
	return &Integer{base: uint64(base)}
}

// Reset clears the accumulated value. Its signature allows using it directly
// as an action.
//
func (i *Integer) Reset(*mealy.Cursor) error {
	i.v, i.n, i.ovf = 0, 0, false
	return nil
}

// SetBase changes the base of the digits that follow. It is meant to be called
// when a base prefix such as "0x" is found.
//
func (i *Integer) SetBase(base int) {
	i.base = uint64(base)
}

// Base returns the current base.
//
func (i *Integer) Base() int {
	return int(i.base)
}

// Add adds digit d, an ASCII character. It returns ErrBase if d is not a
// valid digit in the current base and ErrOverflow if the value no longer fits
// in an uint64. After an overflow, the value is math.MaxUint64 until the next
// Reset.
//
func (i *Integer) Add(d byte) error {
	dv := digitVal(d)
	if dv >= i.base {
		return ErrBase
	}
	i.n++
	if i.ovf {
		return ErrOverflow
	}
	if i.v > (math.MaxUint64-dv)/i.base {
		i.v, i.ovf = math.MaxUint64, true
		return ErrOverflow
	}
	i.v = i.v*i.base + dv
	return nil
}

// Digit is an action that adds the current symbol as a digit.
//
func (i *Integer) Digit(c *mealy.Cursor) error {
	return i.Add(c.Symbol()[0])
}

// Value returns the accumulated value.
//
func (i *Integer) Value() uint64 { return i.v }

// Len returns the number of digits added since the last Reset.
//
func (i *Integer) Len() int { return i.n }

// Overflow reports whether an overflow occurred since the last Reset.
//
func (i *Integer) Overflow() bool { return i.ovf }
