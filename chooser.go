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
	"math"
	"sort"
)

// NoTransition is returned by Chooser.Resolve when a symbol has no registered
// transition. It is never a valid transition index.
//
const NoTransition = math.MaxInt

// A Chooser maps fixed width symbols to transition indices within a single
// state. Indices are assigned by Register in increasing order starting at 0,
// one per call; the transition at index i of a state corresponds to the i-th
// symbol registered with its chooser.
//
// A chooser is owned by exactly one state and must not be shared.
//
type Chooser interface {
	// Width returns the symbol width in bytes. It never changes.
	Width() int
	// Resolve returns the transition index for sym, or NoTransition.
	Resolve(sym []byte) int
	// Register adds sym and returns its transition index. Implementations
	// return ErrSymbolWidth if len(sym) != Width() and ErrDuplicateSymbol if
	// sym is already registered.
	Register(sym []byte) (int, error)
	// Symbol returns the symbol registered at index i.
	Symbol(i int) []byte
}

// ExactChooser is the default Chooser. It performs exact matches on symbols
// of any fixed width.
//
type ExactChooser struct {
	w    int
	keys []string       // registration order
	idx  map[string]int // symbol -> transition index
}

// NewExactChooser returns a new ExactChooser for symbols of the given width.
//
func NewExactChooser(width int) *ExactChooser {
	return &ExactChooser{
		w:   width,
		idx: make(map[string]int),
	}
}

// Width implements Chooser.
//
func (c *ExactChooser) Width() int { return c.w }

// Resolve implements Chooser.
//
func (c *ExactChooser) Resolve(sym []byte) int {
	if i, ok := c.idx[string(sym)]; ok {
		return i
	}
	return NoTransition
}

// Register implements Chooser.
//
func (c *ExactChooser) Register(sym []byte) (int, error) {
	if len(sym) != c.w {
		return NoTransition, ErrSymbolWidth
	}
	k := string(sym)
	if _, ok := c.idx[k]; ok {
		return NoTransition, ErrDuplicateSymbol
	}
	i := len(c.keys)
	c.keys = append(c.keys, k)
	c.idx[k] = i
	return i, nil
}

// Symbol implements Chooser. It panics if i is out of range.
//
func (c *ExactChooser) Symbol(i int) []byte {
	return []byte(c.keys[i])
}

// Symbols returns all registered symbols in unsigned lexicographic order.
//
func (c *ExactChooser) Symbols() [][]byte {
	keys := append([]string(nil), c.keys...)
	sort.Strings(keys)
	syms := make([][]byte, len(keys))
	for i, k := range keys {
		syms[i] = []byte(k)
	}
	return syms
}

// ByteChooser is a Chooser for single byte symbols backed by a lookup table.
// Resolve is a single array index.
//
type ByteChooser struct {
	t    [256]int32 // transition index + 1, 0 for none
	syms []byte
}

// NewByteChooser returns a new, empty ByteChooser.
//
func NewByteChooser() *ByteChooser {
	return new(ByteChooser)
}

// Width implements Chooser. It always returns 1.
//
func (c *ByteChooser) Width() int { return 1 }

// Resolve implements Chooser.
//
func (c *ByteChooser) Resolve(sym []byte) int {
	if len(sym) != 1 {
		return NoTransition
	}
	if i := c.t[sym[0]]; i > 0 {
		return int(i - 1)
	}
	return NoTransition
}

// Register implements Chooser.
//
func (c *ByteChooser) Register(sym []byte) (int, error) {
	if len(sym) != 1 {
		return NoTransition, ErrSymbolWidth
	}
	if c.t[sym[0]] != 0 {
		return NoTransition, ErrDuplicateSymbol
	}
	c.syms = append(c.syms, sym[0])
	c.t[sym[0]] = int32(len(c.syms))
	return len(c.syms) - 1, nil
}

// Symbol implements Chooser. It panics if i is out of range.
//
func (c *ByteChooser) Symbol(i int) []byte {
	return []byte{c.syms[i]}
}
