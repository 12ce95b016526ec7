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
	"errors"
	"fmt"
)

// Configuration errors. These are wrapped in a *ConfigError.
//
var (
	ErrNilChooser      = errors.New("nil transition chooser")
	ErrWidth           = errors.New("invalid symbol width")
	ErrState           = errors.New("no such state")
	ErrSymbolWidth     = errors.New("symbol length does not match state width")
	ErrDuplicateSymbol = errors.New("symbol registered twice")
)

// Parsing errors. These are wrapped in a *ParseError.
//
var (
	ErrNoTransition = errors.New("no suitable transition")
	ErrIncomplete   = errors.New("unprocessed bytes at end of stream")
)

// A ConfigError is returned by the configuration methods of a Machine when
// called with invalid arguments. It indicates a programming error and is never
// affected by quiet mode.
//
type ConfigError struct {
	Op    string  // method that failed
	State StateID // state involved, or -1
	Err   error
}

func (e *ConfigError) Error() string {
	if e.State < 0 {
		return fmt.Sprintf("mealy: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("mealy: %s(%d): %v", e.Op, e.State, e.Err)
}

// Unwrap returns the underlying error.
//
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// A ParseError describes input that the Machine could not consume.
//
type ParseError struct {
	State  StateID // active state
	Name   string  // active state name, possibly empty
	Symbol []byte  // unmatched symbol or leftover bytes
	Pos    Pos     // stream position of Symbol
	Err    error   // ErrNoTransition or ErrIncomplete
}

func (e *ParseError) Error() string {
	st := fmt.Sprint(e.State)
	if e.Name != "" {
		st = fmt.Sprintf("%d (%s)", e.State, e.Name)
	}
	return fmt.Sprintf("mealy: %v from state %s using symbol 0x%s at position %d", e.Err, st, hex.EncodeToString(e.Symbol), e.Pos)
}

// Unwrap returns the underlying error.
//
func (e *ParseError) Unwrap() error {
	return e.Err
}

func configErr(op string, s StateID, err error) error {
	return &ConfigError{Op: op, State: s, Err: err}
}
