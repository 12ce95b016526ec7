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

// Package token defines the tokens produced by the scanner package and a FIFO
// queue used to hand them over from machine actions to consumers.
//
package token

import (
	"fmt"
	"strconv"

	"github.com/db47h/mealy"
)

// Token represents a token's numeric ID
//
type Token uint

// Token IDs
//
const (
	EOF     Token = iota // end of file
	EOL                  // end of line
	Error                // error -- the associated value is a string
	Ident                // identifier
	Int                  // integer -- the associated value is a uint64
	String               // quoted string -- the value is the unquoted string
	Assign               // =
	Comment              // # up to EOL -- the value is the comment text
	LBrack               // [
	RBrack               // ]
	Bool                 // true or false -- the value is a bool
)

var names = [...]string{
	EOF:     "EOF",
	EOL:     "EOL",
	Error:   "Error",
	Ident:   "Ident",
	Int:     "Int",
	String:  "String",
	Assign:  "Assign",
	Comment: "Comment",
	LBrack:  "LBrack",
	RBrack:  "RBrack",
	Bool:    "Bool",
}

func (t Token) String() string {
	if int(t) < len(names) {
		return names[t]
	}
	return "Token(" + strconv.Itoa(int(t)) + ")"
}

// Item is a token along with its start position and value.
//
type Item struct {
	Token
	Pos   mealy.Pos
	Value interface{}
}

// String returns a string representation of the item. This should be used only
// for debugging purposes as the output format is not guaranteed to be stable.
//
func (i Item) String() string {
	switch v := i.Value.(type) {
	case nil:
		return i.Token.String()
	case string:
		if i.Token == String {
			return fmt.Sprintf("%s %q", i.Token, v)
		}
		return fmt.Sprintf("%s %s", i.Token, v)
	default:
		return fmt.Sprintf("%s %v", i.Token, v)
	}
}
