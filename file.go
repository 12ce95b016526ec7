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
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Pos is a byte offset in the input stream.
//
type Pos int64

// IsValid returns true if p is a valid position (i.e. p >= 0).
//
func (p Pos) IsValid() bool {
	return p >= 0
}

// Common errors.
var (
	ErrSeek = errors.New("wrong file position after seek")
	ErrLine = errors.New("invalid line number")
)

// Position describes a source position as a line and column.
//
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number (byte index)
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// A LineIndex converts stream positions to line and column numbers. Actions
// feed it by calling AddLine with the position following each end of line:
//
//	m.AddTransition(s, []byte{'\n'}, s, func(c *mealy.Cursor) error {
//		lines.AddLine(c.Pos() + 1)
//		return nil
//	})
//
type LineIndex struct {
	lines []Pos // start position of each line
}

// NewLineIndex returns a new LineIndex with line 1 starting at position 0.
//
func NewLineIndex() *LineIndex {
	return &LineIndex{lines: []Pos{0}}
}

// Reset forgets all lines but the first one.
//
func (l *LineIndex) Reset() {
	l.lines = l.lines[:1]
}

// AddLine records the start of a new line at pos. Positions that are not past
// the start of the last known line are ignored, so that re-dispatched symbols
// do not add a line twice.
//
func (l *LineIndex) AddLine(pos Pos) {
	if n := len(l.lines); l.lines[n-1] >= pos {
		return
	}
	l.lines = append(l.lines, pos)
}

// Lines returns the number of known lines.
//
func (l *LineIndex) Lines() int {
	return len(l.lines)
}

// Position returns the 1-based line and column for a given pos.
//
func (l *LineIndex) Position(pos Pos) Position {
	i, j := 0, len(l.lines)
	for i < j {
		h := int(uint(i+j) >> 1)
		if !(l.lines[h] > pos) {
			i = h + 1
		} else {
			j = h
		}
	}
	if i == 0 {
		// negative pos
		return Position{1, int(pos + 1)}
	}
	return Position{i, int(pos - l.lines[i-1] + 1)}
}

// LinePos returns the position of the first byte of the given line, or -1 if
// the line is unknown.
//
func (l *LineIndex) LinePos(line int) Pos {
	if line < 1 || line > len(l.lines) {
		return -1
	}
	return l.lines[line-1]
}

// LineBytes returns the contents of the line containing pos, read from rs,
// without its end of line. The current offset of rs is restored before
// returning.
//
func (l *LineIndex) LineBytes(rs io.ReadSeeker, pos Pos) (b []byte, err error) {
	lp := l.LinePos(l.Position(pos).Line)
	if !lp.IsValid() {
		return nil, ErrLine
	}
	cur, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	defer func() {
		p, serr := rs.Seek(cur, io.SeekStart)
		if err == nil {
			if serr != nil {
				err = serr
			} else if p != cur {
				err = ErrSeek
			}
		}
	}()
	fp, err := rs.Seek(int64(lp), io.SeekStart)
	if err != nil {
		return nil, err
	}
	if fp != int64(lp) {
		return nil, ErrSeek
	}

	r := bufio.NewReader(rs)
	for {
		buf, pref, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		b = append(b, buf...)
		if !pref {
			break
		}
	}
	return b, nil
}
