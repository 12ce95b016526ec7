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

import "io"

// ReadBufferSize is the size of the chunks read by ParseReader.
//
const ReadBufferSize = 4 << 10

// maxEmptyReads is the number of consecutive empty reads after which
// ParseReader gives up with io.ErrNoProgress.
const maxEmptyReads = 100

// ParseReader feeds the contents of r to Parse, in chunks of at most
// ReadBufferSize bytes, until r returns io.EOF. It does not call End.
//
// It returns false with the error from Parse if parsing fails, or with the
// error from r if reading fails for any reason other than io.EOF.
//
func (m *Machine) ParseReader(r io.Reader) (bool, error) {
	var buf [ReadBufferSize]byte
	empty := 0
	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			empty = 0
			if ok, perr := m.Parse(buf[:n]); !ok {
				return false, perr
			}
		} else if err == nil {
			if empty++; empty >= maxEmptyReads {
				return false, io.ErrNoProgress
			}
		}
		if err == io.EOF {
			return true, nil
		}
		if err != nil {
			return false, err
		}
	}
}

// MatchReader is like Match for the contents of r.
//
func (m *Machine) MatchReader(r io.Reader) (bool, error) {
	m.Begin()
	if ok, err := m.ParseReader(r); !ok {
		return false, err
	}
	return m.End()
}
