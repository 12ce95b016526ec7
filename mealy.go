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
	"context"
	"encoding/hex"
	"log/slog"
)

// StateID identifies a state of a Machine. States are numbered from 0 in
// creation order. State 0 is the initial state.
//
type StateID int

// An Action is invoked exactly once each time the transition it is attached
// to fires. The Cursor gives access to the active state, the current symbol
// and the stream position and is only valid for the duration of the call.
//
// A non-nil error aborts the current Parse or End call and is returned to its
// caller as-is.
//
type Action func(c *Cursor) error

// Transition is the target state of a transition and its associated action.
//
type Transition struct {
	To     StateID
	Action Action
}

type state struct {
	transitions []Transition // parallel to the chooser's symbol table
	chooser     Chooser
	elseT       *Transition
	eofT        *Transition
	name        string
}

type machine struct {
	states []state

	cur      StateID
	pos      Pos
	sym      []byte // current symbol, valid during an Action call
	buf      []byte // reassembly buffer, len == max width
	held     int    // bytes held in buf
	dontMove bool

	quiet  bool
	logger *slog.Logger
	trace  bool
}

// A Machine is a byte oriented Mealy machine: a finite state automaton whose
// transitions invoke actions. Input is consumed as fixed width symbols, the
// width being a property of each state's Chooser. Input may be fed in chunks
// of any size; symbols straddling chunk boundaries are reassembled.
//
// A Machine is not safe for concurrent use, and actions must not call Begin,
// Parse or End on the Machine that invoked them. The zero value is not usable;
// Machines must be created with New.
//
type Machine machine

// Cursor is the view of a Machine given to actions.
//
type Cursor machine

// New returns a new Machine with no states.
//
func New(opts ...Option) *Machine {
	o := defOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxWidth < 1 {
		o.maxWidth = 1
	}
	return &Machine{
		buf:    make([]byte, o.maxWidth),
		quiet:  o.quiet,
		logger: o.logger,
	}
}

// SetQuiet sets quiet mode. In quiet mode, input that cannot be consumed
// makes Parse and End return false with a nil error instead of a *ParseError.
// Configuration errors and errors returned by actions are not affected.
//
func (m *Machine) SetQuiet(quiet bool) {
	m.quiet = quiet
}

// Quiet reports whether quiet mode is set.
//
func (m *Machine) Quiet() bool {
	return m.quiet
}

// Begin resets the Machine to its initial state, ready to parse a new stream.
//
func (m *Machine) Begin() {
	m.cur = 0
	m.pos = 0
	m.held = 0
	m.sym = nil
	m.dontMove = false
	m.trace = m.logger != nil && m.logger.Enabled(context.Background(), slog.LevelDebug)
}

// Parse consumes the next chunk of the input stream. It returns true once all
// of data has been consumed, buffering any trailing partial symbol until the
// next call to Parse.
//
// If no transition matches the current symbol and the active state has no
// else transition, Parse returns false and a *ParseError, or a nil error in
// quiet mode. The Machine is left as it was at the point of failure.
//
func (m *Machine) Parse(data []byte) (bool, error) {
	if len(m.states) == 0 {
		return false, configErr("Parse", 0, ErrState)
	}
	n := 0

	// complete a symbol carried over from a previous chunk.
	for m.held > 0 {
		w := m.states[m.cur].chooser.Width()
		if m.held < w {
			k := copy(m.buf[m.held:w], data[n:])
			m.held += k
			n += k
			if m.held < w {
				return true, nil
			}
		}
		if ok, err := m.step(m.buf[:w]); !ok {
			return false, err
		}
		if !m.dontMove {
			m.held = copy(m.buf, m.buf[w:m.held])
		}
	}

	for {
		w := m.states[m.cur].chooser.Width()
		if len(data)-n < w {
			m.held = copy(m.buf, data[n:])
			return true, nil
		}
		if ok, err := m.step(data[n : n+w]); !ok {
			return false, err
		}
		if !m.dontMove {
			n += w
		}
	}
}

// ParseString is like Parse with a string argument.
//
func (m *Machine) ParseString(s string) (bool, error) {
	return m.Parse([]byte(s))
}

// step dispatches a single symbol.
//
func (m *Machine) step(sym []byte) (bool, error) {
	s := &m.states[m.cur]
	var t *Transition
	if i := s.chooser.Resolve(sym); i != NoTransition {
		t = &s.transitions[i]
	} else if s.elseT != nil {
		t = s.elseT
	} else {
		if m.quiet {
			return false, nil
		}
		return false, &ParseError{
			State:  m.cur,
			Name:   s.name,
			Symbol: append([]byte(nil), sym...),
			Pos:    m.pos,
			Err:    ErrNoTransition,
		}
	}

	m.sym = sym
	m.dontMove = false
	if t.Action != nil {
		if err := t.Action((*Cursor)(m)); err != nil {
			return false, err
		}
	}
	if m.trace {
		m.logger.Debug("transition",
			slog.Int("from", int(m.cur)),
			slog.String("symbol", hex.EncodeToString(sym)),
			slog.Int64("pos", int64(m.pos)),
			slog.Int("to", int(t.To)),
			slog.Bool("retain", m.dontMove))
	}
	if !m.dontMove {
		m.pos += Pos(len(sym))
	}
	m.cur = t.To
	return true, nil
}

// End signals the end of the input stream.
//
// If a partial symbol is still buffered, End returns false and a *ParseError
// wrapping ErrIncomplete (a nil error in quiet mode). Otherwise, if the active
// state has an EOF transition, its action is invoked and End returns true. If
// it has none, End returns false and a nil error.
//
func (m *Machine) End() (bool, error) {
	if len(m.states) == 0 {
		return false, configErr("End", 0, ErrState)
	}
	s := &m.states[m.cur]
	if m.held > 0 {
		if m.quiet {
			return false, nil
		}
		return false, &ParseError{
			State:  m.cur,
			Name:   s.name,
			Symbol: append([]byte(nil), m.buf[:m.held]...),
			Pos:    m.pos,
			Err:    ErrIncomplete,
		}
	}
	if s.eofT == nil {
		return false, nil
	}
	m.sym = nil
	m.dontMove = false
	if a := s.eofT.Action; a != nil {
		if err := a((*Cursor)(m)); err != nil {
			return false, err
		}
	}
	if m.trace {
		m.logger.Debug("eof", slog.Int("state", int(m.cur)), slog.Int64("pos", int64(m.pos)))
	}
	return true, nil
}

// Match parses data as a complete stream. It is a shorthand for Begin, Parse
// and End, and returns false without calling End if Parse fails.
//
func (m *Machine) Match(data []byte) (bool, error) {
	m.Begin()
	if ok, err := m.Parse(data); !ok {
		return false, err
	}
	return m.End()
}

// MatchString is like Match with a string argument.
//
func (m *Machine) MatchString(s string) (bool, error) {
	return m.Match([]byte(s))
}

// State returns the active state.
//
func (m *Machine) State() StateID {
	return m.cur
}

// Pos returns the number of bytes consumed since the last call to Begin.
//
func (m *Machine) Pos() Pos {
	return m.pos
}

// Pending returns the bytes of a partial symbol waiting for more input.
//
func (m *Machine) Pending() []byte {
	return m.buf[:m.held]
}

// State returns the state the firing transition originates from.
//
func (c *Cursor) State() StateID {
	return c.cur
}

// StateName returns the name of the state returned by State.
//
func (c *Cursor) StateName() string {
	return c.states[c.cur].name
}

// Symbol returns the symbol that triggered the transition. It is nil for
// EOF transitions. The returned slice must not be retained or modified.
//
func (c *Cursor) Symbol() []byte {
	return c.sym
}

// Pos returns the stream position of the current symbol.
//
func (c *Cursor) Pos() Pos {
	return c.pos
}

// DontMove prevents the current symbol from being consumed. The transition
// still happens, and the same symbol is dispatched again from the target
// state.
//
func (c *Cursor) DontMove() {
	c.dontMove = true
}

// Machine returns the Machine c is a view of.
//
func (c *Cursor) Machine() *Machine {
	return (*Machine)(c)
}
