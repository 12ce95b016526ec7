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

// AddStateWith adds a new state whose symbols are matched by c and returns its
// ID. The chooser is owned by the new state from then on.
//
// The name is only used for diagnostics and may be empty.
//
func (m *Machine) AddStateWith(c Chooser, name string) (StateID, error) {
	id := StateID(len(m.states))
	if c == nil {
		return -1, configErr("AddState", id, ErrNilChooser)
	}
	if w := c.Width(); w < 1 || w > len(m.buf) {
		return -1, configErr("AddState", id, ErrWidth)
	}
	m.states = append(m.states, state{chooser: c, name: name})
	return id, nil
}

// AddState adds a new state that consumes single byte symbols with an
// ExactChooser.
//
func (m *Machine) AddState(name string) (StateID, error) {
	return m.AddStateWith(NewExactChooser(1), name)
}

// NumStates returns the number of states.
//
func (m *Machine) NumStates() int {
	return len(m.states)
}

// StateName returns the name given to state id, or an empty string if id is
// not a valid state.
//
func (m *Machine) StateName(id StateID) string {
	if !m.valid(id) {
		return ""
	}
	return m.states[id].name
}

// Width returns the symbol width of state id, or 0 if id is not a valid state.
//
func (m *Machine) Width(id StateID) int {
	if !m.valid(id) {
		return 0
	}
	return m.states[id].chooser.Width()
}

func (m *Machine) valid(id StateID) bool {
	return id >= 0 && int(id) < len(m.states)
}

func (m *Machine) check(op string, from, to StateID) error {
	if !m.valid(from) {
		return configErr(op, from, ErrState)
	}
	if !m.valid(to) {
		return configErr(op, to, ErrState)
	}
	return nil
}

// AddTransition adds a transition from state from to state to, triggered by
// sym. The length of sym must match the width of from.
//
func (m *Machine) AddTransition(from StateID, sym []byte, to StateID, a Action) error {
	if err := m.check("AddTransition", from, to); err != nil {
		return err
	}
	s := &m.states[from]
	i, err := s.chooser.Register(sym)
	if err != nil {
		return configErr("AddTransition", from, err)
	}
	if i != len(s.transitions) {
		panic("mealy: chooser returned an out of sequence transition index")
	}
	s.transitions = append(s.transitions, Transition{To: to, Action: a})
	return nil
}

// AddTransitions adds a transition from state from to state to for each symbol
// in syms.
//
func (m *Machine) AddTransitions(from StateID, syms [][]byte, to StateID, a Action) error {
	for _, sym := range syms {
		if err := m.AddTransition(from, sym, to, a); err != nil {
			return err
		}
	}
	return nil
}

// AddString splits s into symbols of the width of state from and adds a
// transition to state to for each of them. The length of s must be a multiple
// of that width. e.g., with a width of 1:
//
//	m.AddString(from, "+-*/", to, a)
//
// adds four transitions.
//
func (m *Machine) AddString(from StateID, s string, to StateID, a Action) error {
	if err := m.check("AddString", from, to); err != nil {
		return err
	}
	w := m.states[from].chooser.Width()
	if len(s)%w != 0 {
		return configErr("AddString", from, ErrSymbolWidth)
	}
	for i := 0; i < len(s); i += w {
		if err := m.AddTransition(from, []byte(s[i:i+w]), to, a); err != nil {
			return err
		}
	}
	return nil
}

// AddStrings calls AddString for each string in ss.
//
func (m *Machine) AddStrings(from StateID, ss []string, to StateID, a Action) error {
	for _, s := range ss {
		if err := m.AddString(from, s, to, a); err != nil {
			return err
		}
	}
	return nil
}

// AddRange adds a transition from state from to state to for every symbol
// between lo and hi inclusive. Both must be exactly as wide as state from.
//
// Symbols are enumerated as little endian counters: byte 0 is the least
// significant and increments carry towards the last byte. Bounds are compared
// by magnitude, from the last byte down to the first. If lo is greater than
// hi, no transition is added. Enumeration stops after hi, or after the
// all-0xff symbol if the counter wraps around.
//
func (m *Machine) AddRange(from StateID, lo, hi []byte, to StateID, a Action) error {
	if err := m.check("AddRange", from, to); err != nil {
		return err
	}
	w := m.states[from].chooser.Width()
	if len(lo) != w || len(hi) != w {
		return configErr("AddRange", from, ErrSymbolWidth)
	}
	if compareLE(lo, hi) > 0 {
		return nil
	}
	sym := append([]byte(nil), lo...)
	for {
		if err := m.AddTransition(from, sym, to, a); err != nil {
			return err
		}
		if !increment(sym) || compareLE(sym, hi) > 0 {
			return nil
		}
	}
}

// AddStringRange is like AddRange with string bounds. e.g.
//
//	m.AddStringRange(s, "0", "9", s, appendDigit)
//
func (m *Machine) AddStringRange(from StateID, lo, hi string, to StateID, a Action) error {
	return m.AddRange(from, []byte(lo), []byte(hi), to, a)
}

// SetElse sets the transition taken from state from when no other transition
// matches. A second call replaces the first.
//
func (m *Machine) SetElse(from, to StateID, a Action) error {
	if err := m.check("SetElse", from, to); err != nil {
		return err
	}
	m.states[from].elseT = &Transition{To: to, Action: a}
	return nil
}

// SetEOF sets the action invoked by End when state from is active. A second
// call replaces the first. EOF transitions do not change the active state.
//
func (m *Machine) SetEOF(from StateID, a Action) error {
	if !m.valid(from) {
		return configErr("SetEOF", from, ErrState)
	}
	m.states[from].eofT = &Transition{To: from, Action: a}
	return nil
}

// compareLE compares two little endian numbers of the same width.
//
func compareLE(a, b []byte) int {
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// increment adds 1 to the little endian number in b. It returns false if the
// counter wrapped around to 0.
//
func increment(b []byte) bool {
	for i := range b {
		b[i]++
		if b[i] != 0 {
			return true
		}
	}
	return false
}
