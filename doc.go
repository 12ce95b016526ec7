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

/*
Package mealy provides a byte oriented Mealy machine: a finite state automaton
whose transitions, rather than its states, produce output by invoking actions.

It is meant as the core of hand-built lexers for textual or binary protocols.
Client code creates states and transitions once, then feeds input to the
Machine in chunks of any size. The Machine consumes fixed width symbols,
resolves each one to a transition of the active state and invokes the
transition's action.

Building a machine

States are created with AddState or AddStateWith and identified by a StateID.
State 0 is the initial state. Each state owns a Chooser that maps symbols to
transitions. The width of the symbols a state consumes is that of its chooser
and never changes. AddState uses an ExactChooser for single byte symbols.
Wider choosers require reserving room with the MaxWidth option:

	m := mealy.New(mealy.MaxWidth(2))
	start, _ := m.AddState("start")
	op, _ := m.AddStateWith(mealy.NewExactChooser(2), "opcode")

Transitions are added with AddTransition and its variants for lists of
symbols, strings split into symbols and ranges of symbols:

	m.AddStringRange(start, "0", "9", start, func(c *mealy.Cursor) error {
		digits = append(digits, c.Symbol()[0])
		return nil
	})

A state may also have an else transition, taken when no other transition
matches, and an EOF transition whose action is invoked by End.

Configuration methods return a *ConfigError on invalid arguments. These are
programming errors.

Parsing

Begin resets the Machine, Parse consumes chunks of the input stream and End
signals the end of the stream. Match does all three for a complete input.

Actions receive a Cursor giving access to the active state, the symbol that
triggered the transition and the stream position. An action can call
Cursor.DontMove to prevent the symbol from being consumed: the Machine still
transitions to the target state, then dispatches the same symbol again from
there. This is how a lexer hands over a lookahead byte to another state.

Error handling

Input that no transition accepts makes Parse or End return false and a
*ParseError that carries the active state, the offending bytes and their
position. In quiet mode, set with SetQuiet or the Quiet option, these errors
are not reported and Parse and End only return false. Errors returned by
actions are passed through unchanged.

Sub-packages

The state sub-package provides builders for common sub-automata (keywords,
numbers, quoted strings) and the scanner sub-package is a complete tokenizer
built with this package.
*/
package mealy
