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
	"strconv"

	"github.com/db47h/mealy"
)

type trieNode struct {
	id    mealy.StateID
	next  map[byte]bool // bytes leading to child nodes
	final bool
}

// A Trie recognizes a set of words (keywords, operators...) starting from a
// given root state, one byte at a time. Words sharing a prefix share states.
//
// When the input diverges from all words, the byte that does not match is
// handed over to a fallback state (it is not consumed) after calling a miss
// action. When a complete word is followed by a byte that does not continue a
// longer word, that byte is handed over to the word's target state after
// calling the word's action. The bytes matched so far are available from
// Prefix in both cases.
//
// At end of input, the word action or the miss action is called as
// appropriate with a nil Cursor.Symbol.
//
type Trie struct {
	m        *mealy.Machine
	root     mealy.StateID
	fallback mealy.StateID
	miss     mealy.Action
	nodes    map[string]*trieNode // by prefix
	buf      []byte
}

// NewTrie returns a new Trie rooted at state root. All trie states are named
// after root's name followed by the prefix they represent.
//
func NewTrie(m *mealy.Machine, root, fallback mealy.StateID, miss mealy.Action) *Trie {
	return &Trie{
		m:        m,
		root:     root,
		fallback: fallback,
		miss:     miss,
		nodes:    map[string]*trieNode{"": {id: root, next: make(map[byte]bool)}},
		buf:      make([]byte, 0, 16),
	}
}

// Prefix returns the bytes matched since the last time the trie left its root
// state. The returned slice is only valid until the next transition.
//
func (t *Trie) Prefix() []byte {
	return t.buf
}

// Add adds a word. When word is matched, a is called and the Machine
// transitions to state to. Add returns ErrDuplicate if word was already added.
//
func (t *Trie) Add(word string, to mealy.StateID, a mealy.Action) error {
	if word == "" {
		return nil
	}
	parent := t.nodes[""]
	for i := 1; i <= len(word); i++ {
		n, err := t.node(parent, word[:i])
		if err != nil {
			return err
		}
		parent = n
	}
	if parent.final {
		return ErrDuplicate
	}
	parent.final = true
	if err := t.m.SetElse(parent.id, to, Retain(a)); err != nil {
		return err
	}
	return t.m.SetEOF(parent.id, a)
}

// node returns the node for the given prefix, creating it as a child of parent
// if needed.
//
func (t *Trie) node(parent *trieNode, prefix string) (*trieNode, error) {
	if n := t.nodes[prefix]; n != nil {
		return n, nil
	}
	id, err := t.m.AddStateWith(mealy.NewByteChooser(), t.m.StateName(t.root)+strconv.Quote(prefix))
	if err != nil {
		return nil, err
	}
	b := prefix[len(prefix)-1]
	var step mealy.Action
	if parent.id == t.root {
		step = func(*mealy.Cursor) error {
			t.buf = append(t.buf[:0], b)
			return nil
		}
	} else {
		step = func(*mealy.Cursor) error {
			t.buf = append(t.buf, b)
			return nil
		}
	}
	if err = t.m.AddTransition(parent.id, []byte{b}, id, step); err != nil {
		return nil, err
	}
	if err = t.m.SetElse(id, t.fallback, Retain(t.miss)); err != nil {
		return nil, err
	}
	if err = t.m.SetEOF(id, t.miss); err != nil {
		return nil, err
	}
	parent.next[b] = true
	n := &trieNode{id: id, next: make(map[byte]bool)}
	t.nodes[prefix] = n
	return n, nil
}

// Extend adds transitions from every state of the trie but its root, on every
// byte in set that does not continue a word, to state to. The byte is not
// consumed. This is typically used so that words are only recognized when
// followed by a separator, and identifiers that merely start with a word are
// handed over to an identifier state. All words must be added before calling
// Extend.
//
func (t *Trie) Extend(set string, to mealy.StateID, a mealy.Action) error {
	ra := Retain(a)
	for p, n := range t.nodes {
		if p == "" {
			continue
		}
		for i := 0; i < len(set); i++ {
			b := set[i]
			if n.next[b] {
				continue
			}
			if err := t.m.AddTransition(n.id, []byte{b}, to, ra); err != nil {
				return err
			}
		}
	}
	return nil
}
