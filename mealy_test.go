package mealy_test

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/db47h/mealy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_DigitsAcrossChunks(t *testing.T) {
	var out []byte
	m := mealy.New()
	s, err := m.AddState("digits")
	require.NoError(t, err)
	require.NoError(t, m.AddStringRange(s, "0", "9", s, func(c *mealy.Cursor) error {
		out = append(out, c.Symbol()[0])
		return nil
	}))

	m.Begin()
	ok, err := m.ParseString("12")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = m.ParseString("3")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "123", string(out))
	assert.Equal(t, mealy.Pos(3), m.Pos())
	assert.Equal(t, s, m.State())
}

func TestMachine_SplitSymbol(t *testing.T) {
	var fired int
	var pos mealy.Pos
	m := mealy.New(mealy.MaxWidth(2))
	s0, err := m.AddStateWith(mealy.NewExactChooser(2), "wide")
	require.NoError(t, err)
	s1, err := m.AddState("done")
	require.NoError(t, err)
	require.NoError(t, m.AddTransition(s0, []byte{0xab, 0xcd}, s1, func(c *mealy.Cursor) error {
		fired++
		pos = c.Pos()
		assert.Equal(t, []byte{0xab, 0xcd}, c.Symbol())
		assert.Equal(t, s0, c.State())
		assert.Equal(t, "wide", c.StateName())
		return nil
	}))

	m.Begin()
	ok, err := m.Parse([]byte{0xab})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Zero(t, fired)
	assert.Equal(t, []byte{0xab}, m.Pending())
	assert.Equal(t, mealy.Pos(0), m.Pos())

	ok, err = m.Parse([]byte{0xcd})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, fired)
	assert.Equal(t, mealy.Pos(0), pos)
	assert.Equal(t, mealy.Pos(2), m.Pos())
	assert.Equal(t, s1, m.State())
	assert.Empty(t, m.Pending())
}

func TestMachine_NoTransition(t *testing.T) {
	m := mealy.New()
	s, err := m.AddState("start")
	require.NoError(t, err)
	require.NoError(t, m.AddString(s, "ab", s, nil))

	m.Begin()
	ok, err := m.ParseString("abx")
	require.False(t, ok)
	var pe *mealy.ParseError
	require.True(t, errors.As(err, &pe))
	assert.True(t, errors.Is(err, mealy.ErrNoTransition))
	assert.Equal(t, s, pe.State)
	assert.Equal(t, "start", pe.Name)
	assert.Equal(t, []byte("x"), pe.Symbol)
	assert.Equal(t, mealy.Pos(2), pe.Pos)
	assert.Contains(t, err.Error(), "0x78")
	// cursor left at the point of failure
	assert.Equal(t, mealy.Pos(2), m.Pos())

	m.SetQuiet(true)
	assert.True(t, m.Quiet())
	m.Begin()
	ok, err = m.ParseString("abx")
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, mealy.Pos(2), m.Pos())
}

func TestMachine_End(t *testing.T) {
	m := mealy.New(mealy.MaxWidth(2))
	s0, err := m.AddStateWith(mealy.NewExactChooser(2), "")
	require.NoError(t, err)
	require.NoError(t, m.AddTransition(s0, []byte("ab"), s0, nil))

	m.Begin()
	ok, err := m.ParseString("aba")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = m.End()
	assert.False(t, ok)
	assert.True(t, errors.Is(err, mealy.ErrIncomplete))
	var pe *mealy.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, []byte("a"), pe.Symbol)
	assert.Equal(t, mealy.Pos(2), pe.Pos)

	m.SetQuiet(true)
	ok, err = m.End()
	assert.False(t, ok)
	assert.NoError(t, err)

	// empty buffer, no EOF transition
	m.SetQuiet(false)
	m.Begin()
	ok, err = m.ParseString("ab")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = m.End()
	assert.False(t, ok)
	assert.NoError(t, err)

	var eof int
	require.NoError(t, m.SetEOF(s0, func(c *mealy.Cursor) error {
		eof++
		assert.Nil(t, c.Symbol())
		assert.Equal(t, mealy.Pos(2), c.Pos())
		return nil
	}))
	ok, err = m.End()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 1, eof)
	assert.Equal(t, s0, m.State())
}

func TestMachine_DontMove(t *testing.T) {
	var trace []string
	m := mealy.New()
	a, _ := m.AddState("a")
	b, _ := m.AddState("b")
	require.NoError(t, m.AddString(a, "x", b, func(c *mealy.Cursor) error {
		trace = append(trace, fmt.Sprintf("a:%d", c.Pos()))
		c.DontMove()
		return nil
	}))
	require.NoError(t, m.AddString(b, "x", a, func(c *mealy.Cursor) error {
		trace = append(trace, fmt.Sprintf("b:%d", c.Pos()))
		return nil
	}))

	m.Begin()
	ok, err := m.ParseString("xx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"a:0", "b:0", "a:1", "b:1"}, trace)
	assert.Equal(t, mealy.Pos(2), m.Pos())
	assert.Equal(t, a, m.State())
}

func TestMachine_DontMoveUpdatesState(t *testing.T) {
	m := mealy.New()
	a, _ := m.AddState("a")
	b, _ := m.AddState("b")
	require.NoError(t, m.AddString(a, "x", b, func(c *mealy.Cursor) error {
		c.DontMove()
		return nil
	}))
	// b has no transition for 'x'
	m.Begin()
	ok, err := m.ParseString("x")
	assert.False(t, ok)
	var pe *mealy.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, b, pe.State)
	assert.Equal(t, mealy.Pos(0), pe.Pos)
	assert.Equal(t, b, m.State())
}

func TestMachine_Else(t *testing.T) {
	var others []byte
	m := mealy.New()
	s, _ := m.AddState("")
	require.NoError(t, m.AddString(s, "a", s, nil))
	require.NoError(t, m.SetElse(s, s, func(c *mealy.Cursor) error {
		others = append(others, c.Symbol()...)
		return nil
	}))
	ok, err := m.MatchString("abac")
	assert.False(t, ok) // no EOF transition
	assert.NoError(t, err)
	assert.Equal(t, "bc", string(others))
}

func TestMachine_ActionError(t *testing.T) {
	errStop := errors.New("stop")
	m := mealy.New(mealy.Quiet(true))
	a, _ := m.AddState("")
	b, _ := m.AddState("")
	require.NoError(t, m.AddString(a, "a", a, nil))
	require.NoError(t, m.AddString(a, "b", b, func(*mealy.Cursor) error { return errStop }))
	require.NoError(t, m.SetEOF(a, func(*mealy.Cursor) error { return errStop }))

	m.Begin()
	ok, err := m.ParseString("aab")
	assert.False(t, ok)
	assert.Same(t, errStop, err)
	assert.Equal(t, a, m.State())
	assert.Equal(t, mealy.Pos(2), m.Pos())

	ok, err = m.MatchString("aa")
	assert.False(t, ok)
	assert.Same(t, errStop, err)
}

func TestMachine_Match(t *testing.T) {
	m := mealy.New()
	s, _ := m.AddState("")
	require.NoError(t, m.AddString(s, "ab", s, nil))
	require.NoError(t, m.SetEOF(s, nil))

	tests := []struct {
		in    string
		quiet bool
		ok    bool
		err   error
	}{
		{"abba", false, true, nil},
		{"", false, true, nil},
		{"abc", false, false, mealy.ErrNoTransition},
		{"abc", true, false, nil},
	}
	for i, tt := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			m.SetQuiet(tt.quiet)
			ok, err := m.MatchString(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
			}
		})
	}
}

// tokenizer builds a machine mixing symbol widths, retained symbols and
// else transitions, and records every action invocation.
//
func tokenizer(t *testing.T, trace *[]string) *mealy.Machine {
	rec := func(tag string) mealy.Action {
		return func(c *mealy.Cursor) error {
			*trace = append(*trace, fmt.Sprintf("%s@%d:%d:%x", tag, c.Pos(), c.State(), c.Symbol()))
			return nil
		}
	}
	retain := func(tag string) mealy.Action {
		r := rec(tag)
		return func(c *mealy.Cursor) error {
			c.DontMove()
			return r(c)
		}
	}
	m := mealy.New(mealy.MaxWidth(3))
	start, _ := m.AddState("start")
	num, _ := m.AddState("num")
	pair, _ := m.AddStateWith(mealy.NewExactChooser(2), "pair")
	tri, _ := m.AddStateWith(mealy.NewExactChooser(3), "tri")

	require.NoError(t, m.AddStringRange(start, "0", "9", num, retain("num")))
	require.NoError(t, m.AddString(start, "#", pair, retain("pair")))
	require.NoError(t, m.AddString(start, "$", tri, rec("tri")))
	require.NoError(t, m.SetElse(start, start, rec("skip")))
	require.NoError(t, m.AddStringRange(num, "0", "9", num, rec("digit")))
	require.NoError(t, m.SetElse(num, start, retain("endnum")))
	require.NoError(t, m.SetElse(pair, start, rec("pair")))
	require.NoError(t, m.SetElse(tri, start, rec("tri")))
	require.NoError(t, m.SetEOF(num, rec("eofnum")))
	require.NoError(t, m.SetEOF(start, rec("eof")))
	return m
}

func TestMachine_ChunkInvariance(t *testing.T) {
	input := []byte("12 #ab3$xyz45#q 7")
	var want []string
	m := tokenizer(t, &want)
	ok, err := m.Match(input)
	require.NoError(t, err)
	require.True(t, ok)
	wantState, wantPos := m.State(), m.Pos()
	require.Equal(t, mealy.Pos(len(input)), wantPos)

	for sz := 1; sz <= 4; sz++ {
		t.Run(strconv.Itoa(sz), func(t *testing.T) {
			var got []string
			m := tokenizer(t, &got)
			m.Begin()
			for i := 0; i < len(input); i += sz {
				j := i + sz
				if j > len(input) {
					j = len(input)
				}
				ok, err := m.Parse(input[i:j])
				require.NoError(t, err)
				require.True(t, ok)
			}
			ok, err := m.End()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want, got)
			assert.Equal(t, wantState, m.State())
			assert.Equal(t, wantPos, m.Pos())
		})
	}
}

func TestMachine_ConfigErrors(t *testing.T) {
	m := mealy.New(mealy.MaxWidth(2), mealy.Quiet(true))
	_, err := m.AddStateWith(nil, "nil")
	assert.True(t, errors.Is(err, mealy.ErrNilChooser))
	_, err = m.AddStateWith(mealy.NewExactChooser(3), "wide")
	assert.True(t, errors.Is(err, mealy.ErrWidth))
	assert.Zero(t, m.NumStates())

	s, err := m.AddStateWith(mealy.NewExactChooser(2), "two")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Width(s))
	assert.Equal(t, "two", m.StateName(s))
	assert.Zero(t, m.Width(42))
	assert.Empty(t, m.StateName(-1))

	var ce *mealy.ConfigError
	err = m.AddTransition(1, []byte("ab"), s, nil)
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "AddTransition", ce.Op)
	assert.True(t, errors.Is(err, mealy.ErrState))
	assert.True(t, errors.Is(m.AddTransition(s, []byte("ab"), 7, nil), mealy.ErrState))
	assert.True(t, errors.Is(m.AddTransition(s, []byte("a"), s, nil), mealy.ErrSymbolWidth))
	assert.True(t, errors.Is(m.AddString(s, "abc", s, nil), mealy.ErrSymbolWidth))
	assert.True(t, errors.Is(m.AddRange(s, []byte("a"), []byte("bb"), s, nil), mealy.ErrSymbolWidth))
	assert.True(t, errors.Is(m.SetElse(s, 3, nil), mealy.ErrState))
	assert.True(t, errors.Is(m.SetEOF(3, nil), mealy.ErrState))

	require.NoError(t, m.AddStrings(s, []string{"abcd", "ef"}, s, nil))
	err = m.AddString(s, "ef", s, nil)
	assert.True(t, errors.Is(err, mealy.ErrDuplicateSymbol))
	assert.Contains(t, err.Error(), "AddTransition(0)")
}

func TestMachine_NoStates(t *testing.T) {
	m := mealy.New()
	_, err := m.MatchString("a")
	assert.True(t, errors.Is(err, mealy.ErrState))
	_, err = m.End()
	assert.True(t, errors.Is(err, mealy.ErrState))
}

func TestMachine_ByteChooser(t *testing.T) {
	var n int
	m := mealy.New()
	s, err := m.AddStateWith(mealy.NewByteChooser(), "bytes")
	require.NoError(t, err)
	require.NoError(t, m.AddRange(s, []byte{0}, []byte{0xff}, s, func(*mealy.Cursor) error {
		n++
		return nil
	}))
	require.NoError(t, m.SetEOF(s, nil))
	in := make([]byte, 512)
	for i := range in {
		in[i] = byte(i)
	}
	ok, err := m.Match(in)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 512, n)
}

func TestMachine_NilLogger(t *testing.T) {
	m := mealy.New(mealy.Logger(nil))
	s, err := m.AddState("s")
	require.NoError(t, err)
	require.NoError(t, m.AddString(s, "ab", s, nil))
	require.NoError(t, m.SetEOF(s, nil))
	var ok bool
	require.NotPanics(t, func() { ok, err = m.MatchString("abba") })
	assert.NoError(t, err)
	assert.True(t, ok)
}
