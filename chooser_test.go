package mealy_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/db47h/mealy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactChooser(t *testing.T) {
	c := mealy.NewExactChooser(2)
	assert.Equal(t, 2, c.Width())

	for i, s := range []string{"zz", "ab", "\xff\x00", "a\xff"} {
		idx, err := c.Register([]byte(s))
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
	assert.Equal(t, 1, c.Resolve([]byte("ab")))
	assert.Equal(t, 2, c.Resolve([]byte{0xff, 0}))
	assert.Equal(t, mealy.NoTransition, c.Resolve([]byte("ba")))
	assert.Equal(t, mealy.NoTransition, c.Resolve([]byte("a")))
	assert.Equal(t, []byte("zz"), c.Symbol(0))
	assert.Equal(t, [][]byte{[]byte("ab"), []byte("a\xff"), []byte("zz"), {0xff, 0}}, c.Symbols())

	_, err := c.Register([]byte("ab"))
	assert.True(t, errors.Is(err, mealy.ErrDuplicateSymbol))
	_, err = c.Register([]byte("abc"))
	assert.True(t, errors.Is(err, mealy.ErrSymbolWidth))
	assert.Len(t, c.Symbols(), 4)

	// Register must own its keys
	sym := []byte("qq")
	_, err = c.Register(sym)
	require.NoError(t, err)
	sym[0] = 'x'
	assert.Equal(t, 4, c.Resolve([]byte("qq")))
	assert.Equal(t, mealy.NoTransition, c.Resolve(sym))
}

func TestByteChooser(t *testing.T) {
	c := mealy.NewByteChooser()
	assert.Equal(t, 1, c.Width())
	for i, b := range []byte("a\x00\xff") {
		idx, err := c.Register([]byte{b})
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
	assert.Equal(t, 0, c.Resolve([]byte("a")))
	assert.Equal(t, 1, c.Resolve([]byte{0}))
	assert.Equal(t, 2, c.Resolve([]byte{0xff}))
	assert.Equal(t, mealy.NoTransition, c.Resolve([]byte("b")))
	assert.Equal(t, mealy.NoTransition, c.Resolve([]byte("ab")))
	assert.Equal(t, []byte{0xff}, c.Symbol(2))

	_, err := c.Register([]byte{0})
	assert.True(t, errors.Is(err, mealy.ErrDuplicateSymbol))
	_, err = c.Register(nil)
	assert.True(t, errors.Is(err, mealy.ErrSymbolWidth))
}

func le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func TestMachine_AddRange(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi []byte
		want   [][]byte
	}{
		{"carry", []byte{0xfe, 0x00}, []byte{0x01, 0x01},
			[][]byte{{0xfe, 0x00}, {0xff, 0x00}, {0x00, 0x01}, {0x01, 0x01}}},
		{"single", []byte("ab"), []byte("ab"), [][]byte{[]byte("ab")}},
		{"reversed", []byte{0x00, 0x02}, []byte{0xff, 0x01}, nil},
		{"wrap", []byte{0xfe, 0xff}, []byte{0xff, 0xff}, [][]byte{{0xfe, 0xff}, {0xff, 0xff}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mealy.New(mealy.MaxWidth(2))
			c := mealy.NewExactChooser(2)
			s, err := m.AddStateWith(c, "")
			require.NoError(t, err)
			require.NoError(t, m.AddRange(s, tt.lo, tt.hi, s, nil))
			var got [][]byte
			for i := 0; i < len(tt.want); i++ {
				got = append(got, c.Symbol(i))
			}
			assert.Equal(t, tt.want, got)
			assert.Len(t, c.Symbols(), len(tt.want))
		})
	}
}

// The number of registered symbols is hi - lo + 1 for lo <= hi, 0 otherwise.
func TestMachine_AddRangeCount(t *testing.T) {
	bounds := []uint16{0, 1, 0xff, 0x100, 0x1ff, 0x1234, 0x8000, 0xfffe, 0xffff}
	for _, lo := range bounds {
		for _, hi := range bounds {
			if int(hi)-int(lo) > 0x2000 {
				continue
			}
			m := mealy.New(mealy.MaxWidth(2))
			c := mealy.NewExactChooser(2)
			s, _ := m.AddStateWith(c, "")
			var to mealy.StateID
			require.NoError(t, m.AddRange(s, le16(lo), le16(hi), to, nil))
			want := 0
			if lo <= hi {
				want = int(hi) - int(lo) + 1
			}
			if !assert.Len(t, c.Symbols(), want, "lo=%#x hi=%#x", lo, hi) {
				continue
			}
			if want > 0 {
				assert.Equal(t, le16(lo), c.Symbol(0))
				assert.Equal(t, le16(hi), c.Symbol(want-1))
			}
		}
	}
}
