package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/db47h/mealy/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const src = "a = \"漢\" $\n"

const want = `<stdin>:1:1: Ident a
<stdin>:1:3: Assign
<stdin>:1:5: String "漢"
<stdin>:1:11: Error illegal character '$'
	a = "漢" $
	         ^
<stdin>:1:12: EOL
<stdin>:2:1: EOF
`

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestScanCmd(t *testing.T) {
	for _, chunk := range []string{"1", "3", "4096"} {
		out, _, err := run(t, src, "scan", "--chunk", chunk)
		assert.True(t, errors.Is(err, errScan), "chunk %s: unexpected error %v", chunk, err)
		assert.Equal(t, want, out, "chunk %s", chunk)
	}
}

func TestScanCmd_BadChunk(t *testing.T) {
	_, _, err := run(t, src, "scan", "--chunk", "0")
	require.Error(t, err)
	assert.False(t, errors.Is(err, errScan))
}

func TestScanCmd_Verbose(t *testing.T) {
	_, stderr, err := run(t, "x = 1\n", "scan", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "msg=transition")
	assert.Contains(t, stderr, "msg=scanned")
}

func TestScanSource(t *testing.T) {
	s, err := scanner.New()
	require.NoError(t, err)
	var out bytes.Buffer
	n, err := scanSource(&out, s, "f", []byte("ok = 0x\n"), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, out.String(), "f:1:6: Error malformed hexadecimal literal\n\tok = 0x\n\t     ^\n")
}

func TestDumpCmd(t *testing.T) {
	out, _, err := run(t, "", "dump")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "state start:\n"), out)
	assert.Contains(t, out, "state ident:")
	assert.Contains(t, out, `state start"true":`)
}

func TestCaretPad(t *testing.T) {
	assert.Equal(t, "\t  ", caretPad([]byte("\tab"), 4))
	assert.Equal(t, "    ", caretPad([]byte("漢字x"), 7))
	assert.Equal(t, "   ", caretPad([]byte("abc"), 10))
	assert.Equal(t, "", caretPad([]byte("abc"), 0))
}
