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

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/db47h/mealy/scanner"
	"github.com/db47h/mealy/token"
	"github.com/spf13/cobra"
	"golang.org/x/text/width"
)

// errScan is returned when the input contains lexical errors. They have
// already been reported.
var errScan = errors.New("scan errors")

func newScanCmd(g *globalFlags) *cobra.Command {
	var chunk int

	cmd := &cobra.Command{
		Use:   "scan [file...]",
		Short: "Print the tokens of configuration files",
		Long: `Print the tokens of configuration files, one per line, as
file:line:column: token value.

If no file is provided, reads from stdin. Input is fed to the scanner in
chunks of --chunk bytes; the output does not depend on the chunk size.
Lexical errors are printed along with the offending line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if chunk < 1 {
				return fmt.Errorf("invalid chunk size %d", chunk)
			}
			log := g.logger(cmd.ErrOrStderr())
			s, err := scanner.New(g.machineOptions(log)...)
			if err != nil {
				return fmt.Errorf("build scanner: %w", err)
			}
			if len(args) == 0 {
				args = []string{"-"}
			}
			nerr := 0
			for _, name := range args {
				var src []byte
				if name == "-" {
					name = "<stdin>"
					src, err = io.ReadAll(cmd.InOrStdin())
				} else {
					src, err = os.ReadFile(name)
				}
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				n, err := scanSource(cmd.OutOrStdout(), s, name, src, chunk)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				log.Debug("scanned", slog.String("file", name), slog.Int("bytes", len(src)), slog.Int("errors", n))
				nerr += n
			}
			if nerr > 0 {
				return fmt.Errorf("%w: %d error(s)", errScan, nerr)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&chunk, "chunk", "c", 4096, "number of bytes fed to the scanner at a time")

	return cmd
}

// chunkReader hides the WriterTo implementation of its underlying reader so
// that io.CopyBuffer honors the buffer size.
//
type chunkReader struct {
	io.Reader
}

// scanSource tokenizes src and prints the tokens to w. It returns the number
// of lexical errors found.
//
func scanSource(w io.Writer, s *scanner.Scanner, name string, src []byte, chunk int) (int, error) {
	s.Reset()
	if _, err := io.CopyBuffer(s, chunkReader{bytes.NewReader(src)}, make([]byte, chunk)); err != nil {
		return 0, err
	}
	if err := s.Close(); err != nil {
		return 0, err
	}
	nerr := 0
	lines := s.Lines()
	for t, ok := s.Next(); ok; t, ok = s.Next() {
		p := lines.Position(t.Pos)
		fmt.Fprintf(w, "%s:%s: %s\n", name, p, t)
		if t.Token != token.Error {
			continue
		}
		nerr++
		line, err := lines.LineBytes(bytes.NewReader(src), t.Pos)
		if err != nil {
			return nerr, err
		}
		fmt.Fprintf(w, "\t%s\n\t%s^\n", line, caretPad(line, p.Column))
	}
	return nerr, nil
}

// caretPad returns the padding that puts a caret below the given 1-based byte
// column of line. Tabs are kept as is and wide runes take two cells.
//
func caretPad(line []byte, col int) string {
	if col < 1 {
		col = 1
	}
	if col-1 < len(line) {
		line = line[:col-1]
	}
	var sb strings.Builder
	for _, r := range string(line) {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			sb.WriteString("  ")
		default:
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
