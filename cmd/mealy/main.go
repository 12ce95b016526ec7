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

// Command mealy tokenizes configuration files with the scanner package and
// dumps its automaton.
//
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/db47h/mealy"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	verbose bool
	quiet   bool
}

// logger returns a text logger writing to w. Debug messages, including
// machine transitions, are only enabled with --verbose.
//
func (g *globalFlags) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (g *globalFlags) machineOptions(l *slog.Logger) []mealy.Option {
	return []mealy.Option{mealy.Logger(l), mealy.Quiet(g.quiet)}
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	rootCmd := &cobra.Command{
		Use:          "mealy",
		Short:        "Tokenize configuration files with a streaming Mealy machine",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "trace machine transitions on stderr")
	rootCmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "run the machine in quiet mode")

	rootCmd.AddCommand(newScanCmd(&g))
	rootCmd.AddCommand(newDumpCmd(&g))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
