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
	"io"
	"log/slog"
)

type options struct {
	maxWidth int
	quiet    bool
	logger   *slog.Logger
}

// An Option is a configuration option for a new Machine.
//
type Option func(*options)

// MaxWidth sets the width of the widest symbol the Machine will ever consume.
// States whose chooser is wider than n are rejected by AddStateWith. The
// default is 1.
//
func MaxWidth(n int) Option {
	return func(o *options) {
		o.maxWidth = n
	}
}

// Quiet sets the initial quiet mode. See Machine.SetQuiet.
//
func Quiet(quiet bool) Option {
	return func(o *options) {
		o.quiet = quiet
	}
}

// Logger sets a logger used to trace transitions at debug level. A nil logger
// disables tracing.
//
func Logger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func defOptions() options {
	return options{
		maxWidth: 1,
		// noop logger by default
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
