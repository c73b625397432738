// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliopt

import (
	"io"
	"os"
	"path/filepath"

	"github.com/yeetrun/cliopt/pkg/tokenize"
	"github.com/yeetrun/cliopt/pkg/tui"
)

// Tokenizer turns raw arguments into option values for the given shapes.
type Tokenizer interface {
	Tokenize(args []string, shapes []tokenize.Shape) (*tokenize.Tokens, error)
}

// Config configures a Registry. The zero value is usable.
type Config struct {
	// Program is the name shown in usage. Defaults to the base name of os.Args[0].
	Program string
	// Description is printed under the usage line.
	Description string
	// HelpShort is the short name reserved for help. Defaults to 'h'.
	HelpShort rune
	// Output receives help text. Defaults to os.Stdout.
	Output io.Writer
	// Tokenizer defaults to tokenize.New().
	Tokenizer Tokenizer
	// Color controls help colouring.
	Color tui.ColorMode
	// Logf, if non-nil, receives debug logs of the parse.
	Logf func(format string, args ...any)
}

func (c Config) withDefaults() Config {
	if c.Program == "" && len(os.Args) > 0 {
		c.Program = filepath.Base(os.Args[0])
	}
	if c.HelpShort == 0 {
		c.HelpShort = DefaultHelpShort
	}
	if c.Output == nil {
		c.Output = os.Stdout
	}
	if c.Tokenizer == nil {
		c.Tokenizer = tokenize.New()
	}
	if c.Logf == nil {
		c.Logf = func(string, ...any) {}
	}
	return c
}
