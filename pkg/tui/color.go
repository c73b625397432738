// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ColorMode selects when output is coloured.
type ColorMode int

const (
	// ColorAuto colours terminals unless NO_COLOR is set or TERM is dumb.
	ColorAuto ColorMode = iota
	ColorNever
	ColorAlways
)

func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorNever:
		return "never"
	case ColorAlways:
		return "always"
	}
	return fmt.Sprintf("ColorMode(%d)", int(m))
}

// ParseColorMode parses auto, never or always.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "never", "off", "false":
		return ColorNever, nil
	case "always", "on", "true":
		return ColorAlways, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, never or always)", s)
}

type Colorizer struct {
	Enabled bool
}

// NewColorizer returns an enabled Colorizer if enabled is true and the
// environment does not opt out of colour.
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	termName := os.Getenv("TERM")
	if termName == "" || termName == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// ForWriter returns the Colorizer for output written to w.
func ForWriter(w io.Writer, mode ColorMode) Colorizer {
	switch mode {
	case ColorNever:
		return Colorizer{}
	case ColorAlways:
		return Colorizer{Enabled: true}
	}
	return NewColorizer(IsTerminal(w))
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (c Colorizer) paint(text string, attrs ...color.Attribute) string {
	if !c.Enabled || text == "" {
		return text
	}
	col := color.New(attrs...)
	col.EnableColor()
	return col.Sprint(text)
}

// Heading is used for section titles.
func (c Colorizer) Heading(text string) string { return c.paint(text, color.Bold) }

// Option is used for option names.
func (c Colorizer) Option(text string) string { return c.paint(text, color.FgCyan) }

// Label is used for value placeholders.
func (c Colorizer) Label(text string) string { return c.paint(text, color.FgYellow) }

// Dim is used for secondary details such as defaults.
func (c Colorizer) Dim(text string) string { return c.paint(text, color.FgHiBlack) }

// Error is used for error messages.
func (c Colorizer) Error(text string) string { return c.paint(text, color.FgRed) }
