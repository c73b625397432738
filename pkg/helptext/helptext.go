// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package helptext renders usage text for a set of command-line options.
package helptext

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/yeetrun/cliopt/pkg/tui"
)

// Option is the help view of one option.
type Option struct {
	Long        string
	Short       rune // 0 if none
	Description string
	Required    bool

	// Labels name the option's values. Empty for flags.
	Labels []string
	// OptionalValue marks the value(s) as omittable.
	OptionalValue bool
	// Separator is set for list-valued options.
	Separator rune
	// Default is the default value as text, empty if none.
	Default string
}

// Usage is everything Render draws.
type Usage struct {
	Program     string
	Description string
	Options     []Option
}

type RenderOptions struct {
	Color tui.ColorMode
	// Width is the minimum width of the option column. Defaults to 24.
	Width int
}

const (
	indent       = "    "
	defaultWidth = 24
)

// Render writes u to w.
func Render(w io.Writer, u Usage, opts RenderOptions) error {
	c := tui.ForWriter(w, opts.Color)
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	for _, o := range u.Options {
		width = max(width, utf8.RuneCountInString(Synopsis(o)))
	}

	var b strings.Builder
	program := u.Program
	if program == "" {
		program = "command"
	}
	fmt.Fprintf(&b, "%s %s [options]\n", c.Heading("usage:"), program)
	if u.Description != "" {
		b.WriteString("\n")
		b.WriteString(u.Description)
		b.WriteString("\n")
	}
	if len(u.Options) > 0 {
		b.WriteString("\n")
		b.WriteString(c.Heading("OPTIONS:"))
		b.WriteString("\n")
		for _, o := range u.Options {
			writeOption(&b, c, o, width)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeOption(b *strings.Builder, c tui.Colorizer, o Option, width int) {
	plain := Synopsis(o)
	b.WriteString(indent)
	b.WriteString(colorSynopsis(c, o))

	var notes []string
	if o.Required {
		notes = append(notes, "required")
	}
	if o.Default != "" {
		notes = append(notes, "default: "+o.Default)
	}
	if o.Description == "" && len(notes) == 0 {
		b.WriteString("\n")
		return
	}
	b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(plain)+2))
	b.WriteString(o.Description)
	if len(notes) > 0 {
		if o.Description != "" {
			b.WriteString(" ")
		}
		b.WriteString(c.Dim("(" + strings.Join(notes, ", ") + ")"))
	}
	b.WriteString("\n")
}

// Synopsis returns the option column for o without colour, e.g.
// "-o, --output <FILE>".
func Synopsis(o Option) string {
	return names(o, func(s string) string { return s }) + values(o, func(s string) string { return s })
}

func colorSynopsis(c tui.Colorizer, o Option) string {
	return names(o, c.Option) + values(o, c.Label)
}

func names(o Option, paint func(string) string) string {
	if o.Short != 0 {
		return paint(fmt.Sprintf("-%c", o.Short)) + ", " + paint("--"+o.Long)
	}
	return "    " + paint("--"+o.Long)
}

func values(o Option, paint func(string) string) string {
	if len(o.Labels) == 0 {
		return ""
	}
	parts := make([]string, len(o.Labels))
	for i, l := range o.Labels {
		parts[i] = "<" + l + ">"
	}
	v := strings.Join(parts, " ")
	if o.Separator != 0 {
		v += fmt.Sprintf("[%c...]", o.Separator)
	}
	if o.OptionalValue {
		v = "[" + v + "]"
	}
	return " " + paint(v)
}
