// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tokenize splits a raw argument list into option values using a set
// of option shapes. It knows how many values each option consumes but nothing
// about value types beyond a numeric hint; coercion is left to the caller.
package tokenize

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind describes how many values an option consumes.
type Kind int

const (
	// Flag options consume no value.
	Flag Kind = iota
	// Single options consume one value.
	Single
	// Fixed options consume exactly Count values.
	Fixed
	// Unlimited options consume one token and split it on Separator.
	Unlimited
)

func (k Kind) String() string {
	switch k {
	case Flag:
		return "flag"
	case Single:
		return "single"
	case Fixed:
		return "fixed"
	case Unlimited:
		return "unlimited"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Shape is the tokenizer's view of a registered option.
type Shape struct {
	Long  string
	Short rune // 0 when the option has no short name
	Kind  Kind
	// Count is the number of values a Fixed option consumes.
	Count int
	// Optional allows the option to appear without its value(s).
	Optional bool
	// Separator splits the token of an Unlimited option. Defaults to ','.
	Separator rune
	// Numeric lets the option take values that look like negative numbers.
	Numeric bool
}

func (s Shape) display() string {
	return "--" + s.Long
}

// Tokens is the structured outcome of tokenizing an argument list.
type Tokens struct {
	// Values maps the long name of every supplied option to the raw values
	// it carried. Flags and optional arguments given without a value map to
	// an empty, non-nil slice.
	Values map[string][]string
	// Order lists long names in order of first appearance.
	Order []string
	// Args holds positional arguments, including everything after "--".
	Args []string
}

// Has reports whether the option with the given long name was supplied.
func (t *Tokens) Has(long string) bool {
	_, ok := t.Values[long]
	return ok
}

// UnknownOptionError is returned when a token names an option that has no shape.
type UnknownOptionError struct {
	Token string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unrecognized option: %s", e.Token)
}

// MissingValueError is returned when an option is short of values.
type MissingValueError struct {
	Option string
	Want   int
	Got    int
}

func (e *MissingValueError) Error() string {
	if e.Want == 1 {
		return fmt.Sprintf("missing argument for option: %s", e.Option)
	}
	return fmt.Sprintf("option %s requires %d arguments, got %d", e.Option, e.Want, e.Got)
}

// UnexpectedValueError is returned when a flag is given a value with '='.
type UnexpectedValueError struct {
	Option string
	Value  string
}

func (e *UnexpectedValueError) Error() string {
	return fmt.Sprintf("option %s does not take a value (got %q)", e.Option, e.Value)
}

// Tokenizer tokenizes argument lists. The zero value is ready to use.
type Tokenizer struct{}

// New returns a Tokenizer.
func New() Tokenizer { return Tokenizer{} }

// Tokenize implements the option syntax described in the package
// documentation for the given shapes.
func (Tokenizer) Tokenize(args []string, shapes []Shape) (*Tokens, error) {
	return Tokenize(args, shapes)
}

type index struct {
	long  map[string]Shape
	short map[rune]Shape
}

func buildIndex(shapes []Shape) index {
	idx := index{
		long:  make(map[string]Shape, len(shapes)),
		short: make(map[rune]Shape, len(shapes)),
	}
	for _, s := range shapes {
		if s.Separator == 0 {
			s.Separator = ','
		}
		idx.long[s.Long] = s
		if s.Short != 0 {
			idx.short[s.Short] = s
		}
	}
	return idx
}

// Tokenize splits args according to shapes. It supports:
//   - long options: --name, --name=value, --name value
//   - short options: -n, -n=value, -n value, -nvalue (value-bearing only)
//   - single-dash long options: -name
//   - "--" to end option parsing
//
// Short options are never combined: "-ab" is not "-a -b".
func Tokenize(args []string, shapes []Shape) (*Tokens, error) {
	idx := buildIndex(shapes)
	out := &Tokens{
		Values: make(map[string][]string),
		Args:   []string{},
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			out.Args = append(out.Args, args[i+1:]...)
			break
		}
		if !looksLikeOption(arg) {
			out.Args = append(out.Args, arg)
			continue
		}

		shape, inline, hasInline, err := idx.resolve(arg)
		if err != nil {
			return nil, err
		}

		values, consumed, err := consume(shape, inline, hasInline, args, i)
		if err != nil {
			return nil, err
		}
		out.add(shape.Long, values)
		i += consumed
	}
	return out, nil
}

func (t *Tokens) add(long string, values []string) {
	existing, ok := t.Values[long]
	if !ok {
		t.Order = append(t.Order, long)
		existing = []string{}
	}
	t.Values[long] = append(existing, values...)
}

// resolve maps an option token to its shape. inline is the text after '=' or
// the attached value of a short option.
func (idx index) resolve(arg string) (shape Shape, inline string, hasInline bool, err error) {
	if strings.HasPrefix(arg, "--") {
		name := arg[2:]
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name, inline, hasInline = name[:eq], name[eq+1:], true
		}
		s, ok := idx.long[name]
		if !ok {
			return Shape{}, "", false, &UnknownOptionError{Token: "--" + name}
		}
		return s, inline, hasInline, nil
	}

	body := arg[1:]
	name := body
	if eq := strings.IndexByte(body, '='); eq >= 0 {
		name, inline, hasInline = body[:eq], body[eq+1:], true
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if s, ok := idx.short[r]; ok {
			return s, inline, hasInline, nil
		}
	}
	if s, ok := idx.long[name]; ok {
		return s, inline, hasInline, nil
	}
	// -xVALUE: attached value for a value-bearing short option.
	r, size := utf8.DecodeRuneInString(body)
	if s, ok := idx.short[r]; ok && s.Kind != Flag {
		return s, body[size:], true, nil
	}
	return Shape{}, "", false, &UnknownOptionError{Token: arg}
}

// consume collects the values of one option occurrence. It returns the
// number of following tokens that were used.
func consume(s Shape, inline string, hasInline bool, args []string, i int) ([]string, int, error) {
	switch s.Kind {
	case Flag:
		if hasInline {
			return nil, 0, &UnexpectedValueError{Option: s.display(), Value: inline}
		}
		return nil, 0, nil

	case Single:
		if hasInline {
			return []string{inline}, 0, nil
		}
		if next, ok := valueAt(args, i+1, s); ok {
			return []string{next}, 1, nil
		}
		if s.Optional {
			return nil, 0, nil
		}
		return nil, 0, &MissingValueError{Option: s.display(), Want: 1}

	case Fixed:
		want := max(s.Count, 1)
		var vals []string
		if hasInline {
			vals = append(vals, inline)
		}
		consumed := 0
		for len(vals) < want {
			next, ok := valueAt(args, i+1+consumed, s)
			if !ok {
				break
			}
			vals = append(vals, next)
			consumed++
		}
		if len(vals) < want {
			if !s.Optional {
				return nil, 0, &MissingValueError{Option: s.display(), Want: want, Got: len(vals)}
			}
			// Positions left unfilled by a partial occurrence are holes.
			if len(vals) > 0 {
				for len(vals) < want {
					vals = append(vals, "")
				}
			}
		}
		return vals, consumed, nil

	case Unlimited:
		token, consumed := inline, 0
		if !hasInline {
			next, ok := valueAt(args, i+1, s)
			if !ok {
				if s.Optional {
					return nil, 0, nil
				}
				return nil, 0, &MissingValueError{Option: s.display(), Want: 1}
			}
			token, consumed = next, 1
		}
		return strings.Split(token, string(s.Separator)), consumed, nil
	}
	return nil, 0, fmt.Errorf("tokenize: unsupported kind %v for %s", s.Kind, s.display())
}

// valueAt returns args[i] if it can serve as a value of s.
func valueAt(args []string, i int, s Shape) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	next := args[i]
	if next == "--" {
		return "", false
	}
	if looksLikeOption(next) && !(s.Numeric && numericValue(next, s)) {
		return "", false
	}
	return next, true
}

// numericValue reports whether v is a number, or for an Unlimited shape a
// separated list whose non-empty elements are all numbers.
func numericValue(v string, s Shape) bool {
	if s.Kind != Unlimited {
		return isNumeric(v)
	}
	sep := s.Separator
	if sep == 0 {
		sep = ','
	}
	seen := false
	for part := range strings.SplitSeq(v, string(sep)) {
		if part == "" {
			continue
		}
		if !isNumeric(part) {
			return false
		}
		seen = true
	}
	return seen
}

func looksLikeOption(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

// isNumeric checks if a string is a number (e.g., "10", "-10", "3.14", "-3.14", "1e6").
func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}

	start := 0
	if s[0] == '-' || s[0] == '+' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}

	hasDigit := false
	hasDot := false
	hasExp := false

	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c == '.':
			if hasDot || hasExp {
				return false
			}
			hasDot = true
		case (c == 'e' || c == 'E') && hasDigit && !hasExp:
			hasExp = true
			if i+1 < len(s) && (s[i+1] == '-' || s[i+1] == '+') {
				i++
			}
			if i+1 >= len(s) {
				return false
			}
		default:
			return false
		}
	}

	return hasDigit
}
