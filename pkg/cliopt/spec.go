// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliopt

import (
	"slices"

	"github.com/yeetrun/cliopt/pkg/tokenize"
)

const (
	// HelpLong is the long name of the help option.
	HelpLong = "help"
	// DefaultHelpShort is the help short name used when Config.HelpShort is unset.
	DefaultHelpShort = 'h'
	// DefaultSeparator splits the token of an unlimited argument.
	DefaultSeparator = ','
	// DefaultLabel is the value label shown in help when none is given.
	DefaultLabel = "ARG"
)

// Spec describes one registered option. It is immutable once built.
type Spec struct {
	long        string
	short       rune
	description string
	required    bool

	// Argument-only fields. typ is noType for flags.
	typ        ValueType
	card       Cardinality
	labels     []string
	optional   bool
	separator  rune
	def        any
	hasDefault bool
}

// Long returns the long name.
func (s *Spec) Long() string { return s.long }

// Short returns the short name, or 0 if the option has none.
func (s *Spec) Short() rune { return s.short }

func (s *Spec) Description() string { return s.description }
func (s *Spec) Required() bool      { return s.required }

// IsFlag reports whether the option takes no value.
func (s *Spec) IsFlag() bool { return s.typ == noType }

// Type returns the declared value type of an argument.
func (s *Spec) Type() ValueType { return s.typ }

func (s *Spec) Cardinality() Cardinality { return s.card }

// Labels returns the display names of the argument's values.
func (s *Spec) Labels() []string { return slices.Clone(s.labels) }

// OptionalValue reports whether the argument may be supplied without a value.
func (s *Spec) OptionalValue() bool { return s.optional }

func (s *Spec) Separator() rune { return s.separator }

// Default returns the declared default value, if any.
func (s *Spec) Default() (any, bool) { return s.def, s.hasDefault }

// shape returns the tokenizer's view of s.
func (s *Spec) shape() tokenize.Shape {
	sh := tokenize.Shape{
		Long:      s.long,
		Short:     s.short,
		Optional:  s.optional,
		Separator: s.separator,
		Numeric:   s.typ.Numeric(),
	}
	switch {
	case s.IsFlag():
		sh.Kind = tokenize.Flag
	case s.card.IsUnlimited():
		sh.Kind = tokenize.Unlimited
	case s.card.Count() == 1:
		sh.Kind = tokenize.Single
	default:
		sh.Kind = tokenize.Fixed
		sh.Count = s.card.Count()
	}
	return sh
}

// Builder is implemented by FlagBuilder and ArgBuilder.
type Builder interface {
	// BuildReserving finalizes the option, rejecting reserved as its short
	// name unless the option is the help option itself.
	BuildReserving(reserved rune) (*Spec, error)
}

func checkNames(long string, short, reserved rune) error {
	if long == "" {
		return &MissingLongNameError{Short: short}
	}
	if short != 0 && short == reserved && long != HelpLong {
		return &ReservedNameError{Long: long, Short: short}
	}
	return nil
}

// FlagBuilder builds a boolean option.
type FlagBuilder struct {
	long        string
	short       rune
	description string
	required    bool
}

// Flag starts a flag with the given long name.
func Flag(long string) *FlagBuilder {
	return &FlagBuilder{long: long}
}

func (b *FlagBuilder) Short(r rune) *FlagBuilder {
	b.short = r
	return b
}

func (b *FlagBuilder) Description(s string) *FlagBuilder {
	b.description = s
	return b
}

func (b *FlagBuilder) Required() *FlagBuilder {
	b.required = true
	return b
}

// Build finalizes the flag against DefaultHelpShort.
func (b *FlagBuilder) Build() (*Spec, error) {
	return b.BuildReserving(DefaultHelpShort)
}

func (b *FlagBuilder) BuildReserving(reserved rune) (*Spec, error) {
	if err := checkNames(b.long, b.short, reserved); err != nil {
		return nil, err
	}
	return &Spec{
		long:        b.long,
		short:       b.short,
		description: b.description,
		required:    b.required,
	}, nil
}

// ArgBuilder builds a value-bearing option.
type ArgBuilder struct {
	long        string
	short       rune
	description string
	required    bool
	typ         ValueType
	labels      []string
	optional    bool
	separator   rune
	unlimited   bool
	def         any
	hasDefault  bool
}

// Arg starts an argument with the given long name and value type.
func Arg(long string, typ ValueType) *ArgBuilder {
	return &ArgBuilder{long: long, typ: typ}
}

func TextArg(long string) *ArgBuilder   { return Arg(long, Text) }
func IntArg(long string) *ArgBuilder    { return Arg(long, Integer) }
func FloatArg(long string) *ArgBuilder  { return Arg(long, Float) }
func DoubleArg(long string) *ArgBuilder { return Arg(long, Double) }

func (b *ArgBuilder) Short(r rune) *ArgBuilder {
	b.short = r
	return b
}

func (b *ArgBuilder) Description(s string) *ArgBuilder {
	b.description = s
	return b
}

func (b *ArgBuilder) Required() *ArgBuilder {
	b.required = true
	return b
}

// Names sets the value labels shown in help. More than one label makes the
// argument consume exactly that many values.
func (b *ArgBuilder) Names(labels ...string) *ArgBuilder {
	b.labels = slices.Clone(labels)
	return b
}

// Optional lets the argument appear without a value.
func (b *ArgBuilder) Optional() *ArgBuilder {
	b.optional = true
	return b
}

func (b *ArgBuilder) Separator(r rune) *ArgBuilder {
	b.separator = r
	return b
}

// Unlimited makes the argument take a separator-delimited list. It overrides
// the label count.
func (b *ArgBuilder) Unlimited() *ArgBuilder {
	b.unlimited = true
	return b
}

// Default sets the value returned when the argument is not supplied. v must
// have the Go type of the declared value type; Build reports a mismatch.
func (b *ArgBuilder) Default(v any) *ArgBuilder {
	b.def = v
	b.hasDefault = true
	return b
}

// Build finalizes the argument against DefaultHelpShort.
func (b *ArgBuilder) Build() (*Spec, error) {
	return b.BuildReserving(DefaultHelpShort)
}

func (b *ArgBuilder) BuildReserving(reserved rune) (*Spec, error) {
	if err := checkNames(b.long, b.short, reserved); err != nil {
		return nil, err
	}
	typ := b.typ
	if typ == noType {
		typ = Text
	}
	s := &Spec{
		long:        b.long,
		short:       b.short,
		description: b.description,
		required:    b.required,
		typ:         typ,
		optional:    b.optional,
		separator:   b.separator,
		labels:      slices.Clone(b.labels),
	}
	if s.separator == 0 {
		s.separator = DefaultSeparator
	}
	if len(s.labels) == 0 {
		s.labels = []string{DefaultLabel}
	}
	switch {
	case b.unlimited:
		s.card = Unlimited()
	case len(s.labels) > 1:
		s.card = FixedCount(len(s.labels))
	default:
		s.card = Single()
	}
	if b.hasDefault {
		v, ok := normalizeDefault(typ, b.def)
		if !ok {
			return nil, &DefaultTypeError{Long: b.long, Type: typ, Value: b.def}
		}
		s.def, s.hasDefault = v, true
	}
	return s, nil
}

// normalizeDefault converts v to the native type of t. Numeric defaults may
// be given in any width of the same kind.
func normalizeDefault(t ValueType, v any) (any, bool) {
	switch t {
	case Text:
		s, ok := v.(string)
		return s, ok
	case Integer:
		switch n := v.(type) {
		case int:
			return n, true
		case int32:
			return int(n), true
		case int64:
			if int64(int(n)) != n {
				return nil, false
			}
			return int(n), true
		}
	case Float:
		switch f := v.(type) {
		case float32:
			return f, true
		case float64:
			return float32(f), true
		}
	case Double:
		switch f := v.(type) {
		case float64:
			return f, true
		case float32:
			return float64(f), true
		}
	}
	return nil, false
}
