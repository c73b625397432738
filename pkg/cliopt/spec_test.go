// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliopt

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildReservedShortName(t *testing.T) {
	for _, b := range []Builder{
		Flag("host").Short('h'),
		TextArg("host").Short('h'),
	} {
		_, err := b.BuildReserving('h')
		var re *ReservedNameError
		if !errors.As(err, &re) {
			t.Fatalf("BuildReserving error = %v, want ReservedNameError", err)
		}
		if re.Long != "host" || re.Short != 'h' {
			t.Fatalf("ReservedNameError = %+v", re)
		}
		if !errors.Is(err, ErrReservedName) {
			t.Fatalf("errors.Is(%v, ErrReservedName) = false", err)
		}
	}

	// The help option itself may use the reserved rune.
	if _, err := Flag(HelpLong).Short('h').Build(); err != nil {
		t.Fatalf("help with -h: %v", err)
	}
	// A different reserved rune frees 'h'.
	if _, err := Flag("host").Short('h').BuildReserving('?'); err != nil {
		t.Fatalf("host with -h reserving '?': %v", err)
	}
	// The check is case sensitive.
	if _, err := Flag("Host").Short('H').Build(); err != nil {
		t.Fatalf("Host with -H: %v", err)
	}
}

func TestBuildMissingLongName(t *testing.T) {
	_, err := Flag("").Short('x').Build()
	var me *MissingLongNameError
	if !errors.As(err, &me) {
		t.Fatalf("Build error = %v, want MissingLongNameError", err)
	}
	if _, err := IntArg("").Build(); !errors.As(err, &me) {
		t.Fatalf("IntArg(\"\").Build error = %v, want MissingLongNameError", err)
	}
}

func TestArgCardinality(t *testing.T) {
	tests := []struct {
		name   string
		b      *ArgBuilder
		card   Cardinality
		labels []string
	}{
		{"default", TextArg("a"), Single(), []string{"ARG"}},
		{"one label", TextArg("a").Names("FILE"), Single(), []string{"FILE"}},
		{"fixed", IntArg("a").Names("X", "Y", "Z"), FixedCount(3), []string{"X", "Y", "Z"}},
		{"unlimited wins", TextArg("a").Names("A", "B").Unlimited(), Unlimited(), []string{"A", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.b.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if s.Cardinality() != tt.card {
				t.Fatalf("Cardinality = %v, want %v", s.Cardinality(), tt.card)
			}
			if diff := cmp.Diff(tt.labels, s.Labels()); diff != "" {
				t.Fatalf("Labels mismatch (-want +got):\n%s", diff)
			}
			if s.Separator() != DefaultSeparator {
				t.Fatalf("Separator = %q, want %q", s.Separator(), DefaultSeparator)
			}
		})
	}
}

func TestArgDefaults(t *testing.T) {
	tests := []struct {
		name string
		b    *ArgBuilder
		want any
	}{
		{"text", TextArg("a").Default("x"), "x"},
		{"integer", IntArg("a").Default(7), 7},
		{"integer from int64", IntArg("a").Default(int64(7)), 7},
		{"float from float64", FloatArg("a").Default(1.5), float32(1.5)},
		{"double from float32", DoubleArg("a").Default(float32(0.25)), 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.b.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			got, ok := s.Default()
			if !ok {
				t.Fatalf("Default not set")
			}
			if got != tt.want {
				t.Fatalf("Default = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestArgDefaultTypeMismatch(t *testing.T) {
	for _, b := range []*ArgBuilder{
		IntArg("n").Default("seven"),
		TextArg("s").Default(7),
		DoubleArg("d").Default(1),
		FloatArg("f").Default(true),
	} {
		_, err := b.Build()
		var de *DefaultTypeError
		if !errors.As(err, &de) {
			t.Fatalf("Build error = %v, want DefaultTypeError", err)
		}
	}
}

func TestSpecAccessors(t *testing.T) {
	s, err := DoubleArg("ratio").Short('r').Description("mix").Required().Optional().Separator(';').Build()
	if err != nil {
		t.Fatal(err)
	}
	if s.Long() != "ratio" || s.Short() != 'r' || s.Description() != "mix" {
		t.Fatalf("names = %q %q %q", s.Long(), s.Short(), s.Description())
	}
	if !s.Required() || !s.OptionalValue() || s.IsFlag() {
		t.Fatalf("Required=%v OptionalValue=%v IsFlag=%v", s.Required(), s.OptionalValue(), s.IsFlag())
	}
	if s.Type() != Double || s.Separator() != ';' {
		t.Fatalf("Type=%v Separator=%q", s.Type(), s.Separator())
	}
	if _, ok := s.Default(); ok {
		t.Fatalf("Default set without Default()")
	}

	f, err := Flag("quiet").Build()
	if err != nil {
		t.Fatal(err)
	}
	if !f.IsFlag() || f.Type().Numeric() {
		t.Fatalf("flag IsFlag=%v Numeric=%v", f.IsFlag(), f.Type().Numeric())
	}
}

func TestParseValueType(t *testing.T) {
	for in, want := range map[string]ValueType{
		"text":    Text,
		"Integer": Integer,
		"int":     Integer,
		"float":   Float,
		"double":  Double,
	} {
		got, err := ParseValueType(in)
		if err != nil || got != want {
			t.Fatalf("ParseValueType(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseValueType("bool"); err == nil {
		t.Fatalf("ParseValueType(bool) succeeded")
	}
}
