// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema loads declarative option sets from TOML, YAML or HCL
// documents and turns them into a cliopt.Registry.
package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yeetrun/cliopt/pkg/cliopt"
)

// Document is a declarative option set.
type Document struct {
	Program      string           `toml:"program" yaml:"program" hcl:"program,optional"`
	Description  string           `toml:"description" yaml:"description" hcl:"description,optional"`
	Flags        []FlagDecl       `toml:"flag" yaml:"flag" hcl:"flag,block"`
	Args         []ArgDecl        `toml:"arg" yaml:"arg" hcl:"arg,block"`
	Constraints  []ConstraintDecl `toml:"constraint" yaml:"constraint" hcl:"constraint,block"`
	Dependencies []DependencyDecl `toml:"dependency" yaml:"dependency" hcl:"dependency,block"`
}

// FlagDecl declares a flag.
type FlagDecl struct {
	Name        string `toml:"name" yaml:"name" hcl:"name,label"`
	Short       string `toml:"short" yaml:"short" hcl:"short,optional"`
	Description string `toml:"description" yaml:"description" hcl:"description,optional"`
	Required    bool   `toml:"required" yaml:"required" hcl:"required,optional"`
}

// ArgDecl declares a value-bearing option. Default is text and is coerced
// to Type when the registry is built.
type ArgDecl struct {
	Name        string   `toml:"name" yaml:"name" hcl:"name,label"`
	Short       string   `toml:"short" yaml:"short" hcl:"short,optional"`
	Description string   `toml:"description" yaml:"description" hcl:"description,optional"`
	Required    bool     `toml:"required" yaml:"required" hcl:"required,optional"`
	Type        string   `toml:"type" yaml:"type" hcl:"type,optional"`
	Names       []string `toml:"names" yaml:"names" hcl:"names,optional"`
	Optional    bool     `toml:"optional" yaml:"optional" hcl:"optional,optional"`
	Separator   string   `toml:"separator" yaml:"separator" hcl:"separator,optional"`
	Unlimited   bool     `toml:"unlimited" yaml:"unlimited" hcl:"unlimited,optional"`
	Default     *string  `toml:"default" yaml:"default" hcl:"default,optional"`
}

// ConstraintDecl declares an occurrence constraint. Kind is at_least,
// exactly or at_most.
type ConstraintDecl struct {
	Kind    string   `toml:"kind" yaml:"kind" hcl:"kind,label"`
	Count   int      `toml:"count" yaml:"count" hcl:"count"`
	Options []string `toml:"options" yaml:"options" hcl:"options"`
}

// DependencyDecl requires Children whenever Parent is supplied.
type DependencyDecl struct {
	Parent   string   `toml:"parent" yaml:"parent" hcl:"parent,label"`
	Children []string `toml:"children" yaml:"children" hcl:"children"`
}

var errShort = errors.New("must be a single character")

// Registry builds a registry holding every declaration of d. Program and
// Description from d fill the corresponding empty fields of cfg.
func (d *Document) Registry(cfg cliopt.Config) (*cliopt.Registry, error) {
	if cfg.Program == "" {
		cfg.Program = d.Program
	}
	if cfg.Description == "" {
		cfg.Description = d.Description
	}
	reg := cliopt.New(cfg)

	for _, f := range d.Flags {
		b, err := f.builder()
		if err == nil {
			err = reg.Add(b)
		}
		if err != nil {
			return nil, fmt.Errorf("flag %q: %w", f.Name, err)
		}
	}
	for _, a := range d.Args {
		b, err := a.builder()
		if err == nil {
			err = reg.Add(b)
		}
		if err != nil {
			return nil, fmt.Errorf("arg %q: %w", a.Name, err)
		}
	}
	for i, c := range d.Constraints {
		cmp, err := ParseComparator(c.Kind)
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		if c.Count < 0 {
			return nil, fmt.Errorf("constraint %d: negative count %d", i, c.Count)
		}
		reg.AddOccurrence(cmp, c.Count, c.Options...)
	}
	for _, dep := range d.Dependencies {
		reg.AddDependency(dep.Parent, dep.Children...)
	}
	return reg, nil
}

func (f FlagDecl) builder() (cliopt.Builder, error) {
	b := cliopt.Flag(f.Name).Description(f.Description)
	if f.Short != "" {
		r, err := singleRune(f.Short)
		if err != nil {
			return nil, fmt.Errorf("short %q %w", f.Short, err)
		}
		b.Short(r)
	}
	if f.Required {
		b.Required()
	}
	return b, nil
}

func (a ArgDecl) builder() (cliopt.Builder, error) {
	typ, err := cliopt.ParseValueType(a.Type)
	if err != nil {
		return nil, err
	}
	b := cliopt.Arg(a.Name, typ).Description(a.Description)
	if a.Short != "" {
		r, err := singleRune(a.Short)
		if err != nil {
			return nil, fmt.Errorf("short %q %w", a.Short, err)
		}
		b.Short(r)
	}
	if a.Separator != "" {
		r, err := singleRune(a.Separator)
		if err != nil {
			return nil, fmt.Errorf("separator %q %w", a.Separator, err)
		}
		b.Separator(r)
	}
	if len(a.Names) > 0 {
		b.Names(a.Names...)
	}
	if a.Required {
		b.Required()
	}
	if a.Optional {
		b.Optional()
	}
	if a.Unlimited {
		b.Unlimited()
	}
	if a.Default != nil {
		v, err := parseDefault(typ, *a.Default)
		if err != nil {
			return nil, fmt.Errorf("default %q: %w", *a.Default, err)
		}
		b.Default(v)
	}
	return b, nil
}

// ParseComparator parses an occurrence constraint kind.
func ParseComparator(kind string) (cliopt.Comparator, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(kind)), "-", "_") {
	case "at_least", "min":
		return cliopt.AtLeast, nil
	case "exactly":
		return cliopt.Exactly, nil
	case "at_most", "max":
		return cliopt.AtMost, nil
	}
	return 0, fmt.Errorf("unknown constraint kind %q (want at_least, exactly or at_most)", kind)
}

func parseDefault(t cliopt.ValueType, s string) (any, error) {
	switch t {
	case cliopt.Integer:
		n, err := strconv.ParseInt(s, 10, strconv.IntSize)
		return int(n), err
	case cliopt.Float:
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	case cliopt.Double:
		return strconv.ParseFloat(s, 64)
	}
	return s, nil
}

func singleRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, errShort
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
