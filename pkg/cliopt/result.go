// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliopt

import (
	"fmt"
	"slices"

	"github.com/yeetrun/cliopt/pkg/tokenize"
)

// Result is the outcome of a successful Parse. It is immutable and safe for
// concurrent use. Defaults are applied on retrieval and never stored.
type Result struct {
	values map[string][]string
	order  []string
	args   []string
	specs  map[string]*Spec
}

func newResult(r *Registry, toks *tokenize.Tokens) *Result {
	res := &Result{
		values: make(map[string][]string, len(toks.Values)),
		specs:  make(map[string]*Spec, len(r.specs)),
		args:   slices.Clone(toks.Args),
	}
	for _, s := range r.specs {
		res.specs[s.long] = s
	}
	for long, vals := range toks.Values {
		if _, ok := res.specs[long]; !ok {
			continue
		}
		res.values[long] = append([]string{}, vals...)
	}
	for _, long := range toks.Order {
		if _, ok := res.values[long]; ok {
			res.order = append(res.order, long)
		}
	}
	return res
}

// IsPresent reports whether the option was supplied, regardless of defaults.
func (r *Result) IsPresent(long string) bool {
	_, ok := r.values[long]
	return ok
}

// HelpRequested reports whether the help option was supplied. When true no
// constraint was checked.
func (r *Result) HelpRequested() bool { return r.IsPresent(HelpLong) }

// Args returns the positional arguments.
func (r *Result) Args() []string { return slices.Clone(r.args) }

// Supplied returns the long names of supplied options in order of first
// appearance.
func (r *Result) Supplied() []string { return slices.Clone(r.order) }

// Raw returns the raw values supplied for long.
func (r *Result) Raw(long string) ([]string, bool) {
	v, ok := r.values[long]
	if !ok {
		return nil, false
	}
	return slices.Clone(v), true
}

// Values returns a copy of every supplied option's raw values.
func (r *Result) Values() map[string][]string {
	out := make(map[string][]string, len(r.values))
	for k, v := range r.values {
		out[k] = slices.Clone(v)
	}
	return out
}

// Spec returns the spec of long as it was when the result was produced.
func (r *Result) Spec(long string) (*Spec, bool) {
	s, ok := r.specs[long]
	return s, ok
}

func (r *Result) lookup(long string) (*Spec, error) {
	s, ok := r.specs[long]
	if !ok {
		return nil, &UnknownOptionError{Names: []string{long}}
	}
	return s, nil
}

// Value returns the first value of long coerced to its declared type. A flag
// yields its presence as a bool. An argument that was not supplied, or was
// supplied without a value, yields its default; ok is false if it has none.
func (r *Result) Value(long string) (v any, ok bool, err error) {
	s, err := r.lookup(long)
	if err != nil {
		return nil, false, err
	}
	if s.IsFlag() {
		return r.IsPresent(long), true, nil
	}
	raw := r.values[long]
	if len(raw) == 0 || s.isHole(raw[0]) {
		return s.def, s.hasDefault, nil
	}
	v, err = coerce(s, raw[0])
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Get returns the first value of long as a T. T must be the native type of
// the option's value type: string, int, float32 or float64, or bool for a
// flag.
func Get[T any](r *Result, long string) (T, bool, error) {
	var zero T
	s, err := r.lookup(long)
	if err != nil {
		return zero, false, err
	}
	if err := checkType[T](s); err != nil {
		return zero, false, err
	}
	v, ok, err := r.Value(long)
	if err != nil || !ok {
		return zero, false, err
	}
	return v.(T), true, nil
}

// GetAll returns every value of long as a T. An empty element of a
// multi-valued argument is a hole: it takes the default, or stays nil
// when there is none. An argument that was not supplied yields its default
// as the only element, or nil.
func GetAll[T any](r *Result, long string) ([]*T, error) {
	s, err := r.lookup(long)
	if err != nil {
		return nil, err
	}
	if s.IsFlag() {
		var zero T
		return nil, &TypeMismatchError{Name: long, Type: noType, Want: fmt.Sprintf("%T", zero)}
	}
	if err := checkType[T](s); err != nil {
		return nil, err
	}
	def := func() *T {
		if !s.hasDefault {
			return nil
		}
		d := s.def.(T)
		return &d
	}

	raw := r.values[long]
	if len(raw) == 0 {
		if d := def(); d != nil {
			return []*T{d}, nil
		}
		return nil, nil
	}
	out := make([]*T, len(raw))
	for i, text := range raw {
		if s.isHole(text) {
			out[i] = def()
			continue
		}
		v, err := coerce(s, text)
		if err != nil {
			return nil, err
		}
		t := v.(T)
		out[i] = &t
	}
	return out, nil
}

// isHole reports whether raw is an empty element of a multi-valued argument.
func (s *Spec) isHole(raw string) bool {
	return raw == "" && (s.card.IsUnlimited() || s.card.Count() > 1)
}

func checkType[T any](s *Spec) error {
	var zero T
	var ok bool
	switch any(zero).(type) {
	case string:
		ok = s.typ == Text
	case int:
		ok = s.typ == Integer
	case float32:
		ok = s.typ == Float
	case float64:
		ok = s.typ == Double
	case bool:
		ok = s.IsFlag()
	}
	if !ok {
		return &TypeMismatchError{Name: s.long, Type: s.typ, Want: fmt.Sprintf("%T", zero)}
	}
	return nil
}
