// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliopt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrReservedName is matched by both ReservedNameError and
	// ReservedShortNameError.
	ErrReservedName = errors.New("short name is reserved for help")

	// ErrParse is matched by every error returned from Registry.Parse.
	ErrParse = errors.New("invalid command line")
)

// ReservedNameError is returned by Build when an option other than help
// claims the reserved help short name.
type ReservedNameError struct {
	Long  string
	Short rune
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("option --%s: short name -%c is reserved for help", e.Long, e.Short)
}

func (e *ReservedNameError) Unwrap() error { return ErrReservedName }

// MissingLongNameError is returned by Build when the long name is empty.
type MissingLongNameError struct {
	Short rune
}

func (e *MissingLongNameError) Error() string {
	if e.Short != 0 {
		return fmt.Sprintf("option -%c has no long name", e.Short)
	}
	return "option has no long name"
}

// DuplicateLongNameError is returned by Register for a long name already in use.
type DuplicateLongNameError struct {
	Long string
}

func (e *DuplicateLongNameError) Error() string {
	return fmt.Sprintf("option --%s is already registered", e.Long)
}

// ReservedShortNameError is returned by Register when the short name collides
// with the registry's help short name.
type ReservedShortNameError struct {
	Long  string
	Short rune
}

func (e *ReservedShortNameError) Error() string {
	return fmt.Sprintf("option --%s: short name -%c collides with the help option", e.Long, e.Short)
}

func (e *ReservedShortNameError) Unwrap() error { return ErrReservedName }

// DuplicateShortNameError is returned by Register for a short name already in use.
type DuplicateShortNameError struct {
	Long     string
	Short    rune
	Existing string // long name of the option that holds Short
}

func (e *DuplicateShortNameError) Error() string {
	return fmt.Sprintf("option --%s: short name -%c is already used by --%s", e.Long, e.Short, e.Existing)
}

// DefaultTypeError is returned by Build when a default value does not match
// the declared value type.
type DefaultTypeError struct {
	Long  string
	Type  ValueType
	Value any
}

func (e *DefaultTypeError) Error() string {
	return fmt.Sprintf("option --%s: default %v (%T) is not a %s value", e.Long, e.Value, e.Value, e.Type)
}

// TokenSyntaxError wraps a tokenizer failure.
type TokenSyntaxError struct {
	Err error
}

func (e *TokenSyntaxError) Error() string {
	return e.Err.Error()
}

func (e *TokenSyntaxError) Unwrap() []error { return []error{e.Err, ErrParse} }

// UnknownOptionError names options that are referenced but not registered.
type UnknownOptionError struct {
	Names []string
}

func (e *UnknownOptionError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("unknown option: %s", e.Names[0])
	}
	return fmt.Sprintf("unknown options: %s", strings.Join(e.Names, ", "))
}

func (e *UnknownOptionError) Unwrap() error { return ErrParse }

// OccurrenceConstraintViolation reports one failed occurrence constraint.
type OccurrenceConstraintViolation struct {
	Comparator Comparator
	Expected   int
	Actual     int
	Names      []string
}

func (e *OccurrenceConstraintViolation) Error() string {
	return fmt.Sprintf("%s %d of [%s] must be supplied, got %d",
		e.Comparator, e.Expected, strings.Join(e.Names, ", "), e.Actual)
}

// OccurrenceViolations aggregates every failed occurrence constraint of a parse.
type OccurrenceViolations []*OccurrenceConstraintViolation

func (v OccurrenceViolations) Error() string {
	if len(v) == 1 {
		return v[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d occurrence constraints violated:", len(v))
	for _, e := range v {
		sb.WriteString("\n  ")
		sb.WriteString(e.Error())
	}
	return sb.String()
}

func (v OccurrenceViolations) Unwrap() []error {
	errs := make([]error, 0, len(v)+1)
	for _, e := range v {
		errs = append(errs, e)
	}
	return append(errs, ErrParse)
}

// DependencyViolationError is returned when a parent option is supplied
// without all of its children.
type DependencyViolationError struct {
	Parent  string
	Missing []string
}

func (e *DependencyViolationError) Error() string {
	return fmt.Sprintf("option %s requires %s", e.Parent, strings.Join(e.Missing, ", "))
}

func (e *DependencyViolationError) Unwrap() error { return ErrParse }

// MissingRequiredOptionError lists required options that were not supplied.
type MissingRequiredOptionError struct {
	Names []string
}

func (e *MissingRequiredOptionError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("missing required option: %s", e.Names[0])
	}
	return fmt.Sprintf("missing required options: %s", strings.Join(e.Names, ", "))
}

func (e *MissingRequiredOptionError) Unwrap() error { return ErrParse }

// ValueCoercionError is returned on retrieval when raw text cannot be
// converted to the option's declared type.
type ValueCoercionError struct {
	Name string
	Raw  string
	Type ValueType
	Err  error
}

func (e *ValueCoercionError) Error() string {
	return fmt.Sprintf("option %s: cannot use %q as %s", e.Name, e.Raw, e.Type)
}

func (e *ValueCoercionError) Unwrap() error { return e.Err }

// TypeMismatchError is returned by Get and GetAll when the requested Go type
// does not match the option's declared type.
type TypeMismatchError struct {
	Name string
	Type ValueType
	Want string // requested Go type
}

func (e *TypeMismatchError) Error() string {
	if e.Type == noType {
		return fmt.Sprintf("option %s is a flag, not a %s", e.Name, e.Want)
	}
	return fmt.Sprintf("option %s holds %s values (%s), not %s", e.Name, e.Type, e.Type.GoType(), e.Want)
}
