// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliopt

import (
	"fmt"
	"strings"
)

// ValueType is the declared type of an argument's values.
type ValueType int

const (
	noType ValueType = iota // flags
	Text
	Integer
	Float
	Double
)

func (t ValueType) String() string {
	switch t {
	case Text:
		return "text"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Double:
		return "double"
	case noType:
		return "none"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// GoType returns the name of the native Go type values are coerced to.
func (t ValueType) GoType() string {
	switch t {
	case Text:
		return "string"
	case Integer:
		return "int"
	case Float:
		return "float32"
	case Double:
		return "float64"
	}
	return "bool"
}

// Numeric reports whether t is one of the number types. The tokenizer uses
// it to accept negative numbers as values.
func (t ValueType) Numeric() bool {
	return t == Integer || t == Float || t == Double
}

// ParseValueType parses the lower-case name of a value type as printed by
// String.
func ParseValueType(s string) (ValueType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "string", "":
		return Text, nil
	case "integer", "int":
		return Integer, nil
	case "float":
		return Float, nil
	case "double":
		return Double, nil
	}
	return noType, fmt.Errorf("unknown value type %q (want text, integer, float or double)", s)
}

// Cardinality is the number of values an argument consumes.
type Cardinality struct {
	n         int
	unlimited bool
}

// Single is the cardinality of an argument taking one value.
func Single() Cardinality { return Cardinality{n: 1} }

// FixedCount is the cardinality of an argument taking exactly n values.
// n below 1 is treated as 1.
func FixedCount(n int) Cardinality { return Cardinality{n: max(n, 1)} }

// Unlimited is the cardinality of an argument taking a separator-delimited
// list of any length.
func Unlimited() Cardinality { return Cardinality{unlimited: true} }

// Count returns the fixed number of values, or 0 for unlimited cardinality.
func (c Cardinality) Count() int {
	if c.unlimited {
		return 0
	}
	return max(c.n, 1)
}

// IsUnlimited reports whether c is the unlimited cardinality.
func (c Cardinality) IsUnlimited() bool { return c.unlimited }

func (c Cardinality) String() string {
	switch {
	case c.unlimited:
		return "unlimited"
	case c.Count() == 1:
		return "single"
	default:
		return fmt.Sprintf("fixed(%d)", c.n)
	}
}
