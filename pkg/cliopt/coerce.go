// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliopt

import (
	"fmt"
	"strconv"
)

// coerce converts raw to the native type of s's value type.
func coerce(s *Spec, raw string) (any, error) {
	var (
		v   any
		err error
	)
	switch s.typ {
	case Text:
		return raw, nil
	case Integer:
		var n int64
		n, err = strconv.ParseInt(raw, 10, strconv.IntSize)
		v = int(n)
	case Float:
		var f float64
		f, err = strconv.ParseFloat(raw, 32)
		v = float32(f)
	case Double:
		v, err = strconv.ParseFloat(raw, 64)
	default:
		err = fmt.Errorf("option %s takes no value", s.long)
	}
	if err != nil {
		return nil, &ValueCoercionError{Name: s.long, Raw: raw, Type: s.typ, Err: err}
	}
	return v, nil
}
