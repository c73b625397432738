// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliopt

import (
	"errors"
	"math"
	"strconv"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parse(t *testing.T, args []string, builders ...Builder) *Result {
	t.Helper()
	r, _ := newTestRegistry(t, builders...)
	res, err := r.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%q): %v", args, err)
	}
	return res
}

func TestDefaultFallback(t *testing.T) {
	builders := []Builder{
		TextArg("name").Default("anon"),
		IntArg("jobs").Default(4),
		FloatArg("ratio").Default(0.5),
		DoubleArg("scale").Default(2.5),
	}
	res := parse(t, nil, builders...)

	if v, ok, err := Get[string](res, "name"); err != nil || !ok || v != "anon" {
		t.Fatalf("name = %q, %v, %v", v, ok, err)
	}
	if v, ok, err := Get[int](res, "jobs"); err != nil || !ok || v != 4 {
		t.Fatalf("jobs = %d, %v, %v", v, ok, err)
	}
	if v, ok, err := Get[float32](res, "ratio"); err != nil || !ok || v != 0.5 {
		t.Fatalf("ratio = %v, %v, %v", v, ok, err)
	}
	if v, ok, err := Get[float64](res, "scale"); err != nil || !ok || v != 2.5 {
		t.Fatalf("scale = %v, %v, %v", v, ok, err)
	}
	for _, long := range []string{"name", "jobs", "ratio", "scale"} {
		if res.IsPresent(long) {
			t.Fatalf("IsPresent(%q) = true for a defaulted option", long)
		}
	}
}

func TestExplicitOverridesDefault(t *testing.T) {
	// Declaration order of the option relative to others does not matter.
	for _, builders := range [][]Builder{
		{IntArg("jobs").Default(4), Flag("v")},
		{Flag("v"), IntArg("jobs").Default(4)},
	} {
		res := parse(t, []string{"--jobs", "9"}, builders...)
		v, ok, err := Get[int](res, "jobs")
		if err != nil || !ok || v != 9 {
			t.Fatalf("jobs = %d, %v, %v; want 9", v, ok, err)
		}
	}
}

func TestValueAbsentWithoutDefault(t *testing.T) {
	res := parse(t, nil, TextArg("name"), Flag("quiet"))
	v, ok, err := res.Value("name")
	if err != nil || ok || v != nil {
		t.Fatalf("Value(name) = %v, %v, %v; want absent", v, ok, err)
	}
	quiet, ok, err := Get[bool](res, "quiet")
	if err != nil || !ok || quiet {
		t.Fatalf("Get[bool](quiet) = %v, %v, %v", quiet, ok, err)
	}
}

func TestOptionalValueFallsBackToDefault(t *testing.T) {
	res := parse(t, []string{"--level"}, IntArg("level").Optional().Default(3))
	if !res.IsPresent("level") {
		t.Fatalf("IsPresent(level) = false")
	}
	v, ok, err := Get[int](res, "level")
	if err != nil || !ok || v != 3 {
		t.Fatalf("level = %d, %v, %v; want default 3", v, ok, err)
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, -1, 42, -9000, math.MaxInt32, math.MinInt32, math.MaxInt, math.MinInt} {
		lit := strconv.Itoa(n)
		res := parse(t, []string{"--n", lit}, IntArg("n"))
		got, ok, err := Get[int](res, "n")
		if err != nil || !ok || got != n {
			t.Fatalf("Get[int](%q) = %d, %v, %v", lit, got, ok, err)
		}
	}
}

func TestCoercionDeferredToRetrieval(t *testing.T) {
	res := parse(t, []string{"--n", "seven", "--d", "1.5"}, IntArg("n"), DoubleArg("d"))

	_, _, err := Get[int](res, "n")
	var ce *ValueCoercionError
	if !errors.As(err, &ce) {
		t.Fatalf("Get[int](n) error = %v, want ValueCoercionError", err)
	}
	if ce.Name != "n" || ce.Raw != "seven" || ce.Type != Integer {
		t.Fatalf("ValueCoercionError = %+v", ce)
	}
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Fatalf("errors.Is(err, strconv.ErrSyntax) = false")
	}

	// Other options are unaffected.
	if v, _, err := Get[float64](res, "d"); err != nil || v != 1.5 {
		t.Fatalf("d = %v, %v", v, err)
	}
}

func TestCoercionWidth(t *testing.T) {
	res := parse(t, []string{"--f", "1e39", "--d", "1e39"}, FloatArg("f"), DoubleArg("d"))
	if _, _, err := Get[float32](res, "f"); !errors.Is(err, strconv.ErrRange) {
		t.Fatalf("Get[float32](1e39) error = %v, want ErrRange", err)
	}
	if v, _, err := Get[float64](res, "d"); err != nil || v != 1e39 {
		t.Fatalf("Get[float64](1e39) = %v, %v", v, err)
	}
}

func TestNegativeNumberValue(t *testing.T) {
	res := parse(t, []string{"--offset", "-12"}, IntArg("offset"))
	if v, _, err := Get[int](res, "offset"); err != nil || v != -12 {
		t.Fatalf("offset = %d, %v", v, err)
	}
}

func TestTypeMismatch(t *testing.T) {
	res := parse(t, []string{"--n", "1", "--quiet"}, IntArg("n"), Flag("quiet"))
	var tm *TypeMismatchError
	if _, _, err := Get[string](res, "n"); !errors.As(err, &tm) || tm.Want != "string" {
		t.Fatalf("Get[string](n) error = %v, want TypeMismatchError", err)
	}
	if _, _, err := Get[int](res, "quiet"); !errors.As(err, &tm) {
		t.Fatalf("Get[int](quiet) error = %v, want TypeMismatchError", err)
	}
	if _, err := GetAll[bool](res, "quiet"); !errors.As(err, &tm) {
		t.Fatalf("GetAll[bool](quiet) error = %v, want TypeMismatchError", err)
	}
	var ue *UnknownOptionError
	if _, _, err := res.Value("nope"); !errors.As(err, &ue) {
		t.Fatalf("Value(nope) error = %v, want UnknownOptionError", err)
	}
}

func deref[T any](ps []*T) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		if p != nil {
			out[i] = *p
		}
	}
	return out
}

func TestUnlimitedSplit(t *testing.T) {
	res := parse(t, []string{"--tags", "x,y,z"}, TextArg("tags").Unlimited())
	got, err := GetAll[string](res, "tags")
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if diff := cmp.Diff([]any{"x", "y", "z"}, deref(got)); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	raw, ok := res.Raw("tags")
	if !ok || len(raw) != 3 {
		t.Fatalf("Raw(tags) = %q, %v", raw, ok)
	}
}

func TestUnlimitedHoles(t *testing.T) {
	res := parse(t, []string{"--ports", "80,,443", "--ids", "1,,3"},
		IntArg("ports").Unlimited().Default(8080),
		IntArg("ids").Unlimited(),
	)
	ports, err := GetAll[int](res, "ports")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{80, 8080, 443}, deref(ports)); diff != "" {
		t.Fatalf("ports mismatch (-want +got):\n%s", diff)
	}
	ids, err := GetAll[int](res, "ids")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{1, nil, 3}, deref(ids)); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAllAbsent(t *testing.T) {
	res := parse(t, nil, DoubleArg("w").Unlimited().Default(1.0), TextArg("s").Unlimited())
	w, err := GetAll[float64](res, "w")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{1.0}, deref(w)); diff != "" {
		t.Fatalf("w mismatch (-want +got):\n%s", diff)
	}
	s, err := GetAll[string](res, "s")
	if err != nil || s != nil {
		t.Fatalf("GetAll(s) = %v, %v; want nil", s, err)
	}
}

func TestFixedCountValues(t *testing.T) {
	res := parse(t, []string{"--point", "3", "-4", "rest"}, IntArg("point").Names("X", "Y"))
	got, err := GetAll[int](res, "point")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{3, -4}, deref(got)); diff != "" {
		t.Fatalf("point mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"rest"}, res.Args()); diff != "" {
		t.Fatalf("Args mismatch (-want +got):\n%s", diff)
	}
	first, _, err := res.Value("point")
	if err != nil || first != 3 {
		t.Fatalf("Value(point) = %v, %v; want first value", first, err)
	}
}

func TestGetAllCoercionError(t *testing.T) {
	res := parse(t, []string{"--ids", "1,x"}, IntArg("ids").Unlimited())
	var ce *ValueCoercionError
	if _, err := GetAll[int](res, "ids"); !errors.As(err, &ce) || ce.Raw != "x" {
		t.Fatalf("GetAll error = %v, want ValueCoercionError for x", err)
	}
}

func TestResultConcurrentReads(t *testing.T) {
	res := parse(t, []string{"--n", "5", "--tags", "a,b"}, IntArg("n"), TextArg("tags").Unlimited())
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if v, _, err := Get[int](res, "n"); err != nil || v != 5 {
					t.Errorf("Get[int](n) = %d, %v", v, err)
					return
				}
				if _, err := GetAll[string](res, "tags"); err != nil {
					t.Errorf("GetAll(tags): %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestResultCopies(t *testing.T) {
	res := parse(t, []string{"--tags", "a,b", "pos"}, TextArg("tags").Unlimited())
	raw, _ := res.Raw("tags")
	raw[0] = "mutated"
	args := res.Args()
	args[0] = "mutated"
	vals := res.Values()
	vals["tags"][1] = "mutated"

	again, _ := res.Raw("tags")
	if diff := cmp.Diff([]string{"a", "b"}, again); diff != "" {
		t.Fatalf("Raw mutated through copy (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pos"}, res.Args()); diff != "" {
		t.Fatalf("Args mutated through copy (-want +got):\n%s", diff)
	}
}

func TestUnlimitedNegativeNumbers(t *testing.T) {
	for _, args := range [][]string{
		{"--nums", "-1,-2"},
		{"--nums=-1,-2"},
	} {
		res := parse(t, args, IntArg("nums").Unlimited())
		got, err := GetAll[int](res, "nums")
		if err != nil {
			t.Fatalf("GetAll(%q): %v", args, err)
		}
		if diff := cmp.Diff([]any{-1, -2}, deref(got)); diff != "" {
			t.Fatalf("nums for %q mismatch (-want +got):\n%s", args, diff)
		}
	}
}

func TestOptionalFixedCountPartial(t *testing.T) {
	res := parse(t, []string{"--pt", "1"}, IntArg("pt").Names("X", "Y", "Z").Optional().Default(7))
	got, err := GetAll[int](res, "pt")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{1, 7, 7}, deref(got)); diff != "" {
		t.Fatalf("pt mismatch (-want +got):\n%s", diff)
	}
	first, ok, err := Get[int](res, "pt")
	if err != nil || !ok || first != 1 {
		t.Fatalf("Get(pt) = %v, %v, %v; want 1", first, ok, err)
	}
}
