// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliopt

import (
	"fmt"
	"slices"

	"tailscale.com/util/mak"
	"tailscale.com/util/set"
)

// Comparator is the relation an occurrence constraint enforces between the
// number of supplied options and its count.
type Comparator int

const (
	AtLeast Comparator = iota
	Exactly
	AtMost
)

func (c Comparator) String() string {
	switch c {
	case AtLeast:
		return "at least"
	case Exactly:
		return "exactly"
	case AtMost:
		return "at most"
	}
	return fmt.Sprintf("Comparator(%d)", int(c))
}

func (c Comparator) holds(actual, n int) bool {
	switch c {
	case AtLeast:
		return actual >= n
	case Exactly:
		return actual == n
	case AtMost:
		return actual <= n
	}
	return false
}

// OccurrenceConstraint bounds how many of Names may be supplied together.
type OccurrenceConstraint struct {
	Comparator Comparator
	Count      int
	Names      []string
}

// count returns how many distinct names of c are present.
func (c OccurrenceConstraint) count(present set.Set[string]) int {
	seen := make(set.Set[string])
	for _, n := range c.Names {
		if present.Contains(n) {
			seen.Add(n)
		}
	}
	return seen.Len()
}

// DependencyConstraint requires every child whenever Parent is supplied.
type DependencyConstraint struct {
	Parent   string
	Children []string
}

// ConstraintSet holds the occurrence and dependency rules of a registry.
// The zero value is empty and ready to use.
type ConstraintSet struct {
	occurrences []OccurrenceConstraint
	deps        map[string][]string
	depOrder    []string // parents in first-registration order
}

// AddOccurrence appends an occurrence constraint.
func (cs *ConstraintSet) AddOccurrence(cmp Comparator, n int, names ...string) {
	cs.occurrences = append(cs.occurrences, OccurrenceConstraint{
		Comparator: cmp,
		Count:      n,
		Names:      slices.Clone(names),
	})
}

// AddDependency sets the children of parent, replacing any earlier
// registration for the same parent.
func (cs *ConstraintSet) AddDependency(parent string, children ...string) {
	if _, ok := cs.deps[parent]; !ok {
		cs.depOrder = append(cs.depOrder, parent)
	}
	mak.Set(&cs.deps, parent, slices.Clone(children))
}

// Occurrences returns the occurrence constraints in registration order.
func (cs *ConstraintSet) Occurrences() []OccurrenceConstraint {
	out := make([]OccurrenceConstraint, len(cs.occurrences))
	for i, c := range cs.occurrences {
		c.Names = slices.Clone(c.Names)
		out[i] = c
	}
	return out
}

// Dependencies returns the dependency constraints ordered by the first
// registration of each parent.
func (cs *ConstraintSet) Dependencies() []DependencyConstraint {
	out := make([]DependencyConstraint, 0, len(cs.depOrder))
	for _, p := range cs.depOrder {
		out = append(out, DependencyConstraint{Parent: p, Children: slices.Clone(cs.deps[p])})
	}
	return out
}

// unknownNames returns the sorted names referenced by occurrence constraints
// for which known returns false.
func (cs *ConstraintSet) unknownNames(known func(string) bool) []string {
	unknown := make(set.Set[string])
	for _, c := range cs.occurrences {
		for _, n := range c.Names {
			if !known(n) {
				unknown.Add(n)
			}
		}
	}
	names := unknown.Slice()
	slices.Sort(names)
	return names
}

// checkOccurrences evaluates every occurrence constraint and returns all
// violations, or nil.
func (cs *ConstraintSet) checkOccurrences(present set.Set[string]) OccurrenceViolations {
	var out OccurrenceViolations
	for _, c := range cs.occurrences {
		actual := c.count(present)
		if c.Comparator.holds(actual, c.Count) {
			continue
		}
		out = append(out, &OccurrenceConstraintViolation{
			Comparator: c.Comparator,
			Expected:   c.Count,
			Actual:     actual,
			Names:      slices.Clone(c.Names),
		})
	}
	return out
}

// checkDependencies returns the first violated dependency, or nil.
func (cs *ConstraintSet) checkDependencies(present set.Set[string]) error {
	for _, parent := range cs.depOrder {
		if !present.Contains(parent) {
			continue
		}
		var missing []string
		for _, child := range cs.deps[parent] {
			if !present.Contains(child) && !slices.Contains(missing, child) {
				missing = append(missing, child)
			}
		}
		if len(missing) > 0 {
			return &DependencyViolationError{Parent: parent, Missing: missing}
		}
	}
	return nil
}
