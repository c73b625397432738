// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliopt

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/yeetrun/cliopt/pkg/helptext"
	"github.com/yeetrun/cliopt/pkg/tokenize"
	"tailscale.com/util/mak"
	"tailscale.com/util/set"
)

const helpDescription = "show this message"

// Registry accumulates option specs and constraints and parses arguments
// against them.
//
// A Registry is written once and then read: every Register, Add and
// constraint call must happen before Parse. Mutating a Registry from multiple
// goroutines, or while Parse runs, is a programmer error.
type Registry struct {
	cfg         Config
	specs       []*Spec
	byLong      map[string]int
	byShort     map[rune]int
	constraints ConstraintSet
	raw         []string
}

// New returns an empty Registry.
func New(cfg Config) *Registry {
	return &Registry{cfg: cfg.withDefaults()}
}

// Config returns the registry's configuration with defaults applied.
func (r *Registry) Config() Config { return r.cfg }

// Register adds s to the registry.
func (r *Registry) Register(s *Spec) error {
	if s == nil {
		return errors.New("cliopt: nil spec")
	}
	if s.long == "" {
		return &MissingLongNameError{Short: s.short}
	}
	if _, ok := r.byLong[s.long]; ok {
		return &DuplicateLongNameError{Long: s.long}
	}
	if s.short != 0 {
		if s.short == r.cfg.HelpShort && s.long != HelpLong {
			return &ReservedShortNameError{Long: s.long, Short: s.short}
		}
		if i, ok := r.byShort[s.short]; ok {
			return &DuplicateShortNameError{Long: s.long, Short: s.short, Existing: r.specs[i].long}
		}
		mak.Set(&r.byShort, s.short, len(r.specs))
	}
	mak.Set(&r.byLong, s.long, len(r.specs))
	r.specs = append(r.specs, s)
	return nil
}

// Add builds each builder against the registry's help short name and
// registers the result. It stops at the first error.
func (r *Registry) Add(builders ...Builder) error {
	for _, b := range builders {
		s, err := b.BuildReserving(r.cfg.HelpShort)
		if err != nil {
			return err
		}
		if err := r.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// AddOccurrence adds a constraint on how many of names may be supplied.
// Names are checked against the registry when Parse runs.
func (r *Registry) AddOccurrence(cmp Comparator, n int, names ...string) {
	r.constraints.AddOccurrence(cmp, n, names...)
}

// AtLeast requires at least n of names to be supplied.
func (r *Registry) AtLeast(n int, names ...string) { r.AddOccurrence(AtLeast, n, names...) }

// Exactly requires exactly n of names to be supplied.
func (r *Registry) Exactly(n int, names ...string) { r.AddOccurrence(Exactly, n, names...) }

// AtMost allows at most n of names to be supplied.
func (r *Registry) AtMost(n int, names ...string) { r.AddOccurrence(AtMost, n, names...) }

// AddDependency requires every child whenever parent is supplied. A later
// call for the same parent replaces the earlier one.
func (r *Registry) AddDependency(parent string, children ...string) {
	r.constraints.AddDependency(parent, children...)
}

// Constraints returns the registry's constraint set.
func (r *Registry) Constraints() *ConstraintSet { return &r.constraints }

// Specs returns the registered specs in registration order.
func (r *Registry) Specs() []*Spec { return slices.Clone(r.specs) }

// Lookup returns the spec registered under long.
func (r *Registry) Lookup(long string) (*Spec, bool) {
	i, ok := r.byLong[long]
	if !ok {
		return nil, false
	}
	return r.specs[i], true
}

// RawArgs returns the arguments passed to the last Parse call.
func (r *Registry) RawArgs() []string { return slices.Clone(r.raw) }

// Parse registers the help option if needed, tokenizes args and validates
// the supplied options against every constraint.
//
// If help is supplied, help text is written to Config.Output and a Result
// with HelpRequested set is returned without further validation. Any other
// failure writes help text and returns the error.
func (r *Registry) Parse(args []string) (*Result, error) {
	r.raw = slices.Clone(args)
	if err := r.ensureHelp(); err != nil {
		return nil, err
	}
	r.cfg.Logf("cliopt: parsing %d args against %d options", len(args), len(r.specs))

	shapes := make([]tokenize.Shape, 0, len(r.specs))
	for _, s := range r.specs {
		shapes = append(shapes, s.shape())
	}
	toks, err := r.cfg.Tokenizer.Tokenize(args, shapes)
	if err != nil {
		return nil, r.fail(&TokenSyntaxError{Err: err})
	}
	if toks == nil {
		toks = &tokenize.Tokens{}
	}

	res := newResult(r, toks)
	if res.HelpRequested() {
		r.cfg.Logf("cliopt: help requested")
		r.emitHelp()
		return res, nil
	}
	if err := r.validate(res); err != nil {
		return nil, r.fail(err)
	}
	r.cfg.Logf("cliopt: supplied %v", res.order)
	return res, nil
}

func (r *Registry) ensureHelp() error {
	if _, ok := r.byLong[HelpLong]; ok {
		return nil
	}
	s, err := Flag(HelpLong).Short(r.cfg.HelpShort).Description(helpDescription).BuildReserving(r.cfg.HelpShort)
	if err != nil {
		return err
	}
	return r.Register(s)
}

func (r *Registry) validate(res *Result) error {
	present := make(set.Set[string])
	for long := range res.values {
		present.Add(long)
	}

	if unknown := r.constraints.unknownNames(func(n string) bool {
		_, ok := r.byLong[n]
		return ok
	}); len(unknown) > 0 {
		return &UnknownOptionError{Names: unknown}
	}
	if v := r.constraints.checkOccurrences(present); len(v) > 0 {
		return v
	}
	if err := r.constraints.checkDependencies(present); err != nil {
		return err
	}

	var missing []string
	for _, s := range r.specs {
		if s.required && !present.Contains(s.long) {
			missing = append(missing, s.long)
		}
	}
	if len(missing) > 0 {
		return &MissingRequiredOptionError{Names: missing}
	}
	return nil
}

func (r *Registry) fail(err error) error {
	r.cfg.Logf("cliopt: parse failed: %v", err)
	r.emitHelp()
	return err
}

func (r *Registry) emitHelp() {
	if err := r.WriteHelp(r.cfg.Output); err != nil {
		r.cfg.Logf("cliopt: writing help: %v", err)
	}
}

// WriteHelp renders usage text for the registered options to w. The help
// option is listed even before Parse has registered it.
func (r *Registry) WriteHelp(w io.Writer) error {
	return helptext.Render(w, r.usage(), helptext.RenderOptions{Color: r.cfg.Color})
}

func (r *Registry) usage() helptext.Usage {
	u := helptext.Usage{
		Program:     r.cfg.Program,
		Description: r.cfg.Description,
	}
	for _, s := range r.specs {
		u.Options = append(u.Options, helpOption(s))
	}
	if _, ok := r.byLong[HelpLong]; !ok {
		u.Options = append(u.Options, helptext.Option{
			Long:        HelpLong,
			Short:       r.cfg.HelpShort,
			Description: helpDescription,
		})
	}
	return u
}

func helpOption(s *Spec) helptext.Option {
	o := helptext.Option{
		Long:        s.long,
		Short:       s.short,
		Description: s.description,
		Required:    s.required,
	}
	if s.IsFlag() {
		return o
	}
	o.Labels = slices.Clone(s.labels)
	o.OptionalValue = s.optional
	if s.card.IsUnlimited() {
		o.Separator = s.separator
	}
	if s.hasDefault {
		o.Default = fmt.Sprint(s.def)
	}
	return o
}
