// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/yeetrun/cliopt/pkg/cliopt"
)

type outputFormat string

const (
	formatPlain outputFormat = "plain"
	formatJSON  outputFormat = "json"
	formatTable outputFormat = "table"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return formatPlain, nil
	case formatPlain, formatJSON, formatTable:
		return f, nil
	}
	return "", fmt.Errorf("invalid format %q (want plain, json or table)", s)
}

type optionReport struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Present bool   `json:"present"`
	Value   any    `json:"value,omitempty"`
	Error   string `json:"error,omitempty"`
}

type report struct {
	Options []optionReport `json:"options"`
	Args    []string       `json:"args"`
}

func buildReport(reg *cliopt.Registry, res *cliopt.Result) report {
	rep := report{Args: res.Args()}
	for _, s := range reg.Specs() {
		if s.Long() == cliopt.HelpLong {
			continue
		}
		or := optionReport{
			Name:    s.Long(),
			Kind:    kindOf(s),
			Present: res.IsPresent(s.Long()),
		}
		v, err := resolve(res, s)
		if err != nil {
			or.Error = err.Error()
		} else {
			or.Value = v
		}
		rep.Options = append(rep.Options, or)
	}
	return rep
}

func (r report) invalid() bool {
	for _, o := range r.Options {
		if o.Error != "" {
			return true
		}
	}
	return false
}

func kindOf(s *cliopt.Spec) string {
	if s.IsFlag() {
		return "flag"
	}
	c := s.Cardinality()
	switch {
	case c.IsUnlimited():
		return s.Type().String() + " list"
	case c.Count() > 1:
		return fmt.Sprintf("%s x%d", s.Type(), c.Count())
	}
	return s.Type().String()
}

// resolve returns the value the program would see for s: the presence of a
// flag, a single value, or a list with nil holes.
func resolve(res *cliopt.Result, s *cliopt.Spec) (any, error) {
	if s.IsFlag() {
		return res.IsPresent(s.Long()), nil
	}
	if c := s.Cardinality(); !c.IsUnlimited() && c.Count() == 1 {
		v, ok, err := res.Value(s.Long())
		if err != nil || !ok {
			return nil, err
		}
		return v, nil
	}
	switch s.Type() {
	case cliopt.Integer:
		return all[int](res, s.Long())
	case cliopt.Float:
		return all[float32](res, s.Long())
	case cliopt.Double:
		return all[float64](res, s.Long())
	}
	return all[string](res, s.Long())
}

func all[T any](res *cliopt.Result, long string) (any, error) {
	vs, err := cliopt.GetAll[T](res, long)
	if err != nil || vs == nil {
		return nil, err
	}
	out := make([]any, len(vs))
	for i, v := range vs {
		if v != nil {
			out[i] = *v
		}
	}
	return out, nil
}

func formatValue(o optionReport) string {
	if o.Error != "" {
		return "invalid: " + o.Error
	}
	switch v := o.Value.(type) {
	case nil:
		return "-"
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			if e != nil {
				parts[i] = fmt.Sprint(e)
			}
		}
		return "[" + strings.Join(parts, ",") + "]"
	}
	return fmt.Sprint(o.Value)
}

func (r report) write(w io.Writer, f outputFormat) error {
	switch f {
	case formatJSON:
		_, err := fmt.Fprintln(w, asJSON(r))
		return err
	case formatTable:
		_, err := fmt.Fprintln(w, r.tableWriter().Render())
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OPTION\tKIND\tPRESENT\tVALUE")
	for _, o := range r.Options {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", o.Name, o.Kind, o.Present, formatValue(o))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(r.Args) > 0 {
		_, err := fmt.Fprintf(w, "args: %s\n", strings.Join(r.Args, " "))
		return err
	}
	return nil
}

func (r report) tableWriter() table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"OPTION", "KIND", "PRESENT", "VALUE"})
	for _, o := range r.Options {
		tw.AppendRow(table.Row{o.Name, o.Kind, o.Present, formatValue(o)})
	}
	if len(r.Args) > 0 {
		tw.AppendFooter(table.Row{"args", "", "", strings.Join(r.Args, " ")})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignCenter},
		{Number: 4, Align: text.AlignLeft},
	})
	tw.SetStyle(table.StyleLight)
	return tw
}

func asJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
