// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command optcheck parses a command line against an option schema and
// prints what each declared option resolved to.
//
//	optcheck --schema backup.toml [--format plain|json|table] [--verbose] -- ARGS...
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	"github.com/shayne/yargs"
	"github.com/yeetrun/cliopt/pkg/cliopt"
	"github.com/yeetrun/cliopt/pkg/schema"
	"github.com/yeetrun/cliopt/pkg/tui"
)

const (
	exitOK    = 0
	exitUsage = 1
	exitParse = 2
)

type flagsParsed struct {
	Schema  string `flag:"schema" help:"Option schema file (.toml, .yaml, .yml or .hcl)"`
	Format  string `flag:"format" help:"Output format: plain, json or table (OPTCHECK_FORMAT)"`
	Color   string `flag:"color" help:"Colour help output: auto, never or always"`
	Verbose bool   `flag:"verbose" help:"Log parse steps to stderr"`
}

type options struct {
	schema  string
	format  outputFormat
	color   tui.ColorMode
	verbose bool
	// rest holds arguments before "--" that are not optcheck flags.
	rest []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	own, target := splitArgs(args)
	opts, err := parseFlags(own)
	if err != nil {
		printCLIError(stderr, err)
		return exitUsage
	}
	target = append(slices.Clone(opts.rest), target...)

	doc, err := schema.LoadFile(opts.schema)
	if err != nil {
		printCLIError(stderr, err)
		return exitUsage
	}
	cfg := cliopt.Config{Output: stdout, Color: opts.color}
	if opts.verbose {
		cfg.Logf = log.New(stderr, "optcheck: ", 0).Printf
	}
	reg, err := doc.Registry(cfg)
	if err != nil {
		printCLIError(stderr, fmt.Errorf("%s: %w", opts.schema, err))
		return exitUsage
	}

	res, err := reg.Parse(target)
	if err != nil {
		printCLIError(stderr, err)
		return exitParse
	}
	if res.HelpRequested() {
		return exitOK
	}

	rep := buildReport(reg, res)
	if err := rep.write(stdout, opts.format); err != nil {
		printCLIError(stderr, err)
		return exitUsage
	}
	if rep.invalid() {
		return exitParse
	}
	return exitOK
}

// splitArgs splits args at the first "--". Everything before it belongs to
// optcheck, everything after it to the schema.
func splitArgs(args []string) (own, target []string) {
	i := slices.Index(args, "--")
	if i < 0 {
		return args, nil
	}
	return args[:i], args[i+1:]
}

func parseFlags(args []string) (options, error) {
	result, err := yargs.ParseKnownFlags[flagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return options{}, err
	}
	f := result.Flags
	if f.Schema == "" {
		return options{}, errors.New("--schema is required")
	}
	format := f.Format
	if format == "" {
		format = os.Getenv("OPTCHECK_FORMAT")
	}
	of, err := parseOutputFormat(format)
	if err != nil {
		return options{}, err
	}
	cm, err := tui.ParseColorMode(f.Color)
	if err != nil {
		return options{}, err
	}
	return options{
		schema:  f.Schema,
		format:  of,
		color:   cm,
		verbose: f.Verbose,
		rest:    result.RemainingArgs,
	}, nil
}

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	c := tui.ForWriter(w, tui.ColorAuto)
	fmt.Fprintln(w, c.Error("error:"), err)
}
