// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cliopt declares command-line options, validates the combination a
// user supplied against occurrence and dependency rules, and retrieves typed
// values with default fallback.
//
// Options are built with Flag and Arg and registered on a Registry:
//
//	reg := cliopt.New(cliopt.Config{Program: "backup"})
//	err := reg.Add(
//	    cliopt.Flag("verbose").Short('v').Description("log more"),
//	    cliopt.IntArg("jobs").Short('j').Default(4),
//	    cliopt.TextArg("exclude").Unlimited(),
//	)
//	reg.Exactly(1, "full", "incremental")
//	reg.AddDependency("encrypt", "key-file")
//
// Parse tokenizes the arguments, then checks the rules in a fixed order:
// option names used by occurrence constraints, occurrence constraints (all
// violations are reported together), dependencies, and required options.
// Help text is written before any error is returned. A supplied help option
// skips every check:
//
//	res, err := reg.Parse(os.Args[1:])
//	if err != nil {
//	    os.Exit(2)
//	}
//	if res.HelpRequested() {
//	    return
//	}
//	jobs, _, err := cliopt.Get[int](res, "jobs")
//
// Values are coerced when they are read, so a malformed value for an option
// the program never reads does not fail the parse.
//
// # Value types
//
//	Text    string
//	Integer int
//	Float   float32
//	Double  float64
//
// Flags read as bool.
package cliopt
