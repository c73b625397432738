// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command backup shows the builder API. It prints the copy plan it would
// run instead of copying anything.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/yeetrun/cliopt/pkg/cliopt"
)

func main() {
	reg := cliopt.New(cliopt.Config{
		Program:     "backup",
		Description: "Copy a directory tree to a destination.",
	})
	err := reg.Add(
		cliopt.Flag("verbose").Short('v').Description("log every copied file"),
		cliopt.Flag("full").Description("copy everything"),
		cliopt.Flag("incremental").Short('i').Description("copy changed files only"),
		cliopt.Flag("encrypt").Short('e').Description("encrypt the archive"),
		cliopt.TextArg("key-file").Short('k').Names("FILE").Description("encryption key"),
		cliopt.TextArg("dest").Short('d').Names("DIR").Required().Description("destination directory"),
		cliopt.IntArg("jobs").Short('j').Names("N").Default(4).Description("parallel copies"),
		cliopt.TextArg("exclude").Short('x').Names("GLOB").Unlimited().Description("patterns to skip"),
		cliopt.DoubleArg("bandwidth").Names("MBPS").Optional().Default(100.0).Description("rate limit"),
	)
	if err != nil {
		log.Fatal(err)
	}
	reg.Exactly(1, "full", "incremental")
	reg.AddDependency("encrypt", "key-file")

	res, err := reg.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
	if res.HelpRequested() {
		return
	}

	dest, _, _ := cliopt.Get[string](res, "dest")
	jobs, _, err := cliopt.Get[int](res, "jobs")
	if err != nil {
		log.Fatal(err)
	}
	bw, _, err := cliopt.Get[float64](res, "bandwidth")
	if err != nil {
		log.Fatal(err)
	}
	excludes, err := cliopt.GetAll[string](res, "exclude")
	if err != nil {
		log.Fatal(err)
	}
	var skip []string
	for _, e := range excludes {
		if e != nil {
			skip = append(skip, *e)
		}
	}

	mode := "full"
	if res.IsPresent("incremental") {
		mode = "incremental"
	}
	srcs := res.Args()
	if len(srcs) == 0 {
		srcs = []string{"."}
	}
	fmt.Printf("%s backup of %s to %s\n", mode, strings.Join(srcs, ", "), dest)
	fmt.Printf("  jobs: %d, bandwidth: %.1f MB/s\n", jobs, bw)
	if len(skip) > 0 {
		fmt.Printf("  skipping: %s\n", strings.Join(skip, " "))
	}
	if res.IsPresent("encrypt") {
		key, _, _ := cliopt.Get[string](res, "key-file")
		fmt.Printf("  encrypted with %s\n", key)
	}
	if res.IsPresent("verbose") {
		fmt.Println("  logging every file")
	}
}
