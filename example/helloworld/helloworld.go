// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/yeetrun/cliopt/pkg/cliopt"
)

func main() {
	reg := cliopt.New(cliopt.Config{Program: "helloworld"})
	if err := reg.Add(
		cliopt.TextArg("name").Short('n').Default("World").Description("who to greet"),
		cliopt.IntArg("times").Short('t').Default(0).Description("greetings to print, 0 for forever"),
		cliopt.DoubleArg("interval").Short('i').Names("SECONDS").Default(2.0).Description("pause between greetings"),
	); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	res, err := reg.Parse(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if res.HelpRequested() {
		return
	}
	name, _, _ := cliopt.Get[string](res, "name")
	times, _, err := cliopt.Get[int](res, "times")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	interval, _, err := cliopt.Get[float64](res, "interval")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	for i := 0; times == 0 || i < times; i++ {
		fmt.Printf("Hello, %s!\n", name)
		time.Sleep(time.Duration(interval * float64(time.Second)))
	}
}
