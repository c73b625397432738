// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/yeetrun/cliopt/pkg/cliopt"
)

func main() {
	reg := cliopt.New(cliopt.Config{Program: "helloserver", Logf: log.Printf})
	if err := reg.Add(
		cliopt.TextArg("addr").Short('a').Default(":8080").Description("listen address"),
		cliopt.Flag("env").Short('e').Description("serve the environment on /env"),
		cliopt.TextArg("greeting").Default("Hello, world!"),
	); err != nil {
		log.Fatal(err)
	}
	res, err := reg.Parse(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if res.HelpRequested() {
		return
	}
	addr, _, _ := cliopt.Get[string](res, "addr")
	greeting, _, _ := cliopt.Get[string](res, "greeting")
	serveEnv := res.IsPresent("env")

	log.Fatal(http.ListenAndServe(addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if serveEnv && r.URL.Path == "/env" {
			fmt.Fprintln(w, os.Environ())
			return
		}
		fmt.Fprintln(w, greeting)
	})))
}
