// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Hfparams records the thread counts of a single hyperfine run in its
// JSON export.
//
// Usage:
//
//	hfparams [-name param] file producers consumers
//
// Hfparams sets the parameters of the first result in file to
// {"Threads": producers+consumers}, rewriting the file in place. This
// makes a run at one thread configuration look like one step of a
// thread scan to queuestat and queueplot. The -name flag sets a
// different parameter name.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/queuebench/queuestat/measfmt"
)

func main() {
	log.SetPrefix("hfparams: ")
	log.SetFlags(0)
	if err := hfparams(os.Stderr, os.Args[1:]); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func hfparams(stderr io.Writer, args []string) error {
	flags := flag.NewFlagSet("hfparams", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: hfparams [-name param] file producers consumers\n")
		flags.PrintDefaults()
	}
	name := flags.String("name", measfmt.ThreadsParam, "set parameter `param`")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 3 {
		flags.Usage()
		return fmt.Errorf("invalid usage")
	}
	file := flags.Arg(0)
	var total int
	for _, arg := range flags.Args()[1:] {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid thread count %q", arg)
		}
		total += n
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	out, err := measfmt.SetParameter(data, *name, total)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return os.WriteFile(file, out, 0o666)
}
