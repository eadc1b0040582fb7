// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Hfmerge merges hyperfine JSON exports into one.
//
// Usage:
//
//	hfmerge 'pattern' output
//
// Hfmerge concatenates the results of every file matching the glob
// pattern and writes them to output as a single export. Files are
// merged in the order of the number following the last "result" in
// their names, so result2.json comes before result10.json.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/queuebench/queuestat/measfmt"
)

func main() {
	log.SetPrefix("hfmerge: ")
	log.SetFlags(0)
	if err := hfmerge(os.Stderr, os.Args[1:]); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func hfmerge(stderr io.Writer, args []string) error {
	flags := flag.NewFlagSet("hfmerge", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: hfmerge 'pattern' output\n")
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		flags.Usage()
		return fmt.Errorf("invalid usage")
	}

	names, err := filepath.Glob(flags.Arg(0))
	if err != nil {
		return err
	}
	names, err = sortByResult(names)
	if err != nil {
		return err
	}

	var docs [][]byte
	for _, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		docs = append(docs, data)
	}
	out, err := measfmt.MergeResults(docs...)
	if err != nil {
		return err
	}
	return os.WriteFile(flags.Arg(1), out, 0o666)
}

// resultIndex returns the integer between the last "result" in name
// and the following ".".
func resultIndex(name string) (int, error) {
	i := strings.LastIndex(name, "result")
	if i < 0 {
		return 0, fmt.Errorf("%s: no result number in name", name)
	}
	s := name[i+len("result"):]
	if j := strings.Index(s, "."); j >= 0 {
		s = s[:j]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: bad result number %q", name, s)
	}
	return n, nil
}

// sortByResult sorts names by resultIndex.
func sortByResult(names []string) ([]string, error) {
	idx := make(map[string]int, len(names))
	for _, name := range names {
		n, err := resultIndex(name)
		if err != nil {
			return nil, err
		}
		idx[name] = n
	}
	sort.SliceStable(names, func(i, j int) bool { return idx[names[i]] < idx[names[j]] })
	return names, nil
}
