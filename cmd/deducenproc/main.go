// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Deducenproc picks the thread configurations to benchmark for a
// processor budget.
//
// Usage:
//
//	deducenproc sym|pc nproc < candidates
//
// Deducenproc reads one line of whitespace-separated thread counts
// from standard input and prints, space-separated, the ones that fit
// in nproc processors.
//
// In sym mode each count is a number of threads. If the largest count
// that fits is less than nproc, nproc itself is added.
//
// In pc mode the counts are interleaved producer and consumer thread
// counts. A pair fits if its sum is at most nproc. If all pairs that
// fit share one producer:consumer ratio, the largest pair with that
// ratio that still fits is added when it uses more threads than any
// of them. If the pairs have different ratios, nothing is added.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/queuebench/queuestat/nproc"
)

func usage(w io.Writer) func() {
	return func() {
		fmt.Fprintf(w, "usage: deducenproc sym|pc nproc < candidates\n")
	}
}

func main() {
	log.SetPrefix("deducenproc: ")
	log.SetFlags(0)
	if err := deduce(os.Stdout, os.Stderr, os.Stdin, os.Args[1:]); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func deduce(stdout, stderr io.Writer, stdin io.Reader, args []string) error {
	flags := flag.NewFlagSet("deducenproc", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = usage(stderr)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		flags.Usage()
		return fmt.Errorf("invalid usage")
	}

	mode := flags.Arg(0)
	if mode != "sym" && mode != "pc" {
		return fmt.Errorf("invalid mode %q", mode)
	}
	n, err := strconv.Atoi(flags.Arg(1))
	if err != nil || n < 0 {
		return fmt.Errorf("invalid nproc %q", flags.Arg(1))
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return err
	}
	var cands []int
	for _, tok := range strings.Fields(line) {
		c, err := strconv.Atoi(tok)
		if err != nil || c < 0 {
			return fmt.Errorf("invalid thread count %q", tok)
		}
		cands = append(cands, c)
	}

	var res []int
	if mode == "sym" {
		res = nproc.Symmetric(n, cands)
	} else {
		res = nproc.Flatten(nproc.Asymmetric(n, cands))
	}
	out := make([]string, len(res))
	for i, c := range res {
		out[i] = strconv.Itoa(c)
	}
	_, err = fmt.Fprintln(stdout, strings.Join(out, " "))
	return err
}
