// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Queueplot charts hyperfine parameter scans of the queue benchmarks.
//
// Usage:
//
//	queueplot [flags] file.json...
//
// Each file is a hyperfine JSON export in which every benchmark has
// exactly one parameter, the same in all files. Each file becomes one
// line of the chart, with error bars.
//
// Scans over Threads, Congestion, or Operations are drawn as
// throughput in operations per second; scans over any other
// parameter are drawn as mean run time. Files with "rust" in their
// name are drawn in orange with circles, all others in blue with
// triangles.
//
// The flags are:
//
//	-o file
//		Write the chart to file. The image format follows the
//		extension (png, svg, pdf, ...). The default is throughput.png.
//	-log-x
//		Use a logarithmic parameter axis.
//	-log-time
//		Use a logarithmic time axis instead of a linear throughput axis.
//	-titles a,b,...
//		Legend titles, one per file. With two or more, the chart is
//		titled "Comparison between a and b".
//	-ymax n
//		Top of the linear throughput axis. Zero fits the data.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/queuebench/queuestat/chart"
	"github.com/queuebench/queuestat/measfmt"
	"github.com/queuebench/queuestat/report"
)

func main() {
	log.SetPrefix("queueplot: ")
	log.SetFlags(0)
	if err := queueplot(os.Stderr, os.Args[1:]); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func queueplot(stderr io.Writer, args []string) error {
	flags := flag.NewFlagSet("queueplot", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: queueplot [flags] file.json...\n")
		flags.PrintDefaults()
	}
	out := flags.String("o", "throughput.png", "write chart to `file`")
	logX := flags.Bool("log-x", false, "use a logarithmic x (parameter) axis")
	logTime := flags.Bool("log-time", false, "use a logarithmic time axis")
	titles := flags.String("titles", "", "comma-separated `list` of legend titles")
	yMax := flags.Float64("ymax", chart.DefaultYMax, "top of the throughput axis, or 0 to fit the data")
	paramName := flags.String("parameter-name", "", "deprecated; parameter names are inferred from the input")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return fmt.Errorf("no input files")
	}
	if *paramName != "" {
		fmt.Fprintf(stderr, "warning: -parameter-name is deprecated; names are inferred from benchmark results\n")
	}

	var series []*chart.Series
	for _, name := range flags.Args() {
		s, err := readSeries(name)
		if err != nil {
			return err
		}
		series = append(series, s)
	}

	opts := chart.Options{LogX: *logX, LogTime: *logTime, YMax: *yMax}
	if *titles != "" {
		opts.Titles = strings.Split(*titles, ",")
	}
	p, err := chart.Throughput(series, opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := chart.Write(&buf, p, chart.Format(*out)); err != nil {
		return err
	}
	return report.WriteFile(report.DirSink{}, filepath.ToSlash(*out), buf.Bytes())
}

func readSeries(name string) (*chart.Series, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := measfmt.DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return chart.NewSeries(name, doc)
}
