// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws benchmark results with gonum.org/v1/plot.
//
// Throughput charts show one line per hyperfine export, plotting a
// scanned parameter against throughput or time. Ranking charts show a
// ranked report table as a bar chart.
package chart

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/queuebench/queuestat/measfmt"
)

// LogOps is the base-10 logarithm of the number of queue operations
// each run of a thread or congestion scan performs.
const LogOps = 8

// Parameters whose scans are plotted as throughput.
const (
	Threads    = "Threads"
	Congestion = "Congestion"
	Operations = "Operations"
)

// A Series is one line of a throughput chart.
type Series struct {
	// Name labels the series. It is usually the input file name.
	Name string

	// Param is the scanned parameter.
	Param string

	// Throughput reports that Y is in operations per second
	// rather than seconds.
	Throughput bool

	X, Y, Err []float64
}

// Parameter returns the name of the single parameter that every
// result in results is run with, and its value in each result.
//
// It is an error for results to be empty, for any result to have
// other than exactly one parameter, or for the results to disagree on
// the parameter name.
func Parameter(results []measfmt.Result) (string, []float64, error) {
	if len(results) == 0 {
		return "", nil, fmt.Errorf("no benchmark data to plot")
	}
	var name string
	values := make([]float64, 0, len(results))
	for i, r := range results {
		if len(r.Parameters) != 1 {
			names := make([]string, 0, len(r.Parameters))
			for k := range r.Parameters {
				names = append(names, k)
			}
			sort.Strings(names)
			return "", nil, fmt.Errorf("benchmarks must have exactly one parameter, but result %d has %d: %v", i, len(names), names)
		}
		for k, p := range r.Parameters {
			if i > 0 && k != name {
				return "", nil, fmt.Errorf("benchmarks must all have the same parameter name, but found %q and %q", name, k)
			}
			name = k
			v, err := p.Float()
			if err != nil {
				return "", nil, fmt.Errorf("result %d: bad %s parameter %q", i, k, p)
			}
			values = append(values, v)
		}
	}
	return name, values, nil
}

// NewSeries computes the series for doc.
//
// For thread and congestion scans each run performs 10^LogOps
// operations; for operation scans the parameter is the base-10
// logarithm of the operation count. These are plotted as the mean
// throughput over all runs, with the sample standard deviation as the
// error. Any other parameter is plotted as hyperfine's mean time and
// standard deviation.
func NewSeries(name string, doc *measfmt.Document) (*Series, error) {
	param, xs, err := Parameter(doc.Results)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	s := &Series{Name: name, Param: param, X: xs}
	switch param {
	case Threads, Congestion, Operations:
		s.Throughput = true
	}
	for i, r := range doc.Results {
		if !s.Throughput {
			s.Y = append(s.Y, r.Mean)
			s.Err = append(s.Err, r.Stddev)
			continue
		}
		ops := math.Pow(10, LogOps)
		if param == Operations {
			ops = math.Pow(10, math.Trunc(xs[i]))
		}
		mean, stddev, err := throughput(ops, r.Times)
		if err != nil {
			return nil, fmt.Errorf("%s: result %d: %w", name, i, err)
		}
		s.Y = append(s.Y, mean)
		s.Err = append(s.Err, stddev)
	}
	return s, nil
}

// throughput returns the mean and sample standard deviation of ops/t
// over times.
func throughput(ops float64, times []float64) (mean, stddev float64, err error) {
	if len(times) == 0 {
		return 0, 0, fmt.Errorf("no run times")
	}
	tp := make([]float64, len(times))
	for i, t := range times {
		if t <= 0 {
			return 0, 0, fmt.Errorf("bad run time %v", t)
		}
		tp[i] = ops / t
	}
	sample := stats.Sample{Xs: tp}
	return sample.Mean(), sample.StdDev(), nil
}
