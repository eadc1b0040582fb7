// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package measfmt reads the raw measurement files produced by the
// queue benchmark harness.
//
// There is one reader per file kind. Each returns the metrics it
// found as a metric.Set. A file that simply lacks the expected data
// produces an empty set, not an error; errors are reserved for I/O
// failures and undecodable JSON.
package measfmt

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/queuebench/queuestat/classify"
	"github.com/queuebench/queuestat/metric"
)

// A ReadFunc extracts metrics from one measurement file.
type ReadFunc func(r io.Reader) (*metric.Set, error)

var readers = map[classify.Kind]ReadFunc{
	classify.PerfCounter: ReadPerf,
	classify.Energy:      ReadEnergy,
	classify.MemoryUsage: ReadMemusage,
	classify.Timing:      ReadTiming,
}

// Reader returns the ReadFunc for files of the given kind.
func Reader(kind classify.Kind) (ReadFunc, error) {
	f, ok := readers[kind]
	if !ok {
		return nil, fmt.Errorf("no reader for kind %q", kind)
	}
	return f, nil
}

// ReadPerf reads the output of perf stat. For every counter in
// metric.PerfCounters that appears on a line, the first field of the
// line is taken as the counter's value. A counter that appears on
// several lines gets the value from the last of them.
func ReadPerf(r io.Reader) (*metric.Set, error) {
	set := metric.NewSet()
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		for _, m := range metric.PerfCounters {
			if !strings.Contains(line, string(m)) {
				continue
			}
			f := strings.Fields(line)
			if len(f) == 0 {
				continue
			}
			// perf stat groups digits with commas in most locales.
			v, err := strconv.ParseInt(strings.ReplaceAll(f[0], ",", ""), 10, 64)
			if err != nil {
				continue
			}
			set.Put(m, metric.Int(v))
		}
	}
	return set, s.Err()
}

var decimalRE = regexp.MustCompile(`\d+\.\d+`)

// ReadEnergy reads an energy report. The first line mentioning
// "Joules" must carry the energy as its first decimal number.
func ReadEnergy(r io.Reader) (*metric.Set, error) {
	set := metric.NewSet()
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if !strings.Contains(line, "Joules") {
			continue
		}
		if num := decimalRE.FindString(line); num != "" {
			v, err := strconv.ParseFloat(num, 64)
			if err == nil {
				set.Put(metric.Energy, metric.Float(v))
			}
		}
		break
	}
	return set, s.Err()
}

var memusageRE = regexp.MustCompile(`heap total: (\d+), heap peak: (\d+), stack peak: (\d+)`)

// ReadMemusage reads the summary printed by glibc's memusage tool.
func ReadMemusage(r io.Reader) (*metric.Set, error) {
	set := metric.NewSet()
	s := bufio.NewScanner(r)
	for s.Scan() {
		m := memusageRE.FindStringSubmatch(s.Text())
		if m == nil {
			continue
		}
		names := []metric.Metric{metric.HeapTotal, metric.HeapPeak, metric.StackPeak}
		vals := make([]int64, len(names))
		ok := true
		for i := range names {
			v, err := strconv.ParseInt(m[i+1], 10, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			// Out of range; try the next line.
			continue
		}
		for i, name := range names {
			set.Put(name, metric.Int(vals[i]))
		}
		break
	}
	return set, s.Err()
}
