// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/queuebench/queuestat/metric"
)

// A Document is a hyperfine JSON export.
type Document struct {
	Results []Result `json:"results"`
}

// A Result is one hyperfine benchmark: several timed runs of one
// command at one parameter setting.
type Result struct {
	Command    string           `json:"command,omitempty"`
	Parameters map[string]Param `json:"parameters,omitempty"`
	Mean       float64          `json:"mean"`
	Stddev     float64          `json:"stddev"`
	Times      []float64        `json:"times"`
}

// A Param is a benchmark parameter value. hyperfine writes them as
// strings, but hand-edited files sometimes use plain numbers, so both
// are accepted.
type Param string

func (p *Param) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Param(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("parameter must be a string or number, got %s", data)
	}
	*p = Param(n.String())
	return nil
}

// Float returns p as a number.
func (p Param) Float() (float64, error) {
	return strconv.ParseFloat(string(p), 64)
}

// Int returns p as an integer.
func (p Param) Int() (int, error) {
	return strconv.Atoi(string(p))
}

// ThreadsParam is the parameter hyperfine scans over in the
// producer/consumer benchmarks.
const ThreadsParam = "Threads"

// DecodeDocument decodes a hyperfine JSON export.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding timing results: %w", err)
	}
	return &doc, nil
}

// ReadTiming reads a hyperfine JSON export of a thread scan and
// records the mean time of the run with the most threads, rounded to
// hundredths of a second. That run is the saturated-throughput point
// of the scan. Among runs with equal thread counts the first wins.
func ReadTiming(r io.Reader) (*metric.Set, error) {
	doc, err := DecodeDocument(r)
	if err != nil {
		return nil, err
	}
	set := metric.NewSet()
	maxThreads := 0
	var best *Result
	for i := range doc.Results {
		res := &doc.Results[i]
		p, ok := res.Parameters[ThreadsParam]
		if !ok {
			continue
		}
		threads, err := p.Int()
		if err != nil {
			return nil, fmt.Errorf("result %d: bad %s parameter %q", i, ThreadsParam, p)
		}
		if threads > maxThreads {
			maxThreads, best = threads, res
		}
	}
	if best != nil {
		set.Put(metric.Time, metric.Float(metric.Round(best.Mean, 2)))
	}
	return set, nil
}
