// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/queuebench/queuestat/dataset"
	"github.com/queuebench/queuestat/internal/texttab"
	"github.com/queuebench/queuestat/metric"
	"github.com/queuebench/queuestat/metricunit"
)

// dump prints one table per ratio of d. Each cell shows the raw value,
// scaled to a unit prefix shared by its column, and the normalized
// value in parentheses.
func dump(w io.Writer, d *dataset.Dataset) error {
	for i, ratio := range d.Ratios() {
		results, err := d.Results(ratio)
		if err != nil {
			return err
		}

		// Columns are every metric any implementation reports,
		// in the order they are first seen.
		var cols []metric.Metric
		seen := make(map[metric.Metric]bool)
		vals := make(map[metric.Metric][]float64)
		for _, impl := range results.Implementations() {
			set, _ := results.Metrics(impl)
			for _, m := range set.Keys() {
				if !seen[m] {
					seen[m] = true
					cols = append(cols, m)
				}
				v, _ := set.Lookup(m)
				vals[m] = append(vals[m], v.Value)
			}
		}
		scalers := make(map[metric.Metric]metricunit.Scaler)
		for m, vs := range vals {
			scalers[m] = metricunit.CommonScale(vs, metricunit.ClassOf(m))
		}

		var tab texttab.Table
		tab.Row().Cell("ratio " + strings.ReplaceAll(string(ratio), "_", ":"))
		for j, m := range cols {
			tab.AlignRight(j + 1)
			tab.Cell(string(m))
		}
		for _, impl := range results.Implementations() {
			set, _ := results.Metrics(impl)
			tab.Row().Cell(string(impl))
			for _, m := range cols {
				v, ok := set.Lookup(m)
				if !ok {
					tab.Cell("")
					continue
				}
				s := scalers[m].Format(v.Value) + metricunit.Unit(m)
				tab.Cell(fmt.Sprintf("%s (%s)", s, v.NormalizedText()))
			}
		}

		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := tab.Format(w); err != nil {
			return err
		}
	}
	return nil
}
