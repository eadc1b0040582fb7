// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report turns a normalized dataset into report tables: one
// table per ratio comparing all implementations, and one ranked table
// per ratio and report metric.
package report

import (
	"fmt"

	"github.com/queuebench/queuestat/dataset"
	"github.com/queuebench/queuestat/metric"
)

// A Field selects which number of a metric.Value a table shows.
type Field int

const (
	// Raw shows raw measurements.
	Raw Field = iota
	// Normalized shows values normalized to the best
	// implementation.
	Normalized
)

// String returns the name used for f in file names.
func (f Field) String() string {
	switch f {
	case Raw:
		return "value"
	case Normalized:
		return "normalized"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

func (f Field) text(v *metric.Value) string {
	if f == Normalized {
		return v.NormalizedText()
	}
	return v.Text()
}

// A Table compares every implementation measured at one ratio.
type Table struct {
	Ratio dataset.Ratio
	Field Field

	// Columns are the metric columns, in the order of the
	// reference implementation's metrics.
	Columns []metric.Metric

	Rows []*Row
}

// A Row holds the formatted metrics of one implementation. Cells
// parallels Table.Columns; a metric the implementation did not report
// is an empty string.
type Row struct {
	Implementation dataset.Implementation
	Cells          []string
}

// NewTable builds the table for ratio from d. Its columns are the
// metrics of the reference implementation ref.
//
// It is an error for ref to be missing at ratio, or for any
// implementation to report a metric that ref does not. A table with
// such gaps would silently drop measurements.
func NewTable(d *dataset.Dataset, ratio dataset.Ratio, field Field, ref dataset.Implementation) (*Table, error) {
	results, err := d.Results(ratio)
	if err != nil {
		return nil, err
	}
	refSet, err := results.Metrics(ref)
	if err != nil {
		return nil, fmt.Errorf("ratio %s: reference %w", ratio, err)
	}

	t := &Table{Ratio: ratio, Field: field}
	t.Columns = append(t.Columns, refSet.Keys()...)
	col := make(map[metric.Metric]int, len(t.Columns))
	for i, m := range t.Columns {
		col[m] = i
	}

	for _, impl := range results.Implementations() {
		set, err := results.Metrics(impl)
		if err != nil {
			return nil, err
		}
		row := &Row{Implementation: impl, Cells: make([]string, len(t.Columns))}
		for _, m := range set.Keys() {
			i, ok := col[m]
			if !ok {
				return nil, fmt.Errorf("ratio %s: %s reports %q, which reference %s lacks", ratio, impl, m, ref)
			}
			v, _ := set.Lookup(m)
			row.Cells[i] = field.text(v)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Header returns the header row of t.
func (t *Table) Header() []string {
	h := []string{"Implementation"}
	for _, m := range t.Columns {
		h = append(h, string(m))
	}
	return h
}

// Column returns the index of m in t.Columns, or -1.
func (t *Table) Column(m metric.Metric) int {
	for i, c := range t.Columns {
		if c == m {
			return i
		}
	}
	return -1
}
