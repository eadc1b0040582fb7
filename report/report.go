// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"fmt"
	"io"
	"path"

	"github.com/queuebench/queuestat/dataset"
	"github.com/queuebench/queuestat/metric"
)

// DefaultReference is the implementation whose metrics define the
// table columns unless Options says otherwise.
const DefaultReference dataset.Implementation = "Hazp"

// TablesDir is the subdirectory the ranked tables are written to.
const TablesDir = "tables"

// Options configure Build.
type Options struct {
	// Reference is the implementation whose metric order
	// defines the table columns. If empty, DefaultReference is
	// used.
	Reference dataset.Implementation

	// Metrics lists the metrics to rank. If nil, metric.Report is
	// used.
	Metrics []metric.Metric

	// HTML adds an HTML page with every ranking to the report.
	HTML bool
}

// A Report is the complete set of tables generated from a dataset.
type Report struct {
	// Tables holds, for each ratio, the raw table followed by
	// the normalized table.
	Tables []*Table

	// Rankings holds the rankings of every normalized table.
	Rankings []*Ranking

	html bool
}

// Build generates every table for d. d must already be normalized.
//
// Build does all the work that can fail on account of the data, so a
// report that builds successfully can be written out completely.
func Build(d *dataset.Dataset, opts Options) (*Report, error) {
	ref := opts.Reference
	if ref == "" {
		ref = DefaultReference
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = metric.Report
	}

	r := &Report{html: opts.HTML}
	for _, ratio := range d.Ratios() {
		for _, field := range []Field{Raw, Normalized} {
			t, err := NewTable(d, ratio, field, ref)
			if err != nil {
				return nil, err
			}
			r.Tables = append(r.Tables, t)
			if field != Normalized {
				continue
			}
			ranks, err := Rank(t, metrics)
			if err != nil {
				return nil, err
			}
			r.Rankings = append(r.Rankings, ranks...)
		}
	}
	return r, nil
}

// TableName returns the file name of t within the output.
func TableName(t *Table) string {
	return fmt.Sprintf("ratio_%s_%s.csv", t.Ratio, t.Field)
}

// RankingName returns the file name of r within the output.
func RankingName(r *Ranking) string {
	return path.Join(TablesDir, fmt.Sprintf("%s_%s.csv", r.Ratio, r.Metric))
}

// HTMLName is the file name of the HTML page within the output.
const HTMLName = "report.html"

// Write writes every table of r to s.
func (r *Report) Write(s Sink) error {
	for _, t := range r.Tables {
		if err := writeFile(s, TableName(t), t.WriteCSV); err != nil {
			return err
		}
	}
	for _, rk := range r.Rankings {
		if err := writeFile(s, RankingName(rk), rk.WriteCSV); err != nil {
			return err
		}
	}
	if r.html {
		if err := writeFile(s, HTMLName, func(w io.Writer) error {
			return WriteHTML(w, r.Rankings)
		}); err != nil {
			return err
		}
	}
	return nil
}

// writeFile formats one output file in memory and copies it to s.
func writeFile(s Sink, name string, format func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := format(&buf); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return WriteFile(s, name, buf.Bytes())
}
