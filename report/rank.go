// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/queuebench/queuestat/dataset"
	"github.com/queuebench/queuestat/metric"
)

// A Ranking orders the implementations measured at one ratio by one
// metric, best first.
type Ranking struct {
	Ratio  dataset.Ratio
	Metric metric.Metric
	Rows   []*RankRow
}

// A RankRow is one implementation's entry in a Ranking. Value is the
// cell text from the table the ranking was built from.
type RankRow struct {
	Implementation dataset.Implementation
	Value          string

	key float64
}

// Best is the cell text of a normalized value equal to 1, which marks
// the best implementation(s).
const Best = "1.0"

// Rank builds a Ranking from t for every metric in metrics that is
// one of t's columns. Each ranking holds the implementations that
// report the metric, sorted by ByRank.
func Rank(t *Table, metrics []metric.Metric) ([]*Ranking, error) {
	var out []*Ranking
	for _, m := range metrics {
		col := t.Column(m)
		if col < 0 {
			continue
		}
		r := &Ranking{Ratio: t.Ratio, Metric: m}
		for _, row := range t.Rows {
			cell := row.Cells[col]
			if cell == "" {
				continue
			}
			rr := &RankRow{Implementation: row.Implementation, Value: cell}
			if cell != Best {
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("ratio %s, %s, %s: %w", t.Ratio, m, row.Implementation, err)
				}
				rr.key = v
			}
			r.Rows = append(r.Rows, rr)
		}
		SortRanking(r, ByRank)
		out = append(out, r)
	}
	return out, nil
}

// A SortFunc compares two rows of a Ranking.
type SortFunc func(r *Ranking, i, j int) bool

// ByRank orders rows by value, and rows with equal values by
// implementation name. A row whose value is exactly Best sorts as
// if its value were 0, so the best implementations always come first.
func ByRank(r *Ranking, i, j int) bool {
	a, b := r.Rows[i], r.Rows[j]
	if a.key != b.key {
		return a.key < b.key
	}
	return a.Implementation < b.Implementation
}

// SortRanking sorts r (in place) by sortFunc.
func SortRanking(r *Ranking, sortFunc SortFunc) {
	sort.SliceStable(r.Rows, func(i, j int) bool { return sortFunc(r, i, j) })
}

// Header returns the header row of r: the ratio written with a colon,
// and the metric.
func (r *Ranking) Header() []string {
	return []string{strings.ReplaceAll(string(r.Ratio), "_", ":"), string(r.Metric)}
}
