// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"math"

	"github.com/queuebench/queuestat/metric"
)

// Minimums returns, for every ratio and metric in d, the smallest raw
// value reported by any implementation.
//
// A raw value of zero marks a broken run and is never selected. If
// every implementation reports zero for a metric, its minimum is
// +Inf.
func Minimums(d *Dataset) map[Ratio]map[metric.Metric]float64 {
	mins := make(map[Ratio]map[metric.Metric]float64)
	d.Each(func(ratio Ratio, _ Implementation, m metric.Metric, v *metric.Value) error {
		rm := mins[ratio]
		if rm == nil {
			rm = make(map[metric.Metric]float64)
			mins[ratio] = rm
		}
		cur, ok := rm[m]
		if !ok {
			cur = math.Inf(1)
		}
		if v.Value != 0 && v.Value < cur {
			cur = v.Value
		}
		rm[m] = cur
		return nil
	})
	return mins
}

// Normalize sets the Normalized field of every value in d to its raw
// value divided by the minimum for its ratio and metric, rounded to
// two decimal places.
//
// The best implementation of each group therefore normalizes to
// exactly 1 and the others to at least 1. Zero values normalize to 0.
func Normalize(d *Dataset) {
	mins := Minimums(d)
	d.Each(func(ratio Ratio, _ Implementation, m metric.Metric, v *metric.Value) error {
		v.Normalized = metric.Round(v.Value/mins[ratio][m], 2)
		return nil
	})
}
