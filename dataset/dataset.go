// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset aggregates the metrics of many measurement files
// into one dataset keyed by ratio, implementation, and metric, and
// normalizes every metric against the best implementation.
//
// Lookups never create entries: asking for a ratio or implementation
// that is not present returns an error wrapping ErrNotFound.
package dataset

import (
	"errors"
	"fmt"

	"github.com/queuebench/queuestat/metric"
)

// A Ratio labels a producer:consumer thread ratio, such as "1_1".
type Ratio string

// An Implementation is the tag of one queue implementation, such as
// "Hazp".
type Implementation string

// ErrNotFound is returned when looking up an absent ratio or
// implementation.
var ErrNotFound = errors.New("not found")

// Results holds the metrics of every implementation measured at one
// ratio, in the order the implementations were first seen.
type Results struct {
	impls []Implementation
	sets  map[Implementation]*metric.Set
}

// Implementations returns the implementations in r in order. The
// caller must not modify the returned slice.
func (r *Results) Implementations() []Implementation {
	return r.impls
}

// Metrics returns the metric set of impl.
func (r *Results) Metrics(impl Implementation) (*metric.Set, error) {
	s, ok := r.sets[impl]
	if !ok {
		return nil, fmt.Errorf("implementation %q: %w", impl, ErrNotFound)
	}
	return s, nil
}

// add returns the metric set of impl, adding an empty one if needed.
func (r *Results) add(impl Implementation) *metric.Set {
	if s, ok := r.sets[impl]; ok {
		return s
	}
	if r.sets == nil {
		r.sets = make(map[Implementation]*metric.Set)
	}
	s := metric.NewSet()
	r.impls = append(r.impls, impl)
	r.sets[impl] = s
	return s
}

// A Dataset maps ratios to the results measured at that ratio, in the
// order the ratios were first seen.
type Dataset struct {
	ratios  []Ratio
	results map[Ratio]*Results
}

// New returns an empty Dataset.
func New() *Dataset {
	return &Dataset{results: make(map[Ratio]*Results)}
}

// Ratios returns the ratios in d in order. The caller must not modify
// the returned slice.
func (d *Dataset) Ratios() []Ratio {
	return d.ratios
}

// Results returns the results measured at ratio.
func (d *Dataset) Results(ratio Ratio) (*Results, error) {
	r, ok := d.results[ratio]
	if !ok {
		return nil, fmt.Errorf("ratio %q: %w", ratio, ErrNotFound)
	}
	return r, nil
}

// Metrics returns the metric set of impl at ratio.
func (d *Dataset) Metrics(ratio Ratio, impl Implementation) (*metric.Set, error) {
	r, err := d.Results(ratio)
	if err != nil {
		return nil, err
	}
	s, err := r.Metrics(impl)
	if err != nil {
		return nil, fmt.Errorf("ratio %q: %w", ratio, err)
	}
	return s, nil
}

// Merge merges set into the metrics of impl at ratio according to
// policy, creating the ratio and implementation entries if needed.
// Entries are created even if set is empty, so that every classified
// file shows up in the dataset.
func (d *Dataset) Merge(ratio Ratio, impl Implementation, set *metric.Set, policy metric.MergePolicy) error {
	if d.results == nil {
		d.results = make(map[Ratio]*Results)
	}
	r, ok := d.results[ratio]
	if !ok {
		r = new(Results)
		d.ratios = append(d.ratios, ratio)
		d.results[ratio] = r
	}
	if err := r.add(impl).Merge(set, policy); err != nil {
		return fmt.Errorf("ratio %q, implementation %q: %w", ratio, impl, err)
	}
	return nil
}

// Each calls f for every metric value in d, in dataset order. It stops
// and returns the first error f returns.
func (d *Dataset) Each(f func(ratio Ratio, impl Implementation, m metric.Metric, v *metric.Value) error) error {
	for _, ratio := range d.ratios {
		r := d.results[ratio]
		for _, impl := range r.impls {
			set := r.sets[impl]
			for _, m := range set.Keys() {
				v, _ := set.Lookup(m)
				if err := f(ratio, impl, m, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
