// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metric defines the measurements collected from queue
// benchmark runs and the ordered sets that hold them.
//
// A Set behaves like an insertion-ordered map: the order in which
// metrics are first added is preserved, and replacing the value of an
// existing metric does not move it. This order determines the column
// order of the tables generated from a Set.
package metric

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Metric names one measurement, such as "cache-misses" or
// "energy (J)".
type Metric string

// Hardware performance counters.
const (
	CacheReferences Metric = "cache-references"
	CacheMisses     Metric = "cache-misses"
	Cycles          Metric = "cycles"
	Instructions    Metric = "instructions"
	Branches        Metric = "branches"
	Faults          Metric = "faults"
	Migrations      Metric = "migrations"
)

// Energy, timing, and memory usage.
const (
	Energy    Metric = "energy (J)"
	Time      Metric = "time (s)"
	HeapTotal Metric = "heap total"
	HeapPeak  Metric = "heap peak"
	StackPeak Metric = "stack peak"
)

// PerfCounters lists the counters read from perf output, in the
// order they are searched for on each line.
var PerfCounters = []Metric{
	CacheReferences, CacheMisses, Cycles, Instructions,
	Branches, Faults, Migrations,
}

// Report lists the metrics that get a ranked table of their own.
var Report = []Metric{
	CacheMisses, CacheReferences, Faults, Energy,
	Time, HeapTotal, HeapPeak, StackPeak,
}

// A Value is a single measurement.
type Value struct {
	// Value is the raw measurement. Zero means the run was
	// broken or the measurement is missing.
	Value float64

	// Integer records that Value was read from an integer
	// counter. It affects only how Value is printed.
	Integer bool

	// Normalized is Value divided by the best value of the
	// same metric in the same ratio group, rounded to two
	// decimal places. It is zero until the set is normalized.
	Normalized float64
}

// Int returns a Value holding an integer counter.
func Int(v int64) *Value {
	return &Value{Value: float64(v), Integer: true}
}

// Float returns a Value holding a real-valued measurement.
func Float(v float64) *Value {
	return &Value{Value: v}
}

// Text formats the raw value the way the report tables print it.
func (v *Value) Text() string {
	if v.Integer && !math.IsInf(v.Value, 0) {
		return strconv.FormatFloat(v.Value, 'f', 0, 64)
	}
	return FormatFloat(v.Value)
}

// NormalizedText formats the normalized value.
func (v *Value) NormalizedText() string {
	return FormatFloat(v.Normalized)
}

// FormatFloat formats f using the shortest representation that
// round-trips, always including a fractional part. 1 is printed as
// "1.0" and 2.35 as "2.35". Infinities print as "inf" and "-inf".
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// Round rounds f to the given number of decimal places. Ties are
// resolved on the exact binary value of f, so Round(2.675, 2) is
// 2.67 because 2.675 is stored as 2.67499999....
func Round(f float64, places int) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return f
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', places, 64), 64)
	if err != nil {
		// FormatFloat always produces a parseable number.
		panic(err)
	}
	return r
}

// A MergePolicy decides what happens when a metric being merged into
// a Set is already present.
type MergePolicy int

const (
	// Overwrite replaces the existing value: the last
	// contribution wins.
	Overwrite MergePolicy = iota
	// Reject fails the merge with ErrDuplicate.
	Reject
)

func (p MergePolicy) String() string {
	switch p {
	case Overwrite:
		return "overwrite"
	case Reject:
		return "reject"
	}
	return fmt.Sprintf("MergePolicy(%d)", int(p))
}

// ParseMergePolicy parses the String form of a MergePolicy.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch s {
	case "overwrite":
		return Overwrite, nil
	case "reject":
		return Reject, nil
	}
	return 0, fmt.Errorf("unknown merge policy %q", s)
}

// ErrDuplicate is returned when a merge under Reject finds a metric
// that is already present.
var ErrDuplicate = errors.New("duplicate metric")

// ErrNoMetric is returned by Set.Get for a metric that is not present.
var ErrNoMetric = errors.New("metric not found")

// A Set is an insertion-ordered collection of metric values.
//
// The zero Set is empty and ready to use.
type Set struct {
	keys []Metric
	vals map[Metric]*Value
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{}
}

// Len returns the number of metrics in s.
func (s *Set) Len() int {
	return len(s.keys)
}

// Keys returns the metrics in s in insertion order. The caller must
// not modify the returned slice.
func (s *Set) Keys() []Metric {
	return s.keys
}

// Put sets the value of m. If m is already present, its value is
// replaced and its position is kept.
func (s *Set) Put(m Metric, v *Value) {
	if s.vals == nil {
		s.vals = make(map[Metric]*Value)
	}
	if _, ok := s.vals[m]; !ok {
		s.keys = append(s.keys, m)
	}
	s.vals[m] = v
}

// Lookup returns the value of m and whether it is present.
func (s *Set) Lookup(m Metric) (*Value, bool) {
	v, ok := s.vals[m]
	return v, ok
}

// Get returns the value of m, or an error wrapping ErrNoMetric.
func (s *Set) Get(m Metric) (*Value, error) {
	v, ok := s.vals[m]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMetric, m)
	}
	return v, nil
}

// Merge copies every metric of other into s, in other's order,
// resolving metrics present in both according to policy. Under
// Reject, s is left unmodified if an error is returned.
func (s *Set) Merge(other *Set, policy MergePolicy) error {
	if policy == Reject {
		for _, m := range other.keys {
			if _, ok := s.vals[m]; ok {
				return fmt.Errorf("%w: %q", ErrDuplicate, m)
			}
		}
	}
	for _, m := range other.keys {
		s.Put(m, other.vals[m])
	}
	return nil
}
