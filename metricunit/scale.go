// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metricunit formats metric values with unit prefixes for
// human consumption.
package metricunit

import (
	"fmt"
	"math"
	"strconv"

	"github.com/queuebench/queuestat/metric"
)

// A Class specifies what class of unit prefixes are in use.
type Class int

const (
	// Decimal values are scaled by powers of 1000 and use SI
	// prefixes such as "k" and "M".
	Decimal Class = iota
	// Binary values are scaled by powers of 1024 and use IEC
	// prefixes such as "Ki" and "Mi".
	Binary
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "Decimal"
	case Binary:
		return "Binary"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ClassOf returns the Class of m. Memory sizes are Binary; counters,
// energy, and time are Decimal.
func ClassOf(m metric.Metric) Class {
	switch m {
	case metric.HeapTotal, metric.HeapPeak, metric.StackPeak:
		return Binary
	}
	return Decimal
}

// Unit returns the unit suffix printed after values of m, or "" if
// the metric is a plain count.
func Unit(m metric.Metric) string {
	switch m {
	case metric.HeapTotal, metric.HeapPeak, metric.StackPeak:
		return "B"
	case metric.Energy:
		return "J"
	case metric.Time:
		return "s"
	}
	return ""
}

// A Scaler represents a scaling factor for a number and its
// scientific representation.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // Unit prefix ("k", "M", "Ki", etc)
}

// Format formats val and appends the unit prefix according to the
// given scale. For example, if the Scaler has class Decimal,
// Format(123456789) returns "123.5M".
func (s Scaler) Format(val float64) string {
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return metric.FormatFloat(val)
	}
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Prefix...)
	return string(buf)
}

type factor struct {
	factor float64
	prefix string
	// Thresholds for 100.0, 10.00, 1.000.
	t100, t10, t1 float64
}

var (
	siFactors  = mkFactors(1000, []string{"T", "G", "M", "k", ""})
	iecFactors = mkFactors(1024, []string{"Ti", "Gi", "Mi", "Ki", ""})
)

// mkFactors returns the factors for prefixes, which are ordered from
// largest to the unscaled "".
//
// A value is printed with three significant digits, so the
// thresholds sit just below the values that would round up to the
// next number of integer digits (99.95 rounds to "100.0").
func mkFactors(base float64, prefixes []string) []factor {
	var factors []factor
	for i, p := range prefixes {
		f := math.Pow(base, float64(len(prefixes)-1-i))
		factors = append(factors, factor{f, p, 99.95 * f, 9.995 * f, 0.9995 * f})
	}
	return factors
}

// Scale formats val using at least three significant digits,
// appending an SI or binary prefix. See Scaler.Format for details.
func Scale(val float64, cls Class) string {
	return CommonScale([]float64{val}, cls).Format(val)
}

// CommonScale returns a common Scaler to apply to all values in vals.
// This scale will show at least three significant digits for every
// value.
func CommonScale(vals []float64, cls Class) Scaler {
	// The common scale is determined by the finite non-zero
	// value closest to zero.
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && !math.IsInf(v, 0) && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, ""}
	}

	var factors []factor
	switch cls {
	default:
		panic(fmt.Sprintf("bad Class %v", cls))
	case Decimal:
		factors = siFactors
	case Binary:
		factors = iecFactors
	}

	for _, factor := range factors {
		switch {
		case min >= factor.t100:
			return Scaler{1, factor.factor, factor.prefix}
		case min >= factor.t10:
			return Scaler{2, factor.factor, factor.prefix}
		case min >= factor.t1:
			return Scaler{3, factor.factor, factor.prefix}
		}
	}

	// The value is below 1. Print it unscaled with enough digits
	// after the decimal point for three significant digits.
	prec := 3
	for t := 0.09995; min < t && prec < 10; t /= 10 {
		prec++
	}
	return Scaler{prec, 1, ""}
}
