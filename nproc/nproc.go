// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nproc chooses the thread configurations a benchmark is run
// with for a fixed processor budget.
//
// In symmetric mode a configuration is a single thread count. In
// asymmetric (producer/consumer) mode it is a pair of producer and
// consumer thread counts. Both modes drop the configurations that do
// not fit in the budget and may add one configuration that uses the
// whole budget.
//
// Thread counts are assumed to be non-negative.
package nproc

// Symmetric returns the candidates that are at most nproc, in order.
// If the largest of them is less than nproc (or none are kept), nproc
// itself is appended so that the full-width configuration is always
// measured.
func Symmetric(nproc int, cands []int) []int {
	res := []int{}
	top, kept := 0, false
	for _, n := range cands {
		if n > nproc {
			continue
		}
		res = append(res, n)
		if !kept || n > top {
			top, kept = n, true
		}
	}
	if !kept || top < nproc {
		res = append(res, nproc)
	}
	return res
}

// A Pair is a producer/consumer thread assignment.
type Pair struct {
	Producers, Consumers int
}

// Sum returns the total number of threads of p.
func (p Pair) Sum() int { return p.Producers + p.Consumers }

// Reduced returns p divided by the greatest common divisor of its
// elements. Both elements must be nonzero.
func (p Pair) Reduced() Pair {
	g := gcd(p.Producers, p.Consumers)
	return Pair{p.Producers / g, p.Consumers / g}
}

// Pairs splits an interleaved sequence of producer and consumer counts
// into pairs. A trailing odd element is ignored.
func Pairs(cands []int) []Pair {
	ps := make([]Pair, 0, len(cands)/2)
	for i := 0; i+1 < len(cands); i += 2 {
		ps = append(ps, Pair{cands[i], cands[i+1]})
	}
	return ps
}

// Flatten is the inverse of Pairs.
func Flatten(ps []Pair) []int {
	out := make([]int, 0, 2*len(ps))
	for _, p := range ps {
		out = append(out, p.Producers, p.Consumers)
	}
	return out
}

// Asymmetric returns the pairs of cands whose sum is at most nproc, in
// order.
//
// If every kept pair with two nonzero elements reduces to the same
// ratio, Asymmetric also computes the largest pair with that ratio
// that fits in nproc, and appends it if it uses more threads than any
// kept pair. If the kept pairs disagree on the ratio, or no kept pair
// has a ratio at all, nothing is appended.
func Asymmetric(nproc int, cands []int) []Pair {
	res := []Pair{}
	for _, p := range Pairs(cands) {
		if p.Sum() <= nproc {
			res = append(res, p)
		}
	}

	ratio, ok := commonRatio(res)
	if !ok {
		return res
	}
	maxSum := res[0].Sum()
	for _, p := range res[1:] {
		if s := p.Sum(); s > maxSum {
			maxSum = s
		}
	}
	mult := nproc / ratio.Sum()
	top := Pair{mult * ratio.Producers, mult * ratio.Consumers}
	if top.Sum() > maxSum {
		res = append(res, top)
	}
	return res
}

// commonRatio returns the reduced ratio shared by every pair in ps
// that has no zero element. It reports false if there is no such pair
// or the pairs disagree.
func commonRatio(ps []Pair) (Pair, bool) {
	var ratio Pair
	found := false
	for _, p := range ps {
		if p.Producers == 0 || p.Consumers == 0 {
			continue
		}
		r := p.Reduced()
		if !found {
			ratio, found = r, true
		} else if r != ratio {
			return Pair{}, false
		}
	}
	return ratio, found
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
