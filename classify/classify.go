// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package classify derives the ratio, implementation, and kind of a
// measurement file from its name.
//
// Classification is driven entirely by ordered rule tables. Each rule
// matches a substring of the file name; within a table, the first
// matching rule wins.
package classify

import (
	"errors"
	"fmt"
	"strings"
)

// A Kind identifies the format of a measurement file.
type Kind string

const (
	PerfCounter Kind = "perf-counter"
	Energy      Kind = "energy"
	MemoryUsage Kind = "memory-usage"
	Timing      Kind = "timing"
)

// Kinds lists every known Kind.
var Kinds = []Kind{PerfCounter, Energy, MemoryUsage, Timing}

func (k Kind) valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// A Rule maps file names containing Match to Tag.
type Rule struct {
	Match string `yaml:"match"`
	Tag   string `yaml:"tag"`
}

// Rules holds the tables used to classify file names.
type Rules struct {
	// Ratios maps names to ratio labels. If no rule matches,
	// the ratio is DefaultRatio.
	Ratios       []Rule `yaml:"ratios"`
	DefaultRatio string `yaml:"default_ratio"`

	// Implementations maps names to implementation tags. A file
	// that matches no rule is unclassifiable.
	Implementations []Rule `yaml:"implementations"`

	// Kinds maps names to a Kind. A timing file that matches no
	// rule has Kind Timing.
	Kinds []Rule `yaml:"kinds"`

	// TextSuffix selects text measurement files.
	TextSuffix string `yaml:"text_suffix"`

	// TimingSuffixes select timing JSON files.
	TimingSuffixes []string `yaml:"timing_suffixes"`
}

// Default holds the rules for the standard result directory layout.
var Default = Rules{
	Ratios: []Rule{
		{"1_1", "1_1"},
	},
	DefaultRatio: "2_1",
	Implementations: []Rule{
		{"arc", "Aarc"},
		{"epoch", "Epoch"},
		{"rust", "Hazp"},
		{"c", "Cpp"},
	},
	Kinds: []Rule{
		{"perf_mem", string(PerfCounter)},
		{"memusage", string(MemoryUsage)},
		{"energy", string(Energy)},
	},
	TextSuffix:     ".txt",
	TimingSuffixes: []string{"pc_1_1.json", "pc_2_1.json"},
}

// A Class is the result of classifying a file name.
type Class struct {
	Ratio          string
	Implementation string
	Kind           Kind
}

var (
	// ErrNoImplementation indicates a file name that matches no
	// implementation rule.
	ErrNoImplementation = errors.New("no implementation matches")
	// ErrNoKind indicates a text file name that matches no kind
	// rule.
	ErrNoKind = errors.New("no benchmark kind matches")
)

// lookup returns the tag of the first rule in table matching name.
func lookup(table []Rule, name string) (string, bool) {
	for _, r := range table {
		if strings.Contains(name, r.Match) {
			return r.Tag, true
		}
	}
	return "", false
}

func (r *Rules) isTiming(name string) bool {
	for _, sfx := range r.TimingSuffixes {
		if strings.HasSuffix(name, sfx) {
			return true
		}
	}
	return false
}

// Candidate reports whether name looks like a measurement file at
// all. Names that are not candidates are ignored without comment.
func (r *Rules) Candidate(name string) bool {
	return strings.HasSuffix(name, r.TextSuffix) || r.isTiming(name)
}

// Classify classifies the base file name name. It returns an error
// wrapping ErrNoImplementation or ErrNoKind if name cannot be
// classified.
func (r *Rules) Classify(name string) (Class, error) {
	var c Class
	impl, ok := lookup(r.Implementations, name)
	if !ok {
		return c, fmt.Errorf("%s: %w", name, ErrNoImplementation)
	}
	c.Implementation = impl

	c.Ratio = r.DefaultRatio
	if ratio, ok := lookup(r.Ratios, name); ok {
		c.Ratio = ratio
	}

	if kind, ok := lookup(r.Kinds, name); ok {
		c.Kind = Kind(kind)
	} else if r.isTiming(name) {
		c.Kind = Timing
	} else {
		return c, fmt.Errorf("%s: %w", name, ErrNoKind)
	}
	return c, nil
}

// Validate checks r for rules that can never work as intended.
func (r *Rules) Validate() error {
	tables := []struct {
		name  string
		rules []Rule
	}{
		{"ratios", r.Ratios},
		{"implementations", r.Implementations},
		{"kinds", r.Kinds},
	}
	for _, t := range tables {
		for i, rule := range t.rules {
			if rule.Match == "" {
				return fmt.Errorf("%s rule %d: empty match", t.name, i)
			}
			if rule.Tag == "" {
				return fmt.Errorf("%s rule %d (%q): empty tag", t.name, i, rule.Match)
			}
		}
	}
	for _, rule := range r.Kinds {
		if !Kind(rule.Tag).valid() {
			return fmt.Errorf("kinds rule %q: unknown kind %q", rule.Match, rule.Tag)
		}
	}
	if r.DefaultRatio == "" {
		return errors.New("empty default_ratio")
	}
	if r.TextSuffix == "" {
		return errors.New("empty text_suffix")
	}
	return nil
}
