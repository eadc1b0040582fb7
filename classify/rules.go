// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classify

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseRules reads a YAML rule file from r. Tables and settings the
// file leaves out keep their values from Default.
//
// A rule file looks like:
//
//	default_ratio: "2_1"
//	ratios:
//	  - {match: "1_1", tag: "1_1"}
//	implementations:
//	  - {match: arc, tag: Aarc}
//	  - {match: rust, tag: Hazp}
//	kinds:
//	  - {match: perf_mem, tag: perf-counter}
//	timing_suffixes: [pc_1_1.json, pc_2_1.json]
func ParseRules(r io.Reader) (*Rules, error) {
	var file Rules
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, err
	}

	rules := Default
	if file.Ratios != nil {
		rules.Ratios = file.Ratios
	}
	if file.DefaultRatio != "" {
		rules.DefaultRatio = file.DefaultRatio
	}
	if file.Implementations != nil {
		rules.Implementations = file.Implementations
	}
	if file.Kinds != nil {
		rules.Kinds = file.Kinds
	}
	if file.TextSuffix != "" {
		rules.TextSuffix = file.TextSuffix
	}
	if file.TimingSuffixes != nil {
		rules.TimingSuffixes = file.TimingSuffixes
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &rules, nil
}

// LoadRules reads the YAML rule file at path. See ParseRules.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rules, err := ParseRules(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}
