// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classify

import (
	"errors"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	for _, test := range []struct {
		name string
		want Class
		err  error
	}{
		{"arc_perf_mem_1_1.txt", Class{"1_1", "Aarc", PerfCounter}, nil},
		{"epoch_energy_2_1.txt", Class{"2_1", "Epoch", Energy}, nil},
		{"rust_memusage.txt", Class{"2_1", "Hazp", MemoryUsage}, nil},
		{"lprq_c_pc_1_1.json", Class{"1_1", "Cpp", Timing}, nil},
		// "arc" is checked before "c".
		{"arc_pc_2_1.json", Class{"2_1", "Aarc", Timing}, nil},
		// Kind rules apply to JSON names too.
		{"rust_energy_pc_1_1.json", Class{"1_1", "Hazp", Energy}, nil},
		{"msq_hazp_notes.txt", Class{}, ErrNoImplementation},
		{"rust_notes.txt", Class{}, ErrNoKind},
	} {
		got, err := Default.Classify(test.name)
		if test.err != nil {
			if !errors.Is(err, test.err) {
				t.Errorf("Classify(%q) error = %v, want %v", test.name, err, test.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Classify(%q): %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("Classify(%q) = %+v, want %+v", test.name, got, test.want)
		}
	}
}

func TestCandidate(t *testing.T) {
	for _, test := range []struct {
		name string
		want bool
	}{
		{"arc_perf_mem_1_1.txt", true},
		{"lprq_arc_pc_1_1.json", true},
		{"lprq_arc_pc_2_1.json", true},
		{"lprq_arc_sym.json", false},
		{"ratio_1_1_value.csv", false},
		{"tables", false},
	} {
		if got := Default.Candidate(test.name); got != test.want {
			t.Errorf("Candidate(%q) = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestLoadRules(t *testing.T) {
	rules, err := LoadRules("testdata/rules.yaml")
	if err != nil {
		t.Fatal(err)
	}
	got, err := rules.Classify("leak_perf_mem_3_1.txt")
	if err != nil {
		t.Fatal(err)
	}
	if want := (Class{"3_1", "Leak", PerfCounter}); got != want {
		t.Errorf("Classify = %+v, want %+v", got, want)
	}
	if !rules.Candidate("lprq_rust_pc_3_1.json") {
		t.Errorf("pc_3_1.json is not a candidate")
	}
	// Tables absent from the file keep their defaults.
	if rules.DefaultRatio != Default.DefaultRatio || len(rules.Kinds) != len(Default.Kinds) {
		t.Errorf("defaults not kept: %+v", rules)
	}
}

func TestParseRulesErrors(t *testing.T) {
	for _, test := range []struct {
		yaml string
		want string
	}{
		{"implementations: [{match: '', tag: X}]", "empty match"},
		{"kinds: [{match: perf, tag: flamegraph}]", "unknown kind"},
		{"ratio: 1_1", "not found"},
	} {
		_, err := ParseRules(strings.NewReader(test.yaml))
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("ParseRules(%q) error = %v, want containing %q", test.yaml, err, test.want)
		}
	}
}

func TestParseRulesEmpty(t *testing.T) {
	rules, err := ParseRules(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(rules.Implementations) != len(Default.Implementations) {
		t.Errorf("empty rule file lost defaults")
	}
}
