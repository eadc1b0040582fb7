// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/queuebench/queuestat/measfmt"
)

func TestHfmerge(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []int{10, 2, 1} {
		js := fmt.Sprintf(`{"results": [{"command": "run %d", "mean": %d}]}`, n, n)
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("result%d.json", n)), []byte(js), 0o666); err != nil {
			t.Fatal(err)
		}
	}
	out := filepath.Join(dir, "merged.json")
	if err := hfmerge(io.Discard, []string{filepath.Join(dir, "result*.json"), out}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := measfmt.DecodeDocument(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, r := range doc.Results {
		got = append(got, r.Command)
	}
	if diff := cmp.Diff([]string{"run 1", "run 2", "run 10"}, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestResultIndex(t *testing.T) {
	for _, test := range []struct {
		name string
		want int
		ok   bool
	}{
		{"result3.json", 3, true},
		{"/tmp/results/ratio_result12.json", 12, true},
		{"result.json", 0, false},
		{"data.json", 0, false},
	} {
		got, err := resultIndex(test.name)
		if (err == nil) != test.ok || got != test.want {
			t.Errorf("resultIndex(%q) = %d, %v", test.name, got, err)
		}
	}
}

func TestHfmergeErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "data.json"), []byte(`{"results": []}`), 0o666); err != nil {
		t.Fatal(err)
	}
	for _, args := range [][]string{
		{},
		{filepath.Join(dir, "*.json")},
		{filepath.Join(dir, "*.json"), filepath.Join(dir, "out.json")},
	} {
		if err := hfmerge(io.Discard, args); err == nil {
			t.Errorf("hfmerge %v: want error", args)
		}
	}
}
