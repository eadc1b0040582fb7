// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/queuebench/queuestat/measfmt"
)

func TestHfparams(t *testing.T) {
	file := filepath.Join(t.TempDir(), "rust_pc_2_1.json")
	if err := os.WriteFile(file, []byte(`{"results": [{"mean": 0.5, "times": [0.5]}]}`), 0o666); err != nil {
		t.Fatal(err)
	}
	if err := hfparams(io.Discard, []string{file, "2", "1"}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := measfmt.DecodeDocument(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Results[0].Parameters[measfmt.ThreadsParam]; got != "3" {
		t.Errorf("Threads = %q, want 3", got)
	}

	if err := hfparams(io.Discard, []string{"-name", "Congestion", file, "4", "4"}); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(file)
	doc, err = measfmt.DecodeDocument(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Results[0].Parameters; len(got) != 1 || got["Congestion"] != "8" {
		t.Errorf("parameters = %v, want Congestion 8", got)
	}
}

func TestHfparamsErrors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"results": []}`), 0o666); err != nil {
		t.Fatal(err)
	}
	for _, args := range [][]string{
		{},
		{bad, "1"},
		{bad, "1", "x"},
		{bad, "1", "1"},
		{filepath.Join(t.TempDir(), "missing.json"), "1", "1"},
	} {
		if err := hfparams(io.Discard, args); err == nil {
			t.Errorf("hfparams %v: want error", args)
		}
	}
}
