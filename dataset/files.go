// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/queuebench/queuestat/classify"
)

// A Files iterates over the classifiable measurement files in a
// directory.
//
// Files are visited in lexicographic order of their names. Because
// later files overwrite metrics contributed by earlier ones, this
// order is part of the result; it does not depend on the order the
// operating system lists the directory in.
type Files struct {
	// Dir is the directory to scan. Subdirectories are not
	// descended into.
	Dir string

	// Rules classifies file names. If nil, classify.Default is
	// used.
	Rules *classify.Rules

	// Warn, if non-nil, is called for every candidate file that
	// cannot be classified. Such files are skipped.
	Warn func(format string, args ...interface{})

	// names is the sequence of remaining file names, or nil if
	// this Files has not started yet.
	names []string

	cur File
	err error
}

// A File is a classified measurement file.
type File struct {
	Path  string
	Class classify.Class
}

// init lists Dir.
func (f *Files) init() {
	f.names = []string{}
	if f.Rules == nil {
		f.Rules = &classify.Default
	}
	entries, err := os.ReadDir(f.Dir)
	if err != nil {
		f.err = err
		return
	}
	for _, e := range entries {
		if e.IsDir() || !f.Rules.Candidate(e.Name()) {
			continue
		}
		f.names = append(f.names, e.Name())
	}
	// ReadDir sorts already, but the order is load-bearing.
	sort.Strings(f.names)
}

// Scan advances to the next classifiable file and reports whether
// there is one. After Scan returns false, Err reports any error that
// stopped the scan.
func (f *Files) Scan() bool {
	if f.names == nil {
		f.init()
	}
	if f.err != nil {
		return false
	}
	for len(f.names) > 0 {
		name := f.names[0]
		f.names = f.names[1:]
		c, err := f.Rules.Classify(name)
		if err != nil {
			if f.Warn != nil {
				f.Warn("skipping %v\n", err)
			}
			continue
		}
		f.cur = File{Path: filepath.Join(f.Dir, name), Class: c}
		return true
	}
	return false
}

// File returns the file found by the last call to Scan.
func (f *Files) File() File {
	return f.cur
}

// Err returns the error that stopped Scan, if any.
func (f *Files) Err() error {
	return f.err
}
