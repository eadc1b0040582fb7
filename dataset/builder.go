// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"os"

	"github.com/queuebench/queuestat/classify"
	"github.com/queuebench/queuestat/measfmt"
	"github.com/queuebench/queuestat/metric"
)

// A Builder aggregates measurement files into a Dataset.
type Builder struct {
	// Policy resolves metrics contributed by more than one file
	// for the same ratio and implementation. The zero value is
	// metric.Overwrite: the file read last wins.
	Policy metric.MergePolicy

	data *Dataset
}

// NewBuilder returns a Builder merging under policy.
func NewBuilder(policy metric.MergePolicy) *Builder {
	return &Builder{Policy: policy}
}

// Add merges set into the dataset under the ratio and implementation
// of c.
func (b *Builder) Add(c classify.Class, set *metric.Set) error {
	if b.data == nil {
		b.data = New()
	}
	return b.data.Merge(Ratio(c.Ratio), Implementation(c.Implementation), set, b.Policy)
}

// AddFile reads the measurement file at path with the reader for
// c.Kind and adds its metrics.
func (b *Builder) AddFile(path string, c classify.Class) error {
	read, err := measfmt.Reader(c.Kind)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	set, err := read(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := b.Add(c, set); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// AddFiles adds every file produced by files.
func (b *Builder) AddFiles(files *Files) error {
	for files.Scan() {
		f := files.File()
		if err := b.AddFile(f.Path, f.Class); err != nil {
			return err
		}
	}
	return files.Err()
}

// Dataset returns the dataset built so far.
func (b *Builder) Dataset() *Dataset {
	if b.data == nil {
		b.data = New()
	}
	return b.data
}
