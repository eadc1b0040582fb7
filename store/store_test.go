// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/queuebench/queuestat/dataset"
	"github.com/queuebench/queuestat/metric"
	. "github.com/queuebench/queuestat/store"
	"github.com/queuebench/queuestat/store/storetest"
)

func sample(t *testing.T) *dataset.Dataset {
	t.Helper()
	d := dataset.New()
	add := func(ratio dataset.Ratio, impl dataset.Implementation, m metric.Metric, v *metric.Value) {
		set := metric.NewSet()
		set.Put(m, v)
		if err := d.Merge(ratio, impl, set, metric.Overwrite); err != nil {
			t.Fatal(err)
		}
	}
	add("2_1", "Hazp", metric.CacheMisses, metric.Int(300))
	add("2_1", "Hazp", metric.Energy, metric.Float(12.5))
	add("2_1", "Epoch", metric.CacheMisses, metric.Int(200))
	add("2_1", "Epoch", metric.Energy, metric.Float(0))
	add("1_1", "Hazp", metric.Time, metric.Float(1.25))
	dataset.Normalize(d)
	return d
}

type row struct {
	Ratio  dataset.Ratio
	Impl   dataset.Implementation
	Metric metric.Metric
	Value  metric.Value
}

func flatten(d *dataset.Dataset) []row {
	var rows []row
	d.Each(func(ratio dataset.Ratio, impl dataset.Implementation, m metric.Metric, v *metric.Value) error {
		rows = append(rows, row{ratio, impl, m, *v})
		return nil
	})
	return rows
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)

	d := sample(t)
	id, err := db.InsertDataset(ctx, "nightly", d)
	if err != nil {
		t.Fatalf("InsertDataset: %v", err)
	}
	got, err := db.Measurements(ctx, id)
	if err != nil {
		t.Fatalf("Measurements: %v", err)
	}
	if diff := cmp.Diff(flatten(d), flatten(got)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if diff := cmp.Diff(d.Ratios(), got.Ratios()); diff != "" {
		t.Errorf("ratio order (-want +got)\n%s", diff)
	}
}

func TestRuns(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)

	defer SetNow(time.Time{})
	var ids []int64
	for i, label := range []string{"first", "second"} {
		SetNow(time.Unix(int64(1000*(i+1)), 0))
		id, err := db.InsertDataset(ctx, label, sample(t))
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}
	if ids[0] == ids[1] {
		t.Fatalf("runs share ID %d", ids[0])
	}

	n, err := db.CountRuns()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("CountRuns = %d, want 2", n)
	}

	runs, err := db.Runs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []Run{
		{ID: ids[1], Label: "second", Created: time.Unix(2000, 0)},
		{ID: ids[0], Label: "first", Created: time.Unix(1000, 0)},
	}
	if diff := cmp.Diff(want, runs); diff != "" {
		t.Errorf("Runs (-want +got)\n%s", diff)
	}
}

func TestMissingRun(t *testing.T) {
	db := storetest.NewDB(t)
	if _, err := db.Measurements(context.Background(), 42); !errors.Is(err, dataset.ErrNotFound) {
		t.Errorf("Measurements(42) = %v, want ErrNotFound", err)
	}
}

func TestEmptyDataset(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)
	id, err := db.InsertDataset(ctx, "", dataset.New())
	if err != nil {
		t.Fatal(err)
	}
	d, err := db.Measurements(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Ratios()) != 0 {
		t.Errorf("got ratios %v, want none", d.Ratios())
	}
}
