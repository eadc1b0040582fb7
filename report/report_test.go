// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/queuebench/queuestat/dataset"
	"github.com/queuebench/queuestat/metric"
)

type entry struct {
	impl dataset.Implementation
	m    metric.Metric
	v    *metric.Value
}

func buildDataset(t *testing.T, ratio dataset.Ratio, entries ...entry) *dataset.Dataset {
	t.Helper()
	d := dataset.New()
	for _, e := range entries {
		set := metric.NewSet()
		set.Put(e.m, e.v)
		if err := d.Merge(ratio, e.impl, set, metric.Overwrite); err != nil {
			t.Fatal(err)
		}
	}
	dataset.Normalize(d)
	return d
}

func sampleDataset(t *testing.T) *dataset.Dataset {
	return buildDataset(t, "1_1",
		entry{"Hazp", metric.Time, metric.Float(2)},
		entry{"Hazp", metric.CacheMisses, metric.Int(100)},
		entry{"Epoch", metric.Time, metric.Float(4)},
		entry{"Epoch", metric.CacheMisses, metric.Int(50)},
	)
}

func csvText(lines ...string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

func TestTables(t *testing.T) {
	r, err := Build(sampleDataset(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(r.Tables))
	}

	for _, test := range []struct {
		table *Table
		want  string
	}{
		{r.Tables[0], csvText("Implementation,time (s),cache-misses", "Hazp,2.0,100", "Epoch,4.0,50")},
		{r.Tables[1], csvText("Implementation,time (s),cache-misses", "Hazp,1.0,2.0", "Epoch,2.0,1.0")},
	} {
		var buf bytes.Buffer
		if err := test.table.WriteCSV(&buf); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(test.want, buf.String()); diff != "" {
			t.Errorf("%s: (-want +got)\n%s", TableName(test.table), diff)
		}
	}
}

func TestRankingOrder(t *testing.T) {
	// Implementations tied at the best value sort by name, ahead of
	// everything else.
	d := buildDataset(t, "2_1",
		entry{"zeta", metric.Energy, metric.Float(10)},
		entry{"alpha", metric.Energy, metric.Float(10)},
		entry{"beta", metric.Energy, metric.Float(25)},
	)
	r, err := Build(d, Options{Reference: "zeta", Metrics: []metric.Metric{metric.Energy}})
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Rankings) != 1 {
		t.Fatalf("got %d rankings, want 1", len(r.Rankings))
	}
	var buf bytes.Buffer
	if err := r.Rankings[0].WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	want := csvText("2:1,energy (J)", "alpha,1.0", "zeta,1.0", "beta,2.5")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestRankingBestFirst(t *testing.T) {
	// A zero raw value normalizes to 0.0, which sorts level with
	// the best implementation.
	d := buildDataset(t, "1_1",
		entry{"Hazp", metric.Faults, metric.Int(0)},
		entry{"Aarc", metric.Faults, metric.Int(8)},
		entry{"Cpp", metric.Faults, metric.Int(4)},
	)
	r, err := Build(d, Options{Metrics: []metric.Metric{metric.Faults}})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, row := range r.Rankings[0].Rows {
		got = append(got, string(row.Implementation)+"="+row.Value)
	}
	want := []string{"Cpp=1.0", "Hazp=0.0", "Aarc=2.0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestRankOnlyPresentMetrics(t *testing.T) {
	r, err := Build(sampleDataset(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, rk := range r.Rankings {
		got = append(got, RankingName(rk))
	}
	want := []string{"tables/1_1_cache-misses.csv", "tables/1_1_time (s).csv"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestMissingCell(t *testing.T) {
	d := buildDataset(t, "1_1",
		entry{"Hazp", metric.Time, metric.Float(2)},
		entry{"Hazp", metric.Energy, metric.Float(3)},
		entry{"Epoch", metric.Time, metric.Float(1)},
	)
	r, err := Build(d, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.Tables[0].WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	want := csvText("Implementation,time (s),energy (J)", "Hazp,2.0,3.0", "Epoch,1.0,")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	for _, rk := range r.Rankings {
		if rk.Metric == metric.Energy && len(rk.Rows) != 1 {
			t.Errorf("energy ranking has %d rows, want 1", len(rk.Rows))
		}
	}
}

func TestBuildErrors(t *testing.T) {
	// No reference implementation.
	d := buildDataset(t, "1_1", entry{"Epoch", metric.Time, metric.Float(1)})
	if _, err := Build(d, Options{}); !errors.Is(err, dataset.ErrNotFound) {
		t.Errorf("missing reference: got %v, want ErrNotFound", err)
	}

	// A metric the reference does not report.
	d = buildDataset(t, "1_1",
		entry{"Hazp", metric.Time, metric.Float(1)},
		entry{"Epoch", metric.Faults, metric.Int(1)},
	)
	if _, err := Build(d, Options{}); err == nil {
		t.Errorf("extra metric: want error")
	}
}

func TestDirSink(t *testing.T) {
	dir := t.TempDir()
	r, err := Build(sampleDataset(t), Options{HTML: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Write(DirSink{dir}); err != nil {
		t.Fatal(err)
	}

	var got []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		got = append(got, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(got)
	want := []string{
		"ratio_1_1_normalized.csv",
		"ratio_1_1_value.csv",
		"report.html",
		"tables/1_1_cache-misses.csv",
		"tables/1_1_time (s).csv",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("files (-want +got)\n%s", diff)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tables", "1_1_cache-misses.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if want := csvText("1:1,cache-misses", "Epoch,1.0", "Hazp,2.0"); string(data) != want {
		t.Errorf("cache-misses ranking = %q, want %q", data, want)
	}
}

func TestDirSinkFailedWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := DirSink{dir}.Create("x.csv")
	if err != nil {
		t.Fatal(err)
	}
	a := w.(*atomicFile)
	a.err = errors.New("disk full")
	if err := w.Close(); err == nil {
		t.Fatal("Close succeeded after failed write")
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ents) != 0 {
		t.Errorf("directory not empty after failed write: %v", ents)
	}
}

func TestWriteHTML(t *testing.T) {
	r, err := Build(sampleDataset(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteHTML(&buf, r.Rankings); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"<h2>Ratio 1:1</h2>",
		`<tr class="best"><td>Epoch</td><td class="value">1.0</td></tr>`,
		`<tr><td>Hazp</td><td class="value">2.0</td></tr>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML output missing %q", want)
		}
	}
	if strings.Count(out, "<h2>") != 1 {
		t.Errorf("want one ratio heading, got\n%s", out)
	}
}

func TestParseBucket(t *testing.T) {
	for _, test := range []struct {
		in, bucket, prefix string
		ok                 bool
	}{
		{"results", "results", "", true},
		{"gs://results/run/7/", "results", "run/7", true},
		{"/x", "", "", false},
	} {
		b, p, err := ParseBucket(test.in)
		if (err == nil) != test.ok || b != test.bucket || p != test.prefix {
			t.Errorf("ParseBucket(%q) = %q, %q, %v", test.in, b, p, err)
		}
	}
}
