// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Queuestat turns a directory of raw queue benchmark measurements into
// comparison tables.
//
// Usage:
//
//	queuestat [flags] directory
//
// The directory holds the output of one benchmark campaign: perf stat
// counter dumps, energy logs, glibc memusage summaries, and hyperfine
// JSON exports. Each file name tells which implementation and
// producer:consumer ratio it measures and what kind of measurement it
// holds. By default,
//
//   - a name containing "arc", "epoch", "rust", or "c" (checked in that
//     order) measures Aarc, Epoch, Hazp, or Cpp, respectively;
//   - a name containing "1_1" is measured at ratio 1:1, anything else at
//     2:1;
//   - a ".txt" file containing "perf_mem", "memusage", or "energy" is a
//     perf counter dump, memusage summary, or energy log;
//   - a name ending in "pc_1_1.json" or "pc_2_1.json" is a hyperfine
//     thread scan.
//
// The -rules flag replaces these rules with a YAML file. Files whose
// names match no rule are skipped with a warning.
//
// Metrics are grouped by ratio and implementation. If two files report
// the same metric for the same implementation and ratio, the file
// whose name sorts last wins, unless -dupes=reject is given.
// Each metric is then normalized to the best implementation at the
// same ratio: the lowest nonzero value becomes 1.0 and the others are
// multiples of it, rounded to two decimal places.
//
// Queuestat prints the dataset, then writes to the -o directory:
//
//	ratio_<r>_value.csv       raw values, one row per implementation
//	ratio_<r>_normalized.csv  normalized values
//	tables/<r>_<metric>.csv   implementations ranked by one metric
//
// The columns of the first two are the metrics of the -ref
// implementation, which must be present at every ratio.
//
// # Options
//
// The -html flag also writes report.html, showing every ranking.
//
// The -charts flag draws each ranking as a bar chart into the given
// directory.
//
// The -db and -dsn flags archive the normalized dataset in a SQL
// database (sqlite3 or mysql; a Cloud SQL instance can be reached with
// the mysql driver through the "cloudsql" network).
//
// The -gcs flag also uploads the tables to a Google Cloud Storage
// bucket, using application default credentials or the service
// account key given by -gcs-credentials.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"

	"github.com/queuebench/queuestat/chart"
	"github.com/queuebench/queuestat/classify"
	"github.com/queuebench/queuestat/dataset"
	"github.com/queuebench/queuestat/metric"
	"github.com/queuebench/queuestat/report"
	"github.com/queuebench/queuestat/store"
	_ "github.com/queuebench/queuestat/store/sqlite3"
)

func main() {
	log.SetPrefix("queuestat: ")
	log.SetFlags(0)
	if err := queuestat(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			log.Print(err)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("expected exactly one directory")

func queuestat(stdout, stderr io.Writer, args []string) error {
	flags := flag.NewFlagSet("queuestat", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: queuestat [flags] directory\n")
		flags.PrintDefaults()
	}
	flagRules := flags.String("rules", "", "classify file names with the rules in YAML `file`")
	flagRef := flags.String("ref", string(report.DefaultReference), "take table columns from `implementation`")
	flagDupes := flags.String("dupes", "overwrite", "resolve a metric reported twice by `policy`: overwrite or reject")
	flagOut := flags.String("o", ".", "write tables to `dir`")
	flagHTML := flags.Bool("html", false, "also write the rankings as an HTML page")
	flagCharts := flags.String("charts", "", "draw a bar chart of each ranking into `dir`")
	flagDB := flags.String("db", "", "archive the dataset using database `driver` (sqlite3 or mysql)")
	flagDSN := flags.String("dsn", "", "database `source` for -db")
	flagLabel := flags.String("label", "", "label the archived run with `name` (default: directory name)")
	flagGCS := flags.String("gcs", "", "also upload tables to Cloud Storage `bucket[/prefix]`")
	flagCreds := flags.String("gcs-credentials", "", "authenticate to Cloud Storage with service account key `file`")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return errUsage
	}
	dir := flags.Arg(0)

	policy, err := metric.ParseMergePolicy(*flagDupes)
	if err != nil {
		return err
	}
	rules := &classify.Default
	if *flagRules != "" {
		if rules, err = classify.LoadRules(*flagRules); err != nil {
			return err
		}
	}
	if (*flagDB == "") != (*flagDSN == "") {
		return fmt.Errorf("-db and -dsn must be given together")
	}

	warn := func(format string, args ...interface{}) {
		fmt.Fprintf(stderr, "queuestat: %s", fmt.Sprintf(format, args...))
	}

	// Aggregate and normalize.
	b := dataset.NewBuilder(policy)
	files := &dataset.Files{Dir: dir, Rules: rules, Warn: warn}
	if err := b.AddFiles(files); err != nil {
		return err
	}
	d := b.Dataset()
	if len(d.Ratios()) == 0 {
		warn("no measurement files in %s\n", dir)
	}
	dataset.Normalize(d)

	// Build everything before writing anything, so a bad
	// dataset leaves no partial output.
	rep, err := report.Build(d, report.Options{
		Reference: dataset.Implementation(*flagRef),
		HTML:      *flagHTML,
	})
	if err != nil {
		return err
	}

	if err := dump(stdout, d); err != nil {
		return err
	}

	if err := rep.Write(report.DirSink{Dir: *flagOut}); err != nil {
		return err
	}
	if *flagCharts != "" {
		if err := writeCharts(report.DirSink{Dir: *flagCharts}, rep); err != nil {
			return err
		}
	}

	ctx := context.Background()
	if *flagDB != "" {
		label := *flagLabel
		if label == "" {
			label = filepath.Base(filepath.Clean(dir))
		}
		if err := archive(ctx, *flagDB, *flagDSN, label, d); err != nil {
			return err
		}
	}
	if *flagGCS != "" {
		bucket, prefix, err := report.ParseBucket(*flagGCS)
		if err != nil {
			return err
		}
		sink, err := report.NewGCSSink(ctx, bucket, prefix, *flagCreds)
		if err != nil {
			return err
		}
		defer sink.Close()
		if err := rep.Write(sink); err != nil {
			return fmt.Errorf("uploading to %s: %w", *flagGCS, err)
		}
	}
	return nil
}

// writeCharts draws every ranking of rep to s.
func writeCharts(s report.Sink, rep *report.Report) error {
	for _, r := range rep.Rankings {
		p, err := chart.Ranking(r)
		if err != nil {
			return err
		}
		name := path.Base(report.RankingName(r))
		name = name[:len(name)-len(path.Ext(name))] + ".png"
		var buf bytes.Buffer
		if err := chart.Write(&buf, p, "png"); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := report.WriteFile(s, name, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// archive stores d in the database as a new run.
func archive(ctx context.Context, driver, dsn, label string, d *dataset.Dataset) error {
	db, err := store.OpenSQL(driver, dsn)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	if _, err := db.InsertDataset(ctx, label, d); err != nil {
		return fmt.Errorf("archiving dataset: %w", err)
	}
	return nil
}
