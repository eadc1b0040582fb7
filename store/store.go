// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store archives normalized datasets in a SQL database, so
// that results from different benchmark runs can be kept and compared
// later.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/queuebench/queuestat/dataset"
	"github.com/queuebench/queuestat/metric"
)

// DB is a database of archived runs. It's safe for concurrent use by
// multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun         *sql.Stmt
	insertMeasurement *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
//
// Created is stored as Unix seconds so that no driver needs to parse
// timestamps.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Label VARCHAR(255),
	Created BIGINT
);
CREATE TABLE IF NOT EXISTS Measurements (
	RunID BIGINT UNSIGNED,
	Seq BIGINT UNSIGNED,
	Ratio VARCHAR(64),
	Implementation VARCHAR(64),
	Metric VARCHAR(64),
	Value DOUBLE,
	Normalized DOUBLE,
	IsInteger BOOLEAN,
	PRIMARY KEY (RunID, Seq),
{{if not .sqlite3}}
	Index (Ratio, Metric),
{{end}}
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS MeasurementsRatioMetric ON Measurements(Ratio, Metric);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Label, Created) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertMeasurement, err = db.sql.Prepare("INSERT INTO Measurements(RunID, Seq, Ratio, Implementation, Metric, Value, Normalized, IsInteger) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is time.Now, replaced in tests.
var now = time.Now

// A Run is one archived dataset.
type Run struct {
	ID      int64
	Label   string
	Created time.Time
}

// InsertDataset archives every measurement in d as a new run labeled
// label and returns the run's ID. Either the whole dataset is stored
// or, on error, none of it.
func (db *DB) InsertDataset(ctx context.Context, label string, d *dataset.Dataset) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, label, now().Unix())
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	ins := tx.StmtContext(ctx, db.insertMeasurement)
	var seq int64
	err = d.Each(func(ratio dataset.Ratio, impl dataset.Implementation, m metric.Metric, v *metric.Value) error {
		_, err := ins.ExecContext(ctx, id, seq, string(ratio), string(impl), string(m), v.Value, v.Normalized, v.Integer)
		seq++
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("inserting measurements: %w", err)
	}
	return id, nil
}

// Measurements returns the dataset archived as run id, in the order it
// was stored. It returns an error wrapping dataset.ErrNotFound if there
// is no such run.
func (db *DB) Measurements(ctx context.Context, id int64) (*dataset.Dataset, error) {
	var n int
	if err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs WHERE RunID = ?", id).Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("run %d: %w", id, dataset.ErrNotFound)
	}

	rows, err := db.sql.QueryContext(ctx, "SELECT Ratio, Implementation, Metric, Value, Normalized, IsInteger FROM Measurements WHERE RunID = ? ORDER BY Seq", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d := dataset.New()
	for rows.Next() {
		var ratio, impl, m string
		v := new(metric.Value)
		if err := rows.Scan(&ratio, &impl, &m, &v.Value, &v.Normalized, &v.Integer); err != nil {
			return nil, err
		}
		set := metric.NewSet()
		set.Put(metric.Metric(m), v)
		if err := d.Merge(dataset.Ratio(ratio), dataset.Implementation(impl), set, metric.Overwrite); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// Runs returns every archived run, most recent first.
func (db *DB) Runs(ctx context.Context) ([]Run, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT RunID, Label, Created FROM Runs ORDER BY RunID DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		var r Run
		var created int64
		if err := rows.Scan(&r.ID, &r.Label, &created); err != nil {
			return nil, err
		}
		r.Created = time.Unix(created, 0)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// CountRuns returns the number of archived runs.
func (db *DB) CountRuns() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertMeasurement.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
