// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"io"
)

// newCSVWriter returns a csv.Writer terminating records with CRLF,
// which is what spreadsheet tools and the earlier report scripts
// produce.
func newCSVWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	return cw
}

// WriteCSV writes t to w in CSV form, header first.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := newCSVWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rec := append([]string{string(row.Implementation)}, row.Cells...)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes r to w in CSV form, header first.
func (r *Ranking) WriteCSV(w io.Writer) error {
	cw := newCSVWriter(w)
	if err := cw.Write(r.Header()); err != nil {
		return err
	}
	for _, row := range r.Rows {
		if err := cw.Write([]string{string(row.Implementation), row.Value}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
