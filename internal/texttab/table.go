// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out aligned plain-text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so callers can chain them to build a
// row at once.
type Table struct {
	rows  [][]cell
	right []bool // per column
}

type cell struct {
	value string
	right bool
}

// A CellOption changes how a cell is laid out.
type CellOption func(c *cell)

var (
	Left  CellOption = func(c *cell) { c.right = false }
	Right CellOption = func(c *cell) { c.right = true }
)

// Row starts a new row in t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell to the end of the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	col := len(t.rows[len(t.rows)-1])
	c := cell{value: value, right: col < len(t.right) && t.right[col]}
	for _, o := range opts {
		o(&c)
	}
	t.rows[len(t.rows)-1] = append(t.rows[len(t.rows)-1], c)
	return t
}

// AlignRight sets the default alignment of column col to the right.
// Columns are numbered starting at 0.
func (t *Table) AlignRight(col int) {
	for len(t.right) <= col {
		t.right = append(t.right, false)
	}
	t.right[col] = true
}

// Format lays out t with one space between columns and writes it to w.
// Lines have no trailing spaces.
func (t *Table) Format(w io.Writer) error {
	var ws []int
	for _, row := range t.rows {
		for i, c := range row {
			if i >= len(ws) {
				ws = append(ws, 0)
			}
			if n := utf8.RuneCountInString(c.value); n > ws[i] {
				ws[i] = n
			}
		}
	}

	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		for i, c := range row {
			if i > 0 {
				line.WriteByte(' ')
			}
			pad := ws[i] - utf8.RuneCountInString(c.value)
			if c.right {
				fmt.Fprintf(&line, "%*s%s", pad, "", c.value)
			} else {
				fmt.Fprintf(&line, "%s%*s", c.value, pad, "")
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
