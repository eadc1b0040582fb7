// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	var tab Table
	check := func(want string) {
		t.Helper()
		var got strings.Builder
		if err := tab.Format(&got); err != nil {
			t.Fatal(err)
		}
		if want != got.String() {
			t.Errorf("want:\n%sgot:\n%s", want, got.String())
		}
		tab = Table{}
	}

	tab.Row().Cell("a").Cell("b").Cell("c")
	tab.Row().Cell("d").Cell("e").Cell("f")
	check("a b c\nd e f\n")

	// Padding, with no trailing spaces.
	tab.Row().Cell("a").Cell("b").Cell("c")
	tab.Row().Cell("long").Cell("e").Cell("long")
	check("a    b c\nlong e long\n")

	// Alignment.
	tab.AlignRight(1)
	tab.Row().Cell("name").Cell("value")
	tab.Row().Cell("x").Cell("1")
	tab.Row().Cell("y").Cell("22", Left)
	check("name value\nx        1\ny    22\n")

	// Ragged rows and runes.
	tab.Row().Cell("☃").Cell("b")
	tab.Row().Cell("cc")
	check("☃  b\ncc\n")

	// Empty table.
	check("")
}
