// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measfmt

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// The functions below edit hyperfine exports as raw JSON, so fields
// this package does not model survive unchanged.

var indent = &pretty.Options{Indent: "    "}

// SetParameter sets the parameters of the first result in the
// hyperfine export data to the single parameter name = value, and
// returns the edited export.
//
// hyperfine records no parameters for a benchmark run without
// --parameter-scan. This lets such runs be plotted and read as if they
// were one step of a scan.
func SetParameter(data []byte, name string, value int) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	if !gjson.GetBytes(data, "results.0").Exists() {
		return nil, fmt.Errorf("no results")
	}
	out, err := sjson.SetBytes(data, "results.0.parameters", map[string]int{name: value})
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(out, indent), nil
}

// MergeResults concatenates the results of the hyperfine exports in
// docs, in order, into a single export.
func MergeResults(docs ...[]byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"results":[`)
	n := 0
	for i, data := range docs {
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("document %d: invalid JSON", i)
		}
		results := gjson.GetBytes(data, "results")
		if !results.IsArray() {
			return nil, fmt.Errorf("document %d: no results array", i)
		}
		for _, r := range results.Array() {
			if n > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(r.Raw)
			n++
		}
	}
	buf.WriteString(`]}`)
	return pretty.PrettyOptions(buf.Bytes(), indent), nil
}
