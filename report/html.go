// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"
)

const htmlText = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Queue benchmark rankings</title>
<style>
body { font-family: sans-serif; }
table { border-collapse: collapse; margin: 1em 2em 2em 0; display: inline-table; }
th, td { padding: 0.2em 0.8em; border-bottom: 1px solid #ddd; text-align: left; }
td.value { text-align: right; font-family: monospace; }
tr.best td { font-weight: bold; }
</style>
</head>
<body>
{{range .}}
<h2>{{.Title}}</h2>
{{range .Rankings}}
<table>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr{{if .Best}} class="best"{{end}}><td>{{.Implementation}}</td><td class="value">{{.Value}}</td></tr>
{{end}}
</table>
{{end}}
{{end}}
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlText))

type htmlRatio struct {
	Title    string
	Rankings []htmlRanking
}

type htmlRanking struct {
	Header []string
	Rows   []htmlRow
}

type htmlRow struct {
	Implementation string
	Value          string
	Best           bool
}

// WriteHTML writes an HTML page showing rankings, grouped by ratio in
// the order they first appear.
func WriteHTML(w io.Writer, rankings []*Ranking) error {
	var groups []htmlRatio
	for _, r := range rankings {
		title := "Ratio " + r.Header()[0]
		if len(groups) == 0 || groups[len(groups)-1].Title != title {
			groups = append(groups, htmlRatio{Title: title})
		}
		g := &groups[len(groups)-1]
		hr := htmlRanking{Header: []string{"Implementation", r.Header()[1]}}
		for _, row := range r.Rows {
			hr.Rows = append(hr.Rows, htmlRow{
				Implementation: string(row.Implementation),
				Value:          row.Value,
				Best:           row.Value == Best,
			})
		}
		g.Rankings = append(g.Rankings, hr)
	}
	return htmlTemplate.Execute(w, groups)
}
