// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultseries

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rtsearch/rteval/resultfmt"
	"github.com/rtsearch/rteval/resultmath"
)

// WriteCSV writes one row per row of dt: the algorithm, instance,
// parameter value, whether the record was imputed, the derived value,
// and every raw metric. Invalid values and absent metrics are empty.
func WriteCSV(w io.Writer, dt *resultmath.DerivedTable) error {
	hdr := []string{"algorithm", "instance", "param", "imputed", dt.Column}
	for _, m := range resultfmt.Metrics() {
		hdr = append(hdr, m.String())
	}
	tab := [][]string{hdr}
	for _, r := range dt.Rows {
		row := []string{r.Algorithm, r.Instance, r.Param.String(), strconv.FormatBool(r.Imputed), ""}
		if r.Valid {
			row[4] = strof(r.Value)
		}
		for _, m := range resultfmt.Metrics() {
			if v, ok := r.Record.Value(m); ok {
				row = append(row, strof(v))
			} else {
				row = append(row, "")
			}
		}
		tab = append(tab, row)
	}
	return writeAll(w, tab)
}

// WriteSummaryCSV writes one row per group summary. column names the
// summarized value.
func WriteSummaryCSV(w io.Writer, column string, sums []resultmath.GroupSummary) error {
	tab := [][]string{{"algorithm", "param", "n", "mean " + column, "geomean " + column}}
	for _, s := range sums {
		tab = append(tab, []string{s.Algorithm, s.Param.String(), strconv.Itoa(s.N), strof(s.Mean), strof(s.GeoMean)})
	}
	return writeAll(w, tab)
}

func writeAll(w io.Writer, tab [][]string) error {
	csvw := csv.NewWriter(w)
	if err := csvw.WriteAll(tab); err != nil {
		return err
	}
	return csvw.Error()
}

func strof(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
