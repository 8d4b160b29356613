// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultseries

import (
	"fmt"
	"io"

	"github.com/rtsearch/rteval/internal/texttab"
	"github.com/rtsearch/rteval/resultmath"
	"github.com/rtsearch/rteval/resultproc"
)

// CoverageText writes the coverage table of cov: one row per
// algorithm, one column per parameter value, each cell "n/total".
func CoverageText(w io.Writer, cov *resultproc.Coverage, total int) error {
	var tab texttab.Table
	tab.Row().Cell("Algorithm", texttab.Left)
	params := cov.Params()
	for _, p := range params {
		tab.Cell(p.String(), texttab.Right)
	}
	tab.Rule()
	for _, alg := range cov.Algorithms() {
		tab.Row().Cell(alg, texttab.Left)
		for _, n := range cov.Series(alg) {
			tab.Cell(fmt.Sprintf("%d/%d", n, total), texttab.Right)
		}
	}
	return tab.Format(w)
}

// SummaryText writes sums as a table with one row per group. Means
// are printed with four significant digits.
func SummaryText(w io.Writer, column string, sums []resultmath.GroupSummary) error {
	var tab texttab.Table
	tab.Row().Cell("Algorithm", texttab.Left).Cell("Param", texttab.Right).Cell("N", texttab.Right).
		Cell("mean "+column, texttab.Right).Cell("geomean "+column, texttab.Right)
	tab.Rule()
	for _, s := range sums {
		tab.Row().Cell(s.Algorithm, texttab.Left).
			Cell(s.Param.String(), texttab.Right).
			Cell(fmt.Sprint(s.N), texttab.Right).
			Cell(fmt.Sprintf("%.4g", s.Mean), texttab.Right).
			Cell(fmt.Sprintf("%.4g", s.GeoMean), texttab.Right)
	}
	return tab.Format(w)
}
