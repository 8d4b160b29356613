// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultmath

import (
	"errors"
	"fmt"

	"github.com/rtsearch/rteval/resultfmt"
)

// Optima supplies the optimal solution cost of instances.
// *optimum.Index implements Optima.
type Optima interface {
	Lookup(instance string) (float64, error)
}

// A Track selects the records whose worst quality ratio is reported.
// Param is compared by token.
type Track struct {
	Algorithm string
	Param     resultfmt.Param
}

// Worst is the maximum quality ratio among tracked records.
type Worst struct {
	Ratio    float64
	Instance string

	// Found is false if no record matched the Track.
	Found bool
}

// QualityRatioColumn is the column name of quality ratios.
const QualityRatioColumn = "gatRatio"

// QualityRatio computes solutionCost / optimal cost for every record
// of t, and the worst ratio among the records selected by track.
//
// Imputed records and records without a solution cost are carried as
// invalid rows. If the optimal cost of any other record's instance is
// unknown, QualityRatio returns the lookup error.
func QualityRatio(t *resultfmt.Table, opt Optima, track Track) (*DerivedTable, Worst, error) {
	dt := &DerivedTable{Column: QualityRatioColumn}
	var worst Worst
	for _, r := range t.Records() {
		cost, ok := r.Value(resultfmt.SolutionCost)
		if r.Imputed || !ok {
			dt.Rows = append(dt.Rows, DerivedRecord{Record: r})
			continue
		}
		best, err := opt.Lookup(r.Instance)
		if err != nil {
			return nil, Worst{}, err
		}
		ratio := cost / best
		dt.Rows = append(dt.Rows, DerivedRecord{Record: r, Value: ratio, Valid: true})

		if r.Algorithm == track.Algorithm && r.Param == track.Param {
			if !worst.Found || ratio > worst.Ratio {
				worst = Worst{Ratio: ratio, Instance: r.Instance, Found: true}
			}
		}
	}
	return dt, worst, nil
}

// Reasons a ratio to the baseline is undefined.
var (
	ErrNoBaseline   = errors.New("no baseline record")
	ErrNoValue      = errors.New("metric not recorded")
	ErrZeroBaseline = errors.New("baseline value is zero")
)

// A RatioError reports a record whose ratio to the baseline is
// undefined.
type RatioError struct {
	Algorithm string
	Instance  string
	Param     resultfmt.Param
	Err       error
}

func (e *RatioError) Error() string {
	return fmt.Sprintf("%s on %s at %s: %v", e.Algorithm, e.Instance, e.Param, e.Err)
}

func (e *RatioError) Unwrap() error {
	return e.Err
}

// RatioToBaseline computes, for every record r of t, r's value of
// metric m divided by the value of the baseline record with the same
// instance and parameter value. If the baseline has several such
// records, the first one is used.
//
// 0/0 is 1. A record with no baseline match, a missing value, or a
// zero baseline value under a non-zero value is invalid and adds a
// *RatioError to the table's warnings. Imputed records are invalid
// without a warning: their instances name no real problem.
func RatioToBaseline(t *resultfmt.Table, baseline string, m resultfmt.Metric) *DerivedTable {
	type key struct {
		instance string
		param    resultfmt.Param
	}
	base := make(map[key]resultfmt.Record)
	for _, r := range t.Records() {
		if r.Algorithm != baseline || r.Imputed {
			continue
		}
		k := key{r.Instance, r.Param}
		if _, ok := base[k]; !ok {
			base[k] = r
		}
	}

	dt := &DerivedTable{Column: m.String() + "Diff"}
	for _, r := range t.Records() {
		row := DerivedRecord{Record: r}
		if r.Imputed {
			dt.Rows = append(dt.Rows, row)
			continue
		}
		var err error
		b, ok := base[key{r.Instance, r.Param}]
		if !ok {
			err = ErrNoBaseline
		} else {
			row.Value, err = ratio(r, b, m)
		}
		if err != nil {
			dt.Warnings = append(dt.Warnings, &RatioError{r.Algorithm, r.Instance, r.Param, err})
		} else {
			row.Valid = true
		}
		dt.Rows = append(dt.Rows, row)
	}
	return dt
}

func ratio(r, b resultfmt.Record, m resultfmt.Metric) (float64, error) {
	num, ok1 := r.Value(m)
	den, ok2 := b.Value(m)
	if !ok1 || !ok2 {
		return 0, ErrNoValue
	}
	if den == 0 {
		if num == 0 {
			return 1, nil
		}
		return 0, ErrZeroBaseline
	}
	return num / den, nil
}
