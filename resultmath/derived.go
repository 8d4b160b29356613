// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultmath computes derived metrics over result tables:
// solution quality relative to the known optimum, per-record ratios to
// a baseline algorithm, penalized imputation of unsolved runs, and
// per-group summary statistics.
//
// Hard failures, such as a missing optimal cost, are returned as
// errors. Soft failures, such as a record with no baseline match, make
// the derived value invalid and are reported in DerivedTable.Warnings.
package resultmath

import (
	"github.com/rtsearch/rteval/resultfmt"
)

// A DerivedRecord is a Record with one derived value.
type DerivedRecord struct {
	resultfmt.Record

	// Value is the derived value. It is meaningful only if Valid.
	Value float64
	Valid bool
}

// A DerivedTable is a table of records, each with a value for one
// derived column.
type DerivedTable struct {
	// Column names the derived value, e.g. "gatRatio".
	Column string

	Rows []DerivedRecord

	// Warnings lists the soft failures encountered while deriving
	// the column. Each invalid row that is not explained by the
	// row itself (such as an imputed record) has a warning.
	Warnings []error
}

// Valid returns the rows of dt with a valid value.
func (dt *DerivedTable) Valid() []DerivedRecord {
	var out []DerivedRecord
	for _, r := range dt.Rows {
		if r.Valid {
			out = append(out, r)
		}
	}
	return out
}

// MetricTable lifts metric m of every record in t into a derived
// column named after m. Records without m are invalid, silently.
func MetricTable(t *resultfmt.Table, m resultfmt.Metric) *DerivedTable {
	dt := &DerivedTable{Column: m.String()}
	for _, r := range t.Records() {
		v, ok := r.Value(m)
		dt.Rows = append(dt.Rows, DerivedRecord{Record: r, Value: v, Valid: ok})
	}
	return dt
}
