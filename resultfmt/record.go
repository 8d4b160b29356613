// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultfmt reads the per-run result files of the real-time
// search harness into immutable tables of Records.
//
// Each result file holds one JSON object describing a single run of
// one algorithm, at one parameter value, on one problem instance. The
// parameter value is not read from the payload: it is the first
// numeric token of the file name.
//
// A Loader walks one directory per algorithm, decodes every admitted
// file and collects the Records into a Table. Loading is fail-fast: a
// malformed payload aborts the whole load with a *ParseError.
package resultfmt

import (
	"fmt"
	"sort"
	"strings"
)

// A Metric identifies one measured quantity of a run.
type Metric int

const (
	NodeGenerated Metric = iota
	NodeExpanded
	GATNodeExpanded // nodes expanded under the alternate accounting
	CPUTime
	SolutionLength
	SolutionCost

	numMetrics
)

var metricNames = [numMetrics]string{
	NodeGenerated:   "nodeGen",
	NodeExpanded:    "nodeExp",
	GATNodeExpanded: "gatNodeExpanded",
	CPUTime:         "cpu",
	SolutionLength:  "solutionLength",
	SolutionCost:    "solutionCost",
}

// Metrics returns all metrics in column order.
func Metrics() []Metric {
	ms := make([]Metric, numMetrics)
	for i := range ms {
		ms[i] = Metric(i)
	}
	return ms
}

// String returns the column name of m.
func (m Metric) String() string {
	if m < 0 || m >= numMetrics {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricNames[m]
}

// ParseMetric returns the metric with the given column name.
func ParseMetric(name string) (Metric, error) {
	for m, n := range metricNames {
		if n == name {
			return Metric(m), nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q (want one of %s)", name, strings.Join(metricNames[:], ", "))
}

// A MetricSet is a set of Metrics.
type MetricSet uint8

// AllMetrics contains every Metric.
const AllMetrics MetricSet = 1<<numMetrics - 1

// Has reports whether m is in s.
func (s MetricSet) Has(m Metric) bool {
	return s&(1<<m) != 0
}

// With returns s plus m.
func (s MetricSet) With(m Metric) MetricSet {
	return s | 1<<m
}

// A Record is one observed outcome of a run. Records are values; the
// methods that change a metric return a modified copy.
type Record struct {
	Algorithm string
	Instance  string
	Param     Param

	// Imputed marks a synthetic record standing in for a run that
	// produced no solution. Its Instance carries a distinguishing
	// prefix.
	Imputed bool

	// File is the path the record was decoded from, or "" for
	// synthetic records.
	File string

	values  [numMetrics]float64
	present MetricSet
}

// Value returns the value of metric m and whether r has it.
func (r Record) Value(m Metric) (float64, bool) {
	if !r.present.Has(m) {
		return 0, false
	}
	return r.values[m], true
}

// Has reports whether r has a value for m.
func (r Record) Has(m Metric) bool {
	return r.present.Has(m)
}

// Present returns the set of metrics r has.
func (r Record) Present() MetricSet {
	return r.present
}

// With returns a copy of r with metric m set to v.
func (r Record) With(m Metric, v float64) Record {
	r.values[m] = v
	r.present = r.present.With(m)
	return r
}

// A Table is an immutable collection of Records. Order carries no
// meaning; operations that derive tables build new ones.
type Table struct {
	recs []Record
}

// NewTable returns a Table holding a copy of recs.
func NewTable(recs []Record) *Table {
	return &Table{append([]Record(nil), recs...)}
}

// Len returns the number of records in t.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.recs)
}

// At returns the i'th record of t.
func (t *Table) At(i int) Record {
	return t.recs[i]
}

// Records returns a copy of the records of t.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	return append([]Record(nil), t.recs...)
}

// Filter returns a new Table with the records of t for which keep
// returns true.
func (t *Table) Filter(keep func(Record) bool) *Table {
	var out []Record
	for _, r := range t.Records() {
		if keep(r) {
			out = append(out, r)
		}
	}
	return &Table{out}
}

// Genuine returns the records of t that were not imputed.
func (t *Table) Genuine() *Table {
	return t.Filter(func(r Record) bool { return !r.Imputed })
}

// Concat returns a new Table with the records of all ts in order.
func Concat(ts ...*Table) *Table {
	var out []Record
	for _, t := range ts {
		if t != nil {
			out = append(out, t.recs...)
		}
	}
	return &Table{out}
}

// Algorithms returns the distinct algorithms of t in order of first
// appearance.
func (t *Table) Algorithms() []string {
	return distinct(t, func(r Record) string { return r.Algorithm })
}

// Instances returns the distinct instances of t in order of first
// appearance.
func (t *Table) Instances() []string {
	return distinct(t, func(r Record) string { return r.Instance })
}

// Params returns the distinct parameter values of t in ComparePar
// order.
func (t *Table) Params() []Param {
	seen := make(map[Param]bool)
	var ps []Param
	for _, r := range t.Records() {
		if !seen[r.Param] {
			seen[r.Param] = true
			ps = append(ps, r.Param)
		}
	}
	SortParams(ps)
	return ps
}

func distinct(t *Table, key func(Record) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Records() {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// SortRecords sorts recs by algorithm, parameter and instance. It is
// a convenience for deterministic output; nothing in this module
// depends on record order.
func SortRecords(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Algorithm != b.Algorithm {
			return a.Algorithm < b.Algorithm
		}
		if c := ComparePar(a.Param, b.Param); c != 0 {
			return c < 0
		}
		return a.Instance < b.Instance
	})
}
