// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultproc reconciles result tables across algorithms and
// parameter values: it selects the instances every algorithm solved
// at every parameter value, and counts how many instances each
// algorithm solved.
package resultproc

import (
	"github.com/rtsearch/rteval/resultfmt"
)

// A CompleteFilter keeps the records of instances that have a record
// for every algorithm at every parameter value.
//
// Instances, and the number of parameter values, are taken from a
// reference set: the records of Baseline, or the whole table if
// Baseline is empty. An instance is kept iff its total number of
// records in the table is exactly len(algorithms) times the number of
// parameter values. An instance with more records than that (from
// duplicate result files) is dropped like one with fewer.
type CompleteFilter struct {
	Baseline string

	// Algorithms is the set of algorithms every instance must be
	// solved by. If nil, it is the set of algorithms in the table.
	Algorithms []string
}

// AllSolved returns the records of t whose instance was solved by
// every algorithm of t at every parameter value of t.
func AllSolved(t *resultfmt.Table) *resultfmt.Table {
	return CompleteFilter{}.Apply(t)
}

// Apply returns a new table with the records of complete instances.
func (f CompleteFilter) Apply(t *resultfmt.Table) *resultfmt.Table {
	keep := f.complete(t)
	return t.Filter(func(r resultfmt.Record) bool { return keep[r.Instance] })
}

// Expected returns the number of records a complete instance has in t.
func (f CompleteFilter) Expected(t *resultfmt.Table) int {
	return f.numAlgorithms(t) * len(f.reference(t).Params())
}

// Counts returns, for each parameter value of the reference set, the
// number of complete instances with a record at that value.
func (f CompleteFilter) Counts(t *resultfmt.Table) map[resultfmt.Param]int {
	kept := f.Apply(t)
	counts := make(map[resultfmt.Param]int)
	seen := make(map[instanceParam]bool)
	for _, r := range kept.Records() {
		k := instanceParam{r.Instance, r.Param}
		if !seen[k] {
			seen[k] = true
			counts[r.Param]++
		}
	}
	return counts
}

type instanceParam struct {
	instance string
	param    resultfmt.Param
}

func (f CompleteFilter) reference(t *resultfmt.Table) *resultfmt.Table {
	if f.Baseline == "" {
		return t
	}
	return t.Filter(func(r resultfmt.Record) bool { return r.Algorithm == f.Baseline })
}

func (f CompleteFilter) numAlgorithms(t *resultfmt.Table) int {
	if f.Algorithms != nil {
		return len(f.Algorithms)
	}
	return len(t.Algorithms())
}

// complete returns the set of complete instances of t.
func (f CompleteFilter) complete(t *resultfmt.Table) map[string]bool {
	want := f.Expected(t)

	perInstance := make(map[string]int)
	for _, r := range t.Records() {
		perInstance[r.Instance]++
	}

	keep := make(map[string]bool)
	for _, inst := range f.reference(t).Instances() {
		if perInstance[inst] == want {
			keep[inst] = true
		}
	}
	return keep
}
