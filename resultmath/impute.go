// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultmath

import (
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/rtsearch/rteval/resultfmt"
)

// Defaults for Imputer and TimeLimit.
const (
	DefaultPenalty     = 10
	DefaultPar10Prefix = "par10-"

	DefaultTimeLimit       = 600
	DefaultTimeLimitPrefix = "TimeLimitReached-"
)

// An Imputer fills the unsolved runs of every (algorithm, parameter
// value) group with penalized records.
type Imputer struct {
	// Expected is the number of instances of the domain.
	Expected int

	// Penalty multiplies the global maximum of each metric. If 0,
	// DefaultPenalty is used.
	Penalty float64

	// Prefix is prepended to the index of each synthetic record to
	// form its instance name. If "", DefaultPar10Prefix is used.
	Prefix string
}

// Par10 returns a new table holding the records of t followed by, for
// each algorithm of t and each parameter value of t, Expected minus
// the number of genuine records in that group imputed records.
//
// Every metric that some genuine record of t has is set to Penalty
// times its maximum over all genuine records. Metrics no genuine
// record has are absent.
func (im Imputer) Par10(t *resultfmt.Table) *resultfmt.Table {
	penalty := im.Penalty
	if penalty == 0 {
		penalty = DefaultPenalty
	}
	prefix := im.Prefix
	if prefix == "" {
		prefix = DefaultPar10Prefix
	}

	var fill resultfmt.Record
	for m, hi := range maxima(t) {
		fill = fill.With(m, penalty*hi)
	}
	return impute(t, im.Expected, prefix, fill)
}

// A TimeLimit fills the unsolved runs of every (algorithm, parameter
// value) group with records that report only a CPU time at the limit.
type TimeLimit struct {
	Expected int

	// Limit is the CPU time, in seconds, of the synthetic records.
	// If 0, DefaultTimeLimit is used.
	Limit float64

	// Prefix is as for Imputer. If "", DefaultTimeLimitPrefix is
	// used.
	Prefix string
}

// Impute is like Imputer.Par10, but synthetic records carry only
// CPUTime, set to Limit.
func (tl TimeLimit) Impute(t *resultfmt.Table) *resultfmt.Table {
	limit := tl.Limit
	if limit == 0 {
		limit = DefaultTimeLimit
	}
	prefix := tl.Prefix
	if prefix == "" {
		prefix = DefaultTimeLimitPrefix
	}
	fill := resultfmt.Record{}.With(resultfmt.CPUTime, limit)
	return impute(t, tl.Expected, prefix, fill)
}

// impute appends copies of fill for the shortfall of every group.
func impute(t *resultfmt.Table, expected int, prefix string, fill resultfmt.Record) *resultfmt.Table {
	type group struct {
		alg   string
		param resultfmt.Param
	}
	observed := make(map[group]int)
	for _, r := range t.Genuine().Records() {
		observed[group{r.Algorithm, r.Param}]++
	}

	var synth []resultfmt.Record
	for _, alg := range t.Algorithms() {
		for _, p := range t.Params() {
			missing := expected - observed[group{alg, p}]
			for i := 0; i < missing; i++ {
				r := fill
				r.Algorithm = alg
				r.Param = p
				r.Instance = prefix + strconv.Itoa(i)
				r.Imputed = true
				synth = append(synth, r)
			}
		}
	}
	return resultfmt.Concat(t, resultfmt.NewTable(synth))
}

// maxima returns the maximum of each metric over the genuine records
// of t, for the metrics that some genuine record has.
func maxima(t *resultfmt.Table) map[resultfmt.Metric]float64 {
	vals := make(map[resultfmt.Metric][]float64)
	for _, r := range t.Genuine().Records() {
		for _, m := range resultfmt.Metrics() {
			if v, ok := r.Value(m); ok {
				vals[m] = append(vals[m], v)
			}
		}
	}
	out := make(map[resultfmt.Metric]float64, len(vals))
	for m, vs := range vals {
		out[m] = floats.Max(vs)
	}
	return out
}
