// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultmath

import (
	"math"
	"sort"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"

	"github.com/rtsearch/rteval/resultfmt"
	"github.com/rtsearch/rteval/resultproc"
)

// A GroupSummary summarizes the valid derived values of one
// (algorithm, parameter value) group.
type GroupSummary struct {
	Algorithm string
	Param     resultfmt.Param

	N       int
	Mean    float64
	GeoMean float64 // NaN if any value is not positive
}

// point is the row type of the aggregation tables. Field names are
// column names.
type point struct {
	Algorithm string
	Param     resultfmt.Param
	Value     float64
}

func points(dt *DerivedTable) []point {
	var pts []point
	for _, r := range dt.Rows {
		if r.Valid {
			pts = append(pts, point{r.Algorithm, r.Param, r.Value})
		}
	}
	return pts
}

// Summarize returns a summary of every (algorithm, parameter value)
// group of dt with at least one valid value. Groups are ordered by
// algorithm, in order of first appearance, then by parameter value.
func Summarize(dt *DerivedTable) []GroupSummary {
	pts := points(dt)
	if len(pts) == 0 {
		return nil
	}
	g := ggstat.Agg("Algorithm", "Param")(
		ggstat.AggCount("count"),
		ggstat.AggMean("Value"),
		ggstat.AggGeoMean("Value"),
	).F(table.TableFromStructs(pts))
	t := table.Flatten(g)

	algs := t.MustColumn("Algorithm").([]string)
	params := t.MustColumn("Param").([]resultfmt.Param)
	counts := t.MustColumn("count").([]int)
	means := t.MustColumn("mean Value").([]float64)
	geomeans := t.MustColumn("geomean Value").([]float64)

	out := make([]GroupSummary, len(algs))
	for i := range out {
		out[i] = GroupSummary{algs[i], params[i], counts[i], means[i], geomeans[i]}
	}

	rank := make(map[string]int)
	for _, p := range pts {
		if _, ok := rank[p.Algorithm]; !ok {
			rank[p.Algorithm] = len(rank)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Algorithm != b.Algorithm {
			return rank[a.Algorithm] < rank[b.Algorithm]
		}
		return resultfmt.ComparePar(a.Param, b.Param) < 0
	})
	return out
}

// HueOrder returns the algorithms of dt ordered by decreasing
// geometric mean of all their valid values. Algorithms whose geometric
// mean is undefined come last. Ties keep the order of first
// appearance.
func HueOrder(dt *DerivedTable) []string {
	pts := points(dt)
	if len(pts) == 0 {
		return nil
	}
	t := table.Flatten(ggstat.Agg("Algorithm")(ggstat.AggGeoMean("Value")).F(table.TableFromStructs(pts)))
	algs := append([]string(nil), t.MustColumn("Algorithm").([]string)...)
	gm := make(map[string]float64, len(algs))
	for i, v := range t.MustColumn("geomean Value").([]float64) {
		gm[algs[i]] = v
	}
	sort.SliceStable(algs, func(i, j int) bool {
		a, b := gm[algs[i]], gm[algs[j]]
		if math.IsNaN(a) || math.IsNaN(b) {
			return !math.IsNaN(a) && math.IsNaN(b)
		}
		return a > b
	})
	return algs
}

// SolvedColumn is the column name of coverage counts.
const SolvedColumn = "solved"

// CoverageTable lifts the counts of c into a derived column with one
// row per (algorithm, parameter value) pair. Row instances are empty.
func CoverageTable(c *resultproc.Coverage) *DerivedTable {
	dt := &DerivedTable{Column: SolvedColumn}
	for _, alg := range c.Algorithms() {
		for _, p := range c.Params() {
			r := resultfmt.Record{Algorithm: alg, Param: p}
			dt.Rows = append(dt.Rows, DerivedRecord{Record: r, Value: float64(c.Count(alg, p)), Valid: true})
		}
	}
	return dt
}
