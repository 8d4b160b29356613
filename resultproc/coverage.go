// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultproc

import (
	"github.com/rtsearch/rteval/resultfmt"
)

// A Coverage holds the number of instances each algorithm solved at
// each parameter value.
//
// Parameter values are grouped by their exact token (see
// resultfmt.Param). Imputed records are not counted.
type Coverage struct {
	algorithms []string
	params     []resultfmt.Param
	counts     map[algParam]int
}

type algParam struct {
	algorithm string
	param     resultfmt.Param
}

// NewCoverage counts the distinct instances with a genuine record for
// every algorithm and parameter value of t. Pairs with no records
// count zero.
func NewCoverage(t *resultfmt.Table) *Coverage {
	t = t.Genuine()
	c := &Coverage{
		algorithms: t.Algorithms(),
		params:     t.Params(),
		counts:     make(map[algParam]int),
	}
	seen := make(map[algParam]map[string]bool)
	for _, r := range t.Records() {
		k := algParam{r.Algorithm, r.Param}
		insts := seen[k]
		if insts == nil {
			insts = make(map[string]bool)
			seen[k] = insts
		}
		if !insts[r.Instance] {
			insts[r.Instance] = true
			c.counts[k]++
		}
	}
	return c
}

// Algorithms returns the algorithms in order of first appearance.
func (c *Coverage) Algorithms() []string {
	return append([]string(nil), c.algorithms...)
}

// Params returns the parameter values in ascending order.
func (c *Coverage) Params() []resultfmt.Param {
	return append([]resultfmt.Param(nil), c.params...)
}

// Count returns the number of instances alg solved at p.
func (c *Coverage) Count(alg string, p resultfmt.Param) int {
	return c.counts[algParam{alg, p}]
}

// Series returns the counts of alg in Params order.
func (c *Coverage) Series(alg string) []int {
	out := make([]int, len(c.params))
	for i, p := range c.params {
		out[i] = c.Count(alg, p)
	}
	return out
}
