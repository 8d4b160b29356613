// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// A Param is the value of the independent variable of a run (the
// lookahead or expansion bound), kept as the exact decimal token it
// was written in.
//
// Params are compared and grouped by token: "10" and "10.0" are
// different Params even though they have the same numeric value.
// Numeric comparisons, such as admission bounds, go through Float.
type Param string

var (
	paramToken = regexp.MustCompile(`\d*\.?\d+`)
	paramFull  = regexp.MustCompile(`^\d*\.?\d+$`)
)

// ParseParam validates s as an unsigned decimal token.
func ParseParam(s string) (Param, error) {
	if !paramFull.MatchString(s) {
		return "", fmt.Errorf("invalid parameter value %q", s)
	}
	return Param(s), nil
}

// Float returns the numeric value of p, or NaN if p is not a valid
// token.
func (p Param) Float() float64 {
	v, err := strconv.ParseFloat(string(p), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (p Param) String() string {
	return string(p)
}

// ComparePar orders Params by numeric value, breaking ties between
// distinct tokens of equal value by the token text.
func ComparePar(a, b Param) int {
	av, bv := a.Float(), b.Float()
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	}
	return strings.Compare(string(a), string(b))
}

// SortParams sorts ps in place in ComparePar order.
func SortParams(ps []Param) {
	sort.Slice(ps, func(i, j int) bool {
		return ComparePar(ps[i], ps[j]) < 0
	})
}

// ParseFileName extracts the parameter value of a result file from
// its name. The value is the first numeric token of the name with the
// extension removed. ok is false if name does not end in ext or has
// no numeric token.
func ParseFileName(name, ext string) (p Param, ok bool) {
	if !strings.HasSuffix(name, ext) || len(name) == len(ext) {
		return "", false
	}
	tok := paramToken.FindString(name[:len(name)-len(ext)])
	if tok == "" {
		return "", false
	}
	return Param(tok), true
}

// An Admission decides which parameter values are loaded.
//
// A value is admitted if it lies in [Lower, Upper] and is numerically
// equal to one of Allowed. An empty Allowed admits nothing.
type Admission struct {
	Lower, Upper float64
	Allowed      []Param
}

// Admits reports whether p passes the bounds and the allow-list.
func (a Admission) Admits(p Param) bool {
	v := p.Float()
	if math.IsNaN(v) || v < a.Lower || v > a.Upper {
		return false
	}
	for _, q := range a.Allowed {
		if q.Float() == v {
			return true
		}
	}
	return false
}
