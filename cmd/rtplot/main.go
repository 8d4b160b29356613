// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Rtplot summarizes real-time search experiments.
//
// Usage:
//
//	rtplot [flags]
//
// Rtplot reads the per-run result files of every configured algorithm
// for one domain and subdomain, computes the quantity selected by -t,
// and writes it to the output directory as a CSV file and, for most
// plot types, a PNG chart.
//
// Result files are read from
//
//	<results>/<domain>/<subdomain>[/<heuristic>]/<algorithm id>/
//
// and the parameter value of a run is the first number in its file
// name. Only parameter values within [-b, -e] that the configuration
// lists for the subdomain are read.
//
// The plot types are:
//
//	gatRatio        solution cost over the optimal cost from -worlds
//	nodeGen         nodes generated
//	nodeExp         nodes expanded
//	gatNodeGen      nodes expanded under the alternate accounting
//	solutionLength  solution length
//	cpu             CPU time
//	nodeGenDiff     nodes generated over the baseline's, on instances
//	                every algorithm solved at every parameter value
//	allSolved       nodes generated, on instances every algorithm
//	                solved at every parameter value
//	par10           -metric with unsolved runs at 10x the worst value
//	timeLimit       CPU time with unsolved runs at the time limit
//	coveragetb      table of solved instances
//	coverageplt     chart of solved instances
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
