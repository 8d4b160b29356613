// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultseries renders result tables for people: CSV exports
// of derived columns and group summaries, the coverage text table, and
// PNG charts.
package resultseries
