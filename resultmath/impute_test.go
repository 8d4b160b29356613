// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultmath

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rtsearch/rteval/resultfmt"
)

// imputed returns the imputed records of t as "alg/param/instance"
// strings, in table order.
func imputed(t *resultfmt.Table) []string {
	var out []string
	for _, r := range t.Records() {
		if r.Imputed {
			out = append(out, fmt.Sprintf("%s/%s/%s", r.Algorithm, r.Param, r.Instance))
		}
	}
	return out
}

func TestPar10(t *testing.T) {
	// X solved 97 of 100 instances at 30; the slowest took 60s.
	var recs []resultfmt.Record
	for i := 0; i < 97; i++ {
		r := rec("X", fmt.Sprintf("map%02d", i), "30", resultfmt.CPUTime, float64(i%61))
		recs = append(recs, r.With(resultfmt.NodeGenerated, float64(i)))
	}
	tab := resultfmt.NewTable(recs)
	out := Imputer{Expected: 100}.Par10(tab)

	if tab.Len() != 97 {
		t.Errorf("input table changed: %d records", tab.Len())
	}
	if out.Len() != 100 {
		t.Fatalf("got %d records, want 100", out.Len())
	}
	want := []string{"X/30/par10-0", "X/30/par10-1", "X/30/par10-2"}
	if diff := cmp.Diff(want, imputed(out)); diff != "" {
		t.Errorf("imputed records mismatch (-want +got):\n%s", diff)
	}
	for _, r := range out.Records()[97:] {
		if v, ok := r.Value(resultfmt.CPUTime); !ok || v != 600 {
			t.Errorf("%s cpu = %v, %v, want 600", r.Instance, v, ok)
		}
		if v, ok := r.Value(resultfmt.NodeGenerated); !ok || v != 960 {
			t.Errorf("%s nodeGen = %v, %v, want 960", r.Instance, v, ok)
		}
		if r.Has(resultfmt.NodeExpanded) {
			t.Errorf("%s has nodeExp, which no run recorded", r.Instance)
		}
		if r.File != "" {
			t.Errorf("%s has file %q", r.Instance, r.File)
		}
	}
}

func TestPar10Groups(t *testing.T) {
	// The maximum is global across algorithms and parameter values.
	// Groups with no records at all are filled completely.
	cpu := resultfmt.CPUTime
	tab := resultfmt.NewTable([]resultfmt.Record{
		rec("A", "m1", "10", cpu, 2),
		rec("A", "m2", "10", cpu, 3),
		rec("A", "m1", "100", cpu, 1),
		rec("B", "m1", "10", cpu, 5),
	})
	out := Imputer{Expected: 2, Penalty: 3, Prefix: "p-"}.Par10(tab)
	want := []string{"A/100/p-0", "B/10/p-0", "B/100/p-0", "B/100/p-1"}
	if diff := cmp.Diff(want, imputed(out)); diff != "" {
		t.Errorf("imputed records mismatch (-want +got):\n%s", diff)
	}
	for _, r := range out.Records() {
		if v, _ := r.Value(cpu); r.Imputed && v != 15 {
			t.Errorf("%s/%s cpu = %v, want 15", r.Algorithm, r.Instance, v)
		}
	}
}

func TestPar10IgnoresImputed(t *testing.T) {
	// Imputing twice adds nothing more, and synthetic values do not
	// raise the maximum.
	tab := resultfmt.NewTable([]resultfmt.Record{
		rec("A", "m1", "10", resultfmt.CPUTime, 2),
	})
	im := Imputer{Expected: 3}
	once := im.Par10(tab)
	twice := im.Par10(once)
	if once.Len() != 3 {
		t.Fatalf("once: %d records, want 3", once.Len())
	}
	if twice.Len() != 5 {
		t.Errorf("twice: %d records, want 5", twice.Len())
	}
	for _, r := range twice.Records() {
		if v, _ := r.Value(resultfmt.CPUTime); r.Imputed && v != 20 {
			t.Errorf("imputed cpu = %v, want 20", v)
		}
	}
}

func TestPar10Complete(t *testing.T) {
	tab := resultfmt.NewTable([]resultfmt.Record{
		rec("A", "m1", "10", resultfmt.CPUTime, 2),
		rec("A", "m2", "10", resultfmt.CPUTime, 2),
	})
	if got := (Imputer{Expected: 2}).Par10(tab).Len(); got != 2 {
		t.Errorf("got %d records from a complete table, want 2", got)
	}
	if got := (Imputer{Expected: 1}).Par10(tab).Len(); got != 2 {
		t.Errorf("got %d records from an overfull group, want 2", got)
	}
	if got := (Imputer{Expected: 5}).Par10(resultfmt.NewTable(nil)).Len(); got != 0 {
		t.Errorf("got %d records from an empty table", got)
	}
}

func TestTimeLimit(t *testing.T) {
	tab := resultfmt.NewTable([]resultfmt.Record{
		rec("A", "m1", "10", resultfmt.CPUTime, 2).With(resultfmt.NodeGenerated, 9),
	})
	out := TimeLimit{Expected: 3}.Impute(tab)
	want := []string{"A/10/TimeLimitReached-0", "A/10/TimeLimitReached-1"}
	if diff := cmp.Diff(want, imputed(out)); diff != "" {
		t.Errorf("imputed records mismatch (-want +got):\n%s", diff)
	}
	for _, r := range out.Records()[1:] {
		want := resultfmt.MetricSet(0).With(resultfmt.CPUTime)
		if r.Present() != want {
			t.Errorf("%s has metrics %b, want cpu only", r.Instance, r.Present())
		}
		if v, _ := r.Value(resultfmt.CPUTime); v != 600 {
			t.Errorf("%s cpu = %v, want 600", r.Instance, v)
		}
	}

	out = TimeLimit{Expected: 2, Limit: 30, Prefix: "tl"}.Impute(tab)
	if r := out.At(1); r.Instance != "tl0" {
		t.Errorf("instance = %q, want tl0", r.Instance)
	} else if v, _ := r.Value(resultfmt.CPUTime); v != 30 {
		t.Errorf("cpu = %v, want 30", v)
	}
}
