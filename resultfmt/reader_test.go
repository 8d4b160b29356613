// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"errors"
	"strings"
	"testing"
)

const goodPayload = `{"node expanded": 120, "GAT node expanded": 40, "node generated": 1000,
	"solution found": true, "solution cost": 42.5, "solution length": 17.0,
	"instance": "map01", "algorithm": "one-astar", "lookahead": 10,
	"domain": "gridPathfinding", "subdomain": "uniformObstacleField"}`

func TestDecode(t *testing.T) {
	rec, err := Decode(strings.NewReader(goodPayload), "one/10-map01.json")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Instance != "map01" || rec.File != "one/10-map01.json" {
		t.Errorf("got instance %q file %q", rec.Instance, rec.File)
	}
	want := map[Metric]float64{
		NodeExpanded:    120,
		GATNodeExpanded: 40,
		NodeGenerated:   1000,
		SolutionCost:    42.5,
		SolutionLength:  17,
	}
	for m, w := range want {
		if got, ok := rec.Value(m); !ok || got != w {
			t.Errorf("%s = %v, %v, want %v", m, got, ok, w)
		}
	}
	if rec.Has(CPUTime) {
		t.Errorf("cpu present without a cpu time field")
	}
}

func TestDecodeCPUTime(t *testing.T) {
	payload := strings.Replace(goodPayload, `"instance"`, `"cpu time": 1.5, "instance"`, 1)
	rec, err := Decode(strings.NewReader(payload), "x.json")
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := rec.Value(CPUTime); !ok || v != 1.5 {
		t.Errorf("cpu = %v, %v, want 1.5", v, ok)
	}
}

func TestDecodeUnsolved(t *testing.T) {
	payload := `{"solution found": false, "solution cost": -1, "instance": "map02"}`
	if _, err := Decode(strings.NewReader(payload), "x.json"); !errors.Is(err, ErrUnsolved) {
		t.Errorf("got %v, want ErrUnsolved", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, test := range []struct {
		name, payload, want string
	}{
		{"syntax", `{"instance": "map01",`, "unexpected EOF"},
		{"missing", strings.Replace(goodPayload, `"node generated": 1000,`, "", 1), `missing field "node generated"`},
		{"missingGAT", strings.Replace(goodPayload, `"GAT node expanded": 40,`, "", 1), `missing field "GAT node expanded"`},
		{"negative", strings.Replace(goodPayload, `"solution cost": 42.5`, `"solution cost": -1`, 1), `field "solution cost" fails gte=0`},
		{"emptyInstance", strings.Replace(goodPayload, `"map01"`, `""`, 1), `field "instance" fails min=1`},
		{"fractionalCount", strings.Replace(goodPayload, `"node expanded": 120`, `"node expanded": 1.5`, 1), "cannot unmarshal number"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(test.payload), "bad.json")
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("got %v, want *ParseError", err)
			}
			if perr.FileName != "bad.json" {
				t.Errorf("FileName = %q", perr.FileName)
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("got %q, want it to contain %q", err, test.want)
			}
		})
	}
}
