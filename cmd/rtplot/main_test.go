// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testTree writes a results and worlds tree for the
// gridPathfinding/uniformObstacleField subdomain and returns its root.
func testTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	run := func(instance string, gen int) string {
		return fmt.Sprintf(`{"instance": %q, "node expanded": %d, "GAT node expanded": 1, "node generated": %d, "solution cost": 10, "solution length": 10, "cpu time": %g}`,
			instance, gen/2, gen, float64(gen)/100)
	}
	files := map[string]string{
		"results/gridPathfinding/uniformObstacleField/one/10-map01.json":        run("map01", 100),
		"results/gridPathfinding/uniformObstacleField/one/10-map02.json":        run("map02", 300),
		"results/gridPathfinding/uniformObstacleField/one/100-map01.json":       run("map01", 200),
		"results/gridPathfinding/uniformObstacleField/one/20-map01.json":        "not admitted",
		"results/gridPathfinding/uniformObstacleField/alltheway/10-map01.json":  run("map01", 400),
		"results/gridPathfinding/uniformObstacleField/alltheway/100-map01.json": run("map01", 500),
		"worlds/gridPathfinding/uniformObstacleField/map01.gw":                  "grid\n8\nend\n",
		"worlds/gridPathfinding/uniformObstacleField/map02.gw":                  "grid\n5\nend\n",
	}
	for name, data := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o777); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(data), 0o666); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func runCmd(t *testing.T, root string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errb bytes.Buffer
	cmd := newRootCmd(&out, &errb)
	cmd.SetArgs(append([]string{
		"-s", "uniformObstacleField",
		"--results", filepath.Join(root, "results"),
		"--worlds", filepath.Join(root, "worlds"),
		"--out", filepath.Join(root, "plots"),
	}, args...))
	err = cmd.Execute()
	return out.String(), errb.String(), err
}

func readOutput(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, "plots", "gridPathfinding-uniformObstacleField-"+name))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestQualityRatio(t *testing.T) {
	root := testTree(t)
	stdout, stderr, err := runCmd(t, root, "-t", "gatRatio")
	if err != nil {
		t.Fatalf("%v\n%s", err, stderr)
	}
	csv := readOutput(t, root, "gatRatio.csv")
	for _, want := range []string{"ONE,map01,10,false,1.25,", "ONE,map02,10,false,2,", "ALL,map01,100,false,1.25,"} {
		if !strings.Contains(csv, want) {
			t.Errorf("CSV lacks %q:\n%s", want, csv)
		}
	}
	if !strings.Contains(readOutput(t, root, "gatRatio-summary.csv"), "ONE,10,2,1.625,") {
		t.Errorf("summary lacks the ONE/10 group")
	}
	if !bytes.HasPrefix([]byte(readOutput(t, root, "gatRatio.png")), []byte("\x89PNG")) {
		t.Errorf("chart is not a PNG")
	}
	if !strings.Contains(stdout, "mean gatRatio") {
		t.Errorf("stdout lacks the summary table:\n%s", stdout)
	}
	if !strings.Contains(stderr, "worst quality ratio") || !strings.Contains(stderr, "map02") {
		t.Errorf("worst ratio not logged:\n%s", stderr)
	}
}

func TestPlotTypes(t *testing.T) {
	root := testTree(t)
	for _, typ := range []string{"nodeGen", "nodeExp", "gatNodeGen", "solutionLength", "cpu", "nodeGenDiff", "allSolved", "par10", "timeLimit"} {
		t.Run(typ, func(t *testing.T) {
			if _, stderr, err := runCmd(t, root, "-t", typ); err != nil {
				t.Fatalf("%v\n%s", err, stderr)
			}
			for _, suffix := range []string{".csv", "-summary.csv", ".png"} {
				readOutput(t, root, typ+suffix)
			}
		})
	}
}

func TestNodeGenDiff(t *testing.T) {
	root := testTree(t)
	if _, stderr, err := runCmd(t, root, "-t", "nodeGenDiff"); err != nil {
		t.Fatalf("%v\n%s", err, stderr)
	}
	// map02 was not solved by every algorithm.
	checkSummary(t, readOutput(t, root, "nodeGenDiff-summary.csv"),
		"algorithm,param,n,mean nodeGenDiff",
		"ONE,10,1,1", "ONE,100,1,1", "ALL,10,1,4", "ALL,100,1,2.5")
}

// checkSummary compares the leading columns of a summary CSV with
// want. The geometric mean column is left out.
func checkSummary(t *testing.T, csv string, want ...string) {
	t.Helper()
	lines := strings.Split(strings.TrimSuffix(csv, "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("want %d lines, got:\n%s", len(want), csv)
	}
	for i, l := range lines {
		if l := l[:strings.LastIndex(l, ",")]; l != want[i] {
			t.Errorf("line %d: want %q, got %q", i+1, want[i], l)
		}
	}
}

func TestPar10(t *testing.T) {
	root := testTree(t)
	if _, stderr, err := runCmd(t, root, "-t", "par10", "--metric", "nodeGen"); err != nil {
		t.Fatalf("%v\n%s", err, stderr)
	}
	// 100 instances; ONE solved 2 at 10, the rest are 10x the
	// largest nodeGen, 500.
	sum := readOutput(t, root, "par10-summary.csv")
	if !strings.Contains(sum, "ONE,10,100,") {
		t.Errorf("summary does not impute to 100 instances:\n%s", sum)
	}
	if !strings.Contains(readOutput(t, root, "par10.csv"), "ONE,par10-0,10,true,5000,") {
		t.Errorf("imputed record missing")
	}
}

func TestCoverageTable(t *testing.T) {
	root := testTree(t)
	stdout, stderr, err := runCmd(t, root, "-t", "coveragetb")
	if err != nil {
		t.Fatalf("%v\n%s", err, stderr)
	}
	want := "Algorithm    10   100\n" +
		"---------------------\n" +
		"ONE       2/100 1/100\n" +
		"ALL       1/100 1/100\n"
	if stdout != want {
		t.Errorf("want:\n%sgot:\n%s", want, stdout)
	}
	if got := readOutput(t, root, "coveragetb.txt"); got != want {
		t.Errorf("file differs from stdout:\n%s", got)
	}
}

func TestCoveragePlot(t *testing.T) {
	root := testTree(t)
	if _, stderr, err := runCmd(t, root, "-t", "coverageplt"); err != nil {
		t.Fatalf("%v\n%s", err, stderr)
	}
	readOutput(t, root, "coverageplt.png")
	checkSummary(t, readOutput(t, root, "coverageplt.csv"),
		"algorithm,param,n,mean solved",
		"ONE,10,1,2", "ONE,100,1,1", "ALL,10,1,1", "ALL,100,1,1")
}

func TestRemove(t *testing.T) {
	root := testTree(t)
	if _, stderr, err := runCmd(t, root, "-t", "nodeGen", "-r", "alltheway"); err != nil {
		t.Fatalf("%v\n%s", err, stderr)
	}
	csv := readOutput(t, root, "no-alltheway-nodeGen.csv")
	if strings.Contains(csv, "ALL,") {
		t.Errorf("removed algorithm in output:\n%s", csv)
	}
}

func TestErrors(t *testing.T) {
	root := testTree(t)
	os.Remove(filepath.Join(root, "worlds/gridPathfinding/uniformObstacleField/map02.gw"))
	for _, test := range []struct {
		name string
		args []string
		want string
	}{
		{"unknown type", []string{"-t", "nodes"}, "unknown plot type"},
		{"unknown domain", []string{"-d", "chess"}, "unknown domain"},
		{"bad dedup", []string{"--dedup", "last"}, "last"},
		{"empty range", []string{"-b", "100", "-e", "10"}, "empty"},
		{"no algorithms", []string{"-r", "one", "-r", "alltheway"}, "no algorithms"},
		{"missing optimum", []string{"-t", "gatRatio"}, "map02"},
		{"bad metric", []string{"-t", "par10", "--metric", "speed"}, "speed"},
		{"missing results", []string{"-s", "goalObstacleField"}, "reading results"},
		{"bad config", []string{"--config", filepath.Join(root, "nope.yaml")}, "nope.yaml"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := runCmd(t, root, test.args...)
			if err == nil {
				t.Fatalf("command succeeded")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("err = %q, want it to contain %q", err, test.want)
			}
		})
	}
}
