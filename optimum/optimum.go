// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optimum looks up the known optimal solution cost of problem
// instances.
//
// Each instance has a ground-truth file named after it. The optimal
// cost is on the second-to-last line of that file. Files are read
// lazily, the first time an instance is looked up, so a missing file
// is only an error for instances that are actually needed.
package optimum

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
)

// A MissingOptimumError reports an instance whose optimal cost could
// not be determined.
type MissingOptimumError struct {
	Instance string
	Err      error
}

func (e *MissingOptimumError) Error() string {
	return fmt.Sprintf("no optimal cost for instance %s: %v", e.Instance, e.Err)
}

func (e *MissingOptimumError) Unwrap() error {
	return e.Err
}

// An Index maps instance names to optimal solution costs.
type Index struct {
	fsys   fs.FS
	dir    string
	suffix string

	costs map[string]float64
}

// New returns an Index over the ground-truth files in dir. The file
// for instance x is dir/x+suffix.
func New(fsys fs.FS, dir, suffix string) *Index {
	return &Index{fsys: fsys, dir: dir, suffix: suffix, costs: make(map[string]float64)}
}

// Lookup returns the optimal cost of instance. Failures are returned
// as a *MissingOptimumError and are not cached.
func (x *Index) Lookup(instance string) (float64, error) {
	if c, ok := x.costs[instance]; ok {
		return c, nil
	}
	c, err := x.read(instance)
	if err != nil {
		return 0, &MissingOptimumError{instance, err}
	}
	x.costs[instance] = c
	return c, nil
}

// Preload looks up every instance and returns the first failure.
func (x *Index) Preload(instances []string) error {
	for _, inst := range instances {
		if _, err := x.Lookup(inst); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of resolved instances.
func (x *Index) Len() int {
	return len(x.costs)
}

func (x *Index) read(instance string) (float64, error) {
	if instance == "" || strings.Contains(instance, "/") {
		return 0, fmt.Errorf("invalid instance name %q", instance)
	}
	f, err := x.fsys.Open(path.Join(x.dir, instance+x.suffix))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return 0, err
	}
	if len(lines) < 2 {
		return 0, errors.New("ground-truth file has fewer than two lines")
	}
	line := strings.TrimSpace(lines[len(lines)-2])
	c, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing optimal cost: %w", err)
	}
	if !(c > 0) {
		return 0, fmt.Errorf("optimal cost %v is not positive", c)
	}
	return c, nil
}
