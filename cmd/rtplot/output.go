// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"

	"github.com/rtsearch/rteval/resultmath"
	"github.com/rtsearch/rteval/resultseries"
)

// output writes the files of one invocation. Every file name starts
// with prefix.
type output struct {
	dir, prefix string
	stdout      io.Writer
	log         *slog.Logger
}

// derived writes the rows of dt, their group summaries and a point
// chart, and prints the summaries.
func (o *output) derived(name string, dt *resultmath.DerivedTable, opts resultseries.ChartOptions) error {
	for _, w := range dt.Warnings {
		o.log.Warn("skipped value", "column", dt.Column, "err", w)
	}
	if err := o.file(name+".csv", func(w io.Writer) error {
		return resultseries.WriteCSV(w, dt)
	}); err != nil {
		return err
	}

	sums := resultmath.Summarize(dt)
	if err := o.file(name+"-summary.csv", func(w io.Writer) error {
		return resultseries.WriteSummaryCSV(w, dt.Column, sums)
	}); err != nil {
		return err
	}
	if err := resultseries.SummaryText(o.stdout, dt.Column, sums); err != nil {
		return err
	}

	pl, err := resultseries.PointChart(dt, opts)
	if errors.Is(err, resultseries.ErrNoData) {
		o.log.Warn("no chart written", "column", dt.Column, "err", err)
		return nil
	}
	if err != nil {
		return err
	}
	return o.png(name, pl, opts)
}

func (o *output) png(name string, pl *plot.Plot, opts resultseries.ChartOptions) error {
	return o.file(name+".png", func(w io.Writer) error {
		return resultseries.WritePNG(w, pl, opts)
	})
}

// file creates the named output file and fills it with write.
func (o *output) file(name string, write func(io.Writer) error) (err error) {
	path := filepath.Join(o.dir, o.prefix+name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := write(f); err != nil {
		return err
	}
	o.log.Info("wrote", "file", path)
	return nil
}
