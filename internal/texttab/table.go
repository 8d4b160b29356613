// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out fixed-width text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so callers can chain them to fill a
// row at once.
type Table struct {
	rows [][]cell

	// rules holds the indexes of rows drawn as a horizontal rule.
	rules map[int]bool

	// Sep separates adjacent columns. If "", a single space is
	// used.
	Sep string
}

type cell struct {
	value string
	align Align
}

// Align is the horizontal alignment of a cell within its column.
type Align int

const (
	Left Align = iota
	Center
	Right
)

func (a Align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case Center:
		l := n / 2
		return strings.Repeat(" ", l) + s + strings.Repeat(" ", n-l)
	case Right:
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Rule adds a row drawn as a horizontal line across every column.
func (t *Table) Rule() *Table {
	if t.rules == nil {
		t.rules = make(map[int]bool)
	}
	t.rules[len(t.rows)] = true
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row.
func (t *Table) Cell(value string, a Align) *Table {
	if len(t.rows) == 0 || t.rules[len(t.rows)-1] {
		t.Row()
	}
	last := len(t.rows) - 1
	t.rows[last] = append(t.rows[last], cell{value, a})
	return t
}

// Format lays out t and writes it to w. Trailing spaces are trimmed
// from every line.
func (t *Table) Format(w io.Writer) error {
	sep := t.Sep
	if sep == "" {
		sep = " "
	}

	var widths []int
	for _, row := range t.rows {
		for i, c := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], utf8.RuneCountInString(c.value))
		}
	}
	total := 0
	for i, cw := range widths {
		if i > 0 {
			total += utf8.RuneCountInString(sep)
		}
		total += cw
	}

	var line strings.Builder
	for ri, row := range t.rows {
		line.Reset()
		if t.rules[ri] {
			line.WriteString(strings.Repeat("-", total))
		}
		for i, c := range row {
			if i > 0 {
				line.WriteString(sep)
			}
			line.WriteString(c.align.pad(c.value, widths[i]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
