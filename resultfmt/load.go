// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"fmt"
	"io/fs"
	"log/slog"
)

// A DedupPolicy says what a Loader does with a second record for the
// same algorithm, instance and parameter value.
type DedupPolicy int

const (
	// FirstWins keeps the record from the lexically first file.
	FirstWins DedupPolicy = iota
	// KeepAll keeps every record. The comparable-set filter will
	// then drop the affected instances.
	KeepAll
	// RejectDuplicates fails the load with a *DuplicateError.
	RejectDuplicates
)

var dedupNames = map[DedupPolicy]string{
	FirstWins:        "first",
	KeepAll:          "all",
	RejectDuplicates: "reject",
}

func (p DedupPolicy) String() string {
	if s, ok := dedupNames[p]; ok {
		return s
	}
	return fmt.Sprintf("DedupPolicy(%d)", int(p))
}

// ParseDedupPolicy parses "first", "all" or "reject".
func ParseDedupPolicy(s string) (DedupPolicy, error) {
	for p, name := range dedupNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown duplicate policy %q (want first, all or reject)", s)
}

// A DuplicateError reports two result files for the same run.
type DuplicateError struct {
	Algorithm, Instance string
	Param               Param
	First, Second       string // file names
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: duplicate result for instance %s at %s: %s and %s", e.Algorithm, e.Instance, e.Param, e.First, e.Second)
}

// A Loader reads the result directories of several algorithms into a
// Table.
type Loader struct {
	FS    fs.FS
	Ext   string // if empty, DefaultExt
	Admit Admission
	Dedup DedupPolicy

	// Logger may be nil.
	Logger *slog.Logger
}

type runKey struct {
	algorithm, instance string
	param               Param
}

// Load reads every admitted result file of sources. It stops at the
// first unreadable directory, malformed file or, under
// RejectDuplicates, duplicate run.
func (l *Loader) Load(sources []Source) (*Table, error) {
	log := orDiscard(l.Logger)
	files := Files{
		FS:      l.FS,
		Sources: sources,
		Ext:     l.Ext,
		Admit:   l.Admit,
		Logger:  l.Logger,
	}

	seen := make(map[runKey]string)
	var recs []Record
	for files.Scan() {
		rec := files.Result()
		k := runKey{rec.Algorithm, rec.Instance, rec.Param}
		if first, dup := seen[k]; dup {
			switch l.Dedup {
			case KeepAll:
			case RejectDuplicates:
				return nil, &DuplicateError{rec.Algorithm, rec.Instance, rec.Param, first, rec.File}
			default:
				log.Debug("dropping duplicate result", "algorithm", rec.Algorithm, "instance", rec.Instance, "param", rec.Param, "file", rec.File, "kept", first)
				continue
			}
		} else {
			seen[k] = rec.File
		}
		recs = append(recs, rec)
	}
	if err := files.Err(); err != nil {
		return nil, err
	}
	log.Debug("loaded results", "records", len(recs), "algorithms", len(sources))
	return &Table{recs}, nil
}
