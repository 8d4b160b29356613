// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
)

// DefaultExt is the extension of result files.
const DefaultExt = ".json"

// A Source is the result directory of one algorithm.
type Source struct {
	// Algorithm is stored in Record.Algorithm for every record
	// read from Dir. It is usually the display name.
	Algorithm string

	// Dir is a slash-separated path within the file system.
	Dir string
}

// A Files reads Records from the result directories of a sequence of
// algorithms.
//
// Within a directory, files are visited in lexical order. Files whose
// name does not carry a parameter value, whose extension is not Ext,
// or whose parameter value is not admitted are skipped, as are runs
// that found no solution. Subdirectories are ignored.
//
// Each file is closed before the next one is opened, whether or not
// it decoded.
type Files struct {
	FS      fs.FS
	Sources []Source

	// Ext is the result file extension. If empty, DefaultExt is
	// used.
	Ext string

	Admit Admission

	// Logger receives skipped files at debug level. It may be nil.
	Logger *slog.Logger

	// pending is the sequence of remaining sources, or nil if this
	// Files has not started yet.
	pending []Source
	cur     Source
	entries []fs.DirEntry

	rec Record
	err error
}

// Scan advances to the next Record and reports whether there is one.
// When Scan returns false, Err reports whether it stopped on an
// error or at the end of the last directory.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}
	if f.pending == nil {
		f.pending = append([]Source{}, f.Sources...)
	}
	log := orDiscard(f.Logger)
	ext := f.Ext
	if ext == "" {
		ext = DefaultExt
	}

	for {
		if len(f.entries) == 0 {
			if len(f.pending) == 0 {
				return false
			}
			src := f.pending[0]
			f.pending = f.pending[1:]
			entries, err := fs.ReadDir(f.FS, src.Dir)
			if err != nil {
				f.err = fmt.Errorf("reading results of %s: %w", src.Algorithm, err)
				return false
			}
			log.Debug("reading results", "algorithm", src.Algorithm, "dir", src.Dir, "entries", len(entries))
			f.cur, f.entries = src, entries
			continue
		}

		ent := f.entries[0]
		f.entries = f.entries[1:]
		if ent.IsDir() {
			continue
		}
		p, ok := ParseFileName(ent.Name(), ext)
		if !ok {
			log.Debug("skipping file", "algorithm", f.cur.Algorithm, "file", ent.Name(), "reason", "name")
			continue
		}
		if !f.Admit.Admits(p) {
			log.Debug("skipping file", "algorithm", f.cur.Algorithm, "file", ent.Name(), "reason", "param", "param", p)
			continue
		}

		name := path.Join(f.cur.Dir, ent.Name())
		rec, err := f.decodeFile(name)
		if errors.Is(err, ErrUnsolved) {
			log.Debug("skipping file", "algorithm", f.cur.Algorithm, "file", ent.Name(), "reason", "unsolved")
			continue
		}
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Algorithm = f.cur.Algorithm
			}
			f.err = err
			return false
		}
		rec.Algorithm, rec.Param = f.cur.Algorithm, p
		f.rec = rec
		return true
	}
}

func (f *Files) decodeFile(name string) (Record, error) {
	file, err := f.FS.Open(name)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", f.cur.Algorithm, err)
	}
	defer file.Close()
	return Decode(file, name)
}

// Result returns the Record read by the last call to Scan.
func (f *Files) Result() Record {
	return f.rec
}

// Err returns the error that stopped Scan, if any.
func (f *Files) Err() error {
	return f.err
}

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
