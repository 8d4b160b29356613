// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// A ParseError reports a result file that could not be decoded into a
// Record. It is always fatal to a load.
type ParseError struct {
	Algorithm string // empty if unknown
	FileName  string
	Err       error
}

func (e *ParseError) Error() string {
	if e.Algorithm == "" {
		return fmt.Sprintf("%s: %v", e.FileName, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Algorithm, e.FileName, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrUnsolved is returned by Decode for a run that reports it found no
// solution. Such a run is not a Record.
var ErrUnsolved = errors.New("run found no solution")

// payload is the JSON layout written by the search harness.
type payload struct {
	Instance        *string  `json:"instance" validate:"required,min=1"`
	NodeExpanded    *int64   `json:"node expanded" validate:"required,gte=0"`
	NodeGenerated   *int64   `json:"node generated" validate:"required,gte=0"`
	GATNodeExpanded *int64   `json:"GAT node expanded" validate:"required,gte=0"`
	SolutionLength  *float64 `json:"solution length" validate:"required,gte=0"`
	SolutionCost    *float64 `json:"solution cost" validate:"required,gte=0"`
	CPUTime         *float64 `json:"cpu time" validate:"omitempty,gte=0"`
	SolutionFound   *bool    `json:"solution found"`
}

var validate = validator.New()

func init() {
	// Report fields by their JSON keys.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Decode reads a single result payload from r. fileName is used in
// errors only. The returned Record has Instance, File and the metrics
// set; the caller supplies Algorithm and Param.
//
// Decode returns ErrUnsolved if the payload reports that no solution
// was found, and a *ParseError for any malformed or incomplete
// payload.
func Decode(r io.Reader, fileName string) (Record, error) {
	var p payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Record{}, &ParseError{FileName: fileName, Err: err}
	}
	if p.SolutionFound != nil && !*p.SolutionFound {
		return Record{}, ErrUnsolved
	}
	if err := validate.Struct(&p); err != nil {
		return Record{}, &ParseError{FileName: fileName, Err: describe(err)}
	}

	rec := Record{Instance: *p.Instance, File: fileName}.
		With(NodeExpanded, float64(*p.NodeExpanded)).
		With(NodeGenerated, float64(*p.NodeGenerated)).
		With(GATNodeExpanded, float64(*p.GATNodeExpanded)).
		With(SolutionLength, *p.SolutionLength).
		With(SolutionCost, *p.SolutionCost)
	if p.CPUTime != nil {
		rec = rec.With(CPUTime, *p.CPUTime)
	}
	return rec, nil
}

// describe turns validator errors into one readable error.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var msgs []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("missing field %q", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %q fails %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
