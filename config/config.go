// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the evaluation configuration: the algorithms
// to compare and how to draw them, axis labels, and the instance
// counts and admissible parameter values of each domain.
//
// A Config is immutable. Methods that would change it return a new
// Config, and accessors return copies.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/rtsearch/rteval/resultfmt"
)

//go:embed default.yaml
var defaultYAML []byte

// An Algorithm is one algorithm under evaluation.
type Algorithm struct {
	// ID is the name of the algorithm's result directory.
	ID string `yaml:"id" validate:"required"`

	// Name is the display name used in tables and charts.
	Name string `yaml:"name" validate:"required"`

	// Color is an SVG color name, e.g. "royalblue".
	Color string `yaml:"color" validate:"omitempty,colorname"`

	// Marker is a matplotlib-style marker code.
	Marker string `yaml:"marker"`
}

// RGBA returns the color of a, or nil if a has none.
func (a Algorithm) RGBA() color.Color {
	if c, ok := colornames.Map[strings.ToLower(a.Color)]; ok {
		return c
	}
	return nil
}

type file struct {
	Algorithms    []Algorithm       `yaml:"algorithms" validate:"required,min=1,unique=ID,unique=Name,dive"`
	Labels        map[string]string `yaml:"labels"`
	Penalty       float64           `yaml:"penalty" validate:"gt=0"`
	TimeLimit     float64           `yaml:"timeLimit" validate:"gt=0"`
	ResultExt     string            `yaml:"resultExt" validate:"required,startswith=."`
	OptimumSuffix string            `yaml:"optimumSuffix" validate:"required"`
	Domains       map[string]domain `yaml:"domains" validate:"required,min=1,dive"`
}

type domain struct {
	Instances    int                  `yaml:"instances" validate:"gt=0"`
	HeuristicDir bool                 `yaml:"heuristicDir"`
	Subdomains   map[string]subdomain `yaml:"subdomains" validate:"required,min=1,dive"`
}

type subdomain struct {
	Title  string    `yaml:"title"`
	Params paramList `yaml:"params"`
}

// paramList is a YAML list of parameter values, kept as the tokens
// they were written as.
type paramList []resultfmt.Param

func (l *paramList) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: params must be a list", n.Line)
	}
	out := make(paramList, 0, len(n.Content))
	for _, c := range n.Content {
		if c.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: param must be a number", c.Line)
		}
		p, err := resultfmt.ParseParam(c.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", c.Line, err)
		}
		out = append(out, p)
	}
	*l = out
	return nil
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("colorname", func(fl validator.FieldLevel) bool {
		_, ok := colornames.Map[strings.ToLower(fl.Field().String())]
		return ok
	})
}

// A Config is an evaluation configuration.
type Config struct {
	f file
}

// Default returns the built-in configuration.
func Default() *Config {
	c, err := parse(nil)
	if err != nil {
		panic("config: bad default configuration: " + err.Error())
	}
	return c
}

// Load reads a YAML configuration from r. Top-level keys and domain
// entries present in r replace those of the default configuration.
// Unknown keys are errors.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

// LoadFile is like Load, but reads the named file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func parse(override []byte) (*Config, error) {
	var f file
	for _, data := range [][]byte{defaultYAML, override} {
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	}
	if err := validate.Struct(&f); err != nil {
		return nil, describe(err)
	}
	return &Config{f}, nil
}

// describe turns validation errors into one readable error.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msgs[i] += "=" + fe.Param()
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// Algorithms returns the algorithms in legend order.
func (c *Config) Algorithms() []Algorithm {
	return append([]Algorithm(nil), c.f.Algorithms...)
}

// Order returns the display names of the algorithms in legend order.
func (c *Config) Order() []string {
	names := make([]string, len(c.f.Algorithms))
	for i, a := range c.f.Algorithms {
		names[i] = a.Name
	}
	return names
}

// Without returns a copy of c without the algorithms with the given
// IDs. Unknown IDs are ignored.
func (c *Config) Without(ids ...string) *Config {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	nc := &Config{c.f}
	nc.f.Algorithms = nil
	for _, a := range c.f.Algorithms {
		if !drop[a.ID] {
			nc.f.Algorithms = append(nc.f.Algorithms, a)
		}
	}
	return nc
}

// Label returns the display label for key, or key itself if there is
// none.
func (c *Config) Label(key string) string {
	if l, ok := c.f.Labels[key]; ok {
		return l
	}
	return key
}

// Penalty returns the PAR10 penalty factor.
func (c *Config) Penalty() float64 { return c.f.Penalty }

// TimeLimit returns the CPU time, in seconds, assigned to unsolved
// runs by time-limit imputation.
func (c *Config) TimeLimit() float64 { return c.f.TimeLimit }

// ResultExt returns the extension of result files.
func (c *Config) ResultExt() string { return c.f.ResultExt }

// OptimumSuffix returns the suffix of ground-truth files.
func (c *Config) OptimumSuffix() string { return c.f.OptimumSuffix }

// DomainSettings are the settings of one domain and subdomain.
type DomainSettings struct {
	Domain, Subdomain string
	Title             string

	// Instances is the number of instances of the domain.
	Instances int

	// Params lists the admissible parameter values. An empty list
	// admits nothing.
	Params []resultfmt.Param

	// HeuristicDir is set if result directories of the domain are
	// further split by heuristic.
	HeuristicDir bool
}

// Domain returns the settings of subdomain sub of domain name.
func (c *Config) Domain(name, sub string) (DomainSettings, error) {
	d, ok := c.f.Domains[name]
	if !ok {
		return DomainSettings{}, fmt.Errorf("unknown domain %q (known: %s)", name, keys(c.f.Domains))
	}
	s, ok := d.Subdomains[sub]
	if !ok {
		return DomainSettings{}, fmt.Errorf("unknown subdomain %q of domain %s (known: %s)", sub, name, keys(d.Subdomains))
	}
	return DomainSettings{
		Domain:       name,
		Subdomain:    sub,
		Title:        s.Title,
		Instances:    d.Instances,
		Params:       append([]resultfmt.Param(nil), s.Params...),
		HeuristicDir: d.HeuristicDir,
	}, nil
}

func keys[V any](m map[string]V) string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return strings.Join(ks, ", ")
}
