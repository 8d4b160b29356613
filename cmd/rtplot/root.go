// Copyright 2026 The rteval Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/rtsearch/rteval/config"
	"github.com/rtsearch/rteval/optimum"
	"github.com/rtsearch/rteval/resultfmt"
	"github.com/rtsearch/rteval/resultmath"
	"github.com/rtsearch/rteval/resultproc"
	"github.com/rtsearch/rteval/resultseries"
)

type options struct {
	domain, subdomain string
	heuristic         string
	lower, upper      float64
	plotType          string

	results, worlds string
	outDir          string
	configFile      string
	remove          []string

	baseline   string
	trackAlg   string
	trackParam string
	metric     string
	dedup      string
	logScale   bool
	verbose    bool
}

// metricPlots are the plot types that chart a raw metric.
var metricPlots = map[string]resultfmt.Metric{
	"nodeGen":        resultfmt.NodeGenerated,
	"nodeExp":        resultfmt.NodeExpanded,
	"gatNodeGen":     resultfmt.GATNodeExpanded,
	"solutionLength": resultfmt.SolutionLength,
	"cpu":            resultfmt.CPUTime,
}

var otherPlots = []string{"gatRatio", "nodeGenDiff", "allSolved", "par10", "timeLimit", "coveragetb", "coverageplt"}

func plotTypes() []string {
	var ts []string
	for t := range metricPlots {
		ts = append(ts, t)
	}
	sort.Strings(ts)
	return append(otherPlots, ts...)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:          "rtplot",
		Short:        "Summarize real-time search experiments",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(&o, stdout, newLogger(stderr, o.verbose))
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&o.domain, "domain", "d", "gridPathfinding", "domain: gridPathfinding, tile, pancake, racetrack, vacuumworld")
	f.StringVarP(&o.subdomain, "subdomain", "s", "goalObstacleField", "subdomain of the domain")
	f.StringVar(&o.heuristic, "heuristic", "euclidean", "heuristic directory, for domains split by heuristic")
	f.Float64VarP(&o.lower, "start", "b", 4, "smallest parameter value to read")
	f.Float64VarP(&o.upper, "end", "e", 1000, "largest parameter value to read")
	f.StringVarP(&o.plotType, "type", "t", "gatRatio", "plot type: "+strings.Join(plotTypes(), ", "))
	f.StringVar(&o.results, "results", "results", "root directory of result files")
	f.StringVar(&o.worlds, "worlds", "worlds", "root directory of instance files with optimal costs")
	f.StringVar(&o.outDir, "out", "plots", "output directory")
	f.StringVar(&o.configFile, "config", "", "YAML configuration `file` (default built in)")
	f.StringArrayVarP(&o.remove, "remove", "r", nil, "omit the algorithm with this `id` (repeatable)")
	f.StringVar(&o.baseline, "baseline", "", "baseline algorithm name for nodeGenDiff (default first algorithm)")
	f.StringVar(&o.trackAlg, "track-alg", "", "algorithm name whose worst quality ratio is reported (default first algorithm)")
	f.StringVar(&o.trackParam, "track-param", "10", "parameter value whose worst quality ratio is reported")
	f.StringVar(&o.metric, "metric", "cpu", "metric imputed by par10")
	f.StringVar(&o.dedup, "dedup", "first", "duplicate result policy: first, all or reject")
	f.BoolVar(&o.logScale, "log", false, "use a log scale for point charts")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log skipped files and other details")
	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    w != io.Writer(os.Stderr),
	}))
}

func run(o *options, stdout io.Writer, log *slog.Logger) error {
	_, isMetric := metricPlots[o.plotType]
	if !isMetric && !contains(otherPlots, o.plotType) {
		return fmt.Errorf("unknown plot type %q (want one of %s)", o.plotType, strings.Join(plotTypes(), ", "))
	}
	dedup, err := resultfmt.ParseDedupPolicy(o.dedup)
	if err != nil {
		return err
	}
	if o.lower > o.upper {
		return fmt.Errorf("parameter range [%g, %g] is empty", o.lower, o.upper)
	}

	cfg := config.Default()
	if o.configFile != "" {
		if cfg, err = config.LoadFile(o.configFile); err != nil {
			return err
		}
	}
	cfg = cfg.Without(o.remove...)
	algs := cfg.Algorithms()
	if len(algs) == 0 {
		return fmt.Errorf("no algorithms left to compare")
	}
	ds, err := cfg.Domain(o.domain, o.subdomain)
	if err != nil {
		return err
	}

	dir := path.Join(o.domain, o.subdomain)
	if ds.HeuristicDir {
		dir = path.Join(dir, o.heuristic)
	}
	var sources []resultfmt.Source
	styles := make(map[string]resultseries.Style)
	for _, a := range algs {
		sources = append(sources, resultfmt.Source{Algorithm: a.Name, Dir: path.Join(dir, a.ID)})
		styles[a.Name] = resultseries.Style{Color: a.RGBA(), Marker: a.Marker}
	}

	loader := &resultfmt.Loader{
		FS:     os.DirFS(o.results),
		Ext:    cfg.ResultExt(),
		Admit:  resultfmt.Admission{Lower: o.lower, Upper: o.upper, Allowed: ds.Params},
		Dedup:  dedup,
		Logger: log,
	}
	tab, err := loader.Load(sources)
	if err != nil {
		return err
	}
	log.Info("loaded results", "records", tab.Len(), "domain", o.domain, "subdomain", o.subdomain)
	if tab.Len() == 0 {
		log.Warn("no results admitted", "params", ds.Params, "start", o.lower, "end", o.upper)
	}

	if err := os.MkdirAll(o.outDir, 0o777); err != nil {
		return err
	}
	out := &output{dir: o.outDir, prefix: filePrefix(o, ds), stdout: stdout, log: log}
	chart := resultseries.ChartOptions{
		Title:    ds.Title,
		XLabel:   cfg.Label("lookahead"),
		YLabel:   cfg.Label(o.plotType),
		LogScale: o.logScale,
		Order:    cfg.Order(),
		Styles:   styles,
	}
	first := algs[0].Name

	switch o.plotType {
	case "gatRatio":
		idx := optimum.New(os.DirFS(o.worlds), path.Join(o.domain, o.subdomain), cfg.OptimumSuffix())
		if err := idx.Preload(tab.Genuine().Instances()); err != nil {
			return err
		}
		log.Debug("read optimal costs", "instances", idx.Len())
		track := resultmath.Track{Algorithm: orDefault(o.trackAlg, first), Param: resultfmt.Param(o.trackParam)}
		dt, worst, err := resultmath.QualityRatio(tab, idx, track)
		if err != nil {
			return err
		}
		if worst.Found {
			log.Info("worst quality ratio", "algorithm", track.Algorithm, "param", track.Param, "ratio", worst.Ratio, "instance", worst.Instance)
		}
		return out.derived(o.plotType, dt, chart)

	case "nodeGenDiff":
		baseline := orDefault(o.baseline, first)
		f := resultproc.CompleteFilter{Baseline: baseline, Algorithms: cfg.Order()}
		counts := f.Counts(tab)
		for _, p := range tab.Params() {
			log.Info("comparable instances", "param", p, "instances", counts[p])
		}
		dt := resultmath.RatioToBaseline(f.Apply(tab), baseline, resultfmt.NodeGenerated)
		return out.derived(o.plotType, dt, chart)

	case "allSolved":
		chart.YLabel = cfg.Label("nodeGen")
		dt := resultmath.MetricTable(resultproc.AllSolved(tab), resultfmt.NodeGenerated)
		return out.derived(o.plotType, dt, chart)

	case "par10":
		m, err := resultfmt.ParseMetric(o.metric)
		if err != nil {
			return err
		}
		im := resultmath.Imputer{Expected: ds.Instances, Penalty: cfg.Penalty()}
		return out.derived(o.plotType, resultmath.MetricTable(im.Par10(tab), m), chart)

	case "timeLimit":
		tl := resultmath.TimeLimit{Expected: ds.Instances, Limit: cfg.TimeLimit()}
		return out.derived(o.plotType, resultmath.MetricTable(tl.Impute(tab), resultfmt.CPUTime), chart)

	case "coveragetb":
		cov := resultproc.NewCoverage(tab)
		if err := resultseries.CoverageText(stdout, cov, ds.Instances); err != nil {
			return err
		}
		return out.file(o.plotType+".txt", func(w io.Writer) error {
			return resultseries.CoverageText(w, cov, ds.Instances)
		})

	case "coverageplt":
		cov := resultproc.NewCoverage(tab)
		chart.YLabel = strings.ReplaceAll(cfg.Label("solved"), "totalInstance", strconv.Itoa(ds.Instances))
		chart.Order = nil
		if err := out.file(o.plotType+".csv", func(w io.Writer) error {
			return resultseries.WriteSummaryCSV(w, resultmath.SolvedColumn, resultmath.Summarize(resultmath.CoverageTable(cov)))
		}); err != nil {
			return err
		}
		pl, err := resultseries.CoverageChart(cov, chart)
		if err != nil {
			return err
		}
		return out.png(o.plotType, pl, chart)
	}

	return out.derived(o.plotType, resultmath.MetricTable(tab, metricPlots[o.plotType]), chart)
}

// filePrefix mirrors the directory layout and removed algorithms in
// output file names.
func filePrefix(o *options, ds config.DomainSettings) string {
	parts := []string{ds.Domain, ds.Subdomain}
	if ds.HeuristicDir {
		parts = append(parts, o.heuristic)
	}
	for _, id := range o.remove {
		parts = append(parts, "no-"+id)
	}
	return strings.Join(parts, "-") + "-"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
