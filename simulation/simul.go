/*
Package simul runs the sampling-distribution simulations described by toml
run-files and reports on them.

A run-file lists mean experiments (normal population with Mu and Sigma) and
proportion experiments (true success probability PTrue). For each experiment the
standard deviation of the point estimates is printed next to the standard error
computed from a single sample; both should be close. Optionally a text histogram
is printed and an xlsx-report is written.
*/
package simul

import (
	"flag"
	"io"
	"os"

	"github.com/cltScale/SamplingDist/onet/log"
	"github.com/cltScale/SamplingDist/report"
	"github.com/cltScale/SamplingDist/simulation/platform"
	"golang.org/x/xerrors"
)

// HistogramWidth is the length of the longest bar of a text histogram.
const HistogramWidth = 60

// path of the xlsx-report, overrides the run-file
var reportPath string

// print text histograms even if the run-file doesn't ask for them
var histogram bool

// Initialize before 'init' so we can directly use the fields as parameters
func init() {
	flag.StringVar(&reportPath, "report", "", "xlsx-file to write the report to")
	flag.BoolVar(&histogram, "histogram", false, "print a text histogram of every experiment")
	log.RegisterFlags()
}

// Start has to be called by the main-file. Every rc is interpreted as a
// toml-file to load and simulate; without rcs the command line arguments are
// used. Any error is fatal.
func Start(rcs ...string) {
	if !flag.Parsed() {
		flag.Parse()
	}
	if len(rcs) == 0 {
		rcs = flag.Args()
	}
	if len(rcs) == 0 {
		log.Fatal("No run-file given")
	}
	for _, rc := range rcs {
		log.Lvl2("Running toml-file:", rc)
		log.ErrFatal(Run(rc, os.Stdout), "while running", rc)
	}
}

// Run loads the run-file rc and simulates it, writing the summaries to w.
func Run(rc string, w io.Writer) error {
	cfg, err := platform.LoadConfig(rc)
	if err != nil {
		return xerrors.Errorf("loading %s: %w", rc, err)
	}
	return RunConfig(cfg, w)
}

// RunConfig simulates all experiments of cfg, prints their summaries (and
// histograms) to w and writes the xlsx-report if one is configured.
func RunConfig(cfg *platform.Config, w io.Writer) error {
	if cfg.Debug > 0 && cfg.Debug > log.DebugVisible() {
		log.SetDebugVisible(cfg.Debug)
	}
	if reportPath != "" {
		cfg.Report = reportPath
	}
	outcomes, err := platform.Simulate(cfg)
	if err != nil {
		return err
	}

	entries := make([]report.Entry, len(outcomes))
	for i, o := range outcomes {
		entries[i] = o.Entry()
		if err := report.WriteSummary(w, entries[i]); err != nil {
			return xerrors.Errorf("writing summary: %w", err)
		}
		if cfg.Histogram || histogram {
			if err := report.WriteHistogram(w, entries[i], HistogramWidth); err != nil {
				return xerrors.Errorf("writing histogram: %w", err)
			}
		}
	}

	if cfg.Report != "" {
		if err := report.WriteWorkbook(cfg.Report, entries); err != nil {
			return err
		}
		log.LLvl1("Report written to", cfg.Report)
	}
	return nil
}
