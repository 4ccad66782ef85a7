// Package report turns simulation results into text summaries, histograms and
// an excel workbook.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/cltScale/SamplingDist/sampling"
	"golang.org/x/xerrors"
)

// Kind tells which point estimate an entry holds.
type Kind string

const (
	// KindMean marks sample means.
	KindMean Kind = "mean"
	// KindProportion marks sample proportions.
	KindProportion Kind = "proportion"
)

// Param is a named population parameter of an experiment.
type Param struct {
	Name  string
	Value float64
}

// Entry is one finished experiment as it is reported.
type Entry struct {
	RunID       string
	Name        string
	Kind        Kind
	Params      []Param
	NSample     int
	Repetitions int
	Result      *sampling.Result
}

func (e Entry) stdevLabel() string {
	if e.Kind == KindProportion {
		return "Stdev Props"
	}
	return "Stdev xbar"
}

// WriteSummary prints the parameters of e, the standard deviation of its
// estimates and the standard error.
func WriteSummary(w io.Writer, e Entry) error {
	if e.Result == nil {
		return xerrors.Errorf("entry %q has no result", e.Name)
	}
	lines := []string{"", fmt.Sprintf("[%s] %s, n_sample = %d, repetitions = %d", e.Name, e.Kind, e.NSample, e.Repetitions)}
	for _, p := range e.Params {
		lines = append(lines, fmt.Sprintf("Set %s =\t%v", p.Name, p.Value))
	}
	lines = append(lines,
		fmt.Sprintf("%s =\t%v", e.stdevLabel(), e.Result.StdevOfEstimates),
		fmt.Sprintf("Std Error =\t%v", e.Result.StandardError),
	)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// WriteHistogram bins the estimates of e with BinWidth and renders them.
func WriteHistogram(w io.Writer, e Entry, width int) error {
	if e.Result == nil {
		return xerrors.Errorf("entry %q has no result", e.Name)
	}
	bins, err := Histogram(e.Result.Estimates, BinWidth(e.Result.StdevOfEstimates))
	if err != nil {
		return err
	}
	return RenderHistogram(w, bins, width)
}

// cellFloat keeps infinities out of numeric cells.
func cellFloat(v float64) interface{} {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Sprint(v)
	}
	return v
}
