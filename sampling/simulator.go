// Package sampling simulates the sampling distribution of a point estimate and
// compares its spread with the standard error predicted from a single sample.
//
// For a mean, the estimates come from samples drawn from a normal population
// and the standard error is the population standard deviation of the last
// sample divided by the square root of the sample size. For a proportion, the
// estimates are success rates of biased die rolls (or Bernoulli draws) and the
// standard error is sqrt(p(1-p)/n) of the last proportion. The last sample is
// used on purpose: any single sample stands in for the unknown population.
package sampling

import (
	"math"
	"math/rand/v2"

	"github.com/montanaflynn/stats"
	"golang.org/x/xerrors"
)

// ErrInvalidParameter is returned, wrapped, for every out-of-domain input.
var ErrInvalidParameter = xerrors.New("invalid parameter")

// Result is the outcome of one simulation.
type Result struct {
	// Estimates holds one point estimate per repetition, in generation order.
	Estimates []float64
	// StdevOfEstimates is the population standard deviation of Estimates.
	StdevOfEstimates float64
	// StandardError is computed from the last sample only.
	StandardError float64
}

// Mean returns the mean of the estimates.
func (r *Result) Mean() float64 {
	m, err := stats.Mean(r.Estimates)
	if err != nil {
		return math.NaN()
	}
	return m
}

// RelativeGap returns |StdevOfEstimates - StandardError| / StandardError.
// It is 0 if both are 0 and +Inf if only the standard error is 0.
func (r *Result) RelativeGap() float64 {
	diff := math.Abs(r.StdevOfEstimates - r.StandardError)
	if r.StandardError == 0 {
		if diff == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return diff / r.StandardError
}

// Simulator draws samples from one random source. It is not safe for
// concurrent use; give every goroutine its own Simulator.
type Simulator struct {
	// Trial selects how a single proportion trial is drawn. DieRoll by default.
	Trial Trial

	src rand.Source
	rnd *rand.Rand
}

// NewSimulator returns a simulator drawing from src. A nil src is replaced by a
// PCG seeded from the runtime-seeded global source.
func NewSimulator(src rand.Source) *Simulator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Simulator{src: src, rnd: rand.New(src)}
}

// NewSeededSimulator returns a simulator that produces the same draws for the
// same seed.
func NewSeededSimulator(seed uint64) *Simulator {
	return NewSimulator(rand.NewPCG(seed, seed))
}

func finalize(estimates, last []float64, se func(last []float64) (float64, error)) (*Result, error) {
	stdev, err := stats.StandardDeviationPopulation(estimates)
	if err != nil {
		return nil, xerrors.Errorf("stdev of estimates: %w", err)
	}
	stdErr, err := se(last)
	if err != nil {
		return nil, xerrors.Errorf("standard error: %w", err)
	}
	return &Result{
		Estimates:        estimates,
		StdevOfEstimates: stdev,
		StandardError:    stdErr,
	}, nil
}

func checkCounts(nSample, repetitions int) error {
	if nSample < 1 {
		return xerrors.Errorf("sample size %d < 1: %w", nSample, ErrInvalidParameter)
	}
	if repetitions < 1 {
		return xerrors.Errorf("repetitions %d < 1: %w", repetitions, ErrInvalidParameter)
	}
	return nil
}
