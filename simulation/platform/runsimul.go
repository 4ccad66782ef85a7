package platform

import (
	"context"
	"math/rand/v2"

	"github.com/DmitriyVTitov/size"
	"github.com/cltScale/SamplingDist/onet/log"
	"github.com/cltScale/SamplingDist/report"
	"github.com/cltScale/SamplingDist/sampling"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// Outcome is a finished experiment.
type Outcome struct {
	RunID       string
	Name        string
	Kind        report.Kind
	Params      []report.Param
	NSample     int
	Repetitions int
	Result      *sampling.Result
}

// Entry converts the outcome for the report package.
func (o *Outcome) Entry() report.Entry {
	return report.Entry{
		RunID:       o.RunID,
		Name:        o.Name,
		Kind:        o.Kind,
		Params:      o.Params,
		NSample:     o.NSample,
		Repetitions: o.Repetitions,
		Result:      o.Result,
	}
}

// experiment is one unit of work, built from the config before anything runs.
type experiment struct {
	outcome *Outcome
	run     func(sim *sampling.Simulator) (*sampling.Result, error)
	trial   sampling.Trial
}

func (c *Config) experiments() ([]experiment, error) {
	var exps []experiment
	for _, m := range c.Mean {
		exps = append(exps, experiment{
			outcome: &Outcome{
				Name:        m.Name,
				Kind:        report.KindMean,
				Params:      []report.Param{{Name: "mu", Value: m.Mu}, {Name: "sigma", Value: m.Sigma}},
				NSample:     m.NSample,
				Repetitions: m.NXbar,
			},
			run: func(sim *sampling.Simulator) (*sampling.Result, error) {
				return sim.SimulateMean(m.Mu, m.Sigma, m.NSample, m.NXbar)
			},
		})
	}
	for _, p := range c.Proportion {
		trial, err := sampling.ParseTrial(p.Trial)
		if err != nil {
			return nil, xerrors.Errorf("experiment %q: %w", p.Name, err)
		}
		exps = append(exps, experiment{
			outcome: &Outcome{
				Name:        p.Name,
				Kind:        report.KindProportion,
				Params:      []report.Param{{Name: "p_true", Value: p.PTrue}},
				NSample:     p.NSample,
				Repetitions: p.NProp,
			},
			run: func(sim *sampling.Simulator) (*sampling.Result, error) {
				return sim.SimulateProportion(p.PTrue, p.NSample, p.NProp)
			},
			trial: trial,
		})
	}
	return exps, nil
}

// simulator returns the random source of the i-th experiment. With a fixed
// SimulationSeed every experiment gets its own stream, so the results do not
// depend on the order in which the experiments are scheduled.
func (c *Config) simulator(i int) *sampling.Simulator {
	if c.RandomSeed {
		return sampling.NewSimulator(nil)
	}
	return sampling.NewSimulator(rand.NewPCG(uint64(c.SimulationSeed), uint64(i)))
}

// Simulate validates the config and runs all its experiments: the mean
// experiments first, then the proportion experiments, and returns their
// outcomes in that order. The first failing experiment aborts the run.
func Simulate(c *Config) ([]*Outcome, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	exps, err := c.experiments()
	if err != nil {
		return nil, err
	}
	log.Lvl1("Simulating", len(exps), "experiments with seed", c.SimulationSeed, "random:", c.RandomSeed)

	outcomes := make([]*Outcome, len(exps))
	errs, _ := errgroup.WithContext(context.Background())
	for i, exp := range exps {
		errs.Go(func() error {
			sim := c.simulator(i)
			sim.Trial = exp.trial
			o := exp.outcome
			o.RunID = uuid.New().String()
			log.Lvl2("Starting experiment", o.Name, "run", o.RunID)
			res, err := exp.run(sim)
			if err != nil {
				return xerrors.Errorf("experiment %q: %w", o.Name, err)
			}
			o.Result = res
			log.Lvlf3("Experiment %s done: %d estimates occupy %d bytes", o.Name,
				len(res.Estimates), size.Of(res.Estimates))
			outcomes[i] = o
			return nil
		})
	}
	if err := errs.Wait(); err != nil {
		return nil, xerrors.Errorf("error from simulation run: %w", err)
	}
	log.Lvl1("Simulate is returning")
	return outcomes, nil
}
