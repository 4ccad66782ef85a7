package platform

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/cltScale/SamplingDist/onet"
	"github.com/cltScale/SamplingDist/onet/log"
	"github.com/cltScale/SamplingDist/sampling"
	"golang.org/x/xerrors"
)

// Config holds everything a run-file describes.
type Config struct {
	// Debugging-level: 0 is none - 5 is everything
	Debug int
	// Seed from which every experiment derives its own random source
	SimulationSeed int
	// RandomSeed ignores SimulationSeed and seeds every experiment randomly
	RandomSeed bool
	// Report is the path of the xlsx-file to write, empty for none
	Report string
	// Histogram prints a text histogram after each summary
	Histogram bool

	Mean       []MeanExperiment
	Proportion []ProportionExperiment
}

// MeanExperiment is the sampling distribution of the mean of a normal
// population.
type MeanExperiment struct {
	Name    string
	Mu      float64
	Sigma   float64
	NSample int
	NXbar   int
}

// ProportionExperiment is the sampling distribution of a success proportion.
type ProportionExperiment struct {
	Name    string
	PTrue   float64
	NSample int
	NProp   int
	// Trial is "die" (default) or "bernoulli"
	Trial string
}

// DefaultConfig returns the classic demonstration: means of samples of 50
// standard normal values, and proportions of 100 die rolls for a true
// probability of 5%, 50% and 95%.
func DefaultConfig() *Config {
	return &Config{
		Debug:          1,
		SimulationSeed: 9,
		Mean: []MeanExperiment{
			{Name: "normal", Mu: 0, Sigma: 1, NSample: 50, NXbar: 1000},
		},
		Proportion: []ProportionExperiment{
			{Name: "p=0.05", PTrue: 0.05, NSample: 100, NProp: 1000},
			{Name: "p=0.5", PTrue: 0.5, NSample: 100, NProp: 1000},
			{Name: "p=0.95", PTrue: 0.95, NSample: 100, NProp: 1000},
		},
	}
}

// NewConfig decodes a run-file given as a string. Debug and SimulationSeed
// default to the values of DefaultConfig; the experiment lists of
// DefaultConfig are used only if the run-file defines no experiment at all.
func NewConfig(config string) (*Config, error) {
	c := newConfig()
	md, err := toml.Decode(config, c)
	if err != nil {
		return nil, xerrors.Errorf("decoding: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.Warn("Unknown key in run-file:", key.String())
	}
	c.fill()
	return c, nil
}

// LoadConfig reads and decodes the run-file at path, like NewConfig.
func LoadConfig(path string) (*Config, error) {
	c := newConfig()
	if err := onet.ReadTomlConfig(c, path); err != nil {
		return nil, err
	}
	c.fill()
	return c, nil
}

func newConfig() *Config {
	dft := DefaultConfig()
	return &Config{Debug: dft.Debug, SimulationSeed: dft.SimulationSeed}
}

func (c *Config) fill() {
	if len(c.Mean) == 0 && len(c.Proportion) == 0 {
		dft := DefaultConfig()
		c.Mean, c.Proportion = dft.Mean, dft.Proportion
	}
	for i := range c.Mean {
		if c.Mean[i].Name == "" {
			c.Mean[i].Name = fmt.Sprintf("mean-%d", i+1)
		}
	}
	for i := range c.Proportion {
		if c.Proportion[i].Name == "" {
			c.Proportion[i].Name = fmt.Sprintf("proportion-%d", i+1)
		}
	}
}

// Validate checks every experiment before anything is simulated. Parameter
// errors wrap sampling.ErrInvalidParameter.
func (c *Config) Validate() error {
	if len(c.Mean)+len(c.Proportion) == 0 {
		return xerrors.New("no experiment configured")
	}
	names := make(map[string]bool)
	unique := func(name string) error {
		if names[name] {
			return xerrors.Errorf("experiment name %q used twice", name)
		}
		names[name] = true
		return nil
	}
	for _, m := range c.Mean {
		if err := unique(m.Name); err != nil {
			return err
		}
		if err := sampling.CheckMean(m.Mu, m.Sigma, m.NSample, m.NXbar); err != nil {
			return xerrors.Errorf("experiment %q: %w", m.Name, err)
		}
	}
	for _, p := range c.Proportion {
		if err := unique(p.Name); err != nil {
			return err
		}
		if err := sampling.CheckProportion(p.PTrue, p.NSample, p.NProp); err != nil {
			return xerrors.Errorf("experiment %q: %w", p.Name, err)
		}
		if _, err := sampling.ParseTrial(p.Trial); err != nil {
			return xerrors.Errorf("experiment %q: %w", p.Name, err)
		}
	}
	return nil
}
