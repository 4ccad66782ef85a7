package sampling

import (
	"math"

	"github.com/montanaflynn/stats"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/stat/distuv"
)

// CheckMean validates the parameters of SimulateMean.
func CheckMean(mu, sigma float64, nSample, nXbar int) error {
	if math.IsNaN(mu) || math.IsInf(mu, 0) {
		return xerrors.Errorf("mu %v is not finite: %w", mu, ErrInvalidParameter)
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return xerrors.Errorf("sigma %v must be positive and finite: %w", sigma, ErrInvalidParameter)
	}
	return checkCounts(nSample, nXbar)
}

// SimulateMean draws nXbar samples of nSample values from Normal(mu, sigma)
// and records the mean of each sample. The standard error is the population
// standard deviation of the last sample divided by sqrt(nSample).
func (s *Simulator) SimulateMean(mu, sigma float64, nSample, nXbar int) (*Result, error) {
	if err := CheckMean(mu, sigma, nSample, nXbar); err != nil {
		return nil, err
	}
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: s.src}

	xbar := make([]float64, 0, nXbar)
	x := make([]float64, nSample)
	for i := 0; i < nXbar; i++ {
		for j := range x {
			x[j] = dist.Rand()
		}
		m, err := stats.Mean(x)
		if err != nil {
			return nil, xerrors.Errorf("sample mean: %w", err)
		}
		xbar = append(xbar, m)
	}

	return finalize(xbar, x, func(last []float64) (float64, error) {
		sd, err := stats.StandardDeviationPopulation(last)
		if err != nil {
			return 0, err
		}
		return sd / math.Sqrt(float64(len(last))), nil
	})
}
