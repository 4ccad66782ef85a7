package sampling

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestSimulateMeanShape(t *testing.T) {
	res, err := NewSeededSimulator(1).SimulateMean(3, 2, 20, 300)
	require.NoError(t, err)
	assert.Len(t, res.Estimates, 300)
	assert.GreaterOrEqual(t, res.StdevOfEstimates, 0.0)
	assert.GreaterOrEqual(t, res.StandardError, 0.0)
	assert.InDelta(t, 3, res.Mean(), 0.1)
}

func TestSimulateMeanSingleDraw(t *testing.T) {
	// A sample of one value has no spread, its standard error is zero.
	res, err := NewSeededSimulator(2).SimulateMean(0, 1, 1, 1)
	require.NoError(t, err)
	assert.Len(t, res.Estimates, 1)
	assert.Equal(t, 0.0, res.StdevOfEstimates)
	assert.Equal(t, 0.0, res.StandardError)
}

func TestSimulateMeanUsesLastSample(t *testing.T) {
	const (
		seed    = 42
		mu      = 1.5
		sigma   = 0.5
		nSample = 5
		nXbar   = 3
	)
	res, err := NewSeededSimulator(seed).SimulateMean(mu, sigma, nSample, nXbar)
	require.NoError(t, err)

	r := rand.New(rand.NewPCG(seed, seed))
	var sample []float64
	for i := 0; i < nXbar; i++ {
		sample = make([]float64, nSample)
		for j := range sample {
			sample[j] = r.NormFloat64()*sigma + mu
		}
		m, err := stats.Mean(sample)
		require.NoError(t, err)
		assert.InDelta(t, m, res.Estimates[i], 1e-12)
	}
	sd, err := stats.StandardDeviationPopulation(sample)
	require.NoError(t, err)
	assert.InDelta(t, sd/math.Sqrt(nSample), res.StandardError, 1e-12)
}

func TestSimulateMeanDeterministic(t *testing.T) {
	a, err := NewSeededSimulator(7).SimulateMean(0, 1, 30, 200)
	require.NoError(t, err)
	b, err := NewSeededSimulator(7).SimulateMean(0, 1, 30, 200)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewSeededSimulator(8).SimulateMean(0, 1, 30, 200)
	require.NoError(t, err)
	assert.NotEqual(t, a.Estimates, c.Estimates)
}

func TestSimulateMeanInvalid(t *testing.T) {
	sim := NewSeededSimulator(1)
	for _, tc := range []struct {
		name         string
		mu, sigma    float64
		nSample, nXb int
	}{
		{"zero sigma", 0, 0, 10, 10},
		{"negative sigma", 0, -1, 10, 10},
		{"nan sigma", 0, math.NaN(), 10, 10},
		{"infinite mu", math.Inf(1), 1, 10, 10},
		{"zero sample", 0, 1, 0, 10},
		{"zero repetitions", 0, 1, 10, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res, err := sim.SimulateMean(tc.mu, tc.sigma, tc.nSample, tc.nXb)
			assert.Nil(t, res)
			assert.True(t, xerrors.Is(err, ErrInvalidParameter), "got %v", err)
		})
	}
}

func TestNewSimulatorRandomSource(t *testing.T) {
	a, err := NewSimulator(nil).SimulateMean(0, 1, 10, 20)
	require.NoError(t, err)
	b, err := NewSimulator(nil).SimulateMean(0, 1, 10, 20)
	require.NoError(t, err)
	assert.NotEqual(t, a.Estimates, b.Estimates)
}

func TestSimulateMeanConvergence(t *testing.T) {
	sim := NewSeededSimulator(11)

	res, err := sim.SimulateMean(0, 1, 10, 5000)
	require.NoError(t, err)
	assert.InEpsilon(t, 1/math.Sqrt(10), res.StdevOfEstimates, 0.1)

	if testing.Short() {
		t.Skip("large sample skipped in short mode")
	}
	res, err = sim.SimulateMean(0, 1, 10000, 5000)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.01, res.StdevOfEstimates, 0.1)
	assert.InEpsilon(t, 0.01, res.StandardError, 0.1)
	assert.Less(t, res.RelativeGap(), 0.1)
}

func TestSimulateProportionFair(t *testing.T) {
	res, err := NewSeededSimulator(5).SimulateProportion(0.5, 100, 1000)
	require.NoError(t, err)
	assert.Len(t, res.Estimates, 1000)
	assert.InDelta(t, 0.5, res.Mean(), 0.05)
	assert.InEpsilon(t, math.Sqrt(0.5*0.5/100), res.StandardError, 0.2)
	assert.LessOrEqual(t, res.StandardError, 0.5/math.Sqrt(100))
	for _, p := range res.Estimates {
		assert.True(t, p >= 0 && p <= 1)
	}
}

func TestSimulateProportionSpread(t *testing.T) {
	sim := NewSeededSimulator(5)
	skewed, err := sim.SimulateProportion(0.05, 100, 1000)
	require.NoError(t, err)
	fair, err := sim.SimulateProportion(0.5, 100, 1000)
	require.NoError(t, err)

	vSkewed, err := stats.PopulationVariance(skewed.Estimates)
	require.NoError(t, err)
	vFair, err := stats.PopulationVariance(fair.Estimates)
	require.NoError(t, err)
	assert.Less(t, vSkewed, vFair)
	assert.Less(t, skewed.StdevOfEstimates, fair.StdevOfEstimates)
}

// thirdMoment is the third central moment, positive for a right-skewed
// distribution.
func thirdMoment(t *testing.T, values []float64) float64 {
	m, err := stats.Mean(values)
	require.NoError(t, err)
	var sum float64
	for _, v := range values {
		sum += math.Pow(v-m, 3)
	}
	return sum / float64(len(values))
}

func TestSimulateProportionSkew(t *testing.T) {
	sim := NewSeededSimulator(17)
	low, err := sim.SimulateProportion(0.05, 100, 1000)
	require.NoError(t, err)
	high, err := sim.SimulateProportion(0.95, 100, 1000)
	require.NoError(t, err)

	assert.Greater(t, thirdMoment(t, low.Estimates), 0.0)
	assert.Less(t, thirdMoment(t, high.Estimates), 0.0)
}

func TestSimulateProportionCertain(t *testing.T) {
	sim := NewSeededSimulator(3)
	for _, p := range []float64{0, 1} {
		res, err := sim.SimulateProportion(p, 50, 20)
		require.NoError(t, err)
		for _, e := range res.Estimates {
			assert.Equal(t, p, e)
		}
		assert.Equal(t, 0.0, res.StdevOfEstimates)
		assert.Equal(t, 0.0, res.StandardError)
		assert.Equal(t, 0.0, res.RelativeGap())
	}
}

func TestSimulateProportionDieRoll(t *testing.T) {
	const (
		seed    = 9
		pTrue   = 0.3
		nSample = 10
		nProp   = 4
	)
	res, err := NewSeededSimulator(seed).SimulateProportion(pTrue, nSample, nProp)
	require.NoError(t, err)

	r := rand.New(rand.NewPCG(seed, seed))
	var p float64
	for i := 0; i < nProp; i++ {
		cnt := 0
		for j := 0; j < nSample; j++ {
			if r.IntN(DieFaces) < 30 {
				cnt++
			}
		}
		p = float64(cnt) / nSample
		assert.Equal(t, p, res.Estimates[i])
	}
	assert.InDelta(t, math.Sqrt(p*(1-p)/nSample), res.StandardError, 1e-15)
}

func TestSimulateProportionHundredths(t *testing.T) {
	// 0.07*100 is slightly above 7 in floating point, the die must still
	// count exactly seven faces.
	res, err := NewSeededSimulator(21).SimulateProportion(0.07, 1000, 200)
	require.NoError(t, err)
	assert.InDelta(t, 0.07, res.Mean(), 0.005)

	// between hundredths the die rounds up: p < 0.004*100 holds for face 0
	res, err = NewSeededSimulator(22).SimulateProportion(0.004, 1000, 200)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, res.Mean(), 0.002)

	res, err = NewSeededSimulator(23).SimulateProportion(0.054, 1000, 200)
	require.NoError(t, err)
	assert.InDelta(t, 0.06, res.Mean(), 0.005)
}

func TestSimulateProportionBernoulli(t *testing.T) {
	sim := NewSeededSimulator(13)
	sim.Trial = Bernoulli
	res, err := sim.SimulateProportion(0.5, 100, 1000)
	require.NoError(t, err)
	assert.Len(t, res.Estimates, 1000)
	assert.InDelta(t, 0.5, res.Mean(), 0.05)
	assert.InEpsilon(t, 0.05, res.StdevOfEstimates, 0.2)
	assert.LessOrEqual(t, res.StandardError, 0.05)

	again := NewSeededSimulator(13)
	again.Trial = Bernoulli
	res2, err := again.SimulateProportion(0.5, 100, 1000)
	require.NoError(t, err)
	assert.Equal(t, res.Estimates, res2.Estimates)
}

func TestSimulateProportionInvalid(t *testing.T) {
	sim := NewSeededSimulator(1)
	for _, tc := range []struct {
		name           string
		p              float64
		nSample, nProp int
	}{
		{"p above one", 1.5, 100, 10},
		{"negative p", -0.1, 100, 10},
		{"nan p", math.NaN(), 100, 10},
		{"zero sample", 0.5, 0, 10},
		{"zero repetitions", 0.5, 100, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res, err := sim.SimulateProportion(tc.p, tc.nSample, tc.nProp)
			assert.Nil(t, res)
			assert.True(t, xerrors.Is(err, ErrInvalidParameter), "got %v", err)
		})
	}

	sim.Trial = Trial(7)
	_, err := sim.SimulateProportion(0.5, 10, 10)
	assert.True(t, xerrors.Is(err, ErrInvalidParameter))
}

func TestParseTrial(t *testing.T) {
	for in, want := range map[string]Trial{"": DieRoll, "die": DieRoll, " Bernoulli ": Bernoulli} {
		got, err := ParseTrial(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseTrial("coin")
	assert.True(t, xerrors.Is(err, ErrInvalidParameter))
	assert.Equal(t, "bernoulli", Bernoulli.String())
}

func TestRelativeGap(t *testing.T) {
	assert.InDelta(t, 0.5, (&Result{StdevOfEstimates: 1.5, StandardError: 1}).RelativeGap(), 1e-12)
	assert.True(t, math.IsInf((&Result{StdevOfEstimates: 0.1}).RelativeGap(), 1))
}
