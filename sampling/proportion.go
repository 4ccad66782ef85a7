package sampling

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Trial is the mechanism drawing one success/failure outcome.
type Trial int

const (
	// DieRoll rolls a 100-sided die and counts a success when the outcome is
	// below p_true*100. p_true is thereby rounded up to hundredths; float noise
	// such as 0.07*100 = 7.000000000000001 does not add a face.
	DieRoll Trial = iota
	// Bernoulli draws a success with probability p_true directly.
	Bernoulli
)

// DieFaces is the number of outcomes of the die used by DieRoll.
const DieFaces = 100

const dieEpsilon = 1e-9

func (t Trial) String() string {
	switch t {
	case DieRoll:
		return "die"
	case Bernoulli:
		return "bernoulli"
	default:
		return fmt.Sprintf("Trial(%d)", int(t))
	}
}

// ParseTrial returns the trial named s; the empty string means DieRoll.
func ParseTrial(s string) (Trial, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "die":
		return DieRoll, nil
	case "bernoulli":
		return Bernoulli, nil
	}
	return 0, xerrors.Errorf("unknown trial %q: %w", s, ErrInvalidParameter)
}

// CheckProportion validates the parameters of SimulateProportion.
func CheckProportion(pTrue float64, nSample, nProp int) error {
	if !(pTrue >= 0 && pTrue <= 1) {
		return xerrors.Errorf("p_true %v outside [0,1]: %w", pTrue, ErrInvalidParameter)
	}
	return checkCounts(nSample, nProp)
}

// SimulateProportion runs nProp samples of nSample trials with success
// probability pTrue and records the success proportion of each sample. The
// standard error is sqrt(p(1-p)/nSample) of the last proportion.
func (s *Simulator) SimulateProportion(pTrue float64, nSample, nProp int) (*Result, error) {
	if err := CheckProportion(pTrue, nSample, nProp); err != nil {
		return nil, err
	}
	trial, err := s.trial(pTrue)
	if err != nil {
		return nil, err
	}

	pHat := make([]float64, 0, nProp)
	for i := 0; i < nProp; i++ {
		cntSuccess := 0
		for j := 0; j < nSample; j++ {
			if trial() {
				cntSuccess++
			}
		}
		pHat = append(pHat, float64(cntSuccess)/float64(nSample))
	}

	last := pHat[len(pHat)-1:]
	return finalize(pHat, last, func(last []float64) (float64, error) {
		p := last[0]
		return math.Sqrt(p * (1 - p) / float64(nSample)), nil
	})
}

func (s *Simulator) trial(pTrue float64) (func() bool, error) {
	switch s.Trial {
	case DieRoll:
		threshold := int(math.Ceil(pTrue*DieFaces - dieEpsilon))
		return func() bool {
			return s.rnd.IntN(DieFaces) < threshold
		}, nil
	case Bernoulli:
		dist := distuv.Bernoulli{P: pTrue, Src: s.src}
		return func() bool {
			return dist.Rand() == 1
		}, nil
	}
	return nil, xerrors.Errorf("%v: %w", s.Trial, ErrInvalidParameter)
}
