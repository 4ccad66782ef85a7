package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/montanaflynn/stats"
	"golang.org/x/xerrors"
)

// MaxBins caps the number of bins Histogram produces.
const MaxBins = 200

// Bin is one histogram bar covering [Low, High).
type Bin struct {
	Low   float64
	High  float64
	Count int
}

// BinWidth returns the bar width used for a sampling distribution with the
// given standard deviation: a fifth of it.
func BinWidth(stdev float64) float64 {
	return stdev / 5
}

// Histogram counts values into bins of width binWidth, starting at the
// smallest value. The last bin also holds the maximum. A non-positive or
// non-finite width, or values without a finite spread, give a single bin.
func Histogram(values []float64, binWidth float64) ([]Bin, error) {
	min, err := stats.Min(values)
	if err != nil {
		return nil, xerrors.Errorf("histogram: %w", err)
	}
	max, err := stats.Max(values)
	if err != nil {
		return nil, xerrors.Errorf("histogram: %w", err)
	}
	span := max - min
	if !(binWidth > 0) || math.IsInf(binWidth, 0) || span == 0 || math.IsInf(span, 0) {
		return []Bin{{Low: min, High: max, Count: len(values)}}, nil
	}
	// compare as float: the count may not fit an int
	var n int
	if c := span / binWidth; c >= MaxBins {
		n = MaxBins
		binWidth = span / MaxBins
	} else {
		n = int(c) + 1
	}
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Low = min + float64(i)*binWidth
		bins[i].High = min + float64(i+1)*binWidth
	}
	for _, v := range values {
		i := int((v - min) / binWidth)
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins, nil
}

// RenderHistogram writes one line per bin with a bar of '*'. The fullest bin
// gets width stars.
func RenderHistogram(w io.Writer, bins []Bin, width int) error {
	most := 0
	for _, b := range bins {
		if b.Count > most {
			most = b.Count
		}
	}
	for _, b := range bins {
		stars := 0
		if most > 0 {
			stars = b.Count * width / most
		}
		if _, err := fmt.Fprintf(w, "%10.4f | %-*s %d\n", b.Low, width, strings.Repeat("*", stars), b.Count); err != nil {
			return err
		}
	}
	return nil
}
