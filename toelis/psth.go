package toelis

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrBadBins is returned for bin edges that cannot form a histogram.
var ErrBadBins = errors.New("invalid histogram bins")

// MaxBins is the largest number of bins Edges will produce.
const MaxBins = 1 << 20

// Edges returns evenly spaced bin edges of the given width covering
// [lo, hi]. The last edge is the first multiple of width past lo that is
// not below hi, and there is always at least one bin.
func Edges(lo, hi, width float64) ([]float64, error) {
	if !(width > 0) || math.IsInf(width, 0) {
		return nil, fmt.Errorf("%w: width %v", ErrBadBins, width)
	}
	if !(hi > lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: range [%v, %v]", ErrBadBins, lo, hi)
	}
	bins := math.Ceil((hi - lo) / width)
	if math.IsInf(bins, 0) || bins > MaxBins {
		return nil, fmt.Errorf("%w: width %v splits [%v, %v] into more than %d bins", ErrBadBins, width, lo, hi, MaxBins)
	}
	n := max(int(bins), 1)
	edges := make([]float64, n+1)
	floats.Span(edges, lo, lo+float64(n)*width)
	if err := checkEdges(edges); err != nil {
		return nil, err
	}
	return edges, nil
}

// Histogram counts the events of every trial of x into the bins
// [edges[i], edges[i+1]). Events outside [edges[0], edges[len-1]) are not
// counted. edges must be increasing and hold at least two values.
func Histogram(x Unit[float64], edges []float64) ([]float64, error) {
	if err := checkEdges(edges); err != nil {
		return nil, err
	}
	lo, hi := edges[0], edges[len(edges)-1]

	events := make([]float64, 0, Count(x))
	for _, t := range x {
		for _, v := range t {
			if v >= lo && v < hi {
				events = append(events, v)
			}
		}
	}
	slices.Sort(events)
	return stat.Histogram(nil, edges, events, nil), nil
}

// Rate returns the mean number of events per trial per unit time in each
// bin: the histogram divided by the number of trials and the bin width.
// A unit with no trials has a rate of zero everywhere.
func Rate(x Unit[float64], edges []float64) ([]float64, error) {
	counts, err := Histogram(x, edges)
	if err != nil {
		return nil, err
	}
	if x.Len() == 0 {
		return counts, nil
	}
	for i := range counts {
		counts[i] /= float64(x.Len()) * (edges[i+1] - edges[i])
	}
	return counts, nil
}

func checkEdges(edges []float64) error {
	if len(edges) < 2 {
		return fmt.Errorf("%w: need at least two edges, got %d", ErrBadBins, len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return fmt.Errorf("%w: edges must increase (edge %d is %v, edge %d is %v)",
				ErrBadBins, i-1, edges[i-1], i, edges[i])
		}
	}
	return nil
}
