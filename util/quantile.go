// Package util collects the small numerical helpers the tadbit package's
// pre-screen and block fitter share: a quantile/MAD estimator pinned to the
// original implementation's discrete selection rule, and a log-Gamma
// matrix precomputation.
package util

import (
	"math"
	"sort"
)

// Quantile returns quantile q (clamped to [0, 1]) of data, computed by
// sorting a copy of data in descending order and selecting the element at
// position floor((len(data)-1)*q). This is a discrete, indexed selection
// rule, not gonum/stat's interpolated Quantile: the two disagree whenever q
// falls between two order statistics, and the pre-screen cutoff this feeds
// is pinned to this exact rule.
func Quantile(data []float64, q float64) float64 {
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}
	cp := make([]float64, len(data))
	copy(cp, data)
	sort.Sort(sort.Reverse(sort.Float64Slice(cp)))
	return cp[int(float64(len(cp)-1)*q)]
}

// MAD returns the median of the absolute values of data (deviations are
// taken from zero, not from the data's own median), selected with Quantile's
// rule at q = 0.5 and scaled by 1.4826 to approximate a Gaussian standard
// deviation.
func MAD(data []float64) float64 {
	abs := make([]float64, len(data))
	for i, v := range data {
		abs[i] = math.Abs(v)
	}
	return 1.4826 * Quantile(abs, 0.5)
}

// LogGammaMatrix returns log Gamma(v+1) for every entry v of a flattened
// matrix, precomputed once so the block fitter's hot path never calls
// math.Lgamma itself.
func LogGammaMatrix(obs []float64) []float64 {
	out := make([]float64, len(obs))
	for i, v := range obs {
		lg, _ := math.Lgamma(v + 1)
		out[i] = lg
	}
	return out
}
