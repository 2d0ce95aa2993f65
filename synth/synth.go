// Package synth generates synthetic Hi-C-like contact matrices for tests,
// examples, and manual exploration.
package synth

import (
	"math/rand"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform generates an N×N symmetric, column-major matrix with the given
// diagonal value and a Poisson-distributed off-diagonal background of the
// given mean.
func Uniform(n int, diagonal, background float64, src *rand.Rand) []float64 {
	m := make([]float64, n*n)
	bg := distuv.Poisson{Lambda: background, Source: src}
	for j := 0; j < n; j++ {
		for i := 0; i <= j; i++ {
			var v float64
			if i == j {
				v = diagonal
			} else {
				v = bg.Rand()
			}
			m[i+j*n] = v
			m[j+i*n] = v
		}
	}
	return m
}

// BlockDiagonal generates an N×N symmetric matrix made of contiguous blocks
// of blockSize indices each, with strong within-block counts and weak
// between-block counts, the way a real Hi-C matrix with well-formed TADs
// looks.
func BlockDiagonal(n, blockSize int, diagonal, within, between float64, src *rand.Rand) []float64 {
	m := make([]float64, n*n)
	w := distuv.Poisson{Lambda: within, Source: src}
	b := distuv.Poisson{Lambda: between, Source: src}
	for j := 0; j < n; j++ {
		for i := 0; i <= j; i++ {
			var v float64
			switch {
			case i == j:
				v = diagonal
			case i/blockSize == j/blockSize:
				v = w.Rand()
			default:
				v = b.Rand()
			}
			m[i+j*n] = v
			m[j+i*n] = v
		}
	}
	return m
}

// Diagnostics reports the mean and standard deviation of a generated
// matrix's off-diagonal entries, the same summary util.ZNormalize in the
// teacher's own util package computes for a raw time series.
func Diagnostics(m []float64, n int) (mean, stdDev float64) {
	var offDiag []float64
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if i != j {
				offDiag = append(offDiag, m[i+j*n])
			}
		}
	}
	mean = stat.Mean(offDiag, nil)
	stdDev = stat.StdDev(offDiag, nil)
	return mean, stdDev
}
