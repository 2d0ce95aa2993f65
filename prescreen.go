package tadbit

import (
	"math"

	"github.com/tadbit/tadbit/util"
)

// prescreenLength is the window (in bins) over which the directionality
// index is accumulated on each side of a candidate index.
const prescreenLength = 10

// computeSkipMask returns the n×n skip mask (column-major, same domain as
// the log-likelihood matrix) deciding which candidate slices the matrix
// filler may skip. It is a pure function of the compacted observations, so
// it can be computed once up front and shared read-only across workers.
//
// speed == 0 disables the heuristic entirely: every candidate (i <= j-3)
// is left unmarked. speed >= 1 applies the directionality-index cutoff;
// speed in {3,4,5} additionally forbids spans larger than n/2, n/4, n/8.
func computeSkipMask(obs [][]float64, n, speed int) []bool {
	skip := make([]bool, n*n)
	for i := range skip {
		skip[i] = true
	}
	for i := 0; i <= n-4; i++ {
		for j := i + 3; j < n; j++ {
			skip[i+j*n] = false
		}
	}
	if speed < 1 {
		return skip
	}

	di := directionalityIndex(obs, n)
	cutoff := directionalityCutoff(di, n)

	for i := 0; i <= n-4; i++ {
		for j := i + 3; j < n; j++ {
			if spanTooLargeForSpeed(speed, i, j, n) {
				skip[i+j*n] = true
				continue
			}
			ii := i < prescreenLength+1 || i > n-prescreenLength-2 || di[i-1] > cutoff
			jj := j < prescreenLength+1 || j > n-prescreenLength-2 || di[j] > cutoff
			skip[i+j*n] = !(ii && jj)
		}
	}
	return skip
}

func spanTooLargeForSpeed(speed, i, j, n int) bool {
	span := j - i
	switch speed {
	case 3:
		return span > n/2
	case 4:
		return span > n/4
	case 5:
		return span > n/8
	default:
		return false
	}
}

// directionalityIndex computes the differentiated directionality index of
// spec §4.4, summed across replicates, for a compacted n×n observation set.
func directionalityIndex(obs [][]float64, n int) []float64 {
	length := prescreenLength
	di := make([]float64, n)
	if n <= 2*length {
		return di
	}

	for i := length; i < n-length; i++ {
		var sum float64
		for _, o := range obs {
			for j := 1; j <= length; j++ {
				upWeight := math.Sqrt(o[i+i*n] * o[(i-j)+(i-j)*n])
				downWeight := math.Sqrt(o[i+i*n] * o[(i+j)+(i+j)*n])
				sum += o[(i-j)+i*n] / upWeight
				sum -= o[i+(i+j)*n] / downWeight
			}
		}
		di[i] = sum
	}

	first := di[length]
	for i := length; i < n-length-1; i++ {
		di[i] = di[i+1] - di[i]
	}
	di[n-length-1] = first - di[n-length-1]
	return di
}

// directionalityCutoff computes min(cut200, 1.95*mad) from the
// differentiated directionality index di.
func directionalityCutoff(di []float64, n int) float64 {
	length := prescreenLength
	if n <= 2*length {
		return 0
	}
	interior := di[length:(n - length)]
	mad := util.MAD(interior)
	cut200 := util.Quantile(di, 200.0/float64(n))
	if cut200 < 1.95*mad {
		return cut200
	}
	return 1.95 * mad
}
