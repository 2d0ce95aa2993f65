package tadbit

import "math"

// segment runs the dynamic-programming optimiser of spec §4.6 over the
// log-likelihood matrix llik (n×n, column-major, NaN where undefined) and
// returns, for every break count from 0 to maxBreaks-1, the maximum
// achievable log-likelihood (mllik[0] is always NaN: no break count of zero
// is computed by this recurrence) and the corresponding breakpoint flags.
//
// bkpts is an n×maxBreaks column-major table: bkpts[i+k*n] is 1 if index i
// is a breakpoint in the best k-break segmentation.
func segment(llik []float64, n, maxBreaks int) (mllik []float64, bkpts []int) {
	mllik = make([]float64, maxBreaks)
	bkpts = make([]int, n*maxBreaks)
	for i := range mllik {
		mllik[i] = math.NaN()
	}
	if maxBreaks == 0 {
		return mllik, bkpts
	}

	oldLlik := make([]float64, n)
	newLlik := make([]float64, n)
	for i := 0; i < n; i++ {
		oldLlik[i] = llik[i*n] // L[0,i]: whole range [0,i] as a single segment
		newLlik[i] = math.Inf(-1)
	}

	oldBkpt := make([]bool, n*n)
	newBkpt := make([]bool, n*n)

	for nbreaks := 1; nbreaks < maxBreaks; nbreaks++ {
		copy(oldBkpt, newBkpt)

		for j := 3*nbreaks + 2; j < n; j++ {
			newLlik[j] = math.Inf(-1)
			newBreak := -1

			for i := 3 * nbreaks; i < j-3; i++ {
				t := oldLlik[i-1] + llik[i+j*n]
				if t > newLlik[j] {
					newLlik[j] = t
					newBreak = i - 1
				}
			}

			if newLlik[j] > math.Inf(-1) {
				for i := 0; i < n; i++ {
					newBkpt[j+i*n] = oldBkpt[newBreak+i*n]
				}
				newBkpt[j+newBreak*n] = true
			}
		}

		mllik[nbreaks] = newLlik[n-1]
		copy(oldLlik, newLlik)
		for i := 0; i < n; i++ {
			if newBkpt[n-1+i*n] {
				bkpts[i+nbreaks*n] = 1
			}
		}
	}

	return mllik, bkpts
}

// selectBreakCount applies the Akaike-style penalty of spec §4.7 and
// returns the optimal break count: the largest k for which the penalized
// score mllik[k] - (k + m*(8+6k)) is still non-decreasing relative to the
// running best.
func selectBreakCount(mllik []float64, maxBreaks, m int) int {
	best := math.Inf(-1)
	k := 1
	for ; k < maxBreaks; k++ {
		penalty := float64(k) + float64(m)*(8+6*float64(k))
		score := mllik[k] - penalty
		if score < best {
			break
		}
		best = score
	}
	return k - 1
}
