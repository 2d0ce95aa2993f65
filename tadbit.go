package tadbit

import (
	"fmt"
	"math"
	"runtime"

	"github.com/tadbit/tadbit/util"
)

// Options configures a Run.
type Options struct {
	// Threads is the worker count for the matrix filler. 0 selects
	// runtime.NumCPU().
	Threads int

	// Verbose enables the stderr progress line during the fill phase.
	Verbose bool

	// Speed in {0,1,2,3,4,5} controls the 200-bin diagonal censor inside
	// the slice assembler (active when Speed > 1) and the pre-screen
	// aggressiveness (active when Speed >= 1; span restrictions active
	// for 3, 4, 5).
	Speed int
}

// NewOptions returns the default Options: auto thread count, pre-screen
// disabled, progress reporting off.
func NewOptions() Options {
	return Options{Threads: runtime.NumCPU()}
}

// Segmentation is the result of Run.
type Segmentation struct {
	// N is the original (pre-removal) matrix side length.
	N int

	// MaxBreaks is n/4 computed on the compacted dimension.
	MaxBreaks int

	// NBreaksOpt is the optimal break count chosen by the model selector.
	NBreaksOpt int

	// LLikMat is the N×N column-major matrix of slice log-likelihoods.
	// Rows/columns corresponding to removed indices are NaN.
	LLikMat []float64

	// MLLik holds, for each break count 1..MaxBreaks-1, the maximum total
	// log-likelihood achievable with exactly that many breaks (-Inf when no
	// segmentation with that many breaks has a finite score). MLLik[0] is
	// always NaN: the zero-break likelihood is not recorded.
	MLLik []float64

	// Breakpoints is the N×MaxBreaks column-major table of 0/1
	// breakpoint flags, expanded from the compacted representation by
	// re-inserting removed indices as all-zero rows.
	Breakpoints []int
}

// Run identifies TADs across one or more replicate Hi-C contact matrices.
// Each entry of obs is an N×N column-major matrix of non-negative interaction
// counts (NaN for missing entries); all replicates must share the same N.
func Run(obs [][]float64, n int, opts Options) (*Segmentation, error) {
	if n < 1 {
		return nil, fmt.Errorf("tadbit: N must be at least 1, got %d", n)
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("tadbit: at least one replicate matrix is required")
	}
	for k, o := range obs {
		if len(o) != n*n {
			return nil, fmt.Errorf("tadbit: replicate %d has length %d, want %d for N=%d", k, len(o), n*n, n)
		}
	}

	removed := removalMask(obs, n)
	compactN := 0
	for _, r := range removed {
		if !r {
			compactN++
		}
	}

	if compactN < 4 {
		return &Segmentation{
			N:       n,
			LLikMat: fullNaN(n * n),
		}, nil
	}

	cObs, dist, logGamma := compact(obs, removed, n, compactN)

	skip := computeSkipMask(cObs, compactN, opts.Speed)
	toProcess := 0
	for _, s := range skip {
		if !s {
			toProcess++
		}
	}

	llik := fullNaN(compactN * compactN)
	fc := &fillContext{
		n:         compactN,
		speed:     opts.Speed,
		obs:       cObs,
		dist:      dist,
		logGamma:  logGamma,
		skip:      skip,
		llik:      llik,
		toProcess: toProcess,
		verbose:   opts.Verbose,
	}
	fillLikelihoodMatrix(fc, opts.Threads)

	maxBreaks := compactN / 4
	mllik, bkpts := segment(llik, compactN, maxBreaks)
	nbreaksOpt := selectBreakCount(mllik, maxBreaks, len(obs))

	return &Segmentation{
		N:           n,
		MaxBreaks:   maxBreaks,
		NBreaksOpt:  nbreaksOpt,
		LLikMat:     expandMatrix(llik, removed, n, compactN),
		MLLik:       mllik,
		Breakpoints: expandBreakpoints(bkpts, removed, n, maxBreaks),
	}, nil
}

// removalMask returns, for each original row/column, whether it must be
// removed: any replicate's diagonal entry there is below 1.
func removalMask(obs [][]float64, n int) []bool {
	removed := make([]bool, n)
	for i := 0; i < n; i++ {
		for _, o := range obs {
			if o[i+i*n] < 1.0 {
				removed[i] = true
				break
			}
		}
	}
	return removed
}

// keptIndices returns, in increasing order, the original indices that
// survive removalMask.
func keptIndices(removed []bool) []int {
	kept := make([]int, 0, len(removed))
	for i, r := range removed {
		if !r {
			kept = append(kept, i)
		}
	}
	return kept
}

// compact extracts the compacted replicate observations, the compacted
// diagonal-distance matrix, and the compacted log-Gamma matrices, all
// compactN×compactN column-major over the kept indices. The distance
// matrix is computed from ORIGINAL index separations, not compacted ones:
// removed indices still count toward |i-j|.
func compact(obs [][]float64, removed []bool, n, compactN int) (cObs [][]float64, dist []float64, logGamma [][]float64) {
	kept := keptIndices(removed)

	dist = make([]float64, compactN*compactN)
	for lj, j := range kept {
		for li, i := range kept {
			dist[li+lj*compactN] = math.Log(math.Abs(float64(i - j)))
		}
	}

	cObs = make([][]float64, len(obs))
	logGamma = make([][]float64, len(obs))
	for k, o := range obs {
		c := make([]float64, compactN*compactN)
		for lj, j := range kept {
			for li, i := range kept {
				c[li+lj*compactN] = o[i+j*n]
			}
		}
		cObs[k] = c
		logGamma[k] = util.LogGammaMatrix(c)
	}
	return cObs, dist, logGamma
}

// expandMatrix re-inserts NaN rows/columns for removed indices, returning
// an n×n column-major matrix.
func expandMatrix(compact []float64, removed []bool, n, compactN int) []float64 {
	out := fullNaN(n * n)
	kept := keptIndices(removed)
	for lj, j := range kept {
		for li, i := range kept {
			out[i+j*n] = compact[li+lj*compactN]
		}
	}
	return out
}

// expandBreakpoints re-inserts all-zero rows for removed indices,
// returning an n×maxBreaks column-major table.
func expandBreakpoints(compact []int, removed []bool, n, maxBreaks int) []int {
	out := make([]int, n*maxBreaks)
	kept := keptIndices(removed)
	compactN := len(kept)
	for li, i := range kept {
		for k := 0; k < maxBreaks; k++ {
			out[i+k*n] = compact[li+k*compactN]
		}
	}
	return out
}

// fullNaN returns a slice of the given length, every entry set to NaN.
func fullNaN(size int) []float64 {
	out := make([]float64, size)
	nan := math.NaN()
	for i := range out {
		out[i] = nan
	}
	return out
}
