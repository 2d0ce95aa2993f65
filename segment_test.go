package tadbit

import (
	"math"
	"testing"
)

// linearLlik builds a synthetic n×n log-likelihood matrix where every
// defined cell L[i,j] (j-i>=3) equals c*(j-i), the simplest score for which
// the additive structure of the recurrence is easy to reason about by hand.
func linearLlik(n int, c float64) []float64 {
	llik := fullNaN(n * n)
	for i := 0; i < n; i++ {
		for j := i + 3; j < n; j++ {
			llik[i+j*n] = c * float64(j-i)
		}
	}
	return llik
}

func TestSegmentMllikZeroAlwaysNaN(t *testing.T) {
	llik := linearLlik(12, 2)
	mllik, _ := segment(llik, 12, 4)
	if !math.IsNaN(mllik[0]) {
		t.Errorf("mllik[0] = %v, want NaN: the recurrence never computes a zero-break score", mllik[0])
	}
}

func TestSegmentZeroMaxBreaksReturnsEmptyTables(t *testing.T) {
	n := 10
	mllik, bkpts := segment(linearLlik(n, 1), n, 0)
	if len(mllik) != 0 {
		t.Fatalf("len(mllik) = %d, want 0 for maxBreaks=0", len(mllik))
	}
	if len(bkpts) != 0 {
		t.Fatalf("len(bkpts) = %d, want 0 for maxBreaks=0", len(bkpts))
	}
}

func TestSegmentTooFewIndicesForBreakIsNegativeInfinity(t *testing.T) {
	// n=4 cannot place a single internal break: the first candidate j for
	// nbreaks=1 starts at 3*1+2=5, which is already past n-1=3.
	n := 4
	mllik, bkpts := segment(linearLlik(n, 1), n, 2)
	if !math.IsInf(mllik[1], -1) {
		t.Errorf("mllik[1] = %v, want -Inf: n=%d is too short for one break", mllik[1], n)
	}
	for i := 0; i < n; i++ {
		if bkpts[i+1*n] != 0 {
			t.Errorf("bkpts[%d,1] = %d, want 0 when no break is achievable", i, bkpts[i+1*n])
		}
	}
}

func TestSegmentSingleBreakMatchesWholeRangeSplit(t *testing.T) {
	// With L[i,j] = c*(j-i), the recurrence score c*(i-1) + c*(j-i) for the
	// terminal j=n-1 reduces to c*(n-2), independent of the split point i,
	// so the earliest index satisfying the minimum-segment-length-3 bound
	// wins the tie: i=4, placing the breakpoint at i-1=3.
	n := 12
	c := 3.0
	llik := linearLlik(n, c)
	mllik, bkpts := segment(llik, n, 2)

	want := c * float64(n-2)
	if mllik[1] != want {
		t.Fatalf("mllik[1] = %v, want %v", mllik[1], want)
	}

	for i := 0; i < n; i++ {
		got := bkpts[i+1*n]
		want := 0
		if i == 3 {
			want = 1
		}
		if got != want {
			t.Errorf("bkpts[%d,1] = %d, want %d", i, got, want)
		}
	}
}

func TestSelectBreakCountStopsAtFirstDecrease(t *testing.T) {
	// Scores (mllik[k] - penalty) are -5, 8, 2: they rise through k=2 and
	// fall at k=3, so expect 2 (selectBreakCount returns k-1 for the k at
	// which the score first drops).
	mllik := []float64{math.NaN(), 10, 30, 31}
	k := selectBreakCount(mllik, 4, 1)
	if k != 2 {
		t.Errorf("selectBreakCount = %d, want 2", k)
	}
}

func TestSelectBreakCountAllIncreasingPicksLast(t *testing.T) {
	mllik := []float64{math.NaN(), 10, 40, 100}
	k := selectBreakCount(mllik, 4, 0)
	if k != 3 {
		t.Errorf("selectBreakCount = %d, want 3 when scores never decrease", k)
	}
}

func TestSelectBreakCountNaNDisablesFurtherStopping(t *testing.T) {
	// Every ordered comparison against a NaN score is false, so once best
	// becomes NaN at k=2 the "score < best" stopping test cannot trigger at
	// k=3 even though that score (-24) is far below k=1's (-5); k=3 is the
	// last break count, so the walk runs to maxBreaks-1.
	mllik := []float64{math.NaN(), 10, math.NaN(), 5}
	k := selectBreakCount(mllik, 4, 1)
	if k != 3 {
		t.Errorf("selectBreakCount = %d, want 3: a NaN score disables the decrease check for the next break count", k)
	}
}
