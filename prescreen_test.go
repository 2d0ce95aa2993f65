package tadbit

import "testing"

func TestComputeSkipMaskSpeedZeroMarksAllCandidates(t *testing.T) {
	n := 12
	obs := [][]float64{identityMatrix(n, 10, 1)}
	skip := computeSkipMask(obs, n, 0)

	for i := 0; i <= n-4; i++ {
		for j := i + 3; j < n; j++ {
			if skip[i+j*n] {
				t.Errorf("skip[%d,%d] = true with speed=0, want every candidate unmarked", i, j)
			}
		}
	}
}

func TestComputeSkipMaskNonCandidatesAlwaysSkipped(t *testing.T) {
	n := 12
	obs := [][]float64{identityMatrix(n, 10, 1)}
	for _, speed := range []int{0, 1, 5} {
		skip := computeSkipMask(obs, n, speed)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if j-i < 3 && !skip[i+j*n] {
					t.Errorf("speed=%d: skip[%d,%d] = false, want true for j-i<3", speed, i, j)
				}
			}
		}
	}
}

func TestComputeSkipMaskSpeedSpanRestriction(t *testing.T) {
	n := 40
	obs := [][]float64{identityMatrix(n, 10, 1)}
	skip := computeSkipMask(obs, n, 5)

	found := false
	for i := 0; i <= n-4; i++ {
		for j := i + 3; j < n; j++ {
			if j-i > n/8 {
				found = true
				if !skip[i+j*n] {
					t.Errorf("skip[%d,%d] = false, want true for span %d > n/8=%d", i, j, j-i, n/8)
				}
			}
		}
	}
	if !found {
		t.Fatalf("test setup produced no candidate with span > n/8")
	}
}

func TestDirectionalityIndexZeroForUniformMatrix(t *testing.T) {
	n := 40
	obs := [][]float64{identityMatrix(n, 10, 2)}
	di := directionalityIndex(obs, n)
	for i := prescreenLength; i < n-prescreenLength; i++ {
		if di[i] != 0 {
			t.Errorf("di[%d] = %v, want 0 for a symmetric uniform matrix", i, di[i])
		}
	}
}
