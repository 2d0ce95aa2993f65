package tadbit

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Numerical constants for the Newton-Raphson solve in fitPoisson.
const (
	tolerance = 1e-6
	maxIter   = 10000
)

// block holds one leg (top, middle, or bottom) of a slice: parallel arrays
// of counts, diagonal distances, symmetry weights, and precomputed
// log-Gamma terms, plus the number of entries actually in use. Callers
// preallocate a block at its worst-case capacity once per worker and reuse
// it across jobs by calling reset, never reallocating on the hot path.
type block struct {
	Counts  []float64
	Dist    []float64
	Weights []float64
	Lgamma  []float64
	Size    int

	lambda []float64 // scratch: w_i*exp(a+b*d_i), sized with the rest
	diff   []float64 // scratch: lambda_i - k_i
}

// newBlock allocates a block with the given capacity.
func newBlock(capacity int) *block {
	return &block{
		Counts:  make([]float64, capacity),
		Dist:    make([]float64, capacity),
		Weights: make([]float64, capacity),
		Lgamma:  make([]float64, capacity),
		lambda:  make([]float64, capacity),
		diff:    make([]float64, capacity),
	}
}

// reset discards the block's current contents without touching capacity.
func (b *block) reset() {
	b.Size = 0
}

// append adds one observation to the block.
func (b *block) append(count, dist, weight, lgamma float64) {
	i := b.Size
	b.Counts[i] = count
	b.Dist[i] = dist
	b.Weights[i] = weight
	b.Lgamma[i] = lgamma
	b.Size++
}

// fitPoisson fits lambda_i = w_i * exp(a + b*d_i) to the block's counts k_i
// by maximum likelihood, using Newton-Raphson with a backtracking line
// search on the two-parameter gradient, and returns the block's maximised
// log-likelihood. It returns 0 for an empty block and NaN for a block too
// small to determine both parameters or for non-convergence.
func (b *block) fitPoisson() float64 {
	n := b.Size
	switch {
	case n < 1:
		return 0
	case n < 3:
		return math.NaN()
	}

	k := b.Counts[:n]
	d := b.Dist[:n]
	w := b.Weights[:n]
	lg := b.Lgamma[:n]
	lambda := b.lambda[:n]
	diff := b.diff[:n]

	var a, c float64 // a is the intercept, c is the distance slope ("b" in the model)
	f, g := poissonGrad(k, d, w, lambda, diff, a, c)

	iter := 0
	for f*f+g*g > tolerance && iter < maxIter {
		hAA := floats.Sum(lambda)
		hAB := floats.Dot(lambda, d)
		var hBB float64
		for i := range lambda {
			hBB += lambda[i] * d[i] * d[i]
		}

		denom := hAB*hAB - hAA*hBB
		da := (f*hBB - g*hAB) / denom
		dc := (g*hAA - f*hAB) / denom

		oldgrad := f*f + g*g
		nf, ng := poissonGrad(k, d, w, lambda, diff, a+da, c+dc)
		for nf*nf+ng*ng > oldgrad {
			da /= 2
			dc /= 2
			nf, ng = poissonGrad(k, d, w, lambda, diff, a+da, c+dc)
		}
		a += da
		c += dc
		f, g = nf, ng
		iter++
	}

	if iter >= maxIter {
		return math.NaN()
	}

	var llik float64
	for i := 0; i < n; i++ {
		llik += math.Exp(a+c*d[i]) + k[i]*(a+c*d[i]) - lg[i]
	}
	return llik
}

// poissonGrad evaluates lambda_i = w_i*exp(a+c*d_i) into lambda and
// diff_i = lambda_i - k_i (both reused across Newton-Raphson iterations to
// avoid per-call allocation), and returns the negative log-likelihood
// gradient (f, g) with respect to (a, c).
func poissonGrad(k, d, w, lambda, diff []float64, a, c float64) (f, g float64) {
	for i := range k {
		lambda[i] = w[i] * math.Exp(a+c*d[i])
		diff[i] = lambda[i] - k[i]
	}
	return floats.Sum(diff), floats.Dot(diff, d)
}
