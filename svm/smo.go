package svm

import (
	"math"

	"github.com/amicobudino/leukemia-analysis/pkg/errors"
)

// tau is the floor for non-positive second derivatives in the working-set
// objective, as in LIBSVM.
const tau = 1e-12

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

// smoProblem is one dual optimization instance:
//
//	min 0.5 αᵀQα - eᵀα   s.t.  yᵀα = 0,  0 ≤ αᵢ ≤ C
//
// where Q[i][j] = y[i]*y[j]*K(x[i], x[j]). The solver is sequential minimal
// optimization with maximal-violating-pair selection for i and second-order
// selection for j. There is no shrinking and no LRU kernel cache: the full
// kernel matrix is precomputed, which is fine at the sample counts this
// pipeline sees and keeps the solver deterministic and branch-free.
type smoProblem struct {
	q       [][]float64 // Q matrix, n×n
	qd      []float64   // diagonal of Q
	y       []float64   // labels in {-1, +1}
	c       float64
	tol     float64
	maxIter int
}

// smoSolution holds the solver output.
type smoSolution struct {
	alpha []float64
	rho   float64 // decision threshold; f(x) = Σ αᵢyᵢK(xᵢ,x) - rho
	iters int
}

func (p *smoProblem) solve() *smoSolution {
	n := len(p.y)
	alpha := make([]float64, n)
	grad := make([]float64, n)
	for i := range grad {
		grad[i] = -1 // gradient of the dual at α = 0
	}

	iter := 0
	for ; iter < p.maxIter; iter++ {
		i, j := p.selectWorkingSet(alpha, grad)
		if i < 0 {
			break // KKT conditions satisfied within tol
		}

		p.updatePair(alpha, grad, i, j)
	}

	if iter >= p.maxIter {
		errors.Warn(errors.NewConvergenceWarning("SMO", p.maxIter,
			"dual optimality gap above tolerance at iteration cap"))
	}

	return &smoSolution{
		alpha: alpha,
		rho:   p.calculateRho(alpha, grad),
		iters: iter,
	}
}

// selectWorkingSet picks the maximal violating pair. i maximizes -y·grad
// over the "up" set; j minimizes the second-order objective decrease over
// the "down" set. Returns (-1, -1) when the violation is within tol.
func (p *smoProblem) selectWorkingSet(alpha, grad []float64) (int, int) {
	n := len(p.y)

	gmax := negInf
	gmax2 := negInf
	gmaxIdx := -1

	for t := 0; t < n; t++ {
		if p.inUpSet(alpha, t) {
			if v := -p.y[t] * grad[t]; v >= gmax {
				gmax = v
				gmaxIdx = t
			}
		}
	}

	i := gmaxIdx
	if i == -1 {
		return -1, -1
	}
	jIdx := -1
	objDiffMin := posInf

	for t := 0; t < n; t++ {
		if !p.inDownSet(alpha, t) {
			continue
		}
		v := p.y[t] * grad[t]
		if v > gmax2 {
			gmax2 = v
		}

		gradDiff := gmax + v
		if gradDiff <= 0 {
			continue
		}

		var quadCoef float64
		if p.y[i] == p.y[t] {
			quadCoef = p.qd[i] + p.qd[t] - 2*p.q[i][t]
		} else {
			quadCoef = p.qd[i] + p.qd[t] + 2*p.q[i][t]
		}
		if quadCoef <= 0 {
			quadCoef = tau
		}
		objDiff := -(gradDiff * gradDiff) / quadCoef
		if objDiff <= objDiffMin {
			objDiffMin = objDiff
			jIdx = t
		}
	}

	if gmax+gmax2 < p.tol || jIdx == -1 {
		return -1, -1
	}
	return i, jIdx
}

// updatePair optimizes α over the two chosen variables analytically,
// clipping to the box while preserving the equality constraint, then
// refreshes the gradient.
func (p *smoProblem) updatePair(alpha, grad []float64, i, j int) {
	c := p.c
	oldAi, oldAj := alpha[i], alpha[j]

	if p.y[i] != p.y[j] {
		quadCoef := p.qd[i] + p.qd[j] + 2*p.q[i][j]
		if quadCoef <= 0 {
			quadCoef = tau
		}
		delta := (-grad[i] - grad[j]) / quadCoef
		diff := alpha[i] - alpha[j]
		alpha[i] += delta
		alpha[j] += delta

		if diff > 0 {
			if alpha[j] < 0 {
				alpha[j] = 0
				alpha[i] = diff
			}
		} else {
			if alpha[i] < 0 {
				alpha[i] = 0
				alpha[j] = -diff
			}
		}
		if diff > 0 {
			if alpha[i] > c {
				alpha[i] = c
				alpha[j] = c - diff
			}
		} else {
			if alpha[j] > c {
				alpha[j] = c
				alpha[i] = c + diff
			}
		}
	} else {
		quadCoef := p.qd[i] + p.qd[j] - 2*p.q[i][j]
		if quadCoef <= 0 {
			quadCoef = tau
		}
		delta := (grad[i] - grad[j]) / quadCoef
		sum := alpha[i] + alpha[j]
		alpha[i] -= delta
		alpha[j] += delta

		if sum > c {
			if alpha[i] > c {
				alpha[i] = c
				alpha[j] = sum - c
			}
		} else {
			if alpha[j] < 0 {
				alpha[j] = 0
				alpha[i] = sum
			}
		}
		if sum > c {
			if alpha[j] > c {
				alpha[j] = c
				alpha[i] = sum - c
			}
		} else {
			if alpha[i] < 0 {
				alpha[i] = 0
				alpha[j] = sum
			}
		}
	}

	dAi := alpha[i] - oldAi
	dAj := alpha[j] - oldAj
	for t := range grad {
		grad[t] += p.q[t][i]*dAi + p.q[t][j]*dAj
	}
}

// calculateRho computes the decision threshold: the mean of y·grad over
// free support vectors, or the midpoint of the bound interval when no
// variable is free.
func (p *smoProblem) calculateRho(alpha, grad []float64) float64 {
	ub := posInf
	lb := negInf
	var sumFree float64
	nFree := 0

	for t := range p.y {
		yg := p.y[t] * grad[t]
		switch {
		case alpha[t] >= p.c:
			if p.y[t] == -1 {
				if yg < ub {
					ub = yg
				}
			} else if yg > lb {
				lb = yg
			}
		case alpha[t] <= 0:
			if p.y[t] == 1 {
				if yg < ub {
					ub = yg
				}
			} else if yg > lb {
				lb = yg
			}
		default:
			nFree++
			sumFree += yg
		}
	}

	if nFree > 0 {
		return sumFree / float64(nFree)
	}
	return (ub + lb) / 2
}

// inUpSet reports whether α[t] may still increase along +y[t].
func (p *smoProblem) inUpSet(alpha []float64, t int) bool {
	if p.y[t] == 1 {
		return alpha[t] < p.c
	}
	return alpha[t] > 0
}

// inDownSet reports whether α[t] may still decrease along +y[t].
func (p *smoProblem) inDownSet(alpha []float64, t int) bool {
	if p.y[t] == 1 {
		return alpha[t] > 0
	}
	return alpha[t] < p.c
}
