// Package svm implements a binary C-support-vector classifier with linear
// and RBF kernels, trained by sequential minimal optimization.
package svm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/amicobudino/leukemia-analysis/core/model"
	"github.com/amicobudino/leukemia-analysis/pkg/errors"
)

// SVC is a binary C-support-vector classifier. Labels must be -1 and +1.
// Training is deterministic: the solver contains no randomness, so repeated
// fits on the same data produce identical models.
type SVC struct {
	model.BaseEstimator

	// Hyperparameters
	kernelName string
	c          float64
	gamma      float64 // RBF width; <= 0 means "auto" (1 / n_features)
	tol        float64
	maxIter    int

	// Fitted state
	kernel        Kernel
	supportVecs   [][]float64 // rows of X with non-zero alpha
	dualCoef      []float64   // alpha_i * y_i for each support vector
	intercept     float64
	classes       []float64
	nFeatures     int
	nIter         int
	resolvedGamma float64
}

// SVCOption is a functional option for SVC.
type SVCOption func(*SVC)

// NewSVC creates a new SVC. Defaults: linear kernel, C=1, tol=1e-3,
// gamma="auto" (1/n_features, resolved at Fit time), maxIter=1e7.
func NewSVC(opts ...SVCOption) *SVC {
	s := &SVC{
		kernelName: KernelLinear,
		c:          1.0,
		gamma:      0, // auto
		tol:        1e-3,
		maxIter:    10_000_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithKernel sets the kernel: "linear" or "rbf".
func WithKernel(kernel string) SVCOption {
	return func(s *SVC) { s.kernelName = kernel }
}

// WithC sets the regularization strength.
func WithC(c float64) SVCOption {
	return func(s *SVC) { s.c = c }
}

// WithGamma sets the RBF kernel width. Non-positive values keep the
// "auto" default of 1/n_features.
func WithGamma(gamma float64) SVCOption {
	return func(s *SVC) { s.gamma = gamma }
}

// WithTol sets the stopping tolerance of the solver.
func WithTol(tol float64) SVCOption {
	return func(s *SVC) { s.tol = tol }
}

// WithMaxIter caps the number of solver iterations. Hitting the cap emits a
// ConvergenceWarning instead of failing the fit.
func WithMaxIter(maxIter int) SVCOption {
	return func(s *SVC) { s.maxIter = maxIter }
}

// Fit trains the classifier on X and the n×1 label matrix y.
func (s *SVC) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("SVC.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows != nSamples {
		return errors.NewDimensionError("SVC.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("SVC.Fit", fmt.Sprintf("y must be a column vector, got shape (%d, %d)", yRows, yCols))
	}
	if s.c <= 0 {
		return errors.NewValidationError("C", "must be positive", s.c)
	}
	if s.tol <= 0 {
		return errors.NewValidationError("tol", "must be positive", s.tol)
	}

	labels := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		v := y.At(i, 0)
		if v != -1 && v != 1 {
			return errors.NewValueError("SVC.Fit", fmt.Sprintf("labels must be -1 or 1, got %g at row %d", v, i))
		}
		labels[i] = v
	}
	if !hasBothClasses(labels) {
		return errors.NewValueError("SVC.Fit", "training data must contain both classes")
	}

	s.resolvedGamma = s.gamma
	if s.kernelName == KernelRBF && s.resolvedGamma <= 0 {
		s.resolvedGamma = 1 / float64(nFeatures)
	}
	kernel, err := newKernel(s.kernelName, s.resolvedGamma)
	if err != nil {
		return err
	}

	rows := make([][]float64, nSamples)
	for i := range rows {
		rows[i] = mat.Row(nil, i, X)
	}

	// Full kernel matrix. Quadratic in n, acceptable for the sample counts
	// this pipeline works with.
	q := make([][]float64, nSamples)
	qd := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		q[i] = make([]float64, nSamples)
		for j := 0; j <= i; j++ {
			k := labels[i] * labels[j] * kernel.Compute(rows[i], rows[j])
			q[i][j] = k
			q[j][i] = k
		}
		qd[i] = q[i][i]
	}

	prob := &smoProblem{
		q:       q,
		qd:      qd,
		y:       labels,
		c:       s.c,
		tol:     s.tol,
		maxIter: s.maxIter,
	}
	sol := prob.solve()

	s.supportVecs = s.supportVecs[:0]
	s.dualCoef = s.dualCoef[:0]
	for i, a := range sol.alpha {
		if a > 0 {
			s.supportVecs = append(s.supportVecs, rows[i])
			s.dualCoef = append(s.dualCoef, a*labels[i])
		}
	}

	s.kernel = kernel
	s.intercept = -sol.rho
	s.classes = []float64{-1, 1}
	s.nFeatures = nFeatures
	s.nIter = sol.iters
	s.SetFitted()
	return nil
}

// DecisionFunction returns the signed distance f(x) of each row of X from
// the separating hyperplane as an n×1 matrix.
func (s *SVC) DecisionFunction(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("SVC", "DecisionFunction")
	}

	r, c := X.Dims()
	if c != s.nFeatures {
		return nil, errors.NewDimensionError("SVC.DecisionFunction", s.nFeatures, c, 1)
	}

	result := mat.NewDense(r, 1, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, X)
		f := s.intercept
		for k, sv := range s.supportVecs {
			f += s.dualCoef[k] * s.kernel.Compute(sv, row)
		}
		result.Set(i, 0, f)
	}
	return result, nil
}

// Predict returns the predicted label (-1 or +1) for each row of X.
// A decision value of exactly zero maps to +1.
func (s *SVC) Predict(X mat.Matrix) (mat.Matrix, error) {
	dec, err := s.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	r, _ := dec.Dims()
	result := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		if dec.At(i, 0) < 0 {
			result.Set(i, 0, -1)
		} else {
			result.Set(i, 0, 1)
		}
	}
	return result, nil
}

// Score returns the mean accuracy of the predictions on X against y.
func (s *SVC) Score(X, y mat.Matrix) (float64, error) {
	pred, err := s.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := pred.Dims()
	yRows, _ := y.Dims()
	if yRows != r {
		return 0, errors.NewDimensionError("SVC.Score", r, yRows, 0)
	}

	correct := 0
	for i := 0; i < r; i++ {
		if pred.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(r), nil
}

// Classes returns the class labels seen during fitting.
func (s *SVC) Classes() []float64 {
	out := make([]float64, len(s.classes))
	copy(out, s.classes)
	return out
}

// NumSupportVectors returns the number of support vectors of the fitted model.
func (s *SVC) NumSupportVectors() int {
	return len(s.supportVecs)
}

// NumIterations returns the solver iteration count of the last fit.
func (s *SVC) NumIterations() int {
	return s.nIter
}

// Gamma returns the RBF width actually used, after resolving "auto".
func (s *SVC) Gamma() float64 {
	return s.resolvedGamma
}

// GetParams returns the classifier's hyperparameters.
func (s *SVC) GetParams() map[string]interface{} {
	params := map[string]interface{}{
		"kernel": s.kernelName,
		"C":      s.c,
		"tol":    s.tol,
	}
	if s.kernelName == KernelRBF {
		params["gamma"] = s.gamma
	}
	return params
}

// String returns the classifier's string representation.
func (s *SVC) String() string {
	if s.kernelName == KernelRBF {
		return fmt.Sprintf("SVC(kernel=%s, C=%g, gamma=%g)", s.kernelName, s.c, s.gamma)
	}
	return fmt.Sprintf("SVC(kernel=%s, C=%g)", s.kernelName, s.c)
}

func hasBothClasses(labels []float64) bool {
	var sawNeg, sawPos bool
	for _, y := range labels {
		if y == -1 {
			sawNeg = true
		} else {
			sawPos = true
		}
	}
	return sawNeg && sawPos
}
