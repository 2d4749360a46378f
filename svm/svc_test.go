package svm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/amicobudino/leukemia-analysis/pkg/errors"
)

// separableData is a linearly separable two-cluster problem.
func separableData() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(8, 2, []float64{
		0.0, 0.2,
		0.3, 0.0,
		0.1, 0.4,
		0.2, 0.1,
		4.0, 4.1,
		4.2, 3.9,
		3.8, 4.0,
		4.1, 4.3,
	})
	y := mat.NewDense(8, 1, []float64{-1, -1, -1, -1, 1, 1, 1, 1})
	return X, y
}

// xorData is the classic non-linearly-separable pattern.
func xorData() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		1, 1,
		0, 1,
		1, 0,
	})
	y := mat.NewDense(4, 1, []float64{-1, -1, 1, 1})
	return X, y
}

func TestSVCLinearSeparable(t *testing.T) {
	X, y := separableData()

	clf := NewSVC(WithKernel(KernelLinear), WithC(1))
	require.NoError(t, clf.Fit(X, y))

	score, err := clf.Score(X, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)

	assert.Greater(t, clf.NumSupportVectors(), 0)
	assert.Equal(t, []float64{-1, 1}, clf.Classes())

	// A point deep in the positive cluster.
	pred, err := clf.Predict(mat.NewDense(1, 2, []float64{5, 5}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, pred.At(0, 0))

	pred, err = clf.Predict(mat.NewDense(1, 2, []float64{-1, -1}))
	require.NoError(t, err)
	assert.Equal(t, -1.0, pred.At(0, 0))
}

func TestSVCRBFSolvesXOR(t *testing.T) {
	X, y := xorData()

	linear := NewSVC(WithKernel(KernelLinear), WithC(10))
	require.NoError(t, linear.Fit(X, y))
	linScore, err := linear.Score(X, y)
	require.NoError(t, err)
	assert.Less(t, linScore, 1.0, "a linear kernel cannot separate XOR")

	rbf := NewSVC(WithKernel(KernelRBF), WithC(10), WithGamma(1))
	require.NoError(t, rbf.Fit(X, y))
	rbfScore, err := rbf.Score(X, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rbfScore)
}

func TestSVCDeterministicFit(t *testing.T) {
	X, y := separableData()
	probe := mat.NewDense(3, 2, []float64{1, 1, 2, 2, 3, 3})

	var first []float64
	for run := 0; run < 3; run++ {
		clf := NewSVC(WithKernel(KernelRBF), WithC(1), WithGamma(0.5))
		require.NoError(t, clf.Fit(X, y))

		dec, err := clf.DecisionFunction(probe)
		require.NoError(t, err)

		values := make([]float64, 3)
		for i := range values {
			values[i] = dec.At(i, 0)
		}
		if first == nil {
			first = values
			continue
		}
		assert.Equal(t, first, values, "fit must be bit-identical across runs")
	}
}

func TestSVCGammaAuto(t *testing.T) {
	X, y := separableData()

	clf := NewSVC(WithKernel(KernelRBF), WithC(1))
	require.NoError(t, clf.Fit(X, y))

	// gamma defaults to 1/n_features.
	assert.InDelta(t, 0.5, clf.Gamma(), 1e-12)
}

func TestSVCValidation(t *testing.T) {
	X, y := separableData()

	t.Run("NotFitted", func(t *testing.T) {
		clf := NewSVC()
		_, err := clf.Predict(X)
		require.Error(t, err)

		var notFitted *errors.NotFittedError
		assert.True(t, errors.As(err, &notFitted))
	})

	t.Run("BadKernel", func(t *testing.T) {
		clf := NewSVC(WithKernel("poly"))
		assert.Error(t, clf.Fit(X, y))
	})

	t.Run("NonPositiveC", func(t *testing.T) {
		clf := NewSVC(WithC(0))
		assert.Error(t, clf.Fit(X, y))
	})

	t.Run("BadLabels", func(t *testing.T) {
		bad := mat.NewDense(8, 1, []float64{-1, -1, -1, -1, 1, 1, 1, 2})
		clf := NewSVC()
		assert.Error(t, clf.Fit(X, bad))
	})

	t.Run("SingleClass", func(t *testing.T) {
		ones := mat.NewDense(8, 1, []float64{1, 1, 1, 1, 1, 1, 1, 1})
		clf := NewSVC()
		assert.Error(t, clf.Fit(X, ones))
	})

	t.Run("RowMismatch", func(t *testing.T) {
		clf := NewSVC()
		require.NoError(t, clf.Fit(X, y))

		_, err := clf.Predict(mat.NewDense(1, 3, nil))
		require.Error(t, err)

		var dimErr *errors.DimensionError
		assert.True(t, errors.As(err, &dimErr))
	})
}

func TestSVCMaxIterWarning(t *testing.T) {
	X, y := separableData()

	var warned error
	errors.SetWarningHandler(func(w error) { warned = w })
	defer errors.SetWarningHandler(nil)

	clf := NewSVC(WithKernel(KernelRBF), WithC(100), WithGamma(10), WithMaxIter(1))
	require.NoError(t, clf.Fit(X, y), "hitting the cap must not fail the fit")

	var conv *errors.ConvergenceWarning
	require.Error(t, warned)
	assert.True(t, errors.As(warned, &conv))
}

func TestKernels(t *testing.T) {
	t.Run("Linear", func(t *testing.T) {
		k := LinearKernel{}
		assert.InDelta(t, 11.0, k.Compute([]float64{1, 2}, []float64{3, 4}), 1e-12)
		assert.Equal(t, "linear", k.Name())
	})

	t.Run("RBF", func(t *testing.T) {
		k := RBFKernel{Gamma: 0.5}
		// Identical vectors map to exactly 1.
		assert.Equal(t, 1.0, k.Compute([]float64{1, 2}, []float64{1, 2}))
		// ||x-z||² = 2 at gamma 0.5 gives e^-1.
		assert.InDelta(t, 0.36787944117144233, k.Compute([]float64{0, 0}, []float64{1, 1}), 1e-12)
	})
}
