package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/amicobudino/leukemia-analysis/pkg/errors"
)

func TestLog1pTransformer(t *testing.T) {
	t.Run("ZerosMapToZeros", func(t *testing.T) {
		X := mat.NewDense(3, 2, nil)

		tr := NewLog1pTransformer()
		out, err := tr.FitTransform(X)
		require.NoError(t, err)

		r, c := out.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				assert.Equal(t, 0.0, out.At(i, j))
			}
		}
	})

	t.Run("ElementwiseValues", func(t *testing.T) {
		X := mat.NewDense(1, 3, []float64{0, math.E - 1, 9})

		tr := NewLog1pTransformer()
		out, err := tr.FitTransform(X)
		require.NoError(t, err)

		assert.InDelta(t, 0.0, out.At(0, 0), 1e-12)
		assert.InDelta(t, 1.0, out.At(0, 1), 1e-12)
		assert.InDelta(t, math.Log(10), out.At(0, 2), 1e-12)
	})

	t.Run("MonotonicNonDecreasing", func(t *testing.T) {
		values := []float64{0, 0.1, 0.5, 1, 2, 10, 100, 1000}
		X := mat.NewDense(1, len(values), values)

		tr := NewLog1pTransformer()
		out, err := tr.FitTransform(X)
		require.NoError(t, err)

		for j := 1; j < len(values); j++ {
			assert.LessOrEqual(t, out.At(0, j-1), out.At(0, j))
		}
	})

	t.Run("NotIdempotent", func(t *testing.T) {
		// log(log(x+1)+1) != log(x+1) for x > 0; the transform must not be
		// treated as a projection.
		X := mat.NewDense(1, 1, []float64{5})

		tr := NewLog1pTransformer()
		once, err := tr.FitTransform(X)
		require.NoError(t, err)
		twice, err := tr.Transform(once)
		require.NoError(t, err)

		assert.NotEqual(t, once.At(0, 0), twice.At(0, 0))
		assert.Less(t, twice.At(0, 0), once.At(0, 0))
	})

	t.Run("NotFitted", func(t *testing.T) {
		tr := NewLog1pTransformer()
		_, err := tr.Transform(mat.NewDense(1, 1, []float64{1}))
		require.Error(t, err)

		var notFitted *errors.NotFittedError
		assert.True(t, errors.As(err, &notFitted))
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		tr := NewLog1pTransformer()
		require.NoError(t, tr.Fit(mat.NewDense(2, 3, nil)))

		_, err := tr.Transform(mat.NewDense(2, 2, nil))
		require.Error(t, err)

		var dimErr *errors.DimensionError
		assert.True(t, errors.As(err, &dimErr))
	})

	t.Run("RejectsValuesBelowMinusOne", func(t *testing.T) {
		tr := NewLog1pTransformer()
		_, err := tr.FitTransform(mat.NewDense(1, 1, []float64{-2}))
		assert.Error(t, err)
	})

	t.Run("PartitionIndependence", func(t *testing.T) {
		// Transforming a partition must not depend on the other partition:
		// the same rows produce the same values whether transformed alone
		// or alongside unrelated rows.
		full := mat.NewDense(4, 2, []float64{
			1, 2,
			3, 4,
			100, 200,
			300, 400,
		})
		head := mat.NewDense(2, 2, []float64{
			1, 2,
			3, 4,
		})

		outFull, err := NewLog1pTransformer().FitTransform(full)
		require.NoError(t, err)
		outHead, err := NewLog1pTransformer().FitTransform(head)
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				assert.Equal(t, outFull.At(i, j), outHead.At(i, j))
			}
		}
	})
}
