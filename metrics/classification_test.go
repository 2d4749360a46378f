package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func col(values ...float64) *mat.Dense {
	return mat.NewDense(len(values), 1, values)
}

func TestAccuracy(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		acc, err := Accuracy(col(-1, 1, -1, 1), col(-1, 1, 1, 1))
		require.NoError(t, err)
		assert.InDelta(t, 0.75, acc, 1e-12)
	})

	t.Run("Perfect", func(t *testing.T) {
		acc, err := Accuracy(col(-1, 1), col(-1, 1))
		require.NoError(t, err)
		assert.Equal(t, 1.0, acc)
	})

	t.Run("NotAColumnVector", func(t *testing.T) {
		_, err := Accuracy(mat.NewDense(1, 2, nil), col(1))
		assert.Error(t, err)
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := Accuracy(col(-1, 1), col(-1))
		assert.Error(t, err)
	})
}

func TestConfusionMatrix(t *testing.T) {
	labels := []float64{-1, 1}

	t.Run("Counts", func(t *testing.T) {
		yTrue := col(-1, -1, -1, 1, 1, 1)
		yPred := col(-1, 1, -1, 1, -1, 1)

		counts, err := ConfusionMatrix(yTrue, yPred, labels)
		require.NoError(t, err)

		assert.Equal(t, [][]int{
			{2, 1},
			{1, 2},
		}, counts)
	})

	t.Run("CountsSumToN", func(t *testing.T) {
		yTrue := col(-1, -1, 1, 1, 1)
		yPred := col(1, 1, 1, -1, -1)

		counts, err := ConfusionMatrix(yTrue, yPred, labels)
		require.NoError(t, err)

		total := 0
		for _, row := range counts {
			for _, c := range row {
				total += c
			}
		}
		assert.Equal(t, 5, total)
	})

	t.Run("UnknownLabel", func(t *testing.T) {
		_, err := ConfusionMatrix(col(-1, 2), col(-1, 1), labels)
		assert.Error(t, err)
	})

	t.Run("EmptyLabelSet", func(t *testing.T) {
		_, err := ConfusionMatrix(col(-1), col(-1), nil)
		assert.Error(t, err)
	})
}

func TestFormatConfusion(t *testing.T) {
	counts := [][]int{
		{12, 1},
		{2, 9},
	}
	out := FormatConfusion(counts, []float64{-1, 1})

	assert.Contains(t, out, "actual \\ predicted")
	assert.Contains(t, out, "-1\t12\t1")
	assert.Contains(t, out, "1\t2\t9")
}
