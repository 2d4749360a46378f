package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredErrors(t *testing.T) {
	t.Run("NotFittedError", func(t *testing.T) {
		err := NewNotFittedError("SVC", "Predict")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SVC")
		assert.Contains(t, err.Error(), "Predict")

		var target *NotFittedError
		require.True(t, As(err, &target))
		assert.Equal(t, "SVC", target.ModelName)
	})

	t.Run("DimensionError", func(t *testing.T) {
		err := NewDimensionError("SVC.Predict", 2000, 100, 1)
		assert.Contains(t, err.Error(), "features")
		assert.Contains(t, err.Error(), "2000")

		err = NewDimensionError("Accuracy", 79, 55, 0)
		assert.Contains(t, err.Error(), "rows")
	})

	t.Run("ValidationError", func(t *testing.T) {
		err := NewValidationError("k", "must be positive", -3)
		var target *ValidationError
		require.True(t, As(err, &target))
		assert.Equal(t, "k", target.ParamName)
		assert.Equal(t, -3, target.Value)
	})

	t.Run("DataError", func(t *testing.T) {
		err := NewDataError("LoadTSV", "data.tsv", 14, "bad value")
		assert.Contains(t, err.Error(), "data.tsv:14")

		err = NewDataError("LoadTSV", "data.tsv", 0, "empty file")
		assert.Contains(t, err.Error(), "data.tsv: empty file")
	})

	t.Run("ModelErrorUnwrap", func(t *testing.T) {
		err := NewModelError("SVC.Fit", "empty data", ErrEmptyData)
		assert.True(t, Is(err, ErrEmptyData))
	})

	t.Run("WrapKeepsChain", func(t *testing.T) {
		inner := NewNotFittedError("SVC", "Score")
		wrapped := Wrap(inner, "grid search")

		var target *NotFittedError
		assert.True(t, As(wrapped, &target))
	})
}

func TestWarn(t *testing.T) {
	t.Run("HandlerReceivesWarning", func(t *testing.T) {
		var got error
		SetWarningHandler(func(w error) { got = w })
		defer SetWarningHandler(nil)

		w := NewConvergenceWarning("SMO", 1000, "")
		Warn(w)

		require.Error(t, got)
		assert.Contains(t, got.Error(), "SMO")
		assert.Contains(t, got.Error(), "1000")
	})

	t.Run("ZerologFuncTakesPrecedence", func(t *testing.T) {
		var viaHandler, viaZerolog error
		SetWarningHandler(func(w error) { viaHandler = w })
		SetZerologWarnFunc(func(w error) { viaZerolog = w })
		defer func() {
			SetWarningHandler(nil)
			SetZerologWarnFunc(nil)
		}()

		w := NewLeakageWarning("VarianceSelector", "fitted on the full dataset")
		Warn(w)

		assert.NoError(t, viaHandler)
		require.Error(t, viaZerolog)
		assert.Contains(t, viaZerolog.Error(), "leakage")
	})
}
