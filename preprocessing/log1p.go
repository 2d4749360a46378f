// Package preprocessing provides the data transformations used ahead of
// classifier training: the elementwise log(x+1) normalizer and the
// variance-based feature selector.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/amicobudino/leukemia-analysis/core/model"
	"github.com/amicobudino/leukemia-analysis/pkg/errors"
)

// Log1pTransformer applies the elementwise transform log(x + 1).
//
// The transform is stateless per element: Fit only records the expected
// feature count, so applying the transformer independently to the train and
// test partitions cannot leak statistics between them. Note that the
// transform is NOT idempotent: log(log(x+1)+1) differs from log(x+1) for
// all x > 0.
type Log1pTransformer struct {
	model.BaseEstimator

	// NFeatures is the feature count recorded at Fit time.
	NFeatures int
}

// NewLog1pTransformer creates a new Log1pTransformer.
func NewLog1pTransformer() *Log1pTransformer {
	return &Log1pTransformer{}
}

// Fit records the expected feature count. No statistics are computed.
func (t *Log1pTransformer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("Log1pTransformer.Fit", "empty data", errors.ErrEmptyData)
	}
	t.NFeatures = c
	t.SetFitted()
	return nil
}

// Transform returns a new matrix with log(x+1) applied to every element.
// Values at or below -1 are rejected, log would be undefined.
func (t *Log1pTransformer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("Log1pTransformer", "Transform")
	}

	r, c := X.Dims()
	if c != t.NFeatures {
		return nil, errors.NewDimensionError("Log1pTransformer.Transform", t.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if v <= -1 {
				return nil, errors.NewValueError("Log1pTransformer.Transform",
					fmt.Sprintf("log1p undefined for value %g at (%d, %d)", v, i, j))
			}
			result.Set(i, j, math.Log1p(v))
		}
	}
	return result, nil
}

// FitTransform fits on X and transforms it in one call.
func (t *Log1pTransformer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := t.Fit(X); err != nil {
		return nil, err
	}
	return t.Transform(X)
}

// GetParams returns the transformer's parameters.
func (t *Log1pTransformer) GetParams() map[string]interface{} {
	return map[string]interface{}{}
}

// String returns the transformer's string representation.
func (t *Log1pTransformer) String() string {
	if !t.IsFitted() {
		return "Log1pTransformer()"
	}
	return fmt.Sprintf("Log1pTransformer(n_features=%d)", t.NFeatures)
}
