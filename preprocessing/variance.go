package preprocessing

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/amicobudino/leukemia-analysis/core/model"
	"github.com/amicobudino/leukemia-analysis/pkg/errors"
)

// VarianceSelector keeps the K feature columns with the largest sample
// variance. Ties are broken by ascending column index, and the selected
// indices are reported in ascending column order so downstream tables keep
// the original column ordering.
//
// The original analysis fits this selector on the FULL dataset before the
// train/test split is redrawn, so the selection is informed by test-set
// values. That is a known leakage caveat of the source analysis; callers
// that reproduce it should emit a LeakageWarning rather than silently
// changing the behavior.
type VarianceSelector struct {
	model.BaseEstimator

	// K is the number of columns to keep.
	K int

	// NFeatures is the feature count recorded at Fit time.
	NFeatures int

	variances []float64
	selected  []int
}

// NewVarianceSelector creates a selector keeping the top k columns.
func NewVarianceSelector(k int) *VarianceSelector {
	return &VarianceSelector{K: k}
}

// Fit computes per-column sample variances (n-1 denominator) and records
// the indices of the K highest-variance columns.
func (s *VarianceSelector) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("VarianceSelector.Fit", "empty data", errors.ErrEmptyData)
	}
	if s.K <= 0 {
		return errors.NewValidationError("k", "must be positive", s.K)
	}
	if s.K > c {
		return errors.NewValidationError("k", fmt.Sprintf("must not exceed the %d available columns", c), s.K)
	}

	s.NFeatures = c
	s.variances = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		s.variances[j] = stat.Variance(col, nil)
	}

	order := make([]int, c)
	for i := range order {
		order[i] = i
	}
	// Descending variance; stable ordering keeps ties in column order.
	sort.SliceStable(order, func(a, b int) bool {
		return s.variances[order[a]] > s.variances[order[b]]
	})

	s.selected = make([]int, s.K)
	copy(s.selected, order[:s.K])
	sort.Ints(s.selected)

	s.SetFitted()
	return nil
}

// Transform reduces X to the selected columns.
func (s *VarianceSelector) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("VarianceSelector", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("VarianceSelector.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, s.K, nil)
	for j, src := range s.selected {
		for i := 0; i < r; i++ {
			result.Set(i, j, X.At(i, src))
		}
	}
	return result, nil
}

// FitTransform fits on X and transforms it in one call.
func (s *VarianceSelector) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// SelectedIndices returns the selected column indices in ascending order.
func (s *VarianceSelector) SelectedIndices() []int {
	out := make([]int, len(s.selected))
	copy(out, s.selected)
	return out
}

// Variances returns the per-column sample variances computed at Fit time.
func (s *VarianceSelector) Variances() []float64 {
	out := make([]float64, len(s.variances))
	copy(out, s.variances)
	return out
}

// GetParams returns the selector's parameters.
func (s *VarianceSelector) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"k": s.K,
	}
}

// String returns the selector's string representation.
func (s *VarianceSelector) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("VarianceSelector(k=%d)", s.K)
	}
	return fmt.Sprintf("VarianceSelector(k=%d, n_features=%d)", s.K, s.NFeatures)
}
