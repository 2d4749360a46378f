// Package dataset loads the tab-separated gene-expression table and
// provides row/column subsetting for the pipeline stages.
package dataset

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/amicobudino/leukemia-analysis/pkg/errors"
)

// Table is an immutable in-memory expression table: one row per sample,
// one column per gene probe, plus a sample identifier and a binary label
// in {-1, +1}. Derived tables (subsets, transforms) are fresh copies.
type Table struct {
	IDs          []string
	FeatureNames []string
	X            *mat.Dense // NumSamples × NumFeatures
	Y            []float64  // labels, one per sample
}

// Shape returns the (samples, features) dimensions of the table.
func (t *Table) Shape() (int, int) {
	return t.NumSamples(), t.NumFeatures()
}

// NumSamples returns the number of rows.
func (t *Table) NumSamples() int {
	if t.X == nil {
		return 0
	}
	r, _ := t.X.Dims()
	return r
}

// NumFeatures returns the number of feature columns.
func (t *Table) NumFeatures() int {
	if t.X == nil {
		return 0
	}
	_, c := t.X.Dims()
	return c
}

// LabelCount is one entry of a label value-count summary.
type LabelCount struct {
	Label float64
	Count int
}

// LabelCounts returns the per-label sample counts sorted by label value.
func (t *Table) LabelCounts() []LabelCount {
	counts := make(map[float64]int)
	for _, y := range t.Y {
		counts[y]++
	}
	out := make([]LabelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, LabelCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// YMatrix returns the labels as an n×1 matrix for the estimator interfaces.
func (t *Table) YMatrix() *mat.Dense {
	n := t.NumSamples()
	m := mat.NewDense(n, 1, nil)
	for i, y := range t.Y {
		m.Set(i, 0, y)
	}
	return m
}

// Subset returns a new table containing the given rows in the given order.
func (t *Table) Subset(rows []int) (*Table, error) {
	n := t.NumSamples()
	for _, r := range rows {
		if r < 0 || r >= n {
			return nil, errors.NewValidationError("rows", "row index out of range", r)
		}
	}

	_, p := t.X.Dims()
	x := mat.NewDense(len(rows), p, nil)
	ids := make([]string, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		x.SetRow(i, mat.Row(nil, r, t.X))
		ids[i] = t.IDs[r]
		y[i] = t.Y[r]
	}

	names := make([]string, len(t.FeatureNames))
	copy(names, t.FeatureNames)
	return &Table{IDs: ids, FeatureNames: names, X: x, Y: y}, nil
}

// Select returns a new table keeping only the given feature columns, in the
// given order. The ID and label columns are always retained.
func (t *Table) Select(cols []int) (*Table, error) {
	_, p := t.X.Dims()
	for _, c := range cols {
		if c < 0 || c >= p {
			return nil, errors.NewValidationError("cols", "column index out of range", c)
		}
	}

	n := t.NumSamples()
	x := mat.NewDense(n, len(cols), nil)
	names := make([]string, len(cols))
	for j, c := range cols {
		for i := 0; i < n; i++ {
			x.Set(i, j, t.X.At(i, c))
		}
		names[j] = t.FeatureNames[c]
	}

	ids := make([]string, n)
	copy(ids, t.IDs)
	y := make([]float64, n)
	copy(y, t.Y)
	return &Table{IDs: ids, FeatureNames: names, X: x, Y: y}, nil
}
