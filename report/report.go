// Package report renders the analysis output: the console text report and
// the accuracy bar chart. It contains no modelling logic.
package report

import (
	"fmt"
	"io"

	"github.com/amicobudino/leukemia-analysis/dataset"
	"github.com/amicobudino/leukemia-analysis/metrics"
	"github.com/amicobudino/leukemia-analysis/modelselection"
)

// RunResult is the outcome of one grid-search run.
type RunResult struct {
	Name         string // e.g. "linear SVC, all features"
	BestParams   modelselection.Params
	CVAccuracy   float64 // mean cross-validation accuracy of the best candidate
	TestAccuracy float64 // held-out accuracy of the refitted best model
	Confusion    [][]int
	Labels       []float64
}

// WriteDatasetSummary prints the table shape and label value counts.
func WriteDatasetSummary(w io.Writer, t *dataset.Table) {
	n, p := t.Shape()
	fmt.Fprintf(w, "dataset: %d samples x %d features\n", n, p)
	fmt.Fprintf(w, "label counts:\n")
	for _, lc := range t.LabelCounts() {
		fmt.Fprintf(w, "  %g: %d\n", lc.Label, lc.Count)
	}
	fmt.Fprintln(w)
}

// WriteRunResult prints one run's best parameters, accuracies and confusion
// table.
func WriteRunResult(w io.Writer, r RunResult) {
	fmt.Fprintf(w, "=== %s ===\n", r.Name)
	fmt.Fprintf(w, "best params: %s\n", r.BestParams)
	fmt.Fprintf(w, "cross-validation accuracy: %.4f\n", r.CVAccuracy)
	fmt.Fprintf(w, "test accuracy: %.4f\n", r.TestAccuracy)
	fmt.Fprintln(w, metrics.FormatConfusion(r.Confusion, r.Labels))
	fmt.Fprintln(w)
}
