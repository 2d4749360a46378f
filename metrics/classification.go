// Package metrics provides the classification metrics reported by the
// analysis: accuracy and the confusion table.
package metrics

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/amicobudino/leukemia-analysis/pkg/errors"
)

// Accuracy returns the fraction of rows where yPred equals yTrue. Both
// inputs are n×1 matrices.
func Accuracy(yTrue, yPred mat.Matrix) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.At(i, 0) == yPred.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ConfusionMatrix counts predictions per (actual, predicted) label pair.
// counts[i][j] is the number of samples with actual label labels[i]
// predicted as labels[j]. Values outside labels are rejected.
func ConfusionMatrix(yTrue, yPred mat.Matrix, labels []float64) ([][]int, error) {
	n, err := checkPair("ConfusionMatrix", yTrue, yPred)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "labels must not be empty")
	}

	index := make(map[float64]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	counts := make([][]int, len(labels))
	for i := range counts {
		counts[i] = make([]int, len(labels))
	}

	for i := 0; i < n; i++ {
		ti, ok := index[yTrue.At(i, 0)]
		if !ok {
			return nil, errors.NewValueError("ConfusionMatrix",
				fmt.Sprintf("actual label %g at row %d not in label set", yTrue.At(i, 0), i))
		}
		pi, ok := index[yPred.At(i, 0)]
		if !ok {
			return nil, errors.NewValueError("ConfusionMatrix",
				fmt.Sprintf("predicted label %g at row %d not in label set", yPred.At(i, 0), i))
		}
		counts[ti][pi]++
	}
	return counts, nil
}

// FormatConfusion renders a confusion table with label headers, rows =
// actual, columns = predicted.
func FormatConfusion(counts [][]int, labels []float64) string {
	var b strings.Builder
	b.WriteString("actual \\ predicted")
	for _, l := range labels {
		fmt.Fprintf(&b, "\t%g", l)
	}
	b.WriteString("\n")
	for i, l := range labels {
		fmt.Fprintf(&b, "%g", l)
		for j := range labels {
			fmt.Fprintf(&b, "\t%d", counts[i][j])
		}
		if i < len(labels)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func checkPair(op string, yTrue, yPred mat.Matrix) (int, error) {
	n, c := yTrue.Dims()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty input")
	}
	if c != 1 {
		return 0, errors.NewValueError(op, "yTrue must be a column vector")
	}
	pn, pc := yPred.Dims()
	if pc != 1 {
		return 0, errors.NewValueError(op, "yPred must be a column vector")
	}
	if pn != n {
		return 0, errors.NewDimensionError(op, n, pn, 0)
	}
	return n, nil
}
