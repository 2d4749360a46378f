package modelselection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/amicobudino/leukemia-analysis/core/model"
	"github.com/amicobudino/leukemia-analysis/core/parallel"
	"github.com/amicobudino/leukemia-analysis/pkg/errors"
	"github.com/amicobudino/leukemia-analysis/svm"
)

// parallelThreshold is the candidate count below which grid evaluation runs
// sequentially.
const parallelThreshold = 4

// GridSearchCV performs an exhaustive hyperparameter search with k-fold
// cross-validation, then refits the best candidate on the full training
// data.
//
// Candidates are evaluated concurrently, but every score lands in an
// index-addressed slot and the winner is chosen by a sequential scan, so
// the result is deterministic: ties go to the first candidate in grid
// order.
type GridSearchCV struct {
	model.BaseEstimator

	// Grid is the ordered candidate list.
	Grid []Params

	// CV generates the folds shared by all candidates.
	CV Splitter

	// Fitted results
	BestParams  Params
	BestCVScore float64
	BestIndex   int
	MeanScores  []float64
	BestModel   *svm.SVC
}

// NewGridSearchCV creates a new grid search over the given candidates.
func NewGridSearchCV(grid []Params, cv Splitter) *GridSearchCV {
	return &GridSearchCV{Grid: grid, CV: cv}
}

// Fit runs the search on training data X with n×1 label matrix y.
func (g *GridSearchCV) Fit(X, y mat.Matrix) error {
	if len(g.Grid) == 0 {
		return errors.NewValidationError("grid", "must contain at least one candidate", len(g.Grid))
	}
	if g.CV == nil {
		return errors.NewValidationError("cv", "must not be nil", nil)
	}

	nSamples, _ := X.Dims()
	yRows, yCols := y.Dims()
	if yRows != nSamples {
		return errors.NewDimensionError("GridSearchCV.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("GridSearchCV.Fit", "y must be a column vector")
	}

	labels := make([]float64, nSamples)
	for i := range labels {
		labels[i] = y.At(i, 0)
	}

	// Folds are computed once and shared across candidates so every
	// candidate is scored on identical partitions.
	folds, err := g.CV.Split(labels)
	if err != nil {
		return errors.Wrap(err, "GridSearchCV.Fit: fold generation")
	}

	g.MeanScores = make([]float64, len(g.Grid))
	candErrs := make([]error, len(g.Grid))

	parallel.ParallelizeWithThreshold(len(g.Grid), parallelThreshold, func(start, end int) {
		for c := start; c < end; c++ {
			score, err := crossValidate(g.Grid[c], X, labels, folds)
			if err != nil {
				candErrs[c] = err
				continue
			}
			g.MeanScores[c] = score
		}
	})

	for c, err := range candErrs {
		if err != nil {
			return errors.Wrapf(err, "GridSearchCV.Fit: candidate %s", g.Grid[c])
		}
	}

	g.BestIndex = 0
	g.BestCVScore = g.MeanScores[0]
	for c := 1; c < len(g.MeanScores); c++ {
		// Strict inequality keeps the first candidate on ties.
		if g.MeanScores[c] > g.BestCVScore {
			g.BestCVScore = g.MeanScores[c]
			g.BestIndex = c
		}
	}
	g.BestParams = g.Grid[g.BestIndex]

	g.BestModel = g.BestParams.NewEstimator()
	if err := g.BestModel.Fit(X, y); err != nil {
		return errors.Wrap(err, "GridSearchCV.Fit: refit of best candidate")
	}

	g.SetFitted()
	return nil
}

// Score returns the held-out accuracy of the refitted best model.
func (g *GridSearchCV) Score(X, y mat.Matrix) (float64, error) {
	if !g.IsFitted() {
		return 0, errors.NewNotFittedError("GridSearchCV", "Score")
	}
	return g.BestModel.Score(X, y)
}

// Predict returns predictions of the refitted best model.
func (g *GridSearchCV) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !g.IsFitted() {
		return nil, errors.NewNotFittedError("GridSearchCV", "Predict")
	}
	return g.BestModel.Predict(X)
}

// crossValidate fits one candidate on every fold and returns the mean fold
// accuracy.
func crossValidate(p Params, X mat.Matrix, labels []float64, folds []Fold) (float64, error) {
	var sum float64
	for _, fold := range folds {
		trainX, trainY := extractRows(X, labels, fold.TrainIndices)
		testX, testY := extractRows(X, labels, fold.TestIndices)

		clf := p.NewEstimator()
		if err := clf.Fit(trainX, trainY); err != nil {
			return 0, err
		}
		score, err := clf.Score(testX, testY)
		if err != nil {
			return 0, err
		}
		sum += score
	}
	return sum / float64(len(folds)), nil
}

// extractRows copies the given rows of X and labels into fresh matrices.
func extractRows(X mat.Matrix, labels []float64, indices []int) (*mat.Dense, *mat.Dense) {
	_, cols := X.Dims()
	xSub := mat.NewDense(len(indices), cols, nil)
	ySub := mat.NewDense(len(indices), 1, nil)
	for i, idx := range indices {
		xSub.SetRow(i, mat.Row(nil, idx, X))
		ySub.Set(i, 0, labels[idx])
	}
	return xSub, ySub
}
