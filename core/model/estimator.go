// Package model provides the estimator plumbing shared by the preprocessing
// and classifier packages: fitted-state tracking and the small interface set
// the pipeline composes against.
package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for trainable estimators.
type Fitter interface {
	// Fit trains the estimator on X and target y.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for estimators that produce predictions.
type Predictor interface {
	// Predict returns predictions for each row of X as an n×1 matrix.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for estimators that can score themselves.
type Scorer interface {
	// Score returns the mean accuracy of the predictions on X against y.
	Score(X, y mat.Matrix) (float64, error)
}

// Transformer is the interface for stateful data transformations.
type Transformer interface {
	// Fit learns any statistics the transformation needs from X.
	Fit(X mat.Matrix) error
	// Transform applies the transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)
	// FitTransform fits on X and transforms it in one call.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// Classifier combines the interfaces a classification model satisfies.
type Classifier interface {
	Fitter
	Predictor
	Scorer

	// Classes returns the class labels seen during fitting.
	Classes() []float64
}

// ParameterGetter is the interface for estimators that expose their
// hyperparameters, used by the grid-search reporter.
type ParameterGetter interface {
	// GetParams returns the estimator's hyperparameters.
	GetParams() map[string]interface{}
}
