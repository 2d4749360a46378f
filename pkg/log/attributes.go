package log

// Standard attribute keys for pipeline logging. Using these keys keeps the
// JSON log stream filterable across stages.
const (
	// ModelNameKey identifies the estimator type, e.g. "SVC", "VarianceSelector".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "score", "grid_search"
	OperationKey = "ml.operation"

	// StageKey identifies which pipeline stage emitted the record.
	// Examples: "load", "split", "normalize", "select", "train", "report"
	StageKey = "pipeline.stage"

	// SamplesKey indicates the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of feature columns being processed.
	FeaturesKey = "data.features"

	// KernelKey records the SVC kernel in use ("linear" or "rbf").
	KernelKey = "svc.kernel"

	// AccuracyKey records classification accuracy in [0, 1].
	AccuracyKey = "metrics.accuracy"

	// CVMeanKey records the mean cross-validation accuracy of a candidate.
	CVMeanKey = "metrics.cv_mean_accuracy"

	// FoldsKey records the number of cross-validation folds.
	FoldsKey = "cv.folds"

	// CandidatesKey records the number of grid-search candidates.
	CandidatesKey = "grid.candidates"

	// SeedKey records the random seed for reproducibility.
	SeedKey = "config.random_seed"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
