// Command leukemia-analysis runs the gene-expression SVM analysis: load the
// expression table, split it, normalize with log(x+1), tune linear and RBF
// support-vector classifiers by cross-validated grid search, and report
// test accuracy and confusion tables for the full and variance-filtered
// feature sets.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/amicobudino/leukemia-analysis/dataset"
	"github.com/amicobudino/leukemia-analysis/metrics"
	"github.com/amicobudino/leukemia-analysis/modelselection"
	"github.com/amicobudino/leukemia-analysis/pkg/errors"
	"github.com/amicobudino/leukemia-analysis/pkg/log"
	"github.com/amicobudino/leukemia-analysis/preprocessing"
	"github.com/amicobudino/leukemia-analysis/report"
)

const (
	seed     = 42
	testSize = 0.3
	cvFolds  = 5
	topK     = 100
)

var (
	cGrid     = []float64{0.001, 0.01, 0.1, 1, 10, 100}
	gammaGrid = []float64{1e-4, 1e-3, 1e-2, 1e-1, 1}
	classes   = []float64{-1, 1}
)

func main() {
	dataPath := flag.String("data", "data/gene_expression.tsv", "path to the tab-separated expression file")
	outDir := flag.String("out", "out", "directory for rendered charts")
	loglevel := flag.String("loglevel", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.Setup(*loglevel)

	if err := run(*dataPath, *outDir); err != nil {
		slog.Error("analysis failed", log.ErrAttr(err))
		os.Exit(1)
	}
}

func run(dataPath, outDir string) error {
	tbl, err := dataset.LoadTSV(dataPath)
	if err != nil {
		return err
	}
	slog.Info("dataset loaded",
		log.StageKey, "load",
		log.SamplesKey, tbl.NumSamples(),
		log.FeaturesKey, tbl.NumFeatures(),
	)
	report.WriteDatasetSummary(os.Stdout, tbl)

	results := make([]report.RunResult, 0, 4)

	full, err := runPipelines(tbl, "all features")
	if err != nil {
		return err
	}
	results = append(results, full...)

	// The original analysis ranks feature variance on the FULL dataset and
	// only then redraws the split, so the selection sees test-partition
	// values. Kept as-is; flagged instead of fixed.
	errors.Warn(errors.NewLeakageWarning("VarianceSelector",
		"feature variances are computed on the full dataset before the train/test split is redrawn"))

	selector := preprocessing.NewVarianceSelector(topK)
	if err := selector.Fit(tbl.X); err != nil {
		return err
	}
	filtered, err := tbl.Select(selector.SelectedIndices())
	if err != nil {
		return err
	}
	slog.Info("variance filter applied",
		log.StageKey, "select",
		log.FeaturesKey, filtered.NumFeatures(),
	)

	topResults, err := runPipelines(filtered, fmt.Sprintf("top %d by variance", topK))
	if err != nil {
		return err
	}
	results = append(results, topResults...)

	for _, r := range results {
		report.WriteRunResult(os.Stdout, r)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrapf(err, "create output directory %s", outDir)
	}
	chartPath := filepath.Join(outDir, "test_accuracy.png")
	if err := report.BarChart(chartPath, results); err != nil {
		return err
	}
	slog.Info("chart rendered", log.StageKey, "report", "path", chartPath)
	return nil
}

// runPipelines splits the table, normalizes both partitions, and runs the
// linear and RBF grid searches on the training split.
func runPipelines(tbl *dataset.Table, tag string) ([]report.RunResult, error) {
	trainIdx, testIdx, err := modelselection.StratifiedTrainTestSplit(tbl.Y, testSize, seed)
	if err != nil {
		return nil, err
	}
	trainTbl, err := tbl.Subset(trainIdx)
	if err != nil {
		return nil, err
	}
	testTbl, err := tbl.Subset(testIdx)
	if err != nil {
		return nil, err
	}
	slog.Info("split drawn",
		log.StageKey, "split",
		log.SeedKey, seed,
		"train_samples", trainTbl.NumSamples(),
		"test_samples", testTbl.NumSamples(),
	)

	// log(x+1) is stateless per element, so each partition is transformed
	// with its own transformer and no statistics cross the split.
	trainX, err := preprocessing.NewLog1pTransformer().FitTransform(trainTbl.X)
	if err != nil {
		return nil, err
	}
	testX, err := preprocessing.NewLog1pTransformer().FitTransform(testTbl.X)
	if err != nil {
		return nil, err
	}
	trainY := trainTbl.YMatrix()
	testY := testTbl.YMatrix()

	var results []report.RunResult
	grids := []struct {
		name string
		grid []modelselection.Params
	}{
		{name: "linear SVC, " + tag, grid: modelselection.LinearGrid(cGrid)},
		{name: "RBF SVC, " + tag, grid: modelselection.RBFGrid(cGrid, gammaGrid)},
	}

	for _, g := range grids {
		res, err := runGridSearch(g.name, g.grid, trainX, trainY, testX, testY)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// runGridSearch tunes one kernel configuration and evaluates the refitted
// winner on the held-out partition.
func runGridSearch(name string, grid []modelselection.Params, trainX, trainY, testX, testY mat.Matrix) (report.RunResult, error) {
	cv := modelselection.NewStratifiedKFold(cvFolds, true, seed)
	search := modelselection.NewGridSearchCV(grid, cv)
	if err := search.Fit(trainX, trainY); err != nil {
		return report.RunResult{}, err
	}

	testAcc, err := search.Score(testX, testY)
	if err != nil {
		return report.RunResult{}, err
	}
	pred, err := search.Predict(testX)
	if err != nil {
		return report.RunResult{}, err
	}
	confusion, err := metrics.ConfusionMatrix(testY, pred, classes)
	if err != nil {
		return report.RunResult{}, err
	}

	slog.Info("grid search finished",
		log.StageKey, "train",
		log.OperationKey, "grid_search",
		log.CandidatesKey, len(grid),
		log.FoldsKey, cvFolds,
		log.CVMeanKey, search.BestCVScore,
		log.AccuracyKey, testAcc,
		"run", name,
	)

	return report.RunResult{
		Name:         name,
		BestParams:   search.BestParams,
		CVAccuracy:   search.BestCVScore,
		TestAccuracy: testAcc,
		Confusion:    confusion,
		Labels:       classes,
	}, nil
}
