// Package leukemiaanalysis is the root of the gene-expression SVM analysis
// repository.
//
// The repository pairs a batch analysis command with the library packages it
// is built from:
//
//   - dataset: tab-separated expression table loading and subsetting
//   - preprocessing: log(x+1) normalization and variance-based feature
//     selection
//   - svm: binary C-support-vector classifier (linear and RBF kernels,
//     SMO solver)
//   - modelselection: seeded stratified splitting, k-fold generators and
//     cross-validated grid search
//   - metrics: accuracy and confusion tables
//   - report: console report and accuracy bar chart
//
// The analysis itself lives in cmd/leukemia-analysis and is a straight-line
// batch pipeline: load, split, normalize, tune, evaluate, report. For a
// fixed seed the whole pipeline is deterministic.
package leukemiaanalysis
