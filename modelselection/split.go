// Package modelselection provides the seeded train/test splitters,
// cross-validation fold generators and the cross-validated grid search used
// to tune the support-vector classifiers.
package modelselection

import (
	"math/rand/v2"
	"sort"

	"github.com/amicobudino/leukemia-analysis/pkg/errors"
)

// TrainTestSplit partitions row indices 0..n-1 into disjoint train and test
// sets. The shuffle is driven by a PCG generator seeded from seed, so the
// split is deterministic for a fixed seed.
func TrainTestSplit(n int, testSize float64, seed uint64) (train, test []int, err error) {
	if n <= 1 {
		return nil, nil, errors.NewValidationError("n", "need at least two samples to split", n)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, errors.NewValidationError("testSize", "must be in (0, 1)", testSize)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	r := rand.New(rand.NewPCG(seed, seed))
	r.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	nTest := int(float64(n)*testSize + 0.5)
	if nTest == 0 {
		nTest = 1
	}
	if nTest == n {
		nTest = n - 1
	}

	test = append([]int(nil), indices[:nTest]...)
	train = append([]int(nil), indices[nTest:]...)
	return train, test, nil
}

// StratifiedTrainTestSplit partitions row indices into train and test sets
// while preserving the per-label proportions within integer rounding. The
// per-class shuffles share one PCG generator seeded from seed, and classes
// are processed in ascending label order, so the split is deterministic.
func StratifiedTrainTestSplit(y []float64, testSize float64, seed uint64) (train, test []int, err error) {
	if len(y) <= 1 {
		return nil, nil, errors.NewValidationError("y", "need at least two samples to split", len(y))
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, errors.NewValidationError("testSize", "must be in (0, 1)", testSize)
	}

	byClass, labels := groupByClass(y)
	for _, label := range labels {
		if len(byClass[label]) < 2 {
			return nil, nil, errors.NewValidationError("y",
				"every class needs at least two members for a stratified split", label)
		}
	}

	r := rand.New(rand.NewPCG(seed, seed))
	for _, label := range labels {
		indices := byClass[label]
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		nTest := int(float64(len(indices))*testSize + 0.5)
		if nTest == 0 {
			nTest = 1
		}
		if nTest == len(indices) {
			nTest = len(indices) - 1
		}

		test = append(test, indices[:nTest]...)
		train = append(train, indices[nTest:]...)
	}

	sort.Ints(train)
	sort.Ints(test)
	return train, test, nil
}

// groupByClass buckets sample indices per label and returns the labels in
// ascending order. Map iteration order is randomized in Go, so every caller
// that must stay deterministic walks the returned label slice instead.
func groupByClass(y []float64) (map[float64][]int, []float64) {
	byClass := make(map[float64][]int)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	labels := make([]float64, 0, len(byClass))
	for label := range byClass {
		labels = append(labels, label)
	}
	sort.Float64s(labels)
	return byClass, labels
}
