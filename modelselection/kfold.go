package modelselection

import (
	"math/rand/v2"
	"sort"

	"github.com/amicobudino/leukemia-analysis/pkg/errors"
)

// Fold is one train/validate partition of a k-way rotation.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// Splitter generates cross-validation folds from a label vector.
type Splitter interface {
	Split(y []float64) ([]Fold, error)
	NumSplits() int
}

// KFold is a plain k-fold splitter.
type KFold struct {
	NSplits int
	Shuffle bool
	Seed    uint64
}

// NewKFold creates a new k-fold splitter.
func NewKFold(nSplits int, shuffle bool, seed uint64) *KFold {
	if nSplits < 2 {
		nSplits = 5
	}
	return &KFold{NSplits: nSplits, Shuffle: shuffle, Seed: seed}
}

// NumSplits returns the number of folds.
func (kf *KFold) NumSplits() int { return kf.NSplits }

// Split generates train/test indices for each fold.
func (kf *KFold) Split(y []float64) ([]Fold, error) {
	n := len(y)
	if n < kf.NSplits {
		return nil, errors.NewValidationError("n_splits",
			"cannot have more folds than samples", kf.NSplits)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		r := rand.New(rand.NewPCG(kf.Seed, kf.Seed))
		r.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.NSplits)
	foldSize := n / kf.NSplits
	remainder := n % kf.NSplits

	current := 0
	for f := 0; f < kf.NSplits; f++ {
		testSize := foldSize
		if f < remainder {
			testSize++
		}
		folds[f].TestIndices = append([]int(nil), indices[current:current+testSize]...)
		current += testSize
	}
	fillTrainIndices(folds, n)
	return folds, nil
}

// StratifiedKFold is a k-fold splitter that preserves the per-class sample
// counts within ±1 in every fold.
type StratifiedKFold struct {
	NSplits int
	Shuffle bool
	Seed    uint64
}

// NewStratifiedKFold creates a new stratified k-fold splitter.
func NewStratifiedKFold(nSplits int, shuffle bool, seed uint64) *StratifiedKFold {
	if nSplits < 2 {
		nSplits = 5
	}
	return &StratifiedKFold{NSplits: nSplits, Shuffle: shuffle, Seed: seed}
}

// NumSplits returns the number of folds.
func (skf *StratifiedKFold) NumSplits() int { return skf.NSplits }

// Split generates stratified train/test indices for each fold. Every class
// must have at least NSplits members; a degenerate label distribution is an
// error, not something to paper over.
func (skf *StratifiedKFold) Split(y []float64) ([]Fold, error) {
	n := len(y)
	byClass, labels := groupByClass(y)
	if len(labels) < 2 {
		return nil, errors.NewValidationError("y",
			"stratified folds need at least two classes", len(labels))
	}
	for _, label := range labels {
		if len(byClass[label]) < skf.NSplits {
			return nil, errors.NewValidationError("n_splits",
				"a class has fewer members than the number of folds", label)
		}
	}

	var r *rand.Rand
	if skf.Shuffle {
		r = rand.New(rand.NewPCG(skf.Seed, skf.Seed))
	}

	folds := make([]Fold, skf.NSplits)

	// Distribute each class across folds round-robin style; the remainder
	// goes to the leading folds.
	for _, label := range labels {
		indices := byClass[label]
		if r != nil {
			r.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}

		foldSize := len(indices) / skf.NSplits
		remainder := len(indices) % skf.NSplits
		current := 0
		for f := 0; f < skf.NSplits; f++ {
			testSize := foldSize
			if f < remainder {
				testSize++
			}
			folds[f].TestIndices = append(folds[f].TestIndices, indices[current:current+testSize]...)
			current += testSize
		}
	}

	for f := range folds {
		sort.Ints(folds[f].TestIndices)
	}
	fillTrainIndices(folds, n)
	return folds, nil
}

// fillTrainIndices completes each fold's train set with every sample not in
// its test set.
func fillTrainIndices(folds []Fold, n int) {
	for f := range folds {
		inTest := make(map[int]bool, len(folds[f].TestIndices))
		for _, idx := range folds[f].TestIndices {
			inTest[idx] = true
		}
		train := make([]int, 0, n-len(folds[f].TestIndices))
		for i := 0; i < n; i++ {
			if !inTest[i] {
				train = append(train, i)
			}
		}
		folds[f].TrainIndices = train
	}
}
