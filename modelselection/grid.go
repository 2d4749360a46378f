package modelselection

import (
	"fmt"

	"github.com/amicobudino/leukemia-analysis/svm"
)

// Params is one hyperparameter candidate for the SVC.
type Params struct {
	Kernel string
	C      float64
	Gamma  float64 // only meaningful for the rbf kernel; 0 means "auto"
}

// String renders the candidate the way the report prints it.
func (p Params) String() string {
	if p.Kernel == svm.KernelRBF {
		return fmt.Sprintf("{kernel: rbf, C: %g, gamma: %g}", p.C, p.Gamma)
	}
	return fmt.Sprintf("{kernel: %s, C: %g}", p.Kernel, p.C)
}

// NewEstimator builds a fresh unfitted SVC configured with these parameters.
func (p Params) NewEstimator() *svm.SVC {
	opts := []svm.SVCOption{
		svm.WithKernel(p.Kernel),
		svm.WithC(p.C),
	}
	if p.Kernel == svm.KernelRBF {
		opts = append(opts, svm.WithGamma(p.Gamma))
	}
	return svm.NewSVC(opts...)
}

// LinearGrid builds a 1-D candidate list over C for the linear kernel,
// preserving the order of cs.
func LinearGrid(cs []float64) []Params {
	grid := make([]Params, 0, len(cs))
	for _, c := range cs {
		grid = append(grid, Params{Kernel: svm.KernelLinear, C: c})
	}
	return grid
}

// RBFGrid builds a 2-D candidate list over (C, gamma) for the RBF kernel.
// Iteration is C-major: gamma varies fastest, matching the order the grids
// are reported in.
func RBFGrid(cs, gammas []float64) []Params {
	grid := make([]Params, 0, len(cs)*len(gammas))
	for _, c := range cs {
		for _, g := range gammas {
			grid = append(grid, Params{Kernel: svm.KernelRBF, C: c, Gamma: g})
		}
	}
	return grid
}
