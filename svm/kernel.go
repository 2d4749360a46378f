package svm

import (
	"math"

	"github.com/amicobudino/leukemia-analysis/pkg/errors"
)

// Kernel names accepted by WithKernel.
const (
	KernelLinear = "linear"
	KernelRBF    = "rbf"
)

// Kernel computes the inner product of two samples in feature space.
type Kernel interface {
	// Compute evaluates K(x, z) for two equal-length sample vectors.
	Compute(x, z []float64) float64
	// Name returns the kernel identifier.
	Name() string
}

// LinearKernel is K(x, z) = <x, z>.
type LinearKernel struct{}

// Compute evaluates the dot product of x and z.
func (LinearKernel) Compute(x, z []float64) float64 {
	var sum float64
	for i := range x {
		sum += x[i] * z[i]
	}
	return sum
}

// Name returns "linear".
func (LinearKernel) Name() string { return KernelLinear }

// RBFKernel is K(x, z) = exp(-gamma * ||x - z||²).
type RBFKernel struct {
	Gamma float64
}

// Compute evaluates the Gaussian kernel of x and z.
func (k RBFKernel) Compute(x, z []float64) float64 {
	var sq float64
	for i := range x {
		d := x[i] - z[i]
		sq += d * d
	}
	return math.Exp(-k.Gamma * sq)
}

// Name returns "rbf".
func (k RBFKernel) Name() string { return KernelRBF }

// newKernel resolves a kernel name and parameters to a Kernel. gamma must
// already be resolved (the "auto" default is applied by the caller, which
// knows the feature count).
func newKernel(name string, gamma float64) (Kernel, error) {
	switch name {
	case KernelLinear:
		return LinearKernel{}, nil
	case KernelRBF:
		if gamma <= 0 {
			return nil, errors.NewValidationError("gamma", "must be positive for the rbf kernel", gamma)
		}
		return RBFKernel{Gamma: gamma}, nil
	default:
		return nil, errors.NewValidationError("kernel", "must be 'linear' or 'rbf'", name)
	}
}
