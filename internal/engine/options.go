package engine

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidOptions is wrapped by every Options validation failure.
var ErrInvalidOptions = errors.New("invalid engine options")

const (
	DefaultIterations    = 50
	DefaultBaseRank      = 0.15
	DefaultDampingFactor = 0.85
)

// Options configures a computation.
type Options struct {
	Iterations    int
	BaseRank      float64
	DampingFactor float64
	Workers       int
}

// DefaultOptions returns the standard constants with a single worker.
func DefaultOptions() Options {
	return Options{
		Iterations:    DefaultIterations,
		BaseRank:      DefaultBaseRank,
		DampingFactor: DefaultDampingFactor,
		Workers:       1,
	}
}

// Validate reports every invalid field.
func (o Options) Validate() error {
	var errs []error
	if o.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: worker count must be at least 1, got %d", ErrInvalidOptions, o.Workers))
	}
	if o.Iterations < 1 {
		errs = append(errs, fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidOptions, o.Iterations))
	}
	if o.BaseRank < 0 || math.IsNaN(o.BaseRank) {
		errs = append(errs, fmt.Errorf("%w: base rank must not be negative, got %g", ErrInvalidOptions, o.BaseRank))
	}
	if !(o.DampingFactor >= 0 && o.DampingFactor <= 1) {
		errs = append(errs, fmt.Errorf("%w: damping factor must be within [0, 1], got %g", ErrInvalidOptions, o.DampingFactor))
	}
	return errors.Join(errs...)
}
