// SPDX-License-Identifier: MIT
// Package solver: functional options for Initialize and Factorize.

package solver

import "errors"

// Option-validation errors. With* constructors panic with these messages:
// an invalid option is a programmer error, not a runtime condition.
var (
	// ErrBadOrderingCode indicates a negative ordering code passed to
	// WithOrdering. Use DefaultCode (or omit the option) for the engine default.
	ErrBadOrderingCode = errors.New("solver: ordering code must be non-negative")

	// ErrBadScalingCode indicates a negative scaling code passed to WithScaling.
	ErrBadScalingCode = errors.New("solver: scaling code must be non-negative")
)

// DefaultCode leaves an engine parameter at the engine's own default.
// Both engines interpret any negative configuration code as "do not
// override"; DefaultCode is the canonical spelling.
const DefaultCode int32 = -1

// Options configures a session operation.
//
// Ordering / Scaling – engine-specific codes (klu.Ordering*, klu.Scale*,
//
//	umfpack.Ordering*, umfpack.Scale*). DefaultCode keeps the engine default.
//
// Verbose             – enable engine diagnostics (UMFPACK only; KLU has none).
// Unsymmetric         – force the unsymmetric strategy (UMFPACK only).
// ComputeCondEstimate – estimate the 1-norm condition number (KLU only).
// ComputeDeterminant  – compute det(A) as coefficient·10^exponent (UMFPACK only).
type Options struct {
	Ordering            int32
	Scaling             int32
	Verbose             bool
	Unsymmetric         bool
	ComputeCondEstimate bool
	ComputeDeterminant  bool
}

// Option represents a functional option for a session operation.
type Option func(*Options)

// WithOrdering overrides the fill-reducing ordering. The code must be
// non-negative and valid for the session's engine; DefaultCode keeps
// the engine default. Panics on a negative code other than DefaultCode.
func WithOrdering(code int32) Option {
	return func(o *Options) {
		if code < 0 && code != DefaultCode {
			panic(ErrBadOrderingCode.Error())
		}
		o.Ordering = code
	}
}

// WithScaling overrides the row-scaling mode. The code must be
// non-negative and valid for the session's engine; DefaultCode keeps
// the engine default. Panics on a negative code other than DefaultCode.
func WithScaling(code int32) Option {
	return func(o *Options) {
		if code < 0 && code != DefaultCode {
			panic(ErrBadScalingCode.Error())
		}
		o.Scaling = code
	}
}

// WithVerbose enables the engine's own diagnostic reporting. UMFPACK
// prints its analysis/factorization summary; KLU has no diagnostics and
// accepts the option as a no-op.
func WithVerbose() Option {
	return func(o *Options) {
		o.Verbose = true
	}
}

// WithUnsymmetricStrategy forces the unsymmetric pivoting strategy,
// bypassing the automatic value-aware selection (UMFPACK only).
func WithUnsymmetricStrategy() Option {
	return func(o *Options) {
		o.Unsymmetric = true
	}
}

// WithCondEstimate requests a 1-norm condition-number estimate during
// Factorize (KLU only). The estimate lands in Stats().CondEstimate.
func WithCondEstimate() Option {
	return func(o *Options) {
		o.ComputeCondEstimate = true
	}
}

// WithDeterminant requests the determinant during Factorize (UMFPACK
// only), reported as coefficient·10^exponent in Stats().
func WithDeterminant() Option {
	return func(o *Options) {
		o.ComputeDeterminant = true
	}
}

// DefaultOptions returns an Options struct with every engine parameter
// left at the engine's own default and every optional computation off.
func DefaultOptions() Options {
	return Options{
		Ordering: DefaultCode,
		Scaling:  DefaultCode,
	}
}

// gatherOptions applies the functional options over DefaultOptions.
func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
