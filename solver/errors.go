// SPDX-License-Identifier: MIT
// Package solver: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the solver
// package, plus the NativeError pass-through type. All operations MUST return
// these sentinels and tests MUST check them via errors.Is / errors.As. No
// operation panics on user-triggered error conditions.

package solver

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "solver: ..." for consistency and to allow
// easy grepping across logs.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil session -> lifecycle order -> structure/dimension -> engine failure.

var (
	// ErrNullSession is returned by every operation invoked on a nil
	// session reference. It stands where the native layers return their
	// null-pointer code.
	ErrNullSession = errors.New("solver: nil session")

	// ErrAlreadyInitialized rejects a second Initialize on the same
	// session. Re-initialization is never permitted; create a new session
	// for a different sparsity pattern.
	ErrAlreadyInitialized = errors.New("solver: session already initialized")

	// ErrNeedInitialization rejects Factorize before a successful Initialize.
	ErrNeedInitialization = errors.New("solver: initialization must come first")

	// ErrNeedFactorization rejects Solve without a live numeric
	// factorization (never factorized, or the last re-factorization failed).
	ErrNeedFactorization = errors.New("solver: factorization must come first")

	// ErrAnalyzeFailed wraps a back end A symbolic-analysis failure; the
	// native status rides along as a wrapped NativeError.
	ErrAnalyzeFailed = errors.New("solver: symbolic analysis failed")

	// ErrFactorizeFailed wraps a back end A numeric-factorization failure.
	ErrFactorizeFailed = errors.New("solver: numeric factorization failed")

	// ErrCondEstFailed signals that the optional condition estimate failed.
	// The factorization that preceded it remains valid and solvable.
	ErrCondEstFailed = errors.New("solver: condition estimate failed")

	// ErrStructureChanged signals that the matrix handed to Factorize or
	// Solve disagrees in dimension or entry count with the pattern given
	// at Initialize.
	ErrStructureChanged = errors.New("solver: matrix structure differs from the initialized pattern")

	// ErrDimensionMismatch signals a vector whose length disagrees with
	// the session's dimension.
	ErrDimensionMismatch = errors.New("solver: vector dimension mismatch")

	// ErrNilMatrix indicates a nil *sparse.CSC argument.
	ErrNilMatrix = errors.New("solver: nil matrix")
)

// NativeError carries an engine's own status code through unmodified, so
// callers can distinguish exact native failure reasons (singular matrix,
// invalid pattern, ...) that this layer does not re-classify.
//
// Back end B returns NativeError values directly, as its native interface
// passes codes through; back end A wraps them under the ErrAnalyzeFailed /
// ErrFactorizeFailed / ErrCondEstFailed sentinels, as its native interface
// reports wrapper-level codes. Both shapes match via errors.As.
type NativeError struct {
	Engine string // "klu" or "umfpack"
	Code   int32  // the engine's own status code
}

// Error implements the error interface.
func (e *NativeError) Error() string {
	return fmt.Sprintf("solver: %s engine status %d", e.Engine, e.Code)
}
