// SPDX-License-Identifier: MIT
// Package solver: normalized status-code taxonomy.
//
// The Go surface reports failures as errors; Status is the small-integer
// view of the same taxonomy for callers that need a numeric contract
// (bindings, wire protocols, logs). Zero is success. Protocol codes live
// in a dedicated 100000-step band well clear of every engine's native
// range; native codes pass through unmodified below the band.

package solver

import (
	"errors"
	"fmt"
)

// Status is the normalized status code of a session operation.
type Status int32

// Protocol status codes. Native engine codes (|code| < protocolBand) are
// represented by their own value.
const (
	// StatusSuccess - the operation completed.
	StatusSuccess Status = 0

	// StatusNullPointer - the session reference was nil.
	StatusNullPointer Status = 100000

	// StatusNeedInitialization - Factorize before Initialize.
	StatusNeedInitialization Status = 200000

	// StatusAlreadyInitialized - second Initialize on one session.
	StatusAlreadyInitialized Status = 300000

	// StatusNeedFactorization - Solve without a live factorization.
	StatusNeedFactorization Status = 400000

	// StatusAnalyzeFailed - back end A symbolic analysis failed.
	StatusAnalyzeFailed Status = 500000

	// StatusFactorizeFailed - back end A numeric factorization failed.
	StatusFactorizeFailed Status = 600000

	// StatusCondEstFailed - optional condition estimate failed.
	StatusCondEstFailed Status = 700000

	// StatusStructureChanged - matrix dimension/nnz drifted from the
	// initialized pattern.
	StatusStructureChanged Status = 800000

	// StatusDimensionMismatch - vector length disagrees with the session.
	StatusDimensionMismatch Status = 900000
)

// protocolBand separates protocol codes from pass-through native codes.
const protocolBand = 100000

var statusNames = map[Status]string{
	StatusSuccess:            "Success",
	StatusNullPointer:        "NullPointer",
	StatusNeedInitialization: "NeedInitialization",
	StatusAlreadyInitialized: "AlreadyInitialized",
	StatusNeedFactorization:  "NeedFactorization",
	StatusAnalyzeFailed:      "AnalyzeFailed",
	StatusFactorizeFailed:    "FactorizeFailed",
	StatusCondEstFailed:      "CondEstFailed",
	StatusStructureChanged:   "StructureChanged",
	StatusDimensionMismatch:  "DimensionMismatch",
}

// String renders the symbolic name, or the raw native code.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Native(%d)", int32(s))
}

// Err converts a status back into the error a session operation would
// have returned: nil for StatusSuccess, the matching sentinel for
// protocol codes, and a NativeError (engine unattributed) for
// pass-through codes.
func (s Status) Err() error {
	switch s {
	case StatusSuccess:
		return nil
	case StatusNullPointer:
		return ErrNullSession
	case StatusNeedInitialization:
		return ErrNeedInitialization
	case StatusAlreadyInitialized:
		return ErrAlreadyInitialized
	case StatusNeedFactorization:
		return ErrNeedFactorization
	case StatusAnalyzeFailed:
		return ErrAnalyzeFailed
	case StatusFactorizeFailed:
		return ErrFactorizeFailed
	case StatusCondEstFailed:
		return ErrCondEstFailed
	case StatusStructureChanged:
		return ErrStructureChanged
	case StatusDimensionMismatch:
		return ErrDimensionMismatch
	}

	return &NativeError{Code: int32(s)}
}

// StatusOf normalizes any error returned by a session operation into the
// taxonomy. Protocol sentinels take precedence over a wrapped native
// code, mirroring the native wrappers' own reporting; an unrecognized
// error maps to StatusFactorizeFailed as the most conservative failure.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}

	switch {
	case errors.Is(err, ErrNullSession):
		return StatusNullPointer
	case errors.Is(err, ErrNeedInitialization):
		return StatusNeedInitialization
	case errors.Is(err, ErrAlreadyInitialized):
		return StatusAlreadyInitialized
	case errors.Is(err, ErrNeedFactorization):
		return StatusNeedFactorization
	case errors.Is(err, ErrAnalyzeFailed):
		return StatusAnalyzeFailed
	case errors.Is(err, ErrFactorizeFailed):
		return StatusFactorizeFailed
	case errors.Is(err, ErrCondEstFailed):
		return StatusCondEstFailed
	case errors.Is(err, ErrStructureChanged):
		return StatusStructureChanged
	case errors.Is(err, ErrDimensionMismatch), errors.Is(err, ErrNilMatrix):
		return StatusDimensionMismatch
	}

	var native *NativeError
	if errors.As(err, &native) {
		return Status(native.Code)
	}

	return StatusFactorizeFailed
}
