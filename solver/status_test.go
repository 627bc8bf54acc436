// Package solver_test: tests for the normalized status taxonomy. Covers
// the round trip between errors and Status values, pass-through of
// native codes, and the sentinel-before-native precedence.
package solver_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparsolve/solver"
)

func TestStatus_RoundTrip(t *testing.T) {
	// Every protocol status must convert to an error and back unchanged.
	protocol := []solver.Status{
		solver.StatusSuccess,
		solver.StatusNullPointer,
		solver.StatusNeedInitialization,
		solver.StatusAlreadyInitialized,
		solver.StatusNeedFactorization,
		solver.StatusAnalyzeFailed,
		solver.StatusFactorizeFailed,
		solver.StatusCondEstFailed,
		solver.StatusStructureChanged,
		solver.StatusDimensionMismatch,
	}
	for _, st := range protocol {
		require.Equal(t, st, solver.StatusOf(st.Err()), "status %s", st)
	}
}

func TestStatus_NativePassThrough(t *testing.T) {
	// A bare native code survives both directions.
	err := (solver.Status(-11)).Err()
	var native *solver.NativeError
	require.ErrorAs(t, err, &native)
	require.Equal(t, int32(-11), native.Code)
	require.Equal(t, solver.Status(-11), solver.StatusOf(err))

	direct := &solver.NativeError{Engine: "umfpack", Code: 1}
	require.Equal(t, solver.Status(1), solver.StatusOf(direct))
}

func TestStatusOf_SentinelBeatsWrappedNative(t *testing.T) {
	// Back end A wraps the native status under a sentinel; the sentinel
	// classification wins, as it does in the native wrapper layers.
	err := fmt.Errorf("%w: %w", solver.ErrFactorizeFailed,
		&solver.NativeError{Engine: "klu", Code: 1})
	require.Equal(t, solver.StatusFactorizeFailed, solver.StatusOf(err))
}

func TestStatusOf_NilMatrixMapsToDimensionBand(t *testing.T) {
	require.Equal(t, solver.StatusDimensionMismatch, solver.StatusOf(solver.ErrNilMatrix))
}

func TestStatus_String(t *testing.T) {
	require.Equal(t, "Success", solver.StatusSuccess.String())
	require.Equal(t, "NeedFactorization", solver.StatusNeedFactorization.String())
	require.Equal(t, "Native(-3)", solver.Status(-3).String())
}
