// Package solver_test: session-protocol tests for the KLU-backed session.
// The focus is call-order enforcement, error priority (nil session before
// lifecycle before structure before engine), handle accounting across
// re-factorizations, and the wrapped-sentinel error shape of back end A.
package solver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparsolve/klu"
	"github.com/katalvlaran/sparsolve/solver"
	"github.com/katalvlaran/sparsolve/sparse"
)

// diag3 builds diag(2, 3, 4).
func diag3(t *testing.T) *sparse.CSC {
	t.Helper()
	m, err := sparse.NewCSC(3, []int32{0, 1, 2, 3}, []int32{0, 1, 2}, []float64{2, 3, 4})
	require.NoError(t, err)

	return m
}

// singular2 builds the singular matrix [[1, 1], [0, 0]].
func singular2(t *testing.T) *sparse.CSC {
	t.Helper()
	m, err := sparse.NewCSC(2, []int32{0, 1, 2}, []int32{0, 0}, []float64{1, 1})
	require.NoError(t, err)

	return m
}

// initDiag3 returns a session initialized on the diag3 pattern.
func initDiag3(t *testing.T) (*solver.KLU, *sparse.CSC) {
	t.Helper()
	m := diag3(t)
	s := solver.NewKLU()
	require.NoError(t, s.Initialize(m.Dim(), m.ColPtr(), m.RowIdx()))

	return s, m
}

// ------------------------------------------------------------------------
// 1. Protocol enforcement.
// ------------------------------------------------------------------------

func TestKLU_NilSession(t *testing.T) {
	var s *solver.KLU
	require.ErrorIs(t, s.Initialize(1, []int32{0, 1}, []int32{0}), solver.ErrNullSession)
	require.ErrorIs(t, s.Factorize(nil), solver.ErrNullSession)
	require.ErrorIs(t, s.Solve(nil), solver.ErrNullSession)
	require.False(t, s.Initialized())
	require.False(t, s.Factorized())
	s.Free() // must not panic
}

func TestKLU_FactorizeBeforeInitialize(t *testing.T) {
	s := solver.NewKLU()
	require.ErrorIs(t, s.Factorize(diag3(t)), solver.ErrNeedInitialization)
}

func TestKLU_SolveBeforeFactorize(t *testing.T) {
	s, _ := initDiag3(t)
	defer s.Free()
	require.ErrorIs(t, s.Solve([]float64{1, 2, 3}), solver.ErrNeedFactorization)
}

func TestKLU_DoubleInitialize(t *testing.T) {
	s, m := initDiag3(t)
	defer s.Free()
	require.ErrorIs(t, s.Initialize(m.Dim(), m.ColPtr(), m.RowIdx()), solver.ErrAlreadyInitialized)
}

func TestKLU_InitializeRetryAfterFailure(t *testing.T) {
	// A failed Initialize leaves the session fresh: a corrected retry works.
	s := solver.NewKLU()
	err := s.Initialize(2, []int32{0, 2, 1}, []int32{0, 1}) // decreasing pointers
	require.ErrorIs(t, err, solver.ErrAnalyzeFailed)
	require.False(t, s.Initialized())

	m := diag3(t)
	require.NoError(t, s.Initialize(m.Dim(), m.ColPtr(), m.RowIdx()))
	defer s.Free()
	require.True(t, s.Initialized())
}

func TestKLU_StructureChanged(t *testing.T) {
	s, _ := initDiag3(t)
	defer s.Free()

	// Same entry count, different dimension.
	other, err := sparse.NewCSC(2, []int32{0, 2, 3}, []int32{0, 1, 1}, []float64{1, 1, 1})
	require.NoError(t, err)
	require.ErrorIs(t, s.Factorize(other), solver.ErrStructureChanged)
	require.ErrorIs(t, s.Factorize(nil), solver.ErrNilMatrix)
}

func TestKLU_SolveDimensionMismatch(t *testing.T) {
	s, m := initDiag3(t)
	defer s.Free()
	require.NoError(t, s.Factorize(m))
	require.ErrorIs(t, s.Solve([]float64{1, 2}), solver.ErrDimensionMismatch)
}

// ------------------------------------------------------------------------
// 2. Happy path.
// ------------------------------------------------------------------------

func TestKLU_FactorizeSolve(t *testing.T) {
	s, m := initDiag3(t)
	defer s.Free()

	require.NoError(t, s.Factorize(m, solver.WithCondEstimate()))
	require.True(t, s.Factorized())

	stats := s.Stats()
	require.Equal(t, klu.OrderingAMD, stats.EffectiveOrdering)
	require.Equal(t, klu.ScaleMax, stats.EffectiveScaling)
	require.InDelta(t, 2.0, stats.CondEstimate, 1e-12)

	// Two solves against one factorization.
	rhs := []float64{2, 3, 4}
	require.NoError(t, s.Solve(rhs))
	require.InDeltaSlice(t, []float64{1, 1, 1}, rhs, 1e-14)

	rhs = []float64{4, 6, 8}
	require.NoError(t, s.Solve(rhs))
	require.InDeltaSlice(t, []float64{2, 2, 2}, rhs, 1e-14)
}

func TestKLU_OptionsOverrideDefaults(t *testing.T) {
	m := diag3(t)
	s := solver.NewKLU()
	require.NoError(t, s.Initialize(m.Dim(), m.ColPtr(), m.RowIdx(),
		solver.WithOrdering(klu.OrderingNatural),
		solver.WithScaling(klu.ScaleNone)))
	defer s.Free()

	require.NoError(t, s.Factorize(m))
	require.Equal(t, klu.OrderingNatural, s.Stats().EffectiveOrdering)
	require.Equal(t, klu.ScaleNone, s.Stats().EffectiveScaling)
}

func TestKLU_RefactorizeReplacesHandle(t *testing.T) {
	numBase := klu.LiveNumeric()

	s, m := initDiag3(t)
	require.NoError(t, s.Factorize(m))
	require.Equal(t, numBase+1, klu.LiveNumeric())

	// New values, same pattern: the old numeric handle must be released,
	// not leaked.
	m2, err := sparse.NewCSC(3, []int32{0, 1, 2, 3}, []int32{0, 1, 2}, []float64{4, 6, 8})
	require.NoError(t, err)
	require.NoError(t, s.Factorize(m2))
	require.Equal(t, numBase+1, klu.LiveNumeric())

	rhs := []float64{4, 6, 8}
	require.NoError(t, s.Solve(rhs))
	require.InDeltaSlice(t, []float64{1, 1, 1}, rhs, 1e-14)

	s.Free()
	require.Equal(t, numBase, klu.LiveNumeric())
}

// ------------------------------------------------------------------------
// 3. Engine failures.
// ------------------------------------------------------------------------

func TestKLU_FactorizeSingular(t *testing.T) {
	m := singular2(t)
	s := solver.NewKLU()
	require.NoError(t, s.Initialize(m.Dim(), m.ColPtr(), m.RowIdx()))
	defer s.Free()

	err := s.Factorize(m)
	require.ErrorIs(t, err, solver.ErrFactorizeFailed)

	// The native status rides along for callers that need the exact reason.
	var native *solver.NativeError
	require.True(t, errors.As(err, &native))
	require.Equal(t, "klu", native.Engine)
	require.Equal(t, klu.StatusSingular, native.Code)
}

func TestKLU_FailedRefactorizeLosesSolve(t *testing.T) {
	// A successful factorization followed by a failed one: the old handle
	// was already released, so Solve must be rejected until a later
	// Factorize succeeds.
	s, m := initDiag3(t)
	defer s.Free()
	require.NoError(t, s.Factorize(m))

	bad, err := sparse.NewCSC(3, []int32{0, 1, 2, 3}, []int32{0, 1, 2}, []float64{2, 0, 4})
	require.NoError(t, err)
	require.ErrorIs(t, s.Factorize(bad), solver.ErrFactorizeFailed)
	require.False(t, s.Factorized())
	require.ErrorIs(t, s.Solve([]float64{1, 2, 3}), solver.ErrNeedFactorization)

	// Recovery: a good re-factorization restores solvability.
	require.NoError(t, s.Factorize(m))
	require.True(t, s.Factorized())
}

// ------------------------------------------------------------------------
// 4. Release.
// ------------------------------------------------------------------------

func TestKLU_InitializeAfterFreeOnFreshSession(t *testing.T) {
	// Freeing a never-initialized session releases nothing; Initialize is
	// still permitted afterwards (the once-only rule is tied to a
	// successful Initialize, not to Free), and the brought-up session is
	// fully usable.
	m := diag3(t)
	s := solver.NewKLU()

	s.Free()
	require.ErrorIs(t, s.Solve([]float64{1, 2, 3}), solver.ErrNeedFactorization)
	s.Free()
	require.ErrorIs(t, s.Factorize(m), solver.ErrNeedInitialization)
	s.Free()

	require.NoError(t, s.Initialize(m.Dim(), m.ColPtr(), m.RowIdx()))
	defer s.Free()
	require.NoError(t, s.Factorize(m))
	require.True(t, s.Factorized())
}

func TestKLU_FreeIdempotent(t *testing.T) {
	symBase, numBase := klu.LiveSymbolic(), klu.LiveNumeric()

	s, m := initDiag3(t)
	require.NoError(t, s.Factorize(m))

	s.Free()
	s.Free() // second call must be a no-op
	require.Equal(t, symBase, klu.LiveSymbolic())
	require.Equal(t, numBase, klu.LiveNumeric())
	require.False(t, s.Factorized())
	require.ErrorIs(t, s.Solve([]float64{1, 2, 3}), solver.ErrNeedFactorization)
}
