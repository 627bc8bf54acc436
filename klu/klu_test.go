// Package klu_test exercises the three-phase engine directly: Analyze /
// Factor / Solve on small dense-checkable matrices, the scaling and
// ordering modes, singular inputs, the condition estimate, and the
// live-handle accounting.
package klu_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparsolve/klu"
)

// diag3 is diag(2, 3, 4) in CSC form.
var (
	diag3Ptr = []int32{0, 1, 2, 3}
	diag3Row = []int32{0, 1, 2}
	diag3Val = []float64{2, 3, 4}
)

// sample5 is the 5×5 quick-start matrix
//
//	[ 2  3  0  0  0 ]
//	[ 3  0  4  0  6 ]
//	[ 0 -1 -3  2  0 ]
//	[ 0  0  1  0  0 ]
//	[ 0  4  2  0  1 ]
//
// whose solution of A·x = [8, 45, -3, 3, 19] is x = [1, 2, 3, 4, 5].
var (
	sample5Ptr = []int32{0, 2, 5, 9, 10, 12}
	sample5Row = []int32{0, 1, 0, 2, 4, 1, 2, 3, 4, 2, 1, 4}
	sample5Val = []float64{2, 3, 3, -1, 4, 4, -3, 1, 2, 2, 6, 1}
	sample5Rhs = []float64{8, 45, -3, 3, 19}
)

// factorize runs Analyze + Factor with the given common block and fails
// the test on any engine error.
func factorize(t *testing.T, n int32, colPtr, rowIdx []int32, values []float64, c *klu.Common) (*klu.Symbolic, *klu.Numeric) {
	t.Helper()
	sym := klu.Analyze(n, colPtr, rowIdx, c)
	require.NotNil(t, sym, "Analyze failed with status %d", c.Status)
	nu := klu.Factor(colPtr, rowIdx, values, sym, c)
	require.NotNil(t, nu, "Factor failed with status %d", c.Status)

	return sym, nu
}

// ------------------------------------------------------------------------
// 1. Validation.
// ------------------------------------------------------------------------

func TestAnalyze_InvalidPattern(t *testing.T) {
	var c klu.Common
	klu.Defaults(&c)

	require.Nil(t, klu.Analyze(0, []int32{0}, nil, &c))
	require.Equal(t, klu.StatusInvalid, c.Status)

	// Row index out of range.
	require.Nil(t, klu.Analyze(2, []int32{0, 1, 2}, []int32{0, 2}, &c))
	require.Equal(t, klu.StatusInvalid, c.Status)

	// Decreasing column pointers.
	require.Nil(t, klu.Analyze(2, []int32{0, 2, 1}, []int32{0, 1}, &c))
	require.Equal(t, klu.StatusInvalid, c.Status)
}

func TestAnalyze_NilCommon(t *testing.T) {
	require.Nil(t, klu.Analyze(1, []int32{0, 1}, []int32{0}, nil))
}

// ------------------------------------------------------------------------
// 2. Factor + Solve.
// ------------------------------------------------------------------------

func TestFactorSolve_Diagonal(t *testing.T) {
	var c klu.Common
	klu.Defaults(&c)

	sym, nu := factorize(t, 3, diag3Ptr, diag3Row, diag3Val, &c)
	defer klu.FreeSymbolic(&sym, &c)
	defer klu.FreeNumeric(&nu, &c)

	b := []float64{2, 3, 4}
	require.True(t, klu.Solve(sym, nu, 3, 1, b, &c))
	require.InDeltaSlice(t, []float64{1, 1, 1}, b, 1e-14)

	// A diagonal factorization has no fill and no off-diagonal pivots.
	require.Equal(t, int32(0), c.Lnz)
	require.Equal(t, int32(0), c.Unz)
	require.Equal(t, int32(0), c.Noffdiag)
}

func TestFactorSolve_Sample5x5(t *testing.T) {
	for _, ordering := range []int32{klu.OrderingAMD, klu.OrderingNatural} {
		var c klu.Common
		klu.Defaults(&c)
		c.Ordering = ordering

		sym, nu := factorize(t, 5, sample5Ptr, sample5Row, sample5Val, &c)

		b := append([]float64(nil), sample5Rhs...)
		require.True(t, klu.Solve(sym, nu, 5, 1, b, &c))
		require.InDeltaSlice(t, []float64{1, 2, 3, 4, 5}, b, 1e-10,
			"ordering %d", ordering)

		klu.FreeNumeric(&nu, &c)
		klu.FreeSymbolic(&sym, &c)
	}
}

func TestSolve_MultipleRHS(t *testing.T) {
	var c klu.Common
	klu.Defaults(&c)

	sym, nu := factorize(t, 3, diag3Ptr, diag3Row, diag3Val, &c)
	defer klu.FreeSymbolic(&sym, &c)
	defer klu.FreeNumeric(&nu, &c)

	// Two right-hand sides stored contiguously, column major.
	b := []float64{2, 3, 4, 4, 6, 8}
	require.True(t, klu.Solve(sym, nu, 3, 2, b, &c))
	require.InDeltaSlice(t, []float64{1, 1, 1, 2, 2, 2}, b, 1e-14)
}

func TestSolve_BadArguments(t *testing.T) {
	var c klu.Common
	klu.Defaults(&c)

	sym, nu := factorize(t, 3, diag3Ptr, diag3Row, diag3Val, &c)
	defer klu.FreeSymbolic(&sym, &c)
	defer klu.FreeNumeric(&nu, &c)

	// Wrong dimension.
	require.False(t, klu.Solve(sym, nu, 4, 1, make([]float64, 4), &c))
	require.Equal(t, klu.StatusInvalid, c.Status)

	// Wrong vector length.
	require.False(t, klu.Solve(sym, nu, 3, 2, make([]float64, 3), &c))
	require.Equal(t, klu.StatusInvalid, c.Status)

	// Nil numeric handle.
	require.False(t, klu.Solve(sym, nil, 3, 1, make([]float64, 3), &c))
	require.Equal(t, klu.StatusInvalid, c.Status)
}

func TestFactor_ScalingModes(t *testing.T) {
	// All scaling modes must produce the same solution.
	for _, scale := range []int32{klu.ScaleNone, klu.ScaleSum, klu.ScaleMax} {
		var c klu.Common
		klu.Defaults(&c)
		c.Scale = scale

		sym, nu := factorize(t, 5, sample5Ptr, sample5Row, sample5Val, &c)

		b := append([]float64(nil), sample5Rhs...)
		require.True(t, klu.Solve(sym, nu, 5, 1, b, &c))
		require.InDeltaSlice(t, []float64{1, 2, 3, 4, 5}, b, 1e-10,
			"scale %d", scale)

		klu.FreeNumeric(&nu, &c)
		klu.FreeSymbolic(&sym, &c)
	}
}

// ------------------------------------------------------------------------
// 3. Singular matrices.
// ------------------------------------------------------------------------

func TestFactor_SingularZeroColumn(t *testing.T) {
	var c klu.Common
	klu.Defaults(&c)
	c.Scale = klu.ScaleNone // rows are nonzero; the zero column must trip the pivot search

	sym := klu.Analyze(2, []int32{0, 2, 2}, []int32{0, 1}, &c)
	require.NotNil(t, sym)
	defer klu.FreeSymbolic(&sym, &c)

	nu := klu.Factor([]int32{0, 2, 2}, []int32{0, 1}, []float64{1, 2}, sym, &c)
	require.Nil(t, nu)
	require.Equal(t, klu.StatusSingular, c.Status)
}

func TestFactor_SingularZeroRow(t *testing.T) {
	// Row 1 holds no entries: scaling rejects it before any elimination.
	var c klu.Common
	klu.Defaults(&c)

	colPtr := []int32{0, 1, 2}
	rowIdx := []int32{0, 0}
	values := []float64{1, 1}

	sym := klu.Analyze(2, colPtr, rowIdx, &c)
	require.NotNil(t, sym)
	defer klu.FreeSymbolic(&sym, &c)

	nu := klu.Factor(colPtr, rowIdx, values, sym, &c)
	require.Nil(t, nu)
	require.Equal(t, klu.StatusSingular, c.Status)
}

// ------------------------------------------------------------------------
// 4. Condition estimate.
// ------------------------------------------------------------------------

func TestCondest_Diagonal(t *testing.T) {
	// cond₁(diag(2, 3, 4)) = ‖A‖₁ · ‖A⁻¹‖₁ = 4 · (1/2) = 2 exactly, and
	// Hager's iteration is exact on a diagonal matrix.
	var c klu.Common
	klu.Defaults(&c)

	sym, nu := factorize(t, 3, diag3Ptr, diag3Row, diag3Val, &c)
	defer klu.FreeSymbolic(&sym, &c)
	defer klu.FreeNumeric(&nu, &c)

	require.True(t, klu.Condest(diag3Ptr, diag3Val, sym, nu, &c))
	require.InDelta(t, 2.0, c.Condest, 1e-12)
}

func TestCondest_BadArguments(t *testing.T) {
	var c klu.Common
	klu.Defaults(&c)

	sym, nu := factorize(t, 3, diag3Ptr, diag3Row, diag3Val, &c)
	defer klu.FreeSymbolic(&sym, &c)
	defer klu.FreeNumeric(&nu, &c)

	require.False(t, klu.Condest(diag3Ptr, diag3Val, sym, nil, &c))
	require.Equal(t, klu.StatusInvalid, c.Status)

	require.False(t, klu.Condest([]int32{0, 1}, diag3Val, sym, nu, &c))
	require.Equal(t, klu.StatusInvalid, c.Status)
}

// ------------------------------------------------------------------------
// 5. Handle accounting.
// ------------------------------------------------------------------------

func TestHandleCounters(t *testing.T) {
	symBase, numBase := klu.LiveSymbolic(), klu.LiveNumeric()

	var c klu.Common
	klu.Defaults(&c)
	sym, nu := factorize(t, 3, diag3Ptr, diag3Row, diag3Val, &c)
	require.Equal(t, symBase+1, klu.LiveSymbolic())
	require.Equal(t, numBase+1, klu.LiveNumeric())

	klu.FreeNumeric(&nu, &c)
	require.Nil(t, nu, "FreeNumeric must nil the caller's pointer")
	require.Equal(t, numBase, klu.LiveNumeric())

	// Freeing again is a no-op, not a double decrement.
	klu.FreeNumeric(&nu, &c)
	require.Equal(t, numBase, klu.LiveNumeric())

	klu.FreeSymbolic(&sym, &c)
	klu.FreeSymbolic(&sym, &c)
	require.Nil(t, sym)
	require.Equal(t, symBase, klu.LiveSymbolic())
}
