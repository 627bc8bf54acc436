// SPDX-License-Identifier: MIT
// Package umfpack: control/info arrays, status codes, handle bookkeeping.

package umfpack

import (
	"sync/atomic"

	"github.com/katalvlaran/sparsolve/logger"
)

// Array sizes. Control is written by the caller and read by the engine;
// Info is written by the engine and read by the caller. Both live in the
// caller's session state, never in package globals.
const (
	ControlSize = 8
	InfoSize    = 16
)

// Control indices.
const (
	ControlPrintLevel      = 0 // PrintLevelSilent or PrintLevelVerbose
	ControlStrategy        = 1 // StrategyAuto, StrategyUnsymmetric, StrategySymmetric
	ControlOrdering        = 2 // OrderingAMD or OrderingNatural
	ControlScale           = 3 // ScaleNone, ScaleSum or ScaleMax
	ControlPivotTolerance  = 4 // threshold partial pivoting, default 0.1
	ControlRefinementSteps = 5 // iterative refinement steps in Solve, default 2
)

// Info indices.
const (
	InfoStatus       = 0 // status of the last Symbolic/Numeric/Solve call
	InfoN            = 1 // matrix dimension seen by Symbolic
	InfoNnz          = 2 // entries seen by Symbolic
	InfoStrategyUsed = 3 // strategy actually applied (after auto-selection)
	InfoOrderingUsed = 4 // ordering actually applied
	InfoLnz          = 5 // off-diagonal entries in L
	InfoUnz          = 6 // off-diagonal entries in U
	InfoNoffDiag     = 7 // off-diagonal pivots chosen
	InfoRcond        = 8 // min|U(k,k)| / max|U(k,k)| after Numeric
)

// Print levels for Control[ControlPrintLevel].
const (
	PrintLevelSilent  = 0.0
	PrintLevelVerbose = 2.0
)

// Strategies for Control[ControlStrategy]. Auto lets Symbolic choose by
// inspecting the pattern and values.
const (
	StrategyAuto        int32 = 0
	StrategyUnsymmetric int32 = 1
	StrategySymmetric   int32 = 2
)

// Orderings for Control[ControlOrdering].
const (
	// OrderingAMD - minimum degree; on A+Aᵀ under the symmetric strategy,
	// on the column connectivity under the unsymmetric strategy (default).
	OrderingAMD int32 = 0

	// OrderingNatural - identity ordering.
	OrderingNatural int32 = 1
)

// Row scalings for Control[ControlScale].
const (
	ScaleNone int32 = 0
	ScaleSum  int32 = 1 // default
	ScaleMax  int32 = 2
)

// Linear systems accepted by Solve.
const (
	SysA  int32 = 0 // solve A·x = b
	SysAT int32 = 1 // solve Aᵀ·x = b
)

// Status codes. Zero is success, positive codes are warnings (a result
// may still exist), negative codes are errors.
const (
	StatusOK                    int32 = 0
	StatusWarningSingularMatrix int32 = 1
	StatusErrorOutOfMemory      int32 = -1 // parity with the native set; never produced
	StatusErrorInvalidNumeric   int32 = -3
	StatusErrorInvalidSymbolic  int32 = -4
	StatusErrorInvalidMatrix    int32 = -8
	StatusErrorDifferentPattern int32 = -11
	StatusErrorInvalidSystem    int32 = -13
)

// DefaultPivotTolerance is the threshold partial-pivoting default.
const DefaultPivotTolerance = 0.1

// DefaultRefinementSteps is the iterative-refinement default in Solve.
const DefaultRefinementSteps = 2

// Defaults resets the control array to engine defaults, like the native
// umfpack_di_defaults.
func Defaults(control *[ControlSize]float64) {
	if control == nil {
		return
	}
	*control = [ControlSize]float64{}
	control[ControlPrintLevel] = PrintLevelSilent
	control[ControlStrategy] = float64(StrategyAuto)
	control[ControlOrdering] = float64(OrderingAMD)
	control[ControlScale] = float64(ScaleSum)
	control[ControlPivotTolerance] = DefaultPivotTolerance
	control[ControlRefinementSteps] = DefaultRefinementSteps
}

// ReportInfo dumps the statistics block through the package logger when
// the print level asks for it, like the native umfpack_di_report_info.
func ReportInfo(control *[ControlSize]float64, info *[InfoSize]float64) {
	if control == nil || info == nil || control[ControlPrintLevel] < PrintLevelVerbose {
		return
	}
	l := logger.Logger()
	l.Info().
		Str("engine", "umfpack").
		Int32("status", int32(info[InfoStatus])).
		Int32("n", int32(info[InfoN])).
		Int32("nnz", int32(info[InfoNnz])).
		Int32("strategy_used", int32(info[InfoStrategyUsed])).
		Int32("ordering_used", int32(info[InfoOrderingUsed])).
		Int32("lnz", int32(info[InfoLnz])).
		Int32("unz", int32(info[InfoUnz])).
		Int32("off_diagonal_pivots", int32(info[InfoNoffDiag])).
		Float64("rcond", info[InfoRcond]).
		Msg("factorization report")
}

// Live-handle counters, as in back end A: tests assert leak-freedom and
// exactly-once release through them.
var (
	liveSymbolic atomic.Int64
	liveNumeric  atomic.Int64
)

// LiveSymbolic reports the number of Symbolic handles not yet freed.
func LiveSymbolic() int64 { return liveSymbolic.Load() }

// LiveNumeric reports the number of Numeric handles not yet freed.
func LiveNumeric() int64 { return liveNumeric.Load() }

// FreeSymbolic releases *s and nils the caller's pointer. Safe on nil or
// already freed handles.
func FreeSymbolic(s **Symbolic) {
	if s == nil || *s == nil {
		return
	}
	liveSymbolic.Add(-1)
	*s = nil
}

// FreeNumeric releases *nu and nils the caller's pointer. Same contract.
func FreeNumeric(nu **Numeric) {
	if nu == nil || *nu == nil {
		return
	}
	liveNumeric.Add(-1)
	*nu = nil
}
