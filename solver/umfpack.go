// SPDX-License-Identifier: MIT
// Package solver: the UMFPACK-backed session (back end B).

package solver

import (
	"github.com/katalvlaran/sparsolve/sparse"
	"github.com/katalvlaran/sparsolve/umfpack"
)

// UMFPACK is a session around back end B. The zero value is ready to use.
//
// Back end B reads values already at Initialize (the automatic strategy
// selection is value-aware), reports the effective strategy, ordering,
// scaling and rcond after every Factorize, computes the determinant on
// request, and re-reads the matrix at Solve because its iterative
// refinement recomputes residuals against A. Engine failures surface as
// NativeError values carrying the native status code.
type UMFPACK struct {
	lifecycle

	control [umfpack.ControlSize]float64
	info    [umfpack.InfoSize]float64
	sym     *umfpack.Symbolic
	nu      *umfpack.Numeric
	stats   Stats
}

// NewUMFPACK returns a fresh, uninitialized session.
func NewUMFPACK() *UMFPACK { return &UMFPACK{} }

// Name identifies the engine behind the session.
func (s *UMFPACK) Name() string { return "umfpack" }

// Initialized reports whether Initialize has succeeded.
func (s *UMFPACK) Initialized() bool { return s != nil && s.initialized }

// Factorized reports whether a live factorization exists, i.e. whether
// Solve is currently permitted.
func (s *UMFPACK) Factorized() bool { return s != nil && s.nu != nil }

// Stats returns the statistics recorded by the last successful Factorize.
func (s *UMFPACK) Stats() Stats {
	if s == nil {
		return Stats{}
	}

	return s.stats
}

// Initialize analyzes m, pattern and values both: the automatic strategy
// selection inspects the numeric diagonal, so unlike the other session
// type this one needs the values up front.
//
// Accepted options: WithOrdering / WithScaling (umfpack.Ordering*,
// umfpack.Scale* codes), WithUnsymmetricStrategy to bypass the automatic
// selection, and WithVerbose for the engine's diagnostic reports.
// Initialize is permitted exactly once; a failed attempt may be retried.
func (s *UMFPACK) Initialize(m *sparse.CSC, opts ...Option) error {
	if s == nil {
		return ErrNullSession
	}
	if err := s.guardInitialize(); err != nil {
		return err
	}
	if m == nil {
		return ErrNilMatrix
	}

	o := gatherOptions(opts...)
	umfpack.Defaults(&s.control)
	if o.Unsymmetric {
		s.control[umfpack.ControlStrategy] = float64(umfpack.StrategyUnsymmetric)
	}
	if o.Ordering >= 0 {
		s.control[umfpack.ControlOrdering] = float64(o.Ordering)
	}
	if o.Scaling >= 0 {
		s.control[umfpack.ControlScale] = float64(o.Scaling)
	}
	if o.Verbose {
		s.control[umfpack.ControlPrintLevel] = umfpack.PrintLevelVerbose
	}

	sym, code := umfpack.Analyze(m.Dim(), m.ColPtr(), m.RowIdx(), m.Values(), &s.control, &s.info)
	if code != umfpack.StatusOK {
		return &NativeError{Engine: "umfpack", Code: code}
	}

	s.sym = sym
	s.recordPattern(m.Dim(), m.Nnz())

	return nil
}

// Factorize computes (or recomputes) the numeric factorization of m,
// whose structure must match the initialized pattern. The previous
// factorization, if any, is released first; on failure the session holds
// no factorization until a subsequent Factorize succeeds.
//
// On success the effective strategy, ordering, scaling and rcond are
// recorded in Stats unconditionally. WithDeterminant additionally
// computes det(A) = coefficient·10^exponent; without it the pair stays
// at the neutral (0, 0). WithVerbose raises the session's print level
// before the report, as the native interface does.
func (s *UMFPACK) Factorize(m *sparse.CSC, opts ...Option) error {
	if s == nil {
		return ErrNullSession
	}
	if err := s.guardFactorize(); err != nil {
		return err
	}
	if err := s.checkStructure(m); err != nil {
		return err
	}

	umfpack.FreeNumeric(&s.nu)

	nu, code := umfpack.Factor(m.ColPtr(), m.RowIdx(), m.Values(), s.sym, &s.control, &s.info)
	if code != umfpack.StatusOK {
		return &NativeError{Engine: "umfpack", Code: code}
	}
	s.nu = nu
	s.factorized = true
	s.stats.EffectiveStrategy = int32(s.info[umfpack.InfoStrategyUsed])
	s.stats.EffectiveOrdering = int32(s.info[umfpack.InfoOrderingUsed])
	s.stats.EffectiveScaling = int32(s.control[umfpack.ControlScale])
	s.stats.Rcond = s.info[umfpack.InfoRcond]
	s.stats.DeterminantCoefficient = 0
	s.stats.DeterminantExponent = 0

	o := gatherOptions(opts...)
	if o.ComputeDeterminant {
		var dx, ex float64
		if code = umfpack.Determinant(&dx, &ex, s.nu, &s.info); code < umfpack.StatusOK {
			return &NativeError{Engine: "umfpack", Code: code}
		}
		s.stats.DeterminantCoefficient = dx
		s.stats.DeterminantExponent = ex
	}

	if o.Verbose {
		s.control[umfpack.ControlPrintLevel] = umfpack.PrintLevelVerbose
	}
	umfpack.ReportInfo(&s.control, &s.info)

	return nil
}

// Solve writes the solution of A·x = rhs into x. The matrix is a call
// input: the engine's iterative refinement needs A to recompute
// residuals, so the session never caches it. The structure of m must
// still match the initialized pattern.
//
// WithVerbose raises the session's print level before the report, as the
// native interface does.
func (s *UMFPACK) Solve(x, rhs []float64, m *sparse.CSC, opts ...Option) error {
	if s == nil {
		return ErrNullSession
	}
	if s.nu == nil {
		return ErrNeedFactorization
	}
	if err := s.checkStructure(m); err != nil {
		return err
	}
	if err := s.checkVector(x); err != nil {
		return err
	}
	if err := s.checkVector(rhs); err != nil {
		return err
	}

	o := gatherOptions(opts...)
	if o.Verbose {
		s.control[umfpack.ControlPrintLevel] = umfpack.PrintLevelVerbose
	}

	code := umfpack.Solve(umfpack.SysA, m.ColPtr(), m.RowIdx(), m.Values(), x, rhs, s.nu, &s.control, &s.info)
	if code != umfpack.StatusOK {
		return &NativeError{Engine: "umfpack", Code: code}
	}

	umfpack.ReportInfo(&s.control, &s.info)

	return nil
}

// Free releases the engine handles. Safe on a nil session and idempotent.
// Free is the end of an initialized session's life: the lifecycle guards
// keep later calls from crashing, but their behavior is otherwise outside
// the contract. A never-initialized session holds nothing to release and
// may still be initialized afterwards.
func (s *UMFPACK) Free() {
	if s == nil {
		return
	}
	umfpack.FreeNumeric(&s.nu)
	umfpack.FreeSymbolic(&s.sym)
	s.factorized = false
}
