// SPDX-License-Identifier: MIT
// Package solver: the KLU-backed session (back end A).

package solver

import (
	"fmt"

	"github.com/katalvlaran/sparsolve/klu"
	"github.com/katalvlaran/sparsolve/sparse"
)

// KLU is a session around back end A. The zero value is ready to use;
// NewKLU exists for symmetry with the other session type.
//
// Back end A analyzes the pattern only, solves a single right-hand side
// in place, and computes a condition estimate on request. Engine
// failures are wrapped under the protocol sentinels with the native
// status riding along as a NativeError (reach it via errors.As).
type KLU struct {
	lifecycle

	common klu.Common
	sym    *klu.Symbolic
	nu     *klu.Numeric
	stats  Stats
}

// NewKLU returns a fresh, uninitialized session.
func NewKLU() *KLU { return &KLU{} }

// Name identifies the engine behind the session.
func (s *KLU) Name() string { return "klu" }

// Initialized reports whether Initialize has succeeded.
func (s *KLU) Initialized() bool { return s != nil && s.initialized }

// Factorized reports whether a live factorization exists, i.e. whether
// Solve is currently permitted.
func (s *KLU) Factorized() bool { return s != nil && s.nu != nil }

// Stats returns the statistics recorded by the last successful Factorize.
func (s *KLU) Stats() Stats {
	if s == nil {
		return Stats{}
	}

	return s.stats
}

// Initialize analyzes the n×n sparsity pattern (colPtr, rowIdx). Values
// are deliberately absent: this engine's analysis is pattern-only, so a
// session can be initialized before any numeric values exist.
//
// Accepted options: WithOrdering (klu.Ordering* codes) and WithScaling
// (klu.Scale* codes); anything else is ignored by this engine.
// Initialize is permitted exactly once; a failed attempt may be retried.
func (s *KLU) Initialize(n int32, colPtr, rowIdx []int32, opts ...Option) error {
	if s == nil {
		return ErrNullSession
	}
	if err := s.guardInitialize(); err != nil {
		return err
	}

	o := gatherOptions(opts...)
	klu.Defaults(&s.common)
	if o.Ordering >= 0 {
		s.common.Ordering = o.Ordering
	}
	if o.Scaling >= 0 {
		s.common.Scale = o.Scaling
	}

	sym := klu.Analyze(n, colPtr, rowIdx, &s.common)
	if sym == nil {
		return fmt.Errorf("%w: %w", ErrAnalyzeFailed,
			&NativeError{Engine: "klu", Code: s.common.Status})
	}

	s.sym = sym
	s.recordPattern(n, colPtr[n])

	return nil
}

// Factorize computes (or recomputes) the numeric factorization of m,
// whose structure must match the initialized pattern. The previous
// factorization, if any, is released first; on failure the session
// therefore holds no factorization and Solve is rejected until a
// subsequent Factorize succeeds.
//
// WithCondEstimate additionally estimates cond₁(A) into
// Stats().CondEstimate; an estimate failure is reported as
// ErrCondEstFailed but leaves the factorization valid and solvable.
func (s *KLU) Factorize(m *sparse.CSC, opts ...Option) error {
	if s == nil {
		return ErrNullSession
	}
	if err := s.guardFactorize(); err != nil {
		return err
	}
	if err := s.checkStructure(m); err != nil {
		return err
	}

	klu.FreeNumeric(&s.nu, &s.common)

	nu := klu.Factor(m.ColPtr(), m.RowIdx(), m.Values(), s.sym, &s.common)
	if nu == nil {
		return fmt.Errorf("%w: %w", ErrFactorizeFailed,
			&NativeError{Engine: "klu", Code: s.common.Status})
	}
	s.nu = nu
	s.factorized = true
	s.stats.EffectiveOrdering = s.common.Ordering
	s.stats.EffectiveScaling = s.common.Scale
	s.stats.CondEstimate = 0

	o := gatherOptions(opts...)
	if o.ComputeCondEstimate {
		if !klu.Condest(m.ColPtr(), m.Values(), s.sym, s.nu, &s.common) {
			return fmt.Errorf("%w: %w", ErrCondEstFailed,
				&NativeError{Engine: "klu", Code: s.common.Status})
		}
		s.stats.CondEstimate = s.common.Condest
	}

	return nil
}

// Solve replaces rhs with the solution of A·x = rhs, in place, using the
// current factorization. Any number of solves may follow one Factorize.
func (s *KLU) Solve(rhs []float64) error {
	if s == nil {
		return ErrNullSession
	}
	if s.nu == nil {
		return ErrNeedFactorization
	}
	if err := s.checkVector(rhs); err != nil {
		return err
	}

	if !klu.Solve(s.sym, s.nu, s.n, 1, rhs, &s.common) {
		return &NativeError{Engine: "klu", Code: s.common.Status}
	}

	return nil
}

// Free releases the engine handles. Safe on a nil session and idempotent.
// Free is the end of an initialized session's life: the lifecycle guards
// keep later calls from crashing, but their behavior is otherwise outside
// the contract. A never-initialized session holds nothing to release and
// may still be initialized afterwards.
func (s *KLU) Free() {
	if s == nil {
		return
	}
	klu.FreeNumeric(&s.nu, &s.common)
	klu.FreeSymbolic(&s.sym, &s.common)
	s.factorized = false
}
