// Package sparsolve is your in-process toolbox for solving sparse linear
// systems A·x = b through a uniform, stateful session protocol: two
// interchangeable direct-factorization back ends behind one call contract.
//
// 🚀 What is sparsolve?
//
//	A pure-Go library that brings together:
//		• Matrix assembly: COO triplet builder → compressed-sparse-column (CSC)
//		• Back end A: KLU-style engine (pattern-only analysis, in-place solve,
//		  condition-number estimate)
//		• Back end B: UMFPACK-style engine (value-aware analysis, strategy
//		  auto-selection, determinant, iterative-refinement solve)
//		• One session lifecycle shared by both:
//		  Create → Initialize → Factorize → Solve → Destroy
//		• A normalized status-code taxonomy on top of explicit Go errors
//
// ✨ Why choose sparsolve?
//
//   - Uniform call protocol – swap back ends without touching caller code
//   - Explicit lifecycle – wrong call order is an error, never a crash
//   - Leak-proof handles – symbolic/numeric factors are released exactly once
//   - Pure Go – no cgo, deterministic, testable engine internals
//
// Under the hood, everything is organized into five subpackages:
//
//	sparse/  — CSC matrix view, COO triplet builder, validation
//	klu/     — KLU-style factorization engine (left-looking LU)
//	umfpack/ — UMFPACK-style factorization engine (control/info arrays)
//	solver/  — the session protocol: KLU and UMFPACK session types,
//	           status taxonomy, functional options
//	logger/  — package-wide structured logging (zerolog)
//
// Quick example (back end A):
//
//	s := solver.NewKLU()
//	defer s.Free()
//	s.Initialize(3, []int32{0, 1, 2, 3}, []int32{0, 1, 2})
//	s.Factorize(m)            // m is a *sparse.CSC
//	s.Solve(rhs)              // rhs is replaced by the solution, in place
//
// Sessions are not safe for concurrent use; distinct sessions are fully
// independent and may be driven from different goroutines.
//
//	go get github.com/katalvlaran/sparsolve
package sparsolve
