// Package solver implements the stateful session protocol around the two
// factorization back ends (klu, umfpack): one lifecycle, one error
// vocabulary, two interchangeable engines.
//
// Lifecycle (shared by both session types):
//
//	Created ──Initialize(ok)──▶ Initialized ──Factorize(ok)──▶ Factorized
//	Created ──Initialize(fail)─▶ Created      (retry allowed)
//	Initialized ─Factorize(fail)▶ Initialized (retry allowed)
//	Factorized ─Factorize(ok)──▶ Factorized   (numeric handle replaced)
//	Factorized ─Solve──────────▶ Factorized   (no state change)
//	any state ──Free───────────▶ released     (terminal once initialized)
//
// Initialize is permitted exactly once per session: a caller that needs a
// different sparsity pattern creates a new session. Re-factorization with
// new values against the same pattern is the intended cheap path.
//
// The two variants keep their engines' asymmetries on purpose:
//
//	            KLU                      UMFPACK
//	Initialize  pattern only             pattern + values
//	Factorize   optional cond estimate   strategy/ordering/scaling + rcond
//	                                     always, optional determinant
//	Solve       single rhs, in place     separate x/rhs, matrix re-supplied
//
// Failure model: protocol violations (wrong call order, nil session) are
// sentinel errors detected before any engine call; engine failures carry
// the native status code through NativeError; the normalized
// small-integer view of both is the Status type. A failed call never
// regresses the session to an earlier lifecycle state, with one
// documented exception: a failed re-factorization has already released
// the previous numeric handle (that is the engine contract), so Solve
// eligibility is lost until a subsequent Factorize succeeds.
//
// Sessions perform no locking. One session must not be driven by more
// than one goroutine at a time; distinct sessions are fully independent.
// Matrix slices are borrowed for the duration of a call only.
package solver
