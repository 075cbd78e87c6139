// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ferr defines the typed error family raised across the solver core.
package ferr

import "github.com/cpmech/gosl/io"

// Kind discriminates the error family members so callers can switch on
// errors.As without string-matching messages.
type Kind int

const (
	InvalidSettings Kind = iota
	InvalidMesh
	InvalidBoundaryCondition
	InvalidLoad
	InvalidProperty
	DegenerateJacobian
	LinearSolveFailed
	NonlinearDiverged
	LoadStepUnderflow
	EigenproblemFailed
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case InvalidSettings:
		return "InvalidSettings"
	case InvalidMesh:
		return "InvalidMesh"
	case InvalidBoundaryCondition:
		return "InvalidBoundaryCondition"
	case InvalidLoad:
		return "InvalidLoad"
	case InvalidProperty:
		return "InvalidProperty"
	case DegenerateJacobian:
		return "DegenerateJacobian"
	case LinearSolveFailed:
		return "LinearSolveFailed"
	case NonlinearDiverged:
		return "NonlinearDiverged"
	case LoadStepUnderflow:
		return "LoadStepUnderflow"
	case EigenproblemFailed:
		return "EigenproblemFailed"
	case Cancelled:
		return "Cancelled"
	}
	return "Unknown"
}

// LinearSolveReason refines a LinearSolveFailed error.
type LinearSolveReason int

const (
	Singular LinearSolveReason = iota
	NotPositiveDefinite
	NotConverged
)

func (r LinearSolveReason) String() string {
	switch r {
	case Singular:
		return "Singular"
	case NotPositiveDefinite:
		return "NotPositiveDefinite"
	case NotConverged:
		return "NotConverged"
	}
	return "Unknown"
}

// Error is the single error type raised by every public entry point in the
// core. It carries a Kind so callers can discriminate, plus fields that are
// only meaningful for a subset of kinds (zero otherwise).
type Error struct {
	Kind        Kind
	Msg         string
	Reason      LinearSolveReason // LinearSolveFailed only
	Iters       int               // LinearSolveFailed{NotConverged}, NonlinearDiverged
	Residual    float64           // LinearSolveFailed{NotConverged}
	LoadFactor  float64           // NonlinearDiverged, LoadStepUnderflow
	Iteration   int               // NonlinearDiverged
}

func (e *Error) Error() string {
	switch e.Kind {
	case LinearSolveFailed:
		if e.Reason == NotConverged {
			return io.Sf("LinearSolveFailed{NotConverged, iters=%d, residual=%.6e}: %s", e.Iters, e.Residual, e.Msg)
		}
		return io.Sf("LinearSolveFailed{%s}: %s", e.Reason, e.Msg)
	case NonlinearDiverged:
		return io.Sf("NonlinearDiverged{load_factor=%.6f, iteration=%d}: %s", e.LoadFactor, e.Iteration, e.Msg)
	case LoadStepUnderflow:
		return io.Sf("LoadStepUnderflow{load_factor=%.6f}: %s", e.LoadFactor, e.Msg)
	default:
		return io.Sf("%s: %s", e.Kind, e.Msg)
	}
}

// New builds a plain kind+message error, formatted the way gosl/chk.Err
// formats its messages.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: io.Sf(format, args...)}
}

// DegenerateJac builds a DegenerateJacobian error.
func DegenerateJac(detJ float64, elementID int, ipIndex int) *Error {
	return New(DegenerateJacobian, "|det(J)|=%.3e below 1e-10 at element %d, integration point %d", detJ, elementID, ipIndex)
}

// LinSolve builds a LinearSolveFailed error.
func LinSolve(reason LinearSolveReason, iters int, residual float64, format string, args ...interface{}) *Error {
	return &Error{Kind: LinearSolveFailed, Reason: reason, Iters: iters, Residual: residual, Msg: io.Sf(format, args...)}
}

// Diverged builds a NonlinearDiverged error.
func Diverged(loadFactor float64, iteration int, format string, args ...interface{}) *Error {
	return &Error{Kind: NonlinearDiverged, LoadFactor: loadFactor, Iteration: iteration, Msg: io.Sf(format, args...)}
}

// Underflow builds a LoadStepUnderflow error.
func Underflow(loadFactor float64, format string, args ...interface{}) *Error {
	return &Error{Kind: LoadStepUnderflow, LoadFactor: loadFactor, Msg: io.Sf(format, args...)}
}

// CancelledErr is the sentinel returned by a solve that observed cancellation.
var CancelledErr = &Error{Kind: Cancelled, Msg: "solve cancelled by caller"}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
