// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solve orchestrates C4-C8 into the four public analyses named by
// spec.md §4.5-§4.8: Static (C9), Nonlinear (C10), Dynamic (C11), Thermal
// (C12). Grounded on fem/solver.go's top-level solve dispatch shape
// (assemble -> apply BCs -> factorize -> solve -> recover) and on
// NonLinearSolver.h/DynamicSolver.h/ThermalSolver.h from original_source/
// for state-machine and settings-driven dispatch.
package solve

import (
	"context"

	"github.com/snowmannn129/rebelcad-fea/ferr"
)

// Logger is a narrow progress/diagnostic sink modeled on gofem's
// Verbose-gated io.Pf idiom (SPEC_FULL.md §3): the zero value is a no-op.
type Logger func(format string, args ...interface{})

func (l Logger) logf(format string, args ...interface{}) {
	if l != nil {
		l(format, args...)
	}
}

// Progress is a caller-supplied progress callback invoked synchronously
// from the solve thread with a monotonically non-decreasing fraction in
// [0, 1] (spec.md §5).
type Progress func(fraction float64)

func (p Progress) report(fraction float64) {
	if p != nil {
		p(fraction)
	}
}

// Context bundles the two observable yield points spec.md §5 names:
// caller-initiated cancellation (polled, not interrupting) and progress
// reporting. The zero Context never cancels and never reports.
type Context struct {
	Ctx      context.Context
	Progress Progress
	Log      Logger
}

// checkCancelled polls c.Ctx at the suspension points spec.md §5 names
// (top of each element iteration, each Newton iteration, each time step,
// before each linear solve), returning ferr.CancelledErr if the caller
// cancelled.
func (c Context) checkCancelled() error {
	if c.Ctx == nil {
		return nil
	}
	select {
	case <-c.Ctx.Done():
		return ferr.CancelledErr
	default:
		return nil
	}
}

func (c Context) logf(format string, args ...interface{}) { c.Log.logf(format, args...) }
func (c Context) report(fraction float64)                 { c.Progress.report(fraction) }
