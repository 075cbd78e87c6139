// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsolve

// DirectThreshold is the problem-size cutoff below which Solve defaults to
// the direct back end and above which it defaults to iterative (spec.md
// §4.4: "the default for a problem size < 10^5 DOFs is direct, above that
// iterative").
const DirectThreshold = 100000

// Backend selects a linear-solver back end explicitly, overriding the
// size-based default (spec.md §4.4: "Back-end choice is a runtime
// setting").
type Backend int

const (
	AutoBackend Backend = iota
	DirectBackend
	IterativeBackend
)

// Settings configures Solve's back-end choice and iterative tolerances.
type Settings struct {
	Backend  Backend
	Tol      float64
	MaxIters int
}

// DefaultSettings returns the spec.md §4.4 defaults: auto-select back end,
// 1e-8 relative tolerance, 1000 max iterations.
func DefaultSettings() Settings {
	return Settings{Backend: AutoBackend, Tol: 1e-8, MaxIters: 1000}
}

// Solve dispatches to the direct or iterative back end per Settings.Backend
// (or the size-based default when AutoBackend), returning the solution
// vector, iteration count (0 for direct), and final residual (0 for
// direct).
func Solve(A [][]float64, b []float64, s Settings) (x []float64, iters int, residual float64, err error) {
	useDirect := s.Backend == DirectBackend
	if s.Backend == AutoBackend {
		useDirect = len(A) < DirectThreshold
	}
	if useDirect {
		var d Direct
		if err := d.Factorize(A); err != nil {
			return nil, 0, 0, err
		}
		return d.Solve(b), 0, 0, nil
	}
	return PCG(A, b, s.Tol, s.MaxIters)
}
