// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/snowmannn129/rebelcad-fea/assembly"
	"github.com/snowmannn129/rebelcad-fea/bc"
	"github.com/snowmannn129/rebelcad-fea/bcapply"
	"github.com/snowmannn129/rebelcad-fea/ferr"
	"github.com/snowmannn129/rebelcad-fea/kernel"
	"github.com/snowmannn129/rebelcad-fea/linsolve"
	"github.com/snowmannn129/rebelcad-fea/load"
	"github.com/snowmannn129/rebelcad-fea/material"
	"github.com/snowmannn129/rebelcad-fea/mesh"
	"github.com/snowmannn129/rebelcad-fea/result"
	"github.com/snowmannn129/rebelcad-fea/settings"
)

// Nonlinear runs the incremental-iterative non-linear static analysis (C10)
// per spec.md §4.6: load stepping with a Newton-Raphson-family corrector,
// optional line search, optional adaptive step-size control. Grounded on
// NonLinearSolver.h's load-step/Newton/line-search state machine from
// original_source/, re-expressed as a flat Go loop rather than a class
// hierarchy.
//
// This core's element kernels implement only a linear-elastic constitutive
// law (no plasticity), so settings.Material and settings.Combined
// nonlinearity types reduce to settings.Geometric here: every load step's
// tangent is K_material + K_geometric(sigma), the material term never
// updates. This is a deliberate scope decision (DESIGN.md "C10"), not an
// oversight: true material nonlinearity would require a yield/flow model
// this module does not carry.
func Nonlinear(m *mesh.Mesh, lib *material.Library, bcs *bc.Set, loads *load.Set, s settings.Nonlinear, solverType int, sc Context) (*result.Container, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if invalid, ok := bcs.ValidateAll(m); !ok {
		return nil, ferr.New(ferr.InvalidBoundaryCondition, "solve: BC %q is invalid for this mesh", invalid)
	}
	if invalid, ok := loads.ValidateAll(m); !ok {
		return nil, ferr.New(ferr.InvalidLoad, "solve: load %q is invalid for this mesh", invalid)
	}
	if !m.Locked() {
		if err := m.AssignDofs(3); err != nil {
			return nil, err
		}
	}

	n := m.NumDofs()
	Ktrip, err := assembly.Stiffness(m, lib)
	if err != nil {
		return nil, err
	}
	Kmat := Ktrip.ToMatrix(nil).ToDense()

	Fbc, err := assembleBCLoads(m, bcs)
	if err != nil {
		return nil, err
	}
	prescribed, constrainedDofs, err := resolveDisplacementBCs(m, bcs)
	if err != nil {
		return nil, err
	}

	u := make([]float64, n)
	res := result.New("nonlinear", solverType)

	lambda := 0.0
	step := s.LoadIncrementFactor
	if !s.AdaptiveLoadStepping {
		step = 1.0 / float64(s.NumLoadSteps)
	}

	for lambda < 1.0-1e-12 {
		if err := sc.checkCancelled(); err != nil {
			return nil, err
		}
		if step < s.MinLoadStepSize && s.AdaptiveLoadStepping {
			return nil, ferr.Underflow(lambda, "solve: load step underflowed below min_load_step_size=%g", s.MinLoadStepSize)
		}
		trial := lambda + step
		if trial > 1.0 {
			trial = 1.0
		}

		Fext, err := assembleMechanicalLoads(m, lib, loads, 1.0)
		if err != nil {
			return nil, err
		}
		for i := range Fext {
			Fext[i] = (Fext[i] + Fbc[i]) * trial
		}

		uTrial := make([]float64, n)
		copy(uTrial, u)
		converged, iters, err := newtonCorrect(m, lib, s, Kmat, Fext, uTrial, prescribed, sc)
		if err != nil {
			if ferr.Is(err, ferr.NonlinearDiverged) && s.AdaptiveLoadStepping {
				step /= 2
				continue
			}
			return nil, err
		}
		if !converged {
			if s.AdaptiveLoadStepping {
				step /= 2
				continue
			}
			return nil, ferr.Diverged(trial, iters, "solve: Newton iteration did not converge within max_iterations=%d", s.MaxIterations)
		}

		u = uTrial
		lambda = trial
		res.AddLoadStep(result.LoadStep{Lambda: lambda, U: append([]float64(nil), u...)})
		sc.logf("nonlinear: load step lambda=%.4f converged in %d iterations", lambda, iters)
		sc.report(lambda)

		if s.AdaptiveLoadStepping && iters < s.MaxIterations/4 {
			step *= 1.5
		}
		if step > s.MaxLoadStepSize && s.AdaptiveLoadStepping {
			step = s.MaxLoadStepSize
		}
	}

	Ffinal, err := assembleMechanicalLoads(m, lib, loads, 1.0)
	if err != nil {
		return nil, err
	}
	for i := range Ffinal {
		Ffinal[i] += Fbc[i]
	}
	sys := bcapply.NewSystem(Kmat, Ffinal)
	if err := recoverMechanical(m, lib, u, sys, constrainedDofs, res); err != nil {
		return nil, err
	}
	return res, nil
}

// newtonCorrect iterates u toward equilibrium at fixed external load Fext,
// spec.md §4.6's Newton-Raphson corrector: residual R = Fext - K_material*u
// with the prescribed DOFs' entries (their reactions) zeroed, tangent
// K_T = K_material + K_geometric(sigma),
// correction du = K_T^-1 R, optional line search scaling du.
func newtonCorrect(m *mesh.Mesh, lib *material.Library, s settings.Nonlinear, Kmat [][]float64, Fext []float64, u []float64, prescribed []bcapply.Prescribed, sc Context) (converged bool, iters int, err error) {
	n := len(u)
	extNorm := la.VecNorm(Fext)
	if extNorm < 1e-300 {
		extNorm = 1.0
	}

	for iter := 1; iter <= s.MaxIterations; iter++ {
		if err := sc.checkCancelled(); err != nil {
			return false, iter, err
		}
		Fint := la.VecAlloc(n)
		la.MatVecMul(Fint, 1, Kmat, u)

		R := make([]float64, n)
		for i := range R {
			R[i] = Fext[i] - Fint[i]
		}
		for _, p := range prescribed {
			R[p.Dof] = 0
		}

		KT := la.MatAlloc(n, n)
		la.MatCopy(KT, 1, Kmat)
		if s.NonlinearityType == settings.Geometric || s.NonlinearityType == settings.Combined || s.NonlinearityType == settings.Material {
			Kg, gerr := geometricTangent(m, lib, u)
			if gerr != nil {
				return false, iter, gerr
			}
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					KT[i][j] += Kg[i][j]
				}
			}
		}

		sys := bcapply.NewSystem(KT, R)
		dirichlet := make([]bcapply.Prescribed, len(prescribed))
		for i, p := range prescribed {
			dirichlet[i] = bcapply.Prescribed{Dof: p.Dof, Value: 0}
		}
		sys.ApplyDirichlet(dirichlet)

		du, _, _, serr := linsolve.Solve(sys.K, sys.F, linsolve.DefaultSettings())
		if serr != nil {
			return false, iter, serr
		}

		scale := 1.0
		if s.UseLineSearch {
			scale = lineSearch(R, du, Kmat, Fext, s.LineSearchTolerance, s.MaxLineSearchIterations)
		}
		for i := range u {
			u[i] += scale * du[i]
		}

		resNorm := la.VecNorm(R)
		if resNorm/extNorm < s.ConvergenceTolerance {
			return true, iter, nil
		}
		if math.IsNaN(resNorm) || resNorm/extNorm > 1e8 {
			return false, iter, ferr.Diverged(0, iter, "solve: residual norm diverged (%.3e)", resNorm)
		}
	}
	return false, s.MaxIterations, nil
}

// geometricTangent evaluates each element's current stress at its centroid
// from the linear-elastic constitutive law and returns the assembled
// geometric stiffness contribution.
func geometricTangent(m *mesh.Mesh, lib *material.Library, u []float64) ([][]float64, error) {
	trip, err := assembly.GeometricStiffness(m, func(e *mesh.Element) ([]float64, error) {
		handle := m.ElementMaterial(e)
		mat, ok := lib.At(handle)
		if !ok {
			return nil, ferr.New(ferr.InvalidProperty, "solve: element %d has no material assigned", e.ID)
		}
		E, errE := mat.Get("youngs_modulus")
		if errE != nil {
			return nil, errE
		}
		nu, errNu := mat.Get("poissons_ratio")
		if errNu != nil {
			return nil, errNu
		}
		nodes := m.ElementNodes(e)
		coords := make([][3]float64, len(nodes))
		ue := make([]float64, 3*len(nodes))
		for i, nd := range nodes {
			coords[i] = nd.Coords()
			ue[3*i], ue[3*i+1], ue[3*i+2] = u[nd.Dofs[0]], u[nd.Dofs[1]], u[nd.Dofs[2]]
		}
		eps, err := kernel.StrainAtCentroid(e.Kind, coords, ue, e.ID)
		if err != nil {
			return nil, err
		}
		D := kernel.IsotropicD(E, nu)
		return kernel.Stress(D, eps), nil
	})
	if err != nil {
		return nil, err
	}
	return trip.ToMatrix(nil).ToDense(), nil
}

// lineSearch implements spec.md §4.6's line-search scaling: find s in (0,1]
// minimizing the projection of the residual onto the search direction,
// backtracking geometrically until the projection ratio falls below tol or
// maxIters is exhausted.
func lineSearch(R, du []float64, Kmat [][]float64, Fext []float64, tol float64, maxIters int) float64 {
	n := len(R)
	g0 := dotVec(R, du)
	if g0 == 0 {
		return 1.0
	}
	s := 1.0
	for it := 0; it < maxIters; it++ {
		utest := make([]float64, n)
		for i := range utest {
			utest[i] = s * du[i]
		}
		Fint := la.VecAlloc(n)
		la.MatVecMul(Fint, 1, Kmat, utest)
		Rs := make([]float64, n)
		for i := range Rs {
			Rs[i] = R[i] - Fint[i]
		}
		g := dotVec(Rs, du)
		if math.Abs(g/g0) < tol {
			break
		}
		s *= 0.5
	}
	return s
}

func dotVec(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
