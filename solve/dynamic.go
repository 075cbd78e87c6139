// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"github.com/cpmech/gosl/la"
	"github.com/snowmannn129/rebelcad-fea/assembly"
	"github.com/snowmannn129/rebelcad-fea/bc"
	"github.com/snowmannn129/rebelcad-fea/bcapply"
	"github.com/snowmannn129/rebelcad-fea/eigen"
	"github.com/snowmannn129/rebelcad-fea/ferr"
	"github.com/snowmannn129/rebelcad-fea/linsolve"
	"github.com/snowmannn129/rebelcad-fea/load"
	"github.com/snowmannn129/rebelcad-fea/material"
	"github.com/snowmannn129/rebelcad-fea/mesh"
	"github.com/snowmannn129/rebelcad-fea/result"
	"github.com/snowmannn129/rebelcad-fea/settings"
)

// Dynamic runs modal extraction followed (when s.NumSteps > 0) by direct
// time integration (C11), per spec.md §4.7. Grounded on DynamicSolver.h's
// two-phase modal-then-transient structure from original_source/ and on
// eigen.Lanczos (C8) for the generalized eigenproblem Kφ=λMφ.
func Dynamic(m *mesh.Mesh, lib *material.Library, bcs *bc.Set, loads *load.Set, s settings.Dynamic, solverType int, sc Context) (*result.Container, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if invalid, ok := bcs.ValidateAll(m); !ok {
		return nil, ferr.New(ferr.InvalidBoundaryCondition, "solve: BC %q is invalid for this mesh", invalid)
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
	Mtrip, err := assembly.Mass(m, lib)
	if err != nil {
		return nil, err
	}
	K := Ktrip.ToMatrix(nil).ToDense()
	M := Mtrip.ToMatrix(nil).ToDense()

	prescribed, _, err := resolveDisplacementBCs(m, bcs)
	if err != nil {
		return nil, err
	}

	res := result.New("dynamic", solverType)

	if s.NumModes > 0 {
		Kc := la.MatAlloc(n, n)
		la.MatCopy(Kc, 1, K)
		constraint := bcapply.NewSystem(Kc, make([]float64, n))
		constraint.ApplyDirichlet(prescribed)
		if err := extractModes(m, constraint.K, M, s.NumModes, res, sc); err != nil {
			return nil, err
		}
		sc.report(0.3)
	}

	if s.NumSteps < 1 {
		return res, nil
	}

	Ctrip, err := assembly.Damping(m, lib, s.RayleighAlpha, s.RayleighBeta)
	if err != nil {
		return nil, err
	}
	C := Ctrip.ToMatrix(nil).ToDense()

	Fbc, err := assembleBCLoads(m, bcs)
	if err != nil {
		return nil, err
	}

	if s.Method == settings.CentralDifference {
		dtCrit, err := CriticalTimeStep(m, lib, s.SafetyFactor)
		if err != nil {
			return nil, err
		}
		if s.TimeStep > dtCrit {
			return nil, ferr.New(ferr.InvalidSettings, "solve: time_step=%g exceeds CentralDifference's critical time step %g (safety_factor=%g)", s.TimeStep, dtCrit, s.SafetyFactor)
		}
	}

	u := make([]float64, n)
	v := make([]float64, n)
	a := make([]float64, n)
	if err := timeIntegrate(m, lib, loads, Fbc, K, M, C, s, u, v, a, prescribed, res, sc); err != nil {
		return nil, err
	}
	sc.report(1.0)
	return res, nil
}

// extractModes solves Kφ=λMφ via Lanczos (C8) and fills res with
// Frequency/ModeShape records. Participation factors Γ_i=φ_iᵀMr/(φ_iᵀMφ_i)
// and effective mass M_eff,i=Γ_i²·(φ_iᵀMφ_i) (SPEC_FULL.md §9's supplemented
// feature) are computed per mode per translational axis and logged via
// sc.Log rather than added to the Frequency record, since mode shapes are
// already mass-normalized (φᵀMφ=1) so M_eff,i reduces to Γ_i².
func extractModes(m *mesh.Mesh, K, M [][]float64, numModes int, res *result.Container, sc Context) error {
	modes, err := eigen.Lanczos(K, M, numModes)
	if err != nil {
		return err
	}
	n := len(K)
	rigid := make([][]float64, 3)
	mTotal := make([]float64, 3)
	for dir := 0; dir < 3; dir++ {
		r := make([]float64, n)
		for i := range m.Nodes {
			r[m.Nodes[i].Dofs[dir]] = 1
		}
		Mr := la.VecAlloc(n)
		la.MatVecMul(Mr, 1, M, r)
		rigid[dir] = Mr
		for i := range r {
			mTotal[dir] += r[i] * Mr[i]
		}
	}
	for idx, mode := range modes {
		res.AddFrequency(result.Frequency{Mode: idx + 1, F: mode.Freq, T: mode.Period, Omega: mode.Omega})
		for dir := 0; dir < 3; dir++ {
			gamma := 0.0
			for i := range mode.Phi {
				gamma += mode.Phi[i] * rigid[dir][i]
			}
			effMass := gamma * gamma
			ratio := 0.0
			if mTotal[dir] > 1e-300 {
				ratio = effMass / mTotal[dir]
			}
			sc.logf("dynamic: mode %d axis %d participation=%.6g effective_mass=%.6g ratio=%.6g", idx+1, dir, gamma, effMass, ratio)
		}
		for i := range m.Nodes {
			nd := &m.Nodes[i]
			x, y, z := mode.Phi[nd.Dofs[0]], mode.Phi[nd.Dofs[1]], mode.Phi[nd.Dofs[2]]
			res.AddModeShape(result.ModeShape{NodeID: nd.ID, Mode: idx + 1, X: x, Y: y, Z: z, Magnitude: vecMagnitude(x, y, z)})
		}
	}
	return nil
}

// timeIntegrate advances (u,v,a) from t=0 through s.NumSteps steps of size
// s.TimeStep using the scheme s.Method names, snapshotting every
// s.SaveInterval steps into res as LoadStep{Lambda: t, U: u} records (spec.md
// §4.7's "time history... sampled at save_interval").
func timeIntegrate(m *mesh.Mesh, lib *material.Library, loads *load.Set, Fbc []float64, K, M, C [][]float64, s settings.Dynamic, u, v, a []float64, prescribed []bcapply.Prescribed, res *result.Container, sc Context) error {
	n := len(u)
	dt := s.TimeStep

	F0, err := externalForce(m, lib, loads, Fbc, 0)
	if err != nil {
		return err
	}
	a0 := la.VecAlloc(n)
	la.MatVecMul(a0, 1, K, u)
	for i := range a {
		a[i] = (F0[i] - a0[i]) / diagOr1(M, i)
	}

	for step := 1; step <= s.NumSteps; step++ {
		if err := sc.checkCancelled(); err != nil {
			return err
		}
		t := float64(step) * dt
		F, err := externalForce(m, lib, loads, Fbc, t)
		if err != nil {
			return err
		}

		switch s.Method {
		case settings.CentralDifference:
			if err := centralDifferenceStep(K, M, C, F, u, v, a, dt, prescribed); err != nil {
				return err
			}
		case settings.WilsonTheta:
			if err := wilsonThetaStep(K, M, C, F, u, v, a, dt, s.WilsonTheta, prescribed); err != nil {
				return err
			}
		case settings.HHTAlpha:
			if err := hhtAlphaStep(K, M, C, F, u, v, a, dt, s.HHTAlphaParam, s.NewmarkBeta, s.NewmarkGamma, prescribed); err != nil {
				return err
			}
		case settings.Bathe:
			if err := batheStep(K, M, C, F, u, v, a, dt, prescribed); err != nil {
				return err
			}
		default: // Newmark
			if err := newmarkStep(K, M, C, F, u, v, a, dt, s.NewmarkBeta, s.NewmarkGamma, prescribed); err != nil {
				return err
			}
		}

		if step%s.SaveInterval == 0 {
			res.AddLoadStep(result.LoadStep{Lambda: t, U: append([]float64(nil), u...)})
		}
		sc.report(float64(step) / float64(s.NumSteps))
	}
	return nil
}

func externalForce(m *mesh.Mesh, lib *material.Library, loads *load.Set, Fbc []float64, t float64) ([]float64, error) {
	F, err := assembleMechanicalLoads(m, lib, loads, t)
	if err != nil {
		return nil, err
	}
	for i := range F {
		F[i] += Fbc[i]
	}
	return F, nil
}

func diagOr1(M [][]float64, i int) float64 {
	if M[i][i] == 0 {
		return 1
	}
	return M[i][i]
}

// zeroPrescribed zeroes the prescribed DOFs' entries of x; the time
// integrators apply it to the velocity after each step. effectiveSolve holds
// prescribed DOFs at zero displacement and u starts at zero, so only
// homogeneous constraints are supported; non-zero prescribed values are not
// applied.
func zeroPrescribed(x []float64, prescribed []bcapply.Prescribed) {
	for _, p := range prescribed {
		x[p.Dof] = 0
	}
}

// effectiveSolve builds Keff and solves Keff x = Feff, applying homogeneous
// Dirichlet constraints at the prescribed DOFs via the penalty method.
func effectiveSolve(Keff [][]float64, Feff []float64, prescribed []bcapply.Prescribed) ([]float64, error) {
	sys := bcapply.NewSystem(Keff, Feff)
	d := make([]bcapply.Prescribed, len(prescribed))
	for i, p := range prescribed {
		d[i] = bcapply.Prescribed{Dof: p.Dof, Value: 0}
	}
	sys.ApplyDirichlet(d)
	x, _, _, err := linsolve.Solve(sys.K, sys.F, linsolve.DefaultSettings())
	if err != nil {
		return nil, err
	}
	return x, nil
}

// newmarkStep advances one Newmark-beta step (spec.md §4.7's default
// unconditionally-stable average-acceleration scheme): effective stiffness
// Keff = K + a0*M + a1*C solved for u_{n+1}, then v,a updated from the
// Newmark relations.
func newmarkStep(K, M, C [][]float64, F, u, v, a []float64, dt, beta, gamma float64, prescribed []bcapply.Prescribed) error {
	n := len(u)
	a0 := 1 / (beta * dt * dt)
	a1 := gamma / (beta * dt)
	a2 := 1 / (beta * dt)
	a3 := 1/(2*beta) - 1
	a4 := gamma/beta - 1
	a5 := dt / 2 * (gamma/beta - 2)

	Keff := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			Keff[i][j] = K[i][j] + a0*M[i][j] + a1*C[i][j]
		}
	}
	rhs := make([]float64, n)
	Mterm := la.VecAlloc(n)
	la.MatVecMul(Mterm, 1, M, addVecs(scaleVec(u, 0), u, a0, v, a2, a, a3))
	Cterm := la.VecAlloc(n)
	la.MatVecMul(Cterm, 1, C, addVecs(scaleVec(u, 0), u, a1, v, a4, a, a5))
	for i := 0; i < n; i++ {
		rhs[i] = F[i] + Mterm[i] + Cterm[i]
	}

	uNew, err := effectiveSolve(Keff, rhs, prescribed)
	if err != nil {
		return err
	}
	aNew := make([]float64, n)
	vNew := make([]float64, n)
	for i := 0; i < n; i++ {
		du := uNew[i] - u[i]
		aNew[i] = a0*du - a2*v[i] - a3*a[i]
		vNew[i] = v[i] + dt*((1-gamma)*a[i]+gamma*aNew[i])
	}
	copy(u, uNew)
	copy(v, vNew)
	copy(a, aNew)
	zeroPrescribed(v, prescribed)
	return nil
}

// hhtAlphaStep advances one HHT-alpha step: a Newmark predictor with
// beta=(1-alpha)^2/4, gamma=1/2-alpha, internal/damping forces evaluated at
// the alpha-weighted intermediate state (spec.md §4.7 table).
func hhtAlphaStep(K, M, C [][]float64, F, u, v, a []float64, dt, alpha, betaUnused, gammaUnused float64, prescribed []bcapply.Prescribed) error {
	beta := (1 - alpha) * (1 - alpha) / 4
	gamma := 0.5 - alpha
	n := len(u)
	a0 := 1 / (beta * dt * dt)
	a1 := gamma / (beta * dt)
	a2 := 1 / (beta * dt)
	a3 := 1/(2*beta) - 1
	a4 := gamma/beta - 1
	a5 := dt / 2 * (gamma/beta - 2)

	Keff := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			Keff[i][j] = (1+alpha)*K[i][j] + a0*M[i][j] + a1*C[i][j]
		}
	}
	rhs := make([]float64, n)
	Mterm := la.VecAlloc(n)
	la.MatVecMul(Mterm, 1, M, addVecs(scaleVec(u, 0), u, a0, v, a2, a, a3))
	Cterm := la.VecAlloc(n)
	la.MatVecMul(Cterm, 1, C, addVecs(scaleVec(u, 0), u, a1, v, a4, a, a5))
	Kuterm := la.VecAlloc(n)
	la.MatVecMul(Kuterm, 1, K, u)
	for i := 0; i < n; i++ {
		rhs[i] = F[i] + Mterm[i] + Cterm[i] + alpha*Kuterm[i]
	}

	uNew, err := effectiveSolve(Keff, rhs, prescribed)
	if err != nil {
		return err
	}
	aNew := make([]float64, n)
	vNew := make([]float64, n)
	for i := 0; i < n; i++ {
		du := uNew[i] - u[i]
		aNew[i] = a0*du - a2*v[i] - a3*a[i]
		vNew[i] = v[i] + dt*((1-gamma)*a[i]+gamma*aNew[i])
	}
	copy(u, uNew)
	copy(v, vNew)
	copy(a, aNew)
	zeroPrescribed(v, prescribed)
	return nil
}

// wilsonThetaStep advances one Wilson-theta step: linear-acceleration
// assumption extrapolated over theta*dt then interpolated back to dt (spec.md
// §4.7 table, theta >= 1.37 for unconditional stability).
func wilsonThetaStep(K, M, C [][]float64, F, u, v, a []float64, dt, theta float64, prescribed []bcapply.Prescribed) error {
	n := len(u)
	th := theta * dt
	a0 := 6 / (th * th)
	a1 := 3 / th
	a2 := 2 * a1
	a3 := th / 2

	Keff := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			Keff[i][j] = K[i][j] + a0*M[i][j] + a1*C[i][j]
		}
	}
	rhs := make([]float64, n)
	Mterm := la.VecAlloc(n)
	la.MatVecMul(Mterm, 1, M, addVecs(scaleVec(u, 0), u, a0, v, a2, a, 2))
	Cterm := la.VecAlloc(n)
	la.MatVecMul(Cterm, 1, C, addVecs(scaleVec(u, 0), u, a1, v, 2, a, a3))
	for i := 0; i < n; i++ {
		rhs[i] = F[i] + Mterm[i] + Cterm[i]
	}

	uTh, err := effectiveSolve(Keff, rhs, prescribed)
	if err != nil {
		return err
	}
	aTh := make([]float64, n)
	for i := 0; i < n; i++ {
		aTh[i] = a0*(uTh[i]-u[i]) - a2*v[i] - 2*a[i]
	}
	aNew := make([]float64, n)
	vNew := make([]float64, n)
	uNew := make([]float64, n)
	for i := 0; i < n; i++ {
		aNew[i] = a[i] + (aTh[i]-a[i])/theta
		vNew[i] = v[i] + dt/2*(a[i]+aNew[i])
		uNew[i] = u[i] + dt*v[i] + dt*dt/6*(aNew[i]+2*a[i])
	}
	copy(u, uNew)
	copy(v, vNew)
	copy(a, aNew)
	zeroPrescribed(v, prescribed)
	return nil
}

// centralDifferenceStep advances one explicit central-difference step (spec.md
// §4.7 table: conditionally stable; Dynamic validates dt <= dt_crit via
// CriticalTimeStep before time integration starts).
func centralDifferenceStep(K, M, C [][]float64, F, u, v, a []float64, dt float64, prescribed []bcapply.Prescribed) error {
	n := len(u)
	Keff := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			Keff[i][j] = M[i][j]/(dt*dt) + C[i][j]/(2*dt)
		}
	}
	Ku := la.VecAlloc(n)
	la.MatVecMul(Ku, 1, K, u)
	rhs := make([]float64, n)
	Mterm := la.VecAlloc(n)
	la.MatVecMul(Mterm, 1, M, scaleVec(u, 2/(dt*dt)))
	MtermPrev := la.VecAlloc(n)
	uPrev := addVecs(scaleVec(u, 0), u, 1, v, -dt, a, dt*dt/2)
	la.MatVecMul(MtermPrev, 1, M, scaleVec(uPrev, -1/(dt*dt)))
	Cterm := la.VecAlloc(n)
	la.MatVecMul(Cterm, 1, C, scaleVec(uPrev, 1/(2*dt)))
	for i := 0; i < n; i++ {
		rhs[i] = F[i] - Ku[i] + Mterm[i] + MtermPrev[i] + Cterm[i]
	}
	uNew, err := effectiveSolve(Keff, rhs, prescribed)
	if err != nil {
		return err
	}
	aNew := make([]float64, n)
	vNew := make([]float64, n)
	for i := 0; i < n; i++ {
		aNew[i] = (uNew[i] - 2*u[i] + uPrev[i]) / (dt * dt)
		vNew[i] = (uNew[i] - uPrev[i]) / (2 * dt)
	}
	copy(u, uNew)
	copy(v, vNew)
	copy(a, aNew)
	zeroPrescribed(v, prescribed)
	return nil
}

// batheStep advances one Bathe composite step: a trapezoidal-rule substep
// over [0, dt/2] followed by a three-point backward-Euler substep over
// [dt/2, dt] (spec.md §4.7 table: "two-substep composite scheme").
func batheStep(K, M, C [][]float64, F, u, v, a []float64, dt float64, prescribed []bcapply.Prescribed) error {
	half := dt / 2
	u0 := append([]float64(nil), u...)
	v0 := append([]float64(nil), v...)
	if err := newmarkStep(K, M, C, F, u, v, a, half, 0.25, 0.5, prescribed); err != nil {
		return err
	}
	u1 := append([]float64(nil), u...)
	v1 := append([]float64(nil), v...)
	n := len(u)

	// Three-point backward-Euler substep over [dt/2, dt]: velocity and
	// acceleration are expressed as backward differences of displacement
	// through the three known/unknown states u0 (t=0), u1 (t=dt/2), u2
	// (t=dt), weighted c0=3/(2h), c1=2/h, c2=1/(2h) with h=dt/2.
	c0, c1, c2 := 3/(2*half), 2/half, 1/(2*half)
	Keff := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			Keff[i][j] = K[i][j] + c0*c0*M[i][j] + c0*C[i][j]
		}
	}
	rhs := make([]float64, n)
	velTerm := make([]float64, n)
	for i := 0; i < n; i++ {
		velTerm[i] = c0*(c1*u1[i]-c2*u0[i]) + v1[i]
	}
	Mterm := la.VecAlloc(n)
	la.MatVecMul(Mterm, 1, M, velTerm)
	Cterm := la.VecAlloc(n)
	la.MatVecMul(Cterm, 1, C, addVecs(scaleVec(u, 0), u1, c1, u0, -c2, v, 0))
	for i := 0; i < n; i++ {
		rhs[i] = F[i] + Mterm[i] + Cterm[i]
	}
	uNew, err := effectiveSolve(Keff, rhs, prescribed)
	if err != nil {
		return err
	}
	vNew := make([]float64, n)
	aNew := make([]float64, n)
	for i := 0; i < n; i++ {
		vNew[i] = c0*uNew[i] - c1*u1[i] + c2*u0[i]
		aNew[i] = (vNew[i] - v1[i]) / half
	}
	copy(u, uNew)
	copy(v, vNew)
	copy(a, aNew)
	zeroPrescribed(v, prescribed)
	return nil
}

func scaleVec(x []float64, s float64) []float64 {
	y := make([]float64, len(x))
	for i := range x {
		y[i] = s * x[i]
	}
	return y
}

// addVecs computes base + c1*v1 + c2*v2 + c3*v3 elementwise, where base is
// typically a zero vector produced by scaleVec(x, 0); v1/v2/v3 share base's
// length.
func addVecs(base, v1 []float64, c1 float64, v2 []float64, c2 float64, v3 []float64, c3 float64) []float64 {
	out := make([]float64, len(base))
	for i := range out {
		out[i] = base[i] + c1*v1[i] + c2*v2[i] + c3*v3[i]
	}
	return out
}

