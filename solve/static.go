// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"math"

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
)

// Static runs the one-pass linear static analysis (C9), spec.md §4.5's six
// numbered steps: assemble K and F, apply BCs, solve K u = F, recover
// stress/strain/principal invariants per element, recover reactions at
// constrained DOFs. Grounded on fem/solver.go's single linear-solve entry
// point generalized to this spec's penalty BC application and result
// container.
func Static(m *mesh.Mesh, lib *material.Library, bcs *bc.Set, loads *load.Set, solverType int, sc Context) (*result.Container, error) {
	if err := sc.checkCancelled(); err != nil {
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
	sc.report(0.0)

	Ktrip, err := assembly.Stiffness(m, lib)
	if err != nil {
		return nil, err
	}
	K := Ktrip.ToMatrix(nil).ToDense()

	Fmech, err := assembleMechanicalLoads(m, lib, loads, 1.0)
	if err != nil {
		return nil, err
	}
	Fbc, err := assembleBCLoads(m, bcs)
	if err != nil {
		return nil, err
	}
	F := make([]float64, m.NumDofs())
	for i := range F {
		F[i] = Fmech[i] + Fbc[i]
	}
	sc.report(0.25)

	sys := bcapply.NewSystem(K, F)
	prescribed, constrainedDofs, err := resolveDisplacementBCs(m, bcs)
	if err != nil {
		return nil, err
	}
	sys.ApplyDirichlet(prescribed)
	sc.report(0.4)

	if err := sc.checkCancelled(); err != nil {
		return nil, err
	}
	u, _, _, err := linsolve.Solve(sys.K, sys.F, linsolve.DefaultSettings())
	if err != nil {
		return nil, err
	}
	sc.report(0.7)

	res := result.New("static", solverType)
	if err := recoverMechanical(m, lib, u, sys, constrainedDofs, res); err != nil {
		return nil, err
	}
	sc.report(1.0)
	return res, nil
}

// resolveDisplacementBCs translates every Displacement/Symmetry BC into
// penalty Prescribed entries, also returning the flat set of constrained
// DOF indices for reaction recovery.
func resolveDisplacementBCs(m *mesh.Mesh, bcs *bc.Set) ([]bcapply.Prescribed, []int, error) {
	var prescribed []bcapply.Prescribed
	var dofs []int
	for _, b := range bcs.All() {
		if b.Kind != bc.Displacement && b.Kind != bc.Symmetry {
			continue
		}
		p, err := bcapply.ResolveDisplacement(m, b)
		if err != nil {
			return nil, nil, err
		}
		prescribed = append(prescribed, p...)
		for _, pe := range p {
			dofs = append(dofs, pe.Dof)
		}
	}
	return prescribed, dofs, nil
}

// recoverMechanical fills res with Displacement/Stress/Strain/ReactionForce
// records from a converged displacement vector u, per spec.md §4.5 steps
// 5-6.
func recoverMechanical(m *mesh.Mesh, lib *material.Library, u []float64, sys *bcapply.System, constrainedDofs []int, res *result.Container) error {
	for i := range m.Nodes {
		n := &m.Nodes[i]
		x, y, z := u[n.Dofs[0]], u[n.Dofs[1]], u[n.Dofs[2]]
		res.AddDisplacement(result.Displacement{NodeID: n.ID, X: x, Y: y, Z: z, Magnitude: vecMagnitude(x, y, z)})
	}
	for i := range m.Elements {
		e := &m.Elements[i]
		handle := m.ElementMaterial(e)
		mat, ok := lib.At(handle)
		if !ok {
			return ferr.New(ferr.InvalidProperty, "solve: element %d has no material assigned", e.ID)
		}
		E, errE := mat.Get("youngs_modulus")
		if errE != nil {
			return errE
		}
		nu, errNu := mat.Get("poissons_ratio")
		if errNu != nil {
			return errNu
		}
		nodes := m.ElementNodes(e)
		coords := make([][3]float64, len(nodes))
		ue := make([]float64, 3*len(nodes))
		for i, n := range nodes {
			coords[i] = n.Coords()
			ue[3*i], ue[3*i+1], ue[3*i+2] = u[n.Dofs[0]], u[n.Dofs[1]], u[n.Dofs[2]]
		}
		eps, err := kernel.StrainAtCentroid(e.Kind, coords, ue, e.ID)
		if err != nil {
			return err
		}
		D := kernel.IsotropicD(E, nu)
		sigma := kernel.Stress(D, eps)
		res.AddStrain(result.PrincipalStrain(e.ID, eps))
		res.AddStress(result.PrincipalStress(e.ID, sigma))
	}
	r := sys.Reactions(u, constrainedDofs)
	byNode := map[int][3]float64{}
	for i, dof := range constrainedDofs {
		nid, axis := dofOwner(m, dof)
		v := byNode[nid]
		v[axis] = r[i]
		byNode[nid] = v
	}
	for nid, v := range byNode {
		res.AddReaction(result.ReactionForce{NodeID: nid, Fx: v[0], Fy: v[1], Fz: v[2], Magnitude: vecMagnitude(v[0], v[1], v[2])})
	}
	return nil
}

// dofOwner finds the node id owning a global mechanical DOF index and the
// local axis (0=X,1=Y,2=Z) it corresponds to.
func dofOwner(m *mesh.Mesh, dof int) (nodeID, axis int) {
	for i := range m.Nodes {
		n := &m.Nodes[i]
		for a, d := range n.Dofs {
			if d == dof {
				return n.ID, a
			}
		}
	}
	return -1, 0
}

func vecMagnitude(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}
