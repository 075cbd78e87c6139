// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"github.com/snowmannn129/rebelcad-fea/assembly"
	"github.com/snowmannn129/rebelcad-fea/bc"
	"github.com/snowmannn129/rebelcad-fea/ferr"
	"github.com/snowmannn129/rebelcad-fea/load"
	"github.com/snowmannn129/rebelcad-fea/material"
	"github.com/snowmannn129/rebelcad-fea/mesh"
)

// assembleBCLoads adds the Neumann-style (additive, non-penalty) BC
// contributions - Force (nodal force over an element group's node set) and
// Pressure (surface traction) - into one global mechanical load vector
// (spec.md §4.3: penalty-method BCs constrain Dirichlet DOFs; Force and
// Pressure are not Dirichlet, so they contribute to F directly rather than
// through bcapply.System).
func assembleBCLoads(m *mesh.Mesh, set *bc.Set) ([]float64, error) {
	F := make([]float64, m.NumDofs())
	for _, b := range set.All() {
		switch b.Kind {
		case bc.Force:
			g, ok := m.ElementGroupByName(b.Group)
			if !ok {
				return nil, ferr.New(ferr.InvalidBoundaryCondition, "solve: BC %q targets unknown element group %q", b.Name, b.Group)
			}
			for _, nid := range elementGroupNodeIDs(m, g) {
				n, _ := m.NodeByID(nid)
				F[n.Dofs[0]] += b.Components[0]
				F[n.Dofs[1]] += b.Components[1]
				F[n.Dofs[2]] += b.Components[2]
			}
		case bc.Pressure:
			g, ok := m.ElementGroupByName(b.Group)
			if !ok {
				return nil, ferr.New(ferr.InvalidBoundaryCondition, "solve: BC %q targets unknown element group %q", b.Name, b.Group)
			}
			fe, err := assembly.SurfacePressure(m, g, b.Pressure)
			if err != nil {
				return nil, err
			}
			for i := range F {
				F[i] += fe[i]
			}
		}
	}
	return F, nil
}

// elementGroupNodeIDs returns the unique node ids referenced by an element
// group's members.
func elementGroupNodeIDs(m *mesh.Mesh, g *mesh.ElementGroup) []int {
	seen := map[int]bool{}
	var ids []int
	for _, eid := range g.ElementIDs {
		e, _ := m.ElementByID(eid)
		for _, nid := range e.NodeIDs {
			if !seen[nid] {
				seen[nid] = true
				ids = append(ids, nid)
			}
		}
	}
	return ids
}

// assembleMechanicalLoads sums every load in set, scaled by its time
// variation at t, into one global mechanical load vector. Kinds without a
// translational-DOF-only representation in this core's element kernels
// (LineForce: no beam element; Centrifugal/Pretension: out of spec.md §4's
// component design) return InvalidLoad rather than silently contributing 0.
func assembleMechanicalLoads(m *mesh.Mesh, lib *material.Library, set *load.Set, t float64) ([]float64, error) {
	F := make([]float64, m.NumDofs())
	for _, l := range set.All() {
		scale := l.ScaleAt(t)
		switch l.Kind {
		case load.PointForce, load.Moment:
			g, ok := m.NodeGroupByName(l.Group)
			if !ok {
				return nil, ferr.New(ferr.InvalidLoad, "solve: load %q targets unknown node group %q", l.Name, l.Group)
			}
			fe := assembly.NodalForce(m, g, l.Components)
			addScaled(F, fe, scale)
		case load.BodyForce:
			g, ok := m.ElementGroupByName(l.Group)
			if !ok {
				return nil, ferr.New(ferr.InvalidLoad, "solve: load %q targets unknown element group %q", l.Name, l.Group)
			}
			fe, err := assembly.BodyForce(m, g, l.Components)
			if err != nil {
				return nil, err
			}
			addScaled(F, fe, scale)
		case load.Acceleration:
			g, ok := m.ElementGroupByName(l.Group)
			if !ok {
				return nil, ferr.New(ferr.InvalidLoad, "solve: load %q targets unknown element group %q", l.Name, l.Group)
			}
			fe, err := assembly.Acceleration(m, lib, g, l.Components)
			if err != nil {
				return nil, err
			}
			addScaled(F, fe, scale)
		case load.SurfacePressure:
			g, ok := m.ElementGroupByName(l.Group)
			if !ok {
				return nil, ferr.New(ferr.InvalidLoad, "solve: load %q targets unknown element group %q", l.Name, l.Group)
			}
			fe, err := assembly.SurfacePressure(m, g, l.Scalar)
			if err != nil {
				return nil, err
			}
			addScaled(F, fe, scale)
		default:
			return nil, ferr.New(ferr.InvalidLoad, "solve: load kind %s has no mechanical representation in this core", l.Kind)
		}
	}
	return F, nil
}

// assembleThermalLoads sums every Thermal-kind load (a concentrated nodal
// heat rate, load.Kind.TargetsNodeGroup() == true for Thermal) into one
// global thermal load vector.
func assembleThermalLoads(m *mesh.Mesh, set *load.Set, t float64) ([]float64, error) {
	F := make([]float64, m.NumDofs())
	for _, l := range set.All() {
		if l.Kind != load.Thermal {
			continue
		}
		g, ok := m.NodeGroupByName(l.Group)
		if !ok {
			return nil, ferr.New(ferr.InvalidLoad, "solve: thermal load %q targets unknown node group %q", l.Name, l.Group)
		}
		q := l.Scalar * l.ScaleAt(t)
		for _, nid := range g.NodeIDs {
			n, _ := m.NodeByID(nid)
			F[n.Dofs[0]] += q
		}
	}
	return F, nil
}

func addScaled(dst, src []float64, scale float64) {
	for i := range dst {
		dst[i] += scale * src[i]
	}
}
