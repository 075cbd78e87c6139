// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcapply

import (
	"github.com/snowmannn129/rebelcad-fea/bc"
	"github.com/snowmannn129/rebelcad-fea/ferr"
	"github.com/snowmannn129/rebelcad-fea/mesh"
	"github.com/snowmannn129/rebelcad-fea/shp"
)

// ResolveDisplacement translates Displacement and Symmetry BCs (both target
// node groups and both reduce to a per-DOF prescribed value) into penalty
// Prescribed entries. Symmetry reduces to a Displacement of 0 on the
// component named by NormalAxis (spec.md §4.3: "For symmetry, reduce to a
// Displacement BC on the normal component of the named group").
func ResolveDisplacement(m *mesh.Mesh, b *bc.BC) ([]Prescribed, error) {
	if b.Kind != bc.Displacement && b.Kind != bc.Symmetry {
		return nil, ferr.New(ferr.InvalidBoundaryCondition, "bcapply: %q is not a displacement-family BC", b.Name)
	}
	grp, ok := m.NodeGroupByName(b.Group)
	if !ok {
		return nil, ferr.New(ferr.InvalidBoundaryCondition, "bcapply: BC %q references unknown node group %q", b.Name, b.Group)
	}
	var prescribed []Prescribed
	if b.Kind == bc.Symmetry {
		for _, nid := range grp.NodeIDs {
			n, _ := m.NodeByID(nid)
			prescribed = append(prescribed, Prescribed{Dof: n.Dofs[b.NormalAxis], Value: 0})
		}
		return prescribed, nil
	}
	for _, nid := range grp.NodeIDs {
		n, _ := m.NodeByID(nid)
		for axis, comp := range b.Direction {
			if comp == 0 {
				continue
			}
			prescribed = append(prescribed, Prescribed{Dof: n.Dofs[axis], Value: comp * b.Value})
		}
	}
	return prescribed, nil
}

// ResolveTemperature translates a Temperature BC (target node group, single
// thermal DOF per node) into penalty Prescribed entries.
func ResolveTemperature(m *mesh.Mesh, b *bc.BC) ([]Prescribed, error) {
	if b.Kind != bc.Temperature {
		return nil, ferr.New(ferr.InvalidBoundaryCondition, "bcapply: %q is not a Temperature BC", b.Name)
	}
	grp, ok := m.NodeGroupByName(b.Group)
	if !ok {
		return nil, ferr.New(ferr.InvalidBoundaryCondition, "bcapply: BC %q references unknown node group %q", b.Name, b.Group)
	}
	prescribed := make([]Prescribed, len(grp.NodeIDs))
	for i, nid := range grp.NodeIDs {
		n, _ := m.NodeByID(nid)
		prescribed[i] = Prescribed{Dof: n.Dofs[0], Value: b.Temp}
	}
	return prescribed, nil
}

// ApplyConvectionBC walks a Convection BC's element group (facet elements)
// and distributes the film-coefficient contribution per spec.md §4.3.
func (s *System) ApplyConvectionBC(m *mesh.Mesh, b *bc.BC) error {
	if b.Kind != bc.Convection {
		return ferr.New(ferr.InvalidBoundaryCondition, "bcapply: %q is not a Convection BC", b.Name)
	}
	grp, ok := m.ElementGroupByName(b.Group)
	if !ok {
		return ferr.New(ferr.InvalidBoundaryCondition, "bcapply: BC %q references unknown element group %q", b.Name, b.Group)
	}
	for _, eid := range grp.ElementIDs {
		e, _ := m.ElementByID(eid)
		nodes := m.ElementNodes(e)
		coords := make([][3]float64, len(nodes))
		for i, n := range nodes {
			coords[i] = n.Coords()
		}
		ips, err := shp.QuadratureFacet(e.Kind)
		if err != nil {
			return err
		}
		var area float64
		for _, ip := range ips {
			_, dN, err := shp.EvalFacet(e.Kind, len(nodes), ip.R, ip.S)
			if err != nil {
				return err
			}
			_, a := shp.FacetNormal(dN, coords)
			area += a * ip.W
		}
		dofs := make([]int, len(nodes))
		for i, n := range nodes {
			dofs[i] = n.Dofs[0]
		}
		s.Convection(dofs, area, b.FilmCoeff, b.AmbientTemp)
	}
	return nil
}

// ApplyHeatFluxBC adds a prescribed flux's equivalent nodal load to F,
// uniformly distributed across the facet's node DOFs (Neumann condition,
// additive, no penalty scaling, spec.md §4.3).
func (s *System) ApplyHeatFluxBC(m *mesh.Mesh, b *bc.BC) error {
	if b.Kind != bc.HeatFlux {
		return ferr.New(ferr.InvalidBoundaryCondition, "bcapply: %q is not a HeatFlux BC", b.Name)
	}
	grp, ok := m.ElementGroupByName(b.Group)
	if !ok {
		return ferr.New(ferr.InvalidBoundaryCondition, "bcapply: BC %q references unknown element group %q", b.Name, b.Group)
	}
	for _, eid := range grp.ElementIDs {
		e, _ := m.ElementByID(eid)
		nodes := m.ElementNodes(e)
		dofs := make([]int, len(nodes))
		flux := make([]float64, len(nodes))
		for i, n := range nodes {
			dofs[i] = n.Dofs[0]
			flux[i] = b.Flux / float64(len(nodes))
		}
		s.HeatFlux(dofs, flux)
	}
	return nil
}
