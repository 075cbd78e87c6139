// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package assembly implements the global sparse assembler (C5): triplet
// accumulation over every element, then one compressed-matrix conversion.
// Grounded on fem/domain.go's Kb *la.Triplet field and every e_*.go's
// AddToKb(Kb *la.Triplet, ...) method — the teacher's "no per-element sparse
// inserts" discipline is exactly what la.Triplet exists for (spec.md §4.2).
package assembly

import (
	"github.com/cpmech/gosl/la"
	"github.com/snowmannn129/rebelcad-fea/ferr"
	"github.com/snowmannn129/rebelcad-fea/kernel"
	"github.com/snowmannn129/rebelcad-fea/material"
	"github.com/snowmannn129/rebelcad-fea/mesh"
)

// elementCoords resolves an element's node positions in local node order.
func elementCoords(m *mesh.Mesh, e *mesh.Element) [][3]float64 {
	nodes := m.ElementNodes(e)
	coords := make([][3]float64, len(nodes))
	for i, n := range nodes {
		coords[i] = n.Coords()
	}
	return coords
}

// mechanicalDofs returns the element's global DOF list for a 3-dof-per-node
// (mechanical) analysis, node-major ordered (matches kernel's B/Ke layout).
func mechanicalDofs(m *mesh.Mesh, e *mesh.Element) []int {
	nodes := m.ElementNodes(e)
	dofs := make([]int, 0, 3*len(nodes))
	for _, n := range nodes {
		dofs = append(dofs, n.Dofs...)
	}
	return dofs
}

// scalarDofs returns the element's global DOF list for a 1-dof-per-node
// (thermal) analysis.
func scalarDofs(m *mesh.Mesh, e *mesh.Element) []int {
	nodes := m.ElementNodes(e)
	dofs := make([]int, len(nodes))
	for i, n := range nodes {
		dofs[i] = n.Dofs[0]
	}
	return dofs
}

// isotropicMaterial resolves E, nu for an element's material; returns
// InvalidProperty if the element has no material or the variant doesn't
// carry those keys.
func isotropicMaterial(m *mesh.Mesh, lib *material.Library, e *mesh.Element) (E, nu, rho float64, err error) {
	handle := m.ElementMaterial(e)
	mat, ok := lib.At(handle)
	if !ok {
		return 0, 0, 0, ferr.New(ferr.InvalidProperty, "assembly: element %d has no material assigned", e.ID)
	}
	E, err = mat.Get("youngs_modulus")
	if err != nil {
		return 0, 0, 0, err
	}
	nu, err = mat.Get("poissons_ratio")
	if err != nil {
		return 0, 0, 0, err
	}
	rho, err = mat.Get("density")
	if err != nil {
		return 0, 0, 0, err
	}
	return E, nu, rho, nil
}

func putSquare(trip *la.Triplet, dofs []int, Ke [][]float64) {
	for i, gi := range dofs {
		for j, gj := range dofs {
			trip.Put(gi, gj, Ke[i][j])
		}
	}
}

// Stiffness assembles the global K = sum_e Bᵀ D B |detJ| w matrix, one
// triplet stream over every element in the mesh, no per-element sparse
// inserts (spec.md §4.2 "Stiffness"). Element-kernel failures (degenerate
// Jacobian, missing material) abort the assembly without returning a
// partial matrix (spec.md §4.2 "Contract").
func Stiffness(m *mesh.Mesh, lib *material.Library) (*la.Triplet, error) {
	n := m.NumDofs()
	trip := new(la.Triplet)
	trip.Init(n, n, estimateCapacity(m, 3))
	for i := range m.Elements {
		e := &m.Elements[i]
		E, nu, _, err := isotropicMaterial(m, lib, e)
		if err != nil {
			return nil, err
		}
		D := kernel.IsotropicD(E, nu)
		coords := elementCoords(m, e)
		Ke, err := kernel.StiffnessMatrix(e.Kind, coords, D, e.ID)
		if err != nil {
			return nil, err
		}
		putSquare(trip, mechanicalDofs(m, e), Ke)
	}
	return trip, nil
}

// Mass assembles the global consistent mass matrix M = sum_e Nᵀ N rho |detJ|
// w (spec.md §4.2 "Mass").
func Mass(m *mesh.Mesh, lib *material.Library) (*la.Triplet, error) {
	n := m.NumDofs()
	trip := new(la.Triplet)
	trip.Init(n, n, estimateCapacity(m, 3))
	for i := range m.Elements {
		e := &m.Elements[i]
		_, _, rho, err := isotropicMaterial(m, lib, e)
		if err != nil {
			return nil, err
		}
		coords := elementCoords(m, e)
		Me, err := kernel.MassMatrix(e.Kind, coords, rho, e.ID)
		if err != nil {
			return nil, err
		}
		putSquare(trip, mechanicalDofs(m, e), Me)
	}
	return trip, nil
}

// Damping assembles the global Rayleigh damping matrix C = alpha*M + beta*K
// (spec.md §4.2 "Damping"), recomputing Ke/Me per element rather than
// re-deriving them from the already-assembled global K/M (keeps the
// per-element kernels the single source of truth, matching Stiffness/Mass).
func Damping(m *mesh.Mesh, lib *material.Library, alpha, beta float64) (*la.Triplet, error) {
	n := m.NumDofs()
	trip := new(la.Triplet)
	trip.Init(n, n, estimateCapacity(m, 3))
	for i := range m.Elements {
		e := &m.Elements[i]
		E, nu, rho, err := isotropicMaterial(m, lib, e)
		if err != nil {
			return nil, err
		}
		coords := elementCoords(m, e)
		D := kernel.IsotropicD(E, nu)
		Ke, err := kernel.StiffnessMatrix(e.Kind, coords, D, e.ID)
		if err != nil {
			return nil, err
		}
		Me, err := kernel.MassMatrix(e.Kind, coords, rho, e.ID)
		if err != nil {
			return nil, err
		}
		Ce := kernel.RayleighDamping(Ke, Me, alpha, beta)
		putSquare(trip, mechanicalDofs(m, e), Ce)
	}
	return trip, nil
}

// GeometricStiffness assembles the global geometric (stress) stiffness matrix
// K_g = sum_e Gᵀ sigma_block G |detJ| w from each element's current Cauchy
// stress, the tangent-stiffness contribution spec.md §4.6 names for
// Geometric/Combined nonlinearity ("K_T = K_material + K_geometric(sigma)").
// stressAt supplies the per-element engineering stress vector (6 components,
// [xx,yy,zz,xy,yz,xz]) evaluated at the element's centroid for its current
// displacement state.
func GeometricStiffness(m *mesh.Mesh, stressAt func(e *mesh.Element) ([]float64, error)) (*la.Triplet, error) {
	n := m.NumDofs()
	trip := new(la.Triplet)
	trip.Init(n, n, estimateCapacity(m, 3))
	for i := range m.Elements {
		e := &m.Elements[i]
		sigma, err := stressAt(e)
		if err != nil {
			return nil, err
		}
		coords := elementCoords(m, e)
		Kge, err := kernel.GeometricStiffness(e.Kind, coords, sigma, e.ID)
		if err != nil {
			return nil, err
		}
		putSquare(trip, mechanicalDofs(m, e), Kge)
	}
	return trip, nil
}

// Conductivity assembles the global thermal conductivity matrix
// K_t = sum_e Bt^T Dt Bt |detJ| w (spec.md §4.2 "Thermal conductivity").
func Conductivity(m *mesh.Mesh, lib *material.Library) (*la.Triplet, error) {
	n := m.NumDofs()
	trip := new(la.Triplet)
	trip.Init(n, n, estimateCapacity(m, 1))
	for i := range m.Elements {
		e := &m.Elements[i]
		handle := m.ElementMaterial(e)
		mat, ok := lib.At(handle)
		if !ok {
			return nil, ferr.New(ferr.InvalidProperty, "assembly: element %d has no material assigned", e.ID)
		}
		k, err := mat.Get("thermal_conductivity")
		if err != nil {
			return nil, err
		}
		Dt := kernel.IsotropicThermalD(k)
		coords := elementCoords(m, e)
		Kte, err := kernel.ConductivityMatrix(e.Kind, coords, Dt, e.ID)
		if err != nil {
			return nil, err
		}
		putSquare(trip, scalarDofs(m, e), Kte)
	}
	return trip, nil
}

// Capacity assembles the global thermal capacity matrix
// C_t = sum_e Nᵀ N rho cp |detJ| w (spec.md §4.2 "Thermal... capacity").
func Capacity(m *mesh.Mesh, lib *material.Library) (*la.Triplet, error) {
	n := m.NumDofs()
	trip := new(la.Triplet)
	trip.Init(n, n, estimateCapacity(m, 1))
	for i := range m.Elements {
		e := &m.Elements[i]
		handle := m.ElementMaterial(e)
		mat, ok := lib.At(handle)
		if !ok {
			return nil, ferr.New(ferr.InvalidProperty, "assembly: element %d has no material assigned", e.ID)
		}
		rho, err := mat.Get("density")
		if err != nil {
			return nil, err
		}
		cp, err := mat.Get("specific_heat")
		if err != nil {
			return nil, err
		}
		coords := elementCoords(m, e)
		Cte, err := kernel.CapacityMatrix(e.Kind, coords, rho, cp, e.ID)
		if err != nil {
			return nil, err
		}
		putSquare(trip, scalarDofs(m, e), Cte)
	}
	return trip, nil
}

// estimateCapacity sizes the triplet's backing slices to
// n_elements*(dofs_per_element)^2 (spec.md §4.2's stated capacity estimate),
// using dofsPerNode*maxNodesPerElement as a (possibly loose) upper bound.
func estimateCapacity(m *mesh.Mesh, dofsPerNode int) int {
	maxNodes := 1
	for _, e := range m.Elements {
		if len(e.NodeIDs) > maxNodes {
			maxNodes = len(e.NodeIDs)
		}
	}
	dpe := dofsPerNode * maxNodes
	return len(m.Elements) * dpe * dpe
}
