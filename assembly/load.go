// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assembly

import (
	"github.com/snowmannn129/rebelcad-fea/ferr"
	"github.com/snowmannn129/rebelcad-fea/kernel"
	"github.com/snowmannn129/rebelcad-fea/material"
	"github.com/snowmannn129/rebelcad-fea/mesh"
	"github.com/snowmannn129/rebelcad-fea/shp"
)

// NodalForce assembles a concentrated force (or the force contribution of a
// moment, treated as a pure force since this core's elements carry no
// rotational DOF) applied at every node of a node group (spec.md §4.2,
// load.Kind PointForce/Moment).
func NodalForce(m *mesh.Mesh, group *mesh.NodeGroup, components [3]float64) []float64 {
	F := make([]float64, m.NumDofs())
	for _, nid := range group.NodeIDs {
		n, _ := m.NodeByID(nid)
		F[n.Dofs[0]] += components[0]
		F[n.Dofs[1]] += components[1]
		F[n.Dofs[2]] += components[2]
	}
	return F
}

// Acceleration assembles the global mechanical load vector contribution of
// a uniform prescribed acceleration a (d'Alembert body force rho*a) over
// every element of an element group (spec.md §4.2 "Load vector... body
// force", specialized the way fem/e_rod.go's gravity load scales a constant
// acceleration by the element's own density rather than taking force per
// unit volume directly).
func Acceleration(m *mesh.Mesh, lib *material.Library, group *mesh.ElementGroup, a [3]float64) ([]float64, error) {
	F := make([]float64, m.NumDofs())
	for _, eid := range group.ElementIDs {
		e, _ := m.ElementByID(eid)
		_, _, rho, err := isotropicMaterial(m, lib, e)
		if err != nil {
			return nil, err
		}
		coords := elementCoords(m, e)
		b := [3]float64{rho * a[0], rho * a[1], rho * a[2]}
		fe, err := kernel.BodyForceVector(e.Kind, coords, b, e.ID)
		if err != nil {
			return nil, err
		}
		for i, gi := range mechanicalDofs(m, e) {
			F[gi] += fe[i]
		}
	}
	return F, nil
}

// BodyForce assembles the global mechanical load vector contribution of a
// constant body force b over every element of an element group
// (spec.md §4.2 "Load vector... body force").
func BodyForce(m *mesh.Mesh, group *mesh.ElementGroup, b [3]float64) ([]float64, error) {
	F := make([]float64, m.NumDofs())
	for _, eid := range group.ElementIDs {
		e, _ := m.ElementByID(eid)
		coords := elementCoords(m, e)
		fe, err := kernel.BodyForceVector(e.Kind, coords, b, e.ID)
		if err != nil {
			return nil, err
		}
		for i, gi := range mechanicalDofs(m, e) {
			F[gi] += fe[i]
		}
	}
	return F, nil
}

// HeatGeneration assembles the global thermal load vector contribution of a
// constant volumetric heat generation rate q over every element of an
// element group (spec.md §4.2 "Load vector... thermal heat generation").
func HeatGeneration(m *mesh.Mesh, group *mesh.ElementGroup, q float64) ([]float64, error) {
	F := make([]float64, m.NumDofs())
	for _, eid := range group.ElementIDs {
		e, _ := m.ElementByID(eid)
		coords := elementCoords(m, e)
		fe, err := kernel.HeatGenerationVector(e.Kind, coords, q, e.ID)
		if err != nil {
			return nil, err
		}
		for i, gi := range scalarDofs(m, e) {
			F[gi] += fe[i]
		}
	}
	return F, nil
}

// SurfacePressure assembles the global mechanical load vector contribution
// of a uniform pressure p acting normal to every facet element of an element
// group, traction = -p*n̂ (positive pressure compresses the surface along
// its outward normal): fe = sum_ip N . (-p*n̂) |detJ| w (spec.md §4.2
// "Load vector... surface pressure").
func SurfacePressure(m *mesh.Mesh, group *mesh.ElementGroup, p float64) ([]float64, error) {
	F := make([]float64, m.NumDofs())
	for _, eid := range group.ElementIDs {
		e, _ := m.ElementByID(eid)
		if e.Kind != mesh.Triangle && e.Kind != mesh.Quad {
			return nil, ferr.New(ferr.InvalidLoad, "assembly: surface pressure requires a facet element, got element %d of kind %s", e.ID, e.Kind)
		}
		coords := elementCoords(m, e)
		ips, err := shp.QuadratureFacet(e.Kind)
		if err != nil {
			return nil, err
		}
		n := len(e.NodeIDs)
		fe := make([]float64, 3*n)
		for _, ip := range ips {
			N, dN, err := shp.EvalFacet(e.Kind, n, ip.R, ip.S)
			if err != nil {
				return nil, err
			}
			normal, area := shp.FacetNormal(dN, coords)
			if area < shp.MinDet {
				return nil, ferr.DegenerateJac(area, e.ID, -1)
			}
			unit := [3]float64{normal[0] / area, normal[1] / area, normal[2] / area}
			for i := 0; i < n; i++ {
				coef := -p * N[i] * area * ip.W
				fe[3*i+0] += coef * unit[0]
				fe[3*i+1] += coef * unit[1]
				fe[3*i+2] += coef * unit[2]
			}
		}
		for i, gi := range mechanicalDofs(m, e) {
			F[gi] += fe[i]
		}
	}
	return F, nil
}
