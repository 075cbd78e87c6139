// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"math"

	"github.com/snowmannn129/rebelcad-fea/ferr"
	"github.com/snowmannn129/rebelcad-fea/material"
	"github.com/snowmannn129/rebelcad-fea/mesh"
)

var hexaEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

var tetraEdges = [6][2]int{
	{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
}

// CriticalTimeStep computes spec.md §4.7's explicit stability bound
// dt_crit = safety_factor * min_e(h_e/c_e), with h_e the element's minimum
// edge length and c_e = sqrt(E/rho) its dilatational wave speed, scanning
// every element in m. Used to validate/clamp settings.Dynamic.TimeStep
// before a CentralDifference (conditionally stable) time integration.
func CriticalTimeStep(m *mesh.Mesh, lib *material.Library, safetyFactor float64) (float64, error) {
	dtCrit := math.Inf(1)
	for i := range m.Elements {
		e := &m.Elements[i]
		handle := m.ElementMaterial(e)
		mat, ok := lib.At(handle)
		if !ok {
			return 0, ferr.New(ferr.InvalidProperty, "solve: element %d has no material assigned", e.ID)
		}
		E, err := mat.Get("youngs_modulus")
		if err != nil {
			return 0, err
		}
		rho, err := mat.Get("density")
		if err != nil {
			return 0, err
		}
		h, err := minEdgeLength(m, e)
		if err != nil {
			return 0, err
		}
		c := math.Sqrt(E / rho)
		if dt := h / c; dt < dtCrit {
			dtCrit = dt
		}
	}
	return safetyFactor * dtCrit, nil
}

// minEdgeLength returns the shortest edge of e, per its kind's edge table.
func minEdgeLength(m *mesh.Mesh, e *mesh.Element) (float64, error) {
	var edges [][2]int
	switch e.Kind {
	case mesh.Hexa:
		edges = hexaEdges[:]
	case mesh.Tetra:
		edges = tetraEdges[:]
	default:
		return 0, ferr.New(ferr.InvalidMesh, "solve: no edge table for element %d kind %s", e.ID, e.Kind)
	}
	nodes := m.ElementNodes(e)
	minLen := math.Inf(1)
	for _, edge := range edges {
		a, b := nodes[edge[0]].Coords(), nodes[edge[1]].Coords()
		dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
		if length := math.Sqrt(dx*dx + dy*dy + dz*dz); length < minLen {
			minLen = length
		}
	}
	return minLen, nil
}
