// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape functions, natural-coordinate derivatives,
// Jacobians, and quadrature rules (C4) as free functions keyed by mesh.Kind
// (Eval, EvalFacet, Jacobian, SpatialDerivs, FacetNormal, Quadrature,
// QuadratureFacet, NumNodes). PaddySchmidt-gofem/shp/shp.go's Shape struct
// and its registry-by-name Get(...) are not reproduced; the teacher's own
// shp/ package deferred concrete shape functions to an external
// NURBS-capable dependency this spec has no use for, so the volume/surface
// families spec.md §4.1 names are written directly here instead.
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/snowmannn129/rebelcad-fea/ferr"
	"github.com/snowmannn129/rebelcad-fea/mesh"
)

// MinDet is the minimum |det(J)| allowed at a quadrature point before the
// kernel reports DegenerateJacobian (spec.md §4.1).
const MinDet = 1.0e-10

// Ipoint is one quadrature (integration) point in natural coordinates plus
// its weight.
type Ipoint struct{ R, S, T, W float64 }

// NumNodes returns the node count this package's shape functions expect for
// kind, or an error if kind has no registered shape function.
func NumNodes(kind mesh.Kind) (int, error) {
	switch kind {
	case mesh.Tetra:
		return 4, nil
	case mesh.Hexa:
		return 8, nil
	case mesh.Triangle:
		return 3, nil
	case mesh.Quad:
		return 4, nil
	}
	return 0, chk.Err("shp: no shape function registered for kind %s", kind)
}

// Eval evaluates the shape-function vector N and its natural-coordinate
// derivative matrix dN (dN[node][0..gndim-1]) at (r,s,t) for a volume
// element kind (Tetra, Hexa). 2D facet kinds use EvalFacet instead.
func Eval(kind mesh.Kind, r, s, t float64) (N []float64, dN [][]float64, err error) {
	switch kind {
	case mesh.Tetra:
		return tetra4(r, s, t), tetra4Deriv(), nil
	case mesh.Hexa:
		return hexa8(r, s, t), hexa8Deriv(r, s, t), nil
	}
	return nil, nil, chk.Err("shp: Eval has no volume shape function for kind %s", kind)
}

// EvalFacet evaluates the shape-function vector N and its 2D natural-
// coordinate derivative matrix dN (dN[node][0..1]) at (r,s) for a surface
// facet kind (Triangle, Quad), used for pressure/convection/heat-flux load
// integration over element-group surfaces. nNodes selects the interpolation
// order actually present on the facet (3 or 6 for Triangle, 4 for Quad) -
// the caller reads it off the facet's own node count, since a single Kind
// covers more than one node count (spec.md §4.1 node-count table).
func EvalFacet(kind mesh.Kind, nNodes int, r, s float64) (N []float64, dN [][]float64, err error) {
	switch kind {
	case mesh.Triangle:
		if nNodes == 6 {
			return tri6(r, s), tri6Deriv(r, s), nil
		}
		return tri3(r, s), tri3Deriv(), nil
	case mesh.Quad:
		return quad4(r, s), quad4Deriv(r, s), nil
	}
	return nil, nil, chk.Err("shp: EvalFacet has no shape function for kind %s", kind)
}

// Tetra4 shape functions ------------------------------------------------------

func tetra4(r, s, t float64) []float64 {
	return []float64{1 - r - s - t, r, s, t}
}

func tetra4Deriv() [][]float64 {
	return [][]float64{
		{-1, -1, -1},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Hexa8 shape functions (trilinear) -------------------------------------------

var hexa8NatCoords = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

func hexa8(r, s, t float64) []float64 {
	N := make([]float64, 8)
	for i, c := range hexa8NatCoords {
		N[i] = 0.125 * (1 + r*c[0]) * (1 + s*c[1]) * (1 + t*c[2])
	}
	return N
}

func hexa8Deriv(r, s, t float64) [][]float64 {
	dN := la.MatAlloc(8, 3)
	for i, c := range hexa8NatCoords {
		dN[i][0] = 0.125 * c[0] * (1 + s*c[1]) * (1 + t*c[2])
		dN[i][1] = 0.125 * c[1] * (1 + r*c[0]) * (1 + t*c[2])
		dN[i][2] = 0.125 * c[2] * (1 + r*c[0]) * (1 + s*c[1])
	}
	return dN
}

// Tri3 shape functions ---------------------------------------------------------

func tri3(r, s float64) []float64 {
	return []float64{1 - r - s, r, s}
}

func tri3Deriv() [][]float64 {
	return [][]float64{{-1, -1}, {1, 0}, {0, 1}}
}

// Tri6 (quadratic triangle) shape functions -----------------------------------

func tri6(r, s float64) []float64 {
	l1, l2, l3 := 1-r-s, r, s
	return []float64{
		l1 * (2*l1 - 1),
		l2 * (2*l2 - 1),
		l3 * (2*l3 - 1),
		4 * l1 * l2,
		4 * l2 * l3,
		4 * l3 * l1,
	}
}

func tri6Deriv(r, s float64) [][]float64 {
	l1, l2, l3 := 1-r-s, r, s
	dN := la.MatAlloc(6, 2)
	dN[0][0], dN[0][1] = -(4*l1 - 1), -(4*l1 - 1)
	dN[1][0], dN[1][1] = 4*l2-1, 0
	dN[2][0], dN[2][1] = 0, 4*l3-1
	dN[3][0], dN[3][1] = 4*(l1-l2), -4*l2
	dN[4][0], dN[4][1] = 4*l3, 4*l2
	dN[5][0], dN[5][1] = -4*l3, 4*(l1-l3)
	return dN
}

// Quad4 shape functions (bilinear) --------------------------------------------

var quad4NatCoords = [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

func quad4(r, s float64) []float64 {
	N := make([]float64, 4)
	for i, c := range quad4NatCoords {
		N[i] = 0.25 * (1 + r*c[0]) * (1 + s*c[1])
	}
	return N
}

func quad4Deriv(r, s float64) [][]float64 {
	dN := la.MatAlloc(4, 2)
	for i, c := range quad4NatCoords {
		dN[i][0] = 0.25 * c[0] * (1 + s*c[1])
		dN[i][1] = 0.25 * c[1] * (1 + r*c[0])
	}
	return dN
}

// Quadrature -------------------------------------------------------------------

const oneOverSqrt3 = 0.5773502691896258

// Quadrature returns the minimum Gauss-quadrature rule spec.md §4.1 names
// for a volume element kind.
func Quadrature(kind mesh.Kind) ([]Ipoint, error) {
	switch kind {
	case mesh.Tetra:
		return []Ipoint{{R: 0.25, S: 0.25, T: 0.25, W: 1.0 / 6.0}}, nil
	case mesh.Hexa:
		var ips []Ipoint
		for _, r := range []float64{-oneOverSqrt3, oneOverSqrt3} {
			for _, s := range []float64{-oneOverSqrt3, oneOverSqrt3} {
				for _, t := range []float64{-oneOverSqrt3, oneOverSqrt3} {
					ips = append(ips, Ipoint{R: r, S: s, T: t, W: 1.0})
				}
			}
		}
		return ips, nil
	}
	return nil, chk.Err("shp: no volume quadrature rule registered for kind %s", kind)
}

// QuadratureFacet returns the minimum rule for a surface facet kind.
func QuadratureFacet(kind mesh.Kind) ([]Ipoint, error) {
	switch kind {
	case mesh.Triangle:
		const a, b = 1.0 / 6.0, 2.0 / 3.0
		return []Ipoint{
			{R: a, S: a, W: 1.0 / 6.0},
			{R: b, S: a, W: 1.0 / 6.0},
			{R: a, S: b, W: 1.0 / 6.0},
		}, nil
	case mesh.Quad:
		var ips []Ipoint
		for _, r := range []float64{-oneOverSqrt3, oneOverSqrt3} {
			for _, s := range []float64{-oneOverSqrt3, oneOverSqrt3} {
				ips = append(ips, Ipoint{R: r, S: s, W: 1.0})
			}
		}
		return ips, nil
	}
	return nil, chk.Err("shp: no facet quadrature rule registered for kind %s", kind)
}

// Jacobian computes J = sum_i dN_i^T . x_i (3x3), its determinant, and its
// inverse, for a volume element. coords is the element's node positions in
// local node order. It returns ferr.DegenerateJac if |det(J)| <= MinDet.
func Jacobian(dN [][]float64, coords [][3]float64, elementID, ipIndex int) (J [3][3]float64, Jinv [3][3]float64, detJ float64, err error) {
	for n := range dN {
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				J[a][b] += dN[n][a] * coords[n][b]
			}
		}
	}
	detJ = J[0][0]*(J[1][1]*J[2][2]-J[1][2]*J[2][1]) -
		J[0][1]*(J[1][0]*J[2][2]-J[1][2]*J[2][0]) +
		J[0][2]*(J[1][0]*J[2][1]-J[1][1]*J[2][0])
	if math.Abs(detJ) <= MinDet {
		return J, Jinv, detJ, ferr.DegenerateJac(detJ, elementID, ipIndex)
	}
	inv := 1.0 / detJ
	Jinv[0][0] = inv * (J[1][1]*J[2][2] - J[1][2]*J[2][1])
	Jinv[0][1] = inv * (J[0][2]*J[2][1] - J[0][1]*J[2][2])
	Jinv[0][2] = inv * (J[0][1]*J[1][2] - J[0][2]*J[1][1])
	Jinv[1][0] = inv * (J[1][2]*J[2][0] - J[1][0]*J[2][2])
	Jinv[1][1] = inv * (J[0][0]*J[2][2] - J[0][2]*J[2][0])
	Jinv[1][2] = inv * (J[0][2]*J[1][0] - J[0][0]*J[1][2])
	Jinv[2][0] = inv * (J[1][0]*J[2][1] - J[1][1]*J[2][0])
	Jinv[2][1] = inv * (J[0][1]*J[2][0] - J[0][0]*J[2][1])
	Jinv[2][2] = inv * (J[0][0]*J[1][1] - J[0][1]*J[1][0])
	return J, Jinv, detJ, nil
}

// SpatialDerivs converts natural-coordinate derivatives dN into spatial
// (physical x,y,z) derivatives using dN/dx = Jinv . dN/dr (Jinv is already
// the transpose of the conventional dx/dr Jacobian's inverse, since
// Jacobian's J[a][b] = d(coord_b)/d(xi_a) rather than d(coord_a)/d(xi_b)).
func SpatialDerivs(dN [][]float64, Jinv [3][3]float64) [][]float64 {
	out := la.MatAlloc(len(dN), 3)
	for n := range dN {
		for a := 0; a < 3; a++ {
			var sum float64
			for b := 0; b < 3; b++ {
				sum += Jinv[a][b] * dN[n][b]
			}
			out[n][a] = sum
		}
	}
	return out
}

// FacetNormal computes the (non-unit) outward normal and its magnitude (the
// surface Jacobian determinant analogue) at a facet quadrature point, from
// the cross product of the two tangent basis vectors spanned by dN (facet
// natural derivatives) and coords (spec.md §4.2).
func FacetNormal(dN [][]float64, coords [][3]float64) (normal [3]float64, area float64) {
	var t1, t2 [3]float64
	for n := range dN {
		for a := 0; a < 3; a++ {
			t1[a] += dN[n][0] * coords[n][a]
			t2[a] += dN[n][1] * coords[n][a]
		}
	}
	normal[0] = t1[1]*t2[2] - t1[2]*t2[1]
	normal[1] = t1[2]*t2[0] - t1[0]*t2[2]
	normal[2] = t1[0]*t2[1] - t1[1]*t2[0]
	area = math.Sqrt(normal[0]*normal[0] + normal[1]*normal[1] + normal[2]*normal[2])
	return
}
