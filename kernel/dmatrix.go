// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kernel implements the per-element B-matrix/D-matrix/quadrature
// integration kernels (C4), on top of shp's shape functions and Jacobians.
// Grounded on mdl/solid/elasticity.go's isotropic D-matrix formula and
// msolid/onedlinelast.go's constitutive-matrix construction style.
package kernel

import "github.com/cpmech/gosl/la"

// IsotropicD builds the classical 6x6 linear-elastic constitutive matrix for
// an isotropic material, engineering-strain ordered
// [exx, eyy, ezz, gxy, gyz, gxz] (spec.md §4.1).
func IsotropicD(E, nu float64) [][]float64 {
	c := E / ((1 + nu) * (1 - 2*nu))
	a := c * (1 - nu)
	b := c * nu
	g := c * (1 - 2*nu) / 2
	D := la.MatAlloc(6, 6)
	D[0][0], D[0][1], D[0][2] = a, b, b
	D[1][0], D[1][1], D[1][2] = b, a, b
	D[2][0], D[2][1], D[2][2] = b, b, a
	D[3][3] = g
	D[4][4] = g
	D[5][5] = g
	return D
}

// IsotropicThermalD builds the diagonal 3x3 thermal constitutive matrix
// k*I3 for an isotropic conductor (spec.md §4.1).
func IsotropicThermalD(k float64) [][]float64 {
	D := la.MatAlloc(3, 3)
	D[0][0], D[1][1], D[2][2] = k, k, k
	return D
}
