// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "github.com/cpmech/gosl/la"

// MechanicalB packs per-node spatial derivatives dNdx ([n][3]) into the
// 6x(3n) strain-displacement operator, rows ordered as engineering strain
// [exx, eyy, ezz, gxy, gyz, gxz] (spec.md §4.1).
func MechanicalB(dNdx [][]float64) [][]float64 {
	n := len(dNdx)
	B := la.MatAlloc(6, 3*n)
	for i, d := range dNdx {
		dx, dy, dz := d[0], d[1], d[2]
		c := 3 * i
		B[0][c+0] = dx
		B[1][c+1] = dy
		B[2][c+2] = dz
		B[3][c+0] = dy
		B[3][c+1] = dx
		B[4][c+1] = dz
		B[4][c+2] = dy
		B[5][c+0] = dz
		B[5][c+2] = dx
	}
	return B
}

// ThermalB stacks the three spatial derivatives of each shape function into
// the 3xn thermal strain-gradient operator (spec.md §4.1).
func ThermalB(dNdx [][]float64) [][]float64 {
	n := len(dNdx)
	B := la.MatAlloc(3, n)
	for i, d := range dNdx {
		B[0][i] = d[0]
		B[1][i] = d[1]
		B[2][i] = d[2]
	}
	return B
}

// BtDB computes Bt . D . B, an (3n)x(3n) or nxn matrix depending on B's
// column count, accumulated with weight w into out (out += w * Bt D B).
func BtDB(B, D [][]float64, w float64, out [][]float64) {
	rows, cols := len(D), len(B[0])
	// tmp = D . B  (rows x cols)
	tmp := la.MatAlloc(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var sum float64
			for k := 0; k < len(D[0]); k++ {
				sum += D[i][k] * B[k][j]
			}
			tmp[i][j] = sum
		}
	}
	// out += w * B^T . tmp
	for i := 0; i < cols; i++ {
		for j := 0; j < cols; j++ {
			var sum float64
			for k := 0; k < rows; k++ {
				sum += B[k][i] * tmp[k][j]
			}
			out[i][j] += w * sum
		}
	}
}

// NtN computes N^T . N, scaled by w and a scalar coefficient coef, into
// out (out += w * coef * N^T N), used for mass and capacity matrices.
func NtN(N []float64, w, coef float64, out [][]float64) {
	for i := range N {
		for j := range N {
			out[i][j] += w * coef * N[i] * N[j]
		}
	}
}
