// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package eigen implements the generalized eigenproblem back end (C8):
// Kφ=λMφ via Lanczos (default), subspace iteration, or power iteration, for
// the lowest num_modes eigenpairs (spec.md §4.7). No pack repository
// performs modal analysis (gofem is a quasi-static/transient geomechanics
// code), so these algorithms are hand-rolled against gosl/la storage
// (DESIGN.md "C8").
package eigen

import "math"

// JacobiEigen computes the full eigendecomposition of a small dense
// symmetric matrix A (n small — this is used on reduced Krylov/subspace
// problems, not the full system) via the classical cyclic Jacobi rotation
// method. Returns eigenvalues ascending and the matching eigenvectors as
// columns of V (A = V Λ Vᵀ).
func JacobiEigen(A [][]float64) (vals []float64, V [][]float64) {
	n := len(A)
	a := make([][]float64, n)
	for i := range a {
		a[i] = append([]float64(nil), A[i]...)
	}
	V = make([][]float64, n)
	for i := range V {
		V[i] = make([]float64, n)
		V[i][i] = 1
	}

	const maxSweeps = 100
	for sweep := 0; sweep < maxSweeps; sweep++ {
		off := 0.0
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				off += a[p][q] * a[p][q]
			}
		}
		if off < 1e-24 {
			break
		}
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				if math.Abs(a[p][q]) < 1e-300 {
					continue
				}
				theta := (a[q][q] - a[p][p]) / (2 * a[p][q])
				t := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(1+theta*theta))
				c := 1 / math.Sqrt(1+t*t)
				s := t * c
				app, aqq, apq := a[p][p], a[q][q], a[p][q]
				a[p][p] = app - t*apq
				a[q][q] = aqq + t*apq
				a[p][q] = 0
				a[q][p] = 0
				for i := 0; i < n; i++ {
					if i != p && i != q {
						aip, aiq := a[i][p], a[i][q]
						a[i][p] = c*aip - s*aiq
						a[p][i] = a[i][p]
						a[i][q] = s*aip + c*aiq
						a[q][i] = a[i][q]
					}
					vip, viq := V[i][p], V[i][q]
					V[i][p] = c*vip - s*viq
					V[i][q] = s*vip + c*viq
				}
			}
		}
	}

	vals = make([]float64, n)
	for i := range vals {
		vals[i] = a[i][i]
	}
	// sort ascending, carrying eigenvectors along
	for i := 0; i < n; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			if vals[j] < vals[minIdx] {
				minIdx = j
			}
		}
		if minIdx != i {
			vals[i], vals[minIdx] = vals[minIdx], vals[i]
			for r := 0; r < n; r++ {
				V[r][i], V[r][minIdx] = V[r][minIdx], V[r][i]
			}
		}
	}
	return vals, V
}
