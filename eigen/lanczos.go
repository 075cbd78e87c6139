// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eigen

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/snowmannn129/rebelcad-fea/linsolve"
)

// Result is one solved mode: natural frequency (rad/s and Hz), period, and
// the mass-normalized mode shape (spec.md §4.7: "ω_i = √λ_i, f_i = ω_i/(2π),
// T_i = 1/f_i").
type Result struct {
	Omega float64
	Freq  float64
	Period float64
	Lambda float64
	Phi    []float64 // mass-normalized: Phi^T M Phi = 1
}

func mDot(u, v []float64, M [][]float64) float64 {
	Mv := la.VecAlloc(len(v))
	la.MatVecMul(Mv, 1, M, v)
	var sum float64
	for i := range u {
		sum += u[i] * Mv[i]
	}
	return sum
}

func normalizeMass(phi []float64, M [][]float64) {
	norm := math.Sqrt(mDot(phi, phi, M))
	if norm == 0 {
		return
	}
	for i := range phi {
		phi[i] /= norm
	}
}

func finalizeResults(lambdas []float64, phis [][]float64, numModes int) []Result {
	results := make([]Result, 0, numModes)
	for i := 0; i < len(lambdas) && i < numModes; i++ {
		lam := lambdas[i]
		if lam < 0 {
			lam = 0 // guards against roundoff producing a tiny negative rigid-body eigenvalue
		}
		omega := math.Sqrt(lam)
		freq := omega / (2 * math.Pi)
		var period float64
		if freq > 0 {
			period = 1 / freq
		}
		results = append(results, Result{Omega: omega, Freq: freq, Period: period, Lambda: lam, Phi: phis[i]})
	}
	return results
}

// Lanczos solves Kφ=λMφ for the lowest numModes eigenpairs via single-
// vector Lanczos iteration on the operator A = K⁻¹M (shift-invert around
// zero, standard for "lowest modes" since the smallest λ of the original
// problem are the largest 1/λ of A), with full reorthogonalization against
// previously built Lanczos vectors (spec.md §4.7's default back end).
func Lanczos(K, M [][]float64, numModes int) ([]Result, error) {
	n := len(K)
	var d linsolve.Direct
	if err := d.Factorize(K); err != nil {
		return nil, err
	}

	m := 2*numModes + 8
	if m > n {
		m = n
	}

	V := make([][]float64, m) // Lanczos vectors (M-orthonormal)
	alpha := make([]float64, m)
	beta := make([]float64, m) // beta[i] connects V[i] and V[i+1]

	v0 := make([]float64, n)
	for i := range v0 {
		v0[i] = 1.0 / math.Sqrt(float64(n)) // deterministic starting vector (no randomness allowed here)
	}
	normalizeMass(v0, M)
	V[0] = v0

	var vPrev []float64
	betaPrev := 0.0
	for j := 0; j < m; j++ {
		Mv := la.VecAlloc(n)
		la.MatVecMul(Mv, 1, M, V[j])
		w := d.Solve(Mv)
		if vPrev != nil {
			for i := range w {
				w[i] -= betaPrev * vPrev[i]
			}
		}
		alpha[j] = mDot(w, V[j], M)
		for i := range w {
			w[i] -= alpha[j] * V[j][i]
		}
		// full reorthogonalization against every prior Lanczos vector
		for k := 0; k <= j; k++ {
			c := mDot(w, V[k], M)
			for i := range w {
				w[i] -= c * V[k][i]
			}
		}
		nrm := math.Sqrt(mDot(w, w, M))
		if j+1 < m {
			beta[j] = nrm
			if nrm < 1e-13 {
				m = j + 1
				break
			}
			for i := range w {
				w[i] /= nrm
			}
			V[j+1] = w
			vPrev = V[j]
			betaPrev = nrm
		}
	}
	V = V[:m]
	alpha = alpha[:m]

	// assemble and solve the m x m tridiagonal Ritz problem
	T := make([][]float64, m)
	for i := range T {
		T[i] = make([]float64, m)
		T[i][i] = alpha[i]
		if i+1 < m {
			T[i][i+1] = beta[i]
			T[i+1][i] = beta[i]
		}
	}
	mus, S := JacobiEigen(T)

	// mus ascending; largest mu => smallest lambda = 1/mu
	lambdas := make([]float64, 0, numModes)
	phis := make([][]float64, 0, numModes)
	for idx := m - 1; idx >= 0 && len(lambdas) < numModes; idx-- {
		mu := mus[idx]
		if mu <= 1e-300 {
			continue
		}
		lambda := 1.0 / mu
		phi := make([]float64, n)
		for k := 0; k < m; k++ {
			s := S[k][idx]
			for i := 0; i < n; i++ {
				phi[i] += s * V[k][i]
			}
		}
		normalizeMass(phi, M)
		lambdas = append(lambdas, lambda)
		phis = append(phis, phi)
	}
	return finalizeResults(lambdas, phis, numModes), nil
}
