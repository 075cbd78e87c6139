// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eigen

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/snowmannn129/rebelcad-fea/linsolve"
)

// SubspaceIteration solves Kφ=λMφ for the lowest numModes eigenpairs via
// Bathe's subspace iteration: a block of p = numModes + min(numModes, 8)
// trial vectors is repeatedly advanced by Z = K⁻¹MX, projected onto the
// small p x p reduced eigenproblem, and rotated onto its Ritz basis, until
// the Ritz eigenvalues stop moving (spec.md §4.7).
func SubspaceIteration(K, M [][]float64, numModes, maxIter int, tol float64) ([]Result, error) {
	n := len(K)
	var d linsolve.Direct
	if err := d.Factorize(K); err != nil {
		return nil, err
	}

	extra := numModes
	if extra > 8 {
		extra = 8
	}
	p := numModes + extra
	if p > n {
		p = n
	}

	// deterministic starting basis: p unit vectors spread across the DOF
	// range plus a constant vector (approximates a rigid-body component),
	// since no randomness is available in this exercise's orchestration
	// layer.
	X := make([][]float64, p)
	for j := 0; j < p; j++ {
		X[j] = make([]float64, n)
		if j == 0 {
			for i := range X[j] {
				X[j][i] = 1
			}
			continue
		}
		stride := n / p
		if stride < 1 {
			stride = 1
		}
		idx := (j * stride) % n
		X[j][idx] = 1
	}

	prevVals := make([]float64, p)
	for iter := 0; iter < maxIter; iter++ {
		Z := make([][]float64, p)
		for j := 0; j < p; j++ {
			MX := la.VecAlloc(n)
			la.MatVecMul(MX, 1, M, X[j])
			Z[j] = d.Solve(MX)
		}
		Kp := project(Z, K, Z)
		Mp := project(Z, M, Z)
		invSqrtMp := sqrtInvSPD(Mp)
		A := matMulSquare(matMulSquare(invSqrtMp, Kp), invSqrtMp)
		vals, Svecs := JacobiEigen(A)
		// recover generalized eigenvectors: Q = invSqrtMp * Svecs
		Q := matMulSquare(invSqrtMp, Svecs)
		X = blockVecMul(Z, Q)

		converged := true
		for j := 0; j < p; j++ {
			if math.Abs(vals[j]-prevVals[j]) > tol*math.Max(1, math.Abs(vals[j])) {
				converged = false
			}
		}
		prevVals = vals
		if converged && iter > 0 {
			break
		}
	}

	lambdas := make([]float64, 0, numModes)
	phis := make([][]float64, 0, numModes)
	for j := 0; j < p && len(lambdas) < numModes; j++ {
		phi := append([]float64(nil), X[j]...)
		normalizeMass(phi, M)
		lambdas = append(lambdas, prevVals[j])
		phis = append(phis, phi)
	}
	return finalizeResults(lambdas, phis, numModes), nil
}
