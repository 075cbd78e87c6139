// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eigen

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// springMassKM returns a 2-dof K/M pair whose analytical eigenvalues are
// (3±√5)/2 (classical 2-spring-mass chain with M=I).
func springMassKM() ([][]float64, [][]float64) {
	K := la.MatAlloc(2, 2)
	K[0][0], K[0][1] = 2, -1
	K[1][0], K[1][1] = -1, 1
	M := la.MatAlloc(2, 2)
	M[0][0], M[1][1] = 1, 1
	return K, M
}

func checkModes(tst *testing.T, results []Result, M [][]float64) {
	if len(results) != 2 {
		tst.Fatalf("expected 2 modes, got %d", len(results))
	}
	lamLo := (3 - math.Sqrt(5)) / 2
	lamHi := (3 + math.Sqrt(5)) / 2
	if results[0].Lambda > results[1].Lambda {
		tst.Fatalf("eigenvalues not ascending: %v", results)
	}
	chk.Scalar(tst, "lambda_1", 1e-6, results[0].Lambda, lamLo)
	chk.Scalar(tst, "lambda_2", 1e-6, results[1].Lambda, lamHi)
	for i, r := range results {
		norm := mDot(r.Phi, r.Phi, M)
		chk.Scalar(tst, "mass-normalized phi^T M phi", 1e-6, norm, 1.0)
		if r.Omega <= 0 && r.Lambda > 1e-12 {
			tst.Errorf("mode %d: omega should be positive for a positive eigenvalue", i)
		}
	}
}

func Test_eigen01(tst *testing.T) {
	chk.PrintTitle("eigen01: Lanczos recovers the 2-dof spring-mass spectrum")
	K, M := springMassKM()
	results, err := Lanczos(K, M, 2)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	checkModes(tst, results, M)
}

func Test_eigen02(tst *testing.T) {
	chk.PrintTitle("eigen02: subspace iteration recovers the 2-dof spring-mass spectrum")
	K, M := springMassKM()
	results, err := SubspaceIteration(K, M, 2, 100, 1e-10)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	checkModes(tst, results, M)
}

func Test_eigen03(tst *testing.T) {
	chk.PrintTitle("eigen03: power iteration recovers the 2-dof spring-mass spectrum")
	K, M := springMassKM()
	results, err := PowerIteration(K, M, 2, 200, 1e-12)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	checkModes(tst, results, M)
}

func Test_eigen04(tst *testing.T) {
	chk.PrintTitle("eigen04: JacobiEigen diagonalizes a small symmetric matrix")
	A := la.MatAlloc(3, 3)
	A[0][0], A[0][1], A[0][2] = 2, 0, 0
	A[1][0], A[1][1], A[1][2] = 0, 3, 0
	A[2][0], A[2][1], A[2][2] = 0, 0, 1
	vals, _ := JacobiEigen(A)
	chk.Scalar(tst, "val0", 1e-9, vals[0], 1)
	chk.Scalar(tst, "val1", 1e-9, vals[1], 2)
	chk.Scalar(tst, "val2", 1e-9, vals[2], 3)
}
