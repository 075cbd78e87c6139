// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package result

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/snowmannn129/rebelcad-fea/eigen"
)

// principalValues eigen-decomposes the symmetric 3x3 tensor built from
// diagonal d and off-diagonal off = {xy, yz, xz}, returning the three
// eigenvalues sorted descending (spec.md §4.6 step 5: "principal invariants
// by eigen-decomposition of the 3x3 stress tensor, sorted descending"). It
// reuses eigen.JacobiEigen (grounded on the C8 eigensolver) rather than a
// second hand-rolled 3x3 solver, since JacobiEigen already handles any
// small dense symmetric matrix.
func principalValues(d, off [3]float64) (p1, p2, p3 float64) {
	T := la.MatAlloc(3, 3)
	T[0][0], T[1][1], T[2][2] = d[0], d[1], d[2]
	T[0][1], T[1][0] = off[0], off[0]
	T[1][2], T[2][1] = off[1], off[1]
	T[0][2], T[2][0] = off[2], off[2]
	vals, _ := eigen.JacobiEigen(T)
	return vals[2], vals[1], vals[0]
}

// PrincipalStress builds a Stress record from an elemID and an engineering
// stress vector [xx, yy, zz, xy, yz, xz] (kernel.Stress's ordering),
// computing the principal invariants, von Mises equivalent, and maximum
// shear per spec.md §4.6 step 5.
func PrincipalStress(elemID int, sigma []float64) Stress {
	sI, sII, sIII := principalValues(
		[3]float64{sigma[0], sigma[1], sigma[2]},
		[3]float64{sigma[3], sigma[4], sigma[5]},
	)
	vm := math.Sqrt(0.5 * ((sI-sII)*(sI-sII) + (sII-sIII)*(sII-sIII) + (sIII-sI)*(sIII-sI)))
	return Stress{
		ElemID: elemID,
		Sxx:    sigma[0], Syy: sigma[1], Szz: sigma[2],
		Sxy: sigma[3], Syz: sigma[4], Sxz: sigma[5],
		VonMises: vm,
		SigmaI:   sI, SigmaII: sII, SigmaIII: sIII,
		TauMax: (sI - sIII) / 2,
	}
}

// PrincipalStrain builds a Strain record from an elemID and an engineering
// strain vector [xx, yy, zz, gxy, gyz, gxz]. The tensor shear components
// used for the eigen-decomposition are half the engineering shears
// (gamma/2), the standard strain-tensor convention, so the recovered
// principal strains and GammaMaxHalf are geometrically consistent.
func PrincipalStrain(elemID int, eps []float64) Strain {
	eI, eII, eIII := principalValues(
		[3]float64{eps[0], eps[1], eps[2]},
		[3]float64{eps[3] / 2, eps[4] / 2, eps[5] / 2},
	)
	return Strain{
		ElemID: elemID,
		Exx:    eps[0], Eyy: eps[1], Ezz: eps[2],
		Exy: eps[3], Eyz: eps[4], Exz: eps[5],
		EpsI: eI, EpsII: eII, EpsIII: eIII,
		GammaMaxHalf: (eI - eIII) / 2,
	}
}
