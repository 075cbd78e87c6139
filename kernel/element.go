// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/snowmannn129/rebelcad-fea/mesh"
	"github.com/snowmannn129/rebelcad-fea/shp"
)

// volumeIps evaluates N, dNdx, |detJ| at every quadrature point of an
// element, the shared first step of every integral in this package.
type ipData struct {
	N    []float64
	dNdx [][]float64
	detJ float64
	w    float64
}

func volumeIps(kind mesh.Kind, coords [][3]float64, elementID int) ([]ipData, error) {
	ips, err := shp.Quadrature(kind)
	if err != nil {
		return nil, err
	}
	out := make([]ipData, len(ips))
	for i, ip := range ips {
		N, dN, err := shp.Eval(kind, ip.R, ip.S, ip.T)
		if err != nil {
			return nil, err
		}
		_, Jinv, detJ, err := shp.Jacobian(dN, coords, elementID, i)
		if err != nil {
			return nil, err
		}
		dNdx := shp.SpatialDerivs(dN, Jinv)
		out[i] = ipData{N: N, dNdx: dNdx, detJ: math.Abs(detJ), w: ip.W}
	}
	return out, nil
}

// StiffnessMatrix assembles Ke = sum_ip B^T D B |detJ| w for a mechanical
// element (spec.md §4.2 "Stiffness").
func StiffnessMatrix(kind mesh.Kind, coords [][3]float64, D [][]float64, elementID int) ([][]float64, error) {
	ips, err := volumeIps(kind, coords, elementID)
	if err != nil {
		return nil, err
	}
	n := len(coords)
	Ke := la.MatAlloc(3*n, 3*n)
	for _, ip := range ips {
		B := MechanicalB(ip.dNdx)
		BtDB(B, D, ip.detJ*ip.w, Ke)
	}
	return Ke, nil
}

// MassMatrix assembles the consistent mass matrix
// Me = sum_ip N^T N rho |detJ| w, expanded across the 3 translational DOFs
// per node (spec.md §4.2 "Mass").
func MassMatrix(kind mesh.Kind, coords [][3]float64, rho float64, elementID int) ([][]float64, error) {
	ips, err := volumeIps(kind, coords, elementID)
	if err != nil {
		return nil, err
	}
	n := len(coords)
	Me := la.MatAlloc(3*n, 3*n)
	for _, ip := range ips {
		coef := rho * ip.detJ * ip.w
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v := coef * ip.N[i] * ip.N[j]
				for a := 0; a < 3; a++ {
					Me[3*i+a][3*j+a] += v
				}
			}
		}
	}
	return Me, nil
}

// RayleighDamping builds Ce = alpha*Me + beta*Ke (spec.md §4.2 "Damping").
func RayleighDamping(Ke, Me [][]float64, alpha, beta float64) [][]float64 {
	n := len(Ke)
	Ce := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			Ce[i][j] = alpha*Me[i][j] + beta*Ke[i][j]
		}
	}
	return Ce
}

// ConductivityMatrix assembles Kte = sum_ip Bt^T Dt Bt |detJ| w for a
// thermal element (spec.md §4.2 "Thermal conductivity").
func ConductivityMatrix(kind mesh.Kind, coords [][3]float64, Dt [][]float64, elementID int) ([][]float64, error) {
	ips, err := volumeIps(kind, coords, elementID)
	if err != nil {
		return nil, err
	}
	n := len(coords)
	Kte := la.MatAlloc(n, n)
	for _, ip := range ips {
		Bt := ThermalB(ip.dNdx)
		BtDB(Bt, Dt, ip.detJ*ip.w, Kte)
	}
	return Kte, nil
}

// CapacityMatrix assembles Cte = sum_ip N^T N rho cp |detJ| w (spec.md §4.2
// "Thermal... capacity").
func CapacityMatrix(kind mesh.Kind, coords [][3]float64, rho, cp float64, elementID int) ([][]float64, error) {
	ips, err := volumeIps(kind, coords, elementID)
	if err != nil {
		return nil, err
	}
	n := len(coords)
	Cte := la.MatAlloc(n, n)
	for _, ip := range ips {
		NtN(ip.N, ip.detJ*ip.w, rho*cp, Cte)
	}
	return Cte, nil
}

// BodyForceVector assembles the nodal-equivalent load for a constant body
// force b (3-vector) over a mechanical element: fe = sum_ip N . b |detJ| w,
// expanded across the 3 translational DOFs per node (spec.md §4.2 "Load
// vector... body force").
func BodyForceVector(kind mesh.Kind, coords [][3]float64, b [3]float64, elementID int) ([]float64, error) {
	ips, err := volumeIps(kind, coords, elementID)
	if err != nil {
		return nil, err
	}
	n := len(coords)
	fe := make([]float64, 3*n)
	for _, ip := range ips {
		for i := 0; i < n; i++ {
			coef := ip.N[i] * ip.detJ * ip.w
			for a := 0; a < 3; a++ {
				fe[3*i+a] += coef * b[a]
			}
		}
	}
	return fe, nil
}

// HeatGenerationVector assembles the nodal-equivalent heat load for a
// constant volumetric heat generation rate q: fe = sum_ip N . q |detJ| w
// (spec.md §4.2 "Load vector... thermal heat generation").
func HeatGenerationVector(kind mesh.Kind, coords [][3]float64, q float64, elementID int) ([]float64, error) {
	ips, err := volumeIps(kind, coords, elementID)
	if err != nil {
		return nil, err
	}
	fe := make([]float64, len(coords))
	for _, ip := range ips {
		for i := range fe {
			fe[i] += ip.N[i] * q * ip.detJ * ip.w
		}
	}
	return fe, nil
}

// StrainAtCentroid computes engineering strain eps = B(0,0,0) . ue for a
// mechanical element, where ue is the element's local 3n displacement vector
// in local node order (spec.md §4.5 step 5: "strain at the element centroid
// via ε = B(0,0,0) uₑ").
func StrainAtCentroid(kind mesh.Kind, coords [][3]float64, ue []float64, elementID int) ([]float64, error) {
	_, dN, err := shp.Eval(kind, 0, 0, 0)
	if err != nil {
		return nil, err
	}
	_, Jinv, _, err := shp.Jacobian(dN, coords, elementID, -1)
	if err != nil {
		return nil, err
	}
	dNdx := shp.SpatialDerivs(dN, Jinv)
	B := MechanicalB(dNdx)
	eps := make([]float64, 6)
	for i := 0; i < 6; i++ {
		var sum float64
		for j := range ue {
			sum += B[i][j] * ue[j]
		}
		eps[i] = sum
	}
	return eps, nil
}

// Stress computes sigma = D . eps.
func Stress(D [][]float64, eps []float64) []float64 {
	sig := make([]float64, len(D))
	for i := range D {
		var sum float64
		for j, e := range eps {
			sum += D[i][j] * e
		}
		sig[i] = sum
	}
	return sig
}

// GeometricStiffness computes the initial-stress (geometric) contribution
// K_sigma for geometric non-linearity (spec.md §4.6): for each quadrature
// point, a 3x3 stress block sig3 is formed from the engineering-stress
// vector and contracted with the outer product of spatial shape-function
// derivatives, expanded across the 3 translational DOFs per node.
func GeometricStiffness(kind mesh.Kind, coords [][3]float64, sigma []float64, elementID int) ([][]float64, error) {
	ips, err := volumeIps(kind, coords, elementID)
	if err != nil {
		return nil, err
	}
	var sig3 [3][3]float64
	sig3[0][0], sig3[1][1], sig3[2][2] = sigma[0], sigma[1], sigma[2]
	sig3[0][1], sig3[1][0] = sigma[3], sigma[3]
	sig3[1][2], sig3[2][1] = sigma[4], sigma[4]
	sig3[0][2], sig3[2][0] = sigma[5], sigma[5]

	n := len(coords)
	Ksig := la.MatAlloc(3*n, 3*n)
	for _, ip := range ips {
		coef := ip.detJ * ip.w
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				var gij float64
				for a := 0; a < 3; a++ {
					for b := 0; b < 3; b++ {
						gij += ip.dNdx[i][a] * sig3[a][b] * ip.dNdx[j][b]
					}
				}
				gij *= coef
				for a := 0; a < 3; a++ {
					Ksig[3*i+a][3*j+a] += gij
				}
			}
		}
	}
	return Ksig, nil
}
