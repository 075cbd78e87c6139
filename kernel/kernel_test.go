// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/snowmannn129/rebelcad-fea/mesh"
)

var unitCube = [8][3]float64{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

func cubeCoords() [][3]float64 {
	c := make([][3]float64, 8)
	for i, v := range unitCube {
		c[i] = v
	}
	return c
}

func Test_kernel01(tst *testing.T) {
	chk.PrintTitle("kernel01: unit-cube stiffness matrix is symmetric")
	D := IsotropicD(210e9, 0.3)
	Ke, err := StiffnessMatrix(mesh.Hexa, cubeCoords(), D, 0)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	n := len(Ke)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(Ke[i][j]-Ke[j][i]) > 1e-6 {
				tst.Fatalf("Ke not symmetric at (%d,%d): %g vs %g", i, j, Ke[i][j], Ke[j][i])
			}
		}
	}
}

// Test_kernel02 checks the unit-cube uniaxial tension scenario (spec.md §8
// scenario 1): a unit-cube Hexa, E=210e9, nu=0.3, x=0 face fixed in x, a
// unit traction sigma_xx=1 Pa applied on the x=1 face. The analytical
// solution is a uniform strain state eps_xx = sigma/E with zero shear, so
// recovering stress from that assumed displacement field must return
// sigma_xx ~= 1 Pa through D . B . u.
func Test_kernel02(tst *testing.T) {
	chk.PrintTitle("kernel02: unit-cube tension stress recovery matches applied traction")
	E, nu := 210e9, 0.3
	D := IsotropicD(E, nu)
	epsXX := 1.0 / E
	epsYY := -nu * epsXX
	epsZZ := -nu * epsXX
	// displacement field consistent with the uniform strain state above:
	// u_x = epsXX*x, u_y = epsYY*y, u_z = epsZZ*z
	ue := make([]float64, 24)
	for i, v := range unitCube {
		ue[3*i+0] = epsXX * v[0]
		ue[3*i+1] = epsYY * v[1]
		ue[3*i+2] = epsZZ * v[2]
	}
	eps, err := StrainAtCentroid(mesh.Hexa, cubeCoords(), ue, 0)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	chk.Scalar(tst, "eps_xx", 1e-14, eps[0], epsXX)
	chk.Scalar(tst, "eps_yy", 1e-14, eps[1], epsYY)
	chk.Scalar(tst, "eps_zz", 1e-14, eps[2], epsZZ)
	sig := Stress(D, eps)
	chk.Scalar(tst, "sigma_xx", 1e-6, sig[0], 1.0)
	chk.Scalar(tst, "sigma_yy", 1e-6, sig[1], 0.0)
	chk.Scalar(tst, "sigma_zz", 1e-6, sig[2], 0.0)
}

func Test_kernel03(tst *testing.T) {
	chk.PrintTitle("kernel03: mass matrix total translational mass equals rho*volume")
	rho := 7850.0
	Me, err := MassMatrix(mesh.Hexa, cubeCoords(), rho, 0)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	// sum of every entry in one translational block (x-dofs only) equals
	// rho*volume, since sum_i sum_j N_i N_j integrates to the volume.
	var sum float64
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			sum += Me[3*i][3*j]
		}
	}
	chk.Scalar(tst, "sum(Me x-block)", 1e-6, sum, rho*1.0)
}

func Test_kernel04(tst *testing.T) {
	chk.PrintTitle("kernel04: conductivity matrix rows sum to zero (rigid heat mode)")
	Dt := IsotropicThermalD(45.0)
	Kte, err := ConductivityMatrix(mesh.Hexa, cubeCoords(), Dt, 0)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	for i := 0; i < 8; i++ {
		var rowSum float64
		for j := 0; j < 8; j++ {
			rowSum += Kte[i][j]
		}
		chk.Scalar(tst, "Kte row sum", 1e-6, rowSum, 0.0)
	}
}

func Test_kernel05(tst *testing.T) {
	chk.PrintTitle("kernel05: body force vector totals rho*g*volume")
	fe, err := BodyForceVector(mesh.Hexa, cubeCoords(), [3]float64{0, 0, -9810.0}, 0)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	var totalZ float64
	for i := 0; i < 8; i++ {
		totalZ += fe[3*i+2]
	}
	chk.Scalar(tst, "sum(fz)", 1e-6, totalZ, -9810.0)
}

// Test_kernel06 is a constant-strain patch test on a skewed, non-axis-aligned
// Hexa (a parallelepiped, the linear image of the unit cube under M, so the
// trilinear map stays affine and the test is exact). The nodal displacements
// are sampled from a single linear field u=A.x for a general (non-symmetric,
// non-diagonal) A; StrainAtCentroid must recover the engineering strain
// implied by A's symmetric part exactly, regardless of the element's
// orientation. This guards shp.SpatialDerivs's dN/dx=Jinv.dN/dr transform:
// an erroneous extra transpose of Jinv cancels out on axis-aligned elements
// (where J/Jinv are diagonal) but corrupts the gradient on a skewed one.
func Test_kernel06(tst *testing.T) {
	chk.PrintTitle("kernel06: skewed-element constant-strain patch test")
	M := [3][3]float64{
		{1.0, 0.3, 0.2},
		{0.1, 1.2, 0.15},
		{0.05, 0.1, 0.9},
	}
	A := [3][3]float64{
		{0.0020, -0.0010, 0.0015},
		{0.0008, 0.0030, -0.0012},
		{0.0005, 0.0007, 0.0025},
	}
	coords := make([][3]float64, 8)
	ue := make([]float64, 24)
	for i, v := range unitCube {
		var x [3]float64
		for a := 0; a < 3; a++ {
			x[a] = M[a][0]*v[0] + M[a][1]*v[1] + M[a][2]*v[2]
		}
		coords[i] = x
		for k := 0; k < 3; k++ {
			ue[3*i+k] = A[k][0]*x[0] + A[k][1]*x[1] + A[k][2]*x[2]
		}
	}

	eps, err := StrainAtCentroid(mesh.Hexa, coords, ue, 0)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	want := []float64{
		A[0][0], A[1][1], A[2][2],
		A[0][1] + A[1][0],
		A[1][2] + A[2][1],
		A[0][2] + A[2][0],
	}
	names := []string{"eps_xx", "eps_yy", "eps_zz", "gamma_xy", "gamma_yz", "gamma_xz"}
	for i, name := range names {
		chk.Scalar(tst, name, 1e-9, eps[i], want[i])
	}
}
