// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assembly

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/snowmannn129/rebelcad-fea/material"
	"github.com/snowmannn129/rebelcad-fea/mesh"
)

// unitCubeMesh builds the spec.md §8 scenario-1 single-Hexa unit cube, DOFs
// assigned, material library with one isotropic steel-like entry.
func unitCubeMesh(tst *testing.T) (*mesh.Mesh, *material.Library) {
	coords := [8][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	m := mesh.New()
	for i, c := range coords {
		if err := m.AddNode(mesh.Node{ID: i, X: c[0], Y: c[1], Z: c[2]}); err != nil {
			tst.Fatalf("%v", err)
		}
	}
	nodeIDs := []int{0, 1, 2, 3, 4, 5, 6, 7}
	if err := m.AddElement(mesh.Element{ID: 0, Kind: mesh.Hexa, NodeIDs: nodeIDs, Material: 0}); err != nil {
		tst.Fatalf("%v", err)
	}
	if err := m.AssignDofs(3); err != nil {
		tst.Fatalf("%v", err)
	}
	lib := material.NewLibrary()
	mat, err := material.IsotropicDefaults("steel", 210e9, 0.3, 7850.0)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	mat.Props["specific_heat"] = 486.0
	mat.Props["thermal_conductivity"] = 45.0
	if _, err := lib.Add(mat); err != nil {
		tst.Fatalf("%v", err)
	}
	return m, lib
}

// reversedElementMesh rebuilds the same cube with its nodes added in reverse
// order (ids 7 down to 0, keeping the same ids, coordinates and element
// connectivity), used to exercise assembly order independence at the
// DOF-list level.
func reversedElementMesh(tst *testing.T, m *mesh.Mesh) *mesh.Mesh {
	coords := [8][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	m2 := mesh.New()
	// add nodes in reverse id-assignment order, but keep the same ids so the
	// resulting global DOF numbering is identical regardless of the AddNode
	// call sequence (spec.md §8 invariant 2 operates over element iteration
	// order, not node insertion order).
	order := []int{7, 6, 5, 4, 3, 2, 1, 0}
	for _, i := range order {
		c := coords[i]
		if err := m2.AddNode(mesh.Node{ID: i, X: c[0], Y: c[1], Z: c[2]}); err != nil {
			tst.Fatalf("%v", err)
		}
	}
	if err := m2.AddElement(mesh.Element{ID: 0, Kind: mesh.Hexa, NodeIDs: []int{0, 1, 2, 3, 4, 5, 6, 7}, Material: 0}); err != nil {
		tst.Fatalf("%v", err)
	}
	if err := m2.AssignDofs(3); err != nil {
		tst.Fatalf("%v", err)
	}
	return m2
}

func Test_assembly01(tst *testing.T) {
	chk.PrintTitle("assembly01: global K is symmetric")
	m, lib := unitCubeMesh(tst)
	trip, err := Stiffness(m, lib)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	K := trip.ToMatrix(nil).ToDense()
	n := m.NumDofs()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(K[i][j]-K[j][i]) > 1e-6 {
				tst.Fatalf("K not symmetric at (%d,%d)", i, j)
			}
		}
	}
}

func Test_assembly02(tst *testing.T) {
	chk.PrintTitle("assembly02: assembly is independent of node insertion order")
	m, lib := unitCubeMesh(tst)
	m2 := reversedElementMesh(tst, m)
	trip1, err := Stiffness(m, lib)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	trip2, err := Stiffness(m2, lib)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	K1 := trip1.ToMatrix(nil).ToDense()
	K2 := trip2.ToMatrix(nil).ToDense()
	var normInf float64
	for i := range K1 {
		var rowSum float64
		for j := range K1[i] {
			rowSum += math.Abs(K1[i][j])
		}
		if rowSum > normInf {
			normInf = rowSum
		}
	}
	tol := 1e-12 * normInf
	for i := range K1 {
		for j := range K1[i] {
			if math.Abs(K1[i][j]-K2[i][j]) > tol {
				tst.Fatalf("K mismatch at (%d,%d): %g vs %g (tol %g)", i, j, K1[i][j], K2[i][j], tol)
			}
		}
	}
}

func Test_assembly03(tst *testing.T) {
	chk.PrintTitle("assembly03: missing material aborts assembly")
	m := mesh.New()
	coords := [8][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	for i, c := range coords {
		m.AddNode(mesh.Node{ID: i, X: c[0], Y: c[1], Z: c[2]})
	}
	m.AddElement(mesh.Element{ID: 0, Kind: mesh.Hexa, NodeIDs: []int{0, 1, 2, 3, 4, 5, 6, 7}, Material: mesh.NoMaterial})
	m.AssignDofs(3)
	lib := material.NewLibrary()
	if _, err := Stiffness(m, lib); err == nil {
		tst.Fatalf("expected error for element with no material")
	}
}

func Test_assembly04(tst *testing.T) {
	chk.PrintTitle("assembly04: body force totals b_z*volume across the mesh")
	coords := [8][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	m := mesh.New()
	for i, c := range coords {
		if err := m.AddNode(mesh.Node{ID: i, X: c[0], Y: c[1], Z: c[2]}); err != nil {
			tst.Fatalf("%v", err)
		}
	}
	if err := m.AddElement(mesh.Element{ID: 0, Kind: mesh.Hexa, NodeIDs: []int{0, 1, 2, 3, 4, 5, 6, 7}, Material: 0}); err != nil {
		tst.Fatalf("%v", err)
	}
	if err := m.AddElementGroup(mesh.ElementGroup{Name: "all", ElementIDs: []int{0}, Material: mesh.NoMaterial}); err != nil {
		tst.Fatalf("%v", err)
	}
	if err := m.AssignDofs(3); err != nil {
		tst.Fatalf("%v", err)
	}
	g, _ := m.ElementGroupByName("all")
	F, err := BodyForce(m, g, [3]float64{0, 0, -9810})
	if err != nil {
		tst.Fatalf("%v", err)
	}
	var totalZ float64
	for i := 2; i < len(F); i += 3 {
		totalZ += F[i]
	}
	chk.Scalar(tst, "sum(Fz)", 1e-6, totalZ, -9810.0)
}
