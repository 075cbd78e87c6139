// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"testing"

	"github.com/snowmannn129/rebelcad-fea/material"
	"github.com/snowmannn129/rebelcad-fea/mesh"
)

// unitCubeMesh builds spec.md §8 scenario-1's single-Hexa unit cube with
// "xmin" (x=0 face) and "xmax" (x=1 face) node groups pre-declared, steel
// isotropic material. DOFs are left unassigned so Static/Nonlinear/Dynamic's
// own AssignDofs(3) call exercises the "mesh not yet locked" path.
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
	if err := m.AddElement(mesh.Element{ID: 0, Kind: mesh.Hexa, NodeIDs: []int{0, 1, 2, 3, 4, 5, 6, 7}, Material: 0}); err != nil {
		tst.Fatalf("%v", err)
	}
	if err := m.AddNodeGroup(mesh.NodeGroup{Name: "xmin", NodeIDs: []int{0, 3, 4, 7}}); err != nil {
		tst.Fatalf("%v", err)
	}
	if err := m.AddNodeGroup(mesh.NodeGroup{Name: "xmax", NodeIDs: []int{1, 2, 5, 6}}); err != nil {
		tst.Fatalf("%v", err)
	}
	lib := material.NewLibrary()
	mat, err := material.IsotropicDefaults("steel", 210e9, 0.3, 7850.0)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	if _, err := lib.Add(mat); err != nil {
		tst.Fatalf("%v", err)
	}
	return m, lib
}

// rodMesh builds spec.md §8 scenario-2/3's 10-Hexa rod: length 0.1 m along
// X, 0.01x0.01 m cross-section, steel. Node rings are numbered 0..10 along
// X, 4 corner nodes per ring (ring i's node ids are 4*i+{0,1,2,3}); "xmin"
// is ring 0, "xmax" is ring 10, "all" is every node.
func rodMesh(tst *testing.T) (*mesh.Mesh, *material.Library) {
	const numElems = 10
	const length = 0.1
	const side = 0.01
	dx := length / numElems

	m := mesh.New()
	var allIDs []int
	for i := 0; i <= numElems; i++ {
		x := float64(i) * dx
		corners := [4][2]float64{{0, 0}, {side, 0}, {side, side}, {0, side}}
		for k, yz := range corners {
			id := 4*i + k
			if err := m.AddNode(mesh.Node{ID: id, X: x, Y: yz[0], Z: yz[1]}); err != nil {
				tst.Fatalf("%v", err)
			}
			allIDs = append(allIDs, id)
		}
	}
	for i := 0; i < numElems; i++ {
		ring0 := []int{4 * i, 4*i + 1, 4*i + 2, 4*i + 3}
		ring1 := []int{4 * (i + 1), 4*(i+1) + 1, 4*(i+1) + 2, 4*(i+1) + 3}
		nodeIDs := append(append([]int{}, ring0...), ring1...)
		if err := m.AddElement(mesh.Element{ID: i, Kind: mesh.Hexa, NodeIDs: nodeIDs, Material: 0}); err != nil {
			tst.Fatalf("%v", err)
		}
	}
	if err := m.AddNodeGroup(mesh.NodeGroup{Name: "xmin", NodeIDs: []int{0, 1, 2, 3}}); err != nil {
		tst.Fatalf("%v", err)
	}
	tipBase := 4 * numElems
	if err := m.AddNodeGroup(mesh.NodeGroup{Name: "xmax", NodeIDs: []int{tipBase, tipBase + 1, tipBase + 2, tipBase + 3}}); err != nil {
		tst.Fatalf("%v", err)
	}
	if err := m.AddNodeGroup(mesh.NodeGroup{Name: "all", NodeIDs: allIDs}); err != nil {
		tst.Fatalf("%v", err)
	}

	lib := material.NewLibrary()
	mat, err := material.IsotropicDefaults("steel", 210e9, 0.3, 7850.0)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	mat.Props["thermal_conductivity"] = 50.0
	mat.Props["specific_heat"] = 486.0
	if _, err := lib.Add(mat); err != nil {
		tst.Fatalf("%v", err)
	}
	return m, lib
}
