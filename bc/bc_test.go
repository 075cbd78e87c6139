// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bc

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/snowmannn129/rebelcad-fea/mesh"
)

func buildMesh() *mesh.Mesh {
	m := mesh.New()
	m.AddNode(mesh.Node{ID: 0})
	m.AddNode(mesh.Node{ID: 1})
	m.AddNodeGroup(mesh.NodeGroup{Name: "fixed", NodeIDs: []int{0}})
	m.AddElement(mesh.Element{ID: 0, Kind: mesh.Tetra, NodeIDs: []int{0, 1, 0, 1}, Material: mesh.NoMaterial})
	m.AddElementGroup(mesh.ElementGroup{Name: "loaded-face", ElementIDs: []int{0}, Material: mesh.NoMaterial})
	return m
}

func Test_bc01(tst *testing.T) {
	chk.PrintTitle("bc01: valid displacement and pressure BCs")
	m := buildMesh()
	d := &BC{Name: "fix-x", Kind: Displacement, Group: "fixed", Direction: [3]float64{1, 0, 0}, Value: 0}
	if !d.IsValid(m) {
		tst.Errorf("expected displacement BC to be valid")
	}
	p := &BC{Name: "press", Kind: Pressure, Group: "loaded-face", Pressure: 1.0}
	if !p.IsValid(m) {
		tst.Errorf("expected pressure BC to be valid")
	}
}

func Test_bc02(tst *testing.T) {
	chk.PrintTitle("bc02: missing-group rejection (spec.md scenario 6)")
	m := buildMesh()
	b := &BC{Name: "ghost", Kind: Displacement, Group: "does-not-exist"}
	if b.IsValid(m) {
		tst.Errorf("expected BC naming a nonexistent group to be invalid")
	}
	set := NewSet()
	set.Add(b)
	name, ok := set.ValidateAll(m)
	if ok || name != "ghost" {
		tst.Errorf("expected ValidateAll to report the invalid BC by name, got %q, %v", name, ok)
	}
}

func Test_bc03(tst *testing.T) {
	chk.PrintTitle("bc03: kind-to-target-group-type mapping")
	if !Displacement.TargetsNodeGroup() || !Temperature.TargetsNodeGroup() || !Symmetry.TargetsNodeGroup() {
		tst.Errorf("expected Displacement/Temperature/Symmetry to target node groups")
	}
	if Pressure.TargetsNodeGroup() || HeatFlux.TargetsNodeGroup() || Convection.TargetsNodeGroup() {
		tst.Errorf("expected Pressure/HeatFlux/Convection to target element groups")
	}
}
