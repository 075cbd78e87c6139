// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// unitCube builds the single-Hexa unit-cube mesh used by spec.md §8 scenario 1.
func unitCube() *Mesh {
	m := New()
	coords := [8][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	for i, c := range coords {
		m.AddNode(Node{ID: i, X: c[0], Y: c[1], Z: c[2]})
	}
	m.AddElement(Element{ID: 0, Kind: Hexa, NodeIDs: []int{0, 1, 2, 3, 4, 5, 6, 7}, Material: 0})
	m.AddNodeGroup(NodeGroup{Name: "x0", NodeIDs: []int{0, 3, 4, 7}})
	m.AddNodeGroup(NodeGroup{Name: "x1", NodeIDs: []int{1, 2, 5, 6}})
	return m
}

func Test_mesh01(tst *testing.T) {
	chk.PrintTitle("mesh01: build and validate a unit cube")
	m := unitCube()
	if err := m.Validate(); err != nil {
		tst.Errorf("validate failed: %v", err)
	}
	if len(m.Nodes) != 8 {
		tst.Errorf("expected 8 nodes, got %d", len(m.Nodes))
	}
	n, ok := m.NodeByID(5)
	if !ok || n.X != 1 || n.Y != 0 || n.Z != 1 {
		tst.Errorf("NodeByID(5) wrong: %v", n)
	}
}

func Test_mesh02(tst *testing.T) {
	chk.PrintTitle("mesh02: dof assignment totality (spec.md invariant 1)")
	m := unitCube()
	if err := m.AssignDofs(3); err != nil {
		tst.Fatalf("AssignDofs failed: %v", err)
	}
	if m.NumDofs() != 8*3 {
		tst.Errorf("expected 24 dofs, got %d", m.NumDofs())
	}
	seen := map[int]bool{}
	for _, n := range m.Nodes {
		if len(n.Dofs) != 3 {
			tst.Errorf("node %d: expected 3 dofs, got %d", n.ID, len(n.Dofs))
		}
		for i := 1; i < len(n.Dofs); i++ {
			if n.Dofs[i] != n.Dofs[i-1]+1 {
				tst.Errorf("node %d: dofs not consecutive: %v", n.ID, n.Dofs)
			}
		}
		for _, d := range n.Dofs {
			if seen[d] {
				tst.Errorf("dof %d assigned twice", d)
			}
			seen[d] = true
		}
	}
	if len(seen) != m.NumDofs() {
		tst.Errorf("gap in dof assignment: saw %d distinct dofs, want %d", len(seen), m.NumDofs())
	}
	if err := m.AddNode(Node{ID: 100}); err == nil {
		tst.Errorf("expected mutation after AssignDofs to be rejected")
	}
}

func Test_mesh03(tst *testing.T) {
	chk.PrintTitle("mesh03: invalid node count and unknown node id are rejected")
	m := New()
	m.AddNode(Node{ID: 0})
	m.AddNode(Node{ID: 1})
	err := m.AddElement(Element{ID: 0, Kind: Hexa, NodeIDs: []int{0, 1}})
	if err == nil {
		tst.Errorf("expected illegal node count to be rejected")
	}
	err = m.AddElement(Element{ID: 1, Kind: Tetra, NodeIDs: []int{0, 1, 2, 3}})
	if err == nil {
		tst.Errorf("expected reference to unknown node id to be rejected")
	}
}
