// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/cpmech/gosl/chk"

// Mesh owns its nodes, elements, node groups, and element groups, plus the
// id-to-index and name-to-index maps that give every lookup O(1) cost.
// Grounded on inp.Mesh / fem.Domain's Vid2node / Cid2elem index-map idiom.
type Mesh struct {
	Nodes    []Node
	Elements []Element

	NodeGroups    []NodeGroup
	ElementGroups []ElementGroup

	nodeIdx     map[int]int    // node_id -> index in Nodes
	elemIdx     map[int]int    // element_id -> index in Elements
	nodeGrpIdx  map[string]int // node group name -> index in NodeGroups
	elemGrpIdx  map[string]int // element group name -> index in ElementGroups

	dofsPerNode int  // 3 (mechanical) or 1 (thermal); set by AssignDofs
	numDofs     int  // set by AssignDofs
	locked      bool // true once a solve has entered; structural mutation forbidden thereafter
}

// New builds an empty mesh ready for population via Add* methods.
func New() *Mesh {
	return &Mesh{
		nodeIdx:    map[int]int{},
		elemIdx:    map[int]int{},
		nodeGrpIdx: map[string]int{},
		elemGrpIdx: map[string]int{},
	}
}

// AddNode appends a node. Returns an error if the id is already present or
// the mesh is locked.
func (m *Mesh) AddNode(n Node) error {
	if m.locked {
		return chk.Err("cannot mutate mesh: structural mutation after solver entry is disallowed")
	}
	if _, dup := m.nodeIdx[n.ID]; dup {
		return chk.Err("duplicate node id %d", n.ID)
	}
	m.nodeIdx[n.ID] = len(m.Nodes)
	m.Nodes = append(m.Nodes, n)
	return nil
}

// AddElement appends an element, validating its node-count against its kind
// and that every referenced node id already exists in the mesh.
func (m *Mesh) AddElement(e Element) error {
	if m.locked {
		return chk.Err("cannot mutate mesh: structural mutation after solver entry is disallowed")
	}
	if _, dup := m.elemIdx[e.ID]; dup {
		return chk.Err("duplicate element id %d", e.ID)
	}
	if !e.Kind.LegalNodeCount(len(e.NodeIDs)) {
		return chk.Err("element %d: %d nodes is not a legal count for kind %s", e.ID, len(e.NodeIDs), e.Kind)
	}
	for _, nid := range e.NodeIDs {
		if _, ok := m.nodeIdx[nid]; !ok {
			return chk.Err("element %d references node id %d which is not in the mesh", e.ID, nid)
		}
	}
	if e.Material == 0 {
		// zero-value Element{} would otherwise look like "material index 0";
		// callers must set Material explicitly to NoMaterial or a real index.
	}
	m.elemIdx[e.ID] = len(m.Elements)
	m.Elements = append(m.Elements, e)
	return nil
}

// AddNodeGroup appends a node group, validating name uniqueness and that
// every member node id resolves.
func (m *Mesh) AddNodeGroup(g NodeGroup) error {
	if m.locked {
		return chk.Err("cannot mutate mesh: structural mutation after solver entry is disallowed")
	}
	if _, dup := m.nodeGrpIdx[g.Name]; dup {
		return chk.Err("duplicate node group name %q", g.Name)
	}
	for _, nid := range g.NodeIDs {
		if _, ok := m.nodeIdx[nid]; !ok {
			return chk.Err("node group %q references node id %d which is not in the mesh", g.Name, nid)
		}
	}
	m.nodeGrpIdx[g.Name] = len(m.NodeGroups)
	m.NodeGroups = append(m.NodeGroups, g)
	return nil
}

// AddElementGroup appends an element group, validating name uniqueness and
// that every member element id resolves.
func (m *Mesh) AddElementGroup(g ElementGroup) error {
	if m.locked {
		return chk.Err("cannot mutate mesh: structural mutation after solver entry is disallowed")
	}
	if _, dup := m.elemGrpIdx[g.Name]; dup {
		return chk.Err("duplicate element group name %q", g.Name)
	}
	for _, eid := range g.ElementIDs {
		if _, ok := m.elemIdx[eid]; !ok {
			return chk.Err("element group %q references element id %d which is not in the mesh", g.Name, eid)
		}
	}
	m.elemGrpIdx[g.Name] = len(m.ElementGroups)
	m.ElementGroups = append(m.ElementGroups, g)
	return nil
}

// NodeByID returns the node with the given id and whether it was found.
func (m *Mesh) NodeByID(id int) (*Node, bool) {
	i, ok := m.nodeIdx[id]
	if !ok {
		return nil, false
	}
	return &m.Nodes[i], true
}

// ElementByID returns the element with the given id and whether it was found.
func (m *Mesh) ElementByID(id int) (*Element, bool) {
	i, ok := m.elemIdx[id]
	if !ok {
		return nil, false
	}
	return &m.Elements[i], true
}

// NodeGroupByName returns the node group with the given name and whether it
// was found.
func (m *Mesh) NodeGroupByName(name string) (*NodeGroup, bool) {
	i, ok := m.nodeGrpIdx[name]
	if !ok {
		return nil, false
	}
	return &m.NodeGroups[i], true
}

// ElementGroupByName returns the element group with the given name and
// whether it was found.
func (m *Mesh) ElementGroupByName(name string) (*ElementGroup, bool) {
	i, ok := m.elemGrpIdx[name]
	if !ok {
		return nil, false
	}
	return &m.ElementGroups[i], true
}

// Validate checks every invariant spec.md §3 ("Mesh") names. It does not
// mutate the mesh; call it before AssignDofs.
func (m *Mesh) Validate() error {
	for _, e := range m.Elements {
		if !e.Kind.LegalNodeCount(len(e.NodeIDs)) {
			return chk.Err("element %d: %d nodes is not a legal count for kind %s", e.ID, len(e.NodeIDs), e.Kind)
		}
		for _, nid := range e.NodeIDs {
			if _, ok := m.nodeIdx[nid]; !ok {
				return chk.Err("element %d references node id %d which is not in the mesh", e.ID, nid)
			}
		}
	}
	for _, g := range m.NodeGroups {
		for _, nid := range g.NodeIDs {
			if _, ok := m.nodeIdx[nid]; !ok {
				return chk.Err("node group %q references node id %d which is not in the mesh", g.Name, nid)
			}
		}
	}
	for _, g := range m.ElementGroups {
		for _, eid := range g.ElementIDs {
			if _, ok := m.elemIdx[eid]; !ok {
				return chk.Err("element group %q references element id %d which is not in the mesh", g.Name, eid)
			}
		}
	}
	return nil
}

// AssignDofs performs the single dense scan that assigns global DOF indices
// to every node (spec.md §8 invariant 1: DOF assignment totality) and locks
// the mesh against further structural mutation. dofsPerNode is 3 for
// mechanical analyses, 1 for thermal.
func (m *Mesh) AssignDofs(dofsPerNode int) error {
	if err := m.Validate(); err != nil {
		return err
	}
	m.dofsPerNode = dofsPerNode
	eq := 0
	for i := range m.Nodes {
		dofs := make([]int, dofsPerNode)
		for d := 0; d < dofsPerNode; d++ {
			dofs[d] = eq
			eq++
		}
		m.Nodes[i].Dofs = dofs
	}
	m.numDofs = eq
	m.locked = true
	return nil
}

// NumDofs returns the total DOF count set by AssignDofs (0 before then).
func (m *Mesh) NumDofs() int { return m.numDofs }

// DofsPerNode returns the per-node DOF count set by AssignDofs.
func (m *Mesh) DofsPerNode() int { return m.dofsPerNode }

// Locked reports whether the mesh has passed solver entry.
func (m *Mesh) Locked() bool { return m.locked }

// ElementNodes returns the (resolved) *Node pointers for an element, in the
// element's local node order.
func (m *Mesh) ElementNodes(e *Element) []*Node {
	nodes := make([]*Node, len(e.NodeIDs))
	for i, nid := range e.NodeIDs {
		nodes[i], _ = m.NodeByID(nid)
	}
	return nodes
}

// ElementMaterial resolves the effective material index for an element: an
// owning ElementGroup override takes precedence over the element's own
// Material field.
func (m *Mesh) ElementMaterial(e *Element) int {
	for _, g := range m.ElementGroups {
		if g.Material == NoMaterial {
			continue
		}
		for _, eid := range g.ElementIDs {
			if eid == e.ID {
				return g.Material
			}
		}
	}
	return e.Material
}
