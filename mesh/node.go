// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh implements the nodes/elements/groups data model (C1): the
// geometry and connectivity substrate every kernel, assembler, and solver in
// this module reads.
package mesh

// Node is a mesh vertex: a stable integer identity, its coordinates, and the
// (solver-assigned) global DOF indices that identity owns. Dofs is nil until
// AssignDofs has run; reading it beforehand is a programmer error.
type Node struct {
	ID     int
	X, Y, Z float64
	Dofs   []int // global DOF indices, assigned by AssignDofs
}

// Coords returns the node position as a 3-vector.
func (n *Node) Coords() [3]float64 { return [3]float64{n.X, n.Y, n.Z} }
