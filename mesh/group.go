// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

// NodeGroup is a named, unique-per-mesh set of node ids used to localize
// BCs and point/nodal loads.
type NodeGroup struct {
	Name    string
	NodeIDs []int
}

// ElementGroup is the element analogue of NodeGroup. When Material is set
// (>= 0), it overrides the per-element material of every member element.
type ElementGroup struct {
	Name       string
	ElementIDs []int
	Material   int // index into a material library, or NoMaterial
}
