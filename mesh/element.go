// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

// Kind tags the supported element families (spec.md §3: "Element").
// The node-id order within an Element defines the local-to-natural-
// coordinate mapping; reordering changes the Jacobian sign and is forbidden.
type Kind int

const (
	Beam Kind = iota
	Triangle
	Quad
	Tetra
	Hexa
	Pyramid
	Prism
)

func (k Kind) String() string {
	switch k {
	case Beam:
		return "Beam"
	case Triangle:
		return "Triangle"
	case Quad:
		return "Quad"
	case Tetra:
		return "Tetra"
	case Hexa:
		return "Hexa"
	case Pyramid:
		return "Pyramid"
	case Prism:
		return "Prism"
	}
	return "Unknown"
}

// NodeCounts lists the legal node-count(s) for a kind, keyed by order name.
// A kind absent from this map has no legal node count. Not every listed
// kind/order has shape functions in shp: Beam and the 8-node serendipity
// Quad have none.
var NodeCounts = map[Kind]map[string]int{
	Tetra:    {"linear": 4},
	Hexa:     {"linear": 8},
	Triangle: {"linear": 3, "quadratic": 6},
	Quad:     {"linear": 4, "serendipity": 8},
	Beam:     {"linear": 2},
}

// LegalNodeCount reports whether n is a legal node count for kind, across any
// known order.
func (k Kind) LegalNodeCount(n int) bool {
	for _, count := range NodeCounts[k] {
		if count == n {
			return true
		}
	}
	return false
}

// NoMaterial marks an Element whose material must be supplied via an
// ElementGroup override at solve time (spec.md §3: "Element... material").
const NoMaterial = -1

// Element is a mesh cell: identity, kind, ordered node ids, and an optional
// material handle (index into a material library, or NoMaterial).
type Element struct {
	ID       int
	Kind     Kind
	NodeIDs  []int
	Material int // index into a material library, or NoMaterial
}
