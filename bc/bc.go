// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bc implements boundary-condition declarations (part of C3).
// Grounded in shape on fem.EssentialBc (key + target + value), redesigned as
// an exhaustive tagged variant per spec.md §9's Design Notes, and validated
// against a mesh.Mesh the way EssentialBc.Set resolves node groups.
package bc

import (
	"github.com/snowmannn129/rebelcad-fea/mesh"
)

// Kind tags the supported BC families (spec.md §3: "Boundary condition").
type Kind int

const (
	Displacement Kind = iota
	Force
	Pressure
	Temperature
	HeatFlux
	Convection
	Symmetry
	Contact
)

func (k Kind) String() string {
	switch k {
	case Displacement:
		return "Displacement"
	case Force:
		return "Force"
	case Pressure:
		return "Pressure"
	case Temperature:
		return "Temperature"
	case HeatFlux:
		return "HeatFlux"
	case Convection:
		return "Convection"
	case Symmetry:
		return "Symmetry"
	case Contact:
		return "Contact"
	}
	return "Unknown"
}

// TargetsNodeGroup reports whether a BC of this kind targets a node group
// (true) or an element group / surface facet set (false), per spec.md §3.
func (k Kind) TargetsNodeGroup() bool {
	switch k {
	case Displacement, Temperature, Symmetry:
		return true
	default:
		return false
	}
}

// BC is a named tagged boundary-condition record. Only the fields relevant
// to Kind are meaningful; BC is otherwise immutable after construction.
type BC struct {
	Name  string
	Kind  Kind
	Group string // name of the node group or element group this BC targets

	// Displacement
	Direction [3]float64 // unit direction of the prescribed displacement
	Value     float64    // prescribed displacement magnitude along Direction

	// Force
	Components [3]float64 // Fx, Fy, Fz

	// Pressure
	Pressure float64 // scalar pressure, positive = compressive (acts along -normal)

	// Temperature
	Temp float64

	// HeatFlux
	Flux float64 // W/m^2, positive = into the surface

	// Convection
	FilmCoeff   float64 // h, W/(m^2 K)
	AmbientTemp float64 // T_inf

	// Symmetry
	NormalAxis int // 0=x, 1=y, 2=z: the component reduced to a Displacement BC
}

// IsValid reports whether the BC's target group exists in mesh and is of the
// kind (node vs. element group) this BC's Kind requires.
func (b *BC) IsValid(m *mesh.Mesh) bool {
	if b.Kind.TargetsNodeGroup() {
		_, ok := m.NodeGroupByName(b.Group)
		return ok
	}
	_, ok := m.ElementGroupByName(b.Group)
	return ok
}

// Set is an ordered collection of BCs with name-based lookup, the analogue of
// fem.EbcArray generalized to this spec's penalty-method consumers.
type Set struct {
	items []*BC
}

// NewSet builds an empty BC set.
func NewSet() *Set { return &Set{} }

// Add appends a BC to the set.
func (s *Set) Add(b *BC) { s.items = append(s.items, b) }

// All returns every BC in the set, in insertion order.
func (s *Set) All() []*BC { return s.items }

// ValidateAll checks every BC against a mesh, returning the first invalid
// BC's name, or "" if all are valid.
func (s *Set) ValidateAll(m *mesh.Mesh) (invalidName string, ok bool) {
	for _, b := range s.items {
		if !b.IsValid(m) {
			return b.Name, false
		}
	}
	return "", true
}
