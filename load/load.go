// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package load implements load declarations (the other half of C3).
// Grounded in shape on bc.BC (tagged record + group target + IsValid), with
// an added time-variation tag per spec.md §3's Load description.
package load

import (
	"github.com/cpmech/gosl/fun"
	"github.com/snowmannn129/rebelcad-fea/mesh"
)

// Kind tags the supported load families (spec.md §3: "Load").
type Kind int

const (
	PointForce Kind = iota
	LineForce
	SurfacePressure
	BodyForce
	Moment
	Acceleration
	Centrifugal
	Thermal
	Pretension
)

func (k Kind) String() string {
	switch k {
	case PointForce:
		return "PointForce"
	case LineForce:
		return "LineForce"
	case SurfacePressure:
		return "SurfacePressure"
	case BodyForce:
		return "BodyForce"
	case Moment:
		return "Moment"
	case Acceleration:
		return "Acceleration"
	case Centrifugal:
		return "Centrifugal"
	case Thermal:
		return "Thermal"
	case Pretension:
		return "Pretension"
	}
	return "Unknown"
}

// TargetsNodeGroup reports whether a load of this kind targets a node group
// (true) or an element group (false), per spec.md §3.
func (k Kind) TargetsNodeGroup() bool {
	switch k {
	case PointForce, Moment, Thermal:
		return true
	default:
		return false
	}
}

// TimeVariation tags how a load's magnitude evolves over an analysis.
type TimeVariation int

const (
	Static TimeVariation = iota
	Transient
	Harmonic
	Random
)

func (t TimeVariation) String() string {
	switch t {
	case Static:
		return "Static"
	case Transient:
		return "Transient"
	case Harmonic:
		return "Harmonic"
	case Random:
		return "Random"
	}
	return "Unknown"
}

// Load is a named tagged load record. Components is the vector payload for
// PointForce/BodyForce/Acceleration/Moment; Scalar is the payload for
// SurfacePressure/Thermal/Pretension. Fcn scales the payload over time for
// Transient/Harmonic/Random variations (nil implies a constant unit scale,
// i.e. Static behavior).
type Load struct {
	Name       string
	Kind       Kind
	Group      string
	Variation  TimeVariation
	Components [3]float64
	Scalar     float64
	Fcn        fun.Func // time-scaling function; nil => constant 1.0
	Center     [3]float64 // Centrifugal: axis point
	Axis       [3]float64 // Centrifugal: rotation axis (unit vector)
	Omega      float64    // Centrifugal: angular velocity, rad/s
}

// ScaleAt returns the time-scaling factor at time t: Fcn.F(t, nil) for a
// non-Static load with Fcn set, else 1.0.
func (l *Load) ScaleAt(t float64) float64 {
	if l.Variation == Static || l.Fcn == nil {
		return 1.0
	}
	return l.Fcn.F(t, nil)
}

// IsValid reports whether the load's target group exists in mesh and is of
// the kind (node vs. element group) this load's Kind requires.
func (l *Load) IsValid(m *mesh.Mesh) bool {
	if l.Kind.TargetsNodeGroup() {
		_, ok := m.NodeGroupByName(l.Group)
		return ok
	}
	_, ok := m.ElementGroupByName(l.Group)
	return ok
}

// Set is an ordered collection of loads, the load-side analogue of bc.Set.
type Set struct {
	items []*Load
}

// NewSet builds an empty load set.
func NewSet() *Set { return &Set{} }

// Add appends a load to the set.
func (s *Set) Add(l *Load) { s.items = append(s.items, l) }

// All returns every load in the set, in insertion order.
func (s *Set) All() []*Load { return s.items }

// ValidateAll checks every load against a mesh, returning the first invalid
// load's name, or "" if all are valid.
func (s *Set) ValidateAll(m *mesh.Mesh) (invalidName string, ok bool) {
	for _, l := range s.items {
		if !l.IsValid(m) {
			return l.Name, false
		}
	}
	return "", true
}
