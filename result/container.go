// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package result

import (
	"math"
	"sort"
)

type modeShapeKey struct {
	node, mode int
}

// Container owns every result record produced by one solve (spec.md §4.9,
// §5: "owned exclusively by one solve until returned to the caller, after
// which it is immutable"). Accessors by primary key (node id, element id,
// mode number) are O(1) map lookups; statistical queries iterate once.
type Container struct {
	MeshID     string
	SolverType int

	displacements map[int]Displacement
	stresses      map[int]Stress
	strains       map[int]Strain
	reactions     map[int]ReactionForce
	frequencies   map[int]Frequency
	modeShapes    map[modeShapeKey]ModeShape
	loadSteps     []LoadStep
}

// New builds an empty container for the given mesh id and solver-type tag.
func New(meshID string, solverType int) *Container {
	return &Container{
		MeshID:        meshID,
		SolverType:    solverType,
		displacements: make(map[int]Displacement),
		stresses:      make(map[int]Stress),
		strains:       make(map[int]Strain),
		reactions:     make(map[int]ReactionForce),
		frequencies:   make(map[int]Frequency),
		modeShapes:    make(map[modeShapeKey]ModeShape),
	}
}

// AddDisplacement stores d, computing Magnitude if the caller left it zero
// but X/Y/Z non-zero (callers are still free to set it explicitly).
func (c *Container) AddDisplacement(d Displacement) {
	if d.Magnitude == 0 {
		d.Magnitude = vecMagnitude(d.X, d.Y, d.Z)
	}
	c.displacements[d.NodeID] = d
}

// Displacement returns the displacement record at nodeID, O(1).
func (c *Container) Displacement(nodeID int) (Displacement, bool) {
	d, ok := c.displacements[nodeID]
	return d, ok
}

// Displacements returns every displacement record, sorted by node id for
// deterministic iteration (export/tests).
func (c *Container) Displacements() []Displacement {
	out := make([]Displacement, 0, len(c.displacements))
	for _, d := range c.displacements {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}

// AddStress stores s.
func (c *Container) AddStress(s Stress) { c.stresses[s.ElemID] = s }

// Stress returns the stress record at elemID, O(1).
func (c *Container) Stress(elemID int) (Stress, bool) {
	s, ok := c.stresses[elemID]
	return s, ok
}

// Stresses returns every stress record sorted by element id.
func (c *Container) Stresses() []Stress {
	out := make([]Stress, 0, len(c.stresses))
	for _, s := range c.stresses {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ElemID < out[j].ElemID })
	return out
}

// AddStrain stores e.
func (c *Container) AddStrain(e Strain) { c.strains[e.ElemID] = e }

// Strain returns the strain record at elemID, O(1).
func (c *Container) Strain(elemID int) (Strain, bool) {
	e, ok := c.strains[elemID]
	return e, ok
}

// Strains returns every strain record sorted by element id.
func (c *Container) Strains() []Strain {
	out := make([]Strain, 0, len(c.strains))
	for _, e := range c.strains {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ElemID < out[j].ElemID })
	return out
}

// AddReaction stores r.
func (c *Container) AddReaction(r ReactionForce) { c.reactions[r.NodeID] = r }

// Reaction returns the reaction record at nodeID, O(1).
func (c *Container) Reaction(nodeID int) (ReactionForce, bool) {
	r, ok := c.reactions[nodeID]
	return r, ok
}

// Reactions returns every reaction record sorted by node id.
func (c *Container) Reactions() []ReactionForce {
	out := make([]ReactionForce, 0, len(c.reactions))
	for _, r := range c.reactions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}

// AddFrequency stores f.
func (c *Container) AddFrequency(f Frequency) { c.frequencies[f.Mode] = f }

// Frequency returns the frequency record at modeNumber, O(1).
func (c *Container) Frequency(modeNumber int) (Frequency, bool) {
	f, ok := c.frequencies[modeNumber]
	return f, ok
}

// Frequencies returns every frequency record sorted by mode number.
func (c *Container) Frequencies() []Frequency {
	out := make([]Frequency, 0, len(c.frequencies))
	for _, f := range c.frequencies {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mode < out[j].Mode })
	return out
}

// AddModeShape stores m, keyed by (node id, mode number).
func (c *Container) AddModeShape(m ModeShape) {
	c.modeShapes[modeShapeKey{m.NodeID, m.Mode}] = m
}

// ModeShape returns the mode-shape record at (nodeID, mode), O(1).
func (c *Container) ModeShape(nodeID, mode int) (ModeShape, bool) {
	m, ok := c.modeShapes[modeShapeKey{nodeID, mode}]
	return m, ok
}

// ModeShapes returns every mode-shape record sorted by (mode, node id).
func (c *Container) ModeShapes() []ModeShape {
	out := make([]ModeShape, 0, len(c.modeShapes))
	for _, m := range c.modeShapes {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mode != out[j].Mode {
			return out[i].Mode < out[j].Mode
		}
		return out[i].NodeID < out[j].NodeID
	})
	return out
}

// AddLoadStep appends ls to the ordered load-step history.
func (c *Container) AddLoadStep(ls LoadStep) { c.loadSteps = append(c.loadSteps, ls) }

// LoadSteps returns every load-step snapshot in insertion order.
func (c *Container) LoadSteps() []LoadStep { return c.loadSteps }

// NumLoadSteps returns the number of stored load-step snapshots.
func (c *Container) NumLoadSteps() int { return len(c.loadSteps) }

// MaxDisplacementMagnitude is the largest stored displacement magnitude, or
// 0.0 for an empty collection (spec.md §4.9).
func (c *Container) MaxDisplacementMagnitude() float64 {
	max := 0.0
	first := true
	for _, d := range c.displacements {
		if first || d.Magnitude > max {
			max = d.Magnitude
			first = false
		}
	}
	return max
}

// MaxStress returns the largest value of the given stress component across
// every stress record, or 0.0 for an empty collection.
func (c *Container) MaxStress(comp StressComponent) float64 {
	max := 0.0
	first := true
	for _, s := range c.stresses {
		v := s.Component(comp)
		if first || v > max {
			max = v
			first = false
		}
	}
	return max
}

// MinStress returns the smallest value of the given stress component across
// every stress record, or 0.0 for an empty collection.
func (c *Container) MinStress(comp StressComponent) float64 {
	min := 0.0
	first := true
	for _, s := range c.stresses {
		v := s.Component(comp)
		if first || v < min {
			min = v
			first = false
		}
	}
	return min
}

// TotalReactionForce sums the reaction-force component along axis (0=X,
// 1=Y, 2=Z) across every reaction record, or 0.0 for an empty collection.
func (c *Container) TotalReactionForce(axis int) float64 {
	var total float64
	for _, r := range c.reactions {
		switch axis {
		case 0:
			total += r.Fx
		case 1:
			total += r.Fy
		case 2:
			total += r.Fz
		}
	}
	return total
}

// vecMagnitude is the shared helper for filling in a Displacement/
// ReactionForce/ModeShape's Magnitude field from its X/Y/Z components.
func vecMagnitude(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}
