// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bcapply implements boundary-condition application (C6) via the
// penalty method (spec.md §4.3), transforming an assembled system (K, F)
// in place while retaining the pre-penalty operator for reaction recovery.
// Grounded in *shape* on fem/essenbcs.go's EssentialBc record and its
// Build/AddToRhs two-phase structure; the Lagrange-multiplier mechanism
// itself is replaced by penalty scaling per spec.md's explicit instruction
// (DESIGN.md "Open Questions resolved").
package bcapply

import "github.com/cpmech/gosl/la"

// Penalty is the diagonal scale factor P used for prescribed-value DOFs
// (spec.md §4.3: "P ≈ 10^10").
const Penalty = 1.0e10

// Prescribed holds one Dirichlet-type constraint: global DOF index and its
// prescribed value.
type Prescribed struct {
	Dof   int
	Value float64
}

// System bundles the dense global operator and load vector a solve acts on,
// plus the original (pre-penalty) copies retained for reaction recovery
// (spec.md §4.5 step 6: "the original ... operator must be retained").
type System struct {
	K     [][]float64
	F     []float64
	Korig [][]float64
	Forig []float64
}

// NewSystem copies K and F so the originals survive penalty mutation.
func NewSystem(K [][]float64, F []float64) *System {
	n := len(K)
	Korig := la.MatAlloc(n, n)
	la.MatCopy(Korig, 1, K)
	Forig := make([]float64, len(F))
	copy(Forig, F)
	return &System{K: K, F: F, Korig: Korig, Forig: Forig}
}

// ApplyDirichlet applies the penalty method for every prescribed DOF
// (spec.md §4.3 steps 1-3): diagonal set to P, row/column zeroed off the
// diagonal, load entry set to P*value. Applying the same (dof, value) twice
// is idempotent (spec.md §8 invariant 4) since each step overwrites rather
// than accumulates.
func (s *System) ApplyDirichlet(prescribed []Prescribed) {
	n := len(s.K)
	for _, p := range prescribed {
		d := p.Dof
		for j := 0; j < n; j++ {
			if j != d {
				s.K[d][j] = 0
				s.K[j][d] = 0
			}
		}
		s.K[d][d] = Penalty
		s.F[d] = Penalty * p.Value
	}
}

// Convection distributes a film-coefficient contribution across the
// diagonal entries of a facet's node DOFs and the corresponding load
// entries (spec.md §4.3: "distribute h·A/n ... and h·A·T∞/n"). area is the
// facet's physical area and dofs its node temperature DOFs (thermal
// analyses only: 1 DOF per node).
func (s *System) Convection(dofs []int, area, h, ambientTemp float64) {
	n := float64(len(dofs))
	if n == 0 {
		return
	}
	diag := h * area / n
	load := h * area * ambientTemp / n
	for _, d := range dofs {
		s.K[d][d] += diag
		s.F[d] += load
	}
}

// HeatFlux adds a prescribed heat flux's equivalent nodal load directly to
// F (Neumann condition, additive, no penalty scaling).
func (s *System) HeatFlux(dofs []int, nodalFlux []float64) {
	for i, d := range dofs {
		s.F[d] += nodalFlux[i]
	}
}

// Reactions computes r = K_original · u − F_original restricted to the
// given DOFs (spec.md §4.5 step 6).
func (s *System) Reactions(u []float64, dofs []int) []float64 {
	full := la.VecAlloc(len(u))
	la.MatVecMul(full, 1, s.Korig, u)
	r := make([]float64, len(dofs))
	for i, d := range dofs {
		r[i] = full[d] - s.Forig[d]
	}
	return r
}
