// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/snowmannn129/rebelcad-fea/bc"
	"github.com/snowmannn129/rebelcad-fea/ferr"
	"github.com/snowmannn129/rebelcad-fea/load"
)

// fixFace returns a Displacement BC that fully fixes every DOF of a node
// group (spec.md §8 scenario-2's "fix the x=0 face completely").
func fixFace(name, group string) *bc.BC {
	return &bc.BC{Name: name, Kind: bc.Displacement, Group: group, Direction: [3]float64{1, 1, 1}, Value: 0}
}

func Test_static01_unitCubeTension(tst *testing.T) {
	chk.PrintTitle("static01: unit-cube tension, u_x(x=1) ~= 1/E")
	m, lib := unitCubeMesh(tst)
	bcs := bc.NewSet()
	bcs.Add(fixFace("base", "xmin"))
	loads := load.NewSet()
	loads.Add(&load.Load{Name: "tip-pull", Kind: load.PointForce, Group: "xmax", Components: [3]float64{0.25, 0, 0}})

	res, err := Static(m, lib, bcs, loads, 0, Context{})
	if err != nil {
		tst.Fatalf("%v", err)
	}

	const want = 1.0 / 210e9
	for _, nid := range []int{1, 2, 5, 6} {
		d, ok := res.Displacement(nid)
		if !ok {
			tst.Fatalf("node %d has no displacement record", nid)
		}
		rel := math.Abs(d.X-want) / want
		if rel > 0.02 {
			tst.Fatalf("node %d: u_x = %.6e, want ~%.6e (rel err %.4f)", nid, d.X, want, rel)
		}
	}

	s, ok := res.Stress(0)
	if !ok {
		tst.Fatalf("element 0 has no stress record")
	}
	// principal-stress ordering and invariant sum (spec.md §8 invariants 6-7).
	if !(s.SigmaI >= s.SigmaII && s.SigmaII >= s.SigmaIII) {
		tst.Fatalf("principal stresses not sorted descending: %v %v %v", s.SigmaI, s.SigmaII, s.SigmaIII)
	}
	sumTrace := s.Sxx + s.Syy + s.Szz
	sumPrincipal := s.SigmaI + s.SigmaII + s.SigmaIII
	if math.Abs(sumTrace-sumPrincipal) > 1e-9*math.Max(1, math.Abs(sumTrace)) {
		tst.Fatalf("trace mismatch: sxx+syy+szz=%g, sI+sII+sIII=%g", sumTrace, sumPrincipal)
	}
	if s.VonMises < 0 {
		tst.Fatalf("von Mises stress negative: %g", s.VonMises)
	}
	relSigma := math.Abs(s.Sxx-1.0) / 1.0
	if relSigma > 0.05 {
		tst.Fatalf("sigma_xx = %g, want ~1 Pa (rel err %.4f)", s.Sxx, relSigma)
	}
}

func Test_static02_missingGroupRejected(tst *testing.T) {
	chk.PrintTitle("static02: a BC naming an unknown group is rejected without mutating the result")
	m, lib := unitCubeMesh(tst)
	bcs := bc.NewSet()
	bcs.Add(&bc.BC{Name: "bogus", Kind: bc.Displacement, Group: "does-not-exist", Direction: [3]float64{1, 0, 0}, Value: 0})
	loads := load.NewSet()

	res, err := Static(m, lib, bcs, loads, 0, Context{})
	if err == nil {
		tst.Fatalf("expected an error for a BC referencing an unknown group")
	}
	if !ferr.Is(err, ferr.InvalidBoundaryCondition) {
		tst.Fatalf("expected InvalidBoundaryCondition, got %v", err)
	}
	if res != nil {
		tst.Fatalf("expected a nil result container on rejection, got %+v", res)
	}
}

func Test_static03_cantileverTipDeflection(tst *testing.T) {
	chk.PrintTitle("static03: cantilever tip deflection within 10% of the Euler-Bernoulli reference")
	m, lib := rodMesh(tst)
	bcs := bc.NewSet()
	bcs.Add(fixFace("base", "xmin"))
	loads := load.NewSet()
	loads.Add(&load.Load{Name: "tip-force", Kind: load.PointForce, Group: "xmax", Components: [3]float64{0, -0.25, 0}})

	res, err := Static(m, lib, bcs, loads, 0, Context{})
	if err != nil {
		tst.Fatalf("%v", err)
	}

	const E = 210e9
	const side = 0.01
	const L = 0.1
	const F = 1.0
	I := side * side * side * side / 12.0
	want := -F * L * L * L / (3 * E * I)

	for _, nid := range []int{40, 41, 42, 43} {
		d, ok := res.Displacement(nid)
		if !ok {
			tst.Fatalf("node %d has no displacement record", nid)
		}
		rel := math.Abs((d.Y - want) / want)
		if rel > 0.10 {
			tst.Fatalf("node %d: u_y = %.6e, want ~%.6e (rel err %.4f)", nid, d.Y, want, rel)
		}
	}
}
