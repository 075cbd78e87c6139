// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package result

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_result01(tst *testing.T) {
	chk.PrintTitle("result01: O(1) accessors and O(n) stats on an empty container default to zero")
	c := New("mesh-1", 9)
	if c.MaxDisplacementMagnitude() != 0.0 {
		tst.Fatalf("empty MaxDisplacementMagnitude should be 0.0")
	}
	if c.MaxStress(VonMises) != 0.0 || c.MinStress(VonMises) != 0.0 {
		tst.Fatalf("empty MaxStress/MinStress should be 0.0")
	}
	if c.TotalReactionForce(0) != 0.0 {
		tst.Fatalf("empty TotalReactionForce should be 0.0")
	}
	if _, ok := c.Displacement(42); ok {
		tst.Fatalf("lookup on empty container should miss")
	}
}

func Test_result02(tst *testing.T) {
	chk.PrintTitle("result02: principal-stress ordering and trace invariant")
	sigma := []float64{10, -4, 2, 3, -1, 0.5}
	s := PrincipalStress(7, sigma)
	if !(s.SigmaI >= s.SigmaII && s.SigmaII >= s.SigmaIII) {
		tst.Fatalf("principal stresses not descending: %+v", s)
	}
	trace := s.Sxx + s.Syy + s.Szz
	traceP := s.SigmaI + s.SigmaII + s.SigmaIII
	chk.Scalar(tst, "trace invariant", 1e-9*math.Max(1, math.Abs(trace)), trace, traceP)
}

func Test_result03(tst *testing.T) {
	chk.PrintTitle("result03: von Mises formula consistency")
	sigma := []float64{5, 0, 0, 0, 0, 0} // uniaxial
	s := PrincipalStress(1, sigma)
	chk.Scalar(tst, "uniaxial von Mises == |sigma|", 1e-9, s.VonMises, 5)
}

func Test_result04(tst *testing.T) {
	chk.PrintTitle("result04: export/import round-trips every field (spec.md §8 invariant 10)")
	c := New("unit-cube", 1)
	c.AddDisplacement(Displacement{NodeID: 0, X: 1.0 / 3.0, Y: -2.0 / 7.0, Z: 0, Magnitude: 0.4123456789012345})
	c.AddStress(PrincipalStress(0, []float64{1, -0.3, -0.3, 0.123456789, 0, 0}))
	c.AddStrain(PrincipalStrain(0, []float64{1e-6, -3e-7, -3e-7, 2e-8, 0, 0}))
	c.AddReaction(ReactionForce{NodeID: 3, Fx: -9810.123456789, Fy: 0, Fz: 0, Magnitude: 9810.123456789})
	c.AddFrequency(Frequency{Mode: 1, F: 123.456789, T: 1.0 / 123.456789, Omega: 2 * math.Pi * 123.456789})
	c.AddModeShape(ModeShape{NodeID: 2, Mode: 1, X: 0.70710678, Y: 0, Z: 0, Magnitude: 0.70710678})
	c.AddLoadStep(LoadStep{Lambda: 0.3, U: []float64{0.1, -0.2, 0.333333333333}})

	data := c.Export()
	got, err := Import(data)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	if got.MeshID != c.MeshID || got.SolverType != c.SolverType {
		tst.Fatalf("metadata mismatch: %q/%d vs %q/%d", got.MeshID, got.SolverType, c.MeshID, c.SolverType)
	}

	d0, _ := c.Displacement(0)
	gd0, ok := got.Displacement(0)
	if !ok {
		tst.Fatalf("displacement 0 missing after round-trip")
	}
	chk.Scalar(tst, "disp.X", 1e-15*math.Abs(d0.X), gd0.X, d0.X)
	chk.Scalar(tst, "disp.Y", 1e-15*math.Abs(d0.Y), gd0.Y, d0.Y)
	chk.Scalar(tst, "disp.Magnitude", 1e-15*math.Abs(d0.Magnitude), gd0.Magnitude, d0.Magnitude)

	s0, _ := c.Stress(0)
	gs0, _ := got.Stress(0)
	chk.Scalar(tst, "stress.Sxy", 1e-15*math.Abs(s0.Sxy), gs0.Sxy, s0.Sxy)
	chk.Scalar(tst, "stress.SigmaI", 1e-15*math.Max(1, math.Abs(s0.SigmaI)), gs0.SigmaI, s0.SigmaI)

	r3, _ := c.Reaction(3)
	gr3, _ := got.Reaction(3)
	chk.Scalar(tst, "reaction.Fx", 1e-15*math.Abs(r3.Fx), gr3.Fx, r3.Fx)

	f1, _ := c.Frequency(1)
	gf1, _ := got.Frequency(1)
	chk.Scalar(tst, "frequency.Omega", 1e-15*math.Abs(f1.Omega), gf1.Omega, f1.Omega)

	if len(got.LoadSteps()) != 1 {
		tst.Fatalf("expected 1 load step after round-trip, got %d", len(got.LoadSteps()))
	}
	ls := c.LoadSteps()[0]
	gls := got.LoadSteps()[0]
	chk.Scalar(tst, "loadstep.Lambda", 1e-15, gls.Lambda, ls.Lambda)
	for i := range ls.U {
		chk.Scalar(tst, "loadstep.U[i]", 1e-15*math.Max(1, math.Abs(ls.U[i])), gls.U[i], ls.U[i])
	}
}

func Test_result05(tst *testing.T) {
	chk.PrintTitle("result05: statistical queries over several records")
	c := New("m", 1)
	c.AddStress(PrincipalStress(0, []float64{1, 0, 0, 0, 0, 0}))
	c.AddStress(PrincipalStress(1, []float64{-5, 0, 0, 0, 0, 0}))
	c.AddStress(PrincipalStress(2, []float64{3, 0, 0, 0, 0, 0}))
	chk.Scalar(tst, "max sxx", 1e-12, c.MaxStress(Sxx), 3)
	chk.Scalar(tst, "min sxx", 1e-12, c.MinStress(Sxx), -5)

	c.AddReaction(ReactionForce{NodeID: 0, Fx: -1, Fy: 0, Fz: 0})
	c.AddReaction(ReactionForce{NodeID: 1, Fx: -2, Fy: 0, Fz: 0})
	chk.Scalar(tst, "total reaction Fx", 1e-12, c.TotalReactionForce(0), -3)
}
