// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/snowmannn129/rebelcad-fea/bc"
	"github.com/snowmannn129/rebelcad-fea/load"
	"github.com/snowmannn129/rebelcad-fea/settings"
)

// clampedRodBCs fixes the x=0 face completely and zeroes the lateral (y,z)
// displacement of every node, collapsing the 3D hexa rod into an
// effectively 1D axial bar (spec.md §8 scenario-3's "fixed-free rod").
func clampedRodBCs() *bc.Set {
	bcs := bc.NewSet()
	bcs.Add(fixFace("base", "xmin"))
	bcs.Add(&bc.BC{Name: "lateral", Kind: bc.Displacement, Group: "all", Direction: [3]float64{0, 1, 1}, Value: 0})
	return bcs
}

func Test_dynamic01_axialBarFirstMode(tst *testing.T) {
	chk.PrintTitle("dynamic01: fixed-free rod first axial mode within 20% of f1=(1/4L)*sqrt(E/rho)")
	m, lib := rodMesh(tst)
	bcs := clampedRodBCs()
	loads := load.NewSet()

	s := settings.DefaultDynamic()
	s.NumModes = 3
	s.NumSteps = 1
	s.SaveInterval = 1

	res, err := Dynamic(m, lib, bcs, loads, s, 0, Context{})
	if err != nil {
		tst.Fatalf("%v", err)
	}

	const E = 210e9
	const rho = 7850.0
	const L = 0.1
	want := (1.0 / (4 * L)) * math.Sqrt(E/rho)

	f1, ok := res.Frequency(1)
	if !ok {
		tst.Fatalf("expected a mode-1 frequency record")
	}
	rel := math.Abs(f1.F-want) / want
	if rel > 0.20 {
		tst.Fatalf("mode 1: f = %.6g Hz, want ~%.6g Hz (rel err %.4f)", f1.F, want, rel)
	}

	// Omega/T are derived consistently from F (invariant: omega=2*pi*f, T=1/f).
	if math.Abs(f1.Omega-2*math.Pi*f1.F) > 1e-6*f1.Omega {
		tst.Fatalf("mode 1: omega = %g, want 2*pi*f = %g", f1.Omega, 2*math.Pi*f1.F)
	}
	if math.Abs(f1.T-1.0/f1.F) > 1e-9 {
		tst.Fatalf("mode 1: T = %g, want 1/f = %g", f1.T, 1.0/f1.F)
	}

	for modeN := 1; modeN <= 3; modeN++ {
		if _, ok := res.Frequency(modeN); !ok {
			tst.Fatalf("expected a frequency record for mode %d", modeN)
		}
	}
	for modeN := 2; modeN <= 3; modeN++ {
		prev, _ := res.Frequency(modeN - 1)
		cur, _ := res.Frequency(modeN)
		if cur.F <= prev.F {
			tst.Fatalf("mode frequencies not strictly increasing: mode %d f=%g <= mode %d f=%g", modeN, cur.F, modeN-1, prev.F)
		}
	}

	tipBase := 4 * 10
	shape, ok := res.ModeShape(tipBase, 1)
	if !ok {
		tst.Fatalf("expected a mode-1 shape record at the tip node")
	}
	if shape.Magnitude <= 0 {
		tst.Fatalf("mode 1 tip shape magnitude should be non-zero, got %g", shape.Magnitude)
	}
}

func Test_dynamic02_newmarkTimeIntegration(tst *testing.T) {
	chk.PrintTitle("dynamic02: Newmark time integration runs a step force to completion without diverging")
	m, lib := rodMesh(tst)
	bcs := clampedRodBCs()
	loads := load.NewSet()
	loads.Add(&load.Load{Name: "tip-step", Kind: load.PointForce, Group: "xmax", Components: [3]float64{1000, 0, 0}, Variation: load.Static})

	s := settings.DefaultDynamic()
	s.NumModes = 0
	s.TimeStep = 1e-6
	s.NumSteps = 50
	s.SaveInterval = 5

	res, err := Dynamic(m, lib, bcs, loads, s, 0, Context{})
	if err != nil {
		tst.Fatalf("%v", err)
	}

	steps := res.LoadSteps()
	if len(steps) != 10 {
		tst.Fatalf("expected 10 saved snapshots (50 steps / save_interval 5), got %d", len(steps))
	}
	for i, step := range steps {
		for _, v := range step.U {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				tst.Fatalf("step %d: displacement field contains NaN/Inf", i)
			}
			if math.Abs(v) > 1.0 {
				tst.Fatalf("step %d: displacement %g m is implausibly large for a 0.1 m rod, integration likely diverged", i, v)
			}
		}
	}
}
