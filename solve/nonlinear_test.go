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

func Test_nonlinear01_loadSteppingConvergence(tst *testing.T) {
	chk.PrintTitle("nonlinear01: 10 load steps, u_x(x=1) scales linearly with lambda")
	m, lib := unitCubeMesh(tst)
	bcs := bc.NewSet()
	bcs.Add(fixFace("base", "xmin"))
	loads := load.NewSet()
	loads.Add(&load.Load{Name: "tip-pull", Kind: load.PointForce, Group: "xmax", Components: [3]float64{0.25, 0, 0}})

	s := settings.DefaultNonlinear()
	s.AdaptiveLoadStepping = false // deterministic 1/num_load_steps stepping (spec.md §8 scenario 5)
	s.NonlinearityType = settings.Linear

	res, err := Nonlinear(m, lib, bcs, loads, s, 0, Context{})
	if err != nil {
		tst.Fatalf("%v", err)
	}

	steps := res.LoadSteps()
	if len(steps) != 10 {
		tst.Fatalf("expected 10 load-step snapshots, got %d", len(steps))
	}
	const uAtOne = 1.0 / 210e9
	prevLambda := 0.0
	for i, step := range steps {
		wantLambda := float64(i+1) * 0.1
		if math.Abs(step.Lambda-wantLambda) > 1e-9 {
			tst.Fatalf("step %d: lambda = %g, want %g", i, step.Lambda, wantLambda)
		}
		if step.Lambda <= prevLambda {
			tst.Fatalf("load factor not strictly increasing at step %d: %g <= %g", i, step.Lambda, prevLambda)
		}
		prevLambda = step.Lambda

		want := step.Lambda * uAtOne
		// u_x(x=1) lives at node 1's first DOF (node 1 is in the "xmax" group).
		got := step.U[1*3+0]
		rel := math.Abs(got-want) / want
		if rel > 1e-6 {
			tst.Fatalf("step %d: u_x(x=1) = %.10e, want %.10e (rel err %.3e)", i, got, want, rel)
		}
	}

	final := res.Displacements()
	if len(final) == 0 {
		tst.Fatalf("expected the converged displacement field to be recovered")
	}
}

func Test_nonlinear02_invalidSettingsRejected(tst *testing.T) {
	chk.PrintTitle("nonlinear02: an invalid settings record is rejected before touching the mesh")
	m, lib := unitCubeMesh(tst)
	bcs := bc.NewSet()
	loads := load.NewSet()

	s := settings.DefaultNonlinear()
	s.NumLoadSteps = 0 // invalid: must be >= 1

	_, err := Nonlinear(m, lib, bcs, loads, s, 0, Context{})
	if err == nil {
		tst.Fatalf("expected an error for num_load_steps = 0")
	}
}
