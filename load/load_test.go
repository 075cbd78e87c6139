// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package load

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/snowmannn129/rebelcad-fea/mesh"
)

func Test_load01(tst *testing.T) {
	chk.PrintTitle("load01: static point force scales to 1.0")
	l := &Load{Name: "tip", Kind: PointForce, Group: "tip-node", Variation: Static, Components: [3]float64{0, -1, 0}}
	if s := l.ScaleAt(123.0); s != 1.0 {
		tst.Errorf("expected static scale 1.0, got %v", s)
	}
}

func Test_load02(tst *testing.T) {
	chk.PrintTitle("load02: harmonic load scales via Fcn")
	l := &Load{Name: "osc", Kind: BodyForce, Group: "all", Variation: Harmonic, Fcn: &fun.Cte{C: 2.5}}
	if s := l.ScaleAt(0.0); s != 2.5 {
		tst.Errorf("expected scale 2.5, got %v", s)
	}
}

func Test_load03(tst *testing.T) {
	chk.PrintTitle("load03: missing group rejection")
	m := mesh.New()
	m.AddNode(mesh.Node{ID: 0})
	l := &Load{Name: "ghost", Kind: PointForce, Group: "nope"}
	if l.IsValid(m) {
		tst.Errorf("expected invalid load to be rejected")
	}
}
