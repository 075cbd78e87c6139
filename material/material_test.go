// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/snowmannn129/rebelcad-fea/ferr"
)

func Test_material01(tst *testing.T) {
	chk.PrintTitle("material01: isotropic derived properties")
	m, err := IsotropicDefaults("steel", 210e9, 0.3, 7850)
	if err != nil {
		tst.Fatalf("construction failed: %v", err)
	}
	G, _ := m.Get("shear_modulus")
	K, _ := m.Get("bulk_modulus")
	chk.Scalar(tst, "G", 1e-2, G, 210e9/(2*1.3))
	chk.Scalar(tst, "K", 1e-2, K, 210e9/(3*0.4))
}

func Test_material02(tst *testing.T) {
	chk.PrintTitle("material02: forbidden property access fails InvalidProperty")
	m, err := New("fiber", Orthotropic, map[string]float64{"density": 1800})
	if err != nil {
		tst.Fatalf("construction failed: %v", err)
	}
	_, err = m.Get("youngs_modulus")
	if err == nil {
		tst.Fatalf("expected InvalidProperty error")
	}
	if !ferr.Is(err, ferr.InvalidProperty) {
		tst.Errorf("expected InvalidProperty kind, got %v", err)
	}
}

func Test_material03(tst *testing.T) {
	chk.PrintTitle("material03: invalid poisson ratio rejected at construction")
	_, err := IsotropicDefaults("bad", 1e9, 0.6, 2000)
	if err == nil {
		tst.Fatalf("expected rejection of nu=0.6")
	}
}

func Test_material04(tst *testing.T) {
	chk.PrintTitle("material04: library handles resolve by name")
	lib := NewLibrary()
	steel, _ := IsotropicDefaults("steel", 210e9, 0.3, 7850)
	h, err := lib.Add(steel)
	if err != nil {
		tst.Fatalf("add failed: %v", err)
	}
	h2, ok := lib.ByName("steel")
	if !ok || h2 != h {
		tst.Errorf("ByName mismatch")
	}
	got, ok := lib.At(h)
	if !ok || got.Name != "steel" {
		tst.Errorf("At mismatch")
	}
	if _, ok := lib.At(-1); ok {
		tst.Errorf("expected NoMaterial handle to miss")
	}
}
