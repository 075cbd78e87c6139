// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package material implements the named, tagged material library (C2).
// Grounded on inp.Material/inp.MatDb (JSON-tagged property records with a
// derived-model init step) and msolid's Model registry shape, generalized
// to spec.md's name->f64 property-map model rather than gofem's rate-form
// constitutive interface.
package material

import (
	"github.com/cpmech/gosl/chk"
	"github.com/snowmannn129/rebelcad-fea/ferr"
)

// Variant tags the supported material families (spec.md §3: "Material").
type Variant int

const (
	Isotropic Variant = iota
	Orthotropic
	Anisotropic
	Hyperelastic
	ElastoPlastic
	Viscoelastic
	Composite
)

func (v Variant) String() string {
	switch v {
	case Isotropic:
		return "Isotropic"
	case Orthotropic:
		return "Orthotropic"
	case Anisotropic:
		return "Anisotropic"
	case Hyperelastic:
		return "Hyperelastic"
	case ElastoPlastic:
		return "ElastoPlastic"
	case Viscoelastic:
		return "Viscoelastic"
	case Composite:
		return "Composite"
	}
	return "Unknown"
}

// allowedKeys lists, per variant, the property keys that may be queried.
// Isotropic is the only variant this spec's kernels actually consume; the
// others are declarable (so a material library can name them) but querying
// a key outside this allow-list fails with InvalidProperty, per spec.md §3.
var allowedKeys = map[Variant]map[string]bool{
	Isotropic: {
		"youngs_modulus": true, "poissons_ratio": true, "density": true,
		"thermal_expansion_coeff": true, "thermal_conductivity": true, "specific_heat": true,
		"shear_modulus": true, "bulk_modulus": true, // derived
	},
	Orthotropic: {
		"youngs_modulus_x": true, "youngs_modulus_y": true, "youngs_modulus_z": true,
		"poissons_ratio_xy": true, "poissons_ratio_yz": true, "poissons_ratio_xz": true,
		"shear_modulus_xy": true, "shear_modulus_yz": true, "shear_modulus_xz": true,
		"density": true,
	},
	Anisotropic: {"density": true}, // full 21-constant stiffness tensor is out of this spec's scope
	Hyperelastic: {"density": true},
	ElastoPlastic: {
		"youngs_modulus": true, "poissons_ratio": true, "density": true,
		"yield_stress": true, "hardening_modulus": true,
		"shear_modulus": true, "bulk_modulus": true,
	},
	Viscoelastic: {"density": true},
	Composite:    {"density": true},
}

// Material is a named tagged record whose properties are a name->f64 map,
// with variant-gated access (spec.md §3).
type Material struct {
	Name     string
	Variant  Variant
	Props    map[string]float64
}

// New constructs a Material of the given variant, validating required keys
// for Isotropic and computing its derived shear/bulk moduli. Other variants
// are stored as-is (their constitutive support is outside this spec's
// element kernels beyond Isotropic).
func New(name string, variant Variant, props map[string]float64) (*Material, error) {
	m := &Material{Name: name, Variant: variant, Props: map[string]float64{}}
	for k, v := range props {
		m.Props[k] = v
	}
	if variant == Isotropic {
		if err := m.initIsotropic(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Material) initIsotropic() error {
	E, ok := m.Props["youngs_modulus"]
	if !ok || E <= 0 {
		return ferr.New(ferr.InvalidProperty, "material %q: youngs_modulus must be supplied and > 0", m.Name)
	}
	nu, ok := m.Props["poissons_ratio"]
	if !ok || nu <= -1 || nu > 0.5 {
		return ferr.New(ferr.InvalidProperty, "material %q: poissons_ratio must satisfy -1 < nu <= 0.5", m.Name)
	}
	rho, ok := m.Props["density"]
	if !ok || rho <= 0 {
		return ferr.New(ferr.InvalidProperty, "material %q: density must be supplied and > 0", m.Name)
	}
	m.Props["shear_modulus"] = E / (2 * (1 + nu))
	m.Props["bulk_modulus"] = E / (3 * (1 - 2*nu))
	return nil
}

// Get returns a property value, failing with InvalidProperty if the key is
// not in the variant's allow-list or was never supplied.
func (m *Material) Get(key string) (float64, error) {
	allowed, ok := allowedKeys[m.Variant]
	if !ok || !allowed[key] {
		return 0, ferr.New(ferr.InvalidProperty, "key %q is not valid for variant %s of material %q", key, m.Variant, m.Name)
	}
	v, ok := m.Props[key]
	if !ok {
		return 0, ferr.New(ferr.InvalidProperty, "key %q was not supplied for material %q", key, m.Name)
	}
	return v, nil
}

// MustGet is Get without the error return, for callers (kernel construction)
// that already validated the material at material-library build time.
func (m *Material) MustGet(key string) float64 {
	v, err := m.Get(key)
	if err != nil {
		chk.Panic("%v", err)
	}
	return v
}

// Library is a process-wide-shareable, read-only-during-solve collection of
// named materials, indexed for O(1) lookup by name or handle.
// spec.md §9 ("Shared-pointer ownership graph"): elements hold a material
// *handle* (index into this library), not a pointer.
type Library struct {
	Materials []*Material
	byName    map[string]int
}

// NewLibrary builds an empty material library.
func NewLibrary() *Library {
	return &Library{byName: map[string]int{}}
}

// Add appends a material and returns its handle (index), or an error if the
// name is already registered.
func (l *Library) Add(m *Material) (int, error) {
	if _, dup := l.byName[m.Name]; dup {
		return -1, chk.Err("duplicate material name %q", m.Name)
	}
	idx := len(l.Materials)
	l.byName[m.Name] = idx
	l.Materials = append(l.Materials, m)
	return idx, nil
}

// ByName resolves a material handle by name.
func (l *Library) ByName(name string) (int, bool) {
	idx, ok := l.byName[name]
	return idx, ok
}

// At resolves a material by handle. A negative handle (NoMaterial) returns
// nil, false.
func (l *Library) At(handle int) (*Material, bool) {
	if handle < 0 || handle >= len(l.Materials) {
		return nil, false
	}
	return l.Materials[handle], true
}

// IsotropicDefaults is a convenience constructor for the common case used by
// spec.md §8's worked scenarios (e.g. steel: E=210e9, nu=0.3).
func IsotropicDefaults(name string, E, nu, rho float64) (*Material, error) {
	return New(name, Isotropic, map[string]float64{
		"youngs_modulus": E,
		"poissons_ratio": nu,
		"density":        rho,
	})
}

// ThermalConductivity returns the scalar conductivity k for an isotropic
// material, failing with InvalidProperty if it was not supplied.
func (m *Material) ThermalConductivity() (float64, error) {
	return m.Get("thermal_conductivity")
}
