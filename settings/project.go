// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"encoding/json"

	"github.com/cpmech/gosl/io"
	"github.com/snowmannn129/rebelcad-fea/bc"
	"github.com/snowmannn129/rebelcad-fea/ferr"
	"github.com/snowmannn129/rebelcad-fea/load"
	"github.com/snowmannn129/rebelcad-fea/material"
	"github.com/snowmannn129/rebelcad-fea/mesh"
)

// nodeDecl/elementDecl/... are the JSON-tagged wire shapes for a project
// file's mesh/material/bc/load declarations, mirroring inp/mat.go's
// JSON-tagged Material/MatDb records: the wire format is a thin declarative
// shell decoded into this module's own constructor-validated domain types
// (mesh.Mesh, material.Library, bc.Set, load.Set), not used directly.
type nodeDecl struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}

type elementDecl struct {
	ID       int    `json:"id"`
	Kind     string `json:"kind"`
	NodeIDs  []int  `json:"node_ids"`
	Material string `json:"material"`
}

type nodeGroupDecl struct {
	Name    string `json:"name"`
	NodeIDs []int  `json:"node_ids"`
}

type elementGroupDecl struct {
	Name       string `json:"name"`
	ElementIDs []int  `json:"element_ids"`
	Material   string `json:"material"`
}

type meshDecl struct {
	DofsPerNode   int                `json:"dofs_per_node"`
	Nodes         []nodeDecl         `json:"nodes"`
	Elements      []elementDecl      `json:"elements"`
	NodeGroups    []nodeGroupDecl    `json:"node_groups"`
	ElementGroups []elementGroupDecl `json:"element_groups"`
}

type materialDecl struct {
	Name    string             `json:"name"`
	Variant string             `json:"variant"`
	Props   map[string]float64 `json:"props"`
}

type bcDecl struct {
	Name        string     `json:"name"`
	Kind        string     `json:"kind"`
	Group       string     `json:"group"`
	Direction   [3]float64 `json:"direction"`
	Value       float64    `json:"value"`
	Components  [3]float64 `json:"components"`
	Pressure    float64    `json:"pressure"`
	Temp        float64    `json:"temp"`
	Flux        float64    `json:"flux"`
	FilmCoeff   float64    `json:"film_coeff"`
	AmbientTemp float64    `json:"ambient_temp"`
	NormalAxis  int        `json:"normal_axis"`
}

type loadDecl struct {
	Name       string     `json:"name"`
	Kind       string     `json:"kind"`
	Group      string     `json:"group"`
	Variation  string     `json:"variation"`
	Components [3]float64 `json:"components"`
	Scalar     float64    `json:"scalar"`
	Center     [3]float64 `json:"center"`
	Axis       [3]float64 `json:"axis"`
	Omega      float64    `json:"omega"`
}

// Project is the combined JSON project file: one mesh, its material
// declarations, its BC/load declarations, and optional analysis settings
// (SPEC_FULL.md §6's supplemented feature — gofem itself splits this across
// separate `.msh`/`.mat`/`.sim` files; this repository's core has no file
// façade for mesh import, spec.md §6, so it accepts the mesh inline instead).
type Project struct {
	Mesh      meshDecl       `json:"mesh"`
	Materials []materialDecl `json:"materials"`
	BCs       []bcDecl       `json:"bcs"`
	Loads     []loadDecl     `json:"loads"`
	Nonlinear *Nonlinear     `json:"nonlinear,omitempty"`
	Dynamic   *Dynamic       `json:"dynamic,omitempty"`
	Thermal   *Thermal       `json:"thermal,omitempty"`
}

// LoadProject reads a single JSON project file and decodes it into the
// domain's own mesh/material/bc/load types, following inp.ReadMat's
// read-file -> json.Unmarshal -> validate pipeline (io.ReadFile then
// encoding/json, per inp/mat.go:ReadMat / inp/sim.go:ReadSim).
func LoadProject(path string) (*mesh.Mesh, *material.Library, *bc.Set, *load.Set, *Project, error) {
	buf, err := io.ReadFile(path)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	var p Project
	if err := json.Unmarshal(buf, &p); err != nil {
		return nil, nil, nil, nil, nil, ferr.New(ferr.InvalidSettings, "settings: cannot decode project file %q: %v", path, err)
	}

	lib := material.NewLibrary()
	handles := map[string]int{}
	for _, md := range p.Materials {
		variant, err := parseVariant(md.Variant)
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		m, err := material.New(md.Name, variant, md.Props)
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		handle, err := lib.Add(m)
		if err != nil {
			return nil, nil, nil, nil, nil, ferr.New(ferr.InvalidSettings, "%v", err)
		}
		handles[md.Name] = handle
	}
	materialHandle := func(name string) int {
		if name == "" {
			return mesh.NoMaterial
		}
		if h, ok := handles[name]; ok {
			return h
		}
		return mesh.NoMaterial
	}

	m := mesh.New()
	for _, nd := range p.Mesh.Nodes {
		if err := m.AddNode(mesh.Node{ID: nd.ID, X: nd.X, Y: nd.Y, Z: nd.Z}); err != nil {
			return nil, nil, nil, nil, nil, err
		}
	}
	for _, ed := range p.Mesh.Elements {
		kind, err := parseKind(ed.Kind)
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		if err := m.AddElement(mesh.Element{ID: ed.ID, Kind: kind, NodeIDs: ed.NodeIDs, Material: materialHandle(ed.Material)}); err != nil {
			return nil, nil, nil, nil, nil, err
		}
	}
	for _, ng := range p.Mesh.NodeGroups {
		if err := m.AddNodeGroup(mesh.NodeGroup{Name: ng.Name, NodeIDs: ng.NodeIDs}); err != nil {
			return nil, nil, nil, nil, nil, err
		}
	}
	for _, eg := range p.Mesh.ElementGroups {
		if err := m.AddElementGroup(mesh.ElementGroup{Name: eg.Name, ElementIDs: eg.ElementIDs, Material: materialHandle(eg.Material)}); err != nil {
			return nil, nil, nil, nil, nil, err
		}
	}
	if err := m.Validate(); err != nil {
		return nil, nil, nil, nil, nil, err
	}
	dofsPerNode := p.Mesh.DofsPerNode
	if dofsPerNode == 0 {
		dofsPerNode = 3
	}
	if err := m.AssignDofs(dofsPerNode); err != nil {
		return nil, nil, nil, nil, nil, err
	}

	bcs := bc.NewSet()
	for _, bd := range p.BCs {
		kind, err := parseBCKind(bd.Kind)
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		bcs.Add(&bc.BC{
			Name: bd.Name, Kind: kind, Group: bd.Group,
			Direction: bd.Direction, Value: bd.Value,
			Components: bd.Components, Pressure: bd.Pressure,
			Temp: bd.Temp, Flux: bd.Flux,
			FilmCoeff: bd.FilmCoeff, AmbientTemp: bd.AmbientTemp,
			NormalAxis: bd.NormalAxis,
		})
	}

	loads := load.NewSet()
	for _, ld := range p.Loads {
		kind, err := parseLoadKind(ld.Kind)
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		variation, err := parseVariation(ld.Variation)
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		loads.Add(&load.Load{
			Name: ld.Name, Kind: kind, Group: ld.Group, Variation: variation,
			Components: ld.Components, Scalar: ld.Scalar,
			Center: ld.Center, Axis: ld.Axis, Omega: ld.Omega,
		})
	}

	return m, lib, bcs, loads, &p, nil
}

func parseKind(s string) (mesh.Kind, error) {
	switch s {
	case "Beam":
		return mesh.Beam, nil
	case "Triangle":
		return mesh.Triangle, nil
	case "Quad":
		return mesh.Quad, nil
	case "Tetra":
		return mesh.Tetra, nil
	case "Hexa":
		return mesh.Hexa, nil
	case "Pyramid":
		return mesh.Pyramid, nil
	case "Prism":
		return mesh.Prism, nil
	}
	return 0, ferr.New(ferr.InvalidMesh, "settings: unknown element kind %q", s)
}

func parseVariant(s string) (material.Variant, error) {
	switch s {
	case "Isotropic":
		return material.Isotropic, nil
	case "Orthotropic":
		return material.Orthotropic, nil
	case "Anisotropic":
		return material.Anisotropic, nil
	case "Hyperelastic":
		return material.Hyperelastic, nil
	case "ElastoPlastic":
		return material.ElastoPlastic, nil
	case "Viscoelastic":
		return material.Viscoelastic, nil
	case "Composite":
		return material.Composite, nil
	}
	return 0, ferr.New(ferr.InvalidProperty, "settings: unknown material variant %q", s)
}

func parseBCKind(s string) (bc.Kind, error) {
	switch s {
	case "Displacement":
		return bc.Displacement, nil
	case "Force":
		return bc.Force, nil
	case "Pressure":
		return bc.Pressure, nil
	case "Temperature":
		return bc.Temperature, nil
	case "HeatFlux":
		return bc.HeatFlux, nil
	case "Convection":
		return bc.Convection, nil
	case "Symmetry":
		return bc.Symmetry, nil
	case "Contact":
		return bc.Contact, nil
	}
	return 0, ferr.New(ferr.InvalidBoundaryCondition, "settings: unknown BC kind %q", s)
}

func parseLoadKind(s string) (load.Kind, error) {
	switch s {
	case "PointForce":
		return load.PointForce, nil
	case "LineForce":
		return load.LineForce, nil
	case "SurfacePressure":
		return load.SurfacePressure, nil
	case "BodyForce":
		return load.BodyForce, nil
	case "Moment":
		return load.Moment, nil
	case "Acceleration":
		return load.Acceleration, nil
	case "Centrifugal":
		return load.Centrifugal, nil
	case "Thermal":
		return load.Thermal, nil
	case "Pretension":
		return load.Pretension, nil
	}
	return 0, ferr.New(ferr.InvalidLoad, "settings: unknown load kind %q", s)
}

func parseVariation(s string) (load.TimeVariation, error) {
	switch s {
	case "", "Static":
		return load.Static, nil
	case "Transient":
		return load.Transient, nil
	case "Harmonic":
		return load.Harmonic, nil
	case "Random":
		return load.Random, nil
	}
	return 0, ferr.New(ferr.InvalidLoad, "settings: unknown load time variation %q", s)
}
