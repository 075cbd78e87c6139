// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package result

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Export serializes c to the line-oriented text format of spec.md §6: a
// `# Mesh:`/`# Solver Type:` metadata header, then one bare-keyword section
// per non-empty record kind, one whitespace-separated record per line.
// Grounded on gofem's out package text-reporting idiom (io.Sf-built lines),
// generalized from ad hoc print statements to a defined, round-trippable
// grammar.
func (c *Container) Export() string {
	var buf bytes.Buffer
	buf.WriteString(io.Sf("# Mesh: %s\n", c.MeshID))
	buf.WriteString(io.Sf("# Solver Type: %d\n", c.SolverType))

	if ds := c.Displacements(); len(ds) > 0 {
		buf.WriteString("Displacements\n")
		for _, d := range ds {
			buf.WriteString(io.Sf("%d %s %s %s %s\n", d.NodeID, f64(d.X), f64(d.Y), f64(d.Z), f64(d.Magnitude)))
		}
	}
	if ss := c.Stresses(); len(ss) > 0 {
		buf.WriteString("Stresses\n")
		for _, s := range ss {
			buf.WriteString(io.Sf("%d %s %s %s %s %s %s %s %s %s %s %s\n",
				s.ElemID, f64(s.Sxx), f64(s.Syy), f64(s.Szz), f64(s.Sxy), f64(s.Syz), f64(s.Sxz),
				f64(s.VonMises), f64(s.SigmaI), f64(s.SigmaII), f64(s.SigmaIII), f64(s.TauMax)))
		}
	}
	if es := c.Strains(); len(es) > 0 {
		buf.WriteString("Strains\n")
		for _, e := range es {
			buf.WriteString(io.Sf("%d %s %s %s %s %s %s %s %s %s %s\n",
				e.ElemID, f64(e.Exx), f64(e.Eyy), f64(e.Ezz), f64(e.Exy), f64(e.Eyz), f64(e.Exz),
				f64(e.EpsI), f64(e.EpsII), f64(e.EpsIII), f64(e.GammaMaxHalf)))
		}
	}
	if rs := c.Reactions(); len(rs) > 0 {
		buf.WriteString("ReactionForces\n")
		for _, r := range rs {
			buf.WriteString(io.Sf("%d %s %s %s %s\n", r.NodeID, f64(r.Fx), f64(r.Fy), f64(r.Fz), f64(r.Magnitude)))
		}
	}
	if fs := c.Frequencies(); len(fs) > 0 {
		buf.WriteString("Frequencies\n")
		for _, fr := range fs {
			buf.WriteString(io.Sf("%d %s %s %s\n", fr.Mode, f64(fr.F), f64(fr.T), f64(fr.Omega)))
		}
	}
	if ms := c.ModeShapes(); len(ms) > 0 {
		buf.WriteString("ModeShapes\n")
		for _, m := range ms {
			buf.WriteString(io.Sf("%d %d %s %s %s %s\n", m.NodeID, m.Mode, f64(m.X), f64(m.Y), f64(m.Z), f64(m.Magnitude)))
		}
	}
	if len(c.loadSteps) > 0 {
		buf.WriteString("LoadSteps\n")
		for _, ls := range c.loadSteps {
			fields := make([]string, 0, len(ls.U)+1)
			fields = append(fields, f64(ls.Lambda))
			for _, u := range ls.U {
				fields = append(fields, f64(u))
			}
			buf.WriteString(strings.Join(fields, " "))
			buf.WriteString("\n")
		}
	}
	return buf.String()
}

// ExportFile writes Export's text to path via gosl/io.WriteFile, matching
// the teacher's file-output idiom (tools/PlotLrm.go: io.WriteFile(fn, &buf)).
func (c *Container) ExportFile(path string) error {
	buf := bytes.NewBufferString(c.Export())
	return io.WriteFile(path, buf)
}

// f64 formats v with full double precision so Import round-trips every
// value to within 1e-15 relative (spec.md §8 invariant 10).
func f64(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}

// section names, matched verbatim against the bare-keyword header lines.
const (
	secDisplacements   = "Displacements"
	secStresses        = "Stresses"
	secStrains         = "Strains"
	secReactionForces  = "ReactionForces"
	secFrequencies     = "Frequencies"
	secModeShapes      = "ModeShapes"
	secLoadSteps       = "LoadSteps"
)

// Import parses the inverse of Export. Unrecognized `#` comment lines are
// ignored; `# Mesh:`/`# Solver Type:` are the two recognized metadata
// lines (spec.md §6).
func Import(data string) (*Container, error) {
	c := New("", 0)
	section := ""
	for _, raw := range strings.Split(data, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			rest := strings.TrimSpace(strings.TrimPrefix(line, "#"))
			if v, ok := cutPrefix(rest, "Mesh:"); ok {
				c.MeshID = strings.TrimSpace(v)
			} else if v, ok := cutPrefix(rest, "Solver Type:"); ok {
				n, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil {
					return nil, chk.Err("result: bad Solver Type metadata %q: %v", v, err)
				}
				c.SolverType = n
			}
			continue
		}
		switch line {
		case secDisplacements, secStresses, secStrains, secReactionForces, secFrequencies, secModeShapes, secLoadSteps:
			section = line
			continue
		}
		fields := strings.Fields(line)
		if err := importRecord(c, section, fields); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ImportFile reads path via gosl/io.ReadFile and parses it with Import.
func ImportFile(path string) (*Container, error) {
	buf, err := io.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Import(string(buf))
}

func cutPrefix(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return s[len(prefix):], true
	}
	return "", false
}

func importRecord(c *Container, section string, f []string) error {
	atoi := func(s string) int { n, _ := strconv.Atoi(s); return n }
	atof := func(s string) float64 { v, _ := strconv.ParseFloat(s, 64); return v }
	switch section {
	case secDisplacements:
		if len(f) != 5 {
			return chk.Err("result: malformed Displacement record %v", f)
		}
		c.AddDisplacement(Displacement{NodeID: atoi(f[0]), X: atof(f[1]), Y: atof(f[2]), Z: atof(f[3]), Magnitude: atof(f[4])})
	case secStresses:
		if len(f) != 12 {
			return chk.Err("result: malformed Stress record %v", f)
		}
		c.AddStress(Stress{
			ElemID: atoi(f[0]),
			Sxx:    atof(f[1]), Syy: atof(f[2]), Szz: atof(f[3]),
			Sxy: atof(f[4]), Syz: atof(f[5]), Sxz: atof(f[6]),
			VonMises: atof(f[7]),
			SigmaI:   atof(f[8]), SigmaII: atof(f[9]), SigmaIII: atof(f[10]),
			TauMax: atof(f[11]),
		})
	case secStrains:
		if len(f) != 11 {
			return chk.Err("result: malformed Strain record %v", f)
		}
		c.AddStrain(Strain{
			ElemID: atoi(f[0]),
			Exx:    atof(f[1]), Eyy: atof(f[2]), Ezz: atof(f[3]),
			Exy: atof(f[4]), Eyz: atof(f[5]), Exz: atof(f[6]),
			EpsI: atof(f[7]), EpsII: atof(f[8]), EpsIII: atof(f[9]),
			GammaMaxHalf: atof(f[10]),
		})
	case secReactionForces:
		if len(f) != 5 {
			return chk.Err("result: malformed ReactionForce record %v", f)
		}
		c.AddReaction(ReactionForce{NodeID: atoi(f[0]), Fx: atof(f[1]), Fy: atof(f[2]), Fz: atof(f[3]), Magnitude: atof(f[4])})
	case secFrequencies:
		if len(f) != 4 {
			return chk.Err("result: malformed Frequency record %v", f)
		}
		c.AddFrequency(Frequency{Mode: atoi(f[0]), F: atof(f[1]), T: atof(f[2]), Omega: atof(f[3])})
	case secModeShapes:
		if len(f) != 6 {
			return chk.Err("result: malformed ModeShape record %v", f)
		}
		c.AddModeShape(ModeShape{NodeID: atoi(f[0]), Mode: atoi(f[1]), X: atof(f[2]), Y: atof(f[3]), Z: atof(f[4]), Magnitude: atof(f[5])})
	case secLoadSteps:
		if len(f) < 1 {
			return chk.Err("result: malformed LoadStep record %v", f)
		}
		u := make([]float64, len(f)-1)
		for i, s := range f[1:] {
			u[i] = atof(s)
		}
		c.AddLoadStep(LoadStep{Lambda: atof(f[0]), U: u})
	default:
		return chk.Err("result: data record outside any recognized section: %v", f)
	}
	return nil
}
