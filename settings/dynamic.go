// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import "github.com/snowmannn129/rebelcad-fea/ferr"

// TimeIntegrationMethod tags the five time-integration schemes of spec.md
// §4.7's scheme table.
type TimeIntegrationMethod int

const (
	Newmark TimeIntegrationMethod = iota
	HHTAlpha
	CentralDifference
	WilsonTheta
	Bathe
)

func (m TimeIntegrationMethod) String() string {
	switch m {
	case Newmark:
		return "Newmark"
	case HHTAlpha:
		return "HHTAlpha"
	case CentralDifference:
		return "CentralDifference"
	case WilsonTheta:
		return "WilsonTheta"
	case Bathe:
		return "Bathe"
	}
	return "Unknown"
}

// Dynamic is the dynamic solver's settings record: modal-extraction count
// plus the chosen time-integration scheme and its parameters, per spec.md
// §4.7/§6.
type Dynamic struct {
	Method     TimeIntegrationMethod `json:"method"`
	NumModes   int                   `json:"num_modes"`
	TimeStep   float64               `json:"time_step"`
	NumSteps   int                   `json:"num_steps"`
	SaveInterval int                 `json:"save_interval"`

	NewmarkBeta  float64 `json:"newmark_beta"`  // default 0.25
	NewmarkGamma float64 `json:"newmark_gamma"` // default 0.5

	HHTAlphaParam float64 `json:"hht_alpha"` // default -0.1, in [-1/3, 0]

	WilsonTheta float64 `json:"wilson_theta"` // default 1.4, >= 1.37 for stability

	RayleighAlpha float64 `json:"rayleigh_alpha"` // mass-proportional damping
	RayleighBeta  float64 `json:"rayleigh_beta"`  // stiffness-proportional damping

	SafetyFactor float64 `json:"safety_factor"` // explicit critical-Δt safety factor, default 0.9

	AdaptiveTimeStepping bool    `json:"adaptive_time_stepping"`
	MinTimeStep          float64 `json:"min_time_step"`
	MaxTimeStep          float64 `json:"max_time_step"`
}

// DefaultDynamic returns the scheme-literature default parameters of
// spec.md §4.7's table (Newmark average-acceleration, unconditionally
// stable).
func DefaultDynamic() Dynamic {
	return Dynamic{
		Method:        Newmark,
		NumModes:      6,
		TimeStep:      1e-3,
		NumSteps:      100,
		SaveInterval:  1,
		NewmarkBeta:   0.25,
		NewmarkGamma:  0.5,
		HHTAlphaParam: -0.1,
		WilsonTheta:   1.4,
		SafetyFactor:  0.9,
	}
}

// Validate checks the time-integration-scheme stability ranges of spec.md
// §4.7's table plus the common step/mode-count fields.
func (s Dynamic) Validate() error {
	if s.NumModes < 0 {
		return ferr.New(ferr.InvalidSettings, "dynamic: num_modes must be >= 0, got %d", s.NumModes)
	}
	if s.TimeStep <= 0 {
		return ferr.New(ferr.InvalidSettings, "dynamic: time_step must be > 0, got %g", s.TimeStep)
	}
	if s.NumSteps < 1 {
		return ferr.New(ferr.InvalidSettings, "dynamic: num_steps must be >= 1, got %d", s.NumSteps)
	}
	if s.SaveInterval < 1 {
		return ferr.New(ferr.InvalidSettings, "dynamic: save_interval must be >= 1, got %d", s.SaveInterval)
	}
	switch s.Method {
	case Newmark:
		if !(2*s.NewmarkBeta >= s.NewmarkGamma && s.NewmarkGamma >= 0.5) {
			return ferr.New(ferr.InvalidSettings, "dynamic: Newmark requires 2*beta >= gamma >= 0.5, got beta=%g gamma=%g", s.NewmarkBeta, s.NewmarkGamma)
		}
	case HHTAlpha:
		if s.HHTAlphaParam < -1.0/3.0 || s.HHTAlphaParam > 0 {
			return ferr.New(ferr.InvalidSettings, "dynamic: HHT-alpha requires alpha in [-1/3, 0], got %g", s.HHTAlphaParam)
		}
	case WilsonTheta:
		if s.WilsonTheta < 1.37 {
			return ferr.New(ferr.InvalidSettings, "dynamic: Wilson-theta requires theta >= 1.37 for unconditional stability, got %g", s.WilsonTheta)
		}
	case CentralDifference:
		if s.SafetyFactor <= 0 {
			return ferr.New(ferr.InvalidSettings, "dynamic: CentralDifference requires safety_factor > 0, got %g", s.SafetyFactor)
		}
		// The Δt <= Δt_crit bound itself is checked at solve time against
		// the assembled mesh (spec.md §4.7's "Critical time step"), not here.
	case Bathe:
		// Bathe's two-substep scheme has no free parameter to validate.
	}
	if s.AdaptiveTimeStepping {
		if s.MinTimeStep <= 0 || s.MinTimeStep > s.MaxTimeStep {
			return ferr.New(ferr.InvalidSettings, "dynamic: min_time_step must be > 0 and <= max_time_step")
		}
	}
	return nil
}
