// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import "github.com/snowmannn129/rebelcad-fea/ferr"

// AnalysisType tags the thermal solver's two analysis modes (spec.md §6).
type AnalysisType int

const (
	SteadyState AnalysisType = iota
	Transient
)

func (a AnalysisType) String() string {
	switch a {
	case SteadyState:
		return "SteadyState"
	case Transient:
		return "Transient"
	}
	return "Unknown"
}

// ThermalTimeIntegration tags the transient thermal time-stepping scheme
// (spec.md §4.8: "Implicit Euler by default... Crank-Nicolson and explicit
// Euler are alternative settings").
type ThermalTimeIntegration int

const (
	ImplicitEuler ThermalTimeIntegration = iota
	CrankNicolson
	ExplicitEuler
)

func (t ThermalTimeIntegration) String() string {
	switch t {
	case ImplicitEuler:
		return "ImplicitEuler"
	case CrankNicolson:
		return "CrankNicolson"
	case ExplicitEuler:
		return "ExplicitEuler"
	}
	return "Unknown"
}

// Thermal is the thermal solver's settings record, per spec.md §6.
type Thermal struct {
	AnalysisType          AnalysisType           `json:"analysis_type"`
	TimeIntegrationMethod ThermalTimeIntegration `json:"time_integration_method"`
	StartTime             float64                `json:"start_time"`
	EndTime               float64                `json:"end_time"`
	TimeStep              float64                `json:"time_step"`
	Tolerance             float64                `json:"tolerance"`
	AmbientTemp           float64                `json:"ambient_temp"` // default 20 (degC), spec.md §4.8
}

// DefaultThermal returns steady-state settings with the spec's default
// ambient temperature.
func DefaultThermal() Thermal {
	return Thermal{AnalysisType: SteadyState, Tolerance: 1e-8, AmbientTemp: 20.0}
}

// Validate checks the field constraints for the thermal settings record.
func (s Thermal) Validate() error {
	if s.Tolerance <= 0 {
		return ferr.New(ferr.InvalidSettings, "thermal: tolerance must be > 0, got %g", s.Tolerance)
	}
	if s.AnalysisType == Transient {
		if s.TimeStep <= 0 {
			return ferr.New(ferr.InvalidSettings, "thermal: time_step must be > 0 for Transient analysis, got %g", s.TimeStep)
		}
		if s.EndTime <= s.StartTime {
			return ferr.New(ferr.InvalidSettings, "thermal: end_time must be > start_time, got start=%g end=%g", s.StartTime, s.EndTime)
		}
	}
	return nil
}
