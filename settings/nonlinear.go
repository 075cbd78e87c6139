// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package settings implements the JSON-tagged solver settings records (§6)
// and the combined-JSON project loader (SPEC_FULL.md §6's supplemented
// feature). Grounded on inp/mat.go's read-decode-validate pipeline and
// inp/sim.go's stage/settings structs.
package settings

import "github.com/snowmannn129/rebelcad-fea/ferr"

// NonlinearMethod tags the supported non-linear solution strategies.
type NonlinearMethod int

const (
	NewtonRaphson NonlinearMethod = iota
	ModifiedNewton
	ArcLength
)

func (m NonlinearMethod) String() string {
	switch m {
	case NewtonRaphson:
		return "NewtonRaphson"
	case ModifiedNewton:
		return "ModifiedNewton"
	case ArcLength:
		return "ArcLength"
	}
	return "Unknown"
}

// NonlinearityType tags the source of non-linearity a step must account for.
type NonlinearityType int

const (
	Linear NonlinearityType = iota
	Geometric
	Material
	Combined
)

func (t NonlinearityType) String() string {
	switch t {
	case Linear:
		return "Linear"
	case Geometric:
		return "Geometric"
	case Material:
		return "Material"
	case Combined:
		return "Combined"
	}
	return "Unknown"
}

// Nonlinear is the non-linear solver's settings record, field-for-field per
// spec.md §6.
type Nonlinear struct {
	Method                  NonlinearMethod  `json:"method"`
	NonlinearityType        NonlinearityType `json:"nonlinearity_type"`
	ConvergenceTolerance    float64          `json:"convergence_tolerance"`
	MaxIterations           int              `json:"max_iterations"`
	LoadIncrementFactor     float64          `json:"load_increment_factor"`
	NumLoadSteps            int              `json:"num_load_steps"`
	AdaptiveLoadStepping    bool             `json:"adaptive_load_stepping"`
	MinLoadStepSize         float64          `json:"min_load_step_size"`
	MaxLoadStepSize         float64          `json:"max_load_step_size"`
	ArcLengthParameter      float64          `json:"arc_length_parameter"`
	UseLineSearch           bool             `json:"use_line_search"`
	LineSearchTolerance     float64          `json:"line_search_tolerance"`
	MaxLineSearchIterations int              `json:"max_line_search_iterations"`
}

// DefaultNonlinear returns the settings used by spec.md §8's load-stepping
// scenario: 10 uniform steps, no adaptivity, no line search.
func DefaultNonlinear() Nonlinear {
	return Nonlinear{
		Method:                  NewtonRaphson,
		NonlinearityType:        Linear,
		ConvergenceTolerance:    1e-6,
		MaxIterations:           25,
		LoadIncrementFactor:     0.1,
		NumLoadSteps:            10,
		AdaptiveLoadStepping:    false,
		MinLoadStepSize:         0.01,
		MaxLoadStepSize:         0.5,
		ArcLengthParameter:      1.0,
		UseLineSearch:           false,
		LineSearchTolerance:     0.5,
		MaxLineSearchIterations: 10,
	}
}

// Validate checks the field constraints spec.md §6 names for the non-linear
// settings record, returning ferr.InvalidSettings on the first violation.
func (s Nonlinear) Validate() error {
	if s.ConvergenceTolerance <= 0 {
		return ferr.New(ferr.InvalidSettings, "nonlinear: convergence_tolerance must be > 0, got %g", s.ConvergenceTolerance)
	}
	if s.MaxIterations <= 0 {
		return ferr.New(ferr.InvalidSettings, "nonlinear: max_iterations must be > 0, got %d", s.MaxIterations)
	}
	if s.LoadIncrementFactor <= 0 || s.LoadIncrementFactor > 1 {
		return ferr.New(ferr.InvalidSettings, "nonlinear: load_increment_factor must be in (0,1], got %g", s.LoadIncrementFactor)
	}
	if s.NumLoadSteps < 1 {
		return ferr.New(ferr.InvalidSettings, "nonlinear: num_load_steps must be >= 1, got %d", s.NumLoadSteps)
	}
	if s.Method == ArcLength && s.ArcLengthParameter <= 0 {
		return ferr.New(ferr.InvalidSettings, "nonlinear: arc_length_parameter must be > 0 for ArcLength method, got %g", s.ArcLengthParameter)
	}
	if s.AdaptiveLoadStepping {
		if s.MinLoadStepSize <= 0 || s.MinLoadStepSize > s.MaxLoadStepSize {
			return ferr.New(ferr.InvalidSettings, "nonlinear: min_load_step_size must be > 0 and <= max_load_step_size")
		}
	}
	if s.UseLineSearch {
		if s.LineSearchTolerance <= 0 || s.LineSearchTolerance >= 1 {
			return ferr.New(ferr.InvalidSettings, "nonlinear: line_search_tolerance must be in (0,1), got %g", s.LineSearchTolerance)
		}
		if s.MaxLineSearchIterations < 1 {
			return ferr.New(ferr.InvalidSettings, "nonlinear: max_line_search_iterations must be >= 1, got %d", s.MaxLineSearchIterations)
		}
	}
	return nil
}
