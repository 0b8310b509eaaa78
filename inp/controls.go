// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/GTAIto/LaMEM/mdl/rheo"
	"github.com/spf13/viper"
)

// GwType defines how the ground-water level is determined
type GwType int

// ground-water level types
const (
	GwNone  GwType = iota // no pore pressure
	GwTop                 // level at the top of the domain
	GwSurf                // level at the average free-surface topography
	GwLevel               // level given by Controls.GwLevel
)

// gwTypes maps input names to ground-water level types
var gwTypes = map[string]GwType{
	"none":  GwNone,
	"top":   GwTop,
	"surf":  GwSurf,
	"level": GwLevel,
}

// Controls holds parameters of the residual evaluation. Controls is read once and must not be
// modified while a residual is being evaluated
type Controls struct {

	// body forces and stabilisation
	Grav         []float64 `mapstructure:"gravity"`        // gravity vector
	FSSA         float64   `mapstructure:"fssa"`           // free-surface stabilisation coefficient
	ShearHeatEff float64   `mapstructure:"shear_heat_eff"` // shear heating efficiency

	// switches
	PShiftAct   bool `mapstructure:"act_p_shift"`   // shift pressure so that the mean top pressure vanishes
	ActThermExp bool `mapstructure:"act_therm_exp"` // include thermal expansion in continuity
	PLithoVisc  bool `mapstructure:"p_litho_visc"`  // use lithostatic pressure in creep laws
	PLithoPlast bool `mapstructure:"p_litho_plast"` // use lithostatic pressure in yield function
	PLimPlast   bool `mapstructure:"p_lim_plast"`   // limit pressure in yield function by lithostatic pressure

	// constitutive limits
	EtaMin   float64 `mapstructure:"eta_min"`   // minimum viscosity; 0 => none
	EtaMax   float64 `mapstructure:"eta_max"`   // maximum viscosity; 0 => none
	EtaRef   float64 `mapstructure:"eta_ref"`   // reference viscosity for initial guess
	TRef     float64 `mapstructure:"t_ref"`     // reference temperature
	DIIRef   float64 `mapstructure:"dii_ref"`   // reference strain rate
	MinCohes float64 `mapstructure:"min_cohes"` // minimum cohesion
	MinFric  float64 `mapstructure:"min_fric"`  // minimum friction angle [degrees]
	TauUlt   float64 `mapstructure:"tau_ult"`   // ultimate yield stress

	// pore pressure
	RhoFluid    float64 `mapstructure:"rho_fluid"`     // fluid density
	GwLevelType string  `mapstructure:"gw_level_type"` // ground-water level type: none, top, surf, level
	GwLevel     float64 `mapstructure:"gw_level"`      // ground-water level (type level)
	Biot        float64 `mapstructure:"biot"`          // Biot pressure parameter

	// convergence
	DivTol float64 `mapstructure:"div_tol"` // abort if residual norms exceed this; 0 => off

	// derived
	GwType GwType // ground-water level type
}

// setControlsDefault sets default values of controls
func setControlsDefault(v *viper.Viper) {
	v.SetDefault("controls.gravity", []float64{0, 0, -9.81})
	v.SetDefault("controls.fssa", 1.0)
	v.SetDefault("controls.shear_heat_eff", 1.0)
	v.SetDefault("controls.act_p_shift", true)
	v.SetDefault("controls.act_therm_exp", false)
	v.SetDefault("controls.p_litho_visc", true)
	v.SetDefault("controls.p_litho_plast", false)
	v.SetDefault("controls.p_lim_plast", false)
	v.SetDefault("controls.eta_min", 0.0)
	v.SetDefault("controls.eta_max", 0.0)
	v.SetDefault("controls.eta_ref", 0.0)
	v.SetDefault("controls.t_ref", 0.0)
	v.SetDefault("controls.dii_ref", 1e-15)
	v.SetDefault("controls.min_cohes", 0.0)
	v.SetDefault("controls.min_fric", 0.0)
	v.SetDefault("controls.tau_ult", math.Inf(1))
	v.SetDefault("controls.rho_fluid", 1040.0)
	v.SetDefault("controls.gw_level_type", "none")
	v.SetDefault("controls.biot", 0.0)
	v.SetDefault("controls.div_tol", 0.0)
}

// PostProcess checks controls and sets derived values
//  hasGwLevel -- whether gw_level was given in the input
func (o *Controls) PostProcess(hasGwLevel bool) (err error) {

	// gravity
	if len(o.Grav) != 3 {
		return cfgErr("controls.gravity", "gravity vector must have 3 components. %d given", len(o.Grav))
	}

	// viscosity bounds
	if o.EtaMin < 0 || o.EtaMax < 0 || (o.EtaMax > 0 && o.EtaMax < o.EtaMin) {
		return cfgErr("controls.eta_max", "viscosity bounds are inconsistent: eta_min=%g eta_max=%g", o.EtaMin, o.EtaMax)
	}
	if o.TauUlt == 0 {
		o.TauUlt = math.Inf(1)
	}

	// ground water
	gw, ok := gwTypes[o.GwLevelType]
	if !ok {
		return optionErr("controls.gw_level_type", o.GwLevelType, mapKeys(gwTypes))
	}
	o.GwType = gw
	if gw == GwLevel && !hasGwLevel {
		return cfgErr("controls.gw_level", "ground-water level must be given when gw_level_type is %q", o.GwLevelType)
	}
	if gw != GwNone && o.Biot == 0 {
		o.Biot = 1
	}
	return
}

// Limits returns the constitutive limits corresponding to controls
func (o *Controls) Limits() *rheo.Limits {
	lim := rheo.NewLimits()
	lim.EtaMin = o.EtaMin
	lim.EtaMax = o.EtaMax
	if o.DIIRef > 0 {
		lim.DIIRef = o.DIIRef
	}
	lim.MinCohes = o.MinCohes
	lim.MinFric = o.MinFric
	lim.TauUlt = o.TauUlt
	lim.TRef = o.TRef
	lim.PLithoVisc = o.PLithoVisc
	lim.PLithoPlast = o.PLithoPlast
	lim.PLimPlast = o.PLimPlast
	return lim
}

// mapKeys returns the keys of a map of options
func mapKeys[T any](m map[string]T) (keys []string) {
	for k := range m {
		keys = append(keys, k)
	}
	return
}
