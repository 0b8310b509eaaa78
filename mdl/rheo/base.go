// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheo

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Base holds density, elastic and plastic parameters shared by all models
type Base struct {
	Rho   float64 // reference density
	Alpha float64 // thermal expansion coefficient
	G     float64 // shear modulus; 0 => no elasticity
	K     float64 // bulk modulus; 0 => incompressible
	Ch    float64 // cohesion; 0 and Fr == 0 => no plasticity
	Fr    float64 // friction angle [degrees]
	RhoN  float64 // depth-dependent density: relative density drop at the surface
	RhoC  float64 // depth-dependent density: decay rate with depth
}

// setBase sets a base parameter. Returns false if the name is not a base parameter
func (o *Base) setBase(p *dbf.P) bool {
	switch p.N {
	case "rho":
		o.Rho = p.V
	case "alpha":
		o.Alpha = p.V
	case "G":
		o.G = p.V
	case "K":
		o.K = p.V
	case "ch":
		o.Ch = p.V
	case "fr":
		o.Fr = p.V
	case "rho_n":
		o.RhoN = p.V
	case "rho_c":
		o.RhoC = p.V
	default:
		return false
	}
	return true
}

// checkBase checks base parameters
func (o *Base) checkBase() error {
	if o.Rho < 0 || o.G < 0 || o.K < 0 || o.Ch < 0 || o.Fr < 0 || o.Fr >= 90 {
		return chk.Err("invalid parameters: {rho=%g, G=%g, K=%g, ch=%g} must be all >= 0 and 0 <= fr=%g < 90", o.Rho, o.G, o.K, o.Ch, o.Fr)
	}
	if o.RhoN < 0 || o.RhoN >= 1 || o.RhoC < 0 {
		return chk.Err("invalid depth-dependent density parameters: rho_n=%g must be in [0,1) and rho_c=%g >= 0", o.RhoN, o.RhoC)
	}
	return nil
}

// basePrms returns example base parameters
func basePrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "rho", V: 3300},
		&dbf.P{N: "alpha", V: 3e-5},
		&dbf.P{N: "G", V: 5e10},
		&dbf.P{N: "K", V: 1e11},
		&dbf.P{N: "ch", V: 1e7},
		&dbf.P{N: "fr", V: 30},
	}
}

// GetRho returns reference density
func (o *Base) GetRho() float64 { return o.Rho }

// Elastic returns shear and bulk moduli
func (o *Base) Elastic() (G, K float64) { return o.G, o.K }

// Expansion returns thermal expansion coefficient
func (o *Base) Expansion() float64 { return o.Alpha }

// Yield computes the Drucker-Prager yield stress.
// Cohesion and friction are bounded below by lim; the result is bounded by lim.TauUlt
func (o *Base) Yield(p, pPore float64, lim *Limits) (τy float64, active bool) {
	if o.Ch == 0 && o.Fr == 0 {
		return
	}
	ch := math.Max(o.Ch, lim.MinCohes)
	fr := math.Max(o.Fr, lim.MinFric) * math.Pi / 180.0
	τy = ch*math.Cos(fr) + (p-pPore)*math.Sin(fr)
	if τy < lim.MinCohes {
		τy = lim.MinCohes
	}
	if lim.TauUlt > 0 && τy > lim.TauUlt {
		τy = lim.TauUlt
	}
	return τy, true
}

// Density computes density from pressure, temperature and depth below the free surface
func (o *Base) Density(p, T, depth float64, lim *Limits) float64 {
	ρ := o.Rho
	if o.Alpha != 0 {
		ρ *= 1.0 - o.Alpha*(T-lim.TRef)
	}
	if o.K > 0 {
		ρ *= 1.0 + p/o.K
	}
	if o.RhoN > 0 {
		ρ *= 1.0 - o.RhoN*math.Exp(-o.RhoC*depth)
	}
	return ρ
}
