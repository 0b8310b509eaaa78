// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheo

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Limits holds bounds and switches shared by all phases
type Limits struct {
	EtaMin      float64 // minimum viscosity; 0 => none
	EtaMax      float64 // maximum viscosity; 0 => none
	DIIRef      float64 // reference strain rate used when the strain rate vanishes
	MinCohes    float64 // minimum cohesion
	MinFric     float64 // minimum friction angle [degrees]
	TauUlt      float64 // ultimate yield stress; 0 or +Inf => none
	TRef        float64 // reference temperature for thermal expansion
	Rugc        float64 // universal gas constant
	PLithoVisc  bool    // use lithostatic pressure in creep laws
	PLithoPlast bool    // use lithostatic pressure in yield function
	PLimPlast   bool    // limit pressure in yield function by lithostatic pressure
}

// NewLimits returns limits with default values
func NewLimits() *Limits {
	return &Limits{
		DIIRef: 1e-15,
		TauUlt: math.Inf(1),
		Rugc:   8.3144621,
	}
}

// DevInput holds the input of the deviatoric constitutive update of one control volume
type DevInput struct {
	PhRat []float64 // phase fractions
	DII   float64   // effective strain-rate invariant
	P     float64   // pressure (already shifted)
	PLith float64   // lithostatic pressure
	PPore float64   // pore pressure
	T     float64   // temperature
	Dt    float64   // time step
	Where string    // location for error messages
}

// DevOutput holds the result of the deviatoric constitutive update
type DevOutput struct {
	Eta      float64 // effective viscosity; stress = 2·Eta·Dᵉᶠᶠ
	EtaCreep float64 // creep viscosity
	EtaVp    float64 // visco-plastic viscosity (elasticity excluded)
	DIIpl    float64 // plastic strain-rate invariant
	Yield    bool    // at least one phase yields
}

// VolOutput holds the result of the volumetric constitutive update
type VolOutput struct {
	Rho   float64 // density
	IKdt  float64 // inverse bulk viscosity 1/(K·Δt)
	Alpha float64 // effective thermal expansion
}

// Database holds the models of all phases
type Database struct {
	Names  []string // phase names
	Phases []Model  // models; index == phase id
	Lim    *Limits  // limits
}

// NewDatabase returns a new database
//  Input:
//   names  -- phase names
//   models -- model names
//   prms   -- model parameters
//   lim    -- limits; nil => defaults
func NewDatabase(names, models []string, prms []dbf.Params, lim *Limits) (o *Database, err error) {
	if len(models) == 0 {
		return nil, chk.Err("at least one phase is required")
	}
	if len(names) != len(models) || len(prms) != len(models) {
		return nil, chk.Err("number of names (%d), models (%d) and parameter sets (%d) must be equal", len(names), len(models), len(prms))
	}
	if lim == nil {
		lim = NewLimits()
	}
	o = &Database{Names: names, Lim: lim}
	for i, name := range models {
		mdl, err := New(name)
		if err != nil {
			return nil, chk.Err("phase %d (%s): %v", i, names[i], err)
		}
		if err = mdl.Init(prms[i]); err != nil {
			return nil, chk.Err("phase %d (%s): %v", i, names[i], err)
		}
		o.Phases = append(o.Phases, mdl)
	}
	return
}

// NumPhases returns the number of phases
func (o *Database) NumPhases() int { return len(o.Phases) }

// RefDensity returns Σ φᵢ·ρᵢ with reference densities
func (o *Database) RefDensity(phRat []float64) (res float64) {
	for i, φ := range phRat {
		res += φ * o.Phases[i].GetRho()
	}
	return
}

// GetI2Gdt returns Σ φᵢ / (2·Gᵢ·Δt) over elastic phases
func (o *Database) GetI2Gdt(phRat []float64, dt float64) (res float64) {
	if dt <= 0 {
		return
	}
	for i, φ := range phRat {
		if φ == 0 {
			continue
		}
		if G, _ := o.Phases[i].Elastic(); G > 0 {
			res += φ / (2.0 * G * dt)
		}
	}
	return
}

// DevConstEq computes viscosities of one control volume by averaging phase contributions
func (o *Database) DevConstEq(in *DevInput) (out DevOutput, err error) {
	lim := o.Lim
	pCreep := in.P
	if lim.PLithoVisc {
		pCreep = in.PLith
	}
	pYield := in.P
	if lim.PLithoPlast {
		pYield = in.PLith
	}
	if lim.PLimPlast && pYield > in.PLith {
		pYield = in.PLith
	}
	for i, φ := range in.PhRat {
		if φ == 0 {
			continue
		}
		mdl := o.Phases[i]

		// creep and visco-elasticity
		ηcr := mdl.Creep(in.DII, pCreep, in.T, lim)
		ηve := ηcr
		if G, _ := mdl.Elastic(); G > 0 && in.Dt > 0 {
			ηve = 1.0 / (1.0/ηcr + 1.0/(G*in.Dt))
		}

		// plasticity
		η, ηvp, dpl := ηve, ηcr, 0.0
		if τy, active := mdl.Yield(pYield, in.PPore, lim); active && in.DII > 0 {
			if 2.0*ηve*in.DII > τy {
				η = τy / (2.0 * in.DII)
				ηvp = math.Min(ηcr, η)
				dpl = in.DII * (1.0 - η/ηve)
				out.Yield = true
			}
		}
		out.Eta += φ * η
		out.EtaCreep += φ * ηcr
		out.EtaVp += φ * ηvp
		out.DIIpl += φ * dpl
	}
	out.Eta = o.clamp(out.Eta)
	out.EtaCreep = o.clamp(out.EtaCreep)
	out.EtaVp = o.clamp(out.EtaVp)
	if out.DIIpl < 0 {
		out.DIIpl = 0
	}
	if math.IsNaN(out.Eta) || math.IsInf(out.Eta, 0) || out.Eta <= 0 {
		return out, &ConstitutiveFailure{Where: in.Where, Msg: io.Sf("invalid effective viscosity %g", out.Eta)}
	}
	return
}

// VolConstEq computes density and inverse bulk viscosity of one cell
func (o *Database) VolConstEq(phRat []float64, p, T, depth, dt float64) (out VolOutput, err error) {
	for i, φ := range phRat {
		if φ == 0 {
			continue
		}
		mdl := o.Phases[i]
		out.Rho += φ * mdl.Density(p, T, depth, o.Lim)
		out.Alpha += φ * mdl.Expansion()
		if _, K := mdl.Elastic(); K > 0 && dt > 0 {
			out.IKdt += φ / (K * dt)
		}
	}
	if math.IsNaN(out.Rho) || math.IsInf(out.Rho, 0) {
		return out, &ConstitutiveFailure{Msg: io.Sf("invalid density %g", out.Rho)}
	}
	return
}

// clamp bounds a viscosity by the limits
func (o *Database) clamp(η float64) float64 {
	if o.Lim.EtaMin > 0 && η < o.Lim.EtaMin {
		η = o.Lim.EtaMin
	}
	if o.Lim.EtaMax > 0 && η > o.Lim.EtaMax {
		η = o.Lim.EtaMax
	}
	return η
}
