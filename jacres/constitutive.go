// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jacres

import (
	"errors"

	"github.com/GTAIto/LaMEM/mdl/rheo"
	"github.com/cpmech/gosl/io"
)

// scalars holds pressure-like values at a control volume or edge
type scalars struct {
	p     float64 // pressure (not shifted)
	T     float64 // temperature
	pLith float64 // lithostatic pressure
	pPore float64 // pore pressure
}

// devConstEq evaluates the deviatoric constitutive equations of one entity and stores viscosities
//  Output:
//   eta -- effective viscosity; stress = 2·eta·d
func (o *JacRes) devConstEq(sv *SolVarDev, phRat []float64, c *scalars) (out rheo.DevOutput, err error) {
	out, err = o.Ev.DevConstEq(&rheo.DevInput{
		PhRat: phRat,
		DII:   sv.DII,
		P:     c.p - o.PShift,
		PLith: c.pLith,
		PPore: c.pPore,
		T:     c.T,
		Dt:    o.Ts.Dt,
	})
	if err != nil {
		return
	}
	sv.Eta = out.Eta
	sv.Yield = out.Yield
	sv.DIIpl = out.DIIpl
	return
}

// stressCell computes deviatoric and Cauchy stresses of a control volume from effective strain rates
func (o *JacRes) stressCell(sv *SolVarCell, xx, yy, zz float64, c *scalars) {
	η := sv.SvDev.Eta
	sv.Sxx, sv.Syy, sv.Szz = 2.0*η*xx, 2.0*η*yy, 2.0*η*zz
	sv.SvDev.Hr = o.Ctrl.ShearHeatEff * (sv.Sxx*sv.Dxx + sv.Syy*sv.Dyy + sv.Szz*sv.Dzz)
	ptotal := c.p + o.Ctrl.Biot*c.pPore
	sv.Cxx, sv.Cyy, sv.Czz = sv.Sxx-ptotal, sv.Syy-ptotal, sv.Szz-ptotal
}

// stressEdge computes the shear stress of an edge from its effective strain rate
func (o *JacRes) stressEdge(sv *SolVarEdge, d float64) {
	sv.S = 2.0 * sv.SvDev.Eta * d
	sv.SvDev.Hr = o.Ctrl.ShearHeatEff * 2.0 * sv.S * sv.D
}

// depth returns the depth of z below the free surface; zero without free surface
func (o *JacRes) depth(z float64) (d float64) {
	if o.Surf.AirPhase != -1 {
		d = o.Surf.AvgTopo - z
	}
	if d < 0 {
		d = 0
	}
	return
}

// located sets the location of a constitutive failure
func located(err error, where string, i, j, k int) error {
	var cf *rheo.ConstitutiveFailure
	if errors.As(err, &cf) && cf.Where == "" {
		cf.Where = io.Sf("%s (%d,%d,%d)", where, i, j, k)
	}
	return err
}
