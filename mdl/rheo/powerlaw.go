// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheo

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// PowerLaw implements a thermally activated power-law (dislocation) creep phase
//
//   η = ½ · Bn^(-1/n) · DII^(1/n - 1) · exp((Ea + p·Va) / (n·R·T))
//
// A linear diffusion term with viscosity Eta may be added; both act in series
type PowerLaw struct {
	Base
	Bn  float64 // pre-exponential factor
	N   float64 // stress exponent
	Ea  float64 // activation energy
	Va  float64 // activation volume
	Eta float64 // optional linear viscosity; 0 => none
}

// add model to factory
func init() {
	allocators["pow"] = func() Model { return new(PowerLaw) }
}

// Init initialises model
func (o *PowerLaw) Init(prms dbf.Params) (err error) {
	o.N = 1
	for _, p := range prms {
		if o.setBase(p) {
			continue
		}
		switch p.N {
		case "Bn":
			o.Bn = p.V
		case "n":
			o.N = p.V
		case "Ea":
			o.Ea = p.V
		case "Va":
			o.Va = p.V
		case "eta":
			o.Eta = p.V
		default:
			return chk.Err("pow: parameter named %q is invalid", p.N)
		}
	}
	if o.Bn <= 0 || o.N < 1 || o.Ea < 0 || o.Eta < 0 {
		return chk.Err("pow: invalid parameters: {Bn=%g, Ea=%g, eta=%g} must be positive and n=%g >= 1", o.Bn, o.Ea, o.Eta, o.N)
	}
	return o.checkBase()
}

// GetPrms gets (an example) of parameters
func (o PowerLaw) GetPrms(example bool) dbf.Params {
	prms := dbf.Params{
		&dbf.P{N: "Bn", V: 1.1e-16},
		&dbf.P{N: "n", V: 3.5},
		&dbf.P{N: "Ea", V: 530e3},
		&dbf.P{N: "Va", V: 1.4e-5},
	}
	if example {
		return append(basePrms(), prms...)
	}
	return prms
}

// Creep computes creep viscosity. A vanishing strain rate is replaced by lim.DIIRef
func (o *PowerLaw) Creep(dii, p, T float64, lim *Limits) float64 {
	if dii <= 0 {
		dii = lim.DIIRef
	}
	arg := 0.0
	if o.Ea != 0 || o.Va != 0 {
		arg = (o.Ea + p*o.Va) / (o.N * lim.Rugc * T)
	}
	η := 0.5 * math.Pow(o.Bn, -1.0/o.N) * math.Pow(dii, 1.0/o.N-1.0) * math.Exp(arg)
	if o.Eta > 0 {
		η = 1.0 / (1.0/η + 1.0/o.Eta)
	}
	return η
}
