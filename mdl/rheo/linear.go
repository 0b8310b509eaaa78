// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheo

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Linear implements a Newtonian (linear viscous) phase with optional elasticity and plasticity
type Linear struct {
	Base
	Eta float64 // viscosity
}

// add model to factory
func init() {
	allocators["lin"] = func() Model { return new(Linear) }
}

// Init initialises model
func (o *Linear) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		if o.setBase(p) {
			continue
		}
		switch p.N {
		case "eta":
			o.Eta = p.V
		default:
			return chk.Err("lin: parameter named %q is invalid", p.N)
		}
	}
	if o.Eta <= 0 {
		return chk.Err("lin: viscosity must be positive. eta=%g is invalid", o.Eta)
	}
	return o.checkBase()
}

// GetPrms gets (an example) of parameters
func (o Linear) GetPrms(example bool) dbf.Params {
	if example {
		return append(basePrms(), &dbf.P{N: "eta", V: 1e21})
	}
	return dbf.Params{&dbf.P{N: "eta", V: 1}}
}

// Creep computes creep viscosity
func (o *Linear) Creep(dii, p, T float64, lim *Limits) float64 {
	return o.Eta
}
