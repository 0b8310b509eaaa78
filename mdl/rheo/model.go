// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rheo implements constitutive models for visco-elasto-plastic creeping flow
//
//   effective strain rate:  Dᵉᶠᶠ = D + τⁿ·I2Gdt,   I2Gdt = 1/(2·G·Δt)
//   visco-elastic:          1/η_ve = 1/η_creep + 1/(G·Δt)
//   Drucker-Prager yield:   τ_y = C·cos(φ) + (p - p_pore)·sin(φ)
//   visco-plastic:          η = min(η_ve, τ_y/(2·DII))
//
package rheo

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines the interface for the rheology of one material phase
type Model interface {
	Init(prms dbf.Params) error                                    // initialises model
	GetPrms(example bool) dbf.Params                               // gets (an example) of parameters
	GetRho() float64                                               // returns reference density
	Creep(dii, p, T float64, lim *Limits) float64                  // computes creep viscosity
	Elastic() (G, K float64)                                       // returns shear and bulk moduli (zero if inactive)
	Yield(p, pPore float64, lim *Limits) (τy float64, active bool) // computes yield stress
	Density(p, T, depth float64, lim *Limits) float64              // computes density
	Expansion() float64                                            // returns thermal expansion coefficient
}

// allocators holds all available models
var allocators = map[string]func() Model{}

// New returns a new model
func New(name string) (Model, error) {
	if allocator, ok := allocators[name]; ok {
		return allocator(), nil
	}
	return nil, chk.Err("model %q is not available in 'rheo' database", name)
}

// Names returns the names of all available models
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	return
}
