// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jacres

// SolVarDev holds deviatoric solution variables shared by control volumes and edges
type SolVarDev struct {
	I2Gdt float64 // elastic factor 1/(2·G·Δt)
	DII   float64 // effective strain-rate invariant
	Eta   float64 // effective viscosity
	Hr    float64 // shear heating term
	DIIpl float64 // plastic strain-rate invariant
	Yield bool    // plasticity is active
}

// SolVarBulk holds volumetric solution variables of a control volume
type SolVarBulk struct {
	Theta float64 // volumetric strain rate
	Rho   float64 // effective density
	IKdt  float64 // inverse bulk viscosity
	Alpha float64 // effective thermal expansion
	Pn    float64 // pressure history
	Tn    float64 // temperature history
}

// SolVarCell holds the state of one control volume
type SolVarCell struct {
	SvDev    SolVarDev  // deviatoric variables
	SvBulk   SolVarBulk // volumetric variables
	PhRat    []float64  // phase fractions (slice of the arena)
	Dxx      float64    // total deviatoric strain rate xx
	Dyy      float64    // total deviatoric strain rate yy
	Dzz      float64    // total deviatoric strain rate zz
	Hxx      float64    // stress history xx
	Hyy      float64    // stress history yy
	Hzz      float64    // stress history zz
	Sxx      float64    // deviatoric stress xx
	Syy      float64    // deviatoric stress yy
	Szz      float64    // deviatoric stress zz
	Cxx      float64    // Cauchy stress xx
	Cyy      float64    // Cauchy stress yy
	Czz      float64    // Cauchy stress zz
	EtaCreep float64    // creep viscosity
	EtaVp    float64    // visco-plastic viscosity
}

// SolVarEdge holds the state of one edge
type SolVarEdge struct {
	SvDev    SolVarDev // deviatoric variables
	PhRat    []float64 // phase fractions (slice of the arena)
	D        float64   // total shear strain rate
	H        float64   // stress history
	S        float64   // shear stress
	EtaCreep float64   // creep viscosity
	EtaVp    float64   // visco-plastic viscosity
}

// devSum returns the sum of the total deviatoric strain rates
func (o *SolVarCell) devSum() float64 { return o.Dxx + o.Dyy + o.Dzz }

// arena holds phase fractions of a family of entities with fixed stride
type arena struct {
	stride int       // number of phases
	data   []float64 // [n·stride]
}

// newArena allocates phase fractions of n entities
func newArena(n, nphases int) *arena {
	return &arena{stride: nphases, data: make([]float64, n*nphases)}
}

// get returns the phase fractions of entity id
func (o *arena) get(id int) []float64 {
	return o.data[id*o.stride : (id+1)*o.stride]
}
