// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "github.com/cpmech/gosl/chk"

// Geometry assigns phases to points and phase fractions to control volumes
type Geometry struct {
	NPhases    int     // number of phases
	Background int     // phase of points not contained in any primitive
	Prims      []*Prim // primitives; later ones override earlier ones
	NSub       int     // number of samples per direction in a control volume
}

// New returns a new geometry
func New(nphases, background, nsub int, prims []*Prim) (o *Geometry, err error) {
	if background < 0 || background >= nphases {
		return nil, chk.Err("background phase %d is out of range [0,%d)", background, nphases)
	}
	if nsub < 1 {
		nsub = 1
	}
	for i, p := range prims {
		if err = p.Check(nphases); err != nil {
			return nil, chk.Err("primitive %d: %v", i, err)
		}
	}
	return &Geometry{NPhases: nphases, Background: background, Prims: prims, NSub: nsub}, nil
}

// Phase returns the phase at (x,y,z). The last matching primitive wins
func (o *Geometry) Phase(x, y, z float64) int {
	for i := len(o.Prims) - 1; i >= 0; i-- {
		if o.Prims[i].Contains(x, y, z) {
			return o.Prims[i].Phase
		}
	}
	return o.Background
}

// Ratios computes phase fractions of the box [lo, hi] by sampling NSub³ points at sub-cell centres
//  Output:
//   phRat -- [NPhases] fractions; sum == 1
func (o *Geometry) Ratios(phRat []float64, lo, hi [3]float64) {
	for i := range phRat {
		phRat[i] = 0
	}
	n := o.NSub
	w := 1.0 / float64(n*n*n)
	var h [3]float64
	for d := 0; d < 3; d++ {
		h[d] = (hi[d] - lo[d]) / float64(n)
	}
	for c := 0; c < n; c++ {
		z := lo[2] + (float64(c)+0.5)*h[2]
		for b := 0; b < n; b++ {
			y := lo[1] + (float64(b)+0.5)*h[1]
			for a := 0; a < n; a++ {
				x := lo[0] + (float64(a)+0.5)*h[0]
				phRat[o.Phase(x, y, z)] += w
			}
		}
	}
}
