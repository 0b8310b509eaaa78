// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geom implements geometric primitives used to assign material phases
package geom

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm"
)

// Kind defines the type of a primitive
type Kind int

// primitive kinds
const (
	Sphere Kind = iota // ball given by centre and radius
	Box                // axis-aligned box given by bounds
	Layer              // horizontal layer between bottom and top
)

// kindNames holds names of primitive kinds
var kindNames = map[string]Kind{
	"sphere": Sphere,
	"box":    Box,
	"layer":  Layer,
}

// KindNames returns the names of all primitive kinds
func KindNames() (names []string) {
	for name := range kindNames {
		names = append(names, name)
	}
	return
}

// ParseKind returns the kind corresponding to name
func ParseKind(name string) (Kind, error) {
	if k, ok := kindNames[name]; ok {
		return k, nil
	}
	return 0, chk.Err("geometric primitive %q is not available", name)
}

// Prim holds a geometric primitive that assigns a phase to the points it contains
type Prim struct {
	Kind   Kind       // type
	Phase  int        // phase assigned to contained points
	Center gm.Point   // sphere: centre
	Radius float64    // sphere: radius
	Bounds [6]float64 // box: xmin, xmax, ymin, ymax, zmin, zmax
	Top    float64    // layer: top coordinate
	Bot    float64    // layer: bottom coordinate
}

// Contains tells whether point (x,y,z) lies inside the primitive. Boundaries are inclusive
func (o *Prim) Contains(x, y, z float64) bool {
	p := &gm.Point{X: x, Y: y, Z: z}
	switch o.Kind {
	case Sphere:
		return gm.DistPointPoint(p, &o.Center) <= o.Radius
	case Box:
		b := o.Bounds
		return gm.IsPointIn(p, []float64{b[0], b[2], b[4]}, []float64{b[1], b[3], b[5]}, 0)
	case Layer:
		return z >= o.Bot && z <= o.Top
	}
	chk.Panic("unknown geometric primitive kind %d", o.Kind)
	return false
}

// Check checks the primitive against the number of phases
func (o *Prim) Check(nphases int) error {
	if o.Phase < 0 || o.Phase >= nphases {
		return chk.Err("phase %d of geometric primitive is out of range [0,%d)", o.Phase, nphases)
	}
	switch o.Kind {
	case Sphere:
		if o.Radius <= 0 {
			return chk.Err("sphere radius must be positive. %g is invalid", o.Radius)
		}
	case Box:
		b := o.Bounds
		if b[1] <= b[0] || b[3] <= b[2] || b[5] <= b[4] {
			return chk.Err("box bounds must be increasing. %v is invalid", b)
		}
	case Layer:
		if o.Top <= o.Bot {
			return chk.Err("layer top (%g) must be above bottom (%g)", o.Top, o.Bot)
		}
	}
	return nil
}
