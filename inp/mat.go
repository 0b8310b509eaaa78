// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/GTAIto/LaMEM/mdl/geom"
	"github.com/GTAIto/LaMEM/mdl/rheo"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Material holds the data of one material phase
type Material struct {
	Name  string     `mapstructure:"name"`  // name of phase
	Model string     `mapstructure:"model"` // name of rheology model; e.g. "lin", "pow"
	Prms  dbf.Params `mapstructure:"prms"`  // model parameters
}

// MatsData holds materials; index == phase id
type MatsData []*Material

// PrimData holds the input data of a geometric primitive
type PrimData struct {
	Type   string    `mapstructure:"type"`   // sphere, box or layer
	Phase  int       `mapstructure:"phase"`  // phase id
	Center []float64 `mapstructure:"center"` // sphere: centre
	Radius float64   `mapstructure:"radius"` // sphere: radius
	Bounds []float64 `mapstructure:"bounds"` // box: xmin, xmax, ymin, ymax, zmin, zmax
	Top    float64   `mapstructure:"top"`    // layer: top
	Bot    float64   `mapstructure:"bot"`    // layer: bottom
}

// GeomData holds data for assigning phases to control volumes
type GeomData struct {
	Background int         `mapstructure:"background"` // phase outside all primitives
	NSub       int         `mapstructure:"nsub"`       // samples per direction in a control volume
	Prims      []*PrimData `mapstructure:"prims"`      // primitives; later ones override earlier ones
}

// Database allocates and initialises the rheology models of all phases
func (o MatsData) Database(lim *rheo.Limits) (db *rheo.Database, err error) {
	if len(o) == 0 {
		return nil, cfgErr("phases", "at least one phase must be given")
	}
	names := make([]string, len(o))
	models := make([]string, len(o))
	prms := make([]dbf.Params, len(o))
	for i, m := range o {
		if _, err = rheo.New(m.Model); err != nil {
			return nil, optionErr(io.Sf("phases[%d].model", i), m.Model, rheo.Names())
		}
		names[i], models[i], prms[i] = m.Name, m.Model, m.Prms
	}
	return rheo.NewDatabase(names, models, prms, lim)
}

// Geometry converts geometry data into primitives
func (o *GeomData) Geometry(nphases int) (g *geom.Geometry, err error) {
	prims := make([]*geom.Prim, len(o.Prims))
	for i, d := range o.Prims {
		key := io.Sf("geometry.prims[%d]", i)
		kind, e := geom.ParseKind(d.Type)
		if e != nil {
			return nil, optionErr(key+".type", d.Type, geom.KindNames())
		}
		p := &geom.Prim{Kind: kind, Phase: d.Phase, Radius: d.Radius, Top: d.Top, Bot: d.Bot}
		switch kind {
		case geom.Sphere:
			if len(d.Center) != 3 {
				return nil, cfgErr(key+".center", "sphere centre must have 3 components. %d given", len(d.Center))
			}
			p.Center.X, p.Center.Y, p.Center.Z = d.Center[0], d.Center[1], d.Center[2]
		case geom.Box:
			if len(d.Bounds) != 6 {
				return nil, cfgErr(key+".bounds", "box bounds must have 6 components. %d given", len(d.Bounds))
			}
			copy(p.Bounds[:], d.Bounds)
		}
		if e = p.Check(nphases); e != nil {
			return nil, cfgErr(key, "%v", e)
		}
		prims[i] = p
	}
	if o.Background < 0 || o.Background >= nphases {
		return nil, cfgErr("geometry.background", "background phase %d is out of range [0,%d)", o.Background, nphases)
	}
	return geom.New(nphases, o.Background, o.NSub, prims)
}

// String prints one material
func (o *Material) String() string {
	return io.Sf("{name:%q, model:%q, prms:%v}", o.Name, o.Model, o.Prms)
}
