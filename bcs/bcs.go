// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bcs implements the boundary constraint set of the staggered grid
//
//  Normal velocities on domain faces are single-point constraints (SPC): the boundary node is a
//  degree of freedom whose value is prescribed. Tangential velocities and pressures are two-point
//  constraints (TPC): the value B is prescribed halfway between the ghost point G and the first
//  interior point V, hence G = 2·B - V.
//
package bcs

import (
	"math"
	"sort"

	"github.com/GTAIto/LaMEM/fdstag"
	"github.com/GTAIto/LaMEM/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// NoBC marks points without prescribed value
const NoBC = math.MaxFloat64

// IsSet tells whether v holds a prescribed value
func IsSet(v float64) bool { return v != NoBC }

// SPC holds a single-point constraint on the rank-local coupled vector
type SPC struct {
	Idx int     // index in the coupled vector
	Val float64 // prescribed value
}

// SPCList is a list of single-point constraints sorted by index
type SPCList []SPC

func (o SPCList) Len() int           { return len(o) }
func (o SPCList) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
func (o SPCList) Less(i, j int) bool { return o[i].Idx < o[j].Idx }

// Context holds the boundary constraint set of one processor
type Context struct {

	// grid
	Fs *fdstag.FDSTAG // staggered grid

	// prescribed values on ghosted local fields; NoBC => none
	Bcvx *fdstag.Field // x-velocity
	Bcvy *fdstag.Field // y-velocity
	Bcvz *fdstag.Field // z-velocity
	Bcp  *fdstag.Field // pressure

	// single-point constraints
	VSPCList SPCList // velocity constraints
	PSPCList SPCList // pressure constraints

	// background strain field
	Erate  [3]float64 // background strain rates; Ezz = -(Exx + Eyy)
	Center [3]float64 // centre of the domain
}

// face defines one face of the domain
type face struct {
	name string      // name used in messages
	bc   *inp.FaceBc // input data
	dir  int         // normal direction
	side int         // 0: lower; 1: upper
}

// New returns a new boundary constraint set
//  Input:
//   fs   -- staggered grid
//   data -- boundary conditions
//   fcns -- time functions
//   t    -- time at which time functions are evaluated
func New(fs *fdstag.FDSTAG, data *inp.BcsData, fcns inp.FuncsData, t float64) (o *Context, err error) {

	// allocate
	o = &Context{Fs: fs}
	o.Bcvx = fs.NewField(fdstag.X)
	o.Bcvy = fs.NewField(fdstag.Y)
	o.Bcvz = fs.NewField(fdstag.Z)
	o.Bcp = fs.NewField(fdstag.CEN)
	for _, f := range []*fdstag.Field{o.Bcvx, o.Bcvy, o.Bcvz, o.Bcp} {
		f.Fill(NoBC)
	}

	// background strain field
	o.Erate = [3]float64{data.Exx, data.Eyy, -(data.Exx + data.Eyy)}
	for d := 0; d < 3; d++ {
		ds := fs.Ds(d)
		o.Center[d] = 0.5 * (ds.Beg() + ds.End())
	}

	// faces
	faces := []face{
		{"left", &data.Left, 0, 0},
		{"right", &data.Right, 0, 1},
		{"front", &data.Front, 1, 0},
		{"back", &data.Back, 1, 1},
		{"bottom", &data.Bottom, 2, 0},
		{"top", &data.Top, 2, 1},
	}
	for _, f := range faces {
		if err = o.setFace(&f, fcns, t); err != nil {
			return nil, err
		}
	}

	// pressure at the top
	if data.PTop != nil {
		o.setPlane(o.Bcp, 2, fs.Dsz.Tcels, *data.PTop, false)
	}

	// single-point constraints
	o.buildSPC()
	return
}

// Bcv returns the prescribed values of velocity component dir
func (o *Context) Bcv(dir int) *fdstag.Field {
	switch dir {
	case 0:
		return o.Bcvx
	case 1:
		return o.Bcvy
	}
	return o.Bcvz
}

// BgVel returns the background velocity component dir at coordinate x along dir
func (o *Context) BgVel(dir int, x float64) float64 {
	return o.Erate[dir] * (x - o.Center[dir])
}

// ApplySPC writes prescribed values into the rank-local coupled vector x
func (o *Context) ApplySPC(x []float64) {
	for _, c := range o.VSPCList {
		x[c.Idx] = c.Val
	}
	for _, c := range o.PSPCList {
		x[c.Idx] = c.Val
	}
}

// ZeroSPC zeroes constrained entries of the rank-local coupled vector r
func (o *Context) ZeroSPC(r []float64) {
	for _, c := range o.VSPCList {
		r[c.Idx] = 0
	}
	for _, c := range o.PSPCList {
		r[c.Idx] = 0
	}
}

// String returns a summary of the constraints
func (o *Context) String() string {
	return io.Sf("%d velocity and %d pressure single-point constraints on rank %d", len(o.VSPCList), len(o.PSPCList), o.Fs.Comm.Rank())
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// setFace sets the constraints of one face
func (o *Context) setFace(f *face, fcns inp.FuncsData, t float64) (err error) {

	// boundary node (normal velocity) and ghost cell (tangential velocities)
	ds := o.Fs.Ds(f.dir)
	node, ghost, coord := 0, -1, ds.Beg()
	if f.side == 1 {
		node, ghost, coord = ds.Tcels, ds.Tcels, ds.End()
	}

	// time multiplier
	mult := 1.0
	if f.bc.Fcn != "" {
		fcn, e := fcns.Get(f.bc.Fcn)
		if e != nil {
			return chk.Err("%s face: %v", f.name, e)
		}
		mult = fcn.F(t, nil)
	}

	// set
	switch f.bc.Type {
	case "free_slip":
		o.setPlane(o.Bcv(f.dir), f.dir, node, o.BgVel(f.dir, coord), true)
	case "no_slip":
		o.setPlane(o.Bcv(f.dir), f.dir, node, o.BgVel(f.dir, coord), true)
		for _, c := range tangential(f.dir) {
			o.setPlane(o.Bcv(c), f.dir, ghost, 0, false)
		}
	case "velocity":
		if len(f.bc.Vel) != 3 {
			return chk.Err("%s face: velocity must have 3 components. %d given", f.name, len(f.bc.Vel))
		}
		o.setPlane(o.Bcv(f.dir), f.dir, node, f.bc.Vel[f.dir]*mult, true)
		for _, c := range tangential(f.dir) {
			o.setPlane(o.Bcv(c), f.dir, ghost, f.bc.Vel[c]*mult, false)
		}
	case "open":
	default:
		return chk.Err("%s face: boundary condition type %q is invalid", f.name, f.bc.Type)
	}
	return
}

// setPlane sets val on all local points of f whose index along dir equals idx.
// If inDomain is set, only points inside the domain along the other directions are set
func (o *Context) setPlane(f *fdstag.Field, dir, idx int, val float64, inDomain bool) {
	f.LoopAll(func(i, j, k int) {
		p := [3]int{i, j, k}
		if p[dir] != idx {
			return
		}
		if inDomain && !f.InDomain(i, j, k) {
			return
		}
		f.Set(i, j, k, val)
	})
}

// buildSPC collects constrained owned points into the SPC lists
func (o *Context) buildSPC() {
	o.VSPCList = o.VSPCList[:0]
	o.PSPCList = o.PSPCList[:0]
	off := 0
	for d := 0; d < 3; d++ {
		f := o.Bcv(d)
		f.LoopOwned(func(i, j, k int) {
			if v := f.Get(i, j, k); IsSet(v) {
				o.VSPCList = append(o.VSPCList, SPC{Idx: off + f.OwnedIdx(i, j, k), Val: v})
			}
		})
		off += f.NOwned()
	}
	o.Bcp.LoopOwned(func(i, j, k int) {
		if v := o.Bcp.Get(i, j, k); IsSet(v) {
			o.PSPCList = append(o.PSPCList, SPC{Idx: off + o.Bcp.OwnedIdx(i, j, k), Val: v})
		}
	})
	sort.Sort(o.VSPCList)
	sort.Sort(o.PSPCList)
}

// tangential returns the directions tangential to a face with normal dir
func tangential(dir int) []int {
	switch dir {
	case 0:
		return []int{1, 2}
	case 1:
		return []int{0, 2}
	}
	return []int{0, 1}
}
