// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package jacres implements the residual evaluation of the coupled momentum and continuity
// equations on the staggered grid
//
//  Unknowns are velocities on faces (vx, vy, vz) and pressures at cell centres (p). Normal
//  strain rates live at cell centres and shear strain rates on edges (xy, xz, yz). Each pass:
//
//   CopySol -> GetPressShift -> GetI2Gdt -> GetEffStrainRate -> GetResidual -> CopyRes
//
//  computes the residual vector [fx | fy | fz | gc] of the rank-local coupled vector.
//
package jacres

import (
	"github.com/GTAIto/LaMEM/bcs"
	"github.com/GTAIto/LaMEM/fdstag"
	"github.com/GTAIto/LaMEM/inp"
	"github.com/GTAIto/LaMEM/mdl/geom"
	"github.com/GTAIto/LaMEM/mdl/rheo"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Evaluator defines the constitutive evaluator used by the residual
type Evaluator interface {
	NumPhases() int                                                              // number of phases
	GetI2Gdt(phRat []float64, dt float64) float64                                // elastic factor
	DevConstEq(in *rheo.DevInput) (rheo.DevOutput, error)                        // deviatoric update
	VolConstEq(phRat []float64, p, T, depth, dt float64) (rheo.VolOutput, error) // volumetric update
	RefDensity(phRat []float64) float64                                          // reference density
}

// TimeStep holds the current time step
type TimeStep struct {
	Dt   float64 // time step size
	Time float64 // current time
	Step int     // step number
}

// Surface holds free-surface data
type Surface struct {
	AirPhase int     // sticky air phase; -1 => no free surface
	AvgTopo  float64 // average topography
}

// JacRes holds all data for the residual evaluation on one processor
type JacRes struct {

	// collaborators
	Fs   *fdstag.FDSTAG // staggered grid
	Bc   *bcs.Context   // boundary constraints
	Ctrl *inp.Controls  // parameters; read only
	Ev   Evaluator      // constitutive evaluator
	Ts   *TimeStep      // time step
	Surf *Surface       // free surface

	// state store
	SvCell   []SolVarCell // [NCells] control volumes
	SvXYEdge []SolVarEdge // [NXYEdg] xy edges
	SvXZEdge []SolVarEdge // [NXZEdg] xz edges
	SvYZEdge []SolVarEdge // [NYZEdg] yz edges

	// coupled vectors
	Gsol la.Vector // [Ln] solution [vx | vy | vz | p]
	Gres la.Vector // [Ln] residual [fx | fy | fz | gc]

	// owned blocks
	Gvx, Gvy, Gvz, Gp []float64 // solution
	Gfx, Gfy, Gfz, Gc []float64 // residual

	// ghosted local fields
	Lvx, Lvy, Lvz    *fdstag.Field // velocities
	Lp, LT           *fdstag.Field // pressure and temperature
	Ldxx, Ldyy, Ldzz *fdstag.Field // effective normal strain rates
	Ldxy, Ldxz, Ldyz *fdstag.Field // effective shear strain rates
	Lwx, Lwy, Lwz    *fdstag.Field // vorticity
	Lfx, Lfy, Lfz    *fdstag.Field // momentum residual buffers
	LpLithos, LpPore *fdstag.Field // lithostatic and pore pressure

	// derived
	PShift  float64 // pressure shift
	ShowMsg bool    // show messages

	// phase fractions
	phCell, phXY, phXZ, phYZ *arena
}

// New allocates the state store and all fields
//  Input:
//   fs   -- staggered grid
//   bc   -- boundary constraints on fs
//   ctrl -- controls
//   ev   -- constitutive evaluator
//   ts   -- time step
//   surf -- free surface
func New(fs *fdstag.FDSTAG, bc *bcs.Context, ctrl *inp.Controls, ev Evaluator, ts *TimeStep, surf *Surface) (o *JacRes, err error) {

	// check
	if fs == nil || bc == nil || ctrl == nil || ev == nil || ts == nil || surf == nil {
		return nil, fdstag.NewAllocationError("residual context needs grid, constraints, controls, evaluator, time step and surface")
	}
	if bc.Fs != fs {
		return nil, fdstag.NewAllocationError("boundary constraints were built on a different grid")
	}
	nph := ev.NumPhases()
	if nph < 1 {
		return nil, fdstag.NewAllocationError("number of phases must be positive. %d is invalid", nph)
	}
	if len(ctrl.Grav) != 3 {
		return nil, fdstag.NewAllocationError("gravity vector must have 3 components. %d given", len(ctrl.Grav))
	}

	// collaborators
	o = &JacRes{Fs: fs, Bc: bc, Ctrl: ctrl, Ev: ev, Ts: ts, Surf: surf}

	// state store
	o.phCell = newArena(fs.NCells, nph)
	o.phXY = newArena(fs.NXYEdg, nph)
	o.phXZ = newArena(fs.NXZEdg, nph)
	o.phYZ = newArena(fs.NYZEdg, nph)
	o.SvCell = make([]SolVarCell, fs.NCells)
	for i := range o.SvCell {
		o.SvCell[i].PhRat = o.phCell.get(i)
	}
	o.SvXYEdge = newEdges(o.phXY, fs.NXYEdg)
	o.SvXZEdge = newEdges(o.phXZ, fs.NXZEdg)
	o.SvYZEdge = newEdges(o.phYZ, fs.NYZEdg)

	// coupled vectors
	o.Gsol = la.NewVector(fs.Dof.Ln)
	o.Gres = la.NewVector(fs.Dof.Ln)

	// owned blocks
	o.Gvx, o.Gvy, o.Gvz, o.Gp = fs.NewVec(fdstag.X), fs.NewVec(fdstag.Y), fs.NewVec(fdstag.Z), fs.NewVec(fdstag.CEN)
	o.Gfx, o.Gfy, o.Gfz, o.Gc = fs.NewVec(fdstag.X), fs.NewVec(fdstag.Y), fs.NewVec(fdstag.Z), fs.NewVec(fdstag.CEN)

	// local fields
	o.Lvx, o.Lvy, o.Lvz = fs.NewField(fdstag.X), fs.NewField(fdstag.Y), fs.NewField(fdstag.Z)
	o.Lp, o.LT = fs.NewField(fdstag.CEN), fs.NewField(fdstag.CEN)
	o.Ldxx, o.Ldyy, o.Ldzz = fs.NewField(fdstag.CEN), fs.NewField(fdstag.CEN), fs.NewField(fdstag.CEN)
	o.Ldxy, o.Ldxz, o.Ldyz = fs.NewField(fdstag.XY), fs.NewField(fdstag.XZ), fs.NewField(fdstag.YZ)
	o.Lwx, o.Lwy, o.Lwz = fs.NewField(fdstag.YZ), fs.NewField(fdstag.XZ), fs.NewField(fdstag.XY)
	o.Lfx, o.Lfy, o.Lfz = fs.NewField(fdstag.X), fs.NewField(fdstag.Y), fs.NewField(fdstag.Z)
	o.LpLithos, o.LpPore = fs.NewField(fdstag.CEN), fs.NewField(fdstag.CEN)
	return
}

// Free releases the state store and all fields
func (o *JacRes) Free() {
	o.SvCell, o.SvXYEdge, o.SvXZEdge, o.SvYZEdge = nil, nil, nil, nil
	o.phCell, o.phXY, o.phXZ, o.phYZ = nil, nil, nil, nil
	o.Gsol, o.Gres = nil, nil
	o.Gvx, o.Gvy, o.Gvz, o.Gp = nil, nil, nil, nil
	o.Gfx, o.Gfy, o.Gfz, o.Gc = nil, nil, nil, nil
	o.Lvx, o.Lvy, o.Lvz, o.Lp, o.LT = nil, nil, nil, nil, nil
	o.Ldxx, o.Ldyy, o.Ldzz, o.Ldxy, o.Ldxz, o.Ldyz = nil, nil, nil, nil, nil, nil
	o.Lwx, o.Lwy, o.Lwz, o.Lfx, o.Lfy, o.Lfz = nil, nil, nil, nil, nil, nil
	o.LpLithos, o.LpPore = nil, nil
}

// InitPhases computes phase fractions of all control volumes and edges from a geometry.
// The control volume of an edge spans the neighbouring cell centres clipped to the domain
func (o *JacRes) InitPhases(g *geom.Geometry) {
	fs := o.Fs
	o.Ldxx.LoopOwned(func(i, j, k int) {
		lo, hi := o.volume(fdstag.CEN, i, j, k)
		g.Ratios(o.SvCell[o.Ldxx.OwnedIdx(i, j, k)].PhRat, lo, hi)
	})
	for _, e := range []struct {
		kind fdstag.Kind
		f    *fdstag.Field
		sv   []SolVarEdge
	}{
		{fdstag.XY, o.Ldxy, o.SvXYEdge},
		{fdstag.XZ, o.Ldxz, o.SvXZEdge},
		{fdstag.YZ, o.Ldyz, o.SvYZEdge},
	} {
		e.f.LoopOwned(func(i, j, k int) {
			lo, hi := o.volume(e.kind, i, j, k)
			g.Ratios(e.sv[e.f.OwnedIdx(i, j, k)].PhRat, lo, hi)
		})
	}
	if o.ShowMsg {
		io.Pf("> Phase fractions of %d cells and %d edges initialised\n", fs.NCells, fs.NXYEdg+fs.NXZEdg+fs.NYZEdg)
	}
}

// SetPhases sets the same phase fractions on all control volumes and edges
func (o *JacRes) SetPhases(phRat []float64) {
	for _, a := range []*arena{o.phCell, o.phXY, o.phXZ, o.phYZ} {
		for id := 0; id < len(a.data)/a.stride; id++ {
			copy(a.get(id), phRat)
		}
	}
}

// FormResidual computes the constrained residual of solution x and stores it in res.
// x and res are rank-local coupled vectors
func (o *JacRes) FormResidual(x, res []float64) (err error) {
	if err = o.checkLen(x, "solution"); err != nil {
		return
	}
	if err = o.checkLen(res, "residual"); err != nil {
		return
	}
	o.CopySol(x)
	o.GetPressShift()
	o.GetI2Gdt()
	o.GetEffStrainRate()
	if err = o.GetResidual(); err != nil {
		return
	}
	o.CopyRes(res)
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// newEdges allocates edge states whose phase fractions live in a
func newEdges(a *arena, n int) (sv []SolVarEdge) {
	sv = make([]SolVarEdge, n)
	for i := range sv {
		sv[i].PhRat = a.get(i)
	}
	return
}

// volume returns the control volume of point (i,j,k) of a kind clipped to the domain
func (o *JacRes) volume(kind fdstag.Kind, i, j, k int) (lo, hi [3]float64) {
	idx := [3]int{i, j, k}
	for d := 0; d < 3; d++ {
		ds := o.Fs.Ds(d)
		n := idx[d]
		if kind.IsNode(d) {
			lo[d] = ds.CoordCell(n - 1)
			hi[d] = ds.CoordCell(n)
		} else {
			lo[d] = ds.Node(n)
			hi[d] = ds.Node(n + 1)
		}
		if lo[d] < ds.Beg() {
			lo[d] = ds.Beg()
		}
		if hi[d] > ds.End() {
			hi[d] = ds.End()
		}
	}
	return
}

// checkLen checks the length of a coupled vector
func (o *JacRes) checkLen(v []float64, name string) error {
	if len(v) != o.Fs.Dof.Ln {
		return fdstag.NewAllocationError("%s vector has length %d; the layout needs %d", name, len(v), o.Fs.Dof.Ln)
	}
	return nil
}

// SaveHistory stores the current pressure, temperature and deviatoric stresses of all control
// volumes and edges as history values of the next time step
func (o *JacRes) SaveHistory() {
	o.Lp.LoopOwned(func(i, j, k int) {
		sv := &o.SvCell[o.Lp.OwnedIdx(i, j, k)]
		sv.SvBulk.Pn = o.Lp.Get(i, j, k)
		sv.SvBulk.Tn = o.LT.Get(i, j, k)
		sv.Hxx, sv.Hyy, sv.Hzz = sv.Sxx, sv.Syy, sv.Szz
	})
	for _, sv := range [][]SolVarEdge{o.SvXYEdge, o.SvXZEdge, o.SvYZEdge} {
		for i := range sv {
			sv[i].H = sv[i].S
		}
	}
}
