// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jacres

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/GTAIto/LaMEM/bcs"
	"github.com/GTAIto/LaMEM/fdstag"
	"github.com/GTAIto/LaMEM/inp"
	"github.com/GTAIto/LaMEM/mdl/geom"
	"github.com/GTAIto/LaMEM/mdl/rheo"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/gm"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verbose() {
	chk.Verbose = true
}

// runRanks runs fcn on n in-process ranks and waits for all of them
func runRanks(n int, fcn func(comm fdstag.Comm)) {
	comms := fdstag.NewLocalGroup(n)
	var wg sync.WaitGroup
	wg.Add(n)
	for _, c := range comms {
		go func(c *fdstag.LocalComm) {
			defer wg.Done()
			fcn(c)
		}(c)
	}
	wg.Wait()
}

// freeSlip returns boundary data with all faces free slip
func freeSlip() *inp.BcsData {
	f := inp.FaceBc{Type: "free_slip"}
	return &inp.BcsData{Left: f, Right: f, Front: f, Back: f, Bottom: f, Top: f}
}

// controls returns controls without gravity
func controls() *inp.Controls {
	return &inp.Controls{Grav: []float64{0, 0, 0}, FSSA: 1, ShearHeatEff: 1}
}

// linear returns a database with one linear viscous phase
func linear(tst *testing.T, eta, rho, K float64) *rheo.Database {
	prms := dbf.Params{&dbf.P{N: "eta", V: eta}, &dbf.P{N: "rho", V: rho}, &dbf.P{N: "K", V: K}}
	db, err := rheo.NewDatabase([]string{"matrix"}, []string{"lin"}, []dbf.Params{prms}, nil)
	require.NoError(tst, err)
	return db
}

// inclusion returns a database with a visco-elastic matrix and a visco-elasto-plastic inclusion
func inclusion(tst *testing.T) *rheo.Database {
	prms := []dbf.Params{
		{&dbf.P{N: "eta", V: 1}, &dbf.P{N: "rho", V: 1}, &dbf.P{N: "G", V: 10}, &dbf.P{N: "K", V: 100}},
		{&dbf.P{N: "eta", V: 10}, &dbf.P{N: "rho", V: 2}, &dbf.P{N: "G", V: 10}, &dbf.P{N: "K", V: 100},
			&dbf.P{N: "ch", V: 0.05}, &dbf.P{N: "fr", V: 30}},
	}
	db, err := rheo.NewDatabase([]string{"matrix", "inclusion"}, []string{"lin", "lin"}, prms, nil)
	require.NoError(tst, err)
	return db
}

// newJacRes allocates a residual context on a grid of n×n×n unit cells
func newJacRes(n, px, py, pz int, comm fdstag.Comm, data *inp.BcsData, ctrl *inp.Controls, ev Evaluator, dt float64) (jr *JacRes, err error) {
	x := fdstag.Uniform(0, float64(n), n)
	fs, err := fdstag.New(x, x, x, px, py, pz, comm)
	if err != nil {
		return
	}
	bc, err := bcs.New(fs, data, nil, 0)
	if err != nil {
		return
	}
	jr, err = New(fs, bc, ctrl, ev, &TimeStep{Dt: dt}, &Surface{AirPhase: -1})
	if err != nil {
		return
	}
	if ev.NumPhases() == 1 {
		jr.SetPhases([]float64{1})
	}
	return
}

// serial allocates a residual context on one processor
func serial(tst *testing.T, n int, data *inp.BcsData, ctrl *inp.Controls, ev Evaluator, dt float64) *JacRes {
	jr, err := newJacRes(n, 1, 1, 1, fdstag.NewSerialComm(), data, ctrl, ev, dt)
	require.NoError(tst, err)
	return jr
}

// setOwned sets owned values of f from a function of global indices
func setOwned(f *fdstag.Field, fcn func(i, j, k float64) float64) {
	f.LoopOwned(func(i, j, k int) {
		f.Set(i, j, k, fcn(float64(i), float64(j), float64(k)))
	})
}

// fill packs smooth velocities and pressures into x and applies constraints
func fill(jr *JacRes, x []float64) {
	setOwned(jr.Lvx, func(i, j, k float64) float64 { return 0.1*i - 0.05*j*j + 0.02*i*k })
	setOwned(jr.Lvy, func(i, j, k float64) float64 { return -0.03*i*j + 0.07*k })
	setOwned(jr.Lvz, func(i, j, k float64) float64 { return 0.04*i*i - 0.06*j*k + 0.01*k })
	setOwned(jr.Lp, func(i, j, k float64) float64 { return 1 + 0.3*i - 0.2*j + 0.1*k*k })
	jr.PackSol(x)
	jr.Bc.ApplySPC(x)
}

// gatherRes returns the blocks of a coupled vector of all processes in natural order
func gatherRes(jr *JacRes, res []float64) (all []float64) {
	fs := jr.Fs
	n := 0
	for _, kind := range []fdstag.Kind{fdstag.X, fdstag.Y, fdstag.Z, fdstag.CEN} {
		f := fs.NewField(kind)
		f.SetOwned(res[n : n+f.NOwned()])
		n += f.NOwned()
		all = append(all, fs.AllGather(f)...)
	}
	return
}

func Test_jacres01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jacres01. allocation")

	jr := serial(tst, 2, freeSlip(), controls(), linear(tst, 1, 1, 0), 0)
	fs := jr.Fs
	chk.IntAssert(len(jr.SvCell), 8)
	chk.IntAssert(len(jr.SvXYEdge), 3*3*2)
	chk.IntAssert(len(jr.SvXZEdge), 3*2*3)
	chk.IntAssert(len(jr.SvYZEdge), 2*3*3)
	chk.IntAssert(len(jr.Gsol), fs.Dof.Ln)
	chk.IntAssert(len(jr.Gres), fs.Dof.Ln)
	chk.IntAssert(len(jr.SvCell[3].PhRat), 1)
	chk.Float64(tst, "phase fraction", 1e-15, jr.SvXZEdge[5].PhRat[0], 1)

	// phase fractions do not overlap
	jr.SvCell[0].PhRat[0] = 0.25
	chk.Float64(tst, "neighbour", 1e-15, jr.SvCell[1].PhRat[0], 1)

	// invalid inputs
	var ae *fdstag.AllocationError
	_, err := New(fs, jr.Bc, controls(), nil, jr.Ts, jr.Surf)
	assert.True(tst, errors.As(err, &ae))
	other := serial(tst, 2, freeSlip(), controls(), linear(tst, 1, 1, 0), 0)
	_, err = New(fs, other.Bc, controls(), jr.Ev, jr.Ts, jr.Surf)
	assert.True(tst, errors.As(err, &ae))
	ctrl := controls()
	ctrl.Grav = []float64{0, -10}
	_, err = New(fs, jr.Bc, ctrl, jr.Ev, jr.Ts, jr.Surf)
	assert.True(tst, errors.As(err, &ae))

	// wrong vector lengths
	err = jr.FormResidual(make([]float64, 3), make([]float64, fs.Dof.Ln))
	assert.True(tst, errors.As(err, &ae))
	_, err = jr.ViewRes(make([]float64, fs.Dof.Ln+1), nil)
	assert.True(tst, errors.As(err, &ae))

	jr.Free()
	assert.Nil(tst, jr.SvCell)
	assert.Nil(tst, jr.Lvx)
}

func Test_jacres02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jacres02. phase fractions from geometry")

	sphere := &geom.Prim{Kind: geom.Sphere, Phase: 1, Center: gm.Point{X: 1.5, Y: 1.5, Z: 1.5}, Radius: 1}
	g, err := geom.New(2, 0, 2, []*geom.Prim{sphere})
	require.NoError(tst, err)
	jr := serial(tst, 3, freeSlip(), controls(), inclusion(tst), 0)
	jr.InitPhases(g)

	check := func(name string, phRat []float64) {
		chk.Float64(tst, name+": sum", 1e-14, phRat[0]+phRat[1], 1)
		assert.True(tst, phRat[0] >= 0 && phRat[1] >= 0, name)
	}
	for i, sv := range jr.SvCell {
		check(io.Sf("cell %d", i), sv.PhRat)
	}
	for n, sv := range [][]SolVarEdge{jr.SvXYEdge, jr.SvXZEdge, jr.SvYZEdge} {
		for i := range sv {
			check(io.Sf("edge %d of family %d", i, n), sv[i].PhRat)
		}
	}

	// centre cell inside the sphere; corner cell outside
	chk.Float64(tst, "centre", 1e-15, jr.SvCell[jr.Lp.OwnedIdx(1, 1, 1)].PhRat[1], 1)
	chk.Float64(tst, "corner", 1e-15, jr.SvCell[jr.Lp.OwnedIdx(0, 0, 0)].PhRat[0], 1)
}

func Test_jacres03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jacres03. zero velocity, rigid rotation and deviatoric strain rates")

	// zero velocity
	jr := serial(tst, 3, freeSlip(), controls(), linear(tst, 2, 1, 0), 0)
	fs := jr.Fs
	x := make([]float64, fs.Dof.Ln)
	res := make([]float64, fs.Dof.Ln)
	require.NoError(tst, jr.FormResidual(x, res))
	jr.GetVorticity()
	chk.Array(tst, "res", 1e-15, res, make([]float64, fs.Dof.Ln))
	for _, f := range []*fdstag.Field{jr.Ldxx, jr.Ldyy, jr.Ldzz, jr.Ldxy, jr.Ldxz, jr.Ldyz, jr.Lwx, jr.Lwy, jr.Lwz} {
		chk.Array(tst, f.Kind.String(), 1e-15, f.V, make([]float64, len(f.V)))
	}
	for _, sv := range jr.SvCell {
		chk.Float64(tst, "DII", 1e-15, sv.SvDev.DII, 0)
	}

	// rigid rotation about z: vx = -ω·y, vy = ω·x
	ω := 0.5
	setOwned(jr.Lvx, func(i, j, k float64) float64 { return -ω * (j + 0.5) })
	setOwned(jr.Lvy, func(i, j, k float64) float64 { return ω * (i + 0.5) })
	setOwned(jr.Lvz, func(i, j, k float64) float64 { return 0 })
	jr.PackSol(x)
	jr.CopySol(x)
	jr.GetI2Gdt()
	jr.GetEffStrainRate()
	jr.GetVorticity()
	for k := 0; k < 3; k++ {
		for j := 1; j < 3; j++ {
			for i := 1; i < 3; i++ {
				chk.Float64(tst, io.Sf("dxy(%d,%d,%d)", i, j, k), 1e-15, jr.Ldxy.Get(i, j, k), 0)
				chk.Float64(tst, io.Sf("wz(%d,%d,%d)", i, j, k), 1e-15, jr.Lwz.Get(i, j, k), 2*ω)
			}
		}
	}

	// deviatoric strain rates have zero trace
	fill(jr, x)
	jr.CopySol(x)
	jr.GetEffStrainRate()
	jr.Lp.LoopOwned(func(i, j, k int) {
		sv := &jr.SvCell[jr.Lp.OwnedIdx(i, j, k)]
		θ := (jr.Lvx.Get(i+1, j, k) - jr.Lvx.Get(i, j, k)) +
			(jr.Lvy.Get(i, j+1, k) - jr.Lvy.Get(i, j, k)) +
			(jr.Lvz.Get(i, j, k+1) - jr.Lvz.Get(i, j, k))
		chk.Float64(tst, io.Sf("trace(%d,%d,%d)", i, j, k), 1e-15, sv.devSum(), 0)
		chk.Float64(tst, io.Sf("theta(%d,%d,%d)", i, j, k), 1e-15, sv.SvBulk.Theta, θ)
	})
}

func Test_jacres04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jacres04. packing and two-point constraints")

	data := freeSlip()
	data.Bottom.Type = "no_slip"
	data.Top = inp.FaceBc{Type: "velocity", Vel: []float64{2, -1, 0}}
	pTop := 5.0
	data.PTop = &pTop
	jr := serial(tst, 3, data, controls(), linear(tst, 1, 1, 0), 0)
	fs := jr.Fs
	x := make([]float64, fs.Dof.Ln)
	fill(jr, x)
	jr.CopySol(x)

	// round trip
	y := make([]float64, fs.Dof.Ln)
	jr.PackSol(y)
	chk.Array(tst, "packed", 1e-15, y, x)
	chk.Array(tst, "Gsol", 1e-15, jr.Gsol, x)

	// tangential velocities at bottom and top; edges included
	vx, vy, p := jr.Lvx, jr.Lvy, jr.Lp
	c := fdstag.Clamp
	for j := -1; j <= 3; j++ {
		for i := 0; i <= 3; i++ {
			chk.Float64(tst, io.Sf("vx bottom (%d,%d)", i, j), 1e-14, (vx.Get(i, j, -1)+vx.Get(i, c(j, 3), 0))/2, 0)
			chk.Float64(tst, io.Sf("vx top (%d,%d)", i, j), 1e-14, (vx.Get(i, j, 3)+vx.Get(i, c(j, 3), 2))/2, 2)
		}
	}
	for j := 0; j <= 3; j++ {
		for i := -1; i <= 3; i++ {
			chk.Float64(tst, io.Sf("vy bottom (%d,%d)", i, j), 1e-14, (vy.Get(i, j, -1)+vy.Get(c(i, 3), j, 0))/2, 0)
			chk.Float64(tst, io.Sf("vy top (%d,%d)", i, j), 1e-14, (vy.Get(i, j, 3)+vy.Get(c(i, 3), j, 2))/2, -1)
		}
	}

	// free-slip ghosts replicate interior values
	for k := 0; k < 3; k++ {
		for i := 0; i <= 3; i++ {
			chk.Float64(tst, io.Sf("vx front (%d,%d)", i, k), 1e-15, vx.Get(i, -1, k), vx.Get(i, 0, k))
		}
	}

	// pressure at the top; edges and corners included
	for j := -1; j <= 3; j++ {
		for i := -1; i <= 3; i++ {
			chk.Float64(tst, io.Sf("p top (%d,%d)", i, j), 1e-14, (p.Get(i, j, 3)+p.Get(c(i, 3), c(j, 3), 2))/2, pTop)
		}
	}

	// unconstrained pressure corners
	chk.Float64(tst, "p corner", 1e-14, p.Get(-1, -1, -1), p.Get(0, 0, 0))
	chk.Float64(tst, "p edge", 1e-14, p.Get(3, -1, 1), p.Get(2, 0, 1))

	// constrained rows of the residual
	res := make([]float64, fs.Dof.Ln)
	require.NoError(tst, jr.FormResidual(x, res))
	for _, spc := range jr.Bc.VSPCList {
		chk.Float64(tst, io.Sf("res[%d]", spc.Idx), 1e-15, res[spc.Idx], 0)
	}

	// temperature ghosts have zero gradient
	T := fs.NewVec(fdstag.CEN)
	jr.Lp.LoopOwned(func(i, j, k int) {
		T[jr.Lp.OwnedIdx(i, j, k)] = 100 * float64(3-k)
	})
	jr.CopyTemp(T)
	chk.Float64(tst, "T bottom ghost", 1e-15, jr.LT.Get(1, 1, -1), 300)
	chk.Float64(tst, "T top ghost", 1e-15, jr.LT.Get(1, 1, 3), 100)
}

func Test_jacres05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jacres05. uniform pressure")

	p0, K, dt := 3.0, 2.0, 1.0
	jr := serial(tst, 3, freeSlip(), controls(), linear(tst, 1, 1, K), dt)
	fs := jr.Fs
	x := make([]float64, fs.Dof.Ln)
	for i := fs.Dof.Lnv; i < fs.Dof.Ln; i++ {
		x[i] = p0
	}
	res := make([]float64, fs.Dof.Ln)
	require.NoError(tst, jr.FormResidual(x, res))
	chk.Array(tst, "momentum", 1e-14, res[:fs.Dof.Lnv], make([]float64, fs.Dof.Lnv))
	for i := fs.Dof.Lnv; i < fs.Dof.Ln; i++ {
		chk.Float64(tst, io.Sf("gc[%d]", i), 1e-15, res[i], -p0/(K*dt))
	}
	for _, sv := range jr.SvCell {
		chk.Float64(tst, "Cxx", 1e-15, sv.Cxx, -p0)
		chk.Float64(tst, "IKdt", 1e-15, sv.SvBulk.IKdt, 1/(K*dt))
	}
}

func Test_jacres06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jacres06. simple shear")

	η, U := 2.0, 3.0
	data := freeSlip()
	data.Bottom.Type = "no_slip"
	data.Top = inp.FaceBc{Type: "velocity", Vel: []float64{U, 0, 0}}
	jr := serial(tst, 3, data, controls(), linear(tst, η, 1, 0), 0)
	fs := jr.Fs
	x := make([]float64, fs.Dof.Ln)
	jr.Bc.ApplySPC(x)
	res := make([]float64, fs.Dof.Ln)
	require.NoError(tst, jr.FormResidual(x, res))

	// top xz edges carry the shear stress 2·η·U
	jr.Ldxz.LoopOwned(func(i, j, k int) {
		sv := &jr.SvXZEdge[jr.Ldxz.OwnedIdx(i, j, k)]
		if k == 3 {
			chk.Float64(tst, io.Sf("sxz(%d,%d,%d)", i, j, k), 1e-14, sv.S, 2*η*U)
		} else {
			chk.Float64(tst, io.Sf("sxz(%d,%d,%d)", i, j, k), 1e-14, sv.S, 0)
		}
	})

	// only the top layer of free x-velocities is loaded
	jr.Lvx.LoopOwned(func(i, j, k int) {
		correct := 0.0
		if k == 2 && i > 0 && i < 3 {
			correct = -2 * η * U
		}
		chk.Float64(tst, io.Sf("fx(%d,%d,%d)", i, j, k), 1e-14, res[jr.Lvx.OwnedIdx(i, j, k)], correct)
	})
	chk.Array(tst, "fy, fz, gc", 1e-14, res[fs.NXFace:], make([]float64, fs.Dof.Ln-fs.NXFace))
}

func Test_jacres07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jacres07. lithostatic and pore pressure; pressure shift")

	ctrl := controls()
	ctrl.Grav = []float64{0, 0, -10}
	ctrl.RhoFluid = 1000
	jr := serial(tst, 3, freeSlip(), ctrl, linear(tst, 1, 1000, 0), 0)

	// lithostatic
	jr.GetLithoStaticPressure()
	for k, correct := range map[int]float64{-1: 25000, 0: 25000, 1: 15000, 2: 5000, 3: 5000} {
		chk.Float64(tst, io.Sf("pLithos(k=%d)", k), 1e-10, jr.LpLithos.Get(1, 2, k), correct)
	}
	chk.Float64(tst, "pLithos ghost column", 1e-10, jr.LpLithos.Get(-1, 3, 0), 25000)

	// pore pressure
	for _, t := range []struct {
		gw      inp.GwType
		level   float64
		correct [3]float64
	}{
		{inp.GwNone, 0, [3]float64{0, 0, 0}},
		{inp.GwTop, 0, [3]float64{25000, 15000, 5000}},
		{inp.GwLevel, 1, [3]float64{5000, 0, 0}},
		{inp.GwSurf, 2, [3]float64{15000, 5000, 0}},
	} {
		ctrl.GwType = t.gw
		ctrl.GwLevel = t.level
		jr.Surf.AvgTopo = t.level
		jr.GetPorePressure()
		for k := 0; k < 3; k++ {
			chk.Float64(tst, io.Sf("pPore(gw=%d, k=%d)", t.gw, k), 1e-10, jr.LpPore.Get(0, 1, k), t.correct[k])
		}
	}

	// pressure shift
	x := make([]float64, jr.Fs.Dof.Ln)
	setOwned(jr.Lp, func(i, j, k float64) float64 { return 10*k + i })
	jr.PackSol(x)
	jr.CopySol(x)
	jr.GetPressShift()
	chk.Float64(tst, "inactive shift", 1e-15, jr.PShift, 0)
	ctrl.PShiftAct = true
	jr.GetPressShift()
	chk.Float64(tst, "shift", 1e-14, jr.PShift, 21)
}

func Test_jacres08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jacres08. residual norms and divergence tolerance")

	ctrl := controls()
	ctrl.DivTol = 0
	jr := serial(tst, 2, freeSlip(), ctrl, linear(tst, 1, 1, 0), 0)
	jr.ShowMsg = chk.Verbose
	fs := jr.Fs
	res := make([]float64, fs.Dof.Ln)
	for i := range res {
		res[i] = 1
	}
	eNorm := 0.5
	rep, err := jr.ViewRes(res, &eNorm)
	require.NoError(tst, err)
	chk.Float64(tst, "DivMin", 1e-15, rep.DivMin, 1)
	chk.Float64(tst, "DivMax", 1e-15, rep.DivMax, 1)
	chk.Float64(tst, "Div2", 1e-15, rep.Div2, math.Sqrt(8))
	chk.Float64(tst, "Mom2", 1e-15, rep.Mom2, 6)
	chk.Float64(tst, "Energy2", 1e-15, *rep.Energy2, eNorm)
	assert.False(tst, rep.Failed)

	// emergency stop
	ctrl.DivTol = 0.5
	rep, err = jr.ViewRes(res, nil)
	var de *DivergenceError
	require.True(tst, errors.As(err, &de))
	assert.True(tst, rep.Failed)
	chk.Float64(tst, "DivMax", 1e-15, de.DivMax, 1)
	chk.Float64(tst, "DivTol", 1e-15, de.DivTol, 0.5)
	ctrl.DivTol = 10
	_, err = jr.ViewRes(res, nil)
	assert.NoError(tst, err)
}

func Test_jacres09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jacres09. constitutive failure")

	jr := serial(tst, 2, freeSlip(), controls(), linear(tst, math.NaN(), 1, 0), 0)
	res := make([]float64, jr.Fs.Dof.Ln)
	err := jr.FormResidual(make([]float64, jr.Fs.Dof.Ln), res)
	var cf *rheo.ConstitutiveFailure
	require.True(tst, errors.As(err, &cf))
	assert.Equal(tst, "cell (0,0,0)", cf.Where)
	if chk.Verbose {
		io.Pforan("%v\n", err)
	}
}

func Test_jacres10(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jacres10. parallel residual equals serial residual")

	ctrl := controls()
	ctrl.Grav = []float64{0, 0, -1}
	ctrl.PShiftAct = true
	data := freeSlip()
	data.Bottom.Type = "no_slip"
	data.Top = inp.FaceBc{Type: "velocity", Vel: []float64{0.2, 0.1, 0}}
	pTop := 0.5
	data.PTop = &pTop
	sphere := &geom.Prim{Kind: geom.Sphere, Phase: 1, Center: gm.Point{X: 2, Y: 2, Z: 2}, Radius: 1.2}
	g, err := geom.New(2, 0, 2, []*geom.Prim{sphere})
	require.NoError(tst, err)
	db := inclusion(tst)

	// residual gathered on all processes
	run := func(comm fdstag.Comm, px, py, pz int) (all []float64, rep *Report) {
		jr, err := newJacRes(4, px, py, pz, comm, data, ctrl, db, 0.5)
		if !assert.NoError(tst, err) {
			return
		}
		jr.InitPhases(g)
		T := jr.Fs.NewVec(fdstag.CEN)
		jr.Lp.LoopOwned(func(i, j, k int) {
			T[jr.Lp.OwnedIdx(i, j, k)] = float64(4 - k)
		})
		jr.CopyTemp(T)
		x := make([]float64, jr.Fs.Dof.Ln)
		fill(jr, x)
		res := make([]float64, jr.Fs.Dof.Ln)
		if !assert.NoError(tst, jr.FormResidual(x, res)) {
			return
		}
		rep, err = jr.ViewRes(res, nil)
		assert.NoError(tst, err)
		return gatherRes(jr, res), rep
	}
	ref, refRep := run(fdstag.NewSerialComm(), 1, 1, 1)
	require.NotNil(tst, refRep)

	for _, procs := range [][3]int{{2, 1, 1}, {1, 2, 2}, {2, 2, 2}} {
		n := procs[0] * procs[1] * procs[2]
		all := make([][]float64, n)
		reps := make([]*Report, n)
		runRanks(n, func(comm fdstag.Comm) {
			all[comm.Rank()], reps[comm.Rank()] = run(comm, procs[0], procs[1], procs[2])
		})
		for r := 0; r < n; r++ {
			chk.Array(tst, io.Sf("res %v @ rank %d", procs, r), 1e-12, all[r], ref)
			if assert.NotNil(tst, reps[r]) {
				chk.Float64(tst, io.Sf("Mom2 %v @ rank %d", procs, r), 1e-12, reps[r].Mom2, refRep.Mom2)
				chk.Float64(tst, io.Sf("DivMax %v @ rank %d", procs, r), 1e-12, reps[r].DivMax, refRep.DivMax)
			}
		}
	}
}

func Test_jacres11(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jacres11. stress history and effective strain rates")

	// visco-elastic matrix: I2Gdt = 1/(2·10·0.5)
	dt := 0.5
	jr, err := newJacRes(3, 1, 1, 1, fdstag.NewSerialComm(), freeSlip(), controls(), inclusion(tst), dt)
	require.NoError(tst, err)
	jr.SetPhases([]float64{1, 0})
	x := make([]float64, jr.Fs.Dof.Ln)
	fill(jr, x)
	res := make([]float64, jr.Fs.Dof.Ln)
	require.NoError(tst, jr.FormResidual(x, res))

	// history takes the current stresses
	jr.SaveHistory()
	nonzero := 0
	for _, sv := range jr.SvCell {
		chk.Float64(tst, "Hxx", 1e-15, sv.Hxx, sv.Sxx)
		chk.Float64(tst, "Hyy", 1e-15, sv.Hyy, sv.Syy)
		chk.Float64(tst, "Hzz", 1e-15, sv.Hzz, sv.Szz)
		if sv.Hxx != 0 {
			nonzero++
		}
	}
	for _, sv := range [][]SolVarEdge{jr.SvXYEdge, jr.SvXZEdge, jr.SvYZEdge} {
		for i := range sv {
			chk.Float64(tst, "H", 1e-15, sv[i].H, sv[i].S)
		}
	}
	assert.True(tst, nonzero > 0)

	// effective strain rates include the history
	require.NoError(tst, jr.FormResidual(x, res))
	jr.Ldxx.LoopOwned(func(i, j, k int) {
		sv := &jr.SvCell[jr.Ldxx.OwnedIdx(i, j, k)]
		chk.Float64(tst, "I2Gdt", 1e-15, sv.SvDev.I2Gdt, 0.1)
		chk.Float64(tst, io.Sf("dxx(%d,%d,%d)", i, j, k), 1e-14, jr.Ldxx.Get(i, j, k), sv.Dxx+0.1*sv.Hxx)
		chk.Float64(tst, io.Sf("dyy(%d,%d,%d)", i, j, k), 1e-14, jr.Ldyy.Get(i, j, k), sv.Dyy+0.1*sv.Hyy)
		chk.Float64(tst, io.Sf("dzz(%d,%d,%d)", i, j, k), 1e-14, jr.Ldzz.Get(i, j, k), sv.Dzz+0.1*sv.Hzz)
		chk.Float64(tst, io.Sf("sxx(%d,%d,%d)", i, j, k), 1e-14, sv.Sxx, 2*sv.SvDev.Eta*jr.Ldxx.Get(i, j, k))
	})
	jr.Ldxy.LoopOwned(func(i, j, k int) {
		sv := &jr.SvXYEdge[jr.Ldxy.OwnedIdx(i, j, k)]
		chk.Float64(tst, io.Sf("dxy(%d,%d,%d)", i, j, k), 1e-14, jr.Ldxy.Get(i, j, k), sv.D+0.1*sv.H)
	})

	// visco-elastic viscosity 1/(1/η + 1/(G·dt))
	chk.Float64(tst, "eta", 1e-14, jr.SvCell[0].SvDev.Eta, 1.0/(1.0+1.0/5.0))
}

func Test_jacres12(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jacres12. plastic strain rate")

	// plastic inclusion everywhere at zero pressure: τy = ch·cos(φ), ηve = 1/(1/10 + 1/(10·0.5))
	dt := 0.5
	jr, err := newJacRes(3, 1, 1, 1, fdstag.NewSerialComm(), freeSlip(), controls(), inclusion(tst), dt)
	require.NoError(tst, err)
	jr.SetPhases([]float64{0, 1})
	x := make([]float64, jr.Fs.Dof.Ln)
	fill(jr, x)
	for i := jr.Fs.Dof.Lnv; i < jr.Fs.Dof.Ln; i++ {
		x[i] = 0
	}
	res := make([]float64, jr.Fs.Dof.Ln)
	require.NoError(tst, jr.FormResidual(x, res))
	τy := 0.05 * math.Cos(math.Pi/6.0)
	yielded := 0
	for _, sv := range jr.SvCell {
		dii := sv.SvDev.DII
		if sv.SvDev.Yield {
			yielded++
			chk.Float64(tst, "DIIpl", 1e-14, sv.SvDev.DIIpl, dii-0.15*τy)
			chk.Float64(tst, "eta", 1e-14, sv.SvDev.Eta, τy/(2*dii))
		} else {
			chk.Float64(tst, "DIIpl", 1e-15, sv.SvDev.DIIpl, 0)
		}
	}
	assert.True(tst, yielded > 0)
}
