// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcs

import (
	"sync"
	"testing"

	"github.com/GTAIto/LaMEM/fdstag"
	"github.com/GTAIto/LaMEM/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freeSlip returns boundary data with all faces free slip
func freeSlip() *inp.BcsData {
	f := inp.FaceBc{Type: "free_slip"}
	return &inp.BcsData{Left: f, Right: f, Front: f, Back: f, Bottom: f, Top: f}
}

// grid returns a 2×2×2 unit grid
func grid(tst *testing.T, px, py, pz int, comm fdstag.Comm) *fdstag.FDSTAG {
	x := fdstag.Uniform(0, 1, 2)
	fs, err := fdstag.New(x, x, x, px, py, pz, comm)
	require.NoError(tst, err)
	return fs
}

func Test_bcs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs01. free slip and background strain rate")

	fs := grid(tst, 1, 1, 1, fdstag.NewSerialComm())
	data := freeSlip()
	data.Exx = 2
	ctx, err := New(fs, data, nil, 0)
	require.NoError(tst, err)
	if chk.Verbose {
		io.Pforan("%v\n", ctx)
	}

	// normal velocities on 6 faces × 4 nodes
	chk.IntAssert(len(ctx.VSPCList), 24)
	chk.IntAssert(len(ctx.PSPCList), 0)

	// vx = exx·(x - 0.5); vz = -exx·(z - 0.5)
	chk.Float64(tst, "vx left", 1e-15, ctx.Bcvx.Get(0, 1, 1), -1)
	chk.Float64(tst, "vx right", 1e-15, ctx.Bcvx.Get(2, 0, 1), 1)
	chk.Float64(tst, "vy front", 1e-15, ctx.Bcvy.Get(1, 0, 1), 0)
	chk.Float64(tst, "vz top", 1e-15, ctx.Bcvz.Get(1, 1, 2), -1)
	chk.Float64(tst, "vz bottom", 1e-15, ctx.Bcvz.Get(0, 0, 0), 1)

	// no tangential constraints
	assert.False(tst, IsSet(ctx.Bcvx.Get(1, 1, -1)))
	assert.False(tst, IsSet(ctx.Bcvx.Get(1, 1, 1)))

	// SPC application
	x := make([]float64, fs.Dof.Ln)
	for i := range x {
		x[i] = 7
	}
	ctx.ApplySPC(x)
	chk.Float64(tst, "x[0] (vx at 0,0,0)", 1e-15, x[0], -1)
	chk.Float64(tst, "x[1] (vx at 1,0,0)", 1e-15, x[1], 7)
	chk.Float64(tst, "x[2] (vx at 2,0,0)", 1e-15, x[2], 1)
	ctx.ZeroSPC(x)
	for _, c := range ctx.VSPCList {
		chk.Float64(tst, "zeroed", 1e-15, x[c.Idx], 0)
	}
	chk.Float64(tst, "p untouched", 1e-15, x[fs.Dof.Lnv], 7)
}

func Test_bcs02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs02. no slip, prescribed velocity and top pressure")

	fs := grid(tst, 1, 1, 1, fdstag.NewSerialComm())
	data := freeSlip()
	data.Bottom.Type = "no_slip"
	data.Top = inp.FaceBc{Type: "velocity", Vel: []float64{2, 3, 0}, Fcn: "half"}
	pTop := 5.0
	data.PTop = &pTop
	fcns := inp.FuncsData{{Name: "half", Type: "cte", Prms: dbf.Params{&dbf.P{N: "c", V: 0.5}}}}
	ctx, err := New(fs, data, fcns, 0)
	require.NoError(tst, err)

	// tangential ghosts
	chk.Float64(tst, "vx bottom ghost", 1e-15, ctx.Bcvx.Get(1, 0, -1), 0)
	chk.Float64(tst, "vy bottom ghost", 1e-15, ctx.Bcvy.Get(0, 1, -1), 0)
	chk.Float64(tst, "vx top ghost", 1e-15, ctx.Bcvx.Get(1, 1, 2), 1)
	chk.Float64(tst, "vy top ghost", 1e-15, ctx.Bcvy.Get(1, 1, 2), 1.5)
	chk.Float64(tst, "vz top", 1e-15, ctx.Bcvz.Get(1, 1, 2), 0)
	chk.Float64(tst, "p top ghost", 1e-15, ctx.Bcp.Get(0, 1, 2), 5)
	assert.False(tst, IsSet(ctx.Bcp.Get(0, 1, 1)))
	chk.IntAssert(len(ctx.PSPCList), 0)

	// open faces and invalid types
	data.Top = inp.FaceBc{Type: "open"}
	ctx, err = New(fs, data, fcns, 0)
	require.NoError(tst, err)
	chk.IntAssert(len(ctx.VSPCList), 20)
	data.Top = inp.FaceBc{Type: "sticky"}
	_, err = New(fs, data, fcns, 0)
	assert.Error(tst, err)
}

func Test_bcs03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs03. constraints are split among processors")

	comms := fdstag.NewLocalGroup(8)
	counts := make([]float64, 8)
	var wg sync.WaitGroup
	wg.Add(8)
	for _, c := range comms {
		go func(c *fdstag.LocalComm) {
			defer wg.Done()
			fs := grid(tst, 2, 2, 2, c)
			ctx, err := New(fs, freeSlip(), nil, 0)
			if !assert.NoError(tst, err) {
				return
			}
			counts[c.Rank()] = fs.SumAll(float64(len(ctx.VSPCList)))
			for _, spc := range ctx.VSPCList {
				assert.True(tst, spc.Idx >= 0 && spc.Idx < fs.Dof.Lnv)
			}
		}(c)
	}
	wg.Wait()
	for r := 0; r < 8; r++ {
		chk.Float64(tst, io.Sf("count @ rank %d", r), 1e-15, counts[r], 24)
	}
}
