// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lamem implements the driver that sets up a staggered-grid model and evaluates the
// residual of its current state
package lamem

import (
	"bytes"
	"time"

	"github.com/GTAIto/LaMEM/bcs"
	"github.com/GTAIto/LaMEM/fdstag"
	"github.com/GTAIto/LaMEM/inp"
	"github.com/GTAIto/LaMEM/jacres"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/google/uuid"
)

// Main holds all data for a residual evaluation
type Main struct {
	Sim     *inp.Simulation  // simulation data
	Fs      *fdstag.FDSTAG   // staggered grid
	Bc      *bcs.Context     // boundary constraints
	Jr      *jacres.JacRes   // residual context
	Ts      *jacres.TimeStep // time step
	RunID   uuid.UUID        // id of this run; written to restart files
	Sol     []float64        // rank-local coupled solution
	Res     []float64        // rank-local coupled residual
	Report  *jacres.Report   // residual norms of the last evaluation
	Nproc   int              // number of processors
	Proc    int              // processor id
	ShowMsg bool             // show messages
}

// NewMain returns a new Main structure
//  Input:
//   simfilepath   -- simulation filename including full path
//   allowParallel -- allow parallel execution; otherwise, run in serial mode regardless whether MPI is on or not
//   verbose       -- show messages
//   comm          -- [optional] communicator; nil => MPI world if allowed and on, serial otherwise
func NewMain(simfilepath string, allowParallel, verbose bool, comm fdstag.Comm) (o *Main, err error) {

	// communicator
	if comm == nil {
		if mpi.IsOn() && allowParallel {
			comm = fdstag.NewMpiComm()
		} else {
			comm = fdstag.NewSerialComm()
		}
	}

	// new Main object
	o = &Main{RunID: uuid.New(), Proc: comm.Rank(), Nproc: comm.Size()}
	o.ShowMsg = verbose && o.Proc == 0

	// read input data
	if o.Sim, err = inp.ReadSim(simfilepath); err != nil {
		return nil, err
	}
	if o.ShowMsg {
		io.Pf("> Simulation file read\n")
	}

	// staggered grid
	sim := o.Sim
	np := sim.Grid.Nproc
	if o.Fs, err = fdstag.New(sim.X[0], sim.X[1], sim.X[2], np[0], np[1], np[2], comm); err != nil {
		return nil, err
	}
	if o.ShowMsg {
		io.Pf("> Staggered grid allocated\n%v", o.Fs)
	}

	// boundary constraints
	if err = o.SetBcs(sim.Time.Time); err != nil {
		return nil, err
	}

	// residual context
	o.Ts = &jacres.TimeStep{Dt: sim.Time.Dt, Time: sim.Time.Time, Step: sim.Time.Step}
	surf := &jacres.Surface{AirPhase: sim.Surface.AirPhase, AvgTopo: sim.AvgTopo}
	if o.Jr, err = jacres.New(o.Fs, o.Bc, &sim.Controls, sim.Rheo, o.Ts, surf); err != nil {
		return nil, err
	}
	o.Jr.ShowMsg = o.ShowMsg
	o.Jr.InitPhases(sim.Geom)

	// coupled vectors
	o.Sol = make([]float64, o.Fs.Dof.Ln)
	o.Res = make([]float64, o.Fs.Dof.Ln)
	if o.ShowMsg {
		io.Pf("> Residual context allocated on %d processor(s)\n", o.Nproc)
	}
	return
}

// Run sets the initial state, evaluates the residual and writes the restart file
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// initial state
	if err = o.SetIniVals(); err != nil {
		return
	}

	// residual
	if o.ShowMsg {
		io.Pf("> Evaluating residual\n")
	}
	if err = o.Jr.FormResidual(o.Sol, o.Res); err != nil {
		return
	}
	if o.Report, err = o.Jr.ViewRes(o.Res, nil); err != nil {
		return
	}

	// restart file
	return o.SaveRestart()
}

// SetIniVals sets temperature, pressure and velocities of the initial state. A restart file
// given in the simulation data replaces the solution vector
func (o *Main) SetIniVals() (err error) {
	sim, jr, fs := o.Sim, o.Jr, o.Fs

	// temperature: linear between bottom and top
	ini := sim.Init
	zb, zt := fs.Dsz.Beg(), fs.Dsz.End()
	T := fs.NewVec(fdstag.CEN)
	jr.Lp.LoopOwned(func(i, j, k int) {
		z := fs.Dsz.CoordCell(k)
		T[jr.Lp.OwnedIdx(i, j, k)] = ini.TBot + (ini.TTop-ini.TBot)*(z-zb)/(zt-zb)
	})
	jr.CopyTemp(T)

	// pressure and velocities
	jr.Lp.LoopOwned(func(i, j, k int) {
		jr.Lp.Set(i, j, k, ini.P0)
	})
	for d, f := range []*fdstag.Field{jr.Lvx, jr.Lvy, jr.Lvz} {
		ds := fs.Ds(d)
		f.LoopOwned(func(i, j, k int) {
			v := 0.0
			if ini.BgVel {
				v = o.Bc.BgVel(d, ds.Node([3]int{i, j, k}[d]))
			}
			f.Set(i, j, k, v)
		})
	}
	jr.PackSol(o.Sol)
	o.Bc.ApplySPC(o.Sol)

	// restart: constraints follow the time of the restart file
	if sim.Data.Restart != "" {
		if err = o.ReadRestart(sim.Data.Restart); err != nil {
			return
		}
		if err = o.SetBcs(o.Ts.Time); err != nil {
			return
		}
		o.Bc.ApplySPC(o.Sol)
	}

	// history
	jr.CopySol(o.Sol)
	jr.SaveHistory()
	if o.ShowMsg {
		io.Pf("> Initial state set\n")
	}
	return
}

// SetBcs builds the boundary constraints at time t and hands them to the residual context
func (o *Main) SetBcs(t float64) (err error) {
	if o.Bc, err = bcs.New(o.Fs, &o.Sim.Bcs, o.Sim.Functions, t); err != nil {
		return
	}
	if o.Jr != nil {
		o.Jr.Bc = o.Bc
	}
	return
}

// RestartFile returns the name of the restart file of this processor
//  Input:
//   prefix -- directory and key; e.g. /tmp/lamem/sphere
func (o *Main) RestartFile(prefix string) string {
	return io.Sf("%s_p%d.rst", prefix, o.Proc)
}

// SaveRestart writes the solution vector of this processor into the output directory
func (o *Main) SaveRestart() (err error) {
	var buf bytes.Buffer
	if err = o.Jr.WriteRestart(&buf, o.Sim.Data.Encoder, o.RunID); err != nil {
		return
	}
	fn := o.RestartFile(o.Sim.Key)
	io.WriteFileD(o.Sim.DirOut, fn, &buf)
	if o.ShowMsg {
		io.Pf("> Restart file <%s/%s> written\n", o.Sim.DirOut, fn)
	}
	return
}

// ReadRestart reads the solution vector of this processor and copies it into Sol
//  Input:
//   prefix -- directory and key of the run that wrote the files
func (o *Main) ReadRestart(prefix string) (err error) {
	fn := o.RestartFile(prefix)
	b, err := io.ReadFile(fn)
	if err != nil {
		return chk.Err("cannot read restart file:\n%v", err)
	}
	hdr, err := o.Jr.ReadRestart(bytes.NewReader(b), o.Sim.Data.Encoder)
	if err != nil {
		return chk.Err("cannot restart from <%s>:\n%v", fn, err)
	}
	copy(o.Sol, o.Jr.Gsol)
	if o.ShowMsg {
		io.Pf("> Restarted from run %s at step %d (t=%g)\n", hdr.RunID, hdr.Step, hdr.Time)
	}
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// onexit prints final message with cpu time
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {

	// show final message
	if o.ShowMsg {
		if prevErr == nil {
			io.Pfgreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.Pfred("> Failed\n")
		}
	}
	return prevErr
}
