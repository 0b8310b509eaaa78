// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jacres

import (
	"math"

	"github.com/GTAIto/LaMEM/fdstag"
	"github.com/GTAIto/LaMEM/inp"
)

// GetPressShift computes the mean pressure of the top layer of cells over all processes.
// The shift is zero if pressure shifting is not active
func (o *JacRes) GetPressShift() {
	o.PShift = 0
	if !o.Ctrl.PShiftAct {
		return
	}
	fs := o.Fs
	top := fs.Dsz.Tcels - 1
	sum := 0.0
	o.Lp.LoopOwned(func(i, j, k int) {
		if k == top {
			sum += o.Lp.Get(i, j, k)
		}
	})
	o.PShift = fs.SumAll(sum) / float64(fs.TopCells())
}

// GetLithoStaticPressure integrates the overburden ρ·|gz|·Δz of each column of cells from the
// top of the domain down to the cell centres. Reference densities of the phases are used.
// Ghost cells outside the domain replicate the nearest interior cell
func (o *JacRes) GetLithoStaticPressure() {
	fs, f := o.Fs, o.LpLithos
	gz := math.Abs(o.Ctrl.Grav[2])

	// weights of owned cells
	f.LoopOwned(func(i, j, k int) {
		ρ := o.Ev.RefDensity(o.SvCell[f.OwnedIdx(i, j, k)].PhRat)
		f.Set(i, j, k, ρ*gz*fs.Dsz.SizeCell(k))
	})
	w := fs.AllGather(f)

	// integrate columns
	tx, ty, tz := fs.Dsx.Tcels, fs.Dsy.Tcels, fs.Dsz.Tcels
	pl := make([]float64, len(w))
	for j := 0; j < ty; j++ {
		for i := 0; i < tx; i++ {
			n := i + tx*(j+ty*(tz-1))
			pl[n] = 0.5 * w[n]
			for k := tz - 2; k >= 0; k-- {
				m := i + tx*(j+ty*k)
				pl[m] = pl[n] + 0.5*(w[n]+w[m])
				n = m
			}
		}
	}

	// all local cells
	f.LoopAll(func(i, j, k int) {
		f.Set(i, j, k, pl[f.GlobalIdx(fdstag.Clamp(i, tx), fdstag.Clamp(j, ty), fdstag.Clamp(k, tz))])
	})
}

// GetPorePressure computes the hydrostatic pore pressure below the ground-water level.
// Ghost cells outside the domain replicate the nearest interior cell
func (o *JacRes) GetPorePressure() {
	fs, f, ctrl := o.Fs, o.LpPore, o.Ctrl
	var level float64
	switch ctrl.GwType {
	case inp.GwNone:
		f.Zero()
		return
	case inp.GwTop:
		level = fs.Dsz.End()
	case inp.GwSurf:
		level = o.Surf.AvgTopo
	case inp.GwLevel:
		level = ctrl.GwLevel
	}
	γ := ctrl.RhoFluid * math.Abs(ctrl.Grav[2])
	tz := fs.Dsz.Tcels
	f.LoopAll(func(i, j, k int) {
		z := fs.Dsz.CoordCell(fdstag.Clamp(k, tz))
		v := 0.0
		if z < level {
			v = γ * (level - z)
		}
		f.Set(i, j, k, v)
	})
}
