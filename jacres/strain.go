// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jacres

import "github.com/GTAIto/LaMEM/fdstag"

// GetI2Gdt computes the elastic factor of all control volumes and edges
func (o *JacRes) GetI2Gdt() {
	dt := o.Ts.Dt
	for i := range o.SvCell {
		o.SvCell[i].SvDev.I2Gdt = o.Ev.GetI2Gdt(o.SvCell[i].PhRat, dt)
	}
	for _, sv := range [][]SolVarEdge{o.SvXYEdge, o.SvXZEdge, o.SvYZEdge} {
		for i := range sv {
			sv[i].SvDev.I2Gdt = o.Ev.GetI2Gdt(sv[i].PhRat, dt)
		}
	}
}

// GetEffStrainRate computes total and effective deviatoric strain rates from ghosted velocities.
// Effective rates include the stress history: d = D + H·I2Gdt
func (o *JacRes) GetEffStrainRate() {
	fs := o.Fs
	vx, vy, vz := o.Lvx, o.Lvy, o.Lvz

	// cells
	o.Ldxx.LoopOwned(func(i, j, k int) {
		sv := &o.SvCell[o.Ldxx.OwnedIdx(i, j, k)]
		xx := (vx.Get(i+1, j, k) - vx.Get(i, j, k)) / fs.Dsx.SizeCell(i)
		yy := (vy.Get(i, j+1, k) - vy.Get(i, j, k)) / fs.Dsy.SizeCell(j)
		zz := (vz.Get(i, j, k+1) - vz.Get(i, j, k)) / fs.Dsz.SizeCell(k)
		θ := xx + yy + zz
		sv.SvBulk.Theta = θ
		tr := θ / 3.0
		sv.Dxx, sv.Dyy, sv.Dzz = xx-tr, yy-tr, zz-tr
		o.Ldxx.Set(i, j, k, sv.Dxx+sv.Hxx*sv.SvDev.I2Gdt)
		o.Ldyy.Set(i, j, k, sv.Dyy+sv.Hyy*sv.SvDev.I2Gdt)
		o.Ldzz.Set(i, j, k, sv.Dzz+sv.Hzz*sv.SvDev.I2Gdt)
	})

	// xy edges
	o.Ldxy.LoopOwned(func(i, j, k int) {
		sv := &o.SvXYEdge[o.Ldxy.OwnedIdx(i, j, k)]
		dvxdy := (vx.Get(i, j, k) - vx.Get(i, j-1, k)) / fs.Dsy.SizeNode(j)
		dvydx := (vy.Get(i, j, k) - vy.Get(i-1, j, k)) / fs.Dsx.SizeNode(i)
		sv.D = 0.5 * (dvxdy + dvydx)
		o.Ldxy.Set(i, j, k, sv.D+sv.H*sv.SvDev.I2Gdt)
	})

	// xz edges
	o.Ldxz.LoopOwned(func(i, j, k int) {
		sv := &o.SvXZEdge[o.Ldxz.OwnedIdx(i, j, k)]
		dvxdz := (vx.Get(i, j, k) - vx.Get(i, j, k-1)) / fs.Dsz.SizeNode(k)
		dvzdx := (vz.Get(i, j, k) - vz.Get(i-1, j, k)) / fs.Dsx.SizeNode(i)
		sv.D = 0.5 * (dvxdz + dvzdx)
		o.Ldxz.Set(i, j, k, sv.D+sv.H*sv.SvDev.I2Gdt)
	})

	// yz edges
	o.Ldyz.LoopOwned(func(i, j, k int) {
		sv := &o.SvYZEdge[o.Ldyz.OwnedIdx(i, j, k)]
		dvydz := (vy.Get(i, j, k) - vy.Get(i, j, k-1)) / fs.Dsz.SizeNode(k)
		dvzdy := (vz.Get(i, j, k) - vz.Get(i, j-1, k)) / fs.Dsy.SizeNode(j)
		sv.D = 0.5 * (dvydz + dvzdy)
		o.Ldyz.Set(i, j, k, sv.D+sv.H*sv.SvDev.I2Gdt)
	})

	// communicate
	for _, f := range []*fdstag.Field{o.Ldxx, o.Ldyy, o.Ldzz, o.Ldxy, o.Ldxz, o.Ldyz} {
		fs.LocalToLocal(f)
	}
}

// GetVorticity computes the vorticity pseudo-vector on edges (right-handed system)
//  wz = ∂vy/∂x - ∂vx/∂y on xy edges
//  wy = ∂vx/∂z - ∂vz/∂x on xz edges
//  wx = ∂vz/∂y - ∂vy/∂z on yz edges
func (o *JacRes) GetVorticity() {
	fs := o.Fs
	vx, vy, vz := o.Lvx, o.Lvy, o.Lvz
	o.Lwz.LoopOwned(func(i, j, k int) {
		dvxdy := (vx.Get(i, j, k) - vx.Get(i, j-1, k)) / fs.Dsy.SizeNode(j)
		dvydx := (vy.Get(i, j, k) - vy.Get(i-1, j, k)) / fs.Dsx.SizeNode(i)
		o.Lwz.Set(i, j, k, dvydx-dvxdy)
	})
	o.Lwy.LoopOwned(func(i, j, k int) {
		dvxdz := (vx.Get(i, j, k) - vx.Get(i, j, k-1)) / fs.Dsz.SizeNode(k)
		dvzdx := (vz.Get(i, j, k) - vz.Get(i-1, j, k)) / fs.Dsx.SizeNode(i)
		o.Lwy.Set(i, j, k, dvxdz-dvzdx)
	})
	o.Lwx.LoopOwned(func(i, j, k int) {
		dvydz := (vy.Get(i, j, k) - vy.Get(i, j, k-1)) / fs.Dsz.SizeNode(k)
		dvzdy := (vz.Get(i, j, k) - vz.Get(i, j-1, k)) / fs.Dsy.SizeNode(j)
		o.Lwx.Set(i, j, k, dvzdy-dvydz)
	})
	fs.LocalToLocal(o.Lwx)
	fs.LocalToLocal(o.Lwy)
	fs.LocalToLocal(o.Lwz)
}
