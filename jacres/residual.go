// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jacres

// GetResidual computes the momentum and continuity residuals from the effective strain rates
// and the current pressure and temperature. It must be called after GetEffStrainRate
func (o *JacRes) GetResidual() (err error) {

	// lithostatic and pore pressure
	o.GetLithoStaticPressure()
	o.GetPorePressure()

	// clear residuals
	o.Lfx.Zero()
	o.Lfy.Zero()
	o.Lfz.Zero()
	for i := range o.Gc {
		o.Gc[i] = 0
	}

	// control volumes and edges
	if err = o.residualCells(); err != nil {
		return
	}
	if err = o.residualXY(); err != nil {
		return
	}
	if err = o.residualXZ(); err != nil {
		return
	}
	if err = o.residualYZ(); err != nil {
		return
	}

	// assemble owned residuals from local contributions
	o.Fs.LocalToGlobalAdd(o.Lfx, o.Gfx)
	o.Fs.LocalToGlobalAdd(o.Lfy, o.Gfy)
	o.Fs.LocalToGlobalAdd(o.Lfz, o.Gfz)
	return
}

// residualCells adds normal stresses, gravity and stabilisation terms of all control volumes
func (o *JacRes) residualCells() (err error) {
	fs, ctrl := o.Fs, o.Ctrl
	dt, fssa, grav := o.Ts.Dt, ctrl.FSSA, ctrl.Grav
	vx, vy, vz := o.Lvx, o.Lvy, o.Lvz
	fx, fy, fz := o.Lfx, o.Lfy, o.Lfz
	o.Lp.LoopOwned(func(i, j, k int) {
		if err != nil {
			return
		}
		id := o.Lp.OwnedIdx(i, j, k)
		sv := &o.SvCell[id]
		bulk := &sv.SvBulk

		// second invariant
		sv.SvDev.DII = o.cellDII(i, j, k)

		// constitutive equations
		c := scalars{o.Lp.Get(i, j, k), o.LT.Get(i, j, k), o.LpLithos.Get(i, j, k), o.LpPore.Get(i, j, k)}
		out, e := o.devConstEq(&sv.SvDev, sv.PhRat, &c)
		if e != nil {
			err = located(e, "cell", i, j, k)
			return
		}
		sv.EtaCreep, sv.EtaVp = out.EtaCreep, out.EtaVp
		o.stressCell(sv, o.Ldxx.Get(i, j, k), o.Ldyy.Get(i, j, k), o.Ldzz.Get(i, j, k), &c)
		vol, e := o.Ev.VolConstEq(sv.PhRat, c.p-o.PShift, c.T, o.depth(fs.Dsz.CoordCell(k)), dt)
		if e != nil {
			err = located(e, "cell", i, j, k)
			return
		}
		bulk.Rho, bulk.IKdt, bulk.Alpha = vol.Rho, vol.IKdt, vol.Alpha

		// gravity and stabilisation
		gx, gy, gz := bulk.Rho*grav[0], bulk.Rho*grav[1], bulk.Rho*grav[2]
		tx, ty, tz := -fssa*dt*gx, -fssa*dt*gy, -fssa*dt*gz

		// momentum
		bdx, fdx := fs.Dsx.SizeNode(i), fs.Dsx.SizeNode(i+1)
		bdy, fdy := fs.Dsy.SizeNode(j), fs.Dsy.SizeNode(j+1)
		bdz, fdz := fs.Dsz.SizeNode(k), fs.Dsz.SizeNode(k+1)
		fx.Add(i, j, k, -(sv.Cxx+vx.Get(i, j, k)*tx)/bdx-gx/2.0)
		fx.Add(i+1, j, k, (sv.Cxx+vx.Get(i+1, j, k)*tx)/fdx-gx/2.0)
		fy.Add(i, j, k, -(sv.Cyy+vy.Get(i, j, k)*ty)/bdy-gy/2.0)
		fy.Add(i, j+1, k, (sv.Cyy+vy.Get(i, j+1, k)*ty)/fdy-gy/2.0)
		fz.Add(i, j, k, -(sv.Czz+vz.Get(i, j, k)*tz)/bdz-gz/2.0)
		fz.Add(i, j, k+1, (sv.Czz+vz.Get(i, j, k+1)*tz)/fdz-gz/2.0)

		// mass
		gc := -bulk.IKdt*(c.p-bulk.Pn) - bulk.Theta
		if ctrl.ActThermExp && dt > 0 {
			gc += bulk.Alpha * (c.T - bulk.Tn) / dt
		}
		o.Gc[id] = gc
	})
	return
}

// residualXY adds xy shear stresses
func (o *JacRes) residualXY() (err error) {
	fs, f := o.Fs, o.Ldxy
	f.LoopOwned(func(i, j, k int) {
		if err != nil {
			return
		}
		sv := &o.SvXYEdge[f.OwnedIdx(i, j, k)]
		sv.SvDev.DII = o.xyDII(i, j, k)
		c := o.edgeScalars(i, j, k, 0, 1)
		out, e := o.devConstEq(&sv.SvDev, sv.PhRat, &c)
		if e != nil {
			err = located(e, "xy edge", i, j, k)
			return
		}
		sv.EtaCreep, sv.EtaVp = out.EtaCreep, out.EtaVp
		o.stressEdge(sv, f.Get(i, j, k))
		sxy := sv.S
		bdx, fdx := fs.Dsx.SizeCell(i-1), fs.Dsx.SizeCell(i)
		bdy, fdy := fs.Dsy.SizeCell(j-1), fs.Dsy.SizeCell(j)
		o.Lfx.Add(i, j-1, k, -sxy/bdy)
		o.Lfx.Add(i, j, k, sxy/fdy)
		o.Lfy.Add(i-1, j, k, -sxy/bdx)
		o.Lfy.Add(i, j, k, sxy/fdx)
	})
	return
}

// residualXZ adds xz shear stresses
func (o *JacRes) residualXZ() (err error) {
	fs, f := o.Fs, o.Ldxz
	f.LoopOwned(func(i, j, k int) {
		if err != nil {
			return
		}
		sv := &o.SvXZEdge[f.OwnedIdx(i, j, k)]
		sv.SvDev.DII = o.xzDII(i, j, k)
		c := o.edgeScalars(i, j, k, 0, 2)
		out, e := o.devConstEq(&sv.SvDev, sv.PhRat, &c)
		if e != nil {
			err = located(e, "xz edge", i, j, k)
			return
		}
		sv.EtaCreep, sv.EtaVp = out.EtaCreep, out.EtaVp
		o.stressEdge(sv, f.Get(i, j, k))
		sxz := sv.S
		bdx, fdx := fs.Dsx.SizeCell(i-1), fs.Dsx.SizeCell(i)
		bdz, fdz := fs.Dsz.SizeCell(k-1), fs.Dsz.SizeCell(k)
		o.Lfx.Add(i, j, k-1, -sxz/bdz)
		o.Lfx.Add(i, j, k, sxz/fdz)
		o.Lfz.Add(i-1, j, k, -sxz/bdx)
		o.Lfz.Add(i, j, k, sxz/fdx)
	})
	return
}

// residualYZ adds yz shear stresses
func (o *JacRes) residualYZ() (err error) {
	fs, f := o.Fs, o.Ldyz
	f.LoopOwned(func(i, j, k int) {
		if err != nil {
			return
		}
		sv := &o.SvYZEdge[f.OwnedIdx(i, j, k)]
		sv.SvDev.DII = o.yzDII(i, j, k)
		c := o.edgeScalars(i, j, k, 1, 2)
		out, e := o.devConstEq(&sv.SvDev, sv.PhRat, &c)
		if e != nil {
			err = located(e, "yz edge", i, j, k)
			return
		}
		sv.EtaCreep, sv.EtaVp = out.EtaCreep, out.EtaVp
		o.stressEdge(sv, f.Get(i, j, k))
		syz := sv.S
		bdy, fdy := fs.Dsy.SizeCell(j-1), fs.Dsy.SizeCell(j)
		bdz, fdz := fs.Dsz.SizeCell(k-1), fs.Dsz.SizeCell(k)
		o.Lfy.Add(i, j, k-1, -syz/bdz)
		o.Lfy.Add(i, j, k, syz/fdz)
		o.Lfz.Add(i, j-1, k, -syz/bdy)
		o.Lfz.Add(i, j, k, syz/fdy)
	})
	return
}

// edgeScalars interpolates pressure-like values to an edge with node directions d1 and d2
func (o *JacRes) edgeScalars(i, j, k, d1, d2 int) scalars {
	return scalars{
		p:     avg4(o.Lp, i, j, k, d1, d2),
		T:     avg4(o.LT, i, j, k, d1, d2),
		pLith: avg4(o.LpLithos, i, j, k, d1, d2),
		pPore: avg4(o.LpPore, i, j, k, d1, d2),
	}
}
