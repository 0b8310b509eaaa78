// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jacres

import (
	"github.com/GTAIto/LaMEM/bcs"
	"github.com/GTAIto/LaMEM/fdstag"
)

// directions corrected by two-point constraints
var (
	tpcVx  = [3]bool{false, true, true}
	tpcVy  = [3]bool{true, false, true}
	tpcVz  = [3]bool{true, true, false}
	tpcCen = [3]bool{true, true, true}
)

// CopySol copies the coupled vector x into the ghosted local velocity and pressure fields and
// enforces two-point constraints on boundary ghosts
func (o *JacRes) CopySol(x []float64) {
	copy(o.Gsol, x)
	o.CopyVel(x)
	o.CopyPres(x)
}

// CopyVel copies velocities from the coupled vector x into the ghosted local fields
func (o *JacRes) CopyVel(x []float64) {
	fs := o.Fs
	n := 0
	n += copy(o.Gvx, x[n:n+fs.NXFace])
	n += copy(o.Gvy, x[n:n+fs.NYFace])
	copy(o.Gvz, x[n:n+fs.NZFace])
	fs.GlobalToLocal(o.Gvx, o.Lvx)
	fs.GlobalToLocal(o.Gvy, o.Lvy)
	fs.GlobalToLocal(o.Gvz, o.Lvz)
	o.applyTPC(o.Lvx, o.Bc.Bcvx, tpcVx)
	o.applyTPC(o.Lvy, o.Bc.Bcvy, tpcVy)
	o.applyTPC(o.Lvz, o.Bc.Bcvz, tpcVz)
}

// CopyPres copies pressures from the coupled vector x into the ghosted local field
func (o *JacRes) CopyPres(x []float64) {
	fs := o.Fs
	copy(o.Gp, x[fs.Dof.Lnv:fs.Dof.Lnv+fs.NCells])
	fs.GlobalToLocal(o.Gp, o.Lp)
	o.applyTPC(o.Lp, o.Bc.Bcp, tpcCen)
}

// CopyTemp copies owned temperatures into the ghosted local field.
// Boundary ghosts have zero gradient
func (o *JacRes) CopyTemp(T []float64) {
	o.Fs.GlobalToLocal(T, o.LT)
	o.applyTPC(o.LT, nil, tpcCen)
}

// PackSol copies owned values of the local velocity and pressure fields into the coupled vector x
func (o *JacRes) PackSol(x []float64) {
	fs := o.Fs
	n := 0
	o.Lvx.GetOwned(x[n : n+fs.NXFace])
	n += fs.NXFace
	o.Lvy.GetOwned(x[n : n+fs.NYFace])
	n += fs.NYFace
	o.Lvz.GetOwned(x[n : n+fs.NZFace])
	n += fs.NZFace
	o.Lp.GetOwned(x[n : n+fs.NCells])
}

// CopyRes packs the residual blocks into the coupled vector f and zeroes constrained rows
func (o *JacRes) CopyRes(f []float64) {
	n := 0
	n += copy(f[n:], o.Gfx)
	n += copy(f[n:], o.Gfy)
	n += copy(f[n:], o.Gfz)
	copy(f[n:], o.Gc)
	o.Bc.ZeroSPC(f)
}

// CopyMomentumRes copies the momentum blocks of the coupled vector f into the residual blocks
func (o *JacRes) CopyMomentumRes(f []float64) {
	n := 0
	n += copy(o.Gfx, f[n:])
	n += copy(o.Gfy, f[n:])
	copy(o.Gfz, f[n:])
}

// CopyContinuityRes copies the continuity block of the coupled vector f into the residual block
func (o *JacRes) CopyContinuityRes(f []float64) {
	copy(o.Gc, f[o.Fs.Dof.Lnv:])
}

// applyTPC sets boundary ghosts of f next to in-domain points along corrected directions.
// With prescribed value B on the ghost G and interior value V:
//
//  face:   G = 2·B - V, or V without B
//  edge:   G = 2·B - V, or G₁ + G₂ - V
//  corner: G = 2·B - V, or ΣG(edges) - ΣG(faces) + V
//
// Faces are set before edges and edges before corners. bc may be nil (no prescribed values)
func (o *JacRes) applyTPC(f, bc *fdstag.Field, corr [3]bool) {
	var mc [3]int
	for d := 0; d < 3; d++ {
		mc[d] = o.Fs.Ds(d).Tcels - 1
	}
	value := func(q [3]int, V float64, otherwise func() float64) {
		if !f.Has(q[0], q[1], q[2]) {
			return
		}
		if bc != nil {
			if B := bc.Get(q[0], q[1], q[2]); bcs.IsSet(B) {
				f.Set(q[0], q[1], q[2], 2.0*B-V)
				return
			}
		}
		f.Set(q[0], q[1], q[2], otherwise())
	}
	get := func(q [3]int) float64 {
		if !f.Has(q[0], q[1], q[2]) {
			return 0
		}
		return f.Get(q[0], q[1], q[2])
	}
	f.LoopLocal(func(i, j, k int) {
		p := [3]int{i, j, k}
		V := f.Get(i, j, k)

		// ghost indices next to this point
		var ghosts [3][]int
		for d := 0; d < 3; d++ {
			if !corr[d] {
				continue
			}
			if p[d] == 0 {
				ghosts[d] = append(ghosts[d], -1)
			}
			if p[d] == mc[d] {
				ghosts[d] = append(ghosts[d], mc[d]+1)
			}
		}

		// faces
		for d := 0; d < 3; d++ {
			for _, g := range ghosts[d] {
				q := p
				q[d] = g
				value(q, V, func() float64 { return V })
			}
		}

		// edges
		for d1 := 0; d1 < 3; d1++ {
			for d2 := d1 + 1; d2 < 3; d2++ {
				for _, g1 := range ghosts[d1] {
					for _, g2 := range ghosts[d2] {
						q1, q2, q := p, p, p
						q1[d1] = g1
						q2[d2] = g2
						q[d1], q[d2] = g1, g2
						value(q, V, func() float64 { return get(q1) + get(q2) - V })
					}
				}
			}
		}

		// corners
		for _, gi := range ghosts[0] {
			for _, gj := range ghosts[1] {
				for _, gk := range ghosts[2] {
					q := [3]int{gi, gj, gk}
					value(q, V, func() float64 {
						edges := get([3]int{i, gj, gk}) + get([3]int{gi, j, gk}) + get([3]int{gi, gj, k})
						faces := get([3]int{gi, j, k}) + get([3]int{i, gj, k}) + get([3]int{i, j, gk})
						return edges - faces + V
					})
				}
			}
		}
	})
}
