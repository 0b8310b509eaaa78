// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jacres

import (
	"math"

	"github.com/GTAIto/LaMEM/fdstag"
)

// Missing components of the second invariant are averaged from the hosting points.
// Squares are averaged, not the components:
//
//  DII = sqrt(½·Dij·Dij)
//
// Normal components sampled by edges use the clamp-to-interior rule at the domain boundary.

// sq4 returns the sum of squares of four samples of f
func sq4(f *fdstag.Field, i1, j1, k1, i2, j2, k2, i3, j3, k3, i4, j4, k4 int) float64 {
	a, b, c, d := f.Get(i1, j1, k1), f.Get(i2, j2, k2), f.Get(i3, j3, k3), f.Get(i4, j4, k4)
	return a*a + b*b + c*c + d*d
}

// cellDII returns the strain-rate invariant of control volume (i,j,k)
func (o *JacRes) cellDII(i, j, k int) float64 {
	xx, yy, zz := o.Ldxx.Get(i, j, k), o.Ldyy.Get(i, j, k), o.Ldzz.Get(i, j, k)
	J2 := 0.5*(xx*xx+yy*yy+zz*zz) +
		0.25*sq4(o.Ldxy, i, j, k, i, j+1, k, i+1, j, k, i+1, j+1, k) +
		0.25*sq4(o.Ldxz, i, j, k, i, j, k+1, i+1, j, k, i+1, j, k+1) +
		0.25*sq4(o.Ldyz, i, j, k, i, j+1, k, i, j, k+1, i, j+1, k+1)
	return math.Sqrt(J2)
}

// normal4 returns the sum of squares of the normal components at four cells
func (o *JacRes) normal4(i1, j1, k1, i2, j2, k2, i3, j3, k3, i4, j4, k4 int) float64 {
	return sq4(o.Ldxx, i1, j1, k1, i2, j2, k2, i3, j3, k3, i4, j4, k4) +
		sq4(o.Ldyy, i1, j1, k1, i2, j2, k2, i3, j3, k3, i4, j4, k4) +
		sq4(o.Ldzz, i1, j1, k1, i2, j2, k2, i3, j3, k3, i4, j4, k4)
}

// xyDII returns the strain-rate invariant of xy edge (i,j,k)
func (o *JacRes) xyDII(i, j, k int) float64 {
	tx, ty := o.Fs.Dsx.Tcels, o.Fs.Dsy.Tcels
	I1, I2 := fdstag.Clamp(i, tx), fdstag.Clamp(i-1, tx)
	J1, J2 := fdstag.Clamp(j, ty), fdstag.Clamp(j-1, ty)
	xy := o.Ldxy.Get(i, j, k)
	J2Inv := xy*xy +
		0.125*o.normal4(I1, J1, k, I2, J1, k, I1, J2, k, I2, J2, k) +
		0.25*sq4(o.Ldxz, i, J1, k, i, J1, k+1, i, J2, k, i, J2, k+1) +
		0.25*sq4(o.Ldyz, I1, j, k, I1, j, k+1, I2, j, k, I2, j, k+1)
	return math.Sqrt(J2Inv)
}

// xzDII returns the strain-rate invariant of xz edge (i,j,k)
func (o *JacRes) xzDII(i, j, k int) float64 {
	tx, tz := o.Fs.Dsx.Tcels, o.Fs.Dsz.Tcels
	I1, I2 := fdstag.Clamp(i, tx), fdstag.Clamp(i-1, tx)
	K1, K2 := fdstag.Clamp(k, tz), fdstag.Clamp(k-1, tz)
	xz := o.Ldxz.Get(i, j, k)
	J2Inv := xz*xz +
		0.125*o.normal4(I1, j, K1, I2, j, K1, I1, j, K2, I2, j, K2) +
		0.25*sq4(o.Ldxy, i, j, K1, i, j+1, K1, i, j, K2, i, j+1, K2) +
		0.25*sq4(o.Ldyz, I1, j, k, I1, j+1, k, I2, j, k, I2, j+1, k)
	return math.Sqrt(J2Inv)
}

// yzDII returns the strain-rate invariant of yz edge (i,j,k)
func (o *JacRes) yzDII(i, j, k int) float64 {
	ty, tz := o.Fs.Dsy.Tcels, o.Fs.Dsz.Tcels
	J1, J2 := fdstag.Clamp(j, ty), fdstag.Clamp(j-1, ty)
	K1, K2 := fdstag.Clamp(k, tz), fdstag.Clamp(k-1, tz)
	yz := o.Ldyz.Get(i, j, k)
	J2Inv := yz*yz +
		0.125*o.normal4(i, J1, K1, i, J2, K1, i, J1, K2, i, J2, K2) +
		0.25*sq4(o.Ldxy, i, j, K1, i+1, j, K1, i, j, K2, i+1, j, K2) +
		0.25*sq4(o.Ldxz, i, J1, k, i+1, J1, k, i, J2, k, i+1, J2, k)
	return math.Sqrt(J2Inv)
}

// avg4 returns the mean of a cell field over the four cells sharing an edge.
// d1 and d2 are the node directions of the edge
func avg4(f *fdstag.Field, i, j, k, d1, d2 int) float64 {
	var a, b [3]int
	a[d1], b[d2] = 1, 1
	return 0.25 * (f.Get(i, j, k) +
		f.Get(i-a[0], j-a[1], k-a[2]) +
		f.Get(i-b[0], j-b[1], k-b[2]) +
		f.Get(i-a[0]-b[0], j-a[1]-b[1], k-a[2]-b[2]))
}
