// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdstag

import "github.com/cpmech/gosl/chk"

// Ghost exchange and additive assembly go through a buffer spanning the whole domain:
// each process writes the values it is responsible for and the buffer is summed over
// all processes. Every point has exactly one owner, hence the sum reproduces owned values.

// gather writes owned values of f into a global buffer and sums it over all processes
func (o *FDSTAG) gather(f *Field, owned []float64) (buf []float64) {
	loc := make([]float64, f.GlobalSize())
	n := 0
	f.LoopOwned(func(i, j, k int) {
		if owned != nil {
			loc[f.GlobalIdx(i, j, k)] = owned[n]
		} else {
			loc[f.GlobalIdx(i, j, k)] = f.V[f.Idx(i, j, k)]
		}
		n++
	})
	buf = make([]float64, len(loc))
	o.Comm.AllReduceSum(buf, loc)
	return
}

// GlobalToLocal fills the ghosted local field f from owned values.
// Interior ghosts receive the owner's values; boundary ghosts are zeroed
func (o *FDSTAG) GlobalToLocal(owned []float64, f *Field) {
	if len(owned) != f.NOwned() {
		chk.Panic("GlobalToLocal: size of owned vector (%d) does not match field %v (%d)", len(owned), f.Kind, f.NOwned())
	}
	buf := o.gather(f, owned)
	f.Zero()
	f.LoopLocal(func(i, j, k int) {
		f.V[f.Idx(i, j, k)] = buf[f.GlobalIdx(i, j, k)]
	})
}

// LocalToLocal refreshes interior ghost points of f from their owners.
// Boundary ghosts are left untouched
func (o *FDSTAG) LocalToLocal(f *Field) {
	buf := o.gather(f, nil)
	f.LoopLocal(func(i, j, k int) {
		if !f.Owns(i, j, k) {
			f.V[f.Idx(i, j, k)] = buf[f.GlobalIdx(i, j, k)]
		}
	})
}

// LocalToGlobalAdd adds all local values of f (ghosts included) into the owned vector of
// their owners. Contributions to boundary ghosts are dropped. owned is overwritten
func (o *FDSTAG) LocalToGlobalAdd(f *Field, owned []float64) {
	if len(owned) != f.NOwned() {
		chk.Panic("LocalToGlobalAdd: size of owned vector (%d) does not match field %v (%d)", len(owned), f.Kind, f.NOwned())
	}
	loc := make([]float64, f.GlobalSize())
	f.LoopLocal(func(i, j, k int) {
		loc[f.GlobalIdx(i, j, k)] += f.V[f.Idx(i, j, k)]
	})
	buf := make([]float64, len(loc))
	o.Comm.AllReduceSum(buf, loc)
	n := 0
	f.LoopOwned(func(i, j, k int) {
		owned[n] = buf[f.GlobalIdx(i, j, k)]
		n++
	})
}

// SumAll returns the sum of x over all processes
func (o *FDSTAG) SumAll(x float64) float64 {
	res := []float64{0}
	o.Comm.AllReduceSum(res, []float64{x})
	return res[0]
}

// MaxAll returns the maximum of x over all processes
func (o *FDSTAG) MaxAll(x float64) float64 {
	res := []float64{0}
	o.Comm.AllReduceMax(res, []float64{x})
	return res[0]
}

// MinAll returns the minimum of x over all processes
func (o *FDSTAG) MinAll(x float64) float64 {
	res := []float64{0}
	o.Comm.AllReduceMin(res, []float64{x})
	return res[0]
}

// AllGather returns the owned values of f from all processes in natural (i fastest) order
func (o *FDSTAG) AllGather(f *Field) []float64 {
	return o.gather(f, nil)
}
