// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdstag

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Discret1D holds the 1D discretisation of one coordinate direction.
// All indices are global. Cell i spans nodes i and i+1
//
//      ghost |  0  |  1  |  2  | ... | tcels-1 | ghost
//          -1    0     1     2     3   tcels-1    tcels   <= node index
//
type Discret1D struct {
	Tcels  int       // total number of cells
	Tnods  int       // total number of nodes == Tcels + 1
	Nproc  int       // number of processors in this direction
	Rank   int       // index of this processor in this direction
	Starts []int     // [nproc+1] first cell owned by each processor; Starts[nproc] == Tcels
	X      []float64 // [tnods] node coordinates
}

// NewDiscret1D returns a new 1D discretisation
//  Input:
//   x     -- [tcels+1] node coordinates; must be strictly increasing
//   nproc -- number of processors in this direction
//   rank  -- index of this processor in this direction
func NewDiscret1D(x []float64, nproc, rank int) (o *Discret1D, err error) {
	tcels := len(x) - 1
	if tcels < 1 {
		return nil, allocErr("discretisation needs at least one cell. %d nodes given", len(x))
	}
	if nproc < 1 || rank < 0 || rank >= nproc {
		return nil, allocErr("invalid processor index %d of %d", rank, nproc)
	}
	if tcels < nproc {
		return nil, allocErr("number of cells (%d) must not be smaller than number of processors (%d)", tcels, nproc)
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return nil, allocErr("node coordinates must be strictly increasing. x[%d]=%g <= x[%d]=%g", i, x[i], i-1, x[i-1])
		}
	}
	o = &Discret1D{Tcels: tcels, Tnods: tcels + 1, Nproc: nproc, Rank: rank}
	o.X = make([]float64, len(x))
	copy(o.X, x)
	o.Starts = make([]int, nproc+1)
	n, r := tcels/nproc, tcels%nproc
	for p := 0; p < nproc; p++ {
		m := n
		if p < r {
			m++
		}
		o.Starts[p+1] = o.Starts[p] + m
	}
	return
}

// Uniform returns uniformly spaced node coordinates
func Uniform(beg, end float64, ncells int) []float64 {
	if ncells < 1 || end <= beg {
		chk.Panic("cannot generate uniform coordinates: beg=%g end=%g ncells=%d", beg, end, ncells)
	}
	return utl.LinSpace(beg, end, ncells+1)
}

// Biased returns node coordinates whose cell widths grow geometrically by bias from beg to end
func Biased(beg, end float64, ncells int, bias float64) []float64 {
	if bias <= 0 || bias == 1 {
		return Uniform(beg, end, ncells)
	}
	// widths: h, h·q, h·q², ... with q^(n-1) == bias
	q := math.Pow(bias, 1.0/float64(utl.Imax(ncells-1, 1)))
	sum := 0.0
	for i := 0; i < ncells; i++ {
		sum += math.Pow(q, float64(i))
	}
	h := (end - beg) / sum
	x := make([]float64, ncells+1)
	x[0] = beg
	for i := 0; i < ncells; i++ {
		x[i+1] = x[i] + h*math.Pow(q, float64(i))
	}
	x[ncells] = end
	return x
}

// CellStart returns the first owned cell
func (o *Discret1D) CellStart() int { return o.Starts[o.Rank] }

// NCels returns the number of owned cells
func (o *Discret1D) NCels() int { return o.Starts[o.Rank+1] - o.Starts[o.Rank] }

// NNods returns the number of owned nodes. The last processor also owns the last node
func (o *Discret1D) NNods() int {
	if o.Rank == o.Nproc-1 {
		return o.NCels() + 1
	}
	return o.NCels()
}

// IsLast tells whether this processor holds the upper boundary
func (o *Discret1D) IsLast() bool { return o.Rank == o.Nproc-1 }

// Beg returns the lower coordinate of the domain
func (o *Discret1D) Beg() float64 { return o.X[0] }

// End returns the upper coordinate of the domain
func (o *Discret1D) End() float64 { return o.X[o.Tcels] }

// Node returns coordinate of node i, extrapolating one ghost node on each side
func (o *Discret1D) Node(i int) float64 {
	switch {
	case i < 0:
		return o.X[0] - float64(-i)*(o.X[1]-o.X[0])
	case i > o.Tcels:
		n := o.Tcels
		return o.X[n] + float64(i-n)*(o.X[n]-o.X[n-1])
	}
	return o.X[i]
}

// SizeCell returns the width of cell i. Ghost cells mirror the boundary cells
func (o *Discret1D) SizeCell(i int) float64 {
	return o.Node(i+1) - o.Node(i)
}

// CoordCell returns the centre coordinate of cell i
func (o *Discret1D) CoordCell(i int) float64 {
	return 0.5 * (o.Node(i) + o.Node(i+1))
}

// SizeNode returns the distance between centres of cells i-1 and i (control volume of node i)
func (o *Discret1D) SizeNode(i int) float64 {
	return o.CoordCell(i) - o.CoordCell(i-1)
}

// Owner returns the processor that owns cell i; node Tcels belongs to the last processor
func (o *Discret1D) Owner(i int) int {
	if i >= o.Tcels {
		return o.Nproc - 1
	}
	for p := 0; p < o.Nproc; p++ {
		if i < o.Starts[p+1] {
			return p
		}
	}
	return o.Nproc - 1
}

// Clamp returns i clamped to the interior range [0, n-1].
// Edge stencils use it to replicate the nearest interior value at the boundary
func Clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
