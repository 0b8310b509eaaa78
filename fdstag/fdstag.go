// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fdstag implements the distributed staggered finite-difference grid
package fdstag

import "github.com/cpmech/gosl/io"

// DOFIndex holds the layout of the rank-local coupled vector [vx | vy | vz | p]
type DOFIndex struct {
	Lnv int // number of local velocity DOFs
	Lnp int // number of local pressure DOFs
	Ln  int // total number of local DOFs
}

// FDSTAG holds the distributed staggered grid
type FDSTAG struct {

	// discretisation
	Dsx  *Discret1D // x-direction
	Dsy  *Discret1D // y-direction
	Dsz  *Discret1D // z-direction
	Comm Comm       // communicator

	// number of owned points
	NCells int // cells
	NXFace int // x-faces
	NYFace int // y-faces
	NZFace int // z-faces
	NXYEdg int // xy-edges
	NXZEdg int // xz-edges
	NYZEdg int // yz-edges
	NCorns int // corners

	// coupled vector
	Dof DOFIndex // local layout
}

// New returns a new distributed staggered grid
//  Input:
//   x, y, z    -- node coordinates in each direction
//   px, py, pz -- number of processors in each direction; px·py·pz must equal comm.Size()
//   comm       -- communicator; rank = ix + px·(iy + py·iz)
func New(x, y, z []float64, px, py, pz int, comm Comm) (o *FDSTAG, err error) {

	// check processor grid
	if px*py*pz != comm.Size() {
		return nil, allocErr("processor grid %d×%d×%d does not match number of processes %d", px, py, pz, comm.Size())
	}
	r := comm.Rank()
	ix := r % px
	iy := (r / px) % py
	iz := r / (px * py)

	// discretisations
	o = &FDSTAG{Comm: comm}
	if o.Dsx, err = NewDiscret1D(x, px, ix); err != nil {
		return nil, err
	}
	if o.Dsy, err = NewDiscret1D(y, py, iy); err != nil {
		return nil, err
	}
	if o.Dsz, err = NewDiscret1D(z, pz, iz); err != nil {
		return nil, err
	}

	// counts
	cx, cy, cz := o.Dsx.NCels(), o.Dsy.NCels(), o.Dsz.NCels()
	nx, ny, nz := o.Dsx.NNods(), o.Dsy.NNods(), o.Dsz.NNods()
	o.NCells = cx * cy * cz
	o.NXFace = nx * cy * cz
	o.NYFace = cx * ny * cz
	o.NZFace = cx * cy * nz
	o.NXYEdg = nx * ny * cz
	o.NXZEdg = nx * cy * nz
	o.NYZEdg = cx * ny * nz
	o.NCorns = nx * ny * nz

	// coupled layout
	o.Dof.Lnv = o.NXFace + o.NYFace + o.NZFace
	o.Dof.Lnp = o.NCells
	o.Dof.Ln = o.Dof.Lnv + o.Dof.Lnp
	return
}

// Ds returns the discretisation along direction dir
func (o *FDSTAG) Ds(dir int) *Discret1D {
	switch dir {
	case 0:
		return o.Dsx
	case 1:
		return o.Dsy
	}
	return o.Dsz
}

// Range returns the first owned point and number of owned points of a kind
func (o *FDSTAG) Range(kind Kind) (s, m [3]int) {
	for d := 0; d < 3; d++ {
		ds := o.Ds(d)
		s[d] = ds.CellStart()
		if kind.IsNode(d) {
			m[d] = ds.NNods()
		} else {
			m[d] = ds.NCels()
		}
	}
	return
}

// Tn returns the global number of points of a kind in each direction
func (o *FDSTAG) Tn(kind Kind) (tn [3]int) {
	for d := 0; d < 3; d++ {
		if kind.IsNode(d) {
			tn[d] = o.Ds(d).Tnods
		} else {
			tn[d] = o.Ds(d).Tcels
		}
	}
	return
}

// NewField allocates a zeroed ghosted local field of a kind
func (o *FDSTAG) NewField(kind Kind) *Field {
	f := &Field{Kind: kind, Tn: o.Tn(kind)}
	f.S, f.M = o.Range(kind)
	for d := 0; d < 3; d++ {
		f.Lo[d] = f.S[d] - 1
		f.N[d] = f.M[d] + 2
	}
	f.V = make([]float64, f.N[0]*f.N[1]*f.N[2])
	return f
}

// NewVec allocates a zeroed owned-only (global) vector of a kind
func (o *FDSTAG) NewVec(kind Kind) []float64 {
	_, m := o.Range(kind)
	return make([]float64, m[0]*m[1]*m[2])
}

// TopCells returns the total number of cells of one horizontal layer
func (o *FDSTAG) TopCells() int { return o.Dsx.Tcels * o.Dsy.Tcels }

// IsRoot tells whether this is the root process
func (o *FDSTAG) IsRoot() bool { return o.Comm.Rank() == 0 }

// String returns a summary of the grid
func (o *FDSTAG) String() string {
	return io.Sf("grid %d×%d×%d cells on %d×%d×%d processors; rank %d owns %d cells, %d velocity and %d pressure dofs",
		o.Dsx.Tcels, o.Dsy.Tcels, o.Dsz.Tcels, o.Dsx.Nproc, o.Dsy.Nproc, o.Dsz.Nproc,
		o.Comm.Rank(), o.NCells, o.Dof.Lnv, o.Dof.Lnp)
}
