// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdstag

// Kind defines where the points of a field live on the staggered grid
type Kind int

// staggered point kinds
const (
	CEN Kind = iota // cell centres (p, T, normal strain rates)
	X               // x-faces (vx)
	Y               // y-faces (vy)
	Z               // z-faces (vz)
	XY              // xy-edges (dxy, wz)
	XZ              // xz-edges (dxz, wy)
	YZ              // yz-edges (dyz, wx)
	COR             // corners
)

// kindNames holds names of kinds
var kindNames = []string{"CEN", "X", "Y", "Z", "XY", "XZ", "YZ", "COR"}

// String returns the name of a kind
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsNode tells whether points of this kind are nodes (not cells) along direction dir
func (k Kind) IsNode(dir int) bool {
	switch k {
	case X:
		return dir == 0
	case Y:
		return dir == 1
	case Z:
		return dir == 2
	case XY:
		return dir == 0 || dir == 1
	case XZ:
		return dir == 0 || dir == 2
	case YZ:
		return dir == 1 || dir == 2
	case COR:
		return true
	}
	return false
}

// Field holds a local array with a one-layer ghost halo.
// Values are addressed by global (i,j,k) indices
type Field struct {
	Kind Kind      // point kind
	Lo   [3]int    // global index of first local point (first ghost)
	N    [3]int    // number of local points including ghosts
	Tn   [3]int    // global number of points in each direction
	S    [3]int    // first owned point
	M    [3]int    // number of owned points
	V    []float64 // [N0·N1·N2] values; i runs fastest
}

// Idx returns the position of (i,j,k) in V
func (o *Field) Idx(i, j, k int) int {
	return (i - o.Lo[0]) + o.N[0]*((j-o.Lo[1])+o.N[1]*(k-o.Lo[2]))
}

// Get returns value at (i,j,k)
func (o *Field) Get(i, j, k int) float64 { return o.V[o.Idx(i, j, k)] }

// Set sets value at (i,j,k)
func (o *Field) Set(i, j, k int, v float64) { o.V[o.Idx(i, j, k)] = v }

// Add adds v to value at (i,j,k)
func (o *Field) Add(i, j, k int, v float64) { o.V[o.Idx(i, j, k)] += v }

// Has tells whether (i,j,k) is stored locally
func (o *Field) Has(i, j, k int) bool {
	return i >= o.Lo[0] && i < o.Lo[0]+o.N[0] &&
		j >= o.Lo[1] && j < o.Lo[1]+o.N[1] &&
		k >= o.Lo[2] && k < o.Lo[2]+o.N[2]
}

// InDomain tells whether (i,j,k) is inside the global domain (not a boundary ghost)
func (o *Field) InDomain(i, j, k int) bool {
	return i >= 0 && i < o.Tn[0] && j >= 0 && j < o.Tn[1] && k >= 0 && k < o.Tn[2]
}

// Owns tells whether (i,j,k) is owned by this processor
func (o *Field) Owns(i, j, k int) bool {
	return i >= o.S[0] && i < o.S[0]+o.M[0] &&
		j >= o.S[1] && j < o.S[1]+o.M[1] &&
		k >= o.S[2] && k < o.S[2]+o.M[2]
}

// Fill sets all values (ghosts included)
func (o *Field) Fill(v float64) {
	for i := range o.V {
		o.V[i] = v
	}
}

// Zero clears all values
func (o *Field) Zero() { o.Fill(0) }

// NOwned returns the number of owned points
func (o *Field) NOwned() int { return o.M[0] * o.M[1] * o.M[2] }

// GlobalIdx returns the natural (i fastest) index of (i,j,k) in the whole domain
func (o *Field) GlobalIdx(i, j, k int) int {
	return i + o.Tn[0]*(j+o.Tn[1]*k)
}

// GlobalSize returns the number of points of this kind in the whole domain
func (o *Field) GlobalSize() int { return o.Tn[0] * o.Tn[1] * o.Tn[2] }

// LoopOwned calls fcn for each owned point with i running fastest
func (o *Field) LoopOwned(fcn func(i, j, k int)) {
	for k := o.S[2]; k < o.S[2]+o.M[2]; k++ {
		for j := o.S[1]; j < o.S[1]+o.M[1]; j++ {
			for i := o.S[0]; i < o.S[0]+o.M[0]; i++ {
				fcn(i, j, k)
			}
		}
	}
}

// LoopLocal calls fcn for each local point (ghosts included) that lies inside the domain
func (o *Field) LoopLocal(fcn func(i, j, k int)) {
	for k := o.Lo[2]; k < o.Lo[2]+o.N[2]; k++ {
		for j := o.Lo[1]; j < o.Lo[1]+o.N[1]; j++ {
			for i := o.Lo[0]; i < o.Lo[0]+o.N[0]; i++ {
				if o.InDomain(i, j, k) {
					fcn(i, j, k)
				}
			}
		}
	}
}

// GetOwned copies owned values into v (i fastest)
func (o *Field) GetOwned(v []float64) {
	n := 0
	o.LoopOwned(func(i, j, k int) {
		v[n] = o.V[o.Idx(i, j, k)]
		n++
	})
}

// SetOwned copies v into owned points (i fastest)
func (o *Field) SetOwned(v []float64) {
	n := 0
	o.LoopOwned(func(i, j, k int) {
		o.V[o.Idx(i, j, k)] = v[n]
		n++
	})
}

// OwnedIdx returns the position of owned point (i,j,k) in the owned vector (i fastest)
func (o *Field) OwnedIdx(i, j, k int) int {
	return (i - o.S[0]) + o.M[0]*((j-o.S[1])+o.M[1]*(k-o.S[2]))
}

// LoopAll calls fcn for each local point, boundary ghosts included
func (o *Field) LoopAll(fcn func(i, j, k int)) {
	for k := o.Lo[2]; k < o.Lo[2]+o.N[2]; k++ {
		for j := o.Lo[1]; j < o.Lo[1]+o.N[1]; j++ {
			for i := o.Lo[0]; i < o.Lo[0]+o.N[0]; i++ {
				fcn(i, j, k)
			}
		}
	}
}
