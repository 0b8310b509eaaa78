// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdstag

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
)

// Comm defines the collective operations used by the grid.
// All methods are collective: every process must call them in the same order
type Comm interface {
	Rank() int                         // rank of this process
	Size() int                         // number of processes
	AllReduceSum(dest, orig []float64) // dest := Σ orig over all processes
	AllReduceMax(dest, orig []float64) // dest := max orig over all processes
	AllReduceMin(dest, orig []float64) // dest := min orig over all processes
	Barrier()                          // waits for all processes
}

// MpiComm implements Comm with the MPI world communicator
type MpiComm struct {
	c *mpi.Communicator
}

// NewMpiComm returns a communicator over all MPI processes. MPI must have been started
func NewMpiComm() *MpiComm {
	if !mpi.IsOn() {
		chk.Panic("MPI is not on; call mpi.Start first")
	}
	return &MpiComm{c: mpi.NewCommunicator(nil)}
}

func (o *MpiComm) Rank() int { return o.c.Rank() }
func (o *MpiComm) Size() int { return o.c.Size() }
func (o *MpiComm) Barrier()  { o.c.Barrier() }

func (o *MpiComm) AllReduceSum(dest, orig []float64) {
	if o.c.Size() == 1 {
		copy(dest, orig)
		return
	}
	o.c.AllReduceSum(dest, orig)
}

func (o *MpiComm) AllReduceMax(dest, orig []float64) {
	if o.c.Size() == 1 {
		copy(dest, orig)
		return
	}
	o.c.AllReduceMax(dest, orig)
}

func (o *MpiComm) AllReduceMin(dest, orig []float64) {
	if o.c.Size() == 1 {
		copy(dest, orig)
		return
	}
	o.c.AllReduceMin(dest, orig)
}

// reduction operators
type reduceOp int

const (
	opSum reduceOp = iota
	opMax
	opMin
)

// localGroup is the shared rendezvous of in-process ranks
type localGroup struct {
	mu      sync.Mutex
	cond    *sync.Cond
	size    int       // number of ranks
	arrived int       // ranks that contributed to the current round
	gen     int       // round counter
	acc     []float64 // accumulator of the current round
	res     []float64 // result of the last completed round
}

// LocalComm implements Comm for ranks running as goroutines of the same process
type LocalComm struct {
	rank int
	grp  *localGroup
}

// NewLocalGroup returns n communicators sharing one in-process group.
// Each communicator must be used by exactly one goroutine.
// With n == 1, collectives return immediately (serial run)
func NewLocalGroup(n int) (comms []*LocalComm) {
	if n < 1 {
		chk.Panic("local group needs at least one rank. n=%d", n)
	}
	grp := &localGroup{size: n}
	grp.cond = sync.NewCond(&grp.mu)
	comms = make([]*LocalComm, n)
	for i := 0; i < n; i++ {
		comms[i] = &LocalComm{rank: i, grp: grp}
	}
	return
}

// NewSerialComm returns a single-rank communicator
func NewSerialComm() *LocalComm {
	return NewLocalGroup(1)[0]
}

func (o *LocalComm) Rank() int { return o.rank }
func (o *LocalComm) Size() int { return o.grp.size }

func (o *LocalComm) AllReduceSum(dest, orig []float64) { o.reduce(dest, orig, opSum) }
func (o *LocalComm) AllReduceMax(dest, orig []float64) { o.reduce(dest, orig, opMax) }
func (o *LocalComm) AllReduceMin(dest, orig []float64) { o.reduce(dest, orig, opMin) }

func (o *LocalComm) Barrier() { o.reduce(nil, nil, opSum) }

// reduce combines orig from all ranks into dest.
// The last rank to arrive publishes the result and wakes the others
func (o *LocalComm) reduce(dest, orig []float64, op reduceOp) {
	g := o.grp
	if g.size == 1 {
		copy(dest, orig)
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.arrived == 0 {
		g.acc = make([]float64, len(orig))
		copy(g.acc, orig)
	} else {
		if len(orig) != len(g.acc) {
			chk.Panic("collective called with mismatched lengths: %d != %d", len(orig), len(g.acc))
		}
		for i, v := range orig {
			switch op {
			case opSum:
				g.acc[i] += v
			case opMax:
				g.acc[i] = math.Max(g.acc[i], v)
			case opMin:
				g.acc[i] = math.Min(g.acc[i], v)
			}
		}
	}
	g.arrived++
	gen := g.gen
	if g.arrived == g.size {
		g.res = g.acc
		g.acc = nil
		g.arrived = 0
		g.gen++
		g.cond.Broadcast()
	} else {
		for gen == g.gen {
			g.cond.Wait()
		}
	}
	copy(dest, g.res)
}
