// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdstag

import (
	"errors"
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRanks runs fcn on n in-process ranks and waits for all of them
func runRanks(n int, fcn func(comm Comm)) {
	comms := NewLocalGroup(n)
	var wg sync.WaitGroup
	wg.Add(n)
	for _, c := range comms {
		go func(c *LocalComm) {
			defer wg.Done()
			fcn(c)
		}(c)
	}
	wg.Wait()
}

func Test_discret01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("discret01. ownership ranges and mesh steps")

	x := []float64{0, 1, 3, 6, 10}
	ds, err := NewDiscret1D(x, 3, 0)
	if err != nil {
		tst.Errorf("NewDiscret1D failed:\n%v", err)
		return
	}
	chk.Ints(tst, "starts", ds.Starts, []int{0, 2, 3, 4})
	chk.IntAssert(ds.NCels(), 2)
	chk.IntAssert(ds.NNods(), 2)

	last, _ := NewDiscret1D(x, 3, 2)
	chk.IntAssert(last.NCels(), 1)
	chk.IntAssert(last.NNods(), 2)

	chk.Float64(tst, "size cell 1", 1e-15, ds.SizeCell(1), 2)
	chk.Float64(tst, "size ghost -1", 1e-15, ds.SizeCell(-1), 1)
	chk.Float64(tst, "size ghost 4", 1e-15, ds.SizeCell(4), 4)
	chk.Float64(tst, "coord cell 2", 1e-15, ds.CoordCell(2), 4.5)
	chk.Float64(tst, "size node 0", 1e-15, ds.SizeNode(0), 1)
	chk.Float64(tst, "size node 2", 1e-15, ds.SizeNode(2), 2.5)
	chk.Float64(tst, "size node 4", 1e-15, ds.SizeNode(4), 4)
	chk.IntAssert(ds.Owner(0), 0)
	chk.IntAssert(ds.Owner(2), 1)
	chk.IntAssert(ds.Owner(4), 2)

	chk.IntAssert(Clamp(-1, 4), 0)
	chk.IntAssert(Clamp(4, 4), 3)
	chk.IntAssert(Clamp(2, 4), 2)
}

func Test_discret02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("discret02. invalid discretisations")

	_, err := NewDiscret1D([]float64{0, 1}, 2, 0)
	var aerr *AllocationError
	require.True(tst, errors.As(err, &aerr), "more processors than cells must fail")

	_, err = NewDiscret1D([]float64{0, 1, 1}, 1, 0)
	require.True(tst, errors.As(err, &aerr), "repeated coordinates must fail")

	_, err = New(Uniform(0, 1, 4), Uniform(0, 1, 4), Uniform(0, 1, 4), 2, 1, 1, NewSerialComm())
	require.True(tst, errors.As(err, &aerr), "processor grid mismatch must fail")

	x := Biased(0, 10, 4, 2)
	chk.Float64(tst, "biased end", 1e-14, x[4], 10)
	chk.Float64(tst, "bias ratio", 1e-12, (x[4]-x[3])/(x[1]-x[0]), 2)
}

func Test_comm01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("comm01. in-process collectives")

	n := 4
	res := make([][]float64, n)
	runRanks(n, func(comm Comm) {
		r := float64(comm.Rank())
		sum := make([]float64, 2)
		comm.AllReduceSum(sum, []float64{r, 1})
		mx := make([]float64, 1)
		comm.AllReduceMax(mx, []float64{r})
		mn := make([]float64, 1)
		comm.AllReduceMin(mn, []float64{r})
		comm.Barrier()
		res[comm.Rank()] = []float64{sum[0], sum[1], mx[0], mn[0]}
	})
	for r := 0; r < n; r++ {
		chk.Array(tst, io.Sf("rank %d", r), 1e-17, res[r], []float64{6, 4, 3, 0})
	}
}

func Test_exchange01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("exchange01. ghost exchange and additive assembly")

	x := Uniform(0, 4, 4)
	y := Uniform(0, 3, 3)
	z := Uniform(0, 2, 2)
	for _, kind := range []Kind{CEN, X, Y, Z, XY, XZ, YZ, COR} {
		runRanks(4, func(comm Comm) {
			fs, err := New(x, y, z, 2, 2, 1, comm)
			assert.NoError(tst, err)

			// owned values hold their natural global index
			f := fs.NewField(kind)
			own := fs.NewVec(kind)
			n := 0
			f.LoopOwned(func(i, j, k int) {
				own[n] = float64(f.GlobalIdx(i, j, k))
				n++
			})
			fs.GlobalToLocal(own, f)
			for k := f.Lo[2]; k < f.Lo[2]+f.N[2]; k++ {
				for j := f.Lo[1]; j < f.Lo[1]+f.N[1]; j++ {
					for i := f.Lo[0]; i < f.Lo[0]+f.N[0]; i++ {
						if f.InDomain(i, j, k) {
							assert.Equal(tst, float64(f.GlobalIdx(i, j, k)), f.Get(i, j, k), "kind %v point (%d,%d,%d)", kind, i, j, k)
						} else {
							assert.Equal(tst, 0.0, f.Get(i, j, k))
						}
					}
				}
			}

			// ghost refresh after local write
			f.LoopOwned(func(i, j, k int) { f.Set(i, j, k, -float64(f.GlobalIdx(i, j, k))) })
			fs.LocalToLocal(f)
			f.LoopLocal(func(i, j, k int) {
				assert.Equal(tst, -float64(f.GlobalIdx(i, j, k)), f.Get(i, j, k))
			})

			// every local copy contributes one
			f.Fill(1)
			fs.LocalToGlobalAdd(f, own)
			g := fs.NewField(kind)
			cnt := fs.NewVec(kind)
			n = 0
			g.LoopOwned(func(i, j, k int) {
				cnt[n] = float64(copies(fs, kind, i, j, k))
				n++
			})
			assert.Equal(tst, cnt, own, "kind %v", kind)
		})
	}
}

// copies counts the processes holding (i,j,k) in their ghosted local field
func copies(fs *FDSTAG, kind Kind, i, j, k int) (n int) {
	idx := []int{i, j, k}
	n = 1
	for d := 0; d < 3; d++ {
		ds := fs.Ds(d)
		c := 0
		for p := 0; p < ds.Nproc; p++ {
			lo := ds.Starts[p] - 1
			m := ds.Starts[p+1] - ds.Starts[p]
			if kind.IsNode(d) && p == ds.Nproc-1 {
				m++
			}
			if idx[d] >= lo && idx[d] < lo+m+2 {
				c++
			}
		}
		n *= c
	}
	return
}

func Test_fdstag01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fdstag01. counts and layout")

	comm := NewSerialComm()
	fs, err := New(Uniform(0, 3, 3), Uniform(0, 2, 2), Uniform(0, 1, 1), 1, 1, 1, comm)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	chk.IntAssert(fs.NCells, 6)
	chk.IntAssert(fs.NXFace, 8)
	chk.IntAssert(fs.NYFace, 9)
	chk.IntAssert(fs.NZFace, 12)
	chk.IntAssert(fs.NXYEdg, 12)
	chk.IntAssert(fs.NXZEdg, 16)
	chk.IntAssert(fs.NYZEdg, 18)
	chk.IntAssert(fs.Dof.Ln, 8+9+12+6)
	chk.IntAssert(fs.TopCells(), 6)
	if chk.Verbose {
		io.Pforan("%v\n", fs)
	}
}
