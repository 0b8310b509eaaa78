// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jacres

import (
	"math"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// Report holds norms of a constrained residual over all processes
type Report struct {
	DivMin  float64  // minimum divergence
	DivMax  float64  // maximum divergence
	Div2    float64  // 2-norm of the continuity residual
	Mom2    float64  // 2-norm of the momentum residual
	Energy2 *float64 // 2-norm of the energy residual; nil => not given
	DivTol  float64  // tolerance; 0 => off
	Failed  bool     // tolerance exceeded
}

// DivergenceError reports a residual exceeding the divergence tolerance. It is fatal
type DivergenceError struct {
	DivMax float64 // maximum divergence
	Mom2   float64 // 2-norm of the momentum residual
	DivTol float64 // tolerance
}

func (o *DivergenceError) Error() string {
	return io.Sf("emergency stop: maximum divergence (%g) or momentum residual (%g) exceeds tolerance %g; solver did not converge", o.DivMax, o.Mom2, o.DivTol)
}

// ViewRes computes norms of the constrained coupled residual res, prints a summary on the root
// processor and checks the divergence tolerance. It is collective
//  Input:
//   res   -- constrained coupled residual (see CopyRes)
//   eNorm -- [optional] 2-norm of the energy residual
func (o *JacRes) ViewRes(res []float64, eNorm *float64) (rep *Report, err error) {

	// constrained residual blocks
	if err = o.checkLen(res, "residual"); err != nil {
		return
	}
	o.CopyMomentumRes(res)
	o.CopyContinuityRes(res)

	// norms
	fs := o.Fs
	rep = &Report{Energy2: eNorm, DivTol: o.Ctrl.DivTol}
	rep.DivMin = fs.MinAll(minOf(o.Gc))
	rep.DivMax = fs.MaxAll(maxOf(o.Gc))
	rep.Div2 = math.Sqrt(fs.SumAll(floats.Dot(o.Gc, o.Gc)))
	f2 := floats.Dot(o.Gfx, o.Gfx) + floats.Dot(o.Gfy, o.Gfy) + floats.Dot(o.Gfz, o.Gfz)
	rep.Mom2 = math.Sqrt(fs.SumAll(f2))

	// print
	if o.ShowMsg {
		io.Pf("------------------------------------------\n")
		io.Pf("Residual summary: \n")
		io.Pf("  Continuity: \n")
		io.Pf("    Div_min  = %12.12e \n", rep.DivMin)
		io.Pf("    Div_max  = %12.12e \n", rep.DivMax)
		io.Pf("    |Div|_2  = %12.12e \n", rep.Div2)
		io.Pf("  Momentum: \n")
		io.Pf("    |mRes|_2 = %12.12e \n", rep.Mom2)
		if eNorm != nil {
			io.Pf("  Energy: \n")
			io.Pf("    |eRes|_2 = %12.12e \n", *eNorm)
		}
		io.Pf("------------------------------------------\n")
	}

	// stop if divergence is larger than tolerance
	tol := o.Ctrl.DivTol
	if tol != 0 && (rep.DivMax > tol || rep.Mom2 > tol) {
		rep.Failed = true
		err = &DivergenceError{DivMax: rep.DivMax, Mom2: rep.Mom2, DivTol: tol}
		if o.ShowMsg {
			io.Pfred("%v\n", err)
		}
	}
	return
}

// minOf returns the minimum of v; +Inf if v is empty
func minOf(v []float64) float64 {
	if len(v) == 0 {
		return math.Inf(1)
	}
	return floats.Min(v)
}

// maxOf returns the maximum of v; -Inf if v is empty
func maxOf(v []float64) float64 {
	if len(v) == 0 {
		return math.Inf(-1)
	}
	return floats.Max(v)
}
