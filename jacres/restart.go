// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jacres

import (
	"encoding/gob"
	"encoding/json"
	goio "io"

	"github.com/GTAIto/LaMEM/fdstag"
	"github.com/cpmech/gosl/chk"
	"github.com/google/uuid"
)

// RestartFormat identifies the layout of restart files
const RestartFormat = "lamem-gsol-1"

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// RestartHeader precedes the solution vector in restart files
type RestartHeader struct {
	Format string  // file format
	RunID  string  // id of the run that wrote the file
	Rank   int     // processor that wrote the file
	Nproc  int     // number of processors
	Tcels  [3]int  // global number of cells
	Procs  [3]int  // number of processors in each direction
	Lnv    int     // number of local velocity DOFs
	Lnp    int     // number of local pressure DOFs
	Step   int     // time step number
	Time   float64 // time
}

// header returns the header describing the current layout
func (o *JacRes) header(runID uuid.UUID) *RestartHeader {
	fs := o.Fs
	return &RestartHeader{
		Format: RestartFormat,
		RunID:  runID.String(),
		Rank:   fs.Comm.Rank(),
		Nproc:  fs.Comm.Size(),
		Tcels:  [3]int{fs.Dsx.Tcels, fs.Dsy.Tcels, fs.Dsz.Tcels},
		Procs:  [3]int{fs.Dsx.Nproc, fs.Dsy.Nproc, fs.Dsz.Nproc},
		Lnv:    fs.Dof.Lnv,
		Lnp:    fs.Dof.Lnp,
		Step:   o.Ts.Step,
		Time:   o.Ts.Time,
	}
}

// WriteRestart writes the header and the coupled solution vector
func (o *JacRes) WriteRestart(w goio.Writer, enctype string, runID uuid.UUID) (err error) {
	enc := GetEncoder(w, enctype)
	if err = enc.Encode(o.header(runID)); err != nil {
		return chk.Err("cannot encode restart header:\n%v", err)
	}
	if err = enc.Encode([]float64(o.Gsol)); err != nil {
		return chk.Err("cannot encode solution vector:\n%v", err)
	}
	return
}

// ReadRestart reads a restart file into the coupled solution vector. The layout of the file must
// match the current layout; otherwise an AllocationError is returned and Gsol is not modified
func (o *JacRes) ReadRestart(r goio.Reader, enctype string) (hdr *RestartHeader, err error) {
	dec := GetDecoder(r, enctype)
	hdr = new(RestartHeader)
	if err = dec.Decode(hdr); err != nil {
		return nil, chk.Err("cannot decode restart header:\n%v", err)
	}
	cur := o.header(uuid.Nil)
	switch {
	case hdr.Format != RestartFormat:
		return hdr, fdstag.NewAllocationError("restart format %q is not supported; %q expected", hdr.Format, RestartFormat)
	case hdr.Rank != cur.Rank || hdr.Nproc != cur.Nproc || hdr.Procs != cur.Procs:
		return hdr, fdstag.NewAllocationError("restart file of rank %d/%d on %v processors cannot be read by rank %d/%d on %v processors",
			hdr.Rank, hdr.Nproc, hdr.Procs, cur.Rank, cur.Nproc, cur.Procs)
	case hdr.Tcels != cur.Tcels || hdr.Lnv != cur.Lnv || hdr.Lnp != cur.Lnp:
		return hdr, fdstag.NewAllocationError("restart layout (cells %v, lnv=%d, lnp=%d) does not match grid (cells %v, lnv=%d, lnp=%d)",
			hdr.Tcels, hdr.Lnv, hdr.Lnp, cur.Tcels, cur.Lnv, cur.Lnp)
	}
	var sol []float64
	if err = dec.Decode(&sol); err != nil {
		return hdr, chk.Err("cannot decode solution vector:\n%v", err)
	}
	if len(sol) != len(o.Gsol) {
		return hdr, fdstag.NewAllocationError("restart solution has length %d; the layout needs %d", len(sol), len(o.Gsol))
	}
	copy(o.Gsol, sol)
	o.Ts.Step, o.Ts.Time = hdr.Step, hdr.Time
	return
}
