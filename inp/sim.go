// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a simulation file (JSON, YAML or TOML)
package inp

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/GTAIto/LaMEM/fdstag"
	"github.com/GTAIto/LaMEM/mdl/geom"
	"github.com/GTAIto/LaMEM/mdl/rheo"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/viper"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `mapstructure:"desc"`    // description of simulation
	DirOut  string `mapstructure:"dirout"`  // directory for output; e.g. /tmp/lamem
	Encoder string `mapstructure:"encoder"` // encoder name; e.g. "gob" "json"
	Restart string `mapstructure:"restart"` // restart file to start from; empty => initial state
}

// GridData holds data for the staggered grid
type GridData struct {
	Nel   []int     `mapstructure:"nel"`   // number of cells in each direction
	Beg   []float64 `mapstructure:"beg"`   // lower corner of domain
	End   []float64 `mapstructure:"end"`   // upper corner of domain
	Bias  []float64 `mapstructure:"bias"`  // ratio of last to first cell width; 0 or 1 => uniform
	Nproc []int     `mapstructure:"nproc"` // number of processors in each direction
}

// TimeData holds the time step of the residual evaluation
type TimeData struct {
	Dt   float64 `mapstructure:"dt"`   // time step size
	Time float64 `mapstructure:"time"` // current time
	Step int     `mapstructure:"step"` // step number
}

// FaceBc holds boundary conditions of one face of the domain
type FaceBc struct {
	Type string    `mapstructure:"type"` // free_slip, no_slip, velocity or open
	Vel  []float64 `mapstructure:"vel"`  // velocity type: velocity vector
	Fcn  string    `mapstructure:"fcn"`  // velocity type: time function multiplying vel; empty => 1
}

// BcsData holds boundary conditions
type BcsData struct {
	Left   FaceBc   `mapstructure:"left"`   // x = xmin
	Right  FaceBc   `mapstructure:"right"`  // x = xmax
	Front  FaceBc   `mapstructure:"front"`  // y = ymin
	Back   FaceBc   `mapstructure:"back"`   // y = ymax
	Bottom FaceBc   `mapstructure:"bottom"` // z = zmin
	Top    FaceBc   `mapstructure:"top"`    // z = zmax
	Exx    float64  `mapstructure:"exx"`    // background strain rate along x
	Eyy    float64  `mapstructure:"eyy"`    // background strain rate along y
	PTop   *float64 `mapstructure:"p_top"`  // prescribed pressure at the top; nil => none
}

// SurfaceData holds free-surface data
type SurfaceData struct {
	AirPhase int      `mapstructure:"air_phase"` // phase of sticky air; -1 => no free surface
	AvgTopo  *float64 `mapstructure:"avg_topo"`  // average topography; nil => top of the domain
}

// InitData holds data for setting the initial state
type InitData struct {
	TTop  float64 `mapstructure:"temp_top"` // temperature at the top
	TBot  float64 `mapstructure:"temp_bot"` // temperature at the bottom
	P0    float64 `mapstructure:"p0"`       // initial pressure
	BgVel bool    `mapstructure:"bg_vel"`   // initialise velocities from the background strain rates
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data        `mapstructure:"data"`      // global simulation data
	Grid      GridData    `mapstructure:"grid"`      // staggered grid
	Controls  Controls    `mapstructure:"controls"`  // residual evaluation parameters
	Time      TimeData    `mapstructure:"time"`      // time step
	Phases    MatsData    `mapstructure:"phases"`    // material phases
	Geometry  GeomData    `mapstructure:"geometry"`  // phase assignment
	Bcs       BcsData     `mapstructure:"bcs"`       // boundary conditions
	Surface   SurfaceData `mapstructure:"surface"`   // free surface
	Init      InitData    `mapstructure:"init"`      // initial state
	Functions FuncsData   `mapstructure:"functions"` // time functions

	// derived
	Key     string         // simulation key; e.g. mysim01.toml => mysim01
	DirOut  string         // directory to save results
	Rheo    *rheo.Database // rheology of all phases
	Geom    *geom.Geometry // phase assignment
	X       [3][]float64   // node coordinates
	AvgTopo float64        // average topography
}

// setDefault sets default values
func setDefault(v *viper.Viper) {
	v.SetDefault("data.encoder", "gob")
	v.SetDefault("grid.bias", []float64{1, 1, 1})
	v.SetDefault("grid.nproc", []int{1, 1, 1})
	v.SetDefault("time.dt", 0.0)
	v.SetDefault("geometry.background", 0)
	v.SetDefault("geometry.nsub", 2)
	for _, face := range []string{"left", "right", "front", "back", "bottom", "top"} {
		v.SetDefault("bcs."+face+".type", "free_slip")
	}
	v.SetDefault("surface.air_phase", -1)
	setControlsDefault(v)
}

// ReadSim reads all simulation data from a JSON, YAML or TOML file.
// Values may be overridden by environment variables such as LAMEM_CONTROLS_FSSA
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// viper
	v := viper.New()
	setDefault(v)
	v.SetConfigFile(os.ExpandEnv(simfilepath))
	v.SetEnvPrefix("LAMEM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err = v.ReadInConfig(); err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// decode
	o = new(Simulation)
	if err = v.Unmarshal(o); err != nil {
		return nil, chk.Err("cannot decode simulation file %q:\n%v", simfilepath, err)
	}

	// key and output directory
	o.Key = io.FnKey(filepath.Base(simfilepath))
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/lamem/" + o.Key
	}
	err = o.PostProcess(v.IsSet("controls.gw_level"))
	return
}

// PostProcess checks input data and sets derived values
func (o *Simulation) PostProcess(hasGwLevel bool) (err error) {

	// encoder
	if o.Data.Encoder != "gob" && o.Data.Encoder != "json" {
		return optionErr("data.encoder", o.Data.Encoder, []string{"gob", "json"})
	}

	// grid
	if err = o.Grid.check(); err != nil {
		return
	}
	for d := 0; d < 3; d++ {
		o.X[d] = o.Grid.Coords(d)
	}

	// controls
	if err = o.Controls.PostProcess(hasGwLevel); err != nil {
		return
	}
	if o.Time.Dt < 0 {
		return cfgErr("time.dt", "time step must not be negative. %g is invalid", o.Time.Dt)
	}

	// phases
	if o.Rheo, err = o.Phases.Database(o.Controls.Limits()); err != nil {
		return
	}
	if o.Geom, err = o.Geometry.Geometry(o.Rheo.NumPhases()); err != nil {
		return
	}

	// boundary conditions
	if err = o.Bcs.check(o.Functions); err != nil {
		return
	}

	// free surface
	if o.Surface.AirPhase < -1 || o.Surface.AirPhase >= o.Rheo.NumPhases() {
		return cfgErr("surface.air_phase", "air phase %d is out of range [-1,%d)", o.Surface.AirPhase, o.Rheo.NumPhases())
	}
	o.AvgTopo = o.Grid.End[2]
	if o.Surface.AvgTopo != nil {
		o.AvgTopo = *o.Surface.AvgTopo
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// check checks grid data
func (o *GridData) check() error {
	if len(o.Nel) != 3 || len(o.Beg) != 3 || len(o.End) != 3 || len(o.Bias) != 3 || len(o.Nproc) != 3 {
		return cfgErr("grid", "nel, beg, end, bias and nproc must all have 3 components")
	}
	for d := 0; d < 3; d++ {
		if o.Nel[d] < 1 || o.Nproc[d] < 1 || o.End[d] <= o.Beg[d] {
			return cfgErr("grid", "direction %d is invalid: nel=%d nproc=%d beg=%g end=%g", d, o.Nel[d], o.Nproc[d], o.Beg[d], o.End[d])
		}
	}
	return nil
}

// Coords returns node coordinates along direction dir
func (o *GridData) Coords(dir int) []float64 {
	return fdstag.Biased(o.Beg[dir], o.End[dir], o.Nel[dir], o.Bias[dir])
}

// check checks boundary conditions
func (o *BcsData) check(fcns FuncsData) error {
	faces := map[string]*FaceBc{"left": &o.Left, "right": &o.Right, "front": &o.Front, "back": &o.Back, "bottom": &o.Bottom, "top": &o.Top}
	for name, f := range faces {
		key := "bcs." + name
		if _, ok := faceTypes[f.Type]; !ok {
			return optionErr(key+".type", f.Type, mapKeys(faceTypes))
		}
		if f.Type == "velocity" && len(f.Vel) != 3 {
			return cfgErr(key+".vel", "velocity must have 3 components. %d given", len(f.Vel))
		}
		if f.Fcn != "" {
			if _, err := fcns.Get(f.Fcn); err != nil {
				return err
			}
		}
	}
	return nil
}

// faceTypes holds the available boundary condition types
var faceTypes = map[string]bool{"free_slip": true, "no_slip": true, "velocity": true, "open": true}
