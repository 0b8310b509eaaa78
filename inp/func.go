// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// FuncData holds the definition of a time function used by boundary velocities
type FuncData struct {
	Name string     `mapstructure:"name"` // name of function. ex: zero, push, myfunction1, etc.
	Type string     `mapstructure:"type"` // type of function. ex: cte, rmp
	Prms dbf.Params `mapstructure:"prms"` // parameters
}

// FuncsData holds functions
type FuncsData []*FuncData

// Get returns function by name
func (o FuncsData) Get(name string) (fcn fun.TimeSpace, err error) {
	if name == "zero" || name == "none" {
		fcn = &fun.Cte{C: 0}
		return
	}
	for _, f := range o {
		if f.Name == name {
			fcn, err = fun.New(f.Type, f.Prms)
			if err != nil {
				err = chk.Err("cannot get function named %q because of the following error:\n%v", name, err)
			}
			return
		}
	}
	err = &ConfigurationError{Key: "functions", Value: name, Msg: "cannot find function", Suggestions: suggest(name, o.names())}
	return
}

// names returns the names of all functions
func (o FuncsData) names() (names []string) {
	for _, f := range o {
		names = append(names, f.Name)
	}
	return
}

// String prints one function
func (o FuncData) String() string {
	return io.Sf("{name:%q, type:%q, prms:%v}", o.Name, o.Type, o.Prms)
}
