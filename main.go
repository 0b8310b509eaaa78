// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/GTAIto/LaMEM/lamem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.WorldRank() == 0 {
				io.Pfred("\nERROR: %v", err)
				io.Pf("See location of error below:\n")
				chk.Verbose = true
				for i := 5; i > 3; i-- {
					chk.CallerInfo(i)
				}
			}
		}
		mpi.Stop()
	}()
	mpi.Start()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".toml", true)
	verbose := io.ArgToBool(1, true)
	allowParallel := io.ArgToBool(2, true)

	// message
	if mpi.WorldRank() == 0 && verbose {
		io.Pf("\nLaMEM -- staggered-grid residual evaluation\n")
		io.Pf("Copyright 2016 The Gofem Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"allow parallel run", "allowParallel", allowParallel,
		))
	}

	// model
	model, err := lamem.NewMain(fnamepath, allowParallel, verbose, nil)
	if err != nil {
		chk.Panic("cannot set up model:\n%v", err)
	}

	// residual of initial state
	if err = model.Run(); err != nil {
		chk.Panic("Run failed:\n%v", err)
	}
}
