// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheo

import "github.com/cpmech/gosl/io"

// ConstitutiveFailure is returned when the constitutive update cannot produce a valid result
type ConstitutiveFailure struct {
	Where string // location of the failing control volume
	Msg   string // reason
}

// Error returns the error message
func (o *ConstitutiveFailure) Error() string {
	if o.Where == "" {
		return io.Sf("constitutive update failed: %s", o.Msg)
	}
	return io.Sf("constitutive update failed at %s: %s", o.Where, o.Msg)
}
