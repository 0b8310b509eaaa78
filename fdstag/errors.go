// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdstag

import "github.com/cpmech/gosl/chk"

// AllocationError reports a failure to create grid data, fields or buffers. It is not retried
type AllocationError struct {
	Err error
}

func (o *AllocationError) Error() string { return "allocation failed: " + o.Err.Error() }

func (o *AllocationError) Unwrap() error { return o.Err }

// allocErr builds an AllocationError from a chk-formatted message
func allocErr(msg string, prm ...interface{}) error {
	return &AllocationError{Err: chk.Err(msg, prm...)}
}

// NewAllocationError wraps err as an AllocationError
func NewAllocationError(msg string, prm ...interface{}) error {
	return allocErr(msg, prm...)
}
