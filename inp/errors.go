// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/cpmech/gosl/io"
)

// ConfigurationError is returned when an input value is invalid or missing
type ConfigurationError struct {
	Key         string   // configuration key; e.g. controls.gw_level_type
	Value       string   // offending value; empty if missing
	Msg         string   // reason
	Suggestions []string // closest valid values
}

// Error returns the error message
func (o *ConfigurationError) Error() string {
	l := io.Sf("configuration error: %s", o.Key)
	if o.Value != "" {
		l += io.Sf(" = %q", o.Value)
	}
	l += ": " + o.Msg
	if len(o.Suggestions) > 0 {
		l += io.Sf(". did you mean %q?", strings.Join(o.Suggestions, `" or "`))
	}
	return l
}

// cfgErr returns a configuration error for a missing or out-of-range value
func cfgErr(key, msg string, prm ...interface{}) *ConfigurationError {
	return &ConfigurationError{Key: key, Msg: io.Sf(msg, prm...)}
}

// optionErr returns a configuration error for an invalid enumerated value, with suggestions
func optionErr(key, value string, options []string) *ConfigurationError {
	return &ConfigurationError{
		Key:         key,
		Value:       value,
		Msg:         io.Sf("invalid option; available options are %v", sorted(options)),
		Suggestions: suggest(value, options),
	}
}

// suggest returns the options closest to value in edit distance
func suggest(value string, options []string) (res []string) {
	best := len(value)/2 + 2
	for _, opt := range options {
		d := levenshtein.ComputeDistance(strings.ToLower(value), strings.ToLower(opt))
		switch {
		case d < best:
			best = d
			res = []string{opt}
		case d == best:
			res = append(res, opt)
		}
	}
	sort.Strings(res)
	return
}

// sorted returns a sorted copy of names
func sorted(names []string) []string {
	res := make([]string, len(names))
	copy(res, names)
	sort.Strings(res)
	return res
}
