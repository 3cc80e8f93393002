// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package errkind holds the two categories every fatal error of the
// canonicalization engine falls into. Component errors wrap one of them,
// callers test with errors.Is.
package errkind

import "errors"

var (
	// ErrConfigGap means the curated tables (route families, direction
	// overrides, headsign rules) do not cover the current feed.
	ErrConfigGap = errors.New("configuration gap")

	// ErrMalformedInput means a feed record cannot be processed at all.
	ErrMalformedInput = errors.New("malformed input")
)

// IsConfigGap reports whether err was caused by missing table entries
func IsConfigGap(err error) bool {
	return errors.Is(err, ErrConfigGap)
}

// IsMalformedInput reports whether err was caused by an unusable feed record
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}
