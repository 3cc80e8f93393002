// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package routeid derives stable numeric route identities from raw GTFS
// route short names. Purely numeric codes map to their value, family coded
// routes (a single letter followed by digits, like C12 or N9) are moved into
// a reserved offset band per family so they never collide with numeric ones.
package routeid

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/patrickbr/gtfscanon/errkind"
	"golang.org/x/exp/slices"
)

// DefaultBandWidth is the size of every offset band, and also the size of
// the plain numeric id domain [0, DefaultBandWidth)
const DefaultBandWidth int64 = 10000

var digitRun = regexp.MustCompile(`[0-9]+`)

// Band reserves [Offset, Offset+width) for the routes of one family
type Band struct {
	Prefix rune
	Name   string
	Offset int64
}

// Identity is the resolved identity of a raw route code
type Identity struct {
	RawCode   string
	ID        int64
	ShortName string
}

// CodeError is returned for route codes that cannot be resolved
type CodeError struct {
	Code   string
	Reason string
	kind   error
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("route code '%s': %s", e.Code, e.Reason)
}

func (e *CodeError) Unwrap() error {
	return e.kind
}

// Resolver maps raw route codes to stable identities
type Resolver struct {
	width int64
	bands map[rune]Band
}

// NewResolver checks that the given bands are pairwise disjoint and do not
// overlap the plain numeric domain, and returns a Resolver using them. A
// width <= 0 selects DefaultBandWidth.
func NewResolver(width int64, bands []Band) (*Resolver, error) {
	if width <= 0 {
		width = DefaultBandWidth
	}

	r := &Resolver{width: width, bands: make(map[rune]Band, len(bands))}

	sorted := slices.Clone(bands)
	slices.SortFunc(sorted, func(a, b Band) int {
		if a.Offset < b.Offset {
			return -1
		}
		if a.Offset > b.Offset {
			return 1
		}
		return 0
	})

	// the numeric domain acts as the first, implicit band
	prevEnd := width
	prevName := "numeric"

	for _, b := range sorted {
		if !unicode.IsUpper(b.Prefix) {
			return nil, fmt.Errorf("%w: family prefix '%c' is not an uppercase letter", errkind.ErrConfigGap, b.Prefix)
		}
		if _, ok := r.bands[b.Prefix]; ok {
			return nil, fmt.Errorf("%w: family prefix '%c' has more than one band", errkind.ErrConfigGap, b.Prefix)
		}
		if b.Offset < prevEnd {
			return nil, fmt.Errorf("%w: band of family '%c' at %d overlaps %s band ending at %d", errkind.ErrConfigGap, b.Prefix, b.Offset, prevName, prevEnd)
		}
		r.bands[b.Prefix] = b
		prevEnd = b.Offset + width
		prevName = string(b.Prefix)
	}

	return r, nil
}

// Width returns the size of each band
func (r *Resolver) Width() int64 {
	return r.width
}

// Resolve returns the stable identity of a raw route short code
func (r *Resolver) Resolve(raw string) (Identity, error) {
	if isDigitsOnly(raw) {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Identity{}, &CodeError{raw, err.Error(), errkind.ErrMalformedInput}
		}
		return Identity{RawCode: raw, ID: id, ShortName: strconv.FormatInt(id, 10)}, nil
	}

	run := digitRun.FindString(raw)
	if len(run) == 0 {
		return Identity{}, &CodeError{raw, "no digits", errkind.ErrMalformedInput}
	}

	suffix, err := strconv.ParseInt(run, 10, 64)
	if err != nil {
		return Identity{}, &CodeError{raw, err.Error(), errkind.ErrMalformedInput}
	}

	prefix, _ := utf8.DecodeRuneInString(raw)
	band, ok := r.bands[unicode.ToUpper(prefix)]
	if !ok {
		return Identity{}, &CodeError{raw, fmt.Sprintf("no offset band for prefix '%c'", prefix), errkind.ErrConfigGap}
	}

	if suffix >= r.width {
		return Identity{}, &CodeError{raw, fmt.Sprintf("numeric part %d does not fit into a band of width %d", suffix, r.width), errkind.ErrMalformedInput}
	}

	return Identity{RawCode: raw, ID: band.Offset + suffix, ShortName: raw}, nil
}

// Family returns the band the raw code belongs to, if any
func (r *Resolver) Family(raw string) (Band, bool) {
	if len(raw) == 0 || isDigitsOnly(raw) {
		return Band{}, false
	}
	prefix, _ := utf8.DecodeRuneInString(raw)
	b, ok := r.bands[unicode.ToUpper(prefix)]
	return b, ok
}

func isDigitsOnly(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
