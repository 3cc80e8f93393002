// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package routeid

import (
	"fmt"

	"github.com/patrickbr/gtfscanon/errkind"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Registry records the raw code -> stable id association of one feed and
// enforces that no two raw codes share an id
type Registry struct {
	byCode map[string]Identity
	byID   map[int64]string
}

// NewRegistry returns an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		byCode: make(map[string]Identity),
		byID:   make(map[int64]string),
	}
}

// Add records id. Adding the same raw code twice is a no-op, a second raw
// code mapping to an already used id is a configuration gap.
func (reg *Registry) Add(id Identity) error {
	if other, ok := reg.byID[id.ID]; ok && other != id.RawCode {
		return &CodeError{id.RawCode, fmt.Sprintf("stable id %d already used by route code '%s'", id.ID, other), errkind.ErrConfigGap}
	}
	reg.byCode[id.RawCode] = id
	reg.byID[id.ID] = id.RawCode
	return nil
}

// Lookup returns the identity registered for a raw code
func (reg *Registry) Lookup(raw string) (Identity, bool) {
	id, ok := reg.byCode[raw]
	return id, ok
}

// Code returns the raw code registered for a stable id
func (reg *Registry) Code(id int64) (string, bool) {
	c, ok := reg.byID[id]
	return c, ok
}

// IDs returns all registered stable ids in ascending order
func (reg *Registry) IDs() []int64 {
	ids := maps.Keys(reg.byID)
	slices.Sort(ids)
	return ids
}

// Len returns the number of registered routes
func (reg *Registry) Len() int {
	return len(reg.byCode)
}
