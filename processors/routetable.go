// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	gtfs "github.com/patrickbr/gtfsparser/gtfs"
	"github.com/patrickbr/gtfscanon/routeid"
)

// RouteInfo is the resolved identity of a feed route together with its
// names as they were in the input feed
type RouteInfo struct {
	routeid.Identity
	RawLongName string
	Family      rune
}

// RouteTable holds the identities of all routes of a feed. It is filled by
// RouteIdentifier and read by the later stages.
type RouteTable struct {
	Registry *routeid.Registry
	routes   map[*gtfs.Route]RouteInfo
}

// NewRouteTable returns an empty RouteTable
func NewRouteTable() *RouteTable {
	return &RouteTable{
		Registry: routeid.NewRegistry(),
		routes:   make(map[*gtfs.Route]RouteInfo),
	}
}

func (rt *RouteTable) add(r *gtfs.Route, info RouteInfo) error {
	if err := rt.Registry.Add(info.Identity); err != nil {
		return err
	}
	rt.routes[r] = info
	return nil
}

// Get returns the identity of r
func (rt *RouteTable) Get(r *gtfs.Route) (RouteInfo, bool) {
	info, ok := rt.routes[r]
	return info, ok
}

// Len returns the number of identified routes
func (rt *RouteTable) Len() int {
	return len(rt.routes)
}

func (rt *RouteTable) remove(r *gtfs.Route) {
	delete(rt.routes, r)
}
