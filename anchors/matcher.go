// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package anchors splits the trips of routes whose feed data mixes both
// physical directions. Every such route is configured with two directions,
// each carrying an ordered list of anchor stops. A trip belongs to the
// direction whose anchors it visits in order.
package anchors

import (
	"fmt"
	"strings"

	"github.com/patrickbr/gtfscanon/errkind"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DirectionSpec is the configuration of one direction of an override
type DirectionSpec struct {
	Label   string
	Anchors []string
}

// Override holds both directions of one route
type Override struct {
	RouteID    int64
	Directions [2]DirectionSpec
}

// TripStop is a stop visit of a trip
type TripStop struct {
	StopID   string
	Sequence int
}

// Trip is the part of a feed trip the matcher looks at
type Trip struct {
	ID      string
	RouteID int64
	Stops   []TripStop
}

// Direction is one resolved direction of an overridden route
type Direction struct {
	RouteID int64
	Index   int
	Label   string
	Anchors []string

	rank map[string]int
}

// ClassificationError is returned if a trip matches none or both
// directions of its route's override
type ClassificationError struct {
	RouteID int64
	TripID  string
	Matched []int
}

func (e *ClassificationError) Error() string {
	if len(e.Matched) == 0 {
		return fmt.Sprintf("trip '%s' of route %d matches no anchor list", e.TripID, e.RouteID)
	}
	return fmt.Sprintf("trip '%s' of route %d matches the anchors of both directions", e.TripID, e.RouteID)
}

func (e *ClassificationError) Unwrap() error {
	return errkind.ErrConfigGap
}

// Matcher classifies trips of overridden routes
type Matcher struct {
	dirs map[int64][2]*Direction
}

// NewMatcher checks the overrides and returns a Matcher for them
func NewMatcher(overrides []Override) (*Matcher, error) {
	m := &Matcher{dirs: make(map[int64][2]*Direction, len(overrides))}

	for _, o := range overrides {
		if _, ok := m.dirs[o.RouteID]; ok {
			return nil, fmt.Errorf("%w: route %d has more than one direction override", errkind.ErrConfigGap, o.RouteID)
		}

		if o.Directions[0].Label == o.Directions[1].Label {
			return nil, fmt.Errorf("%w: both directions of route %d are labeled '%s'", errkind.ErrConfigGap, o.RouteID, o.Directions[0].Label)
		}

		var dirs [2]*Direction
		for i, spec := range o.Directions {
			if len(spec.Anchors) == 0 {
				return nil, fmt.Errorf("%w: direction %d of route %d has no anchors", errkind.ErrConfigGap, i, o.RouteID)
			}
			d := &Direction{
				RouteID: o.RouteID,
				Index:   i,
				Label:   spec.Label,
				Anchors: slices.Clone(spec.Anchors),
				rank:    make(map[string]int, len(spec.Anchors)),
			}
			for j, a := range spec.Anchors {
				if _, ok := d.rank[a]; !ok {
					d.rank[a] = j
				}
			}
			dirs[i] = d
		}

		m.dirs[o.RouteID] = dirs
	}

	return m, nil
}

// Has returns true if the route has a direction override
func (m *Matcher) Has(routeID int64) bool {
	_, ok := m.dirs[routeID]
	return ok
}

// RouteIDs returns the overridden routes in ascending order
func (m *Matcher) RouteIDs() []int64 {
	ids := maps.Keys(m.dirs)
	slices.Sort(ids)
	return ids
}

// Directions returns both directions of an overridden route
func (m *Matcher) Directions(routeID int64) ([2]*Direction, bool) {
	d, ok := m.dirs[routeID]
	return d, ok
}

// Classify returns the direction trip belongs to. A trip matching none or
// both directions yields a *ClassificationError.
func (m *Matcher) Classify(trip Trip) (*Direction, error) {
	dirs, ok := m.dirs[trip.RouteID]
	if !ok {
		return nil, fmt.Errorf("%w: route %d of trip '%s' has no direction override", errkind.ErrConfigGap, trip.RouteID, trip.ID)
	}

	stops := stopIDs(trip.Stops)

	matched := make([]int, 0, 2)
	for i, d := range dirs {
		if d.Matches(stops) {
			matched = append(matched, i)
		}
	}

	if len(matched) != 1 {
		return nil, &ClassificationError{RouteID: trip.RouteID, TripID: trip.ID, Matched: matched}
	}

	return dirs[matched[0]], nil
}

// Matches returns true if stops contain the anchors of d as an in-order,
// not necessarily contiguous, subsequence
func (d *Direction) Matches(stops []string) bool {
	i := 0
	for _, s := range stops {
		if i == len(d.Anchors) {
			break
		}
		if s == d.Anchors[i] {
			i++
		}
	}
	return i == len(d.Anchors)
}

// Compare orders two stop visits of a trip in direction d. Visits are
// ordered by their raw sequence, equal sequences by the position of the
// stop in the anchor list. Stops not in the anchor list sort after the
// anchors and compare equal to each other.
//
// A classified trip already holds the anchors in raw sequence order, so
// the anchor rank only decides between visits sharing a sequence number,
// like a loop stop published twice. With unique sequences Sort is a plain
// sequence sort. The order across the trips of a direction is built by
// MergeStops.
func (d *Direction) Compare(a, b TripStop) int {
	if a.Sequence != b.Sequence {
		if a.Sequence < b.Sequence {
			return -1
		}
		return 1
	}

	ra, rb := d.Rank(a.StopID), d.Rank(b.StopID)
	if ra < rb {
		return -1
	}
	if ra > rb {
		return 1
	}
	return 0
}

// Rank returns the anchor list position of a stop, or len(d.Anchors) for
// stops that are not anchors
func (d *Direction) Rank(stopID string) int {
	if r, ok := d.rank[stopID]; ok {
		return r
	}
	return len(d.Anchors)
}

// Sort stably sorts stops using Compare
func (d *Direction) Sort(stops []TripStop) {
	slices.SortStableFunc(stops, d.Compare)
}

func (d *Direction) String() string {
	return fmt.Sprintf("%d/%d (%s: %s)", d.RouteID, d.Index, d.Label, strings.Join(d.Anchors, " > "))
}

// stopIDs returns the stop ids of stops in raw sequence order
func stopIDs(stops []TripStop) []string {
	sorted := slices.Clone(stops)
	slices.SortStableFunc(sorted, func(a, b TripStop) int {
		return a.Sequence - b.Sequence
	})

	ret := make([]string, len(sorted))
	for i, st := range sorted {
		ret[i] = st.StopID
	}
	return ret
}
