// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package headsign merges the canonical headsigns observed on the trips of
// one route direction into a single label.
package headsign

import (
	"fmt"
	"strings"

	"github.com/patrickbr/gtfscanon/errkind"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Special is the label of schedule irregularity trips. It carries no
// destination and is absorbed into the other observed labels.
const Special = "Special"

// AnyDirection matches both directions of a route
const AnyDirection = -1

// Rule maps an exact set of observed headsigns to one label
type Rule struct {
	RouteID   int64
	Direction int
	Headsigns []string
	Label     string
}

// MergeError is returned for an observed headsign set no rule covers
type MergeError struct {
	RouteID   int64
	Direction int
	Observed  []string
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("no headsign rule for route %d, direction %d, observed headsigns [%s]", e.RouteID, e.Direction, strings.Join(e.Observed, ", "))
}

func (e *MergeError) Unwrap() error {
	return errkind.ErrConfigGap
}

type key struct {
	route int64
	dir   int
}

type entry struct {
	set   []string
	label string
}

// Resolver resolves observed headsign sets to labels
type Resolver struct {
	rules map[key][]entry
}

// NewResolver checks the rules and returns a Resolver using them. Two rules
// with the same key set for the same route and direction are an error.
func NewResolver(rules []Rule) (*Resolver, error) {
	r := &Resolver{rules: make(map[key][]entry)}

	for _, rule := range rules {
		if rule.Direction != AnyDirection && rule.Direction != 0 && rule.Direction != 1 {
			return nil, fmt.Errorf("%w: headsign rule for route %d has direction %d", errkind.ErrConfigGap, rule.RouteID, rule.Direction)
		}

		set := normalize(rule.Headsigns)
		if len(set) < 2 {
			return nil, fmt.Errorf("%w: headsign rule for route %d needs at least two distinct headsigns", errkind.ErrConfigGap, rule.RouteID)
		}

		if slices.Contains(set, Special) {
			return nil, fmt.Errorf("%w: headsign rule for route %d lists '%s', which never reaches a rule", errkind.ErrConfigGap, rule.RouteID, Special)
		}

		if len(rule.Label) == 0 {
			return nil, fmt.Errorf("%w: headsign rule for route %d has no label", errkind.ErrConfigGap, rule.RouteID)
		}

		k := key{rule.RouteID, rule.Direction}
		for _, e := range r.rules[k] {
			if slices.Equal(e.set, set) {
				return nil, fmt.Errorf("%w: route %d has more than one headsign rule for [%s]", errkind.ErrConfigGap, rule.RouteID, strings.Join(set, ", "))
			}
		}

		r.rules[k] = append(r.rules[k], entry{set, rule.Label})
	}

	return r, nil
}

// Resolve returns the label for the headsigns observed on route routeID in
// direction dir. A single label resolves to itself, no label to the empty
// string. Rules for the exact direction are tried before rules for any
// direction.
func (r *Resolver) Resolve(routeID int64, dir int, observed []string) (string, error) {
	set := normalize(observed)

	if len(set) > 1 {
		set = absorbSpecial(set)
	}

	switch len(set) {
	case 0:
		return "", nil
	case 1:
		return set[0], nil
	}

	for _, d := range []int{dir, AnyDirection} {
		for _, e := range r.rules[key{routeID, d}] {
			if slices.Equal(e.set, set) {
				return e.label, nil
			}
		}
	}

	return "", &MergeError{RouteID: routeID, Direction: dir, Observed: set}
}

// Routes returns the ids of all routes with rules, ascending
func (r *Resolver) Routes() []int64 {
	seen := make(map[int64]struct{})
	for k := range r.rules {
		seen[k.route] = struct{}{}
	}
	ids := maps.Keys(seen)
	slices.Sort(ids)
	return ids
}

// normalize returns the sorted, de-duplicated, non-empty labels
func normalize(labels []string) []string {
	ret := make([]string, 0, len(labels))
	for _, l := range labels {
		if len(l) > 0 {
			ret = append(ret, l)
		}
	}
	slices.Sort(ret)
	return slices.Compact(ret)
}

func absorbSpecial(set []string) []string {
	i := slices.Index(set, Special)
	if i < 0 {
		return set
	}
	return slices.Delete(slices.Clone(set), i, i+1)
}
