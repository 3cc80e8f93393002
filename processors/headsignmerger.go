// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"fmt"
	"os"
	"strings"

	"github.com/patrickbr/gtfsparser"
	gtfs "github.com/patrickbr/gtfsparser/gtfs"
	"github.com/patrickbr/gtfscanon/anchors"
	"github.com/patrickbr/gtfscanon/headsign"
	"golang.org/x/exp/slices"
)

// routeDir identifies one direction of a route by stable id
type routeDir struct {
	route int64
	dir   int
}

func compareRouteDir(a, b routeDir) int {
	if a.route != b.route {
		if a.route < b.route {
			return -1
		}
		return 1
	}
	return a.dir - b.dir
}

// tripDir returns the direction index of t, trips without a direction id
// belong to direction 0
func tripDir(t *gtfs.Trip) int {
	if t.Direction_id < 0 {
		return 0
	}
	return int(t.Direction_id)
}

// HeadsignMerger collapses the headsigns of all trips of one route
// direction into a single label. Routes with a direction override already
// carry their labels and are skipped.
type HeadsignMerger struct {
	Resolver     *headsign.Resolver
	Matcher      *anchors.Matcher
	Routes       *RouteTable
	ShowWarnings bool
}

// Run this HeadsignMerger on some feed
func (hm HeadsignMerger) Run(feed *gtfsparser.Feed) error {
	fmt.Fprintf(os.Stdout, "Merging headsigns per route direction... ")

	groups := make(map[routeDir][]*gtfs.Trip)

	for _, id := range sortedKeys(feed.Trips) {
		t := feed.Trips[id]
		info, ok := hm.Routes.Get(t.Route)
		if !ok || (hm.Matcher != nil && hm.Matcher.Has(info.ID)) {
			continue
		}
		k := routeDir{info.ID, tripDir(t)}
		groups[k] = append(groups[k], t)
	}

	keys := make([]routeDir, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareRouteDir)

	merged := 0
	rewritten := 0

	for _, k := range keys {
		observed := make([]string, 0)
		for _, t := range groups[k] {
			if t.Headsign != nil {
				observed = append(observed, *t.Headsign)
			}
		}

		label, err := hm.Resolver.Resolve(k.route, k.dir, observed)
		if err != nil {
			fmt.Fprintf(os.Stdout, "failed.\n")
			return err
		}

		if len(label) == 0 {
			continue
		}

		distinct := slices.Compact(sortedStrings(observed))
		if len(distinct) > 1 {
			merged++
			if hm.ShowWarnings {
				fmt.Fprintf(os.Stdout, "\n  route %d, direction %d: [%s] -> %s", k.route, k.dir, strings.Join(distinct, ", "), label)
			}
		}

		for _, t := range groups[k] {
			if t.Headsign == nil || *t.Headsign != label {
				l := label
				t.Headsign = &l
				rewritten++
			}
		}
	}

	if hm.ShowWarnings && merged > 0 {
		fmt.Fprintf(os.Stdout, "\n... ")
	}

	fmt.Fprintf(os.Stdout, "done. (%d route directions, %d merged, %d trip headsigns rewritten)\n", len(keys), merged, rewritten)

	return nil
}

func sortedStrings(l []string) []string {
	ret := slices.Clone(l)
	slices.Sort(ret)
	return ret
}
