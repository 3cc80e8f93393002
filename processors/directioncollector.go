// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"fmt"
	"os"

	"github.com/patrickbr/gtfsparser"
	gtfs "github.com/patrickbr/gtfsparser/gtfs"
	"github.com/patrickbr/gtfscanon/anchors"
	"golang.org/x/exp/slices"
)

// Direction is one canonical direction of a route: the label all its trips
// carry and the stops its trips visit, merged into a single ordered list
type Direction struct {
	RouteID   int64
	RouteCode string
	ShortName string
	LongName  string
	Color     string
	Index     int
	Label     string
	Trips     int
	Stops     []*gtfs.Stop
}

// DirectionCollector builds the canonical directions of a processed feed.
// It must run after DirectionSplitter and HeadsignMerger.
type DirectionCollector struct {
	Matcher    *anchors.Matcher
	Routes     *RouteTable
	Directions []Direction
}

// Run this DirectionCollector on some feed
func (dc *DirectionCollector) Run(feed *gtfsparser.Feed) error {
	fmt.Fprintf(os.Stdout, "Collecting canonical route directions... ")

	type group struct {
		route *gtfs.Route
		trips []*gtfs.Trip
	}

	groups := make(map[routeDir]*group)

	for _, id := range sortedKeys(feed.Trips) {
		t := feed.Trips[id]
		info, ok := dc.Routes.Get(t.Route)
		if !ok {
			continue
		}
		k := routeDir{info.ID, tripDir(t)}
		if _, ok := groups[k]; !ok {
			groups[k] = &group{route: t.Route}
		}
		groups[k].trips = append(groups[k].trips, t)
	}

	keys := make([]routeDir, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareRouteDir)

	dc.Directions = make([]Direction, 0, len(keys))

	for _, k := range keys {
		g := groups[k]
		info, _ := dc.Routes.Get(g.route)

		var ad *anchors.Direction
		if dc.Matcher != nil {
			if dirs, ok := dc.Matcher.Directions(k.route); ok && k.dir < len(dirs) {
				ad = dirs[k.dir]
			}
		}

		stops := make(map[string]*gtfs.Stop)
		lists := make([][]string, 0, len(g.trips))
		for _, t := range g.trips {
			at := anchorTrip(t, k.route)
			for _, st := range t.StopTimes {
				if st.Stop() != nil {
					stops[st.Stop().Id] = st.Stop()
				}
			}
			lists = append(lists, orderedStops(at, ad))
		}

		d := Direction{
			RouteID:   k.route,
			RouteCode: info.RawCode,
			ShortName: g.route.Short_name,
			LongName:  g.route.Long_name,
			Color:     g.route.Color,
			Index:     k.dir,
			Trips:     len(g.trips),
		}

		if h := g.trips[0].Headsign; h != nil {
			d.Label = *h
		}
		if ad != nil {
			d.Label = ad.Label
		}

		for _, id := range anchors.MergeStops(lists) {
			d.Stops = append(d.Stops, stops[id])
		}

		dc.Directions = append(dc.Directions, d)
	}

	fmt.Fprintf(os.Stdout, "done. (%d directions of %d routes)\n", len(dc.Directions), dc.Routes.Len())

	return nil
}

// orderedStops returns the stop ids of a trip in visiting order, using
// the anchor comparator of d if the route is overridden
func orderedStops(t anchors.Trip, d *anchors.Direction) []string {
	visits := slices.Clone(t.Stops)
	if d != nil {
		d.Sort(visits)
	} else {
		slices.SortStableFunc(visits, func(a, b anchors.TripStop) int {
			return a.Sequence - b.Sequence
		})
	}

	ret := make([]string, len(visits))
	for i, v := range visits {
		ret[i] = v.StopID
	}
	return ret
}
