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
)

// DirectionSplitter assigns every trip of a route with a direction
// override to the direction whose anchor stops it visits, and gives the
// trip the label and direction id of that direction
type DirectionSplitter struct {
	Matcher      *anchors.Matcher
	Routes       *RouteTable
	ShowWarnings bool
}

// Run this DirectionSplitter on some feed
func (ds DirectionSplitter) Run(feed *gtfsparser.Feed) error {
	fmt.Fprintf(os.Stdout, "Splitting trips of overridden routes by anchor stops... ")

	classified := 0
	changed := 0
	counts := make(map[*anchors.Direction]int)

	for _, id := range sortedKeys(feed.Trips) {
		t := feed.Trips[id]

		info, ok := ds.Routes.Get(t.Route)
		if !ok || !ds.Matcher.Has(info.ID) {
			continue
		}

		d, err := ds.Matcher.Classify(anchorTrip(t, info.ID))
		if err != nil {
			fmt.Fprintf(os.Stdout, "failed.\n")
			return err
		}

		if int(t.Direction_id) != d.Index {
			changed++
		}

		label := d.Label
		t.Headsign = &label
		t.Direction_id = int8(d.Index)
		counts[d]++
		classified++
	}

	if ds.ShowWarnings {
		for _, routeID := range ds.Matcher.RouteIDs() {
			dirs, _ := ds.Matcher.Directions(routeID)
			for _, d := range dirs {
				if counts[d] > 0 {
					fmt.Fprintf(os.Stdout, "\n  %s: %d trips", d, counts[d])
				}
			}
		}
		if classified > 0 {
			fmt.Fprintf(os.Stdout, "\n... ")
		}
	}

	fmt.Fprintf(os.Stdout, "done. (%d trips classified, %d direction ids changed)\n", classified, changed)

	return nil
}

// anchorTrip returns the stop visits of t as seen by the anchor matcher
func anchorTrip(t *gtfs.Trip, routeID int64) anchors.Trip {
	at := anchors.Trip{ID: t.Id, RouteID: routeID, Stops: make([]anchors.TripStop, 0, len(t.StopTimes))}
	for _, st := range t.StopTimes {
		if st.Stop() == nil {
			continue
		}
		at.Stops = append(at.Stops, anchors.TripStop{StopID: st.Stop().Id, Sequence: int(st.Sequence())})
	}
	return at
}
