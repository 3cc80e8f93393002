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
)

// TripHeadsigner assigns trips without a headsign a headsign based
// on the first stop time headsign or the last stop, so that every trip
// takes part in headsign merging
type TripHeadsigner struct {
}

// Run this TripHeadsigner on some feed
func (th TripHeadsigner) Run(feed *gtfsparser.Feed) error {
	fmt.Fprintf(os.Stdout, "Adding missing headsigns to all trips... ")

	added := 0

	for _, id := range sortedKeys(feed.Trips) {
		t := feed.Trips[id]
		if len(t.StopTimes) == 0 {
			continue
		}
		if t.Headsign != nil && len(*t.Headsign) != 0 {
			continue
		}

		// first, check if first stoptime has a headsign
		if h := t.StopTimes[0].Headsign(); h != nil && len(*h) != 0 {
			hs := *h
			t.Headsign = &hs
			added++
			continue
		}

		last := t.StopTimes[len(t.StopTimes)-1].Stop()
		if last == nil {
			continue
		}

		// next, the parent station of the last stop
		if last.Parent_station != nil && len(last.Parent_station.Name) != 0 {
			hs := last.Parent_station.Name
			t.Headsign = &hs
			added++
			continue
		}

		// as a fallback, use the name of the last stop, if non-empty
		if len(last.Name) != 0 {
			hs := last.Name
			t.Headsign = &hs
			added++
		}
	}

	fmt.Fprintf(os.Stdout, "done. (+%d headsigns)\n", added)

	return nil
}
