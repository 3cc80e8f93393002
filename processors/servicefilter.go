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
)

// ServiceFilter removes trips whose service is never in service. Combined
// with the parser's date filter this keeps only trips running in the
// requested period.
type ServiceFilter struct {
}

// Run this ServiceFilter on some feed
func (sf ServiceFilter) Run(feed *gtfsparser.Feed) error {
	fmt.Fprintf(os.Stdout, "Removing trips without active service days... ")

	tripsB := len(feed.Trips)
	active := make(map[*gtfs.Service]bool, len(feed.Services))

	for _, id := range sortedKeys(feed.Trips) {
		t := feed.Trips[id]
		if t.Service == nil {
			feed.DeleteTrip(id)
			continue
		}

		isActive, ok := active[t.Service]
		if !ok {
			isActive = hasActiveDay(t.Service)
			active[t.Service] = isActive
		}

		if !isActive {
			feed.DeleteTrip(id)
		}
	}

	fmt.Fprintf(os.Stdout, "done. (-%d trips [-%.2f%%])\n",
		tripsB-len(feed.Trips),
		percent(tripsB-len(feed.Trips), tripsB))

	return nil
}

// hasActiveDay returns true if service is active on at least one day
func hasActiveDay(service *gtfs.Service) bool {
	cur := service.GetFirstDefinedDate()
	last := service.GetLastDefinedDate()

	for cur.GetTime().Before(last.GetTime()) || cur.GetTime() == last.GetTime() {
		if service.IsActiveOn(cur) {
			return true
		}
		cur = cur.GetOffsettedDate(1)
	}

	return false
}
