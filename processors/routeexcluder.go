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
)

// RouteExcluder removes routes that are published in the feed but are not
// part of the bus network (rail, ferry), together with their trips
type RouteExcluder struct {
	Excluded func(shortName string) bool
}

// Run this RouteExcluder on some feed
func (re RouteExcluder) Run(feed *gtfsparser.Feed) error {
	fmt.Fprintf(os.Stdout, "Removing excluded routes... ")

	tripsB := len(feed.Trips)
	routesB := len(feed.Routes)

	excluded := make(map[*gtfs.Route]empty)
	for _, id := range sortedKeys(feed.Routes) {
		r := feed.Routes[id]
		if re.Excluded != nil && re.Excluded(strings.TrimSpace(r.Short_name)) {
			excluded[r] = empty{}
		}
	}

	for _, id := range sortedKeys(feed.Trips) {
		if _, ok := excluded[feed.Trips[id].Route]; ok {
			feed.DeleteTrip(id)
		}
	}

	for _, id := range sortedKeys(feed.Routes) {
		if _, ok := excluded[feed.Routes[id]]; ok {
			feed.DeleteRoute(id)
		}
	}

	fmt.Fprintf(os.Stdout, "done. (-%d routes [-%.2f%%], -%d trips [-%.2f%%])\n",
		routesB-len(feed.Routes),
		percent(routesB-len(feed.Routes), routesB),
		tripsB-len(feed.Trips),
		percent(tripsB-len(feed.Trips), tripsB))

	return nil
}
