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

// OrphanRemover removes entities that are no longer referenced after trips
// and routes were dropped by the earlier stages
type OrphanRemover struct {
}

// Run the OrphanRemover on some feed
func (or OrphanRemover) Run(feed *gtfsparser.Feed) error {
	fmt.Fprintf(os.Stdout, "Removing unreferenced entries... ")

	tripsB := len(feed.Trips)
	stopsB := len(feed.Stops)
	shapesB := len(feed.Shapes)
	serviceB := len(feed.Services)
	routesB := len(feed.Routes)
	agenciesB := len(feed.Agencies)

	or.removeTripOrphans(feed)

	// stop deletion can create new stop orphans (parent_station)
	or.removeStopOrphans(feed)
	or.removeStopOrphans(feed)

	or.removeShapeOrphans(feed)
	or.removeServiceOrphans(feed)
	or.removeRouteOrphans(feed)
	or.removeAgencyOrphans(feed)

	feed.CleanTransfers()

	fmt.Fprintf(os.Stdout, "done. (-%d trips [-%.2f%%], -%d stops [-%.2f%%], -%d shapes [-%.2f%%], -%d services [-%.2f%%], -%d routes [-%.2f%%], -%d agencies [-%.2f%%])\n",
		tripsB-len(feed.Trips), percent(tripsB-len(feed.Trips), tripsB),
		stopsB-len(feed.Stops), percent(stopsB-len(feed.Stops), stopsB),
		shapesB-len(feed.Shapes), percent(shapesB-len(feed.Shapes), shapesB),
		serviceB-len(feed.Services), percent(serviceB-len(feed.Services), serviceB),
		routesB-len(feed.Routes), percent(routesB-len(feed.Routes), routesB),
		agenciesB-len(feed.Agencies), percent(agenciesB-len(feed.Agencies), agenciesB))

	return nil
}

// trips without stop times cannot be classified or merged
func (or OrphanRemover) removeTripOrphans(feed *gtfsparser.Feed) {
	for _, id := range sortedKeys(feed.Trips) {
		t := feed.Trips[id]
		if len(t.StopTimes) == 0 && (t.Frequencies == nil || len(*t.Frequencies) == 0) {
			feed.DeleteTrip(id)
		}
	}
}

func (or OrphanRemover) removeStopOrphans(feed *gtfsparser.Feed) {
	referenced := make(map[*gtfs.Stop]empty)
	for _, t := range feed.Trips {
		for _, st := range t.StopTimes {
			referenced[st.Stop()] = empty{}
		}
	}

	for tk := range feed.Transfers {
		if tk.From_stop != nil {
			referenced[tk.From_stop] = empty{}
		}
		if tk.To_stop != nil {
			referenced[tk.To_stop] = empty{}
		}
	}

	for _, s := range feed.Stops {
		if s.Parent_station != nil {
			referenced[s.Parent_station] = empty{}
		}
	}

	for _, p := range feed.Pathways {
		if p.From_stop != nil {
			referenced[p.From_stop] = empty{}
		}
		if p.To_stop != nil {
			referenced[p.To_stop] = empty{}
		}
	}

	for _, id := range sortedKeys(feed.Stops) {
		s := feed.Stops[id]
		// keep entrances, they are never referenced by stop times
		if _, in := referenced[s]; !in && s.Location_type != 2 {
			feed.DeleteStop(id)
		}
	}
}

func (or OrphanRemover) removeShapeOrphans(feed *gtfsparser.Feed) {
	referenced := make(map[*gtfs.Shape]empty)
	for _, t := range feed.Trips {
		if t.Shape != nil {
			referenced[t.Shape] = empty{}
		}
	}

	for _, id := range sortedKeys(feed.Shapes) {
		if _, in := referenced[feed.Shapes[id]]; !in {
			feed.DeleteShape(id)
		}
	}
}

func (or OrphanRemover) removeServiceOrphans(feed *gtfsparser.Feed) {
	referenced := make(map[*gtfs.Service]empty)
	for _, t := range feed.Trips {
		referenced[t.Service] = empty{}
	}

	for _, id := range sortedKeys(feed.Services) {
		if _, in := referenced[feed.Services[id]]; !in {
			feed.DeleteService(id)
		}
	}
}

func (or OrphanRemover) removeRouteOrphans(feed *gtfsparser.Feed) {
	referenced := make(map[*gtfs.Route]empty)
	for _, t := range feed.Trips {
		referenced[t.Route] = empty{}
	}

	for _, fa := range feed.FareAttributes {
		for _, fr := range fa.Rules {
			if fr.Route != nil {
				referenced[fr.Route] = empty{}
			}
		}
	}

	for _, id := range sortedKeys(feed.Routes) {
		if _, in := referenced[feed.Routes[id]]; !in {
			feed.DeleteRoute(id)
		}
	}
}

func (or OrphanRemover) removeAgencyOrphans(feed *gtfsparser.Feed) {
	referenced := make(map[*gtfs.Agency]empty)
	for _, r := range feed.Routes {
		if r.Agency != nil {
			referenced[r.Agency] = empty{}
		}
	}

	for _, fa := range feed.FareAttributes {
		if fa.Agency != nil {
			referenced[fa.Agency] = empty{}
		}
	}

	for _, id := range sortedKeys(feed.Agencies) {
		if _, in := referenced[feed.Agencies[id]]; !in {
			feed.DeleteAgency(id)
		}
	}
}
