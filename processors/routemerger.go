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
	"golang.org/x/exp/slices"
)

// RouteMerger merges feed routes which resolved to the same stable route
// identity, like a route code published once per operating agency
type RouteMerger struct {
	Routes *RouteTable
}

// Run this RouteMerger on some feed
func (rm RouteMerger) Run(feed *gtfsparser.Feed) error {
	fmt.Fprintf(os.Stdout, "Merging routes with equal identities... ")
	bef := len(feed.Routes)

	trips := make(map[*gtfs.Route][]*gtfs.Trip, len(feed.Routes))
	for _, id := range sortedKeys(feed.Trips) {
		t := feed.Trips[id]
		trips[t.Route] = append(trips[t.Route], t)
	}

	byIdent := make(map[int64][]*gtfs.Route)
	idents := make([]int64, 0)

	for _, id := range sortedKeys(feed.Routes) {
		r := feed.Routes[id]
		info, ok := rm.Routes.Get(r)
		if !ok {
			continue
		}
		if _, ok := byIdent[info.ID]; !ok {
			idents = append(idents, info.ID)
		}
		byIdent[info.ID] = append(byIdent[info.ID], r)
	}

	slices.Sort(idents)

	for _, ident := range idents {
		if routes := byIdent[ident]; len(routes) > 1 {
			rm.combineRoutes(feed, routes, trips)
		}
	}

	// delete transfers
	feed.CleanTransfers()

	fmt.Fprintf(os.Stdout, "done. (-%d routes [-%.2f%%])\n",
		bef-len(feed.Routes), percent(bef-len(feed.Routes), bef))

	return nil
}

// combineRoutes moves everything of routes onto the route with the shortest
// id and deletes the others. routes must be sorted by id.
func (rm RouteMerger) combineRoutes(feed *gtfsparser.Feed, routes []*gtfs.Route, trips map[*gtfs.Route][]*gtfs.Trip) {
	ref := routes[0]

	for _, r := range routes {
		if len(r.Id) < len(ref.Id) {
			ref = r
		}
	}

	for _, r := range routes {
		if r == ref {
			continue
		}

		for _, t := range trips[r] {
			if t.Route == r {
				t.Route = ref
			}
		}

		ref.Attributions = append(ref.Attributions, r.Attributions...)

		// the fare rules of ref stay valid for the merged trips
		for _, faId := range sortedKeys(feed.FareAttributes) {
			fa := feed.FareAttributes[faId]
			rules := make([]*gtfs.FareAttributeRule, 0, len(fa.Rules))
			for _, fr := range fa.Rules {
				if fr.Route != r {
					rules = append(rules, fr)
				}
			}

			if len(rules) == 0 && len(fa.Rules) != 0 {
				feed.DeleteFareAttribute(fa.Id)
			} else {
				fa.Rules = rules
			}
		}

		rm.Routes.remove(r)
		feed.DeleteRoute(r.Id)
	}
}
