// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"fmt"
	"os"
	"strconv"

	"github.com/patrickbr/gtfsparser"
	gtfs "github.com/patrickbr/gtfsparser/gtfs"
	"github.com/patrickbr/gtfscanon/errkind"
)

// RouteIdRewriter replaces the route ids by the stable route identities.
// Routes sharing an identity must have been merged before.
type RouteIdRewriter struct {
	Routes *RouteTable
}

// Run this RouteIdRewriter on some feed
func (rr RouteIdRewriter) Run(feed *gtfsparser.Feed) error {
	fmt.Fprintf(os.Stdout, "Rewriting route IDs... ")

	newMap := make(map[string]*gtfs.Route, len(feed.Routes))
	renamed := make(map[string]string, len(feed.Routes))
	changed := 0

	for _, id := range sortedKeys(feed.Routes) {
		r := feed.Routes[id]
		newId := id
		if info, ok := rr.Routes.Get(r); ok {
			newId = strconv.FormatInt(info.ID, 10)
		}

		if other, ok := newMap[newId]; ok {
			fmt.Fprintf(os.Stdout, "failed.\n")
			return fmt.Errorf("route '%s' has the stable id %s of route code '%s': %w", id, newId, other.Short_name, errkind.ErrConfigGap)
		}

		if newId != id {
			changed++
		}

		r.Id = newId
		newMap[newId] = r
		renamed[id] = newId
	}

	feed.Routes = newMap

	for _, fld := range sortedKeys(feed.RoutesAddFlds) {
		vals := make(map[string]string, len(feed.RoutesAddFlds[fld]))
		for oldId, v := range feed.RoutesAddFlds[fld] {
			if newId, ok := renamed[oldId]; ok {
				vals[newId] = v
			}
		}
		feed.RoutesAddFlds[fld] = vals
	}

	fmt.Fprintf(os.Stdout, "done. (%d routes renamed)\n", changed)

	return nil
}
