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
	"github.com/patrickbr/gtfscanon/canon"
)

// TextCanonicalizer rewrites every trip headsign, stop time headsign and
// stop name into its canonical form. Headsigns are rewritten with the
// context of their route, so RouteIdentifier must have run before.
type TextCanonicalizer struct {
	Canon        *canon.Canonicalizer
	Routes       *RouteTable
	ShowWarnings bool
}

// Run this TextCanonicalizer on some feed
func (tc TextCanonicalizer) Run(feed *gtfsparser.Feed) error {
	fmt.Fprintf(os.Stdout, "Canonicalizing headsigns and stop names... ")

	headsigns := 0
	stopNames := 0

	// identical input strings share one canonical string per route
	cache := make(map[canon.Context]map[string]*string)

	for _, id := range sortedKeys(feed.Trips) {
		t := feed.Trips[id]

		ctx := canon.Context{}
		if info, ok := tc.Routes.Get(t.Route); ok {
			ctx = canon.Context{RouteLongName: info.RawLongName}
		}

		if _, ok := cache[ctx]; !ok {
			cache[ctx] = make(map[string]*string)
		}

		if t.Headsign != nil {
			c := tc.headsign(cache[ctx], *t.Headsign, ctx)
			if *c != *t.Headsign {
				headsigns++
			}
			t.Headsign = c
		}

		for _, st := range t.StopTimes {
			h := st.Headsign()
			if h == nil || len(*h) == 0 {
				continue
			}
			if c := tc.headsign(cache[ctx], *h, ctx); *c != *h {
				st.SetHeadsign(c)
				headsigns++
			}
		}
	}

	for _, id := range sortedKeys(feed.Stops) {
		s := feed.Stops[id]
		c := tc.Canon.Canonicalize(canon.StopName, s.Name)
		if c != s.Name {
			if tc.ShowWarnings {
				fmt.Fprintf(os.Stdout, "\n  stop '%s': '%s' -> '%s'", id, s.Name, c)
			}
			s.Name = c
			stopNames++
		}
	}

	if tc.ShowWarnings && stopNames > 0 {
		fmt.Fprintf(os.Stdout, "\n... ")
	}

	fmt.Fprintf(os.Stdout, "done. (%d headsigns, %d stop names rewritten)\n", headsigns, stopNames)

	return nil
}

func (tc TextCanonicalizer) headsign(cache map[string]*string, raw string, ctx canon.Context) *string {
	if c, ok := cache[raw]; ok {
		return c
	}

	c := tc.Canon.CanonicalizeFor(canon.Headsign, raw, ctx)
	if tc.ShowWarnings && c != raw {
		fmt.Fprintf(os.Stdout, "\n  headsign '%s': '%s'", raw, c)
	}
	cache[raw] = &c
	return &c
}
