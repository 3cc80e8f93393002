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
	"github.com/patrickbr/gtfscanon/canon"
	"github.com/patrickbr/gtfscanon/routeid"
)

// RouteIdentifier resolves the stable identity of every route and writes
// the display short name, the cleaned long name and the route color
type RouteIdentifier struct {
	Resolver *routeid.Resolver
	Canon    *canon.Canonicalizer
	Color    func(family rune, longName string) string
	Routes   *RouteTable
}

// Run this RouteIdentifier on some feed
func (ri RouteIdentifier) Run(feed *gtfsparser.Feed) error {
	fmt.Fprintf(os.Stdout, "Resolving stable route identities... ")

	colored := 0

	for _, id := range sortedKeys(feed.Routes) {
		r := feed.Routes[id]

		raw := strings.TrimSpace(r.Short_name)
		if len(raw) == 0 {
			raw = r.Id
		}

		ident, err := ri.Resolver.Resolve(raw)
		if err != nil {
			return fmt.Errorf("route '%s': %w", id, err)
		}

		info := RouteInfo{Identity: ident, RawLongName: r.Long_name}
		if b, ok := ri.Resolver.Family(raw); ok {
			info.Family = b.Prefix
		}

		if err := ri.Routes.add(r, info); err != nil {
			return fmt.Errorf("route '%s': %w", id, err)
		}

		r.Short_name = ident.ShortName
		if ri.Canon != nil {
			r.Long_name = ri.Canon.Canonicalize(canon.RouteName, r.Long_name)
		}

		if ri.Color != nil {
			if c := ri.Color(info.Family, info.RawLongName); len(c) > 0 {
				r.Color = c
				colored++
			}
		}
	}

	fmt.Fprintf(os.Stdout, "done. (%d routes, %d colored)\n", ri.Routes.Len(), colored)

	return nil
}
