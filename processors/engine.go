// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"github.com/patrickbr/gtfsparser"
	"github.com/patrickbr/gtfscanon/anchors"
	"github.com/patrickbr/gtfscanon/canon"
	"github.com/patrickbr/gtfscanon/config"
	"github.com/patrickbr/gtfscanon/headsign"
	"github.com/patrickbr/gtfscanon/routeid"
)

// Options control the optional stages of an Engine
type Options struct {
	RewriteRouteIDs bool
	ShowWarnings    bool
}

// Engine runs the canonicalization stages over a feed, in order
type Engine struct {
	Routes    *RouteTable
	Resolver  *routeid.Resolver
	Canon     *canon.Canonicalizer
	Matcher   *anchors.Matcher
	Merger    *headsign.Resolver
	collector *DirectionCollector
	procs     []Processor
}

// NewEngine builds all lookup tables of cfg and the processor list
func NewEngine(cfg *config.Config, opts Options) (*Engine, error) {
	resolver, err := routeid.NewResolver(cfg.BandWidth, cfg.Bands())
	if err != nil {
		return nil, err
	}

	tables, err := cfg.Tables()
	if err != nil {
		return nil, err
	}

	matcher, err := anchors.NewMatcher(cfg.AnchorOverrides())
	if err != nil {
		return nil, err
	}

	merger, err := headsign.NewResolver(cfg.MergeRules())
	if err != nil {
		return nil, err
	}

	e := &Engine{
		Routes:   NewRouteTable(),
		Resolver: resolver,
		Canon:    canon.New(tables),
		Matcher:  matcher,
		Merger:   merger,
	}

	e.collector = &DirectionCollector{Matcher: e.Matcher, Routes: e.Routes}

	e.procs = []Processor{
		ServiceFilter{},
		RouteExcluder{Excluded: cfg.Excluded},
		OrphanRemover{},
		TripHeadsigner{},
		RouteIdentifier{Resolver: e.Resolver, Canon: e.Canon, Color: cfg.RouteColor, Routes: e.Routes},
		RouteMerger{Routes: e.Routes},
	}

	if opts.RewriteRouteIDs {
		e.procs = append(e.procs, RouteIdRewriter{Routes: e.Routes})
	}

	e.procs = append(e.procs,
		TextCanonicalizer{Canon: e.Canon, Routes: e.Routes, ShowWarnings: opts.ShowWarnings},
		DirectionSplitter{Matcher: e.Matcher, Routes: e.Routes, ShowWarnings: opts.ShowWarnings},
		HeadsignMerger{Resolver: e.Merger, Matcher: e.Matcher, Routes: e.Routes, ShowWarnings: opts.ShowWarnings},
		e.collector,
	)

	return e, nil
}

// Processors returns the stages in the order Run applies them
func (e *Engine) Processors() []Processor {
	return e.procs
}

// Run applies all stages to feed and stops at the first error. On error
// the feed is left partially processed and must not be written.
func (e *Engine) Run(feed *gtfsparser.Feed) error {
	for _, p := range e.procs {
		if err := p.Run(feed); err != nil {
			return err
		}
	}
	return nil
}

// Directions returns the canonical directions found by the last Run
func (e *Engine) Directions() []Direction {
	return e.collector.Directions
}
