// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package config

// Family is the offset band of one route family
type Family struct {
	Prefix string `yaml:"prefix" validate:"required,len=1,uppercase"`
	Name   string `yaml:"name" validate:"required"`
	Offset int64  `yaml:"offset" validate:"gt=0"`
	Color  string `yaml:"color" validate:"omitempty,len=6,hexadecimal"`
}

// ColorMarker colors every route whose long name contains Contains
type ColorMarker struct {
	Contains string `yaml:"contains" validate:"required"`
	Color    string `yaml:"color" validate:"len=6,hexadecimal"`
}

// Colors contains the route color rules
type Colors struct {
	Default         string        `yaml:"default" validate:"omitempty,len=6,hexadecimal"`
	LongNameMarkers []ColorMarker `yaml:"longNameMarkers" validate:"dive"`
}

// Direction is one direction of a route override
type Direction struct {
	Label   string   `yaml:"label" validate:"required"`
	Anchors []string `yaml:"anchors" validate:"min=1,dive,required"`
}

// Override splits the trips of one route by anchor stops
type Override struct {
	RouteID    int64       `yaml:"routeId" validate:"gte=0"`
	Directions []Direction `yaml:"directions" validate:"len=2,dive"`
}

// HeadsignRule merges an exact set of observed headsigns into Label. A
// missing Direction matches both directions.
type HeadsignRule struct {
	RouteID   int64    `yaml:"routeId" validate:"gte=0"`
	Direction *int     `yaml:"direction" validate:"omitempty,oneof=0 1"`
	Headsigns []string `yaml:"headsigns" validate:"min=2,unique,dive,required"`
	Label     string   `yaml:"label" validate:"required"`
}

// Abbreviation is an entry of the canonicalizer's abbreviation table
type Abbreviation struct {
	Words []string `yaml:"words" validate:"min=1,dive,required"`
	Short string   `yaml:"short" validate:"required"`
	Kinds []string `yaml:"kinds" validate:"dive,oneof=headsign stopName routeName"`
}

// Config is the root of the configuration tables
type Config struct {
	BandWidth      int64             `yaml:"bandWidth" validate:"gte=0"`
	Families       []Family          `yaml:"families" validate:"dive"`
	ExcludedRoutes []string          `yaml:"excludedRoutes" validate:"dive,required"`
	Colors         Colors            `yaml:"colors"`
	Overrides      []Override        `yaml:"overrides" validate:"dive"`
	HeadsignRules  []HeadsignRule    `yaml:"headsignRules" validate:"dive"`
	Abbreviations  []Abbreviation    `yaml:"abbreviations" validate:"dive"`
	CaseWords      map[string]string `yaml:"caseWords" validate:"dive,keys,required,endkeys,required"`
}
