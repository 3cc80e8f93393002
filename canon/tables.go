// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package canon

// Abbreviation collapses any of Words into Short. Words are matched as
// whole, lower-cased words.
type Abbreviation struct {
	Words []string
	Short string
	Kinds Kind
}

// Tables are the data driven parts of the pipeline
type Tables struct {
	// applied in order in step 6
	Abbreviations []Abbreviation

	// lower-case word -> fixed display form, used by the title-caser
	CaseWords map[string]string
}

// DefaultAbbreviations is the abbreviation table used for the TransLink feed
var DefaultAbbreviations = []Abbreviation{
	// acronyms first, their spelled out variants contain other table words
	{Words: []string{"sfu", "s f u"}, Short: "sfu", Kinds: AllKinds},
	{Words: []string{"ubc", "u b c"}, Short: "ubc", Kinds: AllKinds},
	{Words: []string{"vcc", "v c c"}, Short: "vcc", Kinds: AllKinds},
	{Words: []string{"bcit", "b c i t"}, Short: "bcit", Kinds: AllKinds},
	{Words: []string{"brad stn"}, Short: "braid sta", Kinds: Headsign},
	{Words: []string{"central"}, Short: "ctrl", Kinds: Headsign | StopName},
	{Words: []string{"exchange", "exch"}, Short: "exch", Kinds: Headsign | StopName},
	{Words: []string{"university"}, Short: "u", Kinds: Headsign},
	{Words: []string{"port coquitlam", "pt coquitlam", "poco"}, Short: "poco", Kinds: Headsign},
	{Words: []string{"coquitlam", "coq"}, Short: "coq", Kinds: Headsign},
	{Words: []string{"station", "stn", "sta"}, Short: "sta", Kinds: Headsign | StopName},
	{Words: []string{"surrey"}, Short: "sry", Kinds: Headsign},
	{Words: []string{"port"}, Short: "pt", Kinds: Headsign},
	{Words: []string{"eastbound"}, Short: "eb", Kinds: Headsign | StopName},
	{Words: []string{"westbound"}, Short: "wb", Kinds: Headsign | StopName},
	{Words: []string{"northbound"}, Short: "nb", Kinds: Headsign | StopName},
	{Words: []string{"southbound"}, Short: "sb", Kinds: Headsign | StopName},
	{Words: []string{"street"}, Short: "st", Kinds: Headsign | StopName},
	{Words: []string{"avenue"}, Short: "ave", Kinds: Headsign | StopName},
	{Words: []string{"drive"}, Short: "dr", Kinds: Headsign | StopName},
	{Words: []string{"road"}, Short: "rd", Kinds: Headsign | StopName},
	{Words: []string{"boulevard"}, Short: "blvd", Kinds: Headsign | StopName},
	{Words: []string{"highway"}, Short: "hwy", Kinds: Headsign | StopName},
	{Words: []string{"parkway"}, Short: "pkwy", Kinds: Headsign | StopName},
	{Words: []string{"park"}, Short: "pk", Kinds: Headsign | StopName},
	{Words: []string{"centre", "center"}, Short: "ctr", Kinds: Headsign | StopName},
	{Words: []string{"circle"}, Short: "cir", Kinds: Headsign | StopName},
	{Words: []string{"court"}, Short: "ct", Kinds: Headsign | StopName},
	{Words: []string{"crescent"}, Short: "cres", Kinds: Headsign | StopName},
	{Words: []string{"heights"}, Short: "hts", Kinds: Headsign | StopName},
	{Words: []string{"hill"}, Short: "hl", Kinds: Headsign | StopName},
	{Words: []string{"lake"}, Short: "lk", Kinds: Headsign | StopName},
	{Words: []string{"lane"}, Short: "ln", Kinds: Headsign | StopName},
	{Words: []string{"mountain"}, Short: "mtn", Kinds: Headsign | StopName},
	{Words: []string{"place"}, Short: "pl", Kinds: Headsign | StopName},
	{Words: []string{"square"}, Short: "sq", Kinds: Headsign | StopName},
	{Words: []string{"terrace"}, Short: "terr", Kinds: Headsign | StopName},
	{Words: []string{"valley"}, Short: "vly", Kinds: Headsign | StopName},
	{Words: []string{"village"}, Short: "vlg", Kinds: Headsign | StopName},
}

// DefaultCaseWords are words the title-caser never touches
var DefaultCaseWords = map[string]string{
	"am":   "AM",
	"pm":   "PM",
	"ubc":  "UBC",
	"sfu":  "SFU",
	"vcc":  "VCC",
	"bcit": "BCIT",
	"pne":  "PNE",
	"poco": "PoCo",
	"eb":   "EB",
	"wb":   "WB",
	"nb":   "NB",
	"sb":   "SB",
	"ne":   "NE",
	"nw":   "NW",
	"se":   "SE",
	"sw":   "SW",
}

// DefaultTables returns a copy of the built-in tables
func DefaultTables() Tables {
	t := Tables{
		Abbreviations: make([]Abbreviation, len(DefaultAbbreviations)),
		CaseWords:     make(map[string]string, len(DefaultCaseWords)),
	}
	copy(t.Abbreviations, DefaultAbbreviations)
	for k, v := range DefaultCaseWords {
		t.CaseWords[k] = v
	}
	return t
}
