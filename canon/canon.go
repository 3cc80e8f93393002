// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package canon rewrites rider facing strings (trip headsigns, stop names,
// route long names) into a small, stable vocabulary.
//
// Canonicalization is an explicit, ordered list of rules. The order is part
// of the contract: several rules match overlapping text, and moving one of
// them changes the output (the acronym table has to run before the
// title-caser, the connector rule before the qualifier stripper, and so on).
// Every rule is applied to the whole string before the next one starts.
package canon

import (
	"regexp"
	"strings"
)

// Kind selects which rules of the pipeline apply
type Kind uint8

const (
	Headsign Kind = 1 << iota
	StopName
	RouteName
)

// AllKinds matches every kind of text
const AllKinds = Headsign | StopName | RouteName

func (k Kind) String() string {
	switch k {
	case Headsign:
		return "headsign"
	case StopName:
		return "stopName"
	case RouteName:
		return "routeName"
	}
	return "mixed"
}

// ParseKind returns the Kind for its String() form
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "headsign":
		return Headsign, true
	case "stopName":
		return StopName, true
	case "routeName":
		return RouteName, true
	}
	return 0, false
}

// Context carries the route a text belongs to. The zero value is valid, the
// route dependent rules are then skipped.
type Context struct {
	RouteLongName string
}

// Rule is one rewrite step. Either Pattern (with Replacement) or Apply is set.
type Rule struct {
	Step        int
	Name        string
	Kinds       Kind
	Pattern     *regexp.Regexp
	Replacement string
	Apply       func(s string, ctx Context) string
}

func (r Rule) run(s string, ctx Context) string {
	if r.Apply != nil {
		return r.Apply(s, ctx)
	}
	return r.Pattern.ReplaceAllString(s, r.Replacement)
}

// Canonicalizer applies an ordered rule list
type Canonicalizer struct {
	rules     []Rule
	caseWords map[string]string
}

// New builds the canonicalizer for the given tables
func New(t Tables) *Canonicalizer {
	c := &Canonicalizer{caseWords: make(map[string]string, len(t.CaseWords))}
	for k, v := range t.CaseWords {
		c.caseWords[strings.ToLower(k)] = v
	}
	c.rules = c.pipeline(t.Abbreviations)
	return c
}

// Default returns a canonicalizer using DefaultTables()
func Default() *Canonicalizer {
	return New(DefaultTables())
}

// Rules returns the rule list in application order
func (c *Canonicalizer) Rules() []Rule {
	ret := make([]Rule, len(c.rules))
	copy(ret, c.rules)
	return ret
}

// Canonicalize rewrites raw without any route context
func (c *Canonicalizer) Canonicalize(kind Kind, raw string) string {
	return c.CanonicalizeFor(kind, raw, Context{})
}

// CanonicalizeFor rewrites raw, using ctx for the route dependent rules
func (c *Canonicalizer) CanonicalizeFor(kind Kind, raw string, ctx Context) string {
	s := raw
	for _, r := range c.rules {
		if r.Kinds&kind == 0 {
			continue
		}
		s = r.run(s, ctx)
	}
	return s
}

// Trace returns the intermediate result after every applied rule, keyed
// by rule name. Used by --show-warnings to explain a rewrite.
func (c *Canonicalizer) Trace(kind Kind, raw string, ctx Context) [][2]string {
	ret := make([][2]string, 0)
	s := raw
	for _, r := range c.rules {
		if r.Kinds&kind == 0 {
			continue
		}
		n := r.run(s, ctx)
		if n != s {
			ret = append(ret, [2]string{r.Name, n})
		}
		s = n
	}
	return ret
}
