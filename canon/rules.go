// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package canon

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	slashes           = regexp.MustCompile(`\s*/\s*`)
	leadingRouteToken = regexp.MustCompile(`^("?)([a-z]?[0-9]{1,3})\s+(\S.*)$`)
	toSeparator       = regexp.MustCompile(`\bto\b`)
	viaSeparator      = regexp.MustCompile(`\bvia\b`)
	qualifiers        = regexp.MustCompile(`(?:-\s*)?\b(?:express|special|only|nightbus|b-line)\b(?:\s*-)?`)
	specialWord       = regexp.MustCompile(`\bspecial\b`)
	titleWord         = regexp.MustCompile(`[a-z0-9']+`)
	connectors        = `\s*(?:&|@|\band\b|\bat\b|\bfs\b|\bns\b)\s*`
)

// pipeline returns the full rule list, in application order
func (c *Canonicalizer) pipeline(abbrs []Abbreviation) []Rule {
	rules := []Rule{
		// 1
		{Step: 1, Name: "lowercase", Kinds: AllKinds, Apply: lowercase},

		// 2
		{Step: 2, Name: "slashes", Kinds: AllKinds, Pattern: slashes, Replacement: " / "},

		// 3
		{Step: 3, Name: "route-number", Kinds: Headsign, Apply: stripRouteNumber},

		// 4
		{Step: 4, Name: "to-via", Kinds: Headsign, Apply: keepDestination},
		{Step: 4, Name: "last-slash-segment", Kinds: Headsign, Pattern: regexp.MustCompile(`^.* / `), Replacement: ""},

		// 5
		{Step: 5, Name: "connectors-and", Kinds: Headsign, Pattern: regexp.MustCompile(connectors), Replacement: " & "},
		{Step: 5, Name: "connectors-at", Kinds: StopName, Pattern: regexp.MustCompile(connectors), Replacement: " / "},
	}

	// 6
	for _, a := range abbrs {
		if len(a.Words) == 0 {
			continue
		}
		kinds := a.Kinds
		if kinds == 0 {
			kinds = Headsign | StopName
		}
		rules = append(rules, Rule{
			Step:        6,
			Name:        "abbr-" + a.Short,
			Kinds:       kinds,
			Pattern:     wordPattern(a.Words),
			Replacement: strings.ReplaceAll(a.Short, "$", "$$"),
		})
	}

	rules = append(rules, []Rule{
		// 7
		{Step: 7, Name: "unloading", Kinds: Headsign | StopName, Pattern: regexp.MustCompile(`\s*\bunloading(?:\s+only)?\s*$`), Replacement: ""},
		{Step: 7, Name: "leading-quote", Kinds: Headsign | StopName, Pattern: regexp.MustCompile(`^"+\s*`), Replacement: ""},
		{Step: 7, Name: "trailing-quote", Kinds: Headsign | StopName, Pattern: regexp.MustCompile(`\s*"+;?\s*$`), Replacement: ""},
		{Step: 7, Name: "bound-designator", Kinds: StopName, Pattern: regexp.MustCompile(`^(?:eb|wb|nb|sb)\s+`), Replacement: ""},
		{Step: 7, Name: "bay-designator", Kinds: Headsign, Pattern: regexp.MustCompile(`^bay\s+[0-9]+[a-z]?\s*(?:-\s*)?`), Replacement: ""},
		{Step: 7, Name: "flagstop", Kinds: StopName, Pattern: regexp.MustCompile(`^flagstop\s*(\S.*)$`), Replacement: "$1 (flagstop)"},
		{Step: 7, Name: "qualifiers", Kinds: Headsign, Apply: stripQualifiers},

		// 8
		{Step: 8, Name: "dash-runs", Kinds: AllKinds, Pattern: regexp.MustCompile(`-{2,}`), Replacement: "-"},
		{Step: 8, Name: "leading-dash", Kinds: AllKinds, Pattern: regexp.MustCompile(`^[\s-]*-\s*`), Replacement: ""},
		{Step: 8, Name: "trailing-dash", Kinds: AllKinds, Pattern: regexp.MustCompile(`\s*-[\s-]*$`), Replacement: ""},
		{Step: 8, Name: "inner-dash", Kinds: AllKinds, Pattern: regexp.MustCompile(`\s+-\s*|\s*-\s+`), Replacement: " - "},

		// 9
		{Step: 9, Name: "title-case", Kinds: AllKinds, Apply: c.titleCase},

		// 10
		{Step: 10, Name: "points", Kinds: AllKinds, Pattern: regexp.MustCompile(`\.`), Replacement: ""},
		{Step: 10, Name: "empty-parens", Kinds: AllKinds, Pattern: regexp.MustCompile(`\(\s*\)`), Replacement: ""},
		{Step: 10, Name: "paren-spacing", Kinds: AllKinds, Pattern: regexp.MustCompile(`\(\s+`), Replacement: "("},
		{Step: 10, Name: "paren-spacing-close", Kinds: AllKinds, Pattern: regexp.MustCompile(`\s+\)`), Replacement: ")"},
		{Step: 10, Name: "slash-runs", Kinds: AllKinds, Pattern: regexp.MustCompile(`(?:\s*/\s*){2,}`), Replacement: " / "},
		{Step: 10, Name: "amp-runs", Kinds: AllKinds, Pattern: regexp.MustCompile(`(?:\s*&\s*){2,}`), Replacement: " & "},
		{Step: 10, Name: "spaces", Kinds: AllKinds, Pattern: regexp.MustCompile(`\s+`), Replacement: " "},
		{Step: 10, Name: "trim", Kinds: AllKinds, Pattern: regexp.MustCompile(`^[\s/&,;:-]+|[\s/&,;:-]+$`), Replacement: ""},
	}...)

	return rules
}

// wordPattern matches any of words as whole words, spaces inside a word
// match any run of whitespace
func wordPattern(words []string) *regexp.Regexp {
	alts := make([]string, 0, len(words))
	for _, w := range words {
		parts := strings.Fields(strings.ToLower(w))
		for i := range parts {
			parts[i] = regexp.QuoteMeta(parts[i])
		}
		alts = append(alts, strings.Join(parts, `\s+`))
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
}

func lowercase(s string, _ Context) string {
	return strings.ToLower(unidecode.Unidecode(s))
}

// stripRouteNumber removes a leading route code, like the "99" in
// "99 B-Line to UBC" or the "N19" in "N19 Nightbus"
func stripRouteNumber(s string, _ Context) string {
	return leadingRouteToken.ReplaceAllString(s, "$1$3")
}

// keepDestination reduces "A to B" and "A via B" to the side carrying the
// destination. The side equal to the route's long name is dropped, if
// neither side is, the part after "to" and the part before "via" is kept.
func keepDestination(s string, ctx Context) string {
	long := squash(slashes.ReplaceAllString(lowercase(ctx.RouteLongName, ctx), " / "))

	s = splitKeep(s, toSeparator, long, false)
	s = splitKeep(s, viaSeparator, long, true)

	return s
}

func splitKeep(s string, sep *regexp.Regexp, long string, preferBefore bool) string {
	loc := sep.FindStringIndex(s)
	if loc == nil {
		return s
	}

	before := squash(s[:loc[0]])
	after := squash(s[loc[1]:])

	if len(long) > 0 && before == long {
		return after
	}

	if len(long) > 0 && after == long {
		return before
	}

	if preferBefore {
		if len(before) == 0 {
			return after
		}
		return before
	}

	if len(after) == 0 {
		return before
	}
	return after
}

// stripQualifiers removes words that carry no destination. A text made of
// qualifiers only is reduced to "special" if it contains it, otherwise
// kept as is.
func stripQualifiers(s string, _ Context) string {
	ret := qualifiers.ReplaceAllString(s, " ")
	if len(strings.Trim(ret, " -")) > 0 {
		return ret
	}
	if specialWord.MatchString(s) {
		return "special"
	}
	return s
}

func (c *Canonicalizer) titleCase(s string, _ Context) string {
	return titleWord.ReplaceAllStringFunc(s, func(w string) string {
		if fixed, ok := c.caseWords[w]; ok {
			return fixed
		}
		if w[0] >= 'a' && w[0] <= 'z' {
			return strings.ToUpper(w[:1]) + w[1:]
		}
		return w
	})
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
