// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/patrickbr/gtfscanon/anchors"
	"github.com/patrickbr/gtfscanon/canon"
	"github.com/patrickbr/gtfscanon/errkind"
	"github.com/patrickbr/gtfscanon/headsign"
	"github.com/patrickbr/gtfscanon/routeid"
	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultTables []byte

// ValidationError is returned for configuration tables that cannot be used
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() []error {
	return []error{errkind.ErrConfigGap, e.Err}
}

// Load reads and validates the configuration tables at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Default returns the built-in TransLink tables
func Default() (*Config, error) {
	return Parse("(built-in)", defaultTables)
}

// Parse decodes and validates configuration tables, source only names them
// in error messages
func Parse(source string, data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ValidationError{source, err}
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, &ValidationError{source, err}
	}

	if err := cfg.check(); err != nil {
		return nil, &ValidationError{source, err}
	}

	return &cfg, nil
}

// check builds every table once, the table constructors report overlapping
// bands, bad overrides and conflicting headsign rules
func (cfg *Config) check() error {
	if _, err := routeid.NewResolver(cfg.BandWidth, cfg.Bands()); err != nil {
		return err
	}

	if _, err := anchors.NewMatcher(cfg.AnchorOverrides()); err != nil {
		return err
	}

	if _, err := headsign.NewResolver(cfg.MergeRules()); err != nil {
		return err
	}

	if _, err := cfg.Tables(); err != nil {
		return err
	}

	return nil
}

// Bands returns the family offset bands
func (cfg *Config) Bands() []routeid.Band {
	ret := make([]routeid.Band, 0, len(cfg.Families))
	for _, f := range cfg.Families {
		r, _ := utf8.DecodeRuneInString(f.Prefix)
		ret = append(ret, routeid.Band{Prefix: r, Name: f.Name, Offset: f.Offset})
	}
	return ret
}

// AnchorOverrides returns the direction overrides
func (cfg *Config) AnchorOverrides() []anchors.Override {
	ret := make([]anchors.Override, 0, len(cfg.Overrides))
	for _, o := range cfg.Overrides {
		ao := anchors.Override{RouteID: o.RouteID}
		for i := 0; i < len(o.Directions) && i < 2; i++ {
			ao.Directions[i] = anchors.DirectionSpec{Label: o.Directions[i].Label, Anchors: o.Directions[i].Anchors}
		}
		ret = append(ret, ao)
	}
	return ret
}

// MergeRules returns the headsign equivalence rules
func (cfg *Config) MergeRules() []headsign.Rule {
	ret := make([]headsign.Rule, 0, len(cfg.HeadsignRules))
	for _, r := range cfg.HeadsignRules {
		dir := headsign.AnyDirection
		if r.Direction != nil {
			dir = *r.Direction
		}
		ret = append(ret, headsign.Rule{RouteID: r.RouteID, Direction: dir, Headsigns: r.Headsigns, Label: r.Label})
	}
	return ret
}

// Tables returns the canonicalizer tables. Missing sections fall back to
// the built-in tables of package canon.
func (cfg *Config) Tables() (canon.Tables, error) {
	t := canon.DefaultTables()

	if len(cfg.Abbreviations) > 0 {
		t.Abbreviations = make([]canon.Abbreviation, 0, len(cfg.Abbreviations))
		for _, a := range cfg.Abbreviations {
			var kinds canon.Kind
			for _, k := range a.Kinds {
				pk, ok := canon.ParseKind(k)
				if !ok {
					return t, fmt.Errorf("%w: unknown text kind '%s'", errkind.ErrConfigGap, k)
				}
				kinds |= pk
			}
			t.Abbreviations = append(t.Abbreviations, canon.Abbreviation{Words: a.Words, Short: a.Short, Kinds: kinds})
		}
	}

	if len(cfg.CaseWords) > 0 {
		t.CaseWords = make(map[string]string, len(cfg.CaseWords))
		for k, v := range cfg.CaseWords {
			t.CaseWords[strings.ToLower(k)] = v
		}
	}

	return t, nil
}

// Excluded returns true if routes with this raw short name are dropped
func (cfg *Config) Excluded(shortName string) bool {
	for _, e := range cfg.ExcludedRoutes {
		if strings.EqualFold(e, shortName) {
			return true
		}
	}
	return false
}

// RouteColor returns the display color of a route, or the empty string if
// the route keeps the color of the feed. family is the prefix of the raw
// route code, if any.
func (cfg *Config) RouteColor(family rune, longName string) string {
	for _, f := range cfg.Families {
		r, _ := utf8.DecodeRuneInString(f.Prefix)
		if r == family && len(f.Color) > 0 {
			return f.Color
		}
	}

	upper := strings.ToUpper(longName)
	for _, m := range cfg.Colors.LongNameMarkers {
		if strings.Contains(upper, strings.ToUpper(m.Contains)) {
			return m.Color
		}
	}

	return cfg.Colors.Default
}
