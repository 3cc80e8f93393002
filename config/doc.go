// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package config handles loading and validation of the curated tables
// (route family bands, direction overrides, headsign equivalence rules and
// canonicalizer vocabulary).
//
// Tables are read from a YAML file and validated using struct tags, then
// checked by building every table once. The TransLink tables are built in.
package config
