// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"github.com/patrickbr/gtfsparser"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Processor is one stage of the canonicalization batch. A returned error
// aborts the batch.
type Processor interface {
	Run(*gtfsparser.Feed) error
}

type empty struct{}

// sortedKeys returns the keys of a feed map in ascending order, every
// iteration over feed maps goes through it
func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

func percent(removed int, before int) float64 {
	return 100.0 * float64(removed) / (float64(before) + 0.001)
}
