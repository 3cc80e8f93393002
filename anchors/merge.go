// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package anchors

// MergeStops merges the ordered stop lists of all trips of one direction
// into a single stop list. The lists are merged in the given order, a stop
// of a later list that is not found ahead of the merge cursor is inserted at
// the cursor, so stops a loop visits twice are kept twice.
func MergeStops(lists [][]string) []string {
	var ret []string
	for _, l := range lists {
		ret = mergeInto(ret, l)
	}
	return ret
}

func mergeInto(base []string, l []string) []string {
	out := make([]string, 0, len(base)+len(l))
	cur := 0

	for _, s := range l {
		j := indexFrom(base, s, cur)
		if j < 0 {
			out = append(out, s)
			continue
		}
		out = append(out, base[cur:j+1]...)
		cur = j + 1
	}

	return append(out, base[cur:]...)
}

func indexFrom(l []string, s string, from int) int {
	for i := from; i < len(l); i++ {
		if l[i] == s {
			return i
		}
	}
	return -1
}
