// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package anchors

import (
	"errors"
	"testing"

	"github.com/patrickbr/gtfscanon/errkind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func r2() Override {
	return Override{
		RouteID: 180002,
		Directions: [2]DirectionSpec{
			{Label: "Phibbs Exch", Anchors: []string{"54411", "54100"}},
			{Label: "Pk Royal", Anchors: []string{"54100", "61769"}},
		},
	}
}

func trip(id string, route int64, stops ...string) Trip {
	t := Trip{ID: id, RouteID: route}
	for i, s := range stops {
		t.Stops = append(t.Stops, TripStop{StopID: s, Sequence: i + 1})
	}
	return t
}

func TestClassify(t *testing.T) {
	m, err := NewMatcher([]Override{r2()})
	require.NoError(t, err)

	d, err := m.Classify(trip("t1", 180002, "54411", "50001", "50002", "54100", "50003"))
	require.NoError(t, err)
	assert.Equal(t, 0, d.Index)
	assert.Equal(t, "Phibbs Exch", d.Label)

	d, err = m.Classify(trip("t2", 180002, "50003", "54100", "61769"))
	require.NoError(t, err)
	assert.Equal(t, 1, d.Index)
	assert.Equal(t, "Pk Royal", d.Label)

	// the anchors have to appear in order
	d, err = m.Classify(trip("t3", 180002, "54100", "50001", "54411", "61769"))
	require.NoError(t, err)
	assert.Equal(t, 1, d.Index)
}

func TestClassifyUsesSequence(t *testing.T) {
	m, err := NewMatcher([]Override{r2()})
	require.NoError(t, err)

	tr := Trip{ID: "t1", RouteID: 180002, Stops: []TripStop{
		{StopID: "54100", Sequence: 40},
		{StopID: "54411", Sequence: 10},
	}}

	d, err := m.Classify(tr)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Index)

	// input is not touched
	assert.Equal(t, "54100", tr.Stops[0].StopID)
}

func TestClassifyNeither(t *testing.T) {
	m, err := NewMatcher([]Override{r2()})
	require.NoError(t, err)

	_, err = m.Classify(trip("t9", 180002, "50001", "50002", "50003"))
	require.Error(t, err)
	assert.True(t, errkind.IsConfigGap(err))

	var ce *ClassificationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "t9", ce.TripID)
	assert.Equal(t, int64(180002), ce.RouteID)
	assert.Empty(t, ce.Matched)
	assert.Contains(t, err.Error(), "no anchor list")
}

func TestClassifyBoth(t *testing.T) {
	m, err := NewMatcher([]Override{r2()})
	require.NoError(t, err)

	_, err = m.Classify(trip("t8", 180002, "54411", "54100", "61769"))
	require.Error(t, err)

	var ce *ClassificationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []int{0, 1}, ce.Matched)
	assert.True(t, errkind.IsConfigGap(err))
}

func TestClassifyUnknownRoute(t *testing.T) {
	m, err := NewMatcher([]Override{r2()})
	require.NoError(t, err)

	_, err = m.Classify(trip("t1", 99, "54411", "54100"))
	assert.True(t, errkind.IsConfigGap(err))
	assert.False(t, m.Has(99))
	assert.True(t, m.Has(180002))
}

func TestNewMatcherValidation(t *testing.T) {
	_, err := NewMatcher([]Override{r2(), r2()})
	assert.True(t, errkind.IsConfigGap(err), "duplicate route")

	o := r2()
	o.Directions[1].Label = o.Directions[0].Label
	_, err = NewMatcher([]Override{o})
	assert.True(t, errkind.IsConfigGap(err), "same labels")

	o = r2()
	o.Directions[0].Anchors = nil
	_, err = NewMatcher([]Override{o})
	assert.True(t, errkind.IsConfigGap(err), "no anchors")
}

func TestRouteIDs(t *testing.T) {
	o := r2()
	o.RouteID = 555

	m, err := NewMatcher([]Override{r2(), o})
	require.NoError(t, err)
	assert.Equal(t, []int64{555, 180002}, m.RouteIDs())

	dirs, ok := m.Directions(555)
	require.True(t, ok)
	assert.Equal(t, "Pk Royal", dirs[1].Label)
}

func TestCompare(t *testing.T) {
	m, err := NewMatcher([]Override{r2()})
	require.NoError(t, err)
	dirs, _ := m.Directions(180002)
	d := dirs[0]

	a := TripStop{StopID: "54411", Sequence: 3}
	b := TripStop{StopID: "54100", Sequence: 3}
	c := TripStop{StopID: "50001", Sequence: 3}

	assert.Equal(t, -1, d.Compare(a, b))
	assert.Equal(t, 1, d.Compare(b, a))
	assert.Equal(t, -1, d.Compare(b, c))
	assert.Equal(t, 0, d.Compare(c, TripStop{StopID: "50002", Sequence: 3}))

	// the raw sequence comes first
	assert.Equal(t, -1, d.Compare(TripStop{StopID: "50001", Sequence: 1}, a))

	assert.Equal(t, 0, d.Rank("54411"))
	assert.Equal(t, 2, d.Rank("50001"))
}

func TestSort(t *testing.T) {
	m, err := NewMatcher([]Override{r2()})
	require.NoError(t, err)
	dirs, _ := m.Directions(180002)

	// a loop encoding two stops with the same sequence number
	stops := []TripStop{
		{StopID: "50002", Sequence: 2},
		{StopID: "50001", Sequence: 2},
		{StopID: "54100", Sequence: 2},
		{StopID: "54411", Sequence: 2},
		{StopID: "50000", Sequence: 1},
	}

	dirs[0].Sort(stops)

	got := make([]string, len(stops))
	for i, s := range stops {
		got[i] = s.StopID
	}

	assert.Equal(t, []string{"50000", "54411", "54100", "50002", "50001"}, got)
}

func TestSortUniqueSequences(t *testing.T) {
	m, err := NewMatcher([]Override{r2()})
	require.NoError(t, err)
	dirs, _ := m.Directions(180002)

	// the anchors of direction 1 come first in rank, but unique sequences
	// keep the visiting order of the trip
	stops := []TripStop{
		{StopID: "54100", Sequence: 4},
		{StopID: "61769", Sequence: 1},
		{StopID: "54411", Sequence: 2},
		{StopID: "54200", Sequence: 3},
	}

	dirs[1].Sort(stops)

	got := make([]string, len(stops))
	for i, s := range stops {
		got[i] = s.StopID
	}
	assert.Equal(t, []string{"61769", "54411", "54200", "54100"}, got)

	// the same stops published with one sequence number fall back to the
	// anchor order, then to their listed order
	for i := range stops {
		stops[i].Sequence = 1
	}
	dirs[1].Sort(stops)

	for i, s := range stops {
		got[i] = s.StopID
	}
	assert.Equal(t, []string{"54100", "61769", "54411", "54200"}, got)
}

func TestMergeStops(t *testing.T) {
	assert.Nil(t, MergeStops(nil))

	assert.Equal(t, []string{"a", "b", "c"}, MergeStops([][]string{{"a", "b", "c"}}))

	// short turn
	assert.Equal(t, []string{"a", "b", "c", "d"}, MergeStops([][]string{{"a", "b", "c", "d"}, {"b", "c"}}))

	// deviation
	assert.Equal(t, []string{"a", "x", "b", "c"}, MergeStops([][]string{{"a", "b", "c"}, {"a", "x", "b", "c"}}))

	// loop
	assert.Equal(t, []string{"a", "b", "c", "a"}, MergeStops([][]string{{"a", "b", "c"}, {"a", "b", "c", "a"}}))
}
