// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"errors"
	"testing"

	"github.com/patrickbr/gtfsparser"
	"github.com/patrickbr/gtfscanon/anchors"
	"github.com/patrickbr/gtfscanon/config"
	"github.com/patrickbr/gtfscanon/errkind"
	"github.com/patrickbr/gtfscanon/headsign"
	"github.com/patrickbr/gtfscanon/routeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTestFeed(t *testing.T) *gtfsparser.Feed {
	feed := gtfsparser.NewFeed()
	opts := gtfsparser.ParseOptions{UseDefValueOnError: false, DropErroneous: false, DryRun: false}
	feed.SetParseOpts(opts)

	require.NoError(t, feed.Parse("./testfeed"))
	return feed
}

func defaultEngine(t *testing.T, opts Options) *Engine {
	cfg, err := config.Default()
	require.NoError(t, err)

	e, err := NewEngine(cfg, opts)
	require.NoError(t, err)
	return e
}

func stopIds(d Direction) []string {
	ret := make([]string, len(d.Stops))
	for i, s := range d.Stops {
		ret[i] = s.Id
	}
	return ret
}

func TestEngine(t *testing.T) {
	feed := parseTestFeed(t)
	e := defaultEngine(t, Options{})

	require.NoError(t, e.Run(feed))

	// excluded route with its trips and stops
	assert.NotContains(t, feed.Routes, "6645")
	assert.NotContains(t, feed.Trips, "T980")
	assert.NotContains(t, feed.Stops, "60980")

	// trip without an active service day
	assert.NotContains(t, feed.Trips, "T995")

	r := feed.Routes["6641"]
	require.NotNil(t, r)
	assert.Equal(t, "99", r.Short_name)
	assert.Equal(t, "Commercial-Broadway / UBC (B-Line)", r.Long_name)
	assert.Equal(t, "F46717", r.Color)

	assert.Equal(t, "062F53", feed.Routes["6644"].Color)
	assert.Equal(t, "199354", feed.Routes["6643"].Color)

	headsigns := map[string]string{
		"T991":  "Alma",
		"T992":  "Alma",
		"T993":  "Alma",
		"T996":  "Boundary",
		"T997":  "Boundary",
		"TC121": "Lions Bay",
		"TC122": "Lions Bay",
		"TR21":  "Phibbs Exch",
		"TR22":  "Pk Royal",
		"TN191": "Sry Ctrl Sta",
	}
	for id, want := range headsigns {
		require.Contains(t, feed.Trips, id)
		require.NotNil(t, feed.Trips[id].Headsign, id)
		assert.Equal(t, want, *feed.Trips[id].Headsign, id)
	}

	// the anchors decide the direction, not the feed's direction id
	assert.Equal(t, int8(0), feed.Trips["TR21"].Direction_id)
	assert.Equal(t, int8(1), feed.Trips["TR22"].Direction_id)

	assert.Equal(t, "Hastings St / Main St", feed.Stops["50001"].Name)
	assert.Equal(t, "Westridge Rd (Flagstop)", feed.Stops["50002"].Name)

	dirs := e.Directions()
	require.Len(t, dirs, 6)

	got := make([][2]int64, len(dirs))
	for i, d := range dirs {
		got[i] = [2]int64{d.RouteID, int64(d.Index)}
	}
	assert.Equal(t, [][2]int64{{99, 0}, {99, 1}, {30012, 0}, {140019, 0}, {180002, 0}, {180002, 1}}, got)

	assert.Equal(t, "Boundary", dirs[0].Label)
	assert.Equal(t, []string{"50004", "50003", "50001", "50006"}, stopIds(dirs[0]))

	assert.Equal(t, "Alma", dirs[1].Label)
	assert.Equal(t, 3, dirs[1].Trips)
	assert.Equal(t, "099", dirs[1].RouteCode)
	assert.Equal(t, "99", dirs[1].ShortName)
	assert.Equal(t, []string{"50001", "50003", "50005", "50004"}, stopIds(dirs[1]))

	assert.Equal(t, "C12", dirs[2].ShortName)
	assert.Equal(t, "Lions Bay", dirs[2].Label)

	assert.Equal(t, "Phibbs Exch", dirs[4].Label)
	assert.Equal(t, []string{"61769", "54411", "54200", "54100"}, stopIds(dirs[4]))
	assert.Equal(t, "Pk Royal", dirs[5].Label)
	assert.Equal(t, []string{"54100", "54300", "61769"}, stopIds(dirs[5]))

	_, ok := e.Routes.Registry.Lookup("C12")
	assert.True(t, ok)
}

func TestEngineDeterminism(t *testing.T) {
	run := func() ([]Direction, map[string]string) {
		feed := parseTestFeed(t)
		e := defaultEngine(t, Options{})
		require.NoError(t, e.Run(feed))

		hs := make(map[string]string)
		for id, tr := range feed.Trips {
			hs[id] = *tr.Headsign
		}
		return e.Directions(), hs
	}

	d1, h1 := run()
	for i := 0; i < 3; i++ {
		d2, h2 := run()
		assert.Equal(t, h1, h2)
		require.Equal(t, len(d1), len(d2))
		for j := range d1 {
			assert.Equal(t, d1[j].Label, d2[j].Label)
			assert.Equal(t, stopIds(d1[j]), stopIds(d2[j]))
		}
	}
}

func TestEngineUnknownHeadsignSet(t *testing.T) {
	feed := parseTestFeed(t)
	e := defaultEngine(t, Options{})

	dunbar := "99 Dunbar"
	feed.Trips["T992"].Headsign = &dunbar

	err := e.Run(feed)
	require.Error(t, err)
	assert.True(t, errkind.IsConfigGap(err))

	var me *headsign.MergeError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, int64(99), me.RouteID)
	assert.Equal(t, 1, me.Direction)
	assert.Equal(t, []string{"Dunbar", "Granville", "UBC"}, me.Observed)
}

func TestEngineAnchorMismatch(t *testing.T) {
	cfg, err := config.Parse("test", []byte(`
families:
  - {prefix: C, name: community shuttle, offset: 30000}
  - {prefix: N, name: nightbus, offset: 140000}
  - {prefix: R, name: rapid, offset: 180000}
excludedRoutes: ["980"]
overrides:
  - routeId: 180002
    directions:
      - {label: West, anchors: ["99999"]}
      - {label: East, anchors: ["88888"]}
`))
	require.NoError(t, err)

	e, err := NewEngine(cfg, Options{})
	require.NoError(t, err)

	err = e.Run(parseTestFeed(t))
	require.Error(t, err)
	assert.True(t, errkind.IsConfigGap(err))

	var ce *anchors.ClassificationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, int64(180002), ce.RouteID)
	assert.Equal(t, "TR21", ce.TripID)
	assert.Empty(t, ce.Matched)
}

func TestEngineUnknownFamily(t *testing.T) {
	cfg, err := config.Parse("test", []byte(`excludedRoutes: ["980"]`))
	require.NoError(t, err)

	e, err := NewEngine(cfg, Options{})
	require.NoError(t, err)

	err = e.Run(parseTestFeed(t))
	require.Error(t, err)
	assert.True(t, errkind.IsConfigGap(err))
	assert.False(t, errkind.IsMalformedInput(err))

	var ce *routeid.CodeError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "C12", ce.Code)
}

func TestEngineRewriteRouteIds(t *testing.T) {
	feed := parseTestFeed(t)
	e := defaultEngine(t, Options{RewriteRouteIDs: true})

	require.NoError(t, e.Run(feed))

	for _, id := range []string{"99", "30012", "140019", "180002"} {
		assert.Contains(t, feed.Routes, id)
	}
	assert.NotContains(t, feed.Routes, "6641")
	assert.Equal(t, "99", feed.Trips["T991"].Route.Id)
	assert.Equal(t, "180002", feed.Trips["TR21"].Route.Id)
}

func TestEngineProcessorOrder(t *testing.T) {
	e := defaultEngine(t, Options{RewriteRouteIDs: true})
	procs := e.Processors()

	// identities before text, text before splitting, splitting before merging
	var ri, rm, rr, tc, ds, hm int
	for i, p := range procs {
		switch p.(type) {
		case RouteIdentifier:
			ri = i
		case RouteMerger:
			rm = i
		case RouteIdRewriter:
			rr = i
		case TextCanonicalizer:
			tc = i
		case DirectionSplitter:
			ds = i
		case HeadsignMerger:
			hm = i
		}
	}
	assert.Less(t, ri, rm)
	assert.Less(t, rm, rr)
	assert.Less(t, rr, tc)
	assert.Less(t, tc, ds)
	assert.Less(t, ds, hm)
	_, ok := procs[len(procs)-1].(*DirectionCollector)
	assert.True(t, ok)

	// ids are only rewritten on request
	for _, p := range defaultEngine(t, Options{}).Processors() {
		_, ok := p.(RouteIdRewriter)
		assert.False(t, ok)
	}
}
