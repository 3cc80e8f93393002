// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	gtfs "github.com/patrickbr/gtfsparser/gtfs"
	"github.com/patrickbr/gtfscanon/processors"
	"github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDirections() []processors.Direction {
	phibbs := &gtfs.Stop{Id: "54411", Name: "Phibbs Exch Bay 8", Lat: 49.324, Lon: -123.062}
	capilano := &gtfs.Stop{Id: "54100", Name: "Marine Dr / Capilano Rd", Lat: 49.322, Lon: -123.115}
	parkRoyal := &gtfs.Stop{Id: "61769", Name: "Park Royal Bay 3", Lat: 49.327, Lon: -123.137}

	return []processors.Direction{
		{RouteID: 180002, RouteCode: "R2", ShortName: "R2", LongName: "Marine Dr", Color: "199354", Index: 0, Label: "Phibbs Exch", Trips: 12, Stops: []*gtfs.Stop{parkRoyal, phibbs, capilano}},
		{RouteID: 180002, RouteCode: "R2", ShortName: "R2", LongName: "Marine Dr", Color: "199354", Index: 1, Label: "Pk Royal", Trips: 11, Stops: []*gtfs.Stop{capilano}},
	}
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, testDirections()))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)

	// two directions, three distinct stops
	require.Len(t, fc.Features, 5)

	line := fc.Features[0]
	require.True(t, line.Geometry.IsLineString())
	assert.Len(t, line.Geometry.LineString, 3)
	assert.InDelta(t, -123.137, line.Geometry.LineString[0][0], 0.0001)
	assert.InDelta(t, 49.327, line.Geometry.LineString[0][1], 0.0001)
	assert.Equal(t, "Phibbs Exch", line.PropertyMustString("headsign"))
	assert.Equal(t, "#199354", line.PropertyMustString("route_color"))
	assert.Equal(t, 180002, line.PropertyMustInt("route_id"))
	assert.Equal(t, 0, line.PropertyMustInt("direction_id"))
	assert.Equal(t, []interface{}{"61769", "54411", "54100"}, line.Properties["stop_ids"])

	// a single stop direction has no line
	assert.True(t, fc.Features[1].Geometry.IsPoint())
	assert.Equal(t, "Pk Royal", fc.Features[1].PropertyMustString("headsign"))

	// stops sorted by id
	assert.Equal(t, "54100", fc.Features[2].PropertyMustString("stop_id"))
	assert.Equal(t, "54411", fc.Features[3].PropertyMustString("stop_id"))
	assert.Equal(t, "Park Royal Bay 3", fc.Features[4].PropertyMustString("stop_name"))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "directions.geojson")
	require.NoError(t, WriteFile(plain, testDirections()))

	data, err := os.ReadFile(plain)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 5)

	zipped := filepath.Join(dir, "directions.geojson.gz")
	require.NoError(t, WriteFile(zipped, testDirections()))

	f, err := os.Open(zipped)
	require.NoError(t, err)
	defer f.Close()

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	unzipped, err := io.ReadAll(zr)
	require.NoError(t, err)

	assert.Equal(t, data, unzipped)
}

func TestWriteFileBadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "out.geojson"), testDirections())
	assert.Error(t, err)
}
