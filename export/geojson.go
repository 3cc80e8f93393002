// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package export writes the canonical route directions of a processed feed
// as GeoJSON, for map previews and for matching real-time vehicle positions
// against the canonical stop lists.
package export

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	gtfs "github.com/patrickbr/gtfsparser/gtfs"
	"github.com/patrickbr/gtfscanon/processors"
	"github.com/paulmach/go.geojson"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FeatureCollection returns one feature per direction, a LineString through
// its stops in order, followed by one Point feature per distinct stop
func FeatureCollection(dirs []processors.Direction) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	stops := make(map[string]*gtfs.Stop)

	for _, d := range dirs {
		coords := make([][]float64, 0, len(d.Stops))
		ids := make([]string, 0, len(d.Stops))
		for _, s := range d.Stops {
			if s == nil {
				continue
			}
			coords = append(coords, []float64{float64(s.Lon), float64(s.Lat)})
			ids = append(ids, s.Id)
			stops[s.Id] = s
		}

		var f *geojson.Feature
		if len(coords) == 1 {
			f = geojson.NewPointFeature(coords[0])
		} else {
			f = geojson.NewLineStringFeature(coords)
		}

		f.SetProperty("route_id", d.RouteID)
		f.SetProperty("route_code", d.RouteCode)
		f.SetProperty("route_short_name", d.ShortName)
		f.SetProperty("route_long_name", d.LongName)
		if len(d.Color) > 0 {
			f.SetProperty("route_color", "#"+d.Color)
		}
		f.SetProperty("direction_id", d.Index)
		f.SetProperty("headsign", d.Label)
		f.SetProperty("trips", d.Trips)
		f.SetProperty("stop_ids", ids)

		fc.AddFeature(f)
	}

	ids := maps.Keys(stops)
	slices.Sort(ids)

	for _, id := range ids {
		s := stops[id]
		f := geojson.NewPointFeature([]float64{float64(s.Lon), float64(s.Lat)})
		f.SetProperty("stop_id", s.Id)
		f.SetProperty("stop_name", s.Name)
		fc.AddFeature(f)
	}

	return fc
}

// WriteGeoJSON writes the directions as a GeoJSON feature collection to w
func WriteGeoJSON(w io.Writer, dirs []processors.Direction) error {
	data, err := FeatureCollection(dirs).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes the directions to path, gzip compressed if path ends
// with .gz
func WriteFile(path string, dirs []processors.Direction) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if !strings.HasSuffix(path, ".gz") {
		if err := WriteGeoJSON(f, dirs); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	zw, err := gzip.NewWriterLevel(f, gzip.BestCompression)
	if err != nil {
		f.Close()
		return err
	}

	if err := WriteGeoJSON(zw, dirs); err != nil {
		zw.Close()
		f.Close()
		return err
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
