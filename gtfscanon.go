// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package main

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/patrickbr/gtfscanon/config"
	"github.com/patrickbr/gtfscanon/errkind"
	"github.com/patrickbr/gtfscanon/export"
	"github.com/patrickbr/gtfscanon/processors"
	"github.com/patrickbr/gtfsparser"
	"github.com/patrickbr/gtfsparser/gtfs"
	"github.com/patrickbr/gtfswriter"
	flag "github.com/spf13/pflag"
)

const (
	exitError     = 1
	exitConfigGap = 2
)

func parseDate(str string) (gtfs.Date, error) {
	var day, month, year int
	var e error
	if len(str) != 8 {
		e = fmt.Errorf("has %d characters, expected 8", len(str))
	}
	if e == nil {
		day, e = strconv.Atoi(str[6:8])
	}
	if e == nil {
		month, e = strconv.Atoi(str[4:6])
	}
	if e == nil {
		year, e = strconv.Atoi(str[0:4])
	}

	if e == nil && (day < 1 || day > 31) {
		e = fmt.Errorf("day must be in the range [1, 31]")
	}

	if e == nil && (month < 1 || month > 12) {
		e = fmt.Errorf("month must be in the range [1, 12]")
	}

	if e == nil && (year < 1900 || year > (1900+255)) {
		e = fmt.Errorf("date must be in the range [19000101, 21551231]")
	}

	if e != nil {
		return gtfs.Date{}, fmt.Errorf("expected YYYYMMDD date, found '%s' (%s)", str, e.Error())
	}

	return gtfs.NewDate(uint8(day), uint8(month), uint16(year)), nil
}

// exitCode returns the exit code for a failed batch, configuration gaps
// ask for updated tables instead of a fixed feed
func exitCode(err error) int {
	if errkind.IsConfigGap(err) {
		return exitConfigGap
	}
	return exitError
}

func loadConfig(path string) (*config.Config, error) {
	if len(path) == 0 {
		return config.Default()
	}
	return config.Load(path)
}

func main() {
	onlyValidate := flag.BoolP("validation-mode", "v", false, "run all stages, but do not write any output")
	outputPath := flag.StringP("output", "o", "gtfs-out", "gtfs output directory or zip file (must end with .zip)")
	configPath := flag.StringP("config", "c", "", "configuration tables (YAML), the built-in TransLink tables are used if empty")
	geojsonPath := flag.StringP("geojson", "g", "", "write the canonical route directions as GeoJSON to this file (gzip compressed if it ends with .gz)")
	rewriteRouteIds := flag.BoolP("rewrite-route-ids", "", false, "replace route IDs by the stable route identities. This breaks existing references to route IDs (like in GTFS realtime streams)")
	startDateFilter := flag.StringP("date-start", "", "", "start date filter, as YYYYMMDD")
	endDateFilter := flag.StringP("date-end", "", "", "end date filter, as YYYYMMDD")
	useDefaultValuesOnError := flag.BoolP("default-on-errs", "e", false, "if non-required fields have errors, fall back to the default values")
	dropErroneousEntities := flag.BoolP("drop-errs", "D", false, "drop erroneous entries from feed")
	keepFields := flag.BoolP("keep-additional-fields", "F", false, "keep all non-GTFS fields from the input")
	keepColOrder := flag.BoolP("keep-col-order", "", false, "keep the original column ordering of the input feed")
	showWarnings := flag.BoolP("show-warnings", "W", false, "show warnings and explain every rewrite")
	zipCompressionLevel := flag.IntP("zip-compression-level", "", 9, "output ZIP file compression level, between 0 and 9")
	dontSortZipFiles := flag.BoolP("unsorted-files", "", false, "don't sort the output ZIP files (might increase final ZIP size)")
	help := flag.BoolP("help", "?", false, "this message")

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	gtfsPaths := flag.Args()

	if len(gtfsPaths) != 1 {
		fmt.Fprintln(os.Stderr, "Expected exactly one GTFS location, see --help")
		os.Exit(exitError)
	}

	gtfsPath := gtfsPaths[0]

	startDate := gtfs.Date{}
	endDate := gtfs.Date{}

	var e error

	if len(*startDateFilter) > 0 {
		if startDate, e = parseDate(*startDateFilter); e != nil {
			fmt.Fprintln(os.Stderr, "Invalid --date-start:", e.Error())
			os.Exit(exitError)
		}
	}

	if len(*endDateFilter) > 0 {
		if endDate, e = parseDate(*endDateFilter); e != nil {
			fmt.Fprintln(os.Stderr, "Invalid --date-end:", e.Error())
			os.Exit(exitError)
		}
	}

	cfg, e := loadConfig(*configPath)
	if e != nil {
		fmt.Fprintf(os.Stderr, "\nError while loading configuration tables:\n")
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(exitCode(e))
	}

	engine, e := processors.NewEngine(cfg, processors.Options{RewriteRouteIDs: *rewriteRouteIds, ShowWarnings: *showWarnings})
	if e != nil {
		fmt.Fprintf(os.Stderr, "\nError while building lookup tables:\n")
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(exitCode(e))
	}

	feed := gtfsparser.NewFeed()
	opts := gtfsparser.ParseOptions{UseDefValueOnError: false, DropErroneous: false, DryRun: false, CheckNullCoordinates: false, EmptyStringRepl: "", ZipFix: false}
	opts.DropErroneous = *dropErroneousEntities
	opts.UseDefValueOnError = *useDefaultValuesOnError
	opts.ShowWarnings = *showWarnings
	opts.KeepAddFlds = *keepFields
	opts.DateFilterStart = startDate
	opts.DateFilterEnd = endDate
	feed.SetParseOpts(opts)

	fmt.Fprintf(os.Stdout, "Parsing GTFS feed in '%s' ...", gtfsPath)
	if opts.ShowWarnings {
		fmt.Fprintf(os.Stdout, "\n")
	}

	e = feed.Parse(gtfsPath)

	if e != nil {
		fmt.Fprintf(os.Stderr, "\nError while parsing GTFS feed:\n")
		fmt.Fprintln(os.Stderr, e.Error())
		fmt.Fprintln(os.Stdout, "\nYou may want to try running gtfscanon with -eD for error skipping. See --help for details.")
		os.Exit(exitError)
	}

	if opts.ShowWarnings {
		fmt.Fprintf(os.Stdout, "... done.\n")
	} else {
		fmt.Fprintf(os.Stdout, " done.\n")
	}

	if e = engine.Run(feed); e != nil {
		fmt.Fprintf(os.Stderr, "\nError while canonicalizing GTFS feed:\n")
		fmt.Fprintln(os.Stderr, e.Error())
		if errkind.IsConfigGap(e) {
			fmt.Fprintln(os.Stdout, "\nThe configuration tables do not cover this feed. Update them and run again, no output was written.")
		}
		os.Exit(exitCode(e))
	}

	if *onlyValidate {
		fmt.Fprintln(os.Stdout, "No errors.")
		os.Exit(0)
	}

	if len(*geojsonPath) > 0 {
		fmt.Fprintf(os.Stdout, "Outputting route directions to '%s'...", *geojsonPath)
		if e = export.WriteFile(*geojsonPath, engine.Directions()); e != nil {
			fmt.Fprintf(os.Stderr, "\nError while writing route directions to '%s':\n ", *geojsonPath)
			fmt.Fprintln(os.Stderr, e.Error())
			os.Exit(exitError)
		}
		fmt.Fprintf(os.Stdout, " done.\n")
	}

	fmt.Fprintf(os.Stdout, "Outputting GTFS feed to '%s'...", *outputPath)

	if _, err := os.Stat(*outputPath); os.IsNotExist(err) {
		if path.Ext(*outputPath) == ".zip" {
			os.Create(*outputPath)
		} else {
			os.Mkdir(*outputPath, os.ModePerm)
		}
	}

	// write feed back to output
	w := gtfswriter.Writer{ZipCompressionLevel: *zipCompressionLevel, Sorted: !*dontSortZipFiles, KeepColOrder: *keepColOrder}
	e = w.Write(feed, *outputPath)

	if e != nil {
		fmt.Fprintf(os.Stderr, "\nError while writing GTFS feed in '%s':\n ", *outputPath)
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(exitError)
	}

	fmt.Fprintf(os.Stdout, " done.\n")
}
