// Package data manages the on-disk inputs the OTP engine builds graphs from:
// the OTP jar itself, OSM extracts, GTFS zips and elevation rasters in a
// router directory.
package data

import (
	"archive/zip"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// requiredGTFSTables are the files every usable GTFS zip must contain.
// calendar.txt and calendar_dates.txt are alternatives; at least one of the
// two must be present.
var requiredGTFSTables = []string{
	"agency.txt",
	"stops.txt",
	"routes.txt",
	"trips.txt",
	"stop_times.txt",
}

// DirSummary lists the graph-build inputs found in a router directory.
type DirSummary struct {
	OSMFiles       []string
	GTFSZips       []string
	ElevationFiles []string
}

// CheckDir scans a router directory for graph-build inputs. Building is only
// possible with at least one OSM extract or GTFS zip, so an empty directory
// is an error. Each GTFS zip found is also checked for the required tables.
func CheckDir(dir string) (DirSummary, error) {
	var s DirSummary
	matches := func(pattern string) []string {
		found, _ := filepath.Glob(filepath.Join(dir, pattern))
		sort.Strings(found)
		return found
	}
	s.OSMFiles = append(matches("*.pbf"), matches("*.osm")...)
	s.GTFSZips = matches("*.zip")
	s.ElevationFiles = matches("*.tif")

	if len(s.OSMFiles) == 0 && len(s.GTFSZips) == 0 {
		return s, fmt.Errorf("no OSM extract or GTFS zip found in %s", dir)
	}
	for _, z := range s.GTFSZips {
		if err := CheckGTFSZip(z); err != nil {
			return s, err
		}
	}
	return s, nil
}

// CheckGTFSZip verifies that a GTFS zip contains the required tables.
func CheckGTFSZip(path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer zr.Close()

	present := map[string]bool{}
	for _, f := range zr.File {
		present[strings.ToLower(filepath.Base(f.Name))] = true
	}
	var missing []string
	for _, table := range requiredGTFSTables {
		if !present[table] {
			missing = append(missing, table)
		}
	}
	if !present["calendar.txt"] && !present["calendar_dates.txt"] {
		missing = append(missing, "calendar.txt or calendar_dates.txt")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s is missing GTFS tables: %s", path, strings.Join(missing, ", "))
	}
	return nil
}
