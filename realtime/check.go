package realtime

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// FeedSummary describes one decoded GTFS-RT feed.
type FeedSummary struct {
	URL              string
	Timestamp        int64
	Entities         int
	TripUpdates      int
	VehiclePositions int
	Alerts           int
}

// CheckFeed fetches and decodes one GTFS-RT feed and summarises its contents.
func CheckFeed(c *Client, url string) (FeedSummary, error) {
	s := FeedSummary{URL: url}
	data, err := c.Fetch(url)
	if err != nil {
		return s, err
	}
	feed := &gtfsrtpb.FeedMessage{}
	if err := proto.Unmarshal(data, feed); err != nil {
		return s, fmt.Errorf("decoding GTFS-RT feed from %s: %w", url, err)
	}
	if feed.GetHeader() != nil {
		s.Timestamp = int64(feed.GetHeader().GetTimestamp())
	}
	for _, e := range feed.GetEntity() {
		s.Entities++
		if e.GetTripUpdate() != nil {
			s.TripUpdates++
		}
		if e.GetVehicle() != nil {
			s.VehiclePositions++
		}
		if e.GetAlert() != nil {
			s.Alerts++
		}
	}
	return s, nil
}

// routerConfig is the slice of router-config.json this package cares about.
type routerConfig struct {
	Updaters []struct {
		Type string `json:"type"`
		URL  string `json:"url"`
	} `json:"updaters"`
}

// UpdaterURLs reads router-config.json in a router directory and returns the
// URLs of its GTFS-RT updaters. A missing file means no updaters.
func UpdaterURLs(routerDir string) ([]string, error) {
	path := filepath.Join(routerDir, "router-config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var rc routerConfig
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	var urls []string
	for _, u := range rc.Updaters {
		if u.URL != "" {
			urls = append(urls, u.URL)
		}
	}
	return urls, nil
}

// CheckRouter verifies every GTFS-RT updater endpoint configured for a router.
// It returns a summary per feed and fails on the first unreachable or
// unparsable one.
func CheckRouter(c *Client, routerDir string) ([]FeedSummary, error) {
	urls, err := UpdaterURLs(routerDir)
	if err != nil {
		return nil, err
	}
	summaries := make([]FeedSummary, 0, len(urls))
	for _, url := range urls {
		s, err := CheckFeed(c, url)
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
