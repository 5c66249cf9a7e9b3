package realtime

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

func tripUpdateFeed(t *testing.T, ts uint64) []byte {
	t.Helper()
	version := "2.0"
	tripID := "trip_1"
	vehicleID := "veh_1"
	feed := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: &version,
			Timestamp:           &ts,
		},
		Entity: []*gtfsrtpb.FeedEntity{
			{
				Id: &tripID,
				TripUpdate: &gtfsrtpb.TripUpdate{
					Trip: &gtfsrtpb.TripDescriptor{TripId: &tripID},
				},
			},
			{
				Id: &vehicleID,
				Vehicle: &gtfsrtpb.VehiclePosition{
					Vehicle: &gtfsrtpb.VehicleDescriptor{Id: &vehicleID},
				},
			},
		},
	}
	data, err := proto.Marshal(feed)
	if err != nil {
		t.Fatalf("marshaling feed: %v", err)
	}
	return data
}

func TestCheckFeed(t *testing.T) {
	data := tripUpdateFeed(t, 1696320000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	s, err := CheckFeed(c, srv.URL)
	if err != nil {
		t.Fatalf("CheckFeed: %v", err)
	}
	if s.Timestamp != 1696320000 {
		t.Errorf("timestamp = %d, want 1696320000", s.Timestamp)
	}
	if s.Entities != 2 || s.TripUpdates != 1 || s.VehiclePositions != 1 || s.Alerts != 0 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestCheckFeed_BadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not a protobuf</html>"))
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	if _, err := CheckFeed(c, srv.URL); err == nil {
		t.Error("HTML payload should fail to decode")
	}
}

func TestCheckFeed_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	if _, err := CheckFeed(c, srv.URL); err == nil {
		t.Error("HTTP 502 should be an error")
	}
}

func TestUpdaterURLs(t *testing.T) {
	t.Run("no config file", func(t *testing.T) {
		urls, err := UpdaterURLs(t.TempDir())
		if err != nil {
			t.Fatalf("missing router-config.json should not be an error, got: %v", err)
		}
		if len(urls) != 0 {
			t.Errorf("expected no URLs, got %v", urls)
		}
	})

	t.Run("with updaters", func(t *testing.T) {
		dir := t.TempDir()
		cfg := `{
  "updaters": [
    {"type": "stop-time-updater", "url": "https://example.com/trip-updates.pb"},
    {"type": "vehicle-positions", "url": "https://example.com/vehicle-positions.pb"},
    {"type": "bike-rental"}
  ]
}`
		if err := os.WriteFile(filepath.Join(dir, "router-config.json"), []byte(cfg), 0o644); err != nil {
			t.Fatal(err)
		}
		urls, err := UpdaterURLs(dir)
		if err != nil {
			t.Fatalf("UpdaterURLs: %v", err)
		}
		if len(urls) != 2 {
			t.Fatalf("expected 2 URLs, got %d: %v", len(urls), urls)
		}
		if urls[0] != "https://example.com/trip-updates.pb" {
			t.Errorf("unexpected first URL: %s", urls[0])
		}
	})
}

func TestCheckRouter(t *testing.T) {
	data := tripUpdateFeed(t, 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := `{"updaters": [{"type": "stop-time-updater", "url": "` + srv.URL + `"}]}`
	if err := os.WriteFile(filepath.Join(dir, "router-config.json"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	summaries, err := CheckRouter(NewClient(5*time.Second), dir)
	if err != nil {
		t.Fatalf("CheckRouter: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Entities != 2 {
		t.Errorf("unexpected summaries: %+v", summaries)
	}
}
