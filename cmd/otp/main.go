package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	lib "github.com/kimnewzealand/opentripplanner"
	"github.com/kimnewzealand/opentripplanner/config"
	"github.com/kimnewzealand/opentripplanner/data"
	"github.com/kimnewzealand/opentripplanner/engine"
	"github.com/kimnewzealand/opentripplanner/formatter"
	"github.com/kimnewzealand/opentripplanner/java"
	"github.com/kimnewzealand/opentripplanner/realtime"
)

func main() {
	mode := flag.String("mode", "", "check-java|jar|demo|check-data|make-config|feedcheck|build|start|stop|plan|isochrone|geocode")
	jarPath := flag.String("jar", "", "path to the OTP jar (overrides config)")
	dataDir := flag.String("dir", "", "data directory (overrides config)")
	otpVersion := flag.String("otpVersion", "", "OTP release, e.g. 2.2.0 (overrides config)")
	router := flag.String("router", "", "router name (overrides config)")
	from := flag.String("from", "", "origin as lat,lon")
	to := flag.String("to", "", "destination as lat,lon")
	modes := flag.String("modes", "WALK,TRANSIT", "comma-separated OTP modes")
	date := flag.String("date", "", "departure/arrival time as 2006-01-02 15:04 (default: now)")
	arriveBy := flag.Bool("arriveBy", false, "treat -date as the arrival time")
	maxWalk := flag.Float64("maxWalk", 0, "maximum walk distance in metres")
	numItineraries := flag.Int("n", 0, "number of itineraries to request")
	wheelchair := flag.Bool("wheelchair", false, "wheelchair-accessible routing")
	cutoffs := flag.String("cutoffs", "900,1800,2700", "comma-separated isochrone cutoffs in seconds")
	query := flag.String("query", "", "geocode query")
	autocomplete := flag.Bool("autocomplete", false, "geocode in autocomplete mode")
	kind := flag.String("kind", "build", "config kind for make-config: build|router|otp")
	format := flag.String("format", "json", "plan output: json|csv|legs-csv|geojson")
	flag.Parse()

	lib.InitLogging()
	if err := config.LoadAppConfig(); err != nil {
		log.Fatalf("loading config: %v", err)
	}
	cfg := config.Config
	if *jarPath != "" {
		cfg.Engine.JarPath = *jarPath
	}
	if *dataDir != "" {
		cfg.Engine.DataDir = *dataDir
	}
	if *otpVersion != "" {
		cfg.Engine.Version = *otpVersion
	}
	if *router != "" {
		cfg.Engine.Router = *router
		cfg.Connection.Router = *router
	}

	ctx := context.Background()

	switch *mode {
	case "check-java":
		major, minor, err := config.ParseOTPVersion(cfg.Engine.Version)
		if err != nil {
			log.Fatal(err)
		}
		path, err := java.Find()
		if err != nil {
			log.Fatal(err)
		}
		version, err := java.Check(ctx, path, major, minor)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("java %s at %s is suitable for OTP %s\n", version, path, cfg.Engine.Version)

	case "jar":
		path, err := data.DownloadJar(cfg.Engine.Version, cfg.Engine.DataDir)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(path)

	case "demo":
		dir, err := data.DownloadDemo(cfg.Engine.DataDir, cfg.Engine.Router)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(dir)

	case "check-data":
		summary, err := data.CheckDir(engine.RouterDir(cfg.Engine))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("osm: %d, gtfs: %d, elevation: %d\n",
			len(summary.OSMFiles), len(summary.GTFSZips), len(summary.ElevationFiles))

	case "make-config":
		otpCfg, err := config.MakeConfig(*kind)
		if err != nil {
			log.Fatal(err)
		}
		if err := config.WriteConfig(*kind, otpCfg, engine.RouterDir(cfg.Engine)); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s-config.json to %s\n", *kind, engine.RouterDir(cfg.Engine))

	case "feedcheck":
		timeout := time.Duration(cfg.Connection.TimeoutSec) * time.Second
		summaries, err := realtime.CheckRouter(realtime.NewClient(timeout), engine.RouterDir(cfg.Engine))
		if err != nil {
			log.Fatal(err)
		}
		if len(summaries) == 0 {
			fmt.Println("no GTFS-RT updaters configured")
			return
		}
		for _, s := range summaries {
			fmt.Printf("%s: timestamp=%d entities=%d (tu=%d vp=%d alerts=%d)\n",
				s.URL, s.Timestamp, s.Entities, s.TripUpdates, s.VehiclePositions, s.Alerts)
		}

	case "build":
		eng, err := engine.New(ctx, cfg.Engine)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := data.CheckDir(engine.RouterDir(cfg.Engine)); err != nil {
			log.Fatal(err)
		}
		if err := eng.BuildGraph(ctx); err != nil {
			log.Fatal(err)
		}

	case "start":
		eng, err := engine.New(ctx, cfg.Engine)
		if err != nil {
			log.Fatal(err)
		}
		if err := eng.Start(ctx); err != nil {
			log.Fatal(err)
		}
		if err := eng.WaitReady(ctx); err != nil {
			log.Fatal(err)
		}

	case "stop":
		if err := engine.StopByPIDFile(cfg.Engine.DataDir); err != nil {
			log.Fatal(err)
		}

	case "plan":
		conn, err := lib.Connect(cfg.Connection)
		if err != nil {
			log.Fatal(err)
		}
		req := lib.PlanRequest{
			From:            mustLatLon(*from, "-from"),
			To:              mustLatLon(*to, "-to"),
			Modes:           splitModes(*modes),
			Date:            parseDate(*date),
			ArriveBy:        *arriveBy,
			MaxWalkDistance: *maxWalk,
			NumItineraries:  *numItineraries,
			Wheelchair:      *wheelchair,
		}
		plan, err := conn.Plan(req)
		if err != nil {
			log.Fatal(err)
		}
		printPlan(plan, *format)

	case "isochrone":
		conn, err := lib.Connect(cfg.Connection)
		if err != nil {
			log.Fatal(err)
		}
		fc, err := conn.Isochrone(lib.IsochroneRequest{
			From:     mustLatLon(*from, "-from"),
			Modes:    splitModes(*modes),
			Date:     parseDate(*date),
			ArriveBy: *arriveBy,
			Cutoffs:  parseCutoffs(*cutoffs),
		})
		if err != nil {
			log.Fatal(err)
		}
		out, err := formatter.IsochroneGeoJSON(fc)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(out))

	case "geocode":
		conn, err := lib.Connect(cfg.Connection)
		if err != nil {
			log.Fatal(err)
		}
		results, err := conn.Geocode(*query, *autocomplete)
		if err != nil {
			log.Fatal(err)
		}
		out, err := formatter.BuildJSON(results)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(out))

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printPlan(plan *lib.TripPlan, format string) {
	var out []byte
	var err error
	switch format {
	case "csv":
		out, err = formatter.ItinerariesCSV(plan)
	case "legs-csv":
		out, err = formatter.LegsCSV(plan)
	case "geojson":
		out, err = formatter.LegsGeoJSON(plan)
	default:
		out, err = formatter.BuildJSON(plan)
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}

func mustLatLon(s, flagName string) lib.LatLon {
	if s == "" {
		log.Fatalf("%s is required (lat,lon)", flagName)
	}
	ll, err := lib.ParseLatLon(s)
	if err != nil {
		log.Fatal(err)
	}
	return ll
}

func splitModes(s string) []string {
	var out []string
	for _, m := range strings.Split(s, ",") {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Now()
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		log.Fatalf("invalid -date %q, want 2006-01-02 15:04", s)
	}
	return t
}

func parseCutoffs(s string) []int {
	var out []int
	for _, c := range strings.Split(s, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		sec, err := strconv.Atoi(c)
		if err != nil || sec <= 0 {
			log.Fatalf("invalid cutoff %q, want positive seconds", c)
		}
		out = append(out, sec)
	}
	return out
}
