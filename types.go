package otp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// LatLon is a WGS84 coordinate in the lat,lon order the OTP API expects.
type LatLon struct {
	Lat float64
	Lon float64
}

// String renders the coordinate as the "lat,lon" form used in query strings.
func (ll LatLon) String() string {
	return strconv.FormatFloat(ll.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(ll.Lon, 'f', -1, 64)
}

// Point returns the coordinate as an orb geometry point (lon,lat order).
func (ll LatLon) Point() orb.Point {
	return orb.Point{ll.Lon, ll.Lat}
}

// ParseLatLon parses a "lat,lon" string.
func ParseLatLon(s string) (LatLon, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ",", 2)
	if len(parts) != 2 {
		return LatLon{}, fmt.Errorf("invalid coordinate %q, want lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return LatLon{}, fmt.Errorf("invalid latitude in %q", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return LatLon{}, fmt.Errorf("invalid longitude in %q", s)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return LatLon{}, fmt.Errorf("coordinate %q out of range", s)
	}
	return LatLon{Lat: lat, Lon: lon}, nil
}

// RouterInfo is the status document served at the router root.
type RouterInfo struct {
	RouterID             string  `json:"routerId"`
	BuildTime            int64   `json:"buildTime"`
	TransitServiceStarts int64   `json:"transitServiceStarts"`
	TransitServiceEnds   int64   `json:"transitServiceEnds"`
	CenterLatitude       float64 `json:"centerLatitude"`
	CenterLongitude      float64 `json:"centerLongitude"`
}

// planEnvelope is the top-level document returned by the plan endpoint.
// Exactly one of plan and error is populated.
type planEnvelope struct {
	Plan  *TripPlan  `json:"plan"`
	Error *PlanError `json:"error"`
}

// PlanError is the engine's structured routing error.
type PlanError struct {
	ID      int    `json:"id"`
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func (e *PlanError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("otp plan error %d: %s", e.ID, e.Msg)
	}
	return fmt.Sprintf("otp plan error %d: %s", e.ID, e.Message)
}

// TripPlan holds the itineraries the engine found for one request.
type TripPlan struct {
	Date        int64       `json:"date"`
	From        Place       `json:"from"`
	To          Place       `json:"to"`
	Itineraries []Itinerary `json:"itineraries"`
}

// Place is an endpoint of a plan, itinerary or leg. Times are epoch
// milliseconds as served by the engine.
type Place struct {
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	StopID    string  `json:"stopId,omitempty"`
	Arrival   int64   `json:"arrival,omitempty"`
	Departure int64   `json:"departure,omitempty"`
}

// Itinerary is one complete journey option.
type Itinerary struct {
	Duration     int64   `json:"duration"`
	StartTime    int64   `json:"startTime"`
	EndTime      int64   `json:"endTime"`
	WalkTime     int64   `json:"walkTime"`
	TransitTime  int64   `json:"transitTime"`
	WaitingTime  int64   `json:"waitingTime"`
	WalkDistance float64 `json:"walkDistance"`
	Transfers    int     `json:"transfers"`
	Legs         []Leg   `json:"legs"`
}

// Leg is one segment of an itinerary travelled with a single mode.
type Leg struct {
	StartTime      int64       `json:"startTime"`
	EndTime        int64       `json:"endTime"`
	DepartureDelay int64       `json:"departureDelay"`
	ArrivalDelay   int64       `json:"arrivalDelay"`
	Distance       float64     `json:"distance"`
	Duration       float64     `json:"duration"`
	Mode           string      `json:"mode"`
	Route          string      `json:"route"`
	AgencyName     string      `json:"agencyName,omitempty"`
	RouteShortName string      `json:"routeShortName,omitempty"`
	RouteLongName  string      `json:"routeLongName,omitempty"`
	Headsign       string      `json:"headsign,omitempty"`
	TransitLeg     bool        `json:"transitLeg"`
	From           Place       `json:"from"`
	To             Place       `json:"to"`
	LegGeometry    LegGeometry `json:"legGeometry"`
}

// LegGeometry is the encoded-polyline shape of a leg.
type LegGeometry struct {
	Points string `json:"points"`
	Length int    `json:"length"`
}

// Geometry decodes the leg's polyline into a LineString.
func (l *Leg) Geometry() (orb.LineString, error) {
	return DecodePolyline(l.LegGeometry.Points)
}

// GeocodeResult is one hit from the geocode endpoint.
type GeocodeResult struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Description string  `json:"description"`
}
