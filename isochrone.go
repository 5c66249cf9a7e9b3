package otp

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"
)

// IsochroneRequest describes a travel-time surface query.
type IsochroneRequest struct {
	From     LatLon
	Modes    []string
	Date     time.Time
	ArriveBy bool
	// Cutoffs are the travel-time bands in seconds, one result polygon each.
	Cutoffs []int
}

func (r IsochroneRequest) values() url.Values {
	q := url.Values{}
	q.Set("fromPlace", r.From.String())
	if len(r.Modes) > 0 {
		q.Set("mode", strings.Join(r.Modes, ","))
	}
	if !r.Date.IsZero() {
		q.Set("date", planDate(r.Date))
		q.Set("time", planClock(r.Date))
	}
	q.Set("arriveBy", strconv.FormatBool(r.ArriveBy))
	for _, sec := range r.Cutoffs {
		q.Add("cutoffSec", strconv.Itoa(sec))
	}
	return q
}

// Isochrone asks the engine for travel-time polygons around a place and
// returns them as a GeoJSON feature collection. Each feature carries its
// cutoff in the "time" property.
func (c *Connection) Isochrone(req IsochroneRequest) (*geojson.FeatureCollection, error) {
	if len(req.Cutoffs) == 0 {
		return nil, fmt.Errorf("isochrone request needs at least one cutoff")
	}
	body, status, err := c.get("/isochrone", req.values())
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s/isochrone", status, c.RouterURL())
	}
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("parsing isochrone GeoJSON: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("isochrone returned no polygons")
	}
	return fc, nil
}
