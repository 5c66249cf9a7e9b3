package formatter

import (
	"bytes"
	"encoding/csv"
	"strconv"

	otp "github.com/kimnewzealand/opentripplanner"
)

// ItinerariesCSV renders one row per itinerary.
func ItinerariesCSV(plan *otp.TripPlan) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"itinerary", "start", "end", "duration_sec", "walk_time_sec",
		"transit_time_sec", "waiting_time_sec", "walk_distance_m", "transfers", "legs",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, it := range plan.Itineraries {
		row := []string{
			strconv.Itoa(i + 1),
			iso8601FromUnixMillis(it.StartTime),
			iso8601FromUnixMillis(it.EndTime),
			strconv.FormatInt(it.Duration, 10),
			strconv.FormatInt(it.WalkTime, 10),
			strconv.FormatInt(it.TransitTime, 10),
			strconv.FormatInt(it.WaitingTime, 10),
			strconv.FormatFloat(it.WalkDistance, 'f', 1, 64),
			strconv.Itoa(it.Transfers),
			strconv.Itoa(len(it.Legs)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// LegsCSV renders one row per leg across all itineraries.
func LegsCSV(plan *otp.TripPlan) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"itinerary", "leg", "mode", "route", "headsign",
		"from", "to", "start", "end", "distance_m", "duration_sec",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, it := range plan.Itineraries {
		for j, leg := range it.Legs {
			route := leg.RouteShortName
			if route == "" {
				route = leg.Route
			}
			row := []string{
				strconv.Itoa(i + 1),
				strconv.Itoa(j + 1),
				leg.Mode,
				route,
				leg.Headsign,
				leg.From.Name,
				leg.To.Name,
				iso8601FromUnixMillis(leg.StartTime),
				iso8601FromUnixMillis(leg.EndTime),
				strconv.FormatFloat(leg.Distance, 'f', 1, 64),
				strconv.FormatFloat(leg.Duration, 'f', 0, 64),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
