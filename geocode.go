package otp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Geocode looks a place name up against the router's built-in geocoder, which
// indexes the stops and stations of the loaded graph.
func (c *Connection) Geocode(query string, autocomplete bool) ([]GeocodeResult, error) {
	if query == "" {
		return nil, fmt.Errorf("geocode query must not be empty")
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("autocomplete", strconv.FormatBool(autocomplete))
	q.Set("corners", "true")

	body, status, err := c.get("/geocode", q)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s/geocode", status, c.RouterURL())
	}
	var results []GeocodeResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("parsing geocode response: %w", err)
	}
	return results, nil
}
