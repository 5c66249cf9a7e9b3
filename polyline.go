package otp

import (
	"fmt"

	"github.com/paulmach/orb"
	gopolyline "github.com/twpayne/go-polyline"
)

// DecodePolyline decodes an encoded polyline as served in legGeometry into a
// LineString. The wire format carries lat,lon pairs; orb points are lon,lat.
func DecodePolyline(points string) (orb.LineString, error) {
	if points == "" {
		return nil, nil
	}
	coords, rest, err := gopolyline.DecodeCoords([]byte(points))
	if err != nil {
		return nil, fmt.Errorf("decoding polyline: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("decoding polyline: %d trailing bytes", len(rest))
	}
	ls := make(orb.LineString, len(coords))
	for i, c := range coords {
		ls[i] = orb.Point{c[1], c[0]}
	}
	return ls, nil
}
