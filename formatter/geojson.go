package formatter

import (
	"github.com/paulmach/orb/geojson"

	otp "github.com/kimnewzealand/opentripplanner"
)

// LegsGeoJSON renders every leg geometry in a plan as a LineString feature,
// tagged with enough properties to style a map by itinerary and mode.
func LegsGeoJSON(plan *otp.TripPlan) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for i, it := range plan.Itineraries {
		for j, leg := range it.Legs {
			ls, err := leg.Geometry()
			if err != nil {
				return nil, err
			}
			if len(ls) == 0 {
				continue
			}
			f := geojson.NewFeature(ls)
			f.Properties["itinerary"] = i + 1
			f.Properties["leg"] = j + 1
			f.Properties["mode"] = leg.Mode
			if leg.RouteShortName != "" {
				f.Properties["route"] = leg.RouteShortName
			}
			f.Properties["distance_m"] = leg.Distance
			fc.Append(f)
		}
	}
	return fc.MarshalJSON()
}

// IsochroneGeoJSON renders a travel-time surface back to GeoJSON bytes.
func IsochroneGeoJSON(fc *geojson.FeatureCollection) ([]byte, error) {
	return fc.MarshalJSON()
}
