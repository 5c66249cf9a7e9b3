// Package formatter renders trip plans and travel-time surfaces for CLI
// consumption: itineraries and legs as JSON or CSV tables, geometries as
// GeoJSON.
package formatter
