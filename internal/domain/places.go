package domain

import "context"

// PlaceCandidate is a venue-shaped record returned by the external places lookup, not yet persisted.
type PlaceCandidate struct {
	ExternalID string
	Name       string
	Address    string
	Latitude   float64
	Longitude  float64
	PhotoNames []string
	Summary    string
	Types      []string
}

// PlacesSource queries a third-party nearby-places lookup.
// Implementations never fail the caller: an unavailable source yields no candidates.
type PlacesSource interface {
	SearchNearby(ctx context.Context, lat, lng float64, placeType string, radiusMeters int) []PlaceCandidate
	PhotoURL(photoName string, maxWidth int) string
}

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64
	Lng float64
}
