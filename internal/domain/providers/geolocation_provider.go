package providers

import (
	"context"
	"errors"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
)

// ErrNoMatch is returned by a GeolocationProvider when the query has no match
var ErrNoMatch = errors.New("no geocoding match")

// GeolocationProvider defines the interface for geocoding services
type GeolocationProvider interface {
	// Geocode resolves a fully qualified query to its single best match.
	// It returns ErrNoMatch when the service has no result for the query.
	Geocode(ctx context.Context, query string) (*GeocodedPlace, error)
}

// GeocodedPlace represents a geocoded match
type GeocodedPlace struct {
	DisplayName string               `json:"display_name"`
	Coordinates entities.Coordinates `json:"coordinates"`
}
