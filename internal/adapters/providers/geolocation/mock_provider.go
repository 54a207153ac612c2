package geolocation

import (
	"context"
	"strings"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/providers"
)

// MockGeolocationProvider resolves a fixed set of Indian cities and PIN codes
// without any network access. Used for local development and tests.
type MockGeolocationProvider struct {
	places map[string]providers.GeocodedPlace
}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() *MockGeolocationProvider {
	return &MockGeolocationProvider{
		places: map[string]providers.GeocodedPlace{
			"mumbai":    {DisplayName: "Mumbai, Maharashtra, India", Coordinates: entities.Coordinates{Latitude: 19.0760, Longitude: 72.8777}},
			"400001":    {DisplayName: "Fort, Mumbai, Maharashtra, 400001, India", Coordinates: entities.Coordinates{Latitude: 18.9388, Longitude: 72.8354}},
			"delhi":     {DisplayName: "Delhi, India", Coordinates: entities.Coordinates{Latitude: 28.6139, Longitude: 77.2090}},
			"110001":    {DisplayName: "Connaught Place, New Delhi, 110001, India", Coordinates: entities.Coordinates{Latitude: 28.6315, Longitude: 77.2167}},
			"bangalore": {DisplayName: "Bengaluru, Karnataka, India", Coordinates: entities.Coordinates{Latitude: 12.9716, Longitude: 77.5946}},
			"chennai":   {DisplayName: "Chennai, Tamil Nadu, India", Coordinates: entities.Coordinates{Latitude: 13.0827, Longitude: 80.2707}},
			"kolkata":   {DisplayName: "Kolkata, West Bengal, India", Coordinates: entities.Coordinates{Latitude: 22.5726, Longitude: 88.3639}},
			"hyderabad": {DisplayName: "Hyderabad, Telangana, India", Coordinates: entities.Coordinates{Latitude: 17.3850, Longitude: 78.4867}},
			"pune":      {DisplayName: "Pune, Maharashtra, India", Coordinates: entities.Coordinates{Latitude: 18.5204, Longitude: 73.8567}},
		},
	}
}

// Geocode returns the first known place mentioned in the query
func (m *MockGeolocationProvider) Geocode(ctx context.Context, query string) (*providers.GeocodedPlace, error) {
	lower := strings.ToLower(query)
	// PIN codes first so "400001 India" is not matched by a city name.
	for _, key := range []string{"400001", "110001", "mumbai", "delhi", "bangalore", "chennai", "kolkata", "hyderabad", "pune"} {
		if strings.Contains(lower, key) {
			place := m.places[key]
			return &place, nil
		}
	}
	return nil, providers.ErrNoMatch
}
