package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/providers"
	"github.com/zatekoja/hpv-prevention/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/hpv-prevention/backend/pkg/errors"
)

// User-facing messages for location resolution failures
const (
	MsgInputMissing        = "Please enter a city name, PIN code, or address to search for vaccination centers."
	MsgLocationNotFound    = "Location not found. Please try a different city name, PIN code, or address."
	MsgGeocodingFailed     = "Geocoding service temporarily unavailable"
	MsgFacilitySearchError = "Healthcare facility search service temporarily unavailable"
)

var pinCodePattern = regexp.MustCompile(`^\d{6}$`)

// LocationResolver turns free-text location input into coordinates
type LocationResolver struct {
	geocoder    providers.GeolocationProvider
	countryName string
}

// NewLocationResolver creates a resolver that biases queries towards countryName
func NewLocationResolver(geocoder providers.GeolocationProvider, countryName string) *LocationResolver {
	if countryName == "" {
		countryName = "India"
	}
	return &LocationResolver{
		geocoder:    geocoder,
		countryName: countryName,
	}
}

// QualifyQuery normalises input before geocoding. A six-digit PIN code becomes
// "<pin> <country>"; anything else gets ", <country>" appended unless it
// already names the country.
func (r *LocationResolver) QualifyQuery(input string) string {
	trimmed := strings.TrimSpace(input)
	if pinCodePattern.MatchString(trimmed) {
		return trimmed + " " + r.countryName
	}
	if strings.Contains(strings.ToLower(trimmed), strings.ToLower(r.countryName)) {
		return trimmed
	}
	return trimmed + ", " + r.countryName
}

// Resolve geocodes input, returning InputMissing, LocationNotFound or
// ServiceUnavailable errors as appropriate.
func (r *LocationResolver) Resolve(ctx context.Context, input string) (*entities.ResolvedLocation, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, apperrors.NewInputMissingError(MsgInputMissing)
	}

	logger := observability.LoggerFromContext(ctx)
	query := r.QualifyQuery(trimmed)

	place, err := r.geocoder.Geocode(ctx, query)
	if err != nil {
		if errors.Is(err, providers.ErrNoMatch) {
			logger.Info().Str("query", query).Msg("location not found")
			return nil, apperrors.NewLocationNotFoundError(MsgLocationNotFound)
		}
		logger.Error().Err(err).Str("query", query).Msg("geocoding failed")
		return nil, apperrors.NewServiceUnavailableError(MsgGeocodingFailed, err)
	}
	if place == nil || !place.Coordinates.Valid() {
		return nil, apperrors.NewServiceUnavailableError(MsgGeocodingFailed, fmt.Errorf("invalid geocoding result for %q", query))
	}

	logger.Debug().
		Str("query", query).
		Float64("lat", place.Coordinates.Latitude).
		Float64("lng", place.Coordinates.Longitude).
		Msg("location resolved")

	return &entities.ResolvedLocation{
		Query:       trimmed,
		DisplayName: place.DisplayName,
		Coordinates: place.Coordinates,
	}, nil
}
