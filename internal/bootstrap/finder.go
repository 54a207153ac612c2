// Package bootstrap wires the facility finder from configuration.
package bootstrap

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/zatekoja/hpv-prevention/backend/internal/adapters/providers/geolocation"
	"github.com/zatekoja/hpv-prevention/backend/internal/adapters/providers/overpass"
	"github.com/zatekoja/hpv-prevention/backend/internal/application/services"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/providers"
	"github.com/zatekoja/hpv-prevention/backend/internal/infrastructure/observability"
	"github.com/zatekoja/hpv-prevention/backend/pkg/config"
)

// GeolocationProvider builds the geocoder named by cfg.Geocoder.Provider
func GeolocationProvider(cfg *config.Config, cache providers.CacheProvider, metrics *observability.Metrics) (providers.GeolocationProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Geocoder.Provider)) {
	case "", "nominatim":
		return geolocation.NewNominatimProvider(geolocation.NominatimOptions{
			BaseURL:         cfg.Geocoder.BaseURL,
			UserAgent:       cfg.Geocoder.UserAgent,
			CountryCode:     cfg.Geocoder.CountryCode,
			HTTPClient:      &http.Client{Timeout: cfg.Geocoder.Timeout},
			Cache:           cache,
			CacheTTLSeconds: cfg.Geocoder.CacheTTLSeconds,
			Metrics:         metrics,
		}), nil
	case "google":
		google, err := geolocation.NewGoogleGeolocationProvider(geolocation.GoogleOptions{
			APIKey:          cfg.Geocoder.APIKey,
			Region:          cfg.Geocoder.CountryCode,
			HTTPClient:      &http.Client{Timeout: cfg.Geocoder.Timeout},
			Cache:           cache,
			CacheTTLSeconds: cfg.Geocoder.CacheTTLSeconds,
			Metrics:         metrics,
		})
		if err != nil {
			return nil, err
		}
		return google, nil
	case "mock":
		return geolocation.NewMockGeolocationProvider(), nil
	default:
		return nil, fmt.Errorf("unknown geocoder provider %q", cfg.Geocoder.Provider)
	}
}

// FacilityQueryProvider builds the Overpass facility query provider
func FacilityQueryProvider(cfg *config.Config, cache providers.CacheProvider, metrics *observability.Metrics) providers.FacilityQueryProvider {
	return overpass.NewProvider(overpass.Options{
		URL:             cfg.Overpass.URL,
		UserAgent:       cfg.Overpass.UserAgent,
		ServerTimeout:   cfg.Overpass.ServerTimeout,
		HTTPClient:      &http.Client{Timeout: cfg.Overpass.Timeout},
		Cache:           cache,
		CacheTTLSeconds: cfg.Overpass.CacheTTLSeconds,
		Metrics:         metrics,
	})
}

// Dependencies are the optional shared collaborators of the finder. Any
// field may be nil.
type Dependencies struct {
	Cache   providers.CacheProvider
	Metrics *observability.Metrics
	Tracker services.SearchTracker
}

// FinderService wires the resolver, facility query provider and ranking
// into a FinderService.
func FinderService(cfg *config.Config, deps Dependencies) (*services.FinderService, error) {
	geocoder, err := GeolocationProvider(cfg, deps.Cache, deps.Metrics)
	if err != nil {
		return nil, err
	}

	resolver := services.NewLocationResolver(geocoder, cfg.Geocoder.CountryName)
	return services.NewFinderService(resolver, FacilityQueryProvider(cfg, deps.Cache, deps.Metrics), services.FinderOptions{
		RadiusMeters: cfg.Overpass.RadiusMeters,
		ResultLimit:  cfg.Overpass.ResultLimit,
		Metrics:      deps.Metrics,
		Tracker:      deps.Tracker,
	}), nil
}
