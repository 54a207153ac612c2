package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/providers"
	"github.com/zatekoja/hpv-prevention/backend/internal/infrastructure/observability"
	"go.opentelemetry.io/otel/attribute"
)

const (
	googleGeocodeURL   = "https://maps.googleapis.com/maps/api/geocode/json"
	googleUpstreamName = "google_geocode"
)

// GoogleOptions configures a GoogleGeolocationProvider
type GoogleOptions struct {
	APIKey          string
	BaseURL         string
	Region          string
	HTTPClient      *http.Client
	Cache           providers.CacheProvider
	CacheTTLSeconds int
	Metrics         *observability.Metrics
}

// GoogleGeolocationProvider implements the GeolocationProvider using the Google Geocoding API.
type GoogleGeolocationProvider struct {
	apiKey     string
	baseURL    string
	region     string
	httpClient *http.Client
	cache      providers.CacheProvider
	cacheTTL   int
	metrics    *observability.Metrics
}

// NewGoogleGeolocationProvider creates a new Google geolocation provider.
func NewGoogleGeolocationProvider(opts GoogleOptions) (*GoogleGeolocationProvider, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("google maps api key is required")
	}
	if strings.TrimSpace(opts.BaseURL) == "" {
		opts.BaseURL = googleGeocodeURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if opts.CacheTTLSeconds <= 0 {
		opts.CacheTTLSeconds = defaultGeocodeCacheTTL
	}
	return &GoogleGeolocationProvider{
		apiKey:     opts.APIKey,
		baseURL:    opts.BaseURL,
		region:     strings.ToLower(strings.TrimSpace(opts.Region)),
		httpClient: opts.HTTPClient,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTLSeconds,
		metrics:    opts.Metrics,
	}, nil
}

// Geocode resolves a query to the first Google geocoding result.
func (g *GoogleGeolocationProvider) Geocode(ctx context.Context, query string) (*providers.GeocodedPlace, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("query is required")
	}

	ctx, span := observability.StartSpan(ctx, "google.Geocode")
	defer span.End()
	observability.SetSpanAttributes(span, attribute.String("geocode.query", trimmed))

	cacheKey := "geo:v1:google:" + g.region + ":" + hashKey(strings.ToLower(trimmed))
	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var place providers.GeocodedPlace
			if err := json.Unmarshal(cached, &place); err == nil && place.Coordinates.Valid() {
				observability.RecordCacheHit(ctx, g.metrics, "geocode")
				return &place, nil
			}
		}
		observability.RecordCacheMiss(ctx, g.metrics, "geocode")
	}

	start := time.Now()
	resp, err := g.doGeocodeRequest(ctx, trimmed)
	observability.RecordUpstreamMetric(ctx, g.metrics, googleUpstreamName, time.Since(start), err)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	if resp.Status == "ZERO_RESULTS" || len(resp.Results) == 0 {
		return nil, providers.ErrNoMatch
	}

	result := resp.Results[0]
	coords := entities.Coordinates{
		Latitude:  result.Geometry.Location.Lat,
		Longitude: result.Geometry.Location.Lng,
	}
	if !coords.Valid() {
		err := fmt.Errorf("geocode response coordinates out of range: %f,%f", coords.Latitude, coords.Longitude)
		observability.RecordError(span, err)
		return nil, err
	}
	place := &providers.GeocodedPlace{DisplayName: result.FormattedAddress, Coordinates: coords}

	if g.cache != nil {
		if payload, err := json.Marshal(place); err == nil {
			if err := g.cache.Set(ctx, cacheKey, payload, g.cacheTTL); err != nil {
				observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to cache geocode result")
			}
		}
	}

	return place, nil
}

func (g *GoogleGeolocationProvider) doGeocodeRequest(ctx context.Context, address string) (*googleGeocodeResponse, error) {
	params := url.Values{}
	params.Set("address", address)
	if g.region != "" {
		params.Set("region", g.region)
		params.Set("components", "country:"+g.region)
	}
	params.Set("key", g.apiKey)

	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var payload googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	switch payload.Status {
	case "OK", "ZERO_RESULTS":
		return &payload, nil
	}
	if payload.ErrorMessage != "" {
		return nil, fmt.Errorf("geocode request failed: %s - %s", payload.Status, payload.ErrorMessage)
	}
	return nil, fmt.Errorf("geocode request failed: %s", payload.Status)
}

type googleGeocodeResponse struct {
	Status       string                `json:"status"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Results      []googleGeocodeResult `json:"results"`
}

type googleGeocodeResult struct {
	FormattedAddress string         `json:"formatted_address"`
	Geometry         googleGeometry `json:"geometry"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
