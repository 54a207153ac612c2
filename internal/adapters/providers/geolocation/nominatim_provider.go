package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/providers"
	"github.com/zatekoja/hpv-prevention/backend/internal/infrastructure/observability"
	"go.opentelemetry.io/otel/attribute"
)

const (
	nominatimSearchURL     = "https://nominatim.openstreetmap.org/search"
	defaultUserAgent       = "HPV-Prevention-Website/2.0"
	defaultGeocodeCacheTTL = 60 * 60 * 24 * 7
	defaultHTTPTimeout     = 15 * time.Second
	upstreamName           = "nominatim"
)

// NominatimOptions configures a NominatimProvider
type NominatimOptions struct {
	BaseURL         string
	UserAgent       string
	CountryCode     string
	HTTPClient      *http.Client
	Cache           providers.CacheProvider
	CacheTTLSeconds int
	Metrics         *observability.Metrics
}

// NominatimProvider implements the GeolocationProvider using the OpenStreetMap Nominatim search API.
type NominatimProvider struct {
	baseURL     string
	userAgent   string
	countryCode string
	httpClient  *http.Client
	cache       providers.CacheProvider
	cacheTTL    int
	metrics     *observability.Metrics
}

// NewNominatimProvider creates a new Nominatim geolocation provider.
func NewNominatimProvider(opts NominatimOptions) *NominatimProvider {
	if strings.TrimSpace(opts.BaseURL) == "" {
		opts.BaseURL = nominatimSearchURL
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if opts.CacheTTLSeconds <= 0 {
		opts.CacheTTLSeconds = defaultGeocodeCacheTTL
	}
	return &NominatimProvider{
		baseURL:     opts.BaseURL,
		userAgent:   opts.UserAgent,
		countryCode: strings.ToLower(strings.TrimSpace(opts.CountryCode)),
		httpClient:  opts.HTTPClient,
		cache:       opts.Cache,
		cacheTTL:    opts.CacheTTLSeconds,
		metrics:     opts.Metrics,
	}
}

// Geocode resolves a query to its single best match.
func (p *NominatimProvider) Geocode(ctx context.Context, query string) (*providers.GeocodedPlace, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("query is required")
	}

	ctx, span := observability.StartSpan(ctx, "nominatim.Geocode")
	defer span.End()
	observability.SetSpanAttributes(span, attribute.String("geocode.query", trimmed))

	cacheKey := "geo:v1:" + p.countryCode + ":" + hashKey(strings.ToLower(trimmed))
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var place providers.GeocodedPlace
			if err := json.Unmarshal(cached, &place); err == nil && place.Coordinates.Valid() {
				observability.RecordCacheHit(ctx, p.metrics, "geocode")
				return &place, nil
			}
		}
		observability.RecordCacheMiss(ctx, p.metrics, "geocode")
	}

	start := time.Now()
	results, err := p.doSearchRequest(ctx, trimmed)
	observability.RecordUpstreamMetric(ctx, p.metrics, upstreamName, time.Since(start), err)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	if len(results) == 0 {
		return nil, providers.ErrNoMatch
	}

	place, err := results[0].toPlace()
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	if p.cache != nil {
		if payload, err := json.Marshal(place); err == nil {
			if err := p.cache.Set(ctx, cacheKey, payload, p.cacheTTL); err != nil {
				observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to cache geocode result")
			}
		}
	}

	return place, nil
}

func (p *NominatimProvider) doSearchRequest(ctx context.Context, query string) ([]nominatimResult, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	if p.countryCode != "" {
		params.Set("countrycodes", p.countryCode)
	}
	params.Set("q", query)

	reqURL := fmt.Sprintf("%s?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var payload []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	return payload, nil
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// nominatimResult mirrors the relevant parts of the OSM search payload.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (r nominatimResult) toPlace() (*providers.GeocodedPlace, error) {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
	if err := errors.Join(latErr, lonErr); err != nil {
		return nil, fmt.Errorf("invalid coordinates in geocode response: %w", err)
	}

	coords := entities.Coordinates{Latitude: lat, Longitude: lon}
	if !coords.Valid() {
		return nil, fmt.Errorf("geocode response coordinates out of range: %f,%f", lat, lon)
	}

	return &providers.GeocodedPlace{
		DisplayName: r.DisplayName,
		Coordinates: coords,
	}, nil
}
