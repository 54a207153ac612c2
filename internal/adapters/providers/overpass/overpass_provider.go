package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
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
	interpreterURL       = "https://overpass-api.de/api/interpreter"
	defaultUserAgent     = "HPV-Prevention-Website/2.0"
	defaultServerTimeout = 25 * time.Second
	defaultCacheTTL      = 60 * 60
	upstreamName         = "overpass"
)

// Options configures a Provider
type Options struct {
	URL             string
	UserAgent       string
	ServerTimeout   time.Duration
	HTTPClient      *http.Client
	Cache           providers.CacheProvider
	CacheTTLSeconds int
	Metrics         *observability.Metrics
}

// Provider implements FacilityQueryProvider against an Overpass API interpreter.
type Provider struct {
	url           string
	userAgent     string
	serverTimeout time.Duration
	httpClient    *http.Client
	cache         providers.CacheProvider
	cacheTTL      int
	metrics       *observability.Metrics
}

// NewProvider creates a new Overpass facility query provider.
// The zero-value HTTP client has no timeout; the server-side budget is
// requested in the query itself.
func NewProvider(opts Options) *Provider {
	if strings.TrimSpace(opts.URL) == "" {
		opts.URL = interpreterURL
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.ServerTimeout <= 0 {
		opts.ServerTimeout = defaultServerTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.CacheTTLSeconds <= 0 {
		opts.CacheTTLSeconds = defaultCacheTTL
	}
	return &Provider{
		url:           opts.URL,
		userAgent:     opts.UserAgent,
		serverTimeout: opts.ServerTimeout,
		httpClient:    opts.HTTPClient,
		cache:         opts.Cache,
		cacheTTL:      opts.CacheTTLSeconds,
		metrics:       opts.Metrics,
	}
}

// NearbyFacilities returns the raw facility elements within radiusMeters of center.
func (p *Provider) NearbyFacilities(ctx context.Context, center entities.Coordinates, radiusMeters int) ([]entities.RawFacilityRecord, error) {
	ctx, span := observability.StartSpan(ctx, "overpass.NearbyFacilities")
	defer span.End()
	observability.SetSpanAttributes(span,
		attribute.Float64("geo.latitude", center.Latitude),
		attribute.Float64("geo.longitude", center.Longitude),
		attribute.Int("geo.radius_m", radiusMeters),
	)

	cacheKey := fmt.Sprintf("facilities:v1:%.4f,%.4f:%d", center.Latitude, center.Longitude, radiusMeters)
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var records []entities.RawFacilityRecord
			if err := json.Unmarshal(cached, &records); err == nil {
				observability.RecordCacheHit(ctx, p.metrics, "facilities")
				return records, nil
			}
		}
		observability.RecordCacheMiss(ctx, p.metrics, "facilities")
	}

	query := BuildQuery(center, radiusMeters, p.serverTimeout)

	start := time.Now()
	payload, err := p.doInterpreterRequest(ctx, query)
	observability.RecordUpstreamMetric(ctx, p.metrics, upstreamName, time.Since(start), err)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	records := make([]entities.RawFacilityRecord, 0, len(payload.Elements))
	for _, el := range payload.Elements {
		records = append(records, el.toRecord())
	}
	observability.SetSpanAttributes(span, attribute.Int("overpass.elements", len(records)))

	if p.cache != nil {
		if data, err := json.Marshal(records); err == nil {
			if err := p.cache.Set(ctx, cacheKey, data, p.cacheTTL); err != nil {
				observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to cache facility query result")
			}
		}
	}

	return records, nil
}

func (p *Provider) doInterpreterRequest(ctx context.Context, query string) (*interpreterResponse, error) {
	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build facility query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("facility query request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("facility query returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload interpreterResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode facility query response: %w", err)
	}

	return &payload, nil
}

type interpreterResponse struct {
	Elements []element `json:"elements"`
}

type element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *latLon           `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type latLon struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// toRecord prefers the element's own position and falls back to the way centroid.
func (e element) toRecord() entities.RawFacilityRecord {
	record := entities.RawFacilityRecord{
		ID:   e.Type + "/" + strconv.FormatInt(e.ID, 10),
		Kind: e.Type,
		Tags: e.Tags,
	}
	if record.Tags == nil {
		record.Tags = map[string]string{}
	}

	switch {
	case e.Lat != nil && e.Lon != nil:
		record.Coordinates = &entities.Coordinates{Latitude: *e.Lat, Longitude: *e.Lon}
	case e.Center != nil && e.Center.Lat != nil && e.Center.Lon != nil:
		record.Coordinates = &entities.Coordinates{Latitude: *e.Center.Lat, Longitude: *e.Center.Lon}
	}

	return record
}
