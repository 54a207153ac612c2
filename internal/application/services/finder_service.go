package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/providers"
	"github.com/zatekoja/hpv-prevention/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/hpv-prevention/backend/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// FinderOptions tunes a FinderService
type FinderOptions struct {
	RadiusMeters int
	ResultLimit  int
	Scoring      *ScoringTable
	Metrics      *observability.Metrics
	Tracker      SearchTracker
}

// FinderService runs the geocode, query and rank pipeline for one search
type FinderService struct {
	resolver     *LocationResolver
	facilities   providers.FacilityQueryProvider
	radiusMeters int
	limit        int
	scoring      *ScoringTable
	metrics      *observability.Metrics
	tracker      SearchTracker
}

// NewFinderService creates a new finder service
func NewFinderService(resolver *LocationResolver, facilities providers.FacilityQueryProvider, opts FinderOptions) *FinderService {
	if opts.RadiusMeters <= 0 {
		opts.RadiusMeters = 15000
	}
	if opts.ResultLimit <= 0 {
		opts.ResultLimit = DefaultResultLimit
	}
	if opts.Scoring == nil {
		opts.Scoring = DefaultScoringTable()
	}
	return &FinderService{
		resolver:     resolver,
		facilities:   facilities,
		radiusMeters: opts.RadiusMeters,
		limit:        opts.ResultLimit,
		scoring:      opts.Scoring,
		metrics:      opts.Metrics,
		tracker:      opts.Tracker,
	}
}

// ResolveLocation geocodes input without searching for facilities
func (s *FinderService) ResolveLocation(ctx context.Context, input string) (*entities.ResolvedLocation, error) {
	return s.resolver.Resolve(ctx, input)
}

// FindNearby resolves input and returns the ranked facilities around it
func (s *FinderService) FindNearby(ctx context.Context, input string) (*entities.FacilitySearchResult, error) {
	ctx, span := observability.StartSpan(ctx, "FinderService.FindNearby")
	defer span.End()
	start := time.Now()

	location, err := s.resolver.Resolve(ctx, input)
	if err != nil {
		observability.RecordError(span, err)
		s.track(ctx, input, start, nil, nil, err)
		return nil, err
	}

	result, err := s.SearchFacilities(ctx, location.Coordinates, location.Query)
	if err != nil {
		observability.RecordError(span, err)
		s.track(ctx, input, start, location, nil, err)
		return nil, err
	}
	result.ResolvedName = location.DisplayName
	s.track(ctx, input, start, location, result, nil)
	return result, nil
}

// track reports a search outcome to the tracker. Empty input and searches
// under WithoutSearchTracking are not reported.
func (s *FinderService) track(ctx context.Context, input string, start time.Time, location *entities.ResolvedLocation, result *entities.FacilitySearchResult, err error) {
	if s.tracker == nil || searchTrackingDisabled(ctx) || apperrors.IsType(err, apperrors.ErrorTypeInputMissing) {
		return
	}

	event := &entities.SearchEvent{
		ID:        uuid.New().String(),
		Query:     strings.TrimSpace(input),
		Status:    entities.SearchStatusFailed,
		LatencyMs: time.Since(start).Milliseconds(),
		CreatedAt: time.Now().UTC(),
	}
	if location != nil {
		event.Latitude = location.Coordinates.Latitude
		event.Longitude = location.Coordinates.Longitude
	}
	if result != nil {
		event.ID = result.SearchID
		event.Status = result.Status
		event.ResultCount = result.Count
	}
	if appErr, ok := apperrors.As(err); ok {
		event.ErrorType = string(appErr.Type)
	}

	s.tracker.TrackSearch(ctx, event)
}

// SearchFacilities queries and ranks facilities around origin. label is the
// user's original input, echoed in the result.
func (s *FinderService) SearchFacilities(ctx context.Context, origin entities.Coordinates, label string) (*entities.FacilitySearchResult, error) {
	ctx, span := observability.StartSpan(ctx, "FinderService.SearchFacilities")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)
	searchID := uuid.New().String()

	records, err := s.facilities.NearbyFacilities(ctx, origin, s.radiusMeters)
	if err != nil {
		observability.RecordError(span, err)
		logger.Error().Err(err).Str("search_id", searchID).Msg("facility query failed")
		return nil, apperrors.NewServiceUnavailableError(MsgFacilitySearchError, err)
	}

	ranked := RankFacilities(origin, records, s.scoring, s.limit)
	observability.RecordSearchResults(ctx, s.metrics, len(ranked))
	observability.SetSpanAttributes(span,
		attribute.String("search.id", searchID),
		attribute.Int("search.raw_count", len(records)),
		attribute.Int("search.result_count", len(ranked)),
	)

	result := &entities.FacilitySearchResult{
		SearchID:   searchID,
		Location:   strings.TrimSpace(label),
		Origin:     origin,
		RadiusKm:   float64(s.radiusMeters) / 1000,
		Status:     entities.SearchStatusOK,
		Facilities: ranked,
		Count:      len(ranked),
	}
	if len(ranked) == 0 {
		result.Status = entities.SearchStatusNoResults
		result.Suggestions = entities.NoResultsSuggestions
	}

	logger.Info().
		Str("search_id", searchID).
		Str("location", result.Location).
		Int("raw_count", len(records)).
		Int("result_count", result.Count).
		Msg("facility search completed")

	return result, nil
}
