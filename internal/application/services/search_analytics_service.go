package services

import (
	"context"
	"time"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/providers"
	"github.com/zatekoja/hpv-prevention/backend/internal/infrastructure/observability"
)

const publishTimeout = 5 * time.Second

// SearchTracker receives the outcome of every facility search
type SearchTracker interface {
	TrackSearch(ctx context.Context, event *entities.SearchEvent)
}

type untrackedKey struct{}

// WithoutSearchTracking marks ctx so searches run under it are not reported
// to the SearchTracker. Used for internal searches such as cache warming.
func WithoutSearchTracking(ctx context.Context) context.Context {
	return context.WithValue(ctx, untrackedKey{}, true)
}

func searchTrackingDisabled(ctx context.Context) bool {
	disabled, _ := ctx.Value(untrackedKey{}).(bool)
	return disabled
}

// SearchAnalyticsService publishes search events on an event bus
type SearchAnalyticsService struct {
	bus     providers.EventBus
	channel string
}

// NewSearchAnalyticsService creates a tracker publishing to channel
func NewSearchAnalyticsService(bus providers.EventBus, channel string) *SearchAnalyticsService {
	if channel == "" {
		channel = providers.EventChannelSearches
	}
	return &SearchAnalyticsService{bus: bus, channel: channel}
}

// TrackSearch publishes event in the background so the search is never
// delayed by the bus.
func (s *SearchAnalyticsService) TrackSearch(ctx context.Context, event *entities.SearchEvent) {
	logger := observability.LoggerFromContext(ctx)
	go func() {
		// The request context may be cancelled before the publish completes.
		bgCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := s.bus.Publish(bgCtx, s.channel, event); err != nil {
			logger.Warn().Err(err).Str("event_id", event.ID).Msg("failed to publish search event")
		}
	}()
}
