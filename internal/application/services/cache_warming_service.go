package services

import (
	"context"
	"strings"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
	"github.com/zatekoja/hpv-prevention/backend/internal/infrastructure/observability"
)

// NearbySearcher runs a full facility search for one location
type NearbySearcher interface {
	FindNearby(ctx context.Context, input string) (*entities.FacilitySearchResult, error)
}

// CacheWarmingService pre-populates the geocode and facility caches for
// frequently searched locations
type CacheWarmingService struct {
	finder    NearbySearcher
	locations []string
}

// NewCacheWarmingService creates a new cache warming service
func NewCacheWarmingService(finder NearbySearcher, locations []string) *CacheWarmingService {
	return &CacheWarmingService{finder: finder, locations: locations}
}

// WarmCache searches each configured location in turn and returns how many
// succeeded. Failures are logged and skipped. It stops early when ctx is done.
// Warm-up searches are not reported as search events.
func (s *CacheWarmingService) WarmCache(ctx context.Context) int {
	ctx = WithoutSearchTracking(ctx)
	logger := observability.LoggerFromContext(ctx)
	logger.Info().Int("locations", len(s.locations)).Msg("starting cache warming")

	warmed := 0
	seen := make(map[string]struct{}, len(s.locations))
	for _, location := range s.locations {
		if ctx.Err() != nil {
			break
		}
		key := strings.ToLower(strings.TrimSpace(location))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		result, err := s.finder.FindNearby(ctx, location)
		if err != nil {
			logger.Warn().Err(err).Str("location", location).Msg("failed to warm location")
			continue
		}
		warmed++
		logger.Debug().Str("location", location).Int("facilities", result.Count).Msg("warmed location")
	}

	logger.Info().Int("warmed", warmed).Msg("cache warming completed")
	return warmed
}
