package providers

import (
	"context"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
)

// FacilityQueryProvider finds raw facility records around a point
type FacilityQueryProvider interface {
	// NearbyFacilities returns every facility element within radiusMeters of center
	NearbyFacilities(ctx context.Context, center entities.Coordinates, radiusMeters int) ([]entities.RawFacilityRecord, error)
}
