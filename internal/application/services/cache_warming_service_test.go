package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/hpv-prevention/backend/internal/application/services"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
)

type MockNearbySearcher struct {
	mock.Mock
}

func (m *MockNearbySearcher) FindNearby(ctx context.Context, input string) (*entities.FacilitySearchResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FacilitySearchResult), args.Error(1)
}

func TestCacheWarmingService_WarmCache(t *testing.T) {
	finder := new(MockNearbySearcher)
	finder.On("FindNearby", mock.Anything, "Mumbai").Return(&entities.FacilitySearchResult{Count: 3}, nil).Once()
	finder.On("FindNearby", mock.Anything, "Delhi").Return(nil, errors.New("overpass down")).Once()
	finder.On("FindNearby", mock.Anything, "Pune").Return(&entities.FacilitySearchResult{}, nil).Once()

	svc := services.NewCacheWarmingService(finder, []string{"Mumbai", "Delhi", " ", "mumbai ", "Pune"})

	assert.Equal(t, 2, svc.WarmCache(context.Background()))
	finder.AssertExpectations(t)
}

func TestCacheWarmingService_StopsWhenCancelled(t *testing.T) {
	finder := new(MockNearbySearcher)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := services.NewCacheWarmingService(finder, []string{"Mumbai", "Delhi"})

	assert.Equal(t, 0, svc.WarmCache(ctx))
	finder.AssertNotCalled(t, "FindNearby", mock.Anything, mock.Anything)
}

func TestCacheWarmingService_DoesNotTrackWarmUpSearches(t *testing.T) {
	geocoder := new(MockGeolocationProvider)
	geocoder.On("Geocode", mock.Anything, "Mumbai, India").Return(mumbaiPlace, nil)
	facilities := new(MockFacilityQueryProvider)
	facilities.On("NearbyFacilities", mock.Anything, mock.Anything, mock.Anything).Return([]entities.RawFacilityRecord{
		{ID: "node/1", Coordinates: &entities.Coordinates{Latitude: 18.94, Longitude: 72.83}, Tags: map[string]string{"amenity": "clinic"}},
	}, nil)

	tracker := &recordingTracker{}
	finder := services.NewFinderService(services.NewLocationResolver(geocoder, "India"), facilities, services.FinderOptions{Tracker: tracker})

	assert.Equal(t, 1, services.NewCacheWarmingService(finder, []string{"Mumbai"}).WarmCache(context.Background()))
	assert.Empty(t, tracker.events)

	_, err := finder.FindNearby(context.Background(), "Mumbai")
	assert.NoError(t, err)
	assert.Len(t, tracker.events, 1)
	facilities.AssertNumberOfCalls(t, "NearbyFacilities", 2)
}
