package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/hpv-prevention/backend/internal/api/handlers"
	"github.com/zatekoja/hpv-prevention/backend/internal/api/views"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/hpv-prevention/backend/pkg/errors"
)

type MockFinder struct {
	mock.Mock
}

func (m *MockFinder) FindNearby(ctx context.Context, input string) (*entities.FacilitySearchResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FacilitySearchResult), args.Error(1)
}

func (m *MockFinder) ResolveLocation(ctx context.Context, input string) (*entities.ResolvedLocation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ResolvedLocation), args.Error(1)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func sampleResult() *entities.FacilitySearchResult {
	return &entities.FacilitySearchResult{
		SearchID:     "search-1",
		Location:     "Mumbai",
		ResolvedName: "Mumbai, Maharashtra, India",
		Origin:       entities.Coordinates{Latitude: 18.9388, Longitude: 72.8354},
		RadiusKm:     15,
		Status:       entities.SearchStatusOK,
		Count:        1,
		Facilities: []entities.Facility{{
			ID:            "node/1",
			Name:          "Apollo Multi-specialty Hospital",
			Type:          entities.FacilityTypeHospital,
			Address:       entities.AddressNotAvailable,
			Coordinates:   entities.Coordinates{Latitude: 18.96, Longitude: 72.85},
			DistanceKm:    2.8,
			Priority:      75,
			DirectionsURL: "https://www.google.com/maps/dir/?api=1&destination=18.96,72.85",
		}},
	}
}

func TestFacilityHandler_FindNearby_ReturnsContract(t *testing.T) {
	finder := new(MockFinder)
	finder.On("FindNearby", mock.Anything, "Mumbai").Return(sampleResult(), nil)
	handler := handlers.NewFacilityHandler(finder)

	req := httptest.NewRequest(http.MethodGet, "/api/facilities/nearby?location=Mumbai", nil)
	rec := httptest.NewRecorder()
	handler.FindNearby(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body entities.FacilitySearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "search-1", body.SearchID)
	assert.Equal(t, entities.SearchStatusOK, body.Status)
	require.Len(t, body.Facilities, 1)
	assert.Equal(t, 75, body.Facilities[0].Priority)
	assert.Equal(t, entities.FacilityTypeHospital, body.Facilities[0].Type)
	finder.AssertExpectations(t)
}

func TestFacilityHandler_FindNearby_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"input missing", apperrors.NewInputMissingError("Please enter a location"), http.StatusBadRequest, "INPUT_MISSING"},
		{"not found", apperrors.NewLocationNotFoundError("Location not found"), http.StatusNotFound, "LOCATION_NOT_FOUND"},
		{"upstream", apperrors.NewServiceUnavailableError("Geocoding service temporarily unavailable", errors.New("503")), http.StatusBadGateway, "SERVICE_UNAVAILABLE"},
		{"validation", apperrors.NewValidationError("bad"), http.StatusBadRequest, "VALIDATION"},
		{"internal", apperrors.NewInternalError("boom", nil), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := new(MockFinder)
			finder.On("FindNearby", mock.Anything, mock.Anything).Return(nil, tt.err)
			handler := handlers.NewFacilityHandler(finder)

			req := httptest.NewRequest(http.MethodGet, "/api/facilities/nearby?location=x", nil)
			rec := httptest.NewRecorder()
			handler.FindNearby(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestFacilityHandler_FindNearby_PlainError(t *testing.T) {
	finder := new(MockFinder)
	finder.On("FindNearby", mock.Anything, mock.Anything).Return(nil, errors.New("unexpected"))
	handler := handlers.NewFacilityHandler(finder)

	rec := httptest.NewRecorder()
	handler.FindNearby(rec, httptest.NewRequest(http.MethodGet, "/api/facilities/nearby?location=x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "unexpected")
}

func TestGeolocationHandler_Geocode(t *testing.T) {
	finder := new(MockFinder)
	finder.On("ResolveLocation", mock.Anything, "400001").Return(&entities.ResolvedLocation{
		Query:       "400001",
		DisplayName: "Fort, Mumbai, Maharashtra, 400001, India",
		Coordinates: entities.Coordinates{Latitude: 18.9388, Longitude: 72.8354},
	}, nil)
	handler := handlers.NewGeolocationHandler(finder)

	rec := httptest.NewRecorder()
	handler.Geocode(rec, httptest.NewRequest(http.MethodGet, "/api/geocode?location=400001", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body entities.ResolvedLocation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 18.9388, body.Coordinates.Latitude)
	assert.Equal(t, "400001", body.Query)
}

func TestGeolocationHandler_Geocode_NotFound(t *testing.T) {
	finder := new(MockFinder)
	finder.On("ResolveLocation", mock.Anything, "Atlantis").
		Return(nil, apperrors.NewLocationNotFoundError("Location not found. Please try a different city name, PIN code, or address."))
	handler := handlers.NewGeolocationHandler(finder)

	rec := httptest.NewRecorder()
	handler.Geocode(rec, httptest.NewRequest(http.MethodGet, "/api/geocode?location=Atlantis", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Location not found")
}

func newPageHandler(t *testing.T, finder handlers.FacilityFinder) *handlers.FinderPageHandler {
	t.Helper()
	renderer, err := views.NewRenderer()
	require.NoError(t, err)
	return handlers.NewFinderPageHandler(finder, renderer)
}

func TestFinderPageHandler_Results(t *testing.T) {
	finder := new(MockFinder)
	finder.On("FindNearby", mock.Anything, "Mumbai").Return(sampleResult(), nil)
	handler := newPageHandler(t, finder)

	rec := httptest.NewRecorder()
	handler.Results(rec, httptest.NewRequest(http.MethodGet, "/finder/results?location=Mumbai", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Apollo Multi-specialty Hospital")
	assert.Contains(t, rec.Body.String(), "RECOMMENDED")
}

func TestFinderPageHandler_NoResults(t *testing.T) {
	finder := new(MockFinder)
	finder.On("FindNearby", mock.Anything, "Leh").Return(&entities.FacilitySearchResult{
		Location:    "Leh",
		Status:      entities.SearchStatusNoResults,
		Facilities:  []entities.Facility{},
		Suggestions: entities.NoResultsSuggestions,
	}, nil)
	handler := newPageHandler(t, finder)

	rec := httptest.NewRecorder()
	handler.Results(rec, httptest.NewRequest(http.MethodGet, "/finder/results?location=Leh", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No healthcare facilities found near")
}

func TestFinderPageHandler_ErrorView(t *testing.T) {
	finder := new(MockFinder)
	finder.On("FindNearby", mock.Anything, "Pune").
		Return(nil, apperrors.NewServiceUnavailableError("Healthcare facility search service temporarily unavailable", errors.New("429")))
	handler := newPageHandler(t, finder)

	rec := httptest.NewRecorder()
	handler.Results(rec, httptest.NewRequest(http.MethodGet, "/finder/results?location=Pune", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Search Error")
	assert.Contains(t, rec.Body.String(), "Healthcare facility search service temporarily unavailable")
	assert.Contains(t, rec.Body.String(), "location=Pune")
}

func TestFinderPageHandler_Loading(t *testing.T) {
	handler := newPageHandler(t, new(MockFinder))

	rec := httptest.NewRecorder()
	handler.Loading(rec, httptest.NewRequest(http.MethodGet, "/finder/loading", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Searching for HPV Vaccination Centers")
}
