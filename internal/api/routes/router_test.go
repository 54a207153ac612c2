package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/hpv-prevention/backend/internal/adapters/providers/geolocation"
	"github.com/zatekoja/hpv-prevention/backend/internal/api/handlers"
	"github.com/zatekoja/hpv-prevention/backend/internal/api/routes"
	"github.com/zatekoja/hpv-prevention/backend/internal/api/views"
	"github.com/zatekoja/hpv-prevention/backend/internal/application/services"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
)

type stubFacilities struct {
	records []entities.RawFacilityRecord
}

func (s stubFacilities) NearbyFacilities(ctx context.Context, center entities.Coordinates, radiusMeters int) ([]entities.RawFacilityRecord, error) {
	return s.records, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	resolver := services.NewLocationResolver(geolocation.NewMockGeolocationProvider(), "India")
	finder := services.NewFinderService(resolver, stubFacilities{records: []entities.RawFacilityRecord{
		{ID: "node/1", Coordinates: &entities.Coordinates{Latitude: 18.94, Longitude: 72.83}, Tags: map[string]string{"amenity": "hospital", "name": "St. George Hospital"}},
	}}, services.FinderOptions{})

	content, err := services.NewContentService()
	require.NoError(t, err)
	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	router := routes.NewRouter(
		handlers.NewFacilityHandler(finder),
		handlers.NewGeolocationHandler(finder),
		handlers.NewFinderPageHandler(finder, renderer),
		handlers.NewContentHandler(content, services.NewRiskAssessmentService()),
		routes.Options{},
	)

	server := httptest.NewServer(router.SetupRoutes())
	t.Cleanup(server.Close)
	return server
}

func TestRouter_Endpoints(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/facilities/nearby?location=Mumbai", "", http.StatusOK},
		{http.MethodGet, "/api/facilities/nearby?location=", "", http.StatusBadRequest},
		{http.MethodGet, "/api/facilities/nearby?location=Atlantis", "", http.StatusNotFound},
		{http.MethodGet, "/api/geocode?location=400001", "", http.StatusOK},
		{http.MethodGet, "/finder/results?location=Mumbai", "", http.StatusOK},
		{http.MethodGet, "/finder/loading", "", http.StatusOK},
		{http.MethodGet, "/api/content/myths-facts", "", http.StatusOK},
		{http.MethodGet, "/api/content/faq", "", http.StatusOK},
		{http.MethodGet, "/api/content/timeline", "", http.StatusOK},
		{http.MethodGet, "/api/content/checklist", "", http.StatusOK},
		{http.MethodPost, "/api/risk-assessment", `{"age":"18-26","vaccination":"unknown","screening":"never"}`, http.StatusOK},
		{http.MethodPost, "/api/checklist/progress", `{"completed":[]}`, http.StatusOK},
		{http.MethodPost, "/api/content/faq", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, server.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			resp, err := server.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		})
	}
}

func TestRouter_NearbyReturnsRankedFacilities(t *testing.T) {
	server := newTestServer(t)

	resp, err := server.Client().Get(server.URL + "/api/facilities/nearby?location=Mumbai")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body entities.FacilitySearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Mumbai", body.Location)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "St. George Hospital", body.Facilities[0].Name)
	assert.Equal(t, 45, body.Facilities[0].Priority)
}

func TestDefaultCacheRoutes(t *testing.T) {
	cfg := routes.DefaultCacheRoutes(600, 0)
	assert.True(t, cfg["/api/content/"].Enabled)
	assert.False(t, cfg["/api/geocode"].Enabled)
}
