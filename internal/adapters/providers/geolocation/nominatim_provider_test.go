package geolocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/hpv-prevention/backend/internal/adapters/cache"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/providers"
)

func newNominatimServer(t *testing.T, status int, body string, calls *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "in", r.URL.Query().Get("countrycodes"))
		assert.Equal(t, "HPV-Prevention-Website/2.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNominatimProvider_Geocode(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`[{"lat":"18.9388","lon":"72.8354","display_name":"Fort, Mumbai, 400001, India"}]`))
	}))
	defer server.Close()

	provider := NewNominatimProvider(NominatimOptions{BaseURL: server.URL, CountryCode: "IN", HTTPClient: server.Client()})

	place, err := provider.Geocode(context.Background(), "400001 India")
	require.NoError(t, err)
	assert.Equal(t, "400001 India", gotQuery)
	assert.Equal(t, 18.9388, place.Coordinates.Latitude)
	assert.Equal(t, 72.8354, place.Coordinates.Longitude)
	assert.Equal(t, "Fort, Mumbai, 400001, India", place.DisplayName)
}

func TestNominatimProvider_NoMatch(t *testing.T) {
	server := newNominatimServer(t, http.StatusOK, `[]`, nil)
	provider := NewNominatimProvider(NominatimOptions{BaseURL: server.URL, CountryCode: "in", HTTPClient: server.Client()})

	_, err := provider.Geocode(context.Background(), "Atlantis, India")
	assert.ErrorIs(t, err, providers.ErrNoMatch)
}

func TestNominatimProvider_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusServiceUnavailable, body: `oops`},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `[]`},
		{name: "malformed json", status: http.StatusOK, body: `{"not":"an array"}`},
		{name: "unparsable latitude", status: http.StatusOK, body: `[{"lat":"north","lon":"72.8"}]`},
		{name: "out of range", status: http.StatusOK, body: `[{"lat":"123.0","lon":"72.8"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newNominatimServer(t, tt.status, tt.body, nil)
			provider := NewNominatimProvider(NominatimOptions{BaseURL: server.URL, CountryCode: "in", HTTPClient: server.Client()})

			_, err := provider.Geocode(context.Background(), "Mumbai, India")
			require.Error(t, err)
			assert.NotErrorIs(t, err, providers.ErrNoMatch)
		})
	}
}

func TestNominatimProvider_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	provider := NewNominatimProvider(NominatimOptions{BaseURL: url, CountryCode: "in"})
	_, err := provider.Geocode(context.Background(), "Mumbai, India")
	require.Error(t, err)
	assert.NotErrorIs(t, err, providers.ErrNoMatch)
}

func TestNominatimProvider_CachesResults(t *testing.T) {
	var calls int32
	server := newNominatimServer(t, http.StatusOK, `[{"lat":"19.0760","lon":"72.8777","display_name":"Mumbai"}]`, &calls)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	provider := NewNominatimProvider(NominatimOptions{
		BaseURL:     server.URL,
		CountryCode: "in",
		HTTPClient:  server.Client(),
		Cache:       cache.NewRedisAdapter(client),
	})

	ctx := context.Background()
	first, err := provider.Geocode(ctx, "Mumbai, India")
	require.NoError(t, err)
	second, err := provider.Geocode(ctx, "  mumbai, india ")
	require.NoError(t, err)

	assert.Equal(t, first.Coordinates, second.Coordinates)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNominatimProvider_DoesNotCacheMisses(t *testing.T) {
	var calls int32
	server := newNominatimServer(t, http.StatusOK, `[]`, &calls)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	provider := NewNominatimProvider(NominatimOptions{
		BaseURL:     server.URL,
		CountryCode: "in",
		HTTPClient:  server.Client(),
		Cache:       cache.NewRedisAdapter(client),
	})

	ctx := context.Background()
	_, err := provider.Geocode(ctx, "Nowhere, India")
	assert.ErrorIs(t, err, providers.ErrNoMatch)
	_, err = provider.Geocode(ctx, "Nowhere, India")
	assert.ErrorIs(t, err, providers.ErrNoMatch)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestMockGeolocationProvider(t *testing.T) {
	provider := NewMockGeolocationProvider()

	place, err := provider.Geocode(context.Background(), "400001 India")
	require.NoError(t, err)
	assert.Contains(t, place.DisplayName, "400001")

	_, err = provider.Geocode(context.Background(), "Atlantis, India")
	assert.ErrorIs(t, err, providers.ErrNoMatch)
}
