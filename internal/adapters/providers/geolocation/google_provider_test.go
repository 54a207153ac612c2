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

func newGoogleServer(t *testing.T, body string, calls *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "in", r.URL.Query().Get("region"))
		assert.Equal(t, "country:in", r.URL.Query().Get("components"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewGoogleGeolocationProvider_RequiresKey(t *testing.T) {
	_, err := NewGoogleGeolocationProvider(GoogleOptions{})
	assert.Error(t, err)
}

func TestGoogleGeolocationProvider_Geocode(t *testing.T) {
	server := newGoogleServer(t, `{"status":"OK","results":[{"formatted_address":"Pune, Maharashtra, India","geometry":{"location":{"lat":18.5204,"lng":73.8567}}}]}`, nil)

	provider, err := NewGoogleGeolocationProvider(GoogleOptions{APIKey: "test-key", BaseURL: server.URL, Region: "IN", HTTPClient: server.Client()})
	require.NoError(t, err)

	place, err := provider.Geocode(context.Background(), "Pune India")
	require.NoError(t, err)
	assert.Equal(t, "Pune, Maharashtra, India", place.DisplayName)
	assert.Equal(t, 18.5204, place.Coordinates.Latitude)
	assert.Equal(t, 73.8567, place.Coordinates.Longitude)
}

func TestGoogleGeolocationProvider_Statuses(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantMatch bool
	}{
		{name: "zero results", body: `{"status":"ZERO_RESULTS","results":[]}`, wantMatch: true},
		{name: "denied", body: `{"status":"REQUEST_DENIED","error_message":"bad key"}`},
		{name: "over quota", body: `{"status":"OVER_QUERY_LIMIT"}`},
		{name: "malformed", body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newGoogleServer(t, tt.body, nil)
			provider, err := NewGoogleGeolocationProvider(GoogleOptions{APIKey: "test-key", BaseURL: server.URL, Region: "in", HTTPClient: server.Client()})
			require.NoError(t, err)

			_, err = provider.Geocode(context.Background(), "Atlantis India")
			require.Error(t, err)
			assert.Equal(t, tt.wantMatch, err == providers.ErrNoMatch)
		})
	}
}

func TestGoogleGeolocationProvider_Cache(t *testing.T) {
	mr := miniredis.RunT(t)
	adapter := cache.NewRedisAdapter(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	var calls int32
	server := newGoogleServer(t, `{"status":"OK","results":[{"formatted_address":"Delhi, India","geometry":{"location":{"lat":28.6139,"lng":77.209}}}]}`, &calls)
	provider, err := NewGoogleGeolocationProvider(GoogleOptions{APIKey: "test-key", BaseURL: server.URL, Region: "in", HTTPClient: server.Client(), Cache: adapter})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		place, err := provider.Geocode(context.Background(), "Delhi India")
		require.NoError(t, err)
		assert.Equal(t, "Delhi, India", place.DisplayName)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
