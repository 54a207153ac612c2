package observability

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFromContext_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = original }()

	ctx := WithRequestID(context.Background(), "req-123")
	LoggerFromContext(ctx).Info().Msg("hello")

	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestInitMetrics_RecordsWithoutExporter(t *testing.T) {
	metrics, err := InitMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordRequestMetric(ctx, metrics, "GET", "/api/facilities/nearby", 200, time.Millisecond)
		RecordUpstreamMetric(ctx, metrics, "nominatim", time.Millisecond, errors.New("boom"))
		RecordCacheHit(ctx, metrics, "geocode")
		RecordCacheMiss(ctx, metrics, "geocode")
		RecordSearchResults(ctx, metrics, 3)
	})
}

func TestRecordHelpers_NilMetrics(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordRequestMetric(ctx, nil, "GET", "/", 200, time.Millisecond)
		RecordUpstreamMetric(ctx, nil, "overpass", time.Millisecond, nil)
		RecordCacheHit(ctx, nil, "geocode")
		RecordCacheMiss(ctx, nil, "geocode")
		RecordSearchResults(ctx, nil, 0)
	})
}
