package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFromContext_AddsRequestID(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	var buf bytes.Buffer
	initLogger(&buf, "travel-planner", "production")

	ctx := WithRequestID(context.Background(), "req-123")
	LoggerFromContext(ctx).Info().Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "travel-planner", entry["service"])
	assert.Equal(t, "hello", entry["message"])
	assert.NotContains(t, entry, "trace_id")
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}
