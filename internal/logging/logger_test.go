package logging

import (
	"bytes"
	"context"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, false, "warn")

	Info(context.Background()).Msg("hidden")
	Warn(context.Background()).Str("use_case", "meter_readings").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "meter_readings", entry["use_case"])
}

func TestInitWriter_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, false, "chatty")

	Debug(context.Background()).Msg("hidden")
	assert.Zero(t, buf.Len())
	Info(context.Background()).Msg("shown")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestWithContext_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, false, "info")

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "calc")
	defer span.End()

	Info(ctx).Msg("traced")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["traceId"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["spanId"])
}
