package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))
	assert.Equal(t, Default(), FromContext(nil)) //nolint:staticcheck // nil context fallback is part of the contract
}

func TestWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	ctx := WithLogger(context.Background(), &logger)
	got := FromContext(ctx)

	got.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestWithPatientAddsField(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := WithLogger(context.Background(), &logger)
	ctx = WithPatient(ctx, "Doe, Jane")

	FromContext(ctx).Info().Msg("processing")
	assert.Contains(t, buf.String(), `"patient":"Doe, Jane"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

func TestTestLoggerCaptures(t *testing.T) {
	tl := NewTestLogger(t)
	tl.Info().Str("visit", "pt visit").Msg("located")
	tl.Debug().Msg("detail")

	assert.Equal(t, 2, tl.Count())
	assert.True(t, tl.Contains("located"))

	tl.Clear()
	assert.Equal(t, 0, tl.Count())
}
