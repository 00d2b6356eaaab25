package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("OTEL_SERVICE_NAME", "")
		t.Setenv("OTEL_ENABLED", "")
		t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "")

		cfg := ConfigFromEnv()
		assert.Equal(t, "blog", cfg.ServiceName)
		assert.False(t, cfg.Enabled)
		assert.Equal(t, 1.0, cfg.SampleRatio)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("OTEL_ENABLED", "true")
		t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "0.25")
		t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318/")

		cfg := ConfigFromEnv()
		assert.True(t, cfg.Enabled)
		assert.Equal(t, 0.25, cfg.SampleRatio)
		assert.Equal(t, "http://collector:4318", cfg.OTLPEndpoint)
	})

	t.Run("out of range ratio is ignored", func(t *testing.T) {
		t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "3")
		assert.Equal(t, 1.0, ConfigFromEnv().SampleRatio)
	})
}

func TestInitProvider_Disabled(t *testing.T) {
	shutdown, err := InitProvider(context.Background(), Config{ServiceName: "test"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
