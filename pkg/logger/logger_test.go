package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxlabs/billingkit/pkg/logger"
)

func TestNew_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithAttr(slog.String("service", "billing")))

	log.Info("purchase started", "product_id", "sub_basic_monthly")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "purchase started", record["msg"])
	assert.Equal(t, "billing", record["service"])
	assert.Equal(t, "sub_basic_monthly", record["product_id"])
}

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))

	log.Info("dropped")
	log.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}

func TestNew_DevelopmentPreset(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithDevelopment("billing"), logger.WithOutput(&buf))

	log.Debug("verbose detail")

	out := buf.String()
	assert.Contains(t, out, "verbose detail")
	assert.Contains(t, out, "service=billing")
	assert.False(t, strings.HasPrefix(out, "{"), "development preset should use text format")
}
