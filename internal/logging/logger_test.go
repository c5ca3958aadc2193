package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plagrelay/internal/config"
	"plagrelay/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, &config.LogConfig{Level: "info", Format: "json"})

	logger.Debug().Msg("hidden")
	logger.Info().Str("backend", "single-user").Msg("submitted")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "submitted", entry["message"])
	assert.Equal(t, "plagrelay", entry["app"])
	assert.Equal(t, "single-user", entry["backend"])
}

func TestNew_ECS(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, &config.LogConfig{Level: "debug", Format: "ecs"})

	logger.Warn().Msg("retrying")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "retrying", entry["message"])
	assert.Equal(t, "warn", entry["log.level"])
	assert.Contains(t, entry, "ecs.version")
}

func TestNew_ConsoleDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, &config.LogConfig{Level: "bogus"})

	logger.Debug().Msg("hidden")
	logger.Info().Msg("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}
