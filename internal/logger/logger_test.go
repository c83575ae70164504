package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trknhr/namesake/internal/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, logger.ParseLevel("error"))
	assert.Equal(t, zerolog.Disabled, logger.ParseLevel("none"))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("bogus"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf, zerolog.WarnLevel)
	defer logger.SetOutput(os.Stderr, zerolog.InfoLevel)

	logger.Info("hidden %d", 1)
	logger.Warn("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "namesake.log")
	require.NoError(t, logger.Init(path, "debug"))
	defer logger.SetOutput(os.Stderr, zerolog.InfoLevel)

	logger.Debug("graph built")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "graph built")
}
