package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/chunkgrid/config"
)

func testConfig(t *testing.T, debug bool) config.Config {
	cfg := config.Default()
	cfg.Debug = debug
	cfg.LogDir = filepath.Join(t.TempDir(), "logs")
	return cfg
}

func TestNewDisabledByDefault(t *testing.T) {
	cfg := testConfig(t, false)
	logger, closer, err := New(cfg)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
	_, err = os.Stat(cfg.LogDir)
	assert.True(t, os.IsNotExist(err), "no log dir without debug")
}

func TestNewEnabledWritesFile(t *testing.T) {
	cfg := testConfig(t, true)
	logger, closer, err := New(cfg)
	require.NoError(t, err)

	logger.Debug().Int("chunks", 3).Msg("probe")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(cfg.LogDir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"probe"`)
	assert.Contains(t, string(data), `"chunks":3`)
}

func TestNewRotatesOversizedLog(t *testing.T) {
	cfg := testConfig(t, true)
	require.NoError(t, os.MkdirAll(cfg.LogDir, 0755))
	logPath := filepath.Join(cfg.LogDir, logFileName)
	require.NoError(t, os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644))

	_, closer, err := New(cfg)
	require.NoError(t, err)
	defer closer.Close()

	entries, err := os.ReadDir(cfg.LogDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(maxLogSize))
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogLevel = "warn"
	logger := NewConsole(cfg, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
