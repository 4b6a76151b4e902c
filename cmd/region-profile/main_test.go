package main

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/chunkgrid/config"
	"github.com/lixenwraith/chunkgrid/status"
)

func TestRunReport(t *testing.T) {
	cfg := config.Default()
	cfg.Entities = 300
	cfg.Extent = 16

	rep, err := run(cfg, 50, 0.05, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 50, rep.Ticks)
	assert.Equal(t, 50, rep.Totals.Ticks)
	assert.Equal(t, 300*50, rep.Totals.Moves)
	assert.Equal(t, 300, rep.Index.Entities)
	assert.Equal(t, 300.0, rep.Metrics[status.Entities])

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, rep))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	index, ok := decoded["index"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 300.0, index["entities"])
	assert.Contains(t, decoded, "totals")
}

func TestRunEmptyWorld(t *testing.T) {
	cfg := config.Default()
	cfg.Entities = 0
	rep, err := run(cfg, 1, 0.05, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, rep.Index.Entities)
	assert.Zero(t, rep.Index.UsedChunks)
}

func TestStartProfileNone(t *testing.T) {
	assert.Nil(t, startProfile("none", t.TempDir()))
}
