// Package config loads runtime settings for the chunkgrid tools from the environment
package config

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/chunkgrid/parameter"
)

// Config holds the tunables shared by the sandbox and profile commands
// Field tags name the environment variables exactly.
type Config struct {
	InitSizeKB  int    `config:"CHUNKGRID_INIT_SIZE_KB"`
	ChunkPageKB int    `config:"CHUNKGRID_PAGE_KB"`
	Debug       bool   `config:"CHUNKGRID_DEBUG"`
	LogLevel    string `config:"CHUNKGRID_LOG_LEVEL"`
	LogDir      string `config:"CHUNKGRID_LOG_DIR"`
	Seed        uint64 `config:"CHUNKGRID_SEED"`
	Entities    int    `config:"CHUNKGRID_ENTITIES"`
	Extent      int    `config:"CHUNKGRID_EXTENT"`
	Audio       bool   `config:"CHUNKGRID_AUDIO"`
}

var ErrInvalidConfig = eris.New("invalid config")

// Default returns the configuration used when no variables are set
func Default() Config {
	return Config{
		InitSizeKB:  parameter.DefaultInitSizeKB,
		ChunkPageKB: parameter.DefaultChunkPageKB,
		LogLevel:    zerolog.InfoLevel.String(),
		LogDir:      "logs",
		Seed:        1,
		Entities:    2000,
		Extent:      64,
		Audio:       true,
	}
}

// Load overlays environment variables on Default and validates the result
func Load() (Config, error) {
	cfg := Default()
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "read environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the index or the tools cannot run with
func (c Config) Validate() error {
	if c.InitSizeKB < parameter.MinInitSizeKB {
		return eris.Wrapf(ErrInvalidConfig, "init size %dKB below minimum %dKB", c.InitSizeKB, parameter.MinInitSizeKB)
	}
	if c.ChunkPageKB <= 0 {
		return eris.Wrapf(ErrInvalidConfig, "chunk page %dKB must be positive", c.ChunkPageKB)
	}
	if c.Entities < 0 {
		return eris.Wrapf(ErrInvalidConfig, "entity count %d is negative", c.Entities)
	}
	if c.Extent <= 0 {
		return eris.Wrapf(ErrInvalidConfig, "extent %d must be positive", c.Extent)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(ErrInvalidConfig, "log level %q", c.LogLevel)
	}
	return nil
}

// Level returns the parsed log level, raised to debug when Debug is set
func (c Config) Level() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
