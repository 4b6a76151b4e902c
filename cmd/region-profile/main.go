// Profiling:
// go build ./cmd/region-profile
// ./region-profile -mode cpu -ticks 2000
// go tool pprof -http=":8000" ./region-profile cpu.pprof

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/chunkgrid/config"
	"github.com/lixenwraith/chunkgrid/logging"
	"github.com/lixenwraith/chunkgrid/sim"
	"github.com/lixenwraith/chunkgrid/spatial"
	"github.com/lixenwraith/chunkgrid/status"
)

// report is the JSON document printed after a run
type report struct {
	Config  config.Config      `json:"config"`
	Ticks   int                `json:"ticks"`
	Elapsed time.Duration      `json:"elapsed_ns"`
	Index   spatial.Stats      `json:"index"`
	Totals  sim.TickStats      `json:"totals"`
	Metrics map[string]float64 `json:"metrics"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ticks := flag.Int("ticks", 1000, "simulation ticks to run")
	dt := flag.Float64("dt", 1.0/30, "seconds per tick")
	mode := flag.String("mode", "none", "profile mode: none, cpu, mem, allocs")
	dir := flag.String("dir", ".", "profile output directory")
	flag.IntVar(&cfg.Entities, "entities", cfg.Entities, "body count")
	flag.IntVar(&cfg.Extent, "extent", cfg.Extent, "half-width of the play area")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	flag.IntVar(&cfg.InitSizeKB, "init-kb", cfg.InitSizeKB, "initial chunk memory in KB")
	flag.IntVar(&cfg.ChunkPageKB, "page-kb", cfg.ChunkPageKB, "chunk block size in KB")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewConsole(cfg, os.Stderr)

	if p := startProfile(*mode, *dir); p != nil {
		defer p.Stop()
	}

	rep, err := run(cfg, *ticks, *dt, logger)
	if err != nil {
		logger.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
	if err := writeReport(os.Stdout, rep); err != nil {
		logger.Error().Err(err).Msg("write report")
		os.Exit(1)
	}
}

func startProfile(mode, dir string) interface{ Stop() } {
	opts := []func(*profile.Profile){profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet}
	switch mode {
	case "cpu":
		return profile.Start(append(opts, profile.CPUProfile)...)
	case "mem":
		return profile.Start(append(opts, profile.MemProfile)...)
	case "allocs":
		return profile.Start(append(opts, profile.MemProfileAllocs)...)
	default:
		return nil
	}
}

func run(cfg config.Config, ticks int, dt float64, logger zerolog.Logger) (report, error) {
	metrics := status.NewRegistry()
	region, err := spatial.NewRegion(
		spatial.WithLogger(logger),
		spatial.WithInitSizeKB(cfg.InitSizeKB),
		spatial.WithChunkPageKB(cfg.ChunkPageKB),
		spatial.WithChunkObserver(metrics.ChunkObserver()),
	)
	if err != nil {
		return report{}, err
	}

	world := sim.NewWorld(region,
		sim.WithExtent(float64(cfg.Extent)),
		sim.WithSeed(cfg.Seed),
		sim.WithLogger(logger),
	)
	world.Spawn(cfg.Entities)

	start := time.Now()
	for i := 0; i < ticks; i++ {
		world.Tick(dt)
	}
	elapsed := time.Since(start)
	world.Publish(metrics)

	logger.Info().
		Int("ticks", ticks).
		Dur("elapsed", elapsed).
		Int("migrations", world.Totals().Migrations).
		Msg("run complete")

	return report{
		Config:  cfg,
		Ticks:   ticks,
		Elapsed: elapsed,
		Index:   region.Stats(),
		Totals:  world.Totals(),
		Metrics: metrics.Snapshot(),
	}, nil
}

func writeReport(w io.Writer, rep report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
