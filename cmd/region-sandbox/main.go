// Command region-sandbox runs bodies through a chunked spatial index and shows its occupancy live
//
// Keys: space pause, +/- spawn/despawn, arrows pan, c center, m mute, q/Esc quit
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/chunkgrid/audio"
	"github.com/lixenwraith/chunkgrid/config"
	"github.com/lixenwraith/chunkgrid/core"
	"github.com/lixenwraith/chunkgrid/logging"
	"github.com/lixenwraith/chunkgrid/render"
	"github.com/lixenwraith/chunkgrid/sim"
	"github.com/lixenwraith/chunkgrid/spatial"
	"github.com/lixenwraith/chunkgrid/status"
	"github.com/lixenwraith/chunkgrid/vmath"
)

const (
	frameInterval = 33 * time.Millisecond
	spawnBatch    = 100
	panStep       = 4
)

type sandbox struct {
	screen  tcell.Screen
	world   *sim.World
	viewer  *render.Viewer
	metrics *status.Registry
	player  *audio.CuePlayer
	logger  zerolog.Logger

	paused      bool
	lastGrowths int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	flag.IntVar(&cfg.Entities, "entities", cfg.Entities, "initial body count")
	flag.IntVar(&cfg.Extent, "extent", cfg.Extent, "half-width of the play area in world units")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	flag.IntVar(&cfg.InitSizeKB, "init-kb", cfg.InitSizeKB, "initial chunk memory in KB")
	flag.IntVar(&cfg.ChunkPageKB, "page-kb", cfg.ChunkPageKB, "chunk block size in KB")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "write debug log under the log dir")
	flag.BoolVar(&cfg.Audio, "audio", cfg.Audio, "play chunk cues")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.RegisterCrashTerminal(screen)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
		screen.Fini()
	}()

	sb, err := newSandbox(cfg, screen, logger)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "sandbox: %v\n", err)
		os.Exit(1)
	}
	defer sb.player.Close()
	sb.run()
}

func newSandbox(cfg config.Config, screen tcell.Screen, logger zerolog.Logger) (*sandbox, error) {
	metrics := status.NewRegistry()
	player := audio.NewCuePlayer()
	if cfg.Audio {
		if err := player.Initialize(); err != nil {
			// Non-fatal, the sandbox runs silent
			logger.Warn().Err(err).Msg("audio unavailable")
		}
	}

	region, err := spatial.NewRegion(
		spatial.WithLogger(logger.With().Str("component", "region").Logger()),
		spatial.WithInitSizeKB(cfg.InitSizeKB),
		spatial.WithChunkPageKB(cfg.ChunkPageKB),
		spatial.WithChunkObserver(spatial.MultiObserver(metrics.ChunkObserver(), player.Observer())),
	)
	if err != nil {
		return nil, err
	}

	world := sim.NewWorld(region,
		sim.WithExtent(float64(cfg.Extent)),
		sim.WithSeed(cfg.Seed),
		sim.WithLogger(logger.With().Str("component", "sim").Logger()),
	)
	world.Spawn(cfg.Entities)

	viewer := render.NewViewer(screen, region, metrics)
	viewer.Center(vmath.Int2{})

	sb := &sandbox{
		screen:      screen,
		world:       world,
		viewer:      viewer,
		metrics:     metrics,
		player:      player,
		logger:      logger,
		lastGrowths: region.Stats().OverflowGrowths,
	}
	world.Publish(metrics)
	logger.Info().Int("entities", cfg.Entities).Int("extent", cfg.Extent).Msg("sandbox started")
	return sb, nil
}

func (sb *sandbox) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := sb.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !sb.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			sb.step(dt)
		}
	}
}

func (sb *sandbox) step(dt float64) {
	if !sb.paused {
		sb.world.Tick(dt)
		if g := sb.world.Region().Stats().OverflowGrowths; g > sb.lastGrowths {
			sb.player.Trigger(audio.CueOverflowGrowth)
			sb.lastGrowths = g
		}
	}
	sb.world.Publish(sb.metrics)
	sb.viewer.SetLabel(sb.label())
	sb.viewer.Draw()
}

func (sb *sandbox) label() string {
	switch {
	case sb.paused:
		return "PAUSED"
	case sb.player.Muted():
		return "MUTED"
	default:
		return "RUN"
	}
}

// handleEvent returns false when the sandbox should exit
func (sb *sandbox) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			sb.viewer.Pan(0, -panStep)
		case tcell.KeyDown:
			sb.viewer.Pan(0, panStep)
		case tcell.KeyLeft:
			sb.viewer.Pan(-panStep, 0)
		case tcell.KeyRight:
			sb.viewer.Pan(panStep, 0)
		case tcell.KeyRune:
			return sb.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		sb.screen.Sync()
	}
	return true
}

func (sb *sandbox) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		sb.paused = !sb.paused
	case '+', '=':
		sb.world.Spawn(spawnBatch)
	case '-', '_':
		sb.world.DespawnRandom(spawnBatch)
	case 'c':
		sb.viewer.Center(vmath.Int2{})
	case 'm':
		sb.player.SetMuted(!sb.player.Muted())
	case 'd':
		w, h := sb.screen.Size()
		grid := sb.viewer.GridAt(w/2, (h-1)/2)
		sb.logger.Debug().Str("bucket", sb.world.Region().DumpBucket(grid)).Msg("bucket dump")
	}
	return true
}
