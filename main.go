package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heatfield/config"
	"github.com/pthm-cable/heatfield/game"
	"github.com/pthm-cable/heatfield/palette"
	"github.com/pthm-cable/heatfield/renderer"
	"github.com/pthm-cable/heatfield/sim"
	"github.com/pthm-cable/heatfield/systems"
	"github.com/pthm-cable/heatfield/termview"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	view := flag.String("view", "window", "Host: window, term or headless")
	pointsPath := flag.String("points", "", "CSV of x,y,heat points to replay in static mode")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	seed := flag.Int64("seed", 0, "RNG seed for emitters (0 = time-based)")
	snapshotEvery := flag.Int("snapshot-every", 0, "Write active cells every N ticks (0 = off)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	var points []systems.HeatInput
	if *pointsPath != "" {
		var err error
		points, err = systems.LoadPointsFile(*pointsPath)
		if err != nil {
			slog.Error("failed to load points", "error", err)
			os.Exit(1)
		}
		if !cfg.Mode.Static {
			slog.Warn("points file given in dynamic mode; points are consumed newest first", "points", len(points))
		}
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := sim.Options{
		Seed:          rngSeed,
		LogStats:      *logStats,
		OutputDir:     *outputDir,
		SnapshotEvery: *snapshotEvery,
		Points:        points,
		Logger:        logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch *view {
	case "headless":
		err = runHeadless(ctx, cfg, opts, *maxTicks)
	case "term":
		// The terminal owns stdout while the view runs
		opts.Logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
		slog.SetDefault(opts.Logger)
		err = runTerminal(ctx, cfg, opts, *maxTicks)
	case "window":
		err = runWindow(cfg, opts, *maxTicks)
	default:
		slog.Error("unknown view", "view", *view)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("run failed", "view", *view, "error", err)
		os.Exit(1)
	}
}

func runHeadless(ctx context.Context, cfg *config.Config, opts sim.Options, maxTicks int) error {
	g, err := game.NewGame(cfg, opts, true)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"static", cfg.Mode.Static,
	)

	for ctx.Err() == nil {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return nil
		}
		if g.Sim().Static() && g.Sim().Drained() {
			slog.Info("static replay finished", "tick", g.Tick())
			return nil
		}
	}
	return nil
}

func runTerminal(ctx context.Context, cfg *config.Config, opts sim.Options, maxTicks int) error {
	s, err := sim.New(cfg, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	color, err := palette.ByName(cfg.Display.Palette, cfg.Display.Alpha)
	if err != nil {
		return err
	}

	screen, err := termview.Open()
	if err != nil {
		return err
	}
	defer screen.Fini()

	return termview.New(screen, s, color, maxTicks).Run(ctx)
}

func runWindow(cfg *config.Config, opts sim.Options, maxTicks int) error {
	if err := renderer.OpenWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), int32(cfg.Screen.TargetFPS), "Heat Field"); err != nil {
		return err
	}
	defer renderer.CloseWindow()

	g, err := game.NewGame(cfg, opts, false)
	if err != nil {
		return err
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return nil
}
