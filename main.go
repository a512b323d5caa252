package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snake-sim/ai"
	"snake-sim/audio"
	"snake-sim/config"
	"snake-sim/game"
	"snake-sim/game/loop"
	"snake-sim/input"
	"snake-sim/ui"
	"snake-sim/ui/ebitenui"
	"snake-sim/ui/raylibui"
	"snake-sim/ui/tcellui"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(os.Args, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "snake:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(args[0], args[1:])
	if err != nil {
		return err
	}

	if cfg.PrintConfig {
		data, err := cfg.Encode()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	logger, logOut, err := setupLogging(cfg, stderr)
	if err != nil {
		return err
	}
	defer logOut.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := game.NewGame(cfg, game.WithLogger(logger))
	log := g.Logger()

	var (
		sources   []input.Source
		observers []loop.Observer
	)
	if cfg.Autopilot || cfg.Backend == config.BackendHeadless {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		pilot := ai.NewAutopilot(g.Snapshot(), g.GraceSegments(), seed, log)
		sources = append(sources, pilot)
		observers = append(observers, pilot)
	}
	if cfg.Sound && cfg.Backend != config.BackendHeadless {
		cues := audio.NewCues(log)
		if err := cues.Initialize(); err != nil {
			log.Warn().Err(err).Msg("sound disabled")
		} else {
			defer cues.Close()
			observers = append(observers, cues)
		}
	}

	err = play(ctx, cfg, g, sources, observers)
	logSummary(log, g.Stats())

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// play runs the selected backend. Keyboard sources come first so a quit key
// is seen even while the autopilot steers.
func play(ctx context.Context, cfg config.Config, g *game.Game, sources []input.Source, observers []loop.Observer) error {
	layout := ui.Layout{CellSize: cfg.CellSize, Help: ui.HelpText}
	opts := []loop.Option{loop.WithLogger(g.Logger()), loop.WithObserver(observers...)}
	width, height := cfg.WindowPixels()

	switch cfg.Backend {
	case config.BackendHeadless:
		return runHeadless(ctx, cfg, g, input.Merge(sources...), observers)

	case config.BackendTerminal:
		r, err := tcellui.Open(cfg.CellSize)
		if err != nil {
			return err
		}
		defer r.Close()

		keys := input.NewQueue()
		r.Listen(keys)
		runner := loop.NewRunner(g, input.Merge(append([]input.Source{keys}, sources...)...), r, layout, opts...)
		return runner.Run(ctx, loop.Every(cfg.TickInterval()))

	case config.BackendEbiten:
		host := ebitenui.NewHost(width, height, cfg.CellSize)
		runner := loop.NewRunner(g, input.Merge(append([]input.Source{host}, sources...)...), host, layout, opts...)
		host.Attach(runner)
		return host.Run(ctx, cfg.TickRate)

	default:
		w := raylibui.Open(width, height, cfg.CellSize, cfg.TickRate)
		defer w.Close()

		// EndDrawing waits for the frame cap, so the loop itself is unpaced.
		runner := loop.NewRunner(g, input.Merge(append([]input.Source{w}, sources...)...), w, layout, opts...)
		return runner.Run(ctx, loop.Unpaced())
	}
}

func logSummary(log zerolog.Logger, st game.Stats) {
	log.Info().
		Uint64("ticks", st.Ticks).
		Int("apples", st.ApplesEaten).
		Int("resets", st.GamesPlayed).
		Int("best", st.HighScore).
		Float64("average", st.AverageScore).
		Float64("median", st.MedianScore).
		Msg("session finished")
}
