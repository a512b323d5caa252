package main

import (
	"context"

	"snake-sim/config"
	"snake-sim/game"
	"snake-sim/game/loop"
	"snake-sim/input"
	"snake-sim/ui"
)

// runHeadless lets the autopilot play cfg.HeadlessTicks ticks as fast as
// possible without drawing anything.
func runHeadless(ctx context.Context, cfg config.Config, g *game.Game, src input.Source, observers []loop.Observer) error {
	r := loop.NewRunner(g, src, ui.Discard{}, ui.Layout{CellSize: cfg.CellSize},
		loop.WithLogger(g.Logger()),
		loop.WithObserver(observers...),
		loop.WithTickLimit(uint64(cfg.HeadlessTicks)),
	)
	return r.Run(ctx, loop.Unpaced())
}
