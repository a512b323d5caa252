// Package loop drives a game: one input drain, one tick and one frame per
// step, gated by a Pacer.
package loop

import (
	"context"
	"errors"
	"fmt"

	"snake-sim/game"
	"snake-sim/input"
	"snake-sim/ui"

	"github.com/rs/zerolog"
)

// ErrQuit is returned when the input asked to stop.
var ErrQuit = errors.New("quit requested")

// Observer is told about every completed tick.
type Observer interface {
	OnTick(res game.TickResult, snap game.Snapshot)
}

// Runner owns the game for the duration of the loop.
type Runner struct {
	game      *game.Game
	source    input.Source
	renderer  ui.Renderer
	layout    ui.Layout
	observers []Observer
	maxTicks  uint64
	log       zerolog.Logger
}

type Option func(*Runner)

func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// WithObserver registers observers, notified in registration order.
func WithObserver(obs ...Observer) Option {
	return func(r *Runner) {
		r.observers = append(r.observers, obs...)
	}
}

// WithTickLimit makes Run return after n ticks. Zero means no limit.
func WithTickLimit(n uint64) Option {
	return func(r *Runner) {
		r.maxTicks = n
	}
}

func NewRunner(g *game.Game, src input.Source, rend ui.Renderer, layout ui.Layout, opts ...Option) *Runner {
	if rend == nil {
		rend = ui.Discard{}
	}
	r := &Runner{
		game:     g,
		source:   src,
		renderer: rend,
		layout:   layout,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Step drains the input once, applies the events in order and ticks.
// A Quit event stops processing and returns ErrQuit without ticking.
func (r *Runner) Step() (game.TickResult, error) {
	if r.source != nil {
		for _, ev := range r.source.Drain() {
			switch ev.Kind {
			case input.Quit:
				r.log.Info().Msg("quit requested")
				return game.TickResult{}, ErrQuit
			case input.DirectionRequested:
				r.game.RequestDirection(ev.Direction)
			}
		}
	}

	res := r.game.Tick()

	if len(r.observers) > 0 {
		snap := r.game.Snapshot()
		for _, o := range r.observers {
			o.OnTick(res, snap)
		}
	}
	return res, nil
}

// Render draws the current state.
func (r *Runner) Render() {
	ui.DrawFrame(r.renderer, r.game.Snapshot(), r.layout)
}

// Run steps and renders until the input quits, the tick limit is reached or
// ctx is cancelled. Quitting and reaching the limit return nil.
func (r *Runner) Run(ctx context.Context, pacer Pacer) error {
	defer pacer.Stop()

	r.Render()
	for {
		if err := pacer.Wait(ctx); err != nil {
			return fmt.Errorf("loop stopped: %w", err)
		}

		res, err := r.Step()
		if errors.Is(err, ErrQuit) {
			return nil
		}
		r.Render()

		if r.maxTicks > 0 && res.Tick >= r.maxTicks {
			r.log.Debug().Uint64("ticks", res.Tick).Msg("tick limit reached")
			return nil
		}
	}
}
