// Package ebitenui hosts the game loop inside ebiten. Ebiten calls Update at
// the configured TPS, which replaces the loop's own pacer.
package ebitenui

import (
	"context"
	"errors"
	"fmt"

	"snake-sim/game/loop"
	"snake-sim/game/types"
	"snake-sim/input"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const title = "Snake"

// Host implements ebiten.Game, ui.Renderer and input.Source.
type Host struct {
	runner   *loop.Runner
	width    int
	height   int
	cellSize float32
	bindings map[ebiten.Key]input.Event

	ctx    context.Context
	target *ebiten.Image
}

// NewHost sizes the window in pixels. Attach must be called before Run.
func NewHost(width, height, cellSize int) *Host {
	return &Host{
		width:    width,
		height:   height,
		cellSize: float32(cellSize),
		bindings: DefaultBindings(),
		ctx:      context.Background(),
	}
}

// Attach sets the runner driven by Update and Draw.
func (h *Host) Attach(r *loop.Runner) {
	h.runner = r
}

// Run opens the window and blocks until the game quits, the window closes or
// ctx is cancelled.
func (h *Host) Run(ctx context.Context, tickRate int) error {
	if h.runner == nil {
		return errors.New("ebitenui: no runner attached")
	}
	h.ctx = ctx
	ebiten.SetWindowSize(h.width, h.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(tickRate)

	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("running ebiten game: %w", err)
	}
	return nil
}

func (h *Host) Update() error {
	if h.ctx.Err() != nil {
		return ebiten.Termination
	}
	if _, err := h.runner.Step(); err != nil {
		if errors.Is(err, loop.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	h.target = screen
	h.runner.Render()
	h.target = nil
}

func (h *Host) Layout(_, _ int) (int, int) {
	return h.width, h.height
}

func (h *Host) Clear(bg types.Color) {
	if h.target == nil {
		return
	}
	h.target.Fill(bg.RGBA())
}

func (h *Host) DrawCell(pos types.Point, fill, border types.Color) {
	if h.target == nil {
		return
	}
	x, y := float32(pos.X)*h.cellSize, float32(pos.Y)*h.cellSize
	vector.DrawFilledRect(h.target, x, y, h.cellSize, h.cellSize, fill.RGBA(), false)
	vector.StrokeRect(h.target, x, y, h.cellSize, h.cellSize, 1, border.RGBA(), false)
}

func (h *Host) DrawText(s string, x, y int) {
	if h.target == nil {
		return
	}
	ebitenutil.DebugPrintAt(h.target, s, x, y)
}

// Present is a no-op; ebiten shows the frame after Draw returns.
func (h *Host) Present() {}

// Drain reports the keys that went down since the previous tick.
func (h *Host) Drain() []input.Event {
	return Poll(h.bindings, inpututil.AppendJustPressedKeys(nil))
}

func DefaultBindings() map[ebiten.Key]input.Event {
	return map[ebiten.Key]input.Event{
		ebiten.KeyArrowUp:    input.Direction(types.Up),
		ebiten.KeyW:          input.Direction(types.Up),
		ebiten.KeyArrowDown:  input.Direction(types.Down),
		ebiten.KeyS:          input.Direction(types.Down),
		ebiten.KeyArrowLeft:  input.Direction(types.Left),
		ebiten.KeyA:          input.Direction(types.Left),
		ebiten.KeyArrowRight: input.Direction(types.Right),
		ebiten.KeyD:          input.Direction(types.Right),
		ebiten.KeyEscape:     input.QuitEvent(),
		ebiten.KeyQ:          input.QuitEvent(),
	}
}

// Poll maps keys to events, keeping the order the keys are given in.
// Unbound keys are skipped.
func Poll(bindings map[ebiten.Key]input.Event, keys []ebiten.Key) []input.Event {
	var events []input.Event
	for _, k := range keys {
		if e, ok := bindings[k]; ok {
			events = append(events, e)
		}
	}
	return events
}
