// Package raylibui renders the game in a raylib window. All calls must come
// from the goroutine that opened the window.
package raylibui

import (
	"snake-sim/game/types"
	"snake-sim/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const title = "Snake"

// Window is both the ui.Renderer and the input.Source for a raylib window.
type Window struct {
	cellSize int32
	fontSize int32
	bindings map[int32]input.Event
}

// Open creates the window. Frames are capped at tickRate, which paces the
// loop since EndDrawing waits for the next frame.
func Open(width, height, cellSize, tickRate int) *Window {
	rl.InitWindow(int32(width), int32(height), title)
	rl.SetTargetFPS(int32(tickRate))

	return &Window{
		cellSize: int32(cellSize),
		fontSize: FontSize(cellSize),
		bindings: DefaultBindings(),
	}
}

func (w *Window) Close() {
	rl.CloseWindow()
}

func (w *Window) Clear(bg types.Color) {
	rl.BeginDrawing()
	rl.ClearBackground(bg.RGBA())
}

func (w *Window) DrawCell(pos types.Point, fill, border types.Color) {
	x, y := int32(pos.X)*w.cellSize, int32(pos.Y)*w.cellSize
	rl.DrawRectangle(x, y, w.cellSize, w.cellSize, fill.RGBA())
	rl.DrawRectangleLines(x, y, w.cellSize, w.cellSize, border.RGBA())
}

func (w *Window) DrawText(s string, x, y int) {
	rl.DrawText(s, int32(x), int32(y), w.fontSize, rl.RayWhite)
}

func (w *Window) Present() {
	rl.EndDrawing()
}

// Drain reads the key queue once. Closing the window counts as Quit.
func (w *Window) Drain() []input.Event {
	return Poll(w.bindings, PressedKeys(rl.GetKeyPressed), rl.WindowShouldClose())
}

// PressedKeys empties a raylib style key queue, where next returns 0 once
// nothing is left. Keys come back in the order they were pressed.
func PressedKeys(next func() int32) []int32 {
	var keys []int32
	for k := next(); k != 0; k = next() {
		keys = append(keys, k)
	}
	return keys
}

func DefaultBindings() map[int32]input.Event {
	return map[int32]input.Event{
		rl.KeyUp:     input.Direction(types.Up),
		rl.KeyW:      input.Direction(types.Up),
		rl.KeyDown:   input.Direction(types.Down),
		rl.KeyS:      input.Direction(types.Down),
		rl.KeyLeft:   input.Direction(types.Left),
		rl.KeyA:      input.Direction(types.Left),
		rl.KeyRight:  input.Direction(types.Right),
		rl.KeyD:      input.Direction(types.Right),
		rl.KeyEscape: input.QuitEvent(),
		rl.KeyQ:      input.QuitEvent(),
	}
}

// Poll maps keys to events in the order given. Unbound keys are skipped.
func Poll(bindings map[int32]input.Event, keys []int32, closing bool) []input.Event {
	var events []input.Event
	if closing {
		events = append(events, input.QuitEvent())
	}
	for _, k := range keys {
		if e, ok := bindings[k]; ok {
			events = append(events, e)
		}
	}
	return events
}

// FontSize keeps status text readable without overflowing its line.
func FontSize(cellSize int) int32 {
	size := int32(cellSize) - 4
	if size < 10 {
		size = 10
	}
	return size
}
