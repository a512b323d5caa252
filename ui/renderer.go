// Package ui defines the drawing surface the game renders to and the frame
// composition shared by every backend.
package ui

import (
	"fmt"

	"snake-sim/game"
	"snake-sim/game/types"
)

// HelpText is the static status line shown under the board.
const HelpText = "Arrows/WASD steer  Esc/Q quit"

// Renderer is a drawing surface. Positions passed to DrawCell are grid cells;
// DrawText takes pixel coordinates relative to the top left of the board.
type Renderer interface {
	Clear(bg types.Color)
	DrawCell(pos types.Point, fill, border types.Color)
	DrawText(s string, x, y int)
	Present()
}

// Layout holds the geometry a frame is drawn with.
type Layout struct {
	CellSize int
	Help     string
}

// ScoreLine formats the first status line.
func ScoreLine(snap game.Snapshot) string {
	return fmt.Sprintf("Score: %d  Best: %d", snap.Score, snap.HighScore)
}

// StatusOrigin returns the pixel position of status line n (0 or 1).
func (l Layout) StatusOrigin(grid types.Grid, n int) (int, int) {
	return 4, grid.Height*l.CellSize + n*l.CellSize + 2
}

// DrawFrame renders one frame: background, snake body, head, the vacated
// tail erased, apple, score, help, then presents it.
func DrawFrame(r Renderer, snap game.Snapshot, l Layout) {
	r.Clear(snap.Background)

	for _, c := range snap.Scene {
		r.DrawCell(c.Pos, c.Fill, c.Border)
	}

	x, y := l.StatusOrigin(snap.Grid, 0)
	r.DrawText(ScoreLine(snap), x, y)
	if l.Help != "" {
		x, y = l.StatusOrigin(snap.Grid, 1)
		r.DrawText(l.Help, x, y)
	}

	r.Present()
}

// Discard is a Renderer that draws nothing.
type Discard struct{}

func (Discard) Clear(types.Color) {}
func (Discard) DrawCell(types.Point, types.Color, types.Color) {}
func (Discard) DrawText(string, int, int) {}
func (Discard) Present() {}
