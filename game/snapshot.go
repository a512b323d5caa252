package game

import (
	"snake-sim/game/types"
)

// Snapshot is a read-only copy of the game state for renderers and observers.
// Changing it never affects the Game.
type Snapshot struct {
	Session    string
	Tick       uint64
	Grid       types.Grid
	Score      int
	HighScore  int
	Length     int
	Direction  types.Direction
	Head       types.Point
	Body       []types.Point
	Apple      types.Point
	LastTail   types.Point
	HasTail    bool
	Background types.Color

	// Scene lists the cells to draw, in order: body segments, head, the
	// vacated tail erased to the background, and the apple.
	Scene []types.Cell
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	body := make([]types.Point, len(g.snake.Body))
	copy(body, g.snake.Body)

	snap := Snapshot{
		Session:    g.UUID,
		Tick:       g.tick,
		Grid:       g.Grid,
		Score:      g.stateMgr.GetScore(),
		HighScore:  g.stateMgr.GetHighScore(),
		Length:     g.snake.Length,
		Direction:  g.snake.Direction,
		Head:       g.snake.Head(),
		Body:       body,
		Apple:      g.apple.Position,
		Background: g.background,
	}
	snap.LastTail, snap.HasTail = g.snake.LastTail()

	var vacated types.CellList
	if snap.HasTail && !g.snake.Occupies(snap.LastTail) {
		vacated = append(vacated, types.Cell{Pos: snap.LastTail, Fill: g.background, Border: g.background})
	}
	snap.Scene = Compose(g.snake, vacated, g.apple)

	return snap
}

// Compose flattens drawables into one scene, later layers drawn on top.
func Compose(layers ...types.Drawable) []types.Cell {
	var scene []types.Cell
	for _, l := range layers {
		scene = append(scene, l.Cells()...)
	}
	return scene
}
