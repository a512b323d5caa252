package entity

import (
	"snake-sim/game/types"

	"golang.org/x/exp/rand"
)

// Apple is the target the snake chases.
type Apple struct {
	Position    types.Point
	Color       types.Color
	BorderColor types.Color
}

// NewApple creates an apple at the origin. Callers place it with Relocate.
func NewApple(color, border types.Color) *Apple {
	return &Apple{
		Color:       color,
		BorderColor: border,
	}
}

// Relocate moves the apple to a uniformly random cell outside occupied.
// After maxAttempts rejected samples it falls back to the first free cell in
// row-major order. When every cell is occupied the apple stays where it is and
// Relocate returns false.
func (a *Apple) Relocate(grid types.Grid, occupied types.PointSet, rng *rand.Rand, maxAttempts int) bool {
	for attempts := 0; attempts < maxAttempts; attempts++ {
		pos := types.Point{
			X: rng.Intn(grid.Width),
			Y: rng.Intn(grid.Height),
		}
		if !occupied.Has(pos) {
			a.Position = pos
			return true
		}
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			pos := types.Point{X: x, Y: y}
			if !occupied.Has(pos) {
				a.Position = pos
				return true
			}
		}
	}

	return false
}

// Cells returns the single cell the apple covers.
func (a *Apple) Cells() []types.Cell {
	return []types.Cell{{Pos: a.Position, Fill: a.Color, Border: a.BorderColor}}
}
