package entity

import (
	"snake-sim/game/types"
)

// Snake is the player controlled body. Body is ordered head first.
type Snake struct {
	Body        []types.Point
	Length      int
	Direction   types.Direction
	Color       types.Color
	BorderColor types.Color

	grid        types.Grid
	pending     types.Direction
	lastTail    types.Point
	hasLastTail bool
}

// NewSnake creates a snake of length 1 in the centre of the grid, facing right.
func NewSnake(grid types.Grid, color, border types.Color) *Snake {
	s := &Snake{
		grid:        grid,
		Color:       color,
		BorderColor: border,
	}
	s.Reset()
	return s
}

// Grid returns the grid the snake moves on.
func (s *Snake) Grid() types.Grid {
	return s.grid
}

// Head returns the first body segment.
func (s *Snake) Head() types.Point {
	return s.Body[0]
}

// Len returns the current number of body segments.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Pending returns the latched direction, or types.None when nothing is latched.
func (s *Snake) Pending() types.Direction {
	return s.pending
}

// SetPendingDirection latches dir for the next tick. A direct reversal of the
// current direction is ignored, as is anything that is not a movable direction.
func (s *Snake) SetPendingDirection(dir types.Direction) {
	if !dir.Valid() || dir == s.Direction.Opposite() {
		return
	}
	s.pending = dir
}

// ApplyPendingDirection makes the latched direction current and clears the latch.
func (s *Snake) ApplyPendingDirection() {
	if s.pending == types.None {
		return
	}
	s.Direction = s.pending
	s.pending = types.None
}

// Move advances the head one cell, wrapping at the edges, and drops the tail
// unless a pending growth keeps it. It returns the new head.
func (s *Snake) Move() types.Point {
	newHead := s.grid.Step(s.Head(), s.Direction)

	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead

	s.hasLastTail = false
	if len(s.Body) > s.Length {
		last := len(s.Body) - 1
		s.lastTail = s.Body[last]
		s.hasLastTail = true
		s.Body = s.Body[:last]
	}

	return newHead
}

// Grow raises the target length by one. The next Move keeps its tail.
func (s *Snake) Grow() {
	s.Length++
}

// CheckSelfCollision reports whether the head overlaps a segment at index
// graceSegments or later. Values below 1 are treated as 1 so the head never
// collides with itself.
func (s *Snake) CheckSelfCollision(graceSegments int) bool {
	if graceSegments < 1 {
		graceSegments = 1
	}
	head := s.Head()
	for i := graceSegments; i < len(s.Body); i++ {
		if s.Body[i] == head {
			return true
		}
	}
	return false
}

// Reset puts the snake back to its starting state in place.
func (s *Snake) Reset() {
	s.Length = 1
	s.Body = []types.Point{s.grid.Center()}
	s.Direction = types.Right
	s.pending = types.None
	s.hasLastTail = false
}

// LastTail returns the cell vacated by the most recent Move, if any.
func (s *Snake) LastTail() (types.Point, bool) {
	return s.lastTail, s.hasLastTail
}

// Occupies reports whether any segment sits on p.
func (s *Snake) Occupies(p types.Point) bool {
	for _, part := range s.Body {
		if part == p {
			return true
		}
	}
	return false
}

// Occupied returns the set of cells covered by the body.
func (s *Snake) Occupied() types.PointSet {
	return types.NewPointSet(s.Body...)
}

// Cells returns one cell per body segment followed by the head drawn on top.
func (s *Snake) Cells() []types.Cell {
	cells := make([]types.Cell, 0, len(s.Body)+1)
	for i := len(s.Body) - 1; i >= 0; i-- {
		cells = append(cells, types.Cell{Pos: s.Body[i], Fill: s.Color, Border: s.BorderColor})
	}
	cells = append(cells, types.Cell{Pos: s.Head(), Fill: s.Color, Border: s.BorderColor})
	return cells
}
