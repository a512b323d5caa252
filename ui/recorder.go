package ui

import (
	"snake-sim/game/types"
)

// Op names a Renderer call.
type Op int

const (
	OpClear Op = iota
	OpCell
	OpText
	OpPresent
)

// Call is one recorded Renderer call.
type Call struct {
	Op     Op
	Pos    types.Point
	Fill   types.Color
	Border types.Color
	Text   string
	X, Y   int
}

// Recorder keeps every call it receives. Frames holds one slice per Present.
type Recorder struct {
	Frames  [][]Call
	current []Call
}

func (r *Recorder) Clear(bg types.Color) {
	r.current = append(r.current, Call{Op: OpClear, Fill: bg})
}

func (r *Recorder) DrawCell(pos types.Point, fill, border types.Color) {
	r.current = append(r.current, Call{Op: OpCell, Pos: pos, Fill: fill, Border: border})
}

func (r *Recorder) DrawText(s string, x, y int) {
	r.current = append(r.current, Call{Op: OpText, Text: s, X: x, Y: y})
}

func (r *Recorder) Present() {
	r.current = append(r.current, Call{Op: OpPresent})
	r.Frames = append(r.Frames, r.current)
	r.current = nil
}

// Last returns the most recent presented frame.
func (r *Recorder) Last() []Call {
	if len(r.Frames) == 0 {
		return nil
	}
	return r.Frames[len(r.Frames)-1]
}
