// Package tcellui draws the game in a terminal. Every grid cell is two
// columns wide so the board keeps roughly square cells.
package tcellui

import (
	"fmt"

	"snake-sim/game/types"
	"snake-sim/input"

	"github.com/gdamore/tcell/v2"
)

// Renderer implements ui.Renderer on a tcell screen.
type Renderer struct {
	screen   tcell.Screen
	cellSize int
	text     tcell.Style
}

// Open initialises the terminal.
func Open(cellSize int) (*Renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initialising terminal screen: %w", err)
	}
	return New(screen, cellSize), nil
}

// New wraps an initialised screen.
func New(screen tcell.Screen, cellSize int) *Renderer {
	if cellSize < 1 {
		cellSize = 1
	}
	screen.HideCursor()
	return &Renderer{
		screen:   screen,
		cellSize: cellSize,
		text:     tcell.StyleDefault,
	}
}

func (r *Renderer) Clear(bg types.Color) {
	style := tcell.StyleDefault.Background(toTcell(bg))
	r.text = style.Foreground(tcell.ColorWhite)
	r.screen.Fill(' ', style)
}

func (r *Renderer) DrawCell(pos types.Point, fill, _ types.Color) {
	style := tcell.StyleDefault.Background(toTcell(fill))
	x := pos.X * 2
	r.screen.SetContent(x, pos.Y, ' ', nil, style)
	r.screen.SetContent(x+1, pos.Y, ' ', nil, style)
}

// DrawText maps pixel coordinates onto character cells.
func (r *Renderer) DrawText(s string, x, y int) {
	col, row := r.CellAt(x, y)
	for _, ch := range s {
		r.screen.SetContent(col, row, ch, nil, r.text)
		col++
	}
}

func (r *Renderer) Present() {
	r.screen.Show()
}

// CellAt converts board pixels to a terminal column and row.
func (r *Renderer) CellAt(x, y int) (int, int) {
	return x * 2 / r.cellSize, y / r.cellSize
}

// Close restores the terminal.
func (r *Renderer) Close() {
	r.screen.Fini()
}

// Listen forwards key presses to q until the screen is finalised.
func (r *Renderer) Listen(q *input.Queue) {
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if e, ok := MapKey(ev); ok {
					q.Push(e)
				}
			case *tcell.EventResize:
				r.screen.Sync()
			}
		}
	}()
}

// MapKey translates arrows, w a s d, Escape, q and Ctrl-C.
func MapKey(ev *tcell.EventKey) (input.Event, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.Direction(types.Up), true
	case tcell.KeyDown:
		return input.Direction(types.Down), true
	case tcell.KeyLeft:
		return input.Direction(types.Left), true
	case tcell.KeyRight:
		return input.Direction(types.Right), true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.QuitEvent(), true
	case tcell.KeyRune:
		return input.FromRune(ev.Rune())
	}
	return input.Event{}, false
}

func toTcell(c types.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
