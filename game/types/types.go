package types

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

// Point is a cell coordinate on the grid: X is the column, Y is the row.
type Point struct {
	X, Y int
}

// Add returns p translated by d without any wrapping.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Grid represents the game grid dimensions.
// The grid is toroidal: leaving it on one edge re-enters from the opposite edge.
type Grid struct {
	Width  int
	Height int
}

// Wrap returns p moved by delta, each coordinate reduced modulo the grid dimension.
func (g Grid) Wrap(p Point, delta Point) Point {
	q := p.Add(delta)
	return Point{X: mod(q.X, g.Width), Y: mod(q.Y, g.Height)}
}

// Step moves p one cell in direction d.
func (g Grid) Step(p Point, d Direction) Point {
	return g.Wrap(p, d.ToPoint())
}

// Center returns the starting cell of the snake.
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// Contains reports whether p lies inside [0,Width) x [0,Height).
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Size returns the number of cells on the grid.
func (g Grid) Size() int {
	return g.Width * g.Height
}

// ToPixels converts a cell to the pixel coordinate of its top-left corner.
func (g Grid) ToPixels(p Point, cellSize int) (int, int) {
	return p.X * cellSize, p.Y * cellSize
}

// Distance returns the Manhattan distance between two cells taking the wrap-around into account.
func (g Grid) Distance(p1, p2 Point) int {
	dx := abs(p2.X - p1.X)
	dy := abs(p2.Y - p1.Y)

	if dx > g.Width/2 {
		dx = g.Width - dx
	}
	if dy > g.Height/2 {
		dy = g.Height - dy
	}

	return dx + dy
}

// Delta returns the shortest signed offset from p1 to p2, going across the
// edges when that is shorter.
func (g Grid) Delta(p1, p2 Point) Point {
	return Point{X: shortest(p2.X-p1.X, g.Width), Y: shortest(p2.Y-p1.Y, g.Height)}
}

func shortest(d, n int) int {
	d = mod(d, n)
	if d > n/2 {
		d -= n
	}
	return d
}

func mod(a, n int) int {
	if n <= 0 {
		return 0
	}
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Color is an opaque RGB colour.
type Color struct {
	R, G, B uint8
}

// RGBA converts the colour for image based backends.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// String formats the colour as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts "#rrggbb" or "rrggbb".
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(strings.TrimSpace(string(text)), "#")
	if len(s) != 6 {
		return fmt.Errorf("invalid colour %q: want #rrggbb", string(text))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid colour %q: %w", string(text), err)
	}
	c.R, c.G, c.B = b[0], b[1], b[2]
	return nil
}

// Cell is one grid square as it should be drawn.
type Cell struct {
	Pos    Point
	Fill   Color
	Border Color
}

// Drawable is implemented by anything that occupies cells on the board.
type Drawable interface {
	Cells() []Cell
}

// CellList is a Drawable made of loose cells.
type CellList []Cell

func (l CellList) Cells() []Cell {
	return l
}

// PointSet is a set of occupied cells.
type PointSet map[Point]struct{}

// NewPointSet builds a set from the given cells.
func NewPointSet(points ...Point) PointSet {
	set := make(PointSet, len(points))
	for _, p := range points {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether p is in the set. A nil set is empty.
func (s PointSet) Has(p Point) bool {
	_, ok := s[p]
	return ok
}
