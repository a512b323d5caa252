package ai

import (
	"context"
	"testing"

	"snake-sim/config"
	"snake-sim/game"
	"snake-sim/game/loop"
	"snake-sim/game/types"
	"snake-sim/ui"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

func testSnapshot(body []types.Point, length int, dir types.Direction, apple types.Point) game.Snapshot {
	return game.Snapshot{
		Grid:      types.Grid{Width: 32, Height: 24},
		Body:      body,
		Head:      body[0],
		Length:    length,
		Direction: dir,
		Apple:     apple,
	}
}

func TestObserveFoodDirectionWraps(t *testing.T) {
	snap := testSnapshot([]types.Point{{X: 0, Y: 0}}, 1, types.Right, types.Point{X: 31, Y: 2})

	s := Observe(snap, 4)
	if s.RelativeFoodDir != [2]int{-1, 1} {
		t.Errorf("food dir = %v, want [-1 1]", s.RelativeFoodDir)
	}
	for i, d := range s.DangerDirs {
		if d {
			t.Errorf("single segment snake reports danger in direction %d", i)
		}
	}
}

func TestDangerous(t *testing.T) {
	// Head at (6,5) heading left with its body curling round to (5,5).
	body := []types.Point{{X: 6, Y: 5}, {X: 6, Y: 4}, {X: 5, Y: 4}, {X: 5, Y: 5}, {X: 5, Y: 6}}
	apple := types.Point{X: 20, Y: 20}

	tests := []struct {
		name   string
		length int
		grace  int
		cell   types.Point
		want   bool
	}{
		{"segment past the grace window", 5, 4, types.Point{X: 5, Y: 5}, true},
		{"segment inside a wider window", 5, 5, types.Point{X: 5, Y: 5}, false},
		{"tail moves away", 5, 1, types.Point{X: 5, Y: 6}, false},
		{"tail stays while growing", 6, 1, types.Point{X: 5, Y: 6}, true},
		{"free cell", 5, 1, types.Point{X: 7, Y: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := testSnapshot(body, tt.length, types.Left, apple)
			if got := Dangerous(snap, tt.grace, tt.cell); got != tt.want {
				t.Errorf("Dangerous = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDangerousIgnoresApple(t *testing.T) {
	body := []types.Point{{X: 6, Y: 5}, {X: 6, Y: 4}, {X: 5, Y: 4}, {X: 5, Y: 5}, {X: 5, Y: 6}}
	snap := testSnapshot(body, 5, types.Left, types.Point{X: 5, Y: 5})
	if Dangerous(snap, 4, types.Point{X: 5, Y: 5}) {
		t.Error("eating the apple never collides")
	}
}

func TestAutopilotNeverReverses(t *testing.T) {
	snap := testSnapshot([]types.Point{{X: 3, Y: 3}}, 1, types.Right, types.Point{X: 0, Y: 3})
	a := NewAutopilot(snap, 4, 1, zerolog.Nop())
	a.Agent().Epsilon = 1

	for i := 0; i < 200; i++ {
		events := a.Drain()
		if len(events) != 1 {
			t.Fatalf("drained %d events, want 1", len(events))
		}
		if events[0].Direction == types.Left {
			t.Fatal("autopilot asked for a reversal")
		}
	}
}

func TestUpdateRewardsApple(t *testing.T) {
	q := NewQLearning(rand.New(rand.NewSource(1)))
	s := State{RelativeFoodDir: [2]int{1, 0}}

	for i := 0; i < 50; i++ {
		q.Update(s, Right, Reward(true, false, 1, 0), State{})
	}
	if q.QTable[s][Right] <= 0.5 {
		t.Errorf("Q(s, right) = %v after repeated rewards", q.QTable[s][Right])
	}

	q.Epsilon = 0
	if got := q.GetAction(s, []Action{Up, Right, Down}); got != Right {
		t.Errorf("greedy action = %v, want right", got)
	}
}

func TestReward(t *testing.T) {
	tests := []struct {
		ate, died  bool
		prev, next int
		want       float64
	}{
		{true, false, 1, 0, 1},
		{false, true, 3, 2, -1},
		{false, false, 5, 4, 0.5},
		{false, false, 4, 5, -0.3},
		{false, false, 4, 4, 0},
	}
	for _, tt := range tests {
		if got := Reward(tt.ate, tt.died, tt.prev, tt.next); got != tt.want {
			t.Errorf("Reward(%v, %v, %d, %d) = %v, want %v", tt.ate, tt.died, tt.prev, tt.next, got, tt.want)
		}
	}
}

func playHeadless(t *testing.T, seed uint64, ticks uint64) game.Stats {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = seed

	g := game.NewGame(cfg)
	pilot := NewAutopilot(g.Snapshot(), g.GraceSegments(), seed, zerolog.Nop())
	r := loop.NewRunner(g, pilot, ui.Discard{}, ui.Layout{CellSize: cfg.CellSize},
		loop.WithObserver(pilot), loop.WithTickLimit(ticks))

	if err := r.Run(context.Background(), loop.Unpaced()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return g.Stats()
}

func TestAutopilotEatsApples(t *testing.T) {
	st := playHeadless(t, 42, 20000)
	if st.ApplesEaten == 0 {
		t.Errorf("autopilot ate nothing in %d ticks", st.Ticks)
	}
}

func TestAutopilotDeterministic(t *testing.T) {
	a := playHeadless(t, 3, 5000)
	b := playHeadless(t, 3, 5000)
	if a != b {
		t.Errorf("same seed gave different runs: %+v vs %+v", a, b)
	}
}
