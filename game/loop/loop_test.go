package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"snake-sim/config"
	"snake-sim/game"
	"snake-sim/game/types"
	"snake-sim/input"
	"snake-sim/ui"
)

func newGame(t *testing.T) (*game.Game, config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 99
	return game.NewGame(cfg), cfg
}

type countingObserver struct {
	results []game.TickResult
	heads   []types.Point
}

func (c *countingObserver) OnTick(res game.TickResult, snap game.Snapshot) {
	c.results = append(c.results, res)
	c.heads = append(c.heads, snap.Head)
}

func TestStepAppliesDirection(t *testing.T) {
	g, cfg := newGame(t)
	src := input.NewScript([]input.Event{input.Direction(types.Down)})
	r := NewRunner(g, src, nil, ui.Layout{CellSize: cfg.CellSize})

	start := g.Snapshot().Head
	res, err := r.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if res.Tick != 1 {
		t.Errorf("tick = %d, want 1", res.Tick)
	}
	if got := g.Snapshot(); got.Direction != types.Down || got.Head != g.Grid.Step(start, types.Down) {
		t.Errorf("snake did not turn down: %+v", got)
	}
}

func TestStepQuitBeforeTick(t *testing.T) {
	g, cfg := newGame(t)
	src := input.NewScript([]input.Event{
		input.Direction(types.Up),
		input.QuitEvent(),
		input.Direction(types.Down),
	})
	r := NewRunner(g, src, nil, ui.Layout{CellSize: cfg.CellSize})

	if _, err := r.Step(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Step error = %v, want ErrQuit", err)
	}
	if st := g.Stats(); st.Ticks != 0 {
		t.Errorf("game ticked %d times after quit", st.Ticks)
	}
}

func TestLastDirectionWinsWithinBatch(t *testing.T) {
	g, cfg := newGame(t)
	src := input.NewScript([]input.Event{
		input.Direction(types.Up),
		input.Direction(types.Down),
	})
	r := NewRunner(g, src, nil, ui.Layout{CellSize: cfg.CellSize})

	if _, err := r.Step(); err != nil {
		t.Fatal(err)
	}
	if d := g.Snapshot().Direction; d != types.Down {
		t.Errorf("direction = %v, want down", d)
	}
}

func TestObserversSeeEveryTick(t *testing.T) {
	g, cfg := newGame(t)
	obs := &countingObserver{}
	r := NewRunner(g, nil, nil, ui.Layout{CellSize: cfg.CellSize}, WithObserver(obs))

	for i := 0; i < 3; i++ {
		if _, err := r.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if len(obs.results) != 3 {
		t.Fatalf("observer saw %d ticks, want 3", len(obs.results))
	}
	for i, res := range obs.results {
		if res.Tick != uint64(i+1) {
			t.Errorf("result %d has tick %d", i, res.Tick)
		}
	}
}

func TestRunTickLimit(t *testing.T) {
	g, cfg := newGame(t)
	var rec ui.Recorder
	r := NewRunner(g, input.NewQueue(), &rec, ui.Layout{CellSize: cfg.CellSize}, WithTickLimit(25))

	if err := r.Run(context.Background(), Unpaced()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st := g.Stats(); st.Ticks != 25 {
		t.Errorf("ticks = %d, want 25", st.Ticks)
	}
	// One frame up front, then one per tick.
	if len(rec.Frames) != 26 {
		t.Errorf("rendered %d frames, want 26", len(rec.Frames))
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	g, cfg := newGame(t)
	src := input.NewScript(nil, nil, []input.Event{input.QuitEvent()})
	r := NewRunner(g, src, nil, ui.Layout{CellSize: cfg.CellSize})

	if err := r.Run(context.Background(), Unpaced()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st := g.Stats(); st.Ticks != 2 {
		t.Errorf("ticks = %d, want 2", st.Ticks)
	}
}

func TestRunCancelled(t *testing.T) {
	g, cfg := newGame(t)
	r := NewRunner(g, nil, nil, ui.Layout{CellSize: cfg.CellSize})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx, Every(time.Hour))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestEveryPacer(t *testing.T) {
	p := Every(time.Millisecond)
	defer p.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
}
