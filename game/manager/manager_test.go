package manager

import (
	"testing"

	"snake-sim/game/entity"
	"snake-sim/game/types"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

var grid = types.Grid{Width: 8, Height: 6}

func TestFoodManagerAvoidsSnake(t *testing.T) {
	snake := entity.NewSnake(grid, types.Color{G: 255}, types.Color{})
	snake.Body = nil
	for x := 0; x < grid.Width; x++ {
		for y := 0; y < grid.Height-1; y++ {
			snake.Body = append(snake.Body, types.Point{X: x, Y: y})
		}
	}
	snake.Length = len(snake.Body)

	apple := entity.NewApple(types.Color{R: 255}, types.Color{})
	fm := NewFoodManager(grid, rand.New(rand.NewSource(3)), true, 16, zerolog.Nop())

	for i := 0; i < 50; i++ {
		if !fm.Place(apple, snake) {
			t.Fatal("placement failed with a free row")
		}
		if snake.Occupies(apple.Position) {
			t.Fatalf("apple placed on snake at %v", apple.Position)
		}
		if apple.Position.Y != grid.Height-1 {
			t.Fatalf("apple outside the only free row: %v", apple.Position)
		}
	}
}

func TestFoodManagerPolicyOff(t *testing.T) {
	snake := entity.NewSnake(grid, types.Color{G: 255}, types.Color{})
	snake.Body = nil
	for x := 0; x < grid.Width; x++ {
		for y := 0; y < grid.Height; y++ {
			snake.Body = append(snake.Body, types.Point{X: x, Y: y})
		}
	}

	apple := entity.NewApple(types.Color{R: 255}, types.Color{})
	fm := NewFoodManager(grid, rand.New(rand.NewSource(3)), false, 0, zerolog.Nop())
	if fm.AvoidsSnake() {
		t.Fatal("policy should be off")
	}

	// With the policy off even a fully covered grid accepts a sample.
	if !fm.Place(apple, snake) {
		t.Error("placement without avoidance should always succeed")
	}
}

func TestFoodManagerFullGrid(t *testing.T) {
	small := types.Grid{Width: 2, Height: 1}
	snake := entity.NewSnake(small, types.Color{G: 255}, types.Color{})
	snake.Body = []types.Point{{X: 1, Y: 0}, {X: 0, Y: 0}}
	snake.Length = 2

	apple := entity.NewApple(types.Color{R: 255}, types.Color{})
	apple.Position = types.Point{X: 1, Y: 0}
	fm := NewFoodManager(small, rand.New(rand.NewSource(9)), true, 8, zerolog.Nop())

	if fm.Place(apple, snake) {
		t.Error("expected failure on a full grid")
	}
	if apple.Position != (types.Point{X: 1, Y: 0}) {
		t.Errorf("apple moved to %v", apple.Position)
	}
}

func TestCollisionManager(t *testing.T) {
	cm := NewCollisionManager(0)
	if cm.GraceSegments() != 1 {
		t.Errorf("grace below 1 should clamp to 1, got %d", cm.GraceSegments())
	}

	snake := entity.NewSnake(grid, types.Color{G: 255}, types.Color{})
	apple := entity.NewApple(types.Color{R: 255}, types.Color{})
	apple.Position = snake.Head()
	if !cm.IsFoodCollision(snake, apple) {
		t.Error("head on apple not detected")
	}
	apple.Position = types.Point{}
	if cm.IsFoodCollision(snake, apple) {
		t.Error("false apple hit")
	}

	snake.Body = []types.Point{{X: 2, Y: 2}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 2}, {X: 2, Y: 2}}
	snake.Length = 5
	if !NewCollisionManager(DefaultGraceSegments).IsSelfCollision(snake) {
		t.Error("overlap at index 4 should collide with default grace")
	}
	if NewCollisionManager(5).IsSelfCollision(snake) {
		t.Error("overlap at index 4 is exempt with grace 5")
	}
}

func TestStateManager(t *testing.T) {
	sm := NewStateManager()

	sm.AddPoint()
	sm.AddPoint()
	if sm.GetScore() != 2 || sm.GetHighScore() != 2 {
		t.Fatalf("score %d high %d", sm.GetScore(), sm.GetHighScore())
	}

	sm.EndRun()
	if sm.GetScore() != 0 {
		t.Errorf("score after run end = %d", sm.GetScore())
	}
	if sm.GetHighScore() != 2 {
		t.Errorf("high score lost: %d", sm.GetHighScore())
	}

	sm.AddPoint()
	sm.EndRun()
	for i := 0; i < 6; i++ {
		sm.AddPoint()
	}
	sm.EndRun()

	if sm.GetGamesPlayed() != 3 {
		t.Errorf("games played = %d", sm.GetGamesPlayed())
	}
	if sm.GetApplesEaten() != 9 {
		t.Errorf("apples eaten = %d", sm.GetApplesEaten())
	}
	if got := sm.GetAverageScore(); got != 3 {
		t.Errorf("average = %v, want 3", got)
	}
	if got := sm.GetMedianScore(); got != 2 {
		t.Errorf("median = %v, want 2", got)
	}
	if sm.GetHighScore() != 6 {
		t.Errorf("high score = %d, want 6", sm.GetHighScore())
	}
}

func TestStateManagerHistoryCap(t *testing.T) {
	sm := NewStateManager()
	for i := 0; i < maxRuns+10; i++ {
		sm.EndRun()
	}
	if len(sm.GetScoreHistory()) != maxRuns {
		t.Errorf("history length %d, want %d", len(sm.GetScoreHistory()), maxRuns)
	}
	if sm.GetGamesPlayed() != maxRuns+10 {
		t.Errorf("games played %d", sm.GetGamesPlayed())
	}
}

func TestEmptyStatistics(t *testing.T) {
	sm := NewStateManager()
	if sm.GetAverageScore() != 0 || sm.GetMedianScore() != 0 {
		t.Error("empty statistics should be zero")
	}
}
