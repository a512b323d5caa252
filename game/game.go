package game

import (
	"time"

	"snake-sim/config"
	"snake-sim/game/entity"
	"snake-sim/game/manager"
	"snake-sim/game/types"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Outcome describes what happened during a tick.
type Outcome int

const (
	Moved Outcome = iota
	AteApple
	SelfCollision
)

func (o Outcome) String() string {
	switch o {
	case AteApple:
		return "ate_apple"
	case SelfCollision:
		return "self_collision"
	default:
		return "moved"
	}
}

// TickResult summarises one completed tick.
type TickResult struct {
	Tick    uint64
	Outcome Outcome
	Score   int
	Length  int
}

// Stats are session wide counters.
type Stats struct {
	Ticks        uint64
	ApplesEaten  int
	GamesPlayed  int
	HighScore    int
	AverageScore float64
	MedianScore  float64
}

// Game is the simulation of one snake chasing one apple on a toroidal grid.
// It is not safe for concurrent use; a single loop owns it.
type Game struct {
	UUID      string
	Grid      types.Grid
	StartTime time.Time

	snake        *entity.Snake
	apple        *entity.Apple
	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	stateMgr     *manager.StateManager
	background   types.Color
	tick         uint64
	rng          *rand.Rand
	log          zerolog.Logger
}

// Option customises a Game at construction.
type Option func(*Game)

// WithLogger sets the logger; the session id is attached to it.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) {
		g.log = l
	}
}

// WithRand replaces the random source used for apple placement.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		g.rng = r
	}
}

// NewGame builds the initial state and places the first apple.
func NewGame(cfg config.Config, opts ...Option) *Game {
	grid := cfg.Grid()

	g := &Game{
		UUID:       uuid.New().String(),
		Grid:       grid,
		StartTime:  time.Now(),
		background: cfg.Colors.Background,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		g.rng = rand.New(rand.NewSource(seed))
	}
	g.log = g.log.With().Str("session", g.UUID).Logger()

	g.snake = entity.NewSnake(grid, cfg.Colors.Snake, cfg.Colors.Border)
	g.apple = entity.NewApple(cfg.Colors.Apple, cfg.Colors.Border)
	g.collisionMgr = manager.NewCollisionManager(cfg.GraceSegments)
	g.foodMgr = manager.NewFoodManager(grid, g.rng, cfg.AppleAvoidsSnake, cfg.MaxPlacementAttempts, g.log)
	g.stateMgr = manager.NewStateManager()

	g.foodMgr.Place(g.apple, g.snake)

	g.log.Info().
		Int("width", grid.Width).
		Int("height", grid.Height).
		Int("grace_segments", g.collisionMgr.GraceSegments()).
		Bool("apple_avoids_snake", g.foodMgr.AvoidsSnake()).
		Msg("game created")

	return g
}

// Logger returns the session logger.
func (g *Game) Logger() zerolog.Logger {
	return g.log
}

// RequestDirection latches a direction for the next tick.
// Direct reversals are ignored.
func (g *Game) RequestDirection(dir types.Direction) {
	g.snake.SetPendingDirection(dir)
}

// Tick advances the simulation by one step:
// apply the latched direction, move, then either eat the apple or check for a
// self collision. Eating suppresses the collision check for that tick.
func (g *Game) Tick() TickResult {
	g.tick++

	g.snake.ApplyPendingDirection()
	g.snake.Move()

	outcome := Moved
	switch {
	case g.collisionMgr.IsFoodCollision(g.snake, g.apple):
		g.snake.Grow()
		score := g.stateMgr.AddPoint()
		g.foodMgr.Place(g.apple, g.snake)
		outcome = AteApple

		g.log.Debug().
			Uint64("tick", g.tick).
			Int("score", score).
			Int("length", g.snake.Length).
			Msg("apple eaten")

	case g.collisionMgr.IsSelfCollision(g.snake):
		g.log.Info().
			Uint64("tick", g.tick).
			Int("score", g.stateMgr.GetScore()).
			Int("length", g.snake.Len()).
			Msg("self collision, resetting")

		g.snake.Reset()
		g.stateMgr.EndRun()
		outcome = SelfCollision
	}

	return TickResult{
		Tick:    g.tick,
		Outcome: outcome,
		Score:   g.stateMgr.GetScore(),
		Length:  g.snake.Length,
	}
}

// Score returns the current run score.
func (g *Game) Score() int {
	return g.stateMgr.GetScore()
}

// GraceSegments returns the self collision grace window.
func (g *Game) GraceSegments() int {
	return g.collisionMgr.GraceSegments()
}

// Stats returns session counters.
func (g *Game) Stats() Stats {
	return Stats{
		Ticks:        g.tick,
		ApplesEaten:  g.stateMgr.GetApplesEaten(),
		GamesPlayed:  g.stateMgr.GetGamesPlayed(),
		HighScore:    g.stateMgr.GetHighScore(),
		AverageScore: g.stateMgr.GetAverageScore(),
		MedianScore:  g.stateMgr.GetMedianScore(),
	}
}
