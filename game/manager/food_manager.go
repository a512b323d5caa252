package manager

import (
	"snake-sim/game/entity"
	"snake-sim/game/types"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// DefaultPlacementAttempts bounds the random sampling before the scan fallback.
const DefaultPlacementAttempts = 1024

// FoodManager decides where the apple respawns.
type FoodManager struct {
	grid        types.Grid
	rng         *rand.Rand
	avoidSnake  bool
	maxAttempts int
	log         zerolog.Logger
}

func NewFoodManager(grid types.Grid, rng *rand.Rand, avoidSnake bool, maxAttempts int, log zerolog.Logger) *FoodManager {
	if maxAttempts <= 0 {
		maxAttempts = DefaultPlacementAttempts
	}
	return &FoodManager{
		grid:        grid,
		rng:         rng,
		avoidSnake:  avoidSnake,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// AvoidsSnake reports whether placement excludes cells under the snake.
func (fm *FoodManager) AvoidsSnake() bool {
	return fm.avoidSnake
}

// Place relocates the apple according to the placement policy.
// It returns false when no free cell exists; the apple then keeps its position.
func (fm *FoodManager) Place(apple *entity.Apple, snake *entity.Snake) bool {
	var occupied types.PointSet
	if fm.avoidSnake {
		occupied = snake.Occupied()
	}

	if !apple.Relocate(fm.grid, occupied, fm.rng, fm.maxAttempts) {
		fm.log.Warn().
			Int("snake_length", snake.Len()).
			Int("grid_cells", fm.grid.Size()).
			Msg("no free cell for apple, keeping previous position")
		return false
	}

	fm.log.Debug().
		Int("x", apple.Position.X).
		Int("y", apple.Position.Y).
		Msg("apple placed")
	return true
}
