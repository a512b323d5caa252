package manager

import (
	"snake-sim/game/entity"
)

// DefaultGraceSegments exempts the three segments trailing the head.
const DefaultGraceSegments = 4

// CollisionManager holds the collision rules of a tick.
type CollisionManager struct {
	graceSegments int
}

func NewCollisionManager(graceSegments int) *CollisionManager {
	if graceSegments < 1 {
		graceSegments = 1
	}
	return &CollisionManager{
		graceSegments: graceSegments,
	}
}

// GraceSegments returns the index of the first segment that counts as a collision.
func (cm *CollisionManager) GraceSegments() int {
	return cm.graceSegments
}

// IsFoodCollision checks if the snake's head is on the apple.
func (cm *CollisionManager) IsFoodCollision(snake *entity.Snake, apple *entity.Apple) bool {
	return snake.Head() == apple.Position
}

// IsSelfCollision checks if the head overlaps a non-exempt body segment.
func (cm *CollisionManager) IsSelfCollision(snake *entity.Snake) bool {
	return snake.CheckSelfCollision(cm.graceSegments)
}
