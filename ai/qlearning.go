package ai

import (
	"math"

	"golang.org/x/exp/rand"
)

// State is what the agent sees: which way the apple is and which of the four
// neighbouring cells would end the run.
type State struct {
	RelativeFoodDir [2]int  // sign of the shortest offset to the apple (x, y)
	DangerDirs      [4]bool // up, right, down, left
}

// Action indexes types.Directions.
type Action int

const (
	Up Action = iota
	Right
	Down
	Left
)

const numActions = 4

// QTable maps a state to the value of each action.
type QTable map[State][numActions]float64

// QLearning is a tabular Q-learning agent. It is not safe for concurrent use.
type QLearning struct {
	QTable       QTable
	LearningRate float64
	Discount     float64
	Epsilon      float64
	TotalReward  float64
	GamesPlayed  int

	rng *rand.Rand
}

func NewQLearning(rng *rand.Rand) *QLearning {
	return &QLearning{
		QTable:       make(QTable),
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.1,
		rng:          rng,
	}
}

// GetAction picks an action epsilon-greedily among the allowed ones.
func (q *QLearning) GetAction(state State, allowed []Action) Action {
	if len(allowed) == 0 {
		return Up
	}
	if q.rng.Float64() < q.Epsilon {
		return allowed[q.rng.Intn(len(allowed))]
	}
	return q.getBestAction(state, allowed)
}

func (q *QLearning) getBestAction(state State, allowed []Action) Action {
	values := q.QTable[state]

	best := allowed[0]
	bestValue := math.Inf(-1)
	for _, a := range allowed {
		if values[a] > bestValue {
			bestValue = values[a]
			best = a
		}
	}
	return best
}

// Update applies the Q-learning rule for one transition.
func (q *QLearning) Update(state State, action Action, reward float64, nextState State) {
	next := q.QTable[nextState]
	maxNextQ := next[0]
	for _, v := range next[1:] {
		if v > maxNextQ {
			maxNextQ = v
		}
	}

	values := q.QTable[state]
	values[action] += q.LearningRate * (reward + q.Discount*maxNextQ - values[action])
	q.QTable[state] = values

	q.TotalReward += reward
}

// Reward scores a transition: eating and dying dominate, otherwise moving
// closer to the apple is encouraged.
func Reward(ate, died bool, prevDistance, distance int) float64 {
	switch {
	case ate:
		return 1.0
	case died:
		return -1.0
	case distance < prevDistance:
		return 0.5
	case distance > prevDistance:
		return -0.3
	}
	return 0
}
