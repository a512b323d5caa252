package manager

import (
	"sort"
)

// maxRuns caps the score history kept for statistics.
const maxRuns = 200

// StateManager tracks the score of the current run and in-memory statistics
// over the runs of a session.
type StateManager struct {
	score       int
	highScore   int
	applesEaten int
	resets      int
	runs        []int
}

func NewStateManager() *StateManager {
	return &StateManager{
		runs: make([]int, 0),
	}
}

// AddPoint records one apple and returns the new score.
func (sm *StateManager) AddPoint() int {
	sm.score++
	sm.applesEaten++
	if sm.score > sm.highScore {
		sm.highScore = sm.score
	}
	return sm.score
}

// EndRun closes the current run after a reset and zeroes the score.
func (sm *StateManager) EndRun() {
	if len(sm.runs) >= maxRuns {
		sm.runs = sm.runs[1:]
	}
	sm.runs = append(sm.runs, sm.score)
	sm.resets++
	sm.score = 0
}

func (sm *StateManager) GetScore() int {
	return sm.score
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}

// GetApplesEaten returns the apples eaten over the whole session.
func (sm *StateManager) GetApplesEaten() int {
	return sm.applesEaten
}

// GetGamesPlayed returns the number of finished runs.
func (sm *StateManager) GetGamesPlayed() int {
	return sm.resets
}

// GetScoreHistory returns a copy of the most recent finished run scores.
func (sm *StateManager) GetScoreHistory() []int {
	out := make([]int, len(sm.runs))
	copy(out, sm.runs)
	return out
}

// GetAverageScore returns the mean score of the kept runs.
func (sm *StateManager) GetAverageScore() float64 {
	if len(sm.runs) == 0 {
		return 0
	}
	total := 0
	for _, s := range sm.runs {
		total += s
	}
	return float64(total) / float64(len(sm.runs))
}

// GetMedianScore returns the median score of the kept runs.
func (sm *StateManager) GetMedianScore() float64 {
	if len(sm.runs) == 0 {
		return 0
	}
	scores := sm.GetScoreHistory()
	sort.Ints(scores)
	n := len(scores)
	if n%2 == 0 {
		return float64(scores[n/2-1]+scores[n/2]) / 2
	}
	return float64(scores[n/2])
}
