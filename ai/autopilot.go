// Package ai steers the snake with a tabular Q-learning agent that learns
// while it plays.
package ai

import (
	"snake-sim/game"
	"snake-sim/game/types"
	"snake-sim/input"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Autopilot is an input.Source that emits one direction per tick and learns
// from the outcome reported to OnTick.
type Autopilot struct {
	agent *QLearning
	grace int
	snap  game.Snapshot
	log   zerolog.Logger

	pending    bool
	lastState  State
	lastAction Action
	lastDist   int
}

// NewAutopilot starts from the given snapshot. grace is the self collision
// grace window of the game it drives.
func NewAutopilot(snap game.Snapshot, grace int, seed uint64, log zerolog.Logger) *Autopilot {
	return &Autopilot{
		agent: NewQLearning(rand.New(rand.NewSource(seed))),
		grace: grace,
		snap:  snap,
		log:   log,
	}
}

// Agent exposes the underlying learner.
func (a *Autopilot) Agent() *QLearning {
	return a.agent
}

// Drain chooses the direction for the coming tick.
func (a *Autopilot) Drain() []input.Event {
	state := Observe(a.snap, a.grace)
	action := a.agent.GetAction(state, allowedActions(a.snap.Direction))

	a.pending = true
	a.lastState = state
	a.lastAction = action
	a.lastDist = a.snap.Grid.Distance(a.snap.Head, a.snap.Apple)

	return []input.Event{input.Direction(types.Directions[action])}
}

// OnTick learns from the tick that followed the last Drain.
func (a *Autopilot) OnTick(res game.TickResult, snap game.Snapshot) {
	a.snap = snap
	if !a.pending {
		return
	}
	a.pending = false

	ate := res.Outcome == game.AteApple
	died := res.Outcome == game.SelfCollision
	dist := snap.Grid.Distance(snap.Head, snap.Apple)

	reward := Reward(ate, died, a.lastDist, dist)
	a.agent.Update(a.lastState, a.lastAction, reward, Observe(snap, a.grace))

	if died {
		a.agent.GamesPlayed++
		a.log.Debug().
			Int("games", a.agent.GamesPlayed).
			Int("states", len(a.agent.QTable)).
			Float64("total_reward", a.agent.TotalReward).
			Msg("autopilot run ended")
	}
}

// Observe builds the agent state from a snapshot.
func Observe(snap game.Snapshot, grace int) State {
	var s State

	d := snap.Grid.Delta(snap.Head, snap.Apple)
	s.RelativeFoodDir = [2]int{sign(d.X), sign(d.Y)}

	for i, dir := range types.Directions {
		s.DangerDirs[i] = Dangerous(snap, grace, snap.Grid.Step(snap.Head, dir))
	}
	return s
}

// Dangerous reports whether moving the head onto cell would be a self
// collision on the next tick. The tail is ignored unless the snake is
// growing, since it moves out of the way.
func Dangerous(snap game.Snapshot, grace int, cell types.Point) bool {
	if grace < 1 {
		grace = 1
	}
	if cell == snap.Apple {
		return false
	}
	end := len(snap.Body)
	if snap.Length <= len(snap.Body) {
		end--
	}
	for i := grace - 1; i < end; i++ {
		if snap.Body[i] == cell {
			return true
		}
	}
	return false
}

// allowedActions excludes the reversal of current, which the snake ignores.
func allowedActions(current types.Direction) []Action {
	allowed := make([]Action, 0, numActions)
	for i, d := range types.Directions {
		if d == current.Opposite() {
			continue
		}
		allowed = append(allowed, Action(i))
	}
	return allowed
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
