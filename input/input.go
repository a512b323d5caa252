// Package input turns host key presses into the two events the game
// understands and buffers them until the next tick drains them.
package input

import (
	"sync"

	"snake-sim/game/types"
)

// Kind identifies an input event.
type Kind int

const (
	DirectionRequested Kind = iota
	Quit
)

func (k Kind) String() string {
	if k == Quit {
		return "quit"
	}
	return "direction"
}

// Event is a single request from the player or an automated driver.
type Event struct {
	Kind      Kind
	Direction types.Direction
}

// Direction builds a DirectionRequested event.
func Direction(d types.Direction) Event {
	return Event{Kind: DirectionRequested, Direction: d}
}

// QuitEvent builds a Quit event.
func QuitEvent() Event {
	return Event{Kind: Quit}
}

// Source hands out the events collected since the previous call.
// Drain must not block.
type Source interface {
	Drain() []Event
}

// Queue is a Source fed from other goroutines, typically a key polling loop.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event. Safe for concurrent use.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// Drain returns the buffered events in arrival order and empties the queue.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Script replays a fixed list of batches, one batch per Drain. Once it runs
// out it returns nothing.
type Script struct {
	batches [][]Event
	next    int
}

func NewScript(batches ...[]Event) *Script {
	return &Script{batches: batches}
}

func (s *Script) Drain() []Event {
	if s.next >= len(s.batches) {
		return nil
	}
	b := s.batches[s.next]
	s.next++
	return b
}

// Done reports whether every batch has been handed out.
func (s *Script) Done() bool {
	return s.next >= len(s.batches)
}

type merged []Source

// Merge drains every source in order and concatenates the results.
func Merge(sources ...Source) Source {
	out := make(merged, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m merged) Drain() []Event {
	var events []Event
	for _, s := range m {
		events = append(events, s.Drain()...)
	}
	return events
}

// FromRune maps the letter keys shared by every keyboard backend:
// w a s d steer, q and Q quit.
func FromRune(r rune) (Event, bool) {
	switch r {
	case 'w', 'W':
		return Direction(types.Up), true
	case 's', 'S':
		return Direction(types.Down), true
	case 'a', 'A':
		return Direction(types.Left), true
	case 'd', 'D':
		return Direction(types.Right), true
	case 'q', 'Q':
		return QuitEvent(), true
	}
	return Event{}, false
}
