package loop

import (
	"context"
	"time"
)

// Pacer gates how often the loop ticks.
type Pacer interface {
	// Wait blocks until the next tick is due or ctx is done.
	Wait(ctx context.Context) error
	Stop()
}

type ticker struct {
	t *time.Ticker
}

// Every paces the loop at a fixed interval.
func Every(d time.Duration) Pacer {
	return &ticker{t: time.NewTicker(d)}
}

func (p *ticker) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.t.C:
		return nil
	}
}

func (p *ticker) Stop() {
	p.t.Stop()
}

type unpaced struct{}

// Unpaced never waits. Used for headless runs.
func Unpaced() Pacer {
	return unpaced{}
}

func (unpaced) Wait(ctx context.Context) error {
	return ctx.Err()
}

func (unpaced) Stop() {}
