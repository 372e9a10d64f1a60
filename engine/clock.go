package engine

import (
	"context"
	"sync/atomic"
	"time"
)

const (
	MaxMovetime       = 24 * time.Hour
	MaxDepth    uint8 = 64

	minMovetime    = 50 * time.Millisecond
	movetimeMargin = 20 * time.Millisecond
)

// Clock bounds one search. The search loop polls Done between nodes, so a
// deadline stops the search cooperatively rather than preempting it.
type Clock struct {
	targetDepth uint8

	done   atomic.Bool
	cancel context.CancelFunc
}

func NewClock() *Clock {
	c := &Clock{}
	c.done.Store(true)
	return c
}

func (c *Clock) Start(ctx context.Context, limits SearchLimits) {
	c.Stop()
	c.targetDepth = limits.Depth
	if c.targetDepth == 0 || c.targetDepth > MaxDepth {
		c.targetDepth = MaxDepth
	}
	movetime := limits.Movetime
	if movetime <= 0 {
		movetime = MaxMovetime
	}
	if movetime < minMovetime {
		movetime = minMovetime
	}

	ctx, cancel := context.WithTimeout(ctx, movetime-movetimeMargin)
	c.cancel = cancel
	c.done.Store(false)

	go func() {
		<-ctx.Done()
		c.done.Store(true)
	}()
}

func (c *Clock) Stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.done.Store(true)
}

// Done reports whether the movetime budget is exhausted.
func (c *Clock) Done() bool {
	return c.done.Load()
}

func (c *Clock) DoneByDepth(depth uint8) bool {
	return depth > c.targetDepth
}
