package engine

import (
	"context"
	"testing"
	"time"
)

func TestClock_DoneByDepth(t *testing.T) {
	t.Parallel()
	c := NewClock()
	c.Start(context.Background(), SearchLimits{Depth: 3, Movetime: time.Minute})
	defer c.Stop()
	if c.DoneByDepth(3) {
		t.Error("depth 3 should still be searched")
	}
	if !c.DoneByDepth(4) {
		t.Error("depth 4 exceeds the limit")
	}
}

func TestClock_ExpiresByMovetime(t *testing.T) {
	t.Parallel()
	c := NewClock()
	c.Start(context.Background(), SearchLimits{Depth: 64, Movetime: 60 * time.Millisecond})
	defer c.Stop()
	if c.Done() {
		t.Fatal("clock expired immediately")
	}
	deadline := time.Now().Add(2 * time.Second)
	for !c.Done() {
		if time.Now().After(deadline) {
			t.Fatal("clock never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestClock_StopEndsSearch(t *testing.T) {
	t.Parallel()
	c := NewClock()
	c.Start(context.Background(), SearchLimits{Depth: 64, Movetime: time.Minute})
	c.Stop()
	if !c.Done() {
		t.Error("stopped clock should report done")
	}
}

func TestClock_CancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	c := NewClock()
	c.Start(ctx, SearchLimits{Depth: 64, Movetime: time.Minute})
	defer c.Stop()
	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for !c.Done() {
		if time.Now().After(deadline) {
			t.Fatal("clock did not observe context cancellation")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
