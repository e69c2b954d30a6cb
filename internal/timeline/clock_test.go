package timeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestPollClock_DeliversChangesUntilCancelled(t *testing.T) {
	var mu sync.Mutex
	now := 0.0
	clock := ClockFunc(func() float64 {
		mu.Lock()
		defer mu.Unlock()
		now += 0.1
		if now > 0.35 {
			return 0.4 // paused
		}
		return now
	})

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan float64, 100)
	done := make(chan error, 1)
	go func() {
		done <- PollClock(ctx, clock, time.Millisecond, func(t float64) { got <- t })
	}()

	deadline := time.After(2 * time.Second)
	var seen []float64
	for len(seen) < 4 {
		select {
		case v := <-got:
			seen = append(seen, v)
		case <-deadline:
			t.Fatalf("timed out, seen %v", seen)
		}
	}
	// Give the poller time to read the paused clock a few more times.
	time.Sleep(20 * time.Millisecond)
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("PollClock() error = %v, want context.Canceled", err)
	}
	if len(got) != 0 {
		t.Errorf("paused clock delivered extra readings: %d", len(got))
	}
	if seen[3] != 0.4 {
		t.Errorf("fourth reading = %v, want 0.4", seen[3])
	}
}
