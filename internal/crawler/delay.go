package crawler

import (
	"context"
	"math/rand/v2"
	"time"
)

// SleepFunc pauses for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Delay is the politeness pause taken before every request: a uniformly
// random whole number of seconds in [Min, Max].
type Delay struct {
	Min   int
	Max   int
	sleep SleepFunc
}

// NewDelay creates a Delay for the given range in seconds
func NewDelay(minSeconds, maxSeconds int) Delay {
	return Delay{Min: minSeconds, Max: maxSeconds, sleep: sleepContext}
}

// Next draws the length of the next pause
func (d Delay) Next() time.Duration {
	if d.Max <= d.Min {
		return time.Duration(max(d.Min, 0)) * time.Second
	}
	return time.Duration(d.Min+rand.IntN(d.Max-d.Min+1)) * time.Second
}

// Wait pauses for the next drawn duration
func (d Delay) Wait(ctx context.Context) error {
	sleep := d.sleep
	if sleep == nil {
		sleep = sleepContext
	}
	return sleep(ctx, d.Next())
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
