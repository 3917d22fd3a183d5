package stream

import "time"

// Scheduler is an injected time source for time-based sources and
// operators. Passing it explicitly keeps timing testable; the
// marbletest package provides a deterministic virtual implementation.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time
	// Schedule runs fn after delay. The returned Subscription cancels
	// the pending call.
	Schedule(delay time.Duration, fn func()) Subscription
}

// Realtime returns a Scheduler backed by the wall clock.
func Realtime() Scheduler { return realtimeScheduler{} }

type realtimeScheduler struct{}

func (realtimeScheduler) Now() time.Time { return time.Now() }

func (realtimeScheduler) Schedule(delay time.Duration, fn func()) Subscription {
	t := time.AfterFunc(delay, fn)
	return NewSubscription(func() { t.Stop() })
}
