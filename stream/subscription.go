package stream

import (
	"sync"
	"sync/atomic"
)

// Subscription represents one observer's attachment to an Observable.
// Unsubscribe stops upstream work and releases resources. Safe to call
// multiple times.
type Subscription interface {
	Unsubscribe()
	Closed() bool
}

// NewSubscription wraps a teardown function as a Subscription.
// The teardown runs at most once. A nil teardown yields an inert
// subscription that only tracks closed state.
func NewSubscription(teardown func()) Subscription {
	return &funcSubscription{teardown: teardown}
}

type funcSubscription struct {
	once     sync.Once
	closed   atomic.Bool
	teardown func()
}

func (f *funcSubscription) Unsubscribe() {
	f.once.Do(func() {
		f.closed.Store(true)
		if f.teardown != nil {
			f.teardown()
		}
	})
}

func (f *funcSubscription) Closed() bool { return f.closed.Load() }

// CompositeSubscription aggregates child subscriptions so they can be
// torn down together. Adding to an already-closed composite
// unsubscribes the child immediately.
type CompositeSubscription struct {
	mu       sync.Mutex
	children []Subscription
	closed   bool
}

// NewComposite creates an empty composite subscription.
func NewComposite() *CompositeSubscription {
	return &CompositeSubscription{}
}

// Add registers a child for teardown. Nil children are ignored.
func (c *CompositeSubscription) Add(sub Subscription) {
	if sub == nil {
		return
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		sub.Unsubscribe()
		return
	}
	c.children = append(c.children, sub)
	c.mu.Unlock()
}

// Unsubscribe tears down all children in registration order.
func (c *CompositeSubscription) Unsubscribe() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	children := c.children
	c.children = nil
	c.mu.Unlock()

	for _, sub := range children {
		sub.Unsubscribe()
	}
}

// Closed reports whether Unsubscribe has been called.
func (c *CompositeSubscription) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// serialSubscription holds at most one live child subscription.
// Replacing with an already-closed child is a no-op; replacing after
// the serial itself closed unsubscribes the child immediately.
type serialSubscription struct {
	mu      sync.Mutex
	current Subscription
	closed  bool
}

func (s *serialSubscription) replace(sub Subscription) {
	if sub == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sub.Unsubscribe()
		return
	}
	if sub.Closed() {
		s.mu.Unlock()
		return
	}
	s.current = sub
	s.mu.Unlock()
}

func (s *serialSubscription) Unsubscribe() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	current := s.current
	s.current = nil
	s.mu.Unlock()

	if current != nil {
		current.Unsubscribe()
	}
}

func (s *serialSubscription) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
