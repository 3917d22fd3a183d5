package stream

import "sync"

// Subject is a hot multicast stream: values pushed via Next are fanned
// out to every current subscriber. Subscribers arriving after a
// terminal event receive that event immediately.
type Subject[T any] struct {
	mu        sync.RWMutex
	observers map[int]Observer[T]
	nextID    int
	completed bool
	failed    bool
	err       error
}

// NewSubject creates an empty subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{observers: make(map[int]Observer[T])}
}

// Next pushes a value to all current subscribers. No-op after a
// terminal event.
func (s *Subject[T]) Next(v T) {
	s.mu.RLock()
	if s.completed || s.failed {
		s.mu.RUnlock()
		return
	}
	observers := make([]Observer[T], 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	s.mu.RUnlock()

	for _, obs := range observers {
		obs.Next(v)
	}
}

// Error terminates the subject with err and notifies all subscribers.
func (s *Subject[T]) Error(err error) {
	s.mu.Lock()
	if s.completed || s.failed {
		s.mu.Unlock()
		return
	}
	s.failed = true
	s.err = err
	observers := s.drainLocked()
	s.mu.Unlock()

	for _, obs := range observers {
		obs.Error(err)
	}
}

// Complete terminates the subject and notifies all subscribers.
func (s *Subject[T]) Complete() {
	s.mu.Lock()
	if s.completed || s.failed {
		s.mu.Unlock()
		return
	}
	s.completed = true
	observers := s.drainLocked()
	s.mu.Unlock()

	for _, obs := range observers {
		obs.Complete()
	}
}

func (s *Subject[T]) drainLocked() []Observer[T] {
	observers := make([]Observer[T], 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	s.observers = make(map[int]Observer[T])
	return observers
}

// AsObservable exposes the subject's subscriber side.
func (s *Subject[T]) AsObservable() Observable[T] {
	return New(func(obs Observer[T]) Subscription {
		s.mu.Lock()
		if s.failed {
			err := s.err
			s.mu.Unlock()
			obs.Error(err)
			return NewSubscription(nil)
		}
		if s.completed {
			s.mu.Unlock()
			obs.Complete()
			return NewSubscription(nil)
		}
		id := s.nextID
		s.nextID++
		s.observers[id] = obs
		s.mu.Unlock()

		return NewSubscription(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	})
}

// SubscriberCount returns the number of active subscribers.
func (s *Subject[T]) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}
