package stream

import "sync/atomic"

// Observer receives notifications from an Observable. After Error or
// Complete no further notifications are delivered.
type Observer[T any] interface {
	Next(value T)
	Error(err error)
	Complete()
}

// funcObserver adapts plain callbacks to the Observer interface.
// Nil callbacks are skipped.
type funcObserver[T any] struct {
	next     func(T)
	err      func(error)
	complete func()
}

func (f *funcObserver[T]) Next(v T) {
	if f.next != nil {
		f.next(v)
	}
}

func (f *funcObserver[T]) Error(err error) {
	if f.err != nil {
		f.err(err)
	}
}

func (f *funcObserver[T]) Complete() {
	if f.complete != nil {
		f.complete()
	}
}

// subscriber guards a downstream observer: it enforces that at most one
// terminal event is delivered, drops values after termination or
// unsubscription, and tears down the upstream subscription once a
// terminal event fires.
type subscriber[T any] struct {
	dest Observer[T]
	sub  *CompositeSubscription
	done atomic.Bool
}

func (s *subscriber[T]) Next(v T) {
	if s.done.Load() || s.sub.Closed() {
		return
	}
	s.dest.Next(v)
}

func (s *subscriber[T]) Error(err error) {
	if s.done.CompareAndSwap(false, true) {
		s.dest.Error(err)
		s.sub.Unsubscribe()
	}
}

func (s *subscriber[T]) Complete() {
	if s.done.CompareAndSwap(false, true) {
		s.dest.Complete()
		s.sub.Unsubscribe()
	}
}
