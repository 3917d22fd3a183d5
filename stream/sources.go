package stream

import "time"

// Just emits the given values in order, then completes.
func Just[T any](values ...T) Observable[T] {
	return FromSlice(values)
}

// FromSlice emits every element of items, then completes. The slice is
// not copied; callers must not mutate it after construction.
func FromSlice[T any](items []T) Observable[T] {
	return New(func(obs Observer[T]) Subscription {
		for _, v := range items {
			obs.Next(v)
		}
		obs.Complete()
		return NewSubscription(nil)
	})
}

// FromChannel emits values read from ch until it is closed, then
// completes. Each subscription spawns its own reader goroutine;
// multiple subscribers to the same channel split the values between
// them.
func FromChannel[T any](ch <-chan T) Observable[T] {
	return New(func(obs Observer[T]) Subscription {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case v, open := <-ch:
					if !open {
						obs.Complete()
						return
					}
					obs.Next(v)
				case <-done:
					return
				}
			}
		}()
		return NewSubscription(func() { close(done) })
	})
}

// Empty completes immediately without emitting.
func Empty[T any]() Observable[T] {
	return New(func(obs Observer[T]) Subscription {
		obs.Complete()
		return NewSubscription(nil)
	})
}

// Never emits nothing and never terminates.
func Never[T any]() Observable[T] {
	return New(func(Observer[T]) Subscription {
		return NewSubscription(nil)
	})
}

// Throw fails immediately with err.
func Throw[T any](err error) Observable[T] {
	return New(func(obs Observer[T]) Subscription {
		obs.Error(err)
		return NewSubscription(nil)
	})
}

// Defer calls factory once per subscription and subscribes to the
// produced stream. Construction is pushed to subscription time.
func Defer[T any](factory func() Observable[T]) Observable[T] {
	return New(func(obs Observer[T]) Subscription {
		return factory().Subscribe(obs)
	})
}

// Timer emits 0 after delay on the given scheduler, then completes.
func Timer(s Scheduler, delay time.Duration) Observable[int] {
	return New(func(obs Observer[int]) Subscription {
		return s.Schedule(delay, func() {
			obs.Next(0)
			obs.Complete()
		})
	})
}

// Interval emits 0, 1, 2, ... every period on the given scheduler.
// It never completes; unsubscribe to stop it.
func Interval(s Scheduler, period time.Duration) Observable[int] {
	return New(func(obs Observer[int]) Subscription {
		slot := &serialSubscription{}
		n := 0
		var tick func()
		tick = func() {
			v := n
			n++
			obs.Next(v)
			slot.replace(s.Schedule(period, tick))
		}
		slot.replace(s.Schedule(period, tick))
		return slot
	})
}
