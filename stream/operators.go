package stream

// Map transforms each value using fn.
func Map[T, R any](src Observable[T], fn func(T) R) Observable[R] {
	return New(func(obs Observer[R]) Subscription {
		return src.Subscribe(&funcObserver[T]{
			next:     func(v T) { obs.Next(fn(v)) },
			err:      obs.Error,
			complete: obs.Complete,
		})
	})
}

// MapErr transforms each value using fn; a non-nil error fails the
// stream at that point.
func MapErr[T, R any](src Observable[T], fn func(T) (R, error)) Observable[R] {
	return New(func(obs Observer[R]) Subscription {
		return src.Subscribe(&funcObserver[T]{
			next: func(v T) {
				out, err := fn(v)
				if err != nil {
					obs.Error(err)
					return
				}
				obs.Next(out)
			},
			err:      obs.Error,
			complete: obs.Complete,
		})
	})
}

// Filter keeps only values that satisfy the predicate.
func Filter[T any](src Observable[T], pred func(T) bool) Observable[T] {
	return New(func(obs Observer[T]) Subscription {
		return src.Subscribe(&funcObserver[T]{
			next: func(v T) {
				if pred(v) {
					obs.Next(v)
				}
			},
			err:      obs.Error,
			complete: obs.Complete,
		})
	})
}

// Tap calls fn as a side-effect for each value, then passes the value
// through unchanged. Use for logging, metrics, or debugging.
func Tap[T any](src Observable[T], fn func(T)) Observable[T] {
	return New(func(obs Observer[T]) Subscription {
		return src.Subscribe(&funcObserver[T]{
			next: func(v T) {
				fn(v)
				obs.Next(v)
			},
			err:      obs.Error,
			complete: obs.Complete,
		})
	})
}

// Take forwards the first n values, then completes and releases the
// upstream subscription. Take with n <= 0 is an empty stream.
func Take[T any](src Observable[T], n int) Observable[T] {
	if n <= 0 {
		return Empty[T]()
	}
	return New(func(obs Observer[T]) Subscription {
		slot := &serialSubscription{}
		remaining := n
		sub := src.Subscribe(&funcObserver[T]{
			next: func(v T) {
				if remaining <= 0 {
					return
				}
				remaining--
				obs.Next(v)
				if remaining == 0 {
					obs.Complete()
					slot.Unsubscribe()
				}
			},
			err:      obs.Error,
			complete: obs.Complete,
		})
		slot.replace(sub)
		return slot
	})
}

// Skip drops the first n values and forwards the rest.
func Skip[T any](src Observable[T], n int) Observable[T] {
	return New(func(obs Observer[T]) Subscription {
		remaining := n
		return src.Subscribe(&funcObserver[T]{
			next: func(v T) {
				if remaining > 0 {
					remaining--
					return
				}
				obs.Next(v)
			},
			err:      obs.Error,
			complete: obs.Complete,
		})
	})
}

// Reduce accumulates all values into a single result, emitted when the
// source completes.
func Reduce[T, R any](src Observable[T], init R, fn func(R, T) R) Observable[R] {
	return New(func(obs Observer[R]) Subscription {
		acc := init
		return src.Subscribe(&funcObserver[T]{
			next: func(v T) { acc = fn(acc, v) },
			err:  obs.Error,
			complete: func() {
				obs.Next(acc)
				obs.Complete()
			},
		})
	})
}

// Concat joins streams sequentially: all values from the first, then
// the second, and so on. Errors cut the sequence short.
func Concat[T any](srcs ...Observable[T]) Observable[T] {
	if len(srcs) == 0 {
		return Empty[T]()
	}
	return New(func(obs Observer[T]) Subscription {
		slot := &serialSubscription{}
		var subscribeAt func(i int)
		subscribeAt = func(i int) {
			if i == len(srcs) {
				obs.Complete()
				return
			}
			sub := srcs[i].Subscribe(&funcObserver[T]{
				next:     obs.Next,
				err:      obs.Error,
				complete: func() { subscribeAt(i + 1) },
			})
			slot.replace(sub)
		}
		subscribeAt(0)
		return slot
	})
}
