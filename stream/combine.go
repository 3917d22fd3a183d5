package stream

import "sync"

// Merge combines streams concurrently. Values are forwarded as they
// arrive from any source; the output completes once every source has
// completed and fails as soon as any source fails. Delivery is
// serialized so downstream observers never see interleaved calls.
func Merge[T any](srcs ...Observable[T]) Observable[T] {
	if len(srcs) == 0 {
		return Empty[T]()
	}
	return New(func(obs Observer[T]) Subscription {
		subs := NewComposite()
		var mu sync.Mutex
		active := len(srcs)
		for _, src := range srcs {
			subs.Add(src.Subscribe(&funcObserver[T]{
				next: func(v T) {
					mu.Lock()
					obs.Next(v)
					mu.Unlock()
				},
				err: func(err error) {
					mu.Lock()
					obs.Error(err)
					mu.Unlock()
				},
				complete: func() {
					mu.Lock()
					active--
					last := active == 0
					mu.Unlock()
					if last {
						obs.Complete()
					}
				},
			}))
		}
		return subs
	})
}

// CombineLatest2 emits fn(a, b) whenever either source produces a new
// value, once both have produced at least one. If either source
// completes without ever emitting, the output completes immediately;
// otherwise the output completes when both sources have completed.
func CombineLatest2[A, B, R any](a Observable[A], b Observable[B], fn func(A, B) R) Observable[R] {
	return New(func(obs Observer[R]) Subscription {
		subs := NewComposite()
		var mu sync.Mutex
		var (
			latestA A
			latestB B
			hasA    bool
			hasB    bool
			doneA   bool
			doneB   bool
		)

		emit := func() {
			if hasA && hasB {
				obs.Next(fn(latestA, latestB))
			}
		}
		completeSide := func(has bool, otherDone bool) {
			// A side completing empty means the pair can never form.
			if !has || otherDone {
				obs.Complete()
			}
		}

		subs.Add(a.Subscribe(&funcObserver[A]{
			next: func(v A) {
				mu.Lock()
				latestA = v
				hasA = true
				emit()
				mu.Unlock()
			},
			err: obs.Error,
			complete: func() {
				mu.Lock()
				doneA = true
				completeSide(hasA, doneB)
				mu.Unlock()
			},
		}))
		subs.Add(b.Subscribe(&funcObserver[B]{
			next: func(v B) {
				mu.Lock()
				latestB = v
				hasB = true
				emit()
				mu.Unlock()
			},
			err: obs.Error,
			complete: func() {
				mu.Lock()
				doneB = true
				completeSide(hasB, doneA)
				mu.Unlock()
			},
		}))
		return subs
	})
}
