package stream

import "sync"

// Gate is the readiness view of a stream: its first value signals that
// the gate is satisfied. Gate values carry no information of their own.
type Gate = Observable[struct{}]

// AsGate adapts any stream into a Gate that fires on the stream's
// first value and then releases its upstream subscription.
func AsGate[T any](src Observable[T]) Gate {
	return Map(Take(src, 1), func(T) struct{} { return struct{}{} })
}

// WaitUntil holds back values from src until every gate has emitted at
// least once, in any order. Each gate is observed only until its first
// value; that subscription is then released, so long-lived gates are
// not leaked while src keeps running.
//
// When the final gate fires, the most recent src value (if any) is
// emitted immediately; afterwards every new src value is forwarded.
// Gates fire at most once here, so no later gate activity can cause a
// spurious re-emission.
//
// Completion: if src completes without ever emitting, the output
// completes immediately. If src completes after emitting while gates
// are still pending, the latest value is retained and delivered once
// all gates fire, followed by completion. A gate that completes
// without emitting can never be satisfied, so the output completes at
// that point. Any error from src or a still-observed gate fails the
// output immediately.
//
// With zero gates, WaitUntil is the identity.
func WaitUntil[T any](src Observable[T], gates ...Gate) Observable[T] {
	if len(gates) == 0 {
		return src
	}
	return New(func(obs Observer[T]) Subscription {
		w := &waitState[T]{
			dest:    obs,
			pending: len(gates),
			subs:    NewComposite(),
		}

		w.subs.Add(src.Subscribe(&funcObserver[T]{
			next:     w.sourceNext,
			err:      w.fail,
			complete: w.sourceComplete,
		}))
		for _, gate := range gates {
			fired := false
			w.subs.Add(Take(gate, 1).Subscribe(&funcObserver[struct{}]{
				next: func(struct{}) {
					fired = true
					w.gateFired()
				},
				err: w.fail,
				complete: func() {
					if !fired {
						w.gateExhausted()
					}
				},
			}))
		}
		return w.subs
	})
}

// waitState tracks one WaitUntil subscription. States: waiting
// (pending > 0), active (pending == 0), and terminal (done). Terminal
// is final.
type waitState[T any] struct {
	mu        sync.Mutex
	dest      Observer[T]
	subs      *CompositeSubscription
	pending   int
	latest    T
	hasLatest bool
	srcDone   bool
	done      bool
}

func (w *waitState[T]) sourceNext(v T) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return
	}
	if w.pending > 0 {
		w.latest = v
		w.hasLatest = true
		return
	}
	w.dest.Next(v)
}

func (w *waitState[T]) sourceComplete() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return
	}
	if w.pending > 0 && w.hasLatest {
		// Retain the latest value until the gates open.
		w.srcDone = true
		return
	}
	w.done = true
	w.dest.Complete()
}

func (w *waitState[T]) gateFired() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done || w.pending == 0 {
		return
	}
	w.pending--
	if w.pending > 0 {
		return
	}
	if w.hasLatest {
		w.dest.Next(w.latest)
	}
	if w.srcDone {
		w.done = true
		w.dest.Complete()
	}
}

// gateExhausted handles a gate completing without ever emitting: the
// gate set can no longer be satisfied, so the output can never emit.
func (w *waitState[T]) gateExhausted() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done || w.pending == 0 {
		return
	}
	w.done = true
	w.dest.Complete()
}

func (w *waitState[T]) fail(err error) {
	w.mu.Lock()
	if w.done {
		w.mu.Unlock()
		return
	}
	w.done = true
	w.mu.Unlock()
	w.dest.Error(err)
}
