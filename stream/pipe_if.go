package stream

import "fmt"

// PipeIf selects between two transformations of the upstream at
// subscription time. The predicate is read exactly once per
// subscription, immediately before the chosen branch is built, so
// flipping its outcome never affects subscriptions that are already
// running — only later ones.
//
// A panic raised by the predicate or while constructing the chosen
// branch is surfaced as a stream-level error instead of escaping the
// Subscribe call.
func PipeIf[T, R any](cond func() bool, ifTrue, ifFalse Operator[T, R]) Operator[T, R] {
	return func(src Observable[T]) Observable[R] {
		return New(func(obs Observer[R]) Subscription {
			branch, err := selectBranch(cond, ifTrue, ifFalse, src)
			if err != nil {
				obs.Error(err)
				return NewSubscription(nil)
			}
			return branch.Subscribe(obs)
		})
	}
}

// selectBranch evaluates the predicate and applies the chosen operator,
// converting panics into errors.
func selectBranch[T, R any](cond func() bool, ifTrue, ifFalse Operator[T, R], src Observable[T]) (out Observable[R], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stream: pipe branch selection panicked: %v", r)
		}
	}()
	if cond() {
		return ifTrue(src), nil
	}
	return ifFalse(src), nil
}
