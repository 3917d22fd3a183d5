package stream

// Observable is a lazy, push-based stream of values terminated by
// completion or error. Nothing runs until Subscribe; each Subscribe
// creates an independent pipeline instance.
type Observable[T any] struct {
	onSubscribe func(Observer[T]) Subscription
}

// New creates an Observable from a subscribe function. The function is
// invoked once per observer; it should emit via the observer and return
// a Subscription that cancels any work it started.
func New[T any](onSubscribe func(Observer[T]) Subscription) Observable[T] {
	return Observable[T]{onSubscribe: onSubscribe}
}

// Subscribe attaches an observer and starts the stream. The returned
// Subscription tears down the whole pipeline; it is also closed
// automatically when the stream terminates.
func (o Observable[T]) Subscribe(obs Observer[T]) Subscription {
	comp := NewComposite()
	sub := &subscriber[T]{dest: obs, sub: comp}
	if o.onSubscribe == nil {
		// Zero value behaves as an empty stream.
		sub.Complete()
		return comp
	}
	comp.Add(o.onSubscribe(sub))
	return comp
}

// SubscribeFunc subscribes with plain callbacks. Any callback may be
// nil.
func (o Observable[T]) SubscribeFunc(onNext func(T), onError func(error), onComplete func()) Subscription {
	return o.Subscribe(&funcObserver[T]{next: onNext, err: onError, complete: onComplete})
}

// Operator transforms one stream into another. Operators compose by
// plain function application; PipeIf selects between two of them at
// subscription time.
type Operator[T, R any] func(Observable[T]) Observable[R]
