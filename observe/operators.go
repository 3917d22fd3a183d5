package observe

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/streamkit/stream"
)

// Log passes the stream through unchanged while writing each event to
// the given logger: values and completion at debug level, failure at
// error level. The stream name tags every entry.
func Log[T any](src stream.Observable[T], log zerolog.Logger, name string) stream.Observable[T] {
	return stream.New(func(obs stream.Observer[T]) stream.Subscription {
		l := log.With().Str("stream", name).Logger()
		l.Debug().Msg("subscribed")
		return src.Subscribe(observer[T]{
			next: func(v T) {
				l.Debug().Interface("value", v).Msg("next")
				obs.Next(v)
			},
			err: func(err error) {
				l.Error().Err(err).Msg("stream failed")
				obs.Error(err)
			},
			complete: func() {
				l.Debug().Msg("completed")
				obs.Complete()
			},
		})
	})
}

// Count passes the stream through unchanged while incrementing counter
// once per emitted value, with the given attributes.
func Count[T any](src stream.Observable[T], counter metric.Int64Counter, attrs ...attribute.KeyValue) stream.Observable[T] {
	return stream.New(func(obs stream.Observer[T]) stream.Subscription {
		return src.Subscribe(observer[T]{
			next: func(v T) {
				counter.Add(context.Background(), 1, metric.WithAttributes(attrs...))
				obs.Next(v)
			},
			err:      obs.Error,
			complete: obs.Complete,
		})
	})
}

// Span passes the stream through unchanged while recording one span
// per subscription. The span carries the emitted-value count, records
// stream failure as a span error, and ends on termination or
// unsubscription, whichever comes first.
func Span[T any](src stream.Observable[T], tracer trace.Tracer, name string) stream.Observable[T] {
	return stream.New(func(obs stream.Observer[T]) stream.Subscription {
		_, span := tracer.Start(context.Background(), name)
		values := 0
		var once sync.Once
		end := func() {
			once.Do(func() {
				span.SetAttributes(attribute.Int("stream.values", values))
				span.End()
			})
		}
		sub := src.Subscribe(observer[T]{
			next: func(v T) {
				values++
				obs.Next(v)
			},
			err: func(err error) {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				end()
				obs.Error(err)
			},
			complete: func() {
				end()
				obs.Complete()
			},
		})
		subs := stream.NewComposite()
		subs.Add(sub)
		// Unsubscription without a terminal event still closes the span.
		subs.Add(stream.NewSubscription(end))
		return subs
	})
}

// observer adapts callbacks to stream.Observer.
type observer[T any] struct {
	next     func(T)
	err      func(error)
	complete func()
}

func (o observer[T]) Next(v T)        { o.next(v) }
func (o observer[T]) Error(err error) { o.err(err) }
func (o observer[T]) Complete()       { o.complete() }
