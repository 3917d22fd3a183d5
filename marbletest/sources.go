package marbletest

import (
	"time"

	"github.com/kbukum/streamkit/stream"
)

// Cold builds a cold observable from a marble string. Each
// subscription replays the timeline from its own subscription frame.
// Unsubscribing cancels all not-yet-delivered notifications.
func Cold[T any](s *Scheduler, marbles string, values map[rune]T, failure error) stream.Observable[T] {
	notes, _ := parseMarbles(marbles, values, failure)
	return stream.New(func(obs stream.Observer[T]) stream.Subscription {
		subs := stream.NewComposite()
		for _, note := range notes {
			subs.Add(s.Schedule(time.Duration(note.Frame)*Frame, func() {
				deliver(obs, note)
			}))
		}
		return subs
	})
}

// ColdRunes is Cold for string streams where each marble rune is its
// own value.
func ColdRunes(s *Scheduler, marbles string) stream.Observable[string] {
	return Cold(s, marbles, RuneValues(marbles), nil)
}

// Hot builds a hot observable from a marble string. Emissions are
// scheduled at creation time against the '^' subscription point (frame
// 0 of the flush); subscribers share the one timeline and only see
// events from their subscription onward. Events marked before '^' are
// dropped.
func Hot[T any](s *Scheduler, marbles string, values map[rune]T, failure error) stream.Observable[T] {
	notes, subFrame := parseMarbles(marbles, values, failure)
	subject := stream.NewSubject[T]()
	for _, note := range notes {
		offset := note.Frame - subFrame
		if offset < 0 {
			continue
		}
		s.Schedule(time.Duration(offset)*Frame, func() {
			deliver[T](subject, note)
		})
	}
	return subject.AsObservable()
}

// HotRunes is Hot for string streams where each marble rune is its own
// value.
func HotRunes(s *Scheduler, marbles string) stream.Observable[string] {
	return Hot(s, marbles, RuneValues(marbles), nil)
}

func deliver[T any](obs stream.Observer[T], note Notification[T]) {
	switch note.Kind {
	case KindNext:
		obs.Next(note.Value)
	case KindError:
		obs.Error(note.Err)
	case KindComplete:
		obs.Complete()
	}
}
