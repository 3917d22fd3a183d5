package marbletest

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kbukum/streamkit/stream"
)

// Recorder captures every notification of a stream together with the
// virtual frame it arrived on.
type Recorder[T any] struct {
	s     *Scheduler
	notes []Notification[T]
	sub   stream.Subscription
}

// Record subscribes to obs immediately and records its notifications.
// Call before Flush so recording starts at frame 0.
func Record[T any](s *Scheduler, obs stream.Observable[T]) *Recorder[T] {
	r := &Recorder[T]{s: s}
	r.sub = obs.SubscribeFunc(
		func(v T) {
			r.notes = append(r.notes, Notification[T]{Frame: s.Frame(), Kind: KindNext, Value: v})
		},
		func(err error) {
			r.notes = append(r.notes, Notification[T]{Frame: s.Frame(), Kind: KindError, Err: err})
		},
		func() {
			r.notes = append(r.notes, Notification[T]{Frame: s.Frame(), Kind: KindComplete})
		},
	)
	return r
}

// UnsubscribeAt schedules unsubscription from the stream at the given
// frame of the upcoming flush.
func (r *Recorder[T]) UnsubscribeAt(frame int) {
	r.s.Schedule(time.Duration(frame)*Frame, r.sub.Unsubscribe)
}

// Notifications returns everything recorded so far.
func (r *Recorder[T]) Notifications() []Notification[T] {
	return r.notes
}

// Expect compares the recording against an expected marble string.
// Call after Flush.
func (r *Recorder[T]) Expect(t *testing.T, marbles string, values map[rune]T, failure error) {
	t.Helper()
	want, _ := parseMarbles(marbles, values, failure)
	if len(r.notes) != len(want) {
		t.Fatalf("recorded %d notifications, want %d\n got: %v\nwant: %v", len(r.notes), len(want), r.notes, want)
	}
	for i := range want {
		got := r.notes[i]
		exp := want[i]
		if got.Frame != exp.Frame || got.Kind != exp.Kind {
			t.Fatalf("notification %d: got %v, want %v", i, got, exp)
		}
		switch exp.Kind {
		case KindNext:
			if !reflect.DeepEqual(got.Value, exp.Value) {
				t.Fatalf("notification %d: got %v, want %v", i, got, exp)
			}
		case KindError:
			if !errors.Is(got.Err, exp.Err) {
				t.Fatalf("notification %d: got %v, want %v", i, got, exp)
			}
		}
	}
}

// ExpectRunes is Expect for string streams where each marble rune is
// its own value.
func ExpectRunes(t *testing.T, r *Recorder[string], marbles string) {
	t.Helper()
	r.Expect(t, marbles, RuneValues(marbles), nil)
}
