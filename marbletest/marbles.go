package marbletest

import (
	"errors"
	"fmt"
)

// Kind classifies a recorded notification.
type Kind int

const (
	KindNext Kind = iota
	KindError
	KindComplete
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// ErrMarble is the failure used for '#' marks when a test supplies no
// explicit error.
var ErrMarble = errors.New("marbletest: error")

// Notification is one stream event pinned to a virtual frame.
type Notification[T any] struct {
	Frame int
	Kind  Kind
	Value T
	Err   error
}

func (n Notification[T]) String() string {
	switch n.Kind {
	case KindNext:
		return fmt.Sprintf("next(%v)@%d", n.Value, n.Frame)
	case KindError:
		return fmt.Sprintf("error(%v)@%d", n.Err, n.Frame)
	default:
		return fmt.Sprintf("complete@%d", n.Frame)
	}
}

// parseMarbles decodes a marble string into frame-stamped
// notifications.
//
// Grammar: each character is one frame. '-' passes a frame, '|'
// completes, '#' errors with failure, '^' marks the subscription point
// for hot sources, '(' ... ')' pins every event inside to the group's
// opening frame, and whitespace is ignored. Any other rune emits its
// bound value; an unbound rune is a test programming error and panics.
func parseMarbles[T any](marbles string, values map[rune]T, failure error) (notes []Notification[T], subFrame int) {
	if failure == nil {
		failure = ErrMarble
	}
	frame := 0
	groupFrame := -1
	for _, r := range marbles {
		if r == ' ' || r == '\t' {
			continue
		}
		at := frame
		if groupFrame >= 0 {
			at = groupFrame
		}
		switch r {
		case '-':
		case '(':
			groupFrame = frame
		case ')':
			groupFrame = -1
		case '^':
			subFrame = at
		case '|':
			notes = append(notes, Notification[T]{Frame: at, Kind: KindComplete})
		case '#':
			notes = append(notes, Notification[T]{Frame: at, Kind: KindError, Err: failure})
		default:
			v, ok := values[r]
			if !ok {
				panic(fmt.Sprintf("marbletest: no value bound for marble %q in %q", r, marbles))
			}
			notes = append(notes, Notification[T]{Frame: at, Kind: KindNext, Value: v})
		}
		frame++
	}
	return notes, subFrame
}

// RuneValues binds every value rune in a marble string to itself as a
// string. Convenience for string streams where the marble characters
// are the payload.
func RuneValues(marbles string) map[rune]string {
	values := make(map[rune]string)
	for _, r := range marbles {
		switch r {
		case '-', '|', '#', '^', '(', ')', ' ', '\t':
		default:
			values[r] = string(r)
		}
	}
	return values
}
