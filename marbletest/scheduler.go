package marbletest

import (
	"container/heap"
	"sync"
	"time"

	"github.com/kbukum/streamkit/stream"
)

// Frame is the real-duration equivalent of one virtual frame. Marble
// positions and Schedule delays are both measured in frames.
const Frame = time.Millisecond

// Scheduler is a deterministic virtual-time implementation of
// stream.Scheduler. Scheduled actions run in (due frame, schedule
// order) during Flush; nothing runs before Flush and no wall-clock
// time passes.
type Scheduler struct {
	mu    sync.Mutex
	frame int
	seq   int
	queue actionQueue
}

// NewScheduler creates a virtual scheduler positioned at frame 0.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time: the Unix epoch advanced by the current
// frame count.
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Unix(0, 0).Add(time.Duration(s.frame) * Frame)
}

// Frame returns the current virtual frame.
func (s *Scheduler) Frame() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Schedule queues fn to run delay after the current frame. Delays
// shorter than one frame run at the current frame, after actions
// already queued there.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) stream.Subscription {
	frames := int(delay / Frame)
	if frames < 0 {
		frames = 0
	}
	s.mu.Lock()
	a := &action{frame: s.frame + frames, seq: s.seq, fn: fn}
	s.seq++
	heap.Push(&s.queue, a)
	s.mu.Unlock()

	return stream.NewSubscription(func() {
		s.mu.Lock()
		a.canceled = true
		s.mu.Unlock()
	})
}

// Flush runs all queued actions in virtual-time order, including
// actions scheduled while flushing, until the queue is empty.
func (s *Scheduler) Flush() {
	for {
		s.mu.Lock()
		if s.queue.Len() == 0 {
			s.mu.Unlock()
			return
		}
		a := heap.Pop(&s.queue).(*action)
		s.frame = a.frame
		canceled := a.canceled
		s.mu.Unlock()

		if !canceled {
			a.fn()
		}
	}
}

type action struct {
	frame    int
	seq      int
	fn       func()
	canceled bool
}

type actionQueue []*action

func (q actionQueue) Len() int { return len(q) }

func (q actionQueue) Less(i, j int) bool {
	if q[i].frame != q[j].frame {
		return q[i].frame < q[j].frame
	}
	return q[i].seq < q[j].seq
}

func (q actionQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *actionQueue) Push(x any) { *q = append(*q, x.(*action)) }

func (q *actionQueue) Pop() any {
	old := *q
	n := len(old)
	a := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return a
}
