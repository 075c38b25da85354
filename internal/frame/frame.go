// Package frame provides the "call me before the next refresh" primitive the
// field controller schedules its ticks with.
package frame

import (
	"sync"
)

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

// Source schedules one callback per request for the next display refresh.
type Source interface {
	Request(fn func()) Handle
	Cancel(h Handle)
}

// Queue is a Source whose refreshes are driven explicitly by calling Fire.
// Hosts call Fire once per display frame; tests call it to advance time.
type Queue struct {
	mu      sync.Mutex
	next    Handle
	pending map[Handle]func()
	order   []Handle
}

func NewQueue() *Queue {
	return &Queue{pending: make(map[Handle]func())}
}

func (q *Queue) Request(fn func()) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.next++
	q.pending[q.next] = fn
	q.order = append(q.order, q.next)
	return q.next
}

// Cancel drops a pending callback. Unknown or already fired handles are ignored.
func (q *Queue) Cancel(h Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, h)
}

// Fire runs the callbacks pending at the time of the call, in request order,
// and returns how many ran. Callbacks requested while firing wait for the
// next Fire.
func (q *Queue) Fire() int {
	q.mu.Lock()
	order := q.order
	q.order = nil
	due := make([]func(), 0, len(order))
	for _, h := range order {
		if fn, ok := q.pending[h]; ok {
			due = append(due, fn)
			delete(q.pending, h)
		}
	}
	q.mu.Unlock()

	for _, fn := range due {
		fn()
	}
	return len(due)
}

// Pending returns the number of callbacks waiting for the next Fire.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
