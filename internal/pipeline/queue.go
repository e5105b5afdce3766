package pipeline

import (
	"sync"
	"sync/atomic"
	"time"
)

// Item is one candidate awaiting balance verification.
type Item struct {
	Identifier string
	PrivateKey string
}

// Queue is an unbounded FIFO shared by the generation loop (single producer)
// and the verification workers (many consumers). Push never blocks.
type Queue struct {
	mu    sync.Mutex
	items []Item
	head  int

	ready  chan struct{}
	pushed atomic.Uint64
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Push appends an item and wakes one waiting consumer.
func (q *Queue) Push(item Item) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	q.pushed.Add(1)
	q.signal()
}

// Pop removes the oldest item, waiting at most timeout for one to arrive.
func (q *Queue) Pop(timeout time.Duration) (Item, bool) {
	if item, ok := q.tryPop(); ok {
		return item, true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-q.ready:
			if item, ok := q.tryPop(); ok {
				return item, true
			}
		case <-timer.C:
			return q.tryPop()
		}
	}
}

func (q *Queue) tryPop() (Item, bool) {
	q.mu.Lock()
	if q.head == len(q.items) {
		q.mu.Unlock()
		return Item{}, false
	}

	item := q.items[q.head]
	q.items[q.head] = Item{}
	q.head++
	remaining := len(q.items) - q.head
	switch {
	case remaining == 0:
		q.items = q.items[:0]
		q.head = 0
	case q.head >= 1024 && q.head >= remaining:
		// reclaim the consumed front once it dominates the slice
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	q.mu.Unlock()

	// pass the wakeup on so an idle consumer picks up the rest
	if remaining > 0 {
		q.signal()
	}
	return item, true
}

func (q *Queue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Pushed returns the number of items ever pushed.
func (q *Queue) Pushed() uint64 {
	return q.pushed.Load()
}
