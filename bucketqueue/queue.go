package bucketqueue

import (
	"sync"

	"github.com/katalvlaran/pathforge/bucket"
)

// DefaultCapacityFactor is the default queue capacity expressed as a
// multiple of the worker thread count.
const DefaultCapacityFactor = 2

// Queue is a bounded FIFO of pending bucket.Block work items. The zero
// value is not usable; construct with New.
type Queue struct {
	ch        chan bucket.Block
	closeOnce sync.Once
}

// New creates a Queue with the given capacity. A non-positive capacity is
// treated as 1, so the queue always has room for at least one pending
// block.
func New(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{ch: make(chan bucket.Block, capacity)}
}

// PushBlocking enqueues b, blocking while the queue is full. Pushing after
// DisallowBlocking has been called panics, matching the single-producer
// contract: only the integrator's producer goroutine may push, and it is
// also the one that disallows further pushes once it is done.
func (q *Queue) PushBlocking(b bucket.Block) {
	q.ch <- b
}

// PopBlocking removes and returns the oldest block, blocking while the
// queue is empty. It returns false once the queue has been closed via
// DisallowBlocking and fully drained; callers should stop looping at that
// point.
func (q *Queue) PopBlocking() (bucket.Block, bool) {
	b, ok := <-q.ch
	return b, ok
}

// DisallowBlocking signals that no further pushes will occur. Any
// consumers currently blocked in PopBlocking on an empty queue are
// released. Safe to call more than once.
func (q *Queue) DisallowBlocking() {
	q.closeOnce.Do(func() {
		close(q.ch)
	})
}
