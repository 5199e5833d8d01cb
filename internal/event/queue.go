// Package event provides the FIFO that serialises X11 events and IPC
// commands into the manager's single consumer.
package event

import (
	"sync"

	"github.com/BurntSushi/xgb"

	"github.com/proxin187/yaxiwm/internal/ipc"
)

// Message is one unit of work for the manager: either an X event or a
// decoded IPC command. Exactly one field is set.
type Message struct {
	X   xgb.Event
	Cmd *ipc.Command
}

// Queue is a mutex-and-condition FIFO. Any number of producers may Push
// concurrently; exactly one consumer calls Wait. Delivery is strictly in
// push order with no priority between message kinds.
type Queue[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []T
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends a value and wakes the consumer.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Wait blocks until a value is available and returns the oldest one.
func (q *Queue[T]) Wait() T {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		q.cond.Wait()
	}
	v := q.items[0]
	q.items = q.items[1:]
	return v
}
