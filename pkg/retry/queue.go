package retry

import "sync"

// taskQueue is a FIFO of retry tasks. Callers append from any goroutine;
// only the driver loop pops.
type taskQueue struct {
	mu    sync.Mutex
	items []*retryTask
	head  int
}

func newTaskQueue() *taskQueue {
	return &taskQueue{items: make([]*retryTask, 0, 16)}
}

// push appends a task to the tail
func (q *taskQueue) push(t *retryTask) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, t)
	return len(q.items) - q.head
}

// pop removes and returns the head
func (q *taskQueue) pop() (*retryTask, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.items) {
		return nil, false
	}

	t := q.items[q.head]
	q.items[q.head] = nil
	q.head++

	// compact once the consumed prefix dominates the backing array
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 64 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		for i := n; i < len(q.items); i++ {
			q.items[i] = nil
		}
		q.items = q.items[:n]
		q.head = 0
	}

	return t, true
}

// Len returns the number of queued tasks
func (q *taskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}
