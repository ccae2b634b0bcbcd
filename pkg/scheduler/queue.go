package scheduler

// queue is a FIFO queue. It is not safe for concurrent use.
type queue[T any] struct {
	items []T
}

func (q *queue[T]) Push(item T) {
	q.items = append(q.items, item)
}

func (q *queue[T]) Pop() T {
	item := q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	return item
}

func (q *queue[T]) Len() int {
	return len(q.items)
}
