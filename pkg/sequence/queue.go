package sequence

// Queue is a FIFO backed by a growable ring buffer. The zero value is ready to use.
type Queue[T any] struct {
	items []T
	head  int
	size  int
}

func NewQueue[T any](capacity int) *Queue[T] {
	return &Queue[T]{items: make([]T, capacity)}
}

func (q *Queue[T]) Len() int {
	return q.size
}

func (q *Queue[T]) Enqueue(values ...T) {
	for _, v := range values {
		if q.size == len(q.items) {
			q.grow()
		}
		q.items[(q.head+q.size)%len(q.items)] = v
		q.size++
	}
}

// Dequeue removes the oldest element. ok is false on an empty queue.
func (q *Queue[T]) Dequeue() (value T, ok bool) {
	if q.size == 0 {
		return value, false
	}
	value = q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return value, true
}

func (q *Queue[T]) grow() {
	n := len(q.items) * 2
	if n == 0 {
		n = 8
	}
	items := make([]T, n)
	for i := 0; i < q.size; i++ {
		items[i] = q.items[(q.head+i)%len(q.items)]
	}
	q.items = items
	q.head = 0
}
