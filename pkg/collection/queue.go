package collection

import (
	"fmt"
	"reflect"
)

// Queue is a first-in, first-out queue. A Queue[any] has an erased element type; options of that
// type must declare their element type explicitly.
type Queue[T any] struct {
	items []T
}

// Push appends v to the back of the queue.
func (q *Queue[T]) Push(v T) {
	q.items = append(q.items, v)
}

// Pop removes and returns the front element.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, true
}

// Peek returns the front element without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// ElemType implements coerce.Container and reports T.
func (q *Queue[T]) ElemType() reflect.Type {
	return reflect.TypeFor[T]()
}

// Add implements coerce.Container. It fails unless v has type T.
func (q *Queue[T]) Add(v any) error {
	x, ok := v.(T)
	if !ok {
		return fmt.Errorf("queue of %s cannot hold %T", reflect.TypeFor[T](), v)
	}
	q.Push(x)
	return nil
}

// Items implements coerce.Container and returns the elements in FIFO order.
func (q *Queue[T]) Items() []any {
	out := make([]any, len(q.items))
	for i, v := range q.items {
		out[i] = v
	}
	return out
}
