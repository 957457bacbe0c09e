package secsearch

// Stack is a generic LIFO container backed by a growable slice.
type Stack[T any] struct {
	items []T
}

// Push adds v to the top of the stack.
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top element. The second return is false when
// the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of stacked elements.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Clear discards every element.
func (s *Stack[T]) Clear() {
	s.items = s.items[:0]
}

// Queue is a generic FIFO container backed by a growable slice.
type Queue[T any] struct {
	items []T
}

// Enqueue appends v to the back of the queue.
func (q *Queue[T]) Enqueue(v T) {
	q.items = append(q.items, v)
}

// Dequeue removes and returns the front element. The second return is false
// when the queue is empty.
func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items = q.items[1:]
	return v, true
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Items returns the queued elements front-to-back without consuming them.
func (q *Queue[T]) Items() []T {
	out := make([]T, len(q.items))
	copy(out, q.items)
	return out
}

// NavigationHistory models browser-style back/forward navigation over
// submitted queries with two stacks. Visiting a new query abandons any
// forward branch. Owned by a single session; not safe for concurrent use.
type NavigationHistory struct {
	back       Stack[string]
	forward    Stack[string]
	current    string
	hasCurrent bool
}

// Visit records a newly submitted query as the current one. The previous
// current query moves onto the back stack and the forward stack is cleared.
func (n *NavigationHistory) Visit(query string) {
	if n.hasCurrent {
		n.back.Push(n.current)
	}
	n.forward.Clear()
	n.current = query
	n.hasCurrent = true
}

// Back moves one step back and returns the query that becomes current.
// Returns false when there is nothing to go back to.
func (n *NavigationHistory) Back() (string, bool) {
	prev, ok := n.back.Pop()
	if !ok {
		return "", false
	}
	n.forward.Push(n.current)
	n.current = prev
	return prev, true
}

// Forward mirrors Back.
func (n *NavigationHistory) Forward() (string, bool) {
	next, ok := n.forward.Pop()
	if !ok {
		return "", false
	}
	n.back.Push(n.current)
	n.current = next
	return next, true
}

// CanGoBack reports whether Back would succeed.
func (n *NavigationHistory) CanGoBack() bool {
	return n.back.Len() > 0
}

// CanGoForward reports whether Forward would succeed.
func (n *NavigationHistory) CanGoForward() bool {
	return n.forward.Len() > 0
}

// Current returns the query currently shown, if any.
func (n *NavigationHistory) Current() (string, bool) {
	return n.current, n.hasCurrent
}

// RecentQueries is a bounded FIFO of the last submitted queries, kept for
// "recent searches" display. Oldest entries are evicted on overflow and a
// query already present is not recorded again.
type RecentQueries struct {
	queue    Queue[string]
	capacity int
}

// NewRecentQueries creates a recent-query list holding at most capacity
// entries.
func NewRecentQueries(capacity int) *RecentQueries {
	if capacity < 1 {
		capacity = 1
	}
	return &RecentQueries{capacity: capacity}
}

// Add records a submitted query.
func (r *RecentQueries) Add(query string) {
	for _, q := range r.queue.Items() {
		if q == query {
			return
		}
	}
	r.queue.Enqueue(query)
	for r.queue.Len() > r.capacity {
		r.queue.Dequeue()
	}
}

// All returns the recorded queries, oldest first.
func (r *RecentQueries) All() []string {
	return r.queue.Items()
}
