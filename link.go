package clustools

import "container/heap"

// Link is a candidate merge between elements A and B (A < B) at the
// normalized distance between them.
type Link struct {
	A, B     int
	Distance float64
}

type queuedLink struct {
	Link
	seq int
}

// linkHeap is a min-heap on distance; equal distances pop in insertion order.
type linkHeap []queuedLink

func (h linkHeap) Len() int { return len(h) }
func (h linkHeap) Less(i, j int) bool {
	if h[i].Distance != h[j].Distance {
		return h[i].Distance < h[j].Distance
	}
	return h[i].seq < h[j].seq
}
func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *linkHeap) Push(x any)   { *h = append(*h, x.(queuedLink)) }
func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// LinkQueue yields links in ascending distance order. Ties are broken by
// insertion order, which makes every link-driven policy reproducible.
type LinkQueue struct {
	h    linkHeap
	next int
}

// NewLinkQueue returns an empty queue.
func NewLinkQueue() *LinkQueue {
	return &LinkQueue{}
}

// Push adds a link.
func (q *LinkQueue) Push(l Link) {
	heap.Push(&q.h, queuedLink{Link: l, seq: q.next})
	q.next++
}

// Pop removes and returns the shortest remaining link. ok is false when the
// queue is empty.
func (q *LinkQueue) Pop() (l Link, ok bool) {
	if len(q.h) == 0 {
		return Link{}, false
	}
	return heap.Pop(&q.h).(queuedLink).Link, true
}

// Len returns the number of links left.
func (q *LinkQueue) Len() int { return len(q.h) }

// GenerateLinks emits one link per unordered pair (i, j), i < j, in row-major
// order and returns them queued.
func GenerateLinks(m *Matrix) *LinkQueue {
	n := m.N()
	q := &LinkQueue{h: make(linkHeap, 0, n*(n-1)/2)}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			q.h = append(q.h, queuedLink{Link: Link{A: i, B: j, Distance: m.At(i, j)}, seq: q.next})
			q.next++
		}
	}
	heap.Init(&q.h)
	return q
}
