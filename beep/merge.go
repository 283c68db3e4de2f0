package beep

import "container/heap"

type cursor struct {
	events []Event
	at     int
}

func (c *cursor) head() Event {
	return c.events[c.at]
}

type cursors []*cursor

func (h cursors) Len() int { return len(h) }

func (h cursors) Less(i, j int) bool {
	return Less(h[i].head().Key(), h[j].head().Key())
}

func (h cursors) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *cursors) Push(x interface{}) {
	*h = append(*h, x.(*cursor))
}

func (h *cursors) Pop() interface{} {
	old := *h
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return c
}

// Merger yields the events of several tick-ordered tracks as one stream
// ordered by Key. Only non-exhausted cursors are kept in the heap.
type Merger struct {
	heap cursors
}

func NewMerger(tracks [][]Event) *Merger {
	m := &Merger{heap: make(cursors, 0, len(tracks))}
	for _, t := range tracks {
		if len(t) > 0 {
			m.heap = append(m.heap, &cursor{events: t})
		}
	}
	heap.Init(&m.heap)
	return m
}

// Next returns the smallest pending event, false once every track is exhausted.
func (m *Merger) Next() (e Event, ok bool) {
	if len(m.heap) == 0 {
		return
	}
	c := m.heap[0]
	e = c.head()
	c.at++
	if c.at < len(c.events) {
		heap.Fix(&m.heap, 0)
	} else {
		heap.Pop(&m.heap)
	}
	return e, true
}

// Merge drains a Merger into a slice.
func Merge(tracks [][]Event) []Event {
	n := 0
	for _, t := range tracks {
		n += len(t)
	}
	out := make([]Event, 0, n)
	m := NewMerger(tracks)
	for {
		e, ok := m.Next()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}
