package vision

import (
	"portfolio3d/internal/scene"
)

// Queue spreads ghost creation over frames: each step hands at most Cap
// objects to the process callback and, while work remains, schedules the
// next step on the following frame.
type Queue struct {
	Cap int

	frames  Scheduler
	process func(*scene.Node)

	items    []*scene.Node
	draining bool
	steps    int
	// gen invalidates frame callbacks scheduled before a Cancel.
	gen uint64
}

func NewQueue(capPerFrame int, frames Scheduler, process func(*scene.Node)) *Queue {
	if capPerFrame < 1 {
		capPerFrame = 1
	}
	return &Queue{Cap: capPerFrame, frames: frames, process: process}
}

// Draining reports whether items are still waiting for a step.
func (q *Queue) Draining() bool { return q.draining }

// Steps counts the steps run since the last Start.
func (q *Queue) Steps() int { return q.steps }

func (q *Queue) Pending() []*scene.Node {
	out := make([]*scene.Node, len(q.items))
	copy(out, q.items)
	return out
}

// Start replaces any pending work with items and runs the first step now.
func (q *Queue) Start(items []*scene.Node) {
	q.Cancel()
	q.steps = 0
	q.Enqueue(items)
}

// Enqueue appends items not already pending. When the queue was idle the
// first step runs immediately.
func (q *Queue) Enqueue(items []*scene.Node) {
	pending := make(map[*scene.Node]struct{}, len(q.items))
	for _, o := range q.items {
		pending[o] = struct{}{}
	}
	for _, o := range items {
		if o == nil {
			continue
		}
		if _, dup := pending[o]; dup {
			continue
		}
		pending[o] = struct{}{}
		q.items = append(q.items, o)
	}
	if len(q.items) == 0 || q.draining {
		return
	}
	q.draining = true
	q.step(q.gen)
}

// Retain drops pending items for which keep returns false.
func (q *Queue) Retain(keep func(*scene.Node) bool) {
	kept := q.items[:0]
	for _, o := range q.items {
		if keep(o) {
			kept = append(kept, o)
		}
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = nil
	}
	q.items = kept
}

// Cancel drops all pending items. Steps already scheduled become no-ops.
func (q *Queue) Cancel() {
	q.items = nil
	q.draining = false
	q.gen++
}

func (q *Queue) step(gen uint64) {
	if gen != q.gen || !q.draining {
		return
	}
	q.steps++

	n := min(q.Cap, len(q.items))
	batch := make([]*scene.Node, n)
	copy(batch, q.items[:n])
	q.items = q.items[n:]

	for _, o := range batch {
		if gen != q.gen {
			return
		}
		q.process(o)
	}

	if gen != q.gen {
		return
	}
	if len(q.items) == 0 {
		q.draining = false
		q.items = nil
		return
	}
	q.frames.RequestFrame(func() { q.step(gen) })
}
