// Package weave implements a typed task dependency graph.
//
// A Task is a named unit of work producing one value. Tasks are wired
// together through edges: each task owns one outward edge carrying its
// result and may bind any number of inward edges from predecessor tasks.
// An edge is not retrievable until its owning task publishes; consumers
// block until then. Reachability (the longest dependency path below a
// task) is computed over the graph and used by the executor to order
// submission so that producers start before their consumers.
package weave

import "sync"

// EdgeRef is the untyped view of an edge used for dependency traversal
// and synchronization. The typed Edge[T] provides value access.
type EdgeRef interface {
	// Owner returns the node that publishes this edge, or nil for a
	// detached edge.
	Owner() Node
	// Retrievable reports whether the edge's value has been published.
	// The result may be stale immediately after return.
	Retrievable() bool
	// WaitRetrievable blocks until the edge's value is published.
	WaitRetrievable()
}

// Edge carries one value of type T from its owning task to any number of
// consumers. Readiness latches on the first publish; later publishes
// overwrite the value but never reset readiness.
type Edge[T any] struct {
	owner Node
	mu    sync.Mutex
	ready chan struct{}
	set   bool
	data  T
}

// NewEdge creates a detached edge with no owning task. Detached edges are
// published directly with Publish, which makes them useful as external
// inputs into a graph.
func NewEdge[T any]() *Edge[T] {
	return newEdge[T](nil)
}

func newEdge[T any](owner Node) *Edge[T] {
	return &Edge[T]{
		owner: owner,
		ready: make(chan struct{}),
	}
}

// Owner returns the node that publishes this edge.
func (e *Edge[T]) Owner() Node {
	return e.owner
}

// Retrievable reports whether the value has been published.
func (e *Edge[T]) Retrievable() bool {
	select {
	case <-e.ready:
		return true
	default:
		return false
	}
}

// WaitRetrievable blocks until the value is published.
func (e *Edge[T]) WaitRetrievable() {
	<-e.ready
}

// Value blocks until the edge is retrievable and returns the published
// value.
func (e *Edge[T]) Value() T {
	<-e.ready
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.data
}

// Publish stores a value and marks the edge retrievable, waking all
// waiters. Publishing again overwrites the stored value.
func (e *Edge[T]) Publish(value T) {
	e.mu.Lock()
	e.data = value
	first := !e.set
	e.set = true
	e.mu.Unlock()

	if first {
		close(e.ready)
	}
}
