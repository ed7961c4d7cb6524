package weave

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// TaskState represents the lifecycle states of a task during execution.
type TaskState int32

const (
	TaskIncomplete TaskState = iota
	TaskRunning
	TaskComplete
	TaskFailed
)

// String returns the string representation of the task state.
func (s TaskState) String() string {
	switch s {
	case TaskIncomplete:
		return "incomplete"
	case TaskRunning:
		return "running"
	case TaskComplete:
		return "complete"
	case TaskFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrNilCallable is recorded by a task constructed without a callable.
var ErrNilCallable = errors.New("weave: task has no callable")

// Runner is the executable view of a task, independent of its result
// type. The executor schedules Runners.
type Runner interface {
	Node
	Name() string
	Description() string
	State() TaskState
	Err() error
	// Duration reports end minus start time; zero until the task has run.
	Duration() time.Duration
	// Run blocks on all inward edges, executes the callable, publishes
	// the outward edge, and transitions to a terminal state.
	Run()
	// Wait blocks until Run reaches a terminal state and returns it.
	Wait() TaskState
}

// Task is a unit of work producing a value of type R.
//
// The callable pulls its inputs from the typed edges it closes over; by
// the time it executes, Run has already blocked on every bound inward
// edge, so those reads return immediately. A failed callable still
// publishes its outward edge (with the zero value) so dependents never
// deadlock; the error is retained and the task ends in TaskFailed.
type Task[R any] struct {
	graphNode

	name string
	desc string
	fn   func() (R, error)
	out  *Edge[R]

	state atomic.Int32
	start time.Time
	end   time.Time
	err   error

	once sync.Once
	done chan struct{}
}

// NewTask creates a task that computes its result with fn.
func NewTask[R any](name string, fn func() (R, error)) *Task[R] {
	t := &Task[R]{
		name: name,
		fn:   fn,
		done: make(chan struct{}),
	}
	t.out = newEdge[R](t)

	return t
}

// WithDescription attaches a human-readable description.
func (t *Task[R]) WithDescription(desc string) *Task[R] {
	t.desc = desc

	return t
}

// Bind declares dependency edges. The task will not start executing its
// callable until every bound edge is retrievable. Bind must not be called
// after the task has been submitted for execution.
func (t *Task[R]) Bind(deps ...EdgeRef) *Task[R] {
	t.inward = append(t.inward, deps...)

	return t
}

// Out returns the task's outward edge carrying its result.
func (t *Task[R]) Out() *Edge[R] {
	return t.out
}

// Name returns the task name.
func (t *Task[R]) Name() string { return t.name }

// Description returns the task description.
func (t *Task[R]) Description() string { return t.desc }

// State returns the current execution state.
func (t *Task[R]) State() TaskState {
	return TaskState(t.state.Load())
}

// Err returns the callable's error once the task has reached a terminal
// state, and nil before then.
func (t *Task[R]) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Duration returns the callable's execution time, zero until the task
// has reached a terminal state.
func (t *Task[R]) Duration() time.Duration {
	select {
	case <-t.done:
		return t.end.Sub(t.start)
	default:
		return 0
	}
}

// Run executes the task: block on dependencies, run the callable, publish
// the result, transition state, and wake waiters. Run is idempotent;
// repeated calls are no-ops.
func (t *Task[R]) Run() {
	t.once.Do(t.run)
}

func (t *Task[R]) run() {
	for _, edge := range t.inward {
		if edge != nil {
			edge.WaitRetrievable()
		}
	}

	t.state.Store(int32(TaskRunning))
	t.start = time.Now()

	var result R
	var err error
	if t.fn != nil {
		result, err = t.fn()
	} else {
		err = ErrNilCallable
	}

	t.end = time.Now()
	t.out.Publish(result)

	if err != nil {
		t.err = err
		t.state.Store(int32(TaskFailed))
	} else {
		t.state.Store(int32(TaskComplete))
	}

	close(t.done)
}

// Wait blocks until the task reaches a terminal state and returns it.
func (t *Task[R]) Wait() TaskState {
	<-t.done

	return t.State()
}

// Result blocks until the task has run and returns its result. The result
// is the zero value when the task failed; check Err to distinguish.
func (t *Task[R]) Result() R {
	<-t.done

	return t.out.Value()
}
