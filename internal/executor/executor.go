package executor

import (
	"runtime"
	"sort"
	"sync"

	"github.com/eelitiawan/taskweave/internal/weave"
)

// Executor schedules a set of weave tasks onto a worker pool.
//
// Run computes reachability over the task graph and submits tasks in
// ascending reachability order, so producers are dequeued before their
// consumers. With the graph sorted this way a pool of any size makes
// progress: a consumer occupying a worker only ever waits on producers
// that are already running or finished.
type Executor struct {
	mu    sync.Mutex
	pool  *Pool
	tasks []weave.Runner
	ran   bool
}

// New creates an executor without a pool; one sized to GOMAXPROCS is
// created lazily on Run.
func New() *Executor {
	return &Executor{}
}

// NewWithPool creates an executor using the supplied pool.
func NewWithPool(pool *Pool) *Executor {
	return &Executor{pool: pool}
}

// Add queues a task for execution. Tasks must be added before Run.
func (e *Executor) Add(task weave.Runner) {
	if task == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = append(e.tasks, task)
}

// Run computes reachability, orders the tasks, submits them all, and
// starts the workers. Calling Run twice is a no-op.
func (e *Executor) Run() {
	e.mu.Lock()
	if e.ran {
		e.mu.Unlock()
		return
	}
	e.ran = true

	if e.pool == nil {
		e.pool = NewPool(runtime.GOMAXPROCS(0), nil)
	}

	weave.ComputeReachability(e.tasks)
	sort.SliceStable(e.tasks, func(i, j int) bool {
		return e.tasks[i].Reachability() < e.tasks[j].Reachability()
	})

	tasks := e.tasks
	pool := e.pool
	e.mu.Unlock()

	for _, task := range tasks {
		pool.Submit(task.Run)
	}
	pool.Run()
}

// Cancel drops all tasks that have not started executing. Running tasks
// finish normally. Safe to call before Run.
func (e *Executor) Cancel() {
	e.mu.Lock()
	pool := e.pool
	e.mu.Unlock()

	if pool != nil {
		pool.ClearQueued()
	}
}

// Wait blocks until all submitted tasks have completed. Safe to call
// before Run, in which case it returns immediately.
func (e *Executor) Wait() {
	e.mu.Lock()
	pool := e.pool
	e.mu.Unlock()

	if pool != nil {
		pool.Wait()
	}
}

// Close shuts down the underlying pool.
func (e *Executor) Close() {
	e.mu.Lock()
	pool := e.pool
	e.mu.Unlock()

	if pool != nil {
		pool.Close()
	}
}

// Errors returns the errors of all failed tasks. Meaningful after Wait.
func (e *Executor) Errors() []error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var errs []error
	for _, task := range e.tasks {
		if task.State() == weave.TaskFailed && task.Err() != nil {
			errs = append(errs, task.Err())
		}
	}

	return errs
}
