// Package executor provides a fixed-size worker pool and a task executor
// that schedules dependency graphs from the weave package.
package executor

import "sync"

// Pool is a fixed-size worker pool for concurrent task execution.
//
// Tasks are queued with Submit and processed once Run spawns the
// workers. Wait blocks until every accepted task has finished; Close
// shuts the pool down without draining the queue. The active count
// covers both queued and executing tasks.
type Pool struct {
	mu       sync.Mutex
	workCond *sync.Cond
	idleCond *sync.Cond

	queue        []func()
	active       int
	workers      int
	started      bool
	shuttingDown bool
	onComplete   func()

	wg sync.WaitGroup
}

// NewPool creates a pool with the given number of workers. onComplete,
// when non-nil, is invoked each time the active count drops to zero.
func NewPool(workers int, onComplete func()) *Pool {
	if workers < 1 {
		workers = 1
	}

	p := &Pool{
		workers:    workers,
		onComplete: onComplete,
	}
	p.workCond = sync.NewCond(&p.mu)
	p.idleCond = sync.NewCond(&p.mu)

	return p
}

// Submit queues a task for execution. Nil tasks and submissions after
// Close are rejected.
func (p *Pool) Submit(task func()) bool {
	if task == nil {
		return false
	}

	p.mu.Lock()
	if p.shuttingDown {
		p.mu.Unlock()
		return false
	}
	p.queue = append(p.queue, task)
	p.active++
	p.mu.Unlock()

	p.workCond.Signal()

	return true
}

// Run spawns the worker goroutines. It is a no-op when the pool is
// already running or shut down.
func (p *Pool) Run() {
	p.mu.Lock()
	if p.started || p.shuttingDown {
		p.mu.Unlock()
		return
	}
	p.started = true
	count := p.workers
	p.mu.Unlock()

	for i := 0; i < count; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.shuttingDown {
			p.workCond.Wait()
		}
		if p.shuttingDown {
			p.mu.Unlock()
			return
		}

		task := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		task()

		p.mu.Lock()
		p.active--
		finished := p.active == 0
		callback := p.onComplete
		if finished {
			p.idleCond.Broadcast()
		}
		p.mu.Unlock()

		if finished && callback != nil {
			callback()
		}
	}
}

// Wait blocks until the active count reaches zero. Safe to call from any
// goroutine.
func (p *Pool) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.active != 0 {
		p.idleCond.Wait()
	}
}

// ClearQueued drops all tasks that have not started executing and
// returns how many were dropped. Tasks already running are unaffected.
func (p *Pool) ClearQueued() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	dropped := len(p.queue)
	p.queue = nil
	p.active -= dropped
	if p.active == 0 {
		p.idleCond.Broadcast()
	}

	return dropped
}

// Close shuts the pool down and joins all workers. Queued tasks that
// have not started are abandoned.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.shuttingDown {
		p.mu.Unlock()
		return
	}
	p.shuttingDown = true
	abandoned := len(p.queue)
	p.queue = nil
	p.active -= abandoned
	if p.active == 0 {
		p.idleCond.Broadcast()
	}
	p.mu.Unlock()

	p.workCond.Broadcast()
	p.wg.Wait()
}

// Active returns the count of queued plus executing tasks.
func (p *Pool) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.active
}

// Queued returns the number of tasks waiting in the queue.
func (p *Pool) Queued() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.queue)
}

// Idle reports whether no tasks are queued or executing.
func (p *Pool) Idle() bool {
	return p.Active() == 0
}

// WorkerCount returns the configured number of workers.
func (p *Pool) WorkerCount() int {
	return p.workers
}
