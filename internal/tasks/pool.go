package tasks

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

const (
	defaultWorkers   = 2
	defaultQueueSize = 25
)

// Pool runs conversion pipelines on a fixed set of worker goroutines draining
// a bounded backlog queue.
//
// Submit never drops or blocks: when the queue is full the task runs
// synchronously on the caller's goroutine instead.
type Pool struct {
	jobs   chan func()
	wg     sync.WaitGroup
	logger *log.Logger

	mu     sync.Mutex
	closed bool
}

// NewPool creates a Pool with the given worker count and queue capacity.
// Non-positive values fall back to defaults (2 workers, queue of 25).
func NewPool(workers, queueSize int, logger *log.Logger) *Pool {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	p := &Pool{
		jobs:   make(chan func(), queueSize),
		logger: logger,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for task := range p.jobs {
		task()
	}
	p.logger.Debug("worker stopped", "worker", id)
}

// Submit enqueues a task for asynchronous execution.
//
// When the backlog is saturated (or the pool is shut down) the task runs on
// the calling goroutine. Submissions degrade to synchronous execution, they
// are never lost.
func (p *Pool) Submit(task func()) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		task()
		return
	}

	select {
	case p.jobs <- task:
		p.mu.Unlock()
	default:
		p.mu.Unlock()
		p.logger.Warn("worker pool saturated, running task on caller")
		task()
	}
}

// Shutdown stops accepting queued work and waits for in-flight tasks to finish.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}
