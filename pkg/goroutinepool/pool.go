package goroutinepool

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Task is one unit of work. Analytics computations are pure and in-memory,
// so there is no retry machinery; a failure is reported once via Callback.
type Task struct {
	ID       string
	Function func() error
	Callback func(error)
	Timeout  time.Duration
}

// Worker runs tasks handed over by the dispatcher.
type Worker struct {
	ID         int
	TaskChan   chan *Task
	WorkerPool chan chan *Task
	ctx        context.Context
}

// Pool is a fixed-size worker pool with a buffered task queue.
type Pool struct {
	WorkerPool chan chan *Task
	TaskQueue  chan *Task
	Workers    []*Worker
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	totalTasks     int64
	completedTasks int64
	failedTasks    int64
	activeTasks    int64
}

var (
	globalPool *Pool
	poolOnce   sync.Once
)

// GetPool returns the process-wide pool, starting it on first use.
func GetPool() *Pool {
	poolOnce.Do(func() {
		globalPool = NewPool(runtime.NumCPU()*2, 1024)
		globalPool.Start()
	})
	return globalPool
}

// NewPool creates a pool with the given worker and queue sizes.
func NewPool(maxWorkers int, maxQueue int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &Pool{
		WorkerPool: make(chan chan *Task, maxWorkers),
		TaskQueue:  make(chan *Task, maxQueue),
		Workers:    make([]*Worker, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	for i := 0; i < maxWorkers; i++ {
		worker := &Worker{
			ID:         i + 1,
			TaskChan:   make(chan *Task),
			WorkerPool: pool.WorkerPool,
			ctx:        ctx,
		}
		pool.Workers[i] = worker
	}

	return pool
}

// Start launches the dispatcher and all workers.
func (p *Pool) Start() {
	p.wg.Add(1)
	go p.dispatcher()

	for _, worker := range p.Workers {
		p.wg.Add(1)
		go worker.start(p, &p.wg)
	}

	log.Printf("goroutine pool started, workers: %d", len(p.Workers))
}

// Stop drains the pool, waiting up to 30 seconds.
func (p *Pool) Stop() {
	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Printf("goroutine pool stopped")
	case <-time.After(30 * time.Second):
		log.Printf("goroutine pool stop timed out, forcing exit")
	}
}

// Submit enqueues a task; it fails fast when the queue is full.
func (p *Pool) Submit(task *Task) error {
	if task.Timeout == 0 {
		task.Timeout = 30 * time.Second
	}

	atomic.AddInt64(&p.totalTasks, 1)

	select {
	case p.TaskQueue <- task:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	default:
		atomic.AddInt64(&p.failedTasks, 1)
		return ErrPoolOverloaded
	}
}

// SubmitFunc enqueues a bare function.
func (p *Pool) SubmitFunc(fn func() error) error {
	return p.Submit(&Task{Function: fn})
}

// SubmitWithCallback enqueues a function with a completion callback.
func (p *Pool) SubmitWithCallback(fn func() error, callback func(error)) error {
	return p.Submit(&Task{Function: fn, Callback: callback})
}

func (p *Pool) dispatcher() {
	defer p.wg.Done()

	for {
		select {
		case task := <-p.TaskQueue:
			select {
			case workerTaskChan := <-p.WorkerPool:
				workerTaskChan <- task
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

func (w *Worker) start(p *Pool, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case w.WorkerPool <- w.TaskChan:
			select {
			case task := <-w.TaskChan:
				w.executeTask(p, task)
			case <-w.ctx.Done():
				return
			}
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *Worker) executeTask(p *Pool, task *Task) {
	atomic.AddInt64(&p.activeTasks, 1)
	defer atomic.AddInt64(&p.activeTasks, -1)

	ctx, cancel := context.WithTimeout(w.ctx, task.Timeout)
	defer cancel()

	var err error
	done := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- NewTaskPanicError(r)
			}
		}()
		done <- task.Function()
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err != nil {
		atomic.AddInt64(&p.failedTasks, 1)
	} else {
		atomic.AddInt64(&p.completedTasks, 1)
	}

	if task.Callback != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("task callback panicked: %v", r)
				}
			}()
			task.Callback(err)
		}()
	}
}

// GetStats returns pool counters for the health endpoint.
func (p *Pool) GetStats() map[string]int64 {
	return map[string]int64{
		"total_tasks":     atomic.LoadInt64(&p.totalTasks),
		"completed_tasks": atomic.LoadInt64(&p.completedTasks),
		"failed_tasks":    atomic.LoadInt64(&p.failedTasks),
		"active_tasks":    atomic.LoadInt64(&p.activeTasks),
		"worker_count":    int64(len(p.Workers)),
	}
}

var ErrPoolOverloaded = NewPoolError("goroutine pool is overloaded")

type PoolError struct {
	Message string
}

func (e *PoolError) Error() string {
	return e.Message
}

func NewPoolError(message string) *PoolError {
	return &PoolError{Message: message}
}

type TaskPanicError struct {
	Panic interface{}
}

func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("task panic: %v", e.Panic)
}

func NewTaskPanicError(panic interface{}) *TaskPanicError {
	return &TaskPanicError{Panic: panic}
}

// Stop drains the global pool during shutdown.
func Stop() {
	GetPool().Stop()
}
