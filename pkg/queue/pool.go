package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// HandlerFunc processes a single task.
type HandlerFunc[T any] func(ctx context.Context, task T) error

// Pool runs submitted tasks on a fixed set of workers.
type Pool[T any] struct {
	handler HandlerFunc[T]
	opts    poolOptions

	tasks chan T
	wg    sync.WaitGroup

	mu      sync.RWMutex
	started bool
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewPool creates a pool. Workers are not running until Start is called.
func NewPool[T any](handler HandlerFunc[T], opts ...Option) *Pool[T] {
	options := poolOptions{
		name:        "default",
		workers:     DefaultWorkers,
		bufferSize:  DefaultBufferSize,
		taskTimeout: DefaultTaskTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Pool[T]{
		handler: handler,
		opts:    options,
		tasks:   make(chan T, options.bufferSize),
	}
}

// Start launches the workers. Task contexts inherit values from ctx but not its
// cancellation, so Stop can still drain accepted tasks after shutdown begins.
func (p *Pool[T]) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrAlreadyStarted
	}
	p.started = true
	p.ctx, p.cancel = context.WithCancel(context.WithoutCancel(ctx))

	for i := range p.opts.workers {
		p.wg.Add(1)
		go p.work(i)
	}

	p.opts.logger.Info("worker pool started",
		slog.String("pool", p.opts.name),
		slog.Int("workers", p.opts.workers),
		slog.Int("buffer_size", p.opts.bufferSize))

	return nil
}

// Submit enqueues a task without blocking.
func (p *Pool[T]) Submit(task T) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	switch {
	case p.stopped:
		return ErrPoolStopped
	case !p.started:
		return ErrPoolNotStarted
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		p.opts.logger.Warn("worker pool is full, task dropped",
			slog.String("pool", p.opts.name),
			slog.Int("buffer_size", p.opts.bufferSize))
		return ErrQueueFull
	}
}

// Len reports the number of tasks waiting for a worker.
func (p *Pool[T]) Len() int {
	return len(p.tasks)
}

// Stop closes intake and blocks until every accepted task is processed.
// It is safe to call more than once.
func (p *Pool[T]) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	started := p.started
	close(p.tasks)
	p.mu.Unlock()

	if !started {
		return
	}

	p.opts.logger.Info("worker pool stopping, draining queued tasks",
		slog.String("pool", p.opts.name),
		slog.Int("pending", len(p.tasks)))

	p.wg.Wait()
	p.cancel()

	p.opts.logger.Info("worker pool stopped", slog.String("pool", p.opts.name))
}

// Run starts the pool and returns a function suitable for errgroup.
// The pool drains once ctx is done.
func (p *Pool[T]) Run(ctx context.Context) func() error {
	return func() error {
		if err := p.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		p.Stop()
		return nil
	}
}

func (p *Pool[T]) work(id int) {
	defer p.wg.Done()

	for task := range p.tasks {
		err := p.process(task)
		if p.opts.onResult != nil {
			p.opts.onResult(err)
		}
		if err != nil {
			p.opts.logger.Error("task failed",
				slog.String("pool", p.opts.name),
				slog.Int("worker", id),
				slog.String("error", err.Error()))
		}
	}
}

// process runs one task with its own timeout and panic recovery.
func (p *Pool[T]) process(task T) (retErr error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
			p.opts.logger.Error("task handler panicked",
				slog.String("pool", p.opts.name),
				slog.Any("panic", r),
				slog.Duration("duration", time.Since(start)))
		}
	}()

	ctx := p.ctx
	if p.opts.taskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.taskTimeout)
		defer cancel()
	}

	if err := p.handler(ctx, task); err != nil {
		return err
	}

	p.opts.logger.Debug("task completed",
		slog.String("pool", p.opts.name),
		slog.Duration("duration", time.Since(start)))

	return nil
}
