package queue

import (
	"log/slog"
	"time"
)

const (
	DefaultWorkers     = 4
	DefaultBufferSize  = 100
	DefaultTaskTimeout = 30 * time.Second
)

// Option is a functional option for configuring a pool.
type Option func(*poolOptions)

type poolOptions struct {
	name        string
	workers     int
	bufferSize  int
	taskTimeout time.Duration
	logger      *slog.Logger
	onResult    func(err error)
}

// WithName sets the pool name used in log records.
func WithName(name string) Option {
	return func(o *poolOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) Option {
	return func(o *poolOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithBufferSize sets how many tasks may wait for a free worker.
func WithBufferSize(n int) Option {
	return func(o *poolOptions) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

// WithTaskTimeout bounds a single task run. Zero or negative disables the limit.
func WithTaskTimeout(d time.Duration) Option {
	return func(o *poolOptions) {
		o.taskTimeout = d
	}
}

// WithLogger sets the logger for the pool.
func WithLogger(logger *slog.Logger) Option {
	return func(o *poolOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithResultHook registers a callback invoked after every task with its
// outcome. Nil means success. Used for metrics.
func WithResultHook(fn func(err error)) Option {
	return func(o *poolOptions) {
		o.onResult = fn
	}
}
