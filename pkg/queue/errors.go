package queue

import "errors"

var (
	// ErrQueueFull is returned by Submit when the buffer has no free slot.
	ErrQueueFull = errors.New("queue is full")

	// ErrPoolStopped is returned by Submit after Stop has been called.
	ErrPoolStopped = errors.New("pool is stopped")

	// ErrPoolNotStarted is returned by Submit before Start has been called.
	ErrPoolNotStarted = errors.New("pool is not started")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("pool already started")

	// ErrTaskPanicked wraps a recovered panic from a task handler.
	ErrTaskPanicked = errors.New("panic in task handler")
)
