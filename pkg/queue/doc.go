// Package queue provides a bounded in-process worker pool for background work
// that must never block the caller.
//
// A Pool owns a fixed number of workers and a buffered channel of tasks.
// Submit never blocks: when the buffer is full it returns ErrQueueFull and the
// caller decides what to do with the dropped task. Each task runs under its own
// timeout and a panicking handler is recovered and logged so one bad task
// cannot take down the process.
//
// Basic usage:
//
//	pool := queue.NewPool(func(ctx context.Context, msg Message) error {
//		return deliver(ctx, msg)
//	}, queue.WithWorkers(4), queue.WithBufferSize(100))
//
//	pool.Start(ctx)
//	defer pool.Stop()
//
//	if err := pool.Submit(msg); errors.Is(err, queue.ErrQueueFull) {
//		// dropped
//	}
//
// Stop closes intake and waits until every task already accepted has been
// processed. Pool.Run adapts the pool to errgroup.
package queue
