package email

import (
	"context"
	"errors"
	"log/slog"

	"github.com/anita-maxwynn/Django-Practice/pkg/logger"
	"github.com/anita-maxwynn/Django-Practice/pkg/queue"
)

// Dispatch outcomes passed to the outcome hook.
const (
	OutcomeQueued  = "queued"
	OutcomeDropped = "dropped"
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
)

// AsyncSender hands messages to a bounded worker pool and returns at once.
// Delivery errors are logged by the pool and never reach the caller.
type AsyncSender struct {
	next      EmailSender
	pool      *queue.Pool[SendEmailParams]
	log       *slog.Logger
	onOutcome func(outcome string)
}

// AsyncOption configures an AsyncSender.
type AsyncOption func(*asyncOptions)

type asyncOptions struct {
	log       *slog.Logger
	onOutcome func(outcome string)
	poolOpts  []queue.Option
}

// WithAsyncLogger sets the logger used for dropped messages and the pool.
func WithAsyncLogger(log *slog.Logger) AsyncOption {
	return func(o *asyncOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithOutcomeHook registers a callback for every dispatch outcome.
func WithOutcomeHook(fn func(outcome string)) AsyncOption {
	return func(o *asyncOptions) {
		o.onOutcome = fn
	}
}

// WithPoolOptions passes options through to the underlying pool.
func WithPoolOptions(opts ...queue.Option) AsyncOption {
	return func(o *asyncOptions) {
		o.poolOpts = append(o.poolOpts, opts...)
	}
}

// NewAsyncSender wraps next with a worker pool. The pool must be started with
// Start or Run before messages are accepted.
func NewAsyncSender(next EmailSender, opts ...AsyncOption) *AsyncSender {
	o := asyncOptions{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &AsyncSender{
		next:      next,
		log:       o.log,
		onOutcome: o.onOutcome,
	}

	poolOpts := append([]queue.Option{
		queue.WithName("email"),
		queue.WithLogger(o.log),
		queue.WithResultHook(func(err error) {
			if err != nil {
				s.observe(OutcomeFailed)
				return
			}
			s.observe(OutcomeSent)
		}),
	}, o.poolOpts...)

	s.pool = queue.NewPool(func(ctx context.Context, params SendEmailParams) error {
		return s.next.SendEmail(ctx, params)
	}, poolOpts...)

	return s
}

// NewAsyncSenderFromConfig builds an AsyncSender sized from cfg.
func NewAsyncSenderFromConfig(next EmailSender, cfg Config, opts ...AsyncOption) *AsyncSender {
	return NewAsyncSender(next, append([]AsyncOption{WithPoolOptions(
		queue.WithWorkers(cfg.Workers),
		queue.WithBufferSize(cfg.QueueSize),
		queue.WithTaskTimeout(cfg.SendTimeout),
	)}, opts...)...)
}

// SendEmail validates params and enqueues them without blocking.
func (s *AsyncSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if err := s.pool.Submit(params); err != nil {
		if errors.Is(err, queue.ErrQueueFull) {
			s.observe(OutcomeDropped)
		}
		s.log.WarnContext(ctx, "email not queued",
			logger.Component("email.async"),
			logger.Email(params.SendTo),
			logger.Error(err))
		return err
	}

	s.observe(OutcomeQueued)
	return nil
}

// Start launches the delivery workers.
func (s *AsyncSender) Start(ctx context.Context) error { return s.pool.Start(ctx) }

// Stop stops intake and waits for queued messages to be delivered.
func (s *AsyncSender) Stop() { s.pool.Stop() }

// Run returns a function suitable for errgroup.
func (s *AsyncSender) Run(ctx context.Context) func() error { return s.pool.Run(ctx) }

// Pending reports the number of messages waiting for a worker.
func (s *AsyncSender) Pending() int { return s.pool.Len() }

func (s *AsyncSender) observe(outcome string) {
	if s.onOutcome != nil {
		s.onOutcome(outcome)
	}
}
