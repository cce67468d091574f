// Package email sends transactional mail through a provider-agnostic
// EmailSender interface.
//
// Two synchronous senders are provided:
//   - NewPostmarkClient delivers through Postmark's transactional API
//   - NewDevSender writes each message to a directory as HTML plus JSON metadata
//
// NewSender picks one from Config.Driver.
//
// AsyncSender wraps either of them with a bounded worker pool from pkg/queue.
// Its SendEmail validates the message, enqueues it and returns immediately.
// When the queue is full the message is dropped and queue.ErrQueueFull is
// returned so callers can log it and move on:
//
//	sync, err := email.NewSender(cfg, log)
//	if err != nil {
//		return err
//	}
//	mailer := email.NewAsyncSenderFromConfig(sync, cfg, email.WithAsyncLogger(log))
//	g.Go(mailer.Run(ctx))
//
// Message bodies are usually templ components rendered with Render.
package email
