// Package httpserver runs an http.Handler with configured timeouts and a
// graceful shutdown bound to a context.
//
// Run listens, serves and blocks until ctx is cancelled, then shuts down
// within the configured deadline. Run fits errgroup directly:
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	g.Go(func() error { return srv.Run(ctx, router) })
//
// Signal handling is left to the caller, typically via signal.NotifyContext.
//
// Liveness and readiness probes are provided by LivenessHandler and
// ReadinessHandler.
package httpserver
