// Package logger builds *slog.Logger values with functional options, attribute
// helpers and transparent injection of request-scoped values from context.
//
// New picks a handler from the configured Format: tint for colorized local
// output, or the standard text and JSON handlers. The handler is wrapped in a
// LogHandlerDecorator that runs every registered ContextExtractor on each
// record, which is how request IDs reach log lines without threading them
// through call sites.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Middleware writes one record per HTTP request with method, path, status,
// bytes written and duration.
//
// Attribute helpers such as Error, UserID, Email and Component keep key names
// consistent across packages. Email masks the local part of the address.
package logger
