// Package requestid assigns every HTTP request an identifier, echoes it in the
// X-Request-ID response header and stores it in the request context.
//
// A well-formed incoming X-Request-ID is reused so identifiers survive a
// proxy hop; anything else is replaced with a fresh UUID. The identifier is
// also stored under chi's middleware.RequestIDKey so chi helpers see it.
//
// LoggerExtractor plugs into pkg/logger to stamp request_id on every record
// logged with the request context.
package requestid
