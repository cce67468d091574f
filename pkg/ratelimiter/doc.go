// Package ratelimiter throttles requests with a token bucket per key.
//
// Each key starts with Capacity tokens. Every RefillInterval, RefillRate
// tokens are added back up to Capacity. A request consumes one token and is
// rejected once the bucket is empty.
//
//	limiter, _ := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), cfg)
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.Composite(ratelimiter.ByIP, ratelimiter.ByPath))).
//		Post("/login", login)
//
// Rejected requests get 429 with Retry-After, or the handler passed to
// WithLimitedHandler.
package ratelimiter
