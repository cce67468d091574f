package ratelimiter

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/anita-maxwynn/Django-Practice/pkg/clientip"
)

const maxKeyLength = 64

// KeyFunc extracts the bucket key from a request. An empty key skips
// limiting.
type KeyFunc func(r *http.Request) string

// ByIP keys on the client IP stored by clientip.Middleware.
func ByIP(r *http.Request) string {
	return clientip.FromContext(r.Context())
}

// ByPath keys on the request path.
func ByPath(r *http.Request) string {
	return r.URL.Path
}

// Composite joins the non-empty keys. Long keys are hashed with FNV-1a.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}
		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			h := fnv.New64a()
			h.Write([]byte(combined))
			return strconv.FormatUint(h.Sum64(), 36)
		}
		return combined
	}
}

type middlewareOptions struct {
	limited http.Handler
	onError func(r *http.Request, err error)
	now     func() time.Time
}

type MiddlewareOption func(*middlewareOptions)

// WithLimitedHandler replaces the default 429 response. Rate limit headers
// are already set when it runs.
func WithLimitedHandler(h http.Handler) MiddlewareOption {
	return func(o *middlewareOptions) {
		if h != nil {
			o.limited = h
		}
	}
}

// WithErrorHook is called when the store fails. The request is let through.
func WithErrorHook(fn func(r *http.Request, err error)) MiddlewareOption {
	return func(o *middlewareOptions) {
		if fn != nil {
			o.onError = fn
		}
	}
}

// Middleware limits requests per key.
func Middleware(limiter *Bucket, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := middlewareOptions{
		limited: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
		onError: func(*http.Request, error) {},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				o.onError(r, err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				if retry := int(result.RetryAfter(o.now()).Seconds()); retry > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(retry))
				}
				o.limited.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
