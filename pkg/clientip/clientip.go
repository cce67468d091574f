package clientip

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/anita-maxwynn/Django-Practice/pkg/logger"
)

type Config struct {
	// TrustedHeaders are consulted in order before RemoteAddr.
	TrustedHeaders []string `env:"TRUSTED_IP_HEADERS" envSeparator:","`
}

// Resolver extracts client IPs using a fixed list of trusted headers.
type Resolver struct {
	headers []string
}

func New(trustedHeaders ...string) *Resolver {
	headers := make([]string, 0, len(trustedHeaders))
	for _, h := range trustedHeaders {
		if h = strings.TrimSpace(h); h != "" {
			headers = append(headers, textproto.CanonicalMIMEHeaderKey(h))
		}
	}
	return &Resolver{headers: headers}
}

// IP returns the normalized client IP or an empty string when none is valid.
// For X-Forwarded-For the first valid entry wins.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		for v := range strings.SplitSeq(r.Header.Get(h), ",") {
			if ip := parseIP(v); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// Middleware stores the resolved IP in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.IP(r))))
	})
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}

type contextKey struct{}

func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

// FromContext returns the IP stored by Middleware or an empty string.
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

// LoggerExtractor injects client_ip into log records.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ip := FromContext(ctx); ip != "" {
			return slog.String("client_ip", ip), true
		}
		return slog.Attr{}, false
	}
}
