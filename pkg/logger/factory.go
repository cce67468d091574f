package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs logfmt-style lines.
	FormatText Format = "text"
	// FormatTint outputs colorized human-readable lines for local development.
	FormatTint Format = "tint"
)

// Application environments understood by WithEnvironment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Option configures logger creation.
type Option func(*config)

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets output format. It panics on an unknown format.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText, FormatTint:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q, %q or %q", f, FormatJSON, FormatText, FormatTint))
		}
	}
}

// WithOutput sets custom output destination. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithNoColor disables ANSI colors for the tint format.
func WithNoColor() Option {
	return func(c *config) { c.noColor = true }
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

// WithContextExtractors registers functions that inject dynamic attributes from context.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithDevelopment configures colorized debug output.
func WithDevelopment(service string) Option {
	return withEnv(EnvDevelopment, service, slog.LevelDebug, FormatTint)
}

// WithStaging configures JSON output at info level.
func WithStaging(service string) Option {
	return withEnv(EnvStaging, service, slog.LevelInfo, FormatJSON)
}

// WithProduction configures JSON output at info level.
func WithProduction(service string) Option {
	return withEnv(EnvProduction, service, slog.LevelInfo, FormatJSON)
}

// WithEnvironment picks the preset for env. Unknown values fall back to development.
func WithEnvironment(env, service string) Option {
	return func(c *config) {
		switch env {
		case EnvProduction, "prod":
			WithProduction(service)(c)
		case EnvStaging, "stage":
			WithStaging(service)(c)
		default:
			WithDevelopment(service)(c)
		}
	}
}

func withEnv(env, service string, level slog.Level, format Format) Option {
	return func(c *config) {
		c.level = level
		c.format = format
		attrs := []slog.Attr{slog.String("env", env)}
		if service != "" {
			attrs = append([]slog.Attr{slog.String("service", service)}, attrs...)
		}
		c.attrs = append(c.attrs, attrs...)
	}
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

type config struct {
	level      slog.Level
	format     Format
	output     io.Writer
	noColor    bool
	attrs      []slog.Attr
	extractors []ContextExtractor
}

func defaultConfig() *config {
	return &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
}

// New creates a configured slog.Logger whose handler injects attributes
// produced by the registered context extractors.
func New(opts ...Option) *slog.Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var handler slog.Handler
	switch cfg.format {
	case FormatTint:
		handler = tint.NewHandler(cfg.output, &tint.Options{
			Level:      cfg.level,
			TimeFormat: time.TimeOnly,
			NoColor:    cfg.noColor,
		})
	case FormatText:
		handler = slog.NewTextHandler(cfg.output, &slog.HandlerOptions{Level: cfg.level})
	default:
		handler = slog.NewJSONHandler(cfg.output, &slog.HandlerOptions{Level: cfg.level})
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}

	return slog.New(NewLogHandlerDecorator(handler, cfg.extractors...))
}

// FromContextValue builds an extractor that logs ctx.Value(key) under name.
func FromContextValue(name string, key any) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := ctx.Value(key); v != nil {
			return slog.Any(name, v), true
		}
		return slog.Attr{}, false
	}
}
