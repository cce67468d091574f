package cookie

import (
	"net/http"
	"strings"
)

type Config struct {
	// Secrets is a comma separated list; the first one encodes.
	Secrets  string        `env:"COOKIE_SECRETS,required"`
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // 2 = SameSiteLaxMode
}

func (c Config) secrets() []string {
	var out []string
	for _, s := range strings.Split(c.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NewFromConfig creates a Manager from Config. Extra options override config values.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	configOpts := []Option{
		WithHTTPOnly(cfg.HttpOnly),
		WithSecure(cfg.Secure),
	}
	if cfg.Path != "" {
		configOpts = append(configOpts, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.SameSite != 0 {
		configOpts = append(configOpts, WithSameSite(cfg.SameSite))
	}

	return New(cfg.secrets(), append(configOpts, opts...)...)
}
