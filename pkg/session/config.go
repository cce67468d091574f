package session

import "time"

type Config struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
	// Store selects the backend: "memory" or "redis".
	Store string `env:"SESSION_STORE" envDefault:"memory"`

	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"2h"`
	MaxLifetime time.Duration `env:"SESSION_TTL" envDefault:"336h"`

	// RefreshThreshold is the minimum time between sliding expiry refreshes.
	RefreshThreshold time.Duration `env:"SESSION_REFRESH_THRESHOLD" envDefault:"5m"`
	CleanupInterval  time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

func DefaultConfig() Config {
	return Config{
		CookieName:       "sid",
		Store:            "memory",
		IdleTimeout:      2 * time.Hour,
		MaxLifetime:      14 * 24 * time.Hour,
		RefreshThreshold: 5 * time.Minute,
		CleanupInterval:  5 * time.Minute,
	}
}
