package account

import "time"

type Config struct {
	// SiteURL is the absolute base used for links in emails.
	SiteURL string `env:"SITE_URL" envDefault:"http://localhost:8080"`

	TokenSecret   string        `env:"TOKEN_SECRET,required"`
	ActivationTTL time.Duration `env:"TOKEN_ACTIVATION_TTL" envDefault:"72h"`
	ResetTTL      time.Duration `env:"TOKEN_RESET_TTL" envDefault:"24h"`

	PasswordMinLength int `env:"PASSWORD_MIN_LENGTH" envDefault:"8"`
}

const (
	activationPurpose = "account.activate"
	resetPurpose      = "account.reset"

	nameMaxLength = 30
)

func (c Config) withDefaults() Config {
	if c.ActivationTTL <= 0 {
		c.ActivationTTL = 72 * time.Hour
	}
	if c.ResetTTL <= 0 {
		c.ResetTTL = 24 * time.Hour
	}
	if c.PasswordMinLength <= 0 {
		c.PasswordMinLength = 8
	}
	return c
}
