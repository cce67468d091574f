package email

import (
	"fmt"
	"log/slog"
)

// NewSender builds the synchronous sender selected by cfg.Driver.
func NewSender(cfg Config, log *slog.Logger) (EmailSender, error) {
	switch cfg.Driver {
	case DriverPostmark:
		return NewPostmarkClient(cfg)
	case DriverDev, "":
		return NewDevSender(log, cfg.DevDir), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
