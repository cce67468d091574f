package email

import "time"

const (
	DriverDev      = "dev"
	DriverPostmark = "postmark"
)

// Config holds email service configuration.
// Postmark tokens are only required when Driver is "postmark"; the dev driver
// writes messages to DevDir instead of sending them.
type Config struct {
	Driver               string `env:"EMAIL_DRIVER" envDefault:"dev"`
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"webmaster@localhost"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"webmaster@localhost"`
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"tmp/emails"`

	// Background dispatch.
	Workers     int           `env:"EMAIL_WORKERS" envDefault:"4"`
	QueueSize   int           `env:"EMAIL_QUEUE_SIZE" envDefault:"100"`
	SendTimeout time.Duration `env:"EMAIL_SEND_TIMEOUT" envDefault:"30s"`
}
