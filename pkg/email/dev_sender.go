package email

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/anita-maxwynn/Django-Practice/pkg/logger"
)

// DevSender implements EmailSender for local development.
// It saves emails as HTML and JSON files to a directory
// instead of sending them through an email service.
type DevSender struct {
	dir string
	log *slog.Logger
	now func() time.Time
}

// NewDevSender creates a development email sender that saves emails to disk.
// The directory is created on first send.
func NewDevSender(log *slog.Logger, dir string) *DevSender {
	if log == nil {
		log = slog.Default()
	}
	return &DevSender{dir: dir, log: log, now: time.Now}
}

type emailMetadata struct {
	Timestamp string `json:"timestamp"`
	SendTo    string `json:"send_to"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
}

// SendEmail saves the email as HTML and metadata as JSON to the configured directory.
func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}

	now := d.now()

	identifier := params.Tag
	if identifier == "" {
		identifier = params.Subject
	}
	// Nanoseconds keep names unique when several mails go out in the same second.
	baseFilename := fmt.Sprintf("%s_%09d_%s", now.Format("2006_01_02_150405"), now.Nanosecond(), sanitizeFilename(identifier))

	htmlPath := filepath.Join(d.dir, baseFilename+".html")
	if err := os.WriteFile(htmlPath, []byte(params.BodyHTML), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write HTML file: %v", ErrFailedToSendEmail, err)
	}

	jsonData, err := json.MarshalIndent(emailMetadata{
		Timestamp: now.Format(time.RFC3339),
		SendTo:    params.SendTo,
		Subject:   params.Subject,
		Tag:       params.Tag,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %v", ErrFailedToSendEmail, err)
	}

	if err := os.WriteFile(filepath.Join(d.dir, baseFilename+".json"), jsonData, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write JSON file: %v", ErrFailedToSendEmail, err)
	}

	d.log.InfoContext(ctx, "email written to disk",
		logger.Component("email.dev"),
		logger.Email(params.SendTo),
		slog.String("subject", params.Subject),
		slog.String("path", htmlPath))

	return nil
}

var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a string into a safe lower-case filename.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
