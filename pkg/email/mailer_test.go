package email_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anita-maxwynn/Django-Practice/pkg/email"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validParams() email.SendEmailParams {
	return email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Activate Your Account",
		BodyHTML: "<p>Hello</p>",
		Tag:      "activation",
	}
}

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*email.SendEmailParams)
		errMsg string
	}{
		{name: "valid params", mutate: func(*email.SendEmailParams) {}},
		{name: "valid without tag", mutate: func(p *email.SendEmailParams) { p.Tag = "" }},
		{name: "plus address", mutate: func(p *email.SendEmailParams) { p.SendTo = "test.user+tag@sub.example.com" }},
		{name: "empty SendTo", mutate: func(p *email.SendEmailParams) { p.SendTo = "" }, errMsg: "SendTo is required"},
		{name: "whitespace SendTo", mutate: func(p *email.SendEmailParams) { p.SendTo = "   " }, errMsg: "SendTo is required"},
		{name: "invalid SendTo", mutate: func(p *email.SendEmailParams) { p.SendTo = "invalid-email" }, errMsg: "SendTo must be a valid email address"},
		{name: "missing domain", mutate: func(p *email.SendEmailParams) { p.SendTo = "user@" }, errMsg: "SendTo must be a valid email address"},
		{name: "missing local part", mutate: func(p *email.SendEmailParams) { p.SendTo = "@example.com" }, errMsg: "SendTo must be a valid email address"},
		{name: "empty Subject", mutate: func(p *email.SendEmailParams) { p.Subject = " " }, errMsg: "Subject is required"},
		{name: "empty BodyHTML", mutate: func(p *email.SendEmailParams) { p.BodyHTML = "" }, errMsg: "BodyHTML is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params := validParams()
			tt.mutate(&params)

			err := params.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, email.ErrInvalidParams)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()

	t.Run("writes html and metadata", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "mail")
		sender := email.NewDevSender(discardLogger(), dir)

		require.NoError(t, sender.SendEmail(context.Background(), validParams()))

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, files, 2)

		var htmlFile, jsonFile string
		for _, f := range files {
			switch filepath.Ext(f.Name()) {
			case ".html":
				htmlFile = f.Name()
			case ".json":
				jsonFile = f.Name()
			}
		}
		require.NotEmpty(t, htmlFile)
		require.NotEmpty(t, jsonFile)
		assert.True(t, strings.HasSuffix(htmlFile, "_activation.html"))

		body, err := os.ReadFile(filepath.Join(dir, htmlFile))
		require.NoError(t, err)
		assert.Equal(t, "<p>Hello</p>", string(body))

		raw, err := os.ReadFile(filepath.Join(dir, jsonFile))
		require.NoError(t, err)
		var meta map[string]string
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, "user@example.com", meta["send_to"])
		assert.Equal(t, "Activate Your Account", meta["subject"])
		assert.Equal(t, "activation", meta["tag"])
	})

	t.Run("falls back to subject for the filename", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(discardLogger(), dir)

		params := validParams()
		params.Tag = ""
		params.Subject = "Reset Your Password!"
		require.NoError(t, sender.SendEmail(context.Background(), params))

		matches, err := filepath.Glob(filepath.Join(dir, "*_reset_your_password.html"))
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("rejects invalid params", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(discardLogger(), dir)

		params := validParams()
		params.SendTo = "nope"
		err := sender.SendEmail(context.Background(), params)
		assert.ErrorIs(t, err, email.ErrInvalidParams)

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestNewPostmarkClient(t *testing.T) {
	t.Parallel()

	valid := email.Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "noreply@example.com",
		SupportEmail:         "support@example.com",
	}

	tests := []struct {
		name    string
		mutate  func(*email.Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*email.Config) {}},
		{name: "no support email", mutate: func(c *email.Config) { c.SupportEmail = "" }},
		{name: "missing server token", mutate: func(c *email.Config) { c.PostmarkServerToken = "" }, wantErr: true},
		{name: "missing account token", mutate: func(c *email.Config) { c.PostmarkAccountToken = "" }, wantErr: true},
		{name: "missing sender", mutate: func(c *email.Config) { c.SenderEmail = "" }, wantErr: true},
		{name: "invalid sender", mutate: func(c *email.Config) { c.SenderEmail = "noreply" }, wantErr: true},
		{name: "invalid support", mutate: func(c *email.Config) { c.SupportEmail = "support@" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)

			client, err := email.NewPostmarkClient(cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, email.ErrInvalidConfig)
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestNewSender(t *testing.T) {
	t.Parallel()

	sender, err := email.NewSender(email.Config{Driver: email.DriverDev, DevDir: t.TempDir()}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &email.DevSender{}, sender)

	_, err = email.NewSender(email.Config{Driver: email.DriverPostmark}, discardLogger())
	assert.ErrorIs(t, err, email.ErrInvalidConfig)

	_, err = email.NewSender(email.Config{Driver: "smtp"}, discardLogger())
	assert.ErrorIs(t, err, email.ErrUnknownDriver)
}

func TestRender(t *testing.T) {
	t.Parallel()

	component := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<h1>Hi</h1>")
		return err
	})

	html, err := email.Render(context.Background(), component)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi</h1>", html)
}
