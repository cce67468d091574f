package email

import (
	"context"
	"errors"
	"testing"

	"github.com/mrz1836/postmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostmark struct {
	sent []postmark.Email
	resp postmark.EmailResponse
	err  error
}

func (f *fakePostmark) SendEmail(_ context.Context, e postmark.Email) (postmark.EmailResponse, error) {
	f.sent = append(f.sent, e)
	return f.resp, f.err
}

func TestPostmarkClient_SendEmail(t *testing.T) {
	t.Parallel()

	cfg := Config{SenderEmail: "noreply@example.com", SupportEmail: "support@example.com"}
	params := SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Reset Your Password",
		BodyHTML: "<p>link</p>",
		Tag:      "password_reset",
	}

	t.Run("maps params to the postmark payload", func(t *testing.T) {
		t.Parallel()

		api := &fakePostmark{}
		c := &postmarkClient{client: api, config: cfg}

		require.NoError(t, c.SendEmail(context.Background(), params))
		require.Len(t, api.sent, 1)
		assert.Equal(t, "noreply@example.com", api.sent[0].From)
		assert.Equal(t, "support@example.com", api.sent[0].ReplyTo)
		assert.Equal(t, "user@example.com", api.sent[0].To)
		assert.Equal(t, "password_reset", api.sent[0].Tag)
		assert.Equal(t, "<p>link</p>", api.sent[0].HTMLBody)
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()

		c := &postmarkClient{client: &fakePostmark{err: errors.New("timeout")}, config: cfg}
		assert.ErrorIs(t, c.SendEmail(context.Background(), params), ErrFailedToSendEmail)
	})

	t.Run("api error code", func(t *testing.T) {
		t.Parallel()

		api := &fakePostmark{resp: postmark.EmailResponse{ErrorCode: 300, Message: "Invalid email request"}}
		c := &postmarkClient{client: api, config: cfg}

		err := c.SendEmail(context.Background(), params)
		assert.ErrorIs(t, err, ErrFailedToSendEmail)
		assert.Contains(t, err.Error(), "Invalid email request")
	})

	t.Run("invalid params are not sent", func(t *testing.T) {
		t.Parallel()

		api := &fakePostmark{}
		c := &postmarkClient{client: api, config: cfg}

		bad := params
		bad.BodyHTML = ""
		assert.ErrorIs(t, c.SendEmail(context.Background(), bad), ErrInvalidParams)
		assert.Empty(t, api.sent)
	})
}
