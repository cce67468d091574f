package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anita-maxwynn/Django-Practice/pkg/cookie"
)

const (
	secret    = "this-is-a-very-long-secret-key-32-chars-long"
	oldSecret = "this-is-old-very-long-secret-key-32-chars-ok"
)

// roundTrip copies cookies written to rec onto a new request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secrets []string
		wantErr error
	}{
		{"no secrets", nil, cookie.ErrNoSecret},
		{"empty secrets", []string{"", ""}, cookie.ErrNoSecret},
		{"secret too short", []string{"short"}, cookie.ErrSecretTooShort},
		{"valid secret", []string{secret}, nil},
		{"rotation", []string{secret, oldSecret}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := cookie.New(tt.secrets)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, m)
		})
	}
}

func TestPlainCookie(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret}, cookie.WithSecure(true))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Set(rec, "theme", "dark", cookie.WithMaxAge(60))

	c := rec.Result().Cookies()[0]
	assert.Equal(t, "dark", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 60, c.MaxAge)

	v, err := m.Get(roundTrip(rec), "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "theme")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestSecureCookie(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret})
	require.NoError(t, err)

	t.Run("round trip hides the value", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetSecure(rec, "sid", "token-123"))
		assert.NotContains(t, rec.Result().Cookies()[0].Value, "token-123")

		v, err := m.GetSecure(roundTrip(rec), "sid")
		require.NoError(t, err)
		assert.Equal(t, "token-123", v)
	})

	t.Run("tampered value is rejected", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetSecure(rec, "sid", "token-123"))

		c := rec.Result().Cookies()[0]
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: c.Value[:len(c.Value)-2] + "AA"})

		_, err := m.GetSecure(req, "sid")
		assert.ErrorIs(t, err, cookie.ErrInvalidValue)
	})

	t.Run("value is bound to the cookie name", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetSecure(rec, "sid", "token-123"))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "other", Value: rec.Result().Cookies()[0].Value})
		_, err := m.GetSecure(req, "other")
		assert.ErrorIs(t, err, cookie.ErrInvalidValue)
	})

	t.Run("old secret still decodes after rotation", func(t *testing.T) {
		t.Parallel()
		old, err := cookie.New([]string{oldSecret})
		require.NoError(t, err)
		rotated, err := cookie.New([]string{secret, oldSecret})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		require.NoError(t, old.SetSecure(rec, "sid", "legacy"))

		v, err := rotated.GetSecure(roundTrip(rec), "sid")
		require.NoError(t, err)
		assert.Equal(t, "legacy", v)
	})
}

func TestFlash(t *testing.T) {
	t.Parallel()

	type message struct {
		Level string `json:"level"`
		Text  string `json:"text"`
	}

	m, err := cookie.New([]string{secret})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetFlash(rec, "messages", []message{{Level: "success", Text: "Saved."}}))

	readRec := httptest.NewRecorder()
	var got []message
	require.NoError(t, m.GetFlash(readRec, roundTrip(rec), "messages", &got))
	assert.Equal(t, []message{{Level: "success", Text: "Saved."}}, got)

	deleted := readRec.Result().Cookies()
	require.Len(t, deleted, 1)
	assert.Equal(t, -1, deleted[0].MaxAge)

	err = m.GetFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "messages", &got)
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret}, cookie.WithDomain("example.com"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Delete(rec, "sid")

	c := rec.Result().Cookies()[0]
	assert.Equal(t, "sid", c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.Equal(t, "example.com", c.Domain)
}
