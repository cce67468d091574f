package session

import (
	"net/http"
	"time"

	"github.com/anita-maxwynn/Django-Practice/pkg/cookie"
)

// Transport moves the session token between client and server.
type Transport interface {
	GetToken(r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error
	ClearToken(w http.ResponseWriter)
}

// CookieTransport keeps the token in an encrypted, HttpOnly cookie.
type CookieTransport struct {
	cookies *cookie.Manager
	name    string
	secure  bool
}

func NewCookieTransport(cookies *cookie.Manager, name string, secure bool) *CookieTransport {
	if name == "" {
		name = "sid"
	}
	return &CookieTransport{cookies: cookies, name: name, secure: secure}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookies.GetSecure(r, t.name)
	if err != nil || token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	return t.cookies.SetSecure(w, t.name, token,
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithSecure(t.secure),
	)
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) {
	t.cookies.Delete(w, t.name)
}
