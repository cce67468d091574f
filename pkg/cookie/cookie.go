package cookie

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	minSecretLength = 32
	flashPrefix     = "__flash_"
)

// Manager writes and reads cookies using shared default attributes.
type Manager struct {
	codecs   []securecookie.Codec
	defaults Options
}

// New creates a Manager. At least one secret of 32 or more bytes is required.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	pairs := make([][]byte, 0, len(secrets)*2)
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		hashKey := sha256.Sum256([]byte("cookie-hash:" + s))
		blockKey := sha256.Sum256([]byte("cookie-block:" + s))
		pairs = append(pairs, hashKey[:], blockKey[:])
	}

	codecs := securecookie.CodecsFromPairs(pairs...)
	for _, c := range codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.SetSerializer(securecookie.JSONEncoder{})
		}
	}

	defaults := applyOptions(Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, opts)

	return &Manager{codecs: codecs, defaults: defaults}, nil
}

// Set writes a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	http.SetCookie(w, m.cookie(name, value, applyOptions(m.defaults, opts)))
}

// Get reads a plain cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", ErrCookieNotFound
	}
	return c.Value, nil
}

// Delete expires the cookie on the client.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	opts := m.defaults
	opts.MaxAge = -1
	c := m.cookie(name, "", opts)
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

// SetSecure encodes value (any JSON-serializable value) signed and encrypted.
func (m *Manager) SetSecure(w http.ResponseWriter, name string, value any, opts ...Option) error {
	encoded, err := securecookie.EncodeMulti(name, value, m.codecs...)
	if err != nil {
		return fmt.Errorf("encode cookie %q: %w", name, err)
	}
	http.SetCookie(w, m.cookie(name, encoded, applyOptions(m.defaults, opts)))
	return nil
}

// GetSecure decodes a cookie written by SetSecure into a string.
func (m *Manager) GetSecure(r *http.Request, name string) (string, error) {
	var value string
	if err := m.DecodeSecure(r, name, &value); err != nil {
		return "", err
	}
	return value, nil
}

// DecodeSecure decodes a cookie written by SetSecure into dst.
func (m *Manager) DecodeSecure(r *http.Request, name string, dst any) error {
	c, err := r.Cookie(name)
	if err != nil {
		return ErrCookieNotFound
	}
	if err := securecookie.DecodeMulti(name, c.Value, dst, m.codecs...); err != nil {
		return errors.Join(ErrInvalidValue, err)
	}
	return nil
}

// SetFlash stores a one-time value for the next request.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	return m.SetSecure(w, flashPrefix+key, value, WithMaxAge(300))
}

// GetFlash decodes the flash value into dest and deletes it. Returns
// ErrCookieNotFound when no flash is pending.
func (m *Manager) GetFlash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := flashPrefix + key
	err := m.DecodeSecure(r, name, dest)
	if errors.Is(err, ErrCookieNotFound) {
		return err
	}
	m.Delete(w, name)
	return err
}

func (m *Manager) cookie(name, value string, o Options) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
}
