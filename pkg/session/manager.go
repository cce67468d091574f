package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Manager ties a Store to a Transport.
type Manager struct {
	store        Store
	transport    Transport
	config       Config
	now          func() time.Time
	unauthorized http.Handler
}

type Option func(*Manager)

func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithUnauthorizedHandler sets the handler RequireAuth falls back to.
// Defaults to a plain 401.
func WithUnauthorizedHandler(h http.Handler) Option {
	return func(m *Manager) {
		if h != nil {
			m.unauthorized = h
		}
	}
}

func New(store Store, transport Transport, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		transport: transport,
		config:    DefaultConfig(),
		now:       time.Now,
		unauthorized: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get loads the session referenced by the request.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}

	sess, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess.IsExpired(m.now()) {
		_ = m.store.Delete(ctx, token)
		return nil, ErrSessionExpired
	}
	return sess, nil
}

// Authenticate binds userID to a session under a freshly generated token.
// Any existing session token is revoked; its data carries over.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := m.now()
	sess, err := m.Get(ctx, r)
	if err != nil {
		sess = newSession(token, &userID, now, now)
	} else {
		_ = m.store.Delete(ctx, sess.Token)
		sess.Token = token
		sess.UserID = &userID
		sess.CreatedAt = now
	}
	sess.LastActivityAt = now
	sess.ExpiresAt = m.expiry(sess.CreatedAt, now)

	if err := m.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	if err := m.transport.SetToken(w, sess.Token, m.config.IdleTimeout); err != nil {
		_ = m.store.Delete(ctx, sess.Token)
		return nil, err
	}
	return sess, nil
}

// Destroy removes the session record and clears the client token.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var err error
	if token, tokenErr := m.transport.GetToken(r); tokenErr == nil {
		err = m.store.Delete(ctx, token)
	}
	m.transport.ClearToken(w)
	return err
}

// refresh slides the idle expiry forward when the threshold has passed.
func (m *Manager) refresh(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	now := m.now()
	if now.Sub(sess.LastActivityAt) < m.config.RefreshThreshold {
		return nil
	}

	sess.LastActivityAt = now
	sess.ExpiresAt = m.expiry(sess.CreatedAt, now)
	if err := m.store.Save(ctx, sess); err != nil {
		return err
	}
	return m.transport.SetToken(w, sess.Token, m.config.IdleTimeout)
}

// expiry is the earlier of the idle deadline and the absolute lifetime.
func (m *Manager) expiry(createdAt, now time.Time) time.Time {
	idle := now.Add(m.config.IdleTimeout)
	if m.config.MaxLifetime <= 0 {
		return idle
	}
	if abs := createdAt.Add(m.config.MaxLifetime); abs.Before(idle) {
		return abs
	}
	return idle
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
