package token

import (
	"time"
)

const minSecretLength = 32

// Target is a record a token can be bound to.
// TokenState must change whenever a previously issued token should stop
// verifying, e.g. after a password change.
type Target interface {
	TokenKey() string
	TokenState() []byte
}

type claims struct {
	Expires int64 `json:"exp"`
}

// Generator issues and verifies state-bound tokens for a single purpose.
// Tokens issued for one purpose never verify for another.
type Generator struct {
	secret  string
	purpose string
	ttl     time.Duration
	now     func() time.Time
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithClock overrides the time source.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator creates a Generator. A non-positive ttl disables expiry and
// leaves state binding as the only invalidation mechanism.
func NewGenerator(secret, purpose string, ttl time.Duration, opts ...GeneratorOption) (*Generator, error) {
	if len(secret) < minSecretLength {
		return nil, ErrSecretTooShort
	}
	if purpose == "" {
		return nil, ErrEmptyPurpose
	}

	g := &Generator{
		secret:  secret,
		purpose: purpose,
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Purpose returns the purpose the generator signs for.
func (g *Generator) Purpose() string {
	return g.purpose
}

// Issue produces a token bound to the target's current state.
func (g *Generator) Issue(t Target) (string, error) {
	var c claims
	if g.ttl > 0 {
		c.Expires = g.now().Add(g.ttl).Unix()
	}
	return GenerateToken(c, g.secret, g.binding(t)...)
}

// Check verifies the token against the target's current state and reports why
// it failed.
func (g *Generator) Check(t Target, token string) error {
	c, err := ParseToken[claims](token, g.secret, g.binding(t)...)
	if err != nil {
		return err
	}
	if c.Expires > 0 && !g.now().Before(time.Unix(c.Expires, 0)) {
		return ErrTokenExpired
	}
	return nil
}

// Verify reports whether the token is valid for the target right now.
func (g *Generator) Verify(t Target, token string) bool {
	return g.Check(t, token) == nil
}

func (g *Generator) binding(t Target) [][]byte {
	return [][]byte{[]byte(g.purpose), []byte(t.TokenKey()), t.TokenState()}
}
