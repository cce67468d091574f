package cookie

import "errors"

var (
	ErrNoSecret       = errors.New("cookie.no_secret")
	ErrSecretTooShort = errors.New("cookie.secret_too_short")
	ErrCookieNotFound = errors.New("cookie.not_found")
	ErrInvalidValue   = errors.New("cookie.invalid_value")
)
