package token

import "errors"

var (
	ErrInvalidToken     = errors.New("invalid token format")
	ErrSignatureInvalid = errors.New("signature mismatch")
	ErrTokenExpired     = errors.New("token expired")
	ErrDecode           = errors.New("failed to decode identifier")
	ErrSecretTooShort   = errors.New("token secret must be at least 32 bytes")
	ErrEmptyPurpose     = errors.New("token purpose is required")
)
