package token

import (
	"encoding/base64"
	"errors"

	"github.com/google/uuid"
)

// EncodeID converts a user identifier into an unpadded base64url string
// suitable for URL path segments. It is an encoding, not encryption.
func EncodeID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// DecodeID reverses EncodeID. It fails with ErrDecode for malformed input
// and for the nil UUID.
func DecodeID(s string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return uuid.Nil, errors.Join(ErrDecode, err)
	}

	id, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, errors.Join(ErrDecode, err)
	}
	if id == uuid.Nil {
		return uuid.Nil, ErrDecode
	}

	return id, nil
}
