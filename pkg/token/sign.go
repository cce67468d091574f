package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"strings"
)

const signatureSize = 16

// GenerateToken JSON encodes the payload and appends a truncated HMAC-SHA256
// signature computed over the payload and the optional binding values.
func GenerateToken[T any](payload T, secret string, binding ...[]byte) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	payloadEnc := base64.RawURLEncoding.EncodeToString(data)
	sigEnc := base64.RawURLEncoding.EncodeToString(sign(data, secret, binding))

	return payloadEnc + "." + sigEnc, nil
}

// ParseToken verifies the token's signature against the same binding values
// used at generation and decodes the JSON payload into the generic type.
func ParseToken[T any](token string, secret string, binding ...[]byte) (T, error) {
	var payload T

	payloadEnc, sigEnc, ok := strings.Cut(token, ".")
	if !ok || payloadEnc == "" || sigEnc == "" || strings.Contains(sigEnc, ".") {
		return payload, ErrInvalidToken
	}

	data, err := base64.RawURLEncoding.DecodeString(payloadEnc)
	if err != nil {
		return payload, errors.Join(ErrInvalidToken, err)
	}

	sig, err := base64.RawURLEncoding.DecodeString(sigEnc)
	if err != nil {
		return payload, errors.Join(ErrInvalidToken, err)
	}

	if subtle.ConstantTimeCompare(sig, sign(data, secret, binding)) != 1 {
		return payload, ErrSignatureInvalid
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, errors.Join(ErrInvalidToken, err)
	}

	return payload, nil
}

func sign(data []byte, secret string, binding [][]byte) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	for _, b := range binding {
		// Length prefix keeps ("ab","c") and ("a","bc") distinct.
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(b)))
		h.Write(n[:])
		h.Write(b)
	}
	return h.Sum(nil)[:signatureSize]
}
