package auth

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("invalid user data")
	ErrConfig             = errors.New("invalid user configuration")
	ErrPasswordRequired   = errors.New("password is required")
)
