package account

import (
	"errors"
	"net/http"

	"github.com/anita-maxwynn/Django-Practice/handler"
)

var (
	ErrInvalidLink        = errors.New("account.invalid_link")
	ErrInvalidCredentials = errors.New("account.invalid_credentials")
	ErrInactiveAccount    = errors.New("account.inactive")
	ErrWrongOldPassword   = errors.New("account.wrong_old_password")
	ErrPasswordMismatch   = errors.New("account.password_mismatch")
	ErrConfig             = errors.New("account.invalid_config")
)

var errTooManyAttempts = handler.NewHTTPError(http.StatusTooManyRequests, msgTooManyAttempts)
