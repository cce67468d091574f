package account

import (
	"net/http"
	"net/url"

	"github.com/anita-maxwynn/Django-Practice/handler"
	"github.com/anita-maxwynn/Django-Practice/pkg/cookie"
)

const flashKey = "messages"

const (
	levelSuccess = "success"
	levelInfo    = "info"
	levelError   = "error"
)

const (
	msgRegistered       = "Registration successful. Check your email for confirmation."
	msgActivated        = "Your account has been activated. You can now login."
	msgActivationFailed = "Activation link is invalid or expired."
	msgInvalidLogin     = "Invalid email or password."
	msgLoginRequired    = "You need to login to access this page."
	msgLoggedOut        = "You have been logged out successfully."
	msgPasswordChanged  = "Password changed successfully."
	msgCorrectErrors    = "Please correct the errors below."
	msgResetSent        = "If an account exists for that email, a reset link has been sent."
	msgResetInvalid     = "Reset link is invalid or expired."
	msgPasswordReset    = "Your password has been reset successfully. You can now login."
	msgTooManyAttempts  = "Too many attempts. Please try again later."
)

// Flash is a one-time message shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Flasher stores flashes in a signed cookie.
type Flasher struct {
	cookies *cookie.Manager
}

func NewFlasher(cookies *cookie.Manager) *Flasher {
	return &Flasher{cookies: cookies}
}

func (f *Flasher) Add(w http.ResponseWriter, level, message string) error {
	return f.cookies.SetFlash(w, flashKey, []Flash{{Level: level, Message: message}})
}

// Pop returns pending flashes and clears them.
func (f *Flasher) Pop(w http.ResponseWriter, r *http.Request) []Flash {
	var flashes []Flash
	if err := f.cookies.GetFlash(w, r, flashKey, &flashes); err != nil {
		return nil
	}
	return flashes
}

// redirect flashes message and redirects to target.
func (f *Flasher) redirect(ctx handler.Context, level, message, target string) handler.Response {
	if err := f.Add(ctx.ResponseWriter(), level, message); err != nil {
		return handler.Error(err)
	}
	return handler.Redirect(target)
}

// LoginRequired flashes a login prompt and redirects to /login, keeping the
// requested path in "next". Pass it to session.WithUnauthorizedHandler.
func LoginRequired(flasher *Flasher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := "/login?next=" + url.QueryEscape(r.URL.RequestURI())
		if err := flasher.Add(w, levelInfo, msgLoginRequired); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		_ = handler.Redirect(target).Render(w, r)
	})
}
