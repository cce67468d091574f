package account

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/anita-maxwynn/Django-Practice/handler"
	"github.com/anita-maxwynn/Django-Practice/pkg/auth"
	"github.com/anita-maxwynn/Django-Practice/pkg/logger"
	"github.com/anita-maxwynn/Django-Practice/pkg/session"
	"github.com/anita-maxwynn/Django-Practice/pkg/validator"
)

type linkRequest struct {
	UID   string `path:"uid"`
	Token string `path:"token"`
}

type resetRequest struct {
	UID          string `path:"uid"`
	Token        string `path:"token"`
	NewPassword1 string `form:"new_password1"`
	NewPassword2 string `form:"new_password2"`
}

type nothing struct{}

type handlers struct {
	svc      *Service
	sessions *session.Manager
	flash    *Flasher
	logger   *slog.Logger
}

func (h *handlers) registerPage(ctx handler.Context, _ nothing) handler.Response {
	return h.page(ctx, pageRegister, PageData{Title: "Register", Form: RegisterInput{}})
}

func (h *handlers) register(ctx handler.Context, in RegisterInput) handler.Response {
	_, err := h.svc.Register(ctx, in)
	if errs := validator.ExtractValidationErrors(err); errs != nil {
		in.Password1, in.Password2 = "", ""
		return render(pageRegister, PageData{Title: "Register", Form: in, Errors: errs, Notice: msgCorrectErrors})
	}
	if err != nil {
		return handler.Error(err)
	}
	return h.flash.redirect(ctx, levelSuccess, msgRegistered, "/login")
}

func (h *handlers) activate(ctx handler.Context, req linkRequest) handler.Response {
	_, err := h.svc.Activate(ctx, req.UID, req.Token)
	if errors.Is(err, ErrInvalidLink) {
		return h.flash.redirect(ctx, levelError, msgActivationFailed, "/register")
	}
	if err != nil {
		return handler.Error(err)
	}
	return h.flash.redirect(ctx, levelSuccess, msgActivated, "/login")
}

func (h *handlers) loginPage(ctx handler.Context, in LoginInput) handler.Response {
	if _, ok := session.UserIDFromContext(ctx); ok {
		return handler.Redirect(handler.SafeRedirectURL(in.Next, "/"))
	}
	return h.page(ctx, pageLogin, PageData{Title: "Login", Form: LoginInput{Next: in.Next}})
}

func (h *handlers) login(ctx handler.Context, in LoginInput) handler.Response {
	user, err := h.svc.Login(ctx, in)
	retry := LoginInput{Email: in.Email, Next: in.Next}
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInactiveAccount):
		return render(pageLogin, PageData{Title: "Login", Form: retry, Notice: msgInvalidLogin})
	case validator.IsValidationError(err):
		return render(pageLogin, PageData{Title: "Login", Form: retry, Errors: validator.ExtractValidationErrors(err)})
	case err != nil:
		return handler.Error(err)
	}

	if _, err := h.sessions.Authenticate(ctx, ctx.ResponseWriter(), ctx.Request(), user.ID); err != nil {
		return handler.Error(err)
	}
	return handler.Redirect(handler.SafeRedirectURL(in.Next, "/"))
}

func (h *handlers) home(ctx handler.Context, _ nothing) handler.Response {
	return h.page(ctx, pageHome, PageData{Title: "Home", User: auth.GetUserFromContext(ctx)})
}

func (h *handlers) logout(ctx handler.Context, _ nothing) handler.Response {
	userID, _ := session.UserIDFromContext(ctx)
	if err := h.sessions.Destroy(ctx, ctx.ResponseWriter(), ctx.Request()); err != nil {
		h.logger.WarnContext(ctx, "failed to destroy session", logger.Flow(flowLogout), logger.Error(err))
	}
	h.svc.record(flowLogout, nil)
	h.logger.InfoContext(ctx, "user logged out", logger.Flow(flowLogout), logger.UserID(userID.String()))
	return h.flash.redirect(ctx, levelSuccess, msgLoggedOut, "/login")
}

func (h *handlers) changePasswordPage(ctx handler.Context, _ nothing) handler.Response {
	return h.page(ctx, pageChangePassword, PageData{Title: "Change password", Form: ChangePasswordInput{}})
}

func (h *handlers) changePassword(ctx handler.Context, in ChangePasswordInput) handler.Response {
	err := h.svc.ChangePassword(ctx, auth.GetUserFromContext(ctx), in)
	if errs := validator.ExtractValidationErrors(err); errs != nil {
		return render(pageChangePassword, PageData{
			Title:  "Change password",
			Form:   ChangePasswordInput{},
			Errors: errs,
			Notice: msgCorrectErrors,
		})
	}
	if err != nil {
		return handler.Error(err)
	}
	return h.flash.redirect(ctx, levelSuccess, msgPasswordChanged, "/")
}

func (h *handlers) forgotPasswordPage(ctx handler.Context, _ nothing) handler.Response {
	return h.page(ctx, pageForgotPassword, PageData{Title: "Forgot password", Form: ForgotPasswordInput{}})
}

func (h *handlers) forgotPassword(ctx handler.Context, in ForgotPasswordInput) handler.Response {
	err := h.svc.ForgotPassword(ctx, in)
	if errs := validator.ExtractValidationErrors(err); errs != nil {
		return render(pageForgotPassword, PageData{Title: "Forgot password", Form: in, Errors: errs})
	}
	if err != nil {
		return handler.Error(err)
	}
	return notify(pageForgotPassword, PageData{
		Title:   "Forgot password",
		Form:    ForgotPasswordInput{},
		Flashes: []Flash{{Level: levelInfo, Message: msgResetSent}},
	})
}

func (h *handlers) resetPasswordPage(ctx handler.Context, req linkRequest) handler.Response {
	_, err := h.svc.CheckResetLink(ctx, req.UID, req.Token)
	if errors.Is(err, ErrInvalidLink) {
		return h.flash.redirect(ctx, levelError, msgResetInvalid, "/forgot_password")
	}
	if err != nil {
		return handler.Error(err)
	}
	return h.page(ctx, pageResetPassword, PageData{
		Title:  "Reset password",
		Form:   ResetPasswordInput{},
		Action: ctx.Request().URL.Path,
	})
}

func (h *handlers) resetPassword(ctx handler.Context, req resetRequest) handler.Response {
	err := h.svc.ResetPassword(ctx, req.UID, req.Token, ResetPasswordInput{
		NewPassword1: req.NewPassword1,
		NewPassword2: req.NewPassword2,
	})
	if errors.Is(err, ErrInvalidLink) {
		return h.flash.redirect(ctx, levelError, msgResetInvalid, "/forgot_password")
	}
	if errs := validator.ExtractValidationErrors(err); errs != nil {
		return render(pageResetPassword, PageData{
			Title:  "Reset password",
			Form:   ResetPasswordInput{},
			Errors: errs,
			Action: ctx.Request().URL.Path,
		})
	}
	if err != nil {
		return handler.Error(err)
	}
	return h.flash.redirect(ctx, levelSuccess, msgPasswordReset, "/login")
}

// page renders a full page with pending flashes.
func (h *handlers) page(ctx handler.Context, name string, data PageData) handler.Response {
	data.Flashes = h.flash.Pop(ctx.ResponseWriter(), ctx.Request())
	return handler.Templ(page(name, data))
}

// loadUser puts the session's user into the context. Sessions pointing at a
// deleted user are destroyed.
func (h *handlers) loadUser(onMissing http.Handler, onError handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := session.UserIDFromContext(r.Context())
			if !ok {
				onMissing.ServeHTTP(w, r)
				return
			}

			user, err := h.svc.User(r.Context(), id)
			switch {
			case errors.Is(err, auth.ErrUserNotFound):
				_ = h.sessions.Destroy(r.Context(), w, r)
				onMissing.ServeHTTP(w, r)
				return
			case err != nil:
				onError(handler.NewContext(w, r), err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.SetUserToContext(r.Context(), user)))
		})
	}
}
