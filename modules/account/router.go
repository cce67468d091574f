package account

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anita-maxwynn/Django-Practice/handler"
	"github.com/anita-maxwynn/Django-Practice/pkg/binder"
	"github.com/anita-maxwynn/Django-Practice/pkg/logger"
	"github.com/anita-maxwynn/Django-Practice/pkg/session"
)

type routerOptions struct {
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
	rateLimit    func(http.Handler) http.Handler
}

type RouterOption func(*routerOptions)

func WithRouterLogger(l *slog.Logger) RouterOption {
	return func(o *routerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithErrorHandler(eh handler.ErrorHandler[handler.Context]) RouterOption {
	return func(o *routerOptions) {
		if eh != nil {
			o.errorHandler = eh
		}
	}
}

// WithRateLimit throttles the login and forgot password submissions.
func WithRateLimit(mw func(http.Handler) http.Handler) RouterOption {
	return func(o *routerOptions) {
		if mw != nil {
			o.rateLimit = mw
		}
	}
}

// TooManyAttempts answers throttled requests with a 429 error page.
func TooManyAttempts(eh handler.ErrorHandler[handler.Context]) http.Handler {
	return wrap(func(handler.Context, nothing) handler.Response {
		return handler.Error(errTooManyAttempts)
	}, eh)
}

// Router mounts the account pages. Protected pages go through
// sessions.RequireAuth, so the manager should be built with
// session.WithUnauthorizedHandler(LoginRequired(flasher)).
func Router(svc *Service, sessions *session.Manager, flasher *Flasher, opts ...RouterOption) chi.Router {
	o := routerOptions{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		rateLimit: func(next http.Handler) http.Handler { return next },
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.errorHandler == nil {
		o.errorHandler = handler.NewErrorHandler(o.logger, handler.ErrorHandlerConfig{
			ErrorPage:  ErrorPage,
			ErrorToast: ErrorToast,
		})
	}

	h := &handlers{svc: svc, sessions: sessions, flash: flasher, logger: o.logger.With(logger.Component("account.http"))}
	eh := o.errorHandler
	path := binder.Path(chi.URLParam)

	r := chi.NewRouter()
	r.Use(sessions.Middleware)

	r.Get("/register", wrap(h.registerPage, eh))
	r.Post("/register", wrap(h.register, eh, binder.Form()))
	r.Get("/activate/{uid}/{token}", wrap(h.activate, eh, path))
	r.Get("/login", wrap(h.loginPage, eh, binder.Query()))
	r.With(o.rateLimit).Post("/login", wrap(h.login, eh, binder.Query(), binder.Form()))
	r.Get("/forgot_password", wrap(h.forgotPasswordPage, eh))
	r.With(o.rateLimit).Post("/forgot_password", wrap(h.forgotPassword, eh, binder.Form()))
	r.Get("/reset_password/{uid}/{token}", wrap(h.resetPasswordPage, eh, path))
	r.Post("/reset_password/{uid}/{token}", wrap(h.resetPassword, eh, path, binder.Form()))
	r.Post("/logout", wrap(h.logout, eh))

	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireAuth)
		r.Use(h.loadUser(LoginRequired(flasher), eh))

		r.Get("/", wrap(h.home, eh))
		r.Get("/change_password", wrap(h.changePasswordPage, eh))
		r.Post("/change_password", wrap(h.changePassword, eh, binder.Form()))
	})

	return r
}

func wrap[R any](fn handler.HandlerFunc[handler.Context, R], eh handler.ErrorHandler[handler.Context], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(fn,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](eh),
	)
}
