package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/anita-maxwynn/Django-Practice/pkg/logger"
	"github.com/anita-maxwynn/Django-Practice/pkg/requestid"
	"github.com/anita-maxwynn/Django-Practice/pkg/validator"
)

// ErrorPageParams contains data for rendering error pages.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams contains data for rendering error toasts.
type ErrorToastParams struct {
	Message   string
	Type      string // "error", "warning", "info"
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// ErrorPage renders a full page for plain requests. When nil a text
	// response is written instead.
	ErrorPage func(ErrorPageParams) templ.Component

	// ErrorToast renders a toast for Datastar requests.
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget defaults to "#toast-container".
	ToastTarget string

	// ToastMode defaults to PatchPrepend.
	ToastMode datastar.ElementPatchMode
}

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string
	LogLevel   slog.Level
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

func determineErrorType(statusCode int) string {
	switch {
	case isClientError(statusCode):
		return "warning"
	case statusCode >= http.StatusInternalServerError:
		return "error"
	default:
		return "info"
	}
}

func determineLogLevel(statusCode int) slog.Level {
	if isClientError(statusCode) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

func setConfigDefaults(cfg ErrorHandlerConfig) ErrorHandlerConfig {
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}
	return cfg
}

func formatValidationErrors(errs validator.ValidationErrors) string {
	if errs.IsEmpty() {
		return "Validation failed"
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Field+": "+e.Message)
	}
	return strings.Join(messages, "; ")
}

// classifyError maps err to a status code and a user-facing message.
// Internal error text never reaches the client.
func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    "An error occurred processing your request",
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Key
	}

	if errs := validator.ExtractValidationErrors(err); errs != nil {
		info.StatusCode = http.StatusBadRequest
		info.Message = formatValidationErrors(errs)
	}

	info.Type = determineErrorType(info.StatusCode)
	info.LogLevel = determineLogLevel(info.StatusCode)
	return info
}

func logError(log *slog.Logger, ctx Context, err error, info ErrorInfo) {
	r := ctx.Request()
	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		slog.Int("status_code", info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Bool("is_datastar", IsDataStar(r)),
		logger.Component("error_handler"),
	)
}

func renderToast(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string, log *slog.Logger) {
	if cfg.ErrorToast == nil {
		log.Warn("no error toast component configured for datastar request",
			logger.RequestID(requestID),
			logger.Component("error_handler"),
		)
		return
	}

	component := cfg.ErrorToast(ErrorToastParams{
		Message:   info.Message,
		Type:      info.Type,
		RequestID: requestID,
	})
	response := Templ(component, WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode))
	if err := response.Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		log.Error("failed to render error toast",
			logger.RequestID(requestID),
			logger.Error(err),
			logger.Component("error_handler"),
		)
	}
}

func renderPage(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string, log *slog.Logger) {
	if cfg.ErrorPage == nil {
		http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
		return
	}

	component := cfg.ErrorPage(ErrorPageParams{
		Error:      info.Message,
		StatusCode: info.StatusCode,
		RequestID:  requestID,
		RetryURL:   ctx.Request().URL.Path,
	})
	response := TemplWithStatus(info.StatusCode, component)
	if err := response.Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		log.Error("failed to render error page",
			logger.RequestID(requestID),
			logger.Error(err),
			logger.Component("error_handler"),
		)
	}
}

// NewErrorHandler returns an ErrorHandler that renders an error page for plain
// requests and a toast for Datastar requests.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	cfg = setConfigDefaults(cfg)
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		requestID := requestid.FromContext(ctx.Request().Context())
		info := classifyError(err)
		logError(log, ctx, err, info)

		if IsDataStar(ctx.Request()) {
			renderToast(ctx, cfg, info, requestID, log)
			return
		}
		renderPage(ctx, cfg, info, requestID, log)
	}
}
