// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request struct filled by binders from
// pkg/binder, and returns a Response that renders itself:
//
//	type loginRequest struct {
//		Email    string `form:"email"`
//		Password string `form:"password"`
//		Next     string `query:"next"`
//	}
//
//	r.HandleFunc("/login/", handler.Wrap(h.login,
//		handler.WithBinders[handler.Context, loginRequest](binder.Query(), binder.Form()),
//		handler.WithErrorHandler[handler.Context, loginRequest](errHandler),
//	))
//
// Responses are aware of Datastar: Templ, TemplPartial and Redirect answer
// Datastar requests (Accept: text/event-stream) with server-sent events and
// plain requests with HTML or an HTTP redirect.
//
// NewErrorHandler maps errors to status codes, logs them with the request ID
// and renders an error page, or a toast patch for Datastar requests.
package handler
