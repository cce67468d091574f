package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption configures how a component is patched into the page.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector of the patched element.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the component is merged into the DOM.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

type templResponse struct {
	status  int
	partial templ.Component
	full    templ.Component
	options []TemplOption
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.partial, t.options...)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	return t.full.Render(r.Context(), w)
}

// Templ renders component as HTML, or patches it via SSE for Datastar.
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: component, full: component, options: opts}
}

// TemplWithStatus renders component with an explicit status code for plain
// requests. Datastar streams always answer 200.
func TemplWithStatus(status int, component templ.Component, opts ...TemplOption) Response {
	return templResponse{status: status, partial: component, full: component, options: opts}
}

// TemplPartial renders full for plain requests and only partial for Datastar,
// so a form can be re-rendered in place without reloading the page.
func TemplPartial(partial, full templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: partial, full: full, options: opts}
}
