package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

type redirectResponse struct {
	url  string
	code int
}

func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	if IsDataStar(req) {
		return datastar.NewSSE(w, req).Redirect(r.url)
	}
	http.Redirect(w, req, r.url, r.code)
	return nil
}

// Redirect answers with 303 See Other, or a client-side redirect for Datastar.
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

// RedirectWithCode answers with the given 3xx code.
func RedirectWithCode(url string, code int) Response {
	return redirectResponse{url: url, code: code}
}

// SafeRedirectURL returns target if it is a local path and fallback otherwise.
// It guards "next" parameters against open redirects.
func SafeRedirectURL(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return target
}
