package email

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// Render renders a templ component into an HTML string suitable for BodyHTML.
func Render(ctx context.Context, tpl templ.Component) (string, error) {
	var sb strings.Builder
	if err := tpl.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
