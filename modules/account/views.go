package account

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/anita-maxwynn/Django-Practice/handler"
	"github.com/anita-maxwynn/Django-Practice/pkg/auth"
	"github.com/anita-maxwynn/Django-Practice/pkg/validator"
)

//go:embed templates
var templateFS embed.FS

const (
	pageRegister       = "register"
	pageLogin          = "login"
	pageHome           = "home"
	pageChangePassword = "change_password"
	pageForgotPassword = "forgot_password"
	pageResetPassword  = "reset_password"
	pageError          = "error"
)

// PageData is passed to every page template.
type PageData struct {
	Title   string
	Flashes []Flash
	// Notice is a form level message shown above the fields.
	Notice string
	Errors validator.ValidationErrors
	// Form holds the submitted input so fields can be refilled. Password
	// fields are never rendered back.
	Form   any
	User   *auth.User
	Action string
}

var pages = parsePages(
	pageRegister,
	pageLogin,
	pageHome,
	pageChangePassword,
	pageForgotPassword,
	pageResetPassword,
	pageError,
)

func parsePages(names ...string) map[string]*template.Template {
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return out
}

// component adapts an html/template to templ.Component.
func component(t *template.Template, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}

func page(name string, data PageData) templ.Component {
	return component(pages[name], "layout", data)
}

func form(name string, data PageData) templ.Component {
	return component(pages[name], "form", data)
}

// notify answers with the full page carrying flashes, or only the flash area
// for Datastar requests.
func notify(name string, data PageData) handler.Response {
	return handler.TemplPartial(component(pages[name], "flashes", data), page(name, data), handler.WithTarget("#flashes"))
}

// render answers with the full page, or only the form for Datastar requests.
func render(name string, data PageData) handler.Response {
	return handler.TemplPartial(form(name, data), page(name, data), handler.WithTarget("#"+name+"-form"))
}

// ErrorPage renders the page used by handler.NewErrorHandler.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return component(pages[pageError], "layout", PageData{Title: "Error", Form: p})
}

// ErrorToast renders the toast used by handler.NewErrorHandler for Datastar
// requests.
func ErrorToast(p handler.ErrorToastParams) templ.Component {
	return component(pages[pageError], "toast", p)
}
