package account

import (
	"html/template"

	"github.com/a-h/templ"
)

const (
	activationSubject = "Activate Your Account"
	resetSubject      = "Reset Your Password"
)

type emailBody = templ.Component

type emailData struct {
	Name    string
	Link    string
	SiteURL string
}

var emailTemplates = template.Must(template.ParseFS(templateFS, "templates/email/*.html"))

func activationEmail(data emailData) emailBody {
	return component(emailTemplates, "activation.html", data)
}

func resetEmail(data emailData) emailBody {
	return component(emailTemplates, "reset.html", data)
}
