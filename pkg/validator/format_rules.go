package validator

import (
	"net/mail"
	"strings"
)

func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}

			local, domain, ok := strings.Cut(value, "@")
			if !ok || local == "" || domain == "" || len(local) > 64 {
				return false
			}

			if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") || strings.Contains(domain, "..") {
				return false
			}
			return strings.Contains(domain, ".")
		},
		Error: ValidationError{
			Field:             field,
			Message:           "Enter a valid email address.",
			TranslationKey:    "validation.email",
			TranslationValues: map[string]any{"field": field},
		},
	}
}
