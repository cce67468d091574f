package validator

import (
	"strings"
	"unicode"
)

// commonPasswords is a short list of frequently compromised passwords.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {},
	"123456789": {}, "1234567890": {}, "qwerty123": {}, "qwertyuiop": {},
	"iloveyou": {}, "sunshine": {}, "princess": {}, "football": {},
	"baseball": {}, "welcome1": {}, "letmein1": {}, "trustno1": {},
	"superman": {}, "whatever": {}, "dragon12": {}, "11111111": {},
	"00000000": {}, "abc12345": {}, "passw0rd": {}, "administrator": {},
}

// NotCommonPassword rejects passwords found in the common list, case-insensitively.
func NotCommonPassword(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, found := commonPasswords[strings.ToLower(strings.TrimSpace(value))]
			return !found
		},
		Error: ValidationError{
			Field:             field,
			Message:           "This password is too common.",
			TranslationKey:    "validation.password_common",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// NotNumericPassword rejects passwords made only of digits.
func NotNumericPassword(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			for _, r := range value {
				if !unicode.IsDigit(r) {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:             field,
			Message:           "This password is entirely numeric.",
			TranslationKey:    "validation.password_numeric",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// PasswordPolicy returns the rules applied to every newly chosen password.
func PasswordPolicy(field, value string, minLength int) []Rule {
	return []Rule{
		Required(field, value),
		MinLen(field, value, minLength),
		NotCommonPassword(field, value),
		NotNumericPassword(field, value),
	}
}
