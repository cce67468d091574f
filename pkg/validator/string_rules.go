package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:             field,
			Message:           "This field is required.",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MinLen counts runes, not bytes.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("Ensure this value has at least %d characters.", min),
			TranslationKey: "validation.min_length",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("Ensure this value has at most %d characters.", max),
			TranslationKey: "validation.max_length",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

// EqualString validates that value equals other, e.g. a confirmation field.
func EqualString(field, value, other, message string) Rule {
	return Rule{
		Check: func() bool {
			return value == other
		},
		Error: ValidationError{
			Field:             field,
			Message:           message,
			TranslationKey:    "validation.mismatch",
			TranslationValues: map[string]any{"field": field},
		},
	}
}
