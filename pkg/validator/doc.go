// Package validator provides declarative, translation-friendly validation rules
// for request inputs.
//
// Each exported rule constructor returns a Rule that pairs a Check func with
// the ValidationError reported when the check fails. Apply evaluates the rules
// and aggregates failures into ValidationErrors, which implements error and can
// be rendered per field.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.Required("email", in.Email),
//	    validator.ValidEmail("email", in.Email),
//	    validator.MinLen("password1", in.Password1, 8),
//	    validator.EqualString("password2", in.Password2, in.Password1, "passwords do not match"),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//	    // errs.Get("email")
//	}
package validator
