package account

import (
	"github.com/anita-maxwynn/Django-Practice/pkg/validator"
)

const passwordMismatchMessage = "Passwords do not match."

type RegisterInput struct {
	Email     string `form:"email"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Password1 string `form:"password1"`
	Password2 string `form:"password2"`
}

func (in RegisterInput) validate(minLen int) error {
	rules := []validator.Rule{
		validator.Required("email", in.Email),
		validator.ValidEmail("email", in.Email),
		validator.MaxLen("first_name", in.FirstName, nameMaxLength),
		validator.MaxLen("last_name", in.LastName, nameMaxLength),
	}
	rules = append(rules, validator.PasswordPolicy("password1", in.Password1, minLen)...)
	rules = append(rules,
		validator.Required("password2", in.Password2),
		validator.EqualString("password2", in.Password2, in.Password1, passwordMismatchMessage),
	)
	return validator.Apply(rules...)
}

type LoginInput struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Next     string `form:"next" query:"next"`
}

func (in LoginInput) validate() error {
	return validator.Apply(
		validator.Required("email", in.Email),
		validator.Required("password", in.Password),
	)
}

type ChangePasswordInput struct {
	OldPassword  string `form:"old_password"`
	NewPassword1 string `form:"new_password1"`
	NewPassword2 string `form:"new_password2"`
}

func (in ChangePasswordInput) validate(minLen int) error {
	rules := []validator.Rule{validator.Required("old_password", in.OldPassword)}
	rules = append(rules, validator.PasswordPolicy("new_password1", in.NewPassword1, minLen)...)
	rules = append(rules, validator.Required("new_password2", in.NewPassword2))
	return validator.Apply(rules...)
}

type ForgotPasswordInput struct {
	Email string `form:"email"`
}

func (in ForgotPasswordInput) validate() error {
	return validator.Apply(
		validator.Required("email", in.Email),
		validator.ValidEmail("email", in.Email),
	)
}

type ResetPasswordInput struct {
	NewPassword1 string `form:"new_password1"`
	NewPassword2 string `form:"new_password2"`
}

func (in ResetPasswordInput) validate(minLen int) error {
	rules := validator.PasswordPolicy("new_password1", in.NewPassword1, minLen)
	rules = append(rules, validator.Required("new_password2", in.NewPassword2))
	return validator.Apply(rules...)
}

// mismatch returns a field error on confirm joined with ErrPasswordMismatch.
func mismatch(field string) error {
	return joinField(ErrPasswordMismatch, field, passwordMismatchMessage, "validation.mismatch")
}
