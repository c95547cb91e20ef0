// Package forms defines the bound request forms and turns binding failures
// into per-field messages the templates can render inline.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type LoginForm struct {
	Name     string `form:"name" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type RegisterForm struct {
	Email           string `form:"email" binding:"required,email"`
	Name            string `form:"name" binding:"required,min=2,max=20"`
	Password        string `form:"password" binding:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

type ProjectForm struct {
	Title string `form:"title" binding:"required"`
	Body  string `form:"body" binding:"required"`
}

// FieldErrors maps a binding error to user-facing messages keyed by the
// form field name. Errors that are not validator errors (a malformed body,
// for instance) come back under the empty key.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out[""] = "Invalid form data."
		return out
	}
	for _, fe := range verrs {
		out[fieldName(fe.Field())] = message(fe)
	}
	return out
}

// fieldName converts the Go struct field name to its form name.
func fieldName(field string) string {
	switch field {
	case "ConfirmPassword":
		return "confirm_password"
	default:
		return strings.ToLower(field)
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long.", fe.Param())
	case "eqfield":
		return "Passwords do not match."
	default:
		return "Invalid value."
	}
}
