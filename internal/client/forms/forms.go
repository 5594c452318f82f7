// Package forms validates user input before anything is sent to the
// backend. A rejected form is reported as an InvalidFormat AuthError so the
// UI can treat it like any other auth failure.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/emprende/internal/client/client"
)

// PasswordSpecials are the only non-alphanumeric characters a new password
// may contain, and it must contain at least one of them.
const PasswordSpecials = "@$!%*?&"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("strongpassword", isStrongPassword); err != nil {
		panic(err)
	}
	return v
}

// Login is the sign-in form.
type Login struct {
	Identifier string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
}

// Email is the first recovery step.
type Email struct {
	Email string `json:"email" validate:"required,email"`
}

// Code holds the six one-character OTP boxes, left to right.
type Code struct {
	Digits [6]string `json:"code" validate:"dive,required,len=1,numeric"`
}

// Value concatenates the digits.
func (c Code) Value() string {
	return strings.Join(c.Digits[:], "")
}

// NewPassword is the last recovery step.
type NewPassword struct {
	Password string `json:"password" validate:"required,strongpassword"`
	Confirm  string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// Check validates a form struct. It returns nil or an InvalidFormat
// *client.AuthError listing every offending field.
func Check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate form: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return &client.AuthError{
		Kind:    client.KindInvalidFormat,
		Message: strings.Join(msgs, "; "),
		Err:     verrs,
	}
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s character(s)", field, fe.Param())
	case "numeric":
		return field + " must be a digit"
	case "eqfield":
		return "passwords do not match"
	case "strongpassword":
		return field + " needs at least 8 characters with an upper case letter, a lower case letter, a digit and one of " + PasswordSpecials
	}
	return field + " is invalid"
}

func isStrongPassword(fl validator.FieldLevel) bool {
	return StrongPassword(fl.Field().String())
}

// StrongPassword reports whether s satisfies the new-password policy.
func StrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}
