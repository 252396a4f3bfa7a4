// Package validation wraps go-playground/validator for console forms and backend
// response envelopes.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	apperrors "betogether-admin/internal/shared/errors"

	"github.com/go-playground/validator/v10"
)

// PasswordSpecials are the special characters accepted by the admin password policy.
const PasswordSpecials = "@$!%*?&"

// Validator validates structs and turns failures into apperrors.ValidationErrors.
type Validator struct {
	validate *validator.Validate
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
)

// Default returns the process-wide validator.
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultValidator = New()
	})
	return defaultValidator
}

// New builds a validator using json tag names and the console's custom rules.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("adminpassword", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{validate: v}
}

// Struct validates s. A field may carry a `message:"..."` tag that replaces the
// generated text for any rule it fails.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError(err.Error()).WithCause(err)
	}

	out := apperrors.NewValidationErrors()
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), messageFor(s, fe), fe.Value())
	}
	return out
}

// Var validates a single value against tag.
func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

func messageFor(s interface{}, fe validator.FieldError) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if msg := f.Tag.Get("message"); msg != "" {
				return msg
			}
		}
	}

	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be %s or less", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", fe.Field(), fe.Param())
	case "adminpassword":
		return "Password must be 8+ chars, include uppercase, number & special character"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// IsStrongPassword enforces the admin password policy: at least 8 characters drawn
// from letters, digits and PasswordSpecials, with one uppercase letter, one digit
// and one special character.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, digit, special bool
	for _, r := range password {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(PasswordSpecials, r):
			special = true
		case unicode.IsLower(r):
		default:
			return false
		}
	}
	return upper && digit && special
}

// PasswordStrength scores a password from 0 to 4 the way the profile screen's meter does.
func PasswordStrength(password string) int {
	score := 0
	if len(password) >= 8 {
		score++
	}
	var upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(PasswordSpecials, r):
			special = true
		}
	}
	for _, ok := range []bool{upper, digit, special} {
		if ok {
			score++
		}
	}
	return score
}

// StrengthLabel names a PasswordStrength score.
func StrengthLabel(score int) string {
	switch score {
	case 0:
		return "Very Weak"
	case 1:
		return "Weak"
	case 2:
		return "Medium"
	case 3:
		return "Strong"
	default:
		return "Very Strong"
	}
}
