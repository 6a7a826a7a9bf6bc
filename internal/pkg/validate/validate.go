// Package validate runs the client-side form checks that must pass before any
// request reaches the backend.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/matchme/matchme-web/internal/core/domain"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})
	return instance
}

// Struct validates s and reports the first failing field as a
// *domain.ValidationError.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return domain.NewValidationError(lowerFirst(fe.Field()), fieldError(humanize(fe.Field()), fe))
	}
	return err
}

// Var validates a single value against tag and reports a failure under the
// given field name.
func Var(field string, v any, tag string) error {
	if tag == "" {
		return nil
	}
	err := get().Var(v, tag)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return domain.NewValidationError(field, fieldError(humanize(upperFirst(field)), ve[0]))
	}
	return err
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s exceeds the %s character limit", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "eqfield":
		return "Passwords do not match"
	case "datetime":
		return field + " must be a valid date"
	case "numeric":
		return field + " must be a number"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// humanize turns a Go field name such as "FirstName" into "First name".
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
