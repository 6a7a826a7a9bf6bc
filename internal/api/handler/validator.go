package handler

import (
	"github.com/matchme/matchme-web/internal/pkg/validate"
)

// formValidator lets Echo call c.Validate(form). Failures are
// *domain.ValidationError so pages can render them inline.
type formValidator struct{}

// NewValidator returns a validator ready to be assigned to echo.Echo.Validator.
func NewValidator() *formValidator {
	return &formValidator{}
}

// Validate satisfies the echo.Validator interface.
func (formValidator) Validate(i any) error {
	return validate.Struct(i)
}
