// Package validation adapts go-playground/validator to echo's Validator
// interface. Failures surface as EINVALID domain errors carrying per-field
// messages, so handlers can return them unchanged.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nasserq/raqeeb"
)

type Validator struct {
	validate *validator.Validate
}

// NewValidator builds the validator the server installs as echo.Validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks a request struct against its validate tags. Echo calls
// this from c.Validate.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		return raqeeb.ErrorWithFields(fieldMessages(verrs))
	}
	return raqeeb.Invalid("Invalid request body")
}

// fieldMessages turns validator errors into client-facing messages keyed
// by lowercased field name.
func fieldMessages(verrs validator.ValidationErrors) map[string]string {
	messages := make(map[string]string, len(verrs))

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			messages[field] = "is required"
		case "email":
			messages[field] = "must be a valid email address"
		case "min":
			messages[field] = fmt.Sprintf("must be at least %s", fe.Param())
		case "max":
			messages[field] = fmt.Sprintf("must be no more than %s", fe.Param())
		case "uuid":
			messages[field] = "must be a valid UUID"
		case "gte":
			messages[field] = fmt.Sprintf("must be at least %s", fe.Param())
		case "lte":
			messages[field] = fmt.Sprintf("must be at most %s", fe.Param())
		case "len":
			messages[field] = fmt.Sprintf("must be exactly %s characters", fe.Param())
		case "oneof":
			messages[field] = fmt.Sprintf("must be one of: %s", fe.Param())
		case "dive":
			messages[field] = "contains an invalid entry"
		default:
			messages[field] = fmt.Sprintf("failed validation: %s", fe.Tag())
		}
	}
	return messages
}
