// Package validation wraps go-playground/validator with json field names and
// readable messages. The same Validator serves echo's c.Validate and the core
// services, which validate their inputs only after access checks pass.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator satisfies echo.Validator.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator that reports fields by their json names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Validate checks i against its validate tags.
func (val *Validator) Validate(i any) error {
	return describe(val.v.Struct(i))
}

// Var checks a single value against tag, reporting it under field.
func (val *Validator) Var(field string, value any, tag string) error {
	err := val.v.Var(value, tag)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, message(field, fe))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return err
}

func describe(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, message(strings.ToLower(fe.Field()), fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
