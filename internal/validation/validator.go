// Package validation provides HTTP request validation using the
// validator/v10 library, surfacing failures as per-field message lists.
package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/inkwellapp/inkwell-server/internal/errors"
)

// Validator wraps go-playground/validator with application error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our request types.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names so error keys match the wire fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove options like omitempty, -
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns a validation error carrying a
// field-to-messages map, suitable for a 400 response body.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make(map[string][]string)
	for _, e := range validationErrs {
		fields[e.Field()] = append(fields[e.Field()], v.message(e))
	}

	return apperrors.ValidationWithDetails("validation failed", fields)
}

func (v *Validator) message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "oneof":
		// Value() gives the rejected value, quoted as the client sent it.
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprintf("%v", e.Value()))
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", e.Param())
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", e.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", e.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", e.Param())
	case "lt":
		return fmt.Sprintf("Ensure this value is less than %s.", e.Param())
	default:
		return "Enter a valid value."
	}
}

// FieldError builds a single-field validation error without running the
// validator, for checks that live outside struct tags.
func FieldError(field, message string) error {
	return apperrors.ValidationWithDetails("validation failed", map[string][]string{
		field: {message},
	})
}
