// Package validation checks request structs with validator/v10 and reports
// failures keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/qmc/portal/internal/pkg/apperrors"
)

// MessageTag overrides the default message of a failing field.
const MessageTag = "message"

// Validator wraps a configured validator.Validate.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator that names fields by their json tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

var defaultValidator = New()

// Struct validates s with the package default Validator.
func Struct(s interface{}) error {
	return defaultValidator.Struct(s)
}

// Struct returns nil or an *apperrors.ValidationError.
func (x *Validator) Struct(s interface{}) error {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, err)
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	verr := apperrors.NewValidationError()
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), message(t, fe))
	}
	return verr
}

func message(t reflect.Type, fe validator.FieldError) string {
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if msg := f.Tag.Get(MessageTag); msg != "" {
				return msg
			}
		}
	}

	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email address"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	default:
		return "Invalid value"
	}
}
