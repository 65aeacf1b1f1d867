package apperr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Validate checks struct tags and reports the first failure as a validation error.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return Internal("validating input", err)
	}

	return &Error{Kind: KindValidation, Message: fieldMessage(fieldErrs[0]), Err: err}
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%q must be a valid id", field)
	case "gtfield":
		return fmt.Sprintf("%q must be after %q", field, fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("%q must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
