package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "print-shop-system/pkg/errors"
)

type Validator struct {
	validate *validator.Validate
}

// NewValidator wraps a validator instance for echo. Field names in error
// responses come from the json tag, not the Go field name.
func NewValidator(v *validator.Validate) *Validator {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationError(fe.Field(), "failed validation rule %q", fe.Tag())
	}
	return apperrors.NewValidationError("body", "invalid request body")
}
