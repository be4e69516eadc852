package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest runs the struct tags of req and maps failures to field errors.
func validateRequest(req any) []ProductValidationError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ProductValidationError{{Description: err.Error()}}
	}
	errs := make([]ProductValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ProductValidationError{Field: fe.Field(), Description: describe(fe)})
	}
	return errs
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s items", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must have at least %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s cannot be lower than %s", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	}
	return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
}
