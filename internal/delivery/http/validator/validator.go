// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	"reflect"
	"regexp"
	"strings"

	domainerrors "vendorbridge/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var (
	phonePattern = regexp.MustCompile(`^[+]?[1-9][0-9]{0,15}$`)
	gstPattern   = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
)

// requestValidator wraps a validator.Validate instance for Echo.
type requestValidator struct {
	validate *validator.Validate
}

// New creates the request validator with the custom phone and gst rules
// registered. Field names in error messages follow the json tags.
func New() echo.Validator {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	// Registration of static patterns never fails.
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("gst", func(fl validator.FieldLevel) bool {
		return gstPattern.MatchString(strings.ToUpper(fl.Field().String()))
	})

	return &requestValidator{validate: validate}
}

// Validate implements echo.Validator. Failures are converted into a
// ValidationError carrying one message per offending field.
func (v *requestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "request validation failed")
	}

	fields := make([]domainerrors.FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, domainerrors.FieldError{
			Field:   fieldErr.Field(),
			Message: describe(fieldErr),
		})
	}

	return domainerrors.NewValidationError(fields)
}

// describe renders a user-facing message for a single rule failure.
func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fieldErr.Param() + " characters"
	case "max":
		return "must be at most " + fieldErr.Param() + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fieldErr.Param(), " ", ", ")
	case "phone":
		return "must be a valid phone number"
	case "gst":
		return "must be a valid GST number"
	default:
		return "is invalid"
	}
}
