package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their JSON names so errors match request bodies
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		// Postgres text columns reject NUL bytes and invalid UTF-8
		_ = validate.RegisterValidation("text", func(fl validator.FieldLevel) bool {
			return IsStorableText(fl.Field().String())
		})
	})
	return validate
}

// IsStorableText reports whether s can be stored in a text or jsonb column
func IsStorableText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

var maxAmount = decimal.New(1, AMOUNT_INTEGER_DIGITS)

// CheckAmount requires a positive value that fits numeric(20,4) without rounding
func CheckAmount(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return NewValidationError(field, "must be greater than 0")
	}
	if !v.Equal(v.Round(AMOUNT_DECIMAL_PLACES)) {
		return NewValidationError(field, fmt.Sprintf("must have at most %d decimal places", AMOUNT_DECIMAL_PLACES))
	}
	if v.GreaterThanOrEqual(maxAmount) {
		return NewValidationError(field, fmt.Sprintf("must have at most %d integer digits", AMOUNT_INTEGER_DIGITS))
	}
	return nil
}

// ValidateStruct checks `validate` struct tags and returns the first failure as a ValidationError
func ValidateStruct(v any) error {
	err := structValidator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Reason: err.Error()}
	}

	fe := fieldErrs[0]
	return &ValidationError{Field: fe.Field(), Reason: describeTag(fe)}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "latitude", "longitude":
		return "is out of range"
	case "uuid":
		return "must be a UUID"
	case "max":
		return fmt.Sprintf("must be at most %s long", fe.Param())
	case "text":
		return "must be valid UTF-8 without NUL bytes"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
