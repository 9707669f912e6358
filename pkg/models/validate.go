package models

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return ValidateCategory(fl.Field().String()) == nil
	})

	return v
}

// Validator returns the shared validator with the stash-specific rules registered
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = newValidator()
	})
	return validate
}

// Validate checks a record against its struct tags
func Validate(record any) error {
	err := Validator().Struct(record)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return oops.Code("VALIDATION_FAILED").Wrapf(err, "validating record")
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, fieldErr.Field()+" ("+fieldErr.Tag()+")")
	}

	return oops.
		Code("VALIDATION_FAILED").
		With("fields", fields).
		Hint("Check the highlighted fields and try again").
		Errorf("invalid %s", strings.Join(fields, ", "))
}
