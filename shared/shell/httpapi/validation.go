package httpapi

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/bookswap-hub/bookswap/shared/core"
)

var registerValidationsOnce sync.Once

// registerValidations adds the closed enumerations of the domain to gin's validator.
func registerValidations() {
	registerValidationsOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		_ = engine.RegisterValidation("bookstatus", func(fl validator.FieldLevel) bool {
			_, err := core.ParseBookStatus(fl.Field().String())
			return err == nil
		})

		_ = engine.RegisterValidation("swapdecision", func(fl validator.FieldLevel) bool {
			_, err := core.ParseSwapDecision(fl.Field().String())
			return err == nil
		})
	})
}

// bindingError turns a binding failure into a core.ErrValidation naming the offending fields.
func bindingError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errors.Join(core.ErrValidation, err)
	}

	errs := []error{core.ErrValidation}
	for _, fieldError := range validationErrors {
		errs = append(errs, errors.New(fieldError.Field()+" fails "+fieldError.Tag()))
	}

	return errors.Join(errs...)
}
