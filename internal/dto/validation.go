package dto

import (
	"fmt"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the ledger's custom tags to a validator instance.
func RegisterValidators(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"accountnumber": func(fl validator.FieldLevel) bool {
			return domain.IsValidAccountNumber(fl.Field().String())
		},
		// domain.Money is an int64 of minor units.
		"positive_money": func(fl validator.FieldLevel) bool {
			return fl.Field().Int() > 0
		},
		"nonnegative_money": func(fl validator.FieldLevel) bool {
			return fl.Field().Int() >= 0
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q validator: %w", tag, err)
		}
	}
	return nil
}

// RegisterGinValidators installs the custom tags on gin's binding engine.
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return RegisterValidators(v)
}
