// Package moneypkg provides money amount helpers shared across delivery layers.
package moneypkg

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidAmount reports whether the field holds a parsable decimal string.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if amount, ok := fl.Field().Interface().(string); ok {
		_, err := decimal.NewFromString(amount)
		return err == nil
	}

	return false
}
