package handler

import (
	"errors"

	"phonekit/internal/lookup"
	"phonekit/internal/phonenumber"
	"phonekit/platform/validator"
)

// RegisterValidations adds the phone number tags used by the transport DTOs:
// numbertype, format and carriermode. Region codes are only checked for
// shape; whether a region is known is for the engine to report.
func RegisterValidations(val *validator.Validator) error {
	return errors.Join(
		val.RegisterStringValidation("numbertype", func(s string) bool {
			_, err := phonenumber.ParseNumberType(s)
			return err == nil
		}),
		val.RegisterStringValidation("format", func(s string) bool {
			_, err := phonenumber.ParseFormat(s)
			return err == nil
		}),
		val.RegisterStringValidation("carriermode", func(s string) bool {
			_, err := lookup.ParseCarrierNameMode(s)
			return err == nil
		}),
	)
}
