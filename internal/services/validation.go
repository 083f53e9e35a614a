package services

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/cakebakery/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// newValidator returns a validator with the storefront's custom tags registered
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration of a static tag name only fails on programmer error
	if err := v.RegisterValidation("price", validatePrice); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("bcryptlen", validateBcryptLength); err != nil {
		panic(err)
	}
	return v
}

// priceFormat is a plain decimal with at most two fractional digits; no sign, no exponent
var priceFormat = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// maxPrice is the first value that no longer fits the DECIMAL(10,2) price column
var maxPrice = decimal.New(1, 8)

const priceMessage = "Price must be a positive amount below 100000000 with at most two decimals."

// maxPasswordBytes is the longest input bcrypt hashes
const maxPasswordBytes = 72

// validatePrice accepts a positive amount below maxPrice with at most two fractional digits
func validatePrice(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if !priceFormat.MatchString(raw) {
		return false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}
	return d.IsPositive() && d.LessThan(maxPrice)
}

// validateBcryptLength limits the field to maxPasswordBytes bytes; "max" counts runes
func validateBcryptLength(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= maxPasswordBytes
}

// validateStruct runs v over req and turns the first failure into a models.ValidationError
func validateStruct(v *validator.Validate, req any) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	fe := fieldErrs[0]
	return &models.ValidationError{Field: fe.Field(), Message: validationMessage(fe)}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param())
	case "price":
		return priceMessage
	case "bcryptlen":
		return fmt.Sprintf("%s must be at most %d bytes.", fe.Field(), maxPasswordBytes)
	case "url":
		return fmt.Sprintf("%s must be a valid URL.", fe.Field())
	}
	return fmt.Sprintf("%s is invalid.", fe.Field())
}
