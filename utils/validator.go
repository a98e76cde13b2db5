package utils

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registers custom validation rules
func RegisterCustomValidations(v *validator.Validate) {
	v.RegisterValidation("e164phone", validatePhone)
}

// validatePhone checks if a string is a valid phone number with country code
func validatePhone(fl validator.FieldLevel) bool {
	_, err := NormalizePhone(fl.Field().String())
	return err == nil
}

// TranslateValidationError turns binding failures into a per-field message
// list suitable for the errors array of a validation response.
func TranslateValidationError(err error) []string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{"Invalid request body"}
	}

	var messages []string
	for _, fe := range ve {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "email":
			messages = append(messages, "Valid email is required")
		case "min":
			messages = append(messages, field+" must be at least "+fe.Param()+" characters")
		case "max":
			messages = append(messages, field+" must be at most "+fe.Param()+" characters")
		case "len":
			messages = append(messages, field+" must be exactly "+fe.Param()+" characters")
		case "numeric":
			messages = append(messages, field+" must contain only numbers")
		case "oneof":
			messages = append(messages, field+" must be one of: "+fe.Param())
		case "e164phone":
			messages = append(messages, "Invalid phone number format")
		case "eqfield":
			messages = append(messages, "Passwords do not match")
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	return messages
}
