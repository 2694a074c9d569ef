package serverutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks a bound request DTO against its validate tags.
func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}
