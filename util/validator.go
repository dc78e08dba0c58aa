package util

import "github.com/go-playground/validator/v10"

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("rating", validateRating)
}

func validateRating(fl validator.FieldLevel) bool {
	rating := fl.Field().Float()
	return rating >= 3.5 && rating <= 5.0
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
