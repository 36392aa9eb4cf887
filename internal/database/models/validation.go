package models

import (
	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that understands the model tags, including match_state
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("match_state", func(fl validator.FieldLevel) bool {
		return MatchState(fl.Field().String()).IsValid()
	})
	return v
}
