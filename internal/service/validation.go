package service

import (
	"errors"
	"fmt"
	"strings"

	apperrors "symbiomatch-backend/internal/errors"

	"github.com/go-playground/validator/v10"
)

// validationFailed turns the first field error of a request into a ValidationError
func validationFailed(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := "failed on " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		return fmt.Errorf("validation failed: %w", apperrors.NewValidationError(strings.ToLower(fe.Field()), msg))
	}
	return fmt.Errorf("validation failed: %w", apperrors.NewValidationError("", err.Error()))
}
