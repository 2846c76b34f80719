package validators

import (
	dto "todaygenda.com/todaygenda/internal/data_models"
	apperrors "todaygenda.com/todaygenda/internal/errors"
)

func ValidateCredentials(r *dto.Credentials) error {
	if r.Username == "" {
		return apperrors.NewValidationError("username", "field required")
	}
	if r.Password == "" {
		return apperrors.NewValidationError("password", "field required")
	}
	return nil
}
