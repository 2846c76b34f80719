package validators

import (
	"strings"
	"time"

	dto "todaygenda.com/todaygenda/internal/data_models"
	apperrors "todaygenda.com/todaygenda/internal/errors"
	"todaygenda.com/todaygenda/pkg/duration"
)

// ValidateCreateTaskRequest checks that both fields are present and reads the
// estimate. Title and estimate bounds are left to the task itself.
func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) (time.Duration, error) {
	if r.Title == "" {
		return 0, apperrors.NewValidationError("title", "field required")
	}
	if strings.TrimSpace(r.Estimate) == "" {
		return 0, apperrors.NewValidationError("estimate", "field required")
	}

	return ParseEstimate(r.Estimate)
}

// ParseEstimate accepts an ISO-8601 duration ("PT1H30M") or the compact form
// typed on the command line ("1h30m", "90").
func ParseEstimate(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToUpper(raw), "P") {
		d, err := duration.ParseISO(raw)
		if err != nil {
			return 0, apperrors.NewValidationError("estimate", "invalid duration format %q", raw)
		}
		return d, nil
	}

	return duration.Parse(raw), nil
}
