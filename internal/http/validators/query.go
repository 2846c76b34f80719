package validators

import (
	"strconv"
	"strings"
	"time"

	apperrors "todaygenda.com/todaygenda/internal/errors"
	model "todaygenda.com/todaygenda/internal/models"
)

// ParseExpire reads the optional expire query parameter. Both a time of day
// with offset ("20:16:00+06:00") and a full RFC 3339 timestamp are accepted;
// only the time of day and its offset are kept.
func ParseExpire(raw string) (*model.Cutoff, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		cutoff := model.CutoffAt(t)
		return &cutoff, nil
	}

	cutoff, err := model.ParseCutoff("expire", raw)
	if err != nil {
		return nil, err
	}
	return &cutoff, nil
}

func ParseTaskID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrTaskIDRequired
	}
	return uint(id), nil
}

func ValidateTaskIDs(ids []uint) error {
	for _, id := range ids {
		if id == 0 {
			return apperrors.ErrTaskIDRequired
		}
	}
	return nil
}
