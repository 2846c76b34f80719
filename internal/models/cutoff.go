package model

import (
	"strings"
	"time"

	apperrors "todaygenda.com/todaygenda/internal/errors"
)

// Cutoff is a time of day, in a specific zone, at which daylists expire.
type Cutoff struct {
	Hour     int
	Minute   int
	Location *time.Location
}

// Midnight in UTC is the cutoff used when nothing else is configured.
var Midnight = Cutoff{Location: time.UTC}

var offsetLayouts = []string{
	"15:04:05Z07:00",
	"15:04Z07:00",
	"15:04:05Z07",
	"15:04Z07",
}

// ParseCutoff reads a client-supplied time of day such as "20:16:00+06:00".
// The UTC offset is mandatory: a bare "20:16" is ambiguous and rejected.
func ParseCutoff(field, value string) (Cutoff, error) {
	value = strings.TrimSpace(value)
	for _, layout := range offsetLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return CutoffAt(t), nil
		}
	}

	return Cutoff{}, apperrors.NewValidationError(
		field,
		"must be a time of day with a UTC offset, e.g. 20:16:00+06:00, got %q", value,
	)
}

// CutoffAt takes the time of day and UTC offset of t. The offset is pinned as
// a fixed zone so a parsed time that happens to match the host's local offset
// does not pick up the host's DST rules.
func CutoffAt(t time.Time) Cutoff {
	_, offset := t.Zone()
	loc := time.UTC
	if offset != 0 {
		loc = time.FixedZone("", offset)
	}
	return Cutoff{Hour: t.Hour(), Minute: t.Minute(), Location: loc}
}

// ParseClock reads an "HH:MM" time of day and pins it to loc.
func ParseClock(value string, loc *time.Location) (Cutoff, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return Cutoff{}, apperrors.NewValidationError("cutoff", "must be formatted HH:MM, got %q", value)
	}
	return Cutoff{Hour: t.Hour(), Minute: t.Minute(), Location: loc}, nil
}

// Zone is the cutoff's location, UTC when unset.
func (c Cutoff) Zone() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c Cutoff) String() string {
	return time.Date(2000, 1, 1, c.Hour, c.Minute, 0, 0, c.Zone()).Format("15:04 MST")
}
