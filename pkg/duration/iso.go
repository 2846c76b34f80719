package duration

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidISO = errors.New("invalid ISO-8601 duration")

var isoPattern = regexp.MustCompile(
	`^P(?:(\d+(?:\.\d+)?)D)?(?:T(?:(\d+(?:\.\d+)?)H)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)S)?)?$`,
)

// FormatISO renders d as an ISO-8601 duration, e.g. "PT1H15M".
func FormatISO(d time.Duration) string {
	if d == 0 {
		return "PT0S"
	}

	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}
	b.WriteString("PT")

	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute

	if hours > 0 {
		fmt.Fprintf(&b, "%dH", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dM", minutes)
	}
	if d > 0 {
		b.WriteString(strconv.FormatFloat(d.Seconds(), 'f', -1, 64))
		b.WriteByte('S')
	}

	return b.String()
}

// ParseISO reads an ISO-8601 duration made of days, hours, minutes and
// seconds. Years, months and weeks are rejected because their length depends
// on the calendar.
func ParseISO(value string) (time.Duration, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	match := isoPattern.FindStringSubmatch(value)
	if match == nil || value == "P" || strings.HasSuffix(value, "T") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidISO, value)
	}

	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}

	var total float64
	for i, unit := range units {
		part := match[i+1]
		if part == "" {
			continue
		}
		n, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidISO, value)
		}
		total += n * float64(unit)
		// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
		if total >= float64(math.MaxInt64) {
			return 0, fmt.Errorf("%w: %q is too long", ErrInvalidISO, value)
		}
	}

	return time.Duration(total), nil
}
