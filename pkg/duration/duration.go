// Package duration converts between user-entered estimates such as "1h30m"
// and time.Duration values.
//
// Parsing is lenient: input that cannot be understood yields a zero duration
// and it is left to the caller to reject zero estimates. Parsing rounds up to
// the next whole minute while Format drops sub-minute remainders, so the two
// are not exact inverses.
package duration

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute

	// maxMinutes is the largest whole-minute count a time.Duration can hold.
	maxMinutes = math.MaxInt64 / int64(time.Minute)
)

var (
	hourPattern   = regexp.MustCompile(`(?i)([\d.]+)\s?hr?`)
	minutePattern = regexp.MustCompile(`(?i)([\d.]+)\s?mi?n?`)
)

// Parse reads a duration such as "90", "1h30m", "1.5h" or "30m 1h".
// A bare integer is a number of minutes.
func Parse(input string) time.Duration {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0
	}

	if minutes, err := strconv.Atoi(input); err == nil {
		if minutes <= 0 || int64(minutes) > maxMinutes {
			return 0
		}
		return time.Duration(minutes) * time.Minute
	}

	hours, ok := component(hourPattern, input)
	if !ok {
		return 0
	}
	minutes, ok := component(minutePattern, input)
	if !ok {
		return 0
	}

	return ceilMinutes(hours*secondsPerHour + minutes*secondsPerMinute)
}

// component returns the numeric value in front of a unit, 0 when the unit is
// absent, and false when the number is malformed (e.g. "1.5.1.5h").
func component(pattern *regexp.Regexp, input string) (float64, bool) {
	match := pattern.FindStringSubmatch(input)
	if match == nil {
		return 0, true
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, false
	}

	return value, true
}

// ceilMinutes rounds a number of seconds up to the next whole minute, after
// first settling it to microsecond precision so float noise (0.1h) does not
// push an exact minute over the edge. Values too large for a time.Duration
// yield 0.
func ceilMinutes(seconds float64) time.Duration {
	if seconds >= float64(maxMinutes*secondsPerMinute) {
		return 0
	}

	micros := int64(math.Round(seconds * 1e6))
	if micros <= 0 {
		return 0
	}

	wholeSeconds := (micros + 999_999) / 1_000_000
	minutes := (wholeSeconds + secondsPerMinute - 1) / secondsPerMinute
	if minutes > maxMinutes {
		return 0
	}

	return time.Duration(minutes) * time.Minute
}

// Format renders d as "1h20m", "2h", "20m" or "" for anything under a minute.
func Format(d time.Duration) string {
	if d <= 0 {
		return ""
	}

	seconds := int64(d.Round(time.Second) / time.Second)
	hours := seconds / secondsPerHour
	minutes := (seconds % secondsPerHour) / secondsPerMinute

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return ""
	}
}

// SplitTitle separates "write report\t1h30m" into its title and raw duration.
// Lines without a tab have no duration.
func SplitTitle(raw string) (title, estimate string) {
	title, estimate, found := strings.Cut(raw, "\t")
	if !found {
		return strings.TrimSpace(raw), ""
	}
	return strings.TrimSpace(title), strings.TrimSpace(estimate)
}

// Sum adds up a list of durations.
func Sum(durations ...time.Duration) time.Duration {
	var total time.Duration
	for _, d := range durations {
		total += d
	}
	return total
}
