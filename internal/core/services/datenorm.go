package services

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// NormalizeStep records which rule of the fallback chain produced a timestamp.
type NormalizeStep int

// Fallback chain steps, in the order they are tried.
const (
	// StepOffset: a full timestamp carrying its own UTC offset.
	StepOffset NormalizeStep = iota + 1

	// StepDateOnly: a bare date, placed at midnight in the reference zone.
	StepDateOnly

	// StepBestEffort: date and time split on a separator, or any layout dateparse knows,
	// interpreted in the reference zone.
	StepBestEffort

	// StepFallback: nothing parsed; the merge time was used instead.
	StepFallback
)

// String returns the step name.
func (s NormalizeStep) String() string {
	switch s {
	case StepOffset:
		return "offset"
	case StepDateOnly:
		return "date_only"
	case StepBestEffort:
		return "best_effort"
	case StepFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-0700",
	time.RFC1123Z,
}

var clockLayouts = []string{
	"15:04:05",
	"15:04:05.999999999",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
}

// NormalizeDate turns an upstream date string into an offset-aware timestamp.
// The chain is deterministic and always yields a time; a StepFallback result
// means raw could not be read and now (in loc) was substituted.
func NormalizeDate(raw string, loc *time.Location, now time.Time) (time.Time, NormalizeStep) {
	if loc == nil {
		loc = time.UTC
	}
	s := strings.TrimSpace(raw)

	if s != "" {
		for _, layout := range offsetLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, StepOffset
			}
		}

		if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
			return t, StepDateOnly
		}

		if t, ok := splitDateTime(s, loc); ok {
			return t, StepBestEffort
		}
		if t, err := dateparse.ParseIn(s, loc); err == nil {
			return t, StepBestEffort
		}
	}

	return now.In(loc), StepFallback
}

// splitDateTime handles "YYYY-MM-DD<sep>clock" with no offset, sep being 'T' or a space.
func splitDateTime(s string, loc *time.Location) (time.Time, bool) {
	idx := strings.IndexAny(s, "T ")
	if idx <= 0 || idx == len(s)-1 {
		return time.Time{}, false
	}
	datePart, clockPart := s[:idx], strings.TrimSpace(s[idx+1:])

	day, err := time.ParseInLocation(time.DateOnly, datePart, loc)
	if err != nil {
		return time.Time{}, false
	}
	for _, layout := range clockLayouts {
		clock, err := time.Parse(layout, strings.ToUpper(clockPart))
		if err != nil {
			continue
		}
		return time.Date(day.Year(), day.Month(), day.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), loc), true
	}
	// A readable date with an unreadable clock still pins the day.
	return day, true
}
