package domain

import (
	"fmt"
	"strings"
	"time"
)

// Source represents one independent publisher of draw results.
// Sources are immutable once the registry has been built.
type Source struct {
	// ID is the stable key for the source (e.g., "FL", "NY").
	ID string

	// Name is the human-readable name for this source.
	Name string

	// DrawTime is the expected publication time-of-day in the reference time zone.
	DrawTime TimeOfDay

	// RawDrawTime is the schedule entry as it appeared in configuration.
	RawDrawTime string

	// URL is the document the fetcher retrieves for this source.
	URL string

	// Valid is false when the schedule entry was missing or malformed.
	// Invalid sources are listed but never fetched.
	Valid bool

	// Defect describes why the source is invalid.
	Defect string
}

// DisplayName returns the name, falling back to the ID.
func (s *Source) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// SourceConfig is the raw, unvalidated form of a source as read from configuration.
type SourceConfig struct {
	ID       string
	Name     string
	DrawTime string
	URL      string
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// timeOfDayLayouts are tried in order when parsing schedule entries.
var timeOfDayLayouts = []string{
	"15:04:05",
	"3:04:05 PM",
	"15:04",
	"3:04 PM",
	"3:04:05PM",
	"3:04PM",
}

// ParseTimeOfDay parses "HH:MM:SS", "hh:mm:ss AM/PM" and their minute-precision forms.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	value := strings.ToUpper(strings.TrimSpace(s))
	if value == "" {
		return TimeOfDay{}, fmt.Errorf("%w: empty draw time", ErrInvalidSchedule)
	}
	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: %q is not HH:MM:SS or hh:mm:ss AM/PM", ErrInvalidSchedule, s)
}

// On returns the instant this time-of-day falls on for the given calendar date in loc.
func (t TimeOfDay) On(date Date, loc *time.Location) time.Time {
	return time.Date(date.Year, date.Month, date.Day, t.Hour, t.Minute, t.Second, 0, loc)
}

// String formats the time as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// ScheduleError is a configuration defect found while loading the source registry.
type ScheduleError struct {
	SourceID string
	Value    string
	Err      error
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("source %s: invalid draw time %q: %v", e.SourceID, e.Value, e.Err)
}

// Unwrap supports errors.Is(err, ErrInvalidSchedule).
func (e *ScheduleError) Unwrap() error {
	return e.Err
}
