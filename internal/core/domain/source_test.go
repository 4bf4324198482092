package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected TimeOfDay
	}{
		{name: "24 hour", input: "13:00:00", expected: TimeOfDay{Hour: 13}},
		{name: "12 hour pm", input: "01:30:15 PM", expected: TimeOfDay{Hour: 13, Minute: 30, Second: 15}},
		{name: "12 hour am", input: "11:59:59 AM", expected: TimeOfDay{Hour: 11, Minute: 59, Second: 59}},
		{name: "lowercase meridiem", input: "7:05:00 pm", expected: TimeOfDay{Hour: 19, Minute: 5}},
		{name: "minute precision", input: "22:10", expected: TimeOfDay{Hour: 22, Minute: 10}},
		{name: "minute precision pm", input: "9:59 PM", expected: TimeOfDay{Hour: 21, Minute: 59}},
		{name: "surrounding whitespace", input: "  12:00:00 ", expected: TimeOfDay{Hour: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, input := range []string{"", "noon", "25:00:00", "12:61:00", "13:00:00 PM"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTimeOfDay(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSchedule))
		})
	}
}

func TestTimeOfDay_On(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tod := TimeOfDay{Hour: 13, Minute: 0, Second: 0}
	got := tod.On(Date{Year: 2024, Month: time.March, Day: 1}, loc)

	assert.Equal(t, time.Date(2024, time.March, 1, 13, 0, 0, 0, loc), got)
	assert.Equal(t, "13:00:00", tod.String())
}

func TestScheduleError(t *testing.T) {
	err := &ScheduleError{SourceID: "FL", Value: "later", Err: ErrInvalidSchedule}

	assert.Contains(t, err.Error(), "source FL")
	assert.Contains(t, err.Error(), `"later"`)
	assert.True(t, errors.Is(err, ErrInvalidSchedule))
}

func TestSource_DisplayName(t *testing.T) {
	assert.Equal(t, "Florida", (&Source{ID: "FL", Name: "Florida"}).DisplayName())
	assert.Equal(t, "FL", (&Source{ID: "FL"}).DisplayName())
}
