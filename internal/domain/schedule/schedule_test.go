package schedule

import (
	"testing"
	"time"

	"larder/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-05 is a Wednesday (weekday index 2).
func wednesday(hour, minute int) time.Time {
	return time.Date(2025, 3, 5, hour, minute, 0, 0, time.UTC)
}

func TestWeekdayIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, WeekdayIndex(time.Monday))
	assert.Equal(t, 2, WeekdayIndex(time.Wednesday))
	assert.Equal(t, 5, WeekdayIndex(time.Saturday))
	assert.Equal(t, 6, WeekdayIndex(time.Sunday))
}

func TestNextSendTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		schedule entity.Schedule
		now      time.Time
		expected time.Time
	}{
		{
			name:     "today when time not yet reached",
			schedule: entity.Schedule{Weekdays: []int{2}, Time: "08:00"},
			now:      wednesday(7, 30),
			expected: wednesday(8, 0),
		},
		{
			name:     "boundary is inclusive",
			schedule: entity.Schedule{Weekdays: []int{2}, Time: "08:00"},
			now:      wednesday(8, 0),
			expected: wednesday(8, 0),
		},
		{
			name:     "past the time rolls a full week on a single-day schedule",
			schedule: entity.Schedule{Weekdays: []int{2}, Time: "08:00"},
			now:      wednesday(8, 1),
			expected: wednesday(8, 0).AddDate(0, 0, 7),
		},
		{
			name:     "skips to the next allowed weekday",
			schedule: entity.Schedule{Weekdays: []int{0, 4}, Time: "18:30"},
			now:      wednesday(9, 0),
			expected: time.Date(2025, 3, 7, 18, 30, 0, 0, time.UTC), // Friday
		},
		{
			name:     "wraps across the weekend",
			schedule: entity.Schedule{Weekdays: []int{0}, Time: "07:00"},
			now:      time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC), // Saturday noon
			expected: time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC), // Monday
		},
		{
			name:     "today not in schedule even though time matches",
			schedule: entity.Schedule{Weekdays: []int{3}, Time: "08:00"},
			now:      wednesday(8, 0),
			expected: time.Date(2025, 3, 6, 8, 0, 0, 0, time.UTC), // Thursday
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NextSendTime(tt.schedule, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNextSendTime_EmptyWeekdays(t *testing.T) {
	t.Parallel()

	_, err := NextSendTime(entity.Schedule{Weekdays: nil, Time: "08:00"}, wednesday(7, 0))
	assert.ErrorIs(t, err, ErrEmptySchedule)
}

func TestNextSendTime_BadTimeOfDay(t *testing.T) {
	t.Parallel()

	_, err := NextSendTime(entity.Schedule{Weekdays: []int{0}, Time: "25:99"}, wednesday(7, 0))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		schedule entity.Schedule
		wantErr  bool
	}{
		{name: "valid", schedule: entity.Schedule{Weekdays: []int{0, 6}, Time: "08:00"}, wantErr: false},
		{name: "empty weekdays", schedule: entity.Schedule{Weekdays: []int{}, Time: "08:00"}, wantErr: true},
		{name: "weekday out of range", schedule: entity.Schedule{Weekdays: []int{7}, Time: "08:00"}, wantErr: true},
		{name: "negative weekday", schedule: entity.Schedule{Weekdays: []int{-1}, Time: "08:00"}, wantErr: true},
		{name: "malformed time", schedule: entity.Schedule{Weekdays: []int{0}, Time: "8am"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsDue(t *testing.T) {
	t.Parallel()

	weekly := entity.Schedule{Weekdays: []int{2}, Time: "08:00"} // Wednesdays 08:00

	t.Run("never sent is due immediately", func(t *testing.T) {
		t.Parallel()

		cfg := &entity.NotificationConfig{Schedule: weekly}
		due, err := IsDue(cfg, wednesday(3, 0))
		require.NoError(t, err)
		assert.True(t, due)
	})

	t.Run("not due before the next slot", func(t *testing.T) {
		t.Parallel()

		lastSent := wednesday(8, 0)
		cfg := &entity.NotificationConfig{Schedule: weekly, LastSent: &lastSent}

		due, err := IsDue(cfg, wednesday(9, 0))
		require.NoError(t, err)
		assert.False(t, due, "a send this morning covers the rest of the day")

		due, err = IsDue(cfg, wednesday(8, 0).AddDate(0, 0, 6))
		require.NoError(t, err)
		assert.False(t, due, "still inside the week after the last send")
	})

	t.Run("due once the next slot arrives", func(t *testing.T) {
		t.Parallel()

		lastSent := wednesday(8, 0)
		cfg := &entity.NotificationConfig{Schedule: weekly, LastSent: &lastSent}

		due, err := IsDue(cfg, wednesday(8, 0).AddDate(0, 0, 7))
		require.NoError(t, err)
		assert.True(t, due)
	})

	t.Run("missed slot stays due until satisfied", func(t *testing.T) {
		t.Parallel()

		lastSent := wednesday(8, 0)
		cfg := &entity.NotificationConfig{Schedule: weekly, LastSent: &lastSent}

		// Nine days later, well past the following Wednesday 08:00.
		due, err := IsDue(cfg, wednesday(14, 0).AddDate(0, 0, 9))
		require.NoError(t, err)
		assert.True(t, due, "a missed slot is made up, not skipped")
	})

	t.Run("empty schedule is an error", func(t *testing.T) {
		t.Parallel()

		cfg := &entity.NotificationConfig{Schedule: entity.Schedule{Weekdays: nil, Time: "08:00"}}
		_, err := IsDue(cfg, wednesday(8, 0))
		assert.ErrorIs(t, err, ErrEmptySchedule)
	})
}
