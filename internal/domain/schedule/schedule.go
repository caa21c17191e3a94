// Package schedule computes when the periodic status report is allowed to go
// out. Weekdays use the persisted convention 0=Monday .. 6=Sunday.
package schedule

import (
	"fmt"
	"slices"
	"time"

	"larder/internal/domain/entity"
	"larder/internal/errors"
)

// ErrEmptySchedule is returned when a schedule allows no weekday at all.
// An empty set is a configuration error, never "send every day".
var ErrEmptySchedule = errors.New("schedule has no allowed weekdays")

// WeekdayIndex converts a time.Weekday to the persisted 0=Monday .. 6=Sunday form.
func WeekdayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// ParseTimeOfDay validates and splits an "HH:MM" send time.
func ParseTimeOfDay(value string) (hour, minute int, err error) {
	parsed, parseErr := time.Parse("15:04", value)
	if parseErr != nil {
		return 0, 0, errors.Errorf("invalid time of day %q, expected HH:MM", value)
	}

	return parsed.Hour(), parsed.Minute(), nil
}

// Validate checks a schedule for an allowed weekday set and a well-formed
// send time.
func Validate(s entity.Schedule) error {
	if len(s.Weekdays) == 0 {
		return ErrEmptySchedule
	}
	for _, day := range s.Weekdays {
		if day < 0 || day > 6 {
			return errors.New(fmt.Sprintf("weekday %d out of range 0..6", day))
		}
	}
	if _, _, err := ParseTimeOfDay(s.Time); err != nil {
		return err
	}

	return nil
}

// NextSendTime returns the first instant at or after now that the schedule
// allows. Today qualifies when its weekday is in the set and now's time of
// day has not yet passed the send time (boundary inclusive); otherwise the
// next allowed weekday within the following seven days is used.
func NextSendTime(s entity.Schedule, now time.Time) (time.Time, error) {
	if len(s.Weekdays) == 0 {
		return time.Time{}, ErrEmptySchedule
	}

	hour, minute, err := ParseTimeOfDay(s.Time)
	if err != nil {
		return time.Time{}, err
	}

	todayAt := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if slices.Contains(s.Weekdays, WeekdayIndex(now.Weekday())) && !now.After(todayAt) {
		return todayAt, nil
	}

	for offset := 1; offset <= 7; offset++ {
		candidate := todayAt.AddDate(0, 0, offset)
		if slices.Contains(s.Weekdays, WeekdayIndex(candidate.Weekday())) {
			return candidate, nil
		}
	}

	// Unreachable with a non-empty weekday set.
	return time.Time{}, ErrEmptySchedule
}

// IsDue reports whether a scheduled send is allowed right now. Eligibility is
// anchored to the last successful send: a config that never sent is due
// immediately, afterwards the next send time is computed from LastSent so a
// missed slot is made up instead of silently skipped.
func IsDue(cfg *entity.NotificationConfig, now time.Time) (bool, error) {
	if err := Validate(cfg.Schedule); err != nil {
		return false, err
	}
	if cfg.LastSent == nil {
		return true, nil
	}

	// Anchor one minute past the last send so a send at exactly HH:MM does
	// not leave the same slot due again.
	next, err := NextSendTime(cfg.Schedule, cfg.LastSent.Add(time.Minute))
	if err != nil {
		return false, err
	}

	return !now.Before(next), nil
}
