// Package schedule computes the weekly contest calendar and contest status.
//
// All arithmetic runs against a fixed UTC+5:30 offset so derived dates and
// statuses do not depend on the host time zone.
package schedule

import (
	"time"
)

// Fixed contest slot parameters.
const (
	Weekday         = time.Sunday
	StartHour       = 20
	DurationMinutes = 70
	StartTime       = "20:00"
	DateLayout      = "2006-01-02"

	startMinute       = StartHour * 60
	endMinute         = startMinute + DurationMinutes
	zoneOffsetSeconds = 5*3600 + 30*60
)

// Zone is the fixed civil offset used for every date computation.
var Zone = time.FixedZone("IST", zoneOffsetSeconds)

// Status is a contest lifecycle state derived from the clock.
type Status string

// Contest lifecycle states.
const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Clock abstracts "now" so schedules are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.T }

// DateString formats t as YYYY-MM-DD in the contest zone.
func DateString(t time.Time) string {
	return t.In(Zone).Format(DateLayout)
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// LastSlotDate returns the date of the most recent contest weekday on or
// before now.
func LastSlotDate(now time.Time) string {
	local := now.In(Zone)
	back := (int(local.Weekday()) - int(Weekday) + 7) % 7
	return local.AddDate(0, 0, -back).Format(DateLayout)
}

// NextSlotDate returns the date of the next contest slot. When now falls on
// the contest weekday it returns today until the window has fully closed,
// then rolls forward a week so an already-finished contest is never offered
// as next.
func NextSlotDate(now time.Time) string {
	local := now.In(Zone)
	if local.Weekday() == Weekday {
		if minutesOfDay(local) >= endMinute {
			return local.AddDate(0, 0, 7).Format(DateLayout)
		}
		return local.Format(DateLayout)
	}
	ahead := (int(Weekday) - int(local.Weekday()) + 7) % 7
	return local.AddDate(0, 0, ahead).Format(DateLayout)
}

// ShiftWeeks moves a slot date by whole weeks. The date must be in
// DateLayout form; an unparsable date is returned unchanged.
func ShiftWeeks(dateStr string, weeks int) string {
	t, err := time.ParseInLocation(DateLayout, dateStr, Zone)
	if err != nil {
		return dateStr
	}
	return t.AddDate(0, 0, weeks*7).Format(DateLayout)
}

// ContestStatus derives a contest's lifecycle state from its date and now.
// Dates sort lexicographically, so string comparison decides past/future;
// on the contest day the window [start, start+duration) decides live.
func ContestStatus(dateStr string, now time.Time) Status {
	local := now.In(Zone)
	today := local.Format(DateLayout)

	switch {
	case dateStr < today:
		return StatusCompleted
	case dateStr > today:
		return StatusUpcoming
	}

	m := minutesOfDay(local)
	switch {
	case m < startMinute:
		return StatusUpcoming
	case m < endMinute:
		return StatusLive
	default:
		return StatusCompleted
	}
}
