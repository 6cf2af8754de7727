package schedule_test

import (
	"testing"
	"time"

	"github.com/echolearn/arena/internal/domain/schedule"
	. "github.com/smartystreets/goconvey/convey"
)

// at builds an instant from local wall-clock values in the contest zone.
func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, schedule.Zone)
}

func TestContestStatus(t *testing.T) {
	Convey("Given a contest dated Sunday 2026-08-30", t, func() {
		const date = "2026-08-30"

		Convey("A later day maps to completed", func() {
			So(schedule.ContestStatus(date, at(2026, 8, 31, 9, 0)), ShouldEqual, schedule.StatusCompleted)
		})

		Convey("An earlier day maps to upcoming", func() {
			So(schedule.ContestStatus(date, at(2026, 8, 29, 23, 59)), ShouldEqual, schedule.StatusUpcoming)
		})

		Convey("On the contest day", func() {
			Convey("Before 20:00 it is upcoming", func() {
				So(schedule.ContestStatus(date, at(2026, 8, 30, 19, 59)), ShouldEqual, schedule.StatusUpcoming)
			})
			Convey("At 20:00 it is live", func() {
				So(schedule.ContestStatus(date, at(2026, 8, 30, 20, 0)), ShouldEqual, schedule.StatusLive)
			})
			Convey("At 21:09 it is still live", func() {
				So(schedule.ContestStatus(date, at(2026, 8, 30, 21, 9)), ShouldEqual, schedule.StatusLive)
			})
			Convey("At 21:10 the window has closed", func() {
				So(schedule.ContestStatus(date, at(2026, 8, 30, 21, 10)), ShouldEqual, schedule.StatusCompleted)
			})
		})

		Convey("The derivation is zone-fixed, not host-local", func() {
			// 14:30 UTC == 20:00 in the contest zone.
			utc := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
			So(schedule.ContestStatus(date, utc), ShouldEqual, schedule.StatusLive)
		})
	})
}

func TestLastSlotDate(t *testing.T) {
	Convey("Given LastSlotDate", t, func() {
		Convey("A Wednesday resolves to the previous Sunday", func() {
			So(schedule.LastSlotDate(at(2026, 9, 2, 12, 0)), ShouldEqual, "2026-08-30")
		})

		Convey("A Sunday resolves to itself", func() {
			So(schedule.LastSlotDate(at(2026, 8, 30, 8, 0)), ShouldEqual, "2026-08-30")
		})

		Convey("A Monday resolves to the day before", func() {
			So(schedule.LastSlotDate(at(2026, 8, 31, 0, 1)), ShouldEqual, "2026-08-30")
		})
	})
}

func TestNextSlotDate(t *testing.T) {
	Convey("Given NextSlotDate", t, func() {
		Convey("A weekday resolves to the coming Sunday", func() {
			So(schedule.NextSlotDate(at(2026, 9, 2, 12, 0)), ShouldEqual, "2026-09-06")
		})

		Convey("On Sunday before the window it resolves to today", func() {
			So(schedule.NextSlotDate(at(2026, 8, 30, 10, 0)), ShouldEqual, "2026-08-30")
		})

		Convey("On Sunday during the window it still resolves to today", func() {
			So(schedule.NextSlotDate(at(2026, 8, 30, 20, 30)), ShouldEqual, "2026-08-30")
		})

		Convey("On Sunday after the window closes it rolls a week forward", func() {
			So(schedule.NextSlotDate(at(2026, 8, 30, 21, 10)), ShouldEqual, "2026-09-06")
		})
	})
}

func TestShiftWeeks(t *testing.T) {
	Convey("Given ShiftWeeks", t, func() {
		Convey("It moves a slot by whole weeks", func() {
			So(schedule.ShiftWeeks("2026-08-30", -1), ShouldEqual, "2026-08-23")
			So(schedule.ShiftWeeks("2026-08-30", 2), ShouldEqual, "2026-09-13")
		})

		Convey("It crosses month boundaries", func() {
			So(schedule.ShiftWeeks("2026-08-30", 1), ShouldEqual, "2026-09-06")
		})

		Convey("An unparsable date passes through", func() {
			So(schedule.ShiftWeeks("not-a-date", 1), ShouldEqual, "not-a-date")
		})
	})
}

func TestClocks(t *testing.T) {
	Convey("Given the clock implementations", t, func() {
		Convey("FixedClock returns its instant", func() {
			instant := at(2026, 8, 30, 20, 0)
			So(schedule.FixedClock{T: instant}.Now(), ShouldEqual, instant)
		})

		Convey("SystemClock returns a recent instant", func() {
			So(time.Since(schedule.SystemClock{}.Now()), ShouldBeLessThan, time.Minute)
		})
	})
}
