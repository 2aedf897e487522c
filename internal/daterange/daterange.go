package daterange

import (
	"time"

	"github.com/teambition/rrule-go"
)

// Rep returns the canonical "YYYY-MM-DD" form of a date.
func Rep(d time.Time) string {
	return d.Format("2006-01-02")
}

// Week returns Monday through Friday of the ISO week containing ref,
// regardless of which weekday ref falls on.
func Week(ref time.Time) []time.Time {
	monday := truncateToDay(ref).AddDate(0, 0, 1-isoWeekday(ref))
	dates := make([]time.Time, 5)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}

// MonthWeekdays returns every weekday (Mon-Fri) of the month containing ref,
// in calendar order. The month's extent is derived from first-of-month
// boundaries, so December rollover and leap-year February need no special
// casing.
func MonthWeekdays(ref time.Time) ([]time.Time, error) {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, 0).AddDate(0, 0, -1)

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   first,
		Until:     last,
		Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
	})
	if err != nil {
		return nil, err
	}

	dates := r.All()
	for i := range dates {
		dates[i] = truncateToDay(dates[i])
	}
	return dates, nil
}

// isoWeekday returns the ISO weekday number (Monday=1 .. Sunday=7).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
