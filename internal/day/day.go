// Package day turns candidate dates, ledger entries and off-day intervals
// into per-day decision records.
package day

import (
	"time"

	"github.com/mjoly/timepunch/internal/daterange"
	"github.com/mjoly/timepunch/internal/offdays"
)

// Day is the classification record for one candidate date. Built once per
// run and never mutated.
type Day struct {
	Date time.Time
	// Rep is the canonical "YYYY-MM-DD" form, used for ledger entries and
	// worklog timestamps.
	Rep           string
	AlreadyLogged bool
	DayOff        bool
}

// Classify builds one Day per candidate date, in input order. It is pure:
// no network, no disk. An empty interval set means no day is off.
func Classify(dates []time.Time, ledgerEntries []string, intervals []offdays.Interval) []Day {
	logged := make(map[string]bool, len(ledgerEntries))
	for _, rep := range ledgerEntries {
		logged[rep] = true
	}

	days := make([]Day, 0, len(dates))
	for _, d := range dates {
		rep := daterange.Rep(d)
		days = append(days, Day{
			Date:          d,
			Rep:           rep,
			AlreadyLogged: logged[rep],
			DayOff:        isDayOff(d, intervals),
		})
	}
	return days
}

func isDayOff(d time.Time, intervals []offdays.Interval) bool {
	for _, iv := range intervals {
		if iv.Contains(d) {
			return true
		}
	}
	return false
}
