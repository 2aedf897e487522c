// Package offdays resolves the current user's approved absence intervals
// from the remote off-day calendar.
package offdays

import (
	"fmt"
	"strings"
	"time"

	"github.com/mjoly/timepunch/internal/jira"
)

// Interval is one off-day entry: an inclusive [Start, End] range of calendar
// days belonging to one user.
type Interval struct {
	Start  time.Time
	End    time.Time
	UserID string
	Title  string
}

// Contains reports whether the calendar day d falls within the interval's
// inclusive bounds.
func (iv Interval) Contains(d time.Time) bool {
	return !d.Before(iv.Start) && !d.After(iv.End)
}

// Oracle fetches and normalizes off-day events for the current user.
type Oracle struct {
	API        jira.API
	CalendarID string
}

// Fetch returns the current user's off-day intervals overlapping the given
// candidate dates. Both the identity call and the events call are fatal on
// failure: treating unknown off days as working days would over-report hours.
func (o *Oracle) Fetch(dates []time.Time) ([]Interval, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	accountID, err := o.API.Myself()
	if err != nil {
		return nil, err
	}

	// Events endpoint takes a half-open [first, last+1d) window.
	events, err := o.API.Events(o.CalendarID, dates[0], dates[len(dates)-1].AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	var intervals []Interval
	for _, ev := range events {
		if len(ev.Invitees) == 0 || ownerID(ev.Invitees[0].ID) != accountID {
			continue
		}

		start, err := eventDate(ev.Start)
		if err != nil {
			return nil, fmt.Errorf("off-day event %q: %w", ev.Title, err)
		}
		end, err := eventDate(ev.End)
		if err != nil {
			return nil, fmt.Errorf("off-day event %q: %w", ev.Title, err)
		}

		intervals = append(intervals, Interval{
			Start:  start,
			End:    end,
			UserID: accountID,
			Title:  ev.Title,
		})
	}
	return intervals, nil
}

// ownerID strips the URI prefix from an invitee id, leaving the bare user id.
func ownerID(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// eventDate extracts the calendar day from an ISO date-time string: the first
// 10 characters are the date.
func eventDate(s string) (time.Time, error) {
	if len(s) < 10 {
		return time.Time{}, fmt.Errorf("malformed date-time %q", s)
	}
	d, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed date-time %q: %w", s, err)
	}
	return d, nil
}
