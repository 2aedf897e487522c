// Package submit applies a day's allocation plan against the tracker.
package submit

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/mjoly/timepunch/internal/day"
	"github.com/mjoly/timepunch/internal/jira"
)

// startedSuffix fixes every worklog's start at 09:30 UTC offset +0000.
const startedSuffix = "T09:30:00.000+0000"

// Plan maps issue keys to hours to log on one day.
type Plan map[string]float64

// Submitter submits worklogs for classified days, choosing between the
// working-day and off-day plans.
type Submitter struct {
	API        jira.API
	WorkingDay Plan
	OffDay     Plan
	Out        io.Writer
}

// PlanFor returns the allocation plan matching the day's classification.
func (s *Submitter) PlanFor(d day.Day) Plan {
	if d.DayOff {
		return s.OffDay
	}
	return s.WorkingDay
}

// SubmitDay logs every non-zero allocation of the day's plan. Zero-hour
// entries are skipped outright. In dry-run mode nothing is sent and every
// pair is reported as successful. A non-success response aborts immediately;
// entries already submitted for the day are not rolled back.
func (s *Submitter) SubmitDay(d day.Day, dryRun bool) error {
	plan := s.PlanFor(d)

	for _, issue := range sortedIssues(plan) {
		hours := plan[issue]
		if hours == 0 {
			continue
		}

		fmt.Fprintf(s.Out, "%s: logging %sh on %s... ", d.Rep, formatHours(hours), issue)

		if dryRun {
			fmt.Fprintln(s.Out, "✅ (dry run)")
			continue
		}

		if err := s.API.AddWorklog(issue, d.Rep+startedSuffix, Seconds(hours)); err != nil {
			fmt.Fprintln(s.Out, "❌")
			return err
		}
		fmt.Fprintln(s.Out, "✅")
	}
	return nil
}

// Seconds converts an hour allocation into whole worklog seconds.
func Seconds(hours float64) int {
	return int(math.Round(hours * 3600))
}

// sortedIssues returns the plan's issue keys in a stable order.
func sortedIssues(plan Plan) []string {
	issues := make([]string, 0, len(plan))
	for issue := range plan {
		issues = append(issues, issue)
	}
	sort.Strings(issues)
	return issues
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
