package cli

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/mjoly/timepunch/internal/config"
	"github.com/mjoly/timepunch/internal/daterange"
	"github.com/mjoly/timepunch/internal/day"
	"github.com/mjoly/timepunch/internal/history"
	"github.com/mjoly/timepunch/internal/jira"
	"github.com/mjoly/timepunch/internal/ledger"
	"github.com/mjoly/timepunch/internal/offdays"
	"github.com/mjoly/timepunch/internal/submit"
)

var fillCmd = LeafCommand{
	Use:   "fill",
	Short: "Submit worklogs for the current week or month",
	BoolFlags: []BoolFlag{
		{Name: "month", Usage: "cover every weekday of the current month instead of this week"},
		{Name: "force", Usage: "resubmit days already recorded in the ledger"},
		{Name: "yes", Usage: "skip the confirmation prompt"},
		{Name: "dry-run", Usage: "show what would be submitted without contacting the tracker"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		monthFlag, _ := cmd.Flags().GetBool("month")
		forceFlag, _ := cmd.Flags().GetBool("force")
		yesFlag, _ := cmd.Flags().GetBool("yes")
		dryRunFlag, _ := cmd.Flags().GetBool("dry-run")

		cfg, err := config.Load(homeDir)
		if err != nil {
			return err
		}

		confirm := NewConfirmFunc()
		if yesFlag {
			confirm = AlwaysYes()
		}

		return runFill(
			cmd,
			cfg,
			jira.NewClient(cfg),
			ledger.New(config.LedgerPath(homeDir)),
			history.NewStore(config.HistoryPath(homeDir)),
			monthFlag, forceFlag, dryRunFlag,
			confirm,
			time.Now,
		)
	},
}.Build()

func runFill(
	cmd *cobra.Command,
	cfg *config.Config,
	api jira.API,
	led *ledger.Ledger,
	hist *history.Store,
	monthMode, force, dryRun bool,
	confirm ConfirmFunc,
	nowFn func() time.Time,
) error {
	out := cmd.OutOrStdout()
	now := nowFn()

	// 1. Candidate dates.
	var dates []time.Time
	var err error
	if monthMode {
		dates, err = daterange.MonthWeekdays(now)
		if err != nil {
			return err
		}
	} else {
		dates = daterange.Week(now)
	}

	// 2. Off days. Any failure here aborts the run: submitting working-day
	// hours on an unknown off day would over-report.
	oracle := &offdays.Oracle{API: api, CalendarID: cfg.CalendarID}
	intervals, err := oracle.Fetch(dates)
	if err != nil {
		return err
	}

	// 3. Classify against the ledger.
	days := day.Classify(dates, led.Load(), intervals)

	// 4. Drop already-recorded days unless forced.
	if !force {
		kept := days[:0]
		for _, d := range days {
			if !d.AlreadyLogged {
				kept = append(kept, d)
			}
		}
		days = kept
	}

	// 5. Nothing left is a clean exit, not an error.
	if len(days) == 0 {
		_, _ = fmt.Fprintln(out, Info("nothing to submit: every candidate day is already recorded"))
		return nil
	}

	// 6. Preview and confirmation.
	_, _ = fmt.Fprintln(out, "This will submit worklogs for:")
	for _, d := range days {
		line := fmt.Sprintf("  %s (%s)", d.Rep, d.Date.Format("Mon"))
		if d.DayOff {
			line += " " + Warning("[day off]")
		}
		if d.AlreadyLogged {
			line += " " + Silent("[already recorded]")
		}
		_, _ = fmt.Fprintln(out, line)
	}
	if dryRun {
		_, _ = fmt.Fprintln(out, Silent("(dry run: nothing will be sent or recorded)"))
	}

	ok, err := confirm(fmt.Sprintf("Submit worklogs for %d day(s)?", len(days)))
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(out, Info("aborted, nothing submitted"))
		return nil
	}

	// 7. Submit day by day, accumulating successes for the ledger.
	sub := &submit.Submitter{
		API:        api,
		WorkingDay: submit.Plan(cfg.Plans.WorkingDay),
		OffDay:     submit.Plan(cfg.Plans.OffDay),
		Out:        out,
	}

	var recorded []string
	var submitted []day.Day
	for _, d := range days {
		if err := sub.SubmitDay(d, dryRun); err != nil {
			// Persist what already went through before surfacing the
			// failure, so the rerun skips those days.
			if !dryRun && len(recorded) > 0 {
				if lerr := led.Record(recorded); lerr != nil {
					return fmt.Errorf("%w (and recording the ledger failed: %v)", err, lerr)
				}
			}
			return err
		}
		recorded = append(recorded, d.Rep)
		submitted = append(submitted, d)
	}

	// 8. Persist ledger and history. Dry runs leave both untouched.
	if dryRun {
		_, _ = fmt.Fprintln(out, Info(fmt.Sprintf("dry run complete: %d day(s) would be submitted", len(days))))
		return nil
	}

	if err := led.Record(recorded); err != nil {
		return fmt.Errorf("record ledger: %w", err)
	}
	for _, d := range submitted {
		plan := sub.PlanFor(d)
		if err := hist.Append(history.Record{
			Time:    now.UTC(),
			Date:    d.Rep,
			DayOff:  d.DayOff,
			Seconds: planSeconds(plan),
			Issues:  planIssues(plan),
		}); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
	}

	_, _ = fmt.Fprintf(out, "%s\n", Primary(fmt.Sprintf("recorded %d day(s) in the ledger", len(recorded))))
	return nil
}

// planSeconds sums the submitted seconds of a plan's non-zero allocations.
func planSeconds(plan submit.Plan) int {
	total := 0
	for _, hours := range plan {
		if hours != 0 {
			total += submit.Seconds(hours)
		}
	}
	return total
}

// planIssues lists a plan's non-zero issues in a stable order.
func planIssues(plan submit.Plan) []string {
	issues := make([]string, 0, len(plan))
	for issue, hours := range plan {
		if hours != 0 {
			issues = append(issues, issue)
		}
	}
	sort.Strings(issues)
	return issues
}
