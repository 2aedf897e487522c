package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mjoly/timepunch/internal/config"
	"github.com/mjoly/timepunch/internal/history"
)

var historyCmd = LeafCommand{
	Use:   "history",
	Short: "List recorded submissions, newest first",
	StrFlags: []StringFlag{
		{Name: "limit", Shorthand: "n", Usage: "maximum number of entries to show", Default: "20"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		limitFlag, _ := cmd.Flags().GetString("limit")
		limit, err := strconv.Atoi(limitFlag)
		if err != nil {
			return fmt.Errorf("invalid --limit value %q", limitFlag)
		}

		return runHistory(cmd, history.NewStore(config.HistoryPath(homeDir)), limit)
	},
}.Build()

func runHistory(cmd *cobra.Command, store *history.Store, limit int) error {
	records, err := store.List(limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		_, _ = fmt.Fprintln(out, Silent("(no submissions recorded)"))
		return nil
	}

	for _, rec := range records {
		line := fmt.Sprintf("%s  %s  %s",
			Primary(rec.Date),
			formatSeconds(rec.Seconds),
			strings.Join(rec.Issues, ", "),
		)
		if rec.DayOff {
			line += " " + Warning("[day off]")
		}
		_, _ = fmt.Fprintln(out, line)
	}
	return nil
}

// formatSeconds renders worklog seconds as hours, e.g. "7.5h".
func formatSeconds(seconds int) string {
	return strconv.FormatFloat(float64(seconds)/3600, 'f', -1, 64) + "h"
}
