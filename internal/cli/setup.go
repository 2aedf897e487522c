package cli

import (
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// defaultCronSpec runs every Friday at 18:30, after the work week is over.
const defaultCronSpec = "30 18 * * 5"

var setupCmd = LeafCommand{
	Use:   "setup",
	Short: "Print a crontab entry for scheduled runs",
	StrFlags: []StringFlag{
		{Name: "cron", Usage: "cron schedule for the entry", Default: defaultCronSpec},
	},
	BoolFlags: []BoolFlag{
		{Name: "month", Usage: "schedule a month-mode run"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cronFlag, _ := cmd.Flags().GetString("cron")
		monthFlag, _ := cmd.Flags().GetBool("month")

		binPath, err := os.Executable()
		if err != nil {
			return err
		}
		return runSetup(cmd, cronFlag, binPath, monthFlag)
	},
}.Build()

func runSetup(cmd *cobra.Command, cronSpec, binPath string, monthMode bool) error {
	if _, err := cron.ParseStandard(cronSpec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", cronSpec, err)
	}

	entry := fmt.Sprintf("%s %s fill --yes", cronSpec, binPath)
	if monthMode {
		entry += " --month"
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, Silent("# add this line to your crontab (crontab -e):"))
	_, _ = fmt.Fprintln(out, entry)
	return nil
}
