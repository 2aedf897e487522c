package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mjoly/timepunch/internal/config"
	"github.com/mjoly/timepunch/internal/ledger"
)

var ledgerCmd = LeafCommand{
	Use:   "ledger",
	Short: "List the dates already recorded as submitted",
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		return runLedger(cmd, ledger.New(config.LedgerPath(homeDir)))
	},
}.Build()

func runLedger(cmd *cobra.Command, led *ledger.Ledger) error {
	out := cmd.OutOrStdout()

	dates := led.Load()
	if len(dates) == 0 {
		_, _ = fmt.Fprintln(out, Silent("(ledger is empty)"))
		return nil
	}

	for _, d := range dates {
		_, _ = fmt.Fprintln(out, d)
	}
	return nil
}
