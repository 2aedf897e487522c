package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjoly/timepunch/internal/ledger"
)

func execLedger(t *testing.T, led *ledger.Ledger) string {
	t.Helper()
	stdout := new(bytes.Buffer)
	cmd := ledgerCmd
	cmd.SetOut(stdout)

	require.NoError(t, runLedger(cmd, led))
	return stdout.String()
}

func TestLedgerEmpty(t *testing.T) {
	led := ledger.New(filepath.Join(t.TempDir(), "contributions.json"))

	stdout := execLedger(t, led)
	assert.Contains(t, stdout, "ledger is empty")
}

func TestLedgerListsDates(t *testing.T) {
	led := ledger.New(filepath.Join(t.TempDir(), "contributions.json"))
	require.NoError(t, led.Record([]string{"2025-06-16", "2025-06-17"}))

	stdout := execLedger(t, led)
	assert.Contains(t, stdout, "2025-06-16\n2025-06-17\n")
}
