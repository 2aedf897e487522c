// Package ledger persists the set of dates whose worklogs have already been
// submitted, making reruns idempotent.
package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Ledger reads and writes the submitted-dates file. The file is a flat JSON
// array of "YYYY-MM-DD" strings.
type Ledger struct {
	Path string
}

// New returns a Ledger backed by the given file path.
func New(path string) *Ledger {
	return &Ledger{Path: path}
}

// Load reads the persisted dates. A missing or unreadable file is an empty
// ledger, never an error.
func (l *Ledger) Load() []string {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil
	}

	var dates []string
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil
	}
	return dates
}

// Record merges the given dates into the persisted set and writes it back.
// Duplicates are dropped, keeping the first occurrence, so recording the same
// date twice leaves the file unchanged.
func (l *Ledger) Record(dates []string) error {
	merged := dedupe(append(l.Load(), dates...))

	if dir := filepath.Dir(l.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.Path, data, 0644)
}

// dedupe removes duplicates preserving first-occurrence order.
func dedupe(dates []string) []string {
	seen := make(map[string]bool, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
