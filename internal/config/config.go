// Package config loads the tool's configuration: host, calendar and
// allocation plans from ~/.timepunch/config.json, credentials from the
// environment (with .env support).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Plans maps issue keys to hours to log, one plan per day kind.
type Plans struct {
	WorkingDay map[string]float64 `json:"workingDay"`
	OffDay     map[string]float64 `json:"offDay"`
}

// Config is the explicit configuration object passed into each component.
type Config struct {
	// Host is the tracker's REST base URL, e.g.
	// "https://yourcompany.atlassian.net/rest/api/3".
	Host string `json:"host"`
	// CalendarID identifies the off-day calendar on the events endpoint.
	CalendarID string `json:"calendarId"`
	Plans      Plans  `json:"plans"`

	// Credentials come from the environment, never from the config file.
	Username string `json:"-"`
	APIToken string `json:"-"`
}

// Dir returns the global timepunch config directory.
func Dir(homeDir string) string {
	return filepath.Join(homeDir, ".timepunch")
}

// Path returns the path to config.json.
func Path(homeDir string) string {
	return filepath.Join(Dir(homeDir), "config.json")
}

// LedgerPath returns the path to the submitted-dates ledger file.
func LedgerPath(homeDir string) string {
	return filepath.Join(Dir(homeDir), "contributions.json")
}

// HistoryPath returns the path to the submission history database.
func HistoryPath(homeDir string) string {
	return filepath.Join(Dir(homeDir), "history.db")
}

// Load reads config.json and overlays credentials from the environment.
// A .env file in the working directory is honored but never overrides
// variables already set.
func Load(homeDir string) (*Config, error) {
	data, err := os.ReadFile(Path(homeDir))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no config file at %s (see README for the expected format)", Path(homeDir))
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", Path(homeDir), err)
	}

	_ = godotenv.Load()

	cfg.Username = os.Getenv("JIRA_USERNAME")
	cfg.APIToken = os.Getenv("JIRA_API_TOKEN")
	if host := os.Getenv("JIRA_HOST"); host != "" {
		cfg.Host = host
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Write persists the file-backed portion of the config, creating the
// directory if needed.
func Write(homeDir string, cfg *Config) error {
	if err := os.MkdirAll(Dir(homeDir), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(homeDir), data, 0644)
}

func (c *Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("config: host is not set")
	}
	if c.Username == "" {
		return fmt.Errorf("config: JIRA_USERNAME is not set")
	}
	if c.APIToken == "" {
		return fmt.Errorf("config: JIRA_API_TOKEN is not set")
	}
	if len(c.Plans.WorkingDay) == 0 {
		return fmt.Errorf("config: plans.workingDay is empty")
	}
	for issue, hours := range c.Plans.WorkingDay {
		if hours < 0 {
			return fmt.Errorf("config: negative hours for issue %s in plans.workingDay", issue)
		}
	}
	for issue, hours := range c.Plans.OffDay {
		if hours < 0 {
			return fmt.Errorf("config: negative hours for issue %s in plans.offDay", issue)
		}
	}
	return nil
}
