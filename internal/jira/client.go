// Package jira is a narrow REST client for the three calls this tool makes:
// identity resolution, off-day calendar events and worklog submission.
package jira

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mjoly/timepunch/internal/config"
)

// Event is one raw entry from the off-day calendar.
type Event struct {
	Start    string    `json:"start"`
	End      string    `json:"end"`
	Title    string    `json:"title"`
	Invitees []Invitee `json:"invitees"`
}

// Invitee identifies an event owner. ID is URI-shaped
// (e.g. "ari:cloud:identity::user/abc123").
type Invitee struct {
	ID string `json:"id"`
}

// API is the surface the submission engine needs from the tracker. It exists
// so the engine can run against a fake in tests.
type API interface {
	// Myself resolves the current authenticated user's stable account id.
	Myself() (string, error)
	// Events returns all users' off-day events overlapping the half-open
	// window [start, end) on the given calendar.
	Events(calendarID string, start, end time.Time) ([]Event, error)
	// AddWorklog submits one worklog entry. Anything but a 201 is an error.
	AddWorklog(issue, started string, seconds int) error
}

// Client talks to the tracker over HTTP with basic auth.
type Client struct {
	BaseURL  string
	Username string
	Token    string
	HTTP     *http.Client
}

// NewClient builds a Client from the loaded configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL:  strings.TrimSuffix(cfg.Host, "/"),
		Username: cfg.Username,
		Token:    cfg.APIToken,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Myself calls the "myself" endpoint and returns the account id.
func (c *Client) Myself() (string, error) {
	body, err := c.do(http.MethodGet, c.BaseURL+"/myself", nil, http.StatusOK)
	if err != nil {
		return "", fmt.Errorf("resolve identity: %w", err)
	}

	var myself struct {
		AccountID string `json:"accountId"`
	}
	if err := json.Unmarshal(body, &myself); err != nil {
		return "", fmt.Errorf("resolve identity: %w", err)
	}
	if myself.AccountID == "" {
		return "", fmt.Errorf("resolve identity: response has no accountId")
	}
	return myself.AccountID, nil
}

// Events queries the calendar events endpoint over [start, end).
func (c *Client) Events(calendarID string, start, end time.Time) ([]Event, error) {
	q := url.Values{}
	q.Set("startDate", start.Format("2006-01-02T15:04:05Z"))
	q.Set("endDate", end.Format("2006-01-02T15:04:05Z"))
	endpoint := fmt.Sprintf("%s/calendar/%s/events?%s", c.BaseURL, url.PathEscape(calendarID), q.Encode())

	body, err := c.do(http.MethodGet, endpoint, nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("fetch off-day events: %w", err)
	}

	var events []Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("fetch off-day events: %w", err)
	}
	return events, nil
}

// AddWorklog posts one worklog entry for an issue. started must be the full
// "YYYY-MM-DDT09:30:00.000+0000" timestamp.
func (c *Client) AddWorklog(issue, started string, seconds int) error {
	payload, err := json.Marshal(map[string]any{
		"timeSpentSeconds": seconds,
		"started":          started,
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/issue/%s/worklog", c.BaseURL, url.PathEscape(issue))
	if _, err := c.do(http.MethodPost, endpoint, payload, http.StatusCreated); err != nil {
		return fmt.Errorf("submit worklog for %s: %w", issue, err)
	}
	return nil
}

// do performs one request and returns the response body. A status other than
// want is an error carrying the remote service's raw payload.
func (c *Client) do(method, endpoint string, payload []byte, want int) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, endpoint, reqBody)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.Username, c.Token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logrus.WithFields(logrus.Fields{"method": method, "url": endpoint}).Debug("jira request")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"status": resp.StatusCode, "bytes": len(body)}).Debug("jira response")

	if resp.StatusCode != want {
		return nil, fmt.Errorf("%s %s: status %d: %s", method, endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
