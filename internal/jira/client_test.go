package jira

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		BaseURL:  srv.URL,
		Username: "me@example.com",
		Token:    "secret",
		HTTP:     srv.Client(),
	}
}

func TestMyself(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/myself", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "me@example.com", user)
		assert.Equal(t, "secret", pass)

		_, _ = w.Write([]byte(`{"accountId": "abc123", "displayName": "Me"}`))
	}))
	defer srv.Close()

	id, err := newTestClient(srv).Myself()
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
}

func TestMyselfErrorSurfacesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errorMessages": ["Invalid token"]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Myself()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "Invalid token")
}

func TestMyselfMissingAccountID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Myself()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no accountId")
}

func TestEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendar/team-cal/events", r.URL.Path)
		assert.Equal(t, "2025-06-16T00:00:00Z", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2025-06-21T00:00:00Z", r.URL.Query().Get("endDate"))

		_, _ = w.Write([]byte(`[
			{"start": "2025-06-18T00:00:00.000Z", "end": "2025-06-18T23:59:00.000Z",
			 "title": "PTO", "invitees": [{"id": "ari:cloud:identity::user/abc123"}]}
		]`))
	}))
	defer srv.Close()

	start := time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)

	events, err := newTestClient(srv).Events("team-cal", start, end)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2025-06-18T00:00:00.000Z", events[0].Start)
	assert.Equal(t, "PTO", events[0].Title)
	require.Len(t, events[0].Invitees, 1)
	assert.Equal(t, "ari:cloud:identity::user/abc123", events[0].Invitees[0].ID)
}

func TestEventsNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("calendar unavailable"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Events("team-cal", time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "calendar unavailable")
}

func TestAddWorklog(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/issue/PROJ-1/worklog", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := newTestClient(srv).AddWorklog("PROJ-1", "2025-06-18T09:30:00.000+0000", 21600)
	require.NoError(t, err)

	assert.Equal(t, float64(21600), got["timeSpentSeconds"])
	assert.Equal(t, "2025-06-18T09:30:00.000+0000", got["started"])
}

func TestAddWorklogNon201(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Even a 200 is not a successful worklog creation.
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"warning": "nothing created"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv).AddWorklog("PROJ-1", "2025-06-18T09:30:00.000+0000", 3600)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROJ-1")
	assert.Contains(t, err.Error(), "status 200")
}
