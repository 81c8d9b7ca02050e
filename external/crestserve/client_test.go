package crestserve

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"pitchside/internal/platform/logging"
)

const eventsPayload = `{
	"events": [
		{
			"strHomeTeam": "Arsenal",
			"strAwayTeam": "Chelsea",
			"strHomeTeamBadge": "https://badges.example/ars.png",
			"strAwayTeamBadge": "https://badges.example/che.png",
			"strLeague": "English Premier League"
		},
		{
			"strHomeTeam": "Qarabag",
			"strAwayTeam": "Zira",
			"strLeague": "Premyer Liqa"
		},
		{
			"strHomeTeam": "",
			"strAwayTeam": ""
		}
	]
}`

func TestClient_CandidatesByDate(t *testing.T) {
	t.Parallel()

	var gotQuery atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.RawQuery)
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(eventsPayload))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "media-key",
		Logger:  logging.NewNop(),
	})

	candidates, err := client.CandidatesByDate(t.Context(), "2026-03-14")
	if err != nil {
		t.Fatalf("CandidatesByDate failed: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected nameless rows to be dropped, got %d candidates", len(candidates))
	}
	first := candidates[0]
	if first.HomeTeamName != "Arsenal" || first.HomeLogoURL != "https://badges.example/ars.png" {
		t.Fatalf("unexpected first candidate: %+v", first)
	}
	if !first.HasMedia() {
		t.Fatal("badge-bearing candidate must report media")
	}
	if candidates[1].HasMedia() {
		t.Fatal("badge-less candidate must not report media")
	}

	query, _ := gotQuery.Load().(string)
	if query != "d=2026-03-14&key=media-key" {
		t.Fatalf("unexpected query string: %s", query)
	}
}

func TestClient_CandidatesByDate_ErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})

	if _, err := client.CandidatesByDate(t.Context(), "2026-03-14"); err == nil {
		t.Fatal("expected error on 502")
	}
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	got := redactURL("https://host/api/v1/events?d=2026-03-14&key=abc123")
	if got != "https://host/api/v1/events?d=2026-03-14&key=REDACTED" {
		t.Fatalf("url not redacted: %s", got)
	}
}
