package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"pitchside/internal/domain/fixture"
	"pitchside/internal/platform/cache"
	"pitchside/internal/platform/logging"
	"pitchside/internal/usecase"
)

type stubStats struct {
	fixtures []fixture.Fixture
}

func (s stubStats) FixturesByDate(context.Context, string) ([]fixture.Fixture, error) {
	return s.fixtures, nil
}

type stubMedia struct {
	candidates []fixture.MediaCandidate
}

func (s stubMedia) CandidatesByDate(context.Context, string) ([]fixture.MediaCandidate, error) {
	return s.candidates, nil
}

func newTestRouter(t *testing.T, internalJobToken string) http.Handler {
	t.Helper()

	stats := stubStats{fixtures: []fixture.Fixture{
		{HomeName: "Arsenal", AwayName: "Chelsea", Competition: "Premier League", Country: "England", KickoffUnix: time.Now().Unix() + 7200, Status: "NS"},
	}}
	media := stubMedia{candidates: []fixture.MediaCandidate{
		{HomeTeamName: "Arsenal", AwayTeamName: "Chelsea", HomeLogoURL: "https://badges.example/ars.png", AwayLogoURL: "https://badges.example/che.png", LeagueName: "English Premier League"},
	}}

	store := cache.NewStore(map[cache.Kind]time.Duration{
		cache.KindPrimaryFixtures: time.Minute,
		cache.KindMediaCandidates: time.Minute,
	})
	service := usecase.NewEnrichmentService(stats, media, nil, nil, store, logging.NewNop())
	handler := NewHandler(service, logging.NewNop())

	return NewRouter(handler, logging.NewNop(), false, nil, internalJobToken)
}

func TestHandler_ListFixturesByDate(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/v1/fixtures?date=2026-03-14", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data []enrichedFixtureDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if len(body.Data) != 1 {
		t.Fatalf("expected 1 fixture, got %d", len(body.Data))
	}
	row := body.Data[0]
	if row.HomeName != "Arsenal" || row.HomeLogoURL != "https://badges.example/ars.png" {
		t.Fatalf("unexpected fixture row: %+v", row)
	}
	if row.BadgeSource != fixture.SourceMatched {
		t.Fatalf("expected matched badge source, got %q", row.BadgeSource)
	}
	if row.Lifecycle != string(fixture.StateUpcoming) {
		t.Fatalf("expected upcoming lifecycle, got %q", row.Lifecycle)
	}
}

func TestHandler_ListFixturesByDate_RequiresValidDate(t *testing.T) {
	router := newTestRouter(t, "")

	for _, target := range []string{"/v1/fixtures", "/v1/fixtures?date=14-03-2026"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", target, rec.Code)
		}
	}
}

func TestHandler_ListLiveFixtures(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/v1/fixtures/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data []enrichedFixtureDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if len(body.Data) != 0 {
		t.Fatalf("upcoming-only day must have no live fixtures, got %d", len(body.Data))
	}
}

func TestHandler_RunRefreshJob_RequiresToken(t *testing.T) {
	router := newTestRouter(t, "job-secret")

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh", strings.NewReader(`{"dates":["2026-03-14"]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected status 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh", strings.NewReader(`{"dates":["2026-03-14"]}`))
	req.Header.Set("X-Internal-Job-Token", "wrong")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: expected status 401, got %d", rec.Code)
	}
}

func TestHandler_RunRefreshJob(t *testing.T) {
	router := newTestRouter(t, "job-secret")

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh", strings.NewReader(`{"dates":["2026-03-14","2026-03-15"],"workers":2}`))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data usecase.RefreshResult `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Data.RequestedCount != 2 || body.Data.SuccessCount != 2 {
		t.Fatalf("unexpected refresh result: %+v", body.Data)
	}
}

func TestHandler_RunRefreshJob_RejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t, "job-secret")

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh", strings.NewReader(`{"dates":["2026-03-14"],"bogus":true}`))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}
