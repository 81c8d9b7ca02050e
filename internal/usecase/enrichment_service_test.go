package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"pitchside/internal/domain/fixture"
	"pitchside/internal/platform/cache"
	"pitchside/internal/platform/logging"
)

type statsStub struct {
	calls    atomic.Int32
	fixtures []fixture.Fixture
	err      error
}

func (s *statsStub) FixturesByDate(context.Context, string) ([]fixture.Fixture, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.fixtures, nil
}

type mediaStub struct {
	calls      atomic.Int32
	candidates []fixture.MediaCandidate
	err        error
}

func (m *mediaStub) CandidatesByDate(context.Context, string) ([]fixture.MediaCandidate, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.candidates, nil
}

type snapshotStub struct {
	days     map[string][]fixture.EnrichedFixture
	saveErr  error
	listErr  error
	replaced int
}

func newSnapshotStub() *snapshotStub {
	return &snapshotStub{days: make(map[string][]fixture.EnrichedFixture)}
}

func (s *snapshotStub) ReplaceDay(_ context.Context, date string, items []fixture.EnrichedFixture) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.replaced++
	s.days[date] = append([]fixture.EnrichedFixture(nil), items...)
	return nil
}

func (s *snapshotStub) ListByDate(_ context.Context, date string) ([]fixture.EnrichedFixture, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.days[date], nil
}

func newEnrichmentFixtureStore() *cache.Store {
	return cache.NewStore(map[cache.Kind]time.Duration{
		cache.KindPrimaryFixtures: time.Minute,
		cache.KindMediaCandidates: time.Minute,
	})
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestEnrichmentService_EnrichDate(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	score := 1

	stats := &statsStub{fixtures: []fixture.Fixture{
		{HomeName: "Arsenal", AwayName: "Chelsea", Competition: "Premier League", Country: "England", KickoffUnix: now.Unix() - 1800, Status: "live", HomeScore: &score},
		{HomeName: "Qabala", AwayName: "Sabail", Competition: "Premyer Liqa", Country: "Azerbaijan", KickoffUnix: now.Unix() + 7200, Status: "scheduled"},
	}}
	media := &mediaStub{candidates: []fixture.MediaCandidate{
		{HomeTeamName: "Arsenal", AwayTeamName: "Chelsea", HomeLogoURL: "https://badges.example/ars.png", AwayLogoURL: "https://badges.example/che.png", LeagueName: "English Premier League"},
	}}
	snapshots := newSnapshotStub()

	svc := NewEnrichmentService(stats, media, nil, snapshots, newEnrichmentFixtureStore(), logging.NewNop())
	svc.now = fixedClock(now)

	enriched, err := svc.EnrichDate(t.Context(), "2026-03-14")
	if err != nil {
		t.Fatalf("EnrichDate failed: %v", err)
	}
	if len(enriched) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(enriched))
	}

	first := enriched[0]
	if first.HomeName != "Arsenal" {
		t.Fatalf("provider order not preserved, first fixture is %s", first.HomeName)
	}
	if first.BadgeSource != fixture.SourceMatched || first.HomeLogoURL != "https://badges.example/ars.png" {
		t.Fatalf("expected matched badge on first fixture, got %+v", first)
	}
	if first.Lifecycle != fixture.StateLive {
		t.Fatalf("first fixture lifecycle = %q, want %q", first.Lifecycle, fixture.StateLive)
	}

	second := enriched[1]
	if second.BadgeSource != fixture.SourceFallback {
		t.Fatalf("expected fallback badge on second fixture, got %+v", second)
	}
	if second.Lifecycle != fixture.StateUpcoming {
		t.Fatalf("second fixture lifecycle = %q, want %q", second.Lifecycle, fixture.StateUpcoming)
	}

	if snapshots.replaced != 1 {
		t.Fatalf("expected one snapshot save, got %d", snapshots.replaced)
	}
}

func TestEnrichmentService_EnrichDate_InvalidDate(t *testing.T) {
	svc := NewEnrichmentService(&statsStub{}, &mediaStub{}, nil, nil, newEnrichmentFixtureStore(), logging.NewNop())

	for _, date := range []string{"", "14-03-2026", "2026/03/14", "not-a-date"} {
		if _, err := svc.EnrichDate(t.Context(), date); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("date %q: expected ErrInvalidInput, got %v", date, err)
		}
	}
}

func TestEnrichmentService_EnrichDate_MediaOutageDegrades(t *testing.T) {
	stats := &statsStub{fixtures: []fixture.Fixture{
		{HomeName: "Arsenal", AwayName: "Chelsea", KickoffUnix: 1700000000, Status: "FT"},
	}}
	media := &mediaStub{err: errors.New("boom")}

	svc := NewEnrichmentService(stats, media, nil, nil, newEnrichmentFixtureStore(), logging.NewNop())

	enriched, err := svc.EnrichDate(t.Context(), "2026-03-14")
	if err != nil {
		t.Fatalf("media outage must not fail the request: %v", err)
	}
	if len(enriched) != 1 {
		t.Fatalf("expected 1 fixture, got %d", len(enriched))
	}
	if enriched[0].HomeLogoURL != "" || enriched[0].BadgeSource != fixture.SourceFallback {
		t.Fatalf("expected badge-less fallback, got %+v", enriched[0])
	}
}

func TestEnrichmentService_EnrichDate_SnapshotFallback(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	snapshots := newSnapshotStub()
	snapshots.days["2026-03-14"] = []fixture.EnrichedFixture{
		{
			Fixture:     fixture.Fixture{HomeName: "Arsenal", AwayName: "Chelsea", KickoffUnix: now.Unix() - 10*3600, Status: "live"},
			Lifecycle:   fixture.StateLive,
			HomeLogoURL: "https://badges.example/ars.png",
			BadgeSource: fixture.SourceMatched,
		},
	}

	svc := NewEnrichmentService(&statsStub{err: errors.New("upstream down")}, &mediaStub{}, nil, snapshots, newEnrichmentFixtureStore(), logging.NewNop())
	svc.now = fixedClock(now)

	enriched, err := svc.EnrichDate(t.Context(), "2026-03-14")
	if err != nil {
		t.Fatalf("snapshot fallback failed: %v", err)
	}
	if len(enriched) != 1 || enriched[0].HomeLogoURL != "https://badges.example/ars.png" {
		t.Fatalf("unexpected snapshot payload: %+v", enriched)
	}
}

func TestEnrichmentService_EnrichDate_NoSnapshotMeansUnavailable(t *testing.T) {
	svc := NewEnrichmentService(&statsStub{err: errors.New("upstream down")}, &mediaStub{}, nil, nil, newEnrichmentFixtureStore(), logging.NewNop())

	if _, err := svc.EnrichDate(t.Context(), "2026-03-14"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestEnrichmentService_EnrichDate_CachesProviderPayloads(t *testing.T) {
	stats := &statsStub{fixtures: []fixture.Fixture{{HomeName: "Arsenal", AwayName: "Chelsea", Status: "FT"}}}
	media := &mediaStub{}

	svc := NewEnrichmentService(stats, media, nil, nil, newEnrichmentFixtureStore(), logging.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := svc.EnrichDate(t.Context(), "2026-03-14"); err != nil {
			t.Fatalf("EnrichDate failed: %v", err)
		}
	}

	if got := stats.calls.Load(); got != 1 {
		t.Fatalf("stats provider called %d times, want 1", got)
	}
	if got := media.calls.Load(); got != 1 {
		t.Fatalf("media provider called %d times, want 1", got)
	}
}

func TestEnrichmentService_LiveFixtures(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	score := 2

	stats := &statsStub{fixtures: []fixture.Fixture{
		{HomeName: "Arsenal", AwayName: "Chelsea", KickoffUnix: now.Unix() - 1800, Status: "live"},
		{HomeName: "Everton", AwayName: "Fulham", KickoffUnix: now.Unix() - 100*60, Status: "FT", HomeScore: &score},
		{HomeName: "Qabala", AwayName: "Sabail", KickoffUnix: now.Unix() + 7200, Status: "NS"},
	}}

	svc := NewEnrichmentService(stats, &mediaStub{}, nil, nil, newEnrichmentFixtureStore(), logging.NewNop())
	svc.now = fixedClock(now)

	live, err := svc.LiveFixtures(t.Context(), "")
	if err != nil {
		t.Fatalf("LiveFixtures failed: %v", err)
	}
	if len(live) != 2 {
		t.Fatalf("expected 2 live-equivalent fixtures, got %d", len(live))
	}
	if live[0].HomeName != "Arsenal" || live[1].HomeName != "Everton" {
		t.Fatalf("unexpected live set: %+v", live)
	}

	explicit, err := svc.LiveFixtures(t.Context(), "2026-03-14")
	if err != nil {
		t.Fatalf("LiveFixtures with explicit date failed: %v", err)
	}
	if len(explicit) != len(live) {
		t.Fatalf("explicit date returned %d fixtures, want %d", len(explicit), len(live))
	}
}

func TestEnrichmentService_RefreshDates(t *testing.T) {
	stats := &statsStub{fixtures: []fixture.Fixture{{HomeName: "Arsenal", AwayName: "Chelsea", Status: "FT"}}}
	svc := NewEnrichmentService(stats, &mediaStub{}, nil, nil, newEnrichmentFixtureStore(), logging.NewNop())

	// Warm the cache, then refresh must bust it and hit the provider again.
	if _, err := svc.EnrichDate(t.Context(), "2026-03-14"); err != nil {
		t.Fatalf("warmup failed: %v", err)
	}

	result, err := svc.RefreshDates(t.Context(), RefreshInput{Dates: []string{"2026-03-15", "2026-03-14"}})
	if err != nil {
		t.Fatalf("RefreshDates failed: %v", err)
	}

	if result.RequestedCount != 2 || result.SuccessCount != 2 || result.FailedCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.Dates) != 2 || result.Dates[0].Date != "2026-03-14" || result.Dates[1].Date != "2026-03-15" {
		t.Fatalf("per-date results not sorted: %+v", result.Dates)
	}
	if got := stats.calls.Load(); got != 3 {
		t.Fatalf("stats provider called %d times, want 3", got)
	}
}

func TestEnrichmentService_RefreshDates_InvalidDate(t *testing.T) {
	svc := NewEnrichmentService(&statsStub{}, &mediaStub{}, nil, nil, newEnrichmentFixtureStore(), logging.NewNop())

	if _, err := svc.RefreshDates(t.Context(), RefreshInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty dates, got %v", err)
	}
	if _, err := svc.RefreshDates(t.Context(), RefreshInput{Dates: []string{"2026-03-14", "bad"}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for malformed date, got %v", err)
	}
}
