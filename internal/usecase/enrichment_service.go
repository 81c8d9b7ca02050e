package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/iter"

	"pitchside/internal/domain/fixture"
	"pitchside/internal/matching"
	"pitchside/internal/platform/cache"
	idgen "pitchside/internal/platform/id"
	"pitchside/internal/platform/logging"
)

const dateLayout = "2006-01-02"

// StatsProvider serves the authoritative fixture list for one day.
type StatsProvider interface {
	FixturesByDate(ctx context.Context, date string) ([]fixture.Fixture, error)
}

// MediaProvider serves the badge candidate pool for one day.
type MediaProvider interface {
	CandidatesByDate(ctx context.Context, date string) ([]fixture.MediaCandidate, error)
}

type EnrichmentService struct {
	stats     StatsProvider
	media     MediaProvider
	resolver  *matching.Resolver
	snapshots fixture.SnapshotRepository
	store     *cache.Store
	logger    *logging.Logger
	ids       idgen.Generator
	now       func() time.Time
}

// NewEnrichmentService wires the two providers, the identity resolver
// and an optional snapshot repository. snapshots may be nil, in which
// case a stats outage surfaces as ErrDependencyUnavailable.
func NewEnrichmentService(
	stats StatsProvider,
	media MediaProvider,
	resolver *matching.Resolver,
	snapshots fixture.SnapshotRepository,
	store *cache.Store,
	logger *logging.Logger,
) *EnrichmentService {
	if resolver == nil {
		resolver = matching.NewResolver()
	}
	if store == nil {
		store = cache.NewStore(nil)
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &EnrichmentService{
		stats:     stats,
		media:     media,
		resolver:  resolver,
		snapshots: snapshots,
		store:     store,
		logger:    logger,
		ids:       idgen.NewRandomGenerator(),
		now:       time.Now,
	}
}

// EnrichDate returns the enriched fixture list for one YYYY-MM-DD day,
// in the stats provider's order. Media failures degrade to fixtures
// without badges; a stats failure falls back to the latest persisted
// snapshot of that day before giving up.
func (s *EnrichmentService) EnrichDate(ctx context.Context, date string) ([]fixture.EnrichedFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrichDate")
	defer span.End()

	date = strings.TrimSpace(date)
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	fixtures, err := s.loadFixtures(ctx, date)
	if err != nil {
		if snapshot, ok := s.snapshotFallback(ctx, date, err); ok {
			return snapshot, nil
		}
		return nil, fmt.Errorf("%w: fixtures for %s: %v", ErrDependencyUnavailable, date, err)
	}
	if len(fixtures) == 0 {
		return []fixture.EnrichedFixture{}, nil
	}

	candidates := s.loadCandidates(ctx, date)
	nowUnix := s.now().UTC().Unix()

	enriched := iter.Map(fixtures, func(item *fixture.Fixture) fixture.EnrichedFixture {
		resolution := s.resolver.Resolve(*item, candidates)
		return fixture.EnrichedFixture{
			Fixture:     *item,
			Lifecycle:   matching.Classify(*item, nowUnix),
			HomeLogoURL: resolution.HomeLogoURL,
			AwayLogoURL: resolution.AwayLogoURL,
			BadgeSource: resolution.Source,
			MatchTier:   resolution.Tier,
		}
	})

	if s.snapshots != nil {
		if err := s.snapshots.ReplaceDay(ctx, date, enriched); err != nil {
			s.logger.WarnContext(ctx, "persist day snapshot failed", "date", date, "error", err)
		}
	}

	return enriched, nil
}

// LiveFixtures returns the fixtures for one day that are live or
// recently finished. An empty date means the service clock's UTC date.
func (s *EnrichmentService) LiveFixtures(ctx context.Context, date string) ([]fixture.EnrichedFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtures")
	defer span.End()

	if strings.TrimSpace(date) == "" {
		date = s.now().UTC().Format(dateLayout)
	}
	enriched, err := s.EnrichDate(ctx, date)
	if err != nil {
		return nil, err
	}

	live := make([]fixture.EnrichedFixture, 0, len(enriched))
	for _, item := range enriched {
		if item.Lifecycle.IsLiveEquivalent() {
			live = append(live, item)
		}
	}

	return live, nil
}

type RefreshInput struct {
	Dates   []string `json:"dates"`
	Workers int      `json:"workers"`
}

type RefreshDateResult struct {
	Date         string `json:"date"`
	FixtureCount int    `json:"fixture_count"`
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	DurationMs   int64  `json:"duration_ms"`
}

type RefreshResult struct {
	JobID          string              `json:"job_id"`
	RequestedCount int                 `json:"requested_count"`
	SuccessCount   int                 `json:"success_count"`
	FailedCount    int                 `json:"failed_count"`
	Dates          []RefreshDateResult `json:"dates"`
}

const defaultRefreshWorkers = 4

// RefreshDates re-pulls the given days from the upstream providers,
// replacing whatever the cache held for them. Days are processed on a
// bounded worker pool and reported individually.
func (s *EnrichmentService) RefreshDates(ctx context.Context, input RefreshInput) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshDates")
	defer span.End()

	if len(input.Dates) == 0 {
		return RefreshResult{}, fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}
	dates := make([]string, 0, len(input.Dates))
	for _, raw := range input.Dates {
		date := strings.TrimSpace(raw)
		if _, err := time.Parse(dateLayout, date); err != nil {
			return RefreshResult{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, raw)
		}
		dates = append(dates, date)
	}

	jobID, err := s.ids.NewID()
	if err != nil {
		return RefreshResult{}, fmt.Errorf("generate refresh job id: %w", err)
	}
	s.logger.InfoContext(ctx, "refresh job started", "job_id", jobID, "dates", len(dates))

	workerCount := input.Workers
	if workerCount <= 0 {
		workerCount = defaultRefreshWorkers
	}
	if workerCount > len(dates) {
		workerCount = len(dates)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan RefreshDateResult, len(dates))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, date := range dates {
		date := date
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RefreshDateResult{Date: date, Status: "success"}

			s.store.Delete(ctx, cache.Key{Kind: cache.KindPrimaryFixtures, Date: date})
			s.store.Delete(ctx, cache.Key{Kind: cache.KindMediaCandidates, Date: date})

			enriched, enrichErr := s.EnrichDate(ctx, date)
			if enrichErr != nil {
				row.Status = "failed"
				row.Message = enrichErr.Error()
				failedCount.Add(1)
			} else {
				row.FixtureCount = len(enriched)
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			results <- row
		}); err != nil {
			workers.Done()
			return RefreshResult{}, fmt.Errorf("submit date to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	result := RefreshResult{JobID: jobID, RequestedCount: len(dates)}
	for row := range results {
		result.Dates = append(result.Dates, row)
	}
	sort.Slice(result.Dates, func(i, j int) bool {
		return result.Dates[i].Date < result.Dates[j].Date
	})
	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	return result, nil
}

func (s *EnrichmentService) loadFixtures(ctx context.Context, date string) ([]fixture.Fixture, error) {
	key := cache.Key{Kind: cache.KindPrimaryFixtures, Date: date}
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.stats.FixturesByDate(ctx, date)
	})
	if err != nil {
		return nil, err
	}

	fixtures, ok := value.([]fixture.Fixture)
	if !ok {
		return nil, fmt.Errorf("unexpected cached fixtures payload %T", value)
	}
	return fixtures, nil
}

func (s *EnrichmentService) loadCandidates(ctx context.Context, date string) []fixture.MediaCandidate {
	key := cache.Key{Kind: cache.KindMediaCandidates, Date: date}
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.media.CandidatesByDate(ctx, date)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "media candidates unavailable", "date", date, "error", err)
		return nil
	}

	candidates, ok := value.([]fixture.MediaCandidate)
	if !ok {
		s.logger.WarnContext(ctx, "unexpected cached media payload", "date", date, "type", fmt.Sprintf("%T", value))
		return nil
	}
	return candidates
}

// snapshotFallback serves a previously persisted day when the stats
// provider is down. Lifecycle states are recomputed so a stale snapshot
// does not keep finished matches marked live.
func (s *EnrichmentService) snapshotFallback(ctx context.Context, date string, cause error) ([]fixture.EnrichedFixture, bool) {
	if s.snapshots == nil {
		return nil, false
	}

	items, err := s.snapshots.ListByDate(ctx, date)
	if err != nil {
		s.logger.WarnContext(ctx, "snapshot fallback failed", "date", date, "error", err)
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}

	s.logger.WarnContext(ctx, "serving day from snapshot", "date", date, "fixtures", len(items), "cause", cause)

	nowUnix := s.now().UTC().Unix()
	for i := range items {
		items[i].Lifecycle = matching.Classify(items[i].Fixture, nowUnix)
	}

	return items, true
}
