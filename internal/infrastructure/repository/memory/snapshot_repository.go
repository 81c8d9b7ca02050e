package memory

import (
	"context"
	"sync"

	"pitchside/internal/domain/fixture"
)

// SnapshotRepository keeps day snapshots in process memory. Used when
// no database is configured; snapshots then survive provider outages
// but not restarts.
type SnapshotRepository struct {
	mu   sync.RWMutex
	days map[string][]fixture.EnrichedFixture
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{days: make(map[string][]fixture.EnrichedFixture)}
}

func (r *SnapshotRepository) ReplaceDay(_ context.Context, date string, items []fixture.EnrichedFixture) error {
	owned := make([]fixture.EnrichedFixture, len(items))
	copy(owned, items)

	r.mu.Lock()
	r.days[date] = owned
	r.mu.Unlock()
	return nil
}

func (r *SnapshotRepository) ListByDate(_ context.Context, date string) ([]fixture.EnrichedFixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.days[date]
	out := make([]fixture.EnrichedFixture, 0, len(items))
	out = append(out, items...)
	return out, nil
}
