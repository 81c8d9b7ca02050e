package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pitchside/internal/domain/fixture"
)

const insertEnrichedFixtureQuery = `
INSERT INTO enriched_fixtures (
	match_date, position, home_name, away_name, competition, country,
	kickoff_unix, status, home_score, away_score, home_possession,
	away_possession, lifecycle, home_logo_url, away_logo_url,
	badge_source, match_tier
) VALUES (
	:match_date, :position, :home_name, :away_name, :competition, :country,
	:kickoff_unix, :status, :home_score, :away_score, :home_possession,
	:away_possession, :lifecycle, :home_logo_url, :away_logo_url,
	:badge_source, :match_tier
)`

const selectEnrichedFixturesQuery = `
SELECT
	position, home_name, away_name, competition, country, kickoff_unix,
	status, home_score, away_score, home_possession, away_possession,
	lifecycle, home_logo_url, away_logo_url, badge_source, match_tier
FROM enriched_fixtures
WHERE match_date = $1
ORDER BY position`

type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// ReplaceDay swaps the persisted view of one day atomically. Readers
// either see the previous day's rows or the new ones, never a mix.
func (r *SnapshotRepository) ReplaceDay(ctx context.Context, date string, items []fixture.EnrichedFixture) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM enriched_fixtures WHERE match_date = $1`, date); err != nil {
		return fmt.Errorf("clear day snapshot date=%s: %w", date, err)
	}

	for position, item := range items {
		row := toEnrichedFixtureRow(date, position, item)
		if _, err := tx.NamedExecContext(ctx, insertEnrichedFixtureQuery, row); err != nil {
			return fmt.Errorf("insert snapshot row date=%s position=%d: %w", date, position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot tx: %w", err)
	}

	return nil
}

// ListByDate returns the persisted rows for one day in their original
// provider order. An unknown day yields an empty slice.
func (r *SnapshotRepository) ListByDate(ctx context.Context, date string) ([]fixture.EnrichedFixture, error) {
	var rows []enrichedFixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, selectEnrichedFixturesQuery, date); err != nil {
		return nil, fmt.Errorf("select day snapshot date=%s: %w", date, err)
	}

	out := make([]fixture.EnrichedFixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
