package postgres

import (
	"database/sql"

	"pitchside/internal/domain/fixture"
)

type enrichedFixtureTableModel struct {
	ID             int64           `db:"id"`
	MatchDate      string          `db:"match_date"`
	Position       int             `db:"position"`
	HomeName       string          `db:"home_name"`
	AwayName       string          `db:"away_name"`
	Competition    string          `db:"competition"`
	Country        string          `db:"country"`
	KickoffUnix    int64           `db:"kickoff_unix"`
	Status         string          `db:"status"`
	HomeScore      sql.NullInt64   `db:"home_score"`
	AwayScore      sql.NullInt64   `db:"away_score"`
	HomePossession sql.NullFloat64 `db:"home_possession"`
	AwayPossession sql.NullFloat64 `db:"away_possession"`
	Lifecycle      string          `db:"lifecycle"`
	HomeLogoURL    string          `db:"home_logo_url"`
	AwayLogoURL    string          `db:"away_logo_url"`
	BadgeSource    string          `db:"badge_source"`
	MatchTier      string          `db:"match_tier"`
}

func toEnrichedFixtureRow(date string, position int, item fixture.EnrichedFixture) enrichedFixtureTableModel {
	return enrichedFixtureTableModel{
		MatchDate:      date,
		Position:       position,
		HomeName:       item.HomeName,
		AwayName:       item.AwayName,
		Competition:    item.Competition,
		Country:        item.Country,
		KickoffUnix:    item.KickoffUnix,
		Status:         item.Status,
		HomeScore:      intPtrToNullInt64(item.HomeScore),
		AwayScore:      intPtrToNullInt64(item.AwayScore),
		HomePossession: floatPtrToNullFloat64(item.HomePossession),
		AwayPossession: floatPtrToNullFloat64(item.AwayPossession),
		Lifecycle:      string(item.Lifecycle),
		HomeLogoURL:    item.HomeLogoURL,
		AwayLogoURL:    item.AwayLogoURL,
		BadgeSource:    item.BadgeSource,
		MatchTier:      string(item.MatchTier),
	}
}

func (m enrichedFixtureTableModel) toDomain() fixture.EnrichedFixture {
	return fixture.EnrichedFixture{
		Fixture: fixture.Fixture{
			HomeName:       m.HomeName,
			AwayName:       m.AwayName,
			Competition:    m.Competition,
			Country:        m.Country,
			KickoffUnix:    m.KickoffUnix,
			Status:         m.Status,
			HomeScore:      nullInt64ToIntPtr(m.HomeScore),
			AwayScore:      nullInt64ToIntPtr(m.AwayScore),
			HomePossession: nullFloat64ToFloatPtr(m.HomePossession),
			AwayPossession: nullFloat64ToFloatPtr(m.AwayPossession),
		},
		Lifecycle:   fixture.LifecycleState(m.Lifecycle),
		HomeLogoURL: m.HomeLogoURL,
		AwayLogoURL: m.AwayLogoURL,
		BadgeSource: m.BadgeSource,
		MatchTier:   fixture.StrategyTier(m.MatchTier),
	}
}

func intPtrToNullInt64(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	value := int(v.Int64)
	return &value
}

func floatPtrToNullFloat64(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullFloat64ToFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	value := v.Float64
	return &value
}
