package fixture

import "context"

// EnrichedFixture is a provider fixture decorated with its lifecycle
// state and the badge media selected for it.
type EnrichedFixture struct {
	Fixture
	Lifecycle   LifecycleState `json:"lifecycle"`
	HomeLogoURL string         `json:"homeLogoUrl"`
	AwayLogoURL string         `json:"awayLogoUrl"`
	BadgeSource string         `json:"badgeSource"`
	MatchTier   StrategyTier   `json:"matchTier,omitempty"`
}

// SnapshotRepository persists the enriched view of one calendar day so
// it can be served when the upstream stats provider is down.
type SnapshotRepository interface {
	ReplaceDay(ctx context.Context, date string, items []EnrichedFixture) error
	ListByDate(ctx context.Context, date string) ([]EnrichedFixture, error)
}
