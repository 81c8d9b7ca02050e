package fixture

import "strings"

// Fixture is one scheduled or played match as reported by the primary
// statistics provider. Score and possession fields are nil when the
// provider did not report them.
type Fixture struct {
	HomeName       string
	AwayName       string
	Competition    string
	Country        string
	KickoffUnix    int64
	Status         string
	HomeScore      *int
	AwayScore      *int
	HomePossession *float64
	AwayPossession *float64
}

// MediaCandidate is one same-date fixture from the badge provider,
// considered as a possible identity match for a primary fixture.
type MediaCandidate struct {
	HomeTeamName string
	AwayTeamName string
	HomeLogoURL  string
	AwayLogoURL  string
	LeagueName   string
}

// HasMedia reports whether the candidate carries at least one badge URL.
func (c MediaCandidate) HasMedia() bool {
	return strings.TrimSpace(c.HomeLogoURL) != "" || strings.TrimSpace(c.AwayLogoURL) != ""
}

const (
	SourceMatched  = "matched"
	SourceFallback = "fallback"
)

// ResolutionResult is the outcome of resolving one primary fixture
// against a candidate pool. Media URLs are empty when no media-bearing
// candidate existed at all.
type ResolutionResult struct {
	Matched     bool
	Tier        StrategyTier
	HomeLogoURL string
	AwayLogoURL string
	Source      string
}

// StrategyTier identifies which cascade strategy produced a result.
type StrategyTier string

const (
	TierExactPair       StrategyTier = "exact_pair"
	TierContainmentPair StrategyTier = "containment_pair"
	TierTokenPair       StrategyTier = "token_pair"
	TierExactSingle     StrategyTier = "exact_single"
	TierContainSingle   StrategyTier = "containment_single"
	TierTokenSingle     StrategyTier = "token_single"
	TierFuzzy           StrategyTier = "fuzzy"
	TierNormalized      StrategyTier = "normalized"
	TierRegion          StrategyTier = "region"
	TierCharOverlap     StrategyTier = "char_overlap"
	TierCoreWord        StrategyTier = "core_word"
	TierVowelSkeleton   StrategyTier = "vowel_skeleton"
	TierFallback        StrategyTier = "fallback"
	TierNone            StrategyTier = ""
)

// LifecycleState is the temporal classification of a fixture, derived at
// read time and never stored.
type LifecycleState string

const (
	StateUpcoming         LifecycleState = "UPCOMING"
	StateLive             LifecycleState = "LIVE"
	StateRecentlyFinished LifecycleState = "RECENTLY_FINISHED"
	StateFinished         LifecycleState = "FINISHED"
)

// IsLiveEquivalent reports whether the state should be displayed as an
// in-progress match. Recently finished fixtures keep live treatment so
// final scores stay on the live board for a short window.
func (s LifecycleState) IsLiveEquivalent() bool {
	return s == StateLive || s == StateRecentlyFinished
}

// HasTelemetry reports whether the fixture carries any score or
// possession fields, regardless of their values.
func (f Fixture) HasTelemetry() bool {
	return f.HomeScore != nil || f.AwayScore != nil ||
		f.HomePossession != nil || f.AwayPossession != nil
}

// HasNonZeroTelemetry reports whether any reported score or possession
// value is above zero.
func (f Fixture) HasNonZeroTelemetry() bool {
	if f.HomeScore != nil && *f.HomeScore > 0 {
		return true
	}
	if f.AwayScore != nil && *f.AwayScore > 0 {
		return true
	}
	if f.HomePossession != nil && *f.HomePossession > 0 {
		return true
	}
	if f.AwayPossession != nil && *f.AwayPossession > 0 {
		return true
	}
	return false
}
