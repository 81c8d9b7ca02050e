package matching

import (
	"strings"

	"pitchside/internal/domain/fixture"
)

// Edit-distance similarity at or above this accepts a fuzzy pairing.
const fuzzySimilarityThreshold = 0.4

// Concatenated-name character overlap above this accepts a candidate in
// the char-overlap tier.
const charOverlapThreshold = 0.3

// Country, region and competition keywords used by the region heuristic.
// Both sides must contain the same entry for the heuristic to fire.
var regionKeywords = []string{
	"england", "english", "premier", "championship",
	"spain", "spanish", "laliga", "la liga",
	"italy", "italian", "serie",
	"germany", "german", "bundesliga",
	"france", "french", "ligue",
	"portugal", "primeira",
	"netherlands", "eredivisie",
	"scotland", "scottish",
	"brazil", "argentina", "mls",
	"champions", "europa", "conference",
}

type strategy struct {
	tier  fixture.StrategyTier
	match func(primary fixture.Fixture, candidate fixture.MediaCandidate) bool
}

// Resolver finds, for one primary fixture, the badge-provider fixture
// that describes the same real-world match. Strategies run in a fixed
// order from strict to permissive; the first tier that accepts any
// candidate wins, and ties within a tier go to the earliest candidate in
// input order. The cascade trades precision for coverage: a wrong badge
// beats an empty one on the dashboard.
type Resolver struct {
	strategies []strategy
}

func NewResolver() *Resolver {
	return &Resolver{
		strategies: []strategy{
			{fixture.TierExactPair, matchExactPair},
			{fixture.TierContainmentPair, matchContainmentPair},
			{fixture.TierTokenPair, matchTokenPair},
			{fixture.TierExactSingle, matchExactSingle},
			{fixture.TierContainSingle, matchContainmentSingle},
			{fixture.TierTokenSingle, matchTokenSingle},
			{fixture.TierFuzzy, matchFuzzy},
			{fixture.TierNormalized, matchNormalized},
			{fixture.TierRegion, sharesRegionSignal},
			{fixture.TierCharOverlap, matchCharOverlap},
			{fixture.TierCoreWord, matchCoreWord},
			{fixture.TierVowelSkeleton, matchVowelSkeleton},
		},
	}
}

// Resolve is total and deterministic: it always returns exactly one
// result for the given inputs, and identical inputs yield identical
// results.
func (r *Resolver) Resolve(primary fixture.Fixture, candidates []fixture.MediaCandidate) fixture.ResolutionResult {
	for _, strat := range r.strategies {
		for _, candidate := range candidates {
			if strat.match(primary, candidate) {
				return fixture.ResolutionResult{
					Matched:     true,
					Tier:        strat.tier,
					HomeLogoURL: candidate.HomeLogoURL,
					AwayLogoURL: candidate.AwayLogoURL,
					Source:      fixture.SourceMatched,
				}
			}
		}
	}

	return r.fallback(primary, candidates)
}

// fallback guarantees every fixture some media when any candidate has
// badges at all. Among media-bearing candidates the first one sharing a
// region signal is preferred; failing that the first media-bearing
// candidate in input order is used, keeping the result reproducible.
func (r *Resolver) fallback(primary fixture.Fixture, candidates []fixture.MediaCandidate) fixture.ResolutionResult {
	var first *fixture.MediaCandidate
	for i := range candidates {
		if !candidates[i].HasMedia() {
			continue
		}
		if first == nil {
			first = &candidates[i]
		}
		if sharesRegionSignal(primary, candidates[i]) {
			first = &candidates[i]
			break
		}
	}

	if first == nil {
		return fixture.ResolutionResult{
			Matched: false,
			Tier:    fixture.TierNone,
			Source:  fixture.SourceFallback,
		}
	}

	return fixture.ResolutionResult{
		Matched:     false,
		Tier:        fixture.TierFallback,
		HomeLogoURL: first.HomeLogoURL,
		AwayLogoURL: first.AwayLogoURL,
		Source:      fixture.SourceFallback,
	}
}

func matchExactPair(p fixture.Fixture, c fixture.MediaCandidate) bool {
	return ExactMatch(p.HomeName, c.HomeTeamName) && ExactMatch(p.AwayName, c.AwayTeamName)
}

func matchContainmentPair(p fixture.Fixture, c fixture.MediaCandidate) bool {
	return Containment(p.HomeName, c.HomeTeamName) && Containment(p.AwayName, c.AwayTeamName)
}

func matchTokenPair(p fixture.Fixture, c fixture.MediaCandidate) bool {
	return TokenOverlap(p.HomeName, c.HomeTeamName) && TokenOverlap(p.AwayName, c.AwayTeamName)
}

func matchExactSingle(p fixture.Fixture, c fixture.MediaCandidate) bool {
	return anyPairing(p, c, ExactMatch)
}

func matchContainmentSingle(p fixture.Fixture, c fixture.MediaCandidate) bool {
	return anyPairing(p, c, Containment)
}

func matchTokenSingle(p fixture.Fixture, c fixture.MediaCandidate) bool {
	return anyPairing(p, c, TokenOverlap)
}

func matchFuzzy(p fixture.Fixture, c fixture.MediaCandidate) bool {
	return anyPairing(p, c, func(a, b string) bool {
		if a == "" || b == "" {
			return false
		}
		return EditSimilarity(a, b) >= fuzzySimilarityThreshold
	})
}

func matchNormalized(p fixture.Fixture, c fixture.MediaCandidate) bool {
	return anyPairing(p, c, func(a, b string) bool {
		na, nb := Normalize(a), Normalize(b)
		return ExactMatch(na, nb) || Containment(na, nb)
	})
}

// sharesRegionSignal is both the tier-nine predicate and the fallback
// preference: the competition names share a region keyword, or team
// names on both sides do.
func sharesRegionSignal(p fixture.Fixture, c fixture.MediaCandidate) bool {
	competition := strings.ToLower(p.Competition + " " + p.Country)
	league := strings.ToLower(c.LeagueName)
	primaryTeams := strings.ToLower(p.HomeName + " " + p.AwayName)
	candidateTeams := strings.ToLower(c.HomeTeamName + " " + c.AwayTeamName)

	for _, keyword := range regionKeywords {
		if strings.Contains(competition, keyword) && strings.Contains(league, keyword) {
			return true
		}
		if strings.Contains(primaryTeams, keyword) && strings.Contains(candidateTeams, keyword) {
			return true
		}
	}

	return false
}

func matchCharOverlap(p fixture.Fixture, c fixture.MediaCandidate) bool {
	primaryJoined := squash(p.HomeName + p.AwayName)
	candidateJoined := squash(c.HomeTeamName + c.AwayTeamName)
	if primaryJoined == "" || candidateJoined == "" {
		return false
	}
	return CharOverlapRatio(primaryJoined, candidateJoined) > charOverlapThreshold
}

func matchCoreWord(p fixture.Fixture, c fixture.MediaCandidate) bool {
	return anyPairing(p, c, func(a, b string) bool {
		coreA, coreB := coreWord(a), coreWord(b)
		if coreA == "" || coreB == "" {
			return false
		}
		return coreA == coreB || strings.Contains(coreA, coreB) || strings.Contains(coreB, coreA)
	})
}

func matchVowelSkeleton(p fixture.Fixture, c fixture.MediaCandidate) bool {
	return anyPairing(p, c, VowelSkeleton)
}

// anyPairing applies the comparator to every side/orientation pairing of
// primary and candidate team names, including cross-orientation pairs.
func anyPairing(p fixture.Fixture, c fixture.MediaCandidate, compare func(a, b string) bool) bool {
	return compare(p.HomeName, c.HomeTeamName) ||
		compare(p.AwayName, c.AwayTeamName) ||
		compare(p.HomeName, c.AwayTeamName) ||
		compare(p.AwayName, c.HomeTeamName)
}

// coreWord is the longest token longer than two characters in the
// normalised name, the word most likely to survive provider renaming.
func coreWord(name string) string {
	best := ""
	for _, token := range strings.Fields(Normalize(name)) {
		if len(token) > 2 && len(token) > len(best) {
			best = token
		}
	}
	return best
}
