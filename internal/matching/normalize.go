package matching

import (
	"regexp"
	"strings"
)

var parentheticalRegex = regexp.MustCompile(`\([^)]*\)`)
var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Organisational tokens carry no identity: club-type markers, reserve and
// youth squad labels, gender and age qualifiers.
var dropTokens = map[string]struct{}{
	"fc":        {},
	"cf":        {},
	"afc":       {},
	"ac":        {},
	"as":        {},
	"cd":        {},
	"sc":        {},
	"sv":        {},
	"ss":        {},
	"fk":        {},
	"bk":        {},
	"if":        {},
	"club":      {},
	"deportivo": {},
	"b":         {},
	"ii":        {},
	"reserves":  {},
	"reserve":   {},
	"youth":     {},
	"u23":       {},
	"u21":       {},
	"u19":       {},
	"u18":       {},
	"women":     {},
	"ladies":    {},
}

// Common long-form words folded to the short forms the badge provider
// tends to use.
var foldTokens = map[string]string{
	"united":         "utd",
	"manchester":     "man",
	"nottingham":     "notts",
	"wolverhampton":  "wolves",
	"internazionale": "inter",
	"borussia":       "bor",
	"queens":         "qpr",
}

// Normalize canonicalises a free-text team name for comparison: lower
// case, parentheticals removed, organisational suffixes and prefixes
// dropped, long-form words folded, punctuation collapsed to single
// spaces. Pure and total; empty input yields empty output.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ""
	}

	s = parentheticalRegex.ReplaceAllString(s, " ")
	s = nonAlnumRegex.ReplaceAllString(s, " ")

	parts := strings.Fields(s)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if _, drop := dropTokens[part]; drop {
			continue
		}
		if folded, ok := foldTokens[part]; ok {
			part = folded
		}
		out = append(out, part)
	}

	// A name made entirely of dropped tokens keeps its raw tokens rather
	// than collapsing to nothing.
	if len(out) == 0 {
		return strings.Join(parts, " ")
	}

	return strings.Join(out, " ")
}
