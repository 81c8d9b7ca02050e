package matching

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Minimum token length considered significant for token overlap. Short
// tokens ("de", "los", "the") match far too often to carry identity.
const minOverlapTokenLen = 3

// ExactMatch reports case- and whitespace-insensitive equality.
func ExactMatch(a, b string) bool {
	ca, cb := collapse(a), collapse(b)
	if ca == "" || cb == "" {
		return false
	}
	return ca == cb
}

// Containment reports whether either name contains the other after
// normalisation, compared without whitespace. "Man Utd" is contained in
// "Manchester United" because both normalise to "man utd".
func Containment(a, b string) bool {
	ca, cb := squash(Normalize(a)), squash(Normalize(b))
	if ca == "" || cb == "" {
		return false
	}
	return strings.Contains(ca, cb) || strings.Contains(cb, ca)
}

// TokenOverlap reports whether the two names share any token longer than
// minOverlapTokenLen characters.
func TokenOverlap(a, b string) bool {
	tokensA := significantTokens(a)
	if len(tokensA) == 0 {
		return false
	}
	for token := range significantTokens(b) {
		if _, ok := tokensA[token]; ok {
			return true
		}
	}
	return false
}

// EditSimilarity is 1 - levenshtein(a,b)/max(len(a),len(b)) over the raw
// strings. Two empty strings are identical (1.0); one empty string
// against a non-empty one shares nothing (0.0).
func EditSimilarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	return 1.0 - float64(distance)/float64(longest)
}

// VowelSkeleton reports whether both strings reduce to the same vowel
// sequence of at least three characters.
func VowelSkeleton(a, b string) bool {
	va, vb := vowels(a), vowels(b)
	return len(va) >= 3 && va == vb
}

// CharOverlapRatio is the count of distinct letters shared by both
// strings divided by the larger letter-only length. Degrades to 0 when
// either side has no letters.
func CharOverlapRatio(a, b string) float64 {
	lettersA, lettersB := letters(a), letters(b)
	longest := len(lettersA)
	if len(lettersB) > longest {
		longest = len(lettersB)
	}
	if longest == 0 {
		return 0.0
	}

	var setA, setB [26]bool
	for _, r := range lettersA {
		setA[r-'a'] = true
	}
	for _, r := range lettersB {
		setB[r-'a'] = true
	}

	shared := 0
	for i := 0; i < 26; i++ {
		if setA[i] && setB[i] {
			shared++
		}
	}

	return float64(shared) / float64(longest)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func squash(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}

func significantTokens(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToLower(s)) {
		if len(token) > minOverlapTokenLen {
			out[token] = struct{}{}
		}
	}
	return out
}

func vowels(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func letters(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			out = append(out, r)
		}
	}
	return out
}
